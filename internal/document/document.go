// Package document moves text between disk and a buffer.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/videre/internal/buffer"
	"github.com/zjrosen/videre/internal/log"
)

var (
	// ErrNotRegularFile is returned when the path names a directory or device.
	ErrNotRegularFile = errors.New("not a regular file")
	// ErrReadonly is returned by Save on a read-only document.
	ErrReadonly = errors.New("document is read-only")
	// ErrNoPath is returned by Save on a document that was never named.
	ErrNoPath = errors.New("no file name")
)

const defaultMode fs.FileMode = 0o644

// Document describes the file behind a buffer.
type Document struct {
	ID       uuid.UUID
	Path     string
	CRLF     bool // file used "\r\n" line endings
	Mode     fs.FileMode
	ModTime  time.Time
	Readonly bool
	New      bool // file did not exist when opened
}

// Scratch returns an unnamed document with an empty buffer.
func Scratch() (*Document, *buffer.Buffer) {
	return &Document{ID: uuid.New(), Mode: defaultMode, New: true}, buffer.New("")
}

// Open reads path into a buffer. A missing file yields an empty buffer and
// a document marked New, so saving creates it.
func Open(path string) (*Document, *buffer.Buffer, error) {
	doc := &Document{ID: uuid.New(), Path: path, Mode: defaultMode}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		doc.New = true
		log.Info(log.CatFile, "Opening new file", "path", path, "id", doc.ID)
		return doc, buffer.New(""), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: the user chose this file
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text := string(data)
	if strings.Contains(text, "\r\n") {
		doc.CRLF = true
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	doc.Mode = info.Mode().Perm()
	doc.ModTime = info.ModTime()

	log.Info(log.CatFile, "Opened file", "path", path, "id", doc.ID, "bytes", len(data), "crlf", doc.CRLF)
	return doc, buffer.New(text), nil
}

// Name returns the base name for display.
func (d *Document) Name() string {
	if d.Path == "" {
		return "[No Name]"
	}
	return filepath.Base(d.Path)
}

// Encode renders buf the way it will be written to disk.
func (d *Document) Encode(buf *buffer.Buffer) []byte {
	text := buf.String()
	if d.CRLF {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return []byte(text)
}

// Save writes buf to the document's path through a temporary file and a
// rename, so a crash never leaves a half-written file. It returns the
// number of bytes written.
func (d *Document) Save(buf *buffer.Buffer) (int, error) {
	if d.Readonly {
		return 0, ErrReadonly
	}
	if d.Path == "" {
		return 0, ErrNoPath
	}
	data := d.Encode(buf)

	dir := filepath.Dir(d.Path)
	temp, err := os.CreateTemp(dir, "."+filepath.Base(d.Path)+".videre-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()
	fail := func(step string, err error) (int, error) {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		log.ErrorErr(log.CatFile, "Save failed", err, "path", d.Path, "step", step)
		return 0, fmt.Errorf("%s: %w", step, err)
	}

	if _, err := temp.Write(data); err != nil {
		return fail("writing temp file", err)
	}
	if err := temp.Chmod(d.Mode); err != nil {
		return fail("setting permissions", err)
	}
	if err := temp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := temp.Close(); err != nil {
		return fail("closing temp file", err)
	}
	if err := os.Rename(tempPath, d.Path); err != nil {
		_ = os.Remove(tempPath)
		log.ErrorErr(log.CatFile, "Save failed", err, "path", d.Path, "step", "rename")
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}

	if info, err := os.Stat(d.Path); err == nil {
		d.ModTime = info.ModTime()
	}
	d.New = false
	log.Info(log.CatFile, "Saved file", "path", d.Path, "bytes", len(data))
	return len(data), nil
}
