package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/videre/internal/log"
	"github.com/zjrosen/videre/internal/register"
)

// RegisterRepository saves and restores register contents.
type RegisterRepository struct {
	db  *sql.DB
	now func() time.Time
}

func (r *RegisterRepository) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// Persistent reports whether a register survives between sessions.
// Clipboard registers live outside the editor and the search register is
// not persisted.
func Persistent(name rune) bool {
	if register.IsClipboard(name) || name == register.Search {
		return false
	}
	return register.Valid(name)
}

// SaveAll replaces the stored registers with snap in one transaction.
// Registers that are not Persistent are skipped.
func (r *RegisterRepository) SaveAll(snap map[rune]register.Content) error {
	now := r.clock()
	models := make([]*RegisterModel, 0, len(snap))
	for name, c := range snap {
		if c == nil || !Persistent(name) {
			continue
		}
		m, err := toRegisterModel(name, c, now)
		if err != nil {
			return err
		}
		models = append(models, m)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM registers`); err != nil {
		return fmt.Errorf("failed to clear registers: %w", err)
	}
	for _, m := range models {
		if _, err := tx.Exec(
			`INSERT INTO registers (name, kind, payload, updated_at) VALUES (?, ?, ?, ?)`,
			m.Name, m.Kind, m.Payload, m.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert register %q: %w", m.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registers: %w", err)
	}

	log.Debug(log.CatStore, "Saved registers", "count", len(models))
	return nil
}

// LoadAll returns every stored register. Rows that cannot be decoded are
// logged and skipped.
func (r *RegisterRepository) LoadAll() (map[rune]register.Content, error) {
	rows, err := r.db.Query(`SELECT name, kind, payload, updated_at FROM registers`)
	if err != nil {
		return nil, fmt.Errorf("failed to query registers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[rune]register.Content)
	for rows.Next() {
		var m RegisterModel
		if err := rows.Scan(&m.Name, &m.Kind, &m.Payload, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan register: %w", err)
		}
		name, c, err := m.toContent()
		if err != nil {
			log.Warn(log.CatStore, "Skipping stored register", "error", err)
			continue
		}
		out[name] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read registers: %w", err)
	}
	return out, nil
}

// UpdatedAt returns when the named register was last saved.
func (r *RegisterRepository) UpdatedAt(name rune) (time.Time, bool, error) {
	var ts int64
	err := r.db.QueryRow(`SELECT updated_at FROM registers WHERE name = ?`, string(name)).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read register time: %w", err)
	}
	return time.Unix(ts, 0), true, nil
}
