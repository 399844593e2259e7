package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/videre/internal/infrastructure/sqlite"
	"github.com/zjrosen/videre/internal/presentation"
)

var clearRegisters bool

var registersCmd = &cobra.Command{
	Use:   "registers",
	Short: "Print registers saved from earlier sessions",
	Long: `Print the registers persisted in the register database as JSON.

Examples:
  # List every saved register
  videre registers

  # Just the names and text
  videre registers | jq '.[] | {name, text}'

  # Forget everything
  videre registers --clear`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !cfg.Registers.Persist || cfg.Registers.Path == "" {
			return errors.New("register persistence is disabled (registers.persist)")
		}
		db, err := sqlite.NewDB(cfg.Registers.Path)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		repo := db.Registers()

		if clearRegisters {
			return repo.SaveAll(nil)
		}

		snap, err := repo.LoadAll()
		if err != nil {
			return err
		}
		dtos := presentation.FromRegisters(snap, func(name rune) (time.Time, bool) {
			ts, ok, err := repo.UpdatedAt(name)
			return ts, ok && err == nil
		})
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatRegisters(dtos)
	},
}

func init() {
	registersCmd.Flags().BoolVar(&clearRegisters, "clear", false, "delete every saved register")
	rootCmd.AddCommand(registersCmd)
}
