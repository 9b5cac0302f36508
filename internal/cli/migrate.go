package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mrlokans/bookstore/internal/config"
	"github.com/mrlokans/bookstore/internal/entrypoint"
)

// MigrateCommand applies or lists schema migrations
type MigrateCommand struct {
	StatusOnly bool

	cfg *config.Config
	out io.Writer
}

func NewMigrateCommand(cfg *config.Config) *MigrateCommand {
	return &MigrateCommand{cfg: cfg, out: os.Stdout}
}

func (cmd *MigrateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)

	fs.BoolVar(&cmd.StatusOnly, "status", false, "List migrations and whether they are applied, without changing anything")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s migrate [-status]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Apply pending schema migrations to the configured database.\n")
		fmt.Fprintf(os.Stderr, "The database is selected with DATABASE_DRIVER, DATABASE_PATH or DATABASE_DSN.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *MigrateCommand) Run() error {
	db, err := entrypoint.OpenDatabase(cmd.cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if cmd.StatusOnly {
		statuses, err := db.MigrationStatuses()
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}

		tw := tabwriter.NewWriter(cmd.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tNAME\tAPPLIED AT")
		for _, s := range statuses {
			appliedAt := "pending"
			if s.Applied && s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, s.Name, appliedAt)
		}
		return tw.Flush()
	}

	applied, err := db.Migrate()
	if err != nil {
		return fmt.Errorf("migration failed after %d applied: %w", applied, err)
	}

	if applied == 0 {
		fmt.Fprintln(cmd.out, "Database schema is up to date")
	} else {
		fmt.Fprintf(cmd.out, "Applied %d migration(s)\n", applied)
	}
	return nil
}
