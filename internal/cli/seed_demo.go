package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/demo"
)

// SeedDemoCommand fills an empty catalog with sample books.
type SeedDemoCommand struct {
	DatabasePath string
	Fresh        bool
}

func NewSeedDemoCommand() *SeedDemoCommand {
	return &SeedDemoCommand{}
}

func (cmd *SeedDemoCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed-demo", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.BoolVar(&cmd.Fresh, "fresh", false, "Delete the database file before seeding")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed-demo [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Seed an empty catalog with public domain sample books.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SeedDemoCommand) Run() error {
	if cmd.Fresh {
		if err := os.Remove(cmd.DatabasePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	db, catalog, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	created, err := demo.Seed(context.Background(), catalog, demo.SampleLibrary())
	if err != nil {
		return fmt.Errorf("failed to seed demo library: %w", err)
	}

	fmt.Printf("Seeded %d books into %s\n", created, cmd.DatabasePath)
	return nil
}
