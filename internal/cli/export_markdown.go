package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/exporters"
)

// ExportMarkdownCommand writes the catalog as markdown notes.
type ExportMarkdownCommand struct {
	DatabasePath string
	OutputDir    string
	Search       string
}

func NewExportMarkdownCommand() *ExportMarkdownCommand {
	return &ExportMarkdownCommand{}
}

func (cmd *ExportMarkdownCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-markdown", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.StringVar(&cmd.OutputDir, "out", "", "Output directory for markdown files (required)")
	fs.StringVar(&cmd.Search, "search", "", "Only export books matching this text")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-markdown -out <dir> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export every book as a markdown note with YAML front matter,\n")
		fmt.Fprintf(os.Stderr, "plus an index.md grouped by location.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.OutputDir == "" {
		return fmt.Errorf("required flag -out not provided")
	}
	return nil
}

func (cmd *ExportMarkdownCommand) Run() error {
	absOutputDir, err := filepath.Abs(cmd.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for output: %w", err)
	}

	db, catalog, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Exporting to markdown: %s\n", absOutputDir)

	exporter := exporters.NewCatalogMarkdownExporter(catalog, absOutputDir)
	result, err := exporter.ExportAll(context.Background(), cmd.Search)
	if err != nil {
		return fmt.Errorf("failed to export to markdown: %w", err)
	}

	fmt.Printf("Exported %d books to markdown\n", result.BooksProcessed)
	if result.BooksFailed > 0 {
		fmt.Printf("%d books failed to export\n", result.BooksFailed)
	}
	return nil
}
