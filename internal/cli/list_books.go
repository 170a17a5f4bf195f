package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// ListBooksCommand prints the catalog, optionally filtered by a search string.
type ListBooksCommand struct {
	DatabasePath string
	Search       string

	out io.Writer
}

func NewListBooksCommand() *ListBooksCommand {
	return &ListBooksCommand{out: os.Stdout}
}

func (cmd *ListBooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list-books", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.StringVar(&cmd.Search, "search", "", "Only list books whose name, author, category or location contains this text")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list-books [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List books with their authors, categories and location.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s list-books -search tolkien\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ListBooksCommand) Run() error {
	db, catalog, err := openCatalog(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	books, err := catalog.ListBooks(context.Background(), entities.BookFilter{Search: cmd.Search})
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	if len(books) == 0 {
		fmt.Fprintln(cmd.out, "No books found")
		return nil
	}

	for i := range books {
		fmt.Fprintln(cmd.out, formatBookLine(&books[i]))
	}
	fmt.Fprintf(cmd.out, "\n%d books\n", len(books))
	return nil
}

// formatBookLine renders a book as
// `#id Name by A, B [Cat1, Cat2] @ Location (year, pages p.)`.
func formatBookLine(book *entities.Book) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", book.ID, book.Name)

	if len(book.Authors) > 0 {
		names := make([]string, len(book.Authors))
		for i, a := range book.Authors {
			names[i] = a.Name
		}
		fmt.Fprintf(&b, " by %s", strings.Join(names, ", "))
	}
	if len(book.Categories) > 0 {
		names := make([]string, len(book.Categories))
		for i, c := range book.Categories {
			names[i] = c.Name
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(names, ", "))
	}
	if book.Location != nil {
		fmt.Fprintf(&b, " @ %s", book.Location.Name)
	}

	var details []string
	if book.PublishYear != nil {
		details = append(details, fmt.Sprintf("%d", *book.PublishYear))
	}
	if book.NumberOfPages != nil {
		details = append(details, fmt.Sprintf("%d p.", *book.NumberOfPages))
	}
	if len(details) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(details, ", "))
	}
	return b.String()
}
