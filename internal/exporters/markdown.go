package exporters

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/utils"
)

const unshelved = "Unshelved"

// MarkdownExporter writes one markdown note per book plus an index grouped
// by location.
type MarkdownExporter struct {
	ExportDir     string
	IndexFileName string

	now func() time.Time
}

func NewMarkdownExporter(exportDir string) *MarkdownExporter {
	return &MarkdownExporter{
		ExportDir:     exportDir,
		IndexFileName: "index.md",
		now:           time.Now,
	}
}

type frontMatter struct {
	BookID        uint     `yaml:"book_id"`
	Title         string   `yaml:"title"`
	Authors       []string `yaml:"authors"`
	Categories    []string `yaml:"categories"`
	Location      string   `yaml:"location,omitempty"`
	PublishYear   *int     `yaml:"publish_year,omitempty"`
	NumberOfPages *int     `yaml:"number_of_pages,omitempty"`
	ImageURL      string   `yaml:"image_url,omitempty"`
	ExportedAt    string   `yaml:"exported_at"`
	Tags          []string `yaml:"tags"`
}

// GenerateMarkdown renders a book as a note with YAML front matter.
func GenerateMarkdown(book *entities.Book, exportedAt time.Time) (string, error) {
	fm := frontMatter{
		BookID:        book.ID,
		Title:         book.Name,
		Authors:       authorNames(book),
		Categories:    categoryNames(book),
		PublishYear:   book.PublishYear,
		NumberOfPages: book.NumberOfPages,
		ImageURL:      book.ImageURL,
		ExportedAt:    exportedAt.Format("2006-01-02"),
		Tags:          []string{"books"},
	}
	if book.Location != nil {
		fm.Location = book.Location.Name
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "---\n%s---\n\n", header)
	fmt.Fprintf(&builder, "# %s\n\n", book.Name)

	if book.ImageURL != "" {
		fmt.Fprintf(&builder, "![cover](%s)\n\n", book.ImageURL)
	}
	if len(fm.Authors) > 0 {
		fmt.Fprintf(&builder, "**Authors:** %s\n\n", strings.Join(fm.Authors, ", "))
	}
	if len(fm.Categories) > 0 {
		fmt.Fprintf(&builder, "**Categories:** %s\n\n", strings.Join(fm.Categories, ", "))
	}
	if fm.Location != "" {
		fmt.Fprintf(&builder, "**Location:** %s\n\n", fm.Location)
	}

	return builder.String(), nil
}

// Export writes every book to its own file. A book that cannot be written is
// counted as failed and the export continues; the index lists only written books.
func (exporter *MarkdownExporter) Export(books []entities.Book) (ExportResult, error) {
	if err := os.MkdirAll(exporter.ExportDir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	result := ExportResult{}
	exportedAt := exporter.now()
	taken := map[string]bool{strings.ToLower(strings.TrimSuffix(exporter.IndexFileName, ".md")): true}
	byLocation := map[string][]string{}

	for i := range books {
		book := &books[i]
		name := utils.UniqueFilename(utils.SanitizeFilename(book.Name), taken)

		path, err := exporter.exportBook(book, name, exportedAt)
		if err != nil {
			log.Printf("Failed to export book %d (%s): %v", book.ID, book.Name, err)
			result.BooksFailed++
			continue
		}

		location := unshelved
		if book.Location != nil {
			location = book.Location.Name
		}
		byLocation[location] = append(byLocation[location], name)
		result.Files = append(result.Files, path)
		result.BooksProcessed++
	}

	indexPath := filepath.Join(exporter.ExportDir, exporter.IndexFileName)
	if err := os.WriteFile(indexPath, []byte(renderIndex(byLocation)), 0644); err != nil {
		return result, fmt.Errorf("failed to write index: %w", err)
	}

	log.Printf("Markdown export to %s: %d books written, %d failed",
		exporter.ExportDir, result.BooksProcessed, result.BooksFailed)
	return result, nil
}

func (exporter *MarkdownExporter) exportBook(book *entities.Book, name string, exportedAt time.Time) (string, error) {
	content, err := GenerateMarkdown(book, exportedAt)
	if err != nil {
		return "", err
	}

	outputPath := filepath.Join(exporter.ExportDir, name+".md")
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return outputPath, nil
}

// renderIndex lists notes per location, locations sorted by name with
// unshelved books last.
func renderIndex(byLocation map[string][]string) string {
	locations := make([]string, 0, len(byLocation))
	for location := range byLocation {
		if location != unshelved {
			locations = append(locations, location)
		}
	}
	sort.Strings(locations)
	if _, ok := byLocation[unshelved]; ok {
		locations = append(locations, unshelved)
	}

	var builder strings.Builder
	builder.WriteString("# Library\n")
	for _, location := range locations {
		fmt.Fprintf(&builder, "\n## %s\n\n", location)
		for _, name := range byLocation[location] {
			fmt.Fprintf(&builder, "- [[%s]]\n", name)
		}
	}
	return builder.String()
}

func authorNames(book *entities.Book) []string {
	names := make([]string, 0, len(book.Authors))
	for _, a := range book.Authors {
		names = append(names, a.Name)
	}
	return names
}

func categoryNames(book *entities.Book) []string {
	names := make([]string, 0, len(book.Categories))
	for _, c := range book.Categories {
		names = append(names, c.Name)
	}
	return names
}
