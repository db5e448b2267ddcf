package pgmermaid

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/bastiensun/pg-mermaid/generator"
	"github.com/bastiensun/pg-mermaid/introspect"
	"github.com/bastiensun/pg-mermaid/schema"
)

// Config selects what gets documented.
type Config struct {
	// Schema is the database schema to introspect; defaults to "public".
	Schema string
	// ExcludedTables are left out of entities, relationships and indexes.
	ExcludedTables []string
}

func (c *Config) options() []introspect.Option {
	if c == nil {
		return nil
	}
	return []introspect.Option{
		introspect.WithSchema(c.Schema),
		introspect.WithExcludedTables(c.ExcludedTables...),
	}
}

// Render turns an introspected document into the final Markdown.
func Render(doc *schema.Document) string {
	diagram := generator.Diagram(doc.Entities, doc.Relationships)
	return generator.Markdown(diagram, doc.Indexes)
}

// Generate introspects db and returns the Markdown document.
func Generate(ctx context.Context, db *sql.DB, config *Config) (string, error) {
	doc, err := introspect.Database(ctx, db, config.options()...)
	if err != nil {
		return "", fmt.Errorf("failed to introspect database: %w", err)
	}

	return Render(doc), nil
}

// GenerateFromConnectionString opens connStr, generates the document and
// closes the connection.
func GenerateFromConnectionString(ctx context.Context, connStr string, config *Config) (string, error) {
	db, err := introspect.OpenConnectionString(ctx, connStr)
	if err != nil {
		return "", err
	}
	defer db.Close()

	return Generate(ctx, db, config)
}

// WriteToFile generates the document from db and writes it to filename.
func WriteToFile(ctx context.Context, db *sql.DB, filename string, config *Config) error {
	markdown, err := Generate(ctx, db, config)
	if err != nil {
		return err
	}

	return WriteMarkdown(filename, markdown)
}

// WriteMarkdown writes a rendered document to filename.
func WriteMarkdown(filename, markdown string) error {
	if err := os.WriteFile(filename, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
