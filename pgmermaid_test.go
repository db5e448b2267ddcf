package pgmermaid

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiensun/pg-mermaid/schema"
)

func testDocument() *schema.Document {
	return &schema.Document{
		Entities: []schema.Entity{
			{Name: "post", Attributes: []schema.Attribute{
				{Name: "id", Type: "uuid", Comment: "not null", Key: schema.KeyPrimary},
				{Name: "author_id", Type: "uuid", Comment: "null", Key: schema.KeyForeign},
			}},
			{Name: "user", Attributes: []schema.Attribute{
				{Name: "id", Type: "uuid", Comment: "not null", Key: schema.KeyPrimary},
			}},
		},
		Relationships: []schema.Relationship{
			{
				Child:  schema.Endpoint{Entity: "post", Attributes: []string{"author_id"}},
				Parent: schema.Endpoint{Entity: "user", Attributes: []string{"id"}},
			},
		},
		Indexes: []schema.TableIndexes{
			{Name: "post", Indexes: []string{"post_pkey"}},
			{Name: "user", Indexes: []string{"user_pkey"}},
		},
	}
}

func TestRender(t *testing.T) {
	expected := strings.Join([]string{
		"## Diagram",
		"",
		"```mermaid",
		"erDiagram",
		"",
		"    post {",
		`        id uuid PK "not null"`,
		`        author_id uuid FK "null"`,
		"    }",
		"",
		"    user {",
		`        id uuid PK "not null"`,
		"    }",
		"",
		`    user ||--o{ post : "post(author_id) -> user(id)"`,
		"```",
		"",
		"## Indexes",
		"",
		"### `post`",
		"",
		"- `post_pkey`",
		"",
		"### `user`",
		"",
		"- `user_pkey`",
		"",
	}, "\n")

	if result := Render(testDocument()); result != expected {
		t.Errorf("Render() =\n%s\nwant\n%s", result, expected)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	expected := "## Diagram\n\n```mermaid\nerDiagram\n```\n"

	if result := Render(&schema.Document{}); result != expected {
		t.Errorf("Render() = %q, want %q", result, expected)
	}
}

func TestWriteMarkdown(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "database.md")
	markdown := Render(testDocument())

	if err := WriteMarkdown(filename, markdown); err != nil {
		t.Fatalf("WriteMarkdown returned error: %v", err)
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}
	if string(content) != markdown {
		t.Errorf("Written content differs from rendered markdown")
	}
}

func TestWriteMarkdownMissingDirectory(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "missing", "database.md")

	if err := WriteMarkdown(filename, "content"); err == nil {
		t.Error("Expected an error when the parent directory does not exist")
	}
}

func TestConfigOptionsNil(t *testing.T) {
	var config *Config
	if opts := config.options(); opts != nil {
		t.Errorf("Expected no options for nil config, got %d", len(opts))
	}
}
