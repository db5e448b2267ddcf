package generator

import (
	"strings"
	"testing"

	"github.com/bastiensun/pg-mermaid/schema"
)

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

func TestDiagramEntities(t *testing.T) {
	tests := []struct {
		name     string
		entities []schema.Entity
		expected string
	}{
		{
			"several entities",
			[]schema.Entity{
				{Name: "category"},
				{Name: "post", Attributes: []schema.Attribute{
					{Name: "id", Type: "uuid", Comment: "not null", Key: schema.KeyPrimary},
					{Name: "author_id", Type: "uuid", Comment: "null", Key: schema.KeyForeign},
				}},
				{Name: "user", Attributes: []schema.Attribute{
					{Name: "id", Type: "uuid", Comment: "null"},
				}},
			},
			lines(
				"erDiagram",
				"",
				"    category {",
				"    }",
				"",
				"    post {",
				`        id uuid PK "not null"`,
				`        author_id uuid FK "null"`,
				"    }",
				"",
				"    user {",
				`        id uuid "null"`,
				"    }",
			),
		},
		{
			"single entity",
			[]schema.Entity{
				{Name: "post", Attributes: []schema.Attribute{
					{Name: "id", Type: "uuid", Comment: "null"},
				}},
			},
			lines(
				"erDiagram",
				"",
				"    post {",
				`        id uuid "null"`,
				"    }",
			),
		},
		{"empty", []schema.Entity{}, "erDiagram"},
		{"nil", nil, "erDiagram"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Diagram(tt.entities, nil)
			if result != tt.expected {
				t.Errorf("Diagram() =\n%s\nwant\n%s", result, tt.expected)
			}
		})
	}
}

func TestDiagramRelationships(t *testing.T) {
	tests := []struct {
		name          string
		relationships []schema.Relationship
		expected      string
	}{
		{
			"composite and simple",
			[]schema.Relationship{
				{
					Child:  schema.Endpoint{Entity: "post1", Attributes: []string{"author_id1", "author_id2"}},
					Parent: schema.Endpoint{Entity: "user1", Attributes: []string{"id1", "id2"}},
				},
				{
					Child:  schema.Endpoint{Entity: "post2", Attributes: []string{"author_id"}},
					Parent: schema.Endpoint{Entity: "user2", Attributes: []string{"id"}},
				},
			},
			lines(
				"erDiagram",
				"",
				`    user1 ||--o{ post1 : "post1(author_id1, author_id2) -> user1(id1, id2)"`,
				`    user2 ||--o{ post2 : "post2(author_id) -> user2(id)"`,
			),
		},
		{
			"single",
			[]schema.Relationship{
				{
					Child:  schema.Endpoint{Entity: "post", Attributes: []string{"author_id"}},
					Parent: schema.Endpoint{Entity: "user", Attributes: []string{"id"}},
				},
			},
			lines(
				"erDiagram",
				"",
				`    user ||--o{ post : "post(author_id) -> user(id)"`,
			),
		},
		{"empty", []schema.Relationship{}, "erDiagram"},
		{"nil", nil, "erDiagram"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Diagram(nil, tt.relationships)
			if result != tt.expected {
				t.Errorf("Diagram() =\n%s\nwant\n%s", result, tt.expected)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	doc := &schema.Document{
		Entities: []schema.Entity{
			{Name: "post", Attributes: []schema.Attribute{{Name: "id", Type: "uuid", Comment: "null"}}},
			{Name: "user", Attributes: []schema.Attribute{{Name: "id", Type: "uuid", Comment: "null"}}},
		},
		Relationships: []schema.Relationship{
			{
				Child:  schema.Endpoint{Entity: "post", Attributes: []string{"author_id"}},
				Parent: schema.Endpoint{Entity: "user", Attributes: []string{"id"}},
			},
		},
	}

	expected := lines(
		"erDiagram",
		"",
		"    post {",
		`        id uuid "null"`,
		"    }",
		"",
		"    user {",
		`        id uuid "null"`,
		"    }",
		"",
		`    user ||--o{ post : "post(author_id) -> user(id)"`,
	)

	if result := Generate(doc); result != expected {
		t.Errorf("Generate() =\n%s\nwant\n%s", result, expected)
	}
}
