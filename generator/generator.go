// Package generator renders introspected schema records as a Mermaid
// erDiagram and wraps the diagram in a Markdown document.
//
// Basic usage:
//
//	diagram := generator.Diagram(doc.Entities, doc.Relationships)
//	markdown := generator.Markdown(diagram, doc.Indexes)
//	os.WriteFile("database.md", []byte(markdown), 0644)
package generator

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/bastiensun/pg-mermaid/schema"
)

const (
	entityIndent    = "    "
	attributeIndent = "        "
)

// Diagram converts entities and relationships into Mermaid erDiagram text.
// Records are emitted in the order given. The result has no trailing newline.
func Diagram(entities []schema.Entity, relationships []schema.Relationship) string {
	sections := []string{"erDiagram"}

	if len(entities) > 0 {
		blocks := lo.Map(entities, func(entity schema.Entity, _ int) string {
			return generateEntity(entity)
		})
		sections = append(sections, strings.Join(blocks, "\n\n"))
	}

	if len(relationships) > 0 {
		lines := lo.Map(relationships, func(relationship schema.Relationship, _ int) string {
			return generateRelationship(relationship)
		})
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

// Generate is Diagram over a whole document.
func Generate(doc *schema.Document) string {
	return Diagram(doc.Entities, doc.Relationships)
}

func generateEntity(entity schema.Entity) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s%s {\n", entityIndent, entity.Name))
	for _, attribute := range entity.Attributes {
		generateAttribute(&builder, attribute)
	}
	builder.WriteString(entityIndent + "}")

	return builder.String()
}

func generateAttribute(builder *strings.Builder, attribute schema.Attribute) {
	builder.WriteString(fmt.Sprintf("%s%s %s", attributeIndent, attribute.Name, attribute.Type))

	if attribute.Key != schema.KeyNone {
		builder.WriteString(fmt.Sprintf(" %s", attribute.Key))
	}

	builder.WriteString(fmt.Sprintf(" \"%s\"\n", attribute.Comment))
}

func generateRelationship(relationship schema.Relationship) string {
	child := relationship.Child
	parent := relationship.Parent

	return fmt.Sprintf(`%s%s ||--o{ %s : "%s(%s) -> %s(%s)"`,
		entityIndent,
		parent.Entity,
		child.Entity,
		child.Entity,
		strings.Join(child.Attributes, ", "),
		parent.Entity,
		strings.Join(parent.Attributes, ", "),
	)
}
