// Package pgmermaid generates entity-relationship documentation for
// PostgreSQL schemas as Markdown with an embedded Mermaid erDiagram.
//
// The package introspects one schema through information_schema and
// pg_catalog, extracting tables and their columns (with primary and
// foreign key roles), foreign key relationships and index names. It then
// renders a "Diagram" section and an optional "Indexes" section.
//
// # Basic Usage
//
// Generate Markdown from a connection string:
//
//	import pgmermaid "github.com/bastiensun/pg-mermaid"
//
//	markdown, err := pgmermaid.GenerateFromConnectionString(ctx, connStr, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(markdown)
//
// # Configuration
//
// Use Config to choose the schema and leave tables out:
//
//	config := &pgmermaid.Config{
//	    Schema:         "billing",
//	    ExcludedTables: []string{"schema_migrations"},
//	}
//	markdown, err := pgmermaid.GenerateFromConnectionString(ctx, connStr, config)
//
// # Working with the Document Directly
//
//	doc, err := introspect.Database(ctx, db, introspect.WithSchema("public"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	diagram := generator.Diagram(doc.Entities, doc.Relationships)
//	link, _ := generator.LiveEditorURL(diagram)
//	markdown := generator.Markdown(diagram, doc.Indexes)
//
// # Subpackages
//
//   - github.com/bastiensun/pg-mermaid/schema - Entity, relationship and index records
//   - github.com/bastiensun/pg-mermaid/introspect - Catalog queries with functional options
//   - github.com/bastiensun/pg-mermaid/generator - Mermaid and Markdown rendering
package pgmermaid
