package generator

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/bastiensun/pg-mermaid/schema"
)

// Markdown wraps a diagram in a "Diagram" section and, when indexes is
// non-empty, appends an "Indexes" section listing each table's indexes.
// Tables with no index names are skipped. The result ends with a newline.
func Markdown(diagram string, indexes []schema.TableIndexes) string {
	sections := []string{generateDiagramSection(diagram)}

	if len(indexes) > 0 {
		sections = append(sections, generateIndexesSection(indexes))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

func generateDiagramSection(diagram string) string {
	return fmt.Sprintf("## Diagram\n\n```mermaid\n%s\n```", diagram)
}

func generateIndexesSection(tables []schema.TableIndexes) string {
	parts := []string{"## Indexes"}

	withIndexes := lo.Filter(tables, func(table schema.TableIndexes, _ int) bool {
		return len(table.Indexes) > 0
	})
	for _, table := range withIndexes {
		parts = append(parts, generateTableIndexesSubSection(table))
	}

	return strings.Join(parts, "\n\n")
}

func generateTableIndexesSubSection(table schema.TableIndexes) string {
	lines := []string{fmt.Sprintf("### `%s`", table.Name), ""}

	for _, index := range table.Indexes {
		lines = append(lines, fmt.Sprintf("- `%s`", index))
	}

	return strings.Join(lines, "\n")
}
