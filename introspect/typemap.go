package introspect

import "strings"

// TypeMapper converts an information_schema column type into the type
// shown in the diagram. Implement this interface to customize rendering.
type TypeMapper interface {
	// MapType converts a column type to a diagram type string.
	// dataType is information_schema.columns.data_type (e.g. "ARRAY", "USER-DEFINED", "integer")
	// udtName is the underlying type name (e.g. "_text", "role", "int4")
	MapType(dataType, udtName string) string
}

// PostgreSQLTypeMapper renders types with FormatType.
// It supports overrides via the CustomMappings field.
type PostgreSQLTypeMapper struct {
	// CustomMappings allows overriding the rendered type.
	// Keys are PostgreSQL type names (case-insensitive), matched against
	// udt_name first and data_type second. Spaces in values become
	// underscores.
	CustomMappings map[string]string
}

// NewPostgreSQLTypeMapper creates a new TypeMapper with optional custom mappings.
//
// Example:
//
//	mapper := introspect.NewPostgreSQLTypeMapper(map[string]string{
//	    "citext": "text",
//	    "ltree":  "path",
//	})
func NewPostgreSQLTypeMapper(customMappings map[string]string) *PostgreSQLTypeMapper {
	normalized := make(map[string]string, len(customMappings))
	for name, mapped := range customMappings {
		normalized[strings.ToLower(name)] = mapped
	}
	return &PostgreSQLTypeMapper{CustomMappings: normalized}
}

// MapType implements TypeMapper.
func (m *PostgreSQLTypeMapper) MapType(dataType, udtName string) string {
	if m.CustomMappings != nil {
		if mapped, ok := m.CustomMappings[strings.ToLower(udtName)]; ok {
			return singleWord(mapped)
		}
		if mapped, ok := m.CustomMappings[strings.ToLower(dataType)]; ok {
			return singleWord(mapped)
		}
	}
	return FormatType(dataType, udtName)
}

// singleWord makes name usable as a Mermaid attribute type.
func singleWord(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

// FormatType renders a column type the way Mermaid attribute types must
// look: a single word.
//
//   - arrays become the element type followed by "[]" ("_text" -> "text[]")
//   - user-defined types (enums, domains, extensions) use their udt name
//   - everything else is data_type with spaces replaced by underscores
func FormatType(dataType, udtName string) string {
	switch dataType {
	case "ARRAY":
		return strings.TrimPrefix(udtName, "_") + "[]"
	case "USER-DEFINED":
		return udtName
	default:
		return singleWord(dataType)
	}
}

// sortableType is the type used to order attributes. Built-in multi-word
// types keep their spaces here.
func sortableType(dataType, udtName string) string {
	switch dataType {
	case "ARRAY", "USER-DEFINED":
		return FormatType(dataType, udtName)
	default:
		return dataType
	}
}
