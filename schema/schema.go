// Package schema defines the records extracted from a PostgreSQL catalog.
// These types are shared by the introspect and generator packages.
package schema

import "sort"

// Key is the role a column plays in a table constraint.
type Key string

const (
	// KeyNone marks a column that is neither a primary nor a foreign key.
	KeyNone Key = ""
	// KeyPrimary marks a primary key column.
	KeyPrimary Key = "PK"
	// KeyForeign marks a foreign key column.
	KeyForeign Key = "FK"
)

const (
	// CommentNull is the comment shown for a nullable column.
	CommentNull = "null"
	// CommentNotNull is the comment shown for a column declared not null.
	CommentNotNull = "not null"
)

// Document holds everything introspected from one database schema.
type Document struct {
	// Entities contains one entry per table, ordered by table name.
	Entities []Entity
	// Relationships contains one entry per foreign key constraint.
	Relationships []Relationship
	// Indexes groups index names by table, ordered by table name.
	Indexes []TableIndexes
}

// Entity represents a table and its ordered attributes.
type Entity struct {
	// Name is the table name without schema qualification.
	Name string
	// Attributes are ordered primary keys first, then foreign keys, then the rest.
	Attributes []Attribute
}

// Attribute represents a column as it appears in the diagram.
type Attribute struct {
	// Name is the column name.
	Name string
	// Type is the rendered type (e.g. "uuid", "text[]", "timestamp_without_time_zone").
	Type string
	// Comment is either CommentNull or CommentNotNull.
	Comment string
	// Key is the constraint role of the column, KeyNone if it has none.
	Key Key
}

// Endpoint is one side of a relationship.
type Endpoint struct {
	// Entity is the table name.
	Entity string
	// Attributes lists the constrained column names in constraint order.
	Attributes []string
}

// Relationship represents a single foreign key edge, possibly composite.
type Relationship struct {
	// Child is the referencing table.
	Child Endpoint
	// Parent is the referenced table.
	Parent Endpoint
}

// TableIndexes lists the index names defined on a table.
type TableIndexes struct {
	// Name is the table name.
	Name string
	// Indexes is sorted alphabetically.
	Indexes []string
}

// KeyFromConstraintType maps an information_schema constraint type to a Key.
// Unique and check constraints carry no key.
func KeyFromConstraintType(constraintType string) Key {
	switch constraintType {
	case "PRIMARY KEY":
		return KeyPrimary
	case "FOREIGN KEY":
		return KeyForeign
	default:
		return KeyNone
	}
}

// CommentFromNullable maps information_schema's is_nullable to an attribute comment.
func CommentFromNullable(isNullable string) string {
	if isNullable == "YES" {
		return CommentNull
	}
	return CommentNotNull
}

// TableNames returns the distinct table names referenced by the document's
// entities and index groups, sorted.
func (d *Document) TableNames() []string {
	seen := make(map[string]bool)
	for _, entity := range d.Entities {
		seen[entity.Name] = true
	}
	for _, table := range d.Indexes {
		seen[table.Name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
