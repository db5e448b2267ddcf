// Package introspect reads entity, relationship and index metadata from a
// PostgreSQL schema through information_schema and pg_catalog.
//
// Basic usage:
//
//	doc, err := introspect.Database(ctx, db,
//	    introspect.WithSchema("public"),
//	    introspect.WithExcludedTables("schema_migrations"),
//	)
//
// Each query is also available on its own:
//
//	entities, err := introspect.Entities(ctx, db)
//	relationships, err := introspect.Relationships(ctx, db)
//	indexes, err := introspect.Indexes(ctx, db)
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"

	"github.com/bastiensun/pg-mermaid/schema"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Database introspects one PostgreSQL schema and returns its document.
// The three queries run sequentially on db.
func Database(ctx context.Context, db Querier, opts ...Option) (*schema.Document, error) {
	o := applyOptions(opts)

	entities, err := queryEntities(ctx, db, o)
	if err != nil {
		return nil, fmt.Errorf("failed to get entities for schema %s: %w", o.schema, err)
	}

	relationships, err := queryRelationships(ctx, db, o)
	if err != nil {
		return nil, fmt.Errorf("failed to get relationships for schema %s: %w", o.schema, err)
	}

	indexes, err := queryIndexes(ctx, db, o)
	if err != nil {
		return nil, fmt.Errorf("failed to get indexes for schema %s: %w", o.schema, err)
	}

	return &schema.Document{
		Entities:      entities,
		Relationships: relationships,
		Indexes:       indexes,
	}, nil
}

// FromConnectionString connects to a PostgreSQL database and introspects it.
// This is a convenience function that handles connection management.
func FromConnectionString(ctx context.Context, connStr string, opts ...Option) (*schema.Document, error) {
	db, err := OpenConnectionString(ctx, connStr)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return Database(ctx, db, opts...)
}

// Entities returns the schema's tables with their attributes. Tables are
// ordered by byte-wise name comparison, not by the server collation.
func Entities(ctx context.Context, db Querier, opts ...Option) ([]schema.Entity, error) {
	return queryEntities(ctx, db, applyOptions(opts))
}

// Relationships returns one edge per foreign key constraint in the schema.
// Constraints inherited by partitions are skipped. Table names are compared
// byte-wise, not by the server collation.
func Relationships(ctx context.Context, db Querier, opts ...Option) ([]schema.Relationship, error) {
	return queryRelationships(ctx, db, applyOptions(opts))
}

// Indexes returns index names grouped by table. Tables and index names are
// ordered by byte-wise comparison, not by the server collation.
func Indexes(ctx context.Context, db Querier, opts ...Option) ([]schema.TableIndexes, error) {
	return queryIndexes(ctx, db, applyOptions(opts))
}

const entitiesQuery = `
	SELECT
		c.table_name,
		c.column_name,
		c.data_type,
		c.udt_name,
		c.is_nullable,
		COALESCE(tc.constraint_type, '') AS constraint_type
	FROM information_schema.columns c
	LEFT JOIN information_schema.key_column_usage kcu
		ON kcu.table_schema = c.table_schema
		AND kcu.table_name = c.table_name
		AND kcu.column_name = c.column_name
	LEFT JOIN information_schema.table_constraints tc
		ON tc.table_schema = kcu.table_schema
		AND tc.table_name = kcu.table_name
		AND tc.constraint_name = kcu.constraint_name
	WHERE c.table_schema = $1
		AND c.table_name::text != ALL($2::text[])
	ORDER BY c.table_name, c.ordinal_position
`

// attributeRow keeps the raw catalog values needed to order an attribute.
type attributeRow struct {
	attribute  schema.Attribute
	isNullable string
	sortType   string
}

func queryEntities(ctx context.Context, db Querier, o *options) ([]schema.Entity, error) {
	rows, err := db.QueryContext(ctx, entitiesQuery, o.schema, pq.Array(o.excludedTables))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tableNames []string
	byTable := make(map[string][]attributeRow)
	for rows.Next() {
		var tableName, dataType, udtName, constraintType string
		var row attributeRow

		err := rows.Scan(
			&tableName,
			&row.attribute.Name,
			&dataType,
			&udtName,
			&row.isNullable,
			&constraintType,
		)
		if err != nil {
			return nil, err
		}

		row.attribute.Type = o.typeMapper.MapType(dataType, udtName)
		row.attribute.Comment = schema.CommentFromNullable(row.isNullable)
		row.attribute.Key = schema.KeyFromConstraintType(constraintType)
		row.sortType = sortableType(dataType, udtName)

		if _, exists := byTable[tableName]; !exists {
			tableNames = append(tableNames, tableName)
		}
		byTable[tableName] = append(byTable[tableName], row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(tableNames)

	result := make([]schema.Entity, 0, len(tableNames))
	for _, tableName := range tableNames {
		result = append(result, schema.Entity{
			Name:       tableName,
			Attributes: orderAttributes(byTable[tableName]),
		})
	}

	o.logger.Debugw("introspected entities", "schema", o.schema, "count", len(result))

	return result, nil
}

func keyRank(key schema.Key) int {
	switch key {
	case schema.KeyPrimary:
		return 1
	case schema.KeyForeign:
		return 2
	default:
		return 3
	}
}

// orderAttributes sorts primary keys first, then foreign keys, then the
// rest; ties break on nullability (not null first), type, then name.
func orderAttributes(rows []attributeRow) []schema.Attribute {
	sorted := make([]attributeRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if ra, rb := keyRank(a.attribute.Key), keyRank(b.attribute.Key); ra != rb {
			return ra < rb
		}
		if a.isNullable != b.isNullable {
			return a.isNullable < b.isNullable
		}
		if a.sortType != b.sortType {
			return a.sortType < b.sortType
		}
		return a.attribute.Name < b.attribute.Name
	})

	attributes := make([]schema.Attribute, 0, len(sorted))
	for _, row := range sorted {
		attributes = append(attributes, row.attribute)
	}
	return attributes
}

const relationshipsQuery = `
	SELECT
		con.oid::bigint,
		con.conname,
		child.relname,
		child_attribute.attname,
		parent.relname,
		parent_attribute.attname
	FROM pg_constraint con
	JOIN pg_namespace ns ON ns.oid = con.connamespace
	JOIN pg_class child ON child.oid = con.conrelid
	JOIN pg_class parent ON parent.oid = con.confrelid
	CROSS JOIN LATERAL unnest(con.conkey, con.confkey)
		WITH ORDINALITY AS k(child_attnum, parent_attnum, key_position)
	JOIN pg_attribute child_attribute
		ON child_attribute.attrelid = con.conrelid
		AND child_attribute.attnum = k.child_attnum
	JOIN pg_attribute parent_attribute
		ON parent_attribute.attrelid = con.confrelid
		AND parent_attribute.attnum = k.parent_attnum
	WHERE con.contype = 'f'
		AND con.conparentid = 0
		AND ns.nspname = $1
		AND child.relname::text != ALL($2::text[])
		AND parent.relname::text != ALL($2::text[])
	ORDER BY child.relname, con.conname, con.oid, k.key_position
`

type relationshipRow struct {
	oid          int64
	constraint   string
	relationship schema.Relationship
}

func queryRelationships(ctx context.Context, db Querier, o *options) ([]schema.Relationship, error) {
	rows, err := db.QueryContext(ctx, relationshipsQuery, o.schema, pq.Array(o.excludedTables))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Constraint names are not unique, so rows are grouped by constraint oid.
	var grouped []*relationshipRow
	byConstraint := make(map[int64]*relationshipRow)
	for rows.Next() {
		var constraintOID int64
		var constraintName, childTable, childColumn, parentTable, parentColumn string

		err := rows.Scan(&constraintOID, &constraintName, &childTable, &childColumn, &parentTable, &parentColumn)
		if err != nil {
			return nil, err
		}

		row, exists := byConstraint[constraintOID]
		if !exists {
			row = &relationshipRow{
				oid:        constraintOID,
				constraint: constraintName,
				relationship: schema.Relationship{
					Child:  schema.Endpoint{Entity: childTable},
					Parent: schema.Endpoint{Entity: parentTable},
				},
			}
			byConstraint[constraintOID] = row
			grouped = append(grouped, row)
		}
		row.relationship.Child.Attributes = append(row.relationship.Child.Attributes, childColumn)
		row.relationship.Parent.Attributes = append(row.relationship.Parent.Attributes, parentColumn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortRelationships(grouped)

	result := make([]schema.Relationship, 0, len(grouped))
	for _, row := range grouped {
		result = append(result, row.relationship)
	}

	o.logger.Debugw("introspected relationships", "schema", o.schema, "count", len(result))

	return result, nil
}

// sortRelationships orders edges by parent table, child table, child
// attributes, constraint name and finally constraint oid.
func sortRelationships(rows []*relationshipRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].relationship, rows[j].relationship
		if a.Parent.Entity != b.Parent.Entity {
			return a.Parent.Entity < b.Parent.Entity
		}
		if a.Child.Entity != b.Child.Entity {
			return a.Child.Entity < b.Child.Entity
		}
		childA := strings.Join(a.Child.Attributes, ", ")
		childB := strings.Join(b.Child.Attributes, ", ")
		if childA != childB {
			return childA < childB
		}
		if rows[i].constraint != rows[j].constraint {
			return rows[i].constraint < rows[j].constraint
		}
		return rows[i].oid < rows[j].oid
	})
}

const indexesQuery = `
	SELECT tablename, indexname
	FROM pg_indexes
	WHERE schemaname = $1
		AND tablename::text != ALL($2::text[])
	ORDER BY tablename, indexname
`

func queryIndexes(ctx context.Context, db Querier, o *options) ([]schema.TableIndexes, error) {
	rows, err := db.QueryContext(ctx, indexesQuery, o.schema, pq.Array(o.excludedTables))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tableNames []string
	byTable := make(map[string][]string)
	for rows.Next() {
		var tableName, indexName string
		if err := rows.Scan(&tableName, &indexName); err != nil {
			return nil, err
		}

		if _, exists := byTable[tableName]; !exists {
			tableNames = append(tableNames, tableName)
		}
		byTable[tableName] = append(byTable[tableName], indexName)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Strings(tableNames)

	result := make([]schema.TableIndexes, 0, len(tableNames))
	for _, tableName := range tableNames {
		names := byTable[tableName]
		sort.Strings(names)
		result = append(result, schema.TableIndexes{Name: tableName, Indexes: names})
	}

	o.logger.Debugw("introspected indexes", "schema", o.schema, "tables", len(result))

	return result, nil
}
