package introspect

import (
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultSchema is introspected when WithSchema is not given.
const DefaultSchema = "public"

// Option configures introspection behavior.
type Option func(*options)

type options struct {
	schema         string
	excludedTables []string
	typeMapper     TypeMapper
	logger         *zap.SugaredLogger
}

func defaultOptions() *options {
	return &options{
		schema:         DefaultSchema,
		excludedTables: []string{},
		typeMapper:     NewPostgreSQLTypeMapper(nil),
		logger:         zap.NewNop().Sugar(),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSchema specifies which database schema to introspect.
// If not specified, or empty, defaults to "public".
func WithSchema(name string) Option {
	return func(o *options) {
		if name != "" {
			o.schema = name
		}
	}
}

// WithExcludedTables specifies tables left out of every query.
// Empty names are ignored. Tables that do not exist are harmless.
func WithExcludedTables(tables ...string) Option {
	return func(o *options) {
		o.excludedTables = lo.Uniq(lo.Compact(append(o.excludedTables, tables...)))
	}
}

// WithTypeMapper sets a custom type mapper for rendering column types.
func WithTypeMapper(mapper TypeMapper) Option {
	return func(o *options) {
		if mapper != nil {
			o.typeMapper = mapper
		}
	}
}

// WithTypeMappings provides custom type mappings as a simple map.
// Keys are PostgreSQL type names (case-insensitive), values are rendered types.
func WithTypeMappings(mappings map[string]string) Option {
	return func(o *options) {
		o.typeMapper = NewPostgreSQLTypeMapper(mappings)
	}
}

// WithLogger sets the logger used for debug output. Defaults to a no-op logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
