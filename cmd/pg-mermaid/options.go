package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	defaultHost       = "127.0.0.1"
	defaultPort       = "5432"
	defaultSchema     = "public"
	defaultOutputPath = "./database.md"
	defaultSSLMode    = "disable"
	defaultLogLevel   = "info"

	excludedTablesFlag = "excluded-tables"
)

// errUsage marks errors caused by invalid command-line input.
var errUsage = errors.New("invalid usage")

// Options holds the resolved command-line configuration.
type Options struct {
	DBName         string
	Username       string
	Password       string
	Host           string
	Port           int
	Schema         string
	OutputPath     string
	ExcludedTables []string
	SSLMode        string
	LiveURL        bool
	LogLevel       string
	ShowVersion    bool
	ShowHelp       bool

	// Warnings are emitted once logging is configured.
	Warnings []string
}

// tableList collects --excluded-tables values. A comma-separated value
// replaces everything collected so far and records a deprecation warning.
type tableList struct {
	tables   []string
	warnings []string
}

func (l *tableList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(l.tables, " ")
}

func (l *tableList) Set(value string) error {
	if strings.Contains(value, ",") {
		tables := lo.Compact(lo.Map(strings.Split(value, ","), func(table string, _ int) string {
			return strings.TrimSpace(table)
		}))
		l.warnings = append(l.warnings, fmt.Sprintf(
			"'--%s' flag with comma-separated list is deprecated, please use space-separated list instead ('--%s %s')",
			excludedTablesFlag, excludedTablesFlag, strings.Join(tables, " "),
		))
		l.tables = tables
		return nil
	}

	if value = strings.TrimSpace(value); value != "" {
		l.tables = append(l.tables, value)
	}
	return nil
}

// expandVariadic rewrites "--name a b c" into "--name a --name b --name c"
// so the flag package sees one value per occurrence.
func expandVariadic(args []string, name string) []string {
	expanded := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		expanded = append(expanded, arg)

		if arg == "--" {
			expanded = append(expanded, args[i+1:]...)
			break
		}

		bare := arg == "-"+name || arg == "--"+name
		inline := strings.HasPrefix(arg, "-"+name+"=") || strings.HasPrefix(arg, "--"+name+"=")
		if !bare && !inline {
			continue
		}

		if bare && i+1 < len(args) {
			i++
			expanded = append(expanded, args[i])
		}
		for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			expanded = append(expanded, "--"+name, args[i])
		}
	}

	return expanded
}

func newFlagSet(opts *Options, port *string, excluded *tableList) *flag.FlagSet {
	fs := flag.NewFlagSet("pg-mermaid", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&opts.DBName, "dbname", "", "database name to connect to")
	fs.StringVar(&opts.DBName, "d", "", "database name to connect to (short form)")

	fs.StringVar(&opts.Username, "username", "", "username to connect to the database")
	fs.StringVar(&opts.Username, "U", "", "username to connect to the database (short form)")

	fs.StringVar(&opts.Password, "password", "", "password (prefer the PGPASSWORD env var)")

	fs.StringVar(&opts.Host, "host", defaultHost, "host address of the database")
	fs.StringVar(&opts.Host, "h", defaultHost, "host address of the database (short form)")

	fs.StringVar(port, "port", defaultPort, "port number at which the instance is listening")
	fs.StringVar(port, "p", defaultPort, "port number at which the instance is listening (short form)")

	fs.StringVar(&opts.Schema, "schema", defaultSchema, "schema name to generate to")
	fs.StringVar(&opts.OutputPath, "output-path", defaultOutputPath, "output path to generate to ('-' for stdout)")
	fs.Var(excluded, excludedTablesFlag, "tables to exclude")
	fs.StringVar(&opts.SSLMode, "sslmode", defaultSSLMode, "SSL mode passed to the driver")
	fs.BoolVar(&opts.LiveURL, "live-url", false, "also print a Mermaid live editor link")
	fs.StringVar(&opts.LogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	fs.BoolVar(&opts.ShowVersion, "version", false, "show version information")
	fs.BoolVar(&opts.ShowVersion, "v", false, "show version information (short form)")
	fs.BoolVar(&opts.ShowHelp, "help", false, "show help information")

	return fs
}

// parseOptions parses args, then fills unset flags from the environment.
func parseOptions(args []string, getenv func(string) string) (*Options, error) {
	opts := &Options{}
	excluded := &tableList{}
	var port string

	fs := newFlagSet(opts, &port, excluded)
	if err := fs.Parse(expandVariadic(args, excludedTablesFlag)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			opts.ShowHelp = true
			return opts, nil
		}
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}

	opts.ExcludedTables = excluded.tables
	opts.Warnings = excluded.warnings

	if opts.ShowHelp || opts.ShowVersion {
		return opts, nil
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	fromEnv := func(target *string, env string, names ...string) {
		for _, name := range names {
			if set[name] {
				return
			}
		}
		if value := getenv(env); value != "" {
			*target = value
		}
	}

	fromEnv(&opts.DBName, "PGDATABASE", "dbname", "d")
	fromEnv(&opts.Username, "PGUSER", "username", "U")
	fromEnv(&opts.Password, "PGPASSWORD", "password")
	fromEnv(&opts.Host, "PGHOST", "host", "h")
	fromEnv(&port, "PGPORT", "port", "p")
	fromEnv(&opts.SSLMode, "PGSSLMODE", "sslmode")
	fromEnv(&opts.LogLevel, "PG_MERMAID_LOG_LEVEL", "log-level")

	var missing []string
	if opts.DBName == "" {
		missing = append(missing, "--dbname")
	}
	if opts.Username == "" {
		missing = append(missing, "--username")
	}
	if opts.Password == "" {
		missing = append(missing, "--password (or PGPASSWORD)")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: required option(s) not specified: %s", errUsage, strings.Join(missing, ", "))
	}

	portNumber, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid port %q", errUsage, port)
	}
	if portNumber < 1 || portNumber > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", errUsage, portNumber)
	}
	opts.Port = portNumber

	return opts, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `pg-mermaid - Generate a Mermaid entity-relationship diagram from a PostgreSQL schema

USAGE:
    pg-mermaid --dbname <DBNAME> --username <USERNAME> [OPTIONS]

OPTIONS:
    -d, --dbname <DBNAME>              database name to connect to
    -U, --username <USERNAME>          username to connect to the database
    -h, --host <HOSTNAME>              host address of the database (default: %s)
    -p, --port <PORT>                  port number at which the instance is listening (default: %s)
    --schema <SCHEMA>                  schema name to generate to (default: %s)
    --output-path <PATH>               output path to generate to, '-' for stdout (default: %s)
    --excluded-tables <TABLES...>      tables to exclude (space-separated)
    --sslmode <MODE>                   SSL mode passed to the driver (default: %s)
    --live-url                         also print a Mermaid live editor link
    --log-level <LEVEL>                debug, info, warn or error (default: %s)
    -v, --version                      show version
    --help                             show help

ENVIRONMENT VARIABLES:
    PGPASSWORD                         password to be used if the server demands password authentication
    PGDATABASE, PGUSER, PGHOST,
    PGPORT, PGSSLMODE                  fallbacks for the matching options
    PG_MERMAID_LOG_LEVEL               fallback for --log-level

    A .env file in the working directory is loaded if present.

EXAMPLES:
    $ PGPASSWORD=<password> pg-mermaid --dbname <dbname> --username <username>

    $ pg-mermaid -d app -U postgres --schema billing --excluded-tables schema_migrations audit_log

`, defaultHost, defaultPort, defaultSchema, defaultOutputPath, defaultSSLMode, defaultLogLevel)
}
