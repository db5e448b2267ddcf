package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	pgmermaid "github.com/bastiensun/pg-mermaid"
	"github.com/bastiensun/pg-mermaid/generator"
	"github.com/bastiensun/pg-mermaid/internal/logger"
	"github.com/bastiensun/pg-mermaid/introspect"
)

const (
	version = "1.0.0"

	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Variables already present in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "Warning: failed to load .env: %v\n", err)
	}

	opts, err := parseOptions(args, os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printUsage(stderr)
		return exitUsage
	}

	if opts.ShowHelp {
		printUsage(stdout)
		return exitOK
	}

	if opts.ShowVersion {
		fmt.Fprintf(stdout, "pg-mermaid version %s\n", version)
		return exitOK
	}

	logger.Initialize(logger.Config{LogLevel: opts.LogLevel, Output: stderr})
	defer logger.Sync()

	for _, warning := range opts.Warnings {
		logger.Sugar.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := generate(ctx, opts, stdout, stderr); err != nil {
		logger.Sugar.Errorw("failed to generate diagram", "error", err)
		return exitError
	}

	return exitOK
}

func generate(ctx context.Context, opts *Options, stdout, stderr io.Writer) error {
	info := introspect.ConnInfo{
		Host:     opts.Host,
		Port:     opts.Port,
		Username: opts.Username,
		Password: opts.Password,
		DBName:   opts.DBName,
		SSLMode:  opts.SSLMode,
	}

	logger.Sugar.Debugw("connecting to database", "url", info.Redacted())

	db, err := introspect.Open(ctx, info)
	if err != nil {
		return err
	}
	defer db.Close()

	doc, err := introspect.Database(ctx, db,
		introspect.WithSchema(opts.Schema),
		introspect.WithExcludedTables(opts.ExcludedTables...),
		introspect.WithLogger(logger.Sugar),
	)
	if err != nil {
		return fmt.Errorf("failed to introspect database: %w", err)
	}

	logger.Sugar.Debugw("introspected schema",
		"schema", opts.Schema,
		"tables", doc.TableNames(),
		"relationships", len(doc.Relationships),
	)

	markdown := pgmermaid.Render(doc)

	// The link goes to stderr when stdout carries the document.
	linkOut := stdout
	if opts.OutputPath == "-" {
		fmt.Fprint(stdout, markdown)
		linkOut = stderr
	} else {
		if err := pgmermaid.WriteMarkdown(opts.OutputPath, markdown); err != nil {
			return err
		}

		path, err := filepath.Abs(opts.OutputPath)
		if err != nil {
			path = opts.OutputPath
		}
		fmt.Fprintf(stdout, "Diagram was generated successfully at '%s'\n", path)
	}

	if opts.LiveURL {
		link, err := generator.LiveEditorURL(generator.Generate(doc))
		if err != nil {
			return fmt.Errorf("failed to build live editor link: %w", err)
		}
		fmt.Fprintln(linkOut, link)
	}

	return nil
}
