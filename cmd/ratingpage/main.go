// Package main provides the ratingpage command-line tool for turning XML ratings into Notion page payloads.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"ratingpage/internal/config"
	"ratingpage/internal/converter"
	"ratingpage/internal/formatter"
	"ratingpage/internal/logger"
)

const defaultPreviewWidth = 60

// app carries state shared between the Before hook and the actions.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg *config.Config
	log *logger.Logger
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) (*app, *cli.Command) {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	cmd := &cli.Command{
		Name:            "ratingpage",
		Usage:           "converts XML source ratings into Notion page payloads",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Before:          a.initialize,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "log-level", Usage: "override logging level (debug, info, warn, error)"},
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Parses an XML rating and prints the page payload (JSON)",
				ArgsUsage: "[SOURCE]",
				Action:    a.convert,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "database-id", Aliases: []string{"db"}, Sources: cli.EnvVars("NOTION_DATABASE_ID"),
						Usage: "target database `ID` (defaults to notion.database_id from configuration)"},
					&cli.BoolFlag{Name: "pretty", Usage: "indent JSON output"},
					&cli.BoolFlag{Name: "preview", Usage: "print the parsed rating as a table to stderr"},
					&cli.IntFlag{Name: "preview-width", Value: defaultPreviewWidth, Usage: "truncate preview values to `N` cells (0 disables)"},
				},
			},
			{
				Name:      "dumpconfig",
				Usage:     "Dumps the resolved configuration (YAML)",
				ArgsUsage: "[DESTINATION]",
				Action:    a.dumpConfig,
			},
		},
	}

	return a, cmd
}

func (a *app) initialize(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg := config.Default()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
		}

		cfg = loaded
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	a.cfg = cfg
	a.log = logger.NewLoggerWithWriter(cfg.Logging.Level, cfg.Logging.Format, a.stderr)
	a.log.Debug("Configuration ready", "config", cfg.String())

	return ctx, nil
}

func (a *app) convert(_ context.Context, cmd *cli.Command) error {
	databaseID := cmd.String("database-id")
	if databaseID == "" {
		databaseID = a.cfg.Notion.DatabaseID
	}

	source := cmd.Args().First()

	data, err := a.readSource(source)
	if err != nil {
		return err
	}

	schema, err := a.cfg.Schema()
	if err != nil {
		return fmt.Errorf("unable to resolve schema: %w", err)
	}

	result, err := converter.NewConverter(schema, a.log).Convert(string(data), databaseID)
	if err != nil {
		return fmt.Errorf("unable to convert %s: %w", sourceName(source), err)
	}

	if cmd.Bool("preview") {
		fmt.Fprintln(a.stderr, formatter.FormatRating(result.Rating, int(cmd.Int("preview-width"))))
	}

	enc := json.NewEncoder(a.stdout)
	enc.SetEscapeHTML(false)

	if cmd.Bool("pretty") {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(result.Page); err != nil {
		return fmt.Errorf("unable to write payload: %w", err)
	}

	a.log.Info("Payload ready", "source", sourceName(source), "name", result.Rating.Name, "database_id", databaseID)

	return nil
}

func (a *app) dumpConfig(_ context.Context, cmd *cli.Command) error {
	resolved, err := a.cfg.Resolved()
	if err != nil {
		return err
	}

	if dest := cmd.Args().First(); dest != "" {
		return resolved.SaveConfig(dest)
	}

	data, err := resolved.Dump()
	if err != nil {
		return err
	}

	_, err = a.stdout.Write(data)

	return err
}

func (a *app) readSource(source string) ([]byte, error) {
	if source == "" || source == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("unable to read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("unable to read source: %w", err)
	}

	return data, nil
}

func sourceName(source string) string {
	if source == "" || source == "-" {
		return "stdin"
	}

	return source
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a, cmd := newApp(os.Stdin, os.Stdout, os.Stderr)

	err := cmd.Run(ctx, os.Args)

	stop()

	if err != nil {
		if a.log != nil {
			a.log.Error("Program ended with error", "error", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		os.Exit(1)
	}
}
