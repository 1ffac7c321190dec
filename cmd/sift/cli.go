package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/sift/internal/api"
	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/errors"
	"github.com/hpungsan/sift/internal/filter"
	"github.com/hpungsan/sift/internal/logger"
	"github.com/hpungsan/sift/internal/ops"
)

// maxStdinBytes bounds piped input; a character is at most 4 UTF-8 bytes.
func maxStdinBytes(cfg *config.Config) int64 {
	if cfg == nil || cfg.ValueMaxChars <= 0 {
		return 4 * int64(config.DefaultConfig().ValueMaxChars)
	}
	return 4 * int64(cfg.ValueMaxChars)
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "sift",
		Usage:   "String analysis store",
		Version: Version,
		Commands: []*cli.Command{
			analyzeCmd(cfg),
			createCmd(db, cfg),
			fetchCmd(db, cfg),
			deleteCmd(db, cfg),
			listCmd(db),
			filterCmd(db),
			queryCmd(db),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// analyzeCmd creates the analyze command.
func analyzeCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Print the properties of a value without storing it",
		ArgsUsage: "[value]",
		Action: func(c *cli.Context) error {
			value, err := valueArg(c, cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Analyze(ops.AnalyzeInput{Value: value})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// createCmd creates the create command.
func createCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Analyze and store a value (argument, or piped via stdin)",
		ArgsUsage: "[value]",
		Action: func(c *cli.Context) error {
			value, err := valueArg(c, cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Create(c.Context, db, cfg, ops.CreateInput{Value: value})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a stored value and its properties",
		ArgsUsage: "[value]",
		Action: func(c *cli.Context) error {
			value, err := valueArg(c, cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Fetch(c.Context, db, ops.FetchInput{Value: value})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Permanently delete a stored value",
		ArgsUsage: "[value]",
		Action: func(c *cli.Context) error {
			value, err := valueArg(c, cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Delete(c.Context, db, ops.DeleteInput{Value: value})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List every stored value in insertion order",
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, db)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// filterCmd creates the filter command. Flags go through the same parser as
// the HTTP query parameters.
func filterCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "filter",
		Usage: "List stored values matching property filters",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "palindrome", Aliases: []string{"p"}, Usage: "true|false"},
			&cli.StringFlag{Name: "min-length", Usage: "Minimum length, inclusive"},
			&cli.StringFlag{Name: "max-length", Usage: "Maximum length, inclusive"},
			&cli.StringFlag{Name: "word-count", Aliases: []string{"w"}, Usage: "Exact word count"},
			&cli.StringFlag{Name: "contains", Aliases: []string{"c"}, Usage: "A single character the value must contain"},
		},
		Action: func(c *cli.Context) error {
			params := url.Values{}
			for flag, param := range map[string]string{
				"palindrome": filter.ParamIsPalindrome,
				"min-length": filter.ParamMinLength,
				"max-length": filter.ParamMaxLength,
				"word-count": filter.ParamWordCount,
				"contains":   filter.ParamContainsCharacter,
			} {
				if c.IsSet(flag) {
					params.Set(param, c.String(flag))
				}
			}

			set, err := filter.FromParams(params)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Filter(c.Context, db, ops.FilterInput{Filters: set})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// queryCmd creates the query command.
func queryCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     `List stored values matching a natural language query, e.g. "single word palindromes"`,
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")

			output, err := ops.Query(c.Context, db, ops.QueryInput{Query: query})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Interface to listen on (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on (default from config)"},
			&cli.BoolFlag{Name: "log-json", Usage: "Write JSON logs"},
			&cli.StringFlag{Name: "log-level", Usage: "debug|info|warn|error"},
		},
		Action: func(c *cli.Context) error {
			serveCfg := *cfg
			if c.IsSet("bind") {
				serveCfg.Bind = c.String("bind")
			}
			if c.IsSet("port") {
				port := c.Int("port")
				if port < 1 || port > 65535 {
					return outputError(errors.NewInvalidInput("port must be between 1 and 65535"))
				}
				serveCfg.Port = port
			}
			if c.Bool("log-json") {
				serveCfg.LogJSON = true
			}
			if c.IsSet("log-level") {
				serveCfg.LogLevel = c.String("log-level")
			}

			log, err := logger.New(serveCfg.LogJSON, serveCfg.LogLevel)
			if err != nil {
				return outputError(errors.NewInvalidInput(err.Error()))
			}
			defer func() { _ = log.Sync() }()

			srv := api.NewServer(db, &serveCfg, log, Version)
			if err := api.Run(srv, log); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// valueArg returns the single positional argument, or piped stdin when there
// is none.
func valueArg(c *cli.Context, cfg *config.Config) (string, error) {
	switch c.NArg() {
	case 0:
		if !stdinHasData() {
			return "", errors.NewInvalidInput("value is required (pass it as an argument or pipe it via stdin)")
		}
		return readStdin(maxStdinBytes(cfg))
	case 1:
		return c.Args().First(), nil
	default:
		return "", errors.NewInvalidInput(fmt.Sprintf("expected one value, got %d arguments (quote values containing spaces)", c.NArg()))
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	sErr := errors.As(err)
	msg := sErr.Message
	if sErr.Code == errors.ErrInternal {
		if cause, ok := sErr.Details["internal_error"]; ok {
			msg = fmt.Sprint(cause)
		}
	}
	return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, msg), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads at most limit bytes from stdin. One trailing newline is
// dropped so `echo value | sift create` stores "value".
func readStdin(limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, limit+1))
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if int64(len(data)) > limit {
		return "", errors.NewBodyTooLarge(limit)
	}
	s := string(data)
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

