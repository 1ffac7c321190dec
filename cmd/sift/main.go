package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpungsan/sift/internal/config"
	"github.com/hpungsan/sift/internal/db"
	"github.com/hpungsan/sift/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// runMode is what a process invocation should do.
type runMode int

const (
	modeMCP     runMode = iota // stdio MCP server
	modeBanner                 // interactive, no args
	modeInfo                   // --help / --version, no store needed
	modeCLI                    // known subcommand
	modeUnknown                // unknown argument on a terminal
)

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"analyze": true, "create": true, "fetch": true, "delete": true,
	"list": true, "filter": true, "query": true, "serve": true,
}

var infoArgs = map[string]bool{
	"--help": true, "-h": true, "--version": true, "-v": true, "help": true,
}

// detectMode picks the run mode from the arguments and whether stdin is
// a terminal. Anything unrecognized on piped stdin is left to the MCP server.
func detectMode(args []string, terminal bool) runMode {
	if len(args) < 2 {
		if terminal {
			return modeBanner
		}
		return modeMCP
	}
	switch arg := args[1]; {
	case infoArgs[arg]:
		return modeInfo
	case cliCommands[arg]:
		return modeCLI
	case terminal:
		return modeUnknown
	default:
		return modeMCP
	}
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
       _  __ _
   ___(_)/ _| |_
  / __| | |_| __|
  \__ \ |  _| |_
  |___/_|_|  \__|

  String analysis store

  Usage: sift <command> [options]
         sift --help

  MCP server mode requires piped input.`)
}

// openStore loads config for the working directory and opens the database
// under baseDir with the configured pool limits.
func openStore(baseDir, cwd string) (*sql.DB, *config.Config, error) {
	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	database, err := db.Init(baseDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	db.ConfigurePool(database, cfg)

	return database, cfg, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	mode := detectMode(os.Args, isTerminal())

	switch mode {
	case modeBanner:
		printBanner()
		return
	case modeUnknown:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fatal("run 'sift --help' for usage")
	case modeInfo:
		if err := newCLIApp(nil, nil).Run(os.Args); err != nil {
			fatal("%v", err)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fatal("could not determine home directory: %v", err)
	}
	baseDir := filepath.Join(homeDir, ".sift")

	cwd, err := os.Getwd()
	if err != nil {
		cwd = baseDir
	}

	database, cfg, err := openStore(baseDir, cwd)
	if err != nil {
		fatal("%v", err)
	}

	if mode == modeCLI {
		err = newCLIApp(database, cfg).Run(os.Args)
	} else {
		if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
			fmt.Fprintf(os.Stderr, "warning: unknown tools in disabled_tools: %v\n", unknown)
		}
		err = mcp.Run(database, cfg, Version)
	}

	database.Close()
	if err != nil {
		fatal("%v", err)
	}
}
