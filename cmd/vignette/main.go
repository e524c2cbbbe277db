// Package main is the entry point for the vignette command.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/dshills/vignette/internal/app"
	"github.com/dshills/vignette/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app     app.Options
	walk    string
	script  string
	eval    string
	export  bool
	version bool
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	if cli.version {
		fmt.Printf("vignette %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	if cli.app.LogLevel != "" && !logging.ValidLevel(cli.app.LogLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", cli.app.LogLevel)
		return 2
	}

	var walkValues []int64
	if cli.walk != "" {
		values, err := parseValues(cli.walk)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -walk: %v\n", err)
			return 2
		}
		walkValues = values
	}

	application, err := app.New(cli.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	fmt.Println(formatValues(application.Walk(walkValues)))

	if cli.script != "" {
		if err := application.RunScript(cli.script); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if cli.eval != "" {
		if err := application.Eval(cli.eval); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	fmt.Println(application.Account())

	if cli.export {
		doc, err := application.ExportHistory()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: export: %v\n", err)
			return 1
		}
		fmt.Println(doc)
	}

	if cli.app.Watch {
		// Keep reloading the config until interrupted
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		application.Logger().Info("watching %s, press Ctrl-C to exit", cli.app.ConfigPath)
		<-signals
	}

	return 0
}

func parseFlags() cliOptions {
	var cli cliOptions
	var showHelp bool

	flag.StringVar(&cli.app.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml, .json)")
	flag.StringVar(&cli.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&cli.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	flag.BoolVar(&cli.app.Watch, "watch", false, "Reload the config file on change until interrupted")
	flag.StringVar(&cli.walk, "walk", "", "Comma-separated values to build a tree from and walk in order")
	flag.StringVar(&cli.script, "script", "", "Lua script to run against the account")
	flag.StringVar(&cli.eval, "eval", "", "Lua code to run against the account")
	flag.BoolVar(&cli.export, "export", false, "Print the account history as JSON")
	flag.BoolVar(&cli.version, "version", false, "Show version information")
	flag.BoolVar(&cli.version, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vignette - in-order tree cursor and undo/redo history\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vignette [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vignette -walk 4,2,6,1,3,5,7          Walk a level-order tree\n")
		fmt.Fprintf(os.Stderr, "  vignette -eval 'account.deposit(50)'  Change the balance\n")
		fmt.Fprintf(os.Stderr, "  vignette -script session.lua -export  Run a session, dump history\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	return cli
}

// parseValues parses a comma-separated list of integers.
func parseValues(s string) ([]int64, error) {
	fields := strings.Split(s, ",")
	values := make([]int64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", f)
		}
		values = append(values, v)
	}
	return values, nil
}

func formatValues(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, " ")
}
