// Copyright 2025 The TermServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the bilingual term search server and CLI application.

Note: APIs and functionality may still change between minor releases.

TermServe serves English/Turkish IT terminology lookups over the TBD
dictionary. It matches exactly, by substring or fuzzily with weighted
ratio scoring, and can operate as a MessagePack IPC server for integration
with editors and translation tools, or as an interactive CLI for terminal
use.

The dictionary is a flat JSON file produced by the tbdconv tool from the
published TBD PDF. It is loaded once at startup and held immutable in
memory; every search runs against the same ordered record sequence, so
results are reproducible across concurrent callers.

# Usage

Start the server with default settings:

	termserve

Use a custom dictionary file and enable debug mode:

	termserve -dict /path/to/tbd_dictionary.json -d

Run in CLI mode for interactive lookups:

	termserve -c -mode fuzzy -limit 10

# Configuration

Runtime configuration is managed through a TOML file that supports search
defaults, dictionary settings, and server parameters:

	[search]
	default_mode = "fuzzy"
	default_scope = "both"
	default_limit = 10
	min_limit = 5
	max_limit = 50
	min_score = 60.0

	[dict]
	path = "output/tbd_dictionary.json"
	max_term_length = 200

	[server]
	max_query_length = 200
	default_sample = 5
	timing = true

The config file is automatically created with defaults if it doesn't exist.
Command line flags override the file for one session.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Search requests
are processed synchronously with microsecond timing information included
in responses.

Send a search request:

	{"id": "req1", "q": "bulut", "m": "fuzzy", "lang": "both", "l": 10}

Receive matching records ranked by score:

	{"id": "req1", "r": [{"en": "cloud", "tr": "bulut", "sc": 100}], "c": 1, "t": 145}

Record requests use the action field instead of a query:

	{"id": "rnd1", "action": "random"}
	{"id": "smp1", "action": "sample", "n": 5}
	{"id": "sts1", "action": "stats"}

# Server Mode

The default mode starts a MessagePack IPC server that processes search
requests from stdin and writes responses to stdout. This design enables
integration with editors and other applications through process
communication.

	srv := server.NewServer(engine, dict, cfg)
	err := srv.Start()

The server handles request parsing, validation and response formatting.
Mode and scope names are checked per request, so a malformed request
fails alone without ending the session.

# CLI Mode

CLI mode provides an interactive prompt for terminal lookups. Plain input
searches the dictionary with the session's current settings; ':' commands
adjust those settings, show random records or export the last results.

	inputHandler := cli.NewInputHandler(engine, dict, completer, cfg, configPath, params)
	err := inputHandler.Start()

Zero-hit searches fall back to prefix completions over the trie so a
truncated query still leads somewhere useful.

# Search Engine

The core matching lives in the search package. Exact and substring modes
scan records in dictionary order and return the first matches; fuzzy mode
scores both languages with a weighted Levenshtein ratio, merges the two
ranked pools and deduplicates before capping.

	engine := search.New(dict)
	results, err := engine.Search("bulut", params)

# Command Line Flags

The following flags control application behavior:

	-dict string
	    Path to the dictionary JSON file (default from config)
	-config string
	    Path to a custom config file
	-c  Run the interactive CLI instead of the IPC server
	-d  Enable debug mode with detailed logging
	-q  Only log errors
	-mode string
	    Session match mode: exact, partial or fuzzy
	-lang string
	    Session language scope: en, tr or both
	-limit int
	    Session result limit, clamped to the configured bounds
	-score float
	    Fuzzy score threshold (0..100)
	-no-timing
	    Drop timing info from server responses
	-version
	    Show current version

Relative dictionary paths are resolved against the working directory
first and the executable directory second, supporting both development
and installed deployments.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/termdict/termserve/internal/cli"
	"github.com/termdict/termserve/internal/logger"
	"github.com/termdict/termserve/internal/utils"
	"github.com/termdict/termserve/pkg/complete"
	"github.com/termdict/termserve/pkg/config"
	"github.com/termdict/termserve/pkg/dictionary"
	"github.com/termdict/termserve/pkg/search"
	"github.com/termdict/termserve/pkg/server"
)

const (
	Version = "0.1.0"
	AppName = "termserve"
	gh      = "https://github.com/termdict/termserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	quietMode := flag.Bool("q", false, "Only log errors")
	cliMode := flag.Bool("c", false, "Run the interactive CLI instead of the IPC server")
	dictPath := flag.String("dict", "", "Path to the dictionary JSON file (default from config)")
	configFile := flag.String("config", "", "Path to a custom config file")
	searchMode := flag.String("mode", "", "Session match mode: exact, partial or fuzzy")
	searchLang := flag.String("lang", "", "Session language scope: en, tr or both")
	searchLimit := flag.Int("limit", 0, "Session result limit, clamped to the configured bounds")
	scoreMin := flag.Float64("score", -1, "Fuzzy score threshold (0..100)")
	noTiming := flag.Bool("no-timing", false, "Drop timing info from server responses")

	flag.Parse()

	if *showVersion {
		showVersionBanner()
		os.Exit(0)
	}

	switch {
	case *debugMode:
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	case *quietMode:
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}

	cfg, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// One-session overrides from flags
	if *dictPath != "" {
		cfg.Dict.Path = *dictPath
	}
	if *searchMode != "" {
		cfg.Search.DefaultMode = *searchMode
	}
	if *searchLang != "" {
		cfg.Search.DefaultScope = *searchLang
	}
	if *searchLimit > 0 {
		cfg.Search.DefaultLimit = *searchLimit
	}
	if *scoreMin >= 0 {
		cfg.Search.MinScore = *scoreMin
	}
	if *noTiming {
		cfg.Server.Timing = false
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	resolvedDict := utils.ResolveDictionaryPath(cfg.Dict.Path)
	log.Debugf("Using dictionary at: %s", resolvedDict)

	dict, err := dictionary.Load(resolvedDict)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debugf("Dictionary ready: %d records", dict.Len())

	engine := search.New(dict)
	params, err := cfg.Params()
	if err != nil {
		log.Fatalf("Invalid session defaults: %v", err)
	}

	// CLI would be mainly used for terminal lookups and dbg purposes.
	// Any ranking changes should be eyeballed in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Session info:",
			"mode", params.Mode,
			"lang", params.Scope,
			"limit", params.Limit,
			"score", params.MinScore)

		completer := complete.New(dict)
		inputHandler := cli.NewInputHandler(engine, dict, completer, cfg, configPath, params)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, dict, cfg)

	showStartupInfo(resolvedDict, dict.Len())

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// showVersionBanner prints version and repo info with a styled logger.
func showVersionBanner() {
	banner := logger.Default("")

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ TermServe ] Fast bilingual IT term lookups!")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictPath string, records int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" TermServe ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("dictionary: ( %s )", dictPath)
	log.Infof("records: [ %d ]", records)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
