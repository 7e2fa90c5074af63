// Copyright 2025 The WordSuggest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the word suggestion engine as a msgpack IPC server or as an
interactive CLI.

Note: This is a BETA release. APIs and functionality may rapidly change.

WordSuggest ranks prefix completions by word frequency, memoizes recent queries in
an LRU cache and falls back to edit distance matching when a prefix has no
completions.

# Usage

Start the server with default settings:

	wordsuggest

Use a custom dictionary and enable debug mode:

	wordsuggest -dict /path/to/words.txt -d

Run in CLI mode for interactive testing:

	wordsuggest -c -limit 10 -prmin 2

# Dictionary

The dictionary is loaded from the first source that works:

 1. the file (or chunk dir) named by -dict or [dict].path, looked up as given,
    next to the executable and in the config dir
 2. a downloaded word list, unless disabled with -no-download or [dict].download
 3. a small built in sample

Text files hold one word<TAB>frequency pair per line. Binary files (.bin) and
directories of ranked dict_NNNN.bin chunks are read too.

# Configuration

Runtime configuration is a TOML file, created with defaults when missing:

	[engine]
	cache_size = 1000
	spell_check = true
	max_edit_distance = 2

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

The server picks up edits to [server] while running.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout, see package server:

	{"id": "req1", "p": "hello", "l": 20}
	{"id": "req1", "s": [{"w": "hello", "r": 1, "f": 990}, {"w": "help", "r": 2, "f": 870}], "c": 2, "t": 145}

# Command Line Flags

	-config string
	    Path to the config file
	-dict string
	    Dictionary file or chunk dir (default from config)
	-format string
	    Dictionary format: auto, text, binary or chunk
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return in CLI mode
	-prmin int
	    Minimum prefix length for suggestions
	-prmax int
	    Maximum prefix length for suggestions
	-no-filter
	    Disable input filtering for debugging
	-no-download
	    Never download a word list
	-words int
	    Maximum number of words to download
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bastiangx/wordsuggest/internal/cli"
	"github.com/bastiangx/wordsuggest/internal/utils"
	"github.com/bastiangx/wordsuggest/pkg/config"
	"github.com/bastiangx/wordsuggest/pkg/dictionary"
	"github.com/bastiangx/wordsuggest/pkg/server"
	"github.com/bastiangx/wordsuggest/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordsuggest"
	gh      = "https://github.com/bastiangx/wordsuggest"
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

// main wires config, dictionary and engine, then hands over to the server or CLI.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to the config file")
	dictPath := flag.String("dict", "", "Dictionary file or chunk dir (default from config)")
	dictFormat := flag.String("format", "", "Dictionary format: auto, text, binary or chunk (default from config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of suggestions to return (default from config)")
	minPrefix := flag.Int("prmin", 0, "Minimum prefix length for suggestions (default from config)")
	maxPrefix := flag.Int("prmax", 0, "Maximum prefix length for suggestions (default from config)")
	noFilter := flag.Bool("no-filter", defaults.CLI.DefaultNoFilter, "Disable input filtering (DBG only)")
	noDownload := flag.Bool("no-download", false, "Never download a word list")
	wordLimit := flag.Int("words", 0, "Maximum number of words to download (default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, usedConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(usedConfigPath))

	// flags override the config file
	if *dictPath != "" {
		cfg.Dict.Path = *dictPath
	}
	if *dictFormat != "" {
		cfg.Dict.Format = *dictFormat
	}
	if *noDownload {
		cfg.Dict.Download = false
	}
	if *wordLimit > 0 {
		cfg.Dict.DownloadLimit = *wordLimit
	}

	engine, err := suggest.NewEngineFromConfig(cfg.Engine)
	if err != nil {
		log.Fatalf("Failed to init engine: %v", err)
	}

	configDir, err := config.GetConfigDir()
	if err != nil {
		log.Debugf("No config dir: %v", err)
	}
	resolver := utils.NewPathResolver(configDir)

	entries, source := loadDictionary(cfg.Dict, resolver)
	added := engine.AddWordsBulk(entries)
	log.Debugf("Loaded %d words from %s", added, source)

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		if *limit > 0 {
			cfg.CLI.DefaultLimit = *limit
		}
		if *minPrefix > 0 {
			cfg.CLI.DefaultMinLen = *minPrefix
		}
		if *maxPrefix > 0 {
			cfg.CLI.DefaultMaxLen = *maxPrefix
		}
		cfg.CLI.DefaultNoFilter = *noFilter
		log.Debug("Input info:",
			"minPrefix", cfg.CLI.DefaultMinLen,
			"maxPrefix", cfg.CLI.DefaultMaxLen,
			"limit", cfg.CLI.DefaultLimit,
			"noFilter", cfg.CLI.DefaultNoFilter)

		inputHandler := cli.NewInputHandler(engine, cfg.CLI)
		if format, err := dictionary.ParseFormat(cfg.Dict.Format); err == nil && format != dictionary.FormatChunk {
			inputHandler.SetDictionaryFile(cfg.Dict.Path, format, cfg.Dict.Delimiter)
		}
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, cfg, usedConfigPath)
	showStartupInfo(source, added)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// loadDictionary returns the entries of the first dictionary source that works and
// a description of that source.
func loadDictionary(cfg config.DictConfig, resolver *utils.PathResolver) ([]dictionary.Entry, string) {
	format, err := dictionary.ParseFormat(cfg.Format)
	if err != nil {
		log.Warnf("%v, detecting from the file name", err)
	}

	if path, ok := resolver.Resolve(cfg.Path); ok {
		entries, err := dictionary.Load(path, format, cfg.Delimiter)
		if err == nil && len(entries) > 0 {
			return entries, path
		}
		log.Warnf("Failed to load dictionary %s: %v", path, err)
	} else if cfg.Path != "" {
		log.Debugf("Dictionary %s not found", cfg.Path)
	}

	if cfg.Download {
		timeout := time.Duration(max(cfg.DownloadTimeout, 1)) * time.Second
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		entries, src, err := dictionary.DownloadAny(ctx, &http.Client{Timeout: timeout}, cfg.Sources, cfg.DownloadLimit)
		if err == nil {
			return entries, src
		}
		log.Warnf("Download failed: %v", err)
	}

	log.Warn("Using the built in sample dictionary")
	return dictionary.Sample(), "sample"
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordSuggest ] Ranked word completions with spell checking")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(source string, words int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "=============")
	fmt.Fprintln(os.Stderr, " WordSuggest ")
	fmt.Fprintln(os.Stderr, "=============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: %s (%s words)", source, utils.FormatWithCommas(words))
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "=============")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
