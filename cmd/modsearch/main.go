// Copyright 2025 The ModSearch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the mod search server, terminal widget and dev web server.

ModSearch answers prefix queries over a catalog of mods. Each mod is indexed
by the words of its name, creator and description; a query returns the mods
whose words start with it, best rank first, one result per mod.

The search data is a single JSON (or msgpack) document:

	{
	  "mods":  [{"name": "Alpha", "creator": "Eli2", "description": "..."}],
	  "words": [["alpha", 1, 0], ["eli2", 2, 0]]
	}

Each word entry is [text, rank, mod index]. Lower rank is better. The data is
fetched lazily, in the background, the first time search is used. Until it
arrives every query returns no results; if it cannot be fetched search stays
empty for the rest of the session.

# Usage

Start the IPC server with default settings:

	modsearch

Search a remote data file from the terminal:

	modsearch -c -data https://example.com/search-data.json

Serve the public directory and a JSON search API:

	modsearch -http :8000

# Configuration

Runtime configuration is a TOML file, created with defaults if missing:

	[data]
	location = "public/search-data.json"

	[server]
	max_limit = 64
	min_query = 1
	max_query = 60

	[web]
	addr = ":8000"
	public_dir = "public"

# IPC Protocol

The server reads MessagePack requests from stdin and writes responses to stdout.

	{"id": "req1", "q": "alp", "l": 10}
	{"id": "req1", "r": [{"n": "Alpha", "c": "Eli2", "d": "...", "w": "alpha", "k": 1}], "c": 1, "t": 42, "s": "ready"}

Status and config requests:

	{"id": "st", "action": "status"}
	{"id": "cf", "action": "config", "max_limit": 20}

# Command Line Flags

	-data string
	    Search data location, URL or file (default from config)
	-config string
	    Path to a config file
	-d  Enable debug mode with detailed logging
	-c  Run the terminal widget instead of the IPC server
	-http string
	    Serve the web API on this address instead of the IPC server,
	    "config" uses the address from the config file
	-limit int
	    Number of results to show in the terminal widget
	-version
	    Show current version
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/modsearch/internal/cli"
	"github.com/bastiangx/modsearch/internal/utils"
	"github.com/bastiangx/modsearch/internal/web"
	"github.com/bastiangx/modsearch/pkg/config"
	"github.com/bastiangx/modsearch/pkg/dataset"
	"github.com/bastiangx/modsearch/pkg/search"
	"github.com/bastiangx/modsearch/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

const (
	Version = "0.3.0"
	AppName = "modsearch"
	gh      = "https://github.com/bastiangx/modsearch"
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

func showVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ ModSearch ] Find mods as you type")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// main wires config, the index and its loader into the selected front-end.
func main() {
	sigHandler()

	printVersion := flag.Bool("version", false, "Show current version")
	dataLocation := flag.String("data", "", "Search data location, URL or file (default from config)")
	configFile := flag.String("config", "", "Path to a config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the terminal widget")
	httpAddr := flag.String("http", "", "Serve the web API on this address")
	limit := flag.Int("limit", 0, "Number of results to show in the terminal widget (default from config)")

	flag.Parse()

	if *printVersion {
		showVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if configPath == "" {
		configPath = pathResolver.GetConfigPath("config.toml")
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	location := appConfig.Data.Location
	if *dataLocation != "" {
		location = *dataLocation
	}
	location = pathResolver.ResolveDataLocation(location)
	log.Debugf("Using search data at: %s", location)

	index := search.NewIndex()
	loader := dataset.NewLoader(dataset.NewSource(location), index)

	switch {
	case *cliMode:
		log.SetReportTimestamp(false)
		widgetLimit := appConfig.CLI.DefaultLimit
		if *limit > 0 {
			widgetLimit = *limit
		}
		widget := cli.NewWidget(index, loader, os.Stdout, widgetLimit)
		handler := cli.NewInputHandler(widget, os.Stdin, appConfig.Server.MaxQuery)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}

	case *httpAddr != "":
		addr := *httpAddr
		if addr == "config" {
			addr = appConfig.Web.Addr
		}
		runWeb(addr, location, index, loader, appConfig)

	default:
		srv := server.NewServer(index, loader, appConfig, configPath)
		showStartupInfo(location)
		if err := srv.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}
}

func runWeb(addr, location string, index *search.Index, loader *dataset.Loader, cfg *config.Config) {
	if log.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := web.Options{MaxLimit: cfg.Server.MaxLimit}
	if cfg.Web.PublicDir != "" {
		opts.PublicDir = utils.GetAbsolutePath(cfg.Web.PublicDir)
	}
	if !utils.IsURL(location) {
		opts.DataPath = location
	}

	router := web.NewRouter(web.NewAPI(index, loader, opts))
	log.Infof("Serving %s on http://%s", opts.PublicDir, addr)
	if err := http.ListenAndServe(addr, router); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Web server error: %v", err)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(location string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " ModSearch ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("search data: ( %s )", location)
	log.Info("status: ready, data loads on first request")
	fmt.Fprintln(os.Stderr, "===========")

	log.SetLevel(currentLevel)
}
