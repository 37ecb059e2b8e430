// Copyright 2025 The ModSearch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main builds the search data file from a TOML catalog of mods.

	[[mod]]
	name = "Ancient Cave"
	creators = ["Eli2", "Kim"]
	description = "A dark cave full of loot"

Every word of a mod's name, creators and description is lower-cased and
stored as [word, rank, mod index]. Ranks come from the [build] section of the
config file. The output encoding follows its extension: .json or .msgpack.

	modindex -catalog mods.toml -out public/search-data.json
*/
package main

import (
	"flag"
	"os"
	"time"

	"github.com/bastiangx/modsearch/internal/logger"
	"github.com/bastiangx/modsearch/pkg/config"
	"github.com/bastiangx/modsearch/pkg/dataset"
	"github.com/charmbracelet/log"
)

func main() {
	catalogPath := flag.String("catalog", "", "TOML catalog of mods (default from config)")
	outPath := flag.String("out", "", "Output file, .json or .msgpack (default from config)")
	configFile := flag.String("config", "", "Path to a config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	level := log.InfoLevel
	if *debugMode {
		level = log.DebugLevel
		log.SetLevel(log.DebugLevel)
	}
	buildLog := logger.NewWithConfig("modindex", level, false, *debugMode, log.TextFormatter)

	appConfig, _, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		buildLog.Fatalf("Failed to load config: %v", err)
	}

	build := appConfig.Build
	if *catalogPath != "" {
		build.Catalog = *catalogPath
	}
	if *outPath != "" {
		build.Output = *outPath
	}

	start := time.Now()
	catalog, err := dataset.LoadCatalog(build.Catalog)
	if err != nil {
		buildLog.Fatal(err)
	}

	ranks := dataset.Ranks{
		Name:        build.NameRank,
		Creator:     build.CreatorRank,
		Description: build.DescriptionRank,
	}
	data := dataset.Build(catalog.Mods, ranks)
	buildLog.Debug("Built dataset", "mods", len(data.Mods), "words", len(data.Words))

	if err := dataset.WriteFile(build.Output, data); err != nil {
		buildLog.Error(err)
		os.Exit(1)
	}
	buildLog.Info("Wrote search data",
		"path", build.Output,
		"mods", len(data.Mods),
		"words", len(data.Words),
		"took", time.Since(start).Round(time.Millisecond))
}
