// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/poiesic/materia"
	"github.com/poiesic/materia/config"
	"github.com/poiesic/materia/core"
	"github.com/poiesic/materia/match"
	"github.com/poiesic/materia/storage"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// storeFlags are shared by every command that opens a database.
func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to the BadgerDB directory or SQLite database file",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "Storage backend (badger, sqlite)",
			Value: config.BackendBadger,
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "materia",
		Usage: "Find materials similar to a source material",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "search",
				Usage:  "Rank the materials of a library by similarity to a source material",
				Action: searchCommand,
				Flags: append(storeFlags(),
					&cli.Uint64Flag{
						Name:     "source",
						Aliases:  []string{"s"},
						Usage:    "ID of the source material",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "library",
						Usage:    "ID of the library to search",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "priority",
						Usage: "Feature ordering, e.g. sampler_types>shader_path=material_keywords",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum total score (0-100)",
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Search mode (tiered, exhaustive)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results (0 for the engine default)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent scoring workers",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report progress on stderr",
					},
				),
			},
			{
				Name:   "libraries",
				Usage:  "List libraries with their material counts",
				Action: librariesCommand,
				Flags:  storeFlags(),
			},
			{
				Name:   "compare",
				Usage:  "Compare the parameters of two materials",
				Action: compareCommand,
				Flags: append(storeFlags(),
					&cli.Uint64Flag{
						Name:     "source",
						Aliases:  []string{"s"},
						Usage:    "ID of the source material",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "candidate",
						Usage:    "ID of the candidate material",
						Required: true,
					},
				),
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))
	var level slog.Level

	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", levelStr)
	}

	// Create text handler for stderr
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}

// loadConfig reads the configuration file if one was given and applies
// the command line overrides on top of it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("backend") || c.String("config") == "" {
		cfg.Storage.Backend = c.String("backend")
	}
	cfg.Storage.Path = c.String("db")
	if c.IsSet("priority") {
		cfg.Search.Priority = c.String("priority")
	}
	if c.IsSet("threshold") {
		cfg.Search.Threshold = c.Float64("threshold")
	}
	if c.IsSet("mode") {
		cfg.Search.Mode = c.String("mode")
	}
	if c.IsSet("limit") {
		cfg.Search.Limit = c.Int("limit")
	}
	if c.IsSet("workers") {
		cfg.Pool.Workers = c.Int("workers")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openDatabase(c *cli.Context) (*materia.Database, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	db, err := materia.NewDatabase(cfg.Storage.Path, materia.WithConfig(cfg), materia.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// findMaterial looks a material up by ID. Stores that support direct
// lookup are asked for it; otherwise every library is scanned.
func findMaterial(ctx context.Context, db *materia.Database, id core.ID) (*core.Material, error) {
	if store, err := db.Store(); err == nil {
		return store.GetMaterial(ctx, id)
	}

	repo := db.Repository()
	libs, err := repo.ListLibraries(ctx)
	if err != nil {
		return nil, err
	}
	for _, lib := range libs {
		materials, err := repo.ListMaterials(ctx, lib.Id)
		if err != nil {
			return nil, err
		}
		for _, m := range materials {
			if m.Id == id {
				return m, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: material %d", storage.ErrNotFound, id)
}

func searchCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()
	cfg := db.Config()

	source, err := findMaterial(ctx, db, core.ID(c.Uint64("source")))
	if err != nil {
		return fmt.Errorf("failed to load source material: %w", err)
	}
	priority, err := cfg.Priority()
	if err != nil {
		return err
	}
	mode, err := cfg.Mode()
	if err != nil {
		return err
	}

	engine, err := db.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Release()

	req := match.Request{
		Source:        source,
		TargetLibrary: core.LibraryID(c.Uint64("library")),
		Priority:      priority,
		Threshold:     cfg.Search.Threshold,
		Mode:          mode,
		Limit:         cfg.Search.Limit,
	}

	var wg sync.WaitGroup
	var progress chan match.Progress
	if c.Bool("progress") {
		progress = make(chan match.Progress, 16)
		req.Progress = progress
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range progress {
				fmt.Fprintf(c.App.ErrWriter, "\rscanning: %3.0f%% (%d/%d)", p.Percent, p.Processed, p.Total)
			}
			fmt.Fprintln(c.App.ErrWriter)
		}()
	}

	out, err := engine.Search(ctx, req)
	if progress != nil {
		close(progress)
		wg.Wait()
	}
	if err != nil {
		if errors.Is(err, match.ErrCancelled) {
			fmt.Fprintln(c.App.ErrWriter, "search cancelled")
		}
		return err
	}

	fmt.Fprintf(c.App.Writer, "Source: %s (%d) in %s\n", source.Filename, source.Id, engine.LibraryName(ctx, source.LibraryId))
	fmt.Fprintf(c.App.Writer, "Weights: %s\n", out.Weights)
	fmt.Fprintf(c.App.Writer, "Scanned %d materials, tier %d, %d matches, %d skipped\n\n",
		out.Scanned, out.Tier, len(out.Results), len(out.Skipped))

	return printResults(c.App.Writer, out.Results)
}

// featureHeaders are the short column titles of the six features.
var featureHeaders = [match.NumFeatures]string{
	match.SamplerTypes:     "TYPES",
	match.ShaderPath:       "SHADER",
	match.SamplerCount:     "COUNT",
	match.Parameters:       "PARAMS",
	match.MaterialKeywords: "KEYWORDS",
	match.SamplerPaths:     "PATHS",
}

func printResults(w io.Writer, results []match.MatchResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No matches.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "RANK\tSCORE\tID\tFILENAME\tLIBRARY\tSAMPLERS\t%s\n", strings.Join(featureHeaders[:], "\t"))
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%.1f\t%d\t%s\t%s\t%d", r.Rank, r.Score(), r.Material.Id, r.Material.Filename, r.LibraryName, r.CandidateSamplerCount)
		for _, f := range match.Features() {
			fmt.Fprintf(tw, "\t%.0f", r.Breakdown.Score(f))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func librariesCommand(c *cli.Context) error {
	ctx := c.Context

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := db.Repository()
	libs, err := repo.ListLibraries(ctx)
	if err != nil {
		return fmt.Errorf("failed to list libraries: %w", err)
	}
	if len(libs) == 0 {
		fmt.Fprintln(c.App.Writer, "No libraries.")
		return nil
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMATERIALS\tDESCRIPTION")
	for _, lib := range libs {
		materials, err := repo.ListMaterials(ctx, lib.Id)
		if err != nil {
			return fmt.Errorf("failed to list materials of library %d: %w", lib.Id, err)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", lib.Id, lib.Name, len(materials), lib.Description)
	}
	return tw.Flush()
}

func compareCommand(c *cli.Context) error {
	ctx := c.Context

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	src, err := findMaterial(ctx, db, core.ID(c.Uint64("source")))
	if err != nil {
		return fmt.Errorf("failed to load source material: %w", err)
	}
	cand, err := findMaterial(ctx, db, core.ID(c.Uint64("candidate")))
	if err != nil {
		return fmt.Errorf("failed to load candidate material: %w", err)
	}

	engine, err := db.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Release()

	pc, err := engine.CompareParameters(ctx, src, cand)
	if err != nil {
		return fmt.Errorf("failed to compare parameters: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%s vs %s: %.0f%% of parameter names shared\n\n", src.Filename, cand.Filename, pc.NameRatio()*100)
	if len(pc.Common) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PARAMETER\tSOURCE\tCANDIDATE\tSIMILARITY")
		for _, d := range pc.Common {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", d.Name, d.Source, d.Candidate, d.Similarity)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if len(pc.SourceOnly) > 0 {
		fmt.Fprintf(w, "\nOnly in source: %s\n", strings.Join(pc.SourceOnly, ", "))
	}
	if len(pc.CandidateOnly) > 0 {
		fmt.Fprintf(w, "\nOnly in candidate: %s\n", strings.Join(pc.CandidateOnly, ", "))
	}
	return nil
}
