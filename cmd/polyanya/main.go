//  Copyright (c) 2026 Ulyzses
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command polyanya runs a scenario file of shortest-path queries against
// spherical navigation meshes and writes one result file per scenario.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Ulyzses/spherical-polyanya/geojson"
	"github.com/Ulyzses/spherical-polyanya/mesh"
	"github.com/Ulyzses/spherical-polyanya/scenario"
	"github.com/Ulyzses/spherical-polyanya/search"
)

type config struct {
	OutDir    string `yaml:"out_dir"`
	Verbose   bool   `yaml:"verbose"`
	BandIndex bool   `yaml:"band_index"`
}

func defaultConfig() config {
	return config{OutDir: "out", BandIndex: true}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "config")
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		outDir     string
		verbose    bool
		writeJSON  bool
	)
	cmd := &cobra.Command{
		Use:          "polyanya <scenario_file>",
		Short:        "any-angle shortest paths on spherical navigation meshes",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.OutDir = outDir
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Verbose = verbose
			}
			return run(args[0], cfg, writeJSON)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&outDir, "out", "out", "output directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().BoolVar(&writeJSON, "geojson", false, "also write GeoJSON per scenario")
	return cmd
}

func run(scenarioPath string, cfg config, writeJSON bool) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	scens, err := scenario.ParseFile(scenarioPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return errors.Wrap(err, "output directory")
	}

	baseDir := filepath.Dir(scenarioPath)
	meshes := make(map[string]*mesh.Mesh)
	failed := 0
	for _, sc := range scens {
		if err := runOne(sc, baseDir, cfg, writeJSON, meshes, log); err != nil {
			log.Error("scenario failed", "map", sc.MapPath, "label", sc.Label, "err", err)
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d scenarios failed", failed, len(scens))
	}
	return nil
}

// runOne resolves and caches the scenario's mesh, runs the search, and
// writes the result files. A failure here aborts only this scenario.
func runOne(sc scenario.Scenario, baseDir string, cfg config, writeJSON bool, meshes map[string]*mesh.Mesh, log *slog.Logger) error {
	m, ok := meshes[sc.MapPath]
	if !ok {
		var opts []mesh.Option
		if !cfg.BandIndex {
			opts = append(opts, mesh.WithoutBandIndex())
		}
		var err error
		m, err = mesh.ParseFile(resolve(baseDir, sc.MapPath), opts...)
		if err != nil {
			return err
		}
		meshes[sc.MapPath] = m
		log.Info("mesh loaded", "map", sc.MapPath,
			"vertices", len(m.Vertices), "polygons", len(m.Polygons))
	}

	p, err := search.New(m, sc.Start, sc.End, search.WithLogger(log)).Run()
	if err != nil {
		return err
	}
	if len(p.Points) == 0 {
		log.Info("no path", "map", sc.MapPath, "label", sc.Label)
	} else {
		log.Info("path found", "map", sc.MapPath, "label", sc.Label,
			"points", len(p.Points), "length_deg", p.Length)
	}

	name := fmt.Sprintf("%s_%s", mapName(sc.MapPath), sc.Label)
	if err := writePath(filepath.Join(cfg.OutDir, name+".txt"), p); err != nil {
		return err
	}
	if writeJSON {
		data, err := geojson.Marshal(geojson.FromPath(p))
		if err != nil {
			return errors.Wrap(err, "geojson")
		}
		if err := os.WriteFile(filepath.Join(cfg.OutDir, name+".geojson"), data, 0o644); err != nil {
			return errors.Wrap(err, "geojson")
		}
	}
	return nil
}

// writePath writes one "lat lon" line per path point. An empty file means
// no path was found.
func writePath(path string, p search.Path) error {
	var b strings.Builder
	for _, pt := range p.Points {
		b.WriteString(strconv.FormatFloat(pt.Lat, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(pt.Lon, 'f', -1, 64))
		b.WriteByte('\n')
	}
	return errors.Wrap(os.WriteFile(path, []byte(b.String()), 0o644), "write output")
}

func resolve(baseDir, mapPath string) string {
	if filepath.IsAbs(mapPath) {
		return mapPath
	}
	return filepath.Join(baseDir, mapPath)
}

func mapName(mapPath string) string {
	base := filepath.Base(mapPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
