// Copyright (c) 2026 The Undertaker Authors.
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

// Command undertaker finds dead and undead CPP conditional blocks in a
// source tree, cross-referenced against one or more loaded Kconfig models.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/delta-one/undertaker/internal/config"
	"github.com/delta-one/undertaker/internal/container"
	"github.com/delta-one/undertaker/internal/cppscan"
	"github.com/delta-one/undertaker/internal/cpptree"
	"github.com/delta-one/undertaker/internal/debug"
	"github.com/delta-one/undertaker/internal/defect"
	"github.com/delta-one/undertaker/internal/discover"
	"github.com/delta-one/undertaker/internal/dispatch"
	"github.com/delta-one/undertaker/internal/expr"
	"github.com/delta-one/undertaker/internal/kconfig"
	"github.com/delta-one/undertaker/internal/model"
	"github.com/delta-one/undertaker/internal/report"
	"github.com/delta-one/undertaker/internal/rsf"
	"github.com/delta-one/undertaker/internal/sat"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "undertaker",
		Usage: "find dead and undead CPP conditional blocks against a Kconfig model",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to an undertaker.toml config file",
				Value: config.ConfigFileName,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log per-file and per-block progress",
			},
		},
		Commands: []*cli.Command{
			checkCommand,
			dumpModelCommand,
			watchCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var checkCommand = &cli.Command{
	Name:  "check",
	Usage: "analyze source files for dead/undead blocks and write reports",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "jobs", Usage: "parallel worker count (0 = config default)"},
		&cli.StringFlag{Name: "report-dir", Usage: "directory to write defect reports into"},
		&cli.StringSliceFlag{Name: "source", Usage: "glob pattern of source files to analyze"},
	},
	Action: runCheck,
}

var dumpModelCommand = &cli.Command{
	Name:      "dump-model",
	Usage:     "dump a loaded Kconfig model's RSF presence-condition form to stdout",
	ArgsUsage: "<rsf-file>",
	Action:    runDumpModel,
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	fileCfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	overlay := &config.Config{
		Jobs:      c.Int("jobs"),
		ReportDir: c.String("report-dir"),
		Sources:   c.StringSlice("source"),
		Verbose:   c.Bool("verbose"),
	}
	return config.Merge(fileCfg, overlay), nil
}

// loadRegistry builds a container.Registry from cfg's declared archs. Each
// arch's path is loaded as RSF (.rsf) or a precompiled CNF dump (.cnf).
func loadRegistry(cfg *config.Config) (*container.Registry, error) {
	reg := container.NewRegistry()
	for _, arch := range cfg.Archs {
		m, err := loadModel(arch.Name, arch.Path)
		if err != nil {
			return nil, fmt.Errorf("load arch %s: %w", arch.Name, err)
		}
		reg.Register(arch.Name, m)
		if arch.Primary {
			reg.SetPrimary(arch.Name)
		}
	}
	return reg, nil
}

func loadModel(name, path string) (model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".cnf") {
		cnf, kv, err := sat.ReadDIMACS(f)
		if err != nil {
			return nil, err
		}
		meta, err := model.MetaFromKV(kv)
		if err != nil {
			return nil, err
		}
		return model.NewCNFModel(name, cnf, meta), nil
	}

	rel, err := rsf.Read(f)
	if err != nil {
		return nil, err
	}
	db, err := kconfig.Build(rel)
	if err != nil {
		return nil, err
	}
	return model.NewRSFModel(name, db, model.NewMeta()), nil
}

func runCheck(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		debug.SetLevel(debug.LevelVerbose)
	}

	whitelist, err := discover.LoadPatterns(cfg.Whitelist)
	if err != nil {
		return fmt.Errorf("load whitelist: %w", err)
	}
	blacklist, err := discover.LoadPatterns(cfg.Blacklist)
	if err != nil {
		return fmt.Errorf("load blacklist: %w", err)
	}
	files, err := discover.Files(cfg.Sources, whitelist, blacklist)
	if err != nil {
		return fmt.Errorf("discover sources: %w", err)
	}
	debug.Logf("discovered %d source file(s)", len(files))

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	analyzer := defect.NewAnalyzer(reg, nil)

	jobs := cfg.Jobs
	if jobs == 0 {
		jobs = config.DefaultJobs
	}
	reportDir := cfg.ReportDir
	if reportDir == "" {
		reportDir = config.DefaultReportDir
	}

	failures := dispatch.Run(c.Context, files, jobs, func(ctx context.Context, path string) error {
		return checkFile(analyzer, reportDir, path)
	})

	for _, f := range failures {
		debug.Logf("%s: %v", f.Path, f.Err)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d file(s) failed analysis", len(failures))
	}
	return nil
}

func checkFile(analyzer *defect.Analyzer, reportDir, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	tree, err := cppscan.Scan(path, f)
	f.Close()
	if err != nil {
		return err
	}

	checker := tree.ItemChecker()
	for _, b := range tree.Blocks() {
		if b.ID == cpptree.RootBlock {
			continue
		}

		if d, err := analyzer.AnalyzeDead(tree, b.ID, checker); err != nil {
			debug.Logf("%s: block %s dead analysis: %v", path, b.Name, err)
		} else if d != nil {
			reportDefect(tree, b, d, reportDir, path)
		}

		if d, err := analyzer.AnalyzeUndead(tree, b.ID, checker); err != nil {
			debug.Logf("%s: block %s undead analysis: %v", path, b.Name, err)
		} else if d != nil {
			reportDefect(tree, b, d, reportDir, path)
		}
	}
	return nil
}

// reportDefect rebuilds the seed formula shape AnalyzeDead/AnalyzeUndead use,
// purely for the human-readable form written to the report file (spec
// section 6); the verdict itself was already decided. The constraints are
// built without a file symbol, so the (B00 <-> FILE_...) clause the analyzer
// adds when a primary model is loaded does not appear in the report.
func reportDefect(tree *cpptree.File, b *cpptree.ConditionalBlock, d *defect.Defect, reportDir, path string) {
	constraints, err := tree.CodeConstraints("")
	if err != nil {
		debug.Logf("%s: block %s: rebuild constraints for report: %v", path, b.Name, err)
		return
	}

	var seed expr.Expr
	if d.Direction == defect.Undead {
		parent := tree.Block(b.Parent)
		seed = &expr.Binary{
			Op: expr.And,
			X: &expr.Binary{
				Op: expr.And,
				X:  &expr.Ident{Name: parent.Name},
				Y:  &expr.Not{X: &expr.Ident{Name: b.Name}},
			},
			Y: constraints,
		}
	} else {
		seed = &expr.Binary{Op: expr.And, X: &expr.Ident{Name: b.Name}, Y: constraints}
	}

	if err := report.Write(reportDir, path, b, d, seed); err != nil {
		debug.Logf("%s: block %s: write report: %v", path, b.Name, err)
	}
}

func runDumpModel(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("dump-model requires exactly one RSF file argument")
	}
	path := c.Args().First()
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rel, err := rsf.Read(f)
	if err != nil {
		return err
	}
	db, err := kconfig.Build(rel)
	if err != nil {
		return err
	}
	return kconfig.Dump(os.Stdout, db)
}

var watchCommand = &cli.Command{
	Name:   "watch",
	Usage:  "re-run check incrementally as source files change",
	Action: runWatch,
}
