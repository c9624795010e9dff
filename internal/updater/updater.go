// Package updater runs one exports synchronization: it locates the project,
// loads configuration, synthesizes the exports map and patches the manifest.
package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fulmenhq/exportsync/pkg/config"
	"github.com/fulmenhq/exportsync/pkg/exports"
	"github.com/fulmenhq/exportsync/pkg/ignore"
	"github.com/fulmenhq/exportsync/pkg/logger"
	"github.com/fulmenhq/exportsync/pkg/manifest"
	"github.com/fulmenhq/exportsync/pkg/projectroot"
	"github.com/fulmenhq/exportsync/pkg/safeio"
	"github.com/fulmenhq/exportsync/pkg/vfs"
)

var (
	// ErrManifestMissing is returned when the project root has no manifest.
	ErrManifestMissing = errors.New("package.json not found")
	// ErrDistMissing is returned in flat mode when the output directory is
	// absent.
	ErrDistMissing = errors.New("output directory not found")
	// ErrNoEntries is returned when no entry could be discovered.
	ErrNoEntries = exports.ErrNoEntries
)

// Options control a run.
type Options struct {
	// Cwd is where the project root search starts; "." when empty.
	Cwd string
	// ConfigFile overrides configuration discovery.
	ConfigFile string
	// Mode selects the configuration mode overlay.
	Mode string
	// DryRun computes everything but leaves the manifest untouched.
	DryRun bool
}

// Result describes a completed run.
type Result struct {
	Root         string
	ManifestPath string
	ConfigFile   string
	PackageName  string
	DistDir      string
	Plan         exports.Plan
	Exports      *exports.Map
	Patch        manifest.Result
	// Before and After are the manifest bytes around the patch.
	Before  []byte
	After   []byte
	Written bool
	// Warnings collects non-fatal problems, such as an unreadable
	// configuration file.
	Warnings []string
}

// Changed reports whether the patch altered the manifest bytes.
func (r *Result) Changed() bool {
	return string(r.Before) != string(r.After)
}

// Run performs one synchronization. Configuration problems are reported as
// warnings and the run continues with defaults; every other failure aborts
// before the manifest is written.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cwd := opts.Cwd
	if cwd == "" {
		cwd = "."
	}

	root, err := projectroot.Find(cwd)
	if err != nil {
		return nil, err
	}
	res := &Result{Root: root, ManifestPath: filepath.Join(root, manifest.FileName)}
	logger.Debug("project root located", logger.String("root", root))

	cfg, err := config.Load(config.LoadOptions{Root: root, File: opts.ConfigFile, Mode: opts.Mode})
	if err != nil {
		msg := fmt.Sprintf("could not load configuration, continuing without it: %v", err)
		logger.Warn(msg)
		res.Warnings = append(res.Warnings, msg)
		cfg = config.Default()
		if opts.Mode != "" {
			cfg.Mode = opts.Mode
		}
	}
	res.ConfigFile = cfg.File

	before, err := safeio.ReadFileContained(root, manifest.FileName)
	if err != nil {
		if os.IsNotExist(err) {
			return res, fmt.Errorf("%w in %s", ErrManifestMissing, root)
		}
		return res, fmt.Errorf("read %s: %w", manifest.FileName, err)
	}
	doc, err := manifest.Parse(before)
	if err != nil {
		return res, err
	}
	res.Before = before
	res.PackageName = doc.Name()

	fsys := vfs.OS(root)
	synthOpts := cfg.Options(doc.Name())
	matcher, err := ignore.NewMatcher(fsys.Billy())
	if err != nil {
		return res, fmt.Errorf("read %s: %w", ignore.FileName, err)
	}
	synthOpts.Ignore = matcher.Match
	res.DistDir = synthOpts.DistDir

	if err := ctx.Err(); err != nil {
		return res, err
	}

	plan := exports.NewPlan(fsys, cfg.Entry, synthOpts)
	res.Plan = plan
	if plan.Strategy == exports.StrategyFlat && !fsys.IsDir(synthOpts.DistDir) {
		return res, fmt.Errorf("%w: %s", ErrDistMissing, filepath.Join(root, filepath.FromSlash(synthOpts.DistDir)))
	}
	if plan.Empty() {
		return res, ErrNoEntries
	}
	logger.Debug("synthesis plan",
		logger.String("strategy", plan.Strategy.String()),
		logger.Strings("entries", plan.Names()))

	m, err := plan.Synthesize(fsys, root, synthOpts)
	if err != nil {
		return res, fmt.Errorf("synthesize exports: %w", err)
	}
	res.Exports = m

	patch, err := doc.Apply(m)
	if err != nil {
		return res, err
	}
	res.Patch = patch
	if patch.Replaced {
		logger.Warn("existing exports field was not an object and has been replaced")
	}

	after, err := doc.Bytes()
	if err != nil {
		return res, err
	}
	res.After = after

	if opts.DryRun {
		logger.Info("dry run: manifest not written", logger.String("path", res.ManifestPath))
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := doc.Save(res.ManifestPath); err != nil {
		return res, fmt.Errorf("write %s: %w", manifest.FileName, err)
	}
	res.Written = true
	logger.Info("exports updated",
		logger.String("path", res.ManifestPath),
		logger.Int("subpaths", m.Len()),
		logger.String("strategy", plan.Strategy.String()))
	return res, nil
}
