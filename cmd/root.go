package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fulmenhq/exportsync/internal/ops"
	"github.com/fulmenhq/exportsync/internal/updater"
	"github.com/fulmenhq/exportsync/pkg/buildinfo"
	"github.com/fulmenhq/exportsync/pkg/config"
	"github.com/fulmenhq/exportsync/pkg/exitcode"
	"github.com/fulmenhq/exportsync/pkg/logger"
	"github.com/fulmenhq/exportsync/pkg/manifest"
	"github.com/fulmenhq/exportsync/pkg/projectroot"
)

const rootLong = `Exportsync rewrites the "exports" map of package.json from the files a build
left in dist/. It runs after the build and keeps main, module and types in
step with the primary export.

Examples:
   exportsync                  # Sync exports (same as 'exportsync sync')
   exportsync sync --dry-run   # Compute without writing
   exportsync sync --diff      # Show the manifest change as a unified diff
   exportsync plan --format markdown
   exportsync config show --format toml
   exportsync version --extended`

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// newRootCommand creates a fresh command tree.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "exportsync",
		Short:         "Synchronize package.json exports with build output",
		Long:          rootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
		RunE: runSync,
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().Bool("no-op", false, "Compute everything without writing package.json")
	cmd.PersistentFlags().String("cwd", "", "Directory to start the project root search from")
	cmd.PersistentFlags().String("config", "", "Configuration file (default: exportsync.{yaml,yml,json,toml} in the project root)")
	cmd.PersistentFlags().String("mode", config.DefaultMode, "Build mode used to resolve modes.<mode> overlays")
	addSyncFlags(cmd)

	cmd.Version = buildinfo.Version()
	cmd.SetVersionTemplate("exportsync {{.Version}}\n")

	reg := ops.NewRegistry()
	reg.MustRegister("sync", ops.GroupSync, addCommand(cmd, newSyncCommand()))
	reg.MustRegister("plan", ops.GroupSync, addCommand(cmd, newPlanCommand()))
	reg.MustRegister("config", ops.GroupConfig, addCommand(cmd, newConfigCommand()))
	reg.MustRegister("version", ops.GroupSupport, addCommand(cmd, newVersionCommand()))

	// Grouped help by command group (Sync → Config → Support)
	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c != cmd {
			defaultHelp(c, args)
			return
		}
		c.Println(c.Long)
		c.Println()
		for _, g := range ops.Groups {
			c.Printf("%s:\n", g.Title)
			for _, r := range reg.GetCommandsByGroup(g.Group) {
				c.Printf("  %-12s %s\n", r.Name, r.Description)
			}
			c.Println()
		}
		printFlags(c, "Flags", c.LocalFlags())
	})

	return cmd
}

func printFlags(c *cobra.Command, title string, fs *pflag.FlagSet) {
	if !fs.HasAvailableFlags() {
		return
	}
	c.Printf("%s:\n", title)
	c.Print(fs.FlagUsages())
}

func addCommand(parent, child *cobra.Command) *cobra.Command {
	parent.AddCommand(child)
	return child
}

// Execute builds the command tree and runs it.
// This is called by main.main().
func Execute() {
	cmd := newRootCommand()
	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	noOp, _ := cmd.Flags().GetBool("no-op")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "exportsync",
		NoOp:      noOp,
	}

	if err := logger.Initialize(config); err != nil {
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(exitcode.ConfigError)
	}
}

// exitCodeFor maps run failures onto documented exit codes.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, projectroot.ErrNotFound):
		return exitcode.ProjectNotFound
	case errors.Is(err, updater.ErrManifestMissing), errors.Is(err, manifest.ErrNotObject):
		return exitcode.ManifestError
	case errors.Is(err, updater.ErrDistMissing):
		return exitcode.FileSystemError
	case errors.Is(err, updater.ErrNoEntries):
		return exitcode.NoEntries
	case errors.Is(err, config.ErrInvalid):
		return exitcode.ConfigError
	default:
		return exitcode.GeneralError
	}
}

// runOptions reads the persistent flags shared by sync and plan.
func runOptions(cmd *cobra.Command) updater.Options {
	cwd, _ := cmd.Flags().GetString("cwd")
	cfgFile, _ := cmd.Flags().GetString("config")
	mode, _ := cmd.Flags().GetString("mode")
	return updater.Options{Cwd: cwd, ConfigFile: cfgFile, Mode: mode}
}
