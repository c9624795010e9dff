package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/exportsync/pkg/config"
	"github.com/fulmenhq/exportsync/pkg/exitcode"
	"github.com/fulmenhq/exportsync/pkg/logger"
	"github.com/fulmenhq/exportsync/pkg/projectroot"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate exportsync configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	show.Flags().String("format", "yaml", "Output format (yaml|json|toml)")

	validate := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a configuration file against the schema",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigValidate,
	}

	cmd.AddCommand(show, validate)
	return cmd
}

// configRoot returns the project root for --cwd, or the directory itself
// when it is not inside a package.
func configRoot(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd == "" {
		cwd = "."
	}
	root, err := projectroot.Find(cwd)
	if errors.Is(err, projectroot.ErrNotFound) {
		return cwd, nil
	}
	return root, err
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	opts := runOptions(cmd)

	root, err := configRoot(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(config.LoadOptions{Root: root, File: opts.ConfigFile, Mode: opts.Mode})
	if err != nil {
		logger.Error(fmt.Sprintf("could not load configuration: %v", err))
		return &exitError{code: exitcode.ConfigError, err: err}
	}
	out, err := cfg.Render(format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("config")
	if len(args) == 1 {
		file = args[0]
	}
	if file == "" {
		root, err := configRoot(cmd)
		if err != nil {
			return err
		}
		file = config.FindFile(root)
	}
	out := cmd.OutOrStdout()
	if file == "" {
		_, _ = fmt.Fprintln(out, "no configuration file found; defaults apply")
		return nil
	}
	if _, err := os.Stat(file); err != nil {
		return &exitError{code: exitcode.ConfigError, err: err}
	}

	if err := config.Validate(file); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			_, _ = fmt.Fprintf(out, "%s: invalid\n", file)
			for _, p := range verr.Problems {
				_, _ = fmt.Fprintf(out, "  - %s\n", p)
			}
		} else {
			logger.Error(fmt.Sprintf("could not validate configuration: %v", err))
		}
		return &exitError{code: exitcode.ConfigError, err: err}
	}
	_, _ = fmt.Fprintf(out, "%s: valid (schema v%s)\n", file, config.SchemaVersion)
	return nil
}
