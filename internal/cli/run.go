package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/captain/pkg/manifest"
	"github.com/matzehuels/captain/pkg/pipeline"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	config   string // run configuration path
	command  string // single-command override
	manifest string // manifest path converters read
	output   string // artifact output directory
}

// runCommand creates the run command, the main entry point.
//
// Default options:
//   - manifest: build.yaml in the working directory
//   - output: the Output directory, created on first artifact
func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{
		manifest: manifest.DefaultFile,
		output:   pipeline.DefaultOutputDir,
	}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run Captain according to config.yaml (loads modules and publishes commands)",
		Long: `Run Captain according to a run configuration.

The configuration lists the converter modules to load and the commands to
publish, in order. Each command is dispatched to the modules that registered
it; a missing module or an unrouted command is a warning, not a failure.

Examples:
  captain run -c config.yaml                       # all configured commands
  captain run -c config.yaml -r req                # just this one command
  captain run -c config.yaml -m app/build.yaml -o dist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			runner := pipeline.NewRunner(nil, logger, nil)

			prog := newProgress(logger)
			if err := runner.Run(cmd.Context(), pipeline.Options{
				ConfigPath:   opts.config,
				Command:      opts.command,
				ManifestPath: opts.manifest,
				OutputDir:    opts.output,
			}); err != nil {
				return err
			}
			prog.done("Run finished")
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "path to config.yaml")
	cmd.Flags().StringVarP(&opts.command, "run", "r", "", `additional command, e.g. "req"`)
	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", opts.manifest, "path to the dependency manifest")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "artifact output directory")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
