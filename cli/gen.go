package cli

import (
	"fmt"
	"os"

	"github.com/ducka/go-marbles/scenario"
	"github.com/spf13/cobra"
)

// GenOptions holds flags for the gen command.
type GenOptions struct {
	*RootOptions
	Seed     uint64
	Operator string
	Record   bool
	Output   string
}

// NewGenCommand creates the gen command.
func NewGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random scenario",
		Long: `Generate a random marble scenario as YAML.

With --record (the default) the scenario is run once and its recording is
written as the expected outcome, so the file pins the current behaviour.

Examples:
  marbles gen --operator throttle --seed 42
  marbles gen --operator sample --seed 7 -o sample_7.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(opts, cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&opts.Operator, "operator", scenario.KindThrottle, fmt.Sprintf("operator kind %v", scenario.Kinds))
	cmd.Flags().BoolVar(&opts.Record, "record", true, "record the expected outcome")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func generate(opts *GenOptions, cmd *cobra.Command) error {
	s, err := scenario.Generate(opts.Seed, opts.Operator)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to generate scenario", err)
	}

	if opts.Record {
		result, err := s.Run()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to run scenario", err)
		}
		s.Record(result)
	}

	data, err := scenario.Marshal(s)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode scenario", err)
	}

	if opts.Output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write scenario", err)
	}

	return nil
}
