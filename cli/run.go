package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/ducka/go-marbles/instrumentation"
	"github.com/ducka/go-marbles/operator"
	"github.com/ducka/go-marbles/scenario"
	"github.com/ducka/go-marbles/store"
	"github.com/ducka/go-marbles/utils"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// Baseline store kinds.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Plot      bool
	Store     string
	RedisAddr string
	Expiry    time.Duration
	Timeout   time.Duration
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Run marble scenarios",
		Long: `Run marble scenarios and verify them against their expectations.

With --store, every run is also compared with the previous run of the same
scenario and recorded as the new baseline.

Exit codes:
  0 - All scenarios passed
  1 - A scenario mismatched its expectations or drifted from its baseline
  2 - Command error (unreadable scenario, unreachable store, etc.)

Examples:
  marbles run scenarios/*.yaml
  marbles run throttle.yaml --plot
  marbles run throttle.yaml --store redis --redis-addr localhost:6379`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			timeout, cancelTimeout := context.WithTimeout(context.Background(), opts.Timeout)
			defer cancelTimeout()

			ctx, cancelCombined := utils.CombinedContexts(ctx, timeout)
			defer cancelCombined()

			return runScenarios(ctx, opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Plot, "plot", false, "plot emitted values (text format only)")
	cmd.Flags().StringVar(&opts.Store, "store", StoreNone, "baseline store (none|memory|redis)")
	cmd.Flags().StringVar(&opts.RedisAddr, "redis-addr", "localhost:6379", "comma separated redis addresses for --store redis")
	cmd.Flags().DurationVar(&opts.Expiry, "expiry", 0, "expire stored baselines after this duration (0 keeps them)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", time.Minute, "give up after this duration")

	return cmd
}

func runScenarios(ctx context.Context, opts *RunOptions, paths []string, cmd *cobra.Command) error {
	baseline, closeStore, err := newBaseline(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open baseline store", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			instrumentation.Logging().Warn("run", fmt.Sprintf("failed to close baseline store: %v", err))
		}
	}()

	logger := instrumentation.Logging()
	measurer := instrumentation.NewCountingMeasurer()
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return WrapExitError(ExitCommandError, "interrupted", err)
		}

		s, err := scenario.Load(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenario", err)
		}

		result, err := s.Run(operator.WithMeasurer(measurer))
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to run scenario", err)
		}

		if err := scenario.Report(out, result, scenario.Format(opts.Format)); err != nil {
			return WrapExitError(ExitCommandError, "failed to write report", err)
		}

		if opts.Plot && opts.Format == "text" {
			if plot := scenario.Plot(result, 60, 8); plot != "" {
				fmt.Fprintln(out, plot)
			}
		}

		if err := s.Verify(result); err != nil {
			if !errors.Is(err, scenario.ErrMismatch) {
				return WrapExitError(ExitCommandError, "failed to verify scenario", err)
			}
			logger.Error("run", err.Error())
			failed++
		}

		if baseline == nil {
			continue
		}

		comparison, err := baseline.Check(ctx, result)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to check baseline", err)
		}

		if comparison.Drifted {
			logger.Error("run", fmt.Sprintf("%q drifted from run %s\n  previous: %s\n  current:  %s",
				s.Name, comparison.Previous.RunID, comparison.Previous.Fingerprint, comparison.Current))
			failed++
		} else {
			logger.Debug("run", fmt.Sprintf("%q recorded as run %s", s.Name, comparison.RunID))
		}
	}

	dropped := 0.0
	for _, activity := range []string{"Throttle", "Sample", "SampleLatest"} {
		dropped += measurer.Count(activity, "value_dropped")
	}
	logger.Info("run", fmt.Sprintf("%d scenarios, %d failed, %v values dropped", len(paths), failed, dropped))

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", failed, len(paths)))
	}

	return nil
}

// newBaseline opens the baseline store selected by opts. The returned close function releases
// any connection the store holds and is safe to call for every store kind.
func newBaseline(opts *RunOptions) (*scenario.Baseline, func() error, error) {
	noop := func() error { return nil }

	var storeOptions []store.StoreOption
	if opts.Expiry > 0 {
		storeOptions = append(storeOptions, store.WithExpiry(opts.Expiry))
	}

	switch opts.Store {
	case StoreNone:
		return nil, noop, nil
	case StoreMemory:
		return scenario.NewBaseline(store.NewInMemoryStore[scenario.BaselineRecord](), storeOptions...), noop, nil
	case StoreRedis:
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: strings.Split(opts.RedisAddr, ","),
		})
		return scenario.NewBaseline(store.NewRedisStore[scenario.BaselineRecord](client), storeOptions...), client.Close, nil
	default:
		return nil, noop, errors.Errorf("unknown store %q: must be one of [%s %s %s]", opts.Store, StoreNone, StoreMemory, StoreRedis)
	}
}
