package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"screenmon/internal/alert"
	"screenmon/internal/census"
	"screenmon/internal/history"
	"screenmon/internal/hostaddr"
	"screenmon/internal/monitor"
	"screenmon/internal/screen"
	"screenmon/internal/sysinfo"
	"screenmon/internal/vision"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the monitor loop",
	Long: `Run polls the process census every loop interval. When the instance
count deviates from the required count it enters a remediation session,
clicking away known stuck states until the host recovers or the session
times out. Runs until interrupted.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	addr := hostaddr.Resolve()
	log := logger.WithHost(addr)

	var matcherOpts []vision.Option
	if cfg.Snapshot.Enabled {
		matcherOpts = append(matcherOpts, vision.WithSnapshotDir(cfg.Snapshot.Path))
	}

	sampler := census.NewSampler(log.Logger)
	matcher := vision.NewMatcher(screen.NewDisplay(), log.Logger, matcherOpts...)
	alerts := alert.NewWriter(cfg.Alert.SharePath, addr)
	clock := monitor.SystemClock{}

	controller := monitor.NewController(
		cfg, sampler, matcher, screen.NewPointer(), alerts, clock, log.Logger,
	).WithSysinfo(sysinfo.NewCollector())

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			// History is an operator convenience, not a monitoring
			// requirement: run without it rather than refuse to start.
			log.Error("opening history store failed, sessions will not be recorded", "error", err)
		} else {
			defer store.Close()
			controller.WithHistory(store)
		}
	}

	loop := monitor.NewLoop(cfg, sampler, controller, clock, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop.Run(ctx)
	return nil
}
