package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"screenmon/internal/census"
	"screenmon/internal/screen"
	"screenmon/internal/vision"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a one-shot health check and print the result",
	Long: `Check samples the process census once and counts success markers on
screen, then reports whether the host currently meets the joint healthy
state. No clicks are injected and nothing is written to the alert log.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
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

	sampler := census.NewSampler(logger.Logger)
	matcher := vision.NewMatcher(screen.NewDisplay(), logger.Logger)

	count := sampler.Count(cmd.Context(), cfg.Process.Name)
	if count == census.CountFailed {
		return fmt.Errorf("process census failed")
	}
	status := census.Evaluate(count, cfg.Process.RequiredCount)

	successRegion, err := vision.ParseRegion(cfg.Success.SearchArea)
	if err != nil {
		logger.Warn("malformed success search area, using full screen", "error", err)
		successRegion = nil
	}
	markers := matcher.CountMatches(cfg.Success.Template, cfg.Success.Threshold, successRegion)

	fmt.Fprintf(cmd.OutOrStdout(), "processes:       %d/%d\n", status.ProcessCount, status.RequiredCount)
	fmt.Fprintf(cmd.OutOrStdout(), "success markers: %d/%d\n", markers, cfg.Success.RequiredCount)

	healthy := status.Healthy && markers >= cfg.Success.RequiredCount
	if healthy {
		fmt.Fprintln(cmd.OutOrStdout(), "state:           healthy")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "state:           anomalous")

	stuckRegion, err := vision.ParseRegion(cfg.Stuck.SearchArea)
	if err != nil {
		logger.Warn("malformed stuck search area, using full screen", "error", err)
		stuckRegion = nil
	}
	if loc := matcher.LocateBest(cfg.Stuck.Templates, cfg.Stuck.Threshold, stuckRegion); loc.Found {
		fmt.Fprintf(cmd.OutOrStdout(), "stuck marker:    found at (%d, %d)\n", loc.Center.X, loc.Center.Y)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "stuck marker:    not found")
	}
	return nil
}
