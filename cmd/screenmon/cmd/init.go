package cmd

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"
)

const defaultConfigYAML = `# screenmon configuration
process:
  # Executable name of the watched application instances.
  name: game.exe
  # Exact instance count that defines health. More is as unhealthy as fewer.
  required_count: 6

stuck:
  # Reference images of known "stuck" screen states, tried in order.
  templates:
    - templates/stuck_dialog.png
  threshold: 0.8
  # Optional "left,top,right,bottom" in screen coordinates. Empty = full screen.
  search_area: ""

success:
  # Reference image of the per-instance success marker (e.g. a close icon).
  template: templates/success_icon.png
  threshold: 0.8
  search_area: ""
  # Minimum marker count that, together with the process count, defines recovery.
  required_count: 6

monitor:
  loop_interval: 60s
  # Maximum duration of one remediation session.
  timeout: 300s

click:
  enabled: true
  offset_x: 0
  offset_y: 0
  retry_delay: 10s

alert:
  # Directory (typically a network share) for the per-host history log.
  share_path: /mnt/monitor-share

snapshot:
  # Save the frame that matched a stuck template, for later review.
  enabled: false
  path: screenshots

history:
  path: .screenmon/history.db

log:
  level: info
  format: auto
  file: screenmon.log
  max_size_mb: 5
`

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		path = "screenmon.yaml"
	}

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := renameio.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
