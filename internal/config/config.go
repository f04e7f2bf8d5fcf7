package config

import "time"

// Config holds all monitor configuration.
type Config struct {
	Process  ProcessConfig  `mapstructure:"process"`
	Stuck    StuckConfig    `mapstructure:"stuck"`
	Success  SuccessConfig  `mapstructure:"success"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Click    ClickConfig    `mapstructure:"click"`
	Alert    AlertConfig    `mapstructure:"alert"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	History  HistoryConfig  `mapstructure:"history"`
	Log      LogConfig      `mapstructure:"log"`
}

// ProcessConfig identifies the watched process fleet.
type ProcessConfig struct {
	// Name is the executable name matched against the process table.
	Name string `mapstructure:"name"`
	// RequiredCount is the exact instance count that defines health.
	// More instances than required is just as unhealthy as fewer.
	RequiredCount int `mapstructure:"required_count"`
}

// StuckConfig configures detection of the clearable "stuck" screen state.
type StuckConfig struct {
	// Templates are image paths tried in order; the first match wins.
	Templates  []string `mapstructure:"templates"`
	Threshold  float64  `mapstructure:"threshold"`
	SearchArea string   `mapstructure:"search_area"` // "left,top,right,bottom", empty = full screen
}

// SuccessConfig configures counting of per-instance success markers.
type SuccessConfig struct {
	Template      string  `mapstructure:"template"`
	Threshold     float64 `mapstructure:"threshold"`
	SearchArea    string  `mapstructure:"search_area"`
	RequiredCount int     `mapstructure:"required_count"`
}

// MonitorConfig configures the outer polling loop and the remediation deadline.
type MonitorConfig struct {
	LoopInterval time.Duration `mapstructure:"loop_interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// ClickConfig configures the corrective pointer click.
type ClickConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	OffsetX    int           `mapstructure:"offset_x"`
	OffsetY    int           `mapstructure:"offset_y"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// AlertConfig configures the shared alert log.
type AlertConfig struct {
	// SharePath is a directory, typically on a network share, that every
	// monitored host appends its own history file into.
	SharePath string `mapstructure:"share_path"`
}

// SnapshotConfig configures saving the frame that matched a stuck template.
type SnapshotConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// HistoryConfig configures the local remediation-session store.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
}
