package config

// setDefaults configures default values. Critical keys (process name,
// template paths, share path, required counts) default to zero values so
// viper recognizes them from the environment too; the validator rejects
// them when they are still unset at startup.
func (l *Loader) setDefaults() {
	// Critical keys, registered empty
	l.v.SetDefault("process.name", "")
	l.v.SetDefault("process.required_count", 0)
	l.v.SetDefault("stuck.templates", []string{})
	l.v.SetDefault("stuck.search_area", "")
	l.v.SetDefault("success.template", "")
	l.v.SetDefault("success.search_area", "")
	l.v.SetDefault("success.required_count", 0)
	l.v.SetDefault("alert.share_path", "")

	// Log defaults
	l.v.SetDefault("log.level", "info")
	l.v.SetDefault("log.format", "auto")
	l.v.SetDefault("log.file", "screenmon.log")
	l.v.SetDefault("log.max_size_mb", 5)

	// Matching defaults
	l.v.SetDefault("stuck.threshold", 0.8)
	l.v.SetDefault("success.threshold", 0.8)

	// Loop cadence defaults
	l.v.SetDefault("monitor.loop_interval", "60s")
	l.v.SetDefault("monitor.timeout", "300s")

	// Click defaults
	l.v.SetDefault("click.enabled", true)
	l.v.SetDefault("click.offset_x", 0)
	l.v.SetDefault("click.offset_y", 0)
	l.v.SetDefault("click.retry_delay", "10s")

	// Snapshot defaults
	l.v.SetDefault("snapshot.enabled", false)
	l.v.SetDefault("snapshot.path", "screenshots")

	// History defaults
	l.v.SetDefault("history.path", ".screenmon/history.db")
}
