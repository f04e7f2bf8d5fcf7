package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the entire configuration. Missing critical keys are
// hard errors: the monitor cannot run meaningfully without them. Malformed
// search areas are NOT rejected here; they degrade to full-screen search
// with a warning at template construction time.
func (v *Validator) Validate(cfg *Config) error {
	v.validateProcess(&cfg.Process)
	v.validateStuck(&cfg.Stuck)
	v.validateSuccess(&cfg.Success)
	v.validateMonitor(&cfg.Monitor)
	v.validateClick(&cfg.Click)
	v.validateAlert(&cfg.Alert)
	v.validateLog(&cfg.Log)

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

// Errors returns the collected validation errors.
func (v *Validator) Errors() ValidationErrors {
	return v.errors
}

func (v *Validator) addError(field string, value interface{}, msg string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: msg,
	})
}

func (v *Validator) validateProcess(cfg *ProcessConfig) {
	if cfg.Name == "" {
		v.addError("process.name", cfg.Name, "process name required")
	}
	if cfg.RequiredCount <= 0 {
		v.addError("process.required_count", cfg.RequiredCount, "must be positive")
	}
}

func (v *Validator) validateStuck(cfg *StuckConfig) {
	if len(cfg.Templates) == 0 {
		v.addError("stuck.templates", cfg.Templates, "at least one stuck template required")
	}
	for i, path := range cfg.Templates {
		if strings.TrimSpace(path) == "" {
			v.addError(fmt.Sprintf("stuck.templates[%d]", i), path, "template path must not be blank")
		}
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		v.addError("stuck.threshold", cfg.Threshold, "must be within [0, 1]")
	}
}

func (v *Validator) validateSuccess(cfg *SuccessConfig) {
	if cfg.Template == "" {
		v.addError("success.template", cfg.Template, "success template required")
	}
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		v.addError("success.threshold", cfg.Threshold, "must be within [0, 1]")
	}
	if cfg.RequiredCount <= 0 {
		v.addError("success.required_count", cfg.RequiredCount, "must be positive")
	}
}

func (v *Validator) validateMonitor(cfg *MonitorConfig) {
	if cfg.LoopInterval <= 0 {
		v.addError("monitor.loop_interval", cfg.LoopInterval, "must be positive")
	}
	if cfg.Timeout <= 0 {
		v.addError("monitor.timeout", cfg.Timeout, "must be positive")
	}
}

func (v *Validator) validateClick(cfg *ClickConfig) {
	if cfg.RetryDelay < 0 {
		v.addError("click.retry_delay", cfg.RetryDelay, "must not be negative")
	}
}

func (v *Validator) validateAlert(cfg *AlertConfig) {
	if cfg.SharePath == "" {
		v.addError("alert.share_path", cfg.SharePath, "alert share path required")
	}
}

func (v *Validator) validateLog(cfg *LogConfig) {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		v.addError("log.level", cfg.Level, "must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"auto": true, "text": true, "json": true,
	}
	if !validFormats[cfg.Format] {
		v.addError("log.format", cfg.Format, "must be one of: auto, text, json")
	}

	if cfg.MaxSizeMB < 0 {
		v.addError("log.max_size_mb", cfg.MaxSizeMB, "must not be negative")
	}
}
