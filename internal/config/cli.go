// Package config defines the top-level Kong CLI structure parsed by
// cmd/vhid, with configuration loadable from JSON, YAML or TOML files
// in addition to flags and environment variables.
package config

import "github.com/nullsink/vhid/internal/cmd"

// CLI is the root command structure.
type CLI struct {
	Server cmd.Server        `cmd:"" help:"Run the virtual HID device server"`
	Config cmd.ConfigCommand `cmd:"" help:"Configuration file utilities"`

	Log LogConfig `embed:"" prefix:"log."`
}

// LogConfig configures the structured and raw loggers shared by every
// subcommand.
type LogConfig struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"VHID_LOG_LEVEL"`
	File    string `help:"Write structured logs to this file instead of stdout/stderr" env:"VHID_LOG_FILE"`
	RawFile string `help:"Write a raw hex-dump of every uinput/uhid packet to this file" env:"VHID_LOG_RAW_FILE"`
}
