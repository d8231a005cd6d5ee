/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	serial "github.com/allbin/serial-sender"
	"github.com/allbin/serial-sender/internal/logging"
	"github.com/allbin/serial-sender/internal/transmit"
)

const (
	envPrefix      = "SERIAL_SENDER"
	configBaseName = "serial-sender"
)

// settings is everything a send run needs, resolved from all config sources
type settings struct {
	Transmit transmit.Config
	LogLevel slog.Level
	TUI      bool
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Config file (default: ./serial-sender.yaml if present)")
	fs.String("log-level", "warn", "Diagnostic log level: debug, info, warn, error")
}

func addSendFlags(fs *pflag.FlagSet) {
	defaults := transmit.DefaultConfig()

	fs.StringP("port", "p", defaults.Port, "Serial port")
	fs.IntP("baud", "b", defaults.BaudRate, "Baud rate")
	fs.StringP("file", "f", defaults.File, "Input file, one message per line")
	fs.Int("data-bits", defaults.DataBits, "Data bits: 5, 6, 7, 8")
	fs.Int("stop-bits", defaults.StopBits, "Stop bits: 1, 2")
	fs.String("parity", defaults.Parity.String(), "Parity: none, odd, even")
	fs.Duration("read-timeout", defaults.ReadTimeout, "Read timeout, multiple of 100ms")
	fs.Duration("settle-delay", defaults.SettleDelay, "Pause after opening the port while the device resets")
	fs.Duration("line-delay", defaults.LineDelay, "Pause after each line")
	fs.String("encoding", defaults.Encoding, "Text encoding on the wire (utf-8, latin1, ...)")
	fs.Bool("tui", false, "Show an interactive progress view")
}

// newViper layers flags over environment over the config file
func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	configFile := v.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configBaseName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

// loadSettings resolves and validates the settings for a send run. A
// positional file argument wins over every other source.
func loadSettings(fs *pflag.FlagSet, args []string) (settings, error) {
	v, err := newViper(fs)
	if err != nil {
		return settings{}, err
	}

	parity, err := serial.ParseParity(v.GetString("parity"))
	if err != nil {
		return settings{}, err
	}

	level, err := logging.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return settings{}, err
	}

	cfg := transmit.Config{
		Port:        v.GetString("port"),
		BaudRate:    v.GetInt("baud"),
		DataBits:    v.GetInt("data-bits"),
		StopBits:    v.GetInt("stop-bits"),
		Parity:      parity,
		ReadTimeout: v.GetDuration("read-timeout"),
		File:        v.GetString("file"),
		SettleDelay: v.GetDuration("settle-delay"),
		LineDelay:   v.GetDuration("line-delay"),
		Encoding:    v.GetString("encoding"),
	}
	if len(args) > 0 {
		cfg.File = args[0]
	}

	// Line settings (baud, framing, timeout) are checked when the port is
	// opened, so a bad rate surfaces as a serial port error
	if _, err := transmit.New(cfg); err != nil {
		return settings{}, err
	}

	return settings{
		Transmit: cfg,
		LogLevel: level,
		TUI:      v.GetBool("tui"),
	}, nil
}
