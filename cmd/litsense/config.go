package main

import (
	"errors"
	"fmt"

	"github.com/tsawler/litsense"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputBoth = "both"
)

func (c Config) Validate() error {
	if c.ShowVersion {
		return nil
	}
	if c.TUI {
		if c.File != "" || c.Text != "" {
			return errors.New("-tui cannot be combined with -file or -text")
		}
		return nil
	}
	if c.File == "" && c.Text == "" {
		return errors.New("missing -file or -text")
	}
	if c.File != "" && c.Text != "" {
		return errors.New("use only one of -file or -text")
	}
	if c.Type != "" {
		if _, err := litsense.ParseTextType(c.Type); err != nil {
			return fmt.Errorf("invalid -type: %w", err)
		}
	}
	switch c.Output {
	case outputText, outputJSON, outputBoth:
	default:
		return fmt.Errorf("invalid -output %q (want text, json or both)", c.Output)
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Output:     outputText,
		ConfigPath: "litsense.yaml",
		LogLevel:   "warn",
		LogFormat:  "text",
	}
}
