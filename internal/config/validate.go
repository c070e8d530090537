package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDictionary(); err != nil {
		return err
	}
	if err := c.validateSplit(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDictionary() error {
	if c.Dictionary.Floor < 0 {
		return errors.New("dictionary.floor must be >= 0")
	}
	if c.Dictionary.MinLength < 0 {
		return errors.New("dictionary.min_length must be >= 0")
	}
	switch c.Dictionary.Policy {
	case PolicyHalt, PolicyFilter:
	default:
		return fmt.Errorf("dictionary.policy: unsupported value %q (want %q or %q)", c.Dictionary.Policy, PolicyHalt, PolicyFilter)
	}
	switch c.Dictionary.Encoding {
	case EncodingUTF8, EncodingLatin1:
	default:
		return fmt.Errorf("dictionary.encoding: unsupported value %q (want %q or %q)", c.Dictionary.Encoding, EncodingUTF8, EncodingLatin1)
	}
	return nil
}

func (c *Config) validateSplit() error {
	switch c.Split.Format {
	case FormatText, FormatJSON, FormatTable:
	default:
		return fmt.Errorf("split.format: unsupported value %q", c.Split.Format)
	}
	if c.Split.MaxDepth <= 0 {
		return errors.New("split.max_depth must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
