package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeDictionary(); err != nil {
		return err
	}
	c.normalizeSplit()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeDictionary() error {
	var err error
	c.Dictionary.Path = strings.TrimSpace(c.Dictionary.Path)
	if c.Dictionary.Path == "" {
		value, ok, err := lookupEnv(dictionaryEnvVar)
		if err != nil {
			return err
		}
		if ok {
			c.Dictionary.Path = strings.TrimSpace(value)
		}
	}
	if c.Dictionary.Path, err = expandPath(c.Dictionary.Path); err != nil {
		return fmt.Errorf("dictionary.path: %w", err)
	}
	if strings.TrimSpace(c.Dictionary.IndexPath) == "" {
		c.Dictionary.IndexPath = defaultIndexPath
	}
	if c.Dictionary.IndexPath, err = expandPath(strings.TrimSpace(c.Dictionary.IndexPath)); err != nil {
		return fmt.Errorf("dictionary.index_path: %w", err)
	}
	c.Dictionary.Policy = strings.ToLower(strings.TrimSpace(c.Dictionary.Policy))
	if c.Dictionary.Policy == "" {
		c.Dictionary.Policy = defaultPolicy
	}
	switch strings.ToLower(strings.TrimSpace(c.Dictionary.Encoding)) {
	case "", "utf8", "utf-8":
		c.Dictionary.Encoding = EncodingUTF8
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		c.Dictionary.Encoding = EncodingLatin1
	default:
		c.Dictionary.Encoding = strings.ToLower(strings.TrimSpace(c.Dictionary.Encoding))
	}
	return nil
}

func (c *Config) normalizeSplit() {
	c.Split.Format = strings.ToLower(strings.TrimSpace(c.Split.Format))
	if c.Split.Format == "" {
		c.Split.Format = defaultSplitFormat
	}
	if c.Split.MaxDepth == 0 {
		c.Split.MaxDepth = defaultMaxDepth
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
