package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEO(); err != nil {
		return err
	}
	if err := c.validateOCR(); err != nil {
		return err
	}
	if err := c.validateMatcher(); err != nil {
		return err
	}
	if err := c.validateConfirm(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEO() error {
	if !strings.HasPrefix(c.EO.BaseURL, "http://") && !strings.HasPrefix(c.EO.BaseURL, "https://") {
		return fmt.Errorf("eo.base_url must be an http(s) URL, got %q", c.EO.BaseURL)
	}
	if c.EO.TimeoutSeconds <= 0 {
		return errors.New("eo.timeout_seconds must be positive")
	}
	if c.EO.RecentScoresLimit <= 0 {
		return errors.New("eo.recent_scores_limit must be positive")
	}
	return nil
}

func (c *Config) validateOCR() error {
	if c.OCR.TesseractBinary == "" {
		return errors.New("ocr.tesseract_binary must be set")
	}
	if len(c.OCR.Themes) == 0 {
		return errors.New("ocr.themes must list at least one theme")
	}
	if c.OCR.DPI <= 0 {
		return errors.New("ocr.dpi must be positive")
	}
	if c.OCR.TimeoutSeconds <= 0 {
		return errors.New("ocr.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateMatcher() error {
	if c.Matcher.Threshold < 0 {
		return errors.New("matcher.threshold must not be negative")
	}
	return nil
}

func (c *Config) validateConfirm() error {
	if c.Confirm.Capacity <= 0 {
		return errors.New("confirm.capacity must be positive")
	}
	if c.Confirm.TTLSeconds <= 0 {
		return errors.New("confirm.ttl_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.DefaultJudge < 1 || c.Analysis.DefaultJudge > 9 {
		return fmt.Errorf("analysis.default_judge must be between 1 and 9, got %d", c.Analysis.DefaultJudge)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
