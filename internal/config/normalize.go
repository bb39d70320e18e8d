package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeOCR(); err != nil {
		return err
	}
	c.normalizeEO()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEO() {
	c.EO.BaseURL = strings.TrimRight(strings.TrimSpace(c.EO.BaseURL), "/")
	if c.EO.BaseURL == "" {
		c.EO.BaseURL = defaultEOBaseURL
	}
	if c.EO.TimeoutSeconds <= 0 {
		c.EO.TimeoutSeconds = defaultEOTimeoutSeconds
	}
	if c.EO.RecentScoresLimit <= 0 {
		c.EO.RecentScoresLimit = defaultRecentScoresLimit
	}
}

func (c *Config) normalizeOCR() error {
	c.OCR.TesseractBinary = strings.TrimSpace(c.OCR.TesseractBinary)
	if c.OCR.TesseractBinary == "" {
		c.OCR.TesseractBinary = defaultTesseractBinary
	}
	if strings.TrimSpace(c.OCR.TessdataDir) != "" {
		expanded, err := expandPath(c.OCR.TessdataDir)
		if err != nil {
			return fmt.Errorf("ocr.tessdata_dir: %w", err)
		}
		c.OCR.TessdataDir = expanded
	}
	themes := make([]string, 0, len(c.OCR.Themes))
	for _, theme := range c.OCR.Themes {
		theme = strings.ToLower(strings.TrimSpace(theme))
		if theme != "" {
			themes = append(themes, theme)
		}
	}
	if len(themes) == 0 {
		themes = defaultThemes()
	}
	c.OCR.Themes = themes
	if c.OCR.DPI <= 0 {
		c.OCR.DPI = defaultOCRDPI
	}
	if c.OCR.TimeoutSeconds <= 0 {
		c.OCR.TimeoutSeconds = defaultOCRTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
