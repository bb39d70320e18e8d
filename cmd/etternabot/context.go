package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"etternabot/internal/config"
	"etternabot/internal/eo"
	"etternabot/internal/logging"
	"etternabot/internal/ocr"
	"etternabot/internal/users"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *slog.Logger {
	cfg, err := c.ensureConfig()
	if err != nil {
		return logging.NewNop()
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return logging.NewNop()
	}
	return logger
}

func (c *commandContext) newFetcher() (*eo.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return eo.New(cfg.EO.BaseURL, eo.WithTimeout(time.Duration(cfg.EO.TimeoutSeconds)*time.Second))
}

func (c *commandContext) newRecognizer() (*ocr.Recognizer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	var opts []ocr.TesseractOption
	if cfg.OCR.TessdataDir != "" {
		opts = append(opts, ocr.WithTessdataDir(cfg.OCR.TessdataDir))
	}
	engine, err := ocr.NewTesseract(cfg.OCR.TesseractBinary, cfg.OCR.DPI, cfg.OCR.TimeoutSeconds, opts...)
	if err != nil {
		return nil, err
	}
	return ocr.New(engine, cfg.OCR.Themes, c.logger())
}

func (c *commandContext) openStore() (*users.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return users.Open(cfg.DatabasePath())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
