package config

const (
	defaultDataDir           = "~/.local/share/etternabot"
	defaultLogDir            = "~/.local/share/etternabot/logs"
	defaultEOBaseURL         = "https://api.etternaonline.com/v2"
	defaultEOTimeoutSeconds  = 30
	defaultRecentScoresLimit = 10
	defaultTesseractBinary   = "tesseract"
	defaultOCRDPI            = 70
	defaultOCRTimeoutSeconds = 60
	defaultMatchThreshold    = 8
	defaultConfirmCapacity   = 256
	defaultConfirmTTLSeconds = 86400
	defaultAnalysisJudge     = 4
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

func defaultThemes() []string {
	return []string{"til-death", "rebirth"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		EO: EO{
			BaseURL:           defaultEOBaseURL,
			TimeoutSeconds:    defaultEOTimeoutSeconds,
			RecentScoresLimit: defaultRecentScoresLimit,
		},
		OCR: OCR{
			TesseractBinary: defaultTesseractBinary,
			Themes:          defaultThemes(),
			DPI:             defaultOCRDPI,
			TimeoutSeconds:  defaultOCRTimeoutSeconds,
		},
		Matcher: Matcher{
			Threshold: defaultMatchThreshold,
		},
		Confirm: Confirm{
			Capacity:   defaultConfirmCapacity,
			TTLSeconds: defaultConfirmTTLSeconds,
		},
		Analysis: Analysis{
			DefaultJudge: defaultAnalysisJudge,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
