package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	_ "image/jpeg"

	"etternabot/internal/identify"
	"etternabot/internal/logging"
)

// Recognizer reads evaluation screenshots with a set of theme layouts. One
// screenshot yields one reading per theme; the identifier picks whichever
// reading agrees best with a real score.
type Recognizer struct {
	engine  Engine
	layouts []Layout
	logger  *slog.Logger
}

// New constructs a Recognizer for the named themes.
func New(engine Engine, themes []string, logger *slog.Logger) (*Recognizer, error) {
	if engine == nil {
		return nil, errors.New("recognition engine required")
	}
	if len(themes) == 0 {
		return nil, errors.New("at least one theme required")
	}
	resolved := make([]Layout, 0, len(themes))
	for _, theme := range themes {
		layout, err := LayoutByName(theme)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, layout)
	}
	return &Recognizer{
		engine:  engine,
		layouts: resolved,
		logger:  logging.NewComponentLogger(logger, "ocr"),
	}, nil
}

// ReadScreenshot recognizes the screenshot under every configured theme
// layout. Unreadable regions leave their fields absent; an undecodable image
// is an error.
func (r *Recognizer) ReadScreenshot(ctx context.Context, imageBytes []byte) ([]identify.Reading, error) {
	decoded, format, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	r.logger.DebugContext(ctx, "screenshot decoded",
		logging.String("format", format),
		logging.Int("width", decoded.Bounds().Dx()),
		logging.Int("height", decoded.Bounds().Dy()),
	)

	readings := make([]identify.Reading, 0, len(r.layouts))
	for _, layout := range r.layouts {
		reading, err := r.readLayout(ctx, decoded, layout)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

func (r *Recognizer) readLayout(ctx context.Context, img image.Image, layout Layout) (identify.Reading, error) {
	var reading identify.Reading

	if text, ok := r.region(ctx, img, layout.Rate, ModeDigits); ok {
		if rate, ok := parseRate(text); ok {
			reading.Rate = &rate
		}
	}
	if text, ok := r.region(ctx, img, layout.Pack, ModeWords); ok {
		if pack, ok := parseText(text); ok {
			reading.Pack = &pack
		}
	}
	if text, ok := r.region(ctx, img, layout.Username, ModeWords); ok {
		if username, ok := parseUsername(text); ok {
			reading.Username = &username
		}
	}
	if text, ok := r.region(ctx, img, layout.Song, ModeWords); ok {
		if song, ok := parseText(text); ok {
			reading.Song = &song
		}
	}
	if text, ok := r.region(ctx, img, layout.Artist, ModeWords); ok {
		if artist, ok := parseText(text); ok {
			reading.Artist = &artist
		}
	}
	if text, ok := r.region(ctx, img, layout.Wifescore, ModeDigits); ok {
		if wife, ok := parseWifescore(text); ok {
			reading.Wifescore = &wife
		}
	}
	if text, ok := r.region(ctx, img, layout.MSD, ModeDigits); ok {
		if msd, ok := parseFloat(text); ok {
			reading.MSD = &msd
		}
	}
	if text, ok := r.region(ctx, img, layout.SSR, ModeDigits); ok {
		if ssr, ok := parseFloat(text); ok {
			reading.SSR = &ssr
		}
	}
	if text, ok := r.region(ctx, img, layout.Judgements, ModeDigits); ok {
		if judgements, ok := parseJudgements(text); ok {
			reading.Judgements = &judgements
		}
	}
	if text, ok := r.region(ctx, img, layout.Difficulty, ModeWords); ok {
		if difficulty, ok := parseDifficulty(text); ok {
			reading.Difficulty = &difficulty
		}
	}

	return reading, nil
}

// region crops one reference rectangle out of the screenshot and runs it
// through the engine. Recognition failures are logged and swallowed; the
// field just stays absent.
func (r *Recognizer) region(ctx context.Context, img image.Image, rect Rect, mode Mode) (string, bool) {
	cropped, err := cropScaled(img, rect)
	if err != nil {
		r.logger.DebugContext(ctx, "region crop failed", logging.Error(err))
		return "", false
	}
	text, err := r.engine.Text(ctx, cropped, mode)
	if err != nil {
		r.logger.DebugContext(ctx, "region recognition failed", logging.Error(err))
		return "", false
	}
	return text, text != ""
}

// cropScaled extracts rect, scaled from 1920x1080 reference space to the
// actual image dimensions, and re-encodes it as PNG for the engine.
func cropScaled(img image.Image, rect Rect) ([]byte, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, errors.New("empty image")
	}

	x0 := bounds.Min.X + rect.X*width/1920
	y0 := bounds.Min.Y + rect.Y*height/1080
	x1 := bounds.Min.X + (rect.X+rect.W)*width/1920
	y1 := bounds.Min.Y + (rect.Y+rect.H)*height/1080
	region := image.Rect(x0, y0, x1, y1).Intersect(bounds)
	if region.Empty() {
		return nil, fmt.Errorf("region %+v outside image bounds", rect)
	}

	crop := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	for y := 0; y < region.Dy(); y++ {
		for x := 0; x < region.Dx(); x++ {
			crop.Set(x, y, img.At(region.Min.X+x, region.Min.Y+y))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, crop); err != nil {
		return nil, fmt.Errorf("encode region: %w", err)
	}
	return buf.Bytes(), nil
}
