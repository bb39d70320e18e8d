package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"etternabot/internal/logging"
)

// scriptedEngine returns canned text per call in region read order: rate,
// pack, username, song, artist, wifescore, msd, ssr, judgements, difficulty.
type scriptedEngine struct {
	responses []string
	calls     int
}

func (e *scriptedEngine) Text(_ context.Context, _ []byte, _ Mode) (string, error) {
	if e.calls >= len(e.responses) {
		return "", errors.New("out of scripted responses")
	}
	text := e.responses[e.calls]
	e.calls++
	if text == "<err>" {
		return "", errors.New("scripted failure")
	}
	return text, nil
}

func testScreenshot(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestReadScreenshotFillsReading(t *testing.T) {
	engine := &scriptedEngine{responses: []string{
		"1.15",
		"SHARPNELSTREAMZ v2",
		"Logged in as kangalioo (28.53: #1324)",
		"Game Time",
		"Vospi",
		"96.52",
		"29.03",
		"27.12",
		"945 / 466 / 45 / 7 / 2 / 12",
		"IN",
	}}
	recognizer, err := New(engine, []string{"til-death"}, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	readings, err := recognizer.ReadScreenshot(context.Background(), testScreenshot(t, 1920, 1080))
	if err != nil {
		t.Fatalf("ReadScreenshot: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(readings))
	}
	reading := readings[0]
	if reading.Song == nil || *reading.Song != "Game Time" {
		t.Fatalf("unexpected song: %v", reading.Song)
	}
	if reading.Username == nil || *reading.Username != "kangalioo" {
		t.Fatalf("unexpected username: %v", reading.Username)
	}
	if reading.Rate == nil || reading.Rate.Float() != 1.15 {
		t.Fatalf("unexpected rate: %v", reading.Rate)
	}
	if reading.Wifescore == nil || *reading.Wifescore != 96.52 {
		t.Fatalf("unexpected wifescore: %v", reading.Wifescore)
	}
	if reading.Judgements == nil || reading.Judgements.Total() != 1477 {
		t.Fatalf("unexpected judgements: %v", reading.Judgements)
	}
}

func TestReadScreenshotToleratesRegionFailures(t *testing.T) {
	engine := &scriptedEngine{responses: []string{
		"<err>",     // rate
		"",          // pack
		"garbage",   // username, wrong shape
		"Game Time", // song
		"<err>",     // artist
		"96.52",     // wifescore
		"not a number",
		"27.12",
		"945 / 466", // partial tally
		"IN",
	}}
	recognizer, err := New(engine, []string{"til-death"}, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	readings, err := recognizer.ReadScreenshot(context.Background(), testScreenshot(t, 1280, 720))
	if err != nil {
		t.Fatalf("ReadScreenshot: %v", err)
	}
	reading := readings[0]
	if reading.Rate != nil || reading.Pack != nil || reading.Username != nil {
		t.Fatalf("expected failed regions to stay absent: %+v", reading)
	}
	if reading.Song == nil || *reading.Song != "Game Time" {
		t.Fatalf("expected readable regions to survive: %v", reading.Song)
	}
	if reading.MSD != nil {
		t.Fatal("expected unparsable msd to stay absent")
	}
	if reading.Judgements != nil {
		t.Fatal("expected partial judgement tally to stay absent")
	}
}

func TestReadScreenshotRejectsUndecodableImage(t *testing.T) {
	recognizer, err := New(&scriptedEngine{}, []string{"til-death"}, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := recognizer.ReadScreenshot(context.Background(), []byte("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewRejectsUnknownTheme(t *testing.T) {
	_, err := New(&scriptedEngine{}, []string{"nonexistent"}, logging.NewNop())
	if err == nil || !strings.Contains(err.Error(), "unknown theme") {
		t.Fatalf("expected unknown theme error, got %v", err)
	}
}

func TestCropScaledScalesReferenceCoordinates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 960, 540))
	cropped, err := cropScaled(img, Rect{914, 371, 98, 19})
	if err != nil {
		t.Fatalf("cropScaled: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(cropped))
	if err != nil {
		t.Fatalf("decode crop: %v", err)
	}
	if decoded.Bounds().Dx() != 49 {
		t.Fatalf("expected half-scale width 49, got %d", decoded.Bounds().Dx())
	}
}

func TestTesseractDigitsModeRestrictsCharset(t *testing.T) {
	var captured []string
	runner := runnerFunc(func(_ context.Context, _ string, args []string, _ []byte) (string, error) {
		captured = args
		return " 96.52 \n", nil
	})
	engine, err := NewTesseract("tesseract", 70, 5, WithRunner(runner))
	if err != nil {
		t.Fatalf("NewTesseract: %v", err)
	}

	text, err := engine.Text(context.Background(), []byte("png"), ModeDigits)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if text != "96.52" {
		t.Fatalf("expected trimmed output, got %q", text)
	}
	joined := strings.Join(captured, " ")
	if !strings.Contains(joined, "tessedit_char_whitelist") {
		t.Fatalf("expected digit whitelist in args, got %v", captured)
	}
	if !strings.Contains(joined, "--dpi 70") {
		t.Fatalf("expected dpi flag in args, got %v", captured)
	}
}

type runnerFunc func(ctx context.Context, binary string, args []string, stdin []byte) (string, error)

func (f runnerFunc) Run(ctx context.Context, binary string, args []string, stdin []byte) (string, error) {
	return f(ctx, binary, args, stdin)
}
