package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Engine performs text recognition over one cropped image.
type Engine interface {
	Text(ctx context.Context, imagePNG []byte, mode Mode) (string, error)
}

// Runner abstracts command execution for testability.
type Runner interface {
	Run(ctx context.Context, binary string, args []string, stdin []byte) (string, error)
}

// Tesseract is the production engine; it shells out to the tesseract binary
// once per region.
type Tesseract struct {
	binary      string
	tessdataDir string
	dpi         int
	timeout     time.Duration
	runner      Runner
}

var _ Engine = (*Tesseract)(nil)

// TesseractOption configures the engine.
type TesseractOption func(*Tesseract)

// WithRunner injects a custom command runner (primarily for tests).
func WithRunner(runner Runner) TesseractOption {
	return func(t *Tesseract) {
		if runner != nil {
			t.runner = runner
		}
	}
}

// WithTessdataDir points the engine at a non-default trained data directory.
func WithTessdataDir(dir string) TesseractOption {
	return func(t *Tesseract) {
		t.tessdataDir = strings.TrimSpace(dir)
	}
}

// NewTesseract constructs the engine and verifies the binary is reachable.
// An unreachable binary is a hard error so misconfiguration surfaces at
// startup rather than as every screenshot silently reading empty.
func NewTesseract(binary string, dpi, timeoutSeconds int, opts ...TesseractOption) (*Tesseract, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("tesseract binary required")
	}
	if dpi <= 0 {
		return nil, fmt.Errorf("dpi must be positive, got %d", dpi)
	}
	engine := &Tesseract{
		binary:  binary,
		dpi:     dpi,
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.runner == nil {
		resolved, err := exec.LookPath(binary)
		if err != nil {
			return nil, fmt.Errorf("locate tesseract binary %q: %w", binary, err)
		}
		engine.binary = resolved
		engine.runner = commandRunner{}
	}
	return engine, nil
}

// Text recognizes the text in the image.
func (t *Tesseract) Text(ctx context.Context, imagePNG []byte, mode Mode) (string, error) {
	if len(imagePNG) == 0 {
		return "", errors.New("empty image")
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	args := []string{"stdin", "stdout", "--dpi", strconv.Itoa(t.dpi), "-l", "eng", "--psm", "7"}
	if t.tessdataDir != "" {
		args = append(args, "--tessdata-dir", t.tessdataDir)
	}
	if mode == ModeDigits {
		args = append(args, "-c", "tessedit_char_whitelist=0123456789./x:#-")
	}

	out, err := t.runner.Run(ctx, t.binary, args, imagePNG)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.TrimSpace(out), nil
}

type commandRunner struct{}

func (commandRunner) Run(ctx context.Context, binary string, args []string, stdin []byte) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("%w: %s", err, detail)
		}
		return "", err
	}
	return stdout.String(), nil
}
