// Package ocr recovers acquisition metadata from the text strip burned into
// angiographic frames.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"regexp"
	"strconv"
	"strings"

	"angio-caliper/internal/frame"

	"github.com/otiai10/gosseract/v2"
)

// MetadataChars is the character set of burned-in acquisition overlays.
// Excludes lowercase to reduce confusion (0/O, 1/I, etc.)
const MetadataChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-./# "

// headerFraction is the share of the frame height occupied by the text strip.
const headerFraction = 0.12

// stripPattern matches "<patient> <angle> <angle> #<frame>" tokens in the
// recognized header text.
var stripPattern = regexp.MustCompile(`([A-Z0-9][A-Z0-9-]*)\s+(-?\d+(?:\.\d+)?)[/\s]+(-?\d+(?:\.\d+)?)\s+#?(\d+)`)

// Engine reads burned-in frame metadata using Tesseract.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine tuned for acquisition overlays.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Disable dictionary-based word correction - patient ids aren't English
	// words and must not be "corrected" into them.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetWhitelist(MetadataChars)

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ReadIdentity scans the frame's header strip for the acquisition identity.
// Implements frame.IdentityReader.
func (e *Engine) ReadIdentity(img image.Image) (frame.Identity, error) {
	strip := prepareStrip(headerStrip(img))

	var buf bytes.Buffer
	if err := png.Encode(&buf, strip); err != nil {
		return frame.Identity{}, fmt.Errorf("failed to encode header strip: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return frame.Identity{}, fmt.Errorf("failed to set OCR image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return frame.Identity{}, fmt.Errorf("OCR failed: %w", err)
	}
	return parseStrip(text)
}

// headerStrip crops the top portion of the frame where the overlay lives.
func headerStrip(img image.Image) image.Image {
	bounds := img.Bounds()
	h := int(float64(bounds.Dy()) * headerFraction)
	if h < 1 {
		h = bounds.Dy()
	}
	strip := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+h)

	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(strip)
	}
	return img
}

// parseStrip extracts the identity from recognized overlay text.
func parseStrip(text string) (frame.Identity, error) {
	m := stripPattern.FindStringSubmatch(strings.ToUpper(text))
	if m == nil {
		return frame.Identity{}, fmt.Errorf("no identity in overlay text %q", strings.TrimSpace(text))
	}

	primary, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return frame.Identity{}, fmt.Errorf("bad primary angle %q: %w", m[2], err)
	}
	secondary, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return frame.Identity{}, fmt.Errorf("bad secondary angle %q: %w", m[3], err)
	}
	number, err := strconv.Atoi(m[4])
	if err != nil {
		return frame.Identity{}, fmt.Errorf("bad frame number %q: %w", m[4], err)
	}

	return frame.Identity{
		Patient:        m[1],
		PrimaryAngle:   primary,
		SecondaryAngle: secondary,
		Frame:          number,
	}, nil
}
