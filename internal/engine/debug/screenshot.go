// Package debug provides frame capture utilities.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
)

// ScreenshotCapture writes frames read back from the GPU as PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	scale     float64
	now       func() time.Time

	lastStamp string
	seq       int
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		scale:     1,
		now:       time.Now,
	}
}

// SetScale sets the output scale. Values outside (0, 1] keep full size.
func (sc *ScreenshotCapture) SetScale(scale float64) {
	if scale <= 0 || scale > 1 {
		scale = 1
	}
	sc.scale = scale
}

// CaptureFromPixels saves raw RGBA pixel data with width*height*4 bytes.
// The image is flipped vertically since OpenGL has origin at bottom-left.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	// Create image (flip vertically during copy)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	return sc.CaptureFromImage(img)
}

// CaptureFromImage scales img by the configured factor and saves it.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	if sc.scale < 1 {
		b := img.Bounds()
		w := max(int(float64(b.Dx())*sc.scale), 1)
		h := max(int(float64(b.Dy())*sc.scale), 1)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	filename := sc.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// GenerateFilename returns the next screenshot path. Captures within the
// same second get an increasing suffix.
func (sc *ScreenshotCapture) GenerateFilename() string {
	stamp := sc.now().Format("2006-01-02_15-04-05")
	if stamp == sc.lastStamp {
		sc.seq++
	} else {
		sc.lastStamp = stamp
		sc.seq = 0
	}

	filename := fmt.Sprintf("%s_%s.png", sc.prefix, stamp)
	if sc.seq > 0 {
		filename = fmt.Sprintf("%s_%s_%d.png", sc.prefix, stamp, sc.seq)
	}
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
