package segue

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// defaultScreenshotDir is used when RunConfig.ScreenshotDir is empty.
const defaultScreenshotDir = "screenshots"

// Screenshot queues a labeled capture of the next drawn frame. Run writes it
// as a PNG named after the time, the label and the active section.
func (d *Driver) Screenshot(label string) {
	d.screenshots = append(d.screenshots, label)
}

// PendingScreenshots returns the number of queued captures.
func (d *Driver) PendingScreenshots() int {
	return len(d.screenshots)
}

// flushScreenshots writes every queued capture of screen into dir.
func (d *Driver) flushScreenshots(screen *ebiten.Image, dir string) {
	if len(d.screenshots) == 0 {
		return
	}
	defer func() { d.screenshots = d.screenshots[:0] }()

	log := d.scheduler.log
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("screenshot: mkdir", zap.String("dir", dir), zap.Error(err))
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := toNRGBA(pixels, w, h)

	stamp := time.Now().Format("20060102_150405")
	active := d.last.Active
	for _, label := range d.screenshots {
		path := filepath.Join(dir, screenshotName(stamp, label, active))
		if err := writePNG(path, img); err != nil {
			log.Warn("screenshot: write", zap.Error(err))
			continue
		}
		log.Debug("screenshot saved", zap.String("path", path))
	}
}

// toNRGBA converts Ebitengine's premultiplied RGBA pixels to straight alpha.
func toNRGBA(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func screenshotName(stamp, label string, active int) string {
	return fmt.Sprintf("%s_%s_s%d.png", stamp, sanitizeLabel(label), active)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
