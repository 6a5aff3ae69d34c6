package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Dir is where viewport captures land, relative to the working directory.
const Dir = "snapshots"

// thumbScale divides the capture dimensions for the preview image.
const thumbScale = 4

// Capture writes the current framebuffer as a timestamped PNG under Dir plus
// a quarter-size preview next to it, and returns the capture path. The
// preview is best-effort; a resize failure still returns the full capture.
func Capture() (string, error) {
	if err := os.MkdirAll(Dir, 0755); err != nil {
		return "", err
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(Dir, "viewport-"+stamp+".png")
	rl.TakeScreenshot(path)
	if err := writeThumbnail(path, thumbPath(path)); err != nil {
		return path, err
	}
	return path, nil
}

// thumbPath derives the preview file name from the capture path.
func thumbPath(path string) string {
	return strings.TrimSuffix(path, ".png") + "_thumb.png"
}

// writeThumbnail shrinks the PNG at src by thumbScale and saves it to dst.
func writeThumbnail(src, dst string) error {
	img, err := imgio.Open(src)
	if err != nil {
		return err
	}
	b := img.Bounds()
	w, h := b.Dx()/thumbScale, b.Dy()/thumbScale
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	thumb := transform.Resize(img, w, h, transform.Linear)
	return imgio.Save(dst, thumb, imgio.PNGEncoder())
}
