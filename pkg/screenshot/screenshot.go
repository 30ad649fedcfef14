package screenshot

import (
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"time"

	kbinani "github.com/kbinani/screenshot"
	"github.com/pkg/errors"
)

// Capturer produces a raster image of the current display and stores it
// under the given directory, returning the absolute path of the written file.
type Capturer interface {
	Capture(directory string) (string, error)
}

// ScreenCapturer captures the primary physical display.
type ScreenCapturer struct{}

func NewScreenCapturer() *ScreenCapturer {
	return &ScreenCapturer{}
}

func (c *ScreenCapturer) Capture(directory string) (string, error) {
	return Create(directory)
}

// Create captures the full primary screen and saves it as a PNG file named
// by the capture time in nanoseconds. The directory is expected to exist.
func Create(directory string) (string, error) {
	if kbinani.NumActiveDisplays() == 0 {
		return "", errors.New("no active displays")
	}
	img, err := kbinani.CaptureRect(kbinani.GetDisplayBounds(0))
	if err != nil {
		return "", errors.Wrap(err, "capture screen")
	}

	filename := filepath.Join(directory, strconv.FormatInt(time.Now().UnixNano(), 10)+".png")
	file, err := os.Create(filename)
	if err != nil {
		return "", errors.Wrapf(err, "create screenshot file %s", filename)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", errors.Wrap(err, "encode screenshot")
	}

	return filepath.Abs(filename)
}
