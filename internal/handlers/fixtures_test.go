package handlers

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"photo-viewer/internal/media"
	"photo-viewer/internal/startup"
	"photo-viewer/internal/thumbcache"
)

// minimalGIF is a complete 1x1 black GIF89a file.
var minimalGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x04, 0x01, 0x00, 0x3B,
}

func testImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}
	return img
}

func writeJPEG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, testImage(width, height), &jpeg.Options{Quality: 85}); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

func writePNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, testImage(width, height)); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

func writeGIF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, minimalGIF, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// writeFakeImage writes plain text under an image extension; it must
// fail header validation.
func writeFakeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("This is not an image"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// writeTruncatedJPEG writes a file with a valid JPEG magic number but
// garbage after it; it passes header validation and fails to decode.
func writeTruncatedJPEG(t *testing.T, dir, name string) string {
	t.Helper()
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00}
	data = append(data, []byte("garbage where scan data should be")...)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// newTestHandlers builds a handler set over a throwaway cache
// directory with real components behind it. The watcher is nil; tests
// exercising change polling install their own.
func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()

	cacheDir := t.TempDir()
	store, err := thumbcache.NewStore(cacheDir, time.Hour)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	config := &startup.Config{CacheDir: cacheDir}
	return New(
		media.NewScanner(),
		media.NewGenerator(store, media.DefaultThumbnailSize, media.DefaultJPEGQuality),
		thumbcache.NewJanitor(store),
		nil,
		config,
		"",
	)
}

// writeRawEntry plants an entry file directly in the cache directory,
// bypassing the store, so tests can control the created timestamp.
func writeRawEntry(t *testing.T, cacheDir, key, thumbnail string, created int64) {
	t.Helper()
	body := `{"thumbnail":"` + thumbnail + `","created":` + strconv.FormatInt(created, 10) + `}`
	path := filepath.Join(cacheDir, key+".json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write entry %s: %v", key, err)
	}
}
