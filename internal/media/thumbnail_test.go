package media

import (
	"errors"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"photo-viewer/internal/thumbcache"
)

func newTestGenerator(t *testing.T) (*Generator, *thumbcache.Store) {
	t.Helper()
	store, err := thumbcache.NewStore(filepath.Join(t.TempDir(), "thumbs"), 0)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return NewGenerator(store, DefaultThumbnailSize, DefaultJPEGQuality), store
}

func countEntries(t *testing.T, store *thumbcache.Store) int {
	t.Helper()
	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("failed to read store dir: %v", err)
	}
	count := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			count++
		}
	}
	return count
}

func TestGetOrCreateEndToEnd(t *testing.T) {
	g, _ := newTestGenerator(t)
	dir := t.TempDir()
	path := writeJPEG(t, dir, "large.jpg", 4000, 3000)

	before := time.Now().Unix()
	entry, err := g.GetOrCreate(path, 30, false)
	after := time.Now().Unix()
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	if entry.Created < before || entry.Created > after {
		t.Errorf("Created = %d, want within [%d, %d]", entry.Created, before, after)
	}

	img, format := decodePayload(t, entry.Thumbnail)
	if format != "jpeg" {
		t.Errorf("thumbnail encoding = %q, want jpeg", format)
	}
	b := img.Bounds()
	if b.Dx() > 30 || b.Dy() > 30 {
		t.Errorf("thumbnail %dx%d exceeds 30x30 box", b.Dx(), b.Dy())
	}
	// 4000x3000 fit into 30: the long edge pins to 30 and the short
	// edge lands within a pixel of 4:3.
	if b.Dx() != 30 || (b.Dy() != 22 && b.Dy() != 23) {
		t.Errorf("thumbnail = %dx%d, want 30x22 or 30x23", b.Dx(), b.Dy())
	}

	// Destroy the source. A repeat request must come from the cache,
	// byte for byte, proving the decoder was not consulted again.
	if err := os.WriteFile(path, []byte("source destroyed"), 0644); err != nil {
		t.Fatalf("failed to destroy source: %v", err)
	}
	again, err := g.GetOrCreate(path, 30, false)
	if err != nil {
		t.Fatalf("cached GetOrCreate error: %v", err)
	}
	if again.Thumbnail != entry.Thumbnail {
		t.Error("second response is not byte-identical to the first")
	}

	// Forcing regeneration now must fail against the destroyed source
	// and must leave the existing entry alone.
	if _, err := g.GetOrCreate(path, 30, true); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("forced regenerate = %v, want ErrUnsupportedFormat", err)
	}
	kept, err := g.GetOrCreate(path, 30, false)
	if err != nil {
		t.Fatalf("GetOrCreate after failed force: %v", err)
	}
	if kept.Thumbnail != entry.Thumbnail {
		t.Error("failed regeneration clobbered the cached entry")
	}
}

func TestGetOrCreateNoUpscale(t *testing.T) {
	g, _ := newTestGenerator(t)
	path := writeJPEG(t, t.TempDir(), "tiny.jpg", 10, 6)

	entry, err := g.GetOrCreate(path, 30, false)
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	img, _ := decodePayload(t, entry.Thumbnail)
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 6 {
		t.Errorf("small source upscaled to %dx%d, want 10x6", b.Dx(), b.Dy())
	}
}

func TestGetOrCreateSizeSeparation(t *testing.T) {
	g, store := newTestGenerator(t)
	path := writeJPEG(t, t.TempDir(), "photo.jpg", 100, 60)

	small, err := g.GetOrCreate(path, 30, false)
	if err != nil {
		t.Fatalf("size 30 error: %v", err)
	}
	large, err := g.GetOrCreate(path, 50, false)
	if err != nil {
		t.Fatalf("size 50 error: %v", err)
	}

	if got := countEntries(t, store); got != 2 {
		t.Errorf("store holds %d entries, want 2 (one per size)", got)
	}

	imgSmall, _ := decodePayload(t, small.Thumbnail)
	imgLarge, _ := decodePayload(t, large.Thumbnail)
	if b := imgSmall.Bounds(); b.Dx() != 30 || b.Dy() != 18 {
		t.Errorf("size 30 thumbnail = %dx%d, want 30x18", b.Dx(), b.Dy())
	}
	if b := imgLarge.Bounds(); b.Dx() != 50 || b.Dy() != 30 {
		t.Errorf("size 50 thumbnail = %dx%d, want 50x30", b.Dx(), b.Dy())
	}
}

func TestGetOrCreateDefaultSize(t *testing.T) {
	g, _ := newTestGenerator(t)
	path := writeJPEG(t, t.TempDir(), "photo.jpg", 100, 60)

	entry, err := g.GetOrCreate(path, 0, false)
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	img, _ := decodePayload(t, entry.Thumbnail)
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 18 {
		t.Errorf("default-size thumbnail = %dx%d, want 30x18", b.Dx(), b.Dy())
	}
}

func TestGetOrCreateGIFSingleFrame(t *testing.T) {
	g, _ := newTestGenerator(t)
	path := writeAnimatedGIF(t, t.TempDir(), "anim.gif", 4)

	entry, err := g.GetOrCreate(path, 30, false)
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}

	// Thumbnails of animated sources are one representative frame,
	// re-encoded like any other bitmap.
	img, format := decodePayload(t, entry.Thumbnail)
	if format != "jpeg" {
		t.Errorf("gif thumbnail encoding = %q, want jpeg", format)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("gif thumbnail = %dx%d, want 4x4", b.Dx(), b.Dy())
	}
}

func TestGetOrCreateFailures(t *testing.T) {
	g, store := newTestGenerator(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing file", dir + "/missing.jpg", ErrNotFound},
		{"directory", dir, ErrNotFound},
		{"unsupported extension", writeFakeImage(t, dir, "doc.txt"), ErrUnsupportedFormat},
		{"garbage content", writeFakeImage(t, dir, "fake.png"), ErrUnsupportedFormat},
		{"truncated body", writeTruncatedJPEG(t, dir, "trunc.jpg"), ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.GetOrCreate(tt.path, 30, false); !errors.Is(err, tt.want) {
				t.Errorf("GetOrCreate(%s) = %v, want %v", tt.path, err, tt.want)
			}
		})
	}

	// None of the failures may have left a partial entry behind.
	if got := countEntries(t, store); got != 0 {
		t.Errorf("store holds %d entries after failures, want 0", got)
	}
}

func TestCachedOnly(t *testing.T) {
	g, _ := newTestGenerator(t)
	path := writeJPEG(t, t.TempDir(), "photo.jpg", 20, 20)

	entry, err := g.CachedOnly(path, 30)
	if err != nil {
		t.Fatalf("CachedOnly error: %v", err)
	}
	if entry != nil {
		t.Fatal("CachedOnly returned an entry before anything was generated")
	}

	generated, err := g.GetOrCreate(path, 30, false)
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}

	cached, err := g.CachedOnly(path, 30)
	if err != nil {
		t.Fatalf("CachedOnly error: %v", err)
	}
	if cached == nil || cached.Thumbnail != generated.Thumbnail {
		t.Error("CachedOnly did not return the generated payload")
	}

	// A different size is a different key and must still miss.
	miss, err := g.CachedOnly(path, 60)
	if err != nil {
		t.Fatalf("CachedOnly error: %v", err)
	}
	if miss != nil {
		t.Error("CachedOnly hit for a size that was never generated")
	}
}

func TestWithDimensions(t *testing.T) {
	g, _ := newTestGenerator(t)
	path := writeJPEG(t, t.TempDir(), "photo.jpg", 100, 60)

	meta, err := g.WithDimensions(path, 30, false)
	if err != nil {
		t.Fatalf("WithDimensions error: %v", err)
	}
	if meta.Width != 100 || meta.Height != 60 {
		t.Errorf("source dimensions = %dx%d, want 100x60", meta.Width, meta.Height)
	}

	img, _ := decodePayload(t, meta.Thumbnail)
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 18 {
		t.Errorf("thumbnail = %dx%d, want 30x18", b.Dx(), b.Dy())
	}

	// The thumbnail half is served from the cache on repeat calls.
	again, err := g.WithDimensions(path, 30, false)
	if err != nil {
		t.Fatalf("repeat WithDimensions error: %v", err)
	}
	if again.Thumbnail != meta.Thumbnail {
		t.Error("repeat call did not reuse the cached thumbnail")
	}
}

func TestWithDimensionsFailures(t *testing.T) {
	g, _ := newTestGenerator(t)
	dir := t.TempDir()

	if _, err := g.WithDimensions(dir+"/missing.jpg", 30, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file = %v, want ErrNotFound", err)
	}
	if _, err := g.WithDimensions(writeFakeImage(t, dir, "notes.txt"), 30, false); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unsupported = %v, want ErrUnsupportedFormat", err)
	}
}

func TestGetOrCreateForceRegenerates(t *testing.T) {
	g, _ := newTestGenerator(t)
	dir := t.TempDir()
	path := writeJPEG(t, dir, "photo.jpg", 100, 60)

	first, err := g.GetOrCreate(path, 30, false)
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}

	// Replace the source in place. Same path, same size: without force
	// the stale entry is served; with force the new content is.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove source: %v", err)
	}
	writeJPEG(t, dir, "photo.jpg", 40, 40)

	stale, err := g.GetOrCreate(path, 30, false)
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	if stale.Thumbnail != first.Thumbnail {
		t.Error("unforced request did not serve the cached entry")
	}

	fresh, err := g.GetOrCreate(path, 30, true)
	if err != nil {
		t.Fatalf("forced GetOrCreate error: %v", err)
	}
	img, _ := decodePayload(t, fresh.Thumbnail)
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 30 {
		t.Errorf("regenerated thumbnail = %dx%d, want 30x30", b.Dx(), b.Dy())
	}
	if fresh.Thumbnail == first.Thumbnail {
		t.Error("forced request returned the stale payload")
	}
}

func BenchmarkRender(b *testing.B) {
	dir := b.TempDir()
	path := filepath.Join(dir, "bench.jpg")
	f, err := os.Create(path)
	if err != nil {
		b.Fatal(err)
	}
	if err := jpeg.Encode(f, testImage(1024, 768), &jpeg.Options{Quality: 85}); err != nil {
		b.Fatal(err)
	}
	f.Close()

	store, err := thumbcache.NewStore(filepath.Join(dir, "thumbs"), 0)
	if err != nil {
		b.Fatal(err)
	}
	g := NewGenerator(store, DefaultThumbnailSize, DefaultJPEGQuality)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.render(path, 30); err != nil {
			b.Fatal(err)
		}
	}
}
