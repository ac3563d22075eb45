package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"photo-viewer/internal/imagefmt"
	"photo-viewer/internal/logging"
	"photo-viewer/internal/metrics"

	_ "image/gif"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP decode support
)

const (
	// MaxImagePixels bounds the pixel count accepted by the decoders.
	// A decoded RGBA frame costs 4 bytes per pixel, so this keeps any
	// single frame under ~400MB while passing everything cameras
	// produce. Probed from the header before pixel data is read.
	MaxImagePixels = 100_000_000

	// transportJPEGQuality is used when re-encoding a full-resolution
	// JPEG for transport.
	transportJPEGQuality = 95
)

// ImageDimensions holds a probed width and height.
type ImageDimensions struct {
	Width  int
	Height int
}

// Dimensions reads the image's dimensions from its header without
// decoding pixel data. Folder listings and the large-image guard depend
// on this staying cheap; never replace it with a full decode.
func Dimensions(path string) (ImageDimensions, error) {
	file, err := os.Open(path)
	if err != nil {
		return ImageDimensions{}, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close image file %s: %v", path, err)
		}
	}()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return ImageDimensions{}, err
	}
	return ImageDimensions{Width: config.Width, Height: config.Height}, nil
}

// LoadImage loads the full-resolution image at path for transport.
// Animated GIF sources are passed through byte-for-byte so animation
// survives; everything else is decoded and re-encoded.
func LoadImage(path string) (data *ImageData, err error) {
	if err := statFile(path); err != nil {
		return nil, err
	}

	format := imagefmt.FormatForPath(path)
	if format == imagefmt.FormatUnknown {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.ImageLoadsTotal.WithLabelValues(string(format), status).Inc()
		metrics.ImageLoadDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	}()

	if err := imagefmt.ValidateHeader(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	if format == imagefmt.FormatGIF {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, readErr
		}
		dims, dimErr := Dimensions(path)
		if dimErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, dimErr)
		}
		return &ImageData{
			Path:    path,
			Payload: base64.StdEncoding.EncodeToString(raw),
			Width:   dims.Width,
			Height:  dims.Height,
			Format:  string(imagefmt.FormatGIF),
		}, nil
	}

	dims, err := Dimensions(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := checkPixelBudget(dims); err != nil {
		return nil, err
	}

	img, err := decodeImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	encoded, transport, err := encodeTransport(img, format)
	if err != nil {
		return nil, err
	}

	// Report the decoded bounds, not the probed ones: auto-orientation
	// can swap width and height relative to the raw header.
	bounds := img.Bounds()
	return &ImageData{
		Path:    path,
		Payload: base64.StdEncoding.EncodeToString(encoded),
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Format:  string(transport),
	}, nil
}

// statFile maps missing paths and directories onto ErrNotFound. Other
// stat failures (permissions) pass through untouched.
func statFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	return nil
}

// checkPixelBudget rejects images so large that decoding them would
// exhaust memory.
func checkPixelBudget(dims ImageDimensions) error {
	if pixels := dims.Width * dims.Height; pixels > MaxImagePixels {
		return fmt.Errorf("%w: image too large (%dx%d, %d pixels)", ErrDecode, dims.Width, dims.Height, pixels)
	}
	return nil
}

// decodeImage decodes the file into a bitmap, applying EXIF
// auto-orientation. The direct image.Decode fallback catches files the
// imaging front end refuses but a registered codec can still handle.
func decodeImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	logging.Debug("imaging.Open failed for %s: %v, trying direct decode", path, err)

	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer file.Close()

	img, _, decErr := image.Decode(file)
	if decErr != nil {
		return nil, fmt.Errorf("decode failed: %v (imaging: %v)", decErr, err)
	}
	return img, nil
}

// encodeTransport re-encodes a decoded bitmap for transport. JPEG stays
// JPEG and PNG stays PNG; WebP is shipped as PNG since no pure-Go WebP
// encoder exists. The returned format names the actual encoding.
func encodeTransport(img image.Image, declared imagefmt.Format) ([]byte, imagefmt.Format, error) {
	var buf bytes.Buffer
	switch declared {
	case imagefmt.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: transportJPEGQuality}); err != nil {
			return nil, imagefmt.FormatUnknown, fmt.Errorf("failed to encode jpeg: %w", err)
		}
		return buf.Bytes(), imagefmt.FormatJPEG, nil

	case imagefmt.FormatPNG, imagefmt.FormatWebP:
		if err := png.Encode(&buf, img); err != nil {
			return nil, imagefmt.FormatUnknown, fmt.Errorf("failed to encode png: %w", err)
		}
		return buf.Bytes(), imagefmt.FormatPNG, nil

	default:
		return nil, imagefmt.FormatUnknown, fmt.Errorf("%w: no transport encoding for %q", ErrUnsupportedFormat, declared)
	}
}
