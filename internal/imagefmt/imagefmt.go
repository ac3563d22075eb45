package imagefmt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies one of the supported raster image formats.
type Format string

const (
	// FormatJPEG is the JPEG format (.jpg, .jpeg).
	FormatJPEG Format = "jpeg"
	// FormatPNG is the PNG format.
	FormatPNG Format = "png"
	// FormatWebP is the WebP format.
	FormatWebP Format = "webp"
	// FormatGIF is the GIF format, the only supported animated format.
	FormatGIF Format = "gif"
	// FormatUnknown marks content outside the supported set.
	FormatUnknown Format = ""
)

// ErrInvalidFormat is returned when a file's header does not identify a
// supported image format, or identifies a different format than the file
// extension declares.
var ErrInvalidFormat = errors.New("invalid image format")

// headerSize bounds the read used for magic-number sniffing. The longest
// magic checked is WebP's 12-byte RIFF container header.
const headerSize = 16

// extFormats maps lowercase file extensions to formats. The set is
// closed: anything else is unsupported regardless of content.
var extFormats = map[string]Format{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".webp": FormatWebP,
	".gif":  FormatGIF,
}

// IsSupported reports whether the path's extension belongs to the
// supported set. Case-insensitive; no file I/O is performed.
func IsSupported(path string) bool {
	return FormatForPath(path) != FormatUnknown
}

// FormatForPath returns the format the path's extension declares, or
// FormatUnknown for extensions outside the supported set.
func FormatForPath(path string) Format {
	return extFormats[strings.ToLower(filepath.Ext(path))]
}

// Extension returns the lowercase extension without the leading dot.
// Descriptors carry this form in their format field.
func Extension(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Sniff classifies a header prefix by magic numbers alone, independent of
// any filename.
func Sniff(header []byte) Format {
	switch {
	case len(header) >= 3 && header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF:
		return FormatJPEG

	case len(header) >= 8 && header[0] == 0x89 && header[1] == 0x50 && header[2] == 0x4E && header[3] == 0x47 &&
		header[4] == 0x0D && header[5] == 0x0A && header[6] == 0x1A && header[7] == 0x0A:
		return FormatPNG

	// GIF87a and GIF89a share the "GIF8" prefix.
	case len(header) >= 4 && header[0] == 0x47 && header[1] == 0x49 && header[2] == 0x46 && header[3] == 0x38:
		return FormatGIF

	case len(header) >= 12 && header[0] == 0x52 && header[1] == 0x49 && header[2] == 0x46 && header[3] == 0x46 &&
		header[8] == 0x57 && header[9] == 0x45 && header[10] == 0x42 && header[11] == 0x50:
		return FormatWebP
	}

	return FormatUnknown
}

// DetectFormat reads the file's leading bytes and classifies them.
// Unrecognized content yields (FormatUnknown, nil); a non-nil error means
// the file could not be read at all.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	header := make([]byte, headerSize)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return FormatUnknown, err
	}
	return Sniff(header[:n]), nil
}

// ValidateHeader confirms the file's content matches a supported format
// and agrees with the format its extension declares. Renamed or corrupted
// files fail here before any decoder sees them.
func ValidateHeader(path string) error {
	declared := FormatForPath(path)
	if declared == FormatUnknown {
		return fmt.Errorf("%w: unsupported extension %q", ErrInvalidFormat, filepath.Ext(path))
	}

	actual, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if actual == FormatUnknown {
		return fmt.Errorf("%w: unrecognized header", ErrInvalidFormat)
	}
	if actual != declared {
		return fmt.Errorf("%w: header is %s but extension declares %s", ErrInvalidFormat, actual, declared)
	}
	return nil
}
