package media

// ImageInfo describes one viewable image file in a folder listing. A
// descriptor is only ever built for a file whose header passed format
// validation; an extension match alone is not enough.
type ImageInfo struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Modified int64  `json:"modified"` // Unix seconds
	Format   string `json:"format"`   // lowercase extension, e.g. "jpg"
}

// ImageData is a full-resolution image prepared for transport. Format
// names the encoding of Payload, which for transcoded sources can
// differ from the file's extension (WebP is shipped as PNG). Animated
// GIFs carry their original bytes so animation survives.
type ImageData struct {
	Path    string `json:"path"`
	Payload string `json:"payload"` // base64
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Format  string `json:"format"`
}

// ThumbnailMeta pairs a thumbnail with the source image's full
// dimensions, probed from the header without a full decode.
type ThumbnailMeta struct {
	Thumbnail string `json:"thumbnail"` // base64 JPEG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// SortField specifies which descriptor field folder listings sort by.
type SortField string

// SortOrder specifies the direction of sorting.
type SortOrder string

const (
	// SortByName sorts by filename, case-insensitively.
	SortByName SortField = "name"
	// SortByDate sorts by modification time.
	SortByDate SortField = "date"
	// SortBySize sorts by file size.
	SortBySize SortField = "size"
	// SortAsc sorts in ascending order.
	SortAsc SortOrder = "asc"
	// SortDesc sorts in descending order.
	SortDesc SortOrder = "desc"
)
