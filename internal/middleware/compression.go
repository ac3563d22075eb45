package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// CompressionConfig holds configuration for the compression middleware.
type CompressionConfig struct {
	// MinSize is the minimum response size in bytes before compression
	// is applied.
	MinSize int
	// Level is the gzip compression level.
	Level int
	// CompressibleTypes lists the content types worth compressing.
	CompressibleTypes []string
}

// DefaultCompressionConfig returns defaults tuned for this API: almost
// every response is JSON carrying a base64 payload, which gzip shrinks
// enough to pay for itself.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize: 1024,
		Level:   gzip.DefaultCompression,
		CompressibleTypes: []string{
			"application/json",
			"text/plain",
		},
	}
}

// compressWriter wraps http.ResponseWriter and buffers the response until
// it can decide whether compressing is worthwhile.
type compressWriter struct {
	http.ResponseWriter
	pool       *sync.Pool
	config     CompressionConfig
	gz         *gzip.Writer
	buf        []byte
	statusCode int
	decided    bool
	compress   bool
}

func newCompressWriter(w http.ResponseWriter, config CompressionConfig, pool *sync.Pool) *compressWriter {
	return &compressWriter{
		ResponseWriter: w,
		pool:           pool,
		config:         config,
		statusCode:     http.StatusOK,
		buf:            make([]byte, 0, config.MinSize+1),
	}
}

// WriteHeader records the status code. The header is forwarded once the
// compression decision is made.
func (c *compressWriter) WriteHeader(statusCode int) {
	if c.decided {
		return
	}
	c.statusCode = statusCode
}

func (c *compressWriter) Write(data []byte) (int, error) {
	if c.decided {
		if c.gz != nil {
			return c.gz.Write(data)
		}
		return c.ResponseWriter.Write(data)
	}

	c.buf = append(c.buf, data...)
	if len(c.buf) > c.config.MinSize {
		c.decide()
	}

	return len(data), nil
}

func (c *compressWriter) compressibleContentType() bool {
	contentType := c.Header().Get("Content-Type")
	if contentType == "" {
		return false
	}

	// Strip parameters such as charset.
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))

	for _, compressible := range c.config.CompressibleTypes {
		if mediaType == compressible {
			return true
		}
	}
	return false
}

// decide commits to compressing or not and flushes the buffered body.
func (c *compressWriter) decide() {
	if c.decided {
		return
	}
	c.decided = true

	c.compress = len(c.buf) >= c.config.MinSize && c.compressibleContentType()

	if c.compress {
		// Content-Length no longer matches once the body is compressed.
		c.Header().Del("Content-Length")
		c.Header().Set("Content-Encoding", "gzip")
		c.Header().Add("Vary", "Accept-Encoding")

		c.gz = c.pool.Get().(*gzip.Writer)
		c.gz.Reset(c.ResponseWriter)

		c.ResponseWriter.WriteHeader(c.statusCode)
		c.gz.Write(c.buf)
	} else {
		c.ResponseWriter.WriteHeader(c.statusCode)
		if len(c.buf) > 0 {
			c.ResponseWriter.Write(c.buf)
		}
	}

	c.buf = nil
}

// Close finalizes the response and returns the gzip writer to the pool.
func (c *compressWriter) Close() error {
	if !c.decided {
		c.decide()
	}

	if c.gz != nil {
		err := c.gz.Close()
		c.pool.Put(c.gz)
		c.gz = nil
		return err
	}

	return nil
}

// Flush implements http.Flusher.
func (c *compressWriter) Flush() {
	if !c.decided {
		c.decide()
	}

	if c.gz != nil {
		c.gz.Flush()
	}

	if flusher, ok := c.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Push implements http.Pusher for HTTP/2 support.
func (c *compressWriter) Push(target string, opts *http.PushOptions) error {
	if pusher, ok := c.ResponseWriter.(http.Pusher); ok {
		return pusher.Push(target, opts)
	}
	return http.ErrNotSupported
}

// Compression returns a middleware that gzips responses for clients that
// accept it. Responses below MinSize or with content types outside the
// configured list pass through untouched.
func Compression(config CompressionConfig) func(http.Handler) http.Handler {
	if config.Level < gzip.HuffmanOnly || config.Level > gzip.BestCompression {
		config.Level = gzip.DefaultCompression
	}

	// Writers are pooled per middleware so each chain keeps its own level.
	pool := &sync.Pool{
		New: func() interface{} {
			w, _ := gzip.NewWriterLevel(io.Discard, config.Level)
			return w
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			cw := newCompressWriter(w, config, pool)
			defer cw.Close()

			next.ServeHTTP(cw, r)
		})
	}
}
