// Package handlers provides HTTP request handlers for the photo viewer API.
//
// It includes handlers for:
//   - Folder listing and change polling
//   - Full-resolution image loading
//   - Thumbnail generation and cache-only lookups
//   - Cache sweeping and statistics
//   - Single-file validation and descriptors
//   - Health checks, build info, and Prometheus metrics
package handlers
