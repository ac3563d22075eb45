// Package media implements the image side of the viewer backend:
// decoding and re-encoding source files for transport, rendering
// thumbnails into the persistent cache, listing folders of images, and
// watching the currently open folder for changes.
//
// Thumbnail rendering prefers a libvips shrink-on-load path when the
// library is available at runtime and falls back to the pure-Go
// pipeline otherwise. Callers never see the difference; both paths end
// in the same fit-and-encode step.
package media
