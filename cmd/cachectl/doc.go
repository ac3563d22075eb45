// Command cachectl provides a CLI utility for maintaining the thumbnail
// cache of the photo viewer application.
//
// It supports the following operations:
//   - stats: Show entry counts for the cache
//   - sweep: Remove expired entries
//   - purge: Remove all entries
//
// Usage:
//
//	cachectl <command>
//
// Commands:
//
//	stats   Display the cache directory, TTL, and the number of total
//	        and still-valid entries.
//
//	sweep   Remove entries older than the TTL. The server runs the
//	        same sweep on a schedule; this command is for running one
//	        on demand.
//
//	purge   Remove every cached thumbnail after confirmation. The
//	        server regenerates thumbnails on request, so a purge costs
//	        time, not data.
//
// Environment:
//
//	CACHE_DIR - Path to the thumbnail cache directory (default: the
//	            platform user cache dir under photo-viewer/thumbnails)
//	CACHE_TTL - Entry expiry age (default: 24h)
//
// Notes:
//
// The tool operates on the same store as the server and may run while
// the server is up. Entries it removes are regenerated on the next
// thumbnail request.
package main
