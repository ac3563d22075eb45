// Package thumbcache persists generated thumbnails on disk, one JSON
// file per entry, keyed by a hash of the source path and requested size.
//
// Entries carry the base64-encoded thumbnail and a creation timestamp
// stamped at write time. Reads self-heal: an entry that is expired or no
// longer parses is deleted during the lookup and reported as a miss, so
// callers only ever see a usable entry or nothing. The Janitor does the
// same over the whole directory on demand.
//
// The store takes no locks. Concurrent requests for the same key may
// both generate and both write; whole-file overwrites make the race
// harmless, and the cost is one redundant generation.
package thumbcache
