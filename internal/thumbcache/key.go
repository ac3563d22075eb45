package thumbcache

import (
	"fmt"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// DeriveKey computes the cache key for a thumbnail of the given source
// path at the given box size. The key is a pure function of its inputs
// and stable across processes; it deliberately ignores file content, so
// an edited file keeps hitting its old entry until that entry expires.
//
// Paths are normalized lexically before hashing, so "/a//b.jpg" and
// "/a/b.jpg" share an entry. The size is folded in behind a separator to
// keep (path, size) pairs unambiguous.
func DeriveKey(path string, size int) string {
	normalized := filepath.Clean(path)
	sum := xxhash.Sum64String(fmt.Sprintf("%s|%d", normalized, size))
	return fmt.Sprintf("%016x", sum)
}
