package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"photo-viewer/internal/thumbcache"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	// A .env file is optional; real environment variables win. This
	// keeps the tool pointed at the same cache as the server.
	_ = godotenv.Load()

	cacheDir := os.Getenv("CACHE_DIR")
	if cacheDir == "" {
		cacheDir = defaultCacheDir()
	}

	ttl := thumbcache.DefaultTTL
	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid CACHE_TTL %q: %v\n", raw, err)
			os.Exit(1)
		}
		ttl = parsed
	}

	store, err := thumbcache.NewStore(cacheDir, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open thumbnail cache: %v\n", err)
		fmt.Fprintf(os.Stderr, "Make sure CACHE_DIR is set correctly (current: %s)\n", cacheDir)
		os.Exit(1)
	}
	janitor := thumbcache.NewJanitor(store)

	switch command {
	case "stats":
		showStats(janitor, cacheDir, ttl)
	case "sweep":
		runSweep(janitor)
	case "purge":
		if !runPurge(janitor, os.Stdin) {
			os.Exit(1)
		}
	default:
		// Sanitize command input using allowlist before echoing it back
		sanitized := sanitizeCommand(command)
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", sanitized)
		printUsage()
		os.Exit(1)
	}
}

// defaultCacheDir resolves the platform cache location for thumbnails,
// falling back to the temp dir when the user cache dir is unavailable.
// Matches the server's default so both operate on the same store.
func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "photo-viewer", "thumbnails")
}

// sanitizeCommand returns a safe representation of a command string for
// display. It uses an allowlist, replacing any character that is not
// alphanumeric, a hyphen, or an underscore with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func printUsage() {
	fmt.Println("Photo Viewer Thumbnail Cache Management")
	fmt.Println("")
	fmt.Println("Usage: cachectl <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  stats   - Show cache entry counts")
	fmt.Println("  sweep   - Remove expired entries")
	fmt.Println("  purge   - Remove all entries (asks for confirmation)")
	fmt.Println("")
	fmt.Println("Environment:")
	fmt.Println("  CACHE_DIR - Path to the thumbnail cache directory")
	fmt.Printf("  CACHE_TTL - Entry expiry age (default: %s)\n", thumbcache.DefaultTTL)
}

func showStats(janitor *thumbcache.Janitor, dir string, ttl time.Duration) {
	stats := janitor.Stat()

	fmt.Printf("Cache directory: %s\n", dir)
	fmt.Printf("Entry TTL:       %s\n", ttl)
	fmt.Printf("Total entries:   %d\n", stats.TotalEntries)
	fmt.Printf("Valid entries:   %d\n", stats.ValidEntries)
	if expired := stats.TotalEntries - stats.ValidEntries; expired > 0 {
		fmt.Printf("Expired entries: %d (run \"cachectl sweep\" to remove)\n", expired)
	}
}

func runSweep(janitor *thumbcache.Janitor) {
	start := time.Now()
	removed := janitor.Sweep()
	fmt.Printf("Removed %d expired thumbnails in %v\n", removed, time.Since(start).Round(time.Millisecond))
}

func runPurge(janitor *thumbcache.Janitor, in io.Reader) bool {
	fmt.Print("This removes ALL cached thumbnails. Continue? [y/N]: ")
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		fmt.Fprintf(os.Stderr, "Error reading answer: %v\n", err)
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		fmt.Println("Aborted.")
		return false
	}

	removed := janitor.Purge()
	fmt.Printf("Removed %d cached thumbnails.\n", removed)
	return true
}
