package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"photo-viewer/internal/imagefmt"
	"photo-viewer/internal/logging"
	"photo-viewer/internal/metrics"
	"photo-viewer/internal/workers"
)

// Scanner lists folders of images for the viewer. Listings are shallow:
// only direct children of the folder are considered, never
// subdirectories.
type Scanner struct {
	workers int
}

// NewScanner returns a Scanner with a validation pool sized for
// I/O-bound work.
func NewScanner() *Scanner {
	return &Scanner{workers: workers.ForIO(16)}
}

// FolderImages returns descriptors for every supported, header-valid
// image directly inside folder, sorted as requested. Files that fail
// validation are skipped and counted, never fatal. An empty folder
// yields an empty list; a missing or non-directory path is an error.
func (s *Scanner) FolderImages(folder string, field SortField, order SortOrder) ([]ImageInfo, error) {
	start := time.Now()
	defer func() {
		metrics.FolderScansTotal.Inc()
		metrics.FolderScanDuration.Observe(time.Since(start).Seconds())
	}()

	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFolder, folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !imagefmt.IsSupported(entry.Name()) {
			continue
		}
		candidates = append(candidates, filepath.Join(folder, entry.Name()))
	}

	images := s.describeAll(candidates)
	sortImages(images, field, order)

	logging.Debug("scanned %s: %d of %d candidates listed in %v",
		folder, len(images), len(candidates), time.Since(start))
	return images, nil
}

// describeAll builds descriptors for the candidate paths through a
// bounded worker pool; header validation is I/O-bound, so folders of
// thousands of files benefit from overlap. Results are reassembled in
// input order before sorting so listings stay deterministic.
func (s *Scanner) describeAll(paths []string) []ImageInfo {
	if len(paths) == 0 {
		return []ImageInfo{}
	}

	type result struct {
		index int
		info  ImageInfo
		err   error
	}

	jobs := make(chan int, len(paths))
	results := make(chan result, len(paths))

	n := s.workers
	if n > len(paths) {
		n = len(paths)
	}

	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				info, err := Describe(paths[i])
				results <- result{index: i, info: info, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(results)

	var skipped int
	ordered := make([]*ImageInfo, len(paths))
	for r := range results {
		if r.err != nil {
			logging.Debug("skipping %s: %v", paths[r.index], r.err)
			skipped++
			continue
		}
		info := r.info
		ordered[r.index] = &info
	}

	images := make([]ImageInfo, 0, len(paths))
	for _, info := range ordered {
		if info != nil {
			images = append(images, *info)
		}
	}

	metrics.ScannerFilesScanned.Add(float64(len(paths)))
	metrics.ScannerFilesSkipped.Add(float64(skipped))
	return images
}

// Describe builds the descriptor for a single image file. The header is
// validated first; a descriptor is never produced for a file that fails
// it, no matter what the extension claims.
func Describe(path string) (ImageInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ImageInfo{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return ImageInfo{}, err
	}
	if info.IsDir() {
		return ImageInfo{}, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	if !imagefmt.IsSupported(path) {
		return ImageInfo{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err := imagefmt.ValidateHeader(path); err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	return ImageInfo{
		Path:     path,
		Filename: filepath.Base(path),
		Size:     info.Size(),
		Modified: info.ModTime().Unix(),
		Format:   imagefmt.Extension(path),
	}, nil
}

// sortImages orders a listing in place. Name comparison is
// case-insensitive; date and size ties fall back to the name so the
// order is stable across runs.
func sortImages(images []ImageInfo, field SortField, order SortOrder) {
	sort.SliceStable(images, func(i, j int) bool {
		a, b := images[i], images[j]

		var less bool
		switch field {
		case SortByDate:
			if a.Modified == b.Modified {
				less = lowerName(a) < lowerName(b)
			} else {
				less = a.Modified < b.Modified
			}
		case SortBySize:
			if a.Size == b.Size {
				less = lowerName(a) < lowerName(b)
			} else {
				less = a.Size < b.Size
			}
		default:
			less = lowerName(a) < lowerName(b)
		}

		if order == SortDesc {
			return !less
		}
		return less
	})
}

func lowerName(info ImageInfo) string {
	return strings.ToLower(info.Filename)
}
