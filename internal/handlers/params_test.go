package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"photo-viewer/internal/media"
)

// =============================================================================
// folderParams Tests
// =============================================================================

func TestParseFolderParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		wantPath  string
		wantSort  media.SortField
		wantOrder media.SortOrder
	}{
		{
			name:      "Defaults applied",
			url:       "/api/folder?path=/photos",
			wantPath:  "/photos",
			wantSort:  media.SortByName,
			wantOrder: media.SortAsc,
		},
		{
			name:      "Explicit sort and order",
			url:       "/api/folder?path=/photos&sort=date&order=desc",
			wantPath:  "/photos",
			wantSort:  media.SortByDate,
			wantOrder: media.SortDesc,
		},
		{
			name:      "Size sort",
			url:       "/api/folder?path=/photos&sort=size&order=asc",
			wantPath:  "/photos",
			wantSort:  media.SortBySize,
			wantOrder: media.SortAsc,
		},
		{
			name:      "Invalid values pass through for validation",
			url:       "/api/folder?path=/photos&sort=banana&order=sideways",
			wantPath:  "/photos",
			wantSort:  media.SortField("banana"),
			wantOrder: media.SortOrder("sideways"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := parseFolderParams(r)
			if p.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", p.Path, tt.wantPath)
			}
			if p.Sort != tt.wantSort {
				t.Errorf("Sort = %q, want %q", p.Sort, tt.wantSort)
			}
			if p.Order != tt.wantOrder {
				t.Errorf("Order = %q, want %q", p.Order, tt.wantOrder)
			}
		})
	}
}

func TestFolderParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  folderParams
		wantErr string
	}{
		{
			name:   "Valid",
			params: folderParams{Path: "/photos", Sort: media.SortByName, Order: media.SortAsc},
		},
		{
			name:    "Missing path",
			params:  folderParams{Sort: media.SortByName, Order: media.SortAsc},
			wantErr: "path: cannot be blank",
		},
		{
			name:    "Unknown sort field",
			params:  folderParams{Path: "/photos", Sort: "banana", Order: media.SortAsc},
			wantErr: "sort: must be a valid value",
		},
		{
			name:    "Unknown order",
			params:  folderParams{Path: "/photos", Sort: media.SortByName, Order: "sideways"},
			wantErr: "order: must be a valid value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// =============================================================================
// thumbnailParams Tests
// =============================================================================

func TestParseThumbnailParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		wantSize  int
		wantForce bool
		wantErr   string
	}{
		{
			name:     "Size defaults when absent",
			url:      "/api/thumbnail?path=/a.jpg",
			wantSize: 128,
		},
		{
			name:     "Explicit size",
			url:      "/api/thumbnail?path=/a.jpg&size=64",
			wantSize: 64,
		},
		{
			name:      "Force true",
			url:       "/api/thumbnail?path=/a.jpg&force=true",
			wantSize:  128,
			wantForce: true,
		},
		{
			name:      "Force as 1",
			url:       "/api/thumbnail?path=/a.jpg&force=1",
			wantSize:  128,
			wantForce: true,
		},
		{
			name:     "Force false",
			url:      "/api/thumbnail?path=/a.jpg&force=false",
			wantSize: 128,
		},
		{
			name:    "Size not an integer",
			url:     "/api/thumbnail?path=/a.jpg&size=big",
			wantErr: "size: must be an integer",
		},
		{
			name:    "Force not a boolean",
			url:     "/api/thumbnail?path=/a.jpg&force=banana",
			wantErr: "force: must be a boolean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p, err := parseThumbnailParams(r, 128)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected parse error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if p.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", p.Size, tt.wantSize)
			}
			if p.Force != tt.wantForce {
				t.Errorf("Force = %v, want %v", p.Force, tt.wantForce)
			}
		})
	}
}

func TestThumbnailParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  thumbnailParams
		wantErr string
	}{
		{
			name:   "Valid",
			params: thumbnailParams{Path: "/a.jpg", Size: 30},
		},
		{
			name:   "Size at lower bound",
			params: thumbnailParams{Path: "/a.jpg", Size: 1},
		},
		{
			name:   "Size at upper bound",
			params: thumbnailParams{Path: "/a.jpg", Size: media.MaxThumbnailSize},
		},
		{
			name:    "Size zero",
			params:  thumbnailParams{Path: "/a.jpg", Size: 0},
			wantErr: "size: must be between 1 and 4096",
		},
		{
			name:    "Size negative",
			params:  thumbnailParams{Path: "/a.jpg", Size: -5},
			wantErr: "size: must be between 1 and 4096",
		},
		{
			name:    "Size too large",
			params:  thumbnailParams{Path: "/a.jpg", Size: media.MaxThumbnailSize + 1},
			wantErr: "size: must be between 1 and 4096",
		},
		{
			name:    "Missing path",
			params:  thumbnailParams{Size: 30},
			wantErr: "path: cannot be blank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// =============================================================================
// changesParams Tests
// =============================================================================

func TestParseChangesParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		wantSince int64
		wantErr   bool
	}{
		{
			name:      "Since absent defaults to zero",
			url:       "/api/folder/changes?path=/photos",
			wantSince: 0,
		},
		{
			name:      "Since parsed",
			url:       "/api/folder/changes?path=/photos&since=1700000000",
			wantSince: 1700000000,
		},
		{
			name:    "Since negative",
			url:     "/api/folder/changes?path=/photos&since=-1",
			wantErr: true,
		},
		{
			name:    "Since not a number",
			url:     "/api/folder/changes?path=/photos&since=yesterday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p, err := parseChangesParams(r)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected parse error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if p.Since != tt.wantSince {
				t.Errorf("Since = %d, want %d", p.Since, tt.wantSince)
			}
		})
	}
}

// =============================================================================
// Rule Tests
// =============================================================================

func TestIntBetween(t *testing.T) {
	t.Parallel()

	rule := intBetween(1, 10)

	if err := rule(5); err != nil {
		t.Errorf("rule(5) = %v, want nil", err)
	}
	if err := rule(1); err != nil {
		t.Errorf("rule(1) = %v, want nil", err)
	}
	if err := rule(10); err != nil {
		t.Errorf("rule(10) = %v, want nil", err)
	}
	if err := rule(0); err == nil {
		t.Error("rule(0) = nil, want error")
	}
	if err := rule(11); err == nil {
		t.Error("rule(11) = nil, want error")
	}
	if err := rule("5"); err == nil {
		t.Error("rule on non-int = nil, want error")
	}
}
