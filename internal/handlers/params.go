package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"photo-viewer/internal/media"

	v "github.com/go-ozzo/ozzo-validation/v4"
)

// intBetween rejects int values outside [lo, hi]. Unlike the stock
// threshold rules it also rejects the zero value, which matters for
// explicit size=0 requests.
func intBetween(lo, hi int) v.RuleFunc {
	return func(value interface{}) error {
		n, ok := value.(int)
		if !ok || n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

// fileParams carries the single-file query parameters shared by the
// image, validation, and descriptor endpoints.
type fileParams struct {
	Path string `json:"path"`
}

func parseFileParams(r *http.Request) fileParams {
	return fileParams{Path: r.URL.Query().Get("path")}
}

func (p fileParams) Validate() error {
	return v.ValidateStruct(&p,
		v.Field(&p.Path, v.Required),
	)
}

// folderParams carries folder listing parameters. Sort and order
// default to name ascending before validation runs.
type folderParams struct {
	Path  string          `json:"path"`
	Sort  media.SortField `json:"sort"`
	Order media.SortOrder `json:"order"`
}

func parseFolderParams(r *http.Request) folderParams {
	q := r.URL.Query()
	p := folderParams{
		Path:  q.Get("path"),
		Sort:  media.SortField(q.Get("sort")),
		Order: media.SortOrder(q.Get("order")),
	}
	if p.Sort == "" {
		p.Sort = media.SortByName
	}
	if p.Order == "" {
		p.Order = media.SortAsc
	}
	return p
}

func (p folderParams) Validate() error {
	return v.ValidateStruct(&p,
		v.Field(&p.Path, v.Required),
		v.Field(&p.Sort, v.In(media.SortByName, media.SortByDate, media.SortBySize)),
		v.Field(&p.Order, v.In(media.SortAsc, media.SortDesc)),
	)
}

// thumbnailParams carries thumbnail request parameters. Size defaults
// to the generator's configured box when the query leaves it unset.
type thumbnailParams struct {
	Path  string `json:"path"`
	Size  int    `json:"size"`
	Force bool   `json:"force"`
}

func parseThumbnailParams(r *http.Request, defaultSize int) (thumbnailParams, error) {
	q := r.URL.Query()
	p := thumbnailParams{Path: q.Get("path"), Size: defaultSize}

	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("size: must be an integer")
		}
		p.Size = n
	}
	if raw := q.Get("force"); raw != "" {
		force, err := strconv.ParseBool(raw)
		if err != nil {
			return p, fmt.Errorf("force: must be a boolean")
		}
		p.Force = force
	}
	return p, nil
}

func (p thumbnailParams) Validate() error {
	return v.ValidateStruct(&p,
		v.Field(&p.Path, v.Required),
		v.Field(&p.Size, v.By(intBetween(1, media.MaxThumbnailSize))),
	)
}

// changesParams carries change polling parameters. since is Unix
// seconds; zero asks about any change ever seen.
type changesParams struct {
	Path  string `json:"path"`
	Since int64  `json:"since"`
}

func parseChangesParams(r *http.Request) (changesParams, error) {
	q := r.URL.Query()
	p := changesParams{Path: q.Get("path")}

	if raw := q.Get("since"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return p, fmt.Errorf("since: must be a non-negative integer")
		}
		p.Since = n
	}
	return p, nil
}

func (p changesParams) Validate() error {
	return v.ValidateStruct(&p,
		v.Field(&p.Path, v.Required),
	)
}
