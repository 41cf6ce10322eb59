package domain

// URLKind classifies the resolved URL of a source citation.
type URLKind string

const (
	// URLKindNone means no URL could be resolved.
	URLKindNone URLKind = "none"
	// URLKindNuclia is an absolute URL into the search backend itself.
	URLKindNuclia URLKind = "nuclia"
	// URLKindExternal is any other absolute HTTP(S) URL.
	URLKindExternal URLKind = "external"
	// URLKindResource is a bare identifier that is not a URL.
	URLKindResource URLKind = "resource"
)

// Source is a normalized citation derived from a passage hit and its
// resource metadata. Order follows the search response; IDs are assigned
// densely over emitted sources, starting at 1.
type Source struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Score      *float64 `json:"score"`
	Page       *int     `json:"page"`
	Field      string   `json:"field"`
	ResourceID string   `json:"resource_id"`
	URL        string   `json:"url"`
	URLType    URLKind  `json:"url_type"`
	HasURL     bool     `json:"has_url"`
}
