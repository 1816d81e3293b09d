package models

// Caps applied to ContentRecord fields. Extraction truncates to these
// limits to keep prompts small and scoring input bounded.
const (
	MaxTitleLen        = 180
	MaxHeadings        = 12
	MaxParagraphs      = 8
	MaxListItems       = 12
	MaxMetaEntries     = 12
	MaxLinkedDataTypes = 12
	MaxAnchorTexts     = 30
)

// ContentRecord is the structured content of a single fetched page.
// It is produced once per page and immutable after extraction. Every
// field defaults to empty, never nil, so scoring never has to
// distinguish missing from empty.
type ContentRecord struct {
	URL             string            `json:"url"`
	Title           string            `json:"title"`
	Headings        []string          `json:"headings"`
	Paragraphs      []string          `json:"paragraphs"`
	ListItems       []string          `json:"lists"`
	Meta            map[string]string `json:"meta"`
	LinkedDataTypes []string          `json:"jsonld_types"`
	AnchorTexts     []string          `json:"links_text"`

	// Enrichment from readability and language detection. Optional;
	// used for report defaults, never by the heuristic signals.
	Language  string `json:"language,omitempty"`
	Author    string `json:"author,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
	SiteName  string `json:"site_name,omitempty"`
	Published string `json:"published_time,omitempty"`
}

// NewContentRecord returns a record for url with all collection fields
// initialized to empty values.
func NewContentRecord(url string) *ContentRecord {
	return &ContentRecord{
		URL:             url,
		Headings:        []string{},
		Paragraphs:      []string{},
		ListItems:       []string{},
		Meta:            map[string]string{},
		LinkedDataTypes: []string{},
		AnchorTexts:     []string{},
	}
}
