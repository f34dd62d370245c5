package models

// ScrapeRequest describes one user-initiated product search. It is built
// once per scrape action and never reused.
type ScrapeRequest struct {
	WebsiteURL    string   `json:"website_url"`
	SearchTerm    string   `json:"search_term"`
	ExtractFields []string `json:"extract_fields"`
	MaxResults    int      `json:"max_results"`
	APIKey        string   `json:"api_key,omitempty"`
}

// ScrapeRecord is one extracted product row. Every record in a response
// carries exactly the requested fields plus the synthesized Confidence key;
// values that could not be extracted are empty strings, never missing.
type ScrapeRecord map[string]string

// ConfidenceKey is the synthesized per-record score column.
const ConfidenceKey = "Confidence"

// UsageInfo carries metering counters for backends that charge per call.
type UsageInfo struct {
	CreditsUsed      int `json:"credits_used"`
	CreditsRemaining int `json:"credits_remaining"`
}

// ScrapeResponse is the uniform envelope returned by every backend.
// Exactly one of Data or Error is meaningful, selected by Success.
type ScrapeResponse struct {
	Success bool           `json:"success"`
	Data    []ScrapeRecord `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Usage   *UsageInfo     `json:"usage,omitempty"`

	// Columns preserves the record key order (request fields, then
	// Confidence) so tabular output is stable across backends.
	Columns []string `json:"-"`
}

// Failure builds an error envelope with a human-readable reason.
func Failure(reason string) *ScrapeResponse {
	return &ScrapeResponse{Success: false, Error: reason}
}

// ValueKind describes how a selector's match is turned into a value.
// Only text extraction is supported today.
type ValueKind string

const KindText ValueKind = "text"

// Rule maps one requested field to its candidate selectors, tried in order
// until one yields a non-empty value. Backends that speak a wire format
// with a single selector string join the candidates themselves.
type Rule struct {
	Field     string
	Selectors []string
	Kind      ValueKind
}

// CredentialStatus is the result of a low-cost key probe.
type CredentialStatus struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"error,omitempty"`
}
