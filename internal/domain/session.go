package domain

// FormatOption is one quality choice offered during the YouTube selection
// flow, as enumerated by the extraction library.
type FormatOption struct {
	ID   string `json:"format_id"`
	Note string `json:"format_note"`
	Ext  string `json:"ext"`
}

// Session tracks a user's in-progress URL/kind/quality selection. Sessions
// live in process memory only, between URL intake and a terminal outcome.
// AudioOnly is meaningful only once KindChosen is set; Formats are attached
// only for YouTube sessions, the one platform with a quality-selection step.
type Session struct {
	UserID     int64
	URL        string
	Platform   Platform
	AudioOnly  bool
	KindChosen bool
	Formats    []FormatOption
}
