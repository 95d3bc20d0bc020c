// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Status tracks a Paper's progress through analysis.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusError      Status = "Error"
)

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// CanTransition reports whether moving to next is a valid forward
// transition: Pending→InProgress→{Completed,Error}. Terminal states
// permit none.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted || next == StatusError
	default:
		return false
	}
}

// QAPair holds a question and its answer, captured either at upload time
// or from a follow-up query. The two live in separate slots: a follow-up
// answer never overwrites the one recorded at upload.
type QAPair struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Paper is a catalog record of one analyzed document and its derived
// metadata.
type Paper struct {
	// ID uniquely identifies the paper within the catalog. IDs are
	// monotonically increasing (milliseconds since epoch at creation).
	ID int64 `json:"id" yaml:"id"`

	// Title is the display name, derived from the filename minus its
	// extension unless overridden.
	Title string `json:"title" yaml:"title"`

	// Filename is the name the backend recorded for the upload.
	Filename string `json:"filename" yaml:"filename"`

	// Authors is free-form; defaults to "Unknown".
	Authors string `json:"authors" yaml:"authors"`

	// DateUploaded is the ISO calendar day (YYYY-MM-DD) of the upload.
	DateUploaded string `json:"date_uploaded" yaml:"date_uploaded"`

	Status Status `json:"status" yaml:"status"`

	// TextLength is the backend-reported length of the extracted text.
	TextLength int `json:"text_length" yaml:"text_length"`

	// ExtractedText is set exactly once, at creation, and never mutated.
	ExtractedText string `json:"extracted_text" yaml:"extracted_text"`

	// Answer is the question/answer pair captured at upload time, if any.
	Answer *QAPair `json:"answer,omitempty" yaml:"answer,omitempty"`

	// Analysis is the backend's opaque nested result (e.g. the raw OCR
	// payload for image uploads).
	Analysis map[string]any `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// Keyword is one ranked term extracted from a paper's text.
type Keyword struct {
	// Term is the display form, with its first character capitalized.
	Term string `json:"term" yaml:"term"`

	// Count is the term's frequency in the source text.
	Count int `json:"count" yaml:"count"`

	// Rank is the term's 1-based position in the ranked list.
	Rank int `json:"rank" yaml:"rank"`
}
