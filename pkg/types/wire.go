// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Upload is a document submitted for analysis.
type Upload struct {
	// Filename is sent as the multipart file name.
	Filename string

	// MediaType is the declared media type; only application/pdf and
	// image/* uploads are accepted.
	MediaType string

	// Content is the raw file bytes.
	Content []byte
}

// AnalysisResult is the wire-level payload returned by the analyzer for
// one document.
type AnalysisResult struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`

	// TextLength is the full length of the text the backend extracted.
	TextLength int `json:"text_length"`

	ExtractedText string `json:"extracted_text"`

	// Summary is an LLM-generated summary, present when the submitted
	// question asked for one.
	Summary string `json:"summary,omitempty"`

	// Answer is present when a question accompanied the upload.
	Answer *QAPair `json:"answer,omitempty"`

	// Analysis is the backend's nested result for image uploads (OCR
	// payload and related fields). Treated as opaque.
	Analysis map[string]any `json:"analysis,omitempty"`
}

// DocumentSummary describes one document the backend knows about.
type DocumentSummary struct {
	ID            string `json:"id"`
	AddedDate     string `json:"added_date"`
	ContentLength int    `json:"content_length"`
	WordCount     int    `json:"word_count"`
}

// HealthStatus is the backend liveness payload.
type HealthStatus struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	OllamaAvailable bool   `json:"ollama_available"`
}

// OllamaStatus reports the backend's LLM runtime availability.
type OllamaStatus struct {
	Status          string   `json:"status"`
	Message         string   `json:"message"`
	CurrentModel    string   `json:"current_model,omitempty"`
	AvailableModels []string `json:"available_models,omitempty"`
}

// PaperOverview aggregates statistics over the backend's documents.
type PaperOverview struct {
	TotalDocuments  int               `json:"total_documents"`
	TotalWords      int               `json:"total_words"`
	TotalCharacters int               `json:"total_characters"`
	Documents       []DocumentSummary `json:"documents"`
	LastUpdated     string            `json:"last_updated"`
}
