// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway is the typed request/response client for the remote
// analysis service.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/paper-analyzer/internal/httputil"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const defaultTimeout = 120 * time.Second

// Kind classifies an upload for routing to the matching analysis endpoint.
type Kind string

const (
	KindPDF   Kind = "pdf"
	KindImage Kind = "image"
)

// KindForMediaType maps a declared media type to an analysis Kind. Only
// application/pdf and image/* uploads are supported; anything else is
// rejected here, before any network call.
func KindForMediaType(mediaType string) (Kind, error) {
	switch {
	case mediaType == "application/pdf":
		return KindPDF, nil
	case strings.HasPrefix(mediaType, "image/"):
		return KindImage, nil
	default:
		return "", &types.ValidationError{
			Reason: fmt.Sprintf("unsupported file type %q: upload a PDF or an image", mediaType),
		}
	}
}

// Client calls the analyzer backend. Calls carry no client-side state and
// are independent of one another; nothing except transport-level rate
// limiting is retried, so callers decide whether to re-trigger a failed
// operation.
type Client struct {
	base       string
	httpClient *http.Client
	userAgent  string
	maxRetries int
}

// New builds a Client from cfg. A zero timeout falls back to 120 s;
// analysis of a large document can take that long when the backend runs
// a local LLM.
func New(cfg types.GatewayConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:       strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}
}

// AnalyzeDocument uploads doc for analysis, with an optional question for
// the backend's LLM to answer against the extracted text. The endpoint
// is chosen from the document kind.
func (c *Client) AnalyzeDocument(ctx context.Context, doc types.Upload, question string) (types.AnalysisResult, error) {
	kind, err := KindForMediaType(doc.MediaType)
	if err != nil {
		return types.AnalysisResult{}, err
	}

	endpoint := "/analyze-pdf"
	if kind == KindImage {
		endpoint = "/analyze-image"
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", doc.Filename)
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(doc.Content); err != nil {
		return types.AnalysisResult{}, fmt.Errorf("building multipart body: %w", err)
	}
	if question != "" {
		if err := mw.WriteField("question", question); err != nil {
			return types.AnalysisResult{}, fmt.Errorf("building multipart body: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return types.AnalysisResult{}, fmt.Errorf("building multipart body: %w", err)
	}

	var result types.AnalysisResult
	if err := c.do(ctx, http.MethodPost, endpoint, &body, mw.FormDataContentType(), &result); err != nil {
		return types.AnalysisResult{}, err
	}
	return result, nil
}

// AskQuestion sends a general question to the backend's LLM. A non-empty
// question is a precondition; empty input is rejected without dispatch.
func (c *Client) AskQuestion(ctx context.Context, question string) (types.QAPair, error) {
	if strings.TrimSpace(question) == "" {
		return types.QAPair{}, &types.ValidationError{Reason: "question cannot be empty"}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("question", question); err != nil {
		return types.QAPair{}, fmt.Errorf("building multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return types.QAPair{}, fmt.Errorf("building multipart body: %w", err)
	}

	var payload struct {
		Success bool         `json:"success"`
		Answer  types.QAPair `json:"answer"`
	}
	if err := c.do(ctx, http.MethodPost, "/ask-question", &body, mw.FormDataContentType(), &payload); err != nil {
		return types.QAPair{}, err
	}
	return payload.Answer, nil
}

// ListDocuments returns the backend's view of ingested documents.
func (c *Client) ListDocuments(ctx context.Context) ([]types.DocumentSummary, error) {
	var payload struct {
		Success   bool                    `json:"success"`
		Documents []types.DocumentSummary `json:"documents"`
		Count     int                     `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/documents", nil, "", &payload); err != nil {
		return nil, err
	}
	return payload.Documents, nil
}

// Health probes the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) (types.HealthStatus, error) {
	var status types.HealthStatus
	err := c.do(ctx, http.MethodGet, "/health", nil, "", &status)
	return status, err
}

// OllamaStatus reports whether the backend's LLM runtime is reachable
// and which models it serves.
func (c *Client) OllamaStatus(ctx context.Context) (types.OllamaStatus, error) {
	var status types.OllamaStatus
	err := c.do(ctx, http.MethodGet, "/ollama-status", nil, "", &status)
	return status, err
}

// PaperOverview returns aggregate statistics over the backend's documents.
func (c *Client) PaperOverview(ctx context.Context) (types.PaperOverview, error) {
	var payload struct {
		Success  bool                `json:"success"`
		Overview types.PaperOverview `json:"overview"`
	}
	if err := c.do(ctx, http.MethodGet, "/paper-overview", nil, "", &payload); err != nil {
		return types.PaperOverview{}, err
	}
	return payload.Overview, nil
}

// do issues one request and decodes the JSON response into out.
// Transport failures surface as NetworkError; non-2xx responses surface
// as BackendError carrying the server's detail message when present.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return &types.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return backendError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// backendError extracts the server-supplied detail from an error body.
// The detail string is used verbatim when present.
func backendError(resp *http.Response) error {
	berr := &types.BackendError{Status: resp.StatusCode}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		berr.Detail = body.Detail
	}
	return berr
}
