// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upload drives a document through validation, submission to the
// analyzer, and catalog insertion.
package upload

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/paper-analyzer/internal/gateway"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// State identifies the orchestrator's position in the upload lifecycle.
type State string

const (
	StateIdle       State = "Idle"
	StateSelecting  State = "Selecting"
	StateValidating State = "Validating"
	StateSubmitting State = "Submitting"
	StateCompleted  State = "Completed"
	StateFailed     State = "Failed"
)

// Milestone progress values reported during submission. These are coarse
// approximations of the submission lifecycle, not measured transfer
// bytes: selection complete, request dispatched, response received.
const (
	progressSelected   = 10
	progressDispatched = 30
	progressDone       = 100
)

// Analyzer submits one document to the remote analysis service.
type Analyzer interface {
	AnalyzeDocument(ctx context.Context, doc types.Upload, question string) (types.AnalysisResult, error)
}

// Catalog receives the Paper built from a successful analysis.
type Catalog interface {
	Add(paper types.Paper) error
}

// Orchestrator coordinates one upload at a time: select a file, validate
// its type, submit it, and record the result. A failed submission may be
// retried with the same file. Exactly one submission may be outstanding;
// a second Start while one is pending is rejected, not queued.
type Orchestrator struct {
	analyzer Analyzer
	catalog  Catalog

	now        func() time.Time
	onProgress func(percent int)

	mu        sync.Mutex
	state     State
	path      string
	mediaType string
	progress  int
	lastErr   string
	lastID    int64
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the timestamp source used for Paper ids and upload
// dates.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithProgress registers a callback invoked at each submission milestone.
func WithProgress(fn func(percent int)) Option {
	return func(o *Orchestrator) { o.onProgress = fn }
}

// New returns an Orchestrator in the Idle state.
func New(analyzer Analyzer, catalog Catalog, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		analyzer: analyzer,
		catalog:  catalog,
		state:    StateIdle,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Progress returns the last reported milestone percentage.
func (o *Orchestrator) Progress() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.progress
}

// LastError returns the message captured from the most recent failure.
func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Select records the chosen file and its declared media type. When
// mediaType is empty it is sniffed from the filename extension. Select
// is valid from Idle, Failed, and Completed (beginning the next upload),
// and from Selecting to pick a different file before starting. It is
// rejected while a submission is pending.
func (o *Orchestrator) Select(path, mediaType string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateIdle, StateFailed, StateSelecting, StateCompleted:
	default:
		return &types.ValidationError{
			Reason: fmt.Sprintf("cannot select a file in state %s", o.state),
		}
	}

	if mediaType == "" {
		mediaType = mime.TypeByExtension(filepath.Ext(path))
	}

	o.path = path
	o.mediaType = mediaType
	o.state = StateSelecting
	o.progress = 0
	o.lastErr = ""
	return nil
}

// Start validates the selected file and submits it for analysis. On
// success the resulting Paper is appended to the catalog and returned;
// on failure the error message is captured, progress resets to zero, and
// no Paper is created. Start from Failed retries with the same file.
func (o *Orchestrator) Start(ctx context.Context, question string) (types.Paper, error) {
	o.mu.Lock()
	if o.state == StateSubmitting {
		o.mu.Unlock()
		err := &types.ValidationError{Reason: "a submission is already in progress"}
		return types.Paper{}, err
	}
	if o.state != StateSelecting && o.state != StateFailed {
		o.mu.Unlock()
		return types.Paper{}, &types.ValidationError{Reason: "no file selected"}
	}
	if o.path == "" {
		o.mu.Unlock()
		return types.Paper{}, &types.ValidationError{Reason: "no file selected"}
	}
	o.state = StateValidating
	path, mediaType := o.path, o.mediaType
	o.mu.Unlock()

	// Type check happens before any file read or network call.
	if _, err := gateway.KindForMediaType(mediaType); err != nil {
		return types.Paper{}, o.fail(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		verr := &types.ValidationError{Reason: fmt.Sprintf("cannot read %s: %v", path, err)}
		return types.Paper{}, o.fail(verr)
	}

	o.setState(StateSubmitting)
	o.report(progressSelected)

	doc := types.Upload{
		Filename:  filepath.Base(path),
		MediaType: mediaType,
		Content:   content,
	}

	o.report(progressDispatched)
	result, err := o.analyzer.AnalyzeDocument(ctx, doc, question)
	if err != nil {
		return types.Paper{}, o.fail(err)
	}
	o.report(progressDone)

	paper := o.buildPaper(doc, result)
	if err := o.catalog.Add(paper); err != nil {
		return types.Paper{}, o.fail(err)
	}

	o.setState(StateCompleted)
	return paper, nil
}

// fail captures the error message, resets progress, and moves to Failed.
func (o *Orchestrator) fail(err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastErr = err.Error()
	o.progress = 0
	o.state = StateFailed
	return err
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) report(percent int) {
	o.mu.Lock()
	o.progress = percent
	fn := o.onProgress
	o.mu.Unlock()
	if fn != nil {
		fn(percent)
	}
}

// buildPaper assembles the catalog record from a successful analysis
// response. IDs are creation timestamps in milliseconds, bumped when two
// submissions land in the same millisecond so they stay monotonic.
func (o *Orchestrator) buildPaper(doc types.Upload, result types.AnalysisResult) types.Paper {
	now := o.now()

	o.mu.Lock()
	id := now.UnixMilli()
	if id <= o.lastID {
		id = o.lastID + 1
	}
	o.lastID = id
	o.mu.Unlock()

	filename := result.Filename
	if filename == "" {
		filename = doc.Filename
	}

	return types.Paper{
		ID:            id,
		Title:         strings.TrimSuffix(doc.Filename, filepath.Ext(doc.Filename)),
		Filename:      filename,
		Authors:       "Unknown",
		DateUploaded:  now.UTC().Format("2006-01-02"),
		Status:        types.StatusCompleted,
		TextLength:    result.TextLength,
		ExtractedText: result.ExtractedText,
		Answer:        result.Answer,
		Analysis:      result.Analysis,
	}
}
