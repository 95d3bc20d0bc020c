// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// fakeAnalyzer returns a canned result or error, optionally blocking
// until released so tests can hold a submission in flight.
type fakeAnalyzer struct {
	result  types.AnalysisResult
	err     error
	calls   int32
	release chan struct{}
}

func (f *fakeAnalyzer) AnalyzeDocument(_ context.Context, _ types.Upload, _ string) (types.AnalysisResult, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

// fakeCatalog records added papers.
type fakeCatalog struct {
	papers []types.Paper
	err    error
}

func (f *fakeCatalog) Add(p types.Paper) error {
	if f.err != nil {
		return f.err
	}
	f.papers = append(f.papers, p)
	return nil
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStart_SuccessfulPDFUpload(t *testing.T) {
	analyzer := &fakeAnalyzer{result: types.AnalysisResult{
		Success:       true,
		Filename:      "thesis.pdf",
		TextLength:    42,
		ExtractedText: "extracted body text",
	}}
	catalog := &fakeCatalog{}
	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	var milestones []int
	orch := New(analyzer, catalog,
		WithClock(fixedClock(when)),
		WithProgress(func(p int) { milestones = append(milestones, p) }),
	)

	path := writeTempFile(t, "thesis.pdf", "%PDF-1.4")
	require.NoError(t, orch.Select(path, "application/pdf"))
	assert.Equal(t, StateSelecting, orch.State())

	paper, err := orch.Start(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, orch.State())
	assert.Equal(t, []int{10, 30, 100}, milestones)

	assert.Equal(t, types.StatusCompleted, paper.Status)
	assert.Equal(t, "extracted body text", paper.ExtractedText)
	assert.Equal(t, 42, paper.TextLength)
	assert.Equal(t, "thesis", paper.Title)
	assert.Equal(t, "thesis.pdf", paper.Filename)
	assert.Equal(t, "Unknown", paper.Authors)
	assert.Equal(t, "2026-08-30", paper.DateUploaded)
	assert.Equal(t, when.UnixMilli(), paper.ID)

	require.Len(t, catalog.papers, 1)
	assert.Equal(t, paper, catalog.papers[0])
}

func TestStart_RejectsUnsupportedTypeWithoutNetworkCall(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	orch := New(analyzer, &fakeCatalog{})

	path := writeTempFile(t, "notes.txt", "plain text")
	require.NoError(t, orch.Select(path, "text/plain"))

	_, err := orch.Start(context.Background(), "")

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StateFailed, orch.State())
	assert.Zero(t, atomic.LoadInt32(&analyzer.calls), "no network call for invalid type")
	assert.Zero(t, orch.Progress())
}

func TestStart_SniffsMediaTypeFromExtension(t *testing.T) {
	analyzer := &fakeAnalyzer{result: types.AnalysisResult{Success: true}}
	orch := New(analyzer, &fakeCatalog{})

	path := writeTempFile(t, "scan.pdf", "%PDF-1.4")
	require.NoError(t, orch.Select(path, ""))

	_, err := orch.Start(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&analyzer.calls))
}

func TestStart_GatewayFailureLeavesNoPaper(t *testing.T) {
	analyzer := &fakeAnalyzer{err: &types.BackendError{Status: 500, Detail: "Error processing PDF"}}
	catalog := &fakeCatalog{}
	orch := New(analyzer, catalog)

	path := writeTempFile(t, "broken.pdf", "%PDF-1.4")
	require.NoError(t, orch.Select(path, "application/pdf"))

	_, err := orch.Start(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, StateFailed, orch.State())
	assert.Equal(t, "Error processing PDF", orch.LastError())
	assert.Zero(t, orch.Progress(), "progress resets on failure")
	assert.Empty(t, catalog.papers, "no partial Paper on failure")
}

func TestStart_RetryAfterFailureSucceeds(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("transient")}
	catalog := &fakeCatalog{}
	orch := New(analyzer, catalog)

	path := writeTempFile(t, "retry.pdf", "%PDF-1.4")
	require.NoError(t, orch.Select(path, "application/pdf"))

	_, err := orch.Start(context.Background(), "")
	require.Error(t, err)
	require.Equal(t, StateFailed, orch.State())

	// Failed permits re-entry to Submitting with the same file.
	analyzer.err = nil
	analyzer.result = types.AnalysisResult{Success: true, ExtractedText: "ok"}

	paper, err := orch.Start(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, orch.State())
	assert.Equal(t, "ok", paper.ExtractedText)
	assert.Len(t, catalog.papers, 1)
}

func TestStart_SecondSubmissionRejectedWhilePending(t *testing.T) {
	analyzer := &fakeAnalyzer{
		result:  types.AnalysisResult{Success: true},
		release: make(chan struct{}),
	}
	orch := New(analyzer, &fakeCatalog{})

	path := writeTempFile(t, "slow.pdf", "%PDF-1.4")
	require.NoError(t, orch.Select(path, "application/pdf"))

	done := make(chan error, 1)
	go func() {
		_, err := orch.Start(context.Background(), "")
		done <- err
	}()

	// Wait until the first submission is in flight.
	require.Eventually(t, func() bool {
		return orch.State() == StateSubmitting
	}, time.Second, time.Millisecond)

	_, err := orch.Start(context.Background(), "")
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "already in progress")

	close(analyzer.release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), atomic.LoadInt32(&analyzer.calls))
}

func TestStart_WithoutSelectIsRejected(t *testing.T) {
	orch := New(&fakeAnalyzer{}, &fakeCatalog{})

	_, err := orch.Start(context.Background(), "")

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StateIdle, orch.State())
}

func TestBuildPaper_IDsStayMonotonicWithinOneMillisecond(t *testing.T) {
	analyzer := &fakeAnalyzer{result: types.AnalysisResult{Success: true}}
	catalog := &fakeCatalog{}
	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	orch := New(analyzer, catalog, WithClock(fixedClock(when)))

	path := writeTempFile(t, "same-ms.pdf", "%PDF-1.4")
	for i := 0; i < 3; i++ {
		require.NoError(t, orch.Select(path, "application/pdf"))
		_, err := orch.Start(context.Background(), "")
		require.NoError(t, err)
	}

	require.Len(t, catalog.papers, 3)
	assert.Equal(t, when.UnixMilli(), catalog.papers[0].ID)
	assert.Equal(t, when.UnixMilli()+1, catalog.papers[1].ID)
	assert.Equal(t, when.UnixMilli()+2, catalog.papers[2].ID)
}

func TestStart_AnswerFromUploadCarriedOntoPaper(t *testing.T) {
	analyzer := &fakeAnalyzer{result: types.AnalysisResult{
		Success:       true,
		ExtractedText: "text",
		Answer:        &types.QAPair{Question: "topic?", Answer: "attention"},
	}}
	catalog := &fakeCatalog{}
	orch := New(analyzer, catalog)

	path := writeTempFile(t, "qa.pdf", "%PDF-1.4")
	require.NoError(t, orch.Select(path, "application/pdf"))

	paper, err := orch.Start(context.Background(), "topic?")
	require.NoError(t, err)
	require.NotNil(t, paper.Answer)
	assert.Equal(t, "attention", paper.Answer.Answer)
}
