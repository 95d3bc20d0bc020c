// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"context"
	"strings"
	"sync"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// AnswerSource resolves a follow-up question to an answer.
type AnswerSource interface {
	AskQuestion(ctx context.Context, question string) (types.QAPair, error)
}

// QASession applies follow-up answers in latest-request-wins order.
// Every Ask is issued a monotonically increasing sequence token; a
// response only updates the latest-answer slot when its token is still
// the newest one issued, so a slow early response cannot overwrite the
// answer to a later question.
type QASession struct {
	source AnswerSource

	mu      sync.Mutex
	seq     uint64
	latest  *types.QAPair
	lastErr string
}

// NewQASession returns a session with no answer applied yet.
func NewQASession(source AnswerSource) *QASession {
	return &QASession{source: source}
}

// Ask submits question and, when its response is still the newest
// outstanding one, records it as the latest answer. The resolved pair is
// returned to the caller either way; stale is true when the response was
// discarded from session state because a newer Ask superseded it.
func (s *QASession) Ask(ctx context.Context, question string) (pair types.QAPair, stale bool, err error) {
	if strings.TrimSpace(question) == "" {
		return types.QAPair{}, false, &types.ValidationError{Reason: "question cannot be empty"}
	}

	s.mu.Lock()
	s.seq++
	token := s.seq
	s.mu.Unlock()

	pair, err = s.source.AskQuestion(ctx, question)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		return pair, true, err
	}
	if err != nil {
		s.lastErr = err.Error()
		return types.QAPair{}, false, err
	}

	applied := pair
	s.latest = &applied
	s.lastErr = ""
	return pair, false, nil
}

// Latest returns the most recently applied answer.
func (s *QASession) Latest() (types.QAPair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return types.QAPair{}, false
	}
	return *s.latest, true
}

// LastError returns the message from the newest ask when it failed, or
// empty when the newest ask succeeded or none was made.
func (s *QASession) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
