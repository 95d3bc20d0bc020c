// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// scriptedSource answers each question with a canned reply, optionally
// blocking per question so a test can control response ordering. started
// channels are closed when the matching question reaches the source.
type scriptedSource struct {
	answers map[string]string
	errs    map[string]error
	gates   map[string]chan struct{}
	started map[string]chan struct{}
}

func (s *scriptedSource) AskQuestion(_ context.Context, question string) (types.QAPair, error) {
	if started, ok := s.started[question]; ok {
		close(started)
	}
	if gate, ok := s.gates[question]; ok {
		<-gate
	}
	if err, ok := s.errs[question]; ok {
		return types.QAPair{}, err
	}
	return types.QAPair{Question: question, Answer: s.answers[question]}, nil
}

func TestQASession_AskAppliesAnswer(t *testing.T) {
	source := &scriptedSource{answers: map[string]string{"topic?": "attention"}}
	session := NewQASession(source)

	pair, stale, err := session.Ask(context.Background(), "topic?")
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Equal(t, "attention", pair.Answer)

	latest, ok := session.Latest()
	require.True(t, ok)
	assert.Equal(t, pair, latest)
	assert.Empty(t, session.LastError())
}

func TestQASession_EmptyQuestionRejected(t *testing.T) {
	session := NewQASession(&scriptedSource{})

	for _, q := range []string{"", "  ", "\t\n"} {
		_, _, err := session.Ask(context.Background(), q)
		var verr *types.ValidationError
		require.ErrorAs(t, err, &verr, "question %q", q)
	}

	_, ok := session.Latest()
	assert.False(t, ok)
}

func TestQASession_SlowEarlyResponseDoesNotClobberLaterAnswer(t *testing.T) {
	firstGate := make(chan struct{})
	firstStarted := make(chan struct{})
	source := &scriptedSource{
		answers: map[string]string{
			"first?":  "stale answer",
			"second?": "fresh answer",
		},
		gates:   map[string]chan struct{}{"first?": firstGate},
		started: map[string]chan struct{}{"first?": firstStarted},
	}
	session := NewQASession(source)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		pair, stale, err := session.Ask(context.Background(), "first?")
		assert.NoError(t, err)
		assert.True(t, stale, "superseded response must be flagged stale")
		assert.Equal(t, "stale answer", pair.Answer)
	}()

	select {
	case <-firstStarted:
	case <-time.After(time.Second):
		t.Fatal("first ask never dispatched")
	}

	// The second question resolves while the first is still in flight.
	pair, stale, err := session.Ask(context.Background(), "second?")
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Equal(t, "fresh answer", pair.Answer)

	close(firstGate)
	select {
	case <-firstDone:
	case <-time.After(time.Second):
		t.Fatal("first ask did not finish")
	}

	latest, ok := session.Latest()
	require.True(t, ok)
	assert.Equal(t, "fresh answer", latest.Answer, "latest request wins")
}

func TestQASession_FailureRecordsErrorAndKeepsPriorAnswer(t *testing.T) {
	source := &scriptedSource{
		answers: map[string]string{"good?": "yes"},
		errs:    map[string]error{"bad?": errors.New("backend unreachable")},
	}
	session := NewQASession(source)

	_, _, err := session.Ask(context.Background(), "good?")
	require.NoError(t, err)

	_, stale, err := session.Ask(context.Background(), "bad?")
	require.Error(t, err)
	assert.False(t, stale)
	assert.Equal(t, "backend unreachable", session.LastError())

	latest, ok := session.Latest()
	require.True(t, ok)
	assert.Equal(t, "yes", latest.Answer, "a failed ask leaves the prior answer in place")
}

func TestQASession_StaleFailureDoesNotRecordError(t *testing.T) {
	slowGate := make(chan struct{})
	slowStarted := make(chan struct{})
	source := &scriptedSource{
		answers: map[string]string{"quick?": "done"},
		errs:    map[string]error{"slow?": errors.New("late failure")},
		gates:   map[string]chan struct{}{"slow?": slowGate},
		started: map[string]chan struct{}{"slow?": slowStarted},
	}
	session := NewQASession(source)

	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		_, stale, err := session.Ask(context.Background(), "slow?")
		assert.Error(t, err)
		assert.True(t, stale)
	}()

	select {
	case <-slowStarted:
	case <-time.After(time.Second):
		t.Fatal("slow ask never dispatched")
	}

	_, _, err := session.Ask(context.Background(), "quick?")
	require.NoError(t, err)

	close(slowGate)
	select {
	case <-slowDone:
	case <-time.After(time.Second):
		t.Fatal("slow ask did not finish")
	}

	assert.Empty(t, session.LastError(), "a superseded failure must not surface")
}
