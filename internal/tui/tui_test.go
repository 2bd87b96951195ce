package tui

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/autoprep/internal/model"
	"github.com/Tiliavir/autoprep/internal/report"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and any batched commands, returning the first
// fetchDoneMsg produced.
func runCmd(t *testing.T, cmd tea.Cmd) fetchDoneMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case fetchDoneMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if done, ok := c().(fetchDoneMsg); ok {
				return done
			}
		}
	}
	t.Fatal("command produced no fetchDoneMsg")
	return fetchDoneMsg{}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestExtractAndCopy(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) (report.Outcome, error) {
		calls.Add(1)
		return report.Outcome{
			Rows:    []model.Row{{Member: "Alice", Hours: "01", Minutes: "30", TotalSeconds: 5400}},
			Skipped: []model.User{{ID: "b", Name: "Bob"}},
		}, nil
	}
	var copied string
	m := New("Week", fetch, func(text string) error {
		copied = text
		return nil
	})

	m, cmd := update(m, key("e"))
	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Obtaining data")

	done := runCmd(t, cmd)
	assert.EqualValues(t, 1, calls.Load())

	m, _ = update(m, done)
	assert.False(t, m.loading)
	assert.Contains(t, m.status, "1 member(s)")
	assert.Contains(t, m.status, "1 without tracked time")
	assert.Contains(t, m.View(), "Alice")

	m, _ = update(m, key("c"))
	assert.Equal(t, "Member\tHours\tMinutes\nAlice\t01\t30", copied)
	assert.Equal(t, "Copied!", m.status)
}

func TestSecondTriggerIgnoredWhileLoading(t *testing.T) {
	var calls atomic.Int32
	m := New("Week", func(ctx context.Context) (report.Outcome, error) {
		calls.Add(1)
		return report.Outcome{}, nil
	}, nil)

	m, first := update(m, key("enter"))
	require.NotNil(t, first)

	m, second := update(m, key("e"))
	assert.Nil(t, second)
	assert.True(t, m.loading)

	runCmd(t, first)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFailureReenablesTrigger(t *testing.T) {
	m := New("Week", func(ctx context.Context) (report.Outcome, error) {
		return report.Outcome{}, errors.New("listing users: unauthorized")
	}, nil)

	m, cmd := update(m, key("e"))
	m, _ = update(m, runCmd(t, cmd))

	assert.False(t, m.loading)
	assert.Contains(t, m.status, "Retrieval failed")
	assert.Contains(t, m.status, "unauthorized")
	assert.False(t, m.hasData)

	m, cmd = update(m, key("e"))
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)
}

func TestEscCancelsFetch(t *testing.T) {
	started := make(chan struct{})
	m := New("Week", func(ctx context.Context) (report.Outcome, error) {
		close(started)
		<-ctx.Done()
		return report.Outcome{}, ctx.Err()
	}, nil)

	m, cmd := update(m, key("e"))

	result := make(chan fetchDoneMsg, 1)
	go func() { result <- runCmd(t, cmd) }()
	<-started

	m, _ = update(m, key("esc"))
	assert.Contains(t, m.status, "Cancelling")

	select {
	case done := <-result:
		assert.ErrorIs(t, done.err, context.Canceled)
		m, _ = update(m, done)
		assert.False(t, m.loading)
	case <-time.After(2 * time.Second):
		t.Fatal("fetch was not cancelled")
	}
}

func TestCopyBeforeData(t *testing.T) {
	called := false
	m := New("Week", nil, func(string) error {
		called = true
		return nil
	})
	m, _ = update(m, key("c"))
	assert.False(t, called)
	assert.Contains(t, m.status, "Nothing to copy")
}

func TestCopyFailure(t *testing.T) {
	m := New("Week", nil, func(string) error { return errors.New("no clipboard") })
	m, _ = update(m, fetchDoneMsg{outcome: report.Outcome{Rows: []model.Row{{Member: "A", Hours: "00", Minutes: "01"}}}})
	m, _ = update(m, key("c"))
	assert.Contains(t, m.status, "no clipboard")
}

func TestBestEffortFailuresShown(t *testing.T) {
	m := New("Week", nil, nil)
	m, _ = update(m, fetchDoneMsg{outcome: report.Outcome{
		Rows:   []model.Row{{Member: "A", Hours: "00", Minutes: "01"}},
		Failed: []report.Failure{{User: model.User{Name: "Carol"}, Err: errors.New("timeout")}},
	}})
	assert.Contains(t, m.status, "Failed: Carol")
	assert.Equal(t, "Member\tHours\tMinutes\nA\t00\t01", m.GridText())
}

func TestQuit(t *testing.T) {
	m := New("Week", nil, nil)
	m, cmd := update(m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
