// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/link2clash-tui/internal/clipboard"
	"github.com/jeranaias/link2clash-tui/internal/compose"
	"github.com/jeranaias/link2clash-tui/internal/convert"
	"github.com/jeranaias/link2clash-tui/internal/ui/styles"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeConverter struct {
	resp   *convert.Response
	err    error
	inputs []string
}

func (f *fakeConverter) Convert(_ context.Context, input string) (*convert.Response, error) {
	f.inputs = append(f.inputs, input)
	return f.resp, f.err
}

type copyCall struct{ text, label string }

type fakeCopier struct {
	calls []copyCall
}

func (f *fakeCopier) Copy(text, label string) clipboard.Outcome {
	f.calls = append(f.calls, copyCall{text, label})
	return clipboard.Outcome{Label: label, Message: clipboard.CopiedMessage(label), Copied: true}
}

type countingStrategy struct{ calls int }

func (s *countingStrategy) Name() string { return "counting" }

func (s *countingStrategy) Copy(string) error {
	s.calls++
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func scenarioResponse() *convert.Response {
	return &convert.Response{
		ProxyLines: "- name: x",
		GroupLines: "- x",
		Errors: []convert.ItemError{
			{Index: 2, Message: "unrecognized scheme", Value: "bad-line"},
		},
	}
}

func newTestModel(conv Converter, cp Copier) Model {
	return New(Options{
		Theme:       styles.NewTheme(styles.ModeDark),
		Converter:   conv,
		Copier:      cp,
		Composer:    compose.NewDefault(),
		StatusDelay: time.Millisecond,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

// messagesOf runs cmd and flattens batches into their messages. Ticks that
// would sleep are not run.
func messagesOf(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, messagesOf(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func convertResult(t *testing.T, cmd tea.Cmd) ConvertDoneMsg {
	t.Helper()
	for _, msg := range messagesOf(cmd) {
		if done, ok := msg.(ConvertDoneMsg); ok {
			return done
		}
	}
	t.Fatal("command produced no ConvertDoneMsg")
	return ConvertDoneMsg{}
}

func copyResult(t *testing.T, cmd tea.Cmd) CopyDoneMsg {
	t.Helper()
	require.NotNil(t, cmd)
	done, ok := cmd().(CopyDoneMsg)
	require.True(t, ok)
	return done
}

// convertOnce submits input and applies the result.
func convertOnce(t *testing.T, m Model, input string) Model {
	t.Helper()
	m, cmd := update(t, m, SubmitMsg{Input: input})
	m, _ = update(t, m, convertResult(t, cmd))
	return m
}

// =============================================================================
// TESTS
// =============================================================================

func TestNew_InitialState(t *testing.T) {
	m := newTestModel(&fakeConverter{}, &fakeCopier{})
	st := m.State()

	assert.False(t, st.Loading)
	assert.False(t, st.Document.Populated)
	assert.Equal(t, compose.NewDefault().Reset(), st.Document.Text)
	assert.False(t, m.ErrorPanel().Visible())
	assert.False(t, m.Status().Visible())
	assert.Equal(t, FocusInput, m.Focused())
}

func TestConvert_EndToEndScenario(t *testing.T) {
	conv := &fakeConverter{resp: scenarioResponse()}
	m := newTestModel(conv, &fakeCopier{})

	m, cmd := update(t, m, SubmitMsg{Input: "vmess://x\nbad-line"})
	require.True(t, m.State().Loading)
	require.NotNil(t, cmd)

	m, _ = update(t, m, convertResult(t, cmd))
	st := m.State()

	assert.Equal(t, []string{"vmess://x\nbad-line"}, conv.inputs, "input must be forwarded verbatim")
	assert.False(t, st.Loading)
	assert.Equal(t, "- name: x", st.Entries)
	assert.Equal(t, "- x", st.Groups)
	assert.Equal(t, []string{"#2 unrecognized scheme (bad-line)"}, m.ErrorPanel().Rows)

	require.True(t, st.Document.Populated)
	assert.Equal(t, compose.NewDefault().Compose("- name: x", "- x"), st.Document.Text)
	assert.Contains(t, st.Document.Text, "proxies:\n  - name: x\n")
	assert.Contains(t, st.Document.Text, "      - x\n")
	assert.True(t, strings.HasSuffix(st.Document.Text, "  - MATCH,PROXY\n"))

	assert.True(t, m.Status().Visible())
	assert.Equal(t, StatusConversionDone, m.Status().Message())
}

func TestSubmit_EmptyInputIsSent(t *testing.T) {
	conv := &fakeConverter{resp: &convert.Response{}}
	m := newTestModel(conv, &fakeCopier{})

	m = convertOnce(t, m, "")

	assert.Equal(t, []string{""}, conv.inputs)
	assert.Equal(t, StatusConversionDone, m.Status().Message())
	assert.False(t, m.State().Document.Populated)
}

func TestSubmit_IgnoredWhileLoading(t *testing.T) {
	conv := &fakeConverter{resp: scenarioResponse()}
	m := newTestModel(conv, &fakeCopier{})

	m, first := update(t, m, SubmitMsg{Input: "a"})
	gen := m.State().Generation

	m, second := update(t, m, SubmitMsg{Input: "b"})
	assert.Nil(t, second, "a second submit must not start a request")
	assert.Equal(t, gen, m.State().Generation)
	assert.Equal(t, "a", m.State().Input)

	m, _ = update(t, m, convertResult(t, first))
	assert.False(t, m.State().Loading)
	assert.Equal(t, []string{"a"}, conv.inputs)
}

func TestSubmit_ClearsErrorsImmediately(t *testing.T) {
	conv := &fakeConverter{resp: scenarioResponse()}
	m := convertOnce(t, newTestModel(conv, &fakeCopier{}), "x")
	require.True(t, m.ErrorPanel().Visible())

	m, _ = update(t, m, SubmitMsg{Input: "y"})

	assert.False(t, m.ErrorPanel().Visible())
	assert.Empty(t, m.State().Errors)
}

func TestConvert_TransportFailureLeavesStateUntouched(t *testing.T) {
	conv := &fakeConverter{resp: scenarioResponse()}
	m := convertOnce(t, newTestModel(conv, &fakeCopier{}), "x")
	before := m.State()

	conv.resp = nil
	conv.err = &convert.ClientError{Type: convert.ErrTypeTransport, Message: "connection refused"}
	m = convertOnce(t, m, "y")
	after := m.State()

	assert.False(t, after.Loading)
	assert.Equal(t, StatusNetworkError, m.Status().Message())
	assert.Equal(t, before.Entries, after.Entries)
	assert.Equal(t, before.Groups, after.Groups)
	assert.Equal(t, before.Document, after.Document)
}

func TestConvert_InvalidBodyIsNetworkError(t *testing.T) {
	conv := &fakeConverter{err: &convert.ClientError{Type: convert.ErrTypeInvalidResponse, Message: "bad json"}}
	m := convertOnce(t, newTestModel(conv, &fakeCopier{}), "x")

	assert.Equal(t, StatusNetworkError, m.Status().Message())
	assert.False(t, m.State().Document.Populated)
}

func TestConvert_EngineFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "engine message shown",
			err:  &convert.ClientError{Type: convert.ErrTypeEngine, Message: "input is empty", StatusCode: 400, Reported: true},
			want: "input is empty",
		},
		{
			name: "no engine message",
			err:  &convert.ClientError{Type: convert.ErrTypeEngine, Message: "conversion request failed: 502 Bad Gateway", StatusCode: 502},
			want: StatusRequestFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &fakeConverter{err: tt.err}
			m := newTestModel(conv, &fakeCopier{})
			placeholder := m.State().Document

			m = convertOnce(t, m, "x")

			assert.Equal(t, tt.want, m.Status().Message())
			assert.False(t, m.State().Loading)
			assert.Equal(t, placeholder, m.State().Document)
			assert.Empty(t, m.State().Entries)
		})
	}
}

func TestConvert_PartialResultKeepsDocument(t *testing.T) {
	conv := &fakeConverter{resp: scenarioResponse()}
	m := convertOnce(t, newTestModel(conv, &fakeCopier{}), "x")
	populated := m.State().Document
	require.True(t, populated.Populated)

	conv.resp = &convert.Response{ProxyLines: "- name: only"}
	m = convertOnce(t, m, "y")
	st := m.State()

	assert.Equal(t, "- name: only", st.Entries)
	assert.Equal(t, "", st.Groups)
	assert.Equal(t, populated, st.Document, "a partial result must not replace the document")
	assert.False(t, m.ErrorPanel().Visible())
	assert.Equal(t, StatusConversionDone, m.Status().Message())
}

func TestConvert_PartialResultFromPlaceholder(t *testing.T) {
	conv := &fakeConverter{resp: &convert.Response{GroupLines: "- x"}}
	m := convertOnce(t, newTestModel(conv, &fakeCopier{}), "x")

	assert.False(t, m.State().Document.Populated)
	assert.Equal(t, compose.NewDefault().Reset(), m.State().Document.Text)
}

func TestClear_ResetsEverything(t *testing.T) {
	conv := &fakeConverter{resp: scenarioResponse()}
	m := newTestModel(conv, &fakeCopier{})
	m.input.SetValue("vmess://x")
	m = convertOnce(t, m, "vmess://x")

	m, cmd := update(t, m, ClearMsg{})
	st := m.State()

	assert.NotNil(t, cmd)
	assert.Empty(t, st.Input)
	assert.Empty(t, st.Entries)
	assert.Empty(t, st.Groups)
	assert.Empty(t, st.Errors)
	assert.False(t, m.ErrorPanel().Visible())
	assert.Equal(t, Document{Text: compose.NewDefault().Reset()}, st.Document)
	assert.Equal(t, StatusCleared, m.Status().Message())
	assert.Empty(t, m.input.Value())
}

func TestClear_DiscardsInFlightResponse(t *testing.T) {
	conv := &fakeConverter{resp: scenarioResponse()}
	m := newTestModel(conv, &fakeCopier{})

	m, cmd := update(t, m, SubmitMsg{Input: "vmess://x"})
	m, _ = update(t, m, ClearMsg{})
	assert.True(t, m.State().Loading, "clear does not cancel the request")

	m, follow := update(t, m, convertResult(t, cmd))
	st := m.State()

	assert.Nil(t, follow)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Entries)
	assert.Empty(t, st.Groups)
	assert.False(t, st.Document.Populated)
	assert.False(t, m.ErrorPanel().Visible())
	assert.Equal(t, StatusCleared, m.Status().Message())

	// A new submit works again once the stale response has landed.
	m = convertOnce(t, m, "vmess://x")
	assert.True(t, m.State().Document.Populated)
}

func TestClearThenCopy_NothingToCopy(t *testing.T) {
	strategy := &countingStrategy{}
	conv := &fakeConverter{resp: scenarioResponse()}
	m := newTestModel(conv, clipboard.NewService(strategy))
	m = convertOnce(t, m, "x")

	m, _ = update(t, m, ClearMsg{})

	for _, target := range []CopyTarget{TargetEntries, TargetGroups, TargetDocument} {
		var cmd tea.Cmd
		m, cmd = update(t, m, CopyMsg{Target: target})
		done := copyResult(t, cmd)
		assert.Equal(t, clipboard.MsgNothingToCopy, done.Outcome.Message, target.Label())

		m, _ = update(t, m, done)
		assert.Equal(t, clipboard.MsgNothingToCopy, m.Status().Message())
	}
	assert.Zero(t, strategy.calls)
}

func TestCopy_TargetsAndLabels(t *testing.T) {
	cp := &fakeCopier{}
	m := convertOnce(t, newTestModel(&fakeConverter{resp: scenarioResponse()}, cp), "x")
	doc := m.State().Document.Text

	for _, target := range []CopyTarget{TargetEntries, TargetGroups, TargetDocument} {
		var cmd tea.Cmd
		m, cmd = update(t, m, CopyMsg{Target: target})
		m, _ = update(t, m, copyResult(t, cmd))
	}

	assert.Equal(t, []copyCall{
		{"- name: x", "proxies"},
		{"- x", "groups"},
		{doc, "config"},
	}, cp.calls)
	assert.Equal(t, "Copied config.", m.Status().Message())
}

func TestParseCopyTarget(t *testing.T) {
	for _, label := range []string{"proxies", "groups", "config"} {
		target, ok := ParseCopyTarget(label)
		require.True(t, ok, label)
		assert.Equal(t, label, target.Label())
	}
	_, ok := ParseCopyTarget("rules")
	assert.False(t, ok)
}

// =============================================================================
// KEYS AND VIEW
// =============================================================================

func TestKeys_SubmitUsesInputText(t *testing.T) {
	conv := &fakeConverter{resp: scenarioResponse()}
	m := newTestModel(conv, &fakeCopier{})
	m.input.SetValue("trojan://a")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, m.State().Loading)

	m, _ = update(t, m, convertResult(t, cmd))
	assert.Equal(t, []string{"trojan://a"}, conv.inputs)
	assert.Equal(t, "trojan://a", m.State().Input)
}

func TestKeys_ClearAndCopy(t *testing.T) {
	cp := &fakeCopier{}
	m := convertOnce(t, newTestModel(&fakeConverter{resp: scenarioResponse()}, cp), "x")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	copyResult(t, cmd)
	require.Len(t, cp.calls, 1)
	assert.Equal(t, "proxies", cp.calls[0].label)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, StatusCleared, m.Status().Message())
}

func TestKeys_FocusAndHelp(t *testing.T) {
	m := newTestModel(&fakeConverter{}, &fakeCopier{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	// "?" is text while the input has focus.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Equal(t, "?", m.input.Value())
	assert.False(t, m.showHelp)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusEntries, m.Focused())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, FocusInput, m.Focused())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, FocusDocument, m.Focused())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.True(t, m.showHelp)
	assert.NotEmpty(t, m.View())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestKeys_Quit(t *testing.T) {
	m := newTestModel(&fakeConverter{}, &fakeCopier{})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_Renders(t *testing.T) {
	m := newTestModel(&fakeConverter{resp: scenarioResponse()}, &fakeCopier{})
	assert.Equal(t, "Loading...", m.View())

	for _, size := range []tea.WindowSizeMsg{{Width: 120, Height: 40}, {Width: 60, Height: 30}} {
		m, _ = update(t, m, size)
		m = convertOnce(t, m, "x")
		view := m.View()

		assert.Contains(t, view, "link2clash")
		assert.Contains(t, view, "Proxies")
		assert.Contains(t, view, "1 rejected")
		assert.Contains(t, view, StatusConversionDone)
	}
}

func TestView_ShowsConverting(t *testing.T) {
	m := newTestModel(&fakeConverter{}, &fakeCopier{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, SubmitMsg{Input: "x"})

	assert.Contains(t, m.View(), StatusConverting)
}
