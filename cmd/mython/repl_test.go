package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue(":quit")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestEvaluateAssignmentStoresGlobal(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue("score = 42")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := model.(replModel)

	val, ok := rm.session.Lookup("score")
	if !ok {
		t.Fatalf("expected score in session globals")
	}
	if val.Number() != 42 {
		t.Fatalf("unexpected score value: %v", val)
	}
	if len(rm.history) != 1 || rm.history[0].isErr {
		t.Fatalf("unexpected history %#v", rm.history)
	}
}

func TestBlockCollectsUntilBlankLine(t *testing.T) {
	m := newREPLModel()

	feed := func(rm replModel, line string) replModel {
		rm.textInput.SetValue(line)
		model, _ := rm.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return model.(replModel)
	}

	rm := feed(m, "if 1 < 2:")
	if len(rm.pending) != 1 {
		t.Fatalf("block opener must start a pending buffer, got %#v", rm.pending)
	}
	rm = feed(rm, "  x = 10")
	if len(rm.pending) != 2 {
		t.Fatalf("continuation line not buffered: %#v", rm.pending)
	}

	rm = feed(rm, "")
	if len(rm.pending) != 0 {
		t.Fatalf("blank line must submit the block")
	}
	val, ok := rm.session.Lookup("x")
	if !ok || val.Number() != 10 {
		t.Fatalf("block did not execute: %v %v", val, ok)
	}
}

func TestReplReportsErrors(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue("print 1 / 0")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := model.(replModel)

	if len(rm.history) != 1 || !rm.history[0].isErr {
		t.Fatalf("expected an error entry, got %#v", rm.history)
	}
}

func TestResetCommandClearsSession(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue("x = 1")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := model.(replModel)

	rm.textInput.SetValue(":reset")
	model, _ = rm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm = model.(replModel)

	if _, ok := rm.session.Lookup("x"); ok {
		t.Fatalf("session not reset")
	}
}

func TestNeedsContinuation(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"if 1 < 2:", true},
		{"class A:", true},
		{"x = 1", false},
		{"print 'a:b'", false},
	}
	for _, tc := range cases {
		if got := needsContinuation(tc.line); got != tc.want {
			t.Fatalf("needsContinuation(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}
