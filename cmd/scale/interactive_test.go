package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/scale-codec/buffer"
	"github.com/wippyai/scale-codec/codec"
	"github.com/wippyai/scale-codec/internal/testmeta"
	"github.com/wippyai/scale-codec/metadata"
	"github.com/wippyai/scale-codec/storage"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m *browserModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

// finish runs the command an enter produced and feeds its result back.
func finish(t *testing.T, m *browserModel, cmd tea.Cmd) resultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(resultMsg)
	if !ok {
		t.Fatalf("command returned %T", cmd())
	}
	m.Update(msg)
	return msg
}

func TestBrowser(t *testing.T) {
	meta, err := metadata.Decode(testmeta.KusamaV14(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m := newBrowserModel(meta, codec.New(), "kusama")

	if view := m.View(); !strings.Contains(view, "Balances") || !strings.Contains(view, "Utility") {
		t.Fatalf("pallet view:\n%s", view)
	}

	press(m, "down", "enter")
	if m.state != stateSelectItem || len(m.items) != 6 {
		t.Fatalf("state %d with %d items", m.state, len(m.items))
	}

	t.Run("constant", func(t *testing.T) {
		cmd := press(m, "down", "down", "down", "down", "down", "enter")
		msg := finish(t, m, cmd)
		if msg.err != nil || msg.result != "1000000000" {
			t.Fatalf("result = %q, %v", msg.result, msg.err)
		}
		if m.state != stateShowResult || !strings.Contains(m.View(), "1000000000") {
			t.Errorf("state %d view:\n%s", m.state, m.View())
		}
		press(m, "esc")
	})

	t.Run("call", func(t *testing.T) {
		press(m, "up", "up", "enter")
		if m.state != stateInputArgs || len(m.inputs) != 2 {
			t.Fatalf("state %d with %d inputs", m.state, len(m.inputs))
		}
		press(m, "{Id: "+dest+"}", "tab", "1000000000000")
		if m.state != stateInputArgs {
			t.Fatalf("typing left the input state: %d", m.state)
		}
		msg := finish(t, m, press(m, "enter"))
		if msg.err != nil || msg.result != transferCall {
			t.Fatalf("result = %q, %v", msg.result, msg.err)
		}
		press(m, "enter")
	})

	t.Run("storage", func(t *testing.T) {
		if m.state != stateSelectItem {
			t.Fatalf("state %d", m.state)
		}
		msg := finish(t, m, press(m, "down", "enter"))
		want := buffer.EncodeHex(storage.Prefix("Balances", "TotalIssuance"))
		if msg.err != nil || msg.result != want {
			t.Fatalf("result = %q, %v", msg.result, msg.err)
		}
	})

	t.Run("bad input", func(t *testing.T) {
		press(m, "esc", "up", "enter")
		press(m, "[1, 2", "tab", "q")
		if m.state != stateInputArgs {
			t.Fatalf("q should type into the field, state %d", m.state)
		}
		msg := finish(t, m, press(m, "enter"))
		if msg.err == nil || !strings.Contains(m.View(), "Error") {
			t.Errorf("expected an error, got %q", msg.result)
		}
	})

	t.Run("navigation", func(t *testing.T) {
		press(m, "esc", "esc")
		if m.state != stateSelectPallet || m.items != nil {
			t.Fatalf("state %d", m.state)
		}
		cmd := press(m, "q")
		if cmd == nil {
			t.Fatal("q should quit")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("q should quit")
		}
	})
}
