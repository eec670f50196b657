package explorer

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	mdwlog "github.com/msto63/minilang/foundation/core/log"
	"github.com/msto63/minilang/foundation/lang"
)

const program = `int x;
string s;
set x 1 + 2;
print y;
`

func newModel(t *testing.T, source string) Model {
	t.Helper()
	m := New(Config{
		Name:   "test.ml",
		Source: source,
		Engine: lang.New(lang.Options{Logger: mdwlog.Discard()}),
	})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)
	updated, _ = m.Update(m.check(source)())
	return updated.(Model)
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Check(t *testing.T) {
	m := newModel(t, program)

	if m.loading {
		t.Error("loading should be false after the check")
	}
	result := m.Result()
	if result == nil {
		t.Fatal("Result() is nil")
	}
	if result.SemanticErrors != 1 {
		t.Errorf("SemanticErrors = %d, want 1", result.SemanticErrors)
	}
	if !strings.Contains(m.View(), "1 semantische Fehler") {
		t.Errorf("status bar should report the semantic error:\n%s", m.View())
	}
}

func TestModel_TabSwitching(t *testing.T) {
	m := newModel(t, program)

	tests := []struct {
		name string
		key  tea.KeyMsg
		want Tab
	}{
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, TabAST},
		{"tab again", tea.KeyMsg{Type: tea.KeyTab}, TabTrace},
		{"number 5", runes("5"), TabDiagnostics},
		{"wraps", tea.KeyMsg{Type: tea.KeyTab}, TabSource},
		{"shift+tab wraps back", tea.KeyMsg{Type: tea.KeyShiftTab}, TabDiagnostics},
		{"number 4", runes("4"), TabSymbols},
	}

	for _, tt := range tests {
		m = press(m, tt.key)
		if m.ActiveTab() != tt.want {
			t.Errorf("%s: ActiveTab() = %v, want %v", tt.name, m.ActiveTab(), tt.want)
		}
	}
}

func TestModel_TabContent(t *testing.T) {
	m := newModel(t, program)

	tests := []struct {
		tab  Tab
		want []string
	}{
		{TabSource, []string{"1 │ int x;", "print y;"}},
		{TabAST, []string{"StatementList", "Declaration(int x)"}},
		{TabTrace, []string{"Deklarationen", "Knoten"}},
		{TabSymbols, []string{"x", "string", "Zeile 2"}},
		{TabDiagnostics, []string{"Zeile 4", "UNDECLARED_VARIABLE"}},
	}

	for _, tt := range tests {
		t.Run(tt.tab.String(), func(t *testing.T) {
			m.tab = tt.tab
			content := m.content()
			for _, want := range tt.want {
				if !strings.Contains(content, want) {
					t.Errorf("content missing %q:\n%s", want, content)
				}
			}
		})
	}
}

func TestModel_SyntaxError(t *testing.T) {
	m := newModel(t, "int x\nset x 1;")

	if m.Result().SyntaxError == nil {
		t.Fatal("expected a syntax error")
	}
	m.tab = TabAST
	if !strings.Contains(m.content(), "Kein Syntaxbaum") {
		t.Errorf("AST tab = %q", m.content())
	}
	m.tab = TabTrace
	if !strings.Contains(m.content(), "Kein Trace") {
		t.Errorf("Trace tab = %q", m.content())
	}
}

func TestModel_Reload(t *testing.T) {
	m := newModel(t, program)

	// without a reload func the key is ignored
	m = press(m, runes("r"))
	if m.loading {
		t.Error("r without Reload should not start loading")
	}

	m.reload = func() (string, error) { return "int fixed;", nil }
	updated, cmd := m.Update(runes("r"))
	m = updated.(Model)
	if !m.loading || cmd == nil {
		t.Fatal("r should start a reload")
	}

	updated, _ = m.Update(m.reloadSource())
	m = updated.(Model)
	if !m.Result().OK() || m.source != "int fixed;" {
		t.Errorf("reload result OK=%v source=%q", m.Result().OK(), m.source)
	}

	m.reload = func() (string, error) { return "", errors.New("file vanished") }
	updated, _ = m.Update(m.reloadSource())
	m = updated.(Model)
	if m.err == nil || !strings.Contains(m.View(), "file vanished") {
		t.Error("reload error should be shown")
	}
	if m.Result() == nil {
		t.Error("previous result should be kept on error")
	}
}

func TestModel_ReloadMsg(t *testing.T) {
	m := newModel(t, program)
	m.reload = func() (string, error) { return "int y;", nil }

	updated, cmd := m.Update(ReloadMsg{})
	m = updated.(Model)
	if !m.loading || cmd == nil {
		t.Fatal("ReloadMsg should start a reload")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t, program)

	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%v should quit", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v did not return tea.Quit", key)
		}
	}
}

func TestRenderTrace_Wraps(t *testing.T) {
	m := newModel(t, program)
	out := renderTrace(m.Result(), 8)

	first := strings.SplitN(out, "\n", 2)[0]
	if len(first) != 8 {
		t.Errorf("first trace line = %q, want 8 symbols", first)
	}
}
