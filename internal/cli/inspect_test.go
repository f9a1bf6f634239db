package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/relpanel/pkg/geom"
	"github.com/matzehuels/relpanel/pkg/scene"
)

const inspectScene = `
width = 400
height = 300

[[element]]
name = "blue"
width = 150
height = 100
align_right_with_panel = true

[[element]]
name = "red"
width = 50
height = 50
left_of = "blue"
`

func newTestInspector(t *testing.T, src string) inspectModel {
	t.Helper()
	s, err := scene.Parse([]byte(src), scene.FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	p, err := scene.Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	m, err := newInspectModel("test.toml", p)
	if err != nil {
		t.Fatalf("newInspectModel() error = %v", err)
	}
	return m
}

func press(m inspectModel, keys ...string) inspectModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(inspectModel)
	}
	return m
}

func blockX(t *testing.T, m inspectModel, id string) float64 {
	t.Helper()
	for _, b := range m.result.Blocks {
		if b.ID == id {
			return b.X
		}
	}
	t.Fatalf("no block %q", id)
	return 0
}

func TestInspectModel_Initial(t *testing.T) {
	m := newTestInspector(t, inspectScene)

	if m.size != geom.NewSize(400, 300) {
		t.Errorf("size = %v, want 400x300", m.size)
	}
	if got := blockX(t, m, "blue"); got != 250 {
		t.Errorf("blue.X = %g, want 250", got)
	}
	if got := blockX(t, m, "red"); got != 200 {
		t.Errorf("red.X = %g, want 200", got)
	}
	if m.passes != 1 {
		t.Errorf("passes = %d, want 1", m.passes)
	}
}

func TestInspectModel_AutoSize(t *testing.T) {
	m := newTestInspector(t, strings.Replace(inspectScene, "width = 400", "width = 0", 1))

	if m.size.Width != m.desired.Width {
		t.Errorf("auto width = %g, want desired %g", m.size.Width, m.desired.Width)
	}
	if m.size.Height != 300 {
		t.Errorf("height = %g, want 300", m.size.Height)
	}
}

func TestInspectModel_Resize(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		wantSize geom.Size
		wantBlue float64
	}{
		{"wider", []string{"right"}, geom.NewSize(410, 300), 260},
		{"wider vim", []string{"l", "l"}, geom.NewSize(420, 300), 270},
		{"narrower", []string{"left"}, geom.NewSize(390, 300), 240},
		{"taller", []string{"down"}, geom.NewSize(400, 310), 250},
		{"shorter", []string{"k"}, geom.NewSize(400, 290), 250},
		{"bigger step", []string{"+", "right"}, geom.NewSize(420, 300), 270},
		{"smaller step", []string{"-", "right"}, geom.NewSize(405, 300), 255},
		{"reset", []string{"right", "down", "r"}, geom.NewSize(400, 300), 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(newTestInspector(t, inspectScene), tt.keys...)
			if m.err != nil {
				t.Fatalf("err = %v", m.err)
			}
			if m.size != tt.wantSize {
				t.Errorf("size = %v, want %v", m.size, tt.wantSize)
			}
			if got := blockX(t, m, "blue"); got != tt.wantBlue {
				t.Errorf("blue.X = %g, want %g", got, tt.wantBlue)
			}
		})
	}
}

func TestInspectModel_ClampsAtZero(t *testing.T) {
	m := newTestInspector(t, inspectScene)
	m.step = maxStep
	m = press(m, "left", "left", "left", "left")

	if m.size.Width != 0 {
		t.Errorf("width = %g, want 0", m.size.Width)
	}
	if m.err != nil {
		t.Errorf("err = %v", m.err)
	}
}

func TestInspectModel_StepBounds(t *testing.T) {
	m := newTestInspector(t, inspectScene)
	m = press(m, "+", "+", "+", "+", "+", "+")
	if m.step != maxStep {
		t.Errorf("step = %g, want %g", m.step, maxStep)
	}
	m = press(m, "-", "-", "-", "-", "-", "-", "-", "-", "-")
	if m.step != minStep {
		t.Errorf("step = %g, want %g", m.step, minStep)
	}
}

func TestInspectModel_ArrangeWithoutRemeasure(t *testing.T) {
	m := press(newTestInspector(t, inspectScene), "right", "right")

	blue := m.panel.Boxes()[0]
	measures, arranges := blue.Calls()
	if measures != 1 {
		t.Errorf("measures = %d, want 1", measures)
	}
	if arranges != 3 {
		t.Errorf("arranges = %d, want 3", arranges)
	}
	if m.passes != 3 {
		t.Errorf("passes = %d, want 3", m.passes)
	}
}

func TestInspectModel_UnchangedSizeIsNoop(t *testing.T) {
	m := newTestInspector(t, inspectScene)
	m = press(m, "up")
	passes := m.passes
	m = m.resize(m.size)
	if m.passes != passes {
		t.Errorf("passes = %d, want %d", m.passes, passes)
	}
}

func TestInspectModel_SelectAndQuit(t *testing.T) {
	m := newTestInspector(t, inspectScene)

	m = press(m, "tab")
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	m = press(m, "tab")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after wrap", m.cursor)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestInspectModel_View(t *testing.T) {
	view := newTestInspector(t, inspectScene).View()
	for _, want := range []string{"test.toml", "400x300", "blue", "red", "AlignRightWithPanel", "LeftOf"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
