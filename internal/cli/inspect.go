package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relpanel/pkg/geom"
	"github.com/matzehuels/relpanel/pkg/relpanel"
	"github.com/matzehuels/relpanel/pkg/scene"
)

const (
	defaultStep = 10.0
	minStep     = 1.0
	maxStep     = 160.0
)

var (
	inspectKeyStyle  = lipgloss.NewStyle().Foreground(colorBlue)
	inspectHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
	inspectErrStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// inspectCommand creates the interactive inspector.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "inspect [scene.toml]",
		Short: "Resize a panel interactively and watch the placements change",
		Long: `Resize a panel interactively and watch the placements change.

The scene is measured once. Every resize arranges the panel again at the new
size; only the axis that changed is re-resolved.

Keys: ←/→ width, ↑/↓ height, +/- step, tab select, r reset, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readScene(args[0])
			if err != nil {
				return err
			}
			opts := c.layoutOptions(cmd, &flags)
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			p, err := scene.Build(opts.Apply(s), relpanel.WithLogger(c.Logger))
			if err != nil {
				return err
			}
			m, err := newInspectModel(args[0], p)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// inspectModel is the bubbletea model of the inspector. It owns a measured
// panel and re-arranges it on every size change.
type inspectModel struct {
	name    string
	panel   *scene.Panel
	desired geom.Size
	initial geom.Size
	size    geom.Size
	step    float64
	cursor  int
	passes  int
	result  *scene.Result
	err     error
}

// newInspectModel measures p and arranges it at its scene size, with auto
// axes taking the desired size.
func newInspectModel(name string, p *scene.Panel) (inspectModel, error) {
	desired, err := p.Measure()
	if err != nil {
		return inspectModel{}, err
	}
	size := p.Scene().Available()
	if geom.IsInf(size.Width) {
		size.Width = desired.Width
	}
	if geom.IsInf(size.Height) {
		size.Height = desired.Height
	}

	m := inspectModel{
		name:    name,
		panel:   p,
		desired: desired,
		initial: size,
		step:    defaultStep,
	}
	m = m.resize(size)
	return m, m.err
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m = m.resize(geom.NewSize(m.size.Width-m.step, m.size.Height))
	case "right", "l":
		m = m.resize(geom.NewSize(m.size.Width+m.step, m.size.Height))
	case "up", "k":
		m = m.resize(geom.NewSize(m.size.Width, m.size.Height-m.step))
	case "down", "j":
		m = m.resize(geom.NewSize(m.size.Width, m.size.Height+m.step))
	case "+", "=":
		m.step = min(m.step*2, maxStep)
	case "-", "_":
		m.step = max(m.step/2, minStep)
	case "tab":
		if n := len(m.panel.Boxes()); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case "shift+tab":
		if n := len(m.panel.Boxes()); n > 0 {
			m.cursor = (m.cursor + n - 1) % n
		}
	case "r":
		m = m.resize(m.initial)
	}
	return m, nil
}

// resize arranges the panel at size. Negative extents clamp to zero; an
// unchanged size is a no-op after the first pass.
func (m inspectModel) resize(size geom.Size) inspectModel {
	size = size.Clamp()
	if m.passes > 0 && size == m.size {
		return m
	}
	m.size = size
	m.passes++
	if m.err = m.panel.Arrange(geom.RectFromSize(size)); m.err != nil {
		return m
	}
	m.result = m.panel.Result(size)
	return m
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect " + m.name))
	b.WriteString("\n")
	b.WriteString(inspectHelpStyle.Render("←/→ width  ↑/↓ height  +/- step  tab select  r reset  q quit"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s   %s %s   %s %s   %s %d\n",
		StyleDim.Render("panel"), StyleValue.Render(formatSize(m.size)),
		StyleDim.Render("desired"), StyleValue.Render(formatSize(m.desired)),
		StyleDim.Render("step"), inspectKeyStyle.Render(formatNum(m.step)),
		StyleDim.Render("passes"), m.passes)

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(inspectErrStyle.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if m.result == nil {
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(blockTable(resultRows(m.result), m.cursor))
	b.WriteString("\n")

	if boxes := m.panel.Boxes(); m.cursor < len(boxes) {
		box := boxes[m.cursor]
		measures, arranges := box.Calls()
		fmt.Fprintf(&b, "%s %s  %s %d  %s %d\n",
			StyleDim.Render(iconArrow), StyleValue.Render(box.Name()),
			StyleDim.Render("measured"), measures,
			StyleDim.Render("arranged"), arranges)
	}
	return b.String()
}
