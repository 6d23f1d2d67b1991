// internal/tui/tui.go
// Package tui provides the interactive compare workflow: pick a classical
// model, pick a quantum model, tune parameters, run, and read the results.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CodeMeister99/QML-Compare/internal/api"
	"github.com/CodeMeister99/QML-Compare/internal/appconfig"
	"github.com/CodeMeister99/QML-Compare/internal/catalog"
	"github.com/CodeMeister99/QML-Compare/internal/compare"
	"github.com/CodeMeister99/QML-Compare/internal/logging"
	"github.com/CodeMeister99/QML-Compare/internal/report"
)

// viewState represents the current screen of the workflow.
type viewState int

const (
	// viewClassical is the state where the user picks the classical model.
	viewClassical viewState = iota
	// viewQuantum is the state where the user picks the quantum model.
	viewQuantum
	// viewParams is the state where both parameter sets are edited.
	viewParams
	// viewRunning is the state while the comparison is in flight.
	viewRunning
	// viewResults shows the finished run.
	viewResults
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	headerStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
)

// item is a catalog model in a selection list.
type item struct {
	model catalog.Model
}

func (i item) Title() string { return i.model.Name }

func (i item) Description() string {
	return fmt.Sprintf("%s · %s", i.model.Key, i.model.Short)
}

func (i item) FilterValue() string { return i.model.Key + " " + i.model.Name }

// inspectMsg carries the background dataset inspection.
type inspectMsg struct {
	inspection *compare.Inspection
	err        error
}

// runDoneMsg carries a finished comparison. seq identifies the run so that a
// cancelled run's late answer is dropped.
type runDoneMsg struct {
	seq int
	run *compare.Run
	err error
}

// model is the Bubble Tea model of the compare workflow.
type model struct {
	ctx    context.Context
	cfg    *appconfig.Config
	svc    compare.Service
	runner *compare.Runner
	file   api.Upload
	target string

	state         viewState
	classicalList list.Model
	quantumList   list.Model
	inputs        [2]textinput.Model
	focus         int
	spinner       spinner.Model
	viewport      viewport.Model

	inspection *compare.Inspection
	inspectErr error
	inspecting bool

	classical catalog.Model
	quantum   catalog.Model
	payload   api.ComparePayload
	runSeq    int
	cancelRun context.CancelFunc
	run       *compare.Run

	err    error
	status string
	width  int
	height int
}

func newModelList(kind catalog.Kind, title, selected string) list.Model {
	models := catalog.Models(kind)
	items := make([]list.Item, len(models))
	index := 0
	for i, m := range models {
		items[i] = item{model: m}
		if m.Key == selected {
			index = i
		}
	}
	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = title
	l.DisableQuitKeybindings()
	l.Select(index)
	return l
}

func newParamInput(prompt string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "key=value key=value"
	ti.CharLimit = 512
	ti.Width = 60
	return ti
}

// initialModel creates the workflow model for one dataset.
func initialModel(ctx context.Context, cfg *appconfig.Config, svc compare.Service, file api.Upload, target string) *model {
	if cfg == nil {
		cfg = &appconfig.Config{}
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &model{
		ctx:           ctx,
		cfg:           cfg,
		svc:           svc,
		runner:        compare.NewRunner(svc, cfg),
		file:          file,
		target:        strings.TrimSpace(target),
		state:         viewClassical,
		classicalList: newModelList(catalog.Classical, "Select a classical model", cfg.DefaultClassical()),
		quantumList:   newModelList(catalog.Quantum, "Select a quantum model", cfg.DefaultQuantum()),
		inputs:        [2]textinput.Model{newParamInput("Classical: "), newParamInput("Quantum:   ")},
		spinner:       s,
		viewport:      viewport.New(80, 20),
		inspecting:    true,
	}
}

// inspectCmd previews the dataset and runs QuickCheck in the background.
func inspectCmd(ctx context.Context, svc compare.Service, file api.Upload, target string, rows int) tea.Cmd {
	return func() tea.Msg {
		in, err := compare.Inspect(ctx, svc, file, compare.InspectOptions{Target: target, Rows: rows})
		return inspectMsg{inspection: in, err: err}
	}
}

// compareCmd runs one comparison.
func compareCmd(ctx context.Context, runner *compare.Runner, file api.Upload, payload api.ComparePayload, seq int) tea.Cmd {
	return func() tea.Msg {
		run, err := runner.Run(ctx, file, payload)
		return runDoneMsg{seq: seq, run: run, err: err}
	}
}

// Init starts the spinner and the background inspection.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, inspectCmd(m.ctx, m.svc, m.file, m.target, m.cfg.Rows()))
}

func (m *model) filtering() bool {
	switch m.state {
	case viewClassical:
		return m.classicalList.FilterState() == list.Filtering
	case viewQuantum:
		return m.quantumList.FilterState() == list.Filtering
	}
	return false
}

// Update is the central update function of the workflow.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.stopRun()
			return m, tea.Quit
		case "q":
			if m.state != viewParams && !m.filtering() {
				m.stopRun()
				return m, tea.Quit
			}
		case "esc":
			if !m.filtering() {
				m.back()
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.classicalList.SetSize(msg.Width-2, msg.Height-8)
		m.quantumList.SetSize(msg.Width-2, msg.Height-8)
		for i := range m.inputs {
			m.inputs[i].Width = max(msg.Width-16, 20)
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 1)
		if m.run != nil {
			m.viewport.SetContent(m.renderRun())
		}
		return m, nil

	case inspectMsg:
		m.inspecting = false
		m.inspection = msg.inspection
		m.inspectErr = msg.err
		if msg.err != nil {
			logging.LogEvent("inspect %s failed: %v", m.file.Name, msg.err)
		}
		return m, nil

	case runDoneMsg:
		if msg.seq != m.runSeq || m.state != viewRunning {
			return m, nil
		}
		m.stopRun()
		if msg.err != nil {
			m.err = msg.err
			m.state = viewParams
			m.inputs[m.focus].Focus()
			return m, nil
		}
		m.run = msg.run
		m.err = nil
		m.status = ""
		m.state = viewResults
		m.viewport.SetContent(m.renderRun())
		m.viewport.GotoTop()
		return m, nil
	}

	switch m.state {
	case viewClassical, viewQuantum:
		cmd, handled := m.updateList(msg)
		if handled {
			return m, cmd
		}
		cmds = append(cmds, cmd)

	case viewParams:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "tab", "shift+tab", "up", "down":
				m.inputs[m.focus].Blur()
				m.focus = 1 - m.focus
				return m, m.inputs[m.focus].Focus()
			case "enter":
				return m, m.startRun()
			}
		}
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)

	case viewRunning:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case viewResults:
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "s" {
			m.saveRun()
			return m, nil
		}
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.inspecting && m.state != viewRunning {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// updateList handles the two model lists. handled reports that the key was
// consumed by the workflow itself.
func (m *model) updateList(msg tea.Msg) (cmd tea.Cmd, handled bool) {
	l := &m.classicalList
	if m.state == viewQuantum {
		l = &m.quantumList
	}
	if key, ok := msg.(tea.KeyMsg); ok && l.FilterState() != list.Filtering {
		switch key.String() {
		case "a":
			return m.applyRecommendation(), true
		case "enter":
			selected, ok := l.SelectedItem().(item)
			if !ok {
				return nil, true
			}
			m.err = nil
			if m.state == viewClassical {
				m.classical = selected.model
				m.state = viewQuantum
				return nil, true
			}
			m.quantum = selected.model
			return m.enterParams(), true
		}
	}
	*l, cmd = l.Update(msg)
	return cmd, false
}

// applyRecommendation selects the QuickCheck suggestion and jumps to the
// parameter step.
func (m *model) applyRecommendation() tea.Cmd {
	if m.inspection == nil || m.inspection.Quickcheck == nil {
		m.status = "No QuickCheck recommendation yet."
		return nil
	}
	rec := m.inspection.Quickcheck.Recommendation
	classical, err := catalog.Lookup(catalog.Classical, rec.Classical)
	if err != nil {
		m.err = err
		return nil
	}
	quantum, err := catalog.Lookup(catalog.Quantum, rec.Quantum)
	if err != nil {
		m.err = err
		return nil
	}
	selectKey(&m.classicalList, classical.Key)
	selectKey(&m.quantumList, quantum.Key)
	m.classical, m.quantum = classical, quantum
	m.err = nil
	m.status = fmt.Sprintf("Applied recommendation: %s + %s", classical.Name, quantum.Name)
	return m.enterParams()
}

func selectKey(l *list.Model, key string) {
	for i, it := range l.Items() {
		if it.(item).model.Key == key {
			l.Select(i)
			return
		}
	}
}

// enterParams prefills both inputs with the effective parameters.
func (m *model) enterParams() tea.Cmd {
	m.state = viewParams
	m.inputs[0].SetValue(catalog.FormatParams(catalog.Merge(m.classical.Defaults, m.cfg.ParamOverrides(false, m.classical.Key))))
	m.inputs[1].SetValue(catalog.FormatParams(catalog.Merge(m.quantum.Defaults, m.cfg.ParamOverrides(true, m.quantum.Key))))
	m.inputs[1].Blur()
	m.focus = 0
	return m.inputs[0].Focus()
}

// readParams parses and validates both inputs into a payload.
func (m *model) readParams() (api.ComparePayload, error) {
	payload := api.ComparePayload{
		ClassicalModel: m.classical.Key,
		QuantumModel:   m.quantum.Key,
		TargetColumn:   m.target,
	}
	if payload.TargetColumn == "" && m.inspection != nil {
		payload.TargetColumn = m.inspection.Target
	}
	var err error
	if payload.ClassicalParams, err = catalog.ParseAssignments(strings.Fields(m.inputs[0].Value())); err != nil {
		return payload, fmt.Errorf("classical: %w", err)
	}
	if payload.QuantumParams, err = catalog.ParseAssignments(strings.Fields(m.inputs[1].Value())); err != nil {
		return payload, fmt.Errorf("quantum: %w", err)
	}
	if _, _, err := m.runner.Resolve(m.file, payload); err != nil {
		return payload, err
	}
	return payload, nil
}

// startRun validates the parameters and, if they are good, starts the run.
func (m *model) startRun() tea.Cmd {
	payload, err := m.readParams()
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.status = ""
	m.payload = payload
	m.runSeq++
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelRun = cancel
	m.state = viewRunning
	m.inputs[m.focus].Blur()
	return tea.Batch(m.spinner.Tick, compareCmd(ctx, m.runner, m.file, payload, m.runSeq))
}

func (m *model) stopRun() {
	if m.cancelRun != nil {
		m.cancelRun()
		m.cancelRun = nil
	}
}

// back moves one step back through the workflow.
func (m *model) back() {
	m.err = nil
	switch m.state {
	case viewQuantum:
		m.state = viewClassical
	case viewParams:
		m.inputs[m.focus].Blur()
		m.state = viewQuantum
	case viewRunning:
		m.stopRun()
		m.status = "Comparison cancelled."
		m.state = viewParams
		m.inputs[m.focus].Focus()
	case viewResults:
		m.state = viewParams
		m.inputs[m.focus].Focus()
	}
}

func (m *model) saveRun() {
	if m.run == nil {
		return
	}
	name := m.run.ID
	if len(name) > 8 {
		name = name[:8]
	}
	path := filepath.Join(m.cfg.ReportDirectory(), name+".json")
	if err := compare.SaveRun(path, m.run, compare.FormatJSON); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = "Saved " + path
}

func (m *model) renderRun() string {
	width := 0
	if m.width > 8 {
		width = m.width - 8
	}
	return report.RenderRun(m.run, report.Options{Plots: true, Width: width})
}

// View renders the current screen.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.state {
	case viewClassical:
		b.WriteString(m.quickcheckView())
		b.WriteString(m.classicalList.View())
	case viewQuantum:
		b.WriteString(m.quickcheckView())
		b.WriteString(m.quantumList.View())
	case viewParams:
		b.WriteString(m.paramsView())
	case viewRunning:
		fmt.Fprintf(&b, "  %s Comparing %s vs %s on %s...\n", m.spinner.View(), m.classical.Name, m.quantum.Name, m.file.Name)
	case viewResults:
		b.WriteString(m.viewport.View())
	default:
		b.WriteString("Unknown state")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.help()))
	return b.String()
}

func (m *model) header() string {
	target := m.target
	if target == "" && m.inspection != nil {
		target = m.inspection.Target
	}
	if target == "" {
		target = "auto"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render("QML Compare"),
		headerStyle.MarginLeft(1).Render("Dataset: "+m.file.Name),
		headerStyle.MarginLeft(1).Render("Target: "+target),
	)
}

func (m *model) quickcheckView() string {
	if m.inspecting {
		return fmt.Sprintf("  %s Checking dataset...\n\n", m.spinner.View())
	}
	if m.inspectErr != nil {
		return report.QuickcheckPanel(nil, m.inspectErr) + "\n"
	}
	if m.inspection == nil {
		return ""
	}
	out := report.QuickcheckPanel(m.inspection.Quickcheck, m.inspection.QuickcheckErr)
	if m.inspection.TargetNote != "" {
		out += hintStyle.Render(m.inspection.TargetNote) + "\n"
	}
	return out + "\n"
}

func (m *model) paramsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s vs %s", m.classical.Name, m.quantum.Name)))
	b.WriteString("\n\n")
	for i, side := range []catalog.Model{m.classical, m.quantum} {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		for _, p := range side.Params {
			line := fmt.Sprintf("  %s (%s): %s", p.Key, p.Label, p.Help())
			if p.Placeholder != "" {
				line += " [" + p.Placeholder + "]"
			}
			b.WriteString(hintStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *model) help() string {
	switch m.state {
	case viewClassical:
		return "(enter to select, a to apply recommendation, / to filter, q to quit)"
	case viewQuantum:
		return "(enter to select, a to apply recommendation, esc to go back, q to quit)"
	case viewParams:
		return "(tab to switch side, enter to run, esc to go back, ctrl+c to quit)"
	case viewRunning:
		return "(esc to cancel, ctrl+c to quit)"
	case viewResults:
		return "(arrows to scroll, s to save, esc to edit parameters, q to quit)"
	}
	return ""
}

// Start runs the interactive workflow for one dataset until the user quits.
func Start(ctx context.Context, cfg *appconfig.Config, svc compare.Service, file api.Upload, target string) error {
	m := initialModel(ctx, cfg, svc, file, target)
	defer m.stopRun()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}
