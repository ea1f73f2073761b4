package ui

import (
	"context"
	"sync"

	"chartgrid/internal/chart"
	"chartgrid/internal/drag"
	"chartgrid/internal/layout"
	"chartgrid/internal/logging"
	"chartgrid/internal/render"
	"chartgrid/internal/workspace"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// AppConfig wires an AppModel.
type AppConfig struct {
	// Root is the initial tree, usually a single chart window.
	Root   layout.Node
	Loader chart.Loader
	// Ops is the layout policy. Derive defaults to chart.Derive.
	Ops         layout.Ops
	Tracer      oteltrace.Tracer
	Logger      *logging.Logger
	PruneClosed bool
	ShowHelp    bool
}

type pendingLoad struct {
	id     layout.NodeID
	config chart.Config
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ws      *workspace.Manager
	loader  chart.Loader
	log     *logging.Logger
	keys    *KeybindRegistry
	focus   FocusManager
	spinner spinner.Model
	help    help.Model

	showHelp      bool
	width, height int

	mu      sync.Mutex
	pending []pendingLoad
}

var _ tea.Model = (*AppModel)(nil)

// NewAppModel creates the model and starts its workspace, queueing loads for
// the initial windows.
func NewAppModel(cfg AppConfig) *AppModel {
	log := cfg.Logger
	if log == nil {
		log = logging.NopLogger()
	}
	m := &AppModel{
		loader:   cfg.Loader,
		log:      log.WithComponent("ui"),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(Styles.Button)),
		help:     newHelp(),
		showHelp: cfg.ShowHelp,
	}
	if m.loader == nil {
		m.loader = chart.Synthetic{Points: 120}
	}

	ops := cfg.Ops
	if ops.Derive == nil {
		ops.Derive = chart.Derive
	}
	m.ws = workspace.New(cfg.Root,
		workspace.WithOps(ops),
		workspace.WithInitializer(m.queueLoad),
		workspace.WithTracer(cfg.Tracer),
		workspace.WithLogger(log),
		workspace.WithPruneClosed(cfg.PruneClosed),
	)
	m.ws.OnLayoutChange(m.focus.Sync)
	m.keys = defaultKeys()
	m.ws.Start()
	m.focus.Sync(m.ws.Tree())
	return m
}

func defaultKeys() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("s", func() tea.Msg { return SplitMsg{Orientation: layout.Horizontal} }, "split │")
	reg.BindWithDesc("v", func() tea.Msg { return SplitMsg{Orientation: layout.Vertical} }, "split ─")
	reg.BindWithDesc("x", func() tea.Msg { return CloseMsg{} }, "close")
	reg.BindWithDesc("tab", func() tea.Msg { return FocusMsg{Delta: 1} }, "focus")
	reg.Bind("shift+tab", func() tea.Msg { return FocusMsg{Delta: -1} })
	reg.BindWithDesc("?", func() tea.Msg { return ToggleHelpMsg{} }, "help")
	reg.BindWithDesc("q", tea.Quit, "quit")
	reg.Bind("ctrl+c", tea.Quit)
	return reg
}

// Workspace returns the model's workspace.
func (m *AppModel) Workspace() *workspace.Manager { return m.ws }

// Focused returns the focused window id.
func (m *AppModel) Focused() layout.NodeID { return m.focus.Current }

// queueLoad is the workspace's initialization hook.
func (m *AppModel) queueLoad(id layout.NodeID, content any) {
	c, ok := content.(chart.Config)
	if !ok {
		return
	}
	m.mu.Lock()
	m.pending = append(m.pending, pendingLoad{id: id, config: c})
	m.mu.Unlock()
}

// drainLoads turns queued initializations into load commands.
func (m *AppModel) drainLoads() tea.Cmd {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	cmds := make([]tea.Cmd, 0, len(pending))
	for _, p := range pending {
		cmds = append(cmds, m.loadCmd(p))
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) loadCmd(p pendingLoad) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		series, err := loader.Load(context.Background(), p.config)
		return ChartLoadedMsg{ID: p.id, Series: series, Err: err}
	}
}

// Init implements tea.Model.
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.drainLoads())
}

// Update implements tea.Model.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if ok, cmd := m.keys.Handle(msg); ok {
			return m, cmd
		}
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.drainLoads()
	case SplitMsg:
		m.ws.RequestSplit(m.focus.Current, msg.Orientation)
		return m, m.drainLoads()
	case CloseMsg:
		m.ws.RequestClose(m.focus.Current)
		return m, nil
	case FocusMsg:
		if msg.Delta < 0 {
			m.focus.Prev()
		} else {
			m.focus.Next()
		}
		return m, nil
	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
		return m, nil
	case ChartLoadedMsg:
		m.applyLoad(msg)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) applyLoad(msg ChartLoadedMsg) {
	w := layout.FindWindow(m.ws.Tree(), msg.ID)
	if w == nil {
		m.log.WithWindow(string(msg.ID)).Debug("dropping load for closed window")
		return
	}
	c, ok := w.Content.(chart.Config)
	if !ok {
		return
	}
	if msg.Err != nil {
		m.log.WithWindow(string(msg.ID)).Warn("chart load failed", "symbol", c.Symbol, "error", msg.Err)
		m.ws.SetContent(msg.ID, c.Failed(msg.Err))
		return
	}
	m.ws.SetContent(msg.ID, c.Loaded(msg.Series))
}

// bounds is the screen area given to the panes.
func (m *AppModel) bounds() render.Rect {
	h := m.height
	if m.showHelp && h > 1 {
		h--
	}
	return render.Rect{W: m.width, H: h}
}

func (m *AppModel) handleMouse(msg tea.MouseMsg) {
	p := drag.Point{X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionRelease:
		m.ws.EndDrag()
	case tea.MouseActionMotion:
		if m.ws.Dragging() {
			m.ws.DragMove(p)
		}
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		geo := render.Compute(m.ws.Tree(), m.bounds())
		if s, ok := geo.SplitterAt(msg.X, msg.Y); ok {
			m.ws.BeginDrag(s, p)
			return
		}
		pane, ok := geo.PaneAt(msg.X, msg.Y)
		if !ok {
			return
		}
		m.focus.SetFocus(pane.ID)
		if msg.Y == pane.Rect.Y {
			m.paneTitleHit(pane, msg.X)
		}
	}
}

// renderer draws the workspace and owns the pane actions for it.
func (m *AppModel) renderer() render.Renderer {
	r := render.Renderer{
		Panes:   render.PaneRendererFunc(m.renderPane),
		Actions: m.ws,
		Styles:  splitterStyles(),
		Focused: m.focus.Current,
	}
	if s, ok := m.ws.ActiveSplitter(); ok {
		r.Active = &render.SplitterRef{SplitID: s.SplitID, PairIndex: s.PairIndex}
	}
	return r
}

// View implements tea.Model.
func (m *AppModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	b := m.bounds()
	out := m.renderer().Render(m.ws.Tree(), b.W, b.H)
	if m.showHelp && m.height > 1 {
		bar := lipgloss.NewStyle().MaxWidth(m.width).Render(m.help.ShortHelpView(KeyMap{m.keys}.ShortHelp()))
		out = lipgloss.JoinVertical(lipgloss.Left, out, bar)
	}
	return out
}
