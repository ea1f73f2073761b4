// Package workspace hosts the single authoritative layout tree of a chart
// workspace. It applies layout operations on request, records a span and a
// debug log line for each, tracks window initialization, and broadcasts every
// change to its listeners.
//
// The tree is guarded by a mutex so initialization results may arrive from
// any goroutine. Drag methods are driven by the UI goroutine only.
package workspace

import (
	"context"
	"sort"
	"sync"

	"chartgrid/internal/drag"
	"chartgrid/internal/layout"
	"chartgrid/internal/lifecycle"
	"chartgrid/internal/logging"
	"chartgrid/internal/render"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Span names recorded per operation.
const (
	SpanSplit      = "layout.split"
	SpanClose      = "layout.close"
	SpanResize     = "layout.resize"
	SpanSetContent = "layout.set_content"
)

// Span attribute keys.
const (
	AttrWindowID      = attribute.Key("chartgrid.window_id")
	AttrSplitID       = attribute.Key("chartgrid.split_id")
	AttrOrientation   = attribute.Key("chartgrid.orientation")
	AttrPairIndex     = attribute.Key("chartgrid.pair_index")
	AttrDelta         = attribute.Key("chartgrid.delta")
	AttrContainerSize = attribute.Key("chartgrid.container_size")
	AttrChanged       = attribute.Key("chartgrid.changed")
	AttrWindows       = attribute.Key("chartgrid.windows")
)

// Listener receives every new tree.
type Listener func(tree layout.Node)

// Manager owns a workspace's tree.
type Manager struct {
	mu        sync.Mutex
	tree      layout.Node
	listeners map[int]Listener
	nextID    int

	ops     layout.Ops
	tracker *lifecycle.Tracker
	hook    lifecycle.Hook
	tracer  oteltrace.Tracer
	log     *logging.Logger
	prune   bool

	drag   *drag.Controller
	active *render.Splitter
}

// Option configures a Manager.
type Option func(*Manager)

// WithOps sets the layout policy. Defaults to layout.DefaultOps.
func WithOps(ops layout.Ops) Option {
	return func(m *Manager) { m.ops = ops }
}

// WithInitializer sets the hook fired once for every new window.
func WithInitializer(hook lifecycle.Hook) Option {
	return func(m *Manager) { m.hook = hook }
}

// WithTracer sets the tracer for operation spans. Defaults to a no-op tracer.
func WithTracer(t oteltrace.Tracer) Option {
	return func(m *Manager) {
		if t != nil {
			m.tracer = t
		}
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithPruneClosed makes the manager forget the initialization state of
// closed windows.
func WithPruneClosed(prune bool) Option {
	return func(m *Manager) { m.prune = prune }
}

// New creates a Manager holding root. Call Start to initialize its windows.
func New(root layout.Node, opts ...Option) *Manager {
	m := &Manager{
		tree:      root,
		listeners: make(map[int]Listener),
		ops:       layout.DefaultOps(),
		tracer:    noop.NewTracerProvider().Tracer("chartgrid/layout"),
		log:       logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithComponent("workspace")
	m.tracker = lifecycle.New(m.hook)
	m.drag = drag.NewController(m, m.resize)
	return m
}

// Start fires the initialization hook for the windows of the initial tree.
func (m *Manager) Start() {
	ids := m.initialize()
	m.log.Debug("workspace started", "initialized", len(ids))
}

// Tree returns the current tree.
func (m *Manager) Tree() layout.Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree
}

// Current implements drag.Host.
func (m *Manager) Current() layout.Node { return m.Tree() }

// Commit implements drag.Host. It stores tree and notifies listeners when
// it differs from the current one.
func (m *Manager) Commit(tree layout.Node) {
	m.mu.Lock()
	changed := tree != m.tree
	m.tree = tree
	m.mu.Unlock()
	if changed {
		m.changed(tree)
	}
}

// Initialized reports whether window id has been initialized.
func (m *Manager) Initialized(id layout.NodeID) bool {
	return m.tracker.Initialized(id)
}

// CanClose reports whether any window may be closed.
func (m *Manager) CanClose() bool {
	_, sole := m.Tree().(*layout.Window)
	return !sole
}

// RequestSplit splits window id. Returns false when id is not a window.
func (m *Manager) RequestSplit(id layout.NodeID, o layout.Orientation) bool {
	return m.apply(SpanSplit, []attribute.KeyValue{
		AttrWindowID.String(string(id)),
		AttrOrientation.String(o.String()),
	}, func(tree layout.Node) layout.Node {
		return m.ops.Split(tree, id, o)
	})
}

// RequestClose closes window id. Returns false for an unknown id or the
// sole window.
func (m *Manager) RequestClose(id layout.NodeID) bool {
	return m.apply(SpanClose, []attribute.KeyValue{
		AttrWindowID.String(string(id)),
	}, func(tree layout.Node) layout.Node {
		return m.ops.Close(tree, id)
	})
}

// SetContent replaces the content of window id without re-initializing it.
func (m *Manager) SetContent(id layout.NodeID, content any) bool {
	return m.apply(SpanSetContent, []attribute.KeyValue{
		AttrWindowID.String(string(id)),
	}, func(tree layout.Node) layout.Node {
		return m.ops.SetContent(tree, id, content)
	})
}

// OnLayoutChange registers fn for every successful change. Listeners run
// after the tree is stored, in registration order, outside the lock.
func (m *Manager) OnLayoutChange(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// BeginDrag starts dragging splitter s from pointer position p.
func (m *Manager) BeginDrag(s render.Splitter, p drag.Point) {
	m.drag.PointerDown(drag.Handle{
		SplitID:       s.SplitID,
		PairIndex:     s.PairIndex,
		Orientation:   s.Orientation,
		ContainerSize: s.ContainerSize,
	}, p)
	m.active = &s
	m.log.Debug("drag started", "split_id", string(s.SplitID), "pair_index", s.PairIndex)
}

// DragMove feeds a pointer move to the drag in progress. Returns true when
// the tree changed.
func (m *Manager) DragMove(p drag.Point) bool {
	return m.drag.PointerMove(p)
}

// EndDrag finishes any drag in progress.
func (m *Manager) EndDrag() {
	if m.drag.State() == drag.Dragging {
		m.log.Debug("drag ended")
	}
	m.drag.PointerUp()
	m.active = nil
}

// Dragging reports whether a drag is in progress.
func (m *Manager) Dragging() bool {
	return m.drag.State() == drag.Dragging
}

// ActiveSplitter returns the splitter being dragged.
func (m *Manager) ActiveSplitter() (render.Splitter, bool) {
	if m.active == nil || !m.Dragging() {
		return render.Splitter{}, false
	}
	return *m.active, true
}

func (m *Manager) resize(tree layout.Node, splitID layout.NodeID, pairIndex int, delta, container float64) layout.Node {
	_, span := m.tracer.Start(context.Background(), SpanResize, oteltrace.WithAttributes(
		AttrSplitID.String(string(splitID)),
		AttrPairIndex.Int(pairIndex),
		AttrDelta.Float64(delta),
		AttrContainerSize.Float64(container),
	))
	defer span.End()

	next := m.ops.Resize(tree, splitID, pairIndex, delta, container)
	span.SetAttributes(AttrChanged.Bool(next != tree))
	if next != tree {
		m.log.Debug("layout resized", "split_id", string(splitID), "pair_index", pairIndex, "delta", delta)
	}
	return next
}

func (m *Manager) apply(name string, attrs []attribute.KeyValue, fn func(layout.Node) layout.Node) bool {
	_, span := m.tracer.Start(context.Background(), name, oteltrace.WithAttributes(attrs...))
	defer span.End()

	m.mu.Lock()
	prev := m.tree
	next := fn(prev)
	changed := next != prev
	m.tree = next
	m.mu.Unlock()

	span.SetAttributes(AttrChanged.Bool(changed))
	if !changed {
		return false
	}
	windows := layout.CountWindows(next)
	span.SetAttributes(AttrWindows.Int(windows))
	args := make([]any, 0, 2*len(attrs)+2)
	for _, kv := range attrs {
		args = append(args, string(kv.Key), kv.Value.Emit())
	}
	m.log.Debug(name, append(args, "windows", windows)...)
	m.changed(next)
	return true
}

// changed runs after a new tree is stored.
func (m *Manager) changed(tree layout.Node) {
	m.mu.Lock()
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, m.listeners[id])
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(tree)
	}

	for _, id := range m.initialize() {
		m.log.WithWindow(string(id)).Debug("window initialized")
	}
}

// initialize claims the new windows of the tree current at the time of the
// call, and prunes closed ones, under the lock, so a notification that
// finishes after a newer change never works on a superseded tree. The hook
// runs after the lock is released.
func (m *Manager) initialize() []layout.NodeID {
	m.mu.Lock()
	fresh := m.tracker.Claim(m.tree)
	pruned := 0
	if m.prune {
		pruned = m.tracker.Prune(m.tree)
	}
	m.mu.Unlock()

	if pruned > 0 {
		m.log.Debug("pruned closed windows", "count", pruned)
	}
	return m.tracker.Fire(fresh)
}
