package layout

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOps() Ops {
	return Ops{MinPane: DefaultMinPane, NewID: SequentialIDs(2)}
}

func split(id NodeID, o Orientation, sizes []float64, children ...Node) *Split {
	return &Split{ID: id, Orientation: o, Children: children, Sizes: sizes}
}

func win(id NodeID) *Window { return NewWindow(id, nil) }

func TestScenarios(t *testing.T) {
	ops := testOps()

	root := Node(win("1"))
	a := ops.Split(root, "1", Horizontal)
	assert.Equal(t, "Split{horizontal, [Window(1), Window(2)], [50,50]}", Describe(a))

	b := ops.Split(a, "2", Vertical)
	assert.Equal(t, "Split{horizontal, [Window(1), Split{vertical, [Window(2), Window(3)], [50,50]}], [50,50]}", Describe(b))

	c := ops.Close(b, "1")
	assert.Equal(t, "Split{vertical, [Window(2), Window(3)], [50,50]}", Describe(c))

	for _, tree := range []Node{a, b, c} {
		require.NoError(t, Validate(tree, DefaultMinPane))
	}
}

func TestSplit(t *testing.T) {
	ops := testOps()
	left := win("1")
	right := split("s9", Vertical, []float64{50, 50}, win("7"), win("8"))
	tree := split("s0", Horizontal, []float64{30, 70}, left, right)

	got := ops.Split(tree, "8", Horizontal)

	want := split("s0", Horizontal, []float64{30, 70},
		left,
		split("s9", Vertical, []float64{50, 50},
			win("7"),
			split("s1", Horizontal, []float64{50, 50}, win("8"), win("2")),
		),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Split mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, CountWindows(tree)+1, CountWindows(got))

	gotRoot := got.(*Split)
	assert.Same(t, left, gotRoot.Children[0], "sibling off the path is shared")
	assert.NotSame(t, tree, got, "root on the path is rebuilt")
	assert.NotSame(t, right, gotRoot.Children[1], "ancestor on the path is rebuilt")
	assert.Equal(t, []float64{30, 70}, tree.Sizes, "input is not mutated")
	assert.Len(t, right.Children, 2, "input is not mutated")
}

func TestSplit_DerivesContent(t *testing.T) {
	ops := testOps()
	ops.Derive = func(content any) any {
		return content.(string) + "-fresh"
	}
	got := ops.Split(NewWindow("1", "BTCUSDT"), "1", Vertical)

	s := got.(*Split)
	assert.Equal(t, "BTCUSDT", s.Children[0].(*Window).Content)
	assert.Equal(t, "BTCUSDT-fresh", s.Children[1].(*Window).Content)
	assert.Equal(t, Vertical, s.Orientation)
}

func TestSplit_NoOp(t *testing.T) {
	ops := testOps()
	tree := Node(split("s0", Horizontal, []float64{50, 50}, win("1"), win("2")))

	assert.Same(t, tree, ops.Split(tree, "missing", Horizontal))
	assert.Same(t, tree, ops.Split(tree, "s0", Vertical), "splits are not split targets")
}

func TestClose_SoleWindow(t *testing.T) {
	root := Node(win("1"))
	assert.Same(t, root, testOps().Close(root, "1"))
	assert.Same(t, root, testOps().Close(root, "other"))
}

func TestClose_UnknownID(t *testing.T) {
	tree := Node(split("s0", Horizontal, []float64{50, 50}, win("1"), win("2")))
	assert.Same(t, tree, testOps().Close(tree, "3"))
	assert.Same(t, tree, testOps().Close(tree, "s0"))
}

func TestClose_FlattensAtDepth(t *testing.T) {
	survivor := split("s3", Horizontal, []float64{25, 75}, win("4"), win("5"))
	tree := split("s0", Vertical, []float64{40, 60},
		win("1"),
		split("s1", Horizontal, []float64{50, 50},
			win("2"),
			split("s2", Vertical, []float64{50, 50}, win("3"), survivor),
		),
	)

	got := testOps().Close(tree, "3")

	want := split("s0", Vertical, []float64{40, 60},
		win("1"),
		split("s1", Horizontal, []float64{50, 50}, win("2"), survivor),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Close mismatch (-want +got):\n%s", diff)
	}
	assert.Same(t, survivor, Find(got, "s3"), "surviving subtree moves up intact")
}

func TestClose_EvenRedistribution(t *testing.T) {
	tree := split("s0", Horizontal, []float64{20, 30, 50}, win("1"), win("2"), win("3"))

	got := testOps().Close(tree, "2").(*Split)

	assert.Len(t, got.Children, 2)
	assert.Equal(t, []float64{50, 50}, got.Sizes)
	assert.Equal(t, []NodeID{"1", "3"}, []NodeID{got.Children[0].NodeID(), got.Children[1].NodeID()})
}

func TestClose_MalformedEmptySplitCollapsesUpward(t *testing.T) {
	// A one-child split never comes out of Ops, but the flatten rule still
	// removes it and repairs its parent.
	tree := split("s0", Horizontal, []float64{50, 50},
		win("1"),
		split("s1", Vertical, []float64{100}, win("2")),
	)

	got := testOps().Close(tree, "2")

	assert.Equal(t, "Window(1)", Describe(got))
}

func TestResize(t *testing.T) {
	tree := Node(split("s0", Horizontal, []float64{50, 50}, win("1"), win("2")))

	tests := []struct {
		name      string
		delta     float64
		container float64
		want      []float64
	}{
		{"grow first", 100, 1000, []float64{60, 40}},
		{"shrink first", -250, 1000, []float64{25, 75}},
		{"clamp high", 5000, 1000, []float64{80, 20}},
		{"clamp low", -5000, 1000, []float64{20, 80}},
		{"exact boundary", 30, 100, []float64{80, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testOps().Resize(tree, "s0", 0, tt.delta, tt.container).(*Split)
			assert.InDeltaSlice(t, tt.want, got.Sizes, 1e-9)
		})
	}
}

func TestResize_OnlyAdjacentPair(t *testing.T) {
	tree := split("s0", Vertical, []float64{30, 30, 40}, win("1"), win("2"), win("3"))

	got := testOps().Resize(tree, "s0", 1, 50, 1000).(*Split)

	assert.InDeltaSlice(t, []float64{30, 35, 35}, got.Sizes, 1e-9)
	assert.Equal(t, []float64{30, 30, 40}, tree.Sizes)
	assert.Same(t, tree.Children[0], got.Children[0])
}

func TestResize_ClampMayBreakSum(t *testing.T) {
	tree := split("s0", Vertical, []float64{25, 25, 50}, win("1"), win("2"), win("3"))

	got := testOps().Resize(tree, "s0", 0, 400, 1000).(*Split)

	// 25+40 = 65 is in range, 25-40 clamps to 20: the pair gains 5 overall.
	assert.InDeltaSlice(t, []float64{65, 20, 50}, got.Sizes, 1e-9)
}

func TestResize_NoOp(t *testing.T) {
	tree := Node(split("s0", Horizontal, []float64{80, 20}, win("1"), win("2")))
	ops := testOps()

	assert.Same(t, tree, ops.Resize(tree, "missing", 0, 10, 100))
	assert.Same(t, tree, ops.Resize(tree, "1", 0, 10, 100), "windows cannot be resized")
	assert.Same(t, tree, ops.Resize(tree, "s0", 1, 10, 100), "pair index past the end")
	assert.Same(t, tree, ops.Resize(tree, "s0", -1, 10, 100))
	assert.Same(t, tree, ops.Resize(tree, "s0", 0, 10, 0))
	assert.Same(t, tree, ops.Resize(tree, "s0", 0, 10, 100), "already at the clamp")
}

func TestSetContent(t *testing.T) {
	tree := Node(split("s0", Horizontal, []float64{50, 50}, NewWindow("1", "a"), NewWindow("2", "b")))

	ops := DefaultOps()
	got := ops.SetContent(tree, "2", "loaded")

	assert.Equal(t, "loaded", FindWindow(got, "2").Content)
	assert.Equal(t, "b", FindWindow(tree, "2").Content)
	assert.Same(t, FindWindow(tree, "1"), FindWindow(got, "1"))
	assert.Same(t, tree, ops.SetContent(tree, "s0", "x"))
	assert.Same(t, tree, ops.SetContent(tree, "9", "x"))
}

func TestDefaultOps_UUIDs(t *testing.T) {
	got := DefaultOps().Split(NewWindow("root", nil), "root", Horizontal)
	require.NoError(t, Validate(got, DefaultMinPane))

	s := got.(*Split)
	assert.NotEqual(t, s.ID, s.Children[1].NodeID())
	assert.Len(t, string(s.Children[1].NodeID()), 36)
}

// TestRandomOperations drives long random operation sequences and checks the
// invariants after every step.
func TestRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ops := testOps()
	tree := Node(win("1"))

	for step := 0; step < 2000; step++ {
		windows := Windows(tree)
		before := len(windows)
		target := windows[rng.Intn(len(windows))].ID

		switch rng.Intn(3) {
		case 0:
			o := Orientation(rng.Intn(2))
			tree = ops.Split(tree, target, o)
			require.Equal(t, before+1, CountWindows(tree), "step %d", step)
			s, ok := Find(tree, parentOf(tree, target)).(*Split)
			require.True(t, ok)
			assert.Equal(t, []float64{50, 50}, s.Sizes)
		case 1:
			tree = ops.Close(tree, target)
			if before == 1 {
				require.Equal(t, 1, CountWindows(tree))
			} else {
				require.Equal(t, before-1, CountWindows(tree), "step %d", step)
			}
		case 2:
			var splits []*Split
			Walk(tree, func(n Node, _ int) bool {
				if s, ok := n.(*Split); ok {
					splits = append(splits, s)
				}
				return true
			})
			if len(splits) == 0 {
				continue
			}
			s := splits[rng.Intn(len(splits))]
			pair := rng.Intn(len(s.Children) - 1)
			tree = ops.Resize(tree, s.ID, pair, float64(rng.Intn(4000)-2000), float64(rng.Intn(1000)+1))
		}
		require.NoError(t, Validate(tree, DefaultMinPane), "step %d: %s", step, Describe(tree))
	}
}

// parentOf returns the id of the split directly holding id.
func parentOf(tree Node, id NodeID) NodeID {
	var parent NodeID
	Walk(tree, func(n Node, _ int) bool {
		if s, ok := n.(*Split); ok {
			for _, child := range s.Children {
				if child.NodeID() == id {
					parent = s.ID
				}
			}
		}
		return true
	})
	return parent
}
