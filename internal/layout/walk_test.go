package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindows_Order(t *testing.T) {
	tree := split("s0", Horizontal, []float64{50, 50},
		split("s1", Vertical, []float64{50, 50}, win("1"), win("2")),
		win("3"),
	)

	var ids []NodeID
	for _, w := range Windows(tree) {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []NodeID{"1", "2", "3"}, ids)
	assert.Equal(t, 3, CountWindows(tree))
	assert.Nil(t, Find(tree, "nope"))
	assert.Nil(t, FindWindow(tree, "s1"))
	assert.Equal(t, NodeID("s1"), Find(tree, "s1").NodeID())
}

func TestWalk_Depth(t *testing.T) {
	tree := split("s0", Horizontal, []float64{50, 50},
		win("1"),
		split("s1", Vertical, []float64{50, 50}, win("2"), win("3")),
	)
	depths := map[NodeID]int{}
	Walk(tree, func(n Node, depth int) bool {
		depths[n.NodeID()] = depth
		return n.NodeID() != "s1"
	})
	assert.Equal(t, map[NodeID]int{"s0": 0, "1": 1, "s1": 1}, depths)
}

func TestDescribe_RoundsSizes(t *testing.T) {
	tree := split("s0", Vertical, []float64{100.0 / 3, 100.0 / 3, 100.0 / 3}, win("a"), win("b"), win("c"))
	assert.Equal(t, "Split{vertical, [Window(a), Window(b), Window(c)], [33.33,33.33,33.33]}", Describe(tree))
	assert.Equal(t, "<nil>", Describe(nil))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		tree Node
		want []error
	}{
		{"single window", win("1"), nil},
		{"nil", nil, []error{ErrNoWindows}},
		{"one child", split("s0", Horizontal, []float64{100}, win("1")), []error{ErrTooFewChildren, ErrSizeRange}},
		{"length mismatch", split("s0", Horizontal, []float64{50, 30, 20}, win("1"), win("2")), []error{ErrSizeMismatch}},
		{"bad sum", split("s0", Horizontal, []float64{50, 40}, win("1"), win("2")), []error{ErrSizeSum}},
		{"below min", split("s0", Horizontal, []float64{10, 90}, win("1"), win("2")), []error{ErrSizeRange}},
		{"duplicate", split("s0", Horizontal, []float64{50, 50}, win("1"), win("1")), []error{ErrDuplicateID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.tree, DefaultMinPane)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.want {
				assert.True(t, errors.Is(err, want), "want %v in %v", want, err)
			}
		})
	}
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]Orientation{"h": Horizontal, "horizontal": Horizontal, "v": Vertical, "vertical": Vertical} {
		got, err := ParseOrientation(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseOrientation("diagonal")
	assert.Error(t, err)
	assert.Equal(t, "Orientation(7)", Orientation(7).String())
}

func TestSequentialIDs(t *testing.T) {
	gen := SequentialIDs(5)
	assert.Equal(t, NodeID("5"), gen(KindWindow))
	assert.Equal(t, NodeID("s1"), gen(KindSplit))
	assert.Equal(t, NodeID("6"), gen(KindWindow))
	assert.Equal(t, NodeID("s2"), gen(KindSplit))
}
