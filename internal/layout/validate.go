package layout

import (
	"errors"
	"fmt"
	"math"
)

// Invariant violations reported by Validate.
var (
	ErrNoWindows      = errors.New("tree has no windows")
	ErrTooFewChildren = errors.New("split has fewer than two children")
	ErrSizeMismatch   = errors.New("split children and sizes differ in length")
	ErrSizeSum        = errors.New("split sizes do not sum to 100")
	ErrSizeRange      = errors.New("split size out of range")
	ErrDuplicateID    = errors.New("duplicate node id")
)

// sizeTolerance absorbs floating point drift in size sums.
const sizeTolerance = 1e-6

// Validate checks the structural invariants of tree and returns every
// violation joined into one error, or nil. Trees produced by Ops satisfy
// them, except that a resize clamped at the boundary may leave a split's sum
// slightly off 100.
func Validate(tree Node, minPane float64) error {
	if tree == nil || CountWindows(tree) == 0 {
		return ErrNoWindows
	}
	var errs []error
	seen := make(map[NodeID]bool)
	Walk(tree, func(n Node, _ int) bool {
		id := n.NodeID()
		if seen[id] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateID, id))
		}
		seen[id] = true

		s, ok := n.(*Split)
		if !ok {
			return true
		}
		if len(s.Children) < 2 {
			errs = append(errs, fmt.Errorf("%w: %s has %d", ErrTooFewChildren, id, len(s.Children)))
		}
		if len(s.Children) != len(s.Sizes) {
			errs = append(errs, fmt.Errorf("%w: %s has %d children, %d sizes", ErrSizeMismatch, id, len(s.Children), len(s.Sizes)))
		}
		sum := 0.0
		for i, size := range s.Sizes {
			sum += size
			if size < minPane-sizeTolerance || size > 100-minPane+sizeTolerance {
				errs = append(errs, fmt.Errorf("%w: %s size[%d] = %g", ErrSizeRange, id, i, size))
			}
		}
		if math.Abs(sum-100) > sizeTolerance {
			errs = append(errs, fmt.Errorf("%w: %s sums to %g", ErrSizeSum, id, sum))
		}
		return true
	})
	return errors.Join(errs...)
}
