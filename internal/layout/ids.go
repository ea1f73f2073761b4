package layout

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// NodeKind distinguishes the two node variants when generating ids.
type NodeKind int

const (
	KindWindow NodeKind = iota
	KindSplit
)

// IDGenerator returns a fresh id for a node of the given kind. Generated ids
// must never collide with ids already present in a tree.
type IDGenerator func(kind NodeKind) NodeID

// UUIDs generates random ids for both kinds.
func UUIDs() IDGenerator {
	return func(NodeKind) NodeID {
		return NodeID(uuid.NewString())
	}
}

// SequentialIDs numbers windows start, start+1, ... and splits s1, s2, ...
// It keeps window ids readable in tests and debug output.
func SequentialIDs(start int) IDGenerator {
	var windows, splits atomic.Int64
	windows.Store(int64(start) - 1)
	return func(kind NodeKind) NodeID {
		if kind == KindSplit {
			return NodeID("s" + strconv.FormatInt(splits.Add(1), 10))
		}
		return NodeID(strconv.FormatInt(windows.Add(1), 10))
	}
}
