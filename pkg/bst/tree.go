package bst

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/bytetree/pkg/crypto/hash"
)

// ErrUnordered is returned by Verify for trees violating the search order.
var ErrUnordered = errors.New("entries are out of order")

// Position is node position relative to its parent.
type Position byte

// Node positions.
const (
	RootPos Position = iota
	LeftPos
	RightPos
)

type node struct {
	entry Entry
	left  *node
	right *node
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// Tree is an ordered set of entries with Merkle root digest.
type Tree struct {
	root  *node
	count int

	digest   hash.Func
	size     int
	rootHash []byte
}

// NewTree returns an empty tree using the given digest function producing
// size-byte digests.
func NewTree(digest hash.Func, size int) *Tree {
	if digest == nil {
		panic("nil digest function")
	}
	if size < 1 {
		panic(fmt.Sprintf("invalid digest size %d", size))
	}
	t := &Tree{
		digest: digest,
		size:   size,
	}
	t.updateRoot()
	return t
}

// NewDefaultTree returns an empty tree with SHA-256 digests.
func NewDefaultTree() *Tree {
	return NewTree(hash.Sha256, hash.DefaultSize)
}

// find returns the slot holding e or the empty slot where e should be put.
func (t *Tree) find(e Entry) **node {
	slot := &t.root
	for *slot != nil {
		c := e.Compare((*slot).entry)
		switch {
		case c < 0:
			slot = &(*slot).left
		case c > 0:
			slot = &(*slot).right
		default:
			return slot
		}
	}
	return slot
}

// Insert adds e to t. It returns false and leaves the tree intact if an
// equal entry is already there.
func (t *Tree) Insert(e Entry) bool {
	slot := t.find(e)
	if *slot != nil {
		return false
	}
	*slot = &node{entry: e}
	t.count++
	t.updateRoot()
	return true
}

// Contains checks whether e is in t.
func (t *Tree) Contains(e Entry) bool {
	return *t.find(e) != nil
}

// Remove deletes e from t. It returns false if there is no such entry.
func (t *Tree) Remove(e Entry) bool {
	slot := t.find(e)
	n := *slot
	if n == nil {
		return false
	}
	switch {
	case n.left == nil:
		*slot = n.right
	case n.right == nil:
		*slot = n.left
	default:
		succ := &n.right
		for (*succ).left != nil {
			succ = &(*succ).left
		}
		n.entry = (*succ).entry
		*succ = (*succ).right
	}
	t.count--
	t.updateRoot()
	return true
}

// Entries returns all entries of t in ascending order. Every call returns a
// new slice.
func (t *Tree) Entries() []Entry {
	var (
		res   = make([]Entry, 0, t.count)
		stack []*node
		curr  = t.root
	)
	for curr != nil || len(stack) > 0 {
		for curr != nil {
			stack = append(stack, curr)
			curr = curr.left
		}
		curr = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res = append(res, curr.entry)
		curr = curr.right
	}
	return res
}

// Walk visits all nodes of t in preorder passing node entry, depth (0 for
// the root) and position to f. If f returns false, children of the node
// are skipped.
func (t *Tree) Walk(f func(e Entry, depth int, pos Position) bool) {
	type item struct {
		n     *node
		depth int
		pos   Position
	}
	if t.root == nil {
		return
	}
	stack := []item{{n: t.root, pos: RootPos}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f(it.n.entry, it.depth, it.pos) {
			continue
		}
		if it.n.right != nil {
			stack = append(stack, item{n: it.n.right, depth: it.depth + 1, pos: RightPos})
		}
		if it.n.left != nil {
			stack = append(stack, item{n: it.n.left, depth: it.depth + 1, pos: LeftPos})
		}
	}
}

// Height returns the number of levels in t, 0 for an empty tree.
func (t *Tree) Height() int {
	var h int
	t.Walk(func(_ Entry, depth int, _ Position) bool {
		if depth+1 > h {
			h = depth + 1
		}
		return true
	})
	return h
}

// Verify checks that entries of t are strictly ordered. Trees built with
// Insert always are, decoded ones are only if the encoder got them right.
func (t *Tree) Verify() error {
	es := t.Entries()
	for i := 1; i < len(es); i++ {
		if es[i-1].Compare(es[i]) >= 0 {
			return fmt.Errorf("%w: %s is not less than %s", ErrUnordered, es[i-1], es[i])
		}
	}
	return nil
}

// Len returns the number of entries in t.
func (t *Tree) Len() int {
	return t.count
}

// IsEmpty checks whether t has no entries.
func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// Clear removes all entries from t.
func (t *Tree) Clear() {
	t.root = nil
	t.count = 0
	t.updateRoot()
}
