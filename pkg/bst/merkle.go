package bst

// Root returns the root digest of t. It's an all-zero slice for an empty
// tree.
func (t *Tree) Root() []byte {
	return copySlice(t.rootHash)
}

// DigestSize returns the length of digests used by t.
func (t *Tree) DigestSize() int {
	return t.size
}

func (t *Tree) updateRoot() {
	if t.root == nil {
		t.rootHash = make([]byte, t.size)
		return
	}
	t.rootHash = t.hashNode(t.root)
}

// hashNode computes digest of the subtree rooted at n walking it bottom-up.
func (t *Tree) hashNode(n *node) []byte {
	type item struct {
		n        *node
		expanded bool
	}
	var (
		empty  = make([]byte, t.size)
		stack  = []item{{n: n}}
		hashes [][]byte
	)
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.n.isLeaf() {
			hashes = append(hashes, t.digest(it.n.entry.value, t.size))
			continue
		}
		if !it.expanded {
			stack = append(stack, item{n: it.n, expanded: true})
			if it.n.right != nil {
				stack = append(stack, item{n: it.n.right})
			}
			if it.n.left != nil {
				stack = append(stack, item{n: it.n.left})
			}
			continue
		}
		// Left subtree is processed first, so its digest is below the right one.
		left, right := empty, empty
		if it.n.right != nil {
			right = hashes[len(hashes)-1]
			hashes = hashes[:len(hashes)-1]
		}
		if it.n.left != nil {
			left = hashes[len(hashes)-1]
			hashes = hashes[:len(hashes)-1]
		}
		buf := make([]byte, 0, 2*t.size)
		buf = append(buf, left...)
		buf = append(buf, right...)
		hashes = append(hashes, t.digest(buf, t.size))
	}
	return hashes[0]
}
