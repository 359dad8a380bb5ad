/*
Package bst implements an ordered set of type-tagged byte entries stored in an
unbalanced binary search tree that keeps a Merkle root digest of its contents.

Every structural change recomputes the root digest bottom-up:

	leaf node:      digest(entry)
	non-leaf node:  digest(digest(left) || digest(right))
	absent child:   all-zero sentinel of the digest length

The root digest depends on the tree shape and thus on insertion order, two
trees holding the same entries are not guaranteed to have equal roots.

Trees are serialized in preorder, each position is a presence marker byte
optionally followed by the entry type, a big-endian uint32 value length, the
value and both child positions. An empty tree is serialized as no bytes at
all.

Tree is not safe for concurrent use.
*/
package bst
