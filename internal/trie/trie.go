// Package trie implements a fixed-depth byte trie over an input corpus.
//
// Nodes live in an arena slice and refer to children by index, so the
// parent->child ownership graph stays acyclic without per-node pointer
// management. Children are kept in a sparse map keyed by byte value;
// lookup stays O(1) without allocating a 256-wide table per node.
package trie

import "fmt"

// NodeID addresses a node inside a Trie's arena. The root is always 0.
type NodeID int32

// Root is the NodeID of the trie root.
const Root NodeID = 0

type node struct {
	children map[byte]NodeID
	depth    int
	terminal bool
}

// Trie is a byte-indexed prefix trie of bounded depth. Insertions past
// maxDepth bytes are silently truncated. A Trie is mutated only by
// Insert and is safe for concurrent readers once insertion is done.
type Trie struct {
	nodes    []node
	maxDepth int
}

// New returns an empty trie whose paths are capped at maxDepth edges.
func New(maxDepth int) (*Trie, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("max depth must be positive, got %d", maxDepth)
	}
	return &Trie{
		nodes:    []node{{depth: 0}},
		maxDepth: maxDepth,
	}, nil
}

// Insert adds s to the trie, creating nodes as needed, and marks the
// final visited node terminal. Only the first maxDepth bytes of s are
// used; longer strings truncate without error.
func (t *Trie) Insert(s string) {
	cur := Root
	for i := 0; i < len(s) && i < t.maxDepth; i++ {
		b := s[i]
		next, ok := t.nodes[cur].children[b]
		if !ok {
			next = NodeID(len(t.nodes))
			t.nodes = append(t.nodes, node{depth: t.nodes[cur].depth + 1})
			if t.nodes[cur].children == nil {
				t.nodes[cur].children = make(map[byte]NodeID)
			}
			t.nodes[cur].children[b] = next
		}
		cur = next
	}
	t.nodes[cur].terminal = true
}

// Child returns the child of id along byte b, or false when no such
// edge exists. A missing edge is a normal traversal outcome, not an
// error.
func (t *Trie) Child(id NodeID, b byte) (NodeID, bool) {
	next, ok := t.nodes[id].children[b]
	return next, ok
}

// Depth returns the number of edges between id and the root.
func (t *Trie) Depth(id NodeID) int {
	return t.nodes[id].depth
}

// Terminal reports whether some inserted string ends exactly at id.
func (t *Trie) Terminal(id NodeID) bool {
	return t.nodes[id].terminal
}

// MaxDepth returns the depth cap this trie was built with.
func (t *Trie) MaxDepth() int {
	return t.maxDepth
}

// Len returns the number of nodes, root included.
func (t *Trie) Len() int {
	return len(t.nodes)
}

// Walk follows s from the root as far as the trie allows, up to
// maxDepth edges, and returns the deepest node reached. It never
// fails: an unknown byte simply stops the walk early.
func (t *Trie) Walk(s string) NodeID {
	cur := Root
	for i := 0; i < len(s) && i < t.maxDepth; i++ {
		next, ok := t.nodes[cur].children[s[i]]
		if !ok {
			break
		}
		cur = next
	}
	return cur
}

// Contains reports whether s (truncated to maxDepth bytes) was
// inserted.
func (t *Trie) Contains(s string) bool {
	n := len(s)
	if n > t.maxDepth {
		n = t.maxDepth
	}
	id := t.Walk(s)
	return t.nodes[id].depth == n && t.nodes[id].terminal
}
