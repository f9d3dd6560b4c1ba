package params

import (
	"sort"
	"strings"
)

// Tree is a hierarchical string-valued store. Keys are dot-separated paths;
// each node holds leaf values and named sub-trees in separate namespaces.
// Typed interpretation of the stored strings is deferred to the resolver;
// the tree itself is an untyped overlay on the registered defaults.
type Tree struct {
	values map[string]string
	subs   map[string]*Tree
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		values: make(map[string]string),
		subs:   make(map[string]*Tree),
	}
}

// Set stores value under the dot-separated path, creating intermediate
// sub-trees as needed. A later Set for the same path replaces the value.
func (t *Tree) Set(path, value string) {
	node := t
	for {
		head, rest, nested := strings.Cut(path, ".")
		if !nested {
			node.values[head] = value
			return
		}
		sub, ok := node.subs[head]
		if !ok {
			sub = NewTree()
			node.subs[head] = sub
		}
		node, path = sub, rest
	}
}

// Get returns the value stored under path, or fallback if the path does not
// resolve to a leaf.
func (t *Tree) Get(path, fallback string) string {
	node, leaf := t.resolve(path)
	if node == nil {
		return fallback
	}
	value, ok := node.values[leaf]
	if !ok {
		return fallback
	}
	return value
}

// Has reports whether path resolves to a leaf value.
func (t *Tree) Has(path string) bool {
	node, leaf := t.resolve(path)
	if node == nil {
		return false
	}
	_, ok := node.values[leaf]
	return ok
}

// Flatten returns the fully-qualified keys of every leaf below the tree,
// prefixed with prefix. Within each node leaf keys come first and sub-trees
// after, both in lexicographic order, so the result is deterministic.
func (t *Tree) Flatten(prefix string) []string {
	var keys []string

	leaves := make([]string, 0, len(t.values))
	for key := range t.values {
		leaves = append(leaves, key)
	}
	sort.Strings(leaves)
	for _, key := range leaves {
		keys = append(keys, prefix+key)
	}

	names := make([]string, 0, len(t.subs))
	for name := range t.subs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		keys = append(keys, t.subs[name].Flatten(prefix+name+".")...)
	}

	return keys
}

// resolve walks to the node owning the final path segment. It returns a nil
// node when an intermediate sub-tree is missing.
func (t *Tree) resolve(path string) (node *Tree, leaf string) {
	node = t
	for {
		head, rest, nested := strings.Cut(path, ".")
		if !nested {
			return node, head
		}
		sub, ok := node.subs[head]
		if !ok {
			return nil, ""
		}
		node, path = sub, rest
	}
}
