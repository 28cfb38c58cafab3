package style

import (
	"errors"
	"fmt"

	"github.com/xlab/treeprint"
)

// NodeID addresses a node of the attribute tree.
type NodeID int

const (
	// RootNode is created with the tree and has no attributes of its own.
	RootNode NodeID = 0
	// NoParent marks the root.
	NoParent NodeID = -1
)

var ErrNodeNotFound = errors.New("attribute node not found")

// Node keeps style state of a single element. Nodes refer to each other by id
// only, the tree owns all of them.
type Node struct {
	ID       NodeID
	Parent   NodeID
	Children []NodeID
	Inline   Attributes
	Computed Attributes
}

// Tree is the owning store of attribute nodes. Ids are handed out by a
// monotonic counter and never reused.
type Tree struct {
	nodes []*Node
	next  NodeID
}

func NewTree() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, &Node{ID: RootNode, Parent: NoParent})
	t.next = RootNode + 1
	return t
}

// Len returns number of nodes including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Add creates a node with inline attributes under parent and returns its id.
func (t *Tree) Add(parent NodeID, inline Attributes) (NodeID, error) {
	p, ok := t.Find(parent)
	if !ok {
		return NoParent, fmt.Errorf("unable to attach to node %d: %w", parent, ErrNodeNotFound)
	}
	id := t.next
	t.next++
	t.nodes = append(t.nodes, &Node{ID: id, Parent: parent, Inline: inline})
	p.Children = append(p.Children, id)
	return id, nil
}

// Find returns node by id. Returned pointer may be used to modify the node.
func (t *Tree) Find(id NodeID) (*Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil, false
	}
	return t.nodes[id], true
}

// SetComputed replaces computed attributes of the node.
func (t *Tree) SetComputed(id NodeID, computed Attributes) error {
	n, ok := t.Find(id)
	if !ok {
		return fmt.Errorf("unable to set computed style of node %d: %w", id, ErrNodeNotFound)
	}
	n.Computed = computed
	return nil
}

// IsInheritable reports whether lookups of the property fall back to the
// parent node when the node itself has no value.
func IsInheritable(property string) bool {
	switch property {
	case "color", "font-family", "font-size", "font-weight", "font-style":
		return true
	case "line-height", "text-align", "visibility":
		return true
	}
	return false
}

// EffectiveValue looks the property up in computed attributes of the node
// and, for inheritable properties, of its ancestors.
func (n *Node) EffectiveValue(property string, t *Tree) (string, bool) {
	for cur := n; cur != nil; {
		if v, ok := cur.Computed.Get(property); ok {
			return v, true
		}
		if !IsInheritable(property) || cur.Parent == NoParent {
			break
		}
		parent, ok := t.Find(cur.Parent)
		if !ok {
			break
		}
		cur = parent
	}
	return "", false
}

// Dump renders the tree for debugging.
func (t *Tree) Dump() string {
	out := treeprint.New()
	out.SetValue("attributes")
	t.dump(out, t.nodes[RootNode])
	return out.String()
}

func (t *Tree) dump(branch treeprint.Tree, n *Node) {
	for _, cid := range n.Children {
		child := t.nodes[cid]
		label := fmt.Sprintf("node %d inline=%s computed=%s", child.ID, child.Inline, child.Computed)
		if len(child.Children) == 0 {
			branch.AddNode(label)
			continue
		}
		t.dump(branch.AddBranch(label), child)
	}
}
