package binpack

// NodeID addresses a node inside a Packer.
//
// IDs stay valid until the node itself or one of its ancestors is passed to
// Delete. Released IDs are recycled by later splits.
type NodeID int32

// NoNode is returned when no node applies.
const NoNode NodeID = -1

// node is one region of the tree. A node is either a leaf (no children) or
// fully split; only leaves can be filled.
type node struct {
	rect        Rect
	left, right NodeID
	filled      bool
}

// Packer is a guillotine rectangle packer over a fixed bounding rectangle.
type Packer struct {
	nodes []node
	free  []NodeID
	root  NodeID

	// stack is reused by every tree walk
	stack []NodeID

	// usedArea is the summed area of filled leaves
	usedArea int
}

// New creates a packer whose root covers bounds.
func New(bounds Rect) *Packer {
	p := &Packer{
		nodes: make([]node, 0, 64),
		stack: make([]NodeID, 0, 32),
	}
	p.root = p.alloc(bounds)
	return p
}

// Insert places a w x h rectangle somewhere in the free space.
// It returns the node that now holds the rectangle and its position, or
// NoNode and false when no unfilled leaf can take it.
func (p *Packer) Insert(w, h int) (NodeID, Rect, bool) {
	if w < 0 || h < 0 {
		return NoNode, Rect{}, false
	}
	id := p.insert(p.root, w, h)
	if id == NoNode {
		return NoNode, Rect{}, false
	}
	r := p.nodes[id].rect
	p.usedArea += r.Area()
	return id, r, true
}

// insert walks the subtree at from depth-first, left before right, and
// fills the first leaf that can hold w x h, splitting it when the fit is
// not exact.
func (p *Packer) insert(from NodeID, w, h int) NodeID {
	stack := append(p.stack[:0], from)
	defer func() { p.stack = stack[:0] }()

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := p.nodes[id]
		if n.left != NoNode {
			// right is pushed first so left is tried first
			stack = append(stack, n.right, n.left)
			continue
		}
		if n.filled || w > n.rect.W || h > n.rect.H {
			continue
		}
		if w == n.rect.W && h == n.rect.H {
			p.nodes[id].filled = true
			return id
		}

		lr, rr := split(n.rect, w, h)
		l := p.alloc(lr)
		r := p.alloc(rr)
		p.nodes[id].left = l
		p.nodes[id].right = r

		// the left child matches one dimension exactly and bounds the other
		stack = append(stack, l)
	}
	return NoNode
}

// split cuts r along the axis with the larger slack. The left part always
// gets the requested extent on the cut axis. Equal slack cuts horizontally.
func split(r Rect, w, h int) (left, right Rect) {
	dw := r.W - w
	dh := r.H - h
	if dw > dh {
		left = Rect{X: r.X, Y: r.Y, W: w, H: r.H}
		right = Rect{X: r.X + w, Y: r.Y, W: r.W - w, H: r.H}
		return left, right
	}
	left = Rect{X: r.X, Y: r.Y, W: r.W, H: h}
	right = Rect{X: r.X, Y: r.Y + h, W: r.W, H: r.H - h}
	return left, right
}

// Delete turns the node id back into an unfilled leaf, releasing its whole
// subtree. It returns false if id is not part of the tree.
func (p *Packer) Delete(id NodeID) bool {
	if _, ok := p.locate(id); !ok {
		return false
	}

	n := p.nodes[id]
	if n.filled {
		p.usedArea -= n.rect.Area()
	}
	p.nodes[id] = node{rect: n.rect, left: NoNode, right: NoNode}

	if n.left != NoNode {
		p.release(n.left)
		p.release(n.right)
	}
	return true
}

// Resize grows the bounding rectangle to w x h. It fails if either
// dimension would shrink. Existing placements keep their coordinates and
// node IDs; the new space opens to the right and below.
func (p *Packer) Resize(w, h int) bool {
	old := p.nodes[p.root].rect
	if w < old.W || h < old.H {
		return false
	}
	if w == old.W && h == old.H {
		return true
	}

	prev := p.root
	p.root = p.alloc(Rect{X: old.X, Y: old.Y, W: w, H: h})

	// The old footprint always fits and lands on the old origin.
	block := p.insert(p.root, old.W, old.H)
	parent, _ := p.locate(block)

	// Graft the previous tree where the block was placed.
	if p.nodes[parent].left == block {
		p.nodes[parent].left = prev
	} else {
		p.nodes[parent].right = prev
	}
	p.nodes[block].filled = false
	p.release(block)
	return true
}

// Reset drops every placement and restores a single unfilled root.
func (p *Packer) Reset() {
	bounds := p.Bounds()
	p.nodes = p.nodes[:0]
	p.free = p.free[:0]
	p.usedArea = 0
	p.root = p.alloc(bounds)
}

// Bounds returns the rectangle covered by the root.
func (p *Packer) Bounds() Rect {
	return p.nodes[p.root].rect
}

// Rect returns the region governed by id.
func (p *Packer) Rect(id NodeID) (Rect, bool) {
	if _, ok := p.locate(id); !ok {
		return Rect{}, false
	}
	return p.nodes[id].rect, true
}

// Filled reports whether id is a leaf holding a placement.
func (p *Packer) Filled(id NodeID) bool {
	if _, ok := p.locate(id); !ok {
		return false
	}
	return p.nodes[id].filled
}

// Walk calls fn for every leaf in left-to-right tree order.
// Walk stops early if fn returns false. fn may query the packer but must
// not modify it.
func (p *Packer) Walk(fn func(id NodeID, r Rect, filled bool) bool) {
	// Own stack: fn may call Rect or Filled, which reuse p.stack.
	stack := make([]NodeID, 1, 32)
	stack[0] = p.root

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := p.nodes[id]
		if n.left != NoNode {
			stack = append(stack, n.right, n.left)
			continue
		}
		if !fn(id, n.rect, n.filled) {
			return
		}
	}
}

// UsedArea returns the total area of filled leaves.
func (p *Packer) UsedArea() int {
	return p.usedArea
}

// Utilization returns the filled fraction of the bounding rectangle (0.0 to 1.0).
func (p *Packer) Utilization() float64 {
	total := p.Bounds().Area()
	if total <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(total)
}

// NodeCount returns the number of live nodes in the tree.
func (p *Packer) NodeCount() int {
	return len(p.nodes) - len(p.free)
}

// alloc stores a fresh childless node, reusing a released slot if any.
func (p *Packer) alloc(r Rect) NodeID {
	n := node{rect: r, left: NoNode, right: NoNode}
	if k := len(p.free); k > 0 {
		id := p.free[k-1]
		p.free = p.free[:k-1]
		p.nodes[id] = n
		return id
	}
	p.nodes = append(p.nodes, n)
	return NodeID(len(p.nodes) - 1)
}

// release frees the subtree rooted at id.
func (p *Packer) release(id NodeID) {
	stack := append(p.stack[:0], id)
	defer func() { p.stack = stack[:0] }()

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := p.nodes[cur]
		if n.left != NoNode {
			stack = append(stack, n.left, n.right)
		}
		if n.filled {
			p.usedArea -= n.rect.Area()
		}
		p.nodes[cur] = node{left: NoNode, right: NoNode}
		p.free = append(p.free, cur)
	}
}

// locate finds target by identity and returns its parent
// (NoNode for the root).
func (p *Packer) locate(target NodeID) (parent NodeID, found bool) {
	if target < 0 || int(target) >= len(p.nodes) {
		return NoNode, false
	}
	if target == p.root {
		return NoNode, true
	}

	stack := append(p.stack[:0], p.root)
	defer func() { p.stack = stack[:0] }()

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := p.nodes[id]
		if n.left == NoNode {
			continue
		}
		if n.left == target || n.right == target {
			return id, true
		}
		stack = append(stack, n.right, n.left)
	}
	return NoNode, false
}
