// Package binpack allocates non-overlapping rectangles inside one fixed
// bounding rectangle using guillotine splits of a binary tree.
//
// Every leaf of the tree governs a free or filled region. Inserting a
// rectangle walks the tree depth-first, left child before right child, and
// splits the first unfilled leaf that is large enough. The split runs along
// the axis with the larger slack: when the leaf is wider than needed by more
// than it is taller than needed, the leaf is cut vertically, otherwise
// horizontally. The left child always receives the requested extent on the
// cut axis, so the insert continues into it and succeeds.
//
// # Usage
//
//	p := binpack.New(binpack.Rect{W: 512, H: 512})
//	id, r, ok := p.Insert(12, 18)
//	if !ok {
//	    // no room left
//	}
//	// r.X, r.Y is where the 12x18 item goes.
//	p.Delete(id) // release it again
//
// Nodes are stored in an arena and addressed by [NodeID], so the tree never
// allocates per node once warmed up and the walk is iterative.
//
// A Packer is not safe for concurrent use.
package binpack
