package document

import "sync"

// ChangeKind classifies a document change event.
type ChangeKind uint8

const (
	// NodeInserted reports a node added to the document.
	NodeInserted ChangeKind = iota
	// NodeRemoved reports a node deleted from the document.
	NodeRemoved
	// NodeChanged reports a content or metadata change within a node.
	NodeChanged
	// NodeReplaced reports a node swapped for another with a new id.
	NodeReplaced
	// NodeMoved reports a node relocated within document order.
	NodeMoved
)

// ChangeEvent describes one structural or content change.
type ChangeEvent struct {
	Kind   ChangeKind
	NodeID NodeID
}

// Listener receives change events synchronously, on the mutating
// goroutine, after each mutation completes.
type Listener func(events []ChangeEvent)

// ListenerID identifies a registered listener for removal.
type ListenerID int

// Document is an ordered sequence of nodes with unique ids. Insertion
// order is document order, top to bottom. Nodes are created and destroyed
// only through editor commands.
//
// Reads are safe from multiple goroutines; there is exactly one mutator
// at a time (the active command).
type Document struct {
	mu        sync.RWMutex
	nodes     []Node
	index     map[NodeID]int
	listeners map[ListenerID]Listener
	nextLID   ListenerID
}

// New creates a document containing the given nodes.
func New(nodes ...Node) *Document {
	d := &Document{
		index:     make(map[NodeID]int),
		listeners: make(map[ListenerID]Listener),
	}
	for _, n := range nodes {
		if _, exists := d.index[n.ID()]; exists {
			continue
		}
		d.index[n.ID()] = len(d.nodes)
		d.nodes = append(d.nodes, n)
	}
	return d
}

// Subscribe registers a change listener and returns its id.
func (d *Document) Subscribe(l Listener) ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextLID++
	d.listeners[d.nextLID] = l
	return d.nextLID
}

// Unsubscribe removes a listener. Unknown ids are ignored.
func (d *Document) Unsubscribe(id ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.listeners, id)
}

// Notify delivers events to every listener, synchronously, in
// registration-independent order. Exposed so callers that mutate node
// content directly (editor commands) can report NodeChanged events.
func (d *Document) Notify(events ...ChangeEvent) {
	if len(events) == 0 {
		return
	}
	d.mu.RLock()
	ls := make([]Listener, 0, len(d.listeners))
	for _, l := range d.listeners {
		ls = append(ls, l)
	}
	d.mu.RUnlock()

	for _, l := range ls {
		l(events)
	}
}

// NodeCount returns the number of nodes.
func (d *Document) NodeCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.nodes)
}

// Nodes returns the nodes in document order. The slice is a copy; the
// nodes are live.
func (d *Document) Nodes() []Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Node, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// NodeByID returns the node with the given id.
func (d *Document) NodeByID(id NodeID) (Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return d.nodes[i], true
}

// NodeAt returns the node at the given document-order index.
func (d *Document) NodeAt(i int) (Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.nodes) {
		return nil, false
	}
	return d.nodes[i], true
}

// NodeIndex returns the document-order index of a node id.
func (d *Document) NodeIndex(id NodeID) (int, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[id]
	return i, ok
}

// NodeBefore returns the document-order predecessor of a node, or false
// at the first node or for an unknown id.
func (d *Document) NodeBefore(id NodeID) (Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[id]
	if !ok || i == 0 {
		return nil, false
	}
	return d.nodes[i-1], true
}

// NodeAfter returns the document-order successor of a node, or false at
// the last node or for an unknown id.
func (d *Document) NodeAfter(id NodeID) (Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.index[id]
	if !ok || i == len(d.nodes)-1 {
		return nil, false
	}
	return d.nodes[i+1], true
}

// FirstNode returns the first node, or false for an empty document.
func (d *Document) FirstNode() (Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.nodes) == 0 {
		return nil, false
	}
	return d.nodes[0], true
}

// LastNode returns the last node, or false for an empty document.
func (d *Document) LastNode() (Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.nodes) == 0 {
		return nil, false
	}
	return d.nodes[len(d.nodes)-1], true
}

// NodeForPosition returns the node a position points into.
func (d *Document) NodeForPosition(p Position) (Node, bool) {
	return d.NodeByID(p.NodeID)
}

// Range is an inclusive, document-ordered pair of positions.
type Range struct {
	Start Position
	End   Position
}

// RangeBetween returns the document-ordered range between two positions.
// The argument order carries no meaning; ordering is computed by node
// index. Returns ErrDanglingReference if either node id is absent.
func (d *Document) RangeBetween(p1, p2 Position) (Range, error) {
	start, end, err := Selection{Base: p1, Extent: p2}.Normalized(d)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}

// NodesInside returns the inclusive slice of nodes between two positions
// in document order. The argument order carries no meaning.
func (d *Document) NodesInside(p1, p2 Position) ([]Node, error) {
	d.mu.RLock()
	i1, ok1 := d.index[p1.NodeID]
	i2, ok2 := d.index[p2.NodeID]
	d.mu.RUnlock()
	if !ok1 || !ok2 {
		return nil, ErrDanglingReference
	}
	if i1 > i2 {
		i1, i2 = i2, i1
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Node, 0, i2-i1+1)
	for i := i1; i <= i2 && i < len(d.nodes); i++ {
		out = append(out, d.nodes[i])
	}
	return out, nil
}

// Mutators. Exactly one mutator runs at a time (the active command); the
// lock exists so readers on other goroutines always see a consistent
// index.

// InsertNodeAt inserts a node at the given document-order index.
func (d *Document) InsertNodeAt(i int, n Node) error {
	d.mu.Lock()
	if i < 0 || i > len(d.nodes) {
		d.mu.Unlock()
		return ErrIndexOutOfRange
	}
	if _, exists := d.index[n.ID()]; exists {
		d.mu.Unlock()
		return ErrDuplicateNode
	}
	d.nodes = append(d.nodes, nil)
	copy(d.nodes[i+1:], d.nodes[i:])
	d.nodes[i] = n
	d.reindexLocked(i)
	d.mu.Unlock()

	d.Notify(ChangeEvent{Kind: NodeInserted, NodeID: n.ID()})
	return nil
}

// InsertNodeAfter inserts a node directly after an existing node.
func (d *Document) InsertNodeAfter(afterID NodeID, n Node) error {
	d.mu.RLock()
	i, ok := d.index[afterID]
	d.mu.RUnlock()
	if !ok {
		return ErrNodeNotFound
	}
	return d.InsertNodeAt(i+1, n)
}

// InsertNodeBefore inserts a node directly before an existing node.
func (d *Document) InsertNodeBefore(beforeID NodeID, n Node) error {
	d.mu.RLock()
	i, ok := d.index[beforeID]
	d.mu.RUnlock()
	if !ok {
		return ErrNodeNotFound
	}
	return d.InsertNodeAt(i, n)
}

// AppendNode inserts a node at the end of the document.
func (d *Document) AppendNode(n Node) error {
	return d.InsertNodeAt(d.NodeCount(), n)
}

// DeleteNodeAt removes the node at the given index.
func (d *Document) DeleteNodeAt(i int) error {
	d.mu.Lock()
	if i < 0 || i >= len(d.nodes) {
		d.mu.Unlock()
		return ErrIndexOutOfRange
	}
	id := d.nodes[i].ID()
	delete(d.index, id)
	d.nodes = append(d.nodes[:i], d.nodes[i+1:]...)
	d.reindexLocked(i)
	d.mu.Unlock()

	d.Notify(ChangeEvent{Kind: NodeRemoved, NodeID: id})
	return nil
}

// DeleteNode removes the node with the given id.
func (d *Document) DeleteNode(id NodeID) error {
	d.mu.RLock()
	i, ok := d.index[id]
	d.mu.RUnlock()
	if !ok {
		return ErrNodeNotFound
	}
	return d.DeleteNodeAt(i)
}

// ReplaceNode swaps an existing node for a new one at the same index.
func (d *Document) ReplaceNode(oldID NodeID, n Node) error {
	d.mu.Lock()
	i, ok := d.index[oldID]
	if !ok {
		d.mu.Unlock()
		return ErrNodeNotFound
	}
	if n.ID() != oldID {
		if _, exists := d.index[n.ID()]; exists {
			d.mu.Unlock()
			return ErrDuplicateNode
		}
		delete(d.index, oldID)
		d.index[n.ID()] = i
	}
	d.nodes[i] = n
	d.mu.Unlock()

	d.Notify(ChangeEvent{Kind: NodeReplaced, NodeID: n.ID()})
	return nil
}

// MoveNode relocates a node to a new document-order index.
func (d *Document) MoveNode(id NodeID, to int) error {
	d.mu.Lock()
	from, ok := d.index[id]
	if !ok {
		d.mu.Unlock()
		return ErrNodeNotFound
	}
	if to < 0 || to >= len(d.nodes) {
		d.mu.Unlock()
		return ErrIndexOutOfRange
	}
	n := d.nodes[from]
	d.nodes = append(d.nodes[:from], d.nodes[from+1:]...)
	d.nodes = append(d.nodes[:to], append([]Node{n}, d.nodes[to:]...)...)
	lo := from
	if to < lo {
		lo = to
	}
	d.reindexLocked(lo)
	d.mu.Unlock()

	d.Notify(ChangeEvent{Kind: NodeMoved, NodeID: id})
	return nil
}

// reindexLocked rebuilds index entries from position i onward.
func (d *Document) reindexLocked(i int) {
	for ; i < len(d.nodes); i++ {
		d.index[d.nodes[i].ID()] = i
	}
}

// EquivalentContent reports whether two documents have the same node
// sequence by content, ignoring node identity.
func (d *Document) EquivalentContent(other *Document) bool {
	a := d.Nodes()
	b := other.Nodes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].EquivalentContent(b[i]) {
			return false
		}
	}
	return true
}
