package document

// Metadata keys the engine itself understands. Every other key is opaque
// pass-through: readers must preserve keys they do not recognize.
const (
	MetadataBlockType = "blockType"
	MetadataTextAlign = "textAlign"
)

// Node is one block-level content unit in a document. Implementations
// form a closed variant set: TextNode, ParagraphNode, ListItemNode,
// ImageNode, HorizontalRuleNode.
type Node interface {
	// ID returns the node's stable id.
	ID() NodeID

	// BeginningPosition returns the position of the first content unit.
	BeginningPosition() NodePosition

	// EndPosition returns the position just past the last content unit.
	// For text-family nodes the offset always equals the current text
	// length.
	EndPosition() NodePosition

	// UpstreamPosition returns whichever of a and b comes first in the
	// node's content order. ErrInvalidPosition if either variant does not
	// match the node.
	UpstreamPosition(a, b NodePosition) (NodePosition, error)

	// DownstreamPosition returns whichever of a and b comes last in the
	// node's content order.
	DownstreamPosition(a, b NodePosition) (NodePosition, error)

	// ComputeSelection builds the node-local selection between base and
	// extent, preserving the given order.
	ComputeSelection(base, extent NodePosition) (NodeSelection, error)

	// CopyContent returns the plain-text content covered by sel, or
	// false when the selection covers nothing copyable.
	CopyContent(sel NodeSelection) (string, bool)

	// EquivalentContent reports whether other carries the same content,
	// ignoring node identity.
	EquivalentContent(other Node) bool

	// Metadata returns a copy of the node's metadata map.
	Metadata() map[string]any

	// MetadataValue returns one metadata value.
	MetadataValue(key string) (any, bool)

	// SetMetadataValue sets one metadata value. Unknown keys are stored
	// verbatim.
	SetMetadataValue(key string, value any)

	// Copy returns a deep copy of the node, preserving its id. Used for
	// undo snapshots.
	Copy() Node
}

// metadataStore is the shared metadata implementation embedded by every
// concrete node.
type metadataStore struct {
	metadata map[string]any
}

func (m *metadataStore) Metadata() map[string]any {
	out := make(map[string]any, len(m.metadata))
	for k, v := range m.metadata {
		out[k] = v
	}
	return out
}

func (m *metadataStore) MetadataValue(key string) (any, bool) {
	v, ok := m.metadata[key]
	return v, ok
}

func (m *metadataStore) SetMetadataValue(key string, value any) {
	if m.metadata == nil {
		m.metadata = make(map[string]any)
	}
	m.metadata[key] = value
}

func (m *metadataStore) copyMetadata() map[string]any {
	if m.metadata == nil {
		return nil
	}
	out := make(map[string]any, len(m.metadata))
	for k, v := range m.metadata {
		out[k] = v
	}
	return out
}

func (m *metadataStore) replaceMetadata(md map[string]any) {
	m.metadata = md
}
