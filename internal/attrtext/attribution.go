package attrtext

// Attribution is a named style or semantic tag applicable to a text range.
type Attribution interface {
	// ID returns the attribution's identifier, e.g. "bold" or "link".
	ID() string

	// CanMergeWith reports whether two spans of this attribution and
	// other may be combined into one contiguous span.
	CanMergeWith(other Attribution) bool
}

// NamedAttribution is a value-less attribution identified purely by name.
// Two NamedAttributions merge iff their names are equal.
type NamedAttribution string

// Standard inline style attributions.
const (
	Bold          NamedAttribution = "bold"
	Italics       NamedAttribution = "italics"
	Strikethrough NamedAttribution = "strikethrough"
	Code          NamedAttribution = "code"
)

// ID returns the attribution name.
func (a NamedAttribution) ID() string { return string(a) }

// CanMergeWith reports whether other is the same named attribution.
func (a NamedAttribution) CanMergeWith(other Attribution) bool {
	o, ok := other.(NamedAttribution)
	return ok && o == a
}

// LinkAttribution attributes a range with a hyperlink target.
// Links to different URLs never merge.
type LinkAttribution struct {
	URL string
}

// ID returns "link" for all link attributions.
func (a LinkAttribution) ID() string { return "link" }

// CanMergeWith reports whether other links to the same URL.
func (a LinkAttribution) CanMergeWith(other Attribution) bool {
	o, ok := other.(LinkAttribution)
	return ok && o.URL == a.URL
}
