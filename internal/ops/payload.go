package ops

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/docstorm/internal/attrtext"
	"github.com/dshills/docstorm/internal/document"
)

// Undo payloads are small JSON documents built with sjson and read back
// with gjson. JSON keeps them inspectable and forward-compatible with
// persisted session history.

func newPayload() []byte { return []byte(`{}`) }

func pset(p []byte, path string, value any) []byte {
	out, err := sjson.SetBytes(p, path, value)
	if err != nil {
		return p
	}
	return out
}

func pstr(p []byte, path string) string {
	return gjson.GetBytes(p, path).String()
}

func pint(p []byte, path string) int {
	return int(gjson.GetBytes(p, path).Int())
}

func pbool(p []byte, path string) bool {
	return gjson.GetBytes(p, path).Bool()
}

func pnode(p []byte, path string) document.NodeID {
	return document.NodeID(pstr(p, path))
}

func pnodes(p []byte, path string) []document.NodeID {
	results := gjson.GetBytes(p, path).Array()
	out := make([]document.NodeID, 0, len(results))
	for _, r := range results {
		out = append(out, document.NodeID(r.String()))
	}
	return out
}

func setNodeIDs(p []byte, path string, ids []document.NodeID) []byte {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = string(id)
	}
	return pset(p, path, strs)
}

// setAttributions encodes attributions under the "attributions" key.
// Named attributions serialize as their id; links carry the URL.
func setAttributions(p []byte, attrs []attrtext.Attribution) []byte {
	for i, a := range attrs {
		p = pset(p, fmt.Sprintf("attributions.%d.id", i), a.ID())
		if link, ok := a.(attrtext.LinkAttribution); ok {
			p = pset(p, fmt.Sprintf("attributions.%d.url", i), link.URL)
		}
	}
	return p
}

func getAttributions(p []byte) []attrtext.Attribution {
	results := gjson.GetBytes(p, "attributions").Array()
	out := make([]attrtext.Attribution, 0, len(results))
	for _, r := range results {
		if url := r.Get("url").String(); url != "" {
			out = append(out, attrtext.LinkAttribution{URL: url})
			continue
		}
		out = append(out, attrtext.NamedAttribution(r.Get("id").String()))
	}
	return out
}
