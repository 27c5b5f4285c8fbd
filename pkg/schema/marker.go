package schema

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ParseMarker returns the version stamped into a model schema body.
// It returns 0 when the body is not a JSON object, the marker is absent,
// or the marker is not an integer of at least 1.
func ParseMarker(body []byte) int {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return 0
	}
	return MarkerVersion(doc[MarkerField])
}

// MarkerVersion converts a decoded marker value to a version.
func MarkerVersion(v any) int {
	var s string
	switch m := v.(type) {
	case string:
		s = strings.TrimSpace(m)
	case json.Number:
		s = m.String()
	case float64:
		s = strconv.FormatFloat(m, 'f', -1, 64)
	default:
		return 0
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
