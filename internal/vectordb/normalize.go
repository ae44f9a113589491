package vectordb

import (
	"fmt"
	"strings"
)

// FlattenMetadata flattens arbitrary metadata so the index accepts it:
// strings pass through, string slices are joined with ", ", nil values
// are dropped (absent stays absent), and anything else is stringified.
// Pure; the input map is not modified.
func FlattenMetadata(meta map[string]any) map[string]string {
	flat := make(map[string]string, len(meta))
	for k, v := range meta {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			flat[k] = val
		case []string:
			flat[k] = strings.Join(val, ", ")
		case []any:
			parts := make([]string, len(val))
			for i, item := range val {
				parts[i] = fmt.Sprint(item)
			}
			flat[k] = strings.Join(parts, ", ")
		default:
			flat[k] = fmt.Sprint(val)
		}
	}
	return flat
}
