package report

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
)

// Flatten converts analyzer results into dotted keys with scalar
// string values. Lists are left out; nested objects are flattened.
func Flatten(results map[string]any) (map[string]string, error) {
	generic, err := normalize(results)
	if err != nil {
		return nil, err
	}
	flat := make(map[string]string)
	flattenInto(flat, "", generic)
	return flat, nil
}

// normalize turns arbitrary result values into the JSON data model.
func normalize(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(dst map[string]string, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flattenInto(dst, key, val)
		case []any:
			// lists do not fit a single cell
		case string:
			dst[key] = val
		case float64:
			dst[key] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			dst[key] = strconv.FormatBool(val)
		case nil:
			dst[key] = ""
		}
	}
}

// intCounts reads a label→count object from analyzer results.
func intCounts(v any) map[string]int {
	m, err := normalize(map[string]any{"v": v})
	if err != nil {
		return nil
	}
	inner, ok := m["v"].(map[string]any)
	if !ok {
		return nil
	}
	counts := make(map[string]int, len(inner))
	for k, raw := range inner {
		if f, ok := raw.(float64); ok && f > 0 {
			counts[k] = int(f)
		}
	}
	return counts
}

// sortedKeys returns the keys of m in order.
func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
