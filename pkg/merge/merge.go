// Package merge combines nested configuration maps.
//
// Deep treats map[string]any as the only mergeable shape. Slices, scalars,
// structs and funcs in an override replace the base value outright; slices
// are never concatenated or merged element-wise.
package merge

// Deep returns a fresh map holding base with overrides applied on top.
// Neither argument is mutated.
func Deep(base, overrides map[string]any) map[string]any {
	out := Clone(base)
	if out == nil {
		out = make(map[string]any, len(overrides))
	}

	for key, value := range overrides {
		if sub, ok := value.(map[string]any); ok {
			existing, _ := out[key].(map[string]any)
			out[key] = Deep(existing, sub)
			continue
		}
		out[key] = cloneValue(value)
	}

	return out
}

// Clone deep-copies nested maps and []any slices. Other values are copied by
// assignment. A nil map clones to nil.
func Clone(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Clone(t)
	case []any:
		if t == nil {
			return t
		}
		cp := make([]any, len(t))
		for i, item := range t {
			cp[i] = cloneValue(item)
		}
		return cp
	case []string:
		if t == nil {
			return t
		}
		return append([]string(nil), t...)
	default:
		return v
	}
}
