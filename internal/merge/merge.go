// Package merge implements the recursive document merge used by the
// configuration store: nested objects combine key-by-key, arrays and
// primitives are replaced wholesale.
package merge

// Maps merges src into dst recursively and returns dst. dst may be nil.
// Only map[string]any values merge deeper; any other value in src (slices
// included) overwrites whatever dst held under that key.
func Maps(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		existing, ok := dst[k].(map[string]any)
		if !ok {
			existing = nil
		}
		dst[k] = Maps(existing, sub)
	}
	return dst
}

// Shallow copies src's top-level keys into dst without recursing, the
// semantics the store applies to the api section.
func Shallow(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
