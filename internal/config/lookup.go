package config

import "strings"

// Lookup resolves a dotted configuration key such as "services.python.base_url".
// The second result reports whether the key is present; a present key may
// still hold a value of any type.
type Lookup interface {
	Lookup(key string) (any, bool)
}

// Lookup walks the raw YAML tree along the dotted key.
func (c *Config) Lookup(key string) (any, bool) {
	if c == nil || c.raw == nil {
		return nil, false
	}

	var node any = c.raw
	for _, part := range strings.Split(key, ".") {
		switch m := node.(type) {
		case map[string]any:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			node = v
		case map[any]any:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			node = v
		default:
			return nil, false
		}
	}
	return node, true
}

// Map is a flat Lookup keyed by full dotted keys.
type Map map[string]any

// Lookup returns the value stored under key.
func (m Map) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// String returns the value under key when it is a string, otherwise def.
// Absent keys and non-string values both yield def.
func String(l Lookup, key, def string) string {
	if l == nil {
		return def
	}
	v, ok := l.Lookup(key)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}
