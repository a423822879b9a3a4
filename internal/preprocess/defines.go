package preprocess

import (
	"fmt"
	"sort"
)

// Defines maps identifiers to the boolean, string or numeric values visible to
// conditions and #expand. A run never mutates it.
type Defines map[string]any

// Lookup returns the value for name.
func (d Defines) Lookup(name string) (any, bool) {
	v, ok := d[name]
	return v, ok
}

// Text returns the value for name converted to text, or "" if name is undefined.
func (d Defines) Text(name string) string {
	v, ok := d[name]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Names returns the defined identifiers in sorted order.
func (d Defines) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new mapping holding defaults overridden by overrides.
// The merge is shallow: nested values are shared, not copied.
func Merge(defaults, overrides Defines) Defines {
	result := make(Defines, len(defaults)+len(overrides))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range overrides {
		result[k] = v
	}
	return result
}
