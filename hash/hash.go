package hash

import (
	"strings"
)

// Separator joins path segments.
const Separator = "."

// Split splits a path into its segments. The empty path has no segments.
func Split(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, Separator)
}

// Get returns the value addressed by path. The empty path returns the tree itself.
// The second result is false when any segment is missing or descends through a
// non-mapping value.
func Get(tree map[string]any, path string) (any, bool) {
	if tree == nil {
		return nil, false
	}

	if path == "" {
		return tree, true
	}

	var current any = tree

	for _, segment := range Split(path) {
		level, isMapping := current.(map[string]any)
		if !isMapping {
			return nil, false
		}

		value, exists := level[segment]
		if !exists {
			return nil, false
		}

		current = value
	}

	return current, true
}

// Check reports whether path resolves to a value.
func Check(tree map[string]any, path string) bool {
	_, found := Get(tree, path)

	return found
}

// Insert sets value at path, creating intermediate mapping levels as needed, and
// returns the root. A nil root is allocated. Siblings of every segment are kept.
// The empty path leaves the tree unchanged.
func Insert(tree map[string]any, path string, value any) map[string]any {
	if tree == nil {
		tree = make(map[string]any)
	}

	segments := Split(path)
	if len(segments) == 0 {
		return tree
	}

	level := tree

	for _, segment := range segments[:len(segments)-1] {
		switch next := level[segment].(type) {
		case map[string]any:
			level = next
		default:
			// Missing keys, scalars and sequences are replaced by a new level.
			created := make(map[string]any)
			level[segment] = created
			level = created
		}
	}

	level[segments[len(segments)-1]] = value

	return tree
}

// Remove deletes the value at path and reports whether it existed.
// Intermediate levels are left in place, even when they become empty.
func Remove(tree map[string]any, path string) bool {
	segments := Split(path)
	if tree == nil || len(segments) == 0 {
		return false
	}

	level := tree

	for _, segment := range segments[:len(segments)-1] {
		next, isMapping := level[segment].(map[string]any)
		if !isMapping {
			return false
		}

		level = next
	}

	last := segments[len(segments)-1]

	if _, exists := level[last]; !exists {
		return false
	}

	delete(level, last)

	return true
}

// Merge deep-merges incoming over base into a new tree. Mappings present on both
// sides are merged key by key; any other incoming value replaces the base value.
// Keys only present in base are kept. Neither argument is modified.
func Merge(base, incoming map[string]any) map[string]any {
	merged := cloneMap(base)
	if merged == nil {
		merged = make(map[string]any, len(incoming))
	}

	for key, incomingValue := range incoming {
		incomingLevel, incomingIsMapping := incomingValue.(map[string]any)
		baseLevel, baseIsMapping := merged[key].(map[string]any)

		if incomingIsMapping && baseIsMapping {
			merged[key] = Merge(baseLevel, incomingLevel)

			continue
		}

		merged[key] = Clone(incomingValue)
	}

	return merged
}

// Clone returns a deep copy of mappings and sequences. Scalars are returned as is.
func Clone(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		return cloneSlice(v)
	default:
		return value
	}
}

// CloneTree is Clone for a whole tree.
func CloneTree(tree map[string]any) map[string]any {
	return cloneMap(tree)
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = Clone(value)
	}

	return dst
}

func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, value := range src {
		dst[i] = Clone(value)
	}

	return dst
}
