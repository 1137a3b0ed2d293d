// Package hash resolves dot-separated paths inside nested configuration trees.
//
// A tree is a map[string]any whose values are one of three variants:
//   - mapping: map[string]any, another level of the tree
//   - sequence: []any
//   - scalar: anything else (string, bool, numbers, ...)
//
// Paths join segments with a dot:
//
//	"One"          -> tree["One"]
//	"One.key1"     -> tree["One"]["key1"]
//	""             -> the whole tree
//
// The functions never fail on structurally mismatched input. Reading through a
// scalar reports the path as absent, and inserting through a scalar replaces it
// with a new mapping level.
package hash
