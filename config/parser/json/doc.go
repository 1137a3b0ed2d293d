// Package json provides a JSON parser implementation for the config package,
// built on github.com/tidwall/gjson.
//
// Usage:
//
//	parser := json.NewParser(json.WithRoot("services"))
//	tree, err := parser.Parse(data)
package json
