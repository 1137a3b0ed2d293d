// Package configure holds the runtime configuration tree of a process.
//
// A Store keeps one nested tree addressed by dot-separated paths (see package
// hash). Values are written with Write or WriteMap, read with Read, and whole
// resources are merged in with Load:
//
//	store := configure.New(configure.WithReader("default", reader))
//
//	_ = store.Write("One.key1", "value of One.key1")
//	value, found := store.Read("One.key1")
//
//	result, err := store.Load("database")
//	if err == nil && result.Status == configure.LoadNotFound {
//	    // no such resource, store unchanged
//	}
//
// Writing the top-level "debug" key toggles the configured DisplayToggle. The
// store is safe for concurrent use; reads return deep copies so callers never
// share structure with the live tree.
package configure
