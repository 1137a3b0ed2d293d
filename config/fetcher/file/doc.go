// Package file provides a file-based DataFetcher implementation for the config package.
//
// A Fetcher serves the files of one directory. The resource key is the file name
// without its extension, so with root "config" and extension ".yaml" the key
// "database" reads "config/database.yaml". Keys containing dots are kept as is:
// "Users.user" reads "config/Users.user.yaml".
//
// Files are read on every Fetch, so a later Load sees the current contents.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/etc/app", ".yaml")()
//	if err != nil {
//	    // Handle error: directory not found, permission denied, not a directory, etc.
//	}
//	data, err := fetcher.Fetch("database")
//
// Error Handling:
//   - Construction returns error if the root cannot be read or is not a directory
//   - A missing file wraps configure.ErrResourceNotFound, which Load reports as LoadNotFound
//   - Keys that are empty, absolute, or climb out of the root return ErrInvalidKey
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
