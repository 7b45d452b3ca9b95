// Package file provides the TOML-backed configuration store.
//
// Keys are addressed in dot notation ("detection.threshold") and written
// back as nested TOML tables, so the file stays hand-editable:
//
//	[detection]
//	threshold = 0.86
//	whitelist = ["swear"]
//
// The store can watch its file and reload on change; the server uses this
// to pick up threshold and whitelist edits without a restart.
package file
