// Package logging builds the structured slog logger used by the commands.
//
// Two formats are supported: "console" (key=value text) and "json". Records
// go to stderr unless another writer is given. Debug level also records the
// source location.
package logging
