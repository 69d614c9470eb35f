// Provide handler types for control characters and sequences
//
// Callers of stream.Stream only need to implement the handlers they want.
// Each group lives in its own interface and the stream uses type assertion
// to detect whether a group is implemented; unimplemented commands are
// logged and skipped.
//
// E.g:
//
// - EditorHandler for cursor movement and editing
//
// - MusicHandler for finished ANSI music sequences
package handler
