// Package fmtlib implements a freestanding, buffer-bounded string
// formatter: a brace-delimited specifier grammar over a caller-owned
// output region, with no I/O in the core Format path.
//
// Format drives the whole pipeline: it parses each `{...}` specifier
// (parser.go), resolves its type tag against a Registry (registry.go),
// loads the arguments it references from an ArgCursor in forward order
// (driver.go), and dispatches to a Formatter that writes digits, strings
// or a custom rendering into a Buffer (numeric.go, align.go).
//
// Sprintf and Appendf are the allocating convenience wrappers most callers
// reach for; Format itself never grows its output region. Format does
// allocate on the Go heap internally: it copies the template, keeps its
// argument table and kind map in heap-allocated slices and maps, and builds
// each formatted number in a temporary slice before copying it into the
// Buffer.
package fmtlib
