// Package console emits the fixed-tag user-facing lines shared by the
// pipeline and the artifact persister. Every line a run prints to stdout
// goes through here so the tag stays uniform and capture in tests is trivial.
package console

import (
	"fmt"
	"io"
)

const tag = "mactune:"

// DryRunPrefix marks lines describing operations that were logged instead of
// invoked.
const DryRunPrefix = "DRY-RUN:"

// Linef writes one tagged line to w.
func Linef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, tag+" "+format+"\n", args...)
}

// DryRunf writes one tagged line carrying the dry-run marker.
func DryRunf(w io.Writer, format string, args ...any) {
	Linef(w, DryRunPrefix+" "+format, args...)
}
