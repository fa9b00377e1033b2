// Package cbmarc identifies and walks the directory of a Commodore
// 8-bit archive or disk-image container: ARC and its four
// self-extracting variants, Lynx, LHA, T64, the D64/X64 disk-image
// family, P00/S00/U00/R00/D00/X00, N64, LBR and TAP.
//
// The package never extracts or decompresses payload data; it only
// classifies a stream (Determine) and reports the entries a
// container's own directory structure describes (Dir).
package cbmarc

import (
	"io"

	"github.com/dfandrich/cbmarc/types"
)

// Status is the outcome of a Dir call, mirroring fvcbm's process exit
// codes for a single container.
type Status int

const (
	StatusOK          Status = 0
	StatusError       Status = 2
	StatusUnsupported Status = 3
)

// Config carries the options a caller can set for a Dir call. Wide
// replaces a global mutable WideFormat flag: when true, the D64/X64
// walker follows each file's track/sector chain to compute an exact
// logical length; when false it skips that (potentially expensive)
// walk and reports length 0, except for 1581 partition (CBM) entries,
// which report 256 bytes per block either way.
type Config struct {
	Wide bool
}

// Callbacks receives the events a Dir call produces: exactly one
// OnContainerStart, followed by one OnEntry per directory entry.
type Callbacks interface {
	OnContainerStart(kind types.ContainerKind, label string, hasLabel bool)
	OnEntry(entry types.DirEntry)
}

// Determine classifies r by walking the ordered prober list (§4.4):
// the first prober that matches wins. nameHint, if non-empty, is the
// caller's file name or path, used only to disambiguate formats whose
// on-disk bytes are themselves ambiguous (D64 extension family, P00
// lettered variants). Probers read with ReadAt at absolute offsets, so
// there is no stream position to rewind between them. Determine never
// returns an error, only types.Unknown.
func Determine(r io.ReaderAt, nameHint string) types.ContainerKind {
	for _, p := range proberRegistry {
		if p.probe(r, nameHint) {
			return p.kind
		}
	}
	return types.Unknown
}

// Dir walks the container's directory, calling cb.OnContainerStart
// once and cb.OnEntry once per entry, and returns the accumulated
// totals plus a status code. Dir must never be called with
// types.Unknown; doing so is a caller bug and returns StatusError.
func Dir(r io.ReaderAt, kind types.ContainerKind, cfg Config, cb Callbacks) (types.Totals, Status) {
	w, ok := walkerRegistry[kind]
	if !ok {
		return types.Totals{}, StatusError
	}
	return w(r, kind, cfg, cb)
}

// walkerFunc is the Go analogue of a DirFunctions[] array of C
// function pointers, indexed here by ContainerKind instead of array
// position.
type walkerFunc func(r io.ReaderAt, kind types.ContainerKind, cfg Config, cb Callbacks) (types.Totals, Status)
