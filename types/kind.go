// Package types holds the data model shared by every prober and
// walker: the container kind enum, disk geometry tables, Commodore
// file-type codes, the per-entry and per-container result structs,
// and the byte-exact on-disk layouts each format decodes.
package types

// ContainerKind identifies which of the supported archive/disk-image
// container formats a byte stream belongs to. UNKNOWN is a terminal
// sentinel: walkers are never invoked with it.
type ContainerKind int

const (
	ArcRaw ContainerKind = iota
	ArcC64V10
	ArcC64V13
	ArcC64V15
	ArcC128V15
	LHASFX
	LHARaw
	LynxOld
	LynxNew
	T64
	D64
	C1581
	X64
	P00
	S00
	U00
	R00
	D00
	X00
	N64
	LBR
	TAP
	Unknown
)

var kindNames = [...]string{
	ArcRaw:     "ARC_RAW",
	ArcC64V10:  "C64_ARC_V10",
	ArcC64V13:  "C64_ARC_V13",
	ArcC64V15:  "C64_ARC_V15",
	ArcC128V15: "C128_ARC_V15",
	LHASFX:     "LHA_SFX",
	LHARaw:     "LHA_RAW",
	LynxOld:    "LYNX_OLD",
	LynxNew:    "LYNX_NEW",
	T64:        "T64",
	D64:        "D64",
	C1581:      "C1581",
	X64:        "X64",
	P00:        "P00",
	S00:        "S00",
	U00:        "U00",
	R00:        "R00",
	D00:        "D00",
	X00:        "X00",
	N64:        "N64",
	LBR:        "LBR",
	TAP:        "TAP",
	Unknown:    "UNKNOWN",
}

func (k ContainerKind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) || kindNames[k] == "" {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// formatLabels are the terse 4-character format tags fvcbm prints in
// its totals line (ArchiveFormats[] in cbmarcs.c), in ContainerKind
// order.
var formatLabels = [...]string{
	ArcRaw:     " ARC",
	ArcC64V10:  " C64",
	ArcC64V13:  " C64",
	ArcC64V15:  " C64",
	ArcC128V15: "C128",
	LHASFX:     " LHA",
	LHARaw:     " LHA",
	LynxOld:    "Lynx",
	LynxNew:    "Lynx",
	T64:        " T64",
	D64:        " D64",
	C1581:      "1581",
	X64:        " X64",
	P00:        " P00",
	S00:        " S00",
	U00:        " U00",
	R00:        " R00",
	D00:        " D00",
	X00:        "P00?",
	N64:        " N64",
	LBR:        " LBR",
	TAP:        " TAP",
}

// FormatLabel returns the short presentation tag for the kind, for
// callers building a totals/summary line; it returns "" for Unknown.
func (k ContainerKind) FormatLabel() string {
	if int(k) < 0 || int(k) >= len(formatLabels) {
		return ""
	}
	return formatLabels[k]
}
