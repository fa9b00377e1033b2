package types

// ARC entry headers have an 11-byte fixed part, read with explicit
// offsets rather than struct punning, followed by a FileNameLen-byte
// name with no terminator.
const (
	ArcFixedHeaderSize = 11

	ArcOffMagic       = 0  // 1 byte, always ArcEntryMagic
	ArcOffEntryType   = 1  // 1 byte, compression method 0-7
	ArcOffChecksum    = 2  // 2 bytes LE
	ArcOffLengthLow   = 4  // 2 bytes LE
	ArcOffLengthHigh  = 6  // 1 byte, high byte of a 24-bit length
	ArcOffBlockLength = 7  // 1 byte, 254-byte blocks of compressed data
	ArcOffFiller      = 8  // 1 byte, unused
	ArcOffFileType    = 9  // 1 byte, ASCII letter P/S/U/R/D
	ArcOffFileNameLen = 10 // 1 byte

	// ArcEntryMagic is the fixed lead-in byte of every ARC entry
	// header, and (together with a plausible EntryType) is also what
	// a bare, non-self-extracting ARC archive is recognized by.
	ArcEntryMagic  = 2
	ArcMaxEntryType = 7
)

// ARC compression-method labels, indexed by EntryType; entries 5-7
// are reserved for future use and print as a bare "?5".."?7".
var arcMethodNames = [8]string{
	"Stored", "Packed", "Squeezed", "Crunched", "Squashed", "?5", "?6", "?7",
}

// ArcMethodName returns the ARC compression method label shown to the
// user for a raw entry-type byte.
func ArcMethodName(entryType byte) string {
	if int(entryType) >= len(arcMethodNames) {
		return "?"
	}
	return arcMethodNames[entryType]
}

// MagicHeaderC64 and MagicHeaderC128 are the BASIC-stub "SYS" line
// every C64/C128 self-dearcer begins with (token 0x9E "(", the sys
// target line number, ")" and three NUL pad bytes), shared by all
// four SFX variants below, distinguished by a second magic further
// into the stub.
var (
	MagicHeaderC64  = []byte{0x9e, '(', '2', '0', '6', '3', ')', 0x00, 0x00, 0x00}
	MagicHeaderC128 = []byte{0x9e, '(', '7', '1', '8', '3', ')', 0x00, 0x00, 0x00}
)

// Self-extractor fixed-layout offsets, shared by all four variants:
// a 2-byte BASIC start address, 2 filler bytes, a 2-byte LE version
// word, then the 10-byte MagicHeaderC64/128 stub.
const (
	SFXOffStartAddress = 0
	SFXOffFiller1      = 2
	SFXOffVersion      = 4
	SFXOffMagic1       = 6 // 10 bytes
)

// Second-magic location and value for each SFX variant, used only to
// confirm the variant once Magic1 has matched; the prelude size
// itself (ArcPreludeC64V10 etc., in layout shared with entry.go's
// Totals.DearcerBlocks math) is a fixed constant per variant, not
// derived from these fields.
const (
	C64V10OffFiller2 = 16 // 1 byte
	C64V10OffFirstOffL = 17
	C64V10OffMagic2    = 18 // 3 bytes
	C64V10OffFirstOffH = 21

	C64V13OffFiller2   = 16 // 11 bytes
	C64V13OffFirstOffL = 27
	C64V13OffMagic2    = 28 // 3 bytes
	C64V13OffFirstOffH = 31

	C64V15OffFiller2    = 16 // 7 bytes
	C64V15OffMagic2     = 23 // 4 bytes
	C64V15OffStartPtr   = 27

	C128V15OffMagic2    = 16 // 1 byte
	C128V15OffStartPtr  = 17
)

var (
	MagicC64V10  = []byte{0x85, 0xfd, 0xa9}
	MagicC64V13  = []byte{0x85, 0x2f, 0xa9}
	MagicC64V15  = []byte{0x8d, 0x21, 0xd0, 0x4c}
	MagicC128V15 = byte(0x4c)
)

// Self-extractor prelude sizes: bytes of BASIC stub and machine code
// preceding the first real ARC entry header.
const (
	ArcPreludeRaw     = 0
	ArcPreludeC64V10  = 1016
	ArcPreludeC64V13  = 1778
	ArcPreludeC64V15  = 2286
	ArcPreludeC128V15 = 2285
)
