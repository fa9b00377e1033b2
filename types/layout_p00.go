package types

// X00HeaderSize covers the shared P00/S00/U00/R00/D00 preamble: an
// 8-byte magic, a 17-byte (16 chars + NUL) name field, and a 1-byte
// REL record size.
const (
	X00HeaderSize = 26

	X00OffMagic      = 0  // 8 bytes
	X00OffFileName   = 8  // 17 bytes, NUL terminated
	X00OffRecordSize = 25 // 1 byte, nonzero only for REL (.r00) files
)

// X00Magic is the fixed 8-byte signature every *00 container starts
// with, regardless of which one-letter variant it actually is.
var X00Magic = []byte{'C', '6', '4', 'F', 'i', 'l', 'e', 0}
