package types

// T64 tape-image headers are 64 bytes; tape directory entries are 32
// bytes each, immediately following.
const (
	T64HeaderSize = 64
	T64EntrySize  = 32

	T64OffMagic     = 0  // 32 bytes, see magic variants below
	T64OffVerMinor  = 32 // 1 byte
	T64OffVerMajor  = 33 // 1 byte
	T64OffMaxEntry  = 34 // 2 bytes LE, directory capacity
	T64OffUsedEntry = 36 // 2 bytes LE, entries actually in use
	T64OffUnused    = 38 // 2 bytes LE
	T64OffTapeName  = 40 // 24 bytes, space padded

	T64EntryOffType      = 0  // 1 byte, 1 normal / other special values
	T64EntryOffFileType  = 1  // 1 byte, Commodore file type byte
	T64EntryOffStartAddr = 2  // 2 bytes LE
	T64EntryOffEndAddr   = 4  // 2 bytes LE
	T64EntryOffUnused    = 6  // 2 bytes LE
	T64EntryOffOffset    = 8  // 4 bytes LE, file offset of entry data
	T64EntryOffUnused2   = 12 // 4 bytes LE
	T64EntryOffFileName  = 16 // 16 bytes, space padded
)

// T64MagicLong and T64MagicShort are the two 32-byte-padded magic
// prefixes fvcbm recognizes at the top of a tape image, the second an
// older format emitted by the original C64S tape-image tool.
var (
	T64MagicLong  = []byte("C64 tape image file")
	T64MagicShort = []byte("C64S tape file")
)
