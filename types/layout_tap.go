package types

// TAPMagic is the 12-byte signature at the start of a TAP cassette
// image.
var TAPMagic = []byte("C64-TAPE-RAW")

const (
	TAPHeaderSize = 20

	TAPOffMagic    = 0  // 12 bytes
	TAPOffVersion  = 12 // 1 byte, 0 or 1
	TAPOffPlatform = 13 // 1 byte
	TAPOffVideo    = 14 // 1 byte
	TAPOffReserved = 15 // 1 byte
	TAPOffDataSize = 16 // 4 bytes LE
)

// TAPHeaderBlockType identifies the kind of a decoded tape header
// record.
type TAPHeaderBlockType byte

const (
	TAPRelocPRG   TAPHeaderBlockType = 1
	TAPSeqData    TAPHeaderBlockType = 2
	TAPNonrelocPRG TAPHeaderBlockType = 3
	TAPSeqHead    TAPHeaderBlockType = 4
	TAPEndOfTape  TAPHeaderBlockType = 5
)

// TAPHeaderRecordSize is the fixed size of a decoded (not raw pulse)
// tape header record: a 9-byte descending countdown, a 1-byte type,
// 2-byte start, 2-byte end, 16-byte name, then padding, ending in a
// checksum byte.
const TAPHeaderRecordSize = 202

const (
	TAPRecOffCountdown = 0 // 9 bytes
	TAPRecOffType      = 9
	TAPRecOffStart     = 10
	TAPRecOffEnd       = 12
	TAPRecOffName      = 14 // 16 bytes
	TAPRecOffChecksum  = TAPHeaderRecordSize - 1
)

// TAPCountdown1 and TAPCountdown2 are the descending marker sequences
// that open a header record's first and second copy respectively.
var (
	TAPCountdown1 = []byte{0x89, 0x88, 0x87, 0x86, 0x85, 0x84, 0x83, 0x82, 0x81}
	TAPCountdown2 = []byte{0x09, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
)

// TAPSyncMinCount is the run of consecutive SHORT pulses the
// sync-search state must exceed before transitioning to byte search.
const TAPSyncMinCount = 30

// Pulse-length classification bands, in data-byte units (a raw pulse
// byte of 0 means "look at the next 3 bytes" under version 1; see
// readDuration). Boundaries are half-open: [lo, hi).
const (
	TAPShortLo = 0x24
	TAPShortHi = 0x37
	TAPLongLo  = 0x37
	TAPLongHi  = 0x4A
	TAPMarkLo  = 0x4A
	TAPMarkHi  = 0x65
)

// TAPMaxDuration caps an extended (version 1) 24-bit duration value
// down to the single-byte range the classification bands use.
const TAPMaxDuration = 0xFF
