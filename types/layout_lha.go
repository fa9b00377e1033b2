package types

// LHA entry headers are 22 fixed bytes, followed by a variable-length
// name and a trailing 2-byte CRC.
const (
	LHAHeaderSize = 22

	LHAOffHeadSize    = 0  // 1 byte
	LHAOffHeadCheck   = 1  // 1 byte
	LHAOffHeadID      = 2  // 3 bytes, "-lh"
	LHAOffEntryType   = 5  // 1 byte, the digit after "-lh", e.g. '5'
	LHAOffMagic       = 6  // 1 byte, '-'
	LHAOffPackSize    = 7  // 4 bytes LE
	LHAOffOrigSize    = 11 // 4 bytes LE
	LHAOffDosTime     = 15 // 4 bytes LE, MS-DOS packed date/time
	LHAOffAttr        = 19 // 2 bytes LE
	LHAOffFileNameLen = 21 // 1 byte
	LHAOffFileName    = 22 // FileNameLen bytes

	LHACRCSize = 2

	// LHASFXOffset is the fixed byte offset of the first LHA header
	// inside a self-extracting .exe: the executable stub always has
	// exactly this length.
	LHASFXOffset = 0xE89
)

// LHAHeadID is the fixed 3-byte signature following HeadSize/HeadCheck.
var LHAHeadID = [3]byte{'-', 'l', 'h'}
