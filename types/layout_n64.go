package types

// N64Magic is the 3-byte signature at the very start of an N64
// container, immediately followed by a 1-byte format version that
// must equal N64Version for the container to be recognized.
var N64Magic = []byte{'C', '6', '4'}

const N64Version = 1

// N64HeaderOffset is where the real per-file header begins, after the
// 3-byte magic and 1-byte version already consumed by the prober.
const N64HeaderOffset = 4

const (
	N64OffFileType         = 0  // 1 byte
	N64OffLoadAddr         = 1  // 2 bytes LE
	N64OffFileLength       = 3  // 4 bytes LE
	N64OffNetSecurityLevel = 7  // 1 byte
	N64OffReserved1        = 8  // 19 bytes
	N64OffFileName         = 27 // 16 bytes
)
