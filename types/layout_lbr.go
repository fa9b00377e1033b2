package types

// LBRMagic is the 3-byte signature an LBR container opens with.
var LBRMagic = []byte{'D', 'W', 'B'}

// LBRCountOffset is the byte offset of the textual, CR-terminated
// entry-count field that follows the magic.
const LBRCountOffset = 3
