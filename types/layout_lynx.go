package types

// MagicHeaderLynx is the 10-byte signature an old-style Lynx archive
// starts with (" 1   LYNX ").
var MagicHeaderLynx = []byte{' ', '1', ' ', ' ', ' ', 'L', 'Y', 'N', 'X', ' '}

// MagicHeaderLynxNew is the 25-byte signature of the newer Lynx
// loader, three token-encoded BASIC POKE statements (0x97) separated
// by colons.
var MagicHeaderLynxNew = []byte{
	0x97, '5', '3', '2', '8', '0', ',', '0', 0x3A,
	0x97, '5', '3', '2', '8', '1', ',', '0', 0x3A,
	0x97, '6', '4', '6', ',', 0xC2, '(',
}

// LynxNewHeaderOffset is where the textual directory preamble begins
// in a new-style Lynx archive, following the fixed loader.
const LynxNewHeaderOffset = 0x5F
