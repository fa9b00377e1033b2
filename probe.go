package cbmarc

import (
	"bytes"
	"io"
	"strings"

	"github.com/dfandrich/cbmarc/types"
)

type proberFunc func(r io.ReaderAt, nameHint string) bool

type proberEntry struct {
	kind  types.ContainerKind
	probe proberFunc
}

// readAt reads exactly n bytes at off, returning ok=false on any
// short read or error rather than a partial buffer — every prober
// below treats a too-small stream as simply not matching.
func readAt(r io.ReaderAt, off int64, n int) ([]byte, bool) {
	buf := make([]byte, n)
	if _, err := r.ReadAt(buf, off); err != nil {
		return nil, false
	}
	return buf, true
}

func extLower(nameHint string) string {
	i := strings.LastIndexByte(nameHint, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(nameHint[i+1:])
}

// proberRegistry is walked top to bottom exactly once by Determine;
// order is material because some magics are prefixes of others (N64's
// three bytes "C64" also begin the T64 and *00 magics; the lettered *00
// variants must be tried before the X00 catch-all).
var proberRegistry = []proberEntry{
	{types.ArcRaw, probeArcRaw},
	{types.ArcC64V10, probeArcC64V10},
	{types.ArcC64V13, probeArcC64V13},
	{types.ArcC64V15, probeArcC64V15},
	{types.ArcC128V15, probeArcC128V15},
	{types.LHASFX, probeLHASFX},
	{types.LHARaw, probeLHARaw},
	{types.LynxOld, probeLynxOld},
	{types.LynxNew, probeLynxNew},
	{types.T64, probeT64},
	{types.D64, probeD64},
	{types.C1581, probeC1581},
	{types.X64, probeX64},
	{types.P00, probeP00},
	{types.S00, probeS00},
	{types.U00, probeU00},
	{types.R00, probeR00},
	{types.D00, probeD00},
	{types.X00, probeX00},
	{types.N64, probeN64},
	{types.LBR, probeLBR},
	{types.TAP, probeTAP},
}

func probeArcRaw(r io.ReaderAt, _ string) bool {
	buf, ok := readAt(r, 0, 2)
	if !ok {
		return false
	}
	return buf[0] == types.ArcEntryMagic && buf[1] <= types.ArcMaxEntryType
}

func probeArcC64V10(r io.ReaderAt, _ string) bool {
	magic1, ok := readAt(r, types.SFXOffMagic1, len(types.MagicHeaderC64))
	if !ok || !bytes.Equal(magic1, types.MagicHeaderC64) {
		return false
	}
	magic2, ok := readAt(r, types.C64V10OffMagic2, len(types.MagicC64V10))
	return ok && bytes.Equal(magic2, types.MagicC64V10)
}

func probeArcC64V13(r io.ReaderAt, _ string) bool {
	magic1, ok := readAt(r, types.SFXOffMagic1, len(types.MagicHeaderC64))
	if !ok || !bytes.Equal(magic1, types.MagicHeaderC64) {
		return false
	}
	magic2, ok := readAt(r, types.C64V13OffMagic2, len(types.MagicC64V13))
	return ok && bytes.Equal(magic2, types.MagicC64V13)
}

func probeArcC64V15(r io.ReaderAt, _ string) bool {
	magic1, ok := readAt(r, types.SFXOffMagic1, len(types.MagicHeaderC64))
	if !ok || !bytes.Equal(magic1, types.MagicHeaderC64) {
		return false
	}
	magic2, ok := readAt(r, types.C64V15OffMagic2, len(types.MagicC64V15))
	return ok && bytes.Equal(magic2, types.MagicC64V15)
}

func probeArcC128V15(r io.ReaderAt, _ string) bool {
	magic1, ok := readAt(r, types.SFXOffMagic1, len(types.MagicHeaderC128))
	if !ok || !bytes.Equal(magic1, types.MagicHeaderC128) {
		return false
	}
	magic2, ok := readAt(r, types.C128V15OffMagic2, 1)
	return ok && magic2[0] == types.MagicC128V15
}

func probeLHASFX(r io.ReaderAt, _ string) bool {
	buf, ok := readAt(r, 6, 10)
	if !ok {
		return false
	}
	return bytes.Equal(buf, []byte{0x97, 0x32, 0x30, 0x2C, 0x30, 0x3A, 0x8B, 0xC2, 0x28, 0x32})
}

func probeLHARaw(r io.ReaderAt, _ string) bool {
	buf, ok := readAt(r, 2, 3)
	return ok && bytes.Equal(buf, types.LHAHeadID[:])
}

func probeLynxOld(r io.ReaderAt, _ string) bool {
	buf, ok := readAt(r, 0, len(types.MagicHeaderLynx))
	return ok && bytes.Equal(buf, types.MagicHeaderLynx)
}

func probeLynxNew(r io.ReaderAt, _ string) bool {
	// StartAddress, EndHeaderAddr and Version (2 bytes each) precede
	// the magic, not just Version alone: offset 6, not 4.
	buf, ok := readAt(r, 6, len(types.MagicHeaderLynxNew))
	return ok && bytes.Equal(buf, types.MagicHeaderLynxNew)
}

func probeT64(r io.ReaderAt, _ string) bool {
	long, ok := readAt(r, 0, len(types.T64MagicLong))
	if ok && bytes.Equal(long, types.T64MagicLong) {
		return true
	}
	short, ok := readAt(r, 0, len(types.T64MagicShort))
	return ok && bytes.Equal(short, types.T64MagicShort)
}

var d64Extensions = map[string]bool{
	"d64": true, "d71": true, "d80": true, "d82": true, "d81": true,
}

func probeD64(r io.ReaderAt, nameHint string) bool {
	if d64Extensions[extLower(nameHint)] {
		return true
	}
	prefix2, ok := readAt(r, 0, 2)
	if ok {
		for _, m := range [][]byte{
			types.D64MagicBlank1, types.D64MagicBlank2, types.D64MagicTrack0,
			{0x01, 0x06}, {0x01, 0x03}, {0x01, 0x01},
		} {
			if bytes.Equal(prefix2, m) {
				return true
			}
		}
	}
	prefix3, ok := readAt(r, 0, 3)
	return ok && bytes.Equal(prefix3, types.D64MagicCBM)
}

// probeC1581 is always false: fvcbm documents that there is no
// reliable signature distinguishing a bare 1581 image from a bare
// D64/1541 image, so a raw 1581 is only ever recognized once the D64
// walker is already running, when it falls back to the 1581 header at
// track 40.
func probeC1581(io.ReaderAt, string) bool { return false }

func probeX64(r io.ReaderAt, _ string) bool {
	buf, ok := readAt(r, 0, len(types.X64Magic))
	return ok && bytes.Equal(buf, types.X64Magic)
}

func probeX00(r io.ReaderAt, _ string) bool {
	buf, ok := readAt(r, 0, len(types.X00Magic))
	return ok && bytes.Equal(buf, types.X00Magic)
}

func extFirstLetter(nameHint string) byte {
	ext := extLower(nameHint)
	if ext == "" {
		return 0
	}
	c := ext[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c
}

func probeP00(r io.ReaderAt, nameHint string) bool {
	return probeX00(r, nameHint) && extFirstLetter(nameHint) == 'P'
}

func probeS00(r io.ReaderAt, nameHint string) bool {
	return probeX00(r, nameHint) && extFirstLetter(nameHint) == 'S'
}

func probeU00(r io.ReaderAt, nameHint string) bool {
	return probeX00(r, nameHint) && extFirstLetter(nameHint) == 'U'
}

func probeD00(r io.ReaderAt, nameHint string) bool {
	return probeX00(r, nameHint) && extFirstLetter(nameHint) == 'D'
}

func probeR00(r io.ReaderAt, nameHint string) bool {
	if !probeX00(r, nameHint) {
		return false
	}
	if extFirstLetter(nameHint) == 'R' {
		return true
	}
	recSize, ok := readAt(r, types.X00OffRecordSize, 1)
	return ok && recSize[0] > 0
}

func probeN64(r io.ReaderAt, _ string) bool {
	buf, ok := readAt(r, 0, len(types.N64Magic)+1)
	if !ok || !bytes.Equal(buf[:len(types.N64Magic)], types.N64Magic) {
		return false
	}
	return buf[len(types.N64Magic)] == types.N64Version
}

func probeLBR(r io.ReaderAt, _ string) bool {
	buf, ok := readAt(r, 0, len(types.LBRMagic))
	return ok && bytes.Equal(buf, types.LBRMagic)
}

func probeTAP(r io.ReaderAt, _ string) bool {
	buf, ok := readAt(r, 0, len(types.TAPMagic))
	return ok && bytes.Equal(buf, types.TAPMagic)
}
