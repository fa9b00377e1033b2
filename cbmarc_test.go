package cbmarc

import (
	"bytes"
	mathbits "math/bits"
	"testing"

	"github.com/dfandrich/cbmarc/internal/bits"
	"github.com/dfandrich/cbmarc/types"
)

// recorder is a Callbacks implementation that just keeps what it saw,
// for assertions.
type recorder struct {
	kind     types.ContainerKind
	label    string
	hasLabel bool
	entries  []types.DirEntry
}

func (r *recorder) OnContainerStart(kind types.ContainerKind, label string, hasLabel bool) {
	r.kind = kind
	r.label = label
	r.hasLabel = hasLabel
}

func (r *recorder) OnEntry(e types.DirEntry) {
	r.entries = append(r.entries, e)
}

func TestDetermineARCRaw(t *testing.T) {
	buf := []byte{types.ArcEntryMagic, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	r := bytes.NewReader(buf)
	if got := Determine(r, ""); got != types.ArcRaw {
		t.Fatalf("Determine = %v, want ArcRaw", got)
	}
}

// buildARCEntry lays out one fixed 11-byte ARC header plus its name,
// the shape dirARC expects (types.ArcFixedHeaderSize == 11).
func buildARCEntry(entryType byte, name string, length int64, blockLength byte) []byte {
	hdr := make([]byte, types.ArcFixedHeaderSize)
	hdr[types.ArcOffMagic] = types.ArcEntryMagic
	hdr[types.ArcOffEntryType] = entryType
	hdr[types.ArcOffChecksum] = 0
	hdr[types.ArcOffChecksum+1] = 0
	hdr[types.ArcOffLengthLow] = byte(length)
	hdr[types.ArcOffLengthLow+1] = byte(length >> 8)
	hdr[types.ArcOffLengthHigh] = byte(length >> 16)
	hdr[types.ArcOffBlockLength] = blockLength
	hdr[types.ArcOffFileType] = 'P'
	hdr[types.ArcOffFileNameLen] = byte(len(name))
	return append(hdr, []byte(name)...)
}

func TestDirARCRaw(t *testing.T) {
	var buf []byte
	buf = append(buf, buildARCEntry(0, "HELLO", 254, 1)...)
	// Trailing zero byte. The entry's one stored block moves the walk
	// to offset 254, past the end of buf, so the walk ends on that
	// short read.
	buf = append(buf, 0)

	r := bytes.NewReader(buf)
	rec := &recorder{}
	totals, status := Dir(r, types.ArcRaw, Config{}, rec)
	if status != StatusOK {
		t.Fatalf("status = %v, want StatusOK", status)
	}
	if totals.Entries != 1 {
		t.Fatalf("Entries = %d, want 1", totals.Entries)
	}
	if len(rec.entries) != 1 || rec.entries[0].Name != "HELLO" {
		t.Fatalf("entries = %+v", rec.entries)
	}
	if rec.entries[0].Type != "PRG" {
		t.Fatalf("Type = %q, want PRG", rec.entries[0].Type)
	}
}

func buildLHAEntry(name string, origSize, packSize uint32, entryType byte) []byte {
	hdr := make([]byte, types.LHAHeaderSize)
	hdr[types.LHAOffHeadSize] = byte(types.LHAHeaderSize + len(name) + types.LHACRCSize - 2)
	hdr[types.LHAOffEntryType] = entryType
	hdr[types.LHAOffPackSize] = byte(packSize)
	hdr[types.LHAOffPackSize+1] = byte(packSize >> 8)
	hdr[types.LHAOffPackSize+2] = byte(packSize >> 16)
	hdr[types.LHAOffPackSize+3] = byte(packSize >> 24)
	hdr[types.LHAOffOrigSize] = byte(origSize)
	hdr[types.LHAOffOrigSize+1] = byte(origSize >> 8)
	hdr[types.LHAOffOrigSize+2] = byte(origSize >> 16)
	hdr[types.LHAOffOrigSize+3] = byte(origSize >> 24)
	copy(hdr[types.LHAOffHeadID:], "-lh")
	hdr[types.LHAOffFileNameLen] = byte(len(name))
	buf := append(hdr, []byte(name)...)
	buf = append(buf, 0, 0) // CRC, unused by the walker beyond reporting
	return buf
}

func TestDirLHARaw(t *testing.T) {
	buf := buildLHAEntry("GAME.PRG", 500, 300, '5')
	r := bytes.NewReader(buf)

	rec := &recorder{}
	totals, status := Dir(r, types.LHARaw, Config{}, rec)
	if status != StatusOK {
		t.Fatalf("status = %v", status)
	}
	if totals.Entries != 1 {
		t.Fatalf("Entries = %d, want 1", totals.Entries)
	}
	if rec.entries[0].Length != 500 {
		t.Fatalf("Length = %d, want 500", rec.entries[0].Length)
	}
	if rec.entries[0].Method != "lh5" {
		t.Fatalf("Method = %q, want lh5", rec.entries[0].Method)
	}
}

func buildT64(name string, entries [][3]int) []byte {
	hdr := make([]byte, types.T64HeaderSize)
	hdr[types.T64OffVerMajor] = 1
	hdr[types.T64OffVerMinor] = 0
	hdr[types.T64OffUsedEntry] = byte(len(entries))
	copy(hdr[types.T64OffTapeName:], name)
	for i := len(name); i < 24; i++ {
		hdr[types.T64OffTapeName+i] = ' '
	}

	buf := hdr
	for _, e := range entries {
		ent := make([]byte, types.T64EntrySize)
		ent[types.T64EntryOffFileType] = byte(types.Closed | byte(types.Prg))
		ent[types.T64EntryOffStartAddr] = byte(e[0])
		ent[types.T64EntryOffStartAddr+1] = byte(e[0] >> 8)
		ent[types.T64EntryOffEndAddr] = byte(e[1])
		ent[types.T64EntryOffEndAddr+1] = byte(e[1] >> 8)
		nameBytes := []byte{'F', 'I', 'L', 'E'}
		copy(ent[types.T64EntryOffFileName:], nameBytes)
		for i := len(nameBytes); i < 16; i++ {
			ent[types.T64EntryOffFileName+i] = ' '
		}
		buf = append(buf, ent...)
	}
	return buf
}

func TestDirT64(t *testing.T) {
	buf := buildT64("MY TAPE", [][3]int{{0x0801, 0x0901, 0}})
	r := bytes.NewReader(buf)

	rec := &recorder{}
	totals, status := Dir(r, types.T64, Config{}, rec)
	if status != StatusOK {
		t.Fatalf("status = %v", status)
	}
	if !rec.hasLabel || rec.label != "MY TAPE" {
		t.Fatalf("label = %q hasLabel=%v", rec.label, rec.hasLabel)
	}
	if totals.Entries != 1 {
		t.Fatalf("Entries = %d, want 1", totals.Entries)
	}
	wantLen := int64(0x0901 - 0x0801 + 2)
	if rec.entries[0].Length != wantLen {
		t.Fatalf("Length = %d, want %d", rec.entries[0].Length, wantLen)
	}
}

func TestDirP00Family(t *testing.T) {
	hdr := make([]byte, types.X00HeaderSize)
	copy(hdr, types.X00Magic)
	copy(hdr[types.X00OffFileName:], "GAME")
	buf := append(hdr, make([]byte, 508)...) // 508 bytes payload -> 2 blocks

	r := bytes.NewReader(buf)
	rec := &recorder{}
	totals, status := Dir(r, types.P00, Config{}, rec)
	if status != StatusOK {
		t.Fatalf("status = %v", status)
	}
	if totals.Entries != 1 || rec.entries[0].Type != "PRG" {
		t.Fatalf("entries = %+v", rec.entries)
	}
	if rec.entries[0].Length != 508 {
		t.Fatalf("Length = %d, want 508", rec.entries[0].Length)
	}
}

func TestDirUnknownKindIsError(t *testing.T) {
	r := bytes.NewReader([]byte{0})
	_, status := Dir(r, types.Unknown, Config{}, &recorder{})
	if status != StatusError {
		t.Fatalf("status = %v, want StatusError", status)
	}
}

// blockOffset1541 turns a track/sector pair into the byte offset
// dirDiskImage itself would compute, so a test fixture can be laid out
// by logical address instead of hand-counted byte math.
func blockOffset1541(track, sector int) int64 {
	b, ok := types.Location1541(track, sector)
	if !ok {
		panic("bad track/sector in test fixture")
	}
	return int64(b) * 256
}

// buildRaw1541Image lays out a full-size 1541 image with a one-entry
// directory (track 18, sector 1) pointing at a single-block file whose
// chain terminates at track 1, sector 0.
func buildRaw1541Image() []byte {
	buf := make([]byte, types.Blocks1541*256)

	dirHdrOff := blockOffset1541(types.DirTrack1541, types.DirSector1541)
	buf[dirHdrOff+types.Raw1541OffFirstTrack] = 18
	buf[dirHdrOff+types.Raw1541OffFirstSector] = 1
	buf[dirHdrOff+types.Raw1541OffFormat] = 'A'
	buf[dirHdrOff+types.Raw1541OffFlag] = 0
	buf[dirHdrOff+types.Raw1541OffFiller2+3] = bits.EndOfName

	dirBlockOff := blockOffset1541(18, 1)
	buf[dirBlockOff+0] = 0 // no further directory blocks
	buf[dirBlockOff+1] = 0

	entryOff := dirBlockOff + 2
	buf[entryOff+types.D64EntryOffFileType] = types.Closed | byte(types.Prg)
	buf[entryOff+types.D64EntryOffFirstTrack] = 1
	buf[entryOff+types.D64EntryOffFirstSector] = 0
	name := []byte("TESTFILE")
	copy(buf[entryOff+types.D64EntryOffFileName:], name)
	for i := len(name); i < 16; i++ {
		buf[entryOff+types.D64EntryOffFileName+int64(i)] = bits.EndOfName
	}
	buf[entryOff+types.D64EntryOffFileBlocks] = 1
	buf[entryOff+types.D64EntryOffFileBlocks+1] = 0

	dataOff := blockOffset1541(1, 0)
	buf[dataOff+0] = 0   // end of chain
	buf[dataOff+1] = 200 // 199 valid bytes in this last block

	return buf
}

func TestDirDiskImageD64(t *testing.T) {
	buf := buildRaw1541Image()
	r := bytes.NewReader(buf)
	rec := &recorder{}
	totals, status := Dir(r, types.D64, Config{Wide: true}, rec)
	if status != StatusOK {
		t.Fatalf("status = %v", status)
	}
	if totals.Entries != 1 {
		t.Fatalf("Entries = %d, want 1", totals.Entries)
	}
	if rec.entries[0].Name != "TESTFILE" {
		t.Fatalf("Name = %q", rec.entries[0].Name)
	}
	if rec.entries[0].Length != 199 {
		t.Fatalf("Length = %d, want 199", rec.entries[0].Length)
	}
}

func TestDirDiskImageX64(t *testing.T) {
	hdr := make([]byte, types.X64HeaderSize)
	copy(hdr, types.X64Magic)
	hdr[types.X64OffMajorVer] = 1
	hdr[types.X64OffMinorVer] = 2
	hdr[types.X64OffDeviceType] = types.DT1541

	buf := append(hdr, buildRaw1541Image()...)
	r := bytes.NewReader(buf)
	rec := &recorder{}
	totals, status := Dir(r, types.X64, Config{Wide: true}, rec)
	if status != StatusOK {
		t.Fatalf("status = %v", status)
	}
	if totals.Version != -12 {
		t.Fatalf("Version = %d, want -12", totals.Version)
	}
	if totals.Entries != 1 || rec.entries[0].Length != 199 {
		t.Fatalf("entries = %+v", rec.entries)
	}
}

func TestDirLynxOld(t *testing.T) {
	var buf []byte
	buf = append(buf, "DISK LYNX X\r3\r"...)
	buf = append(buf, "GAME1\r5\rP\r100\r"...)
	buf = append(buf, "GAME2\r3\rS\r50\r"...)
	buf = append(buf, "GAME3\r1\rU\r10\r"...)

	r := bytes.NewReader(buf)
	rec := &recorder{}
	totals, status := Dir(r, types.LynxOld, Config{}, rec)
	if status != StatusOK {
		t.Fatalf("status = %v", status)
	}
	if totals.Version != 10 {
		t.Fatalf("Version = %d, want 10", totals.Version)
	}
	if totals.Entries != 3 {
		t.Fatalf("Entries = %d, want 3", totals.Entries)
	}

	wantName := []string{"GAME1", "GAME2", "GAME3"}
	wantType := []string{"PRG", "SEQ", "USR"}
	wantLength := []int64{1115, 557, 9}
	for i, e := range rec.entries {
		if e.Name != wantName[i] || e.Type != wantType[i] || e.Length != wantLength[i] {
			t.Fatalf("entry %d = %+v, want name=%s type=%s length=%d", i, e, wantName[i], wantType[i], wantLength[i])
		}
	}
}

// --- TAP fixture construction -----------------------------------------
//
// tapByteFrame/tapBlockCopy build a synthetic flux-reversal pulse stream
// byte-for-byte as dirTAP's decoder expects: a sync run of SHORT pulses,
// then one MARK+LONG-prefixed two-pulse-per-bit frame per logical byte,
// closed off by a MARK+SHORT pair signaling the end of this copy.

const (
	tapPulseShort = 0x2B
	tapPulseLong  = 0x40
	tapPulseMark  = 0x55
)

func tapBit(bit byte) []byte {
	if bit == 0 {
		return []byte{tapPulseShort, tapPulseLong}
	}
	return []byte{tapPulseLong, tapPulseShort}
}

func tapByteFrame(v byte) []byte {
	out := []byte{tapPulseMark, tapPulseLong}
	for i := 0; i < 8; i++ {
		out = append(out, tapBit((v>>uint(i))&1)...)
	}
	var parityBit byte
	if mathbits.OnesCount8(v)%2 == 0 {
		parityBit = 1
	}
	out = append(out, tapBit(parityBit)...)
	return out
}

func tapBlockCopy(data []byte) []byte {
	out := make([]byte, 0, 32)
	for i := 0; i < 32; i++ {
		out = append(out, tapPulseShort)
	}
	for _, b := range data {
		out = append(out, tapByteFrame(b)...)
	}
	out = append(out, tapPulseMark, tapPulseShort)
	return out
}

func buildTAPHeaderRecord(countdown []byte, blockType byte, start, end uint16, name []byte) []byte {
	rec := make([]byte, types.TAPHeaderRecordSize)
	copy(rec[types.TAPRecOffCountdown:], countdown)
	rec[types.TAPRecOffType] = blockType
	rec[types.TAPRecOffStart] = byte(start)
	rec[types.TAPRecOffStart+1] = byte(start >> 8)
	rec[types.TAPRecOffEnd] = byte(end)
	rec[types.TAPRecOffEnd+1] = byte(end >> 8)
	copy(rec[types.TAPRecOffName:], name)
	var sum byte
	for _, b := range rec[types.TAPRecOffType:types.TAPRecOffChecksum] {
		sum ^= b
	}
	rec[types.TAPRecOffChecksum] = sum
	return rec
}

func TestDirTAPOnePRG(t *testing.T) {
	name := make([]byte, 16)
	copy(name, "GAME")
	for i := len("GAME"); i < 16; i++ {
		name[i] = bits.EndOfName
	}

	prgHdr := buildTAPHeaderRecord(types.TAPCountdown1, byte(types.TAPRelocPRG), 0x0801, 0x0901, name)
	endHdr := buildTAPHeaderRecord(types.TAPCountdown1, byte(types.TAPEndOfTape), 0, 0, make([]byte, 16))

	var buf []byte
	buf = append(buf, types.TAPMagic...)
	buf = append(buf, 0, 0, 0, 0) // version 0, platform/video/reserved unused
	buf = append(buf, 0, 0, 0, 0) // data-size field, unused by the decoder

	buf = append(buf, tapBlockCopy(prgHdr)...)
	buf = append(buf, tapBlockCopy(prgHdr)...)
	buf = append(buf, tapBlockCopy([]byte{0x00})...) // PRG payload, copy 1
	buf = append(buf, tapBlockCopy([]byte{0x00})...) // PRG payload, copy 2
	buf = append(buf, tapBlockCopy(endHdr)...)
	buf = append(buf, tapBlockCopy(endHdr)...)

	r := bytes.NewReader(buf)
	rec := &recorder{}
	totals, status := Dir(r, types.TAP, Config{}, rec)
	if status != StatusOK {
		t.Fatalf("status = %v", status)
	}
	if totals.Entries != 1 {
		t.Fatalf("Entries = %d, want 1", totals.Entries)
	}
	if rec.entries[0].Name != "GAME" || rec.entries[0].Type != "PRG" {
		t.Fatalf("entry = %+v", rec.entries[0])
	}
	if rec.entries[0].Length != 0x0901-0x0801 {
		t.Fatalf("Length = %d, want %d", rec.entries[0].Length, 0x0901-0x0801)
	}
}
