package cbmarc

import (
	"bytes"
	"io"
	"log"
	mathbits "math/bits"

	"github.com/dfandrich/cbmarc/internal/bits"
	"github.com/dfandrich/cbmarc/types"
)

// tapSignal classifies one decoded pulse duration against the
// format's SHORT/LONG/MARK bands.
type tapSignal int

const (
	sigShort tapSignal = iota
	sigLong
	sigMark
	sigInvalid
)

func classifyDuration(d int) tapSignal {
	switch {
	case d >= types.TAPShortLo && d < types.TAPShortHi:
		return sigShort
	case d >= types.TAPLongLo && d < types.TAPLongHi:
		return sigLong
	case d >= types.TAPMarkLo && d < types.TAPMarkHi:
		return sigMark
	default:
		return sigInvalid
	}
}

// tapDecoder walks the flux-reversal pulse stream one duration sample
// at a time. Version 0 tapes store every duration in a single byte, a
// zero meaning "overflow, treat as the maximum"; version 1 tapes follow
// a zero byte with a 24-bit little-endian extension.
type tapDecoder struct {
	buf     []byte
	pos     int
	version byte
}

func (d *tapDecoder) readDuration() (int, bool) {
	if d.pos >= len(d.buf) {
		return 0, false
	}
	v := d.buf[d.pos]
	d.pos++
	if v != 0 {
		return int(v), true
	}
	if d.version == 0 {
		return types.TAPMaxDuration, true
	}
	if d.pos+3 > len(d.buf) {
		return 0, false
	}
	ext := int(d.buf[d.pos]) | int(d.buf[d.pos+1])<<8 | int(d.buf[d.pos+2])<<16
	d.pos += 3
	if ext > types.TAPMaxDuration {
		ext = types.TAPMaxDuration
	}
	return ext, true
}

// readBit walks a single bit-cell pair (two pulses) to a 0 or 1
// bit: a SHORT pulse followed by a confirming LONG decodes to 0, and a
// LONG pulse followed by a confirming SHORT decodes to 1 (GET_BIT0
// picks the branch, the paired state confirms it).
func (d *tapDecoder) readBit() (byte, bool) {
	dur, ok := d.readDuration()
	if !ok {
		return 0, false
	}
	switch classifyDuration(dur) {
	case sigShort:
		dur2, ok := d.readDuration()
		if !ok || classifyDuration(dur2) != sigLong {
			return 0, false
		}
		return 0, true
	case sigLong:
		dur2, ok := d.readDuration()
		if !ok || classifyDuration(dur2) != sigShort {
			return 0, false
		}
		return 1, true
	default:
		return 0, false
	}
}

// readByte decodes 8 data bits plus a trailing parity bit, enforcing
// odd parity over the data bits when the parity bit itself reads 0 and
// even parity when it reads 1.
func (d *tapDecoder) readByte() (byte, bool) {
	var acc byte
	for i := 0; i < 8; i++ {
		bit, ok := d.readBit()
		if !ok {
			return 0, false
		}
		acc = (acc >> 1) | (bit << 7)
	}
	parity, ok := d.readBit()
	if !ok {
		return 0, false
	}
	ones := mathbits.OnesCount8(acc)
	wantOdd := parity == 0
	gotOdd := ones%2 == 1
	if wantOdd != gotOdd {
		return 0, false
	}
	return acc, true
}

// tapBlockResult is what decoding one block copy (a run of bytes
// bounded by sync search on one side and an inter-copy gap on the
// other) produced.
type tapBlockResult struct {
	data []byte // nil when buffered=false
	n    int
	eof  bool
	bad  bool
}

// decodeBlockCopy runs the SYNC_SEARCH -> BYTE_SEARCH -> BYTE_LONG loop
// for one copy of a block. When buffered, every decoded byte is kept
// (used for header records and SEQ_DATA records); otherwise only a
// count is kept, which dirTAP uses for PRG payload blocks, whose
// bytes play no part in the listing.
func (d *tapDecoder) decodeBlockCopy(buffered bool, maxLen int) tapBlockResult {
	const (
		stSyncSearch = iota
		stByteSearch
		stByteLong
	)
	state := stSyncSearch
	shortRun := 0
	var out []byte
	count := 0

	for {
		dur, ok := d.readDuration()
		if !ok {
			return tapBlockResult{data: out, n: count, eof: true}
		}
		sig := classifyDuration(dur)

		switch state {
		case stSyncSearch:
			if sig == sigShort {
				shortRun++
				if shortRun > types.TAPSyncMinCount {
					state = stByteSearch
				}
			} else {
				shortRun = 0
			}

		case stByteSearch:
			if sig == sigMark {
				state = stByteLong
			}

		case stByteLong:
			switch sig {
			case sigLong:
				b, ok := d.readByte()
				if !ok {
					return tapBlockResult{data: out, n: count, bad: true}
				}
				if buffered {
					if len(out) >= maxLen {
						return tapBlockResult{data: out, n: count, bad: true}
					}
					out = append(out, b)
				}
				count++
				state = stByteSearch
			case sigShort:
				return tapBlockResult{data: out, n: count}
			default:
				return tapBlockResult{data: out, n: count, bad: true}
			}
		}
	}
}

// tapHeaderRecord is a validated, merged view of a header block's two
// on-tape copies.
type tapHeaderRecord struct {
	blockType types.TAPHeaderBlockType
	start     uint16
	end       uint16
	name      []byte
}

func checksumOK(rec []byte) bool {
	var sum byte
	for _, b := range rec[types.TAPRecOffType:] {
		sum ^= b
	}
	return sum == 0
}

func validateHeaderCopy(rec []byte, countdown []byte) bool {
	if len(rec) < types.TAPHeaderRecordSize {
		return false
	}
	for i, c := range countdown {
		if rec[types.TAPRecOffCountdown+i] != c {
			return false
		}
	}
	return checksumOK(rec[:types.TAPHeaderRecordSize])
}

func parseHeaderRecord(rec []byte) tapHeaderRecord {
	return tapHeaderRecord{
		blockType: types.TAPHeaderBlockType(rec[types.TAPRecOffType]),
		start:     bits.Uint16(rec[types.TAPRecOffStart:]),
		end:       bits.Uint16(rec[types.TAPRecOffEnd:]),
		name:      rec[types.TAPRecOffName : types.TAPRecOffName+16],
	}
}

// tapPending tracks an in-progress SEQ file whose emission is deferred
// until the trailing run of SEQ_DATA blocks ends (signaled by the next
// non-SEQ_DATA header, or end of tape).
type tapPending struct {
	name   []byte
	length int64
}

func emitEntry(totals *types.Totals, cb Callbacks, name []byte, typeName string, length int64) {
	blocks := length/254 + 1
	cb.OnEntry(types.DirEntry{
		Name:      bits.Normalize(name),
		Type:      typeName,
		Length:    length,
		Blocks:    uint(blocks),
		Method:    "Stored",
		BlocksNow: uint(blocks),
		Checksum:  -1,
	})
	totals.Entries++
	totals.TotalLength += length
	totals.TotalBlocks += int(blocks)
}

// dirTAP walks a TAP cassette image's flux-reversal pulse stream,
// decoding the header records the disk-image formats don't need and
// reconstructing the logical PRG/SEQ file list they describe. Data
// blocks (a PRG's raw payload) are skipped by count only: their
// content plays no part in the directory listing, since a header's
// start/end addresses already give the exact file length.
func dirTAP(r io.ReaderAt, kind types.ContainerKind, cfg Config, cb Callbacks) (types.Totals, Status) {
	buf := readRestAt(r, 0)
	if len(buf) < types.TAPHeaderSize || !bytes.Equal(buf[types.TAPOffMagic:types.TAPOffMagic+len(types.TAPMagic)], types.TAPMagic) {
		return types.Totals{}, StatusError
	}
	version := buf[types.TAPOffVersion]
	if version > 1 {
		return types.Totals{}, StatusUnsupported
	}

	d := &tapDecoder{buf: buf, pos: types.TAPHeaderSize, version: version}

	var totals types.Totals
	cb.OnContainerStart(kind, "", false)

	const awaitingHeader = 0
	const awaitingData = 1
	next := awaitingHeader
	var pending *tapPending

	flushPending := func() {
		if pending != nil {
			emitEntry(&totals, cb, pending.name, "SEQ", pending.length)
			pending = nil
		}
	}

	for {
		if next == awaitingData {
			d.decodeBlockCopy(false, 0)
			d.decodeBlockCopy(false, 0)
			next = awaitingHeader
			continue
		}

		copy1 := d.decodeBlockCopy(true, types.TAPHeaderRecordSize)
		if copy1.eof {
			flushPending()
			totals.TotalBlocksNow = totals.TotalBlocks
			return totals, StatusOK
		}
		copy2 := d.decodeBlockCopy(true, types.TAPHeaderRecordSize)

		var rec []byte
		switch {
		case validateHeaderCopy(copy1.data, types.TAPCountdown1):
			rec = copy1.data
		case validateHeaderCopy(copy2.data, types.TAPCountdown2):
			rec = copy2.data
		default:
			log.Print(&types.FormatError{
				Offset:  int64(d.pos),
				Message: "tape header record failed to validate in either copy",
			})
			flushPending()
			return totals, StatusUnsupported
		}
		h := parseHeaderRecord(rec)

		switch h.blockType {
		case types.TAPEndOfTape:
			flushPending()
			totals.TotalBlocksNow = totals.TotalBlocks
			return totals, StatusOK

		case types.TAPRelocPRG, types.TAPNonrelocPRG:
			flushPending()
			length := int64(h.end) - int64(h.start)
			if length < 0 {
				length += 0x10000
			}
			emitEntry(&totals, cb, h.name, "PRG", length)
			next = awaitingData

		case types.TAPSeqHead:
			flushPending()
			pending = &tapPending{name: append([]byte(nil), h.name...)}
			next = awaitingHeader

		case types.TAPSeqData:
			if pending == nil {
				return totals, StatusUnsupported
			}
			// A SEQ_DATA record carries its payload where a header
			// carries start/end/name: only the countdown, type and
			// trailing checksum bytes are overhead (9 + 1 + 1).
			const seqDataOverhead = 11
			pending.length += int64(len(rec)) - seqDataOverhead
			next = awaitingHeader

		default:
			flushPending()
			return totals, StatusUnsupported
		}
	}
}
