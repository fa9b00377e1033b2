package cbmarc

import (
	"io"

	"github.com/dfandrich/cbmarc/internal/bits"
	"github.com/dfandrich/cbmarc/types"
)

var arcPrelude = map[types.ContainerKind]int64{
	types.ArcRaw:     types.ArcPreludeRaw,
	types.ArcC64V10:  types.ArcPreludeC64V10,
	types.ArcC64V13:  types.ArcPreludeC64V13,
	types.ArcC64V15:  types.ArcPreludeC64V15,
	types.ArcC128V15: types.ArcPreludeC128V15,
}

func dirARC(r io.ReaderAt, kind types.ContainerKind, cfg Config, cb Callbacks) (types.Totals, Status) {
	pos, ok := arcPrelude[kind]
	if !ok {
		return types.Totals{}, StatusError
	}

	var totals types.Totals
	if kind != types.ArcRaw {
		verBuf, ok := readAt(r, types.SFXOffVersion, 2)
		if !ok {
			return types.Totals{}, StatusError
		}
		totals.Version = -int(bits.Uint16(verBuf))
		totals.DearcerBlocks = int(types.Blocks254(pos))
	}

	cb.OnContainerStart(kind, "", false)

	for {
		hdr, ok := readAt(r, pos, types.ArcFixedHeaderSize)
		if !ok {
			break
		}
		if hdr[types.ArcOffMagic] != types.ArcEntryMagic {
			break
		}
		nameLen := int(hdr[types.ArcOffFileNameLen])
		name, ok := readAt(r, pos+types.ArcFixedHeaderSize, nameLen)
		if !ok {
			break
		}

		entryType := hdr[types.ArcOffEntryType]
		length := int64(hdr[types.ArcOffLengthHigh])<<16 | int64(bits.Uint16(hdr[types.ArcOffLengthLow:]))
		blockLength := uint(hdr[types.ArcOffBlockLength])
		blocks := types.Blocks254(length)

		// The savings percentage is computed against length/254+1, not
		// the reported block count's (length-1)/254+1 — they differ
		// for lengths that are exact multiples of 254.
		savingsDenom := length/254 + 1
		savings := 0
		if savingsDenom > 0 {
			savings = 100 - int(int64(blockLength)*100/savingsDenom)
		}

		cb.OnEntry(types.DirEntry{
			Name:           bits.Normalize(name),
			Type:           types.FileTypeLetter(hdr[types.ArcOffFileType]),
			Length:         length,
			Blocks:         blocks,
			Method:         types.ArcMethodName(entryType),
			SavingsPercent: savings,
			BlocksNow:      blockLength,
			Checksum:       int64(bits.Uint16(hdr[types.ArcOffChecksum:])),
		})

		totals.Entries++
		totals.TotalLength += length
		totals.TotalBlocks += int(blocks)
		totals.TotalBlocksNow += int(blockLength)

		pos += int64(blockLength) * 254
	}

	return totals, StatusOK
}
