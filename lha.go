package cbmarc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dfandrich/cbmarc/internal/bits"
	"github.com/dfandrich/cbmarc/types"
)

// lhaMethodNames indexes by (EntryType - '0'), the method id digit
// following "-lh" in the header's HeadID field; out-of-range values
// fall back to a generic label instead of reading past a fixed array.
var lhaMethodNames = []string{
	"Stored", "lh1", "lh2", "lh3", "lh4", "lh5", "lh6", "lh7", "lh8", "lh9", "lhA", "lhB",
}

func lhaMethodName(entryType byte) string {
	i := int(entryType) - '0'
	if i < 0 || i >= len(lhaMethodNames) {
		return fmt.Sprintf("lh%c", entryType)
	}
	return lhaMethodNames[i]
}

func dirLHA(r io.ReaderAt, kind types.ContainerKind, cfg Config, cb Callbacks) (types.Totals, Status) {
	var pos int64
	var totals types.Totals
	if kind == types.LHASFX {
		pos = types.LHASFXOffset
		totals.DearcerBlocks = int(types.Blocks254(pos))
	}

	cb.OnContainerStart(kind, "", false)

	for {
		hdr, ok := readAt(r, pos, types.LHAHeaderSize)
		if !ok {
			break
		}
		if !bytes.Equal(hdr[types.LHAOffHeadID:types.LHAOffHeadID+3], types.LHAHeadID[:]) {
			break
		}

		headSize := int64(hdr[types.LHAOffHeadSize])
		nameLen := int(hdr[types.LHAOffFileNameLen])
		packSize := int64(bits.Uint32(hdr[types.LHAOffPackSize:]))
		origSize := int64(bits.Uint32(hdr[types.LHAOffOrigSize:]))

		trailer, ok := readAt(r, pos+types.LHAHeaderSize, nameLen+types.LHACRCSize)
		if !ok {
			break
		}
		name := trailer[:nameLen]

		typeCode := byte(' ')
		if nameLen >= 2 {
			if trailer[nameLen-2] == 0 {
				typeCode = trailer[nameLen-1]
			}
		}

		checksum := int64(0)
		if nameLen+1 < len(trailer) {
			checksum = int64(trailer[nameLen]) | int64(trailer[nameLen+1])<<8
		}

		blocksOrig := uint(0)
		savings := 100
		if origSize > 0 {
			blocksOrig = types.Blocks254(origSize)
			savings = int(100 - packSize*100/origSize)
		}
		blocksPacked := uint(0)
		if packSize > 0 {
			blocksPacked = types.Blocks254(packSize)
		}

		cb.OnEntry(types.DirEntry{
			Name:           bits.Normalize(name),
			Type:           types.FileTypeLetter(typeCode),
			Length:         origSize,
			Blocks:         blocksOrig,
			Method:         lhaMethodName(hdr[types.LHAOffEntryType]),
			SavingsPercent: savings,
			BlocksNow:      blocksPacked,
			Checksum:       checksum,
		})

		totals.Entries++
		totals.TotalLength += origSize
		totals.TotalBlocks += int(blocksOrig)
		totals.TotalBlocksNow += int(blocksPacked)

		pos += headSize + packSize + types.LHACRCSize
	}

	return totals, StatusOK
}
