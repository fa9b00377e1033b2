package cbmarc

import (
	"io"

	"github.com/dfandrich/cbmarc/internal/bits"
	"github.com/dfandrich/cbmarc/types"
)

var t64FileTypeNames = [8]string{"SEQ", "PRG", "?2?", "?3?", "?4?", "?5?", "?6?", "?7?"}

func dirT64(r io.ReaderAt, kind types.ContainerKind, cfg Config, cb Callbacks) (types.Totals, Status) {
	hdr, ok := readAt(r, 0, types.T64HeaderSize)
	if !ok {
		return types.Totals{}, StatusError
	}

	major := int(hdr[types.T64OffVerMajor])
	minor := int(hdr[types.T64OffVerMinor])
	used := int(bits.Uint16(hdr[types.T64OffUsedEntry:]))

	totals := types.Totals{
		Entries: used,
		Version: -(major*10 + minor),
	}

	label := bits.Normalize(hdr[types.T64OffTapeName : types.T64OffTapeName+24])
	cb.OnContainerStart(kind, label, label != "")

	pos := int64(types.T64HeaderSize)
	actual := 0
	for i := 0; i < used; i++ {
		ent, ok := readAt(r, pos, types.T64EntrySize)
		if !ok {
			break
		}
		pos += types.T64EntrySize

		fileType := ent[types.T64EntryOffFileType]
		startAddr := bits.Uint16(ent[types.T64EntryOffStartAddr:])
		endAddr := bits.Uint16(ent[types.T64EntryOffEndAddr:])
		length := int64(endAddr) - int64(startAddr) + 2
		blocks := uint(length/254 + 1)

		var typeName string
		if fileType&types.Closed != 0 {
			typeName = types.CbmFileType(fileType & types.TypeMask).String()
		} else {
			typeName = t64FileTypeNames[fileType&0x07]
		}

		cb.OnEntry(types.DirEntry{
			Name:      bits.Normalize(ent[types.T64EntryOffFileName : types.T64EntryOffFileName+16]),
			Type:      typeName,
			Length:    length,
			Blocks:    blocks,
			Method:    "Stored",
			BlocksNow: blocks,
			Checksum:  -1,
		})

		actual++
		totals.TotalLength += length
		totals.TotalBlocks += int(blocks)
	}
	totals.Entries = actual
	totals.TotalBlocksNow = totals.TotalBlocks

	return totals, StatusOK
}
