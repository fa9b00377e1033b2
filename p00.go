package cbmarc

import (
	"io"

	"github.com/dfandrich/cbmarc/internal/bits"
	"github.com/dfandrich/cbmarc/types"
)

var x00TypeNames = map[types.ContainerKind]string{
	types.P00: "PRG",
	types.S00: "SEQ",
	types.U00: "USR",
	types.R00: "REL",
	types.D00: "DEL",
	types.X00: "???",
}

func dirP00(r io.ReaderAt, kind types.ContainerKind, cfg Config, cb Callbacks) (types.Totals, Status) {
	hdr, ok := readAt(r, 0, types.X00HeaderSize)
	if !ok {
		return types.Totals{}, StatusError
	}

	size, err := streamSize(r)
	if err != nil {
		return types.Totals{}, StatusError
	}
	length := size - types.X00HeaderSize
	if length < 0 {
		length = 0
	}
	blocks := int64(types.Blocks254(length))

	cb.OnContainerStart(kind, "", false)
	cb.OnEntry(types.DirEntry{
		Name:      bits.Normalize(hdr[types.X00OffFileName : types.X00OffFileName+17]),
		Type:      x00TypeNames[kind],
		Length:    length,
		Blocks:    uint(blocks),
		Method:    "Stored",
		BlocksNow: uint(blocks),
		Checksum:  -1,
	})

	return types.Totals{
		Entries:        1,
		TotalLength:    length,
		TotalBlocks:    int(blocks),
		TotalBlocksNow: int(blocks),
	}, StatusOK
}
