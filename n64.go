package cbmarc

import (
	"io"

	"github.com/dfandrich/cbmarc/internal/bits"
	"github.com/dfandrich/cbmarc/types"
)

func dirN64(r io.ReaderAt, kind types.ContainerKind, cfg Config, cb Callbacks) (types.Totals, Status) {
	hdr, ok := readAt(r, types.N64HeaderOffset, 43)
	if !ok {
		return types.Totals{}, StatusError
	}

	length := int64(bits.Uint32(hdr[types.N64OffFileLength:]))
	blocks := length/254 + 1

	cb.OnContainerStart(kind, "", false)
	cb.OnEntry(types.DirEntry{
		Name:      bits.Normalize(hdr[types.N64OffFileName : types.N64OffFileName+16]),
		Type:      types.CbmFileType(hdr[types.N64OffFileType] & types.TypeMask).String(),
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
