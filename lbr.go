package cbmarc

import (
	"io"

	"github.com/dfandrich/cbmarc/internal/bits"
	"github.com/dfandrich/cbmarc/types"
)

func dirLBR(r io.ReaderAt, kind types.ContainerKind, cfg Config, cb Callbacks) (types.Totals, Status) {
	buf := readRestAt(r, 0)
	if len(buf) < types.LBRCountOffset {
		return types.Totals{}, StatusError
	}
	s := bits.NewScanner(buf)
	s.Seek(types.LBRCountOffset)

	numFiles, ok := s.Int()
	if !ok {
		return types.Totals{}, StatusError
	}
	s.SkipToCR()

	var totals types.Totals
	cb.OnContainerStart(kind, "", false)

	for ; numFiles > 0; numFiles-- {
		name := s.UntilCR(16)
		s.SkipToCR()
		s.SkipSpace()
		typeCode, ok := s.Byte()
		if !ok {
			break
		}
		s.SkipToCR()
		length, ok := s.Int()
		if !ok {
			break
		}
		s.SkipToCR()

		blocks := types.Blocks254(int64(length))

		cb.OnEntry(types.DirEntry{
			Name:      bits.Normalize(name),
			Type:      types.FileTypeLetter(typeCode),
			Length:    int64(length),
			Blocks:    blocks,
			Method:    "Stored",
			BlocksNow: blocks,
			Checksum:  -1,
		})

		totals.Entries++
		totals.TotalLength += int64(length)
		totals.TotalBlocks += int(blocks)
	}
	totals.TotalBlocksNow = totals.TotalBlocks

	return totals, StatusOK
}
