package cbmarc

import (
	"io"

	"github.com/dfandrich/cbmarc/internal/bits"
	"github.com/dfandrich/cbmarc/types"
)

func dirLynx(r io.ReaderAt, kind types.ContainerKind, cfg Config, cb Callbacks) (types.Totals, Status) {
	buf := readRestAt(r, 0)
	s := bits.NewScanner(buf)

	var totals types.Totals
	var expectLastLength bool

	switch kind {
	case types.LynxOld:
		s.Seek(0)
		s.Token() // discard leading token
		if !s.Literal("LYNX") {
			return types.Totals{}, StatusError
		}
		ver := s.Token()
		s.SkipToCR()
		totals.Version = bits.Roman(ver)
		expectLastLength = totals.Version >= 10

	case types.LynxNew:
		if s.Len() <= types.LynxNewHeaderOffset {
			return types.Totals{}, StatusError
		}
		s.Seek(types.LynxNewHeaderOffset)
		s.Token() // discard leading token
		if !s.Literal("*") {
			return types.Totals{}, StatusError
		}
		s.Token() // disk name, unused
		ver := s.Token()
		s.SkipToCR()
		if len(ver) > 0 && isUpperLetter(ver[0]) {
			totals.Version = bits.Roman(ver)
		} else {
			totals.Version = atoiSimple(ver)
		}
		expectLastLength = totals.Version >= 10

	default:
		return types.Totals{}, StatusError
	}

	numFiles, ok := s.Int()
	if !ok {
		return types.Totals{}, StatusError
	}
	s.SkipToCR()

	cb.OnContainerStart(kind, "", false)

	for n := numFiles; n > 0; n-- {
		name := s.UntilCR(16)
		s.SkipToCR()
		blocks, ok := s.Int()
		if !ok {
			break
		}
		s.SkipToCR()
		s.SkipSpace()
		typeCode, ok := s.Byte()
		if !ok {
			break
		}
		s.SkipToCR()

		var length int64
		if n > 1 || expectLastLength {
			lastBlockSize, _ := s.Int()
			s.SkipToCR()
			length = int64(blocks-1)*254 + int64(lastBlockSize) - 1
		} else {
			consumed := int64(totals.TotalBlocksNow) * 254
			tail := ((int64(s.Pos())-1)/254 + 1) * 254
			length = int64(len(buf)) - consumed - tail
		}

		cb.OnEntry(types.DirEntry{
			Name:      bits.Normalize(name),
			Type:      types.FileTypeLetter(typeCode),
			Length:    length,
			Blocks:    uint(blocks),
			Method:    "Stored",
			BlocksNow: uint(blocks),
			Checksum:  -1,
		})

		totals.Entries++
		totals.TotalLength += length
		totals.TotalBlocks += int(types.Blocks254(length))
		totals.TotalBlocksNow += blocks
	}

	return totals, StatusOK
}

func isUpperLetter(b byte) bool { return b >= 'A' && b <= 'Z' }

func atoiSimple(s string) int {
	v := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int(c-'0')
	}
	return v
}
