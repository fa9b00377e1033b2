package cbmarc

import (
	"io"
	"log"

	"github.com/dfandrich/cbmarc/internal/bits"
	"github.com/dfandrich/cbmarc/types"
)

// locate1541 and locate1581 adapt the types-package sector-offset
// tables into byte offsets, the form dirDiskImage actually reads with.
func locate1541(track, sector int) (int64, bool) {
	block, ok := types.Location1541(track, sector)
	if !ok {
		return 0, false
	}
	return int64(block) * 256, true
}

func locate1581(track, sector int) (int64, bool) {
	block, ok := types.Location1581(track, sector)
	if !ok {
		return 0, false
	}
	return int64(block) * 256, true
}

func locate(geom types.DiskGeometry, track, sector int) (int64, bool) {
	if geom == types.Geometry1581 {
		return locate1581(track, sector)
	}
	return locate1541(track, sector)
}

func isValid1541Header(h []byte) bool {
	format := h[types.Raw1541OffFormat]
	flag := h[types.Raw1541OffFlag]
	return format == 'A' && (flag == 0 || flag == '*') &&
		h[types.Raw1541OffFiller2+3] == bits.EndOfName
}

func isValid1581Header(h []byte) bool {
	format := h[types.Raw1581OffFormat]
	flag := h[types.Raw1581OffFlag]
	return format == 'D' && flag == 0 &&
		h[types.Raw1581OffFiller2] == bits.EndOfName
}

// countCBMBytes follows a file's track/sector chain, counting whole
// blocks read until the chain terminates (next track 0) or the chain
// grows implausibly long (loop detection, since 1541-family disks
// never legitimately hold more than a few hundred blocks in one file).
func countCBMBytes(r io.ReaderAt, geom types.DiskGeometry, headerOffset int64, firstTrack, firstSector byte) (int64, bool) {
	const maxBlocks = types.Blocks8250 // generous upper bound across all supported geometries

	track, sector := firstTrack, firstSector
	blockCount := 0
	for {
		off, ok := locate(geom, int(track), int(sector))
		if !ok {
			return 0, false
		}
		block, ok := readAt(r, headerOffset+off, 2)
		if !ok {
			return 0, false
		}
		blockCount++
		if blockCount > maxBlocks {
			log.Print(&types.FormatError{
				Offset:  headerOffset + off,
				Message: "track/sector chain exceeds plausible disk size, probably a loop",
				Context: [2]byte{track, sector},
			})
			return 0, false
		}
		nextTrack, nextSector := block[0], block[1]
		if nextTrack == 0 {
			return int64(blockCount-1)*254 + int64(nextSector) - 1, true
		}
		track, sector = nextTrack, nextSector
	}
}

func dirDiskImage(r io.ReaderAt, kind types.ContainerKind, cfg Config, cb Callbacks) (types.Totals, Status) {
	var totals types.Totals
	var headerOffset int64
	geom := types.GeometryUnknown

	switch kind {
	case types.D64:
		headerOffset = 0

	case types.C1581:
		headerOffset = 0
		geom = types.Geometry1581

	case types.X64:
		headerOffset = types.X64HeaderSize
		hdr, ok := readAt(r, 0, types.X64HeaderSize)
		if !ok {
			return types.Totals{}, StatusError
		}
		var supported bool
		geom, supported = types.X64DiskType(hdr[types.X64OffDeviceType])
		if !supported {
			return types.Totals{}, StatusUnsupported
		}
		major := int(hdr[types.X64OffMajorVer])
		minor := int(hdr[types.X64OffMinorVer])
		if minor >= 10 {
			totals.Version = -(major*10 + minor/10)
		} else {
			totals.Version = -(major*10 + minor)
		}

	default:
		return types.Totals{}, StatusError
	}

	var firstTrack, firstSector byte
	switch geom {
	case types.Geometry1581:
		hdr, ok := readAt(r, headerOffset+mustOffset(locate1581(types.DirTrack1581, types.DirSector1581)), types.Raw1581DirHeaderSize)
		if !ok {
			return types.Totals{}, StatusError
		}
		if kind != types.C1581 && !isValid1581Header(hdr) {
			return types.Totals{}, StatusUnsupported
		}
		firstTrack = hdr[types.Raw1581OffFirstTrack]
		firstSector = hdr[types.Raw1581OffFirstSector]

	default: // GeometryUnknown (plain D64) or an explicit 1541-family X64 type
		hdr, ok := readAt(r, headerOffset+mustOffset(locate1541(types.DirTrack1541, types.DirSector1541)), types.Raw1541DirHeaderSize)
		if !ok {
			return types.Totals{}, StatusError
		}
		if isValid1541Header(hdr) {
			geom = types.Geometry1541
			if size, err := streamSize(r); err == nil {
				// Track 18's directory header sits at the same place
				// on every 1541-family layout (plain, extended, or
				// the first side of a 1571). The guessed geometry is
				// not reported to the caller; locate only tells the
				// 1581 layout apart from the 1541 table, so every
				// other guess is walked with the 1541 table.
				if g := types.GuessGeometry(size); g != types.GeometryUnknown {
					geom = g
				}
			}
			firstTrack = hdr[types.Raw1541OffFirstTrack]
			firstSector = hdr[types.Raw1541OffFirstSector]
		} else if kind == types.D64 {
			// Fall back and try the 1581 header location before giving up.
			hdr1581, ok := readAt(r, headerOffset+mustOffset(locate1581(types.DirTrack1581, types.DirSector1581)), types.Raw1581DirHeaderSize)
			if !ok || !isValid1581Header(hdr1581) {
				return types.Totals{}, StatusUnsupported
			}
			geom = types.Geometry1581
			firstTrack = hdr1581[types.Raw1581OffFirstTrack]
			firstSector = hdr1581[types.Raw1581OffFirstSector]
		} else {
			return types.Totals{}, StatusUnsupported
		}
	}

	cb.OnContainerStart(kind, "", false)

	track, sector := firstTrack, firstSector
	for track > 0 {
		off, ok := locate(geom, int(track), int(sector))
		if !ok {
			return totals, StatusError
		}
		block, ok := readAt(r, headerOffset+off, 2+types.D64DirEntriesPerBlock*types.D64DirEntrySize)
		if !ok {
			return totals, StatusError
		}

		for i := 0; i < types.D64DirEntriesPerBlock; i++ {
			e := block[2+i*types.D64DirEntrySize : 2+(i+1)*types.D64DirEntrySize]
			fileType := e[types.D64EntryOffFileType]
			if fileType&types.Closed == 0 {
				continue
			}

			name := bits.TrimAtEndOfName(e[types.D64EntryOffFileName : types.D64EntryOffFileName+16])
			fileBlocks := bits.Uint16(e[types.D64EntryOffFileBlocks:])

			var length int64
			if types.CbmFileType(fileType&types.TypeMask) == types.Cbm {
				length = 256 * int64(fileBlocks)
			} else if cfg.Wide {
				l, ok := countCBMBytes(r, geom, headerOffset, e[types.D64EntryOffFirstTrack], e[types.D64EntryOffFirstSector])
				if ok {
					length = l
				}
			}

			cb.OnEntry(types.DirEntry{
				Name:      bits.Normalize(name),
				Type:      types.CbmFileType(fileType & types.TypeMask).String(),
				Length:    length,
				Blocks:    uint(fileBlocks),
				Method:    "Stored",
				BlocksNow: uint(fileBlocks),
				Checksum:  -1,
			})

			totals.Entries++
			totals.TotalLength += length
			totals.TotalBlocks += int(fileBlocks)
		}

		track, sector = block[0], block[1]
	}
	totals.TotalBlocksNow = totals.TotalBlocks

	return totals, StatusOK
}

func mustOffset(off int64, ok bool) int64 {
	if !ok {
		return 0
	}
	return off
}
