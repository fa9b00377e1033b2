package types

// DiskGeometry identifies which physical disk layout a D64-family image
// follows. The container kind alone doesn't tell you this: a D64 image
// file can hold a standard 1541 disk, an extended 42-track 1541 disk,
// a 1571 double-sided disk, or an 8250 image, distinguished only by
// file size.
type DiskGeometry int

const (
	Geometry1541 DiskGeometry = iota
	Geometry1541Ext
	Geometry1571
	Geometry8250
	Geometry1581
	GeometryUnknown
)

// trackSectors1541 gives the sector count of 1541 tracks 1..42 (index
// 0 unused). Tracks 36-40 are the common "extended" expansion; 41-42
// are rarer still but some imaging tools produce them.
var trackSectors1541 = [43]int{
	0,
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, // 1-17
	19, 19, 19, 19, 19, 19, 19, // 18-24
	18, 18, 18, 18, 18, 18, // 25-30
	17, 17, 17, 17, 17, // 31-35
	17, 17, 17, 17, 17, // 36-40 (extended, nonstandard)
	17, 17, // 41-42 (extended, nonstandard)
}

// trackOffset1541[t] is the cumulative sector count of all tracks
// before t, i.e. the block number of sector 0 of track t.
var trackOffset1541 [44]int

func init() {
	total := 0
	for t := 1; t <= 42; t++ {
		trackOffset1541[t] = total
		total += trackSectors1541[t]
	}
	trackOffset1541[43] = total
}

// Location1541 returns the absolute block number of (track, sector) on
// a 1541-family disk (tracks 1-42), and false if the coordinates are
// out of range. A 1571 image is addressed on its first side only.
func Location1541(track, sector int) (int, bool) {
	if track < 1 || track > 42 || sector < 0 || sector >= trackSectors1541[track] {
		return 0, false
	}
	return trackOffset1541[track] + sector, true
}

// Location1581 returns the absolute block number of (track, sector) on
// a 1581 disk: 80 tracks of 40 sectors each, linearly numbered.
func Location1581(track, sector int) (int, bool) {
	if track < 1 || track > 80 || sector < 0 || sector >= 40 {
		return 0, false
	}
	return (track-1)*40 + sector, true
}

// Block counts of each recognized geometry's data area, used to guess
// the geometry from raw file size before any header is parsed.
const (
	Blocks1541    = 683  // 35 tracks
	Blocks1541Ext = 802  // 42 tracks
	Blocks1571    = 1366 // two 35-track sides
	Blocks1581    = 3200 // 80 tracks * 40 sectors
	Blocks8250    = 4166 // CBM 8250 dual-sided 77-track image
)

// GuessGeometry maps a raw (non-X64, headerless) image byte size to
// the geometry it matches, or GeometryUnknown if none fits. Some D64
// dumps append a per-block error-info tail (one extra byte per block);
// sizes both with and without it are tried.
func GuessGeometry(size int64) DiskGeometry {
	check := func(blocks int) bool {
		b := int64(blocks) * 256
		return size == b || size == b+int64(blocks)
	}
	switch {
	case check(Blocks1541):
		return Geometry1541
	case check(Blocks1541Ext):
		return Geometry1541Ext
	case check(Blocks1571):
		return Geometry1571
	case check(Blocks1581):
		return Geometry1581
	case check(Blocks8250):
		return Geometry8250
	default:
		return GeometryUnknown
	}
}
