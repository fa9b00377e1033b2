package cbmarc

import "io"

// streamSize reports the total length of the stream, consulting a
// Size method when the concrete type exposes one (as *bytes.Reader
// does) and falling back to a full read otherwise.
func streamSize(r io.ReaderAt) (int64, error) {
	if s, ok := r.(interface{ Size() int64 }); ok {
		return s.Size(), nil
	}
	return int64(len(readRestAt(r, 0))), nil
}

// readRestAt reads everything from start to EOF. It serves the
// formats whose directory isn't bounded by a fixed-size header (the
// textual Lynx and LBR, and the TAP pulse stream), where there's no
// way to know in advance how many bytes the parse will need; it is
// also streamSize's fallback.
func readRestAt(r io.ReaderAt, start int64) []byte {
	const chunk = 4096
	var buf []byte
	off := start
	for {
		tmp := make([]byte, chunk)
		n, err := r.ReadAt(tmp, off)
		buf = append(buf, tmp[:n]...)
		off += int64(n)
		if err != nil {
			break
		}
	}
	return buf
}
