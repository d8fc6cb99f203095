package noise

// Segments is an ordered, scatter-gather view over a payload split
// across multiple byte slices. HandshakeState.WriteMessage accepts a
// Segments payload so callers need not coalesce buffers before calling
// into the handshake. ReadMessage and the Transport methods take a
// single contiguous []byte and do not accept Segments. A nil or empty
// Segments is a valid zero-length payload.
type Segments [][]byte

// BytesSegments is a convenience constructor for a single contiguous
// payload.
func BytesSegments(b []byte) Segments {
	if len(b) == 0 {
		return nil
	}
	return Segments{b}
}

// Len returns the total length across all segments.
func (s Segments) Len() int {
	n := 0
	for _, seg := range s {
		n += len(seg)
	}
	return n
}

// CopyTo copies up to len(dst) bytes from the segments into dst, in
// order, crossing segment boundaries as needed, and returns the number
// of bytes copied.
func (s Segments) CopyTo(dst []byte) int {
	n := 0
	for _, seg := range s {
		if n >= len(dst) {
			break
		}
		n += copy(dst[n:], seg)
	}
	return n
}

// Bytes coalesces the segments into buf[:Len()], growing or
// re-slicing buf as needed, and returns the resulting contiguous
// slice. It is used whenever an AEAD or hash call needs a contiguous
// input. A single segment is returned as is, without copying into buf.
func (s Segments) Bytes(buf []byte) []byte {
	if len(s) == 1 {
		return s[0]
	}
	total := s.Len()
	if cap(buf) < total {
		buf = make([]byte, total)
	}
	buf = buf[:total]
	s.CopyTo(buf)
	return buf
}

// Slice returns the sub-range [off, off+n) of the logical concatenation
// of the segments, as a new Segments value that shares the underlying
// arrays (no copying).
func (s Segments) Slice(off, n int) Segments {
	if n == 0 {
		return nil
	}
	var out Segments
	end := off + n
	pos := 0
	for _, seg := range s {
		segStart, segEnd := pos, pos+len(seg)
		pos = segEnd
		if segEnd <= off || segStart >= end {
			continue
		}
		lo := off - segStart
		if lo < 0 {
			lo = 0
		}
		hi := len(seg)
		if segEnd > end {
			hi = end - segStart
		}
		out = append(out, seg[lo:hi])
	}
	return out
}
