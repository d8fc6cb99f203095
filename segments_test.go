package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments_Len(t *testing.T) {
	assert.Equal(t, 0, Segments(nil).Len())
	assert.Equal(t, 0, Segments{}.Len())
	assert.Equal(t, 5, Segments{[]byte("ab"), []byte("cde")}.Len())
}

func TestBytesSegments_Empty(t *testing.T) {
	assert.Nil(t, BytesSegments(nil))
	assert.Nil(t, BytesSegments([]byte{}))
}

func TestSegments_Bytes_SingleSegmentNoCopy(t *testing.T) {
	b := []byte("hello")
	s := Segments{b}
	out := s.Bytes(nil)
	assert.Equal(t, b, out)
}

func TestSegments_Bytes_Coalesces(t *testing.T) {
	s := Segments{[]byte("hel"), []byte("lo"), []byte(", world")}
	out := s.Bytes(nil)
	assert.Equal(t, []byte("hello, world"), out)
}

func TestSegments_CopyTo(t *testing.T) {
	s := Segments{[]byte("abc"), []byte("def")}
	dst := make([]byte, 4)
	n := s.CopyTo(dst)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("abcd"), dst)
}

func TestSegments_Slice_CrossesBoundary(t *testing.T) {
	s := Segments{[]byte("abc"), []byte("def"), []byte("ghi")}
	got := s.Slice(2, 4)
	assert.Equal(t, []byte("cdef"), got.Bytes(nil))
}

func TestSegments_Slice_WithinOneSegment(t *testing.T) {
	s := Segments{[]byte("abcdef")}
	got := s.Slice(1, 3)
	assert.Equal(t, []byte("bcd"), got.Bytes(nil))
}

func TestSegments_Slice_Empty(t *testing.T) {
	s := Segments{[]byte("abc")}
	assert.Nil(t, s.Slice(1, 0))
}
