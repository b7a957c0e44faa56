package vst3

// Seek modes for Stream.Seek.
const (
	SeekSet int32 = 0
	SeekCur int32 = 1
	SeekEnd int32 = 2
)

// Stream is the byte-stream object plugins read and write their opaque
// state through.
type Stream interface {
	Read(buffer []byte) (int32, Result)
	Write(buffer []byte) (int32, Result)
	Seek(pos int64, mode int32) (int64, Result)
	Tell() (int64, Result)
}

// MemoryStream is a growable in-memory Stream, the host-side backing for
// state capture and restore.
type MemoryStream struct {
	buffer   []byte
	position int64
}

// NewMemoryStream returns an empty stream positioned at zero.
func NewMemoryStream() *MemoryStream {
	return &MemoryStream{}
}

// NewMemoryStreamFrom returns a stream over a copy of data, positioned at
// zero. The copy keeps the plugin from aliasing caller-owned memory.
func NewMemoryStreamFrom(data []byte) *MemoryStream {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &MemoryStream{buffer: buf}
}

// Read copies up to len(buffer) bytes from the current position.
func (s *MemoryStream) Read(buffer []byte) (int32, Result) {
	if s.position >= int64(len(s.buffer)) {
		return 0, ResultOK
	}
	n := copy(buffer, s.buffer[s.position:])
	s.position += int64(n)
	return int32(n), ResultOK
}

// Write appends or overwrites at the current position, growing the buffer
// as needed.
func (s *MemoryStream) Write(buffer []byte) (int32, Result) {
	end := s.position + int64(len(buffer))
	if end > int64(len(s.buffer)) {
		grown := make([]byte, end)
		copy(grown, s.buffer)
		s.buffer = grown
	}
	copy(s.buffer[s.position:], buffer)
	s.position = end
	return int32(len(buffer)), ResultOK
}

// Seek repositions the stream. Positions before zero clamp to zero.
func (s *MemoryStream) Seek(pos int64, mode int32) (int64, Result) {
	var next int64
	switch mode {
	case SeekSet:
		next = pos
	case SeekCur:
		next = s.position + pos
	case SeekEnd:
		next = int64(len(s.buffer)) + pos
	default:
		return s.position, InvalidArgument
	}
	if next < 0 {
		next = 0
	}
	s.position = next
	return s.position, ResultOK
}

// Tell reports the current position.
func (s *MemoryStream) Tell() (int64, Result) {
	return s.position, ResultOK
}

// Bytes returns the stream's backing buffer without copying.
func (s *MemoryStream) Bytes() []byte {
	return s.buffer
}

// Size returns the number of bytes written so far.
func (s *MemoryStream) Size() int {
	return len(s.buffer)
}
