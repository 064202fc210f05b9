package parser

import "encoding/binary"

// NumericCodec decodes little-endian integers from a byte slice at a
// given offset, bounds-checking every read against the slice length.
// FILETIMEs are 64-bit values carried unmodified; converting them to
// wall-clock time is left to the presentation layer (see the root
// package's FiletimeToTime).
type NumericCodec struct {
	buf []byte
}

// NewNumericCodec wraps buf for bounds-checked field reads.
func NewNumericCodec(buf []byte) *NumericCodec {
	return &NumericCodec{buf: buf}
}

func (c *NumericCodec) fits(offset, size int) bool {
	return offset >= 0 && size >= 0 && offset+size <= len(c.buf)
}

// U16 reads a little-endian uint16 at offset.
func (c *NumericCodec) U16(offset int) (uint16, error) {
	if !c.fits(offset, 2) {
		return 0, newError("NumericCodec.U16", ShortInput)
	}
	return binary.LittleEndian.Uint16(c.buf[offset : offset+2]), nil
}

// U32 reads a little-endian uint32 at offset.
func (c *NumericCodec) U32(offset int) (uint32, error) {
	if !c.fits(offset, 4) {
		return 0, newError("NumericCodec.U32", ShortInput)
	}
	return binary.LittleEndian.Uint32(c.buf[offset : offset+4]), nil
}

// U64 reads a little-endian uint64 at offset. Used both for genuine
// 64-bit fields and for FILETIME values, which are carried as raw u64.
func (c *NumericCodec) U64(offset int) (uint64, error) {
	if !c.fits(offset, 8) {
		return 0, newError("NumericCodec.U64", ShortInput)
	}
	return binary.LittleEndian.Uint64(c.buf[offset : offset+8]), nil
}

// Bytes returns a bounds-checked sub-slice [offset, offset+length).
func (c *NumericCodec) Bytes(offset, length int) ([]byte, error) {
	if !c.fits(offset, length) {
		return nil, newError("NumericCodec.Bytes", ShortInput)
	}
	return c.buf[offset : offset+length], nil
}

// Len returns the number of bytes backing this codec.
func (c *NumericCodec) Len() int {
	return len(c.buf)
}
