package parser

import (
	"bytes"
	"encoding/binary"
	"io"
	"unicode/utf16"
)

// bufBuilder assembles a byte-exact Prefetch fixture the same way the
// decoders read one: sequential fixed-width fields. Using the
// package's own size constants keeps fixtures in sync with the
// decoders under test instead of re-deriving magic numbers by hand.
type bufBuilder struct {
	buf bytes.Buffer
}

func newBuilder() *bufBuilder { return &bufBuilder{} }

func (b *bufBuilder) u8(v uint8) *bufBuilder {
	b.buf.WriteByte(v)
	return b
}

func (b *bufBuilder) u16(v uint16) *bufBuilder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *bufBuilder) u32(v uint32) *bufBuilder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *bufBuilder) u64(v uint64) *bufBuilder {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *bufBuilder) ascii(s string) *bufBuilder {
	b.buf.WriteString(s)
	return b
}

func (b *bufBuilder) zero(n int) *bufBuilder {
	b.buf.Write(make([]byte, n))
	return b
}

// utf16z writes s as UTF-16LE followed by a single NUL code unit, with
// no further padding.
func (b *bufBuilder) utf16z(s string) *bufBuilder {
	for _, u := range utf16.Encode([]rune(s)) {
		b.u16(u)
	}
	b.u16(0)
	return b
}

// fixedUTF16 writes s as UTF-16LE NUL-terminated and zero-pads the
// field out to totalBytes, matching the header's executable_filename
// layout.
func (b *bufBuilder) fixedUTF16(s string, totalBytes int) *bufBuilder {
	start := b.buf.Len()
	b.utf16z(s)
	written := b.buf.Len() - start
	if written < totalBytes {
		b.zero(totalBytes - written)
	}
	return b
}

func (b *bufBuilder) bytes() []byte { return b.buf.Bytes() }
func (b *bufBuilder) len() int      { return b.buf.Len() }

// appendHeader writes a complete headerSize-byte header.
func (b *bufBuilder) appendHeader(version, fileSize uint32, execName string, hash uint32) *bufBuilder {
	start := b.buf.Len()
	b.u32(version).
		ascii("SCCA").
		zero(4).
		u32(fileSize).
		fixedUTF16(execName, 60).
		u32(hash).
		zero(4)
	if b.buf.Len()-start != headerSize {
		panic("appendHeader: wrote wrong number of bytes")
	}
	return b
}

// appendFileInfoV17 writes a complete 156-byte v17 file-information
// block.
func (b *bufBuilder) appendFileInfoV17(metricsOff, metricsCount, traceOff, traceCount,
	fnOff, fnSize, volOff, volCount, volSize uint32, lastRun uint64, runCount uint32) *bufBuilder {
	start := b.buf.Len()
	b.u32(metricsOff).u32(metricsCount).
		u32(traceOff).u32(traceCount).
		u32(fnOff).u32(fnSize).
		u32(volOff).u32(volCount).u32(volSize).
		u64(lastRun).
		zero(8).
		u32(runCount).
		zero(100)
	if b.buf.Len()-start != fileInfoSizeV17 {
		panic("appendFileInfoV17: wrote wrong number of bytes")
	}
	return b
}

// appendFileInfoV23 writes a complete 224-byte v23/v26
// file-information block. lastRuns must have exactly 8 entries.
func (b *bufBuilder) appendFileInfoV23(metricsOff, metricsCount, traceOff, traceCount,
	fnOff, fnSize, volOff, volCount, volSize uint32, lastRuns [8]uint64, runCount uint32) *bufBuilder {
	start := b.buf.Len()
	b.u32(metricsOff).u32(metricsCount).
		u32(traceOff).u32(traceCount).
		u32(fnOff).u32(fnSize).
		u32(volOff).u32(volCount).u32(volSize)
	for _, t := range lastRuns {
		b.u64(t)
	}
	b.u32(runCount).zero(120)
	if b.buf.Len()-start != fileInfoSizeV23V26 {
		panic("appendFileInfoV23: wrote wrong number of bytes")
	}
	return b
}

// memReader is an in-memory ByteReader whose declared Size can be set
// independently of the backing slice's length, to exercise
// size_mismatch handling.
type memReader struct {
	data []byte
	size int64
}

func newMemReader(data []byte) *memReader {
	return &memReader{data: data, size: int64(len(data))}
}

func (m *memReader) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(m.data)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *memReader) Size() (int64, error) { return m.size, nil }
func (m *memReader) Close() error         { return nil }
