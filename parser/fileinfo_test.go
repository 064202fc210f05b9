package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileInfoDecoderV17(t *testing.T) {
	buf := newBuilder().zero(headerSize).appendFileInfoV17(
		500, 2, // metrics
		600, 1, // trace chain
		700, 16, // filename strings
		0, 0, 0, // no volumes
		132539328000000000, 5,
	).bytes()
	// Declare a file size large enough to cover every section the
	// block points at; the buffer itself holds only the header and the
	// block.
	fileSize := uint32(headerSize) + uint32(len(buf)) + 700
	r := newMemReader(buf)
	ctx := NewParserContext(GetDefaultOptions())

	fi, err := FileInfoDecoder(r, ctx, 17, fileSize)
	require.NoError(t, err)
	assert.EqualValues(t, 500, fi.MetricsArrayOffset)
	assert.EqualValues(t, 2, fi.NumberOfMetricsEntries)
	assert.EqualValues(t, 600, fi.TraceChainArrayOffset)
	assert.EqualValues(t, 1, fi.NumberOfTraceChainEntries)
	require.Len(t, fi.LastRunTimes, 1)
	assert.EqualValues(t, 132539328000000000, fi.LastRunTimes[0])
	assert.EqualValues(t, 5, fi.RunCount)
	assert.Len(t, fi.Unknown, fileInfoSizeV17-(fileInfoCommonFields+8+8+4))
}

func TestFileInfoDecoderV23EightLastRunTimes(t *testing.T) {
	var times [8]uint64
	for i := range times {
		times[i] = uint64(1000 + i)
	}
	buf := newBuilder().zero(headerSize).appendFileInfoV23(
		0, 0, 0, 0, 0, 0, 0, 0, 0, times, 3,
	).bytes()
	r := newMemReader(buf)
	ctx := NewParserContext(GetDefaultOptions())

	fi, err := FileInfoDecoder(r, ctx, 23, uint32(headerSize)+uint32(len(buf)))
	require.NoError(t, err)
	require.Len(t, fi.LastRunTimes, 8)
	for i, want := range times {
		assert.EqualValues(t, want, fi.LastRunTimes[i], "LastRunTimes[%d]", i)
	}
}

func TestFileInfoDecoderOffsetOutOfBounds(t *testing.T) {
	// metrics_array_offset points before headerSize: invalid.
	buf := newBuilder().zero(headerSize).appendFileInfoV17(
		10, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	).bytes()
	r := newMemReader(buf)
	ctx := NewParserContext(GetDefaultOptions())

	_, err := FileInfoDecoder(r, ctx, 17, uint32(headerSize)+uint32(len(buf)))
	kind, ok := KindOf(err)
	require.True(t, ok, "got err=%v, want a ParseError", err)
	assert.Equal(t, OffsetOutOfBounds, kind)
}

func TestFileInfoDecoderSectionExceedsFileSize(t *testing.T) {
	buf := newBuilder().zero(headerSize).appendFileInfoV17(
		uint32(headerSize)+uint32(fileInfoSizeV17), 1000000, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	).bytes()
	r := newMemReader(buf)
	ctx := NewParserContext(GetDefaultOptions())

	_, err := FileInfoDecoder(r, ctx, 17, uint32(headerSize)+uint32(len(buf)))
	kind, ok := KindOf(err)
	require.True(t, ok, "got err=%v, want a ParseError", err)
	assert.Equal(t, OffsetOutOfBounds, kind)
}

func TestFileInfoDecoderMetricsCountOverflowRejected(t *testing.T) {
	// number_of_metrics_entries * entry_size (32 for v23) wraps back to
	// 0 mod 2^32, which must not let an otherwise tiny file declare a
	// metrics array that actually spans gigabytes.
	const hugeCount = 0x08000000
	var lastRuns [8]uint64
	buf := newBuilder().zero(headerSize).appendFileInfoV23(
		headerSize, hugeCount,
		0, 0,
		0, 0,
		0, 0, 0,
		lastRuns, 0,
	).bytes()
	r := newMemReader(buf)
	ctx := NewParserContext(GetDefaultOptions())

	_, err := FileInfoDecoder(r, ctx, 23, uint32(headerSize)+uint32(len(buf)))
	kind, ok := KindOf(err)
	require.True(t, ok, "got err=%v, want a ParseError", err)
	assert.Equal(t, OffsetOutOfBounds, kind)
}
