package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildVolumeBlockV17 assembles a single-volume v17 volume block:
// the 104-byte record, followed by its device path, file references,
// and directory strings, laid out back to back. numberOfDirStrings
// lets callers construct a count mismatch deliberately.
func buildVolumeBlockV17(devicePath string, fileRefs []uint64, dirStrings []string, numberOfDirStrings uint32) []byte {
	devicePathUnits := len([]rune(devicePath)) + 1 // + NUL terminator
	devicePathOffset := uint32(volumeRecordSizeV17)
	devicePathBytes := uint32(devicePathUnits * 2)

	fileRefOffset := devicePathOffset + devicePathBytes
	fileRefHeaderLen := uint32(16)
	fileRefPayload := uint32(len(fileRefs)) * 8
	fileRefSize := fileRefHeaderLen + fileRefPayload

	dirStringsOffset := fileRefOffset + fileRefSize

	b := newBuilder()
	b.u32(devicePathOffset).u32(uint32(devicePathUnits)).
		u64(132539328000000000).
		u32(0xCAFEBABE).
		u32(fileRefOffset).u32(fileRefSize).
		u32(dirStringsOffset).u32(numberOfDirStrings).
		zero(volumeRecordSizeV17 - 36)

	b.utf16z(devicePath)

	b.u32(1). // version, unused
		u32(uint32(len(fileRefs))+1).
		zero(8)
	for _, ref := range fileRefs {
		b.u64(ref)
	}

	for _, s := range dirStrings {
		b.utf16z(s)
	}

	return b.bytes()
}

func TestVolumeBlockDecoderV17(t *testing.T) {
	block := buildVolumeBlockV17(
		`\Device\HarddiskVolume1`,
		[]uint64{0x0001000000000005, 0x0002000000000007},
		[]string{"Documents", "Projects"},
		2,
	)
	const sectionOffset = 100
	ctx := NewParserContext(GetDefaultOptions())
	r := newMemReader(append(make([]byte, sectionOffset), block...))

	volumes, warnings, err := VolumeBlockDecoder(r, ctx, sectionOffset, uint32(len(block)), 1, 17)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, volumes, 1)
	v := volumes[0]
	assert.Equal(t, `\Device\HarddiskVolume1`, v.DevicePath)
	assert.EqualValues(t, 0xCAFEBABE, v.SerialNumber)
	require.Len(t, v.FileReferences, 2)
	assert.EqualValues(t, 5, v.FileReferences[0].MFTEntry())
	assert.EqualValues(t, 1, v.FileReferences[0].Sequence())
	require.Len(t, v.DirectoryStrings, 2)
	assert.Equal(t, "Documents", v.DirectoryStrings[0])
	assert.Equal(t, "Projects", v.DirectoryStrings[1])
}

func TestVolumeBlockDecoderDirectoryStringCountMismatch(t *testing.T) {
	block := buildVolumeBlockV17(
		`\Device\HarddiskVolume2`,
		nil,
		[]string{"Documents", "Projects"},
		3, // declares 3, but only 2 are actually present
	)
	const sectionOffset = 100
	ctx := NewParserContext(GetDefaultOptions())
	r := newMemReader(append(make([]byte, sectionOffset), block...))

	volumes, warnings, err := VolumeBlockDecoder(r, ctx, sectionOffset, uint32(len(block)), 1, 17)
	require.NoError(t, err)
	require.Len(t, volumes, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, InconsistentCounts, warnings[0].Kind)
}

func TestVolumeBlockDecoderStrictCountsOnlyWarns(t *testing.T) {
	block := buildVolumeBlockV17(`\Device\HarddiskVolume3`, nil, []string{"Documents"}, 5)
	const sectionOffset = 100
	ctx := NewParserContext(Options{StrictCounts: true})
	r := newMemReader(append(make([]byte, sectionOffset), block...))

	// VolumeBlockDecoder itself only records the warning; StrictCounts
	// is enforced by the orchestrator in Parse, so this call still
	// succeeds with a warning attached.
	_, warnings, err := VolumeBlockDecoder(r, ctx, sectionOffset, uint32(len(block)), 1, 17)
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
}

func TestVolumeBlockDecoderEmpty(t *testing.T) {
	ctx := NewParserContext(GetDefaultOptions())
	r := newMemReader(nil)

	volumes, warnings, err := VolumeBlockDecoder(r, ctx, 0, 0, 0, 17)
	require.NoError(t, err)
	assert.Nil(t, volumes)
	assert.Nil(t, warnings)
}

func TestVolumeBlockDecoderNumberOfVolumesExceedsBlock(t *testing.T) {
	// A single well-formed record, but number_of_volumes claims far
	// more than the block could possibly hold; this must be rejected
	// before it reaches the make([]Volume, 0, numberOfVolumes) capacity
	// hint, not after.
	block := buildVolumeBlockV17(`\Device\HarddiskVolume1`, nil, nil, 0)
	const sectionOffset = 100
	ctx := NewParserContext(GetDefaultOptions())
	r := newMemReader(append(make([]byte, sectionOffset), block...))

	_, _, err := VolumeBlockDecoder(r, ctx, sectionOffset, uint32(len(block)), 0xFFFFFFFF, 17)
	kind, ok := KindOf(err)
	require.True(t, ok, "got err=%v, want a ParseError", err)
	assert.Equal(t, OffsetOutOfBounds, kind)
}
