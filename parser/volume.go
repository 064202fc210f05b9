package parser

const (
	volumeRecordSizeV17    = 104
	volumeRecordSizeV23V26 = 96

	// Field offsets within a volume record; identical across versions
	// (spec §4.7 table).
	volDevicePathOffset       = 0
	volDevicePathCharCount    = 4
	volCreationTime           = 8
	volSerialNumber           = 16
	volFileReferencesOffset   = 20
	volFileReferencesSize     = 24
	volDirectoryStringsOffset = 28
	volNumberOfDirStrings     = 32
)

// VolumeBlockDecoder reads the full volumes_information_size bytes at
// volumes_information_offset and decodes numberOfVolumes per-volume
// records from it (spec §4.7). Every pointer inside the block —
// device path, file references, directory strings — is relative to
// the start of that buffer, not to the file, and is modeled as such
// rather than translated to absolute file offsets, matching the
// source's own self-relative addressing.
func VolumeBlockDecoder(r ByteReader, ctx *ParserContext, offset uint32, size uint32, numberOfVolumes uint32, version uint32) ([]Volume, []Warning, error) {
	const op = "VolumeBlockDecoder"

	if err := ctx.CheckAbort(op); err != nil {
		return nil, nil, err
	}
	if numberOfVolumes == 0 || offset == 0 {
		return nil, nil, nil
	}

	block, err := section(r, op, int64(offset), int(size))
	if err != nil {
		return nil, nil, err
	}

	recordSize := volumeRecordSizeV17
	if version == 23 || version == 26 {
		recordSize = volumeRecordSizeV23V26
	}

	// number_of_volumes is attacker-controlled and unrelated to size
	// (FileInfoDecoder only bounds-checks size). Reject it before using
	// it as a make() capacity hint, rather than letting the per-record
	// cursor check below catch it one allocation too late.
	maxRecords := uint32(len(block) / recordSize)
	if numberOfVolumes > maxRecords {
		return nil, nil, newError(op, OffsetOutOfBounds)
	}

	var warnings []Warning
	volumes := make([]Volume, 0, numberOfVolumes)
	cursor := 0
	for i := uint32(0); i < numberOfVolumes; i++ {
		if err := ctx.CheckAbort(op); err != nil {
			return nil, nil, err
		}

		if cursor+recordSize > len(block) {
			return nil, nil, newError(op, OffsetOutOfBounds)
		}
		record := block[cursor : cursor+recordSize]
		cursor += recordSize

		vol, volWarnings, err := decodeVolumeRecord(op, block, record)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, volWarnings...)
		volumes = append(volumes, vol)
	}

	return volumes, warnings, nil
}

func decodeVolumeRecord(op string, block, record []byte) (Volume, []Warning, error) {
	c := NewNumericCodec(record)

	devicePathOffset, err := c.U32(volDevicePathOffset)
	if err != nil {
		return Volume{}, nil, wrapError(op, ShortInput, err)
	}
	devicePathCharCount, err := c.U32(volDevicePathCharCount)
	if err != nil {
		return Volume{}, nil, wrapError(op, ShortInput, err)
	}
	creationTime, err := c.U64(volCreationTime)
	if err != nil {
		return Volume{}, nil, wrapError(op, ShortInput, err)
	}
	serialNumber, err := c.U32(volSerialNumber)
	if err != nil {
		return Volume{}, nil, wrapError(op, ShortInput, err)
	}
	fileRefOffset, err := c.U32(volFileReferencesOffset)
	if err != nil {
		return Volume{}, nil, wrapError(op, ShortInput, err)
	}
	fileRefSize, err := c.U32(volFileReferencesSize)
	if err != nil {
		return Volume{}, nil, wrapError(op, ShortInput, err)
	}
	dirStringsOffset, err := c.U32(volDirectoryStringsOffset)
	if err != nil {
		return Volume{}, nil, wrapError(op, ShortInput, err)
	}
	numDirStrings, err := c.U32(volNumberOfDirStrings)
	if err != nil {
		return Volume{}, nil, wrapError(op, ShortInput, err)
	}

	vol := Volume{
		CreationTime: creationTime,
		SerialNumber: serialNumber,
	}

	var warnings []Warning

	if devicePathOffset != 0 && devicePathCharCount != 0 {
		devicePath, err := readVolumeString(op, block, devicePathOffset, devicePathCharCount)
		if err != nil {
			return Volume{}, nil, err
		}
		vol.DevicePath = devicePath
	}

	if fileRefOffset != 0 {
		refs, err := decodeFileReferences(op, block, fileRefOffset, fileRefSize)
		if err != nil {
			return Volume{}, nil, err
		}
		vol.FileReferences = refs
	}

	if dirStringsOffset != 0 {
		dirStrings, mismatch, err := decodeDirectoryStrings(op, block, dirStringsOffset, numDirStrings)
		if err != nil {
			return Volume{}, nil, err
		}
		vol.DirectoryStrings = dirStrings
		if mismatch {
			warnings = append(warnings, Warning{
				Kind:    InconsistentCounts,
				Op:      op + ".directory_strings",
				Message: "number_of_directory_strings disagreed with the parsed string table",
			})
		}
	}

	return vol, warnings, nil
}

// readVolumeString reads charCount UTF-16LE code units at offset
// (relative to the volume block) and decodes them, bounds-checking
// the region against the block.
func readVolumeString(op string, block []byte, offset, charCount uint32) (string, error) {
	byteLen := int(charCount) * 2
	end := int64(offset) + int64(byteLen)
	if offset < 0 || end > int64(len(block)) {
		return "", newError(op+".device_path", OffsetOutOfBounds)
	}
	entries, err := StringTable(block[offset : int(offset)+byteLen])
	if err != nil {
		return "", wrapError(op+".device_path", MalformedStringTable, err)
	}
	if len(entries) == 0 {
		return "", nil
	}
	return entries[0].Text, nil
}

// decodeFileReferences decodes the file-reference list at offset
// (relative to the volume block): an 8-byte header (version,
// number_of_file_references) followed by 8 ignored bytes, then
// (number_of_file_references - 1) 64-bit references (spec §4.7).
func decodeFileReferences(op string, block []byte, offset, size uint32) ([]FileReference, error) {
	const headerLen = 16 // 4 (version) + 4 (count) + 8 (ignored)

	if int64(offset)+8 > int64(len(block)) {
		return nil, newError(op+".file_references", OffsetOutOfBounds)
	}
	c := NewNumericCodec(block)

	numRefs, err := c.U32(int(offset) + 4)
	if err != nil {
		return nil, wrapError(op+".file_references", ShortInput, err)
	}
	if numRefs == 0 {
		return nil, nil
	}

	payloadCount := numRefs - 1
	end := int64(offset) + int64(headerLen) + int64(payloadCount)*8
	if end > int64(len(block)) {
		return nil, newError(op+".file_references", OffsetOutOfBounds)
	}

	refs := make([]FileReference, 0, payloadCount)
	for i := uint32(0); i < payloadCount; i++ {
		v, err := c.U64(int(offset) + headerLen + int(i)*8)
		if err != nil {
			return nil, wrapError(op+".file_references", ShortInput, err)
		}
		refs = append(refs, FileReference(v))
	}

	return refs, nil
}

// decodeDirectoryStrings parses the directory string array, which
// extends from offset (relative to the volume block) to the end of
// the block. A count mismatch against numberOfDirectoryStrings is
// reported but not fatal (spec §4.7).
func decodeDirectoryStrings(op string, block []byte, offset, numberOfDirectoryStrings uint32) ([]string, bool, error) {
	if int64(offset) > int64(len(block)) {
		return nil, false, newError(op+".directory_strings", OffsetOutOfBounds)
	}

	entries, err := StringTable(block[offset:])
	if err != nil {
		return nil, false, wrapError(op+".directory_strings", MalformedStringTable, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Text)
	}

	mismatch := uint32(len(names)) != numberOfDirectoryStrings
	return names, mismatch, nil
}
