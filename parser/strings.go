package parser

import "unicode/utf16"

// StringEntry is one decoded record from a StringTable: the byte
// offset it started at (relative to the region StringTable was given),
// its UTF-16 code unit count excluding the terminator, and both a
// UTF-8 and UTF-16 view of the text.
type StringEntry struct {
	StartByteOffset int
	CharCount       int
	Text            string
	UTF16           []uint16
}

// StringTable parses a contiguous byte region of concatenated
// UTF-16LE strings, each terminated by a single NUL code unit, into an
// indexable list (spec §4.6). A trailing empty string produced by a
// final separator is omitted; the region's byte length must be even.
func StringTable(buf []byte) ([]StringEntry, error) {
	const op = "StringTable"

	if len(buf)%2 != 0 {
		return nil, newError(op, MalformedStringTable)
	}

	var entries []StringEntry
	start := 0
	var current []uint16

	appendEntry := func(endOffset int) {
		entries = append(entries, StringEntry{
			StartByteOffset: start,
			CharCount:       len(current),
			Text:            string(utf16.Decode(current)),
			UTF16:           append([]uint16(nil), current...),
		})
		start = endOffset
		current = nil
	}

	for i := 0; i+1 < len(buf); i += 2 {
		unit := uint16(buf[i]) | uint16(buf[i+1])<<8
		if unit == 0 {
			appendEntry(i + 2)
			continue
		}
		current = append(current, unit)
	}

	// The table did not end on a separator: whatever is left over is
	// still a string, terminator or not.
	if len(current) > 0 {
		appendEntry(len(buf))
	}

	// Drop a single trailing empty entry produced by a final
	// separator (spec §4.6); any earlier empty entries are genuine
	// zero-length strings and are kept.
	if n := len(entries); n > 0 && entries[n-1].CharCount == 0 {
		entries = entries[:n-1]
	}

	return entries, nil
}
