package goscca

import "time"

// filetimeEpochOffset is the number of 100ns intervals between the
// Windows FILETIME epoch (1601-01-01) and the Unix epoch
// (1970-01-01).
const filetimeEpochOffset = 116444736000000000

// FiletimeToTime converts a raw Windows FILETIME (100ns ticks since
// 1601-01-01 UTC) to a time.Time. A zero FILETIME, meaning "never run"
// for last-run-time fields, converts to the zero time.Time.
func FiletimeToTime(ft uint64) time.Time {
	if ft == 0 {
		return time.Time{}
	}
	unix100ns := int64(ft) - filetimeEpochOffset
	sec := unix100ns / 10000000
	nsec := (unix100ns % 10000000) * 100
	return time.Unix(sec, nsec).UTC()
}
