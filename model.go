package goscca

import (
	"time"

	"github.com/dfir-go/goscca/parser"
)

// FileModel is the immutable, parsed representation of a Prefetch
// file (spec §4.8). It owns its volumes and filenames exclusively and
// is safe to share across goroutines without synchronization.
type FileModel struct {
	m *parser.Model
}

func newFileModel(m *parser.Model) *FileModel {
	return &FileModel{m: m}
}

func (f *FileModel) FormatVersion() uint32 { return f.m.FormatVersion }

func (f *FileModel) PrefetchHash() uint32 { return f.m.PrefetchHash }

func (f *FileModel) ExecutableFilename() string { return f.m.ExecutableFilename }

func (f *FileModel) RunCount() uint32 { return f.m.FileInformation.RunCount }

// LastRunTime returns the index'th most-recent run time, most recent
// first. index must be in [0, 1) for a v17 file or [0, 8) for
// v23/v26; any other index fails with IndexOutOfRange. Indices within
// range but beyond what the file actually recorded return the zero
// time.Time, matching the source's own zero-filled trailing entries.
func (f *FileModel) LastRunTime(index int) (time.Time, error) {
	const op = "FileModel.LastRunTime"
	limit := 1
	if f.m.FormatVersion == 23 || f.m.FormatVersion == 26 {
		limit = 8
	}
	if index < 0 || index >= limit {
		return time.Time{}, indexError(op)
	}
	if index >= len(f.m.FileInformation.LastRunTimes) {
		return time.Time{}, nil
	}
	return FiletimeToTime(f.m.FileInformation.LastRunTimes[index]), nil
}

func (f *FileModel) FilenamesCount() int { return len(f.m.Filenames) }

func (f *FileModel) Filename(i int) (string, error) {
	if i < 0 || i >= len(f.m.Filenames) {
		return "", indexError("FileModel.Filename")
	}
	return f.m.Filenames[i], nil
}

func (f *FileModel) VolumesCount() int { return len(f.m.Volumes) }

func (f *FileModel) Volume(i int) (*VolumeView, error) {
	if i < 0 || i >= len(f.m.Volumes) {
		return nil, indexError("FileModel.Volume")
	}
	return &VolumeView{v: &f.m.Volumes[i]}, nil
}

func (f *FileModel) MetricsCount() int { return len(f.m.Metrics) }

func (f *FileModel) Metric(i int) (parser.MetricsEntry, error) {
	if i < 0 || i >= len(f.m.Metrics) {
		return parser.MetricsEntry{}, indexError("FileModel.Metric")
	}
	return f.m.Metrics[i], nil
}

func (f *FileModel) TraceChainCount() int { return len(f.m.TraceChain) }

func (f *FileModel) TraceChainEntry(i int) (parser.TraceChainEntry, error) {
	if i < 0 || i >= len(f.m.TraceChain) {
		return parser.TraceChainEntry{}, indexError("FileModel.TraceChainEntry")
	}
	return f.m.TraceChain[i], nil
}

// SizeMismatch reports whether the header's declared file_size
// disagreed with the reader's actual size. Never fatal.
func (f *FileModel) SizeMismatch() bool { return f.m.SizeMismatch }

// Warnings returns every InconsistentCounts (or similar recoverable)
// condition observed while decoding.
func (f *FileModel) Warnings() []parser.Warning { return f.m.Warnings }

// VolumeView exposes one decoded volume record (spec §4.7/§4.8).
type VolumeView struct {
	v *parser.Volume
}

func (v *VolumeView) DevicePath() string { return v.v.DevicePath }

func (v *VolumeView) CreationTime() time.Time { return FiletimeToTime(v.v.CreationTime) }

func (v *VolumeView) SerialNumber() uint32 { return v.v.SerialNumber }

func (v *VolumeView) FileReferenceCount() int { return len(v.v.FileReferences) }

func (v *VolumeView) FileReference(i int) (parser.FileReference, error) {
	if i < 0 || i >= len(v.v.FileReferences) {
		return 0, indexError("VolumeView.FileReference")
	}
	return v.v.FileReferences[i], nil
}

func (v *VolumeView) DirectoryStringCount() int { return len(v.v.DirectoryStrings) }

func (v *VolumeView) DirectoryString(i int) (string, error) {
	if i < 0 || i >= len(v.v.DirectoryStrings) {
		return "", indexError("VolumeView.DirectoryString")
	}
	return v.v.DirectoryStrings[i], nil
}

func indexError(op string) error {
	return &parser.ParseError{Op: op, Kind: parser.IndexOutOfRange}
}

// MFTEntry returns the low 48 bits of ref, the NTFS MFT entry number.
// Grounded in Velocidex-go-ntfs's own MftReference split, so callers
// of both modules share the idiom.
func MFTEntry(ref parser.FileReference) uint64 { return ref.MFTEntry() }

// MFTSequence returns the high 16 bits of ref, its sequence number.
func MFTSequence(ref parser.FileReference) uint16 { return ref.Sequence() }
