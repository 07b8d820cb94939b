package savefile

import (
	"encoding/binary"
)

// Region names a field of the record layout.
type Region string

const (
	RegionHeader  Region = "header"
	RegionProfile Region = "profile"
	RegionInner   Region = "inner"
	RegionSecrets Region = "secrets"
	RegionStars   Region = "stars"
	RegionCRC     Region = "crc"
	RegionNone    Region = ""
)

// RegionAt returns the field covering offset in a record of the given kind.
func RegionAt(kind Kind, offset int) Region {
	if offset < 0 || offset >= kind.Size() {
		return RegionNone
	}
	switch {
	case offset < OffsetProfile:
		return RegionHeader
	case offset < OffsetInner:
		return RegionProfile
	case offset < OffsetBody:
		return RegionInner
	case offset >= kind.ChecksumOffset():
		return RegionCRC
	case kind == KindLevel:
		return RegionSecrets
	default:
		return RegionStars
	}
}

// ChecksumStatus compares a record's stored checksum with a fresh one.
type ChecksumStatus struct {
	Stored   uint32
	Computed uint32
}

// Valid reports whether the two checksums agree.
func (s ChecksumStatus) Valid() bool {
	return s.Stored == s.Computed
}

// VerifyChecksum recomputes the checksum of a raw record. It fails with the
// same FormatError decoding would give for a short buffer or bad magic.
// Decoding never calls this.
func VerifyChecksum(kind Kind, data []byte) (ChecksumStatus, error) {
	if err := checkHeader(data, kind, kind.Size()); err != nil {
		return ChecksumStatus{}, err
	}
	off := kind.ChecksumOffset()
	return ChecksumStatus{
		Stored:   binary.LittleEndian.Uint32(data[off:]),
		Computed: Checksum(data[:off]),
	}, nil
}
