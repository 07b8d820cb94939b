package savefile

import (
	"encoding/binary"
)

// StuntRecord is the decoded form of a 140-byte .stunt record.
//
// Layout:
//
//	0x00  32  magic, NUL-padded
//	0x20  16  profile name
//	0x30  16  inner level name
//	0x40   4  found-star count
//	0x44   4  total stars
//	0x48  64  found star indices, one byte each, zero-filled
//	0x88   4  checksum of [0x00, 0x88)
type StuntRecord struct {
	Profile   string
	InnerName string
	Total     uint32
	Stars     [MaxStars]bool

	// Populated by UnpackStunt only; Pack derives both
	Found    uint32
	Checksum uint32
}

// FoundIndices returns the set star indices in ascending order.
func (r *StuntRecord) FoundIndices() []uint8 {
	indices := make([]uint8, 0, MaxStars)
	for i, on := range r.Stars {
		if on {
			indices = append(indices, uint8(i))
		}
	}
	return indices
}

// Pack serializes the record, computing its checksum.
func (r *StuntRecord) Pack() []byte {
	buf := make([]byte, StuntSize)

	writeText(buf, OffsetMagic, Magic, MagicFieldSize)
	writeText(buf, OffsetProfile, r.Profile, TextFieldSize)
	writeText(buf, OffsetInner, r.InnerName, TextFieldSize)

	indices := r.FoundIndices()
	if len(indices) > MaxStars {
		indices = indices[:MaxStars]
	}
	binary.LittleEndian.PutUint32(buf[StuntFoundOffset:], uint32(len(indices)))
	binary.LittleEndian.PutUint32(buf[StuntTotalOffset:], r.Total)
	copy(buf[StuntIndexOffset:StuntChecksumOffset], indices)
	binary.LittleEndian.PutUint32(buf[StuntChecksumOffset:], Checksum(buf[:StuntChecksumOffset]))

	return buf
}

// UnpackStunt decodes a stunt record. At most 64 claimed indices are read
// and any index of 64 or more is dropped. The checksum is not checked.
func UnpackStunt(data []byte) (*StuntRecord, error) {
	if err := checkHeader(data, KindStunt, StuntSize); err != nil {
		return nil, err
	}

	r := &StuntRecord{
		Profile:   readText(data, OffsetProfile, TextFieldSize),
		InnerName: readText(data, OffsetInner, TextFieldSize),
		Found:     binary.LittleEndian.Uint32(data[StuntFoundOffset:]),
		Total:     binary.LittleEndian.Uint32(data[StuntTotalOffset:]),
		Checksum:  binary.LittleEndian.Uint32(data[StuntChecksumOffset:]),
	}

	n := int(min(r.Found, MaxStars))
	for _, idx := range data[StuntIndexOffset : StuntIndexOffset+n] {
		if idx < MaxStars {
			r.Stars[idx] = true
		}
	}

	return r, nil
}
