package savefile

import (
	"encoding/binary"
)

// LevelRecord is the decoded form of a 72-byte .level record.
//
// Layout:
//
//	0x00  32  magic, NUL-padded
//	0x20  16  profile name
//	0x30  16  inner track name
//	0x40   4  secrets: bit 31 set, bits 0-5 flags
//	0x44   4  checksum of [0x00, 0x44)
type LevelRecord struct {
	Profile   string
	InnerName string
	Flags     [FlagCount]bool

	// Populated by UnpackLevel only; Pack derives both
	Secrets  uint32
	Checksum uint32
}

// SecretsField builds the secrets word for a set of flags.
func SecretsField(flags [FlagCount]bool) uint32 {
	secrets := uint32(SecretsSign)
	for i, on := range flags {
		if on {
			secrets |= Flags[i].Mask
		}
	}
	return secrets
}

// Pack serializes the record, computing its checksum. Text fields longer
// than 16 bytes are cut silently.
func (r *LevelRecord) Pack() []byte {
	buf := make([]byte, LevelSize)

	writeText(buf, OffsetMagic, Magic, MagicFieldSize)
	writeText(buf, OffsetProfile, r.Profile, TextFieldSize)
	writeText(buf, OffsetInner, r.InnerName, TextFieldSize)
	binary.LittleEndian.PutUint32(buf[LevelSecretsOffset:], SecretsField(r.Flags))
	binary.LittleEndian.PutUint32(buf[LevelChecksumOffset:], Checksum(buf[:LevelChecksumOffset]))

	return buf
}

// UnpackLevel decodes a level record. The stored checksum is read but not
// checked, so hand-edited files still load; see VerifyChecksum. Bit 31 of
// the secrets field is not validated either.
func UnpackLevel(data []byte) (*LevelRecord, error) {
	if err := checkHeader(data, KindLevel, LevelSize); err != nil {
		return nil, err
	}

	r := &LevelRecord{
		Profile:   readText(data, OffsetProfile, TextFieldSize),
		InnerName: readText(data, OffsetInner, TextFieldSize),
		Secrets:   binary.LittleEndian.Uint32(data[LevelSecretsOffset:]),
		Checksum:  binary.LittleEndian.Uint32(data[LevelChecksumOffset:]),
	}
	for i, f := range Flags {
		r.Flags[i] = r.Secrets&f.Mask != 0
	}

	return r, nil
}
