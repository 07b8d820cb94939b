package savefile

import (
	"encoding/binary"
	"hash"
)

// Checksum computes the CRC32 variant RVGL stores in its save records.
//
// Input is consumed as little-endian 32-bit words, each shifted into the
// accumulator LSB first against the non-reflected 0x04C11DB7 polynomial.
// This is not hash/crc32 (neither IEEE nor any reflected table matches it).
// Bytes past the last whole word are ignored; fewer than four bytes yield 0.
func Checksum(data []byte) uint32 {
	n := len(data) / 4
	if n == 0 {
		return 0
	}

	crc := uint32(0xFFFFFFFF)
	for w := 0; w < n; w++ {
		word := binary.LittleEndian.Uint32(data[w*4:])
		for b := 0; b < 32; b++ {
			msb := crc&0x80000000 != 0
			crc = crc<<1 | word&1
			word >>= 1
			if msb {
				crc ^= crcPolynomial
			}
		}
	}
	return ^crc
}

// digest buffers writes and runs Checksum over them on Sum.
type digest struct {
	buf []byte
}

// NewHash returns a hash.Hash32 computing Checksum over everything written.
func NewHash() hash.Hash32 {
	return &digest{}
}

func (d *digest) Write(p []byte) (int, error) {
	d.buf = append(d.buf, p...)
	return len(p), nil
}

func (d *digest) Sum32() uint32 {
	return Checksum(d.buf)
}

// Sum appends the checksum in little-endian order, the way records store it.
func (d *digest) Sum(in []byte) []byte {
	return binary.LittleEndian.AppendUint32(in, d.Sum32())
}

func (d *digest) Reset()         { d.buf = d.buf[:0] }
func (d *digest) Size() int      { return ChecksumSize }
func (d *digest) BlockSize() int { return 4 }
