package savefile

import (
	"fmt"
	"hash/crc32"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

// TestChecksumVectors pins the CRC variant against known outputs
func TestChecksumVectors(t *testing.T) {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "crc_test",
		Level: hclog.Trace,
	})

	testCases := []struct {
		name     string
		input    []byte
		expected uint32
	}{
		{name: "empty", input: nil, expected: 0},
		{name: "shorter than a word", input: []byte("abc"), expected: 0},
		{name: "one zero word", input: []byte{0, 0, 0, 0}, expected: 0x38FB2284},
		{name: "one all-ones word", input: []byte{0xFF, 0xFF, 0xFF, 0xFF}, expected: 0xC704DD7B},
		{name: "two words", input: []byte{1, 2, 3, 4, 5, 6, 7, 8}, expected: 0xBDBFBA5F},
		{name: "ascii digits", input: []byte("123456789012"), expected: 0x09CF646D},
		{name: "trailing bytes ignored", input: []byte("123456789012xy"), expected: 0x09CF646D},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Checksum(tc.input)
			logger.Debug("🔢 Checksum", "input", fmt.Sprintf("%x", tc.input), "got", fmt.Sprintf("0x%08x", got))
			assert.Equal(t, tc.expected, got, "Checksum(%x)", tc.input)
		})
	}
}

func TestChecksumIsNotIEEE(t *testing.T) {
	data := []byte{0, 0, 0, 0}
	assert.NotEqual(t, crc32.ChecksumIEEE(data), Checksum(data))
}

func TestChecksumDeterministic(t *testing.T) {
	data := []byte("RVGL Save File 1.00\x00")
	first := Checksum(data)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Checksum(data))
	}
}

func TestHashMatchesChecksum(t *testing.T) {
	h := NewHash()
	_, _ = h.Write([]byte("1234"))
	_, _ = h.Write([]byte("56789012"))

	assert.Equal(t, uint32(0x09CF646D), h.Sum32())
	assert.Equal(t, []byte{0x6D, 0x64, 0xCF, 0x09}, h.Sum(nil))
	assert.Equal(t, 4, h.Size())

	h.Reset()
	assert.Equal(t, uint32(0), h.Sum32())
}
