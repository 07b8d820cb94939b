// Package savefile implements the RVGL save-progress record format: the
// 72-byte .level and 140-byte .stunt layouts and the CRC32 variant that
// guards them.
//
// Decoding is lenient and encoding is strict. Unpack never checks the
// stored checksum or the secrets sign bit, so records altered by other
// tools still load; Pack always sets the sign bit and writes a fresh
// checksum.
package savefile
