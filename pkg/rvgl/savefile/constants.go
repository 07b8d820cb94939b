package savefile

// Core format constants that never change

const (
	// Magic written at the start of every record
	Magic = "RVGL Save File 1.00"

	// Field offsets shared by both record kinds
	OffsetMagic   = 0x00
	OffsetProfile = 0x20
	OffsetInner   = 0x30
	OffsetBody    = 0x40

	// Field sizes
	MagicFieldSize = 32
	TextFieldSize  = 16
	MaxTextLen     = TextFieldSize - 1 // last byte is the terminator
	ChecksumSize   = 4

	// Level record layout
	LevelSize           = 72
	LevelSecretsOffset  = 0x40
	LevelChecksumOffset = 0x44

	// Stunt record layout
	StuntSize           = 140
	StuntFoundOffset    = 0x40
	StuntTotalOffset    = 0x44
	StuntIndexOffset    = 0x48
	StuntChecksumOffset = 0x88
	MaxStars            = 64

	// Level flags
	FlagCount   = 6
	SecretsSign = 0x80000000 // always set on encode

	// CRC polynomial
	crcPolynomial = 0x04C11DB7
)

// Flag describes one bit of a level's secrets field.
type Flag struct {
	Bit   uint
	Mask  uint32
	Label string
	Sub   string
}

// Flags lists the level unlock flags in index order.
var Flags = [FlagCount]Flag{
	{Bit: 0, Mask: 0x01, Label: "Beat Time Trial", Sub: "Normal"},
	{Bit: 1, Mask: 0x02, Label: "Beat Time Trial", Sub: "Reversed"},
	{Bit: 2, Mask: 0x04, Label: "Beat Time Trial", Sub: "Mirrored"},
	{Bit: 3, Mask: 0x08, Label: "Practice Star", Sub: "Collected"},
	{Bit: 4, Mask: 0x10, Label: "Single Race", Sub: "Won 1st place"},
	{Bit: 5, Mask: 0x20, Label: "Championship", Sub: "Cup completed"},
}
