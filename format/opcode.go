package format

// Opcode is a leading byte of a canonical encoding. The ranges below
// mirror MessagePack, with fog-pack's own reserved ext types layered on
// top (spec.md §4.1, §6).
type Opcode = byte

// Fixed single-byte ranges.
const (
	PosFixintMax Opcode = 0x7f // 0x00-0x7f: 7-bit positive fixint
	NegFixintMin Opcode = 0xe0 // 0xe0-0xff: 5-bit negative fixint

	NilCode   Opcode = 0xc0
	FalseCode Opcode = 0xc2
	TrueCode  Opcode = 0xc3

	Bin8Code  Opcode = 0xc4
	Bin16Code Opcode = 0xc5
	Bin32Code Opcode = 0xc6

	Ext8Code  Opcode = 0xc7
	Ext16Code Opcode = 0xc8
	Ext32Code Opcode = 0xc9

	Float32Code Opcode = 0xca
	Float64Code Opcode = 0xcb

	Uint8Code  Opcode = 0xcc
	Uint16Code Opcode = 0xcd
	Uint32Code Opcode = 0xce
	Uint64Code Opcode = 0xcf

	Int8Code  Opcode = 0xd0
	Int16Code Opcode = 0xd1
	Int32Code Opcode = 0xd2
	Int64Code Opcode = 0xd3

	FixExt1Code  Opcode = 0xd4
	FixExt2Code  Opcode = 0xd5
	FixExt4Code  Opcode = 0xd6
	FixExt8Code  Opcode = 0xd7
	FixExt16Code Opcode = 0xd8

	Str8Code  Opcode = 0xd9
	Str16Code Opcode = 0xda
	Str32Code Opcode = 0xdb

	Array16Code Opcode = 0xdc
	Array32Code Opcode = 0xdd

	Map16Code Opcode = 0xde
	Map32Code Opcode = 0xdf
)

// Fixed-family base codes and the element-count masks they cover.
const (
	FixMapBase   Opcode = 0x80 // 0x80-0x8f: fixmap, up to 15 pairs
	FixMapMax           = 15
	FixArrayBase Opcode = 0x90 // 0x90-0x9f: fixarray, up to 15 elements
	FixArrayMax         = 15
	FixStrBase   Opcode = 0xa0 // 0xa0-0xbf: fixstr, up to 31 bytes
	FixStrMax           = 31
)

// IsPosFixint reports whether b is a 7-bit positive fixint opcode.
func IsPosFixint(b byte) bool { return b <= PosFixintMax }

// IsNegFixint reports whether b is a 5-bit negative fixint opcode.
func IsNegFixint(b byte) bool { return b >= NegFixintMin }

// IsFixMap reports whether b is a fixmap opcode.
func IsFixMap(b byte) bool { return b >= FixMapBase && b < FixMapBase+16 }

// IsFixArray reports whether b is a fixarray opcode.
func IsFixArray(b byte) bool { return b >= FixArrayBase && b < FixArrayBase+16 }

// IsFixStr reports whether b is a fixstr opcode.
func IsFixStr(b byte) bool { return b >= FixStrBase && b < FixStrBase+32 }
