package format

// Frame header bits (SPEC_FULL.md's resolution of spec.md §9's open
// question on document/entry frame layout). A document or entry is
// framed as header-byte || body-length (uint32) || body-bytes ||
// signatures; the single header byte carries:
//
//	bit 0      schema-hash-present: the body's top-level Map carries a
//	           "" key bound to this frame's schema
//	bits 1-3   compression algorithm id (FrameCompressionNone/General/Dict)
//	bits 4-7   reserved, must be zero; a decoder rejects any frame whose
//	           header has a reserved bit set rather than ignoring it
const (
	FrameSchemaPresentBit byte = 1 << 0

	FrameCompressionShift = 1
	FrameCompressionMask  = 0b0111 << FrameCompressionShift

	FrameCompressionNone    byte = 0
	FrameCompressionGeneral byte = 1
	FrameCompressionDict    byte = 2

	FrameReservedMask byte = 0b1111_0000
)

// EncodeFrameHeader packs the schema-presence flag and compression id
// into a single header byte.
func EncodeFrameHeader(schemaPresent bool, compression byte) byte {
	var h byte
	if schemaPresent {
		h |= FrameSchemaPresentBit
	}
	h |= (compression << FrameCompressionShift) & FrameCompressionMask

	return h
}

// DecodeFrameHeader unpacks a header byte, reporting ok=false if any
// reserved bit is set.
func DecodeFrameHeader(h byte) (schemaPresent bool, compression byte, ok bool) {
	if h&FrameReservedMask != 0 {
		return false, 0, false
	}

	return h&FrameSchemaPresentBit != 0, (h & FrameCompressionMask) >> FrameCompressionShift, true
}
