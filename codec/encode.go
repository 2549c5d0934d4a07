package codec

import (
	"encoding/binary"
	"math"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/format"
	"github.com/foglayer/fogpack/internal/pool"
	"github.com/foglayer/fogpack/value"
)

// Encode returns the canonical shortest-legal-form encoding of v.
func Encode(v value.Value) ([]byte, error) {
	buf := pool.Get()
	defer pool.Put(buf)

	if err := encodeValue(buf, v); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// EncodeTo appends the canonical encoding of v to buf.
func EncodeTo(buf *pool.Buffer, v value.Value) error {
	return encodeValue(buf, v)
}

func encodeValue(buf *pool.Buffer, v value.Value) error {
	switch v.Kind() {
	case format.KindNull:
		buf.B = append(buf.B, format.NilCode)
		return nil
	case format.KindBool:
		b, _ := v.AsBool()
		if b {
			buf.B = append(buf.B, format.TrueCode)
		} else {
			buf.B = append(buf.B, format.FalseCode)
		}

		return nil
	case format.KindInt:
		n, _ := v.AsInt()
		return encodeInt(buf, n)
	case format.KindF32:
		f, _ := v.AsF32()
		buf.B = append(buf.B, format.Float32Code)
		buf.B = binary.BigEndian.AppendUint32(buf.B, math.Float32bits(f))

		return nil
	case format.KindF64:
		f, _ := v.AsF64()
		buf.B = append(buf.B, format.Float64Code)
		buf.B = binary.BigEndian.AppendUint64(buf.B, math.Float64bits(f))

		return nil
	case format.KindStr:
		s, _ := v.AsStr()
		return encodeStr(buf, s)
	case format.KindBin:
		b, _ := v.AsBin()
		return encodeBin(buf, b)
	case format.KindArray:
		elems, _ := v.AsArray()
		return encodeArray(buf, elems)
	case format.KindMap:
		m, _ := v.AsMap()
		return encodeMap(buf, m)
	case format.KindHash:
		h, _ := v.AsHash()
		return encodeHash(buf, h)
	case format.KindIdentity:
		id, _ := v.AsIdentity()
		return encodeIdentity(buf, id)
	case format.KindLockbox:
		l, _ := v.AsLockbox()
		return encodeLockbox(buf, l)
	case format.KindTime:
		t, _ := v.AsTime()
		return encodeTime(buf, t)
	default:
		return errs.ErrMalformed
	}
}

func encodeInt(buf *pool.Buffer, n value.Int) error {
	if u, ok := n.U64(); ok {
		switch {
		case u <= 0x7f:
			buf.B = append(buf.B, byte(u))
		case u <= 0xff:
			buf.B = append(buf.B, format.Uint8Code, byte(u))
		case u <= 0xffff:
			buf.B = append(buf.B, format.Uint16Code)
			buf.B = binary.BigEndian.AppendUint16(buf.B, uint16(u))
		case u <= 0xffffffff:
			buf.B = append(buf.B, format.Uint32Code)
			buf.B = binary.BigEndian.AppendUint32(buf.B, uint32(u))
		default:
			buf.B = append(buf.B, format.Uint64Code)
			buf.B = binary.BigEndian.AppendUint64(buf.B, u)
		}

		return nil
	}

	i, ok := n.I64()
	if !ok {
		return errs.ErrRange
	}

	switch {
	case i >= -32:
		buf.B = append(buf.B, byte(int8(i)))
	case i >= -128:
		buf.B = append(buf.B, format.Int8Code, byte(int8(i)))
	case i >= -32768:
		buf.B = append(buf.B, format.Int16Code)
		buf.B = binary.BigEndian.AppendUint16(buf.B, uint16(int16(i)))
	case i >= -2147483648:
		buf.B = append(buf.B, format.Int32Code)
		buf.B = binary.BigEndian.AppendUint32(buf.B, uint32(int32(i)))
	default:
		buf.B = append(buf.B, format.Int64Code)
		buf.B = binary.BigEndian.AppendUint64(buf.B, uint64(i))
	}

	return nil
}

func encodeStr(buf *pool.Buffer, s string) error {
	n := len(s)
	switch {
	case n <= format.FixStrMax:
		buf.B = append(buf.B, format.FixStrBase|byte(n))
	case n <= 0xff:
		buf.B = append(buf.B, format.Str8Code, byte(n))
	case n <= 0xffff:
		buf.B = append(buf.B, format.Str16Code)
		buf.B = binary.BigEndian.AppendUint16(buf.B, uint16(n))
	default:
		buf.B = append(buf.B, format.Str32Code)
		buf.B = binary.BigEndian.AppendUint32(buf.B, uint32(n))
	}
	buf.B = append(buf.B, s...)

	return nil
}

func encodeBin(buf *pool.Buffer, b []byte) error {
	n := len(b)
	switch {
	case n <= 0xff:
		buf.B = append(buf.B, format.Bin8Code, byte(n))
	case n <= 0xffff:
		buf.B = append(buf.B, format.Bin16Code)
		buf.B = binary.BigEndian.AppendUint16(buf.B, uint16(n))
	default:
		buf.B = append(buf.B, format.Bin32Code)
		buf.B = binary.BigEndian.AppendUint32(buf.B, uint32(n))
	}
	buf.B = append(buf.B, b...)

	return nil
}

func encodeArray(buf *pool.Buffer, elems []value.Value) error {
	n := len(elems)
	switch {
	case n <= format.FixArrayMax:
		buf.B = append(buf.B, format.FixArrayBase|byte(n))
	case n <= 0xffff:
		buf.B = append(buf.B, format.Array16Code)
		buf.B = binary.BigEndian.AppendUint16(buf.B, uint16(n))
	default:
		buf.B = append(buf.B, format.Array32Code)
		buf.B = binary.BigEndian.AppendUint32(buf.B, uint32(n))
	}

	for _, e := range elems {
		if err := encodeValue(buf, e); err != nil {
			return err
		}
	}

	return nil
}

func encodeMap(buf *pool.Buffer, m *value.Map) error {
	n := m.Len()
	switch {
	case n <= format.FixMapMax:
		buf.B = append(buf.B, format.FixMapBase|byte(n))
	case n <= 0xffff:
		buf.B = append(buf.B, format.Map16Code)
		buf.B = binary.BigEndian.AppendUint16(buf.B, uint16(n))
	default:
		buf.B = append(buf.B, format.Map32Code)
		buf.B = binary.BigEndian.AppendUint32(buf.B, uint32(n))
	}

	var firstErr error
	m.Range(func(key string, val value.Value) bool {
		if err := encodeStr(buf, key); err != nil {
			firstErr = err
			return false
		}
		if err := encodeValue(buf, val); err != nil {
			firstErr = err
			return false
		}

		return true
	})

	return firstErr
}

// encodeExt writes the ext framing (fixext1/2/4/8/16 when body's length
// matches exactly, otherwise the narrowest ext8/16/32) around typ and
// body.
func encodeExt(buf *pool.Buffer, typ int8, body []byte) error {
	n := len(body)
	switch n {
	case 1:
		buf.B = append(buf.B, format.FixExt1Code, byte(typ))
	case 2:
		buf.B = append(buf.B, format.FixExt2Code, byte(typ))
	case 4:
		buf.B = append(buf.B, format.FixExt4Code, byte(typ))
	case 8:
		buf.B = append(buf.B, format.FixExt8Code, byte(typ))
	case 16:
		buf.B = append(buf.B, format.FixExt16Code, byte(typ))
	default:
		switch {
		case n <= 0xff:
			buf.B = append(buf.B, format.Ext8Code, byte(n))
		case n <= 0xffff:
			buf.B = append(buf.B, format.Ext16Code)
			buf.B = binary.BigEndian.AppendUint16(buf.B, uint16(n))
		default:
			buf.B = append(buf.B, format.Ext32Code)
			buf.B = binary.BigEndian.AppendUint32(buf.B, uint32(n))
		}
		buf.B = append(buf.B, byte(typ))
	}
	buf.B = append(buf.B, body...)

	return nil
}

func encodeHash(buf *pool.Buffer, h value.Hash) error {
	body := make([]byte, 0, 1+len(h.Digest))
	body = append(body, h.Algo)
	body = append(body, h.Digest...)

	return encodeExt(buf, format.ExtHash, body)
}

func encodeIdentity(buf *pool.Buffer, id value.Identity) error {
	body := make([]byte, 0, 1+len(id.Public))
	body = append(body, id.Algo)
	body = append(body, id.Public...)

	return encodeExt(buf, format.ExtIdentity, body)
}

func encodeLockbox(buf *pool.Buffer, l value.Lockbox) error {
	body := make([]byte, 0, l.Body())
	body = append(body, l.Version, l.Tag)
	if l.IsPublicKeyRecipient() {
		body = append(body, l.SignerKey...)
		body = append(body, l.EphemeralPub...)
	} else {
		body = append(body, l.StreamID...)
	}
	body = append(body, l.Nonce...)
	body = append(body, l.Ciphertext...)
	body = append(body, l.AuthTag...)

	return encodeExt(buf, format.ExtLockbox, body)
}

func encodeTime(buf *pool.Buffer, t value.Time) error {
	switch {
	case t.Nanos == 0 && t.Sec >= 0 && t.Sec <= 0xffffffff:
		body := binary.BigEndian.AppendUint32(nil, uint32(t.Sec))
		return encodeExt(buf, format.ExtTime, body)
	case !t.NeedsWideForm() && t.Sec >= 0 && t.Sec < (1<<34):
		combined := uint64(t.Nanos)<<34 | uint64(t.Sec)
		body := binary.BigEndian.AppendUint64(nil, combined)
		return encodeExt(buf, format.ExtTime, body)
	default:
		body := make([]byte, 0, 12)
		body = binary.BigEndian.AppendUint32(body, t.Nanos)
		body = binary.BigEndian.AppendUint64(body, uint64(t.Sec))

		return encodeExt(buf, format.ExtTime, body)
	}
}
