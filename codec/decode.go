package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/format"
	"github.com/foglayer/fogpack/value"
)

// Decode decodes the single canonical value at the front of b, rejecting
// any trailing bytes. It is the entry point callers should use; internal
// recursion uses decodeValue, which returns bytes consumed instead of
// requiring the whole input to be a single value.
func Decode(b []byte, limits Limits) (value.Value, error) {
	if limits.MaxSize > 0 && len(b) > limits.MaxSize {
		return value.Value{}, fmt.Errorf("%w: %d bytes exceeds max %d", errs.ErrSizeLimit, len(b), limits.MaxSize)
	}

	d := &decoder{buf: b, limits: limits}

	v, err := d.decodeValue()
	if err != nil {
		return value.Value{}, err
	}
	if d.pos != len(b) {
		return value.Value{}, fmt.Errorf("%w: %d unconsumed bytes", errs.ErrTrailingData, len(b)-d.pos)
	}

	return v, nil
}

type decoder struct {
	buf    []byte
	pos    int
	limits Limits
	depth  int
}

func (d *decoder) readByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, errs.ErrMalformed
	}
	b := d.buf[d.pos]
	d.pos++

	return b, nil
}

func (d *decoder) readN(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.buf) {
		return nil, errs.ErrMalformed
	}
	out := d.buf[d.pos : d.pos+n]
	d.pos += n

	return out, nil
}

func (d *decoder) readUint16() (uint16, error) {
	b, err := d.readN(2)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) readUint32() (uint32, error) {
	b, err := d.readN(4)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b), nil
}

func (d *decoder) readUint64() (uint64, error) {
	b, err := d.readN(8)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(b), nil
}

func (d *decoder) enterContainer() error {
	d.depth++
	if d.limits.MaxDepth > 0 && d.depth > d.limits.MaxDepth {
		return fmt.Errorf("%w: depth %d exceeds max %d", errs.ErrDepthLimit, d.depth, d.limits.MaxDepth)
	}

	return nil
}

func (d *decoder) leaveContainer() { d.depth-- }

func (d *decoder) decodeValue() (value.Value, error) {
	op, err := d.readByte()
	if err != nil {
		return value.Value{}, err
	}

	switch {
	case format.IsPosFixint(op):
		return value.FromU64(uint64(op)), nil
	case format.IsNegFixint(op):
		return value.FromI64(int64(int8(op))), nil
	case format.IsFixStr(op):
		return d.decodeStrBody(int(op & 0x1f))
	case format.IsFixArray(op):
		return d.decodeArrayBody(int(op & 0x0f))
	case format.IsFixMap(op):
		return d.decodeMapBody(int(op & 0x0f))
	}

	switch op {
	case format.NilCode:
		return value.Null(), nil
	case format.FalseCode:
		return value.Bool(false), nil
	case format.TrueCode:
		return value.Bool(true), nil

	case format.Uint8Code:
		b, err := d.readByte()
		if err != nil {
			return value.Value{}, err
		}
		if b <= format.PosFixintMax {
			return value.Value{}, errs.ErrNonCanonical
		}

		return value.FromU64(uint64(b)), nil

	case format.Uint16Code:
		u, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}
		if u <= 0xff {
			return value.Value{}, errs.ErrNonCanonical
		}

		return value.FromU64(uint64(u)), nil

	case format.Uint32Code:
		u, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}
		if u <= 0xffff {
			return value.Value{}, errs.ErrNonCanonical
		}

		return value.FromU64(uint64(u)), nil

	case format.Uint64Code:
		u, err := d.readUint64()
		if err != nil {
			return value.Value{}, err
		}
		if u <= 0xffffffff {
			return value.Value{}, errs.ErrNonCanonical
		}

		return value.FromU64(u), nil

	case format.Int8Code:
		b, err := d.readByte()
		if err != nil {
			return value.Value{}, err
		}
		i := int64(int8(b))
		if i >= -32 {
			return value.Value{}, errs.ErrNonCanonical
		}

		return value.FromI64(i), nil

	case format.Int16Code:
		u, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}
		i := int64(int16(u))
		if i >= -128 {
			return value.Value{}, errs.ErrNonCanonical
		}

		return value.FromI64(i), nil

	case format.Int32Code:
		u, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}
		i := int64(int32(u))
		if i >= -32768 {
			return value.Value{}, errs.ErrNonCanonical
		}

		return value.FromI64(i), nil

	case format.Int64Code:
		u, err := d.readUint64()
		if err != nil {
			return value.Value{}, err
		}
		i := int64(u)
		if i >= -2147483648 && i <= 2147483647 {
			return value.Value{}, errs.ErrNonCanonical
		}
		if i >= 0 {
			return value.Value{}, errs.ErrNonCanonical
		}

		return value.FromI64(i), nil

	case format.Float32Code:
		u, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}

		return value.F32(math.Float32frombits(u)), nil

	case format.Float64Code:
		u, err := d.readUint64()
		if err != nil {
			return value.Value{}, err
		}

		return value.F64(math.Float64frombits(u)), nil

	case format.Str8Code:
		n, err := d.readByte()
		if err != nil {
			return value.Value{}, err
		}
		if int(n) <= format.FixStrMax {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeStrBody(int(n))

	case format.Str16Code:
		n, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}
		if n <= 0xff {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeStrBody(int(n))

	case format.Str32Code:
		n, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}
		if n <= 0xffff {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeStrBody(int(n))

	case format.Bin8Code:
		n, err := d.readByte()
		if err != nil {
			return value.Value{}, err
		}

		return d.decodeBinBody(int(n))

	case format.Bin16Code:
		n, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}
		if n <= 0xff {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeBinBody(int(n))

	case format.Bin32Code:
		n, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}
		if n <= 0xffff {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeBinBody(int(n))

	case format.Array16Code:
		n, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}
		if int(n) <= format.FixArrayMax {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeArrayBody(int(n))

	case format.Array32Code:
		n, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}
		if n <= 0xffff {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeArrayBody(int(n))

	case format.Map16Code:
		n, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}
		if int(n) <= format.FixMapMax {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeMapBody(int(n))

	case format.Map32Code:
		n, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}
		if n <= 0xffff {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeMapBody(int(n))

	case format.FixExt1Code:
		return d.decodeExtBody(1)
	case format.FixExt2Code:
		return d.decodeExtBody(2)
	case format.FixExt4Code:
		return d.decodeExtBody(4)
	case format.FixExt8Code:
		return d.decodeExtBody(8)
	case format.FixExt16Code:
		return d.decodeExtBody(16)

	case format.Ext8Code:
		n, err := d.readByte()
		if err != nil {
			return value.Value{}, err
		}
		if isFixExtSize(int(n)) {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeExtBody(int(n))

	case format.Ext16Code:
		n, err := d.readUint16()
		if err != nil {
			return value.Value{}, err
		}
		if n <= 0xff {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeExtBody(int(n))

	case format.Ext32Code:
		n, err := d.readUint32()
		if err != nil {
			return value.Value{}, err
		}
		if n <= 0xffff {
			return value.Value{}, errs.ErrNonCanonical
		}

		return d.decodeExtBody(int(n))
	}

	return value.Value{}, fmt.Errorf("%w: opcode 0x%02x", errs.ErrMalformed, op)
}

func isFixExtSize(n int) bool {
	switch n {
	case 1, 2, 4, 8, 16:
		return true
	default:
		return false
	}
}

func (d *decoder) decodeStrBody(n int) (value.Value, error) {
	b, err := d.readN(n)
	if err != nil {
		return value.Value{}, err
	}
	if !utf8.Valid(b) {
		return value.Value{}, errs.ErrInvalidUTF8
	}

	return value.MustStr(string(b)), nil
}

func (d *decoder) decodeBinBody(n int) (value.Value, error) {
	b, err := d.readN(n)
	if err != nil {
		return value.Value{}, err
	}
	cp := make([]byte, n)
	copy(cp, b)

	v, err := value.Bin(cp)
	if err != nil {
		return value.Value{}, err
	}

	return v, nil
}

func (d *decoder) decodeArrayBody(n int) (value.Value, error) {
	if err := d.enterContainer(); err != nil {
		return value.Value{}, err
	}
	defer d.leaveContainer()

	elems := make([]value.Value, n)
	for i := range elems {
		v, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = v
	}

	out, err := value.Array(elems)
	if err != nil {
		return value.Value{}, err
	}

	return out, nil
}

func (d *decoder) decodeMapBody(n int) (value.Value, error) {
	if err := d.enterContainer(); err != nil {
		return value.Value{}, err
	}
	defer d.leaveContainer()

	m := value.NewMapCap(n)

	prevKey := ""
	for i := 0; i < n; i++ {
		keyVal, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}
		key, ok := keyVal.AsStr()
		if !ok {
			return value.Value{}, fmt.Errorf("%w: map key is not Str", errs.ErrMalformed)
		}
		if i > 0 && key <= prevKey {
			return value.Value{}, fmt.Errorf("%w: map keys out of order or duplicate", errs.ErrNonCanonical)
		}
		prevKey = key

		val, err := d.decodeValue()
		if err != nil {
			return value.Value{}, err
		}

		if err := m.Set(key, val); err != nil {
			return value.Value{}, err
		}
	}

	return value.Obj(m), nil
}

func (d *decoder) decodeExtBody(n int) (value.Value, error) {
	typByte, err := d.readByte()
	if err != nil {
		return value.Value{}, err
	}
	typ := int8(typByte)

	body, err := d.readN(n)
	if err != nil {
		return value.Value{}, err
	}

	switch typ {
	case format.ExtTime:
		return decodeTimeBody(body)
	case format.ExtHash:
		return decodeHashBody(body)
	case format.ExtIdentity:
		return decodeIdentityBody(body)
	case format.ExtLockbox:
		return decodeLockboxBody(body)
	default:
		return value.Value{}, fmt.Errorf("%w: %d", errs.ErrUnknownExtType, typ)
	}
}
