package document

import (
	"encoding/binary"
	"fmt"

	"github.com/foglayer/fogpack/codec"
	"github.com/foglayer/fogpack/compress"
	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/fogcrypto"
	"github.com/foglayer/fogpack/format"
	"github.com/foglayer/fogpack/value"
)

// Signature is one entry of a frame's trailing signature array: the
// identity that signed and the raw signature bytes (spec.md §4.5).
type Signature struct {
	Signer value.Identity
	Sig    []byte
}

// frameHeaderSize is the header byte plus the uint32 body-length prefix
// that lets a decoder find the signature array's start without parsing
// a (possibly compressed) body first.
const frameHeaderSize = 1 + 4

func encodeFrame(policy compress.Policy, schemaPresent bool, body []byte, sigs []Signature) ([]byte, error) {
	cc, err := compress.NewCodec(policy)
	if err != nil {
		return nil, err
	}

	compressedBody, err := cc.Compress(body)
	if err != nil {
		return nil, fmt.Errorf("document: compress body: %w", err)
	}

	sigBytes, err := encodeSignatures(sigs)
	if err != nil {
		return nil, err
	}

	header := format.EncodeFrameHeader(schemaPresent, byte(policy.Kind))

	out := make([]byte, 0, frameHeaderSize+len(compressedBody)+len(sigBytes))
	out = append(out, header)
	out = binary.BigEndian.AppendUint32(out, uint32(len(compressedBody)))
	out = append(out, compressedBody...)
	out = append(out, sigBytes...)

	return out, nil
}

// decodedFrame is a frame's parsed-but-not-yet-validated contents.
type decodedFrame struct {
	schemaPresent bool
	compression   byte
	body          []byte
	sigs          []Signature
}

func decodeFrame(data []byte, policy compress.Policy, limits codec.Limits) (decodedFrame, error) {
	if len(data) < frameHeaderSize {
		return decodedFrame{}, fmt.Errorf("%w: frame shorter than header", errs.ErrMalformed)
	}

	schemaPresent, compression, ok := format.DecodeFrameHeader(data[0])
	if !ok {
		return decodedFrame{}, fmt.Errorf("%w: reserved frame header bit set", errs.ErrMalformed)
	}

	if compression != byte(policy.Kind) {
		return decodedFrame{}, fmt.Errorf("%w: frame declares compression %d, schema expects %d", errs.ErrMalformed, compression, policy.Kind)
	}

	bodyLen := binary.BigEndian.Uint32(data[1:5])
	rest := data[5:]
	if uint64(bodyLen) > uint64(len(rest)) {
		return decodedFrame{}, fmt.Errorf("%w: frame body length exceeds available bytes", errs.ErrMalformed)
	}
	compressedBody := rest[:bodyLen]
	sigBytes := rest[bodyLen:]

	cc, err := compress.NewCodec(policy)
	if err != nil {
		return decodedFrame{}, err
	}
	body, err := cc.Decompress(compressedBody, limits.MaxSize)
	if err != nil {
		return decodedFrame{}, fmt.Errorf("document: decompress body: %w", err)
	}

	sigs, err := decodeSignatures(sigBytes, limits)
	if err != nil {
		return decodedFrame{}, err
	}

	return decodedFrame{
		schemaPresent: schemaPresent,
		compression:   compression,
		body:          body,
		sigs:          sigs,
	}, nil
}

func encodeSignatures(sigs []Signature) ([]byte, error) {
	elems := make([]value.Value, len(sigs))
	for i, s := range sigs {
		sigBin, err := value.Bin(s.Sig)
		if err != nil {
			return nil, err
		}
		pair, err := value.Array([]value.Value{value.IdentityValue(s.Signer), sigBin})
		if err != nil {
			return nil, err
		}
		elems[i] = pair
	}

	arr, err := value.Array(elems)
	if err != nil {
		return nil, err
	}

	return codec.Encode(arr)
}

func decodeSignatures(data []byte, limits codec.Limits) ([]Signature, error) {
	v, err := codec.Decode(data, limits)
	if err != nil {
		return nil, fmt.Errorf("document: decode signature array: %w", err)
	}

	elems, ok := v.AsArray()
	if !ok {
		return nil, fmt.Errorf("%w: signatures must be an Array", errs.ErrMalformed)
	}

	sigs := make([]Signature, len(elems))
	for i, elem := range elems {
		pair, ok := elem.AsArray()
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("%w: signature entry must be a 2-element Array", errs.ErrMalformed)
		}
		id, ok := pair[0].AsIdentity()
		if !ok {
			return nil, fmt.Errorf("%w: signature entry's first element must be an Identity", errs.ErrMalformed)
		}
		sig, ok := pair[1].AsBin()
		if !ok {
			return nil, fmt.Errorf("%w: signature entry's second element must be Bin", errs.ErrMalformed)
		}
		sigs[i] = Signature{Signer: id, Sig: sig}
	}

	return sigs, nil
}

func signAll(hash value.Hash, signers []*fogcrypto.SigningKey) []Signature {
	sigs := make([]Signature, len(signers))
	for i, signer := range signers {
		sigs[i] = Signature{Signer: signer.Identity, Sig: signer.Sign(hash)}
	}

	return sigs
}

func verifyAll(hash value.Hash, sigs []Signature) error {
	for _, s := range sigs {
		if err := fogcrypto.Verify(s.Signer, hash, s.Sig); err != nil {
			return err
		}
	}

	return nil
}
