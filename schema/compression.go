package schema

import (
	"fmt"

	"github.com/foglayer/fogpack/compress"
	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/fogcrypto"
	"github.com/foglayer/fogpack/value"
)

// compressionSpec is the parsed form of a `compress` Map entry in a
// schema document (spec.md §4.6): `{"kind":"none"|"general"|"dict",
// "algorithm":Int, "level":Int, "dict":Bin}`. Dict's hash is recorded so
// decode_doc/decode_entry can refuse to decompress with a
// caller-supplied dictionary that does not match (errs.ErrDictMismatch).
type compressionSpec struct {
	policy   compress.Policy
	dictHash value.Hash
}

func parseCompressionSpec(v value.Value) (compressionSpec, error) {
	m, ok := v.AsMap()
	if !ok {
		return compressionSpec{}, fmt.Errorf("%w: compress entry must be a Map", errs.ErrBadCoreShape)
	}

	kindStr, _ := fieldStr(m, "kind")
	algo, _ := fieldUint(m, "algorithm")
	level, _ := fieldUint(m, "level")

	spec := compressionSpec{policy: compress.Policy{Algorithm: compress.AlgorithmZstd}}
	if algo != nil {
		spec.policy.Algorithm = compress.Algorithm(*algo)
	}
	if level != nil {
		spec.policy.Level = int(*level)
	}

	switch kindStr {
	case "", "none":
		spec.policy.Kind = compress.KindNone
	case "general":
		spec.policy.Kind = compress.KindGeneral
	case "dict":
		spec.policy.Kind = compress.KindDict
		dict := fieldBin(m, "dict")
		if len(dict) == 0 {
			return compressionSpec{}, fmt.Errorf("%w: dict policy requires a non-empty \"dict\"", errs.ErrBadCoreShape)
		}
		spec.policy.Dict = dict
		spec.dictHash = fogcrypto.Hash(dict)
	default:
		return compressionSpec{}, fmt.Errorf("%w: unknown compress kind %q", errs.ErrBadCoreShape, kindStr)
	}

	return spec, nil
}

// checkDict verifies a decoder-supplied dictionary against the hash
// recorded at schema-build time (spec.md §4.6).
func (s compressionSpec) checkDict(dict []byte) error {
	if s.policy.Kind != compress.KindDict {
		return nil
	}
	if !fogcrypto.Hash(dict).Equal(s.dictHash) {
		return errs.ErrDictMismatch
	}

	return nil
}
