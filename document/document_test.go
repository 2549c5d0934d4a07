package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foglayer/fogpack/codec"
	"github.com/foglayer/fogpack/errs"
	"github.com/foglayer/fogpack/fogcrypto"
	"github.com/foglayer/fogpack/schema"
	"github.com/foglayer/fogpack/value"
)

func buildNameSchema(t *testing.T) *schema.Schema {
	t.Helper()

	nameField := value.NewMap()
	require.NoError(t, nameField.Set("type", value.MustStr("Str")))

	req := value.NewMap()
	require.NoError(t, req.Set("name", value.Obj(nameField)))

	root := value.NewMap()
	require.NoError(t, root.Set("type", value.MustStr("Map")))
	require.NoError(t, root.Set("req", value.Obj(req)))
	require.NoError(t, root.Set("unknown_ok", value.Bool(false)))

	doc := value.NewMap()
	require.NoError(t, doc.Set("root", value.Obj(root)))

	s, err := schema.Build(value.Obj(doc))
	require.NoError(t, err)

	return s
}

func buildDictSchema(t *testing.T, dict []byte) *schema.Schema {
	t.Helper()

	nameField := value.NewMap()
	require.NoError(t, nameField.Set("type", value.MustStr("Str")))

	req := value.NewMap()
	require.NoError(t, req.Set("name", value.Obj(nameField)))

	root := value.NewMap()
	require.NoError(t, root.Set("type", value.MustStr("Map")))
	require.NoError(t, root.Set("req", value.Obj(req)))
	require.NoError(t, root.Set("unknown_ok", value.Bool(false)))

	dictVal, err := value.Bin(dict)
	require.NoError(t, err)
	docCompress := value.NewMap()
	require.NoError(t, docCompress.Set("kind", value.MustStr("dict")))
	require.NoError(t, docCompress.Set("dict", dictVal))
	compress := value.NewMap()
	require.NoError(t, compress.Set("doc", value.Obj(docCompress)))

	doc := value.NewMap()
	require.NoError(t, doc.Set("root", value.Obj(root)))
	require.NoError(t, doc.Set("compress", value.Obj(compress)))

	s, err := schema.Build(value.Obj(doc))
	require.NoError(t, err)

	return s
}

func buildEntryDictSchema(t *testing.T, key string, dict []byte) *schema.Schema {
	t.Helper()

	root := value.NewMap()
	require.NoError(t, root.Set("type", value.MustStr("Map")))
	require.NoError(t, root.Set("unknown_ok", value.Bool(true)))

	dictVal, err := value.Bin(dict)
	require.NoError(t, err)
	entryCompress := value.NewMap()
	require.NoError(t, entryCompress.Set("kind", value.MustStr("dict")))
	require.NoError(t, entryCompress.Set("dict", dictVal))
	entries := value.NewMap()
	require.NoError(t, entries.Set(key, value.Obj(entryCompress)))
	compress := value.NewMap()
	require.NoError(t, compress.Set("entries", value.Obj(entries)))

	doc := value.NewMap()
	require.NoError(t, doc.Set("root", value.Obj(root)))
	require.NoError(t, doc.Set("compress", value.Obj(compress)))

	s, err := schema.Build(value.Obj(doc))
	require.NoError(t, err)

	return s
}

func buildDocValue(t *testing.T, s *schema.Schema, name string) value.Value {
	t.Helper()

	m := value.NewMap()
	require.NoError(t, m.Set("name", value.MustStr(name)))
	require.NoError(t, m.Set("", value.HashValue(s.Hash())))

	return value.Obj(m)
}

func TestEncodeDecodeDocumentRoundTrip(t *testing.T) {
	s := buildNameSchema(t)
	root := buildDocValue(t, s, "alice")

	doc, frame, err := Encode(s, root)
	require.NoError(t, err)
	require.NotEmpty(t, frame)

	decoded, err := Decode(s, frame, nil)
	require.NoError(t, err)
	require.True(t, decoded.Hash.Equal(doc.Hash))
	require.Empty(t, decoded.Signatures)
}

func TestEncodeDecodeDocumentWithSignature(t *testing.T) {
	s := buildNameSchema(t)
	root := buildDocValue(t, s, "bob")

	signer, err := fogcrypto.GenerateSigningKey()
	require.NoError(t, err)

	doc, frame, err := Encode(s, root, signer)
	require.NoError(t, err)
	require.Len(t, doc.Signatures, 1)

	decoded, err := Decode(s, frame, &doc.Hash)
	require.NoError(t, err)
	require.Len(t, decoded.Signatures, 1)
	require.True(t, decoded.Signatures[0].Signer.Equal(signer.Identity))
}

func TestDecodeDocumentRejectsExpectedHashMismatch(t *testing.T) {
	s := buildNameSchema(t)
	root := buildDocValue(t, s, "carol")

	_, frame, err := Encode(s, root)
	require.NoError(t, err)

	wrong := value.NullHash()
	_, err = Decode(s, frame, &wrong)
	require.ErrorIs(t, err, errs.ErrHashMismatch)
}

func TestDecodeDocumentRejectsBadSignature(t *testing.T) {
	s := buildNameSchema(t)
	root := buildDocValue(t, s, "dave")

	signer, err := fogcrypto.GenerateSigningKey()
	require.NoError(t, err)

	_, frame, err := Encode(s, root, signer)
	require.NoError(t, err)
	frame[len(frame)-1] ^= 0xFF

	_, err = Decode(s, frame, nil)
	require.Error(t, err)
}

func TestEncodeRejectsValueFailingSchema(t *testing.T) {
	s := buildNameSchema(t)

	m := value.NewMap()
	require.NoError(t, m.Set("", value.HashValue(s.Hash())))

	_, _, err := Encode(s, value.Obj(m))
	require.Error(t, err)
}

func TestDecodeDocumentAcceptsMatchingCallerDict(t *testing.T) {
	dict := []byte(strings.Repeat("shared-schema-boilerplate-", 8))
	s := buildDictSchema(t, dict)
	root := buildDocValue(t, s, "erin")

	doc, frame, err := Encode(s, root)
	require.NoError(t, err)

	decoded, err := Decode(s, frame, nil, WithDict(dict))
	require.NoError(t, err)
	require.True(t, decoded.Hash.Equal(doc.Hash))
}

func TestDecodeDocumentRejectsMismatchedCallerDict(t *testing.T) {
	dict := []byte(strings.Repeat("shared-schema-boilerplate-", 8))
	s := buildDictSchema(t, dict)
	root := buildDocValue(t, s, "frank")

	_, frame, err := Encode(s, root)
	require.NoError(t, err)

	wrongDict := []byte(strings.Repeat("not-the-right-dictionary-", 8))
	_, err = Decode(s, frame, nil, WithDict(wrongDict))
	require.ErrorIs(t, err, errs.ErrDictMismatch)
}

func TestEncodeDecodeEntryRoundTrip(t *testing.T) {
	s := buildNameSchema(t)
	parent := fogcrypto.Hash([]byte("parent document body"))

	entry, frame, err := EncodeEntry(s, parent, "comment", value.MustStr("nice document"))
	require.NoError(t, err)
	require.NotEmpty(t, frame)

	decoded, err := DecodeEntry(s, parent, "comment", frame)
	require.NoError(t, err)
	require.True(t, decoded.Hash.Equal(entry.Hash))
	require.Equal(t, "comment", decoded.Key)
}

func TestDecodeEntryRejectsMismatchedCallerDict(t *testing.T) {
	dict := []byte(strings.Repeat("entry-dictionary-content-", 8))
	s := buildEntryDictSchema(t, "comment", dict)
	parent := fogcrypto.Hash([]byte("parent document body"))

	_, frame, err := EncodeEntry(s, parent, "comment", value.MustStr("entry-dictionary-content-tail"))
	require.NoError(t, err)

	wrongDict := []byte(strings.Repeat("wrong-dictionary-content-", 8))
	_, err = DecodeEntry(s, parent, "comment", frame, WithDict(wrongDict))
	require.ErrorIs(t, err, errs.ErrDictMismatch)
}

func TestEntryHashBindsParentAndKey(t *testing.T) {
	parentA := fogcrypto.Hash([]byte("a"))
	parentB := fogcrypto.Hash([]byte("b"))

	hashA, err := entryHash(parentA, "k", value.MustStr("v"))
	require.NoError(t, err)
	hashB, err := entryHash(parentB, "k", value.MustStr("v"))
	require.NoError(t, err)
	require.False(t, hashA.Equal(hashB))

	hashC, err := entryHash(parentA, "other", value.MustStr("v"))
	require.NoError(t, err)
	require.False(t, hashA.Equal(hashC))
}

func TestSignatureArrayRoundTrip(t *testing.T) {
	signer, err := fogcrypto.GenerateSigningKey()
	require.NoError(t, err)

	hash := fogcrypto.Hash([]byte("body"))
	sigs := []Signature{{Signer: signer.Identity, Sig: signer.Sign(hash)}}

	encoded, err := encodeSignatures(sigs)
	require.NoError(t, err)

	decoded, err := decodeSignatures(encoded, codec.DefaultLimits())
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.True(t, decoded[0].Signer.Equal(signer.Identity))
}
