package proof

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-rdf-proof/errs"
	"github.com/pilacorp/go-rdf-proof/rdf"
)

const (
	testCreated   = "2025-10-23T05:50:16Z"
	testSignature = "4A19274429E40522234B8785DC25FC524F179DCC95FF09B3C9770FC71F54CA0D" +
		"58982B79A65B7320F5B92D13BDAECDD1259E760F0F718BA933FD098F6F75D4B7"
)

const unsignedGolden = `{
  "@context": ["http://schema.org/", "https://w3id.org/security/v2"],
  "description": "Hello World!",
  "proof": {
    "type": "EcdsaSignature2018",
    "created": "2025-10-23T05:50:16Z",
    "verificationMethod": "did:example:123456789abcdefghi#key1",
    "proofPurpose": "assertionMethod",
    "jws": ""
  }
}
`

func credentialStore(t *testing.T, skip ...string) *rdf.Store {
	t.Helper()
	rows := [][2]string{
		{" ProofType ", "EcdsaSignature2018"},
		{" ProofCreated ", "placeholder"},
		{" VerificationMethod ", " did:example:123456789abcdefghi#key1"},
		{" ProofPurpose ", "assertionMethod"},
		{" jws ", ""},
	}
	s := rdf.NewStore()
outer:
	for _, r := range rows {
		for _, p := range skip {
			if strings.TrimSpace(r[0]) == p {
				continue outer
			}
		}
		require.NoError(t, s.Add(" credential1 ", r[0], r[1]))
	}
	s.Canonicalize()
	return s
}

func TestRenderUnsignedGolden(t *testing.T) {
	out, err := NewBuilder().Render(credentialStore(t), testCreated, "")
	require.NoError(t, err)
	assert.Equal(t, unsignedGolden, string(out))
	assert.True(t, json.Valid(out))
}

func TestRenderSignedDiffersOnlyInJWS(t *testing.T) {
	b := NewBuilder()
	store := credentialStore(t)

	unsigned, err := b.Render(store, testCreated, "")
	require.NoError(t, err)
	signed, err := b.Render(store, testCreated, testSignature)
	require.NoError(t, err)

	expected := strings.Replace(unsignedGolden, `"jws": ""`, `"jws": "`+testSignature+`"`, 1)
	assert.Equal(t, expected, string(signed))

	cut := bytes.Index(unsigned, []byte(`"jws": "`)) + len(`"jws": "`)
	assert.Equal(t, unsigned[:cut], signed[:cut])
	assert.Equal(t, unsigned[cut:], signed[cut+len(testSignature):])
}

func TestRenderDeterministic(t *testing.T) {
	b := NewBuilder()
	store := credentialStore(t)

	first, err := b.Render(store, testCreated, testSignature)
	require.NoError(t, err)
	second, err := b.Render(store, testCreated, testSignature)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderOmitsAbsentFields(t *testing.T) {
	tests := []struct {
		name    string
		skip    []string
		missing []string
	}{
		{name: "No verification method", skip: []string{rdf.VerificationMethod}, missing: []string{FieldVerificationMethod}},
		{name: "No jws", skip: []string{rdf.JWS}, missing: []string{FieldJWS}},
		{name: "No created and no type", skip: []string{rdf.ProofCreated, rdf.ProofType}, missing: []string{FieldCreated, FieldType}},
		{
			name:    "Empty proof block",
			skip:    []string{rdf.ProofType, rdf.ProofCreated, rdf.VerificationMethod, rdf.ProofPurpose, rdf.JWS},
			missing: []string{FieldType, FieldCreated, FieldVerificationMethod, FieldProofPurpose, FieldJWS},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewBuilder().Render(credentialStore(t, tt.skip...), testCreated, testSignature)
			require.NoError(t, err)
			require.True(t, json.Valid(out), string(out))

			var decoded struct {
				Proof map[string]interface{} `json:"proof"`
			}
			require.NoError(t, json.Unmarshal(out, &decoded))
			for _, field := range tt.missing {
				assert.NotContains(t, decoded.Proof, field)
			}
			assert.Len(t, decoded.Proof, 5-len(tt.missing))
		})
	}
}

func TestRenderIgnoresUnrecognizedPredicates(t *testing.T) {
	store := credentialStore(t)
	require.NoError(t, store.Add("credential1", "proofValue", "ignored"))
	require.NoError(t, store.Add("credential0", "Nonce", "ignored"))
	store.Canonicalize()

	out, err := NewBuilder().Render(store, testCreated, "")
	require.NoError(t, err)
	assert.Equal(t, unsignedGolden, string(out))
}

func TestRenderUsesArgumentsNotTripleObjects(t *testing.T) {
	out, err := NewBuilder().Render(credentialStore(t), "2030-01-01T00:00:00Z", "AB")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "placeholder")
	assert.Contains(t, string(out), `"created": "2030-01-01T00:00:00Z"`)
	assert.Contains(t, string(out), `"jws": "AB"`)
}

func TestRenderEscapesStrings(t *testing.T) {
	s := rdf.NewStore()
	require.NoError(t, s.Add("c", rdf.ProofType, `Quote"d\ <&>`))
	s.Canonicalize()

	out, err := NewBuilder().Render(s, testCreated, "")
	require.NoError(t, err)
	require.True(t, json.Valid(out))
	assert.Contains(t, string(out), `"type": "Quote\"d\\ <&>"`)
}

func TestRenderErrors(t *testing.T) {
	t.Run("Overflow", func(t *testing.T) {
		s := rdf.NewStore()
		require.NoError(t, s.Add("c", rdf.ProofType, strings.Repeat("x", 4096)))
		s.Canonicalize()

		_, err := NewBuilder().Render(s, testCreated, "")
		assert.True(t, errs.IsKind(err, errs.KindRenderOverflow))
	})

	t.Run("Limit is inclusive", func(t *testing.T) {
		store := credentialStore(t)
		b := NewBuilder(WithMaxSize(len(unsignedGolden)))
		_, err := b.Render(store, testCreated, "")
		assert.NoError(t, err)

		_, err = b.Render(store, testCreated, "00")
		assert.True(t, errs.IsKind(err, errs.KindRenderOverflow))
	})

	t.Run("Not canonical", func(t *testing.T) {
		s := rdf.NewStore()
		require.NoError(t, s.Add("c", rdf.ProofType, "a"))
		require.NoError(t, s.Add("b", rdf.ProofPurpose, "a"))

		_, err := NewBuilder().Render(s, testCreated, "")
		assert.True(t, errs.IsKind(err, errs.KindRender))
	})

	t.Run("Duplicate predicate", func(t *testing.T) {
		store := credentialStore(t)
		require.NoError(t, store.Add("credential2", rdf.ProofType, "Ed25519Signature2020"))
		store.Canonicalize()

		_, err := NewBuilder().Render(store, testCreated, "")
		assert.True(t, errs.IsKind(err, errs.KindRender))
	})

	t.Run("Nil store", func(t *testing.T) {
		_, err := NewBuilder().Render(nil, testCreated, "")
		assert.True(t, errs.IsKind(err, errs.KindRender))
	})
}

func TestBuilderOptions(t *testing.T) {
	b := NewBuilder(WithDescription("Sensor reading"), WithContext("https://www.w3.org/2018/credentials/v1"))
	out, err := b.Render(credentialStore(t), testCreated, "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out),
		"{\n  \"@context\": [\"https://www.w3.org/2018/credentials/v1\"],\n  \"description\": \"Sensor reading\",\n"))
	assert.Equal(t, DefaultMaxSize, b.MaxSize())
}
