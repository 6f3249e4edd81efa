package proof

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-rdf-proof/errs"
	"github.com/pilacorp/go-rdf-proof/rdf"
)

func signedDocument(t *testing.T) []byte {
	t.Helper()
	out, err := NewBuilder().Render(credentialStore(t), testCreated, testSignature)
	require.NoError(t, err)
	return out
}

func TestParse(t *testing.T) {
	doc, err := Parse(signedDocument(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultContext, doc.Context)
	assert.Equal(t, DefaultDescription, doc.Description)
	assert.Equal(t, testSignature, doc.Signature())
	assert.Equal(t, testCreated, doc.Created())
	require.NotNil(t, doc.Proof.VerificationMethod)
	assert.Equal(t, "did:example:123456789abcdefghi#key1", *doc.Proof.VerificationMethod)
}

func TestParseStoreRoundTrip(t *testing.T) {
	doc, err := Parse(signedDocument(t))
	require.NoError(t, err)

	store, err := doc.Store("credential1")
	require.NoError(t, err)
	assert.Equal(t, 5, store.Size())
	assert.True(t, store.IsCanonical())

	again, err := NewBuilder().Render(store, doc.Created(), doc.Signature())
	require.NoError(t, err)
	assert.Equal(t, signedDocument(t), again)
}

func TestSignedContent(t *testing.T) {
	doc, err := Parse(signedDocument(t))
	require.NoError(t, err)

	content, err := doc.SignedContent()
	require.NoError(t, err)
	assert.Equal(t, unsignedGolden, string(content))
}

func TestSignedContentWithMissingField(t *testing.T) {
	out, err := NewBuilder().Render(credentialStore(t, rdf.VerificationMethod), testCreated, testSignature)
	require.NoError(t, err)

	doc, err := Parse(out)
	require.NoError(t, err)
	assert.Nil(t, doc.Proof.VerificationMethod)

	content, err := doc.SignedContent()
	require.NoError(t, err)
	assert.NotContains(t, string(content), FieldVerificationMethod)
}

func TestSignedContentRejectsOtherLayouts(t *testing.T) {
	compact := strings.ReplaceAll(string(signedDocument(t)), "\n", "")

	doc, err := Parse([]byte(compact))
	require.NoError(t, err)

	_, err = doc.SignedContent()
	assert.True(t, errs.IsKind(err, errs.KindParse))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "Empty", doc: ""},
		{name: "Not JSON", doc: "{not json"},
		{name: "Missing proof", doc: `{"@context": ["http://schema.org/"], "description": "x"}`},
		{name: "Extra proof field", doc: `{"@context": ["a"], "description": "x", "proof": {"proofValue": "z"}}`},
		{name: "Lower case jws", doc: `{"@context": ["a"], "description": "x", "proof": {"jws": "4a19"}}`},
		{name: "Non string type", doc: `{"@context": ["a"], "description": "x", "proof": {"type": 7}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errs.IsKind(err, errs.KindParse), err.Error())
		})
	}
}

func TestValidateRenderedDocuments(t *testing.T) {
	assert.NoError(t, Validate([]byte(unsignedGolden)))
	assert.NoError(t, Validate(signedDocument(t)))
}

func TestContentID(t *testing.T) {
	id, err := ContentID([]byte(unsignedGolden))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "bafkrei"), id)

	again, err := ContentID([]byte(unsignedGolden))
	require.NoError(t, err)
	assert.Equal(t, id, again)

	other, err := ContentID(signedDocument(t))
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}
