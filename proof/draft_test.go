package proof

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-rdf-proof/errs"
)

func TestDraftTwoSteps(t *testing.T) {
	d := NewDraft(nil, credentialStore(t), testCreated)

	_, err := d.RenderSigned(testSignature)
	assert.True(t, errs.IsKind(err, errs.KindRender), "signing before the unsigned render must fail")

	unsigned, err := d.RenderUnsigned()
	require.NoError(t, err)
	assert.Equal(t, unsignedGolden, string(unsigned))
	assert.Equal(t, unsigned, d.Unsigned())

	_, err = d.RenderUnsigned()
	assert.True(t, errs.IsKind(err, errs.KindRender))

	signed, err := d.RenderSigned(testSignature)
	require.NoError(t, err)
	assert.Contains(t, string(signed), testSignature)

	_, err = d.RenderSigned(testSignature)
	assert.True(t, errs.IsKind(err, errs.KindRender), "a draft is signed once")
}

func TestDraftRejectsBadSignature(t *testing.T) {
	d := NewDraft(NewBuilder(), credentialStore(t), testCreated)
	_, err := d.RenderUnsigned()
	require.NoError(t, err)

	for _, sig := range []string{"", "ABC", "4a19", "GG", " 4A19"} {
		_, err := d.RenderSigned(sig)
		assert.True(t, errs.IsKind(err, errs.KindSign), sig)
	}

	_, err = d.RenderSigned("4A19")
	assert.NoError(t, err, "a rejected signature leaves the draft usable")
}

func TestDraftOverflowOnSignedRender(t *testing.T) {
	d := NewDraft(NewBuilder(WithMaxSize(len(unsignedGolden))), credentialStore(t), testCreated)
	_, err := d.RenderUnsigned()
	require.NoError(t, err)

	_, err = d.RenderSigned(strings.Repeat("AB", 32))
	assert.True(t, errs.IsKind(err, errs.KindRenderOverflow))
}

func TestCheckSignature(t *testing.T) {
	assert.NoError(t, CheckSignature(testSignature))
	assert.NoError(t, CheckSignature("00"))
	assert.Error(t, CheckSignature("0"))
	assert.Error(t, CheckSignature("ab"))
}
