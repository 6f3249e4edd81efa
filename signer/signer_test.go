package signer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilacorp/go-rdf-proof/crypto"
	"github.com/pilacorp/go-rdf-proof/errs"
)

var document = []byte("{\n  \"proof\": {\n    \"jws\": \"\"\n  }\n}\n")

type fakeMessageSigner struct {
	sig []byte
	err error
}

func (f *fakeMessageSigner) Sign([]byte) ([]byte, error) { return f.sig, f.err }
func (f *fakeMessageSigner) Curve() crypto.Curve        { return crypto.CurveP256 }
func (f *fakeMessageSigner) PublicKey() []byte          { return nil }

func TestLocalSignVerify(t *testing.T) {
	for _, curve := range []crypto.Curve{crypto.CurveP256, crypto.CurveSecp256k1} {
		t.Run(string(curve), func(t *testing.T) {
			dir := t.TempDir()
			kf, err := crypto.GenerateKey(curve)
			require.NoError(t, err)
			require.NoError(t, kf.Save(filepath.Join(dir, "key.yaml")))
			require.NoError(t, kf.Public().Save(filepath.Join(dir, "pub.yaml")))

			s, err := NewFromKeyFile(filepath.Join(dir, "key.yaml"))
			require.NoError(t, err)
			assert.Equal(t, curve, s.Curve())
			v, err := NewVerifierFromKeyFile(filepath.Join(dir, "pub.yaml"))
			require.NoError(t, err)

			sig, err := s.Sign(context.Background(), document)
			require.NoError(t, err)
			assert.Len(t, sig, 2*crypto.SignatureSize)
			assert.NoError(t, checkUpperHex(sig))

			ok, err := v.Verify(context.Background(), document, sig)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = v.Verify(context.Background(), []byte("other"), sig)
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = v.Verify(context.Background(), document, "NOTHEX")
			assert.True(t, errs.IsKind(err, errs.KindVerify))
		})
	}
}

func TestLocalSignFailures(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeMessageSigner
		kind errs.Kind
	}{
		{name: "Plain error", fake: &fakeMessageSigner{err: errors.New("engine busy")}, kind: errs.KindSign},
		{name: "Hash error keeps its kind", fake: &fakeMessageSigner{err: errs.New(errs.KindHash, "test", "bad digest")}, kind: errs.KindHash},
		{name: "Short signature", fake: &fakeMessageSigner{sig: make([]byte, 63)}, kind: errs.KindSign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewLocalSigner(tt.fake)
			require.NoError(t, err)

			_, err = s.Sign(context.Background(), document)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errs.KindOf(err))
		})
	}
}

func TestLocalSignCancelledContext(t *testing.T) {
	s, err := NewLocalSigner(&fakeMessageSigner{sig: make([]byte, 64)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Sign(ctx, document)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errs.IsKind(err, errs.KindSign))
}

func TestNilCollaborators(t *testing.T) {
	_, err := NewLocalSigner(nil)
	assert.Error(t, err)
	_, err = NewLocalVerifier(nil)
	assert.Error(t, err)
}

func checkUpperHex(s string) error {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return errors.New("not upper-case hex")
		}
	}
	return nil
}
