// Package signer holds the sign and verify collaborators the pipeline calls:
// an in-process signer backed by a key, and a remote signing service.
package signer

import (
	"context"
	"fmt"

	"github.com/pilacorp/go-rdf-proof/crypto"
	"github.com/pilacorp/go-rdf-proof/errs"
)

// Signer signs a document's unsigned bytes and returns the signature as
// upper-case hex.
type Signer interface {
	Sign(ctx context.Context, data []byte) (string, error)
}

// Verifier checks a hex signature over a document's unsigned bytes.
type Verifier interface {
	Verify(ctx context.Context, data []byte, signature string) (bool, error)
}

// LocalSigner signs with an in-process key.
type LocalSigner struct {
	signer crypto.MessageSigner
}

// NewLocalSigner wraps a crypto.MessageSigner.
func NewLocalSigner(s crypto.MessageSigner) (*LocalSigner, error) {
	if s == nil {
		return nil, errs.New(errs.KindKey, "signer.NewLocalSigner", "message signer is nil")
	}
	return &LocalSigner{signer: s}, nil
}

// NewFromKeyFile loads a key file and returns a signer for it.
func NewFromKeyFile(path string) (*LocalSigner, error) {
	kf, err := crypto.LoadKeyFile(path)
	if err != nil {
		return nil, err
	}
	s, err := kf.Signer()
	if err != nil {
		return nil, err
	}
	return NewLocalSigner(s)
}

// Sign hashes and signs data. Hash errors keep their kind; anything else,
// including a signature of the wrong length, is a sign failure.
func (l *LocalSigner) Sign(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(errs.KindSign, "signer.Sign", "context done", err)
	}
	sig, err := l.signer.Sign(data)
	if err != nil {
		if errs.KindOf(err) == "" {
			err = errs.Wrap(errs.KindSign, "signer.Sign", "signing failed", err)
		}
		return "", err
	}
	if len(sig) != crypto.SignatureSize {
		return "", errs.New(errs.KindSign, "signer.Sign",
			fmt.Sprintf("unexpected signature length: expected %d bytes, got %d", crypto.SignatureSize, len(sig)))
	}
	return crypto.EncodeSignature(sig), nil
}

// Curve returns the signing curve.
func (l *LocalSigner) Curve() crypto.Curve {
	return l.signer.Curve()
}

// LocalVerifier verifies with an in-process public key.
type LocalVerifier struct {
	verifier crypto.MessageVerifier
}

// NewLocalVerifier wraps a crypto.MessageVerifier.
func NewLocalVerifier(v crypto.MessageVerifier) (*LocalVerifier, error) {
	if v == nil {
		return nil, errs.New(errs.KindKey, "signer.NewLocalVerifier", "message verifier is nil")
	}
	return &LocalVerifier{verifier: v}, nil
}

// NewVerifierFromKeyFile loads a key file and returns a verifier for its
// public key.
func NewVerifierFromKeyFile(path string) (*LocalVerifier, error) {
	kf, err := crypto.LoadKeyFile(path)
	if err != nil {
		return nil, err
	}
	v, err := kf.Verifier()
	if err != nil {
		return nil, err
	}
	return NewLocalVerifier(v)
}

// Verify decodes the hex signature and checks it over data.
func (l *LocalVerifier) Verify(ctx context.Context, data []byte, signature string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errs.Wrap(errs.KindVerify, "signer.Verify", "context done", err)
	}
	sig, err := crypto.DecodeSignature(signature)
	if err != nil {
		return false, err
	}
	return l.verifier.Verify(data, sig)
}
