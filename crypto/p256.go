package crypto

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/pilacorp/go-rdf-proof/errs"
)

// P256Signer signs SHA-224 digests with ECDSA over P-256.
type P256Signer struct {
	privateKey *ecdsa.PrivateKey
	hash       crypto.Hash
}

// NewP256Signer creates a signer for a P-256 private key.
func NewP256Signer(privateKey *ecdsa.PrivateKey) (*P256Signer, error) {
	if privateKey == nil {
		return nil, errs.New(errs.KindKey, "crypto.NewP256Signer", "private key is nil")
	}
	if privateKey.Curve != elliptic.P256() {
		return nil, errs.New(errs.KindKey, "crypto.NewP256Signer", "private key is not on P-256")
	}
	return &P256Signer{privateKey: privateKey, hash: crypto.SHA224}, nil
}

// Sign hashes msg and returns the 64-byte r||s signature.
func (s *P256Signer) Sign(msg []byte) ([]byte, error) {
	digest, err := Digest(s.hash, msg)
	if err != nil {
		return nil, err
	}
	r, sVal, err := ecdsa.Sign(rand.Reader, s.privateKey, digest)
	if err != nil {
		return nil, errs.Wrap(errs.KindSign, "crypto.P256Signer", "ecdsa sign error", err)
	}
	return padSignature(r.Bytes(), sVal.Bytes()), nil
}

// Curve returns CurveP256.
func (s *P256Signer) Curve() Curve {
	return CurveP256
}

// PublicKey returns the uncompressed SEC1 public key.
func (s *P256Signer) PublicKey() []byte {
	return elliptic.Marshal(elliptic.P256(), s.privateKey.X, s.privateKey.Y)
}

// P256Verifier verifies signatures made by P256Signer.
type P256Verifier struct {
	publicKey *ecdsa.PublicKey
	hash      crypto.Hash
}

// NewP256Verifier parses an uncompressed or compressed SEC1 public key.
func NewP256Verifier(publicKey []byte) (*P256Verifier, error) {
	curve := elliptic.P256()
	var x, y *big.Int
	if len(publicKey) == 33 {
		x, y = elliptic.UnmarshalCompressed(curve, publicKey)
	} else {
		x, y = elliptic.Unmarshal(curve, publicKey)
	}
	if x == nil {
		return nil, errs.New(errs.KindKey, "crypto.NewP256Verifier", "invalid public key bytes")
	}
	return &P256Verifier{
		publicKey: &ecdsa.PublicKey{Curve: curve, X: x, Y: y},
		hash:      crypto.SHA224,
	}, nil
}

// Verify checks a 64-byte r||s signature over msg.
func (v *P256Verifier) Verify(msg, signature []byte) (bool, error) {
	if len(signature) != SignatureSize {
		return false, errs.New(errs.KindVerify, "crypto.P256Verifier",
			fmt.Sprintf("invalid signature length: expected %d bytes, got %d", SignatureSize, len(signature)))
	}
	digest, err := Digest(v.hash, msg)
	if err != nil {
		return false, err
	}
	r := new(big.Int).SetBytes(signature[:32])
	s := new(big.Int).SetBytes(signature[32:])
	if r.Sign() == 0 || s.Sign() == 0 {
		return false, nil
	}
	return ecdsa.Verify(v.publicKey, digest, r, s), nil
}

// Curve returns CurveP256.
func (v *P256Verifier) Curve() Curve {
	return CurveP256
}
