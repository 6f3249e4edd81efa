package crypto

import (
	"crypto"
	"crypto/ecdsa"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/pilacorp/go-rdf-proof/errs"
)

// Secp256k1Signer signs SHA-256 digests with ECDSA over secp256k1.
type Secp256k1Signer struct {
	privateKey *ecdsa.PrivateKey
	hash       crypto.Hash
}

// NewSecp256k1Signer creates a signer from a 32-byte private key.
func NewSecp256k1Signer(privateKey []byte) (*Secp256k1Signer, error) {
	if len(privateKey) != 32 {
		return nil, errs.New(errs.KindKey, "crypto.NewSecp256k1Signer", "private key must be 32 bytes")
	}
	priv, err := ethcrypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errs.Wrap(errs.KindKey, "crypto.NewSecp256k1Signer", "invalid private key", err)
	}
	return &Secp256k1Signer{privateKey: priv, hash: crypto.SHA256}, nil
}

// Sign hashes msg and returns the 64-byte r||s signature. The recovery byte
// produced by go-ethereum is dropped.
func (s *Secp256k1Signer) Sign(msg []byte) ([]byte, error) {
	digest, err := Digest(s.hash, msg)
	if err != nil {
		return nil, err
	}
	sig, err := ethcrypto.Sign(digest, s.privateKey)
	if err != nil {
		return nil, errs.Wrap(errs.KindSign, "crypto.Secp256k1Signer", "sign error", err)
	}
	if len(sig) != SignatureSize+1 {
		return nil, errs.New(errs.KindSign, "crypto.Secp256k1Signer",
			fmt.Sprintf("invalid signature length: expected %d bytes, got %d", SignatureSize+1, len(sig)))
	}
	return sig[:SignatureSize], nil
}

// Curve returns CurveSecp256k1.
func (s *Secp256k1Signer) Curve() Curve {
	return CurveSecp256k1
}

// PublicKey returns the uncompressed SEC1 public key.
func (s *Secp256k1Signer) PublicKey() []byte {
	return ethcrypto.FromECDSAPub(&s.privateKey.PublicKey)
}

// Secp256k1Verifier verifies signatures made by Secp256k1Signer.
type Secp256k1Verifier struct {
	publicKey []byte
	hash      crypto.Hash
}

// NewSecp256k1Verifier accepts a 33-byte compressed or 65-byte uncompressed
// public key.
func NewSecp256k1Verifier(publicKey []byte) (*Secp256k1Verifier, error) {
	if len(publicKey) == 33 {
		parsed, err := btcec.ParsePubKey(publicKey)
		if err != nil {
			return nil, errs.Wrap(errs.KindKey, "crypto.NewSecp256k1Verifier", "failed to parse compressed public key", err)
		}
		publicKey = parsed.SerializeUncompressed()
	}
	if _, err := ethcrypto.UnmarshalPubkey(publicKey); err != nil {
		return nil, errs.Wrap(errs.KindKey, "crypto.NewSecp256k1Verifier", "failed to parse public key", err)
	}
	return &Secp256k1Verifier{publicKey: publicKey, hash: crypto.SHA256}, nil
}

// Verify checks a 64-byte r||s signature over msg.
func (v *Secp256k1Verifier) Verify(msg, signature []byte) (bool, error) {
	if len(signature) != SignatureSize {
		return false, errs.New(errs.KindVerify, "crypto.Secp256k1Verifier",
			fmt.Sprintf("invalid signature length: expected %d bytes, got %d", SignatureSize, len(signature)))
	}
	digest, err := Digest(v.hash, msg)
	if err != nil {
		return false, err
	}
	return ethcrypto.VerifySignature(v.publicKey, digest, signature), nil
}

// Curve returns CurveSecp256k1.
func (v *Secp256k1Verifier) Curve() Curve {
	return CurveSecp256k1
}
