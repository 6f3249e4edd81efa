// Package crypto provides the hash, sign and verify primitives the proof
// pipeline delegates to: ECDSA over P-256 with SHA-224, and ECDSA over
// secp256k1 with SHA-256.
package crypto

import (
	"crypto"
	_ "crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pilacorp/go-rdf-proof/errs"
)

// SignatureSize is the length of a raw r||s signature for both curves.
const SignatureSize = 64

// Digest hashes data with h and checks the digest length.
func Digest(h crypto.Hash, data []byte) ([]byte, error) {
	if !h.Available() {
		return nil, errs.New(errs.KindHash, "crypto.Digest", fmt.Sprintf("hash %v is not available", h))
	}
	hasher := h.New()
	if _, err := hasher.Write(data); err != nil {
		return nil, errs.Wrap(errs.KindHash, "crypto.Digest", "hash error", err)
	}
	sum := hasher.Sum(nil)
	if len(sum) != h.Size() {
		return nil, errs.New(errs.KindHash, "crypto.Digest",
			fmt.Sprintf("unexpected digest length: expected %d bytes, got %d", h.Size(), len(sum)))
	}
	return sum, nil
}

// EncodeSignature returns the upper-case hex form used as the jws value.
func EncodeSignature(sig []byte) string {
	return strings.ToUpper(hex.EncodeToString(sig))
}

// DecodeSignature parses a hex signature and checks its length.
func DecodeSignature(s string) ([]byte, error) {
	sig, err := hex.DecodeString(s)
	if err != nil {
		return nil, errs.Wrap(errs.KindVerify, "crypto.DecodeSignature", "signature is not hex", err)
	}
	if len(sig) != SignatureSize {
		return nil, errs.New(errs.KindVerify, "crypto.DecodeSignature",
			fmt.Sprintf("invalid signature length: expected %d bytes, got %d", SignatureSize, len(sig)))
	}
	return sig, nil
}

// padSignature joins r and s, each left-padded to 32 bytes.
func padSignature(r, s []byte) []byte {
	sig := make([]byte, SignatureSize)
	copy(sig[32-len(r):32], r)
	copy(sig[SignatureSize-len(s):], s)
	return sig
}
