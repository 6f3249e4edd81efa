package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/multiformats/go-multibase"
	"gopkg.in/yaml.v3"

	"github.com/pilacorp/go-rdf-proof/errs"
)

// Curve names a supported signing curve.
type Curve string

const (
	CurveP256      Curve = "P-256"
	CurveSecp256k1 Curve = "secp256k1"
)

// ParseCurve accepts the curve names used in configuration.
func ParseCurve(name string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "p-256", "p256", "secp256r1":
		return CurveP256, nil
	case "secp256k1", "k256":
		return CurveSecp256k1, nil
	}
	return "", errs.New(errs.KindKey, "crypto.ParseCurve", fmt.Sprintf("unsupported curve %q", name))
}

// MessageSigner hashes and signs a message, returning a raw r||s signature.
type MessageSigner interface {
	Sign(msg []byte) ([]byte, error)
	Curve() Curve
	PublicKey() []byte
}

// MessageVerifier checks a raw r||s signature over a message.
type MessageVerifier interface {
	Verify(msg, signature []byte) (bool, error)
	Curve() Curve
}

// KeyFile is the on-disk form of a signing key.
type KeyFile struct {
	Curve      Curve  `yaml:"curve"`
	PrivateKey string `yaml:"private_key,omitempty"`
	PublicKey  string `yaml:"public_key"`
}

// GenerateKey creates a new key pair on curve.
func GenerateKey(curve Curve) (*KeyFile, error) {
	switch curve {
	case CurveP256:
		priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return nil, errs.Wrap(errs.KindKey, "crypto.GenerateKey", "generating P-256 key", err)
		}
		return &KeyFile{
			Curve:      CurveP256,
			PrivateKey: hex.EncodeToString(priv.D.FillBytes(make([]byte, 32))),
			PublicKey:  hex.EncodeToString(elliptic.MarshalCompressed(elliptic.P256(), priv.X, priv.Y)),
		}, nil
	case CurveSecp256k1:
		priv, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return nil, errs.Wrap(errs.KindKey, "crypto.GenerateKey", "generating secp256k1 key", err)
		}
		return &KeyFile{
			Curve:      CurveSecp256k1,
			PrivateKey: hex.EncodeToString(priv.Serialize()),
			PublicKey:  hex.EncodeToString(priv.PubKey().SerializeCompressed()),
		}, nil
	}
	return nil, errs.New(errs.KindKey, "crypto.GenerateKey", fmt.Sprintf("unsupported curve %q", curve))
}

// LoadKeyFile reads a YAML key file.
func LoadKeyFile(path string) (*KeyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindKey, "crypto.LoadKeyFile", "reading key file", err)
	}
	return ParseKeyFile(data)
}

// ParseKeyFile decodes a YAML key file.
func ParseKeyFile(data []byte) (*KeyFile, error) {
	var kf KeyFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, errs.Wrap(errs.KindKey, "crypto.ParseKeyFile", "unmarshalling key file", err)
	}
	curve, err := ParseCurve(string(kf.Curve))
	if err != nil {
		return nil, err
	}
	kf.Curve = curve
	return &kf, nil
}

// Save writes the key file with owner-only permissions.
func (kf *KeyFile) Save(path string) error {
	data, err := yaml.Marshal(kf)
	if err != nil {
		return errs.Wrap(errs.KindKey, "crypto.KeyFile.Save", "marshalling key file", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errs.Wrap(errs.KindKey, "crypto.KeyFile.Save", "writing key file", err)
	}
	return nil
}

// Public returns a copy without the private key.
func (kf *KeyFile) Public() *KeyFile {
	return &KeyFile{Curve: kf.Curve, PublicKey: kf.PublicKey}
}

// Signer returns a MessageSigner for the private key.
func (kf *KeyFile) Signer() (MessageSigner, error) {
	priv, err := decodeKeyHex(kf.PrivateKey)
	if err != nil {
		return nil, err
	}
	switch kf.Curve {
	case CurveP256:
		key, err := p256PrivateKey(priv)
		if err != nil {
			return nil, err
		}
		return NewP256Signer(key)
	case CurveSecp256k1:
		return NewSecp256k1Signer(priv)
	}
	return nil, errs.New(errs.KindKey, "crypto.KeyFile.Signer", fmt.Sprintf("unsupported curve %q", kf.Curve))
}

// Verifier returns a MessageVerifier for the public key.
func (kf *KeyFile) Verifier() (MessageVerifier, error) {
	pub, err := decodeKeyHex(kf.PublicKey)
	if err != nil {
		return nil, err
	}
	switch kf.Curve {
	case CurveP256:
		return NewP256Verifier(pub)
	case CurveSecp256k1:
		return NewSecp256k1Verifier(pub)
	}
	return nil, errs.New(errs.KindKey, "crypto.KeyFile.Verifier", fmt.Sprintf("unsupported curve %q", kf.Curve))
}

// PublicKeyMultibase returns the public key as a base58btc multibase string,
// the form used in publicKeyMultibase verification methods.
func (kf *KeyFile) PublicKeyMultibase() (string, error) {
	pub, err := decodeKeyHex(kf.PublicKey)
	if err != nil {
		return "", err
	}
	out, err := multibase.Encode(multibase.Base58BTC, pub)
	if err != nil {
		return "", errs.Wrap(errs.KindKey, "crypto.PublicKeyMultibase", "encoding multibase", err)
	}
	return out, nil
}

func decodeKeyHex(s string) ([]byte, error) {
	if s == "" {
		return nil, errs.New(errs.KindKey, "crypto.decodeKeyHex", "key is empty")
	}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errs.Wrap(errs.KindKey, "crypto.decodeKeyHex", "key is not hex", err)
	}
	return b, nil
}

func p256PrivateKey(d []byte) (*ecdsa.PrivateKey, error) {
	curve := elliptic.P256()
	k := new(big.Int).SetBytes(d)
	if len(d) != 32 || k.Sign() == 0 || k.Cmp(curve.Params().N) >= 0 {
		return nil, errs.New(errs.KindKey, "crypto.p256PrivateKey", "invalid P-256 private key")
	}
	priv := &ecdsa.PrivateKey{D: k}
	priv.PublicKey.Curve = curve
	priv.PublicKey.X, priv.PublicKey.Y = curve.ScalarBaseMult(d)
	return priv, nil
}
