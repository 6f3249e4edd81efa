package signer

import (
	"bytes"
	"context"
	stdcrypto "crypto"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pilacorp/go-rdf-proof/crypto"
	"github.com/pilacorp/go-rdf-proof/errs"
)

// DefaultRemoteTimeout bounds one call to the remote signer.
const DefaultRemoteTimeout = 10 * time.Second

// RemoteSigner signs by posting the SHA-256 digest of the document to a
// secp256k1 signing service:
//
//	POST {"payload_hex": "<digest>"} -> {"signature_hex": "<r||s[||v]>"}
type RemoteSigner struct {
	endpoint string
	apiKey   string
	client   *http.Client
	timeout  time.Duration
}

// RemoteOpt configures a RemoteSigner.
type RemoteOpt func(*RemoteSigner)

// WithHTTPClient replaces the HTTP client. Its transport is used as is and
// the client itself is never modified. A nil client is ignored.
func WithHTTPClient(c *http.Client) RemoteOpt {
	return func(s *RemoteSigner) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout bounds each call. Without it the client's own timeout applies,
// or DefaultRemoteTimeout for the default client.
func WithTimeout(d time.Duration) RemoteOpt {
	return func(s *RemoteSigner) {
		s.timeout = d
	}
}

// NewRemoteSigner creates a RemoteSigner.
func NewRemoteSigner(endpoint, apiKey string, opts ...RemoteOpt) (*RemoteSigner, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errs.New(errs.KindConfig, "signer.NewRemoteSigner", "endpoint required")
	}

	s := &RemoteSigner{
		endpoint: endpoint,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout:   DefaultRemoteTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.timeout > 0 {
		c := *s.client
		c.Timeout = s.timeout
		s.client = &c
	}
	return s, nil
}

// Sign hashes data and asks the service to sign the digest.
func (s *RemoteSigner) Sign(ctx context.Context, data []byte) (string, error) {
	digest, err := crypto.Digest(stdcrypto.SHA256, data)
	if err != nil {
		return "", err
	}

	reqBody, err := json.Marshal(map[string]any{
		"payload_hex": hex.EncodeToString(digest),
	})
	if err != nil {
		return "", errs.Wrap(errs.KindSign, "signer.RemoteSigner", "encoding request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", errs.Wrap(errs.KindSign, "signer.RemoteSigner", "building request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("x-api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errs.Wrap(errs.KindSign, "signer.RemoteSigner", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errs.New(errs.KindSign, "signer.RemoteSigner", fmt.Sprintf("remote signer http %d", resp.StatusCode))
	}

	var out struct {
		SignatureHex string `json:"signature_hex"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errs.Wrap(errs.KindSign, "signer.RemoteSigner", "decoding response", err)
	}

	sig, err := hex.DecodeString(strings.TrimPrefix(out.SignatureHex, "0x"))
	if err != nil {
		return "", errs.Wrap(errs.KindSign, "signer.RemoteSigner", "signature is not hex", err)
	}
	switch len(sig) {
	case crypto.SignatureSize:
	case crypto.SignatureSize + 1:
		sig = sig[:crypto.SignatureSize]
	default:
		return "", errs.New(errs.KindSign, "signer.RemoteSigner", fmt.Sprintf("invalid signature length %d", len(sig)))
	}
	return crypto.EncodeSignature(sig), nil
}
