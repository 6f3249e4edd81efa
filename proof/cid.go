package proof

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ContentID returns the CIDv1 (raw codec, sha2-256) of an emitted document.
func ContentID(doc []byte) (string, error) {
	mh, err := multihash.Sum(doc, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("failed to hash document: %w", err)
	}
	return cid.NewCidV1(cid.Raw, mh).String(), nil
}
