package crypto

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// NewKeyPair generates a fresh secp256k1 keypair.
func NewKeyPair() (*btcec.PrivateKey, *btcec.PublicKey, error) {
	prv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("generate private key: %w", err)
	}
	return prv, prv.PubKey(), nil
}

// Hash returns the double-SHA256 digest of the given bytes. All transaction
// ids and signed payload digests in the system go through this function.
func Hash(data []byte) chainhash.Hash {
	return chainhash.DoubleHashH(data)
}

// CanonicalBytes returns the canonical serialization of a value. Every
// structure that is signed or hashed must be encoded through here so that
// signer and verifier agree on the exact bytes.
func CanonicalBytes(v interface{}) ([]byte, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical serialization: %w", err)
	}
	return buf, nil
}

// Sign signs the double-SHA256 digest of data and returns a DER-encoded
// signature.
func Sign(prv *btcec.PrivateKey, data []byte) []byte {
	digest := Hash(data)
	return ecdsa.Sign(prv, digest[:]).Serialize()
}

// Verify reports whether sig is a valid DER-encoded signature of data made
// with the private counterpart of pub.
func Verify(pub *btcec.PublicKey, data, sig []byte) bool {
	parsed, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	digest := Hash(data)
	return parsed.Verify(digest[:], pub)
}

// SignValue canonically serializes v and signs the resulting bytes.
func SignValue(prv *btcec.PrivateKey, v interface{}) ([]byte, error) {
	buf, err := CanonicalBytes(v)
	if err != nil {
		return nil, err
	}
	return Sign(prv, buf), nil
}

// VerifyValue canonically serializes v and verifies sig against the bytes.
func VerifyValue(pub *btcec.PublicKey, v interface{}, sig []byte) bool {
	buf, err := CanonicalBytes(v)
	if err != nil {
		return false
	}
	return Verify(pub, buf, sig)
}

// PublicKeyHex returns the compressed hex form of a public key, the format
// used in config files and wire payloads.
func PublicKeyHex(pub *btcec.PublicKey) string {
	return hex.EncodeToString(pub.SerializeCompressed())
}

// ParsePublicKey parses a compressed hex-encoded public key.
func ParsePublicKey(s string) (*btcec.PublicKey, error) {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid public key hex: %w", err)
	}
	pub, err := btcec.ParsePubKey(buf)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	return pub, nil
}
