package hashutil

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"lukechampine.com/blake3"
)

type HashAlgo string

const (
	HashAlgoSHA1   = "sha1"
	HashAlgoSHA256 = "sha256"
	HashAlgoBLAKE3 = "blake3"
)

// HashBytes returns the hash of bytes as a hex string using the specified algorithm.
// Supported algorithms: "sha1", "sha256" and "blake3".
func HashBytes(data []byte, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoSHA1:
		return hashBytesSha1(data), nil
	case HashAlgoSHA256:
		return hashBytesSha256(data), nil
	case HashAlgoBLAKE3:
		return hashBytesBlake3(data), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// HashString is a convenience wrapper around HashBytes for string input.
func HashString(s string, algo HashAlgo) (string, error) {
	return HashBytes([]byte(s), algo)
}

// Int63 derives a stable non-negative int64 from the hash of data.
// The same (data, algo) pair always produces the same value, which makes
// it suitable for deterministic record identities.
func Int63(data []byte, algo HashAlgo) (int64, error) {
	hexDigest, err := HashBytes(data, algo)
	if err != nil {
		return 0, err
	}
	raw, err := hex.DecodeString(hexDigest[:16])
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(raw) & math.MaxInt64), nil
}

func hashBytesSha1(data []byte) string {
	hash := sha1.Sum(data)
	return hex.EncodeToString(hash[:])
}

func hashBytesSha256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func hashBytesBlake3(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}
