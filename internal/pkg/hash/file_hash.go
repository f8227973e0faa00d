package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// FileDigest holds the content hashes of an uploaded video file.
// Sha256 is the persistent identity; Fast is an xxhash key used by the
// duplicate-upload prefilter.
type FileDigest struct {
	Sha256 string
	Fast   uint64
	Size   int64
}

// DigestFile computes both content hashes of the file at path in one pass.
func DigestFile(path string) (*FileDigest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer f.Close()

	sha := sha256.New()
	xx := xxhash.New()

	n, err := io.Copy(io.MultiWriter(sha, xx), f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file for hashing: %w", err)
	}

	return &FileDigest{
		Sha256: hex.EncodeToString(sha.Sum(nil)),
		Fast:   xx.Sum64(),
		Size:   n,
	}, nil
}

// DigestReader computes both content hashes from a reader.
func DigestReader(r io.Reader) (*FileDigest, error) {
	sha := sha256.New()
	xx := xxhash.New()

	n, err := io.Copy(io.MultiWriter(sha, xx), r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data for hashing: %w", err)
	}

	return &FileDigest{
		Sha256: hex.EncodeToString(sha.Sum(nil)),
		Fast:   xx.Sum64(),
		Size:   n,
	}, nil
}
