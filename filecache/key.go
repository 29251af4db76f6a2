package filecache

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Key addresses a cached artifact. At least one of the two fields must be
// set; a key with both fields empty is rejected with ErrInvalidKey.
type Key struct {
	// ContentKey is a stable logical name for the artifact, such as a
	// service code or a region-service-version tag.
	ContentKey string

	// ContentHash is a fingerprint of the current remote content, such as
	// an ETag. A changed hash resolves to a new file even when the content
	// key is unchanged.
	ContentHash string
}

// IsZero reports whether neither field of the key is set.
func (k Key) IsZero() bool {
	return k.ContentKey == "" && k.ContentHash == ""
}

// Filename returns the artifact file name for the key, without extension.
// The name is {ContentKey}_{ContentHash}; an absent field is left empty, so
// "alpha"+"deadbeef" yields "alpha_deadbeef", a key-only Key yields "alpha_"
// and a hash-only Key yields "_deadbeef". Equal keys always yield equal
// names.
func (k Key) Filename() (string, error) {
	if k.IsZero() {
		return "", ErrInvalidKey
	}
	return k.ContentKey + "_" + k.ContentHash, nil
}

// String returns a human-readable form of the key for logging.
func (k Key) String() string {
	return fmt.Sprintf("key=%q hash=%q", k.ContentKey, k.ContentHash)
}

// Fingerprint returns a compact hex fingerprint of the given parts, suitable
// as a Key.ContentHash for remotes that expose no ETag. Parts are separated
// by a NUL byte so ("ab","c") and ("a","bc") hash differently.
func Fingerprint(parts ...string) string {
	h := xxhash.New()
	for _, part := range parts {
		_, _ = h.WriteString(part)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
