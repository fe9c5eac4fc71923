// Package fingerprint provides content-addressed identity for cache
// invalidation decisions.
//
// A fingerprint is a deterministic SHA-256 digest: equal inputs always
// produce equal fingerprints, and comparison is a cheap string equality.
// The lint engine never compares full contents to decide whether cached
// work can be reused; it compares fingerprints of the line set, the raw
// file bytes, the configuration, and the check set.
//
// Each input class uses a distinct domain separator so a line set can
// never collide with, say, a serialized check set of the same bytes.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint is a hex-encoded SHA-256 digest. The zero value means
// "absent" and never equals a computed fingerprint.
type Fingerprint string

// Equal reports whether two fingerprints are present and identical.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f != "" && f == other
}

// Bytes fingerprints raw content, typically the file bytes as read from disk.
func Bytes(content []byte) Fingerprint {
	h := sha256.New()
	h.Write([]byte("b:"))
	h.Write(content)
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

// Texts fingerprints an ordered sequence of line texts. Order matters:
// reordering lines must invalidate the line fingerprint even when the
// multiset of texts is unchanged, because line numbers shift.
//
// Each text is length-prefixed so ["ab","c"] and ["a","bc"] cannot collide.
func Texts(texts []string) Fingerprint {
	h := sha256.New()
	h.Write([]byte("l:"))
	var n [8]byte
	for _, text := range texts {
		putLen(&n, len(text))
		h.Write(n[:])
		h.Write([]byte(text))
	}
	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

// Value fingerprints an arbitrary value through its canonical JSON form.
// encoding/json sorts map keys, so structurally equal values serialize
// identically. Used for Config values and check sets.
func Value(v interface{}) (Fingerprint, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte("v:"))
	h.Write(encoded)
	return Fingerprint(hex.EncodeToString(h.Sum(nil))), nil
}

func putLen(buf *[8]byte, n int) {
	for i := 7; i >= 0; i-- {
		buf[i] = byte(n)
		n >>= 8
	}
}
