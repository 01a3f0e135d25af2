package circuit

import "golang.org/x/crypto/sha3"

// Digest returns the keccak256 hash of c's canonical Extended-Bristol
// encoding, letting two independently compiled circuits be compared, or a
// cached circuit verified, without a byte-for-byte text diff.
func (c *Circuit) Digest() [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(c.ToBristol()))
	sum := h.Sum(nil)
	var out [32]byte
	copy(out[:], sum)
	return out
}
