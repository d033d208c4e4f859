// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns 2*nBytes hex characters from the system CSPRNG.
// Used for collision-resistant object key suffixes.
func RandomHex(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
