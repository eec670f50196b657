package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentKey returns the hex SHA-256 of content, optionally namespaced
func ContentKey(namespace, content string) string {
	hash := sha256.Sum256([]byte(content))
	key := hex.EncodeToString(hash[:])
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}
