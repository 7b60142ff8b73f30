package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Word lists, free text and layouts
// are hashed with it before they become part of a key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "<stage>:<hash>" from the JSON encoding of parts. Option
// structs encode by field name, so a new option field changes every key of
// its stage and old entries simply stop matching.
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return stage + ":" + Hash(data)
}
