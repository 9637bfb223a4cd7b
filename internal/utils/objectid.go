package utils

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID returns a fresh 24-hex identifier. Every store uses this format so ids
// validate the same way whichever driver is configured.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

func IsObjectID(s string) bool {
	if len(s) != 24 {
		return false
	}
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// NormalizeID lower-cases a hex id so lookups do not depend on the client's casing.
func NormalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
