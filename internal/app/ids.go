package app

import (
	"strings"

	"github.com/google/uuid"
)

// newSessionToken returns the opaque token the web surface uses to address a
// session. It never encodes the user identity.
func newSessionToken() string {
	return compactUUID()[:12]
}

// newOrderID returns a spool-safe order identifier.
func newOrderID() string {
	return "ORD_" + compactUUID()[:8]
}

func compactUUID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
