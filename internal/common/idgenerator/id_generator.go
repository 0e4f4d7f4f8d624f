// Package idgenerator produces the opaque identifiers used across the
// engine: requestIds (idempotency keys), session ids, merchant reference
// numbers. An id is a prefix, an epoch-millis timestamp, and a
// base64-raw-url-encoded UUID.
package idgenerator

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Generator interface {
	Generate(prefixes ...string) string
}

type IDGenerator struct{}

func New() Generator {
	return &IDGenerator{}
}

// Generate combines the joined prefixes, the current epoch-millis and an
// encoded UUID. With no prefix the id is just timestamp+UUID.
func (g *IDGenerator) Generate(prefixes ...string) string {
	prefix := strings.Join(prefixes, "-")
	epocTime := time.Now().UnixMilli()
	encodedUUID := rawURLEncodedUUID(uuid.New())

	if prefix == "" {
		return fmt.Sprintf("%d%s", epocTime, encodedUUID)
	}

	return fmt.Sprintf("%s-%d%s", prefix, epocTime, encodedUUID)
}

func rawURLEncodedUUID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString(id[:])
}
