package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers prefix keys by domain so different kinds of identifiers never
// collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// NoteUUID identifies a note by its slug.
func NoteUUID(slug string) uuid.UUID {
	return UUID("go-notes:note:" + strings.Trim(strings.TrimSpace(slug), "/"))
}

// VersionUUID fingerprints an ordered list of parts, such as slug:checksum
// pairs. An empty list yields uuid.Nil.
func VersionUUID(kind string, parts []string) uuid.UUID {
	if len(parts) == 0 {
		return uuid.Nil
	}
	return UUID("go-notes:" + kind + ":" + strings.Join(parts, "\n"))
}
