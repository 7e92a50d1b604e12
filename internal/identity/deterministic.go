package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID maps a stable key to a deterministic UUID. Keys must carry a
// domain and entity prefix so different record kinds never collide on the
// same natural key.
func UUID(key string) uuid.UUID {
	key = strings.TrimSpace(key)
	if key == "" {
		return uuid.Nil
	}
	if uid, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true)); err == nil && uid != uuid.Nil {
		return uid
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

// KeywordUUID keeps directory imports idempotent: the same slug always maps
// to the same keyword record.
func KeywordUUID(slug string) uuid.UUID {
	return UUID("go-glossary:keyword:" + normalize(slug))
}

// AliasUUID scopes alias identities to their owning keyword.
func AliasUUID(keywordID uuid.UUID, slug string) uuid.UUID {
	return UUID("go-glossary:keyword_alias:" + keywordID.String() + ":" + normalize(slug))
}

// CategoryUUID derives category identities from the category slug.
func CategoryUUID(slug string) uuid.UUID {
	return UUID("go-glossary:keyword_category:" + normalize(slug))
}

func normalize(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
