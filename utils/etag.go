package utils

import (
	"crypto/sha1"
	"fmt"
	"time"
)

// GenerateETag derives a stable ETag from a record id and its last update
// time, for conditional GETs on list and detail endpoints.
func GenerateETag(id string, updatedAt time.Time) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s-%d", id, updatedAt.UnixNano())))
	return fmt.Sprintf(`"%x"`, sum[:8])
}
