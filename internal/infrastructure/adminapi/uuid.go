package adminapi

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates an entity id in the dash-less lowercase hex form the
// Admin API expects.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
