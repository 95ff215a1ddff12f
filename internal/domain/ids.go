package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identifier kinds.
const (
	KindNote   = "note"
	KindFolder = "folder"
)

// IDGenerator produces identifiers for a kind ("note", "folder").
type IDGenerator func(kind string) string

// NewID returns "<kind>-<unix millis>-<8 hex chars>".
// The time prefix keeps ids roughly ordered; the random suffix makes
// collisions within one workspace vanishingly unlikely.
func NewID(kind string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s", kind, time.Now().UnixMilli(), suffix)
}
