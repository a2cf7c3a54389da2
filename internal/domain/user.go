package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the owning account every record in this system is scoped to.
// Account lifecycle (registration, sessions) lives in a separate identity
// service; this backend only anchors foreign keys and validates tokens.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Timezone  string
	CreatedAt time.Time
}
