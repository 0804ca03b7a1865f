package sync

import (
	"encoding/json"
	"time"
)

// Envelope is the document shape stored by the sync daemon: the serialized
// aggregate plus a server-set update time.
type Envelope struct {
	State     json.RawMessage `json:"state"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
