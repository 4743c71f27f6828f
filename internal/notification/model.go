package notification

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo:
		return t, nil
	case "":
		return TypeInfo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

const (
	DefaultDuration = 3 * time.Second
	// ExitGrace is how long a dismissed notification stays in the queue
	// while its exit animation plays.
	ExitGrace = 300 * time.Millisecond
)

type Notification struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	Type      Type          `json:"type"`
	Duration  time.Duration `json:"-"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NewID returns a fresh notification id.
func NewID() string {
	return uuid.NewString()
}

// Deadline is when n leaves the queue if nobody dismisses it first.
func (n Notification) Deadline() time.Time {
	return n.CreatedAt.Add(n.Duration + ExitGrace)
}

// MarshalJSON renders Duration in milliseconds.
func (n Notification) MarshalJSON() ([]byte, error) {
	type wire Notification
	return json.Marshal(struct {
		wire
		DurationMS int64 `json:"duration"`
	}{wire: wire(n), DurationMS: n.Duration.Milliseconds()})
}

func withDefaults(n Notification) Notification {
	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	return n
}
