package render

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

// ActionKind is a per-item affordance.
type ActionKind int

const (
	ToggleComplete ActionKind = iota + 1
	Edit
	Delete
)

var actionNames = map[ActionKind]string{
	ToggleComplete: "toggle-complete",
	Edit:           "edit",
	Delete:         "delete",
}

func (k ActionKind) String() string {
	if n, ok := actionNames[k]; ok {
		return n
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

func (k ActionKind) MarshalText() ([]byte, error) {
	n, ok := actionNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown action kind %d", int(k))
	}
	return []byte(n), nil
}

func (k *ActionKind) UnmarshalText(b []byte) error {
	for kind, n := range actionNames {
		if n == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown action kind %q", b)
}

// Action routes a click back to the store: what to do and to which record.
type Action struct {
	Kind  ActionKind `json:"kind"`
	ID    model.ID   `json:"id"`
	Label string     `json:"label"`
}
