package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectColor is one of the fixed display colors a project can be created with.
type ProjectColor string

const (
	ColorPurple ProjectColor = "purple"
	ColorGreen  ProjectColor = "green"
	ColorBlue   ProjectColor = "blue"
	ColorRed    ProjectColor = "red"
	ColorYellow ProjectColor = "yellow"
	ColorPink   ProjectColor = "pink"
	ColorIndigo ProjectColor = "indigo"
	ColorGray   ProjectColor = "gray"
)

// DefaultProjectColor is used when no color is supplied on creation.
const DefaultProjectColor = ColorPurple

// ProjectColors is the allowed palette.
var ProjectColors = []ProjectColor{
	ColorPurple, ColorGreen, ColorBlue, ColorRed,
	ColorYellow, ColorPink, ColorIndigo, ColorGray,
}

// Valid reports whether the color belongs to the palette.
func (c ProjectColor) Valid() bool {
	for _, v := range ProjectColors {
		if c == v {
			return true
		}
	}
	return false
}

// Project represents a project that time is tracked against.
// Name and color are immutable after creation.
type Project struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description *string      `json:"description,omitempty" db:"description"`
	Color       ProjectColor `json:"color" db:"color"`
	OwnerID     int64        `json:"owner_id" db:"owner_id"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// ProjectWithPin is a project annotated with the viewing user's pin state.
type ProjectWithPin struct {
	Project
	Pinned bool `json:"pinned" db:"pinned"`
}

// ProjectPin marks a project as pinned for one user.
type ProjectPin struct {
	UserID    int64     `json:"user_id" db:"user_id"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
