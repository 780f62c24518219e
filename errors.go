package lanegeom

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrLaneNotFound        = errors.New("lane not found")
	ErrLaneSectionNotFound = errors.New("lane section not found")
	ErrInvalidLinkage      = errors.New("invalid lane linkage")
	ErrCenterLane          = errors.New("operation is not allowed for the center lane")
	ErrDuplicateSection    = errors.New("lane section already exists at given s")
	ErrInvalidSectionRange = errors.New("lane section must end after it starts")
	ErrEmptyNetwork        = errors.New("lane network has no sections")
)

// LaneNotFoundError is returned when a lane id can't be found in a lane section
type LaneNotFoundError struct {
	ID int32
}

func (e *LaneNotFoundError) Error() string {
	return fmt.Sprintf("lane %d not found", e.ID)
}

// Is makes errors.Is(err, ErrLaneNotFound) work for wrapped values
func (e *LaneNotFoundError) Is(target error) bool {
	return target == ErrLaneNotFound
}

// LaneSectionNotFoundError is returned when no lane section governs given s
type LaneSectionNotFoundError struct {
	S float64
}

func (e *LaneSectionNotFoundError) Error() string {
	return fmt.Sprintf("no lane section at s=%f", e.S)
}

func (e *LaneSectionNotFoundError) Is(target error) bool {
	return target == ErrLaneSectionNotFound
}
