package lanegeom

import (
	"fmt"

	"github.com/google/uuid"
)

// LaneHandle is a weak reference to a lane: lane id plus UUID of the owning lane section.
// It never owns the target and has to be resolved through LaneNetwork.ResolveHandle
// (or LaneSection.ResolveHandle) each time. Handles are obtained with Lane.Handle: they also
// remember the lane's slot in the section, so once the lane is renumbered or removed the handle
// resolves to nothing instead of to whichever lane holds the id now
type LaneHandle struct {
	LaneID  int32
	Section uuid.UUID
	key     laneKey
}

// String returns pretty printed value for LaneHandle
func (handle LaneHandle) String() string {
	return fmt.Sprintf("%s/%d", handle.Section, handle.LaneID)
}

// IsZero tells whether handle refers to nothing
func (handle LaneHandle) IsZero() bool {
	return handle.Section == uuid.Nil
}
