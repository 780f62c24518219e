package lanegeom

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// MeshKind selects what geometry the builder produces for a lane
type MeshKind uint16

const (
	MESH_LANE_SURFACE = MeshKind(iota + 1)
	MESH_ROAD_MARK
)

func (iotaIdx MeshKind) String() string {
	return [...]string{"lane_surface", "road_mark"}[iotaIdx-1]
}

// LaneMesh is mesh of one kind built for one lane
type LaneMesh struct {
	Handle    LaneHandle
	SectionID int32
	LaneID    int32
	LaneType  LaneType
	Kind      MeshKind
	Buffers   *MeshBuffers
}

// MeshBuilder walks a whole lane network and tessellates every lane.
// It carries all the configuration explicitly instead of relying on process-wide state
type MeshBuilder struct {
	tessellator *Tessellator
	kinds       []MeshKind
	skipEmpty   bool
	verbose     bool
}

// NewMeshBuilder returns builder producing lane surfaces and road marks by default
func NewMeshBuilder(tessellator *Tessellator, options ...func(*MeshBuilder)) *MeshBuilder {
	if tessellator == nil {
		tessellator = NewTessellator()
	}
	builder := &MeshBuilder{
		tessellator: tessellator,
		kinds:       []MeshKind{MESH_LANE_SURFACE, MESH_ROAD_MARK},
		skipEmpty:   true,
	}
	for _, option := range options {
		option(builder)
	}
	return builder
}

func WithVerbose(verbose bool) func(*MeshBuilder) {
	return func(builder *MeshBuilder) {
		builder.verbose = verbose
	}
}

// WithMeshKinds restricts builder to given mesh kinds
func WithMeshKinds(kinds ...MeshKind) func(*MeshBuilder) {
	return func(builder *MeshBuilder) {
		builder.kinds = kinds
	}
}

// WithSkipEmpty controls whether meshes without triangles are dropped from the output
func WithSkipEmpty(skip bool) func(*MeshBuilder) {
	return func(builder *MeshBuilder) {
		builder.skipEmpty = skip
	}
}

// Tessellator returns underlying tessellator
func (builder *MeshBuilder) Tessellator() *Tessellator {
	return builder.tessellator
}

// Build tessellates every lane of every section. Coordinates of the network must be up to date
func (builder *MeshBuilder) Build(network *LaneNetwork, resolver CoordinateResolver) ([]LaneMesh, error) {
	if builder.verbose {
		fmt.Printf("Preparing lane meshes...")
	}
	st := time.Now()
	meshes := []LaneMesh{}
	for _, section := range network.Sections() {
		for _, lane := range section.Lanes() {
			for _, kind := range builder.kinds {
				buffers, err := builder.BuildLane(kind, lane, section, resolver)
				if err != nil {
					return nil, errors.Wrapf(err, "Can't build %s mesh for lane %d of section %d", kind, lane.id, section.id)
				}
				if builder.skipEmpty && buffers.Empty() {
					continue
				}
				meshes = append(meshes, LaneMesh{
					Handle:    lane.Handle(),
					SectionID: section.id,
					LaneID:    lane.id,
					LaneType:  lane.laneType,
					Kind:      kind,
					Buffers:   buffers,
				})
			}
		}
	}
	if builder.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}
	return meshes, nil
}

// BuildLane produces mesh of given kind for a single lane
func (builder *MeshBuilder) BuildLane(kind MeshKind, lane *Lane, section *LaneSection, resolver CoordinateResolver) (*MeshBuffers, error) {
	switch kind {
	case MESH_LANE_SURFACE:
		return builder.tessellator.Tessellate(lane, section, resolver)
	case MESH_ROAD_MARK:
		return builder.tessellator.TessellateRoadMarks(lane, section, resolver)
	default:
		return nil, errors.Errorf("Unknown mesh kind %d", kind)
	}
}

// Merge concatenates meshes of given kind into one buffer set
func Merge(meshes []LaneMesh, kind MeshKind) *MeshBuffers {
	merged := &MeshBuffers{}
	for _, mesh := range meshes {
		if mesh.Kind == kind {
			merged.Append(mesh.Buffers)
		}
	}
	return merged
}
