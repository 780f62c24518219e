package lanegeom

// AgentType is a class of road users a lane may serve
type AgentType uint16

const (
	AGENT_AUTO = AgentType(iota + 1)
	AGENT_BIKE
	AGENT_WALK
	AGENT_UNDEFINED = AgentType(0)
)

func (iotaIdx AgentType) String() string {
	return [...]string{"undefined", "auto", "bike", "walk"}[iotaIdx]
}

// ParseAgentType returns agent type for its textual name. Unknown names give AGENT_UNDEFINED
func ParseAgentType(str string) AgentType {
	switch str {
	case "auto":
		return AGENT_AUTO
	case "bike":
		return AGENT_BIKE
	case "walk":
		return AGENT_WALK
	default:
		return AGENT_UNDEFINED
	}
}

var (
	agentsByLaneType = map[LaneType][]AgentType{
		LANE_DRIVING:       {AGENT_AUTO},
		LANE_STOP:          {AGENT_AUTO},
		LANE_ENTRY:         {AGENT_AUTO},
		LANE_EXIT:          {AGENT_AUTO},
		LANE_ON_RAMP:       {AGENT_AUTO},
		LANE_OFF_RAMP:      {AGENT_AUTO},
		LANE_BIDIRECTIONAL: {AGENT_AUTO, AGENT_BIKE},
		LANE_BIKING:        {AGENT_BIKE},
		LANE_SIDEWALK:      {AGENT_WALK},
	}
)

// allowsAgent tells whether lanes of given type serve given agent
func allowsAgent(laneType LaneType, agent AgentType) bool {
	for _, allowed := range agentsByLaneType[laneType] {
		if allowed == agent {
			return true
		}
	}
	return false
}
