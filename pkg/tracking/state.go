package tracking

// State is the tracking state reported for a marker.
type State uint8

const (
	// StateUnknown is any state string the manager does not understand.
	StateUnknown State = iota

	// StatePaused means the marker was detected but is not yet tracked.
	StatePaused

	// StateTracking means the marker is being tracked.
	StateTracking

	// StateStopped means tracking has ended for good.
	StateStopped
)

// String returns the upstream name of the state.
func (s State) String() string {
	switch s {
	case StatePaused:
		return "PAUSED"
	case StateTracking:
		return "TRACKING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// ParseState maps an upstream state name to a State.
func ParseState(s string) State {
	switch s {
	case "PAUSED":
		return StatePaused
	case "TRACKING":
		return StateTracking
	case "STOPPED":
		return StateStopped
	default:
		return StateUnknown
	}
}

// Method is how a tracked marker is currently being followed.
type Method uint8

const (
	// MethodNotTracking means no tracking data is available.
	MethodNotTracking Method = iota

	// MethodFull means the marker is fully tracked in the current frame.
	MethodFull

	// MethodLastKnownPose means the marker is out of view and its last pose
	// is being reused.
	MethodLastKnownPose
)

// String returns the upstream name of the method.
func (m Method) String() string {
	switch m {
	case MethodFull:
		return "FULL_TRACKING"
	case MethodLastKnownPose:
		return "LAST_KNOWN_POSE"
	case MethodNotTracking:
		return "NOT_TRACKING"
	default:
		return "UNKNOWN"
	}
}

// ParseMethod maps an upstream method name to a Method. Unknown names map to
// MethodNotTracking.
func ParseMethod(s string) Method {
	switch s {
	case "FULL_TRACKING":
		return MethodFull
	case "LAST_KNOWN_POSE":
		return MethodLastKnownPose
	default:
		return MethodNotTracking
	}
}

// EventType identifies a lifecycle event emitted by Apply.
type EventType uint8

const (
	// EventTentative is a first sighting of an untracked marker.
	EventTentative EventType = iota

	// EventFound is emitted when an entity and its anchor are created.
	EventFound

	// EventLost is emitted when an entity is removed and its anchor released.
	EventLost

	// EventAnchorFailed is emitted when an anchor could not be acquired.
	EventAnchorFailed
)

// String returns a human-readable event name.
func (e EventType) String() string {
	switch e {
	case EventTentative:
		return "TENTATIVE"
	case EventFound:
		return "FOUND"
	case EventLost:
		return "LOST"
	case EventAnchorFailed:
		return "ANCHOR_FAILED"
	default:
		return "UNKNOWN"
	}
}
