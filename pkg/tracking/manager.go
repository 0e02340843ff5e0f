package tracking

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mjstratton7/PrivacyScan/pkg/ident"
)

// ErrNilAnchor is reported when an AnchorProvider returns neither an anchor
// nor an error.
var ErrNilAnchor = errors.New("anchor provider returned no anchor")

// Report is one marker update from the upstream tracking subsystem.
type Report struct {
	// ID is the marker's stable index in the marker database.
	ID int

	State  State
	Method Method

	// Label is the raw label the marker was registered under.
	Label string

	// Pose is an opaque pose handed to the AnchorProvider.
	Pose any
}

// Anchor is a spatial anchor owned by a tracked entity.
type Anchor interface {
	// Release detaches the anchor. It is called exactly once per anchor.
	Release()
}

// AnchorProvider creates anchors at a marker's pose.
type AnchorProvider interface {
	Acquire(id int, pose any) (Anchor, error)
}

// LabelDecoder turns a raw marker label into a device record.
type LabelDecoder func(label string) (*ident.DeviceRecord, error)

// Snapshot is a copy of a tracked entity.
type Snapshot struct {
	ID     int
	State  State
	Method Method
	Label  string
	Anchor Anchor

	// Record is the marker's identification, made on its first PAUSED
	// report or, failing that, when it started tracking.
	Record *ident.DeviceRecord

	// Since is when the entity was created.
	Since time.Time
}

// Event is a lifecycle change produced by Apply.
type Event struct {
	Type  EventType
	ID    int
	Label string

	// Record and Err carry the decode result for EventTentative, and the
	// remembered record for EventFound and EventLost.
	Record *ident.DeviceRecord

	// Err is the decode error for EventTentative and a Decoded EventFound,
	// or the acquisition error for EventAnchorFailed.
	Err error

	// Decoded is set on an EventFound whose label was decoded on this
	// report because no EventTentative preceded it.
	Decoded bool
}

type entity struct {
	state  State
	method Method
	label  string
	anchor Anchor
	record *ident.DeviceRecord
	since  time.Time
}

// Manager owns the marker-id to entity map.
type Manager struct {
	mu sync.Mutex

	anchors AnchorProvider
	decode  LabelDecoder

	entities map[int]*entity

	// tentative holds identifications of markers seen PAUSED but not yet
	// tracked, nil when the decode failed. Cleared when the marker stops.
	tentative map[int]*ident.DeviceRecord

	logger *slog.Logger
	now    func() time.Time
}

// NewManager creates a manager. decode may be nil, in which case tentative
// sightings carry neither record nor error.
func NewManager(anchors AnchorProvider, decode LabelDecoder) *Manager {
	return &Manager{
		anchors:   anchors,
		decode:    decode,
		entities:  make(map[int]*entity),
		tentative: make(map[int]*ident.DeviceRecord),
		now:       time.Now,
	}
}

// SetLogger sets the logger for debug output. Nil disables logging.
func (m *Manager) SetLogger(logger *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// Apply applies one frame's batch of reports and returns the resulting
// events in report order.
func (m *Manager) Apply(reports []Report) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	var events []Event
	for _, r := range reports {
		if ev, ok := m.apply(r); ok {
			events = append(events, ev)
		}
	}
	return events
}

func (m *Manager) apply(r Report) (Event, bool) {
	e, known := m.entities[r.ID]

	switch r.State {
	case StatePaused:
		if known {
			e.state = StatePaused
			e.method = r.Method
			return Event{}, false
		}
		ev := Event{Type: EventTentative, ID: r.ID, Label: r.Label}
		if m.decode != nil {
			ev.Record, ev.Err = m.decode(r.Label)
		}
		m.tentative[r.ID] = ev.Record
		m.debugLog("tracking: tentative", "id", r.ID, "label", r.Label, "error", ev.Err)
		return ev, true

	case StateTracking:
		if known {
			e.state = StateTracking
			e.method = r.Method
			return Event{}, false
		}
		anchor, err := m.anchors.Acquire(r.ID, r.Pose)
		if err == nil && anchor == nil {
			err = ErrNilAnchor
		}
		if err != nil {
			m.debugLog("tracking: anchor failed", "id", r.ID, "error", err)
			return Event{Type: EventAnchorFailed, ID: r.ID, Label: r.Label, Err: err}, true
		}

		ev := Event{Type: EventFound, ID: r.ID, Label: r.Label}
		rec, seen := m.tentative[r.ID]
		if seen {
			ev.Record = rec
		} else if m.decode != nil {
			ev.Record, ev.Err = m.decode(r.Label)
			ev.Decoded = true
		}

		e = &entity{
			state:  StateTracking,
			method: r.Method,
			label:  r.Label,
			anchor: anchor,
			record: ev.Record,
			since:  m.now(),
		}
		m.entities[r.ID] = e
		m.debugLog("tracking: found", "id", r.ID, "label", r.Label, "error", ev.Err)
		return ev, true

	case StateStopped:
		delete(m.tentative, r.ID)
		if !known {
			return Event{}, false
		}
		delete(m.entities, r.ID)
		e.anchor.Release()
		m.debugLog("tracking: lost", "id", r.ID, "label", e.label)
		return Event{Type: EventLost, ID: r.ID, Label: e.label, Record: e.record}, true
	}

	return Event{}, false
}

// RenderEligible returns copies of the entities that are tracking with full
// tracking, sorted by id.
func (m *Manager) RenderEligible() []Snapshot {
	return m.snapshots(func(e *entity) bool {
		return e.state == StateTracking && e.method == MethodFull
	})
}

// Tracked returns copies of every entity, sorted by id.
func (m *Manager) Tracked() []Snapshot {
	return m.snapshots(nil)
}

// Render calls fn for each render-eligible entity, outside the lock.
func (m *Manager) Render(fn func(Snapshot)) {
	for _, s := range m.RenderEligible() {
		fn(s)
	}
}

// Get returns a copy of the entity for id.
func (m *Manager) Get(id int) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entities[id]
	if !ok {
		return Snapshot{}, false
	}
	return e.snapshot(id), true
}

// Len returns the number of entities.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entities)
}

// Reset removes every entity, releasing each anchor once. It returns the
// number of entities removed.
func (m *Manager) Reset() int {
	m.mu.Lock()
	entities := m.entities
	m.entities = make(map[int]*entity)
	m.tentative = make(map[int]*ident.DeviceRecord)
	m.mu.Unlock()

	for _, e := range entities {
		e.anchor.Release()
	}
	if len(entities) > 0 {
		m.debugLog("tracking: reset", "released", len(entities))
	}
	return len(entities)
}

func (m *Manager) snapshots(keep func(*entity) bool) []Snapshot {
	m.mu.Lock()
	out := make([]Snapshot, 0, len(m.entities))
	for id, e := range m.entities {
		if keep == nil || keep(e) {
			out = append(out, e.snapshot(id))
		}
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (e *entity) snapshot(id int) Snapshot {
	return Snapshot{
		ID:     id,
		State:  e.state,
		Method: e.method,
		Label:  e.label,
		Anchor: e.anchor,
		Record: e.record,
		Since:  e.since,
	}
}

func (m *Manager) debugLog(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}
