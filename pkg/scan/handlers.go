package scan

import (
	"errors"

	"github.com/mjstratton7/PrivacyScan/pkg/beacon"
	"github.com/mjstratton7/PrivacyScan/pkg/discovery"
	"github.com/mjstratton7/PrivacyScan/pkg/ident"
	"github.com/mjstratton7/PrivacyScan/pkg/log"
	"github.com/mjstratton7/PrivacyScan/pkg/present"
	"github.com/mjstratton7/PrivacyScan/pkg/tracking"
)

func (s *Session) handleTrackingEvent(ev tracking.Event) {
	snap, _ := s.tracker.Get(ev.ID)
	s.logEvent(log.Event{
		Channel:  log.ChannelMarker,
		Category: log.CategoryTracking,
		Source:   ev.Label,
		Tracking: &log.TrackingEvent{
			MarkerID:   ev.ID,
			Transition: ev.Type.String(),
			State:      trackingState(ev, snap),
			Method:     trackingMethod(ev, snap),
		},
	})

	switch ev.Type {
	case tracking.EventTentative:
		s.identifyMarker(ev)

	case tracking.EventFound:
		if ev.Decoded {
			s.identifyMarker(ev)
		}

	case tracking.EventAnchorFailed:
		s.mu.Lock()
		s.stats.Errors++
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Warn("scan: anchor not created", "marker", ev.ID, "error", ev.Err)
		}
		s.logError(log.ChannelMarker, ev.Label, "", ev.Err, "anchor")
	}
}

// identifyMarker counts, logs and presents the label decode an event
// carries.
func (s *Session) identifyMarker(ev tracking.Event) {
	s.mu.Lock()
	if ev.Err != nil {
		s.stats.Errors++
	} else {
		s.stats.Markers++
	}
	s.mu.Unlock()

	if ev.Err != nil {
		s.logError(log.ChannelMarker, ev.Label, ev.Label, ev.Err, "label decode")
	} else if ev.Record != nil {
		s.logIdent(log.ChannelMarker, ev.Label, &log.IdentEvent{Raw: ev.Label, Record: ev.Record})
	}
	s.present(present.ChannelMarker, ev.Label, ev.Record, ev.Err)
}

// trackingState returns the marker state an event implies. snap is only
// meaningful for EventFound.
func trackingState(ev tracking.Event, snap tracking.Snapshot) string {
	switch ev.Type {
	case tracking.EventTentative:
		return tracking.StatePaused.String()
	case tracking.EventFound:
		return snap.State.String()
	case tracking.EventLost:
		return tracking.StateStopped.String()
	}
	return ""
}

func trackingMethod(ev tracking.Event, snap tracking.Snapshot) string {
	if ev.Type != tracking.EventFound {
		return ""
	}
	return snap.Method.String()
}

func (s *Session) handleSighting(sg beacon.Sighting) {
	if !beacon.MatchNameMarker(sg.Name, s.config.NameMarker) {
		s.mu.Lock()
		s.stats.Ignored++
		s.mu.Unlock()
		return
	}
	if s.State() != StateRunning {
		return
	}

	fp := s.prints.Address(sg.Address)
	source := sg.Name + " (" + fp + ")"
	rssi := sg.RSSI

	structures, err := beacon.ParseStructures(sg.Payload)
	if err == nil {
		frames, _ := beacon.Frames(structures)
		for _, f := range frames {
			if f.URL != nil && s.firstInWindow(fp+"|url|"+f.URL.URL) {
				s.mu.Lock()
				s.stats.URLFrames++
				s.mu.Unlock()
				s.debugLog("scan: eddystone url", "source", source, "url", f.URL.URL)
				s.logIdent(log.ChannelBeacon, source, &log.IdentEvent{URL: f.URL.URL, RSSI: &rssi})
			}
		}
	}

	id, err := beacon.InstanceID(sg.Payload)
	if err != nil {
		if errors.Is(err, beacon.ErrNoInstanceID) {
			// URL-only beacons identify nothing.
			return
		}
		if !s.firstInWindow(fp + "|err") {
			return
		}
		s.countError()
		s.logError(log.ChannelBeacon, source, "", err, "advertisement")
		s.present(present.ChannelBeacon, sg.Source(), nil, err)
		return
	}

	if !s.firstInWindow(fp + "|" + id) {
		return
	}

	rec, err := ident.DecodeInstanceID(id, s.config.Tables)
	if err != nil {
		s.countError()
		s.logError(log.ChannelBeacon, source, id, err, "instance id decode")
	} else {
		s.mu.Lock()
		s.stats.Beacons++
		s.mu.Unlock()
		s.logIdent(log.ChannelBeacon, source, &log.IdentEvent{Raw: id, Record: rec, RSSI: &rssi})
	}
	s.present(present.ChannelBeacon, sg.Source(), rec, err)
}

func (s *Session) handleService(svc *discovery.IdentService) {
	if s.State() != StateRunning {
		return
	}

	source := svc.DisplayName()
	rec, err := ident.DecodeLabel(svc.Label, s.config.Tables)
	if err != nil {
		s.countError()
		s.logError(log.ChannelNetwork, svc.InstanceName, svc.Label, err, "label decode")
	} else {
		s.mu.Lock()
		s.stats.Services++
		s.mu.Unlock()
		s.logIdent(log.ChannelNetwork, svc.InstanceName, &log.IdentEvent{Raw: svc.Label, Record: rec})
	}
	s.present(present.ChannelNetwork, source, rec, err)
}

func (s *Session) handleWindowState(oldState, newState beacon.WindowState) {
	if newState == beacon.WindowScanning {
		s.mu.Lock()
		s.seen = make(map[string]bool)
		s.mu.Unlock()
	}
	s.logScan(log.ScanEntityWindow, oldState.String(), newState.String(), "")
}

func (s *Session) handleWindowTimeout() {
	s.debugLog("scan: beacon window closed", "period", s.config.ScanPeriod)
	if !s.config.Continuous {
		return
	}

	s.chanMu.Lock()
	defer s.chanMu.Unlock()
	if s.State() != StateRunning {
		return
	}
	if err := s.startWindow(); err != nil && !errors.Is(err, beacon.ErrScanInProgress) {
		s.debugLog("scan: beacon window not reopened", "error", err)
	}
}

func (s *Session) handleRadioError(err error) {
	s.countError()
	if s.logger != nil {
		s.logger.Warn("scan: radio failed", "error", err)
	}
	s.logError(log.ChannelBeacon, "", "", err, "radio")
}

// firstInWindow records key and reports whether it is new in the current
// scan window.
func (s *Session) firstInWindow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	return true
}

func (s *Session) countError() {
	s.mu.Lock()
	s.stats.Errors++
	s.mu.Unlock()
}

func (s *Session) present(ch present.Channel, source string, rec *ident.DeviceRecord, err error) {
	if err != nil {
		s.debugLog("scan: identification failed", "channel", ch, "source", source, "error", err)
		rec = nil
	}
	s.dispatcher.Present(present.Finding{
		Channel: ch,
		Source:  source,
		Record:  rec,
		Err:     err,
		At:      s.now(),
	})
}

func (s *Session) logEvent(e log.Event) {
	e.Timestamp = s.now()
	e.SessionID = s.id
	s.events.Log(e)
}

func (s *Session) logIdent(ch log.Channel, source string, ev *log.IdentEvent) {
	s.logEvent(log.Event{Channel: ch, Category: log.CategoryIdent, Source: source, Ident: ev})
}

func (s *Session) logScan(entity log.ScanEntity, oldState, newState, reason string) {
	ch := log.ChannelSession
	switch entity {
	case log.ScanEntityWindow:
		ch = log.ChannelBeacon
	case log.ScanEntityBrowse:
		ch = log.ChannelNetwork
	}
	s.logEvent(log.Event{
		Channel:  ch,
		Category: log.CategoryScan,
		Scan:     &log.ScanEvent{Entity: entity, OldState: oldState, NewState: newState, Reason: reason},
	})
}

func (s *Session) logState(oldState, newState State, reason string) {
	s.logScan(log.ScanEntitySession, oldState.String(), newState.String(), reason)
}

func (s *Session) logError(ch log.Channel, source, raw string, err error, context string) {
	kind := errorKind(err)
	s.logEvent(log.Event{
		Channel:  ch,
		Category: log.CategoryError,
		Source:   source,
		Error: &log.ErrorEventData{
			Kind:    kind,
			Message: err.Error(),
			Raw:     raw,
			Context: context,
		},
	})
}

// errorKind names the failure for the session log.
func errorKind(err error) string {
	switch {
	case errors.Is(err, beacon.ErrTruncatedStructure):
		return "TruncatedStructure"
	case errors.Is(err, beacon.ErrNotEddystone):
		return "NotEddystone"
	case errors.Is(err, beacon.ErrShortFrame):
		return "ShortFrame"
	case errors.Is(err, beacon.ErrUnknownURLScheme):
		return "UnknownURLScheme"
	}
	if kind := ident.Kind(err); kind != "Unknown" {
		return kind
	}
	return "Error"
}
