// Package tracking keeps the association between recognized markers and
// their anchors across camera frames.
//
// The upstream tracking subsystem reports, once per frame, the markers whose
// state changed. A Manager applies each batch and keeps at most one entity per
// marker id:
//
//	unknown id  -> PAUSED   : tentative identification, no entity
//	any         -> TRACKING : entity created with a fresh anchor (once)
//	known id    -> PAUSED   : entity kept, state updated
//	known id    -> STOPPED  : entity removed, anchor released once
//
// Only entities that are TRACKING with FULL_TRACKING are eligible for
// rendering. The entity map is owned by the Manager; callers only ever see
// Snapshot copies.
package tracking
