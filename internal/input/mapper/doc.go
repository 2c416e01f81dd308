// Package mapper turns raw source signals into phase observations.
//
// The mapper only decides whether a logical key is currently active and
// with what value. It writes that into a phase.Store; the tracker's sweep
// decides which transition to emit.
//
// Buttons and keyboard events follow the same rules:
//
//	active,   no record  -> record created in the pressed state
//	active,   record     -> value refreshed, phase unchanged
//	inactive, record     -> record marked released
//	inactive, no record  -> nothing
//
// Axes use the same rules with "active" meaning that some component of
// the axis vector exceeds the threshold in magnitude (strictly).
package mapper
