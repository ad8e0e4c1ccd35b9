// Package events defines the events emitted on the event bus after successful
// calculations.
//
// Available event types:
//   - PerformanceEvent: a TEG conversion result from the engine
//   - BrakingEvent: an integrated braking result from the coordinator
//   - SafetyEvent: a calculation rejected for safety reasons
package events
