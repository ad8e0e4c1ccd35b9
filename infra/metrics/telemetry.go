package metrics

import (
	coremetrics "github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/metrics"
)

// JSONPublisher publishes a JSON encoded value on a subtopic.
type JSONPublisher interface {
	PublishJSON(sub string, v any) error
}

// TelemetrySink forwards records to an MQTT broker, one subtopic per record type.
type TelemetrySink struct {
	pub JSONPublisher
}

// NewTelemetrySink wraps pub.
func NewTelemetrySink(pub JSONPublisher) *TelemetrySink {
	return &TelemetrySink{pub: pub}
}

func (s *TelemetrySink) RecordBrakingEvent(r coremetrics.BrakingRecord) error {
	return s.pub.PublishJSON("braking", r)
}

func (s *TelemetrySink) RecordTEGPerformance(r coremetrics.TEGRecord) error {
	return s.pub.PublishJSON("teg", r)
}

func (s *TelemetrySink) RecordSafetyEvent(r coremetrics.SafetyRecord) error {
	return s.pub.PublishJSON("safety", r)
}
