package metrics

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordBrakingEvent forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordBrakingEvent(rec BrakingRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordBrakingEvent(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordTEGPerformance forwards to the sinks implementing TEGRecorder.
func (m *MultiSink) RecordTEGPerformance(rec TEGRecord) error {
	for _, s := range m.Sinks {
		if r, ok := s.(TEGRecorder); ok {
			if err := r.RecordTEGPerformance(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordSafetyEvent forwards to the sinks implementing SafetyRecorder.
func (m *MultiSink) RecordSafetyEvent(rec SafetyRecord) error {
	for _, s := range m.Sinks {
		if r, ok := s.(SafetyRecorder); ok {
			if err := r.RecordSafetyEvent(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
