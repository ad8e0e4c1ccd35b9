package journal

import (
	"context"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/events"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/logger"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/core/monitoring"
	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/internal/eventbus"
)

// StartRecorder appends every braking event published on bus to store until
// ctx is canceled or the bus is closed. Append failures are logged and skipped.
func StartRecorder(ctx context.Context, bus eventbus.EventBus, store Store, log logger.Logger) {
	if bus == nil || store == nil {
		return
	}
	log = logger.OrNop(log)
	sub := bus.Subscribe()
	go func() {
		defer monitoring.Recover()
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				e, isBraking := ev.(events.BrakingEvent)
				if !isBraking {
					continue
				}
				if err := store.Append(ctx, RecordFrom(e)); err != nil {
					log.Errorf("journal append %s: %v", e.Outputs.EventID, err)
				}
			}
		}
	}()
}
