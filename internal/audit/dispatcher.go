package audit

import "go.uber.org/zap"

// Dispatcher decouples audit writes from the request path. A failed or
// dropped audit entry never fails the request that produced it.
type Dispatcher struct {
	sink   Sink
	logger *zap.Logger
	queue  chan Event
}

func NewDispatcher(sink Sink, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.logger.Warn("audit write failed",
				zap.String("entity", ev.Entity),
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("audit queue full, dropping event",
			zap.String("entity", ev.Entity),
			zap.String("action", ev.Action),
		)
	}
}
