package audit

import (
	"github.com/rentwheels/fleet-api/internal/logger"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher writes audit entries off the request path through a buffered
// channel. When the buffer is full the event is dropped, never the request.
type Dispatcher struct {
	logger *Logger
	log    logger.ILogger
	queue  chan Event
}

func NewDispatcher(auditLogger *Logger, log logger.ILogger) *Dispatcher {
	d := &Dispatcher{
		logger: auditLogger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Error("audit write failed", logger.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", logger.String("action", ev.Action))
	}
}
