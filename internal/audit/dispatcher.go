package audit

import (
	"time"

	"go.uber.org/zap"
)

type Event struct {
	// At vazio vira o instante do Dispatch
	At time.Time

	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder é o que os casos de uso enxergam do audit.
type Recorder interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	store *Store
	log   *zap.Logger
	queue chan Event
	done  chan struct{}
}

func NewDispatcher(store *Store, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		store: store,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.store.Log(ev); err != nil {
			d.log.Warn("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	select {
	case d.queue <- ev:
	default:
		// fila cheia: descartamos o audit, nunca quebrar a API
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drena a fila; chamar só no shutdown.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

// Discard ignora todos os eventos.
type Discard struct{}

func (Discard) Dispatch(Event) {}
