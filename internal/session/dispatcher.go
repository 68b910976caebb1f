package session

import (
	"sync"
	"time"

	"everywhere_bot/internal/render"
	"everywhere_bot/pkg"
)

// Dispatcher renders emissions after their typing delays.
// Batches from different turns run independently; nothing is cancelled.
type Dispatcher struct {
	renderer render.Renderer
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher rendering onto renderer
func NewDispatcher(renderer render.Renderer) *Dispatcher {
	return &Dispatcher{renderer: renderer}
}

// Dispatch schedules the batch without blocking. Each emission is rendered its Delay
// after the previous one, so the batch keeps its order.
func (d *Dispatcher) Dispatch(emissions []pkg.Emission) {
	if len(emissions) == 0 {
		return
	}
	d.wg.Add(1)
	d.schedule(emissions)
}

func (d *Dispatcher) schedule(pending []pkg.Emission) {
	time.AfterFunc(pending[0].Delay, func() {
		d.renderer.Render(pending[0])
		if len(pending) > 1 {
			d.schedule(pending[1:])
			return
		}
		d.wg.Done()
	})
}

// Wait blocks until everything dispatched so far has been rendered
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
