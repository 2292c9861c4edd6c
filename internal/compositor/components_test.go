package compositor

import (
	"context"
	"errors"
	"sync"
)

// recorder collects lifecycle calls across components in call order.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// part is a class-kind component without lifecycle hooks.
type part struct {
	rec     *recorder
	label   string
	service string
	deps    Deps
	makeErr error
}

func (p *part) Make(_ context.Context, deps Deps) error {
	p.rec.add(p.label + ".make")
	p.deps = deps
	if p.makeErr != nil {
		return p.makeErr
	}
	p.service = p.label + " service"
	return nil
}

func (p *part) Service() any {
	return p.service
}

// hookedPart adds start and stop hooks to part.
type hookedPart struct {
	part
	startErr error
	stopErr  error
}

func (p *hookedPart) Start(context.Context) error {
	p.rec.add(p.label + ".start")
	return p.startErr
}

func (p *hookedPart) Stop(context.Context) error {
	p.rec.add(p.label + ".stop")
	return p.stopErr
}

type Wheels struct{ hookedPart }
type Engine struct{ hookedPart }
type Car struct{ hookedPart }
type Lights struct{ part }
type UnmakablePart struct{ hookedPart }
type UnstartablePart struct{ hookedPart }
type UnstoppablePart struct{ hookedPart }

// Horn is a stateless class-kind component. Pointers to it are zero-size and
// may all share one address.
type Horn struct{}

func (*Horn) Make(context.Context, Deps) error { return nil }
func (*Horn) Service() any                     { return "honk" }

func hooked(rec *recorder, label string) hookedPart {
	return hookedPart{part: part{rec: rec, label: label}}
}

func newWheels(rec *recorder) *Wheels { return &Wheels{hooked(rec, "wheels")} }
func newEngine(rec *recorder) *Engine { return &Engine{hooked(rec, "engine")} }
func newCar(rec *recorder) *Car       { return &Car{hooked(rec, "car")} }
func newLights(rec *recorder) *Lights { return &Lights{part{rec: rec, label: "lights"}} }

func newUnmakable(rec *recorder) *UnmakablePart {
	p := &UnmakablePart{hooked(rec, "unmakablePart")}
	p.makeErr = errors.New("UnmakablePart can not be made")
	return p
}

func newUnstartable(rec *recorder) *UnstartablePart {
	p := &UnstartablePart{hooked(rec, "unstartablePart")}
	p.startErr = errors.New("UnstartablePart can not be started")
	return p
}

func newUnstoppable(rec *recorder) *UnstoppablePart {
	p := &UnstoppablePart{hooked(rec, "unstoppablePart")}
	p.stopErr = errors.New("UnstoppablePart can not be stopped")
	return p
}

// startedAt is a named function-kind component.
func startedAt(_ context.Context, deps Deps) (any, error) {
	return "started with " + deps["wheels"].(string), nil
}
