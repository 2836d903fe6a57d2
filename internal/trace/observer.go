// Package trace carries the optional evaluation side-channel. Sinks receive
// formatted intermediate values and must never influence computed results.
package trace

import (
	"fmt"
	"io"
)

const (
	StageMatch = "match"
	StageScore = "score"
	StageBlend = "blend"
)

// Event is one intermediate step of an evaluation.
type Event struct {
	Stage   string
	Factor  string
	Shape   string
	Value   any
	Fitness float64
	Detail  string
}

// Observer receives evaluation events synchronously, fire-and-forget.
type Observer interface {
	Observe(event Event)
}

// Nop discards all events and is the default sink.
type Nop struct{}

func (Nop) Observe(Event) {}

// Writer prints one human-readable line per event.
type Writer struct {
	Out io.Writer
}

func (w Writer) Observe(event Event) {
	if w.Out == nil {
		return
	}
	switch event.Stage {
	case StageMatch:
		fmt.Fprintf(w.Out, "match factor=%s value=%v\n", event.Factor, event.Value)
	case StageScore:
		fmt.Fprintf(w.Out, "score factor=%s shape=%s value=%v fitness=%.6f\n",
			event.Factor, event.Shape, event.Value, event.Fitness)
	case StageBlend:
		fmt.Fprintf(w.Out, "blend strategy=%s fitness=%.6f\n", event.Detail, event.Fitness)
	default:
		fmt.Fprintf(w.Out, "%s factor=%s detail=%s\n", event.Stage, event.Factor, event.Detail)
	}
}

// Tee fans events out to several sinks in order.
func Tee(observers ...Observer) Observer {
	sinks := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs == nil {
			continue
		}
		sinks = append(sinks, obs)
	}
	return tee{sinks: sinks}
}

type tee struct {
	sinks []Observer
}

func (t tee) Observe(event Event) {
	for _, sink := range t.sinks {
		sink.Observe(event)
	}
}
