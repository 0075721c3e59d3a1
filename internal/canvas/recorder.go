package canvas

import (
	"slices"
	"sync"

	"github.com/vk/portgraph/internal/node"
)

// Recorder keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Filter returns the recorded events with the given op.
func (r *Recorder) Filter(op Op) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Op == op {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events with the given op were recorded.
func (r *Recorder) Count(op Op) int {
	return len(r.Filter(op))
}

// Reset drops every recorded event.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *Recorder) AddLink(src, dst *node.Port)       { sink(r.record).AddLink(src, dst) }
func (r *Recorder) RemoveLink(src, dst *node.Port)    { sink(r.record).RemoveLink(src, dst) }
func (r *Recorder) UpdatePortAppearance(p *node.Port) { sink(r.record).UpdatePortAppearance(p) }
func (r *Recorder) AddNode(n *node.Node)              { sink(r.record).AddNode(n) }
func (r *Recorder) RemoveNode(n *node.Node)           { sink(r.record).RemoveNode(n) }
func (r *Recorder) Refresh(n *node.Node)              { sink(r.record).Refresh(n) }
