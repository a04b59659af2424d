package panel

import (
	"testing"

	"github.com/phanxgames/liquidglass/field"
)

func TestManualSchedulerDeduplicates(t *testing.T) {
	sched := &ManualScheduler{}
	p := newTestPanel(t, Config{Geometry: Geometry{Width: 10, Height: 10}, Fragment: field.Wave, Scheduler: sched})
	sched.Schedule(p)
	sched.Schedule(p)
	if sched.Len() != 1 {
		t.Errorf("Len = %d, want 1", sched.Len())
	}
	sched.Cancel(p)
	sched.Cancel(p)
	if sched.Len() != 0 || sched.Scheduled(p) {
		t.Error("Cancel did not remove the panel")
	}
}

func TestManualSchedulerTickCancelsDuringIteration(t *testing.T) {
	sched := &ManualScheduler{}
	var panels []*Panel
	for i := 0; i < 3; i++ {
		panels = append(panels, newTestPanel(t, Config{
			Geometry:  Geometry{Width: 10, Height: 10},
			Fragment:  field.Pulse,
			Scheduler: sched,
		}))
	}
	for _, p := range panels {
		p.SetFragment(field.Subtle)
	}
	sched.Tick(1.0 / 60)
	if sched.Len() != 0 {
		t.Errorf("Len = %d after every panel came to rest", sched.Len())
	}
}
