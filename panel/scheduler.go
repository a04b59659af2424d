package panel

// Scheduler delivers frames to panels that need them. A panel calls Schedule
// when it starts moving and Cancel once it is at rest or destroyed; it never
// schedules itself twice without a Cancel in between. Implementations call
// Panel.Tick once per frame for every scheduled panel.
type Scheduler interface {
	Schedule(p *Panel)
	Cancel(p *Panel)
}

// ManualScheduler is a Scheduler that only records subscriptions. Call Tick
// to advance every subscribed panel. It is mostly useful in tests and
// headless tools.
type ManualScheduler struct {
	panels []*Panel
}

// Schedule implements Scheduler.
func (s *ManualScheduler) Schedule(p *Panel) {
	for _, q := range s.panels {
		if q == p {
			return
		}
	}
	s.panels = append(s.panels, p)
}

// Cancel implements Scheduler.
func (s *ManualScheduler) Cancel(p *Panel) {
	for i, q := range s.panels {
		if q == p {
			s.panels = append(s.panels[:i], s.panels[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribed panels.
func (s *ManualScheduler) Len() int { return len(s.panels) }

// Scheduled reports whether p is subscribed.
func (s *ManualScheduler) Scheduled(p *Panel) bool {
	for _, q := range s.panels {
		if q == p {
			return true
		}
	}
	return false
}

// Tick advances every subscribed panel by dt. Panels that come to rest
// cancel themselves during the call.
func (s *ManualScheduler) Tick(dt float64) {
	// Copy: Tick may cancel.
	panels := append([]*Panel(nil), s.panels...)
	for _, p := range panels {
		p.Tick(dt)
	}
}
