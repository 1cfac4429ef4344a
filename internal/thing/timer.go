package thing

// Timer counts down in simulation steps.
type Timer struct {
	Remaining int
	Duration  int
	Fn        func()
}

// timerSet keeps timers by name plus their arming order, so ticking is
// deterministic.
type timerSet struct {
	byName map[string]*Timer
	order  []string
}

// SetTimer arms a named countdown of frames steps. Re-arming an active name
// replaces it. fn may be nil.
func (t *Thing) SetTimer(name string, frames int, fn func()) {
	ts := &t.timers
	if ts.byName == nil {
		ts.byName = make(map[string]*Timer)
	}
	if _, exists := ts.byName[name]; !exists {
		ts.order = append(ts.order, name)
	}
	ts.byName[name] = &Timer{Remaining: frames, Duration: frames, Fn: fn}
}

// TickTimers decrements every timer once. A timer reaching zero is deleted
// before its callback runs, so the callback may re-arm the same name.
// Timers armed during the tick are not decremented until the next one.
func (t *Thing) TickTimers() {
	ts := &t.timers
	if len(ts.order) == 0 {
		return
	}

	names := make([]string, len(ts.order))
	copy(names, ts.order)
	for _, name := range names {
		tm, ok := ts.byName[name]
		if !ok {
			continue
		}
		tm.Remaining--
		if tm.Remaining > 0 {
			continue
		}
		ts.remove(name)
		if tm.Fn != nil {
			tm.Fn()
		}
	}
}

func (ts *timerSet) remove(name string) bool {
	if _, ok := ts.byName[name]; !ok {
		return false
	}
	delete(ts.byName, name)
	for i, n := range ts.order {
		if n == name {
			ts.order = append(ts.order[:i], ts.order[i+1:]...)
			break
		}
	}
	return true
}

// CancelTimer deletes a timer without running its callback.
// Returns false if no such timer was active.
func (t *Thing) CancelTimer(name string) bool {
	return t.timers.remove(name)
}

// IsTimerActive reports whether a named timer is counting down.
func (t *Thing) IsTimerActive(name string) bool {
	_, ok := t.timers.byName[name]
	return ok
}

// TimerRemaining returns the steps left on a timer, 0 if inactive.
func (t *Thing) TimerRemaining(name string) int {
	if tm, ok := t.timers.byName[name]; ok {
		return tm.Remaining
	}
	return 0
}

// TimerDuration returns the steps a timer was armed with, 0 if inactive.
func (t *Thing) TimerDuration(name string) int {
	if tm, ok := t.timers.byName[name]; ok {
		return tm.Duration
	}
	return 0
}

// TimerElapsed returns how far through its countdown a timer is, in [0, 1].
// Inactive timers report 0.
func (t *Thing) TimerElapsed(name string) float64 {
	tm, ok := t.timers.byName[name]
	if !ok || tm.Duration <= 0 {
		return 0
	}
	return 1 - float64(tm.Remaining)/float64(tm.Duration)
}

// Timers returns the names of active timers in arming order.
func (t *Thing) Timers() []string {
	out := make([]string, len(t.timers.order))
	copy(out, t.timers.order)
	return out
}
