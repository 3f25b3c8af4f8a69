// Package liveness models the connection indicator as a four-state
// machine. Step is pure: it returns the next machine value and the
// animation effects the caller must run. The rendering layer plays the
// effects and feeds completions back in as Finished events.
package liveness

// State is the indicator state.
type State int

const (
	Dead State = iota
	Reviving
	Normal
	Dying
)

func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case Dying:
		return "dying"
	case Dead:
		return "dead"
	case Reviving:
		return "reviving"
	default:
		return "unknown"
	}
}

// Animation identifies a fixed-duration frame sequence.
type Animation int

const (
	AnimNone Animation = iota
	AnimDying
	AnimReviving
	AnimHeartbeat
)

func (a Animation) String() string {
	switch a {
	case AnimDying:
		return "dying"
	case AnimReviving:
		return "reviving"
	case AnimHeartbeat:
		return "heartbeat"
	default:
		return "none"
	}
}

// EventKind distinguishes the two inputs of the machine.
type EventKind int

const (
	// EventConnectivity carries a connected/disconnected observation.
	EventConnectivity EventKind = iota + 1

	// EventFinished reports that an animation ran to completion.
	EventFinished
)

// Event is an input to Step.
type Event struct {
	Kind       EventKind
	Connected  bool
	Animation  Animation
	Generation uint64
}

// Connectivity builds a connectivity event.
func Connectivity(connected bool) Event {
	return Event{Kind: EventConnectivity, Connected: connected}
}

// Finished builds a completion event for the animation started with
// generation gen.
func Finished(a Animation, gen uint64) Event {
	return Event{Kind: EventFinished, Animation: a, Generation: gen}
}

// EffectKind is the action an effect asks for.
type EffectKind int

const (
	// EffectStart asks the caller to play an animation tagged with
	// Generation.
	EffectStart EffectKind = iota + 1

	// EffectCancel asks the caller to stop the animation tagged with
	// Generation immediately.
	EffectCancel
)

// Effect is a side effect produced by Step.
type Effect struct {
	Kind       EffectKind
	Animation  Animation
	Generation uint64
}

// Machine is the full indicator state. The zero value is not valid; use
// New.
type Machine struct {
	State     State
	Connected bool

	// Running is the animation in flight, or AnimNone.
	Running Animation

	// Generation tags the most recently started animation. Completions
	// carrying an older generation are ignored.
	Generation uint64
}

// New returns the initial machine: dead, disconnected, idle.
func New() Machine {
	return Machine{State: Dead}
}

// Step applies ev to m.
func Step(m Machine, ev Event) (Machine, []Effect) {
	switch ev.Kind {
	case EventConnectivity:
		return onConnectivity(m, ev.Connected)
	case EventFinished:
		return onFinished(m, ev)
	default:
		return m, nil
	}
}

func onConnectivity(m Machine, connected bool) (Machine, []Effect) {
	if connected == m.Connected {
		return m, nil
	}
	m.Connected = connected

	var effects []Effect

	if !connected {
		// Disconnect guard: nothing keeps animating once the link is lost.
		m, effects = cancel(m, effects)

		switch m.State {
		case Normal:
			m.State = Dying
			return start(m, AnimDying, effects)
		case Reviving, Dying:
			m.State = Dead
		}
		return m, effects
	}

	switch m.State {
	case Dead, Normal:
		m, effects = cancel(m, effects)
		m.State = Reviving
		return start(m, AnimReviving, effects)
	}

	// Dying: the sequence plays out and revives on completion.
	return m, effects
}

func onFinished(m Machine, ev Event) (Machine, []Effect) {
	if ev.Generation != m.Generation || ev.Animation != m.Running || m.Running == AnimNone {
		return m, nil
	}
	m.Running = AnimNone

	switch ev.Animation {
	case AnimDying:
		m.State = Dead
		if m.Connected {
			m.State = Reviving
			return start(m, AnimReviving, nil)
		}

	case AnimReviving:
		if !m.Connected {
			m.State = Dead
			return m, nil
		}
		m.State = Normal
		return start(m, AnimHeartbeat, nil)

	case AnimHeartbeat:
		if m.Connected && m.State == Normal {
			return start(m, AnimHeartbeat, nil)
		}
	}

	return m, nil
}

func start(m Machine, a Animation, effects []Effect) (Machine, []Effect) {
	m.Generation++
	m.Running = a
	return m, append(effects, Effect{Kind: EffectStart, Animation: a, Generation: m.Generation})
}

func cancel(m Machine, effects []Effect) (Machine, []Effect) {
	if m.Running == AnimNone {
		return m, effects
	}
	effects = append(effects, Effect{Kind: EffectCancel, Animation: m.Running, Generation: m.Generation})
	m.Running = AnimNone
	return m, effects
}
