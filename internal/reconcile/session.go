package reconcile

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"rest-mapper/internal/mapping"
	"rest-mapper/internal/resource"
	"rest-mapper/internal/schema"
)

// ErrReentrant is returned when a listener dispatches while being notified.
var ErrReentrant = errors.New("dispatch from inside a change listener")

// Listener is notified synchronously after every state change.
type Listener func(*State)

// Session is the host-side store for one connection. It owns the two sides,
// applies effects to their resources and entity sets, and keeps the current
// State and persisted mapping. A Session is not safe for concurrent use.
type Session struct {
	opts []Option
	log  logrus.FieldLogger

	source, target Side
	mapping        *mapping.Connection
	state          *State

	listeners []Listener
	nextID    int
	ids       []int
	notifying bool
}

// Output is what a session hands back to its host.
type Output struct {
	Mapping        *mapping.Connection
	Source         *resource.Resource
	Target         *resource.Resource
	SourceEntities schema.EntitySet
	TargetEntities schema.EntitySet
	Issues         []string
	Warnings       []string
}

// NewSession builds the initial state and applies the effects of the build.
// The session takes ownership of the resources in source and target.
func NewSession(source, target Side, persisted *mapping.Connection, opts ...Option) *Session {
	o := newOptions(opts)

	s := &Session{
		opts:   opts,
		log:    o.log,
		source: withResource(source, resource.KindAPI),
		target: withResource(target, resource.KindClient),
	}

	s.mapping = cloneConnection(persisted)
	s.build()

	return s
}

// State returns the current state.
func (s *Session) State() *State {
	return s.state
}

// Mapping returns a copy of the current persisted mapping.
func (s *Session) Mapping() *mapping.Connection {
	return cloneConnection(s.mapping)
}

// Subscribe registers l and returns a function that removes it.
func (s *Session) Subscribe(l Listener) func() {
	id := s.nextID
	s.nextID++

	s.listeners = append(s.listeners, l)
	s.ids = append(s.ids, id)

	return func() {
		for i, v := range s.ids {
			if v == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				s.ids = append(s.ids[:i:i], s.ids[i+1:]...)

				return
			}
		}
	}
}

// Dispatch applies intent. Rejections are returned as *Rejection and leave
// the session untouched. Listeners run once per state change.
func (s *Session) Dispatch(intent Intent) error {
	if s.notifying {
		return ErrReentrant
	}

	log := s.log.WithFields(logrus.Fields{
		"intent": intent.Name(),
		"index":  intent.EntryIndex(),
	})

	next, effects, err := Apply(s.state, intent)
	if err != nil {
		var rej *Rejection
		if errors.As(err, &rej) {
			log.WithField("reason", rej.Reason).Info("intent rejected")
		}

		return err
	}

	if len(effects) == 0 {
		log.Debug("intent ignored")
		return nil
	}

	s.applyEffects(effects)
	s.state = next

	log.WithField("effects", len(effects)).Debug("intent applied")

	s.notify()

	return nil
}

// Rebuild replaces the inputs and rebuilds the state. A nil persisted
// mapping keeps the current one. Listeners are notified once.
func (s *Session) Rebuild(source, target Side, persisted *mapping.Connection) error {
	if s.notifying {
		return ErrReentrant
	}

	s.source = withResource(source, resource.KindAPI)
	s.target = withResource(target, resource.KindClient)
	if persisted != nil {
		s.mapping = cloneConnection(persisted)
	}

	s.build()
	s.notify()

	return nil
}

// Output returns the reconciled mapping of the current state, both resources and the diagnostics.
func (s *Session) Output() Output {
	ctx := s.state.Context()

	return Output{
		Mapping:        s.state.MappingData(),
		Source:         s.source.Resource.Clone(),
		Target:         s.target.Resource.Clone(),
		SourceEntities: s.source.Entities.Clone(),
		TargetEntities: s.target.Entities.Clone(),
		Issues:         ctx.Issues(),
		Warnings:       ctx.Warnings(),
	}
}

func (s *Session) build() {
	state, effects := Build(s.source, s.target, s.mapping, s.opts...)

	s.applyEffects(effects)
	s.state = state

	ctx := state.Context()
	s.log.WithFields(logrus.Fields{
		"source":   ctx.SourceName,
		"target":   ctx.TargetName,
		"entries":  state.Len(),
		"issues":   len(ctx.Diagnostics.Errors),
		"warnings": len(ctx.Diagnostics.Warnings),
		"copies":   len(effects),
	}).Debug("mapping built")
}

func (s *Session) applyEffects(effects []Effect) {
	for _, eff := range effects {
		switch e := eff.(type) {
		case SetMethod:
			s.side(e.Role).Resource.SetMethod(e.ID, e.Method)
		case DeleteMethod:
			s.side(e.Role).Resource.DeleteMethod(e.ID)
		case AddEntities:
			side := s.side(e.Role)
			side.Entities = side.Entities.Union(e.Entities...)
		case MappingChanged:
			s.mapping = cloneConnection(e.Mapping)
		default:
			panic(fmt.Sprintf("reconcile: unknown effect %T", eff))
		}
	}
}

func (s *Session) side(r Role) *Side {
	if r == RoleSource {
		return &s.source
	}

	return &s.target
}

func (s *Session) notify() {
	s.notifying = true
	defer func() { s.notifying = false }()

	for _, l := range append([]Listener(nil), s.listeners...) {
		l(s.state)
	}
}

// withResource gives a side without a resource an empty one of kind.
func withResource(side Side, kind string) Side {
	if side.Resource == nil {
		side.Resource = resource.New(kind, "")
	}

	return side
}

func cloneConnection(conn *mapping.Connection) *mapping.Connection {
	if conn == nil {
		return nil
	}

	out := conn.Clone()

	return &out
}
