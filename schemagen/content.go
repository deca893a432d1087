package schemagen

import (
	"fmt"

	"github.com/exip-go/exip/core"
)

// unionInto copies every production of src onto dst, the way the original
// grammar generator's concatenation operator identifies an accept state
// with the next state's start productions. core.AbstractSchemaInformedGrammar
// ships a JoinGrammars method for this, but it walks productions by
// re-querying GetProduction(EventType(i)) for i in [0,N) -- a lookup keyed
// by event *type*, not event *code*, so it silently drops or misattributes
// productions once a rule holds more than one event of the same type (e.g.
// two attributes, or two child elements). GetProductionByEventCode is the
// one that actually indexes by position, so the copy is done by hand here.
func unionInto(dst core.SchemaInformedGrammar, src core.Grammar) error {
	for i := 0; i < src.GetNumberOfEvents(); i++ {
		prod := src.GetProductionByEventCode(i)
		if err := dst.AddProduction(prod.GetEvent(), prod.GetNextGrammar()); err != nil {
			return err
		}
	}
	return nil
}

// buildTailContent returns the terminal "Type-i,n" content state: nothing
// left to consume but EE.
func buildTailContent() core.SchemaInformedGrammar {
	tail := core.NewSchemaInformedElement()
	tail.AddTerminalProduction(core.NewEndElement())
	return tail
}

// buildContentModel builds the ElementContent (or mixed-content) grammar
// chain for a content model group, threading particles right-to-left so
// each particle's "next" state is already known when its own entry state
// is constructed. exit is the state reached once every particle has been
// satisfied (normally the tail built by buildTailContent, or, for nested
// groups, whatever comes after the group in its parent).
func (b *Builder) buildContentModel(group *ModelGroup, mixed bool, exit core.SchemaInformedGrammar) (core.SchemaInformedGrammar, error) {
	if group == nil {
		return exit, nil
	}

	switch group.Kind {
	case GroupAll:
		return nil, ErrAllGroupNotImplemented
	case GroupSequence:
		state := exit
		for i := len(group.Particles) - 1; i >= 0; i-- {
			var err error
			state, err = b.buildParticle(group.Particles[i], mixed, state)
			if err != nil {
				return nil, err
			}
		}
		return b.applyMixed(state, mixed, exit)
	case GroupChoice:
		choice := core.NewSchemaInformedElement()
		for _, p := range group.Particles {
			alt, err := b.buildParticle(p, mixed, exit)
			if err != nil {
				return nil, err
			}
			if err := unionInto(choice, alt); err != nil {
				return nil, err
			}
		}
		// The zero-occurrence path of the choice itself is left to the
		// caller's Occurs wrapping; exit is not unioned in here, so a choice
		// with no particles has no productions.
		return b.applyMixed(choice, mixed, exit)
	default:
		return nil, fmt.Errorf("schemagen: unknown model group kind %d", group.Kind)
	}
}

// applyMixed adds a CH production looping back to itself for mixed content,
// matching how EXI schema-informed element content interleaves character
// data with child elements for xs:complexType mixed="true".
func (b *Builder) applyMixed(state core.SchemaInformedGrammar, mixed bool, exit core.SchemaInformedGrammar) (core.SchemaInformedGrammar, error) {
	if !mixed {
		return state, nil
	}
	if err := state.AddProduction(core.NewCharactersGeneric(), state); err != nil {
		return nil, err
	}
	return state, nil
}

// buildParticle expands one particle (with its min/max occurrence range)
// into an entry grammar state whose eventual "next" is exit.
func (b *Builder) buildParticle(p Particle, mixed bool, exit core.SchemaInformedGrammar) (core.SchemaInformedGrammar, error) {
	entry, err := b.buildParticleCore(p, mixed, exit)
	if err != nil {
		return nil, err
	}
	return b.expandOccurs(entry, p.Occurs, exit)
}

// buildParticleCore builds a single occurrence's entry state (the state
// reached if the particle fires exactly once, going straight to exit
// afterwards), without yet accounting for Occurs.
func (b *Builder) buildParticleCore(p Particle, mixed bool, exit core.SchemaInformedGrammar) (core.SchemaInformedGrammar, error) {
	switch p.Kind {
	case ParticleElement:
		qnc, err := b.qnameContext(*p.Element)
		if err != nil {
			return nil, err
		}
		ge, ok := b.schema.Elements[*p.Element]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownElement, *p.Element)
		}
		se, err := b.globalElementEvent(ge, qnc)
		if err != nil {
			return nil, err
		}
		state := core.NewSchemaInformedElement()
		if err := state.AddProduction(se, exit); err != nil {
			return nil, err
		}
		return state, nil
	case ParticleWildcard:
		ev := wildcardStartElementEvent(p.Wildcard.Namespace)
		state := core.NewSchemaInformedElement()
		if err := state.AddProduction(ev, exit); err != nil {
			return nil, err
		}
		return state, nil
	case ParticleGroup:
		return b.buildContentModel(p.Group, mixed, exit)
	default:
		return nil, fmt.Errorf("schemagen: unknown particle kind %d", p.Kind)
	}
}

// expandOccurs turns a single-occurrence entry state into one honoring
// min/max occurrence bounds, by chaining copies of entry (bounded case) or
// building a self-looping state unioned with exit (unbounded case).
func (b *Builder) expandOccurs(entry core.SchemaInformedGrammar, occ Occurs, exit core.SchemaInformedGrammar) (core.SchemaInformedGrammar, error) {
	if occ.Max == MaxUnbounded {
		// loop is the "zero or more further occurrences" state: the
		// particle's own event re-enters loop (repeat), and loop also
		// carries exit's productions directly (stop here).
		loop := core.NewSchemaInformedElement()
		repeat, err := rebindExit(entry, exit, loop)
		if err != nil {
			return nil, err
		}
		if err := unionInto(loop, repeat); err != nil {
			return nil, err
		}
		if err := unionInto(loop, exit); err != nil {
			return nil, err
		}

		// Chain occ.Min mandatory occurrences ahead of loop.
		state := loop
		for i := 0; i < occ.Min; i++ {
			state, err = rebindExit(entry, exit, state)
			if err != nil {
				return nil, err
			}
		}
		return state, nil
	}

	state := exit
	optionalCount := occ.Max - occ.Min
	for i := 0; i < optionalCount; i++ {
		rebound, err := rebindExit(entry, exit, state)
		if err != nil {
			return nil, err
		}
		optional := core.NewSchemaInformedElement()
		if err := unionInto(optional, rebound); err != nil {
			return nil, err
		}
		if err := unionInto(optional, state); err != nil {
			return nil, err
		}
		state = optional
	}
	for i := 0; i < occ.Min; i++ {
		rebound, err := rebindExit(entry, exit, state)
		if err != nil {
			return nil, err
		}
		state = rebound
	}
	if occ.Min == 0 && occ.Max == 0 {
		return exit, nil
	}
	return state, nil
}

// rebindExit produces a fresh copy of a single-occurrence entry state whose
// productions point to newExit instead of oldExit. Used to re-target a
// particle's "next" pointer when stitching repeated occurrences together.
func rebindExit(entry core.SchemaInformedGrammar, oldExit, newExit core.SchemaInformedGrammar) (core.SchemaInformedGrammar, error) {
	fresh := core.NewSchemaInformedElement()
	for i := 0; i < entry.GetNumberOfEvents(); i++ {
		prod := entry.GetProductionByEventCode(i)
		next := prod.GetNextGrammar()
		if next == core.Grammar(oldExit) {
			next = newExit
		}
		if err := fresh.AddProduction(prod.GetEvent(), next); err != nil {
			return nil, err
		}
	}
	return fresh, nil
}

func wildcardStartElementEvent(ns NamespaceConstraint) core.Event {
	switch ns.Kind {
	case NSEnumerated:
		if len(ns.URIs) == 1 {
			return core.NewStartElementNS(0, ns.URIs[0])
		}
		return core.NewStartElementGeneric()
	default:
		// ##any and ##other (approximated as ##any: the uri this particular
		// instance excludes is a schema-validation detail, not a grammar
		// shape one) both use the fully generic SE(*) event.
		return core.NewStartElementGeneric()
	}
}

func wildcardAttributeEvent(ns NamespaceConstraint) core.Event {
	switch ns.Kind {
	case NSEnumerated:
		if len(ns.URIs) == 1 {
			return core.NewAttributeNS(0, ns.URIs[0])
		}
		return core.NewAttributeGeneric()
	default:
		return core.NewAttributeGeneric()
	}
}
