// Package effect implements the effect pool: named weighted contributions
// that mix static element values and Lua pattern output onto an
// installation each frame, plus the key→effect command queue that toggles
// their strength.
package effect

import (
	"fmt"
	"strings"

	"github.com/robmorgan/lumacue/fixture"
	"github.com/robmorgan/lumacue/installation"
	"github.com/robmorgan/lumacue/light"
	"github.com/robmorgan/lumacue/pattern"
)

// GroupElement names one (fixture, element) pair that belongs to a named
// group, in the fixed order the group's pattern broadcasts over.
type GroupElement struct {
	Fixture string
	Element string
}

// GroupMap is name → ordered list of (fixture, element) pairs.
type GroupMap map[string][]GroupElement

// EffectElement is one static contribution of an effect: a target
// fixture/element and the integer value to mix onto it, unscaled by
// strength until apply time.
type EffectElement struct {
	Fixture  string
	Element  string
	Property string
	Value    int32
}

// NewEffectElement builds a static EffectElement.
func NewEffectElement(fixtureName, elementName, property string, value int32) EffectElement {
	return EffectElement{Fixture: fixtureName, Element: elementName, Property: property, Value: value}
}

// Effect is a named weighted contribution: a current strength in [0,1], a
// set of static element contributions, and a set of patterns.
type Effect struct {
	Name     string
	Strength float64
	Elements []EffectElement
	Patterns []*pattern.Pattern
}

// New builds an Effect at the given initial strength.
func New(name string, strength float64, elements []EffectElement, patterns []*pattern.Pattern) *Effect {
	return &Effect{Name: name, Strength: strength, Elements: elements, Patterns: patterns}
}

// mix applies value, scaled by strength, onto an element in place per its
// kind. Intensity adds the low byte of value scaled by strength and clamps
// the sum to [0,1]; Rgbi/Rgbiu decode value as a 24-bit colour, scale by
// strength and add; other kinds are untouched.
func mix(el *fixture.Element, value int32, strength float64) {
	switch el.Kind {
	case fixture.KindIntensity:
		el.Intensity = light.ClampIntensity(el.Intensity + (float64(value&0xff)/255.0)*strength)
	case fixture.KindRgbi:
		c := light.ColorFromInt(value).Scale(strength)
		el.RGB = el.RGB.Add(c)
	case fixture.KindRgbiu:
		c := light.ColorFromInt(value).Scale(strength)
		el.RGB = el.RGB.Add(c)
	default:
		// Uv, Smoke, Actuator, Gobo, Unknown: no mix.
	}
}

// ApplyTo mixes this effect's static elements and pattern output onto inst,
// at the effect's current strength.
func (e *Effect) ApplyTo(inst *installation.Installation, groups GroupMap) {
	strength := e.Strength

	for _, ee := range e.Elements {
		el := inst.FindElement(ee.Fixture, ee.Element)
		if el == nil {
			continue
		}
		mix(el, ee.Value, strength)
	}

	for _, p := range e.Patterns {
		members := groups[p.GroupName]
		values := p.Update(1.0 / 30)

		n := len(members)
		if len(values) < n {
			n = len(values)
		}
		for i := 0; i < n; i++ {
			el := inst.FindElement(members[i].Fixture, members[i].Element)
			if el == nil {
				continue
			}
			mix(el, values[i], strength)
		}
	}
}

// Action is a command action applied to an effect by key.
type Action int

const (
	Toggle Action = iota
)

// Command is a single queued effect-key action.
type Command struct {
	Key    string
	Action Action
}

// CanonicalKey upper-cases the leading letters of a key, matching the
// parser's own canonicalisation ("a1" -> "A1").
func CanonicalKey(s string) string {
	return strings.ToUpper(s)
}

// Pool owns the set of effects, the named groups patterns broadcast over,
// the key→effect binding, and the pending command queue.
type Pool struct {
	Effects          []*Effect
	Groups           GroupMap
	InstallationPath string
	KeyMap           map[string]string

	byName map[string]*Effect
	queue  []Command
}

// NewPool builds an effect pool from already-loaded effects and groups.
func NewPool(effects []*Effect, groups GroupMap, installationPath string) *Pool {
	byName := make(map[string]*Effect, len(effects))
	for _, e := range effects {
		byName[e.Name] = e
	}
	return &Pool{
		Effects:          effects,
		Groups:           groups,
		InstallationPath: installationPath,
		KeyMap:           map[string]string{},
		byName:           byName,
	}
}

// SetKey binds a canonical key to an effect name.
func (p *Pool) SetKey(key, effectName string) {
	p.KeyMap[CanonicalKey(key)] = effectName
}

// Effect looks up an effect by name.
func (p *Pool) Effect(name string) *Effect {
	return p.byName[name]
}

// AddCommands appends to the pending command queue.
func (p *Pool) AddCommands(cmds ...Command) {
	p.queue = append(p.queue, cmds...)
}

// RunCommands snapshots and clears the pending queue, applying each
// command's toggle: strength becomes 1.0 if it is currently 0, else 0.0.
// This collapses any in-between strength to 0 — an intentional lossy rule,
// see the toggle design note. Commands whose key isn't bound are dropped
// silently.
func (p *Pool) RunCommands() {
	cmds := p.queue
	p.queue = nil

	for _, cmd := range cmds {
		name, ok := p.KeyMap[cmd.Key]
		if !ok {
			continue
		}
		e, ok := p.byName[name]
		if !ok {
			continue
		}
		switch cmd.Action {
		case Toggle:
			if e.Strength > 0 {
				e.Strength = 0
			} else {
				e.Strength = 1
			}
		}
	}
}

// ApplyTo zeros inst, then applies every effect in list order. Later
// effects add on top of earlier ones, clamped at each addition by the
// underlying element types.
func (p *Pool) ApplyTo(inst *installation.Installation) {
	inst.Zero()
	for _, e := range p.Effects {
		e.ApplyTo(inst, p.Groups)
	}
}

// ReloadPatterns reloads every pattern across every effect in the pool. The
// mixer calls this in bulk whenever the pattern directory watcher signals a
// change, per the bulk-reload design note.
func (p *Pool) ReloadPatterns() {
	for _, e := range p.Effects {
		for _, pat := range e.Patterns {
			pat.Reload()
		}
	}
}

// String satisfies fmt.Stringer for logging.
func (p *Pool) String() string {
	return fmt.Sprintf("effect pool(%d effects, %d groups)", len(p.Effects), len(p.Groups))
}
