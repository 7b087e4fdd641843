// Package fixture models a single lighting fixture: its addressable
// elements, their DMX channel maps, and the fixture-local byte frame that
// update_dmx rewrites each serialise.
package fixture

import (
	"math"

	"github.com/robmorgan/lumacue/light"
)

// Kind names the shape of element this is, matching the "kind" string a
// fixture-definition file uses for each role.
type Kind int

const (
	KindUnknown Kind = iota
	KindIntensity
	KindRgbi
	KindRgbiu
	KindUv
	KindSmoke
	KindActuator
	KindGobo
)

// KindFromString maps a fixture-definition "kind" string to a Kind,
// defaulting to KindUnknown for anything unrecognised.
func KindFromString(s string) Kind {
	switch s {
	case "rgbiu":
		return KindRgbiu
	case "rgbi":
		return KindRgbi
	case "i", "intensity":
		return KindIntensity
	case "u", "uv":
		return KindUv
	case "smoke":
		return KindSmoke
	case "actuator":
		return KindActuator
	case "gobo":
		return KindGobo
	default:
		return KindUnknown
	}
}

// Element is a tagged addressable unit within a fixture: an RGB cluster, a
// UV emitter, an intensity channel, or one of the inert placeholder kinds.
// It owns a channel map from role name ("i", "r", "g", "b", "uv") to a
// 1-based byte offset within the fixture's local DMX frame.
type Element struct {
	Kind Kind

	Intensity light.Intensity
	RGB       light.Color
	UV        light.Intensity

	Channels map[string]int
}

// NewElement constructs a zero-valued element of the given kind with an
// empty channel map.
func NewElement(kind Kind) *Element {
	e := &Element{Kind: kind, Channels: map[string]int{}}
	switch kind {
	case KindRgbi:
		e.RGB = light.Black()
	case KindRgbiu:
		e.RGB = light.Black()
		e.UV = 0
	case KindUv:
		e.UV = 0
	}
	return e
}

// AddChannel records a role's 1-based channel offset within the fixture
// frame. Silently overwrites any previous mapping for the same role.
func (e *Element) AddChannel(role string, channel int) {
	e.Channels[role] = channel
}

// Zero resets the element to the neutral value of its own kind: black for
// colour variants, 0 for intensity/UV, no-op for the placeholder kinds.
func (e *Element) Zero() {
	switch e.Kind {
	case KindIntensity:
		e.Intensity = 0
	case KindRgbi:
		e.RGB = light.Black()
	case KindRgbiu:
		e.RGB = light.Black()
		e.UV = 0
	case KindUv:
		e.UV = 0
	}
}

// writeByte stores v (already scaled to [0,255]) into frame at the role's
// mapped offset, if the role has one. Missing roles are silently skipped.
func (e *Element) writeByte(frame []byte, role string, v float64) {
	ch, ok := e.Channels[role]
	if !ok {
		return
	}
	idx := ch - 1
	if idx < 0 || idx >= len(frame) {
		return
	}
	frame[idx] = byte(math.Trunc(v))
}

// UpdateDMX writes this element's current state into the fixture-local
// frame, per the table in the fixture model component design: Intensity
// writes one byte, Rgbi/Rgbiu write an implicit full intensity plus colour
// (and UV for Rgbiu), other kinds are a no-op.
func (e *Element) UpdateDMX(frame []byte) {
	switch e.Kind {
	case KindIntensity:
		e.writeByte(frame, "i", e.Intensity*255)
	case KindRgbi:
		e.writeByte(frame, "i", 255)
		e.writeByte(frame, "r", e.RGB.R*255)
		e.writeByte(frame, "g", e.RGB.G*255)
		e.writeByte(frame, "b", e.RGB.B*255)
	case KindRgbiu:
		e.writeByte(frame, "i", 255)
		e.writeByte(frame, "r", e.RGB.R*255)
		e.writeByte(frame, "g", e.RGB.G*255)
		e.writeByte(frame, "b", e.RGB.B*255)
		e.writeByte(frame, "uv", e.UV*255)
	default:
		// Uv, Smoke, Actuator, Gobo, Unknown: read-through placeholders.
	}
}
