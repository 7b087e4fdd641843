// Package installation models a named collection of fixtures arranged into
// a single DMX512 universe.
package installation

import (
	"sort"

	"github.com/robmorgan/lumacue/fixture"
)

// Installation is a name→Fixture map plus the operations needed to zero it
// and serialise it into one flat DMX universe.
type Installation struct {
	Fixtures map[string]*fixture.Fixture
}

// New builds an Installation from an already-loaded fixture map.
func New(fixtures map[string]*fixture.Fixture) *Installation {
	return &Installation{Fixtures: fixtures}
}

// FindElement resolves "fixtureName" + "elementName" to an *Element, or nil
// if either doesn't exist.
func (inst *Installation) FindElement(fixtureName, elementName string) *fixture.Element {
	f, ok := inst.Fixtures[fixtureName]
	if !ok {
		return nil
	}
	return f.FindElement(elementName)
}

// Zero resets every fixture's elements to their neutral value.
func (inst *Installation) Zero() {
	for _, f := range inst.Fixtures {
		f.Zero()
	}
}

// BuildUniverse recomputes each fixture's local DMX frame, then assembles
// them into one universe byte vector whose length is
// max(fixture.Channel-1+fixture.NumChannels()) over all fixtures,
// zero-padded. Overlapping channel ranges are last-writer-wins in sorted
// fixture-name order — see the overlapping channel ranges design note.
func (inst *Installation) BuildUniverse() []byte {
	size := 0
	for _, f := range inst.Fixtures {
		end := f.Channel - 1 + f.NumChannels()
		if end > size {
			size = end
		}
	}

	universe := make([]byte, size)

	// Iterate in a stable, sorted name order so the undefined
	// overlapping-range behaviour is at least reproducible run to run; the
	// result remains order-dependent for genuinely overlapping fixtures,
	// per the installation's documented invariant.
	names := make([]string, 0, len(inst.Fixtures))
	for name := range inst.Fixtures {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f := inst.Fixtures[name]
		frame := f.UpdateDMX()
		offset := f.Channel - 1
		copy(universe[offset:offset+len(frame)], frame)
	}

	return universe
}
