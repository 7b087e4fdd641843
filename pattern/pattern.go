// Package pattern implements the sandboxed Lua scripting runtime that
// group-scoped generators run under. Each Pattern owns its own *lua.LState;
// there is no shared mutable state across patterns, so one script's panic
// or runtime error never touches another pattern or the mixer.
package pattern

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/robmorgan/lumacue/logger"
	lua "github.com/yuin/gopher-lua"
)

// Option is a single caller-supplied value for a pattern's declarative
// options table, coerced from a TOML value at the loader boundary.
type Option struct {
	String *string
	Int    *int64
	Float  *float64
	Bool   *bool
	// Time carries a datetime value already formatted as an ISO-8601
	// string, per the pattern runtime's "datetimes pass as ISO-string"
	// coercion rule.
	Time *string
}

// Pattern is a group-scoped generator bound to a Lua script. ScriptName and
// GroupName are fixed at construction; Options are the caller-supplied
// values the script's options table seeds from.
type Pattern struct {
	ScriptName   string
	GroupName    string
	Property     string
	ElementCount int
	Options      map[string]Option

	dir   string
	state *lua.LState // nil while broken/reloading
}

// New constructs a Pattern and performs its initial load. Scripts live
// under dir/ScriptName (dir defaults to "patterns" when empty).
func New(dir, scriptName, groupName, property string, elementCount int, options map[string]Option) *Pattern {
	if dir == "" {
		dir = "patterns"
	}
	p := &Pattern{
		ScriptName:   scriptName,
		GroupName:    groupName,
		Property:     property,
		ElementCount: elementCount,
		Options:      options,
		dir:          dir,
	}
	p.Reload()
	return p
}

// Broken reports whether the pattern has no live script instance, either
// because it never loaded successfully or a reload failed.
func (p *Pattern) Broken() bool {
	return p.state == nil
}

// Reload re-reads the script source and rebuilds the interpreter context,
// preserving the caller-supplied options. A failed reload leaves the
// pattern broken but does not tear down state beyond closing the old
// interpreter — there is no partially-applied state to roll back.
func (p *Pattern) Reload() {
	log := logger.GetProjectLogger()

	src, err := os.ReadFile(filepath.Join(p.dir, p.ScriptName))
	if err != nil {
		log.WithError(err).WithField("script", p.ScriptName).Error("pattern script load failed")
		p.setBroken()
		return
	}

	L := lua.NewState()
	L.SetGlobal("group_name", lua.LString(p.GroupName))
	L.SetGlobal("element_count", lua.LNumber(p.ElementCount))
	L.SetGlobal("options", lua.LNil) // the script body defines its own options table

	if err := L.DoString(string(src)); err != nil {
		log.WithError(err).WithField("script", p.ScriptName).Error("pattern script body failed")
		L.Close()
		p.setBroken()
		return
	}

	optionsTable := L.GetGlobal("options")
	tbl, ok := optionsTable.(*lua.LTable)
	if ok {
		p.seedOptions(L, tbl)
	}

	setup := L.GetGlobal("setup")
	if setup.Type() == lua.LTFunction {
		if err := L.CallByParam(lua.P{Fn: setup, NRet: 0, Protect: true}); err != nil {
			log.WithError(err).WithField("script", p.ScriptName).Error("pattern setup() failed")
			L.Close()
			p.setBroken()
			return
		}
	}

	if p.state != nil {
		p.state.Close()
	}
	p.state = L
}

func (p *Pattern) setBroken() {
	if p.state != nil {
		p.state.Close()
	}
	p.state = nil
}

// seedOptions walks the script's options table; for each (name, table)
// entry, if the caller supplied a value for name, sets table.default to
// that value, then sets table.value = table.default in all cases.
func (p *Pattern) seedOptions(L *lua.LState, options *lua.LTable) {
	options.ForEach(func(key, val lua.LValue) {
		name, ok := key.(lua.LString)
		if !ok {
			return
		}
		optTable, ok := val.(*lua.LTable)
		if !ok {
			return
		}

		if supplied, ok := p.Options[string(name)]; ok {
			if lv := toLuaValue(supplied); lv != lua.LNil {
				optTable.RawSetString("default", lv)
			}
		}
		optTable.RawSetString("value", optTable.RawGetString("default"))
	})
}

// toLuaValue coerces a declarative Option into the Lua value it becomes
// inside the options table, rejecting compound types per the pattern
// runtime's coercion rule.
func toLuaValue(o Option) lua.LValue {
	switch {
	case o.String != nil:
		return lua.LString(*o.String)
	case o.Int != nil:
		return lua.LNumber(*o.Int)
	case o.Float != nil:
		return lua.LNumber(*o.Float)
	case o.Bool != nil:
		return lua.LBool(*o.Bool)
	case o.Time != nil:
		return lua.LString(*o.Time)
	default:
		return lua.LNil
	}
}

// Update advances the pattern one frame and returns an element_count-length
// sequence of integer values. dt is the fixed nominal frame interval
// (1/30s). A script-runtime failure is logged, leaves the pattern usable
// for the next frame, and yields an empty sequence for this one.
func (p *Pattern) Update(dt float64) []int32 {
	if p.Broken() {
		return nil
	}

	log := logger.GetProjectLogger()

	update := p.state.GetGlobal("update")
	if update.Type() != lua.LTFunction {
		log.WithField("script", p.ScriptName).Error("pattern has no update(dt) function")
		return nil
	}

	if err := p.state.CallByParam(lua.P{Fn: update, NRet: 1, Protect: true}, lua.LNumber(dt)); err != nil {
		log.WithError(err).WithField("script", p.ScriptName).Error("pattern update(dt) failed")
		return nil
	}

	ret := p.state.Get(-1)
	p.state.Pop(1)

	seq, ok := ret.(*lua.LTable)
	if !ok {
		log.WithField("script", p.ScriptName).Error("pattern update(dt) did not return a sequence")
		return nil
	}

	values := make([]int32, 0, seq.Len())
	seq.ForEach(func(_, v lua.LValue) {
		if n, ok := v.(lua.LNumber); ok {
			values = append(values, int32(n))
		}
	})
	return values
}

// Close releases the pattern's interpreter, if any.
func (p *Pattern) Close() {
	if p.state != nil {
		p.state.Close()
		p.state = nil
	}
}

// String satisfies fmt.Stringer for logging.
func (p *Pattern) String() string {
	return fmt.Sprintf("pattern(%s@%s)", p.ScriptName, p.GroupName)
}
