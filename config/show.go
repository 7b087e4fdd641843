// Package config implements the declarative TOML loaders: show
// configuration (effects, groups, pool key-map, cues) and installation
// configuration (fixtures, fixture-definition mode selection). Parse
// failures and missing fixture definitions are the only fatal error class
// (see the error handling design); every other runtime error is
// liveness-preserving and handled by the owning package.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robmorgan/lumacue/cuelist"
	"github.com/robmorgan/lumacue/effect"
	"github.com/robmorgan/lumacue/pattern"
)

// defaultInstallationPath is used when a show config omits "installation".
const defaultInstallationPath = "installation.toml"

type showConfig struct {
	Installation string                        `toml:"installation"`
	Effects      []effectConfig                `toml:"effects"`
	Groups       map[string]groupConfig        `toml:"groups"`
	Pool         map[string]string             `toml:"pool"`
	Cues         []cueConfig                   `toml:"cues"`
}

type effectConfig struct {
	Name     string                     `toml:"name"`
	Elements []map[string]toml.Primitive `toml:"elements"`
	Patterns []map[string]toml.Primitive `toml:"patterns"`
}

type groupConfig struct {
	Elements []string `toml:"elements"`
}

type cueConfig struct {
	Name    string `toml:"name"`
	Command string `toml:"command"`
}

// Show is the result of loading a show configuration file: the effect pool
// (with its groups, key bindings and patterns already wired) and the cue
// list.
type Show struct {
	Pool    *effect.Pool
	CueList *cuelist.CueList
}

// LoadShow parses path as a show configuration file, building both the
// effect pool and the cue list from it. patternsDir is where pattern
// scripts named in "patterns" entries are read from.
func LoadShow(path, patternsDir string) (*Show, error) {
	var cfg showConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, parseError(path, err)
	}

	groups := buildGroups(cfg.Groups)

	effects := make([]*effect.Effect, 0, len(cfg.Effects))
	for _, ec := range cfg.Effects {
		elements := buildEffectElements(meta, ec.Elements)
		patterns := buildPatterns(meta, ec.Patterns, groups, patternsDir)
		effects = append(effects, effect.New(ec.Name, 0.0, elements, patterns))
	}

	installationPath := cfg.Installation
	if installationPath == "" {
		installationPath = defaultInstallationPath
	}

	pool := effect.NewPool(effects, groups, installationPath)
	for key, effectName := range cfg.Pool {
		pool.SetKey(key, effectName)
	}

	cueList := cuelist.New()
	for i, cc := range cfg.Cues {
		name := cc.Name
		if name == "" {
			name = fmt.Sprintf("%d", i+1)
		} else {
			name = fmt.Sprintf("%d %s", i+1, name)
		}
		cueList.Add(name, cc.Command)
	}

	return &Show{Pool: pool, CueList: cueList}, nil
}

func buildGroups(cfg map[string]groupConfig) effect.GroupMap {
	groups := make(effect.GroupMap, len(cfg))
	for name, gc := range cfg {
		elements := make([]effect.GroupElement, 0, len(gc.Elements))
		for _, s := range gc.Elements {
			parts := strings.SplitN(s, ":", 2)
			if len(parts) != 2 {
				continue
			}
			elements = append(elements, effect.GroupElement{Fixture: parts[0], Element: parts[1]})
		}
		groups[name] = elements
	}
	return groups
}

// buildEffectElements decodes each { target: "fixture:element:property",
// color: value } entry into a static EffectElement. Entries missing target
// or color are skipped.
func buildEffectElements(meta toml.MetaData, configs []map[string]toml.Primitive) []effect.EffectElement {
	var out []effect.EffectElement
	for _, cfg := range configs {
		targetPrim, ok := cfg["target"]
		if !ok {
			continue
		}
		var target string
		if err := meta.PrimitiveDecode(targetPrim, &target); err != nil {
			continue
		}
		tokens := strings.SplitN(target, ":", 3)
		if len(tokens) != 3 {
			continue
		}

		colorPrim, ok := cfg["color"]
		if !ok {
			continue
		}
		value, ok := decodeColorValue(meta, colorPrim)
		if !ok {
			continue
		}

		out = append(out, effect.NewEffectElement(tokens[0], tokens[1], tokens[2], value))
	}
	return out
}

// decodeColorValue accepts either an integer 0xRRGGBB literal or a "#RRGGBB"
// hex string, matching the declarative configuration's "color: int|…"
// field.
func decodeColorValue(meta toml.MetaData, prim toml.Primitive) (int32, bool) {
	var asInt int64
	if err := meta.PrimitiveDecode(prim, &asInt); err == nil {
		return int32(asInt), true
	}

	var asString string
	if err := meta.PrimitiveDecode(prim, &asString); err == nil {
		if v, ok := parseHexColor(asString); ok {
			return v, true
		}
	}
	return 0, false
}

func parseHexColor(s string) (int32, bool) {
	s = strings.TrimPrefix(s, "#")
	var v int64
	n, err := fmt.Sscanf(s, "%06x", &v)
	if err != nil || n != 1 {
		return 0, false
	}
	return int32(v), true
}

// buildPatterns decodes each { target: "@group:property", script: "name",
// ...options } entry into a *pattern.Pattern. Entries missing target or
// script, or whose group is not defined, are skipped.
func buildPatterns(meta toml.MetaData, configs []map[string]toml.Primitive, groups effect.GroupMap, patternsDir string) []*pattern.Pattern {
	var out []*pattern.Pattern
	for _, cfg := range configs {
		targetPrim, ok := cfg["target"]
		if !ok {
			continue
		}
		var target string
		if err := meta.PrimitiveDecode(targetPrim, &target); err != nil {
			continue
		}
		tokens := strings.SplitN(target, ":", 2)
		if len(tokens) != 2 || !strings.HasPrefix(tokens[0], "@") {
			continue
		}
		groupName := strings.TrimPrefix(tokens[0], "@")
		property := tokens[1]

		scriptPrim, ok := cfg["script"]
		if !ok {
			continue
		}
		var script string
		if err := meta.PrimitiveDecode(scriptPrim, &script); err != nil {
			continue
		}

		members, ok := groups[groupName]
		if !ok {
			continue
		}

		options := make(map[string]pattern.Option, len(cfg))
		for key, prim := range cfg {
			if key == "target" || key == "script" {
				continue
			}
			options[key] = decodeOption(meta, prim)
		}

		out = append(out, pattern.New(patternsDir, script, groupName, property, len(members), options))
	}
	return out
}

// decodeOption tries each scalar type the pattern runtime's coercion rule
// accepts, in order, keeping whichever succeeds first.
func decodeOption(meta toml.MetaData, prim toml.Primitive) pattern.Option {
	var b bool
	if err := meta.PrimitiveDecode(prim, &b); err == nil {
		return pattern.Option{Bool: &b}
	}
	var i int64
	if err := meta.PrimitiveDecode(prim, &i); err == nil {
		return pattern.Option{Int: &i}
	}
	var f float64
	if err := meta.PrimitiveDecode(prim, &f); err == nil {
		return pattern.Option{Float: &f}
	}
	var s string
	if err := meta.PrimitiveDecode(prim, &s); err == nil {
		return pattern.Option{String: &s}
	}
	var tm time.Time
	if err := meta.PrimitiveDecode(prim, &tm); err == nil {
		iso := tm.Format(time.RFC3339Nano)
		return pattern.Option{Time: &iso}
	}
	return pattern.Option{}
}
