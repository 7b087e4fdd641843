// Package cuelist implements the cue list: an ordered, 1-indexed-in-UI list
// of named shortcuts whose body is a command string in the parser's
// grammar.
package cuelist

// Cue is a named, indexed shortcut. Lookup is strictly by position; Name is
// an optional human label that lookup never uses. The console does not
// display cues.
type Cue struct {
	Name    string
	Command string
}

// NewCue builds a Cue.
func NewCue(name, command string) Cue {
	return Cue{Name: name, Command: command}
}
