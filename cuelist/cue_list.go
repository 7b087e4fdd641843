package cuelist

import "fmt"

// CueList is an ordered list of Cues, 0-indexed internally but presented as
// 1-indexed in the UI and the command grammar's cue-number chunks.
type CueList struct {
	cues []Cue
}

// New builds an empty CueList.
func New() *CueList {
	return &CueList{}
}

// Add appends a cue with the given name and command string.
func (cl *CueList) Add(name, command string) {
	cl.cues = append(cl.cues, NewCue(name, command))
}

// Len returns the number of cues.
func (cl *CueList) Len() int {
	return len(cl.cues)
}

// Cue returns the 0-indexed cue, or an error if i is out of range.
func (cl *CueList) Cue(i int) (Cue, error) {
	if i < 0 || i >= len(cl.cues) {
		return Cue{}, fmt.Errorf("cue index %d out of range (have %d cues)", i, len(cl.cues))
	}
	return cl.cues[i], nil
}

// CueCommand returns the 0-indexed cue's command string, or an error if i
// is out of range.
func (cl *CueList) CueCommand(i int) (string, error) {
	cue, err := cl.Cue(i)
	if err != nil {
		return "", err
	}
	return cue.Command, nil
}
