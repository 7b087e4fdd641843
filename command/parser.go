// Package command parses the operator's typed command-line buffer and
// expands cue-number references into a flat list of effect commands.
package command

import (
	"strconv"
	"strings"

	"github.com/robmorgan/lumacue/cuelist"
	"github.com/robmorgan/lumacue/effect"
	"github.com/robmorgan/lumacue/logger"
)

// maxCueExpansionDepth bounds recursive cue expansion. Cue command strings
// may reference other cues; nothing in the grammar prevents a cycle, so
// expansion gives up past this depth rather than looping forever. See the
// cyclic cue expansion design note.
const maxCueExpansionDepth = 16

// chunkKind distinguishes a parsed chunk.
type chunkKind int

const (
	chunkEffect chunkKind = iota
	chunkCueNum
)

// chunk is one token of a parsed command buffer (an effect key or a cue
// number).
type chunk struct {
	kind   chunkKind
	key    string // set when kind == chunkEffect, already canonicalised
	cueNum int    // set when kind == chunkCueNum, 1-based as typed
}

// Parse scans text left to right, at each position skipping a single space
// or consuming one chunk: an effect key (one letter followed by a run of
// digits) or a cue number (a run of digits), trying effect before cuenum to
// resolve the grammar's ambiguity. Because a digit run always stops at the
// next letter, chunks need not be separated by a space at all — "a1E52"
// and "a1 E52" parse identically — spaces are only needed to separate two
// chunks that would otherwise run together (e.g. two consecutive cue
// numbers). A position that matches neither form fails the whole buffer,
// yielding an empty sequence (soft failure) rather than a partial result.
func parse(text string) ([]chunk, bool) {
	var chunks []chunk
	i := 0
	for i < len(text) {
		if text[i] == ' ' {
			i++
			continue
		}
		c, n, ok := parseChunkAt(text, i)
		if !ok {
			return nil, false
		}
		chunks = append(chunks, c)
		i += n
	}
	return chunks, true
}

// parseChunkAt attempts to parse one chunk starting at index i, returning
// the chunk and how many bytes it consumed.
func parseChunkAt(text string, i int) (chunk, int, bool) {
	if c, n, ok := parseEffectChunkAt(text, i); ok {
		return c, n, true
	}
	if c, n, ok := parseCueNumChunkAt(text, i); ok {
		return c, n, true
	}
	return chunk{}, 0, false
}

// parseEffectChunkAt matches `alpha digit+`: one leading ASCII letter
// followed by one or more digits.
func parseEffectChunkAt(text string, i int) (chunk, int, bool) {
	if i >= len(text) || !isAlpha(text[i]) {
		return chunk{}, 0, false
	}
	j := i + 1
	for j < len(text) && isDigit(text[j]) {
		j++
	}
	if j == i+1 {
		return chunk{}, 0, false // no digits followed the letter
	}
	key := effect.CanonicalKey(text[i:i+1]) + text[i+1:j]
	return chunk{kind: chunkEffect, key: key}, j - i, true
}

// parseCueNumChunkAt matches `digit+`.
func parseCueNumChunkAt(text string, i int) (chunk, int, bool) {
	if i >= len(text) || !isDigit(text[i]) {
		return chunk{}, 0, false
	}
	j := i
	for j < len(text) && isDigit(text[j]) {
		j++
	}
	n, err := strconv.Atoi(text[i:j])
	if err != nil {
		return chunk{}, 0, false
	}
	return chunk{kind: chunkCueNum, cueNum: n}, j - i, true
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Expand parses text and expands any cue-number chunks against cl,
// recursively re-parsing the referenced cue's command string up to
// maxCueExpansionDepth levels deep. A cue number out of range, or a parse
// failure on an expanded cue's own command string, drops that chunk's
// contribution and continues with the rest — cues and commands degrade
// independently.
func Expand(text string, cl *cuelist.CueList) []effect.Command {
	chunks, ok := parse(text)
	if !ok {
		return nil
	}
	return expandChunks(chunks, cl, 0)
}

func expandChunks(chunks []chunk, cl *cuelist.CueList, depth int) []effect.Command {
	var out []effect.Command
	log := logger.GetProjectLogger()

	for _, c := range chunks {
		switch c.kind {
		case chunkEffect:
			out = append(out, effect.Command{Key: c.key, Action: effect.Toggle})
		case chunkCueNum:
			if depth >= maxCueExpansionDepth {
				log.WithField("cue", c.cueNum).Warn("cue expansion depth limit reached, dropping chunk")
				continue
			}
			cmdText, err := cl.CueCommand(c.cueNum - 1)
			if err != nil {
				log.WithError(err).WithField("cue", c.cueNum).Warn("cue out of range")
				continue
			}
			sub, ok := parse(cmdText)
			if !ok {
				log.WithField("cue", c.cueNum).Warn("cue command failed to parse")
				continue
			}
			out = append(out, expandChunks(sub, cl, depth+1)...)
		}
	}
	return out
}
