// Package flags implements the ExpandFlags/HideFlags bitsets and their
// comma-separated-token grammar.
package flags

import (
	"sort"
	"strings"

	"github.com/fatcat-project/fatcat/internal/catalogerr"
)

// Expand is a bitset over the closed expand-flag vocabulary.
type Expand uint16

const (
	ExpandFiles Expand = 1 << iota
	ExpandFilesets
	ExpandWebcaptures
	ExpandReleases
	ExpandContainer
	ExpandCreator
	ExpandContribs
	ExpandRefs
)

var expandNames = []struct {
	bit  Expand
	name string
}{
	{ExpandFiles, "files"},
	{ExpandFilesets, "filesets"},
	{ExpandWebcaptures, "webcaptures"},
	{ExpandReleases, "releases"},
	{ExpandContainer, "container"},
	{ExpandCreator, "creator"},
	{ExpandContribs, "contribs"},
	{ExpandRefs, "refs"},
}

// Has reports whether e has bit set.
func (e Expand) Has(bit Expand) bool { return e&bit != 0 }

// String renders e back to its canonical comma-separated token form, in
// declaration order, satisfying the round-trip law Parse(String(e)) == e.
func (e Expand) String() string {
	var toks []string
	for _, n := range expandNames {
		if e.Has(n.bit) {
			toks = append(toks, n.name)
		}
	}
	return strings.Join(toks, ",")
}

// ParseExpand parses a comma-separated list of expand tokens. An empty
// string yields the zero Expand. An unrecognized token fails with
// catalogerr.KindMalformedFlag.
func ParseExpand(s string) (Expand, error) {
	var e Expand
	for _, tok := range splitTokens(s) {
		bit, ok := expandBit(tok)
		if !ok {
			return 0, catalogerr.MalformedFlag(tok)
		}
		e |= bit
	}
	return e, nil
}

func expandBit(tok string) (Expand, bool) {
	for _, n := range expandNames {
		if n.name == tok {
			return n.bit, true
		}
	}
	return 0, false
}

// Hide is a bitset over the closed hide-flag vocabulary.
type Hide uint8

const (
	HideAbstracts Hide = 1 << iota
	HideRefs
	HideContribs
)

var hideNames = []struct {
	bit  Hide
	name string
}{
	{HideAbstracts, "abstracts"},
	{HideRefs, "refs"},
	{HideContribs, "contribs"},
}

// Has reports whether h has bit set.
func (h Hide) Has(bit Hide) bool { return h&bit != 0 }

// String renders h back to its canonical comma-separated token form.
func (h Hide) String() string {
	var toks []string
	for _, n := range hideNames {
		if h.Has(n.bit) {
			toks = append(toks, n.name)
		}
	}
	return strings.Join(toks, ",")
}

// ParseHide parses a comma-separated list of hide tokens.
func ParseHide(s string) (Hide, error) {
	var h Hide
	for _, tok := range splitTokens(s) {
		bit, ok := hideBit(tok)
		if !ok {
			return 0, catalogerr.MalformedFlag(tok)
		}
		h |= bit
	}
	return h, nil
}

func hideBit(tok string) (Hide, bool) {
	for _, n := range hideNames {
		if n.name == tok {
			return n.bit, true
		}
	}
	return 0, false
}

// splitTokens splits a comma-separated flag string into trimmed,
// non-empty tokens.
func splitTokens(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	sort.Strings(out) // token order is not semantically meaningful
	return out
}

// AllowedExpand is the subset of expand flags a given entity type
// supports.
func AllowedExpand(entityType string) Expand {
	switch entityType {
	case "release":
		return ExpandFiles | ExpandFilesets | ExpandWebcaptures | ExpandContainer | ExpandCreator | ExpandContribs | ExpandRefs
	case "file":
		return ExpandReleases
	case "fileset":
		return ExpandReleases
	case "webcapture":
		return ExpandReleases
	case "work":
		return ExpandReleases
	case "container":
		return 0
	case "creator":
		return 0
	default:
		return 0
	}
}

// AllowedHide is the subset of hide flags a given entity type supports.
func AllowedHide(entityType string) Hide {
	switch entityType {
	case "release":
		return HideAbstracts | HideRefs | HideContribs
	default:
		return 0
	}
}
