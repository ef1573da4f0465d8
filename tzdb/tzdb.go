// Package tzdb resolves IANA time zone identifiers to UTC offsets.
//
// A [Table] is the parsed form of one zone: an ordered sequence of offset
// transitions, optionally extended past its final record by the zone's
// POSIX TZ rule. Tables come from a [Source]; the production source reads
// RFC 8536 TZif files from the host's zoneinfo directory, and tests inject
// a deterministic [MapSource]. A [Cache] sits in front of any source,
// memoizing parsed tables with a bounded LRU policy.
//
// Mapping an instant to an offset is total and unambiguous. The reverse
// direction is not: a local reading can fall in a gap (clocks jumped over
// it) or a fold (clocks repeated it), so [Table.ResolveLocal] reports all
// candidate offsets and leaves the choice of policy to the caller.
package tzdb

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNotFound denotes a zone identifier unknown to the source.
	ErrNotFound = errors.New("time zone not found")

	// ErrBadData denotes a zone definition that could not be parsed.
	ErrBadData = errors.New("malformed time zone data")
)

// Source supplies transition tables for IANA zone identifiers. Load returns
// ErrNotFound for unknown identifiers. Implementations must be safe for
// concurrent use.
type Source interface {
	Load(id string) (*Table, error)
}

// Transition is one offset change: from At onward the zone uses Offset.
type Transition struct {
	At     int64 // Unix seconds of the change
	Offset int32 // UTC offset in seconds in effect from At
}

// Table is the resolved offset history of one zone. It is immutable and
// safe to share across goroutines; value types copy any offset they need
// out of it at resolution time.
type Table struct {
	id    string
	trans []int64 // transition instants, ascending
	offs  []int32 // len(trans)+1 entries; offs[i] applies before trans[i]
	rule  *posixRule
}

// NewTable builds a table from an initial offset and a sequence of
// transitions ordered by time. It is the constructor deterministic test
// sources use.
func NewTable(id string, initial int32, trans []Transition) (*Table, error) {
	t := &Table{
		id:    id,
		trans: make([]int64, 0, len(trans)),
		offs:  make([]int32, 1, len(trans)+1),
	}
	t.offs[0] = initial
	last := int64(0)
	for i, tr := range trans {
		if i > 0 && tr.At <= last {
			return nil, fmt.Errorf(
				"%w: %v: transitions out of order at %d", ErrBadData, id, tr.At,
			)
		}
		last = tr.At
		t.trans = append(t.trans, tr.At)
		t.offs = append(t.offs, tr.Offset)
	}
	return t, nil
}

// ID returns the IANA identifier the table was loaded under.
func (t *Table) ID() string { return t.id }

// Transitions returns a copy of the transition sequence.
func (t *Table) Transitions() []Transition {
	out := make([]Transition, len(t.trans))
	for i, at := range t.trans {
		out[i] = Transition{At: at, Offset: t.offs[i+1]}
	}
	return out
}

// OffsetAt returns the UTC offset in effect at the given instant, in Unix
// seconds. The mapping is total: every instant has exactly one offset.
func (t *Table) OffsetAt(sec int64) int32 {
	if n := len(t.trans); t.rule != nil && n > 0 && sec >= t.trans[n-1] {
		return t.rule.offsetAt(sec)
	}
	i := sort.Search(len(t.trans), func(i int) bool { return t.trans[i] > sec })
	return t.offs[i]
}

// LocalKind classifies how a local reading maps onto the timeline.
type LocalKind uint8

const (
	// LocalUnique means exactly one offset applies.
	LocalUnique LocalKind = iota
	// LocalFold means the reading occurred twice; Before and After are the
	// pre- and post-transition offsets.
	LocalFold
	// LocalGap means the reading never occurred; Before and After are the
	// offsets on either side of the gap.
	LocalGap
)

// LocalResult is the outcome of resolving a local reading. For LocalUnique
// both offsets are the single applicable one. For LocalFold, Before maps
// the reading to its earlier occurrence and After to the later one.
type LocalResult struct {
	Kind   LocalKind
	Before int32
	After  int32
}

// ResolveLocal maps a local reading, expressed as seconds since the Unix
// epoch read as if it were UTC, to its candidate offsets. The search
// projects each bracketing transition into local time through its own
// offsets, which is what makes gaps and folds visible.
func (t *Table) ResolveLocal(local int64) LocalResult {
	const margin = 2 * 86400
	if n := len(t.trans); t.rule != nil && n > 0 && local > t.trans[n-1]+margin {
		return t.rule.resolveLocal(local)
	}
	return resolveIntervals(t.trans, t.offs, local)
}

// resolveIntervals runs the bracketing search over an explicit transition
// sequence. offs must have one more entry than trans.
func resolveIntervals(trans []int64, offs []int32, local int64) LocalResult {
	// Offsets are bounded by a day while transitions are months apart, so
	// only the intervals adjacent to the rough bracket can match.
	p := sort.Search(len(trans), func(i int) bool { return trans[i] > local })

	lo, hi := p-1, p+1
	if lo < 0 {
		lo = 0
	}
	if hi > len(trans) {
		hi = len(trans)
	}

	var cands []int32
	for i := lo; i <= hi; i++ {
		off := int64(offs[i])
		startOK := i == 0 || trans[i-1]+off <= local
		endOK := i == len(trans) || local < trans[i]+off
		if startOK && endOK {
			cands = append(cands, offs[i])
		}
	}

	switch len(cands) {
	case 1:
		return LocalResult{Kind: LocalUnique, Before: cands[0], After: cands[0]}
	case 2:
		// Two intervals matched: the earlier one holds the pre-transition
		// offset, which maps the reading to its first occurrence.
		return LocalResult{Kind: LocalFold, Before: cands[0], After: cands[1]}
	}

	// No interval matched: the reading sits in a gap. Locate the
	// transition whose local window skipped it.
	for i := lo; i < hi; i++ {
		before, after := offs[i], offs[i+1]
		at := trans[i]
		if at+int64(before) <= local && local < at+int64(after) {
			return LocalResult{Kind: LocalGap, Before: before, After: after}
		}
	}
	// Unreachable for well-formed tables; fall back to the bracket offset
	// rather than inventing a gap.
	return LocalResult{Kind: LocalUnique, Before: offs[p], After: offs[p]}
}
