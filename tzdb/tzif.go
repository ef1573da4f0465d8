package tzdb

import (
	"encoding/binary"
	"fmt"
)

// TZif parsing per RFC 8536. Version 1 blocks carry 32-bit transition
// times; version 2 and later repeat the data with 64-bit times and append
// a POSIX TZ footer, and when present that block supersedes the first.

// tzifHeader is the fixed 44-byte block that opens the file and each
// 64-bit data block.
type tzifHeader struct {
	version  byte
	isUTCnt  uint32
	isStdCnt uint32
	leapCnt  uint32
	timeCnt  uint32
	typeCnt  uint32
	charCnt  uint32
}

// parseTZif builds a table from the raw contents of a TZif file.
func parseTZif(id string, data []byte) (*Table, error) {
	c := &cursor{id: id, data: data}

	hdr, err := c.header()
	if err != nil {
		return nil, err
	}
	if hdr.version >= '2' {
		// Skip the legacy 32-bit block entirely and parse the 64-bit one.
		c.skip(hdr.dataLen(4))
		if hdr, err = c.header(); err != nil {
			return nil, err
		}
		return c.block(hdr, 8)
	}
	return c.block(hdr, 4)
}

// dataLen is the size of the data block following a header, given the
// transition time width.
func (h tzifHeader) dataLen(timeWidth int) int {
	return int(h.timeCnt)*(timeWidth+1) +
		int(h.typeCnt)*6 +
		int(h.charCnt) +
		int(h.leapCnt)*(timeWidth+4) +
		int(h.isStdCnt) +
		int(h.isUTCnt)
}

// cursor is a bounds-checked reader over the file contents.
type cursor struct {
	id   string
	data []byte
	pos  int
	err  error
}

func (c *cursor) bad(format string, args ...any) error {
	if c.err == nil {
		c.err = fmt.Errorf("%w: %v: %v", ErrBadData, c.id, fmt.Sprintf(format, args...))
	}
	return c.err
}

func (c *cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if c.pos+n > len(c.data) {
		c.bad("truncated at byte %d", len(c.data))
		return nil
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) skip(n int) { c.take(n) }

func (c *cursor) u32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (c *cursor) header() (tzifHeader, error) {
	magic := c.take(4)
	if c.err != nil {
		return tzifHeader{}, c.err
	}
	if string(magic) != "TZif" {
		return tzifHeader{}, c.bad("bad magic %q", magic)
	}
	var h tzifHeader
	if v := c.take(1); v != nil {
		h.version = v[0]
	}
	c.skip(15)
	h.isUTCnt = c.u32()
	h.isStdCnt = c.u32()
	h.leapCnt = c.u32()
	h.timeCnt = c.u32()
	h.typeCnt = c.u32()
	h.charCnt = c.u32()
	if c.err != nil {
		return tzifHeader{}, c.err
	}
	if h.typeCnt == 0 {
		return tzifHeader{}, c.bad("no local time types")
	}
	return h, nil
}

// block parses one data block into a table. timeWidth is 4 for version 1
// files and 8 for the 64-bit block.
func (c *cursor) block(h tzifHeader, timeWidth int) (*Table, error) {
	times := c.take(int(h.timeCnt) * timeWidth)
	idxs := c.take(int(h.timeCnt))
	types := c.take(int(h.typeCnt) * 6)
	c.skip(int(h.charCnt))
	c.skip(int(h.leapCnt) * (timeWidth + 4))
	c.skip(int(h.isStdCnt))
	c.skip(int(h.isUTCnt))
	if c.err != nil {
		return nil, c.err
	}

	utoff := func(i int) int32 {
		return int32(binary.BigEndian.Uint32(types[i*6:]))
	}
	isDST := func(i int) bool { return types[i*6+4] != 0 }

	t := &Table{
		id:    c.id,
		trans: make([]int64, 0, h.timeCnt),
		offs:  make([]int32, 1, h.timeCnt+1),
	}

	// The offset before the first transition is the first standard-time
	// type, matching how zic lays files out; fall back to type 0.
	t.offs[0] = utoff(0)
	for i := 0; i < int(h.typeCnt); i++ {
		if !isDST(i) {
			t.offs[0] = utoff(i)
			break
		}
	}

	var last int64
	for i := 0; i < int(h.timeCnt); i++ {
		var at int64
		if timeWidth == 8 {
			at = int64(binary.BigEndian.Uint64(times[i*8:]))
		} else {
			at = int64(int32(binary.BigEndian.Uint32(times[i*4:])))
		}
		if i > 0 && at <= last {
			return nil, c.bad("transitions out of order at %d", at)
		}
		last = at
		idx := int(idxs[i])
		if idx >= int(h.typeCnt) {
			return nil, c.bad("transition %d references type %d of %d", i, idx, h.typeCnt)
		}
		t.trans = append(t.trans, at)
		t.offs = append(t.offs, utoff(idx))
	}

	if timeWidth == 8 {
		t.rule = c.footer()
		if c.err != nil {
			return nil, c.err
		}
	}
	return t, nil
}

// footer reads the newline-framed TZ string that closes a 64-bit file. An
// empty or unparseable string leaves the table without an extension rule.
func (c *cursor) footer() *posixRule {
	if nl := c.take(1); nl == nil || nl[0] != '\n' {
		c.bad("missing footer")
		return nil
	}
	start := c.pos
	for c.pos < len(c.data) && c.data[c.pos] != '\n' {
		c.pos++
	}
	if c.pos == len(c.data) {
		c.bad("unterminated footer")
		return nil
	}
	s := string(c.data[start:c.pos])
	c.pos++
	if s == "" {
		return nil
	}
	r, ok := parsePosixTZ(s)
	if !ok {
		// Tolerate exotic TZ strings rather than rejecting the whole
		// file; the explicit transitions still cover decades.
		return nil
	}
	return r
}
