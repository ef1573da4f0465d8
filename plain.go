package tempus

// PlainDateTime is a naive date-time: a calendar date plus a clock reading,
// tied to no moment. It answers "what does the clock on the wall say", not
// "when". Promoting it to an aware type requires naming the assumption:
// [PlainDateTime.AssumeUTC], [PlainDateTime.AssumeOffset], or
// [PlainDateTime.AssumeTZ].
//
// PlainDateTime deliberately does not implement [Moment]; comparing or
// subtracting it against aware values is a compile-time error.
type PlainDateTime struct {
	date Date
	time Time
}

// NewPlainDateTime validates the fields and combines them, equivalent to
// [NewDate] plus [NewTime] plus [Date.At].
func NewPlainDateTime(year, month, day, hour, minute, second, nanosecond int) (PlainDateTime, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return PlainDateTime{}, err
	}
	t, err := NewTime(hour, minute, second, nanosecond)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{d, t}, nil
}

// Date returns the calendar date of dt.
func (dt PlainDateTime) Date() Date { return dt.date }

// Time returns the clock reading of dt.
func (dt PlainDateTime) Time() Time { return dt.time }

// ToPlain returns dt itself, satisfying [LocalReading].
func (dt PlainDateTime) ToPlain() PlainDateTime { return dt }

// WithDate returns dt with the date replaced.
func (dt PlainDateTime) WithDate(d Date) PlainDateTime {
	return PlainDateTime{d, dt.time}
}

// WithTime returns dt with the clock reading replaced.
func (dt PlainDateTime) WithTime(t Time) PlainDateTime {
	return PlainDateTime{dt.date, t}
}

// Compare orders naive date-times by their field values, returning -1, 0,
// or +1. The comparison says nothing about moments; dt carries none.
func (dt PlainDateTime) Compare(o PlainDateTime) int {
	if c := dt.date.Compare(o.date); c != 0 {
		return c
	}
	return dt.time.Compare(o.time)
}

// localSeconds returns the clock reading as seconds since the Unix epoch
// read as if it were UTC. This projection is what the timezone engine
// searches with.
func (dt PlainDateTime) localSeconds() int64 {
	return int64(dt.date.DaysSinceEpoch())*secondsPerDay + dt.time.secondOfDay()
}

// plainFromLocalSeconds rebuilds a naive date-time from the localSeconds
// projection plus a nanosecond part.
func plainFromLocalSeconds(local int64, nsec int32) (PlainDateTime, error) {
	days := floorDiv(local, secondsPerDay)
	date, err := DateFromDays(int(days))
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{
		date: date,
		time: timeFromDaySeconds(local-days*secondsPerDay, nsec),
	}, nil
}

// AddDelta returns dt shifted by a calendar delta, a time delta, or both:
// the calendar part moves the date (months first, then days), the exact part
// then moves the clock, carrying across midnight as needed. Naive values
// have no zone, so this arithmetic never encounters gaps or folds.
func (dt PlainDateTime) AddDelta(delta DateTimeDelta) (PlainDateTime, error) {
	date, err := dt.date.AddDelta(delta.date)
	if err != nil {
		return PlainDateTime{}, err
	}
	shifted := PlainDateTime{date, dt.time}
	t := delta.time
	if t.IsZero() {
		return shifted, nil
	}
	nsec := int64(dt.time.nsec) + int64(t.nsec)
	return plainFromLocalSeconds(
		shifted.localSeconds()+t.sec+nsec/nanosPerSecond,
		int32(nsec%nanosPerSecond),
	)
}

// AddTime returns dt shifted by an exact delta only.
func (dt PlainDateTime) AddTime(d TimeDelta) (PlainDateTime, error) {
	return dt.AddDelta(DateTimeDelta{time: d})
}

// AddDate returns dt shifted by a calendar delta only.
func (dt PlainDateTime) AddDate(d DateDelta) (PlainDateTime, error) {
	return dt.AddDelta(DateTimeDelta{date: d})
}

// Sub returns the delta between two naive date-times as whole days plus an
// exact clock difference.
func (dt PlainDateTime) Sub(o PlainDateTime) TimeDelta {
	return newTimeDelta(dt.localSeconds()-o.localSeconds(), int64(dt.time.nsec)-int64(o.time.nsec))
}

// AssumeUTC promotes dt to an aware value by declaring that the clock read
// UTC.
func (dt PlainDateTime) AssumeUTC() OffsetDateTime {
	return OffsetDateTime{dt: dt, offset: 0}
}

// AssumeOffset promotes dt to an aware value by declaring the fixed UTC
// offset, in seconds, the clock was set to. No zone lookup takes place, so
// this never encounters gaps or folds. A reading near the calendar edge
// whose UTC projection leaves the timeline reports ErrInvalidComponent.
func (dt PlainDateTime) AssumeOffset(offsetSeconds int) (OffsetDateTime, error) {
	if err := checkOffset(offsetSeconds); err != nil {
		return OffsetDateTime{}, err
	}
	if _, err := makeInstant(
		dt.localSeconds()-int64(offsetSeconds), dt.time.nsec,
	); err != nil {
		return OffsetDateTime{}, err
	}
	return OffsetDateTime{dt: dt, offset: int32(offsetSeconds)}, nil
}

// AssumeTZ promotes dt to an aware value in the given IANA zone. The policy
// is [DisambiguateRaise]: a reading inside a gap reports ErrSkippedTime and
// one inside a fold reports ErrRepeatedTime, because the promotion is
// inventing information either way. Use [PlainDateTime.AssumeTZWith] to
// pick a side explicitly.
func (dt PlainDateTime) AssumeTZ(zone string) (ZonedDateTime, error) {
	return dt.AssumeTZWith(zone, DisambiguateRaise)
}

// AssumeTZWith promotes dt to an aware value in the given IANA zone under
// an explicit disambiguation policy.
func (dt PlainDateTime) AssumeTZWith(zone string, dis Disambiguate) (ZonedDateTime, error) {
	return zonedFromPlain(dt, zone, dis)
}

// FormatCommonISO formats dt in the canonical ISO 8601 extended form with a
// T separator and no offset.
func (dt PlainDateTime) FormatCommonISO() string {
	return string(dt.appendISO(make([]byte, 0, len("2006-01-02T15:04:05.999999999"))))
}

func (dt PlainDateTime) appendISO(b []byte) []byte {
	b = dt.date.appendISO(b)
	b = append(b, 'T')
	return dt.time.appendISO(b)
}

// String returns the canonical ISO 8601 form of dt.
func (dt PlainDateTime) String() string { return dt.FormatCommonISO() }

// MarshalText implements encoding.TextMarshaler.
func (dt PlainDateTime) MarshalText() ([]byte, error) {
	return []byte(dt.FormatCommonISO()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (dt *PlainDateTime) UnmarshalText(b []byte) error {
	v, err := ParsePlainDateTimeCommonISO(string(b))
	if err == nil {
		*dt = v
	}
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (dt PlainDateTime) MarshalBinary() ([]byte, error) {
	return appendVarints(
		int64(dt.date.year), int64(dt.date.month), int64(dt.date.day),
		int64(dt.time.hour), int64(dt.time.minute), int64(dt.time.second),
		int64(dt.time.nsec),
	), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (dt *PlainDateTime) UnmarshalBinary(b []byte) error {
	var y, mo, d, h, mi, s, ns int64
	if err := consumeVarints(
		"plain date-time", b, &y, &mo, &d, &h, &mi, &s, &ns,
	); err != nil {
		return err
	}
	v, err := NewPlainDateTime(
		int(y), int(mo), int(d), int(h), int(mi), int(s), int(ns),
	)
	if err == nil {
		*dt = v
	}
	return err
}

// Round rounds the clock reading of dt, carrying into the date as needed.
func (dt PlainDateTime) Round(unit Unit, increment int, mode RoundMode) (PlainDateTime, error) {
	local, nsec, err := roundLocal(dt, unit, increment, mode)
	if err != nil {
		return PlainDateTime{}, err
	}
	return plainFromLocalSeconds(local, nsec)
}

// roundLocal rounds a naive reading to the unit boundary, treating days as
// fixed 24-hour spans, and returns the localSeconds projection plus the
// nanosecond part of the result.
func roundLocal(dt PlainDateTime, unit Unit, increment int, mode RoundMode) (int64, int32, error) {
	span, err := unitSpan(unit, increment)
	if err != nil {
		return 0, 0, err
	}
	sec, nsec := roundSecNanos(dt.localSeconds(), dt.time.nsec, span, mode)
	return sec, nsec, nil
}
