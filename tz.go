package tempus

import (
	"fmt"
	"sync"

	"github.com/tempusgo/tempus/tzdb"
)

// The process-wide timezone resolution engine. It is an explicit, injectable
// service: tests swap in a deterministic [tzdb.Source] with [SetTZSource]
// and restore the previous one on exit.

var (
	tzMu    sync.RWMutex
	tzCache = tzdb.NewCache(tzdb.OSSource(), tzdb.DefaultCacheSize)
)

// TZCache returns the process timezone cache.
func TZCache() *tzdb.Cache {
	tzMu.RLock()
	defer tzMu.RUnlock()
	return tzCache
}

// SetTZSource replaces the source behind the process timezone cache and
// returns a function restoring the previous cache. Call the restore function
// on every exit path:
//
//	restore := tempus.SetTZSource(src)
//	defer restore()
func SetTZSource(src tzdb.Source) (restore func()) {
	tzMu.Lock()
	defer tzMu.Unlock()
	prev := tzCache
	tzCache = tzdb.NewCache(src, tzdb.DefaultCacheSize)
	return func() {
		tzMu.Lock()
		defer tzMu.Unlock()
		tzCache = prev
	}
}

// loadTable fetches the transition table for an IANA zone id through the
// process cache.
func loadTable(zone string) (*tzdb.Table, error) {
	return TZCache().Load(zone)
}

// makeZoned builds a zoned value, rejecting one whose UTC projection
// leaves the timeline. Every zoned construction funnels through here so an
// out-of-range moment can never be observed.
func makeZoned(dt PlainDateTime, offset int32, zone string) (ZonedDateTime, error) {
	if _, err := makeInstant(
		dt.localSeconds()-int64(offset), dt.time.nsec,
	); err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{dt: dt, offset: offset, zone: zone}, nil
}

// zonedFromPlain resolves a local reading in a zone under the given policy.
func zonedFromPlain(dt PlainDateTime, zone string, dis Disambiguate) (ZonedDateTime, error) {
	table, err := loadTable(zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	local := dt.localSeconds()
	res := table.ResolveLocal(local)

	var offset int32
	switch res.Kind {
	case tzdb.LocalUnique:
		offset = res.Before

	case tzdb.LocalFold:
		switch dis {
		case DisambiguateRaise:
			return ZonedDateTime{}, fmt.Errorf(
				"%w: %v occurs twice in %v", ErrRepeatedTime, dt, zone,
			)
		case DisambiguateLater:
			offset = res.After
		default:
			// Compatible and Earlier both take the first occurrence.
			offset = res.Before
		}

	case tzdb.LocalGap:
		switch dis {
		case DisambiguateRaise:
			return ZonedDateTime{}, fmt.Errorf(
				"%w: %v was skipped in %v", ErrSkippedTime, dt, zone,
			)
		case DisambiguateEarlier:
			// Keep the nonexistent wall time, mapped onto the
			// pre-transition offset.
			offset = res.Before
		case DisambiguateLater:
			offset = res.After
		default:
			// Compatible: move forward by the length of the gap, using
			// the post-transition offset.
			shifted, err := plainFromLocalSeconds(
				local+int64(res.After-res.Before), dt.time.nsec,
			)
			if err != nil {
				return ZonedDateTime{}, err
			}
			return makeZoned(shifted, res.After, zone)
		}
	}

	return makeZoned(dt, offset, zone)
}
