package tempus

import (
	"sync"
	"time"
)

// The system clock and the local zone name are the only two environment
// accessors in the package. Both sit behind a single injection point each,
// so tests can pin them to fixed values for a scoped block and restore the
// real accessors on every exit path.

var (
	clockMu   sync.RWMutex
	nowFunc   = systemNow
	localZone = systemLocalZone
)

func systemNow() Instant {
	t := time.Now()
	return Instant{sec: t.Unix(), nsec: int32(t.Nanosecond())}
}

func systemLocalZone() string {
	return time.Local.String()
}

// Now returns the current moment from the process clock.
func Now() Instant {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return nowFunc()
}

// NowIn returns the current moment in the given IANA zone.
func NowIn(zone string) (ZonedDateTime, error) {
	return Now().InTZ(zone)
}

// NowLocal returns the current moment in the system's local zone.
func NowLocal() (ZonedDateTime, error) {
	return Now().InTZ(LocalZoneID())
}

// Today returns the current date in the given IANA zone.
func Today(zone string) (Date, error) {
	zdt, err := NowIn(zone)
	if err != nil {
		return Date{}, err
	}
	return zdt.Date(), nil
}

// LocalZoneID returns the system's IANA zone identifier.
func LocalZoneID() string {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return localZone()
}

// PatchNow pins the process clock to the fixed instant and returns a
// function restoring the previous clock. Pair the two on every exit path:
//
//	restore := tempus.PatchNow(fixed)
//	defer restore()
//
// Patches nest; each restore reinstates the clock its PatchNow replaced.
func PatchNow(fixed Instant) (restore func()) {
	clockMu.Lock()
	defer clockMu.Unlock()
	prev := nowFunc
	nowFunc = func() Instant { return fixed }
	return func() {
		clockMu.Lock()
		defer clockMu.Unlock()
		nowFunc = prev
	}
}

// PatchLocalZone pins the system zone name and returns a function restoring
// the previous accessor, with the same discipline as [PatchNow].
func PatchLocalZone(zone string) (restore func()) {
	clockMu.Lock()
	defer clockMu.Unlock()
	prev := localZone
	localZone = func() string { return zone }
	return func() {
		clockMu.Lock()
		defer clockMu.Unlock()
		localZone = prev
	}
}
