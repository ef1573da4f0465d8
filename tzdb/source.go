package tzdb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// TZifSource loads zones from TZif files laid out IANA-style under a file
// system root, one file per zone identifier.
type TZifSource struct {
	fsys fs.FS
}

// NewTZifSource returns a source reading from the given file system, for
// example os.DirFS("/usr/share/zoneinfo") or an embedded test tree.
func NewTZifSource(fsys fs.FS) *TZifSource {
	return &TZifSource{fsys: fsys}
}

// Load implements [Source].
func (s *TZifSource) Load(id string) (*Table, error) {
	if err := checkZoneID(id); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v: %v", ErrBadData, id, err)
	}
	return parseTZif(id, data)
}

// checkZoneID rejects identifiers that could escape the zoneinfo root or
// that IANA would never assign.
func checkZoneID(id string) error {
	if id == "" || id[0] == '/' || strings.Contains(id, "\\") {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	for _, part := range strings.Split(id, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %q", ErrNotFound, id)
		}
	}
	return nil
}

// zoneinfoDirs are the zoneinfo roots probed in order, matching the usual
// Unix install locations.
var zoneinfoDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/locale/TZ",
	"/etc/zoneinfo",
}

// OSSource returns a source backed by the host's zoneinfo database, or one
// that fails every lookup when no database is installed.
func OSSource() Source {
	for _, dir := range zoneinfoDirs {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return NewTZifSource(os.DirFS(dir))
		}
	}
	return noSource{}
}

type noSource struct{}

func (noSource) Load(id string) (*Table, error) {
	return nil, fmt.Errorf("%w: %v: no zoneinfo database on this system", ErrNotFound, id)
}

// MapSource serves tables from a fixed set, for deterministic tests. A nil
// map or a missing entry reports [ErrNotFound].
type MapSource map[string]*Table

// Load implements [Source].
func (m MapSource) Load(id string) (*Table, error) {
	if t, ok := m[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrNotFound, id)
}
