package history

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/replaysync/replaysync/util"
)

// Record is one media file the user opened for syncing.
type Record struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	OpenedAt time.Time `json:"opened_at"`
	Opens    int       `json:"opens"`
}

func (r *Record) encode() string {
	return filepath.Clean(r.Path)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.OpenedAt.Format(time.DateTime))
}

func newRecord(path string, now time.Time) *Record {
	return &Record{
		Path:     filepath.Clean(path),
		Name:     util.FileStem(path),
		OpenedAt: now,
		Opens:    1,
	}
}
