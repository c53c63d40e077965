// Package history remembers the media files opened for syncing.
package history

import (
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/replaysync/replaysync/filesystem"
	"github.com/replaysync/replaysync/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// now is swapped in tests.
var now = time.Now

// Get returns every saved record keyed by its cleaned path.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// Save marks path as the most recently opened media.
func Save(path string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newRecord(path, now())
	if existing, ok := saved[record.encode()]; ok {
		record.Opens = existing.Opens + 1
	}

	saved[record.encode()] = record
	return cacher.Set(saved)
}

// Last returns the most recently opened record, if any.
func Last() (mo.Option[*Record], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*Record](), err
	}

	if len(saved) == 0 {
		return mo.None[*Record](), nil
	}

	latest := lo.MaxBy(lo.Values(saved), func(a, b *Record) bool {
		return a.OpenedAt.After(b.OpenedAt)
	})
	return mo.Some(latest), nil
}

// Remove forgets the record for path.
func Remove(path string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, (&Record{Path: path}).encode())
	return cacher.Set(saved)
}

// Suggest returns the most recently opened path that fuzzily matches input.
func Suggest(input string) mo.Option[string] {
	input = strings.TrimSpace(input)
	if input == "" {
		return mo.None[string]()
	}

	saved, err := Get()
	if err != nil {
		return mo.None[string]()
	}

	matches := lo.Filter(lo.Values(saved), func(r *Record, _ int) bool {
		return fuzzy.MatchFold(input, r.Path)
	})
	if len(matches) == 0 {
		return mo.None[string]()
	}

	slices.SortFunc(matches, func(a, b *Record) int {
		return b.OpenedAt.Compare(a.OpenedAt)
	})
	return mo.Some(matches[0].Path)
}
