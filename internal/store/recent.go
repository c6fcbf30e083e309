// Package store persists the recently opened files list.
package store

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

const DefaultLimit = 50

// Entry is one remembered file.
type Entry struct {
	Path   string    `json:"path"`
	Opened time.Time `json:"opened"`
}

// Recent is a diskv-backed most-recently-used file list. Each path is stored
// under a key derived from its hash so re-touching a path updates in place.
type Recent struct {
	d     *diskv.Diskv
	limit int
	now   func() time.Time
}

// Open prepares a store rooted at dir keeping at most limit entries.
func Open(dir string, limit int) (*Recent, error) {
	if dir == "" {
		return nil, fmt.Errorf("recent files: empty state directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("recent files: %w", err)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Recent{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 64 * 1024,
		}),
		limit: limit,
		now:   time.Now,
	}, nil
}

// Touch records path as opened now and prunes the oldest entries past the
// limit.
func (r *Recent) Touch(path string) error {
	if path == "" {
		return nil
	}
	b, err := json.Marshal(Entry{Path: path, Opened: r.now().UTC()})
	if err != nil {
		return err
	}
	if err := r.d.Write(key(path), b); err != nil {
		return fmt.Errorf("record %s: %w", path, err)
	}
	return r.prune()
}

// Forget removes path from the list.
func (r *Recent) Forget(path string) error {
	k := key(path)
	if !r.d.Has(k) {
		return nil
	}
	return r.d.Erase(k)
}

// List returns entries newest first. Unreadable entries are skipped.
func (r *Recent) List(ctx context.Context) []Entry {
	all := make([]Entry, 0)
	for k := range r.d.Keys(ctx.Done()) {
		val, err := r.d.Read(k)
		if err != nil {
			continue
		}
		var e Entry
		if err := json.Unmarshal(val, &e); err != nil || e.Path == "" {
			continue
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Opened.Equal(all[j].Opened) {
			return all[i].Path < all[j].Path
		}
		return all[i].Opened.After(all[j].Opened)
	})
	return all
}

// Latest returns the most recently opened entry.
func (r *Recent) Latest(ctx context.Context) (Entry, bool) {
	all := r.List(ctx)
	if len(all) == 0 {
		return Entry{}, false
	}
	return all[0], true
}

func (r *Recent) prune() error {
	all := r.List(context.Background())
	for _, e := range all[min(len(all), r.limit):] {
		if err := r.d.Erase(key(e.Path)); err != nil {
			return fmt.Errorf("prune %s: %w", e.Path, err)
		}
	}
	return nil
}

func key(path string) string {
	sum := md5.Sum([]byte(path))
	return fmt.Sprintf("%x", sum[:])
}
