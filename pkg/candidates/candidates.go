package candidates

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/ulikunitz/xz"
)

// ErrUnknownList is returned if list does not exist in the registry.
var ErrUnknownList = errors.New("unknown candidate list")

// List is a named, ordered list of candidates.
// The order is part of the outcome: reordering items changes the pick of the day.
type List struct {
	Name  string
	Items []string
}

// Registry stores candidate lists.
// It is read-only once created, so it may be shared between goroutines.
type Registry struct {
	names []string
	lists map[string]List
}

// NewRegistry creates registry of the lists.
func NewRegistry(lists ...List) (*Registry, error) {
	r := &Registry{
		names: make([]string, 0, len(lists)),
		lists: make(map[string]List, len(lists)),
	}
	for _, l := range lists {
		if l.Name == "" {
			return nil, errors.New("candidate list has no name")
		}
		if len(l.Items) == 0 {
			return nil, errors.Errorf("candidate list %q is empty", l.Name)
		}
		if _, exists := r.lists[l.Name]; exists {
			return nil, errors.Errorf("candidate list %q defined more than once", l.Name)
		}
		r.names = append(r.names, l.Name)
		r.lists[l.Name] = List{Name: l.Name, Items: append([]string(nil), l.Items...)}
	}
	return r, nil
}

// Names returns names of the lists in the order they were registered.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Get returns the list.
func (r *Registry) Get(name string) (List, error) {
	l, exists := r.lists[name]
	if !exists {
		return List{}, errors.Wrapf(ErrUnknownList, "list %q", name)
	}
	return l, nil
}

// Load reads list from file. Name of the list is the file name without extensions.
// Files ending with .xz are decompressed.
func Load(path string) (List, error) {
	f, err := os.Open(path)
	if err != nil {
		return List{}, errors.WithStack(err)
	}
	defer f.Close()

	base := filepath.Base(path)
	var r io.Reader = f
	if strings.HasSuffix(base, ".xz") {
		base = strings.TrimSuffix(base, ".xz")
		r, err = xz.NewReader(f)
		if err != nil {
			return List{}, errors.Wrapf(err, "opening xz stream of %s", path)
		}
	}

	items, err := Parse(r)
	if err != nil {
		return List{}, errors.Wrapf(err, "reading %s", path)
	}
	return List{
		Name:  strings.TrimSuffix(base, filepath.Ext(base)),
		Items: items,
	}, nil
}

// Parse reads candidates, one per line. Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]string, error) {
	var items []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return items, nil
}

// Split parses comma separated candidates.
func Split(s string) []string {
	return lo.Compact(lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}
