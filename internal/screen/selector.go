package screen

import (
	"errors"
	"strings"

	"github.com/colsched/colsched/pkg/collegeapi"
	"golang.org/x/text/cases"
)

var ErrGroupNotFound = errors.New("group not found")

// FilterGroups returns the groups whose name contains text, compared
// with Unicode case folding. A blank text returns all groups in order.
// The result never aliases groups.
func FilterGroups(groups []collegeapi.Group, text string) []collegeapi.Group {
	if strings.TrimSpace(text) == "" {
		return append([]collegeapi.Group{}, groups...)
	}
	fold := cases.Fold()
	needle := fold.String(text)
	out := make([]collegeapi.Group, 0, len(groups))
	for _, g := range groups {
		if strings.Contains(fold.String(g.GroupName), needle) {
			out = append(out, g)
		}
	}
	return out
}

// Selector owns the filter text and the selected group.
type Selector struct {
	store *Store
}

// NewSelector creates a Selector operating on store.
func NewSelector(store *Store) *Selector {
	return &Selector{store: store}
}

// SetFilterText replaces the filter text. It never triggers a fetch.
func (g *Selector) SetFilterText(text string) {
	g.store.update(EventFilterChanged, func(s *State) bool {
		if s.FilterText == text {
			return false
		}
		s.FilterText = text
		return true
	})
}

// FilteredGroups returns the groups matching the current filter text.
func (g *Selector) FilteredGroups() []collegeapi.Group {
	return g.store.State().FilteredGroups()
}

// SelectGroup selects group and resets the filter text to its name.
// It reports whether the selection changed; selecting the group that is
// already selected only resets the filter text.
func (g *Selector) SelectGroup(group collegeapi.Group) bool {
	return selectGroup(g.store, group)
}

// SelectByName selects the loaded group named name.
func (g *Selector) SelectByName(name string) error {
	for _, group := range g.store.State().Groups {
		if group.GroupName == name {
			g.SelectGroup(group)
			return nil
		}
	}
	return ErrGroupNotFound
}

func selectGroup(store *Store, group collegeapi.Group) bool {
	_, changed := store.update(EventSelectionChanged, func(s *State) bool {
		if s.Selected != nil && *s.Selected == group {
			return false
		}
		g := group
		s.Selected = &g
		s.FilterText = group.GroupName
		s.ticket++
		return true
	})
	if !changed {
		store.update(EventFilterChanged, func(s *State) bool {
			if s.FilterText == group.GroupName {
				return false
			}
			s.FilterText = group.GroupName
			return true
		})
	}
	return changed
}
