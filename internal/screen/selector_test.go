package screen

import (
	"errors"
	"reflect"
	"testing"

	"github.com/colsched/colsched/pkg/collegeapi"
)

func names(groups []collegeapi.Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.GroupName)
	}
	return out
}

func TestFilterGroups(t *testing.T) {
	all := groupsOf("ИС-11", "ИС-12", "ПК-21", "ис-31")
	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{"empty returns all", "", []string{"ИС-11", "ИС-12", "ПК-21", "ис-31"}},
		{"blank returns all", "   ", []string{"ИС-11", "ИС-12", "ПК-21", "ис-31"}},
		{"lower matches upper", "ис", []string{"ИС-11", "ИС-12", "ис-31"}},
		{"upper matches lower", "ИС-3", []string{"ис-31"}},
		{"digits", "12", []string{"ИС-12"}},
		{"exact", "ПК-21", []string{"ПК-21"}},
		{"no match", "ЭК", []string{}},
		{"untrimmed", " ИС", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(FilterGroups(all, tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterGroups(%q) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestFilterGroups_DoesNotAlias(t *testing.T) {
	all := groupsOf("ИС-11", "ИС-12")
	got := FilterGroups(all, "")
	got[0].GroupName = "changed"
	if all[0].GroupName != "ИС-11" {
		t.Error("FilterGroups result aliases its input")
	}
}

func TestSelector_SetFilterText(t *testing.T) {
	store := NewStore()
	rec := &eventRecorder{}
	store.Subscribe(rec.listen)
	sel := NewSelector(store)

	sel.SetFilterText("ис")
	sel.SetFilterText("ис")

	if got := store.State().FilterText; got != "ис" {
		t.Errorf("expected filter text 'ис', got %q", got)
	}
	if kinds := rec.kinds(); !reflect.DeepEqual(kinds, []EventKind{EventFilterChanged}) {
		t.Errorf("expected a single filter event, got %v", kinds)
	}
}

func TestSelector_FilteredGroups(t *testing.T) {
	store := NewStore()
	store.update(EventGroupsLoaded, func(s *State) bool {
		s.Groups = groupsOf("ИС-11", "ИС-12", "ПК-21")
		return true
	})
	sel := NewSelector(store)
	sel.SetFilterText("пк")

	if got := names(sel.FilteredGroups()); !reflect.DeepEqual(got, []string{"ПК-21"}) {
		t.Errorf("unexpected filtered groups: %v", got)
	}
}

func TestSelector_SelectGroupResetsFilter(t *testing.T) {
	store := NewStore()
	sel := NewSelector(store)
	sel.SetFilterText("ис")

	changed := sel.SelectGroup(collegeapi.Group{GroupName: "ИС-12"})

	st := store.State()
	if !changed {
		t.Error("expected selection change")
	}
	if st.FilterText != "ИС-12" {
		t.Errorf("expected filter text to equal group name, got %q", st.FilterText)
	}
	if st.SelectedName() != "ИС-12" {
		t.Errorf("expected ИС-12 selected, got %q", st.SelectedName())
	}
}

func TestSelector_ReselectSameGroup(t *testing.T) {
	store := NewStore()
	rec := &eventRecorder{}
	sel := NewSelector(store)
	g := collegeapi.Group{GroupName: "ИС-12"}
	sel.SelectGroup(g)
	sel.SetFilterText("x")
	store.Subscribe(rec.listen)

	if sel.SelectGroup(g) {
		t.Error("reselecting the same group must not report a change")
	}
	if got := store.State().FilterText; got != "ИС-12" {
		t.Errorf("expected filter reset on reselect, got %q", got)
	}
	if kinds := rec.kinds(); !reflect.DeepEqual(kinds, []EventKind{EventFilterChanged}) {
		t.Errorf("expected only a filter event, got %v", kinds)
	}
}

func TestSelector_SelectByName(t *testing.T) {
	store := NewStore()
	store.update(EventGroupsLoaded, func(s *State) bool {
		s.Groups = groupsOf("ИС-11", "ИС-12")
		return true
	})
	sel := NewSelector(store)

	if err := sel.SelectByName("ИС-11"); err != nil {
		t.Fatalf("SelectByName: %v", err)
	}
	if got := store.State().SelectedName(); got != "ИС-11" {
		t.Errorf("expected ИС-11, got %q", got)
	}
	if err := sel.SelectByName("ис-11"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound for case-mismatched name, got %v", err)
	}
}
