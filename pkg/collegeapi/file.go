package collegeapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// Fixture is the on-disk document read by FileSource and served by the
// mock API: every group plus the schedule of each group that has one.
type Fixture struct {
	Groups    []Group                  `json:"groups"`
	Schedules map[string][]ScheduleDay `json:"schedules"`
}

// LoadFixture reads and decodes a fixture document from fs.
func LoadFixture(fs afero.Fs, path string) (*Fixture, error) {
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := json.Unmarshal(buf, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// FileSource serves groups and schedules from a fixture file. The file
// is re-read on every call, so edits show up without a restart.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a Source reading path from fs.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	return &FileSource{fs: fs, path: path}
}

func (s *FileSource) ListGroups(ctx context.Context) ([]Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, newFetchError(OpListGroups, "", err)
	}
	f, err := LoadFixture(s.fs, s.path)
	if err != nil {
		return nil, newFetchError(OpListGroups, "", err)
	}
	return f.Groups, nil
}

func (s *FileSource) GetSchedule(ctx context.Context, groupName string) ([]ScheduleDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, newFetchError(OpGetSchedule, groupName, err)
	}
	f, err := LoadFixture(s.fs, s.path)
	if err != nil {
		return nil, newFetchError(OpGetSchedule, groupName, err)
	}
	if days, ok := f.Schedules[groupName]; ok {
		return days, nil
	}
	for _, g := range f.Groups {
		if g.GroupName == groupName {
			return []ScheduleDay{}, nil
		}
	}
	return nil, newFetchError(OpGetSchedule, groupName, ErrUnknownGroup)
}

var _ Source = (*FileSource)(nil)
