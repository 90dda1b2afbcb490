// Package mockapi serves the college REST API from a fixture file so the
// client can be developed and demonstrated without the real backend.
package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/colsched/colsched/pkg/collegeapi"
	"github.com/colsched/colsched/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/spf13/afero"
)

const dateLayout = "2006-01-02"

// Server answers GET /api/groups and GET /api/schedule/group/{groupName}.
// The fixture is re-read on every request.
type Server struct {
	fs    afero.Fs
	path  string
	log   logger.Logger
	delay time.Duration
}

// New creates a Server reading the fixture at path from fs. delay is
// added before every response to make loading states visible.
func New(fs afero.Fs, path string, l logger.Logger, delay time.Duration) *Server {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Server{fs: fs, path: path, log: l, delay: delay}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter().UseEncodedPath()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/groups", s.groups).Methods(http.MethodGet)
	api.HandleFunc("/schedule/group/{groupName}", s.schedule).Methods(http.MethodGet)
	r.Use(s.logRequests)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Info("%s %s", r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

// wait sleeps for the configured delay. It reports false when the client
// went away first.
func (s *Server) wait(r *http.Request) bool {
	if s.delay <= 0 {
		return true
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-r.Context().Done():
		return false
	}
}

func (s *Server) load(w http.ResponseWriter) (*collegeapi.Fixture, bool) {
	f, err := collegeapi.LoadFixture(s.fs, s.path)
	if err != nil {
		s.log.Error("load fixture: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, "fixture unavailable", status)
		return nil, false
	}
	return f, true
}

func (s *Server) groups(w http.ResponseWriter, r *http.Request) {
	if !s.wait(r) {
		return
	}
	f, ok := s.load(w)
	if !ok {
		return
	}
	groups := f.Groups
	if groups == nil {
		groups = []collegeapi.Group{}
	}
	writeJSON(w, groups)
}

func (s *Server) schedule(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(mux.Vars(r)["groupName"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	start, end, err := window(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.wait(r) {
		return
	}
	f, ok := s.load(w)
	if !ok {
		return
	}
	days, known := f.Schedules[name]
	if !known {
		for _, g := range f.Groups {
			if g.GroupName == name {
				known = true
				break
			}
		}
	}
	if !known {
		http.Error(w, collegeapi.ErrUnknownGroup.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, filterDays(days, start, end))
}

// window parses the optional start and end query parameters.
func window(r *http.Request) (start, end time.Time, err error) {
	q := r.URL.Query()
	if v := q.Get("start"); v != "" {
		if start, err = time.Parse(dateLayout, v); err != nil {
			return start, end, errors.New("invalid start date")
		}
	}
	if v := q.Get("end"); v != "" {
		if end, err = time.Parse(dateLayout, v); err != nil {
			return start, end, errors.New("invalid end date")
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return start, end, errors.New("end before start")
	}
	return start, end, nil
}

// filterDays keeps the days inside [start, end]. Zero bounds are open.
// Days whose date does not parse are kept.
func filterDays(days []collegeapi.ScheduleDay, start, end time.Time) []collegeapi.ScheduleDay {
	out := make([]collegeapi.ScheduleDay, 0, len(days))
	for _, d := range days {
		t, err := time.Parse(dateLayout, d.LessonDate)
		if err == nil {
			if !start.IsZero() && t.Before(start) {
				continue
			}
			if !end.IsZero() && t.After(end) {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
