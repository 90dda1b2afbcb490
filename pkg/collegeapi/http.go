package collegeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultWindowDays is the number of days requested per schedule fetch.
	DefaultWindowDays = 7
	dateLayout        = "2006-01-02"
	maxErrorBody      = 256
)

// HTTPOpts tunes an HTTPSource. The zero value is usable.
type HTTPOpts struct {
	// Client performs the requests; http.DefaultClient when nil.
	Client *http.Client
	// Days is the schedule window starting today; DefaultWindowDays when <= 0.
	Days int
	// UserAgent is sent with every request when set.
	UserAgent string
	// Now returns the current time; time.Now when nil.
	Now func() time.Time
}

// HTTPSource talks to the college schedule REST API:
//
//	GET {base}/api/groups
//	GET {base}/api/schedule/group/{groupName}?start=YYYY-MM-DD&end=YYYY-MM-DD
type HTTPSource struct {
	base      *url.URL
	client    *http.Client
	days      int
	userAgent string
	now       func() time.Time
}

// NewHTTPSource creates a Source backed by the REST API at baseURL.
func NewHTTPSource(baseURL string, opts *HTTPOpts) (*HTTPSource, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}
	if opts == nil {
		opts = &HTTPOpts{}
	}
	s := &HTTPSource{
		base:      base,
		client:    opts.Client,
		days:      opts.Days,
		userAgent: opts.UserAgent,
		now:       opts.Now,
	}
	if s.client == nil {
		s.client = http.DefaultClient
	}
	if s.days <= 0 {
		s.days = DefaultWindowDays
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// ListGroups fetches all groups known to the API.
func (s *HTTPSource) ListGroups(ctx context.Context) ([]Group, error) {
	var groups []Group
	if err := s.get(ctx, OpListGroups, "", s.base.JoinPath("api", "groups"), &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GetSchedule fetches the schedule of groupName for the configured window.
func (s *HTTPSource) GetSchedule(ctx context.Context, groupName string) ([]ScheduleDay, error) {
	start, end := s.Window()
	u := groupURL(s.base.JoinPath("api", "schedule", "group"), groupName)
	u.RawQuery = url.Values{
		"start": {start.Format(dateLayout)},
		"end":   {end.Format(dateLayout)},
	}.Encode()
	var days []ScheduleDay
	if err := s.get(ctx, OpGetSchedule, groupName, u, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// groupURL appends name to dir as a single escaped path segment.
func groupURL(dir *url.URL, name string) *url.URL {
	seg := url.PathEscape(name)
	if name == "." || name == ".." {
		seg = strings.ReplaceAll(seg, ".", "%2E")
	}
	u := *dir
	u.RawPath = strings.TrimSuffix(dir.EscapedPath(), "/") + "/" + seg
	u.Path = strings.TrimSuffix(dir.Path, "/") + "/" + name
	return &u
}

// Window returns the first and last day requested by GetSchedule.
func (s *HTTPSource) Window() (start, end time.Time) {
	start = s.now()
	return start, start.AddDate(0, 0, s.days-1)
}

func (s *HTTPSource) get(ctx context.Context, op, group string, u *url.URL, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return newFetchError(op, group, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return newFetchError(op, group, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &FetchError{
			Op:         op,
			Group:      group,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("сервер ответил %d: %s", resp.StatusCode, msg),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return newFetchError(op, group, fmt.Errorf("некорректный ответ сервера: %w", err))
	}
	return nil
}

var _ Source = (*HTTPSource)(nil)
