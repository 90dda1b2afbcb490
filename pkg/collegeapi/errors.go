package collegeapi

import (
	"context"
	"errors"
	"net"
	"strings"
)

// Operation names carried by FetchError.
const (
	OpListGroups  = "list_groups"
	OpGetSchedule = "get_schedule"
)

var (
	// ErrUnknownGroup is returned by sources that have no schedule for a group.
	ErrUnknownGroup = errors.New("группа не найдена")
	ErrEmptyBaseURL = errors.New("api base url cannot be empty")
)

// FetchError is returned by Source implementations when a request
// cannot be completed. Error() yields only the human-readable reason so
// that callers can show it to the user as is.
type FetchError struct {
	Op         string
	Group      string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return "неизвестная ошибка"
	}
	return rectifyError(e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func newFetchError(op, group string, err error) *FetchError {
	return &FetchError{Op: op, Group: group, Err: err}
}

// rectifyError turns low level network failures into messages a student
// can act on. Anything it does not recognise is passed through unchanged.
func rectifyError(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "превышено время ожидания"
	case errors.Is(err, context.Canceled):
		return "запрос отменён"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "превышено время ожидания"
	case strings.Contains(err.Error(), "no such host"):
		return "нет подключения к интернету"
	}
	return err.Error()
}
