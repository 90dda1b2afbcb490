package server

import (
	"context"
	"errors"

	"github.com/colsched/colsched/internal/screen"
	"github.com/colsched/colsched/pkg/collegeapi"
	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
)

// JSON-RPC error codes.
const (
	codeInvalidRequest = jrpc2.Code(-32600)
	codeInvalidParams  = jrpc2.Code(-32602)
	codeGroupNotFound  = jrpc2.Code(-32001)
	codeNoSelection    = jrpc2.Code(-32002)
)

// VersionResult is the response for system.getVersion.
type VersionResult struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"buildType,omitempty"`
}

// Snapshot is a state together with the view derived from it.
type Snapshot struct {
	screen.State
	View screen.View `json:"view"`
}

func newSnapshot(st screen.State) Snapshot {
	return Snapshot{State: st, View: st.View()}
}

// FilterParams is the input for groups.filter.
type FilterParams struct {
	Text string `json:"text"`
}

// FilterResult is the response for groups.filter.
type FilterResult struct {
	FilterText string             `json:"filterText"`
	Groups     []collegeapi.Group `json:"groups"`
}

// SelectParams is the input for groups.select.
type SelectParams struct {
	GroupName string `json:"groupName"`
}

// EmptyResult is returned by methods without data.
type EmptyResult struct{}

func (s *Server) methodMap() handler.Map {
	return handler.Map{
		"system.getVersion": handler.New(s.systemGetVersion),
		"state.get":         handler.New(s.stateGet),
		"groups.filter":     handler.New(s.groupsFilter),
		"groups.select":     handler.New(s.groupsSelect),
		"schedule.retry":    handler.New(s.scheduleRetry),
		"schedule.refresh":  handler.New(s.scheduleRefresh),
	}
}

func (s *Server) systemGetVersion(_ context.Context) (*VersionResult, error) {
	return &VersionResult{
		Version:   s.cfg.Version,
		Commit:    s.cfg.Commit,
		BuildType: s.cfg.BuildType,
	}, nil
}

func (s *Server) stateGet(_ context.Context) (*Snapshot, error) {
	snap := newSnapshot(s.vm.State())
	return &snap, nil
}

// groupsFilter stores the filter text and returns the groups matching it.
func (s *Server) groupsFilter(_ context.Context, p *FilterParams) (*FilterResult, error) {
	s.vm.SetFilterText(p.Text)
	st := s.vm.State()
	return &FilterResult{
		FilterText: p.Text,
		Groups:     screen.FilterGroups(st.Groups, p.Text),
	}, nil
}

// groupsSelect selects a group by name. The schedule fetch it triggers
// runs in the background; its outcome arrives as notifications or via
// state.get.
func (s *Server) groupsSelect(_ context.Context, p *SelectParams) (*Snapshot, error) {
	if p.GroupName == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: groupName"}
	}
	if err := s.vm.SelectByName(p.GroupName); err != nil {
		return nil, rpcError(err)
	}
	snap := newSnapshot(s.vm.State())
	return &snap, nil
}

func (s *Server) scheduleRetry(_ context.Context) (*EmptyResult, error) {
	if err := s.vm.Retry(); err != nil {
		return nil, rpcError(err)
	}
	return &EmptyResult{}, nil
}

func (s *Server) scheduleRefresh(_ context.Context) (*EmptyResult, error) {
	if err := s.vm.Refresh(); err != nil {
		return nil, rpcError(err)
	}
	return &EmptyResult{}, nil
}

func rpcError(err error) error {
	switch {
	case errors.Is(err, screen.ErrGroupNotFound):
		return &jrpc2.Error{Code: codeGroupNotFound, Message: "group not found"}
	case errors.Is(err, screen.ErrNoSelection):
		return &jrpc2.Error{Code: codeNoSelection, Message: "no group selected"}
	}
	return err
}
