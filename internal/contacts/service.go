package contacts

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Service is the remote user directory the add-contact flow talks to.
//
// Search returns candidates ranked by relevance, ErrNoMatches when nothing
// matches, or an *OperationError when the collaborator fails. Search is
// idempotent. Commit confirms a chosen candidate before it is imported.
type Service interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
	Commit(ctx context.Context, c Candidate) (Candidate, error)
}

// MockService simulates the remote directory with a fixed delay and
// candidates synthesized from the query.
type MockService struct {
	Delay time.Duration
	Limit int
	// Err, when set, is returned (wrapped) by every call.
	Err error
}

// NewMockService returns a mock with the given delay and the default three
// results per search.
func NewMockService(delay time.Duration) *MockService {
	return &MockService{Delay: delay, Limit: 3}
}

func (m *MockService) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Search implements Service.
func (m *MockService) Search(ctx context.Context, query string) ([]Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if err := m.wait(ctx); err != nil {
		return nil, &OperationError{Op: "search", Err: err}
	}
	if m.Err != nil {
		return nil, &OperationError{Op: "search", Err: m.Err}
	}

	results := []Candidate{
		{ID: "search-1", Name: fmt.Sprintf("%s Smith", query), Status: StatusOnline, IsOnline: true},
		{ID: "search-2", Name: fmt.Sprintf("Alex %s", query), Status: StatusOffline, LastSeen: "2 hours ago"},
		{ID: "search-3", Name: fmt.Sprintf("%s Johnson", query), Status: StatusAway, IsOnline: true},
	}
	if m.Limit > 0 && len(results) > m.Limit {
		results = results[:m.Limit]
	}
	return results, nil
}

// Commit implements Service.
func (m *MockService) Commit(ctx context.Context, c Candidate) (Candidate, error) {
	if err := m.wait(ctx); err != nil {
		return Candidate{}, &OperationError{Op: "add", Err: err}
	}
	if m.Err != nil {
		return Candidate{}, &OperationError{Op: "add", Err: m.Err}
	}
	return c, nil
}
