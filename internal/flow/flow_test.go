package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matheus3301/tgclone/internal/contacts"
)

// gatedService blocks each Search until its query is released.
type gatedService struct {
	gates  map[string]chan struct{}
	commit error
}

func newGatedService(queries ...string) *gatedService {
	s := &gatedService{gates: make(map[string]chan struct{})}
	for _, q := range queries {
		s.gates[q] = make(chan struct{})
	}
	return s
}

func (s *gatedService) Search(ctx context.Context, query string) ([]contacts.Candidate, error) {
	if gate, ok := s.gates[query]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, &contacts.OperationError{Op: "search", Err: ctx.Err()}
		}
	}
	return []contacts.Candidate{{ID: "r-" + query, Name: query}}, nil
}

func (s *gatedService) Commit(_ context.Context, c contacts.Candidate) (contacts.Candidate, error) {
	if s.commit != nil {
		return contacts.Candidate{}, &contacts.OperationError{Op: "add", Err: s.commit}
	}
	return c, nil
}

func TestSearchChooseAdd(t *testing.T) {
	dir := contacts.NewDirectory(nil)
	f := New(contacts.NewMockService(0), dir, nil, nil, 0)

	results, err := f.Search(context.Background(), "bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if f.State() != Results {
		t.Errorf("state = %s, want RESULTS", f.State())
	}

	if err := f.Choose(results[1].ID); err != nil {
		t.Fatal(err)
	}
	contact, err := f.Add(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if f.State() != Added {
		t.Errorf("state = %s, want ADDED", f.State())
	}

	list := dir.List("")
	if len(list) != 1 {
		t.Fatalf("directory size = %d, want 1", len(list))
	}
	if list[0].Name != "Alex bob" || contact.Name != "Alex bob" {
		t.Errorf("added %q, want %q", list[0].Name, "Alex bob")
	}
	if list[0].LastSeen != "2 hours ago" {
		t.Errorf("LastSeen = %q, want 2 hours ago", list[0].LastSeen)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	f := New(contacts.NewMockService(0), contacts.NewDirectory(nil), nil, nil, 0)
	if _, err := f.Search(context.Background(), "   "); !errors.Is(err, contacts.ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
	if f.State() != Idle {
		t.Errorf("state = %s, want IDLE", f.State())
	}
}

type emptyService struct{}

func (emptyService) Search(context.Context, string) ([]contacts.Candidate, error) {
	return nil, nil
}

func (emptyService) Commit(_ context.Context, c contacts.Candidate) (contacts.Candidate, error) {
	return c, nil
}

func TestSearchNoMatches(t *testing.T) {
	f := New(emptyService{}, contacts.NewDirectory(nil), nil, nil, 0)
	if _, err := f.Search(context.Background(), "zed"); !errors.Is(err, contacts.ErrNoMatches) {
		t.Errorf("err = %v, want ErrNoMatches", err)
	}
	if f.State() != Empty {
		t.Errorf("state = %s, want EMPTY", f.State())
	}
	// Resubmitting from Empty is allowed.
	if _, err := f.Search(context.Background(), "zed"); !errors.Is(err, contacts.ErrNoMatches) {
		t.Errorf("second search err = %v", err)
	}
}

func TestSearchFailure(t *testing.T) {
	svc := contacts.NewMockService(0)
	svc.Err = errors.New("boom")
	f := New(svc, contacts.NewDirectory(nil), nil, nil, 0)

	_, err := f.Search(context.Background(), "bob")
	if !contacts.IsOperationFailed(err) {
		t.Errorf("err = %v, want OperationError", err)
	}
	if f.State() != Idle {
		t.Errorf("state = %s, want IDLE", f.State())
	}
	if !errors.Is(f.Err(), err) {
		t.Errorf("Err() = %v, want %v", f.Err(), err)
	}

	svc.Err = nil
	if _, err := f.Search(context.Background(), "bob"); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if f.State() != Results {
		t.Errorf("state = %s, want RESULTS", f.State())
	}
}

func TestSearchTimeout(t *testing.T) {
	svc := newGatedService("slow")
	f := New(svc, contacts.NewDirectory(nil), nil, nil, 20*time.Millisecond)

	_, err := f.Search(context.Background(), "slow")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if f.State() != Idle {
		t.Errorf("state = %s, want IDLE", f.State())
	}
}

func TestSearchLastCallWins(t *testing.T) {
	svc := newGatedService("first")
	f := New(svc, contacts.NewDirectory(nil), nil, nil, time.Minute)

	done := make(chan error, 1)
	go func() {
		_, err := f.Search(context.Background(), "first")
		done <- err
	}()

	// Wait until the first search is in flight.
	deadline := time.Now().Add(time.Second)
	for f.Query() != "first" {
		if time.Now().After(deadline) {
			t.Fatal("first search never started")
		}
		time.Sleep(time.Millisecond)
	}

	results, err := f.Search(context.Background(), "second")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "r-second" {
		t.Errorf("results = %+v, want r-second", results)
	}

	if err := <-done; !errors.Is(err, ErrStale) {
		t.Errorf("first search err = %v, want ErrStale", err)
	}
	got := f.Results()
	if len(got) != 1 || got[0].ID != "r-second" {
		t.Errorf("Results() = %+v, stale search overwrote newer results", got)
	}
	if f.State() != Results {
		t.Errorf("state = %s, want RESULTS", f.State())
	}
}

func TestAddRequiresSelection(t *testing.T) {
	dir := contacts.NewDirectory(nil)
	f := New(contacts.NewMockService(0), dir, nil, nil, 0)

	if _, err := f.Add(context.Background()); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Add() before search err = %v, want ErrNoSelection", err)
	}
	if _, err := f.Search(context.Background(), "bob"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Add(context.Background()); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Add() without choice err = %v, want ErrNoSelection", err)
	}
	if err := f.Choose("missing"); !errors.Is(err, contacts.ErrNotFound) {
		t.Errorf("Choose(missing) err = %v, want ErrNotFound", err)
	}
	if dir.Len() != 0 {
		t.Errorf("directory size = %d, want 0", dir.Len())
	}
}

func TestAddFailureLeavesDirectoryUntouched(t *testing.T) {
	svc := newGatedService()
	svc.commit = errors.New("gone")
	dir := contacts.NewDirectory(nil)
	f := New(svc, dir, nil, nil, 0)

	if _, err := f.Search(context.Background(), "bob"); err != nil {
		t.Fatal(err)
	}
	if err := f.Choose("r-bob"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Add(context.Background()); !contacts.IsOperationFailed(err) {
		t.Errorf("err = %v, want OperationError", err)
	}
	if dir.Len() != 0 {
		t.Errorf("directory size = %d, want 0", dir.Len())
	}
	if f.State() != Results {
		t.Errorf("state = %s, want RESULTS", f.State())
	}
	if len(f.Results()) != 1 {
		t.Errorf("len(Results()) = %d, want candidates kept", len(f.Results()))
	}
	if c, ok := f.Selected(); !ok || c.ID != "r-bob" {
		t.Errorf("Selected() = %+v, %v, want r-bob kept", c, ok)
	}
}

// flakyCommit fails the first Commit and accepts the rest.
type flakyCommit struct {
	*contacts.MockService
	failures int
}

func (s *flakyCommit) Commit(ctx context.Context, c contacts.Candidate) (contacts.Candidate, error) {
	if s.failures > 0 {
		s.failures--
		return contacts.Candidate{}, &contacts.OperationError{Op: "add", Err: errors.New("unavailable")}
	}
	return s.MockService.Commit(ctx, c)
}

func TestAddRetryWithAnotherCandidate(t *testing.T) {
	svc := &flakyCommit{MockService: contacts.NewMockService(0), failures: 1}
	dir := contacts.NewDirectory(nil)
	f := New(svc, dir, nil, nil, 0)
	ctx := context.Background()

	if _, err := f.Search(ctx, "bob"); err != nil {
		t.Fatal(err)
	}
	if err := f.Choose("search-2"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Add(ctx); !contacts.IsOperationFailed(err) {
		t.Fatalf("first Add() err = %v, want OperationError", err)
	}

	if err := f.Choose("search-1"); err != nil {
		t.Fatalf("Choose after failed add: %v", err)
	}
	c, err := f.Add(ctx)
	if err != nil {
		t.Fatalf("retry Add(): %v", err)
	}
	if c.Name != "bob Smith" || dir.Len() != 1 {
		t.Errorf("added %q, directory size %d", c.Name, dir.Len())
	}
	if f.State() != Added {
		t.Errorf("state = %s, want ADDED", f.State())
	}
}

func TestResetClearsFlow(t *testing.T) {
	f := New(contacts.NewMockService(0), contacts.NewDirectory(nil), nil, nil, 0)
	if _, err := f.Search(context.Background(), "bob"); err != nil {
		t.Fatal(err)
	}
	if err := f.Choose("search-1"); err != nil {
		t.Fatal(err)
	}

	f.Reset()
	if f.State() != Idle {
		t.Errorf("state = %s, want IDLE", f.State())
	}
	if len(f.Results()) != 0 {
		t.Error("results should be cleared")
	}
	if _, ok := f.Selected(); ok {
		t.Error("selection should be cleared")
	}
}

func TestSearchAfterAddedStartsOver(t *testing.T) {
	dir := contacts.NewDirectory(nil)
	f := New(contacts.NewMockService(0), dir, nil, nil, 0)
	for i := range 2 {
		if _, err := f.Search(context.Background(), "bob"); err != nil {
			t.Fatal(err)
		}
		if err := f.Choose("search-1"); err != nil {
			t.Fatal(err)
		}
		if _, err := f.Add(context.Background()); err != nil {
			t.Fatalf("add #%d: %v", i+1, err)
		}
	}
	if dir.Len() != 2 {
		t.Errorf("directory size = %d, want 2", dir.Len())
	}
}
