package client

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"

	"github.com/matheus3301/tgclone/internal/api"
	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/signup"
	"github.com/matheus3301/tgclone/internal/store"
	"github.com/matheus3301/tgclone/internal/wire"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	db, _, err := store.OpenMigrated(filepath.Join(t.TempDir(), "directory.db"), store.DirectorySchema)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := api.NewDirectoryService(db, nil, 0)
	svc.HashCost = bcrypt.MinCost

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	wire.RegisterDirectoryServer(srv, svc)
	hs := health.NewServer()
	hs.SetServingStatus(wire.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	// The unix:// target is never dialed; the context dialer routes to bufconn.
	c, err := New("bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func validForm(username string) signup.Form {
	return signup.Form{Username: username, Phone: "+1" + username, Password: "Secret#123", ConfirmPassword: "Secret#123"}
}

func TestProbe(t *testing.T) {
	c := newTestClient(t)
	if err := c.Probe(context.Background()); err != nil {
		t.Errorf("Probe() = %v", err)
	}
}

func TestRegisterAndSearch(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	reg, err := c.Register(ctx, validForm("bob"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.Search(ctx, " bob ")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != reg.UserID {
		t.Fatalf("Search() = %+v", got)
	}

	committed, err := c.Commit(ctx, got[0])
	if err != nil {
		t.Fatal(err)
	}
	if committed.Name != "bob" {
		t.Errorf("Commit() = %+v", committed)
	}
}

func TestErrorMapping(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	if _, err := c.Register(ctx, validForm("bob")); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Search(ctx, ""); !errors.Is(err, contacts.ErrEmptyQuery) {
		t.Errorf("empty search err = %v, want ErrEmptyQuery", err)
	}
	if _, err := c.Search(ctx, "zed"); !errors.Is(err, contacts.ErrNoMatches) {
		t.Errorf("no match err = %v, want ErrNoMatches", err)
	}

	_, err := c.Commit(ctx, contacts.Candidate{ID: "gone"})
	if !errors.Is(err, contacts.ErrNotFound) || !contacts.IsOperationFailed(err) {
		t.Errorf("missing commit err = %v, want OperationError wrapping ErrNotFound", err)
	}

	if _, err := c.Register(ctx, validForm("BOB")); !errors.Is(err, signup.ErrUsernameTaken) {
		t.Errorf("duplicate err = %v, want ErrUsernameTaken", err)
	}

	bad := validForm("x")
	_, err = c.Register(ctx, bad)
	var verr *signup.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("invalid err = %v, want *ValidationError", err)
	}
	if verr.Fields[signup.FieldUsername] != signup.UsernameTooShort {
		t.Errorf("fields = %v", verr.Fields)
	}
}

func TestSearchUnavailable(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "missing.sock"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Search(ctx, "bob"); !contacts.IsOperationFailed(err) {
		t.Errorf("err = %v, want OperationError", err)
	}
}
