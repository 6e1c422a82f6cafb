package api

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/signup"
	"github.com/matheus3301/tgclone/internal/store"
	"github.com/matheus3301/tgclone/internal/wire"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type harness struct {
	db     *store.DB
	svc    *DirectoryService
	client *wire.DirectoryClient
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, _, err := store.OpenMigrated(filepath.Join(t.TempDir(), "directory.db"), store.DirectorySchema)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewDirectoryService(db, nil, 5)
	svc.HashCost = bcrypt.MinCost

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	wire.RegisterDirectoryServer(srv, svc)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return &harness{db: db, svc: svc, client: wire.NewDirectoryClient(conn)}
}

func (h *harness) register(t *testing.T, username string) signup.Registration {
	t.Helper()
	req, err := wire.EncodeForm(signup.Form{
		Username:        username,
		Phone:           "+1555" + username,
		Password:        "Secret#123",
		ConfirmPassword: "Secret#123",
	})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := h.client.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	return wire.DecodeRegistration(resp)
}

func TestRegister(t *testing.T) {
	h := newHarness(t)
	reg := h.register(t, "bob")
	if reg.UserID == "" || reg.Username != "bob" {
		t.Fatalf("registration = %+v", reg)
	}

	acct, err := h.db.GetAccount(reg.UserID)
	if err != nil || acct == nil {
		t.Fatalf("GetAccount() = %v, %v", acct, err)
	}
	if acct.PasswordHash == "Secret#123" {
		t.Error("password stored in clear text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte("Secret#123")); err != nil {
		t.Errorf("stored hash does not match: %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h := newHarness(t)
	h.register(t, "bob")

	// An invalid cost makes any hashing attempt fail with Internal, so
	// AlreadyExists shows the name was rejected before hashing.
	h.svc.HashCost = bcrypt.MaxCost + 1

	req, _ := wire.EncodeForm(signup.Form{Username: "BOB", Phone: "1", Password: "Secret#123", ConfirmPassword: "Secret#123"})
	_, err := h.client.Register(context.Background(), req)
	if status.Code(err) != codes.AlreadyExists {
		t.Errorf("code = %v, want AlreadyExists", status.Code(err))
	}
}

func TestRegisterInvalid(t *testing.T) {
	h := newHarness(t)
	req, _ := wire.EncodeForm(signup.Form{Username: "bo", Phone: "1", Password: "weak", ConfirmPassword: "weak"})
	_, err := h.client.Register(context.Background(), req)

	st, _ := status.FromError(err)
	errs, ok := wire.ValidationErrors(st)
	if !ok {
		t.Fatalf("err = %v, want field violations", err)
	}
	if errs[signup.FieldUsername] != signup.UsernameTooShort || errs[signup.FieldPassword] != signup.PasswordTooShort {
		t.Errorf("errs = %v", errs)
	}
	if n, _ := h.db.AccountCount(); n != 0 {
		t.Errorf("AccountCount() = %d, want 0", n)
	}
}

func TestSearch(t *testing.T) {
	h := newHarness(t)
	for _, u := range []string{"bobby", "bob", "alice"} {
		h.register(t, u)
	}

	req, _ := wire.EncodeSearch("bob", 0)
	resp, err := h.client.Search(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	got, err := wire.DecodeCandidates(resp)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "bob" || got[1].Name != "bobby" {
		t.Fatalf("candidates = %+v, want bob then bobby", got)
	}
	if got[0].Status != contacts.StatusOnline || !got[0].IsOnline {
		t.Errorf("new account should be online: %+v", got[0])
	}
}

func TestSearchLimit(t *testing.T) {
	h := newHarness(t)
	for _, u := range []string{"sam1", "sam2", "sam3", "sam4", "sam5", "sam6"} {
		h.register(t, u)
	}
	tests := []struct {
		limit int
		want  int
	}{
		{0, 5},
		{2, 2},
		{50, 5},
	}
	for _, tt := range tests {
		req, _ := wire.EncodeSearch("sam", tt.limit)
		resp, err := h.client.Search(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		got, _ := wire.DecodeCandidates(resp)
		if len(got) != tt.want {
			t.Errorf("limit %d: %d results, want %d", tt.limit, len(got), tt.want)
		}
	}
}

func TestSearchErrors(t *testing.T) {
	h := newHarness(t)
	h.register(t, "bob")

	empty, _ := wire.EncodeSearch("   ", 0)
	if _, err := h.client.Search(context.Background(), empty); status.Code(err) != codes.InvalidArgument {
		t.Errorf("empty query code = %v, want InvalidArgument", status.Code(err))
	}
	none, _ := wire.EncodeSearch("zed", 0)
	if _, err := h.client.Search(context.Background(), none); status.Code(err) != codes.NotFound {
		t.Errorf("no match code = %v, want NotFound", status.Code(err))
	}
}

func TestCommit(t *testing.T) {
	h := newHarness(t)
	reg := h.register(t, "bob")

	req, _ := wire.EncodeCandidate(contacts.Candidate{ID: reg.UserID, Name: "stale name"})
	resp, err := h.client.Commit(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	got, err := wire.DecodeCandidate(resp)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != reg.UserID || got.Name != "bob" {
		t.Errorf("Commit() = %+v, want fresh account data", got)
	}

	missing, _ := wire.EncodeCandidate(contacts.Candidate{ID: "gone"})
	if _, err := h.client.Commit(context.Background(), missing); status.Code(err) != codes.NotFound {
		t.Errorf("missing code = %v, want NotFound", status.Code(err))
	}
}

func TestToCandidateLastSeen(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := &DirectoryService{now: func() time.Time { return now }}

	away := svc.toCandidate(&store.Account{ID: "1", Username: "a", Status: "offline", LastSeenAt: now.Add(-2 * time.Hour).UnixMilli()})
	if away.LastSeen != "2 hours ago" || away.IsOnline {
		t.Errorf("offline candidate = %+v", away)
	}
	online := svc.toCandidate(&store.Account{ID: "2", Username: "b", Status: "online", LastSeenAt: now.UnixMilli()})
	if online.LastSeen != "" || !online.IsOnline {
		t.Errorf("online candidate = %+v", online)
	}
}
