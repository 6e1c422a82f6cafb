package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/signup"
	"github.com/matheus3301/tgclone/internal/store"
	"github.com/matheus3301/tgclone/internal/wire"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// DefaultSearchLimit caps search results when neither side sets a limit.
const DefaultSearchLimit = 20

// DirectoryService implements the DirectoryService gRPC service on top of
// the account table.
type DirectoryService struct {
	db     *store.DB
	logger *zap.Logger
	limit  int

	// HashCost is the bcrypt cost used for new accounts.
	HashCost int
	now      func() time.Time
}

// NewDirectoryService creates a directory service. limit caps every search.
func NewDirectoryService(db *store.DB, logger *zap.Logger, limit int) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &DirectoryService{
		db:       db,
		logger:   logger,
		limit:    limit,
		HashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

var _ wire.DirectoryServer = (*DirectoryService)(nil)

func (s *DirectoryService) Register(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	form := wire.DecodeForm(req)
	if errs := signup.Validate(form); errs.HasErrors() {
		return nil, wire.ValidationStatus(errs)
	}

	// Checked before hashing so a taken name costs no bcrypt round. The
	// unique index still catches concurrent registrations.
	existing, err := s.db.GetAccountByUsername(form.Username)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "lookup username: %v", err)
	}
	if existing != nil {
		return nil, alreadyExists(form.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.HashCost)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "hash password: %v", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "generate id: %v", err)
	}

	acct := &store.Account{
		ID:           id.String(),
		Username:     form.Username,
		Phone:        form.Phone,
		PasswordHash: string(hash),
		Name:         form.Username,
		Status:       string(contacts.StatusOnline),
		LastSeenAt:   s.now().UnixMilli(),
	}
	err = s.db.CreateAccount(acct)
	if errors.Is(err, store.ErrDuplicateUsername) {
		return nil, alreadyExists(form.Username)
	}
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "create account: %v", err)
	}

	s.logger.Info("account registered", zap.String("id", acct.ID), zap.String("username", acct.Username))
	return wire.EncodeRegistration(signup.Registration{UserID: acct.ID, Username: acct.Username})
}

func alreadyExists(username string) error {
	st := grpcstatus.New(codes.AlreadyExists, "username already registered")
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   "USERNAME_TAKEN",
		Domain:   wire.ServiceName,
		Metadata: map[string]string{"username": username},
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func (s *DirectoryService) Search(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	query, limit := wire.DecodeSearch(req)
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, grpcstatus.Error(codes.InvalidArgument, "query is required")
	}
	if limit <= 0 || limit > s.limit {
		limit = s.limit
	}

	accounts, err := s.db.SearchAccounts(query, limit)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "search accounts: %v", err)
	}
	if len(accounts) == 0 {
		return nil, grpcstatus.Errorf(codes.NotFound, "no users match %q", query)
	}

	candidates := make([]contacts.Candidate, len(accounts))
	for i := range accounts {
		candidates[i] = s.toCandidate(&accounts[i])
	}
	s.logger.Debug("search", zap.String("query", query), zap.Int("results", len(candidates)))
	return wire.EncodeCandidates(candidates)
}

func (s *DirectoryService) Commit(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	c, err := wire.DecodeCandidate(req)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.InvalidArgument, "decode candidate: %v", err)
	}
	acct, err := s.db.GetAccount(c.ID)
	if err != nil {
		return nil, grpcstatus.Errorf(codes.Internal, "get account: %v", err)
	}
	if acct == nil {
		return nil, grpcstatus.Errorf(codes.NotFound, "user %s not found", c.ID)
	}
	return wire.EncodeCandidate(s.toCandidate(acct))
}

// toCandidate maps an account to the fields a contact needs. The account's
// current presence wins over whatever the client saw at search time.
func (s *DirectoryService) toCandidate(a *store.Account) contacts.Candidate {
	status := contacts.ParseStatus(a.Status)
	c := contacts.Candidate{
		ID:       a.ID,
		Name:     a.DisplayName(),
		Avatar:   a.Avatar,
		Status:   status,
		IsOnline: status == contacts.StatusOnline,
	}
	if a.LastSeenAt > 0 && !c.IsOnline {
		c.LastSeen = humanize.RelTime(time.UnixMilli(a.LastSeenAt), s.now(), "ago", "from now")
	}
	return c
}
