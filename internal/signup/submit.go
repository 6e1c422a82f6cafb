package signup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUsernameTaken is returned by a Registrar when the username exists.
var ErrUsernameTaken = errors.New("signup: username already taken")

// Registration is the identity created by a successful sign-up.
type Registration struct {
	UserID   string
	Username string
}

// Registrar creates the account remotely.
type Registrar interface {
	Register(ctx context.Context, f Form) (Registration, error)
}

// Navigator moves the UI to the chat home after sign-up.
type Navigator interface {
	GoChatHome()
}

// DefaultMockDelay matches the simulated sign-up latency.
const DefaultMockDelay = 1500 * time.Millisecond

// MockRegistrar accepts every valid form after Delay.
type MockRegistrar struct {
	Delay time.Duration
}

// Register implements Registrar.
func (m MockRegistrar) Register(ctx context.Context, f Form) (Registration, error) {
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return Registration{}, ctx.Err()
		}
	}
	return Registration{UserID: "user-" + uuid.NewString(), Username: f.Username}, nil
}

// Submitter validates a form, registers it and navigates on success.
type Submitter struct {
	reg    Registrar
	nav    Navigator
	logger *zap.Logger
}

// NewSubmitter creates a Submitter. nav may be nil.
func NewSubmitter(reg Registrar, nav Navigator, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{reg: reg, nav: nav, logger: logger}
}

// Submit returns a *ValidationError without calling the registrar when the
// form is invalid. Registrar failures are returned wrapped and leave the UI
// where it is.
func (s *Submitter) Submit(ctx context.Context, f Form) (Registration, error) {
	if err := Validate(f).Err(); err != nil {
		return Registration{}, err
	}
	reg, err := s.reg.Register(ctx, f)
	if err != nil {
		s.logger.Warn("sign-up failed", zap.String("username", f.Username), zap.Error(err))
		return Registration{}, fmt.Errorf("register %s: %w", f.Username, err)
	}
	s.logger.Info("signed up", zap.String("user_id", reg.UserID), zap.String("username", reg.Username))
	if s.nav != nil {
		s.nav.GoChatHome()
	}
	return reg, nil
}
