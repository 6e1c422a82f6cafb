package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/signup"
	"github.com/matheus3301/tgclone/internal/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Client talks to the session's directory daemon. It implements
// contacts.Service and signup.Registrar.
type Client struct {
	conn   *grpc.ClientConn
	dir    *wire.DirectoryClient
	health healthpb.HealthClient
	limit  int
}

var (
	_ contacts.Service  = (*Client)(nil)
	_ signup.Registrar = (*Client)(nil)
)

// New dials the daemon's Unix domain socket.
func New(socketPath string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient("unix://"+socketPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}
	return &Client{
		conn:   conn,
		dir:    wire.NewDirectoryClient(conn),
		health: healthpb.NewHealthClient(conn),
	}, nil
}

// SetLimit sets the result limit sent with each search. Zero lets the
// daemon decide.
func (c *Client) SetLimit(n int) { c.limit = n }

// Probe reports whether the daemon is up and serving the directory.
func (c *Client) Probe(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: wire.ServiceName})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("directory not serving: %s", resp.GetStatus())
	}
	return nil
}

// Search implements contacts.Service.
func (c *Client) Search(ctx context.Context, query string) ([]contacts.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, contacts.ErrEmptyQuery
	}
	req, err := wire.EncodeSearch(query, c.limit)
	if err != nil {
		return nil, &contacts.OperationError{Op: "search", Err: err}
	}
	resp, err := c.dir.Search(ctx, req)
	if status.Code(err) == codes.NotFound {
		return nil, contacts.ErrNoMatches
	}
	if err != nil {
		return nil, &contacts.OperationError{Op: "search", Err: err}
	}
	results, err := wire.DecodeCandidates(resp)
	if err != nil {
		return nil, &contacts.OperationError{Op: "search", Err: err}
	}
	if len(results) == 0 {
		return nil, contacts.ErrNoMatches
	}
	return results, nil
}

// Commit implements contacts.Service. A vanished account fails with an
// *OperationError wrapping contacts.ErrNotFound.
func (c *Client) Commit(ctx context.Context, cand contacts.Candidate) (contacts.Candidate, error) {
	req, err := wire.EncodeCandidate(cand)
	if err != nil {
		return contacts.Candidate{}, &contacts.OperationError{Op: "add", Err: err}
	}
	resp, err := c.dir.Commit(ctx, req)
	if status.Code(err) == codes.NotFound {
		return contacts.Candidate{}, &contacts.OperationError{Op: "add", Err: contacts.ErrNotFound}
	}
	if err != nil {
		return contacts.Candidate{}, &contacts.OperationError{Op: "add", Err: err}
	}
	out, err := wire.DecodeCandidate(resp)
	if err != nil {
		return contacts.Candidate{}, &contacts.OperationError{Op: "add", Err: err}
	}
	return out, nil
}

// Register implements signup.Registrar.
func (c *Client) Register(ctx context.Context, f signup.Form) (signup.Registration, error) {
	req, err := wire.EncodeForm(f)
	if err != nil {
		return signup.Registration{}, err
	}
	resp, err := c.dir.Register(ctx, req)
	if err != nil {
		return signup.Registration{}, registerError(err)
	}
	return wire.DecodeRegistration(resp), nil
}

func registerError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.AlreadyExists:
		return signup.ErrUsernameTaken
	case codes.InvalidArgument:
		if errs, ok := wire.ValidationErrors(st); ok {
			return errs.Err()
		}
	}
	return errors.New(st.Message())
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
