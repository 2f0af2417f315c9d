package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/charlesng35/orgauthz/pkg/logger"
	"github.com/charlesng35/orgauthz/pkg/metrics"
)

// Authorizer decides whether one member may message another.
type Authorizer struct {
	dir Directory
	log *zap.Logger
}

// Option customises an Authorizer.
type Option func(*Authorizer)

// WithLogger overrides the module logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Authorizer) {
		if log != nil {
			a.log = log
		}
	}
}

// NewAuthorizer constructs an Authorizer backed by dir.
func NewAuthorizer(dir Directory, opts ...Option) (*Authorizer, error) {
	if dir == nil {
		return nil, errors.New("hierarchy: directory is required")
	}
	a := &Authorizer{dir: dir, log: logger.WithModule("hierarchy")}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// CanMessage resolves both members and evaluates the rule chain.
// Unresolvable ids produce a denial, not an error; only directory failures are returned.
func (a *Authorizer) CanMessage(ctx context.Context, senderID, recipientID string) (Decision, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	sender, err := a.resolve(ctx, senderID)
	if err != nil {
		return Decision{}, err
	}
	recipient, err := a.resolve(ctx, recipientID)
	if err != nil {
		return Decision{}, err
	}

	decision := Evaluate(sender, recipient)
	metrics.MessagingDecisions.WithLabelValues(string(decision.Rule), metrics.Result(decision.Allowed)).Inc()
	a.log.Debug("messaging decision",
		zap.String("sender_id", senderID),
		zap.String("recipient_id", recipientID),
		zap.Bool("allowed", decision.Allowed),
		zap.String("rule", string(decision.Rule)),
	)
	return decision, nil
}

// resolve returns nil without error when the member does not exist.
func (a *Authorizer) resolve(ctx context.Context, id string) (*Party, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	member, err := a.dir.Member(ctx, id)
	if errors.Is(err, ErrMemberNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hierarchy: load member %s: %w", id, err)
	}
	if member == nil {
		return nil, nil
	}

	reports, err := a.dir.DirectReports(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("hierarchy: load direct reports of %s: %w", id, err)
	}
	return &Party{Member: *member, DirectReports: reports}, nil
}
