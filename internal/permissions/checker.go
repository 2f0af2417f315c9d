package permissions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/charlesng35/orgauthz/pkg/logger"
	"github.com/charlesng35/orgauthz/pkg/metrics"
)

// unknownPermissionLabel is the metric label shared by every key outside the catalog.
const unknownPermissionLabel = "unknown"

// PermissionSource resolves the effective grant set of a member's role against the catalog.
// Implementations own reporting of unknown keys.
type PermissionSource interface {
	MemberPermissions(ctx context.Context, memberID string) (EffectiveGrantSet, error)
}

// Checker evaluates member permissions against the catalog.
type Checker struct {
	catalog *Catalog
	source  PermissionSource
}

// NewChecker constructs a permission checker.
func NewChecker(catalog *Catalog, source PermissionSource) (*Checker, error) {
	if catalog == nil {
		return nil, errors.New("permission checker: catalog is required")
	}
	if source == nil {
		return nil, errors.New("permission checker: permission source is required")
	}
	return &Checker{catalog: catalog, source: source}, nil
}

// Check reports whether the member holds permissionID with its whole prerequisite chain.
// Keys missing from the catalog are never granted.
func (c *Checker) Check(ctx context.Context, memberID, permissionID string) (bool, error) {
	permissionID = strings.TrimSpace(permissionID)
	if permissionID == "" {
		return false, errors.New("permission checker: permission id is required")
	}

	if !c.catalog.Has(permissionID) {
		metrics.PermissionChecks.WithLabelValues(unknownPermissionLabel, "denied").Inc()
		logger.WithModule("permissions").Warn("check against unknown permission",
			zap.String("permission", permissionID),
		)
		return false, nil
	}

	set, err := c.GetMemberPermissions(ctx, memberID)
	if err != nil {
		metrics.PermissionChecks.WithLabelValues(permissionID, "error").Inc()
		return false, err
	}

	ok := c.catalog.HasAllPrerequisites(set, permissionID)
	metrics.PermissionChecks.WithLabelValues(permissionID, metrics.Result(ok)).Inc()
	return ok, nil
}

// GetMemberPermissions returns the effective grant set of the member's role.
func (c *Checker) GetMemberPermissions(ctx context.Context, memberID string) (EffectiveGrantSet, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return EffectiveGrantSet{}, errors.New("permission checker: member id is required")
	}

	set, err := c.source.MemberPermissions(ensureContext(ctx), memberID)
	if err != nil {
		return EffectiveGrantSet{}, fmt.Errorf("permission checker: load grants: %w", err)
	}
	return set, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
