package hierarchy

import (
	"context"
	"errors"
)

// ErrMemberNotFound is returned by a Directory when an id does not resolve.
var ErrMemberNotFound = errors.New("hierarchy: member not found")

// Member is an organization participant as seen by the authorizer.
// ManagerID is a lookup key; it does not own the referenced member.
type Member struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
	ManagerID  string `json:"manager_id,omitempty"`
}

// Party is a resolved member together with its direct reports.
type Party struct {
	Member
	DirectReports []string `json:"direct_reports,omitempty"`
}

// IsManager reports whether the party has at least one direct report.
func (p *Party) IsManager() bool {
	return p != nil && len(p.DirectReports) > 0
}

// Manages reports whether memberID is one of the party's direct reports.
func (p *Party) Manages(memberID string) bool {
	if p == nil || memberID == "" {
		return false
	}
	for _, id := range p.DirectReports {
		if id == memberID {
			return true
		}
	}
	return false
}

// Directory resolves members and their direct reports.
// Implementations must be safe for concurrent reads.
type Directory interface {
	Member(ctx context.Context, id string) (*Member, error)
	DirectReports(ctx context.Context, managerID string) ([]string, error)
}
