package hierarchy

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// MemoryDirectory is an immutable, indexed Directory.
// The manager relation is kept as id -> manager id with a reverse index for direct reports.
type MemoryDirectory struct {
	members map[string]Member
	reports map[string][]string
}

// NewMemoryDirectory indexes members. Ids must be unique and non-empty.
// Manager cycles are not checked; the hierarchy is assumed to be a forest.
func NewMemoryDirectory(members ...Member) (*MemoryDirectory, error) {
	d := &MemoryDirectory{
		members: make(map[string]Member, len(members)),
		reports: make(map[string][]string),
	}

	for _, m := range members {
		m.ID = strings.TrimSpace(m.ID)
		m.ManagerID = strings.TrimSpace(m.ManagerID)
		if m.ID == "" {
			return nil, fmt.Errorf("hierarchy: member id is required (name %q)", m.Name)
		}
		if _, dup := d.members[m.ID]; dup {
			return nil, fmt.Errorf("hierarchy: duplicate member id %s", m.ID)
		}
		d.members[m.ID] = m
		if m.ManagerID != "" {
			d.reports[m.ManagerID] = append(d.reports[m.ManagerID], m.ID)
		}
	}

	for id := range d.reports {
		sort.Strings(d.reports[id])
	}
	return d, nil
}

// Member returns a copy of the member with the given id.
func (d *MemoryDirectory) Member(_ context.Context, id string) (*Member, error) {
	m, ok := d.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return &m, nil
}

// DirectReports returns the ids of members whose manager is managerID.
func (d *MemoryDirectory) DirectReports(_ context.Context, managerID string) ([]string, error) {
	return append([]string(nil), d.reports[managerID]...), nil
}

// Len returns the number of indexed members.
func (d *MemoryDirectory) Len() int {
	return len(d.members)
}
