package hierarchy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryDirectoryIndexesReports(t *testing.T) {
	dir := sampleOrg(t)
	require.Equal(t, 6, dir.Len())

	reports, err := dir.DirectReports(context.Background(), "mike")
	require.NoError(t, err)
	require.Equal(t, []string{"sarah"}, reports)

	reports, err = dir.DirectReports(context.Background(), "sarah")
	require.NoError(t, err)
	require.Empty(t, reports)

	m, err := dir.Member(context.Background(), "sarah")
	require.NoError(t, err)
	require.Equal(t, "mike", m.ManagerID)

	_, err = dir.Member(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestMemoryDirectoryReturnsCopies(t *testing.T) {
	dir := sampleOrg(t)

	m, err := dir.Member(context.Background(), "john")
	require.NoError(t, err)
	m.Department = "HR"

	again, err := dir.Member(context.Background(), "john")
	require.NoError(t, err)
	require.Equal(t, "Engineering", again.Department)

	reports, _ := dir.DirectReports(context.Background(), "lisa")
	reports[0] = "mutated"
	reports, _ = dir.DirectReports(context.Background(), "lisa")
	require.Equal(t, []string{"john"}, reports)
}

func TestNewMemoryDirectoryRejectsBadIDs(t *testing.T) {
	_, err := NewMemoryDirectory(Member{ID: " ", Name: "blank"})
	require.ErrorContains(t, err, "id is required")

	_, err = NewMemoryDirectory(Member{ID: "a"}, Member{ID: "a"})
	require.ErrorContains(t, err, "duplicate")
}
