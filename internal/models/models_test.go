package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBaseModelBeforeCreateGeneratesID(t *testing.T) {
	var base BaseModel
	if err := base.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if base.ID == "" {
		t.Fatal("expected base model ID to be generated")
	}
}

func TestBaseModelBeforeCreateKeepsExistingID(t *testing.T) {
	base := BaseModel{ID: "administrator"}
	require.NoError(t, base.BeforeCreate(nil))
	require.Equal(t, "administrator", base.ID)
}

func TestMemberBeforeSaveNormalisesReferences(t *testing.T) {
	blank := "   "
	manager := " mgr-1 "
	member := &Member{
		Name:       "  Sarah ",
		Email:      " Sarah@Example.com ",
		Department: " Marketing ",
		RoleID:     &blank,
		ManagerID:  &manager,
	}

	require.NoError(t, member.BeforeSave(nil))
	require.Equal(t, "Sarah", member.Name)
	require.Equal(t, "sarah@example.com", member.Email)
	require.Equal(t, "Marketing", member.Department)
	require.Nil(t, member.RoleID)
	require.NotNil(t, member.ManagerID)
	require.Equal(t, "mgr-1", *member.ManagerID)
}
