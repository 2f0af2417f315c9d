package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/charlesng35/orgauthz/internal/database/testutil"
	"github.com/charlesng35/orgauthz/internal/models"
)

func strPtr(value string) *string {
	return &value
}

// seedOrg creates the reference organization used across service tests:
// Mike manages Sarah in Marketing, Lisa manages John in Engineering.
func seedOrg(t *testing.T) *gorm.DB {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())

	require.NoError(t, db.Create(&models.Role{
		BaseModel:   models.BaseModel{ID: "stale"},
		Name:        "Stale",
		Permissions: datatypes.NewJSONSlice([]string{"reports.view", "calendar.view"}),
	}).Error)

	members := []models.Member{
		{BaseModel: models.BaseModel{ID: "admin-a"}, Name: "Admin A", Email: "admin@example.com", Department: "Management", RoleID: strPtr("administrator")},
		{BaseModel: models.BaseModel{ID: "mike"}, Name: "Mike", Email: "mike@example.com", Department: "Marketing", RoleID: strPtr("manager")},
		{BaseModel: models.BaseModel{ID: "sarah"}, Name: "Sarah", Email: "sarah@example.com", Department: "Marketing", RoleID: strPtr("member"), ManagerID: strPtr("mike")},
		{BaseModel: models.BaseModel{ID: "lisa"}, Name: "Lisa", Email: "lisa@example.com", Department: "Engineering", RoleID: strPtr("manager")},
		{BaseModel: models.BaseModel{ID: "john"}, Name: "John", Email: "john@example.com", Department: "Engineering", RoleID: strPtr("stale"), ManagerID: strPtr("lisa")},
		{BaseModel: models.BaseModel{ID: "hannah"}, Name: "Hannah", Email: "hannah@example.com", Department: "HR"},
	}
	for i := range members {
		require.NoError(t, db.Create(&members[i]).Error)
	}
	return db
}
