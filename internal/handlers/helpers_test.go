package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/charlesng35/orgauthz/internal/database/testutil"
	"github.com/charlesng35/orgauthz/internal/models"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func strPtr(value string) *string {
	return &value
}

func seededDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	require.NoError(t, db.Create(&models.Role{
		BaseModel:   models.BaseModel{ID: "legacy"},
		Name:        "Legacy",
		Permissions: datatypes.NewJSONSlice([]string{"tasks.edit_any", "calendar.view"}),
	}).Error)

	members := []models.Member{
		{BaseModel: models.BaseModel{ID: "mike"}, Name: "Mike", Email: "mike@example.com", Department: "Marketing", RoleID: strPtr("manager")},
		{BaseModel: models.BaseModel{ID: "sarah"}, Name: "Sarah", Email: "sarah@example.com", Department: "Marketing", RoleID: strPtr("member"), ManagerID: strPtr("mike")},
		{BaseModel: models.BaseModel{ID: "john"}, Name: "John", Email: "john@example.com", Department: "Engineering", RoleID: strPtr("legacy")},
	}
	for i := range members {
		require.NoError(t, db.Create(&members[i]).Error)
	}
	return db
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, route, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var payload []byte
	switch v := body.(type) {
	case nil:
	case string:
		payload = []byte(v)
	default:
		var err error
		payload, err = json.Marshal(v)
		require.NoError(t, err)
	}

	engine := gin.New()
	engine.Handle(method, route, handler)

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
