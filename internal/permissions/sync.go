package permissions

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/orgauthz/internal/models"
)

// Sync persists the catalog and the role templates to the backing database.
// Catalog rows are upserted. Template roles are created when missing; existing roles keep
// any edits made through the administrative tooling.
func Sync(ctx context.Context, db *gorm.DB, catalog *Catalog, templates *TemplateSet) error {
	if db == nil {
		return errors.New("permission: db is required")
	}
	if catalog == nil {
		return errors.New("permission: catalog is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tx := db.WithContext(ctx)
	for _, cat := range catalog.categories {
		for _, perm := range cat.Permissions {
			record := models.Permission{
				Key:         perm.Key,
				Category:    perm.Category,
				Name:        perm.Name,
				Description: perm.Description,
				DependsOn:   datatypes.NewJSONSlice(nonNil(perm.DependsOn)),
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "permission_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"category", "name", "description", "depends_on", "updated_at"}),
			}).Create(&record).Error; err != nil {
				return fmt.Errorf("permission: sync %s: %w", perm.Key, err)
			}
		}
	}

	if templates == nil {
		return nil
	}

	for _, tpl := range templates.List() {
		role := models.Role{
			BaseModel:   models.BaseModel{ID: tpl.ID},
			Name:        tpl.Name,
			Description: tpl.Description,
			Color:       tpl.Color,
			Icon:        tpl.Icon,
			IsTemplate:  true,
			Permissions: datatypes.NewJSONSlice(nonNil(tpl.Grants.Strings())),
		}
		if err := tx.Where(models.Role{BaseModel: models.BaseModel{ID: role.ID}}).Attrs(role).FirstOrCreate(&models.Role{}).Error; err != nil {
			return fmt.Errorf("permission: seed role template %s: %w", tpl.ID, err)
		}
	}

	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
