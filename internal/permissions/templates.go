package permissions

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// RoleTemplate is a named, reusable bundle of grants.
type RoleTemplate struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Color       string `json:"color,omitempty" yaml:"color"`
	Icon        string `json:"icon,omitempty" yaml:"icon"`
	Grants      Grants `json:"permissions" yaml:"permissions"`
}

// TemplateDiagnostic reports template keys that the catalog does not know.
type TemplateDiagnostic struct {
	TemplateID  string   `json:"template_id"`
	UnknownKeys []string `json:"unknown_keys"`
}

// TemplateSet is the validated, read-only set of role templates.
type TemplateSet struct {
	catalog     *Catalog
	order       []string
	byID        map[string]RoleTemplate
	diagnostics []TemplateDiagnostic
}

// NewTemplateSet validates templates against catalog.
// Duplicate or blank ids and blank names are fatal; unknown permission keys are only reported.
func NewTemplateSet(catalog *Catalog, templates ...RoleTemplate) (*TemplateSet, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: catalog is required", ErrInvalidPermission)
	}

	set := &TemplateSet{
		catalog: catalog,
		byID:    make(map[string]RoleTemplate, len(templates)),
	}

	var errs error
	for _, tpl := range templates {
		tpl.ID = strings.TrimSpace(tpl.ID)
		tpl.Name = strings.TrimSpace(tpl.Name)
		switch {
		case tpl.ID == "":
			errs = multierr.Append(errs, fmt.Errorf("role template: id is required (name %q)", tpl.Name))
			continue
		case tpl.Name == "":
			errs = multierr.Append(errs, fmt.Errorf("role template %s: name is required", tpl.ID))
			continue
		}
		if _, dup := set.byID[tpl.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("role template %s: duplicate id", tpl.ID))
			continue
		}

		if !tpl.Grants.IsAll() {
			var unknown []string
			for _, key := range tpl.Grants.keys {
				if !catalog.Has(key) {
					unknown = append(unknown, key)
				}
			}
			if len(unknown) > 0 {
				set.diagnostics = append(set.diagnostics, TemplateDiagnostic{TemplateID: tpl.ID, UnknownKeys: unknown})
			}
		}

		set.byID[tpl.ID] = tpl
		set.order = append(set.order, tpl.ID)
	}

	if errs != nil {
		return nil, errs
	}
	return set, nil
}

// Get returns the template with the given id.
func (s *TemplateSet) Get(id string) (RoleTemplate, bool) {
	tpl, ok := s.byID[strings.TrimSpace(id)]
	return tpl, ok
}

// List returns templates in definition order.
func (s *TemplateSet) List() []RoleTemplate {
	out := make([]RoleTemplate, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Diagnostics lists templates referencing keys missing from the catalog.
func (s *TemplateSet) Diagnostics() []TemplateDiagnostic {
	return append([]TemplateDiagnostic(nil), s.diagnostics...)
}

// Resolve returns the effective grant set of the template.
func (s *TemplateSet) Resolve(id string) (EffectiveGrantSet, bool) {
	tpl, ok := s.Get(id)
	if !ok {
		return EffectiveGrantSet{}, false
	}
	return s.catalog.Resolve(tpl.Grants), true
}

// DefaultTemplates returns the built-in role templates.
func DefaultTemplates() []RoleTemplate {
	return []RoleTemplate{
		{
			ID:          "administrator",
			Name:        "Administrator",
			Description: "Full access to every workspace feature",
			Color:       "#DC2626",
			Icon:        "shield",
			Grants:      AllPermissions(),
		},
		{
			ID:          "manager",
			Name:        "Manager",
			Description: "Runs a team: manages tasks, deals and space membership",
			Color:       "#2563EB",
			Icon:        "briefcase",
			Grants: Keys(
				"contacts.create", "contacts.edit", "contacts.export",
				"companies.create", "companies.edit",
				"deals.create", "deals.edit",
				"spaces.create", "spaces.manage_members",
				"tasks.create", "tasks.assign", "tasks.delete",
				"messages.broadcast",
				"reports.export",
				"members.invite",
				"roles.view",
			),
		},
		{
			ID:          "member",
			Name:        "Member",
			Description: "Day-to-day contributor",
			Color:       "#16A34A",
			Icon:        "user",
			Grants: Keys(
				"contacts.create", "contacts.edit",
				"companies.view",
				"deals.view",
				"tasks.create", "tasks.edit_own",
				"messages.send",
				"reports.view",
			),
		},
		{
			ID:          "guest",
			Name:        "Guest",
			Description: "Read-only access to shared spaces",
			Color:       "#6B7280",
			Icon:        "eye",
			Grants:      Keys("tasks.view", "messages.view"),
		},
	}
}
