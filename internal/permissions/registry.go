package permissions

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// Permission describes a single capability in the catalog.
type Permission struct {
	Key         string   `json:"key" yaml:"key"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Category    string   `json:"category" yaml:"-"`
	DependsOn   []string `json:"depends_on,omitempty" yaml:"depends_on"`
}

// Category groups permissions for presentation. It carries no authorization semantics.
type Category struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Permissions []Permission `json:"permissions" yaml:"permissions"`
}

// Catalog is the immutable permission universe with its dependency graph.
// A Catalog is safe for concurrent use once constructed.
type Catalog struct {
	categories []Category
	perms      map[string]*Permission
	keys       []string
}

var (
	// ErrInvalidPermission reports a malformed permission definition.
	ErrInvalidPermission = errors.New("permission: invalid definition")
	// ErrDuplicatePermission reports a key registered more than once.
	ErrDuplicatePermission = errors.New("permission: already registered")
	// ErrUnknownPermission indicates a reference to a key missing from the catalog.
	ErrUnknownPermission = errors.New("permission: unknown permission")
	// ErrCircularDependency signals that the dependency graph contains a cycle.
	ErrCircularDependency = errors.New("permission: circular dependency detected")
)

// NewCatalog validates the categories and freezes them into a Catalog.
// Every configuration problem found is reported in the returned error.
func NewCatalog(categories ...Category) (*Catalog, error) {
	c := &Catalog{
		perms: make(map[string]*Permission),
	}

	var errs error
	seenCategories := make(map[string]struct{}, len(categories))

	for _, cat := range categories {
		id := strings.TrimSpace(cat.ID)
		if id == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: category id is required", ErrInvalidPermission))
			continue
		}
		if _, dup := seenCategories[id]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%w: duplicate category %s", ErrInvalidPermission, id))
			continue
		}
		seenCategories[id] = struct{}{}

		frozen := Category{
			ID:          id,
			Name:        strings.TrimSpace(cat.Name),
			Permissions: make([]Permission, 0, len(cat.Permissions)),
		}
		if frozen.Name == "" {
			frozen.Name = id
		}

		for _, perm := range cat.Permissions {
			def, err := normalisePermission(id, perm)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			if existing, dup := c.perms[def.Key]; dup {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s (categories %s and %s)", ErrDuplicatePermission, def.Key, existing.Category, id))
				continue
			}
			frozen.Permissions = append(frozen.Permissions, def)
			c.perms[def.Key] = clonePermission(&def)
		}

		c.categories = append(c.categories, frozen)
	}

	for _, key := range sortedKeys(c.perms) {
		for _, dep := range c.perms[key].DependsOn {
			if _, ok := c.perms[dep]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s depends on %s", ErrUnknownPermission, key, dep))
			}
		}
	}

	// Cycle detection only makes sense over a graph whose edges all resolve.
	if errs == nil {
		errs = detectCycles(c.perms)
	}
	if errs != nil {
		return nil, errs
	}

	c.keys = sortedKeys(c.perms)
	return c, nil
}

// MustCatalog is like NewCatalog but panics on configuration errors.
func MustCatalog(categories ...Category) *Catalog {
	c, err := NewCatalog(categories...)
	if err != nil {
		panic(err)
	}
	return c
}

// Categories returns a copy of the catalog categories in definition order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{ID: cat.ID, Name: cat.Name, Permissions: make([]Permission, len(cat.Permissions))}
		for j := range cat.Permissions {
			out[i].Permissions[j] = *clonePermission(&cat.Permissions[j])
		}
	}
	return out
}

// Get returns a copy of the permission definition when present.
func (c *Catalog) Get(key string) (Permission, bool) {
	perm, ok := c.perms[strings.TrimSpace(key)]
	if !ok {
		return Permission{}, false
	}
	return *clonePermission(perm), true
}

// Has reports whether key is part of the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.perms[strings.TrimSpace(key)]
	return ok
}

// Keys returns every catalog key in sorted order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Len returns the number of permissions in the catalog.
func (c *Catalog) Len() int {
	return len(c.keys)
}

func normalisePermission(category string, perm Permission) (Permission, error) {
	key := strings.TrimSpace(perm.Key)
	if key == "" {
		return Permission{}, fmt.Errorf("%w: key is required in category %s", ErrInvalidPermission, category)
	}
	action, ok := strings.CutPrefix(key, category+".")
	if !ok || action == "" {
		return Permission{}, fmt.Errorf("%w: %s must have the form %s.<action>", ErrInvalidPermission, key, category)
	}

	depends, err := normaliseIDs(perm.DependsOn, key)
	if err != nil {
		return Permission{}, err
	}

	def := Permission{
		Key:         key,
		Name:        strings.TrimSpace(perm.Name),
		Description: strings.TrimSpace(perm.Description),
		Category:    category,
		DependsOn:   depends,
	}
	if def.Name == "" {
		def.Name = key
	}
	return def, nil
}

func clonePermission(perm *Permission) *Permission {
	if perm == nil {
		return nil
	}

	cp := *perm
	if len(perm.DependsOn) > 0 {
		cp.DependsOn = append([]string(nil), perm.DependsOn...)
	}
	return &cp
}

func normaliseIDs(values []string, self string) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(values))
	var result []string

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if value == self {
			return nil, fmt.Errorf("%w: %s cannot depend on itself", ErrCircularDependency, self)
		}
		if _, exists := seen[value]; exists {
			continue
		}

		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
