package permissions

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the on-disk form of a catalog and its role templates.
//
//	categories:
//	  - id: tasks
//	    name: Tasks
//	    permissions:
//	      - key: tasks.view
//	        name: View tasks
//	      - key: tasks.edit_any
//	        depends_on: [tasks.view]
//	templates:
//	  - id: administrator
//	    name: Administrator
//	    permissions: ["*"]
type Definition struct {
	Categories []Category     `yaml:"categories"`
	Templates  []RoleTemplate `yaml:"templates"`
}

// LoadDefinition decodes a YAML definition and builds the catalog and template set.
// A definition without templates gets DefaultTemplates.
func LoadDefinition(r io.Reader) (*Catalog, *TemplateSet, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, nil, fmt.Errorf("permission definition: decode: %w", err)
	}
	if len(def.Categories) == 0 {
		return nil, nil, fmt.Errorf("%w: definition has no categories", ErrInvalidPermission)
	}

	catalog, err := NewCatalog(def.Categories...)
	if err != nil {
		return nil, nil, fmt.Errorf("permission definition: catalog: %w", err)
	}

	templates := def.Templates
	if len(templates) == 0 {
		templates = DefaultTemplates()
	}
	set, err := NewTemplateSet(catalog, templates...)
	if err != nil {
		return nil, nil, fmt.Errorf("permission definition: templates: %w", err)
	}
	return catalog, set, nil
}

// LoadDefinitionFile reads a YAML definition from path.
func LoadDefinitionFile(path string) (*Catalog, *TemplateSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("permission definition: open: %w", err)
	}
	defer f.Close()
	return LoadDefinition(f)
}

// Builtin returns the default catalog with the default templates.
func Builtin() (*Catalog, *TemplateSet, error) {
	catalog := Default()
	set, err := NewTemplateSet(catalog, DefaultTemplates()...)
	if err != nil {
		return nil, nil, err
	}
	return catalog, set, nil
}
