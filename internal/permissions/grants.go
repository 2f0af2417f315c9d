package permissions

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/charlesng35/orgauthz/pkg/metrics"
)

// Wildcard is the serialised form of AllPermissions.
const Wildcard = "*"

// Grants is the permission list of a role: either every catalog permission or an explicit set.
// The zero value grants nothing.
type Grants struct {
	all  bool
	keys []string
}

// AllPermissions grants the whole catalog.
func AllPermissions() Grants {
	return Grants{all: true}
}

// Keys grants an explicit set of permission keys. Blank and duplicate keys are dropped.
func Keys(keys ...string) Grants {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return Grants{keys: out}
}

// ParseGrants converts a stored permission list into Grants.
// A list containing the wildcard anywhere becomes AllPermissions.
func ParseGrants(values []string) Grants {
	for _, value := range values {
		if strings.TrimSpace(value) == Wildcard {
			return AllPermissions()
		}
	}
	return Keys(values...)
}

// IsAll reports whether g is the AllPermissions case.
func (g Grants) IsAll() bool {
	return g.all
}

// Keys returns the explicit keys. It is empty for AllPermissions.
func (g Grants) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Strings renders g in its stored form.
func (g Grants) Strings() []string {
	if g.all {
		return []string{Wildcard}
	}
	return g.Keys()
}

// MarshalJSON encodes g in its stored form.
func (g Grants) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Strings())
}

// UnmarshalJSON decodes a stored permission list.
func (g *Grants) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*g = ParseGrants(values)
	return nil
}

// UnmarshalYAML decodes a YAML sequence of keys.
func (g *Grants) UnmarshalYAML(unmarshal func(any) error) error {
	var values []string
	if err := unmarshal(&values); err != nil {
		return err
	}
	*g = ParseGrants(values)
	return nil
}

// EffectiveGrantSet is the dependency closure of a grant set.
type EffectiveGrantSet struct {
	effective map[string]struct{}
	unknown   map[string]struct{}
}

// NewGrantSet builds a set from keys as given, without closure.
// It is meant for hand-assembled sets that are later checked with HasAllPrerequisites.
func NewGrantSet(keys ...string) EffectiveGrantSet {
	set := EffectiveGrantSet{effective: make(map[string]struct{}, len(keys))}
	for _, key := range keys {
		if key = strings.TrimSpace(key); key != "" {
			set.effective[key] = struct{}{}
		}
	}
	return set
}

// Has reports whether key is in the effective set.
func (s EffectiveGrantSet) Has(key string) bool {
	_, ok := s.effective[key]
	return ok
}

// Effective returns the sorted effective keys, unknown keys included.
func (s EffectiveGrantSet) Effective() []string {
	return sortedKeys(s.effective)
}

// Unknown returns the sorted keys that are not part of the catalog.
func (s EffectiveGrantSet) Unknown() []string {
	return sortedKeys(s.unknown)
}

// Len returns the size of the effective set.
func (s EffectiveGrantSet) Len() int {
	return len(s.effective)
}

// MarshalJSON renders the set for API consumers.
func (s EffectiveGrantSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Effective   []string `json:"effective"`
		UnknownKeys []string `json:"unknown_keys"`
	}{s.Effective(), s.Unknown()})
}

// IsGranted is the gating primitive: plain set membership.
func IsGranted(set EffectiveGrantSet, key string) bool {
	return set.Has(key)
}

// Resolve computes the effective closure of grants.
// AllPermissions yields the full catalog. Otherwise each key's prerequisites are followed
// transitively. Unknown keys stay in the result and are also listed in Unknown.
func (c *Catalog) Resolve(grants Grants) EffectiveGrantSet {
	set := EffectiveGrantSet{
		effective: make(map[string]struct{}, len(c.keys)),
		unknown:   make(map[string]struct{}),
	}

	if grants.IsAll() {
		metrics.GrantResolutions.WithLabelValues("wildcard").Inc()
		for _, key := range c.keys {
			set.effective[key] = struct{}{}
		}
		return set
	}

	metrics.GrantResolutions.WithLabelValues("explicit").Inc()
	for _, key := range grants.keys {
		if !c.Has(key) {
			set.unknown[key] = struct{}{}
		}
		c.expand(key, set.effective)
	}
	if n := len(set.unknown); n > 0 {
		metrics.UnknownPermissionKeys.Add(float64(n))
	}
	return set
}

// ResolveKeys parses a stored permission list and resolves it.
func (c *Catalog) ResolveKeys(keys []string) EffectiveGrantSet {
	return c.Resolve(ParseGrants(keys))
}

// HasAllPrerequisites reports whether key and its whole prerequisite chain are present in set.
// It is meant for sets that were not produced by Resolve.
func (c *Catalog) HasAllPrerequisites(set EffectiveGrantSet, key string) bool {
	key = strings.TrimSpace(key)
	if key == "" || !set.Has(key) {
		return false
	}
	return len(c.MissingPrerequisites(set, key)) == 0
}

// MissingPrerequisites lists the prerequisites of key absent from set, sorted.
func (c *Catalog) MissingPrerequisites(set EffectiveGrantSet, key string) []string {
	var missing []string
	for _, dep := range c.Prerequisites(key) {
		if !set.Has(dep) {
			missing = append(missing, dep)
		}
	}
	return missing
}
