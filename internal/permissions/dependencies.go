package permissions

import (
	"fmt"
	"sort"
	"strings"
)

// detectCycles walks the dependency graph depth-first and reports the first cycle found
// from each unvisited root. All edges must already resolve to known permissions.
func detectCycles(perms map[string]*Permission) error {
	visited := make(map[string]bool, len(perms))
	recStack := make(map[string]bool, len(perms))
	var path []string

	var walk func(string) error
	walk = func(current string) error {
		if recStack[current] {
			start := 0
			for i, id := range path {
				if id == current {
					start = i
					break
				}
			}
			cycle := append(append([]string(nil), path[start:]...), current)
			return fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(cycle, " -> "))
		}
		if visited[current] {
			return nil
		}

		recStack[current] = true
		path = append(path, current)
		for _, dep := range perms[current].DependsOn {
			if err := walk(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		recStack[current] = false
		visited[current] = true
		return nil
	}

	for _, key := range sortedKeys(perms) {
		if err := walk(key); err != nil {
			return err
		}
	}
	return nil
}

// Prerequisites returns the sorted transitive prerequisites of key, excluding key itself.
// Unknown keys have no prerequisites.
func (c *Catalog) Prerequisites(key string) []string {
	closure := make(map[string]struct{})
	c.expand(strings.TrimSpace(key), closure)
	delete(closure, strings.TrimSpace(key))

	out := make([]string, 0, len(closure))
	for id := range closure {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// expand adds key and everything reachable through DependsOn edges to into.
// The graph is acyclic, and visited keys are skipped, so the walk terminates.
func (c *Catalog) expand(key string, into map[string]struct{}) {
	queue := []string{key}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if _, seen := into[current]; seen {
			continue
		}
		into[current] = struct{}{}

		perm, ok := c.perms[current]
		if !ok {
			continue
		}
		for _, dep := range perm.DependsOn {
			if _, seen := into[dep]; !seen {
				queue = append(queue, dep)
			}
		}
	}
}
