package apiconfig

import "strings"

// Path fragments that generated descriptors fall back to when the model
// invents a generic CRUD surface instead of recalling the real API.
var genericPathFragments = []string{
	"/items",
	"/item/{id}",
	"/generic",
	"/api/v1/resource",
}

// LooksReal is a coarse advisory check: false when the set has no
// endpoints or any path contains a known generic fragment. The fallback
// set's own paths are in that list. Callers warn on a false result but
// still use the config.
func LooksReal(c Config) bool {
	if len(c.Endpoints) == 0 {
		return false
	}
	for _, e := range c.Endpoints {
		for _, frag := range genericPathFragments {
			if strings.Contains(e.Path, frag) {
				return false
			}
		}
	}
	return true
}
