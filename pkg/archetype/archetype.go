// Package archetype classifies a service's functional category from its
// Image directive. A pure function with no validate/defaults dependency, so
// both of those packages can depend on it without a cycle.
package archetype

import (
	"strings"

	"athena/pkg/model"
)

type rule struct {
	archetype  model.Archetype
	substrings []string
}

// table drives Classify: case-insensitive substring match against the part
// of the image name before ":", first-match-wins.
var table = []rule{
	{model.ArchetypeDatabase, []string{"postgres", "mysql", "mongodb", "mongo", "mariadb"}},
	{model.ArchetypeCache, []string{"redis", "memcached"}},
	{model.ArchetypeProxy, []string{"nginx", "apache", "traefik", "haproxy"}},
	{model.ArchetypeWebapp, []string{"node", "python", "php", "ruby", "java", "golang", "go", "openjdk"}},
}

// Classify returns the functional category for image. An absent image
// (hasImage false, e.g. a Dockerfile build) is always Generic.
func Classify(image string, hasImage bool) model.Archetype {
	if !hasImage {
		return model.ArchetypeGeneric
	}
	name := image
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)

	for _, r := range table {
		for _, sub := range r.substrings {
			if strings.Contains(name, sub) {
				return r.archetype
			}
		}
	}
	return model.ArchetypeGeneric
}
