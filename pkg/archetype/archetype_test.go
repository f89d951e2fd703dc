package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"athena/pkg/model"
)

func TestClassify_Table(t *testing.T) {
	cases := []struct {
		image    string
		hasImage bool
		want     model.Archetype
	}{
		{"postgres:15", true, model.ArchetypeDatabase},
		{"mysql:8", true, model.ArchetypeDatabase},
		{"mongo:6", true, model.ArchetypeDatabase},
		{"redis:7", true, model.ArchetypeCache},
		{"memcached:1", true, model.ArchetypeCache},
		{"nginx:alpine", true, model.ArchetypeProxy},
		{"traefik:v2", true, model.ArchetypeProxy},
		{"node:20", true, model.ArchetypeWebapp},
		{"golang:1.21", true, model.ArchetypeWebapp},
		{"alpine:3", true, model.ArchetypeGeneric},
		{"", false, model.ArchetypeGeneric},
	}

	for _, c := range cases {
		got := Classify(c.image, c.hasImage)
		assert.Equal(t, c.want, got, "image=%q hasImage=%v", c.image, c.hasImage)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	first := Classify("postgres:15", true)
	second := Classify("postgres:15", true)
	assert.Equal(t, first, second)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, model.ArchetypeDatabase, Classify("POSTGRES:15", true))
}
