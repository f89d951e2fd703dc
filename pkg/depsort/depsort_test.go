package depsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athena/pkg/diag"
	"athena/pkg/parser"
)

func TestSort_TopologicalOrder(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID "nginx:alpine"
DEPENDS-ON db
END SERVICE
SERVICE db
IMAGE-ID "postgres:15"
END SERVICE
`
	dep, perr := parser.Parse(src)
	require.Nil(t, perr)

	var coll diag.Collector
	sorted := Sort(dep.Services, &coll)
	require.False(t, coll.HasErrors())
	require.Len(t, sorted, 2)

	positions := map[string]int{}
	for i, s := range sorted {
		positions[s.Name] = i
	}
	assert.Less(t, positions["db"], positions["web"], "db must precede web since web depends on db")
}

func TestSort_TieBreakBySourceLine(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE second
IMAGE-ID "nginx:alpine"
END SERVICE
SERVICE first
IMAGE-ID "nginx:alpine"
END SERVICE
`
	dep, perr := parser.Parse(src)
	require.Nil(t, perr)

	var coll diag.Collector
	sorted := Sort(dep.Services, &coll)
	require.Len(t, sorted, 2)
	assert.Equal(t, "second", sorted[0].Name)
	assert.Equal(t, "first", sorted[1].Name)
}

func TestSort_StableAcrossRuns(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE a
IMAGE-ID "nginx:alpine"
END SERVICE
SERVICE b
IMAGE-ID "nginx:alpine"
DEPENDS-ON a
END SERVICE
SERVICE c
IMAGE-ID "nginx:alpine"
DEPENDS-ON a
END SERVICE
`
	dep, perr := parser.Parse(src)
	require.Nil(t, perr)

	var coll1, coll2 diag.Collector
	first := Sort(dep.Services, &coll1)
	second := Sort(dep.Services, &coll2)

	require.Len(t, first, len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
	}
}
