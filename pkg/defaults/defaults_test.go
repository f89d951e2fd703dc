package defaults

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athena/pkg/clock"
	"athena/pkg/model"
	"athena/pkg/parser"
)

var fixedClock = clock.Fixed{At: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}

func mustParse(t *testing.T, src string) *model.Deployment {
	t.Helper()
	dep, perr := parser.Parse(src)
	require.Nil(t, perr)
	return dep
}

// TestEnrich_ScenarioF mirrors the postgres seed scenario: archetype,
// synthesized healthcheck, restart policy and labels.
func TestEnrich_ScenarioF(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE db
IMAGE-ID "postgres:15"
END SERVICE
`
	dep := mustParse(t, src)
	Enrich(dep, fixedClock)

	db, _ := dep.ServiceByName("db")
	e := db.Enrichment
	require.NotNil(t, e)

	assert.Equal(t, model.ArchetypeDatabase, e.Archetype)
	assert.Equal(t, model.RestartAlways, e.EffectiveRestart)
	require.NotNil(t, e.EffectiveHealthCheck)
	assert.Contains(t, e.EffectiveHealthCheck.Test[1], "pg_isready")
	assert.Equal(t, "10s", e.EffectiveHealthCheck.Interval)
	assert.Equal(t, "60s", e.EffectiveHealthCheck.StartPeriod)
	assert.Equal(t, "database", e.SynthesizedLabels["athena.type"])
	assert.Equal(t, "DEMO", e.SynthesizedLabels["athena.project"])
	assert.Equal(t, "2024-03-15", e.SynthesizedLabels["athena.generated"])
}

// TestEnrich_ExplicitDirectiveNotOverwritten is testable property 8.
func TestEnrich_ExplicitDirectiveNotOverwritten(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE db
IMAGE-ID "postgres:15"
RESTART-POLICY no
HEALTH-CHECK "custom-check.sh"
END SERVICE
`
	dep := mustParse(t, src)
	Enrich(dep, fixedClock)

	db, _ := dep.ServiceByName("db")
	e := db.Enrichment

	assert.Equal(t, model.RestartNo, e.EffectiveRestart)
	require.NotNil(t, e.EffectiveHealthCheck)
	assert.Equal(t, "custom-check.sh", e.EffectiveHealthCheck.Test[1])
	// Timing still follows the archetype table even with an explicit command.
	assert.Equal(t, "10s", e.EffectiveHealthCheck.Interval)
}

func TestEnrich_ResourceDefaultsSkippedWhenReplicasPresent(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID "nginx:alpine"
REPLICAS 3
END SERVICE
`
	dep := mustParse(t, src)
	Enrich(dep, fixedClock)

	web, _ := dep.ServiceByName("web")
	assert.Nil(t, web.Enrichment.ResourceDefaults)
}

func TestEnrich_BuildContextWhenNoImage(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE worker
BUILD-ARGS VERSION="1.0"
END SERVICE
`
	dep := mustParse(t, src)
	Enrich(dep, fixedClock)

	worker, _ := dep.ServiceByName("worker")
	e := worker.Enrichment
	require.True(t, e.UsesBuildContext)
	require.NotNil(t, e.Build)
	assert.Equal(t, ".", e.Build.Context)
	assert.Equal(t, "Dockerfile", e.Build.Dockerfile)
	assert.Equal(t, "1.0", e.Build.Args["VERSION"])
	assert.NotEmpty(t, e.BuildArgsNote)
}

func TestEnrich_ContainerNameKebabCase(t *testing.T) {
	src := `DEPLOYMENT-ID My_Demo
SERVICES SECTION
SERVICE web_app
IMAGE-ID "nginx:alpine"
END SERVICE
`
	dep := mustParse(t, src)
	Enrich(dep, fixedClock)

	web, _ := dep.ServiceByName("web_app")
	assert.Equal(t, "my-demo-web-app", web.Enrichment.ContainerName)
}
