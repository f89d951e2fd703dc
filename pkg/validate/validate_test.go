package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athena/pkg/diag"
	"athena/pkg/model"
	"athena/pkg/parser"
)

func mustParse(t *testing.T, src string) *model.Deployment {
	t.Helper()
	dep, perr := parser.Parse(src)
	require.Nil(t, perr, "unexpected parse error: %v", perr)
	return dep
}

func TestValidate_UniqueNames_Duplicate(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID "nginx:alpine"
END SERVICE
SERVICE web
IMAGE-ID "nginx:alpine"
END SERVICE
`
	dep := mustParse(t, src)
	var coll diag.Collector
	Validate(dep, &coll)

	require.True(t, coll.HasErrors())
	assert.Equal(t, diag.KindDuplicateError, coll.Errors()[0].Kind)
}

func TestValidate_PortConflict_ScenarioB(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE svc1
IMAGE-ID "nginx:alpine"
PORT-MAPPING 8080 TO 80
END SERVICE
SERVICE svc2
IMAGE-ID "nginx:alpine"
PORT-MAPPING 8080 TO 81
END SERVICE
`
	dep := mustParse(t, src)
	var coll diag.Collector
	Validate(dep, &coll)

	require.True(t, coll.HasErrors())
	errs := coll.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diag.KindPortConflict, errs[0].Kind)
	assert.ElementsMatch(t, []string{"svc1", "svc2"}, errs[0].AffectedServices)
	assert.Contains(t, errs[0].Suggestion, "8081")
	assert.Contains(t, errs[0].Suggestion, "8082")
}

func TestValidate_PortConflict_Completeness(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE svc1
IMAGE-ID "nginx:alpine"
PORT-MAPPING 8080 TO 80
END SERVICE
SERVICE svc2
IMAGE-ID "nginx:alpine"
PORT-MAPPING 9090 TO 80
END SERVICE
`
	dep := mustParse(t, src)
	var coll diag.Collector
	Validate(dep, &coll)

	for _, d := range coll.All() {
		assert.NotEqual(t, diag.KindPortConflict, d.Kind)
	}
}

func TestValidate_DependsOn_ScenarioD(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE backend
IMAGE-ID "node:20"
END SERVICE
SERVICE frontend
IMAGE-ID "nginx:alpine"
DEPENDS-ON backend2
END SERVICE
`
	dep := mustParse(t, src)
	var coll diag.Collector
	Validate(dep, &coll)

	require.True(t, coll.HasErrors())
	errs := coll.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diag.KindReferenceError, errs[0].Kind)
	assert.Contains(t, errs[0].Suggestion, "backend")

	for _, d := range coll.All() {
		assert.NotEqual(t, diag.KindInternal, d.Kind, "an unresolved DependsOn target must never also trip cycle detection's internal guard")
	}
}

func TestValidate_Cycle_ScenarioE(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE a
DEPENDS-ON b
END SERVICE
SERVICE b
DEPENDS-ON c
END SERVICE
SERVICE c
DEPENDS-ON a
END SERVICE
`
	dep := mustParse(t, src)
	var coll diag.Collector
	Validate(dep, &coll)

	require.True(t, coll.HasErrors())
	cycles := 0
	for _, d := range coll.Errors() {
		if d.Kind == diag.KindCycleError {
			cycles++
		}
	}
	assert.Equal(t, 1, cycles)
}

func TestValidate_AcyclicGraphCompilesCleanly(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE db
IMAGE-ID "postgres:15"
END SERVICE
SERVICE web
IMAGE-ID "nginx:alpine"
DEPENDS-ON db
END SERVICE
`
	dep := mustParse(t, src)
	var coll diag.Collector
	Validate(dep, &coll)

	for _, d := range coll.All() {
		assert.NotEqual(t, diag.KindCycleError, d.Kind)
	}
}

func TestValidate_OptionValues_NetworkEncryptedRequiresOverlay(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
ENVIRONMENT SECTION
NETWORK-OPTIONS DRIVER bridge ENCRYPTED true
SERVICES SECTION
SERVICE web
IMAGE-ID "nginx:alpine"
END SERVICE
`
	dep := mustParse(t, src)
	var coll diag.Collector
	Validate(dep, &coll)

	require.True(t, coll.HasErrors())
	assert.Equal(t, diag.KindOptionError, coll.Errors()[0].Kind)
}

func TestValidate_OptionValues_ReplicasOverCap(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID "nginx:alpine"
REPLICAS 20000
END SERVICE
`
	dep := mustParse(t, src)
	var coll diag.Collector
	Validate(dep, &coll)

	require.True(t, coll.HasErrors())
	assert.Equal(t, diag.KindOptionError, coll.Errors()[0].Kind)
}

func TestValidate_OptionValues_HostPortZero(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID "nginx:alpine"
PORT-MAPPING 0 TO 80
END SERVICE
`
	dep := mustParse(t, src)
	var coll diag.Collector
	Validate(dep, &coll)

	require.True(t, coll.HasErrors())
	assert.Equal(t, diag.KindShapeError, coll.Errors()[0].Kind)
}

func TestValidate_OptionValues_NonPositiveCPU(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID "nginx:alpine"
RESOURCE-LIMITS CPU "0" MEMORY "512M"
END SERVICE
`
	dep := mustParse(t, src)
	var coll diag.Collector
	Validate(dep, &coll)

	require.True(t, coll.HasErrors())
	assert.Equal(t, diag.KindOptionError, coll.Errors()[0].Kind)
}

func TestValidate_OptionValues_InvalidMemoryFormat(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID "nginx:alpine"
RESOURCE-LIMITS CPU "0.5" MEMORY "not-a-size"
END SERVICE
`
	dep := mustParse(t, src)
	var coll diag.Collector
	Validate(dep, &coll)

	require.True(t, coll.HasErrors())
	assert.Equal(t, diag.KindOptionError, coll.Errors()[0].Kind)
}
