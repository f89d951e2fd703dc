package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"athena/pkg/model"
)

const minimalSource = `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID "nginx:alpine"
PORT-MAPPING 80 TO 80
END SERVICE
`

func TestParse_MinimalValidFile(t *testing.T) {
	dep, perr := Parse(minimalSource)
	require.Nil(t, perr)
	require.NotNil(t, dep)

	assert.Equal(t, "DEMO", dep.ID)
	require.Len(t, dep.Services, 1)

	web := dep.Services[0]
	assert.Equal(t, "web", web.Name)

	img, ok := web.Image()
	require.True(t, ok)
	assert.Equal(t, "nginx:alpine", img.Image)

	ports := web.Ports()
	require.Len(t, ports, 1)
	assert.Equal(t, 80, ports[0].HostPort)
	assert.Equal(t, 80, ports[0].ContainerPort)
}

func TestParse_ImageIdBareword(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID nginx:alpine
END SERVICE
`
	dep, perr := Parse(src)
	require.Nil(t, perr)

	web, ok := dep.ServiceByName("web")
	require.True(t, ok)
	img, ok := web.Image()
	require.True(t, ok)
	assert.Equal(t, "nginx:alpine", img.Image)
}

func TestParse_ImageIdBarewordWithNumericTag(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE db
IMAGE-ID postgres:15
END SERVICE
`
	dep, perr := Parse(src)
	require.Nil(t, perr)

	db, ok := dep.ServiceByName("db")
	require.True(t, ok)
	img, ok := db.Image()
	require.True(t, ok)
	assert.Equal(t, "postgres:15", img.Image)
}

func TestParse_MissingEndService(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
IMAGE-ID "nginx:alpine"
`
	_, perr := Parse(src)
	require.NotNil(t, perr)
	assert.Contains(t, perr.Message, "END SERVICE")
	// The caret lands on the block's last non-empty line (the IMAGE-ID
	// directive), not on the "SERVICE web" line that opened the block.
	assert.Equal(t, 4, perr.Primary.StartLine)
}

func TestParse_MissingDeploymentID(t *testing.T) {
	src := `SERVICES SECTION
SERVICE web
END SERVICE
`
	_, perr := Parse(src)
	require.NotNil(t, perr)
	assert.Contains(t, perr.Message, "DEPLOYMENT-ID")
}

func TestParse_MissingServicesSection(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
`
	_, perr := Parse(src)
	require.NotNil(t, perr)
	assert.Contains(t, perr.Message, "SERVICES SECTION")
}

func TestParse_InvalidPortMapping(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE web
PORT-MAPPING eighty TO 80
END SERVICE
`
	_, perr := Parse(src)
	require.NotNil(t, perr)
	assert.Contains(t, perr.Message, "port")
}

func TestParse_DependsOnAndEnv(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE db
IMAGE-ID "postgres:15"
END SERVICE
SERVICE web
IMAGE-ID "nginx:alpine"
DEPENDS-ON db
ENV-VARIABLE {{DB_HOST}}
ENV-VARIABLE "MODE=production"
END SERVICE
`
	dep, perr := Parse(src)
	require.Nil(t, perr)

	web, ok := dep.ServiceByName("web")
	require.True(t, ok)

	deps := web.DependsOn()
	require.Len(t, deps, 1)
	assert.Equal(t, "db", deps[0].ServiceName)

	envs := web.All(model.KindEnvVariable)
	require.Len(t, envs, 2)
	tmpl := envs[0].(*model.EnvVariableDirective)
	assert.False(t, tmpl.IsLiteral)
	assert.Equal(t, "DB_HOST", tmpl.Template)

	lit := envs[1].(*model.EnvVariableDirective)
	assert.True(t, lit.IsLiteral)
	assert.Equal(t, "MODE=production", lit.Literal)
}

func TestParse_BuildArgsAndUpdateConfig(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
SERVICES SECTION
SERVICE worker
BUILD-ARGS VERSION="1.2.3" ENV="prod"
UPDATE-CONFIG PARALLELISM 2 DELAY "10s" FAILURE-ACTION rollback MAX-FAILURE-RATIO 0.3
END SERVICE
`
	dep, perr := Parse(src)
	require.Nil(t, perr)

	worker, ok := dep.ServiceByName("worker")
	require.True(t, ok)

	ba, ok := worker.First(model.KindBuildArgs)
	require.True(t, ok)
	args := ba.(*model.BuildArgsDirective)
	assert.Equal(t, []string{"VERSION", "ENV"}, args.Keys)
	assert.Equal(t, "1.2.3", args.Values["VERSION"])

	uc, ok := worker.First(model.KindUpdateConfig)
	require.True(t, ok)
	u := uc.(*model.UpdateConfigDirective)
	require.NotNil(t, u.Parallelism)
	assert.Equal(t, 2, *u.Parallelism)
	require.NotNil(t, u.FailureAction)
	assert.Equal(t, model.FailureActionRollback, *u.FailureAction)
	require.NotNil(t, u.MaxFailureRatio)
	assert.InDelta(t, 0.3, *u.MaxFailureRatio, 0.0001)
}

func TestParse_EnvironmentSectionWithVolumeDefinition(t *testing.T) {
	src := `DEPLOYMENT-ID DEMO
ENVIRONMENT SECTION
NETWORK-NAME custom_net
NETWORK-OPTIONS DRIVER overlay ATTACHABLE true ENCRYPTED true
VOLUME-DEFINITION dbdata
SERVICES SECTION
SERVICE db
IMAGE-ID "postgres:15"
END SERVICE
`
	dep, perr := Parse(src)
	require.Nil(t, perr)
	require.NotNil(t, dep.Environment)

	require.NotNil(t, dep.Environment.NetworkName)
	assert.Equal(t, "custom_net", *dep.Environment.NetworkName)

	require.NotNil(t, dep.Environment.NetworkOptions)
	assert.Equal(t, model.NetworkOverlay, dep.Environment.NetworkOptions.Driver)
	assert.True(t, dep.Environment.NetworkOptions.Attachable)
	assert.True(t, dep.Environment.NetworkOptions.Encrypted)

	require.Len(t, dep.Environment.Volumes, 1)
	assert.Equal(t, "dbdata", dep.Environment.Volumes[0].Name)
}
