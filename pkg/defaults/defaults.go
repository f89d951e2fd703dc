// Package defaults is Athena's enrichment engine: it consumes a
// validated model.Deployment plus each service's archetype and produces the
// model.Enrichment record that pkg/compose emits from. Every rule below is
// literal Go data, not scattered conditionals, mirroring the rule-table
// style of the parser's error-message table.
package defaults

import (
	"fmt"
	"strings"

	"athena/pkg/archetype"
	"athena/pkg/clock"
	"athena/pkg/model"
)

type restartDefault struct {
	archetype model.Archetype
	policy    model.RestartPolicyValue
}

var restartDefaults = []restartDefault{
	{model.ArchetypeDatabase, model.RestartAlways},
	{model.ArchetypeCache, model.RestartAlways},
	{model.ArchetypeProxy, model.RestartAlways},
	{model.ArchetypeWebapp, model.RestartUnlessStopped},
	{model.ArchetypeGeneric, model.RestartUnlessStopped},
}

func restartFor(a model.Archetype) model.RestartPolicyValue {
	for _, r := range restartDefaults {
		if r.archetype == a {
			return r.policy
		}
	}
	return model.RestartUnlessStopped
}

type healthcheckDefault struct {
	command     string
	interval    string
	timeout     string
	retries     int
	startPeriod string
}

var healthcheckDefaults = map[model.Archetype]healthcheckDefault{
	model.ArchetypeDatabase: {
		command:     `pg_isready || mysqladmin ping || mongo --eval "db.adminCommand('ping')"`,
		interval:    "10s", timeout: "5s", retries: 5, startPeriod: "60s",
	},
	model.ArchetypeCache: {
		command:     "redis-cli ping || echo PONG",
		interval:    "15s", timeout: "3s", retries: 3, startPeriod: "20s",
	},
	model.ArchetypeProxy: {
		command:     "wget -qO- http://localhost/ || exit 1",
		interval:    "20s", timeout: "5s", retries: 3, startPeriod: "10s",
	},
	model.ArchetypeWebapp: {
		command:     "curl -f http://localhost/health || exit 1",
		interval:    "30s", timeout: "10s", retries: 3, startPeriod: "40s",
	},
	model.ArchetypeGeneric: {
		command:     "curl -f http://localhost/health || exit 1",
		interval:    "30s", timeout: "10s", retries: 3, startPeriod: "40s",
	},
}

type resourceDefault struct {
	cpus   string
	memory string
}

var resourceDefaults = map[model.Archetype]*resourceDefault{
	model.ArchetypeDatabase: {"1.0", "1024M"},
	model.ArchetypeCache:    {"0.5", "512M"},
	model.ArchetypeWebapp:   {"0.5", "512M"},
	model.ArchetypeProxy:    {"0.2", "256M"},
	model.ArchetypeGeneric:  nil,
}

// Enrich runs the defaults engine over every service in d, in declaration
// order, attaching the produced model.Enrichment to each Service in place.
func Enrich(d *model.Deployment, clk clock.Clock) {
	networkName := d.NetworkName()
	for _, s := range d.Services {
		enrichService(d, s, networkName, clk)
	}
}

func enrichService(d *model.Deployment, s *model.Service, networkName string, clk clock.Clock) {
	img, hasImage := s.Image()
	imageStr := ""
	if hasImage {
		imageStr = img.Image
	}
	a := archetype.Classify(imageStr, hasImage)

	e := &model.Enrichment{
		Archetype:          a,
		NetworkMemberships: []string{networkName},
		ContainerName:      containerName(d.ID, s.Name),
		PullPolicy:         "missing",
	}

	if rp, ok := s.First(model.KindRestartPolicy); ok {
		e.EffectiveRestart = rp.(*model.RestartPolicyDirective).Policy
	} else {
		e.EffectiveRestart = restartFor(a)
	}

	e.EffectiveHealthCheck = healthCheckFor(s, a)

	_, hasResourceLimits := s.First(model.KindResourceLimits)
	_, hasReplicas := s.First(model.KindReplicas)
	if rl, ok := s.First(model.KindResourceLimits); ok {
		lim := rl.(*model.ResourceLimitsDirective)
		e.ResourceDefaults = &model.ResourceSpec{CPUs: lim.CPUs, Memory: lim.Memory}
	} else if !hasResourceLimits && !hasReplicas {
		if def := resourceDefaults[a]; def != nil {
			e.ResourceDefaults = &model.ResourceSpec{CPUs: def.cpus, Memory: def.memory}
		}
	}

	if !hasImage {
		e.UsesBuildContext = true
		build := &model.BuildSpec{Context: ".", Dockerfile: "Dockerfile"}
		if ba, ok := s.First(model.KindBuildArgs); ok {
			args := ba.(*model.BuildArgsDirective)
			build.Args = args.Values
			build.ArgKeys = args.Keys
		}
		e.Build = build

		if _, hasBuildArgs := s.First(model.KindBuildArgs); hasBuildArgs {
			e.BuildArgsNote = fmt.Sprintf("service %q has no IMAGE-ID; BUILD-ARGS apply to its Dockerfile build context", s.Name)
		}
	}

	e.SynthesizedLabels = map[string]string{
		"athena.project":   d.ID,
		"athena.service":   s.Name,
		"athena.type":      string(a),
		"athena.generated": clk.Now().Format("2006-01-02"),
	}

	s.Enrichment = e
}

func healthCheckFor(s *model.Service, a model.Archetype) *model.HealthCheckSpec {
	def := healthcheckDefaults[a]
	if hc, ok := s.First(model.KindHealthCheck); ok {
		cmd := hc.(*model.HealthCheckDirective).Command
		return &model.HealthCheckSpec{
			Test:        []string{"CMD-SHELL", cmd},
			Interval:    def.interval,
			Timeout:     def.timeout,
			Retries:     def.retries,
			StartPeriod: def.startPeriod,
		}
	}
	return &model.HealthCheckSpec{
		Test:        []string{"CMD-SHELL", def.command},
		Interval:    def.interval,
		Timeout:     def.timeout,
		Retries:     def.retries,
		StartPeriod: def.startPeriod,
	}
}

// containerName kebab-cases both halves: lowercase, "_" replaced with "-".
func containerName(deploymentID, serviceName string) string {
	return kebab(deploymentID) + "-" + kebab(serviceName)
}

func kebab(s string) string {
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "_", "-")
}
