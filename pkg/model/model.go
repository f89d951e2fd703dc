// Package model holds the typed entities the parser builds and the rest of
// the pipeline enriches: Deployment, Service, Directive and the Enrichment
// record the defaults engine attaches. Cross-references between services
// are always by name, never by direct pointer — see ServiceByName.
package model

import (
	"fmt"
	"strings"
)

type NetworkDriver string

const (
	NetworkBridge  NetworkDriver = "bridge"
	NetworkOverlay NetworkDriver = "overlay"
	NetworkHost    NetworkDriver = "host"
)

type NetworkOptions struct {
	Driver     NetworkDriver
	Attachable bool
	Encrypted  bool
}

// VolumeDefinition declares a named volume in the environment section. It
// is what lets the emitter's reserved top-level `volumes:` key ever be
// non-empty.
type VolumeDefinition struct {
	SpanVal Span
	Name    string
	Options []string
}

func (v VolumeDefinition) Span() Span { return v.SpanVal }

type EnvironmentBlock struct {
	SpanVal        Span
	NetworkName    *string
	NetworkOptions *NetworkOptions
	Volumes        []VolumeDefinition
}

func (e *EnvironmentBlock) Span() Span { return e.SpanVal }

type Deployment struct {
	SpanVal     Span
	ID          string
	Version     *string
	Environment *EnvironmentBlock
	Services    []*Service

	byName map[string]*Service
}

func (d *Deployment) Span() Span { return d.SpanVal }

// Index builds the name -> service lookup used for every cross-reference in
// the pipeline. Must be called once after parsing, before validation.
func (d *Deployment) Index() {
	d.byName = make(map[string]*Service, len(d.Services))
	for _, s := range d.Services {
		if _, exists := d.byName[s.Name]; !exists {
			d.byName[s.Name] = s
		}
	}
}

// ServiceByName resolves a DependsOn-style reference. Duplicate names are a
// validation error reported separately; lookup always returns the first
// declared service with that name.
func (d *Deployment) ServiceByName(name string) (*Service, bool) {
	s, ok := d.byName[name]
	return s, ok
}

// NetworkName returns the deployment's single network name: the
// environment's explicit name if set, else "<id-lowercased>_network".
func (d *Deployment) NetworkName() string {
	if d.Environment != nil && d.Environment.NetworkName != nil {
		return *d.Environment.NetworkName
	}
	return fmt.Sprintf("%s_network", strings.ToLower(d.ID))
}

type Service struct {
	SpanVal    Span
	Name       string
	Directives []Directive
	Enrichment *Enrichment
}

func (s *Service) Span() Span { return s.SpanVal }

// Image returns the service's IMAGE-ID directive, if any.
func (s *Service) Image() (*ImageDirective, bool) {
	for _, d := range s.Directives {
		if img, ok := d.(*ImageDirective); ok {
			return img, true
		}
	}
	return nil, false
}

// Ports returns every PORT-MAPPING directive on the service, in declaration order.
func (s *Service) Ports() []*PortMappingDirective {
	var out []*PortMappingDirective
	for _, d := range s.Directives {
		if p, ok := d.(*PortMappingDirective); ok {
			out = append(out, p)
		}
	}
	return out
}

// DependsOn returns every DEPENDS-ON directive on the service, in declaration order.
func (s *Service) DependsOn() []*DependsOnDirective {
	var out []*DependsOnDirective
	for _, d := range s.Directives {
		if dep, ok := d.(*DependsOnDirective); ok {
			out = append(out, dep)
		}
	}
	return out
}

// First returns the first directive of the given kind, if present.
func (s *Service) First(kind DirectiveKind) (Directive, bool) {
	for _, d := range s.Directives {
		if d.Kind() == kind {
			return d, true
		}
	}
	return nil, false
}

// All returns every directive of the given kind, in declaration order.
func (s *Service) All(kind DirectiveKind) []Directive {
	var out []Directive
	for _, d := range s.Directives {
		if d.Kind() == kind {
			out = append(out, d)
		}
	}
	return out
}

// Archetype enumerates the inferred functional category of a service.
type Archetype string

const (
	ArchetypeDatabase Archetype = "database"
	ArchetypeCache    Archetype = "cache"
	ArchetypeProxy    Archetype = "proxy"
	ArchetypeWebapp   Archetype = "webapp"
	ArchetypeGeneric  Archetype = "generic"
)

type HealthCheckSpec struct {
	Test        []string
	Interval    string
	Timeout     string
	Retries     int
	StartPeriod string
}

type ResourceSpec struct {
	CPUs   string
	Memory string
}

type BuildSpec struct {
	Context    string
	Dockerfile string
	Args       map[string]string
	ArgKeys    []string
}

// Enrichment is the derived per-service data the defaults engine attaches
// after semantic validation succeeds. A Service has a nil Enrichment until
// pkg/defaults runs.
type Enrichment struct {
	Archetype            Archetype
	EffectiveRestart     RestartPolicyValue
	EffectiveHealthCheck *HealthCheckSpec
	ResourceDefaults     *ResourceSpec
	SynthesizedLabels    map[string]string
	UsesBuildContext     bool
	Build                *BuildSpec
	NetworkMemberships   []string
	ContainerName        string
	PullPolicy           string
	BuildArgsNote        string
}
