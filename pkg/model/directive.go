package model

// DirectiveKind tags the variant a Directive carries. The validator and the
// emitter both dispatch on this tag rather than on opaque key/value pairs.
type DirectiveKind string

const (
	KindImage          DirectiveKind = "Image"
	KindPortMapping    DirectiveKind = "PortMapping"
	KindEnvVariable    DirectiveKind = "EnvVariable"
	KindCommand        DirectiveKind = "Command"
	KindVolumeMapping  DirectiveKind = "VolumeMapping"
	KindDependsOn      DirectiveKind = "DependsOn"
	KindHealthCheck    DirectiveKind = "HealthCheck"
	KindRestartPolicy  DirectiveKind = "RestartPolicy"
	KindResourceLimits DirectiveKind = "ResourceLimits"
	KindBuildArgs      DirectiveKind = "BuildArgs"
	KindReplicas       DirectiveKind = "Replicas"
	KindUpdateConfig   DirectiveKind = "UpdateConfig"
	KindSwarmLabels    DirectiveKind = "SwarmLabels"
)

// Directive is a tagged-union member: one struct per DSL keyword, each with
// its own payload shape. Never represented as an opaque string map.
type Directive interface {
	Kind() DirectiveKind
	Span() Span
}

type ImageDirective struct {
	SpanVal Span
	Image   string // "name[:tag]"
}

func (d *ImageDirective) Kind() DirectiveKind { return KindImage }
func (d *ImageDirective) Span() Span          { return d.SpanVal }

type Protocol string

const (
	ProtocolTCP Protocol = "tcp"
	ProtocolUDP Protocol = "udp"
)

type PortMappingDirective struct {
	SpanVal       Span
	HostPort      int
	ContainerPort int
	Protocol      Protocol
}

func (d *PortMappingDirective) Kind() DirectiveKind { return KindPortMapping }
func (d *PortMappingDirective) Span() Span          { return d.SpanVal }

type EnvVariableDirective struct {
	SpanVal Span
	// Exactly one of Template / Literal is set.
	Template string
	Literal  string
	IsLiteral bool
}

func (d *EnvVariableDirective) Kind() DirectiveKind { return KindEnvVariable }
func (d *EnvVariableDirective) Span() Span          { return d.SpanVal }

type CommandDirective struct {
	SpanVal Span
	Command string
}

func (d *CommandDirective) Kind() DirectiveKind { return KindCommand }
func (d *CommandDirective) Span() Span          { return d.SpanVal }

type VolumeMappingDirective struct {
	SpanVal       Span
	HostPath      string
	ContainerPath string
	Options       []string
}

func (d *VolumeMappingDirective) Kind() DirectiveKind { return KindVolumeMapping }
func (d *VolumeMappingDirective) Span() Span          { return d.SpanVal }

type DependsOnDirective struct {
	SpanVal     Span
	ServiceName string
}

func (d *DependsOnDirective) Kind() DirectiveKind { return KindDependsOn }
func (d *DependsOnDirective) Span() Span          { return d.SpanVal }

type HealthCheckDirective struct {
	SpanVal Span
	Command string
}

func (d *HealthCheckDirective) Kind() DirectiveKind { return KindHealthCheck }
func (d *HealthCheckDirective) Span() Span          { return d.SpanVal }

type RestartPolicyValue string

const (
	RestartNo            RestartPolicyValue = "no"
	RestartAlways        RestartPolicyValue = "always"
	RestartOnFailure     RestartPolicyValue = "on-failure"
	RestartUnlessStopped RestartPolicyValue = "unless-stopped"
)

type RestartPolicyDirective struct {
	SpanVal Span
	Policy  RestartPolicyValue
}

func (d *RestartPolicyDirective) Kind() DirectiveKind { return KindRestartPolicy }
func (d *RestartPolicyDirective) Span() Span          { return d.SpanVal }

type ResourceLimitsDirective struct {
	SpanVal Span
	CPUs    string // decimal string, e.g. "0.5"
	Memory  string // e.g. "512M"
}

func (d *ResourceLimitsDirective) Kind() DirectiveKind { return KindResourceLimits }
func (d *ResourceLimitsDirective) Span() Span          { return d.SpanVal }

type BuildArgsDirective struct {
	SpanVal Span
	Keys    []string // preserves declaration order
	Values  map[string]string
}

func (d *BuildArgsDirective) Kind() DirectiveKind { return KindBuildArgs }
func (d *BuildArgsDirective) Span() Span          { return d.SpanVal }

type ReplicasDirective struct {
	SpanVal Span
	Count   int
}

func (d *ReplicasDirective) Kind() DirectiveKind { return KindReplicas }
func (d *ReplicasDirective) Span() Span          { return d.SpanVal }

type FailureAction string

const (
	FailureActionContinue FailureAction = "continue"
	FailureActionPause    FailureAction = "pause"
	FailureActionRollback FailureAction = "rollback"
)

type UpdateConfigDirective struct {
	SpanVal         Span
	Parallelism     *int
	Delay           *string
	FailureAction   *FailureAction
	Monitor         *string
	MaxFailureRatio *float64
}

func (d *UpdateConfigDirective) Kind() DirectiveKind { return KindUpdateConfig }
func (d *UpdateConfigDirective) Span() Span          { return d.SpanVal }

type SwarmLabelsDirective struct {
	SpanVal Span
	Keys    []string
	Values  map[string]string
}

func (d *SwarmLabelsDirective) Kind() DirectiveKind { return KindSwarmLabels }
func (d *SwarmLabelsDirective) Span() Span          { return d.SpanVal }
