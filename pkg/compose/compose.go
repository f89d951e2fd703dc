// Package compose is Athena's Compose emitter: it walks a validated,
// enriched, depsort-ordered model.Deployment and produces a YAML document
// with an exact, fixed key order at every level. Key order is driven by
// explicit yaml.Node construction rather than Go struct field order, since
// struct-tag ordering gets fragile once optional image-vs-build fields
// interact with omitempty.
package compose

import (
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"athena/pkg/model"
)

// Emit produces the final Compose YAML for deployment, whose Services slice
// must already be in depsort order.
func Emit(d *model.Deployment) (string, error) {
	root := mapNode()

	appendPair(root, scalar("name"), scalar(d.ID))
	appendPair(root, scalar("services"), servicesNode(d))
	appendPair(root, scalar("networks"), networksNode(d))
	appendPair(root, scalar("volumes"), volumesNode(d))

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal compose document: %w", err)
	}
	return string(out), nil
}

func mapNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func seqNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func intScalar(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

func boolScalar(v bool) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool"}
	if v {
		n.Value = "true"
	} else {
		n.Value = "false"
	}
	return n
}

func floatScalar(v float64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v, 'f', -1, 64)}
}

func appendPair(m *yaml.Node, key, val *yaml.Node) {
	m.Content = append(m.Content, key, val)
}

func servicesNode(d *model.Deployment) *yaml.Node {
	m := mapNode()
	for _, s := range d.Services {
		appendPair(m, scalar(s.Name), serviceBodyNode(s))
	}
	return m
}

// serviceBodyNode builds one service's mapping in the exact order: image
// (or build), container_name, ports, environment, volumes, depends_on,
// command, restart, healthcheck, deploy, labels, pull_policy, networks.
func serviceBodyNode(s *model.Service) *yaml.Node {
	m := mapNode()
	e := s.Enrichment

	if img, ok := s.Image(); ok {
		appendPair(m, scalar("image"), scalar(img.Image))
	} else if e != nil && e.Build != nil {
		appendPair(m, scalar("build"), buildNode(e.Build))
	}

	if e != nil {
		appendPair(m, scalar("container_name"), scalar(e.ContainerName))
	}

	if ports := portsNode(s); ports != nil {
		appendPair(m, scalar("ports"), ports)
	}

	if env := environmentNode(s); env != nil {
		appendPair(m, scalar("environment"), env)
	}

	if vols := volumeMappingsNode(s); vols != nil {
		appendPair(m, scalar("volumes"), vols)
	}

	if deps := dependsOnNode(s); deps != nil {
		appendPair(m, scalar("depends_on"), deps)
	}

	if cmd, ok := s.First(model.KindCommand); ok {
		appendPair(m, scalar("command"), scalar(cmd.(*model.CommandDirective).Command))
	}

	if e != nil {
		appendPair(m, scalar("restart"), scalar(string(e.EffectiveRestart)))
	}

	if e != nil && e.EffectiveHealthCheck != nil {
		appendPair(m, scalar("healthcheck"), healthCheckNode(e.EffectiveHealthCheck))
	}

	if e != nil {
		if deploy := deployNode(s, e); deploy != nil {
			appendPair(m, scalar("deploy"), deploy)
		}
		appendPair(m, scalar("labels"), labelsNode(e.SynthesizedLabels))
		appendPair(m, scalar("pull_policy"), scalar(e.PullPolicy))
		appendPair(m, scalar("networks"), stringListNode(e.NetworkMemberships))
	}

	return m
}

func buildNode(b *model.BuildSpec) *yaml.Node {
	m := mapNode()
	appendPair(m, scalar("context"), scalar(b.Context))
	appendPair(m, scalar("dockerfile"), scalar(b.Dockerfile))
	if len(b.ArgKeys) > 0 {
		args := mapNode()
		for _, k := range b.ArgKeys {
			appendPair(args, scalar(k), scalar(b.Args[k]))
		}
		appendPair(m, scalar("args"), args)
	}
	return m
}

// portsNode emits double-quoted "<host>:<container>" strings to avoid YAML
// number interpretation of bare port numbers.
func portsNode(s *model.Service) *yaml.Node {
	ports := s.Ports()
	if len(ports) == 0 {
		return nil
	}
	seq := seqNode()
	for _, p := range ports {
		n := scalar(fmt.Sprintf("%d:%d", p.HostPort, p.ContainerPort))
		n.Style = yaml.DoubleQuotedStyle
		seq.Content = append(seq.Content, n)
	}
	return seq
}

// environmentNode emits each templated value as NAME=${NAME} and each
// literal as NAME=value.
func environmentNode(s *model.Service) *yaml.Node {
	var entries []string
	for _, d := range s.All(model.KindEnvVariable) {
		ev := d.(*model.EnvVariableDirective)
		if ev.IsLiteral {
			entries = append(entries, ev.Literal)
		} else {
			entries = append(entries, fmt.Sprintf("%s=${%s}", ev.Template, ev.Template))
		}
	}
	if len(entries) == 0 {
		return nil
	}
	seq := seqNode()
	for _, e := range entries {
		seq.Content = append(seq.Content, scalar(e))
	}
	return seq
}

func volumeMappingsNode(s *model.Service) *yaml.Node {
	vols := s.All(model.KindVolumeMapping)
	if len(vols) == 0 {
		return nil
	}
	seq := seqNode()
	for _, d := range vols {
		v := d.(*model.VolumeMappingDirective)
		text := v.HostPath + ":" + v.ContainerPath
		for _, opt := range v.Options {
			text += ":" + opt
		}
		seq.Content = append(seq.Content, scalar(text))
	}
	return seq
}

func dependsOnNode(s *model.Service) *yaml.Node {
	deps := s.DependsOn()
	if len(deps) == 0 {
		return nil
	}
	seq := seqNode()
	for _, d := range deps {
		seq.Content = append(seq.Content, scalar(d.ServiceName))
	}
	return seq
}

func healthCheckNode(h *model.HealthCheckSpec) *yaml.Node {
	m := mapNode()
	test := seqNode()
	for _, t := range h.Test {
		test.Content = append(test.Content, scalar(t))
	}
	appendPair(m, scalar("test"), test)
	appendPair(m, scalar("interval"), scalar(h.Interval))
	appendPair(m, scalar("timeout"), scalar(h.Timeout))
	appendPair(m, scalar("retries"), intScalar(h.Retries))
	appendPair(m, scalar("start_period"), scalar(h.StartPeriod))
	return m
}

// deployNode builds deploy.{replicas,resources,update_config,labels}. Each
// sub-key is emitted only when the service has something to say about it;
// an entirely empty deploy block is omitted.
func deployNode(s *model.Service, e *model.Enrichment) *yaml.Node {
	m := mapNode()
	any := false

	if r, ok := s.First(model.KindReplicas); ok {
		appendPair(m, scalar("replicas"), intScalar(r.(*model.ReplicasDirective).Count))
		any = true
	}

	if e.ResourceDefaults != nil {
		res := mapNode()
		limits := mapNode()
		appendPair(limits, scalar("cpus"), scalar(e.ResourceDefaults.CPUs))
		appendPair(limits, scalar("memory"), scalar(e.ResourceDefaults.Memory))
		appendPair(res, scalar("limits"), limits)
		appendPair(m, scalar("resources"), res)
		any = true
	}

	if uc, ok := s.First(model.KindUpdateConfig); ok {
		u := uc.(*model.UpdateConfigDirective)
		node := updateConfigNode(u)
		if node != nil {
			appendPair(m, scalar("update_config"), node)
			any = true
		}
	}

	if labels := s.All(model.KindSwarmLabels); len(labels) > 0 {
		merged := mapNode()
		for _, d := range labels {
			sl := d.(*model.SwarmLabelsDirective)
			for _, k := range sl.Keys {
				appendPair(merged, scalar(k), scalar(sl.Values[k]))
			}
		}
		appendPair(m, scalar("labels"), merged)
		any = true
	}

	if !any {
		return nil
	}
	return m
}

func updateConfigNode(u *model.UpdateConfigDirective) *yaml.Node {
	m := mapNode()
	any := false
	if u.Parallelism != nil {
		appendPair(m, scalar("parallelism"), intScalar(*u.Parallelism))
		any = true
	}
	if u.Delay != nil {
		appendPair(m, scalar("delay"), scalar(*u.Delay))
		any = true
	}
	if u.FailureAction != nil {
		appendPair(m, scalar("failure_action"), scalar(string(*u.FailureAction)))
		any = true
	}
	if u.Monitor != nil {
		appendPair(m, scalar("monitor"), scalar(*u.Monitor))
		any = true
	}
	if u.MaxFailureRatio != nil {
		appendPair(m, scalar("max_failure_ratio"), floatScalar(*u.MaxFailureRatio))
		any = true
	}
	if !any {
		return nil
	}
	return m
}

func labelsNode(labels map[string]string) *yaml.Node {
	m := mapNode()
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		appendPair(m, scalar(k), scalar(labels[k]))
	}
	return m
}

func stringListNode(values []string) *yaml.Node {
	seq := seqNode()
	for _, v := range values {
		seq.Content = append(seq.Content, scalar(v))
	}
	return seq
}

func networksNode(d *model.Deployment) *yaml.Node {
	m := mapNode()
	driver := model.NetworkBridge
	attachable := false
	encrypted := false
	if d.Environment != nil && d.Environment.NetworkOptions != nil {
		opts := d.Environment.NetworkOptions
		driver = opts.Driver
		attachable = opts.Attachable
		encrypted = opts.Encrypted
	}

	net := mapNode()
	appendPair(net, scalar("driver"), scalar(string(driver)))
	if attachable {
		appendPair(net, scalar("attachable"), boolScalar(true))
	}
	if encrypted {
		opts := mapNode()
		appendPair(opts, scalar("encrypted"), scalar("true"))
		appendPair(net, scalar("driver_opts"), opts)
	}
	appendPair(m, scalar(d.NetworkName()), net)
	return m
}

// volumesNode emits every VOLUME-DEFINITION from the environment section.
// Reserved per the top-level shape even when empty: a deployment with none
// still emits "volumes: {}", never omitting the key.
func volumesNode(d *model.Deployment) *yaml.Node {
	m := mapNode()
	if d.Environment == nil {
		return m
	}
	for _, v := range d.Environment.Volumes {
		body := mapNode()
		if len(v.Options) > 0 {
			driverOpts := mapNode()
			for _, opt := range v.Options {
				appendPair(driverOpts, scalar(opt), scalar("true"))
			}
			appendPair(body, scalar("driver_opts"), driverOpts)
		}
		appendPair(m, scalar(v.Name), body)
	}
	return m
}
