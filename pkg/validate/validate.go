// Package validate runs Athena's semantic checks over a parsed
// model.Deployment: name uniqueness, DependsOn resolution, port conflicts,
// dependency-cycle detection and option-value range/format checks. It never
// panics — every unreachable state is reported through coll.Internal.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/docker/go-connections/nat"
	units "github.com/docker/go-units"

	"athena/pkg/diag"
	"athena/pkg/model"
)

// Validate runs the name, DependsOn, port-conflict, cycle and option-value
// checks in that order, appending diagnostics to coll. The BUILD-ARGS note
// for image-less services is attached later by pkg/defaults. Callers should
// stop the pipeline if coll.HasErrors() afterward.
func Validate(d *model.Deployment, coll *diag.Collector) {
	checkUniqueNames(d, coll)
	checkDependsOn(d, coll)
	checkPortConflicts(d, coll)
	checkCycles(d, coll)
	checkOptionValues(d, coll)
}

// checkUniqueNames reports every service name declared more than once.
func checkUniqueNames(d *model.Deployment, coll *diag.Collector) {
	firstSeen := map[string]*model.Service{}
	for _, s := range d.Services {
		if prior, dup := firstSeen[s.Name]; dup {
			coll.Add(diag.Diagnostic{
				Severity:         diag.SeverityError,
				Kind:             diag.KindDuplicateError,
				Primary:          s.Span(),
				Secondary:        []model.Span{prior.Span()},
				AffectedServices: []string{s.Name},
				Message:          fmt.Sprintf("Service %q is declared more than once", s.Name),
				Suggestion:       "Rename one of the duplicate SERVICE blocks or remove it",
			})
			continue
		}
		firstSeen[s.Name] = s
	}
}

// checkDependsOn reports every DependsOn that names no declared service.
func checkDependsOn(d *model.Deployment, coll *diag.Collector) {
	names := make([]string, 0, len(d.Services))
	for _, s := range d.Services {
		names = append(names, s.Name)
	}

	for _, s := range d.Services {
		for _, dep := range s.DependsOn() {
			if _, ok := d.ServiceByName(dep.ServiceName); ok {
				continue
			}
			suggestion := fmt.Sprintf("Declared services are: %s", strings.Join(names, ", "))
			if match, ok := closestMatch(dep.ServiceName, names); ok {
				suggestion = fmt.Sprintf("Did you mean %q? Declared services are: %s", match, strings.Join(names, ", "))
			}
			coll.Add(diag.Diagnostic{
				Severity:         diag.SeverityError,
				Kind:             diag.KindReferenceError,
				Primary:          dep.Span(),
				AffectedServices: []string{s.Name},
				Message:          fmt.Sprintf("DEPENDS-ON references undeclared service %q", dep.ServiceName),
				Suggestion:       suggestion,
			})
		}
	}
}

// checkPortConflicts groups every PortMapping by host port; any host port
// claimed by two or more services is an error, with a three-consecutive-
// free-port suggestion starting at the conflicted number.
func checkPortConflicts(d *model.Deployment, coll *diag.Collector) {
	type claim struct {
		service *model.Service
		port    *model.PortMappingDirective
	}
	byHostPort := map[int][]claim{}
	var hostPorts []int
	claimed := map[int]bool{}

	for _, s := range d.Services {
		for _, p := range s.Ports() {
			if _, ok := byHostPort[p.HostPort]; !ok {
				hostPorts = append(hostPorts, p.HostPort)
			}
			byHostPort[p.HostPort] = append(byHostPort[p.HostPort], claim{s, p})
			claimed[p.HostPort] = true
		}
	}

	sort.Ints(hostPorts)
	reported := map[int]bool{}

	for _, hp := range hostPorts {
		claims := byHostPort[hp]
		if len(claims) < 2 || reported[hp] {
			continue
		}
		reported[hp] = true

		var services []string
		var spans []model.Span
		for _, c := range claims {
			services = append(services, c.service.Name)
			spans = append(spans, c.port.Span())
		}

		free := threeFreePorts(hp, claimed)

		coll.Add(diag.Diagnostic{
			Severity:         diag.SeverityError,
			Kind:             diag.KindPortConflict,
			Primary:          spans[0],
			Secondary:        spans[1:],
			AffectedServices: services,
			Message:          fmt.Sprintf("Host port %d is claimed by %d services", hp, len(claims)),
			Suggestion:       fmt.Sprintf("Use one of the free ports: %s", free),
		})
	}
}

// threeFreePorts returns a comma-separated list of three host ports: start
// itself (left to one of its claimants), then the next ports above start
// that nothing claims.
func threeFreePorts(start int, claimed map[int]bool) string {
	var free []string
	p := start
	for len(free) < 3 && p <= 65535 {
		if p == start || !claimed[p] {
			free = append(free, strconv.Itoa(p))
		}
		p++
	}
	return strings.Join(free, ", ")
}

// dfsFrame is one entry on the explicit DFS work stack: the service being
// explored and the index of the next DependsOn edge to follow from it.
type dfsFrame struct {
	name    string
	nextDep int
}

// checkCycles runs an iterative DFS (explicit work stack, no recursion) over
// the DependsOn graph, reporting one diagnostic per distinct service at which
// a cycle closes back onto the stack.
func checkCycles(d *model.Deployment, coll *diag.Collector) {
	const (
		unvisited = 0
		onStack   = 1
		done      = 2
	)
	state := map[string]int{}
	for _, s := range d.Services {
		state[s.Name] = unvisited
	}
	reportedCycle := map[string]bool{}

	for _, start := range d.Services {
		if state[start.Name] != unvisited {
			continue
		}

		var stack []dfsFrame
		stack = append(stack, dfsFrame{name: start.Name})
		state[start.Name] = onStack

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			svc, ok := d.ServiceByName(top.name)
			if !ok {
				coll.Internal("cycle detection visited an unresolved service name")
				stack = stack[:len(stack)-1]
				continue
			}
			deps := svc.DependsOn()

			if top.nextDep >= len(deps) {
				state[top.name] = done
				stack = stack[:len(stack)-1]
				continue
			}

			next := deps[top.nextDep].ServiceName
			top.nextDep++

			switch state[next] {
			case unvisited:
				if _, ok := d.ServiceByName(next); !ok {
					// An unresolved DependsOn target is checkDependsOn's
					// error to report, not a cycle-detection concern.
					continue
				}
				state[next] = onStack
				stack = append(stack, dfsFrame{name: next})
			case onStack:
				if !reportedCycle[next] {
					reportedCycle[next] = true
					reportCycle(d, coll, stack, next)
				}
			case done:
				// already fully explored, not part of a new cycle
			}
		}
	}
}

// reportCycle emits a single diagnostic naming every service on the cycle,
// found by walking back through the DFS stack to where closesTheLoop
// reappears.
func reportCycle(d *model.Deployment, coll *diag.Collector, stack []dfsFrame, closesTheLoop string) {
	var cycle []string
	start := -1
	for i, f := range stack {
		if f.name == closesTheLoop {
			start = i
			break
		}
	}
	if start == -1 {
		coll.Internal("cycle detected but its start frame was not found on the work stack")
		return
	}
	for _, f := range stack[start:] {
		cycle = append(cycle, f.name)
	}

	named, ok := d.ServiceByName(closesTheLoop)
	primary := model.Span{}
	if ok {
		primary = named.Span()
	}

	coll.Add(diag.Diagnostic{
		Severity:         diag.SeverityError,
		Kind:             diag.KindCycleError,
		Primary:          primary,
		AffectedServices: cycle,
		Message:          fmt.Sprintf("Circular DEPENDS-ON chain: %s -> %s", strings.Join(cycle, " -> "), closesTheLoop),
		Suggestion:       "Break the cycle by removing one DEPENDS-ON in the chain",
	})
}

// checkOptionValues validates every directive whose value is drawn from a
// closed enum, a numeric range, or a structured format string.
func checkOptionValues(d *model.Deployment, coll *diag.Collector) {
	if d.Environment != nil && d.Environment.NetworkOptions != nil {
		opts := d.Environment.NetworkOptions
		switch opts.Driver {
		case model.NetworkBridge, model.NetworkOverlay, model.NetworkHost:
		default:
			coll.Add(diag.Diagnostic{
				Severity:   diag.SeverityError,
				Kind:       diag.KindOptionError,
				Primary:    d.Environment.Span(),
				Message:    fmt.Sprintf("Invalid network driver %q", opts.Driver),
				Suggestion: "Use one of: bridge, overlay, host",
			})
		}
		if opts.Encrypted && opts.Driver != model.NetworkOverlay {
			coll.Add(diag.Diagnostic{
				Severity:   diag.SeverityError,
				Kind:       diag.KindOptionError,
				Primary:    d.Environment.Span(),
				Message:    "NETWORK-OPTIONS ENCRYPTED requires DRIVER overlay",
				Suggestion: "Either remove ENCRYPTED or set DRIVER overlay",
			})
		}
	}

	for _, s := range d.Services {
		for _, dir := range s.Directives {
			switch v := dir.(type) {
			case *model.PortMappingDirective:
				checkPortShape(s, v, coll)
			case *model.ResourceLimitsDirective:
				checkResourceLimits(s, v, coll)
			case *model.ReplicasDirective:
				checkReplicas(s, v, coll)
			case *model.UpdateConfigDirective:
				checkUpdateConfig(s, v, coll)
			}
		}
	}
}

func checkPortShape(s *model.Service, p *model.PortMappingDirective, coll *diag.Collector) {
	for _, port := range []int{p.HostPort, p.ContainerPort} {
		// nat.NewPort only range-checks against 0-65535 and accepts 0, which
		// is syntactically a number but never a usable port.
		if port < 1 || port > 65535 {
			coll.Add(diag.Diagnostic{
				Severity:         diag.SeverityError,
				Kind:             diag.KindShapeError,
				Primary:          p.Span(),
				AffectedServices: []string{s.Name},
				Message:          fmt.Sprintf("Invalid port %d: out of range", port),
				Suggestion:       "Ports must be in the range 1-65535",
			})
			return
		}
		if _, err := nat.NewPort(string(p.Protocol), strconv.Itoa(port)); err != nil {
			coll.Add(diag.Diagnostic{
				Severity:         diag.SeverityError,
				Kind:             diag.KindOptionError,
				Primary:          p.Span(),
				AffectedServices: []string{s.Name},
				Message:          fmt.Sprintf("Invalid port %d: %s", port, err),
				Suggestion:       "Ports must be in the range 1-65535",
			})
			return
		}
	}
}

// memoryPattern is the accepted MEMORY shape: digits followed by K, M or G.
var memoryPattern = regexp.MustCompile(`^\d+[KMG]$`)

func checkResourceLimits(s *model.Service, r *model.ResourceLimitsDirective, coll *diag.Collector) {
	if cpus, err := strconv.ParseFloat(r.CPUs, 64); err != nil || cpus <= 0 {
		coll.Add(diag.Diagnostic{
			Severity:         diag.SeverityError,
			Kind:             diag.KindOptionError,
			Primary:          r.Span(),
			AffectedServices: []string{s.Name},
			Message:          fmt.Sprintf("Invalid CPU value %q", r.CPUs),
			Suggestion:       "CPU must be a positive decimal number, e.g. \"0.5\"",
		})
	}
	if _, err := units.RAMInBytes(r.Memory); err != nil || !memoryPattern.MatchString(r.Memory) {
		coll.Add(diag.Diagnostic{
			Severity:         diag.SeverityError,
			Kind:             diag.KindOptionError,
			Primary:          r.Span(),
			AffectedServices: []string{s.Name},
			Message:          fmt.Sprintf("Invalid MEMORY value %q", r.Memory),
			Suggestion:       "Memory must look like \"512M\" or \"1G\"",
		})
	}
}

const maxReplicas = 10000

func checkReplicas(s *model.Service, r *model.ReplicasDirective, coll *diag.Collector) {
	if r.Count > maxReplicas {
		coll.Add(diag.Diagnostic{
			Severity:         diag.SeverityError,
			Kind:             diag.KindOptionError,
			Primary:          r.Span(),
			AffectedServices: []string{s.Name},
			Message:          fmt.Sprintf("REPLICAS %d exceeds the maximum of %d", r.Count, maxReplicas),
			Suggestion:       fmt.Sprintf("Use a value at or below %d", maxReplicas),
		})
	}
}

func checkUpdateConfig(s *model.Service, u *model.UpdateConfigDirective, coll *diag.Collector) {
	if u.MaxFailureRatio != nil && (*u.MaxFailureRatio < 0.0 || *u.MaxFailureRatio > 1.0) {
		coll.Add(diag.Diagnostic{
			Severity:         diag.SeverityError,
			Kind:             diag.KindOptionError,
			Primary:          u.Span(),
			AffectedServices: []string{s.Name},
			Message:          fmt.Sprintf("MAX-FAILURE-RATIO %v is out of range", *u.MaxFailureRatio),
			Suggestion:       "MAX-FAILURE-RATIO must be between 0.0 and 1.0",
		})
	}
}
