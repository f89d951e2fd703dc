// Package parser builds the typed model (pkg/model) from Athena DSL source.
// It is a hand-written recursive-descent parser: one function per grammar
// production, each attaching a model.Span covering every token it consumes.
// Grammar failures are translated into diag.Diagnostic values through the
// lookup table in errors.go, never through a generic parser-library error
// type.
package parser

import (
	"strconv"
	"strings"

	"athena/pkg/diag"
	"athena/pkg/lexer"
	"athena/pkg/model"
)

type parser struct {
	tokens []lexer.Token
	pos    int
	src    string
}

// Parse tokenizes and parses src, returning the built Deployment on success.
// On failure it returns a single diag.Diagnostic; parse errors abort the
// pipeline immediately — parsing must succeed fully before validation runs.
func Parse(src string) (*model.Deployment, *diag.Diagnostic) {
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		if lexErr, ok := err.(*lexer.Error); ok {
			d := diag.Diagnostic{
				Severity: diag.SeverityError,
				Kind:     diag.KindParseError,
				Primary:  model.Span{StartLine: lexErr.Line, StartCol: lexErr.Col, EndLine: lexErr.Line, EndCol: lexErr.Col},
				Message:  lexErr.Message,
				Suggestion: "Check the syntax in your .ath file",
			}
			return nil, &d
		}
		d := diag.Internal(err.Error())
		return nil, &d
	}

	p := &parser{tokens: toks, src: src}
	dep, perr := p.parseDeployment()
	if perr != nil {
		return nil, perr
	}
	dep.Index()
	return dep, nil
}

func (p *parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) at(kind lexer.TokenKind, text string) bool {
	t := p.cur()
	if t.Kind != kind {
		return false
	}
	return text == "" || t.Text == text
}

func (p *parser) atKeyword(text string) bool {
	return p.at(lexer.TokenKeyword, text)
}

func (p *parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

// skipNewlines consumes any run of record-boundary tokens, since blank
// lines between directives are insignificant.
func (p *parser) skipNewlines() {
	for p.cur().Kind == lexer.TokenNewline {
		p.advance()
	}
}

func spanOf(t lexer.Token) model.Span {
	return model.Span{StartLine: t.Line, StartCol: t.Col, EndLine: t.Line, EndCol: t.Col + len(t.Text), StartOffset: t.Offset, EndOffset: t.Offset + len(t.Text)}
}

func (p *parser) errAt(t lexer.Token, rule errRule, detail string) *diag.Diagnostic {
	msg, suggestion := lookupError(rule)
	if detail != "" {
		msg = detail
	}
	d := diag.Diagnostic{
		Severity:   diag.SeverityError,
		Kind:       diag.KindParseError,
		Primary:    spanOf(t),
		Message:    msg,
		Suggestion: suggestion,
	}
	return &d
}

// ---- Deployment ----

func (p *parser) parseDeployment() (*model.Deployment, *diag.Diagnostic) {
	p.skipNewlines()

	if !p.atKeyword("DEPLOYMENT-ID") {
		return nil, p.errAt(p.cur(), ruleMissingDeploymentID, "")
	}
	start := p.advance()

	if p.cur().Kind != lexer.TokenIdentifier && p.cur().Kind != lexer.TokenKeyword {
		return nil, p.errAt(p.cur(), ruleMissingDeploymentID, "Missing DEPLOYMENT-ID declaration")
	}
	idTok := p.advance()

	dep := &model.Deployment{ID: idTok.Text}
	end := idTok
	p.skipNewlines()

	if p.atKeyword("VERSION-ID") {
		p.advance()
		vt := p.advance()
		v := vt.Text
		dep.Version = &v
		end = vt
		p.skipNewlines()
	}

	if p.atKeyword("ENVIRONMENT") {
		envBlock, perr := p.parseEnvironmentSection()
		if perr != nil {
			return nil, perr
		}
		dep.Environment = envBlock
		end = lexer.Token{Line: envBlock.SpanVal.EndLine, Col: envBlock.SpanVal.EndCol}
		p.skipNewlines()
	}

	if !p.atKeyword("SERVICES") {
		return nil, p.errAt(p.cur(), ruleMissingServicesSection, "")
	}
	services, lastTok, perr := p.parseServicesSection()
	if perr != nil {
		return nil, perr
	}
	dep.Services = services
	end = lastTok

	dep.SpanVal = model.Join(spanOf(start), spanOf(end))
	return dep, nil
}

// ---- Environment section ----

func (p *parser) parseEnvironmentSection() (*model.EnvironmentBlock, *diag.Diagnostic) {
	start := p.advance() // ENVIRONMENT
	if !p.atKeyword("SECTION") {
		return nil, p.errAt(p.cur(), ruleGeneric, "Expected SECTION after ENVIRONMENT")
	}
	p.advance()
	p.skipNewlines()

	env := &model.EnvironmentBlock{}
	last := start

	for {
		switch {
		case p.atKeyword("NETWORK-NAME"):
			p.advance()
			nt := p.advance()
			name := nt.Text
			env.NetworkName = &name
			last = nt
		case p.atKeyword("NETWORK-OPTIONS"):
			opts, lastTok, perr := p.parseNetworkOptions()
			if perr != nil {
				return nil, perr
			}
			env.NetworkOptions = opts
			last = lastTok
		case p.atKeyword("VOLUME-DEFINITION"):
			vol, lastTok, perr := p.parseVolumeDefinition()
			if perr != nil {
				return nil, perr
			}
			env.Volumes = append(env.Volumes, vol)
			last = lastTok
		default:
			env.SpanVal = model.Join(spanOf(start), spanOf(last))
			return env, nil
		}
		p.skipNewlines()
	}
}

func (p *parser) parseNetworkOptions() (*model.NetworkOptions, lexer.Token, *diag.Diagnostic) {
	start := p.advance() // NETWORK-OPTIONS
	opts := &model.NetworkOptions{Driver: model.NetworkBridge}
	last := start

	for {
		switch {
		case p.atKeyword("DRIVER"):
			p.advance()
			dt := p.advance()
			opts.Driver = model.NetworkDriver(strings.ToLower(dt.Text))
			last = dt
		case p.atKeyword("ATTACHABLE"):
			p.advance()
			bt := p.advance()
			opts.Attachable = strings.EqualFold(bt.Text, "true")
			last = bt
		case p.atKeyword("ENCRYPTED"):
			p.advance()
			bt := p.advance()
			opts.Encrypted = strings.EqualFold(bt.Text, "true")
			last = bt
		default:
			return opts, last, nil
		}
	}
}

func (p *parser) parseVolumeDefinition() (model.VolumeDefinition, lexer.Token, *diag.Diagnostic) {
	start := p.advance() // VOLUME-DEFINITION
	if p.cur().Kind != lexer.TokenIdentifier && p.cur().Kind != lexer.TokenKeyword {
		return model.VolumeDefinition{}, start, p.errAt(p.cur(), ruleGeneric, "Missing volume name")
	}
	nameTok := p.advance()
	vol := model.VolumeDefinition{Name: nameTok.Text}
	last := nameTok
	for p.cur().Kind == lexer.TokenIdentifier {
		optTok := p.advance()
		vol.Options = append(vol.Options, optTok.Text)
		last = optTok
	}
	vol.SpanVal = model.Join(spanOf(start), spanOf(last))
	return vol, last, nil
}

// ---- Services section ----

func (p *parser) parseServicesSection() ([]*model.Service, lexer.Token, *diag.Diagnostic) {
	start := p.advance() // SERVICES
	if !p.atKeyword("SECTION") {
		return nil, start, p.errAt(p.cur(), ruleGeneric, "Expected SECTION after SERVICES")
	}
	secTok := p.advance()
	p.skipNewlines()

	var services []*model.Service
	last := secTok

	for p.atKeyword("SERVICE") {
		svc, lastTok, perr := p.parseService()
		if perr != nil {
			return nil, last, perr
		}
		services = append(services, svc)
		last = lastTok
		p.skipNewlines()
	}

	if len(services) == 0 {
		return nil, last, p.errAt(p.cur(), ruleGeneric, "SERVICES SECTION must declare at least one SERVICE block")
	}

	return services, last, nil
}

func (p *parser) parseService() (*model.Service, lexer.Token, *diag.Diagnostic) {
	start := p.advance() // SERVICE
	if p.cur().Kind != lexer.TokenIdentifier && p.cur().Kind != lexer.TokenKeyword {
		return nil, start, p.errAt(p.cur(), ruleMissingServiceName, "")
	}
	nameTok := p.advance()
	svc := &model.Service{Name: nameTok.Text}
	lastTok := nameTok // tracks the last consumed token, for a caret on the block's last non-empty line
	p.skipNewlines()

	for {
		if p.cur().Kind == lexer.TokenEOF {
			return nil, nameTok, p.errAt(lastTok, ruleMissingEndService, "")
		}
		if p.atKeyword("END") {
			p.advance()
			if !p.atKeyword("SERVICE") {
				return nil, nameTok, p.errAt(p.cur(), ruleGeneric, "Expected SERVICE after END")
			}
			endTok := p.advance()
			svc.SpanVal = model.Join(spanOf(start), spanOf(endTok))
			return svc, endTok, nil
		}

		dir, perr := p.parseDirective()
		if perr != nil {
			return nil, nameTok, perr
		}
		if dir != nil {
			svc.Directives = append(svc.Directives, dir)
		}
		lastTok = p.tokens[p.pos-1]
		p.skipNewlines()
	}
}

// ---- Directives ----

func (p *parser) parseDirective() (model.Directive, *diag.Diagnostic) {
	switch {
	case p.atKeyword("IMAGE-ID"):
		return p.parseImage()
	case p.atKeyword("PORT-MAPPING"):
		return p.parsePortMapping()
	case p.atKeyword("ENV-VARIABLE"):
		return p.parseEnvVariable()
	case p.atKeyword("COMMAND"):
		return p.parseCommand()
	case p.atKeyword("VOLUME-MAPPING"):
		return p.parseVolumeMapping()
	case p.atKeyword("DEPENDS-ON"):
		return p.parseDependsOn()
	case p.atKeyword("HEALTH-CHECK"):
		return p.parseHealthCheck()
	case p.atKeyword("RESTART-POLICY"):
		return p.parseRestartPolicy()
	case p.atKeyword("RESOURCE-LIMITS"):
		return p.parseResourceLimits()
	case p.atKeyword("BUILD-ARGS"):
		return p.parseBuildArgs()
	case p.atKeyword("REPLICAS"):
		return p.parseReplicas()
	case p.atKeyword("UPDATE-CONFIG"):
		return p.parseUpdateConfig()
	case p.atKeyword("SWARM-LABELS"):
		return p.parseSwarmLabels()
	default:
		return nil, p.errAt(p.cur(), ruleGeneric, "Unexpected token inside SERVICE block: "+p.cur().Text)
	}
}

// parseImage accepts both the quoted form (IMAGE-ID "nginx:alpine") and the
// bareword form (IMAGE-ID nginx:alpine) the DSL's image[:tag] type allows.
// The lexer never treats ":" as part of an identifier or number, so a bare
// reference like "postgres:15" arrives as several adjacent tokens that get
// reassembled here.
func (p *parser) parseImage() (model.Directive, *diag.Diagnostic) {
	start := p.advance()

	if p.cur().Kind == lexer.TokenString {
		tok := p.advance()
		if tok.Text == "" {
			return nil, p.errAt(tok, ruleImageID, "")
		}
		return &model.ImageDirective{SpanVal: model.Join(spanOf(start), spanOf(tok)), Image: tok.Text}, nil
	}

	if p.cur().Kind != lexer.TokenIdentifier && p.cur().Kind != lexer.TokenNumber {
		return nil, p.errAt(p.cur(), ruleImageID, "")
	}
	first := p.advance()
	text := first.Text
	last := first
	for (p.cur().Kind == lexer.TokenIdentifier || p.cur().Kind == lexer.TokenNumber) &&
		p.cur().Offset == last.Offset+len(last.Text) {
		next := p.advance()
		text += next.Text
		last = next
	}
	return &model.ImageDirective{SpanVal: model.Join(spanOf(start), spanOf(last)), Image: text}, nil
}

func (p *parser) parsePortMapping() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	hostTok := p.cur()
	if hostTok.Kind != lexer.TokenNumber {
		return nil, p.errAt(hostTok, rulePortMapping, "")
	}
	p.advance()
	if !p.at(lexer.TokenTo, "") {
		return nil, p.errAt(p.cur(), rulePortMapping, "")
	}
	p.advance()
	containerTok := p.cur()
	if containerTok.Kind != lexer.TokenNumber {
		return nil, p.errAt(containerTok, rulePortMapping, "")
	}
	p.advance()

	host, err1 := strconv.Atoi(hostTok.Text)
	container, err2 := strconv.Atoi(containerTok.Text)
	if err1 != nil || err2 != nil {
		return nil, p.errAt(hostTok, rulePortMapping, "")
	}

	return &model.PortMappingDirective{
		SpanVal:       model.Join(spanOf(start), spanOf(containerTok)),
		HostPort:      host,
		ContainerPort: container,
		Protocol:      model.ProtocolTCP,
	}, nil
}

func (p *parser) parseEnvVariable() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	switch p.cur().Kind {
	case lexer.TokenTemplate:
		tok := p.advance()
		if !isIdentifier(tok.Text) {
			return nil, p.errAt(tok, ruleEnvVariable, "")
		}
		return &model.EnvVariableDirective{SpanVal: model.Join(spanOf(start), spanOf(tok)), Template: tok.Text}, nil
	case lexer.TokenString:
		tok := p.advance()
		if !strings.Contains(tok.Text, "=") {
			return nil, p.errAt(tok, ruleEnvVariable, "")
		}
		return &model.EnvVariableDirective{SpanVal: model.Join(spanOf(start), spanOf(tok)), Literal: tok.Text, IsLiteral: true}, nil
	default:
		return nil, p.errAt(p.cur(), ruleEnvVariable, "")
	}
}

func (p *parser) parseCommand() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	if p.cur().Kind != lexer.TokenString || p.cur().Text == "" {
		return nil, p.errAt(p.cur(), ruleGeneric, "COMMAND must be a non-empty quoted string")
	}
	tok := p.advance()
	return &model.CommandDirective{SpanVal: model.Join(spanOf(start), spanOf(tok)), Command: tok.Text}, nil
}

func (p *parser) parseVolumeMapping() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	if p.cur().Kind != lexer.TokenString || p.cur().Text == "" {
		return nil, p.errAt(p.cur(), ruleGeneric, "VOLUME-MAPPING host path must be a non-empty quoted string")
	}
	hostTok := p.advance()
	if !p.at(lexer.TokenTo, "") {
		return nil, p.errAt(p.cur(), ruleGeneric, "Use VOLUME-MAPPING \"<host_path>\" TO \"<container_path>\"")
	}
	p.advance()
	if p.cur().Kind != lexer.TokenString || p.cur().Text == "" {
		return nil, p.errAt(p.cur(), ruleGeneric, "VOLUME-MAPPING container path must be a non-empty quoted string")
	}
	containerTok := p.advance()

	v := &model.VolumeMappingDirective{HostPath: hostTok.Text, ContainerPath: containerTok.Text}
	last := containerTok
	for p.cur().Kind == lexer.TokenIdentifier {
		optTok := p.advance()
		v.Options = append(v.Options, optTok.Text)
		last = optTok
	}
	v.SpanVal = model.Join(spanOf(start), spanOf(last))
	return v, nil
}

func (p *parser) parseDependsOn() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	if p.cur().Kind != lexer.TokenIdentifier && p.cur().Kind != lexer.TokenKeyword {
		return nil, p.errAt(p.cur(), ruleGeneric, "DEPENDS-ON must name a service")
	}
	tok := p.advance()
	return &model.DependsOnDirective{SpanVal: model.Join(spanOf(start), spanOf(tok)), ServiceName: tok.Text}, nil
}

func (p *parser) parseHealthCheck() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	if p.cur().Kind != lexer.TokenString || p.cur().Text == "" {
		return nil, p.errAt(p.cur(), ruleGeneric, "HEALTH-CHECK must be a non-empty quoted command")
	}
	tok := p.advance()
	return &model.HealthCheckDirective{SpanVal: model.Join(spanOf(start), spanOf(tok)), Command: tok.Text}, nil
}

var restartPolicies = map[string]model.RestartPolicyValue{
	"no": model.RestartNo, "always": model.RestartAlways,
	"on-failure": model.RestartOnFailure, "unless-stopped": model.RestartUnlessStopped,
}

func (p *parser) parseRestartPolicy() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	tok := p.cur()
	val, ok := restartPolicies[tok.Text]
	if !ok {
		return nil, p.errAt(tok, ruleRestartPolicy, "")
	}
	p.advance()
	return &model.RestartPolicyDirective{SpanVal: model.Join(spanOf(start), spanOf(tok)), Policy: val}, nil
}

func (p *parser) parseResourceLimits() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	if !p.atKeyword("CPU") {
		return nil, p.errAt(p.cur(), ruleResourceLimits, "")
	}
	p.advance()
	if p.cur().Kind != lexer.TokenString {
		return nil, p.errAt(p.cur(), ruleResourceLimits, "")
	}
	cpuTok := p.advance()

	if !p.atKeyword("MEMORY") {
		return nil, p.errAt(p.cur(), ruleResourceLimits, "")
	}
	p.advance()
	if p.cur().Kind != lexer.TokenString {
		return nil, p.errAt(p.cur(), ruleResourceLimits, "")
	}
	memTok := p.advance()

	return &model.ResourceLimitsDirective{
		SpanVal: model.Join(spanOf(start), spanOf(memTok)),
		CPUs:    cpuTok.Text,
		Memory:  memTok.Text,
	}, nil
}

func (p *parser) parseBuildArgs() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	d := &model.BuildArgsDirective{Values: map[string]string{}}
	last := start

	for p.cur().Kind != lexer.TokenNewline && p.cur().Kind != lexer.TokenEOF {
		if p.cur().Kind != lexer.TokenIdentifier && p.cur().Kind != lexer.TokenKeyword {
			return nil, p.errAt(p.cur(), ruleBuildArgs, "")
		}
		keyTok := p.advance()
		if !p.at(lexer.TokenIdentifier, "=") {
			return nil, p.errAt(p.cur(), ruleBuildArgs, "")
		}
		p.advance()
		if p.cur().Kind != lexer.TokenString {
			return nil, p.errAt(p.cur(), ruleBuildArgs, "")
		}
		valTok := p.advance()

		if _, dup := d.Values[keyTok.Text]; dup {
			return nil, p.errAt(keyTok, ruleGeneric, "Duplicate BUILD-ARGS key: "+keyTok.Text)
		}
		d.Keys = append(d.Keys, keyTok.Text)
		d.Values[keyTok.Text] = valTok.Text
		last = valTok
	}

	if len(d.Keys) == 0 {
		return nil, p.errAt(start, ruleBuildArgs, "BUILD-ARGS must contain at least one key=value pair")
	}
	d.SpanVal = model.Join(spanOf(start), spanOf(last))
	return d, nil
}

func (p *parser) parseReplicas() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	if p.cur().Kind != lexer.TokenNumber {
		return nil, p.errAt(p.cur(), ruleGeneric, "REPLICAS must be a non-negative integer")
	}
	tok := p.advance()
	n, err := strconv.Atoi(tok.Text)
	if err != nil || n < 0 {
		return nil, p.errAt(tok, ruleGeneric, "REPLICAS must be a non-negative integer")
	}
	return &model.ReplicasDirective{SpanVal: model.Join(spanOf(start), spanOf(tok)), Count: n}, nil
}

var failureActions = map[string]model.FailureAction{
	"continue": model.FailureActionContinue, "pause": model.FailureActionPause, "rollback": model.FailureActionRollback,
}

func (p *parser) parseUpdateConfig() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	d := &model.UpdateConfigDirective{}
	last := start

	for p.cur().Kind != lexer.TokenNewline && p.cur().Kind != lexer.TokenEOF {
		switch {
		case p.atKeyword("PARALLELISM"):
			p.advance()
			if p.cur().Kind != lexer.TokenNumber {
				return nil, p.errAt(p.cur(), ruleGeneric, "UPDATE-CONFIG PARALLELISM must be a non-negative integer")
			}
			tok := p.advance()
			n, err := strconv.Atoi(tok.Text)
			if err != nil || n < 0 {
				return nil, p.errAt(tok, ruleGeneric, "UPDATE-CONFIG PARALLELISM must be a non-negative integer")
			}
			d.Parallelism = &n
			last = tok
		case p.atKeyword("DELAY"):
			p.advance()
			if p.cur().Kind != lexer.TokenString {
				return nil, p.errAt(p.cur(), ruleGeneric, "UPDATE-CONFIG DELAY must be a quoted duration, e.g. \"10s\"")
			}
			tok := p.advance()
			v := tok.Text
			d.Delay = &v
			last = tok
		case p.atKeyword("FAILURE-ACTION"):
			p.advance()
			tok := p.cur()
			fa, ok := failureActions[tok.Text]
			if !ok {
				return nil, p.errAt(tok, ruleGeneric, "UPDATE-CONFIG FAILURE-ACTION must be one of: continue, pause, rollback")
			}
			p.advance()
			d.FailureAction = &fa
			last = tok
		case p.atKeyword("MONITOR"):
			p.advance()
			if p.cur().Kind != lexer.TokenString {
				return nil, p.errAt(p.cur(), ruleGeneric, "UPDATE-CONFIG MONITOR must be a quoted duration, e.g. \"30s\"")
			}
			tok := p.advance()
			v := tok.Text
			d.Monitor = &v
			last = tok
		case p.atKeyword("MAX-FAILURE-RATIO"):
			p.advance()
			tok := p.cur()
			f, err := strconv.ParseFloat(tok.Text, 64)
			if err != nil || f < 0.0 || f > 1.0 {
				return nil, p.errAt(tok, ruleGeneric, "UPDATE-CONFIG MAX-FAILURE-RATIO must be between 0.0 and 1.0")
			}
			p.advance()
			d.MaxFailureRatio = &f
			last = tok
		default:
			return nil, p.errAt(p.cur(), ruleGeneric, "Unexpected token inside UPDATE-CONFIG: "+p.cur().Text)
		}
	}
	d.SpanVal = model.Join(spanOf(start), spanOf(last))
	return d, nil
}

func (p *parser) parseSwarmLabels() (model.Directive, *diag.Diagnostic) {
	start := p.advance()
	d := &model.SwarmLabelsDirective{Values: map[string]string{}}
	last := start

	for p.cur().Kind != lexer.TokenNewline && p.cur().Kind != lexer.TokenEOF {
		if p.cur().Kind != lexer.TokenIdentifier && p.cur().Kind != lexer.TokenKeyword {
			return nil, p.errAt(p.cur(), ruleGeneric, "SWARM-LABELS entries must be KEY=\"value\" pairs")
		}
		keyTok := p.advance()
		if !p.at(lexer.TokenIdentifier, "=") {
			return nil, p.errAt(p.cur(), ruleGeneric, "SWARM-LABELS entries must be KEY=\"value\" pairs")
		}
		p.advance()
		if p.cur().Kind != lexer.TokenString {
			return nil, p.errAt(p.cur(), ruleGeneric, "SWARM-LABELS entries must be KEY=\"value\" pairs")
		}
		valTok := p.advance()

		d.Keys = append(d.Keys, keyTok.Text)
		d.Values[keyTok.Text] = valTok.Text
		last = valTok
	}

	if len(d.Keys) == 0 {
		return nil, p.errAt(start, ruleGeneric, "SWARM-LABELS must contain at least one key=value pair")
	}
	d.SpanVal = model.Join(spanOf(start), spanOf(last))
	return d, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range []byte(s) {
		if c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			continue
		}
		if i > 0 && c >= '0' && c <= '9' {
			continue
		}
		return false
	}
	return true
}
