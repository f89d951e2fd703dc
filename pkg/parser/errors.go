package parser

// errRule names one row of the grammar's error-message/suggestion table.
// Keeping this as a lookup table instead of inline string literals
// scattered through the productions mirrors the defaults engine's
// rule-table style.
type errRule int

const (
	ruleGeneric errRule = iota
	ruleMissingDeploymentID
	ruleMissingServicesSection
	ruleMissingServiceName
	ruleMissingEndService
	ruleImageID
	rulePortMapping
	ruleEnvVariable
	ruleRestartPolicy
	ruleResourceLimits
	ruleBuildArgs
)

type errEntry struct {
	message    string
	suggestion string
}

var errTable = map[errRule]errEntry{
	ruleMissingDeploymentID: {
		message:    "Missing DEPLOYMENT-ID declaration",
		suggestion: "A deployment must begin with DEPLOYMENT-ID <identifier>",
	},
	ruleMissingServicesSection: {
		message:    "Missing SERVICES SECTION",
		suggestion: "Declare SERVICES SECTION before any SERVICE block",
	},
	ruleMissingServiceName: {
		message:    "Missing service name after SERVICE",
		suggestion: "Use SERVICE <name> to open a service block",
	},
	ruleMissingEndService: {
		message:    "Missing 'END SERVICE' statement",
		suggestion: "Each SERVICE block must be closed with 'END SERVICE'",
	},
	ruleImageID: {
		message:    "Invalid IMAGE-ID: expected an image reference",
		suggestion: "Use IMAGE-ID <name>[:<tag>], quoted or bare",
	},
	rulePortMapping: {
		message:    "Invalid port mapping format",
		suggestion: "Use PORT-MAPPING <host_port> TO <container_port>",
	},
	ruleEnvVariable: {
		message:    "Invalid environment variable format",
		suggestion: "Use ENV-VARIABLE {{VAR_NAME}} for templates or ENV-VARIABLE \"literal\" for literals",
	},
	ruleRestartPolicy: {
		message:    "Invalid RESTART-POLICY value",
		suggestion: "Use one of: no, always, on-failure, unless-stopped",
	},
	ruleResourceLimits: {
		message:    "Invalid RESOURCE-LIMITS format",
		suggestion: "Use RESOURCE-LIMITS CPU \"<cpus>\" MEMORY \"<size>\"",
	},
	ruleBuildArgs: {
		message:    "Invalid BUILD-ARGS format",
		suggestion: "Use BUILD-ARGS KEY=\"value\" [KEY=\"value\" ...]",
	},
	ruleGeneric: {
		message:    "Syntax error",
		suggestion: "",
	},
}

func lookupError(rule errRule) (message, suggestion string) {
	e := errTable[rule]
	return e.message, e.suggestion
}
