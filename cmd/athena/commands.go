package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"athena/internal/ioutil"
	"athena/pkg/clock"
	"athena/pkg/diag"
	"athena/pkg/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build <file.ath> [more.ath ...]",
	Short: "Compile one or more .ath files into Docker Compose manifests",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

var validateCmd = &cobra.Command{
	Use:   "validate <file.ath>",
	Short: "Check a .ath file without emitting output",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the DSL this build of athena understands",
	RunE:  runInfo,
}

func init() {
	buildCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output file or directory (default: alongside the source, .yml)")
}

// compileOutcome is one file's result from the batch build path.
type compileOutcome struct {
	path   string
	source string
	result *pipeline.Result
	coll   diag.Collector
	ioErr  error
}

func runBuild(cmd *cobra.Command, args []string) error {
	return withRecover(func() error {
		outcomes := compileAll(args)

		failed := false
		for _, o := range outcomes {
			if o.ioErr != nil {
				printIOError(o.path, o.ioErr)
				return &ioError{msg: o.ioErr.Error()}
			}
			printDiagnostics(o.source, o.coll.All())
			if o.coll.HasErrors() {
				failed = true
				continue
			}
			outPath := outputPathFor(o.path, len(outcomes) > 1)
			if err := ioutil.WriteOutput(outPath, o.result.YAML); err != nil {
				return &ioError{msg: err.Error()}
			}
			if !quiet {
				logger.WithField("file", outPath).Info("wrote compose manifest")
			}
		}

		if failed {
			return fmt.Errorf("compilation failed")
		}
		return nil
	})
}

func runValidate(cmd *cobra.Command, args []string) error {
	return withRecover(func() error {
		path := args[0]
		src, err := ioutil.ReadSource(path)
		if err != nil {
			printIOError(path, err)
			return &ioError{msg: err.Error()}
		}

		_, coll := pipeline.Compile(src, clock.System{})
		printDiagnostics(src, coll.All())
		if coll.HasErrors() {
			return fmt.Errorf("validation failed")
		}
		if !quiet {
			logger.WithField("file", path).Info("valid")
		}
		return nil
	})
}

func runInfo(cmd *cobra.Command, args []string) error {
	return withRecover(func() error {
		fmt.Print(banner)
		fmt.Println("Subcommands: build, validate, info")
		fmt.Println("Directives:  IMAGE-ID, PORT-MAPPING, ENV-VARIABLE, COMMAND, VOLUME-MAPPING,")
		fmt.Println("             DEPENDS-ON, HEALTH-CHECK, RESTART-POLICY, RESOURCE-LIMITS,")
		fmt.Println("             BUILD-ARGS, REPLICAS, UPDATE-CONFIG, SWARM-LABELS")
		fmt.Println("Environment: NETWORK-NAME, NETWORK-OPTIONS, VOLUME-DEFINITION")
		return nil
	})
}

// compileAll compiles every file concurrently: one goroutine per file over
// a plain sync.WaitGroup. A deployment tops out around a hundred services,
// and most invocations name one file, so a worker-pool library would be
// solving a problem this CLI doesn't have.
func compileAll(paths []string) []compileOutcome {
	outcomes := make([]compileOutcome, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			outcomes[i].path = path

			src, err := ioutil.ReadSource(path)
			if err != nil {
				outcomes[i].ioErr = err
				return
			}
			outcomes[i].source = src

			result, coll := pipeline.Compile(src, clock.System{})
			outcomes[i].result = result
			outcomes[i].coll = coll
		}(i, path)
	}
	wg.Wait()
	return outcomes
}

func outputPathFor(sourcePath string, batch bool) string {
	if outputFlag == "" {
		return ioutil.DefaultOutputPath(sourcePath)
	}
	if !batch {
		return outputFlag
	}
	return outputFlag + "/" + ioutil.DefaultOutputPath(sourcePath)
}

func printDiagnostics(source string, diags []diag.Diagnostic) {
	for _, d := range diags {
		rendered := d.Render(source)
		if cfg != nil && cfg.NoColor {
			fmt.Fprint(os.Stderr, rendered)
			continue
		}
		if d.Severity == diag.SeverityWarning {
			color.New(color.FgYellow).Fprint(os.Stderr, rendered)
		} else {
			color.New(color.FgRed).Fprint(os.Stderr, rendered)
		}
	}
}

func printIOError(path string, err error) {
	fmt.Fprintf(os.Stderr, "athena: %s: %v\n", path, err)
}

// withRecover is the top-level panic boundary for every command handler:
// convert the unexpected into a reported failure, never a crash.
func withRecover(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return fn()
}
