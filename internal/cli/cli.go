package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/modforge/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app
// Config, a boolean indicating if the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("modforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
modforge - module-assembly layer for component-based builds.

Usage:
  modforge [options] [WORKSPACE_PATH]

Arguments:
  WORKSPACE_PATH
    Path to the workspace root containing .hcl build manifests.

Options:
`)
		flagSet.PrintDefaults()
	}

	workspaceFlag := flagSet.String("workspace", "", "Path to the workspace root.")
	wFlag := flagSet.String("w", "", "Path to the workspace root (shorthand).")
	planFlag := flagSet.String("plan", "", "Build plan output path. Default: <build_dir>/plan.yaml. Use '-' for stdout.")
	outputPolicyFlag := flagSet.String("output-policy", "", "Where generated artifacts go. Options: 'source-tree' or 'build-tree'. Overrides the manifest.")
	buildConfigFlag := flagSet.String("build-config", "", "Build configuration tag. Options: 'normal' or 'testing'. Overrides the manifest.")
	buildDirFlag := flagSet.String("build-dir", "", "Build output directory, relative to the workspace root. Overrides the manifest.")
	generatorFlag := flagSet.String("generator", "", "External code generator binary. Overrides the manifest.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var defines []string
	flagSet.Func("define", "Add a global compile definition (KEY=value). Repeatable.", func(v string) error {
		if v == "" {
			return fmt.Errorf("definition must not be empty")
		}
		defines = append(defines, v)
		return nil
	})

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *workspaceFlag != "" {
		path = *workspaceFlag
	} else if *wFlag != "" {
		path = *wFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Workspace path determined.", "path", path)

	if path == "" {
		slog.Debug("No workspace path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if policy := *outputPolicyFlag; policy != "" && policy != "source-tree" && policy != "build-tree" {
		return nil, false, &ExitError{Code: 2, Message: "invalid output-policy: must be 'source-tree' or 'build-tree'"}
	}
	if buildConfig := *buildConfigFlag; buildConfig != "" && buildConfig != "normal" && buildConfig != "testing" {
		return nil, false, &ExitError{Code: 2, Message: "invalid build-config: must be 'normal' or 'testing'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		WorkspacePath: path,
		PlanPath:      *planFlag,
		OutputPolicy:  *outputPolicyFlag,
		BuildConfig:   *buildConfigFlag,
		BuildDir:      *buildDirFlag,
		Generator:     *generatorFlag,
		Defines:       defines,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
