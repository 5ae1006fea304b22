package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"typed-builder/internal/app"
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

const usage = `
typed-builder - generates type-state builders for Go structs.

Usage:
  typed-builder [options] <command> [command options]

Commands:
  gen     resolve the builder definitions and write the builder files
  check   validate the builder definitions and print diagnostics
  dump    print the resolved builder schemas
  fmt     print the builder definitions as normalized YAML

Options:
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	global := flag.NewFlagSet("typed-builder", flag.ContinueOnError)
	global.SetOutput(output)

	global.Usage = func() {
		fmt.Fprint(output, usage)
		global.PrintDefaults()
	}

	logFormatFlag := global.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := global.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}

		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if global.NArg() == 0 {
		global.Usage()
		return nil, true, nil
	}

	command := global.Arg(0)

	switch command {
	case app.CommandGen, app.CommandCheck, app.CommandDump, app.CommandFmt:
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", command)}
	}

	cmd := flag.NewFlagSet("typed-builder "+command, flag.ContinueOnError)
	cmd.SetOutput(output)

	configFlag := cmd.String("config", "typed-builder.yaml", "Path to the builder definitions (.yaml, .yml or .hcl).")
	pkgFlag := cmd.String("pkg", "", "Package pattern of builders that name none, relative to the definitions file.")

	var jsonFlag *bool
	if command == app.CommandCheck {
		jsonFlag = cmd.Bool("json", false, "Print diagnostics as JSON.")
	}

	if err := cmd.Parse(global.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}

		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if cmd.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(cmd.Args(), " "))}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg, err := app.NewConfig(app.Config{
		Command:    command,
		ConfigPath: *configFlag,
		Package:    *pkgFlag,
		JSON:       jsonFlag != nil && *jsonFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return cfg, false, nil
}
