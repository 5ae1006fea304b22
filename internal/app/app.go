package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"

	"typed-builder/internal/analyze"
	"typed-builder/internal/config"
	"typed-builder/internal/ctxlog"
	"typed-builder/internal/diagnostic"
	"typed-builder/internal/gen"
	"typed-builder/internal/plan"
)

// ErrInvalid is returned when the builder definitions have error
// diagnostics. The diagnostics themselves are printed to the output.
var ErrInvalid = errors.New("builder definitions have errors")

// App encapsulates the application's configuration and output streams.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp creates an App printing command output to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	return &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		config: cfg,
	}
}

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "command", a.config.Command, "config", a.config.ConfigPath)

	if a.config.Command == CommandFmt {
		return a.format()
	}

	p, err := a.Plan(ctx)
	if err != nil {
		return err
	}

	switch a.config.Command {
	case CommandGen:
		return a.gen(ctx, p)
	case CommandCheck:
		return a.check(p)
	case CommandDump:
		return a.dump(p)
	default:
		return fmt.Errorf("unknown command %q", a.config.Command)
	}
}

// Plan loads the builder file and the record packages it names and
// resolves the builder schemas.
func (a *App) Plan(ctx context.Context) (*plan.Plan, error) {
	logger := ctxlog.FromContext(ctx)

	f, err := a.loadFile()
	if err != nil {
		return nil, err
	}

	logger.Debug("Builder file loaded.", "builders", len(f.Builders), "dir", f.Dir)

	an := analyze.NewAnalyzer()

	var patterns []string

	for i := range f.Builders {
		b := &f.Builders[i]
		an.IgnoreErrorsIn(b.Output)

		if pattern := f.PackagePattern(b); !slices.Contains(patterns, pattern) {
			patterns = append(patterns, pattern)
		}
	}

	var graph *analyze.TypeGraph
	if len(patterns) > 0 {
		logger.Debug("Loading packages.", "patterns", patterns)

		graph, err = an.LoadPackages(ctx, f.Dir, patterns...)
		if err != nil {
			return nil, err
		}
	} else {
		graph = an.Graph()
	}

	p, err := plan.NewResolver(graph, f).Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving builders: %w", err)
	}

	for _, s := range p.Schemas {
		logger.Debug("Builder resolved.", "record", s.Name, "builder", s.Builder.Name, "into", s.Into.Mode.String())

		for i := range s.Fields {
			fs := &s.Fields[i]
			logger.Debug("Field resolved.",
				"record", s.Name,
				"field", fs.Name,
				"required", fs.Required(),
				"default", fs.DefaultKind.String(),
				"via_mutators", fs.ViaMutators)
		}
	}

	return p, nil
}

func (a *App) gen(ctx context.Context, p *plan.Plan) error {
	logger := ctxlog.FromContext(ctx)

	files, genErr := gen.NewGenerator(gen.DefaultGeneratorConfig()).Generate(p)

	if err := gen.WriteFiles(files); err != nil {
		return err
	}

	for _, file := range files {
		logger.Info("Builder written.", "record", file.Record, "path", file.Path())
	}

	if genErr != nil {
		return genErr
	}

	if !p.Diagnostics.IsValid() {
		a.printDiagnostics(p.Diagnostics)
		return ErrInvalid
	}

	return nil
}

func (a *App) check(p *plan.Plan) error {
	if a.config.JSON {
		data, err := json.MarshalIndent(p.Diagnostics, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding diagnostics: %w", err)
		}

		fmt.Fprintln(a.outW, string(data))
	} else {
		a.printDiagnostics(p.Diagnostics)
	}

	if !p.Diagnostics.IsValid() {
		return ErrInvalid
	}

	return nil
}

func (a *App) printDiagnostics(diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintf(a.outW, "%s: %s\n", d.Severity, d)
	}
}

func (a *App) dump(p *plan.Plan) error {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}

	cfg.Fdump(a.outW, p.Schemas)

	return nil
}

func (a *App) loadFile() (*config.File, error) {
	f, err := config.LoadFile(a.config.ConfigPath)
	if err != nil {
		return nil, err
	}

	if a.config.Package != "" {
		f.Package = a.config.Package
	}

	return f, nil
}

// format prints the builder file as YAML with every default filled in.
// Files that do not validate are reported instead.
func (a *App) format() error {
	f, err := a.loadFile()
	if err != nil {
		return err
	}

	if diags := config.Validate(f); !diags.IsValid() {
		a.printDiagnostics(*diags)
		return ErrInvalid
	}

	data, err := config.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding builder file: %w", err)
	}

	_, err = a.outW.Write(data)

	return err
}
