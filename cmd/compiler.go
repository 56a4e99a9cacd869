package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"actorc/codegen"
	"actorc/common"
	"actorc/depm"
	"actorc/generate"
	"actorc/genname"
	"actorc/manifest"
	"actorc/report"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Compiler represents the overall state and configuration of a build.
type Compiler struct {
	// rootAbsPath is the absolute path to the unit file or directory of unit
	// files to build.
	rootAbsPath string

	// outputDir is the directory to write output to.
	outputDir string

	// emitManifest indicates whether layout manifests are written.
	emitManifest bool

	logger *zap.Logger
}

// UnitOutput describes the files produced for a single unit.
type UnitOutput struct {
	Unit         string
	IRPath       string
	ManifestPath string
	Layouts      int
	Gaps         int
}

// NewCompiler creates a new compiler.  If outputDir is empty, output is written
// next to the unit files.
func NewCompiler(rootPath, outputDir string, emitManifest bool, logger *zap.Logger) *Compiler {
	rootAbsPath, err := filepath.Abs(rootPath)
	if err != nil {
		report.ReportFatal("error calculating absolute path: %s", err)
	}

	if outputDir != "" {
		if outputDir, err = filepath.Abs(outputDir); err != nil {
			report.ReportFatal("invalid output directory: %s", err)
		}
	}

	return &Compiler{
		rootAbsPath:  rootAbsPath,
		outputDir:    outputDir,
		emitManifest: emitManifest,
		logger:       logger,
	}
}

// Run builds every unit.  Units are independent so they are built
// concurrently, each with its own generator.  It returns whether all units
// were built without errors.
func (c *Compiler) Run(ctx context.Context) bool {
	paths, err := c.findUnits()
	if err != nil {
		report.ReportFatal("unable to locate unit files: %s", err)
	}

	if len(paths) == 0 {
		report.ReportFatal("no unit files found at `%s`", c.rootAbsPath)
	}

	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
			report.ReportFatal("unable to create output directory: %s", err)
		}
	}

	outputs := make([]*UnitOutput, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			out, err := c.BuildUnit(path)
			if err != nil {
				return err
			}

			outputs[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		report.ReportFatal("%s", err)
	}

	ok := true
	for _, out := range outputs {
		if out == nil {
			ok = false
			continue
		}

		report.ReportInfo("generated", "%s (%d layouts) -> %s", out.Unit, out.Layouts, out.IRPath)
	}

	if n := report.WarningCount(); n > 0 {
		report.ReportInfo("warnings", "%d warnings emitted", n)
	}

	return ok
}

// BuildUnit builds a single unit file.  Errors in the unit are reported and
// a nil output is returned; the returned error is only set for output
// failures.
func (c *Compiler) BuildUnit(path string) (*UnitOutput, error) {
	unit, err := depm.LoadUnit(path)
	if err != nil {
		reportUnitError(path, err)
		return nil, nil
	}

	log := c.logger.With(zap.String("unit", unit.Name))

	opts := []generate.Option{
		generate.WithLogger(log),
		generate.WithNamer(genname.NewNamer(unit.Options.MaxNameLen)),
		generate.WithDescriptors(unit.Options.Descriptors),
	}

	if unit.Options.Verify {
		opts = append(opts, generate.WithFinisher(codegen.FinishFunc))
	} else {
		opts = append(opts, generate.WithFinisher(nil))
	}

	gen := generate.NewGenerator(opts...)

	failed := false
	for i, use := range unit.Uses {
		if _, err := gen.GenType(use.Type); err != nil {
			report.ReportCompileError(unit.AbsPath, fmt.Sprintf("use %d `%s`", i+1, use.Expr), "%s", err)
			failed = true
		}
	}

	for _, gap := range gen.Gaps() {
		report.ReportCompileWarning(
			unit.AbsPath,
			fmt.Sprintf("layout `%s`, slot %d", gap.Layout, gap.Slot),
			"no trace strategy for field of type `%s`: the field will not be traced",
			gap.Type.Repr(),
		)
	}

	if failed {
		return nil, nil
	}

	gen.Finish()

	out := &UnitOutput{
		Unit:    unit.Name,
		IRPath:  c.outputPath(unit, common.IRFileExt),
		Layouts: len(gen.Layouts()),
		Gaps:    len(gen.Gaps()),
	}

	if err := os.WriteFile(out.IRPath, []byte(gen.Module().String()), 0o644); err != nil {
		return nil, fmt.Errorf("unable to write output for unit `%s`: %w", unit.Name, err)
	}

	if c.emitManifest {
		m, err := manifest.Build(unit.Name, gen)
		if err != nil {
			return nil, fmt.Errorf("unable to build manifest for unit `%s`: %w", unit.Name, err)
		}

		out.ManifestPath = c.outputPath(unit, common.ManifestFileExt)
		if err := manifest.Write(out.ManifestPath, m); err != nil {
			return nil, fmt.Errorf("unable to write manifest for unit `%s`: %w", unit.Name, err)
		}
	}

	return out, nil
}

// findUnits returns the paths of all unit files to build in a stable order.
func (c *Compiler) findUnits() ([]string, error) {
	finfo, err := os.Stat(c.rootAbsPath)
	if err != nil {
		return nil, err
	}

	if !finfo.IsDir() {
		return []string{c.rootAbsPath}, nil
	}

	entries, err := os.ReadDir(c.rootAbsPath)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), common.UnitFileExt) {
			paths = append(paths, filepath.Join(c.rootAbsPath, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// outputPath returns the path of an output file of a unit.
func (c *Compiler) outputPath(unit *depm.Unit, ext string) string {
	dir := c.outputDir
	if dir == "" {
		dir = filepath.Dir(unit.AbsPath)
	}

	return filepath.Join(dir, unit.Name+ext)
}

// reportUnitError reports an error loading a unit.
func reportUnitError(path string, err error) {
	var ee *depm.ExprError
	var ue *depm.UnitError

	switch {
	case errors.As(err, &ee):
		report.ReportExprError(path, ee.Where, ee.Expr, ee.Err)
	case errors.As(err, &ue):
		report.ReportCompileError(path, ue.Where, "%s", ue.Message)
	default:
		report.ReportStdError(path, err)
	}
}
