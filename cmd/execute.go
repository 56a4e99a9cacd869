// Package cmd is the top-level "driver" package for the compiler: it parses
// command-line arguments and runs code generation over compilation units.
package cmd

import (
	"context"
	"os"
	"path/filepath"

	"actorc/common"
	"actorc/depm"
	"actorc/report"

	"github.com/ComedicChimera/olive"
	"go.uber.org/zap"
)

// Execute is the main entry point for the `actorc` CLI utility.  It returns
// the process exit code.
func Execute() int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("actorc", "actorc generates memory layouts and trace functions for actor types", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "generate code for compilation units", true)
	buildCmd.AddPrimaryArg("unit-path", "the path to a unit file or a directory of unit files", true)
	buildCmd.AddStringArg("outdir", "o", "the directory to write output to", false)
	buildCmd.AddFlag("manifest", "m", "indicates whether layout manifests should be written")

	initCmd := cli.AddSubcommand("init", "create a starter unit file", true)
	initCmd.AddPrimaryArg("unit-name", "the name of the unit", true)

	cli.AddSubcommand("version", "print the compiler version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal("%s", err.Error())
	}

	logLevel := report.LogLevelFromName(result.Arguments["loglevel"].(string))
	report.InitReporter(logLevel)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		return execBuildCommand(subResult, logLevel)
	case "init":
		return execInitCommand(subResult)
	case "version":
		report.ReportInfo("version", "%s", common.CompilerID)
	}

	return 0
}

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(result *olive.ArgParseResult, logLevel int) int {
	// get the primary argument: the root path
	rootPath, _ := result.PrimaryArg()

	outputDir := ""
	if outArg, ok := result.Arguments["outdir"]; ok {
		outputDir = outArg.(string)
	}

	logger := newLogger(logLevel)
	defer logger.Sync()

	c := NewCompiler(rootPath, outputDir, result.HasFlag("manifest"), logger)
	if !c.Run(context.Background()) || report.AnyErrors() {
		return 1
	}

	return 0
}

// execInitCommand executes the init subcommand: it writes a starter unit file
// into the working directory.
func execInitCommand(result *olive.ArgParseResult) int {
	name, _ := result.PrimaryArg()
	if !depm.IsValidIdentifier(name) {
		report.ReportFatal("unit name must be a valid identifier")
	}

	path := filepath.Join(".", name+common.UnitFileExt)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		report.ReportFatal("unable to create unit file: %s", err)
	}
	defer f.Close()

	if err := depm.WriteUnitTemplate(f, name); err != nil {
		report.ReportFatal("unable to write unit file: %s", err)
	}

	report.ReportInfo("created", "%s", path)
	return 0
}

// newLogger creates the logger for the generator's debug output.  Debug
// output is only produced at the verbose log level.
func newLogger(logLevel int) *zap.Logger {
	if logLevel < report.LogLevelVerbose {
		return zap.NewNop()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)

	logger, err := cfg.Build()
	if err != nil {
		report.ReportFatal("unable to create logger: %s", err)
	}

	return logger
}
