package common

// Version is the current actorc version as a string.
const Version string = "0.1.0"

// CompilerID is the string printed by `actorc version`.
const CompilerID string = "actorc " + Version

// UnitFileExt is the file extension for compilation unit files.
const UnitFileExt string = ".unit.toml"

// IRFileExt is the file extension for emitted LLVM IR text.
const IRFileExt string = ".ll"

// ManifestFileExt is the file extension for layout manifests.
const ManifestFileExt string = ".lm"

// BuiltinPackage is the package name of the builtin universe.
const BuiltinPackage string = "builtin"
