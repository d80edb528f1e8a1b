// Package cmd is the top-level driver package for the Sable compiler: it
// parses command-line arguments, loads build manifests, and runs the
// compilation pipeline from source text to LLVM IR text.
package cmd

import "sablec/report"

// SableVersion is the current compiler version, checked against manifest
// minimum-version gates.
const SableVersion = "0.1.0"

// Compiler represents the overall state and configuration of compilation.
type Compiler struct {
	// srcPath is the absolute path to the root source file.
	srcPath string

	// reprPath is the path shown to the user in diagnostics.
	reprPath string

	// outputPath is the path the LLVM IR text is written to.
	outputPath string

	// manifest is the loaded build manifest, or nil when compiling a bare
	// source file.
	manifest *Manifest

	// watch re-runs the pipeline whenever the source file changes.
	watch bool
}

// RunCompiler is the main entry point for the Sable compiler.  This should
// be called directly from main.
func RunCompiler() int {
	c := NewCompilerFromArgs()

	if c.watch {
		return c.Watch()
	}

	if !c.Compile() {
		return 1
	}

	if report.AnyErrors() {
		return 1
	}

	return 0
}
