package cmd

import (
	"os"

	"sablec/lower"
	"sablec/report"
	"sablec/syntax"
	"sablec/walk"
)

// Compile runs the full compilation pipeline on the root source file: parse,
// semantic analysis, lowering to LLVM IR, and writing the rendered IR text to
// the output path.  It returns whether compilation succeeded.
func (c *Compiler) Compile() bool {
	src, err := os.ReadFile(c.srcPath)
	if err != nil {
		report.ReportFatal("unable to open source file at `%s`: %s", c.srcPath, err.Error())
	}

	crate, cerr := syntax.ParseString(c.srcPath, c.reprPath, string(src))
	if cerr != nil {
		report.ReportCompileError(c.srcPath, c.reprPath, cerr)
		return false
	}

	res, cerr := walk.Check(crate)
	if cerr != nil {
		report.ReportCompileError(c.srcPath, c.reprPath, cerr)
		return false
	}

	mod := lower.Lower(crate, res)

	if err := lower.Verify(mod); err != nil {
		report.ReportICE("%s", err.Error())
	}

	if err := os.WriteFile(c.outputPath, []byte(mod.String()), 0644); err != nil {
		report.ReportFatal("unable to write output to `%s`: %s", c.outputPath, err.Error())
	}

	report.DisplaySuccess(c.outputPath)
	return true
}
