package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sablec/report"
)

const usage = `Usage: sablec [flags|options] <path to root file or module directory>

Flags:
------
-h, --help      Displays usage information (ie. this text).
-v, --version   Displays the current compiler version.
-w, --watch     Recompiles whenever the root source file changes.

Options:
--------
-o,  --outpath    Sets the path for the emitted LLVM IR text.  Defaults to
                  the root file's name with a .ll extension.
-ll, --loglevel   Sets the compiler's log-level.  Valid values are:
                    - "verbose" for outputting all messages (default)
                    - "warn" for outputting errors and warnings
                    - "error" for outputting errors only
                    - "silent" for no output
`

// Prints the usage message and exits the compiler with the given exit code.
func printUsage(exitCode int) {
	fmt.Print(usage, "\n")
	os.Exit(exitCode)
}

// argParser is a command-line argument parser.
type argParser struct {
	// The arguments being parsed.
	args []string

	// The argument parser's position within those arguments.
	ndx int
}

// Set containing all the argument names that correspond to options.
var options = map[string]struct{}{
	"o":         {},
	"ll":        {},
	"-outpath":  {},
	"-loglevel": {},
}

// argumentError displays an argument error and exits the program.
func argumentError(message string, args ...interface{}) {
	fmt.Print("argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// nextArg parses the next command-line argument if one exists.  The first
// value is the name of the argument, empty for a positional one.  The second
// is the argument's value, empty for a flag.  The final value indicates
// whether there was an argument to parse at all.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx < len(ap.args) {
		arg := ap.args[ap.ndx]
		ap.ndx++

		if strings.HasPrefix(arg, "-") { // flag or option
			name := arg[1:]

			if _, ok := options[name]; ok { // option
				// Make sure the option value exists.
				if ap.ndx < len(ap.args) && !strings.HasPrefix(ap.args[ap.ndx], "-") {
					value := ap.args[ap.ndx]
					ap.ndx++
					return name, value, true
				}

				argumentError("option %s requires an argument", strings.TrimLeft(name, "-"))
			} else { // flag
				return name, "", true
			}
		} else { // positional
			return "", arg, true
		}
	}

	// No arguments to parse.
	return "", "", false
}

// useArg attempts to use a single command-line argument to initialize the
// compiler.  If the argument is invalid, the program will exit.
func useArg(c *Compiler, name, value string) {
	switch name {
	case "h", "-help":
		printUsage(0)
	case "v", "-version":
		fmt.Println("sablec v" + SableVersion)
		os.Exit(0)
	case "w", "-watch":
		c.watch = true
	case "ll", "-loglevel":
		var logLevel int
		switch value {
		case "silent":
			logLevel = report.LogLevelSilent
		case "error":
			logLevel = report.LogLevelError
		case "warn":
			logLevel = report.LogLevelWarn
		case "verbose":
			logLevel = report.LogLevelVerbose
		default:
			argumentError("invalid log level")
		}

		report.InitReporter(logLevel)
	case "o", "-outpath":
		c.outputPath = value
	case "":
		if c.srcPath == "" {
			absPath, err := filepath.Abs(value)
			if err != nil {
				argumentError("invalid root path: %s", value)
			}

			c.srcPath = absPath
			c.reprPath = value
		} else {
			argumentError("root path specified multiple times")
		}
	default:
		argumentError("unknown flag: %s", name)
	}
}

// NewCompilerFromArgs creates a new compiler instance based on the given
// command-line arguments, if the arguments are valid and compilation should
// continue.
func NewCompilerFromArgs() *Compiler {
	c := &Compiler{}

	ap := argParser{args: os.Args[1:], ndx: 0}

	// Parse all command line arguments.
	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}

		useArg(c, name, value)
	}

	// Check to make sure a root path was specified.
	if c.srcPath == "" {
		argumentError("a root path must be specified")
	}

	// Set default values for any optional unspecified flags.
	report.InitReporter(report.LogLevelVerbose)

	// A directory root is a module: its manifest names the root file.
	if finfo, err := os.Stat(c.srcPath); err == nil && finfo.IsDir() {
		c.loadManifestRoot()
	} else if err != nil {
		argumentError("invalid root path: %s", err)
	}

	if c.outputPath == "" {
		c.outputPath = strings.TrimSuffix(c.srcPath, filepath.Ext(c.srcPath)) + ".ll"
	}

	return c
}
