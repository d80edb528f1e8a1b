package report

import "sync"

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during compilation.  The reporter respects the set log
// level and is synchronized: its methods can be safely called from multiple
// goroutines.
type Reporter struct {
	// The mutex used to synchronize the reporting methods.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors reported so far.
	errorCount int

	// The number of warnings reported so far.
	warnCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// rep is the global reporter instance.
var rep *Reporter

// InitReporter initializes the global error reporter to the given log level.
// If the reporter has already been initialized, this function does nothing.
func InitReporter(logLevel int) {
	if rep == nil {
		rep = &Reporter{
			m:        &sync.Mutex{},
			logLevel: logLevel,
		}
	}
}

// ReportCompileError reports a compile error to the user.  The absPath and
// reprPath identify the erroneous source file: the first is used to read the
// source excerpt back, the second is the path shown to the user.
func ReportCompileError(absPath, reprPath string, cerr *CompileError) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		displayCompileError(absPath, reprPath, cerr)
	}
}

// ReportCompileWarning reports a compile warning to the user.
func ReportCompileWarning(absPath, reprPath string, span *TextSpan, message string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warnCount++

	if rep.logLevel > LogLevelWarn {
		displayCompileWarning(absPath, reprPath, span, message)
	}
}

// AnyErrors returns whether or not any errors have been reported.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount > 0
}

// Counts returns the number of errors and warnings reported so far.
func Counts() (int, int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount, rep.warnCount
}
