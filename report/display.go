package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG    = pterm.FgLightCyan
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	errorStyleBG.Print("internal compiler error")
	errorColorFG.Println(" " + message)
	fmt.Println("This is a bug in the compiler, not in your program.")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	errorStyleBG.Print("fatal error")
	errorColorFG.Println(" " + message)
}

// displayCompileError displays a compile error with its source excerpt.
func displayCompileError(absPath, reprPath string, cerr *CompileError) {
	label := errKindLabels[cerr.Kind]

	if cerr.Span == nil {
		fmt.Printf("%s: ", reprPath)
		errorStyleBG.Print(label)
		fmt.Printf(" %s\n\n", cerr.Message)
		return
	}

	fmt.Printf("%s:%d:%d: ", reprPath, cerr.Span.StartLine+1, cerr.Span.StartCol+1)
	errorStyleBG.Print(label)
	fmt.Printf(" %s\n\n", cerr.Message)
	displaySourceText(absPath, cerr.Span)
}

// displayCompileWarning displays a compile warning.
func displayCompileWarning(absPath, reprPath string, span *TextSpan, message string) {
	if span == nil {
		fmt.Printf("%s: ", reprPath)
		warnStyleBG.Print("warning")
		fmt.Printf(" %s\n\n", message)
		return
	}

	fmt.Printf("%s:%d:%d: ", reprPath, span.StartLine+1, span.StartCol+1)
	warnStyleBG.Print("warning")
	fmt.Printf(" %s\n\n", message)
	displaySourceText(absPath, span)
}

// DisplaySuccess displays a compilation-finished banner with the output path.
func DisplaySuccess(outputPath string) {
	successStyleBG.Print("done")
	fmt.Print(" wrote ")
	infoColorFG.Println(outputPath)
}

// -----------------------------------------------------------------------------

// displaySourceText displays the segment of source text selected by a span
// with line numbers and caret underlining.
func displaySourceText(absPath string, span *TextSpan) {
	file, err := os.Open(absPath)
	if err != nil {
		// The file was readable moments ago; failure here is not worth dying
		// over, the message above already carries the position.
		return
	}
	defer file.Close()

	// Collect the source lines covered by the span.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if sc.Err() != nil || len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation so the excerpt can be shifted
	// flush left.
	minIndent := len(lines[0])
	for _, line := range lines {
		lineIndent := 0
		for _, c := range line {
			if c == ' ' {
				lineIndent++
			} else {
				break
			}
		}

		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		infoColorFG.Printf(lineNumFmtStr, i+span.StartLine+1)
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining starts at the start column on the first line and at
		// column zero on every continuation line; it runs to the end column
		// on the last line and to the end of the line otherwise.
		carretPrefixCount := 0
		if i == 0 {
			carretPrefixCount = span.StartCol - minIndent
		}

		carretSuffixCount := 0
		if i == len(lines)-1 {
			carretSuffixCount = len(line) - span.EndCol
		}

		fmt.Print(strings.Repeat(" ", clampNonNeg(carretPrefixCount)))
		errorColorFG.Println(strings.Repeat("^", clampNonNeg(len(line)-carretSuffixCount-carretPrefixCount-minIndent)))
	}

	fmt.Println()
}

// clampNonNeg clamps tab-expansion skew in caret math to zero.
func clampNonNeg(n int) int {
	if n < 0 {
		return 0
	}

	return n
}
