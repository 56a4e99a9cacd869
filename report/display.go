package report

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

var (
	ErrorColorFG = pterm.FgRed
	ErrorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	WarnColorFG  = pterm.FgYellow
	WarnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	InfoColorFG  = pterm.FgLightGreen
	InfoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	ErrorStyleBG.Print("internal compiler error")
	ErrorColorFG.Println(" " + message)
	fmt.Print("This error was not supposed to happen: please open an issue.\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	ErrorStyleBG.Print("fatal error")
	ErrorColorFG.Println(" " + message)
	fmt.Println()
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func displayCompileMessage(label, unitPath, where, message string) {
	if label == "error" {
		ErrorStyleBG.Print(label)
	} else {
		WarnStyleBG.Print(label)
	}

	if where == "" {
		fmt.Printf(" %s: %s\n\n", unitPath, message)
	} else {
		fmt.Printf(" %s: %s: %s\n\n", unitPath, where, message)
	}
}

// displayStdError displays a standard Go error.
func displayStdError(unitPath string, err error) {
	ErrorStyleBG.Print("error")
	ErrorColorFG.Printf(" %s: %s\n\n", unitPath, err)
}

// displayInfo displays an informational message.
func displayInfo(tag, message string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + message)
}

// -----------------------------------------------------------------------------

// displayExprText displays a type expression with the text covered by the
// span underlined with carets.
func displayExprText(expr string, span *TextSpan) {
	expr = strings.ReplaceAll(expr, "\t", " ")

	start, end := span.StartCol, span.EndCol
	if start < 0 {
		start = 0
	}
	if end > len(expr) {
		end = len(expr)
	}
	if end <= start {
		end = start + 1
	}

	fmt.Println("  | " + expr)
	fmt.Print("  | ", strings.Repeat(" ", start))
	ErrorColorFG.Println(strings.Repeat("^", end-start))
	fmt.Println()
}
