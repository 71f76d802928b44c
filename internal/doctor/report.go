package doctor

import (
	"fmt"
	"io"
	"strings"
)

// Write prints report in a plain, greppable layout.
func Write(out io.Writer, report Report) error {
	var b strings.Builder
	fmt.Fprintln(&b, "termagent Doctor Report")
	fmt.Fprintln(&b, strings.Repeat("-", 23))

	for _, check := range report.Checks {
		fmt.Fprintf(&b, "%s %s - %s\n", formatStatus(check.Status), check.Name, check.Summary)
		for _, detail := range check.Details {
			fmt.Fprintf(&b, "    %s\n", detail)
		}
		for _, action := range check.Actions {
			fmt.Fprintf(&b, "    -> %s\n", action)
		}
		fmt.Fprintln(&b)
	}

	if report.ExitCode() == 0 {
		fmt.Fprintln(&b, "All checks completed")
	} else {
		fmt.Fprintln(&b, "One or more checks failed")
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func formatStatus(status Status) string {
	switch status {
	case StatusOK:
		return "[OK ]"
	case StatusWarn:
		return "[WARN]"
	case StatusFail:
		return "[FAIL]"
	default:
		return "[    ]"
	}
}
