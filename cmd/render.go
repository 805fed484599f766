package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yi-nology/merchant_console/biz/console"
)

var severityTag = map[console.Severity]string{
	console.SeverityInfo:    "[info]",
	console.SeveritySuccess: "[ok]",
	console.SeverityError:   "[error]",
}

// renderAlert prints the visible alert one line at a time.
func renderAlert(w io.Writer, s console.UiState) {
	if !s.Alert.Visible {
		return
	}
	tag := severityTag[s.Alert.Severity]
	for _, line := range s.Alert.Lines() {
		fmt.Fprintf(w, "%s %s\n", tag, line)
	}
}

// renderList prints the configuration list as a table.
func renderList(w io.Writer, s console.UiState) {
	if len(s.Entries) == 0 {
		if s.EmptyMessage != "" {
			fmt.Fprintln(w, s.EmptyMessage)
		}
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tSYS_ID\tPRODUCT_ID\tENVIRONMENT")
	for _, e := range s.Entries {
		marker := ""
		if e.SysID == s.Selected {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, e.SysID, e.ProductID, e.EnvironmentLabel)
	}
	_ = tw.Flush()
}

// outcome turns an error alert into a command error so the exit status reflects it.
func outcome(w io.Writer, s console.UiState) error {
	if s.Alert.Visible && s.Alert.Severity == console.SeverityError {
		return errors.New(s.Alert.Message)
	}
	renderAlert(w, s)
	return nil
}
