package selfupdate

import (
	"io"

	"github.com/fatih/color"
)

var (
	noticeColor  = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

func notice(w io.Writer, format string, args ...interface{}) {
	_, _ = noticeColor.Fprintf(w, format+"\n", args...)
}

func warning(w io.Writer, format string, args ...interface{}) {
	_, _ = warningColor.Fprintf(w, "WARNING: "+format+"\n", args...)
}

func success(w io.Writer, format string, args ...interface{}) {
	_, _ = successColor.Fprintf(w, format+"\n", args...)
}
