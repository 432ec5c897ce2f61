package commands

import (
	"io"
	"os"
)

// writerOrStdout returns w, or standard output when w is nil.
func writerOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
