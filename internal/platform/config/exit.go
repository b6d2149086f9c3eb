package config

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	exitWriter io.Writer = os.Stderr
	exitFunc             = os.Exit
)

// Exitf writes a formatted error line to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(exitWriter, message)
	exitFunc(1)
}
