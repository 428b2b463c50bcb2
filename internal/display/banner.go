package display

import (
	"fmt"
	"os"

	"github.com/backmassage/slidecast/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` ____  _ _     _                     _
/ ___|| (_) __| | ___  ___ __ _ ___| |_
\___ \| | |/ _`+"`"+` |/ _ \/ __/ _`+"`"+` / __| __|
 ___) | | | (_| |  __/ (_| (_| \__ \ |_
|____/|_|_|\__,_|\___|\___\__,_|___/\__|
`)
	if logging.Magenta != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
