// Command retitle renames e-book files in a directory to the matching titles
// of a reference list.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
