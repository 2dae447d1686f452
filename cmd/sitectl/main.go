// Command sitectl administers a Tree Troopers site database from the shell:
// schema migration, content and theme resets, shared events and the
// developer account.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
