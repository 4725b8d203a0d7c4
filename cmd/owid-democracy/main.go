// owid-democracy writes owid_democracy.csv for the scrolly story.
//
// Usage:
//
//	owid-democracy [--config owid.yaml] [--output path] [--min-year 2001]
//	owid-democracy describe [--skip col,...] <csv>
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(&options{}).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
