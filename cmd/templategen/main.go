package main

import (
	"fmt"
	"os"

	"investor-reporting/internal/metrics"
)

// Prints a starter prompt template generated from the metrics field table.
// Redirect to a file, edit freely, and point TEMPLATE_PATH at it.
func main() {
	if _, err := fmt.Fprint(os.Stdout, metrics.TemplateSkeleton()); err != nil {
		fmt.Fprintln(os.Stderr, "write template:", err)
		os.Exit(1)
	}
}
