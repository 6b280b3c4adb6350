// dccverify validates a decoded digital COVID certificate offline against
// local rule, signer certificate and CRL files.
//
// Usage:
//
//	dccverify validate --cert cert.json --rules rules.json --keys keys.json --mode 2G
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
