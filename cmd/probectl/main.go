// probectl runs the self-test suite: one probe per tuning subsystem, each in
// its own simulated environment. Exit code is zero only when every probe
// passes.
package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"

	"github.com/danmuck/mactune/internal/selftest"
)

func main() {
	run := flag.String("run", "", "probe name regex filter")
	flag.Parse()

	probes := selftest.Suite()
	if *run != "" {
		re, err := regexp.Compile(*run)
		if err != nil {
			fatalf("bad -run pattern: %v", err)
		}
		filtered := probes[:0]
		for _, p := range probes {
			if re.MatchString(p.Name) {
				filtered = append(filtered, p)
			}
		}
		probes = filtered
	}
	if len(probes) == 0 {
		fatalf("no probes matched")
	}

	results := selftest.Run(os.Stdout, probes)
	if !selftest.Passed(results) {
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "probectl: "+format+"\n", args...)
	os.Exit(1)
}
