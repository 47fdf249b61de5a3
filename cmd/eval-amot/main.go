// Command eval-amot computes MOTChallenge metrics for AMOT tracker outputs stored as
// <TEST_ROOT>/<SCENE>-<CAMERA>.txt against ground truth <GT_ROOT>/<SCENE>/gt/<CAMERA>.csv.
package main

import (
	"os"

	"github.com/LdDl/motmetrics-go/eval"
)

func main() {
	os.Exit(eval.Execute(eval.LayoutAMOT, os.Args[1:], os.Stdout, os.Stderr))
}
