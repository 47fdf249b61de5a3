// Command eval-motchallenge computes MOTChallenge metrics for tracker outputs stored as
// <TEST_ROOT>/<SEQUENCE>.txt against ground truth stored as <GT_ROOT>/<SEQUENCE>/gt/gt.txt.
package main

import (
	"os"

	"github.com/LdDl/motmetrics-go/eval"
)

func main() {
	os.Exit(eval.Execute(eval.LayoutMOTChallenge, os.Args[1:], os.Stdout, os.Stderr))
}
