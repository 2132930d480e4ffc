package main

import (
	"flag"

	"github.com/nido/Oclgrind/benchmarks/atomiccounter"
	"github.com/nido/Oclgrind/samples/runner"
)

var n = flag.Uint64("n", 1024, "number of increments")
var local = flag.Uint64("local", 64, "work-group size")

func main() {
	r := new(runner.Runner).ParseFlag().Init()

	benchmark := atomiccounter.NewBenchmark(r.Device())
	benchmark.N = *n
	benchmark.LocalSize = *local

	r.AddBenchmark(benchmark)
	r.Run()
}
