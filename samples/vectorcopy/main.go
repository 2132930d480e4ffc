package main

import (
	"flag"

	"github.com/nido/Oclgrind/benchmarks/vectorcopy"
	"github.com/nido/Oclgrind/samples/runner"
)

var n = flag.Uint64("n", 1024, "number of elements to copy")
var local = flag.Uint64("local", 16, "work-group size")

func main() {
	r := new(runner.Runner).ParseFlag().Init()

	benchmark := vectorcopy.NewBenchmark(r.Device())
	benchmark.N = *n
	benchmark.LocalSize = *local

	r.AddBenchmark(benchmark)
	r.Run()
}
