// Package runner configures a simulated device and drives benchmarks on
// it. Sample mains create a Runner, add a benchmark, and call Run.
package runner

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/gorilla/mux"
	"github.com/tebeka/atexit"

	"github.com/nido/Oclgrind/emu"
	"github.com/nido/Oclgrind/plugins"
)

var verboseFlag = flag.Bool("verbose", false,
	"log every simulator event to stdout.")
var parallelFlag = flag.Int("parallel", 1,
	"number of worker goroutines executing work-groups.")
var serverFlag = flag.String("server", "",
	"serve run statistics over HTTP on this address.")

// A Benchmark assembles a kernel, runs it on the device, and checks the
// result.
type Benchmark interface {
	Run() error
	Verify() error
}

// A Runner owns the device and the stock plugins for one sample run.
type Runner struct {
	device     *emu.Device
	counter    *plugins.InstCounter
	benchmarks []Benchmark
}

// ParseFlag parses the command line.
func (r *Runner) ParseFlag() *Runner {
	flag.Parse()
	return r
}

// Init creates the device and attaches plugins per the flags.
func (r *Runner) Init() *Runner {
	r.device = emu.NewDevice()
	r.device.NumWorkers = *parallelFlag

	r.counter = plugins.NewInstCounter()
	if err := r.device.AddPlugin(r.counter); err != nil {
		log.Panic(err)
	}
	if *verboseFlag {
		if err := r.device.AddPlugin(plugins.NewLogger(os.Stdout)); err != nil {
			log.Panic(err)
		}
	}

	atexit.Register(r.reportStats)

	if *serverFlag != "" {
		go r.serveStats(*serverFlag)
	}
	return r
}

// Device returns the simulated device.
func (r *Runner) Device() *emu.Device {
	return r.device
}

// AddBenchmark queues a benchmark for Run.
func (r *Runner) AddBenchmark(b Benchmark) {
	r.benchmarks = append(r.benchmarks, b)
}

// Run executes every queued benchmark and verifies its result. The
// process exits non-zero on the first failure.
func (r *Runner) Run() {
	for _, b := range r.benchmarks {
		if err := b.Run(); err != nil {
			color.Red("run failed: %v", err)
			atexit.Exit(1)
		}
		if err := b.Verify(); err != nil {
			color.Red("verification failed: %v", err)
			atexit.Exit(1)
		}
		color.Green("passed")
	}
	atexit.Exit(0)
}

func (r *Runner) reportStats() {
	color.Cyan("instructions %d, loads %d, stores %d, atomics %d",
		atomic.LoadUint64(&r.counter.InstCount),
		atomic.LoadUint64(&r.counter.LoadCount),
		atomic.LoadUint64(&r.counter.StoreCount),
		atomic.LoadUint64(&r.counter.AtomicCount))
}

// serveStats exposes the instruction counters over HTTP. The endpoint
// belongs to the sample tool; the simulator core has no network surface.
func (r *Runner) serveStats(addr string) {
	router := mux.NewRouter()
	router.HandleFunc("/stats", func(w http.ResponseWriter, req *http.Request) {
		stats := map[string]uint64{
			"instructions": atomic.LoadUint64(&r.counter.InstCount),
			"loads":        atomic.LoadUint64(&r.counter.LoadCount),
			"stores":       atomic.LoadUint64(&r.counter.StoreCount),
			"atomics":      atomic.LoadUint64(&r.counter.AtomicCount),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}).Methods("GET")

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Printf("stats server: %v", err)
	}
}
