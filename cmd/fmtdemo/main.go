// Command fmtdemo is a profiling harness for fmtlib, adapted from the
// teacher's main/main.go: the same net/http/pprof + runtime/pprof heap
// profile pattern, repurposed from round-tripping a struct through
// fractus.Encode/Decode to driving Format across a representative
// set of templates and argument lists.
package main

import (
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"runtime"
	rtpprof "runtime/pprof"
	"time"

	"github.com/rawbytedev/fmtlib"
	"github.com/rawbytedev/fmtlib/pkg/argscan"
)

// workload is one template and the arguments it expects, run repeatedly to
// give the heap/CPU profile a realistic specifier mix.
type workload struct {
	name     string
	template string
	args     []any
}

var workloads = []workload{
	{
		name:     "integers",
		template: "{0:d} {1:#x} {2:08b}",
		args:     []any{int32(-42), uint32(255), uint32(7)},
	},
	{
		name:     "float",
		template: "{:.3f}",
		args:     []any{3.14159265},
	},
	{
		name:     "mixed-align",
		template: "[{0:<10s}][{1:>6d}][{2:^8.2f}]",
		args:     []any{"left", int32(42), 3.5},
	},
	{
		name:     "two-pass",
		template: "{2:s} {0:d} {1:x}",
		args:     []any{int32(1), uint32(2), "three"},
	},
}

const iterations = 10000

func main() {
	runtime.MemProfileRate = 1

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", mux))
	}()

	dst := make([]byte, 256)
	for i := 0; i < iterations; i++ {
		for _, wl := range workloads {
			n := fmtlib.Format(dst, wl.template, len(wl.args), fmtlib.DefaultRegistry, argscan.New(wl.args...))
			_ = dst[:n]
		}
	}

	f, err := os.Create("fmtdemo.heap.pprof")
	if err != nil {
		log.Fatalf("fmtdemo: create heap profile: %v", err)
	}
	defer f.Close()
	runtime.GC()
	if err := rtpprof.WriteHeapProfile(f); err != nil {
		log.Fatalf("fmtdemo: write heap profile: %v", err)
	}

	log.Printf("fmtdemo: ran %d iterations over %d workloads, pprof on localhost:6060", iterations, len(workloads))
	time.Sleep(5 * time.Minute)
}
