//go:build ignore

// Recorder hot-path profiler
// Runs the measurement core against the null sink in-process so pprof
// shows the harness's own overhead, not the benchmarked library's.
//
// Usage:
//
//	go run scripts/profile-recorder.go -cpuprofile cpu.out -total 5000000 -producers 8
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/wesleyorama2/logbench/internal/adapter"
	"github.com/wesleyorama2/logbench/internal/bench"
)

func main() {
	cpuProfile := flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile to file")
	total := flag.Int("total", 2000000, "messages per pass")
	producers := flag.Int("producers", 8, "producer goroutines")
	passes := flag.Int("passes", 3, "measured passes")
	monitorInterval := flag.Duration("monitor-interval", 2*time.Second, "interval for monitoring stats")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		fmt.Printf("✓ CPU profiling enabled: %s\n", *cpuProfile)
	}

	// Resource monitor
	stopMonitor := make(chan struct{})
	monitorDone := make(chan struct{})

	go func() {
		defer close(monitorDone)
		ticker := time.NewTicker(*monitorInterval)
		defer ticker.Stop()

		fmt.Println("Time\t\tGoroutines\tMemAlloc(MB)\tNumGC")
		for {
			select {
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)
				fmt.Printf("%s\t%d\t\t%.2f\t\t%d\n",
					time.Now().Format("15:04:05"),
					runtime.NumGoroutine(),
					float64(m.Alloc)/1024/1024,
					m.NumGC,
				)
			case <-stopMonitor:
				return
			}
		}
	}()

	initialGoroutines := runtime.NumGoroutine()

	scenario := bench.Scenario{
		Sink:          bench.SinkNull,
		Producers:     *producers,
		MessageBytes:  200,
		TotalMessages: *total,
	}

	ad, err := adapter.New("slog", os.TempDir())
	if err != nil {
		log.Fatal(err)
	}

	exec := bench.NewExecutor(ad)

	startTime := time.Now()
	for pass := 1; pass <= *passes; pass++ {
		res, err := exec.Execute(scenario, 4096)
		if err != nil {
			log.Fatalf("pass %d: %v", pass, err)
		}
		fmt.Printf("pass %d: p50=%dns p99=%dns throughput=%.0f msg/s\n",
			pass, res.Summary.P50.Nanoseconds(), res.Summary.P99.Nanoseconds(), res.Throughput)
	}
	elapsed := time.Since(startTime)

	close(stopMonitor)
	<-monitorDone

	fmt.Printf("\n%d passes of %d messages in %s\n", *passes, *total, elapsed)

	// Give async machinery a beat to wind down before the leak check.
	time.Sleep(100 * time.Millisecond)
	finalGoroutines := runtime.NumGoroutine()
	if finalGoroutines > initialGoroutines+2 {
		fmt.Printf("⚠ WARNING: possible goroutine leak (+%d goroutines)\n", finalGoroutines-initialGoroutines)
	} else {
		fmt.Println("✓ No goroutine leaks detected")
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
		fmt.Printf("✓ Memory profile written: %s\n", *memProfile)
	}
}
