package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/lukaszgryglicki/gaussbeam/internal/gaussbeam"
)

func main() {
	gaussbeam.Debug = os.Getenv("DEBUG") != ""
	gaussbeam.Plot = os.Getenv("PLOT") != ""
	if w := os.Getenv("WORKERS"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			fmt.Printf("Error: WORKERS: %v\n", err)
			os.Exit(1)
		}
		gaussbeam.Workers = n
	}
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := ""
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := gaussbeam.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
