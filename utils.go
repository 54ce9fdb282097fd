// ===========================================================================
//
//                            PUBLIC DOMAIN NOTICE
//            National Center for Biotechnology Information (NCBI)
//
//  This software/database is a "United States Government Work" under the
//  terms of the United States Copyright Act. It was written as part of
//  the author's official duties as a United States Government employee and
//  thus cannot be copyrighted. This software/database is freely available
//  to the public for use. The National Library of Medicine and the U.S.
//  Government do not place any restriction on its use or reproduction.
//  We would, however, appreciate having the NCBI and the author cited in
//  any work or product based on this material.
//
//  Although all reasonable efforts have been taken to ensure the accuracy
//  and reliability of the software and data, the NLM and the U.S.
//  Government do not and cannot warrant the performance or results that
//  may be obtained by using this software or data. The NLM and the U.S.
//  Government disclaim all warranties, express or implied, including
//  warranties of performance, merchantability or fitness for any particular
//  purpose.
//
// ===========================================================================
//
// File Name:  utils.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package readmap

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gedex/inflector"
	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReadmapVersion is the current readmap release number
const ReadmapVersion = "1.1"

// ANSI escape codes for terminal color, highlight, and reverse
const (
	RED  = "\033[31m"
	BLUE = "\033[34m"
	BOLD = "\033[1m"
	INIT = "\033[0m"
	LOUD = INIT + RED + BOLD
)

// PERFORMANCE PARAMETERS AND PROCESSING OPTIONS

// Library-specific control variables are set once per program in an
// "init" function or through SetTunings, and are safe because index
// records are immutable after construction and each search owns its
// private stack and buffers.

// performance tuning variables
var (
	chanDepth   int
	numServe    int
	goGc        int
	nCPU        int
	numProcs    int
	serverRatio int
)

// program execution timer
var (
	startTime time.Time
)

// comma-grouping printer for throughput reports
var cmma = message.NewPrinter(language.English)

// SetTunings sets performance parameters
func SetTunings(nmProcs, nmServe, svRatio, chnDepth, gogc int) {

	if gogc < 50 || gogc > 1000 {
		gogc = 600
	}

	goGc = gogc

	// calculate number of simultaneous threads for multiplexed goroutines
	nCPU = runtime.NumCPU()
	if nCPU < 1 {
		nCPU = 1
	}

	// backtracking searches are memory-bound, so physical cores are a
	// better default than hyperthreads
	if nmProcs < 1 {
		nmProcs = nCPU
		if cpuid.CPU.ThreadsPerCore > 1 {
			cores := nCPU / cpuid.CPU.ThreadsPerCore
			if cores > 0 {
				nmProcs = cores
			}
		}
	}

	if nmProcs > nCPU {
		nmProcs = nCPU
	}

	numProcs = nmProcs

	// allow simultaneous threads for multiplexed goroutines
	runtime.GOMAXPROCS(numProcs)

	// adjust garbage collection target percentage
	debug.SetGCPercent(goGc)

	if svRatio < 1 || svRatio > 32 {
		svRatio = 4
	}

	serverRatio = svRatio

	if nmServe > 0 {
		serverRatio = nmServe / numProcs
	} else {
		nmServe = numProcs * serverRatio
	}

	if nmServe > 128 {
		nmServe = 128
	} else if nmServe < 1 {
		nmServe = numProcs
	}

	numServe = nmServe

	// number of channels usually equals number of servers
	if chnDepth < nCPU || chnDepth > 128 {
		chnDepth = numServe
	}

	chanDepth = chnDepth
}

// ChanDepth returns the communication channel depth
func ChanDepth() int {

	return chanDepth
}

// NumServe returns the number of concurrent searchers
func NumServe() int {

	return numServe
}

// GetNumericArg returns an integer argument, reporting an error if no remaining arguments
func GetNumericArg(args []string, name string, zer, min, max int) int {

	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "\nERROR: %s is missing\n", name)
		os.Exit(1)
	}
	value, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: %s (%s) is not an integer\n", name, args[1])
		os.Exit(1)
	}

	// special case for argument value of 0
	if value < 1 {
		return zer
	}
	// limit value to between specified minimum and maximum
	if value < min && min > 0 {
		return min
	}
	if value > max && max > 0 {
		return max
	}
	return value
}

// PrintDuration prints processing rate and program duration
func PrintDuration(name string, recordCount int) {

	stopTime := time.Now()
	duration := stopTime.Sub(startTime)
	seconds := float64(duration.Nanoseconds()) / 1e9

	prec := 3
	if seconds >= 100 {
		prec = 1
	} else if seconds >= 10 {
		prec = 2
	}

	// singular unit names are adjusted to the record count
	if recordCount != 1 {
		name = inflector.Pluralize(name)
	}

	if recordCount > 0 {
		cmma.Fprintf(os.Stderr, "\nProcessed %d %s in %.*f seconds", recordCount, name, prec, seconds)
	} else {
		fmt.Fprintf(os.Stderr, "\nProcessing completed in %.*f seconds", prec, seconds)
	}

	if seconds >= 0.001 && recordCount > 0 {
		rate := int(float64(recordCount) / seconds)
		cmma.Fprintf(os.Stderr, " (%d %s/second)", rate, name)
	}

	fmt.Fprintf(os.Stderr, "\n\n")
}

// PrintStats prints performance tuning parameters
func PrintStats() {

	fmt.Fprintf(os.Stderr, "Thrd %d\n", nCPU)
	if cpuid.CPU.ThreadsPerCore > 0 {
		fmt.Fprintf(os.Stderr, "Core %d\n", nCPU/cpuid.CPU.ThreadsPerCore)
	}
	if cpuid.CPU.LogicalCores > 0 {
		fmt.Fprintf(os.Stderr, "Sock %d\n", nCPU/cpuid.CPU.LogicalCores)
	}
	fmt.Fprintf(os.Stderr, "Mmry %d\n", memory.TotalMemory()/(1024*1024*1024))

	fmt.Fprintf(os.Stderr, "Proc %d\n", numProcs)
	fmt.Fprintf(os.Stderr, "Serv %d\n", numServe)
	fmt.Fprintf(os.Stderr, "Chan %d\n", chanDepth)
	fmt.Fprintf(os.Stderr, "Gogc %d\n", goGc)

	fi, err := os.Stdin.Stat()
	if err == nil {
		mode := fi.Mode().String()
		fmt.Fprintf(os.Stderr, "Mode %s\n", mode)
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// initialize performance tuning variables with default values
func init() {

	startTime = time.Now()

	SetTunings(0, 0, 0, 0, 0)
}
