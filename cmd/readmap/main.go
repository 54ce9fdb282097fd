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
// File Name:  main.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"readmap"

	"github.com/fatih/color"
	"golang.org/x/exp/slices"
)

// readmap finds approximate read occurrences in a genome with a
// Burrows-Wheeler index

// e.g., readmap -p genome.fa
//       readmap -d 2 genome.fa reads.fq

var readmapHelp = `
Preprocessing

  -p  Build the Burrows-Wheeler index for the genome and save it
      next to the genome file with a .dat extension

Searching

  -d  Maximum edit distance (default 1)

Report

  -align  Column-align the hit table
  -color  Highlight CIGAR operations (ignored with -align)

Performance

  -proc  Number of processors
  -serv  Concurrent searcher count
  -chan  Communication channel depth

Debugging

  -timer  Print timing and throughput on stderr
  -stats  Print tuning parameters on stderr

Examples

  readmap -p genome.fa

  readmap -d 2 genome.fa reads.fq

  readmap genome.fa reads.fq | cut -f 1,3,4

`

// CIGAR operation colors for terminal reports
var (
	matchColor = color.New(color.FgGreen)
	insColor   = color.New(color.FgRed)
	delColor   = color.New(color.FgBlue)
)

// printUsage reminds about the two modes of operation
func printUsage() {

	fmt.Fprintf(os.Stderr, "USAGE:\n\treadmap -p genome\n\treadmap [-d dist] genome reads\n")
}

// buildIndexSet constructs one index record per reference in the genome file
func buildIndexSet(genomeFile string) []*readmap.FMIndex {

	fl, err := os.Open(genomeFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: Unable to open genome file %s\n", genomeFile)
		os.Exit(1)
	}
	defer fl.Close()

	var recs []*readmap.FMIndex

	for fsta := range readmap.FASTAConverter(fl) {
		fmi, err := readmap.NewFMIndex(fsta.SeqID, fsta.Sequence)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\n%sERROR: %s%s\n", readmap.LOUD, err.Error(), readmap.INIT)
			os.Exit(1)
		}
		recs = append(recs, fmi)
	}

	if recs == nil {
		fmt.Fprintf(os.Stderr, "\nERROR: No FASTA records in genome file %s\n", genomeFile)
		os.Exit(1)
	}

	return recs
}

// loadOrBuildIndexSet reuses a saved index when one is present,
// otherwise builds the records and persists them for the next run
func loadOrBuildIndexSet(genomeFile string) []*readmap.FMIndex {

	datFile := genomeFile + readmap.IndexSuffix

	if _, err := os.Stat(datFile); err == nil {
		recs, err := readmap.LoadIndexSet(datFile)
		if err == nil {
			return recs
		}
		// stale or damaged index files are rebuilt
		fmt.Fprintf(os.Stderr, "\n%sWARNING: %s, rebuilding%s\n", readmap.LOUD, err.Error(), readmap.INIT)
	}

	recs := buildIndexSet(genomeFile)

	if err := readmap.SaveIndexSet(datFile, recs); err != nil {
		fmt.Fprintf(os.Stderr, "\n%sWARNING: Unable to save index file %s%s\n", readmap.LOUD, datFile, readmap.INIT)
	}

	return recs
}

// colorizeCigar paints each CIGAR operation group by its kind
func colorizeCigar(cigar string) string {

	var buffer strings.Builder

	start := 0
	for i := 0; i < len(cigar); i++ {
		ch := cigar[i]
		if ch >= '0' && ch <= '9' {
			continue
		}
		group := cigar[start : i+1]
		switch ch {
		case 'M':
			buffer.WriteString(matchColor.Sprint(group))
		case 'I':
			buffer.WriteString(insColor.Sprint(group))
		case 'D':
			buffer.WriteString(delColor.Sprint(group))
		default:
			buffer.WriteString(group)
		}
		start = i + 1
	}
	buffer.WriteString(cigar[start:])

	return buffer.String()
}

// nameLess compares record names with trailing numbers compared numerically
func nameLess(a, b string) (bool, bool) {

	ap, an := readmap.SplitTrailingDigits(a)
	bp, bn := readmap.SplitTrailingDigits(b)

	if ap != bp {
		return ap < bp, false
	}
	if an != bn {
		return an < bn, false
	}
	return false, true
}

// reportLess orders report lines by read name, reference name, and position
func reportLess(a, b string) bool {

	fa := strings.SplitN(a, "\t", 5)
	fb := strings.SplitN(b, "\t", 5)

	if len(fa) < 4 || len(fb) < 4 {
		return a < b
	}

	if less, same := nameLess(fa[0], fb[0]); !same {
		return less
	}
	if less, same := nameLess(fa[1], fb[1]); !same {
		return less
	}

	pa, _ := strconv.Atoi(fa[2])
	pb, _ := strconv.Atoi(fb[2])
	if pa != pb {
		return pa < pb
	}

	return fa[3] < fb[3]
}

// MAIN FUNCTION

func main() {

	// skip past executable name
	args := os.Args[1:]

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "\nERROR: No command-line arguments supplied to readmap\n")
		printUsage()
		os.Exit(1)
	}

	ncpu := runtime.NumCPU()
	if ncpu < 1 {
		ncpu = 1
	}

	// performance arguments
	numProcs := 0
	numServe := 0
	chanDepth := 0
	goGc := 0

	// processing arguments
	preprocess := false
	dist := 1

	// report arguments
	doAlign := false
	doColor := false

	// debugging flags
	timr := false
	stts := false

	inSwitch := true

	// get mode, distance, report, and performance flags in any order
	for {

		inSwitch = true

		switch args[0] {
		case "-p":
			preprocess = true
		case "-d", "-dist":
			dist = readmap.GetNumericArg(args, "Maximum edit distance", 0, 0, 9)
			args = args[1:]

		// report appearance flags
		case "-align", "-table":
			doAlign = true
		case "-color":
			doColor = true

		// performance tuning flags
		case "-proc":
			numProcs = readmap.GetNumericArg(args, "Number of processors", ncpu, 1, ncpu)
			args = args[1:]
		case "-serv":
			numServe = readmap.GetNumericArg(args, "Concurrent searcher count", 0, 1, 128)
			args = args[1:]
		case "-chan":
			chanDepth = readmap.GetNumericArg(args, "Communication channel depth", 0, ncpu, 128)
			args = args[1:]
		case "-gogc":
			goGc = readmap.GetNumericArg(args, "Garbage collection percentage", 0, 50, 1000)
			args = args[1:]

		// debugging flags
		case "-timer":
			timr = true
		case "-stats", "-stat":
			stts = true

		case "-version":
			fmt.Printf("%s\n", readmap.ReadmapVersion)
			return
		case "-help", "--help":
			fmt.Printf("readmap %s\n%s", readmap.ReadmapVersion, readmapHelp)
			return

		default:
			// if not any of the controls, set flag to break out of for loop
			inSwitch = false
		}

		if !inSwitch {
			break
		}

		// skip past argument
		args = args[1:]

		if len(args) < 1 {
			break
		}
	}

	readmap.SetTunings(numProcs, numServe, 0, chanDepth, goGc)

	if stts {
		readmap.PrintStats()
	}

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "\nERROR: Genome file is missing\n")
		printUsage()
		os.Exit(1)
	}

	genomeFile := args[0]
	args = args[1:]

	// PREPROCESSING MODE

	if preprocess {

		recs := buildIndexSet(genomeFile)

		datFile := genomeFile + readmap.IndexSuffix
		if err := readmap.SaveIndexSet(datFile, recs); err != nil {
			fmt.Fprintf(os.Stderr, "\n%sERROR: Unable to save index file %s%s\n", readmap.LOUD, datFile, readmap.INIT)
			os.Exit(1)
		}

		if timr {
			readmap.PrintDuration("reference", len(recs))
		}

		return
	}

	// SEARCH MODE

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "\nERROR: Reads file is missing\n")
		printUsage()
		os.Exit(1)
	}

	readsFile := args[0]

	recs := loadOrBuildIndexSet(genomeFile)

	rfl, err := os.Open(readsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: Unable to open reads file %s\n", readsFile)
		os.Exit(1)
	}
	defer rfl.Close()

	var lines []string

	// drain the searcher pool before sorting the report
	for line := range readmap.SearchReads(recs, readmap.FASTQConverter(rfl), dist) {
		lines = append(lines, line)
	}

	slices.SortFunc(lines, reportLess)

	if doColor && doAlign {
		// colored escape codes would defeat the width calculation
		fmt.Fprintf(os.Stderr, "\nWARNING: -color is ignored with -align\n")
		doColor = false
	}

	if doColor {
		for i, line := range lines {
			flds := strings.SplitN(line, "\t", 5)
			if len(flds) == 5 {
				flds[3] = colorizeCigar(flds[3])
				lines[i] = strings.Join(flds, "\t")
			}
		}
	}

	if doAlign {
		readmap.ChanToStdout(readmap.AlignColumns(strings.NewReader(strings.Join(lines, "")), 2, "llmll"))
	} else {
		readmap.ChanToStdout(readmap.SliceToChan(lines))
	}

	if timr {
		readmap.PrintDuration("hit", len(lines))
	}
}
