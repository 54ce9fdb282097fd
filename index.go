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
// File Name:  index.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package readmap

import (
	"fmt"
	"os"
	"strings"

	"github.com/pbnjay/memory"
	"golang.org/x/exp/slices"
)

// Sentinel terminates the reference text and sorts before every other letter
const Sentinel = '$'

// FMIndex bundles the suffix array, rank table, first-occurrence table,
// and alphabet of one sentinel-terminated reference. The record is
// immutable after construction, so any number of searches may share it
// without synchronization.
type FMIndex struct {
	Name    string
	Length  int
	Letters []byte
	SA      []int
	Ranks   [][]int
	First   []int

	// letter to alphabet rank, rebuilt after deserialization
	lookup [256]int
}

// NewFMIndex builds the index record for one named reference sequence
func NewFMIndex(name, sequence string) (*FMIndex, error) {

	if strings.IndexByte(sequence, Sentinel) >= 0 {
		return nil, fmt.Errorf("reference %s contains the reserved sentinel character", name)
	}

	text := sequence + string(Sentinel)
	n := len(text)

	fmi := &FMIndex{Name: name, Length: n}

	fmi.Letters = distinctLetters(text)
	fmi.refreshLookup()

	// the dense rank table dominates the footprint
	footprint := uint64(n+1) * uint64(len(fmi.Letters)) * 8
	if footprint > memory.TotalMemory()/2 {
		fmt.Fprintf(os.Stderr, "\n%sWARNING: rank table for %s needs %d megabytes%s\n",
			LOUD, name, footprint/(1024*1024), INIT)
	}

	fmi.SA = sortSuffixes(text, fmi.lookup[:])
	fmi.buildRanks(text)
	fmi.buildFirst(text)

	return fmi, nil
}

// distinctLetters collects the characters of the text, sentinel first,
// remaining letters in ascending order
func distinctLetters(text string) []byte {

	var seen [256]bool
	var letters []byte

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if !seen[ch] {
			seen[ch] = true
			if ch != Sentinel {
				letters = append(letters, ch)
			}
		}
	}

	slices.Sort(letters)

	return append([]byte{Sentinel}, letters...)
}

// refreshLookup rebuilds the letter-to-rank table from the alphabet
func (fmi *FMIndex) refreshLookup() {

	for i := range fmi.lookup {
		fmi.lookup[i] = -1
	}
	for i, ch := range fmi.Letters {
		fmi.lookup[ch] = i
	}
}

// sortSuffixes runs a least-significant-digit radix sort over all
// suffixes of the text, one stable counting pass per character
// position, and returns the suffix array
func sortSuffixes(text string, lookup []int) []int {

	n := len(text)
	sigma := 0
	for _, r := range lookup {
		if r >= sigma {
			sigma = r + 1
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	next := make([]int, n)
	counts := make([]int, sigma+1)

	// positions beyond the end of a suffix fall into the sentinel bucket,
	// which sorts first
	bucketAt := func(suffix, pos int) int {
		if suffix+pos >= n {
			return 0
		}
		return lookup[text[suffix+pos]]
	}

	for pos := n - 1; pos >= 0; pos-- {

		for i := range counts {
			counts[i] = 0
		}
		for _, suffix := range order {
			counts[bucketAt(suffix, pos)]++
		}

		// prefix sums give each bucket its starting slot
		total := 0
		for i, ct := range counts {
			counts[i] = total
			total += ct
		}

		// stable scatter preserves the order established by later positions
		for _, suffix := range order {
			bkt := bucketAt(suffix, pos)
			next[counts[bkt]] = suffix
			counts[bkt]++
		}

		order, next = next, order
	}

	return order
}

// bwtAt returns the Burrows-Wheeler transform character for one row
func (fmi *FMIndex) bwtAt(text string, row int) byte {

	pos := fmi.SA[row] - 1
	if pos < 0 {
		pos = fmi.Length - 1
	}
	return text[pos]
}

// buildRanks fills the cumulative rank table, one row per text position
// plus the initial all-zero row
func (fmi *FMIndex) buildRanks(text string) {

	n := fmi.Length
	sigma := len(fmi.Letters)

	table := make([][]int, n+1)
	table[0] = make([]int, sigma)

	for i := 1; i <= n; i++ {
		row := make([]int, sigma)
		copy(row, table[i-1])
		row[fmi.lookup[fmi.bwtAt(text, i-1)]]++
		table[i] = row
	}

	fmi.Ranks = table
}

// buildFirst records the first suffix-array row starting with each letter
func (fmi *FMIndex) buildFirst(text string) {

	n := fmi.Length
	sigma := len(fmi.Letters)

	first := make([]int, sigma)
	for i := range first {
		first[i] = n
	}

	found := 0
	for row, suffix := range fmi.SA {
		r := fmi.lookup[text[suffix]]
		if first[r] == n {
			first[r] = row
			found++
			if found == sigma {
				break
			}
		}
	}

	fmi.First = first
}

// LocateInterval applies one backward FM step for letter c to the
// half-open suffix-array interval [lo, hi). Stepping through the
// sentinel or a letter absent from the reference collapses the interval.
func (fmi *FMIndex) LocateInterval(lo, hi int, c byte) (int, int) {

	r := fmi.lookup[c]
	if r <= 0 {
		return lo, lo
	}

	return fmi.First[r] + fmi.Ranks[lo][r], fmi.First[r] + fmi.Ranks[hi][r]
}

// IntervalPositions yields the text positions of the suffixes in [lo, hi)
func (fmi *FMIndex) IntervalPositions(lo, hi int) []int {

	if lo < 0 || hi > fmi.Length || lo >= hi {
		return nil
	}

	positions := make([]int, hi-lo)
	copy(positions, fmi.SA[lo:hi])

	return positions
}

// Alphabet returns the reference alphabet, sentinel first
func (fmi *FMIndex) Alphabet() []byte {

	return fmi.Letters
}
