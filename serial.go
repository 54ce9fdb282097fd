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
// File Name:  serial.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package readmap

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/pgzip"
)

// IndexSuffix is appended to the genome file name to form the index file name
const IndexSuffix = ".dat"

// SaveIndexSet writes every index record to a compressed file, in the
// order the references appeared in the genome input
func SaveIndexSet(path string, recs []*FMIndex) error {

	fl, err := os.Create(path)
	if err != nil {
		return err
	}

	// using parallel pgzip for better performance on large indexes
	zpr, err := pgzip.NewWriterLevel(fl, pgzip.BestSpeed)
	if err != nil {
		fl.Close()
		return err
	}

	enc := json.NewEncoder(zpr)
	err = enc.Encode(recs)

	if cerr := zpr.Close(); err == nil {
		err = cerr
	}
	if cerr := fl.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		// do not leave a truncated index behind
		os.Remove(path)
	}

	return err
}

// LoadIndexSet reads index records back from a compressed file,
// verifying internal consistency before returning them
func LoadIndexSet(path string) ([]*FMIndex, error) {

	fl, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fl.Close()

	zpr, err := pgzip.NewReader(fl)
	if err != nil {
		return nil, fmt.Errorf("index file %s is unreadable: %s", path, err.Error())
	}
	defer zpr.Close()

	var recs []*FMIndex

	dec := json.NewDecoder(zpr)
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("index file %s is unreadable: %s", path, err.Error())
	}

	for _, fmi := range recs {
		if err := verifyRecord(fmi); err != nil {
			return nil, fmt.Errorf("index file %s is inconsistent: %s", path, err.Error())
		}
		fmi.refreshLookup()
	}

	return recs, nil
}

// verifyRecord checks the structural invariants of a deserialized record
func verifyRecord(fmi *FMIndex) error {

	if fmi == nil {
		return fmt.Errorf("missing record")
	}

	n := fmi.Length
	sigma := len(fmi.Letters)

	if n < 1 {
		return fmt.Errorf("record %s has no text", fmi.Name)
	}
	if sigma < 1 || fmi.Letters[0] != Sentinel {
		return fmt.Errorf("record %s has a malformed alphabet", fmi.Name)
	}
	if len(fmi.SA) != n {
		return fmt.Errorf("record %s has a malformed suffix array", fmi.Name)
	}
	if fmi.SA[0] != n-1 {
		return fmt.Errorf("record %s does not start with the sentinel suffix", fmi.Name)
	}
	if len(fmi.First) != sigma {
		return fmt.Errorf("record %s has a malformed first-occurrence table", fmi.Name)
	}
	if len(fmi.Ranks) != n+1 {
		return fmt.Errorf("record %s has a malformed rank table", fmi.Name)
	}
	for _, row := range fmi.Ranks {
		if len(row) != sigma {
			return fmt.Errorf("record %s has a malformed rank table", fmi.Name)
		}
	}

	return nil
}
