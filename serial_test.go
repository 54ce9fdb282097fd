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
// File Name:  serial_test.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package readmap

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestIndexSetRoundTrip(t *testing.T) {

	saved := []*FMIndex{
		mustIndex(t, "chr1", "mississippi"),
		mustIndex(t, "chr2", ""),
		mustIndex(t, "chr3", "acgtacgt"),
	}

	path := filepath.Join(t.TempDir(), "genome.fa"+IndexSuffix)

	if err := SaveIndexSet(path, saved); err != nil {
		t.Fatalf("SaveIndexSet failed: %s", err.Error())
	}

	loaded, err := LoadIndexSet(path)
	if err != nil {
		t.Fatalf("LoadIndexSet failed: %s", err.Error())
	}

	if len(loaded) != len(saved) {
		t.Fatalf("Round trip produced %d records, expected %d", len(loaded), len(saved))
	}

	for i, fmi := range saved {
		if !reflect.DeepEqual(loaded[i], fmi) {
			t.Errorf("Record %s changed across the round trip", fmi.Name)
		}
	}

	// a loaded record supports searching without rebuilding
	hits := collectHits(t, loaded[0], "iss", 0)
	if !hasHit(hits, 2, "3M") || !hasHit(hits, 5, "3M") {
		t.Errorf("Search on loaded record: got %v", hits)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {

	path := filepath.Join(t.TempDir(), "garbage"+IndexSuffix)

	if err := os.WriteFile(path, []byte("not an index"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %s", err.Error())
	}

	if _, err := LoadIndexSet(path); err == nil {
		t.Errorf("LoadIndexSet accepted a garbage file")
	}
}

func TestLoadRejectsInconsistentRecord(t *testing.T) {

	fmi := mustIndex(t, "chr1", "acgtacgt")

	// truncating the suffix array breaks the record invariants
	fmi.SA = fmi.SA[:2]

	path := filepath.Join(t.TempDir(), "broken"+IndexSuffix)

	if err := SaveIndexSet(path, []*FMIndex{fmi}); err != nil {
		t.Fatalf("SaveIndexSet failed: %s", err.Error())
	}

	if _, err := LoadIndexSet(path); err == nil {
		t.Errorf("LoadIndexSet accepted an inconsistent record")
	}
}
