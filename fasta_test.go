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
// File Name:  fasta_test.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package readmap

import (
	"reflect"
	"strings"
	"testing"
)

func TestFASTAConverter(t *testing.T) {

	input := ">chr1 first test sequence\nACGT\nACGT\n>chr2\n\nTT TT\n>empty\n"

	var recs []FASTARecord
	for rec := range FASTAConverter(strings.NewReader(input)) {
		recs = append(recs, rec)
	}

	expected := []FASTARecord{
		{SeqID: "chr1", Title: "first test sequence", Length: 8, Sequence: "ACGTACGT"},
		{SeqID: "chr2", Title: "", Length: 4, Sequence: "TTTT"},
		{SeqID: "empty", Title: "", Length: 0, Sequence: ""},
	}

	if !reflect.DeepEqual(recs, expected) {
		t.Errorf("FASTAConverter: got %v, expected %v", recs, expected)
	}
}

func TestFASTAConverterSkipsLeadingJunk(t *testing.T) {

	input := "no defline yet\n>chr1\nacgt\n"

	var recs []FASTARecord
	for rec := range FASTAConverter(strings.NewReader(input)) {
		recs = append(recs, rec)
	}

	if len(recs) != 1 || recs[0].SeqID != "chr1" || recs[0].Sequence != "acgt" {
		t.Errorf("FASTAConverter with leading junk: got %v", recs)
	}
}

func TestFASTQConverter(t *testing.T) {

	input := "@read1\niss\n+\nIII\n@read2\ncat\n"

	var recs []FASTQRecord
	for rec := range FASTQConverter(strings.NewReader(input)) {
		recs = append(recs, rec)
	}

	expected := []FASTQRecord{
		{SeqID: "read1", Sequence: "iss", Extra: []string{"+", "III"}},
		{SeqID: "read2", Sequence: "cat"},
	}

	if !reflect.DeepEqual(recs, expected) {
		t.Errorf("FASTQConverter: got %v, expected %v", recs, expected)
	}
}

func TestFASTQConverterEmptyRead(t *testing.T) {

	input := "@read1\n@read2\nacgt\n"

	var recs []FASTQRecord
	for rec := range FASTQConverter(strings.NewReader(input)) {
		recs = append(recs, rec)
	}

	expected := []FASTQRecord{
		{SeqID: "read1"},
		{SeqID: "read2", Sequence: "acgt"},
	}

	if !reflect.DeepEqual(recs, expected) {
		t.Errorf("FASTQConverter with empty read: got %v, expected %v", recs, expected)
	}
}
