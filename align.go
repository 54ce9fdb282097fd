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
// File Name:  align.go
//
// Author:  Jonathan Kans
//
// ==========================================================================

package readmap

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Inspired by Steve Kinzler's align script - see http://kinzler.com/me/align/

// AlignColumns aligns a tab-delimited table to the computed widths of
// individual columns.
func AlignColumns(inp io.Reader, padding int, align string) <-chan string {

	/*
	   column alignment letters, with last repeated as needed:

	   l  left
	   c  center
	   r  right
	   m  right, commas to group by 3 digits
	*/

	if inp == nil {
		return nil
	}

	out := make(chan string, ChanDepth())
	if out == nil {
		return nil
	}

	// used for adding commas every 3 digits
	p := message.NewPrinter(language.English)

	spaces := "                              "

	// spaces between columns
	pad := "  "

	lettrs := make(map[int]rune)
	lst := 'l'

	if padding > 0 && padding < 30 {
		pad = spaces[0:padding]
	}

	for i, ch := range align {
		lettrs[i] = ch
		lst = ch
	}

	alignTable := func(inp io.Reader, out chan<- string) {

		// close channel when all lines have been sent
		defer close(out)

		var arry []string

		width := make(map[int]int)

		scanr := bufio.NewScanner(inp)

		// clean up spaces, insert commas, calculate column widths
		for scanr.Scan() {

			line := scanr.Text()
			if line == "" {
				continue
			}

			var flds []string

			for i, str := range strings.Split(line, "\t") {

				str = CompressRunsOfSpaces(str)
				str = strings.TrimSpace(str)

				code, ok := lettrs[i]
				if !ok {
					code = lst
				}

				if code == 'm' && IsAllDigits(str) {
					val, err := strconv.Atoi(str)
					if err == nil {
						str = p.Sprintf("%d", val)
					}
				}

				flds = append(flds, str)

				// determine maximum length of current column
				ln := utf8.RuneCountInString(str)
				if ln > width[i] {
					width[i] = ln
				}
			}

			arry = append(arry, strings.Join(flds, "\t"))
		}

		var buffer strings.Builder

		// process saved lines
		for _, line := range arry {

			buffer.Reset()

			btwn := ""

			for i, str := range strings.Split(line, "\t") {

				buffer.WriteString(btwn)

				code, ok := lettrs[i]
				if !ok {
					code = lst
				}

				ln := utf8.RuneCountInString(str)
				diff := width[i] - ln

				lft := 0
				rgt := 0

				// calculate left and right padding by column alignment
				if diff > 0 {
					switch code {
					case 'r', 'm':
						lft = diff
					case 'c':
						lft = diff / 2
						rgt = diff - lft
					default:
						rgt = diff
					}
				}

				for lft > 0 {
					lft--
					buffer.WriteString(" ")
				}

				buffer.WriteString(str)
				btwn = pad

				for rgt > 0 {
					rgt--
					buffer.WriteString(" ")
				}
			}

			txt := strings.TrimRight(buffer.String(), " ") + "\n"

			// send adjusted line down output channel
			out <- txt
		}
	}

	// launch single alignment goroutine
	go alignTable(inp, out)

	return out
}
