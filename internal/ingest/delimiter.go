package ingest

// Delimiters are the candidate separators in detection priority order.
var Delimiters = []rune{',', '\t', '|', ';'}

// SniffDelimiter picks the candidate that occurs most often outside double
// quotes in line. Ties go to the earlier candidate; a line without any
// candidate yields a comma.
func SniffDelimiter(line string) rune {
	counts := make(map[rune]int, len(Delimiters))
	quoted := false
	for _, c := range line {
		if c == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[c]++
		}
	}

	best, bestCount := Delimiters[0], 0
	for _, d := range Delimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}
