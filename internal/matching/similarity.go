package matching

// Similarity returns 1 - editDistance(a,b)/max(len(a),len(b)) in [0,1].
// Two empty strings are defined as fully similar. Symmetric and
// deterministic; operates on runes so multi-byte input is not penalized.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes the classic single-character insert/delete/substitute
// edit distance via a full (len(a)+1) x (len(b)+1) dynamic-programming table.
func levenshtein(a, b []rune) int {
	rows, cols := len(a)+1, len(b)+1
	matrix := make([][]int, rows)
	for i := range matrix {
		matrix[i] = make([]int, cols)
		matrix[i][0] = i
	}
	for j := 0; j < cols; j++ {
		matrix[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			m := matrix[i-1][j-1] + cost // substitution
			if ins := matrix[i][j-1] + 1; ins < m {
				m = ins
			}
			if del := matrix[i-1][j] + 1; del < m {
				m = del
			}
			matrix[i][j] = m
		}
	}
	return matrix[rows-1][cols-1]
}
