package linediff

type operation int

const (
	opEqual operation = iota
	opDelete
	opInsert
)

// shortestEditScript returns the Myers edit script turning src into dst. The
// equal operations of the script form a longest common subsequence.
func shortestEditScript(src, dst []string) []operation {
	n := len(src)
	m := len(dst)
	maxD := n + m
	offset := maxD + 1

	// v[offset+k] is the furthest x reached on diagonal k
	v := make([]int, 2*maxD+3) //nolint: mnd
	// trace[d][k+d] is v on diagonal k after d edits, for k in [-d, d]
	var trace [][]int
	var x, y int

loop:
	for d := 0; d <= maxD; d++ {
		for k := -d; k <= d; k += 2 {
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y = x - k
			for x < n && y < m && src[x] == dst[y] {
				x, y = x+1, y+1
			}
			v[offset+k] = x
			if x >= n && y >= m {
				trace = append(trace, snapshot(v, offset, d))
				break loop
			}
		}
		trace = append(trace, snapshot(v, offset, d))
	}

	// Backtracking
	script := make([]operation, 0, n+m)
	x, y = n, m
	for d := len(trace) - 1; d > 0; d-- {
		prev := trace[d-1]
		at := func(k int) int { return prev[k+d-1] }

		k := x - y
		var prevK int
		if k == -d || (k != d && at(k-1) < at(k+1)) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := at(prevK)
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			script = append(script, opEqual)
			x, y = x-1, y-1
		}
		if x == prevX {
			script = append(script, opInsert)
		} else {
			script = append(script, opDelete)
		}
		x, y = prevX, prevY
	}
	for x > 0 && y > 0 {
		script = append(script, opEqual)
		x, y = x-1, y-1
	}

	return reverse(script)
}

func snapshot(v []int, offset, d int) []int {
	out := make([]int, 2*d+1)
	copy(out, v[offset-d:offset+d+1])
	return out
}

func reverse(s []operation) []operation {
	result := make([]operation, len(s))
	for i, op := range s {
		result[len(s)-1-i] = op
	}
	return result
}
