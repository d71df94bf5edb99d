package diffengine

// computeLCSDiff computes a standard longest-common-subsequence table over
// a (length m) and b (length n), then walks back from (0,0) producing
// retained/removed/added tagged lines, per spec.md §4.3. The tie-break —
// when dp[i+1][j] >= dp[i][j+1], prefer advancing in a (remove) — is fixed
// so that CRC identities are stable across runs.
func computeLCSDiff(a, b []string) []string {
	m, n := len(a), len(b)

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	var out []string
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case a[i] == b[j]:
			out = append(out, TagRetained+a[i])
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			out = append(out, TagRemoved+a[i])
			i++
		default:
			out = append(out, TagAdded+b[j])
			j++
		}
	}
	for ; i < m; i++ {
		out = append(out, TagRemoved+a[i])
	}
	for ; j < n; j++ {
		out = append(out, TagAdded+b[j])
	}
	return out
}
