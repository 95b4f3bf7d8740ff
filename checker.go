package bfrun

import (
	"fmt"

	sm "github.com/xrash/smetrics"
)

// CheckResult scores a program's actual output against what was expected.
// Distance is Wagner-Fischer edit distance (unit insert/delete, substitute
// cost 2); Similarity is Jaro-Winkler in [0,1]. The score is meant for
// humans triaging a near-miss, exit codes only care about Match.
type CheckResult struct {
	Match      bool
	Distance   int
	Similarity float64
}

func (c *CheckResult) String() string {
	if c.Match {
		return "match"
	}
	return fmt.Sprintf("mismatch (distance: %d, similarity: %.3f)", c.Distance, c.Similarity)
}

func Check(expected, actual []byte) *CheckResult {
	e, a := string(expected), string(actual)
	if e == a {
		return &CheckResult{Match: true, Similarity: 1.0}
	}
	return &CheckResult{
		Distance:   sm.WagnerFischer(e, a, 1, 1, 2),
		Similarity: sm.JaroWinkler(e, a, 0.7, 4),
	}
}
