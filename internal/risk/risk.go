// Package risk implements the behavioral risk scorer (spec §4.4): a pure
// reduction over a SemanticSummary into a three-bucket risk level. No
// external state influences scoring, and the same summary always yields
// the same score (spec §3 invariant "behavioral_risk is deterministic").
package risk

import "github.com/standardbeagle/semfora/internal/types"

// Point values from the spec §4.4 table.
const (
	pointsNewImport          = 1
	pointsNewState           = 1
	pointsControlFlow        = 2 // capped once regardless of how many entries
	pointsIOCall             = 2
	pointsPersistenceCall    = 3
	pointsPublicSurfaceChange = 3
)

// ioCallPatterns and persistenceCallPatterns are substring matches against
// a call's name, mirroring the insertion rules in spec §4.3 that classify
// the same identifier families.
var ioCallPatterns = []string{"fetch", "invoke", "http.", "axios", "request"}
var persistenceCallPatterns = []string{"db.", "write", "save", "persist", "insert", "update", "delete"}

// Score computes the total points for a summary per the spec §4.4 table.
func Score(s *types.SemanticSummary) int {
	points := 0

	if len(s.AddedDependencies) > 0 {
		points += pointsNewImport
	}
	if len(s.StateChanges) > 0 {
		points += pointsNewState
	}
	if len(s.ControlFlow) > 0 {
		points += pointsControlFlow
	}
	if hasIOCall(s.Calls) {
		points += pointsIOCall
	}
	if hasPersistenceCall(s.Calls) {
		points += pointsPersistenceCall
	}
	if s.PublicSurfaceChanged {
		points += pointsPublicSurfaceChange
	}

	return points
}

// Bucket maps a point total to a risk level: 0-1 low, 2-3 medium, >=4 high.
// Ties always resolve to the higher bucket (spec §4.4), which the
// half-open ranges below already guarantee.
func Bucket(points int) types.RiskLevel {
	switch {
	case points >= 4:
		return types.RiskHigh
	case points >= 2:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}

// Evaluate scores s and sets its BehavioralRisk field, returning the level
// for convenience.
func Evaluate(s *types.SemanticSummary) types.RiskLevel {
	level := Bucket(Score(s))
	s.BehavioralRisk = level
	return level
}

func hasIOCall(calls []types.Call) bool {
	return matchesAny(calls, ioCallPatterns)
}

func hasPersistenceCall(calls []types.Call) bool {
	return matchesAny(calls, persistenceCallPatterns)
}

func matchesAny(calls []types.Call, patterns []string) bool {
	for _, c := range calls {
		for _, p := range patterns {
			if containsFold(c.Name, p) {
				return true
			}
		}
	}
	return false
}

// containsFold is a small ASCII case-insensitive substring check; call
// names are always ASCII identifiers across the supported languages.
func containsFold(s, substr string) bool {
	if len(substr) == 0 {
		return true
	}
	n, m := len(s), len(substr)
	for i := 0; i+m <= n; i++ {
		if equalFold(s[i:i+m], substr) {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
