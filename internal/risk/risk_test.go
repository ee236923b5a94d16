package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/semfora/internal/types"
)

func TestBucketBoundaries(t *testing.T) {
	assert.Equal(t, types.RiskLow, Bucket(0))
	assert.Equal(t, types.RiskLow, Bucket(1))
	assert.Equal(t, types.RiskMedium, Bucket(2))
	assert.Equal(t, types.RiskMedium, Bucket(3))
	assert.Equal(t, types.RiskHigh, Bucket(4))
	assert.Equal(t, types.RiskHigh, Bucket(100))
}

func TestScoreAccumulatesSignals(t *testing.T) {
	s := &types.SemanticSummary{
		AddedDependencies: []types.Dependency{{Name: "useState"}},
		StateChanges:      []types.StateChange{{Name: "open"}},
		ControlFlow:       []types.ControlFlowTag{types.CFIf, types.CFFor},
	}
	// import(+1) + state(+1) + control-flow capped once(+2) = 4 => high
	assert.Equal(t, 4, Score(s))
	assert.Equal(t, types.RiskHigh, Bucket(Score(s)))
}

func TestControlFlowCappedOnce(t *testing.T) {
	one := &types.SemanticSummary{ControlFlow: []types.ControlFlowTag{types.CFIf}}
	many := &types.SemanticSummary{ControlFlow: []types.ControlFlowTag{types.CFIf, types.CFFor, types.CFWhile, types.CFTry}}
	assert.Equal(t, Score(one), Score(many))
}

func TestIOAndPersistenceCalls(t *testing.T) {
	io := &types.SemanticSummary{Calls: []types.Call{{Name: "fetch"}}}
	assert.Equal(t, pointsIOCall, Score(io))

	persist := &types.SemanticSummary{Calls: []types.Call{{Name: "db.Save"}}}
	assert.Equal(t, pointsPersistenceCall, Score(persist))
}

func TestPublicSurfaceChanged(t *testing.T) {
	s := &types.SemanticSummary{PublicSurfaceChanged: true}
	assert.Equal(t, pointsPublicSurfaceChange, Score(s))
}

// TestRiskMonotonicity verifies spec §8: adding a signal that contributes
// points cannot lower the bucket.
func TestRiskMonotonicity(t *testing.T) {
	base := &types.SemanticSummary{}
	baseBucket := Bucket(Score(base))

	withImport := &types.SemanticSummary{AddedDependencies: []types.Dependency{{Name: "x"}}}
	assert.GreaterOrEqual(t, bucketRank(Bucket(Score(withImport))), bucketRank(baseBucket))

	withAll := &types.SemanticSummary{
		AddedDependencies:    []types.Dependency{{Name: "x"}},
		StateChanges:         []types.StateChange{{Name: "y"}},
		ControlFlow:          []types.ControlFlowTag{types.CFIf},
		Calls:                []types.Call{{Name: "db.write"}},
		PublicSurfaceChanged: true,
	}
	assert.GreaterOrEqual(t, bucketRank(Bucket(Score(withAll))), bucketRank(Bucket(Score(withImport))))
}

func bucketRank(r types.RiskLevel) int {
	switch r {
	case types.RiskLow:
		return 0
	case types.RiskMedium:
		return 1
	default:
		return 2
	}
}

func TestEvaluateSetsField(t *testing.T) {
	s := &types.SemanticSummary{PublicSurfaceChanged: true}
	level := Evaluate(s)
	assert.Equal(t, level, s.BehavioralRisk)
}

func TestJSXExampleIsMedium(t *testing.T) {
	// Scenario 1 from spec §8: useState + six Link children => medium.
	s := &types.SemanticSummary{
		AddedDependencies: []types.Dependency{{Name: "useState"}, {Name: "Link"}},
		StateChanges:      []types.StateChange{{Name: "open", Initializer: "false"}},
	}
	assert.Equal(t, types.RiskMedium, Bucket(Score(s)))
}
