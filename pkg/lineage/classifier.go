package lineage

// Classification rules: exactly one TransformationType per edge, tie-break
// AGGREGATED > UNION > JOINED > FILTERED > CALCULATED > DIRECT. Confidence is
// a deterministic function of (type, resolution certainty); identical inputs
// always produce identical output.

// Base confidence per transformation type.
const (
	confDirect     = 100
	confAggregated = 95
	confJoined     = 95
	confUnion      = 95
	confFiltered   = 90
	confCalculated = 75

	// Penalties for uncertain resolution, floored so an emitted edge always
	// keeps a meaningful score.
	penaltyAmbiguous  = 25
	penaltyUnverified = 20
	confFloor         = 60
)

// classify picks the edge's transformation type from the accumulated flags.
func classify(r sourceRef) TransformationType {
	switch {
	case r.agg:
		return TransformAggregated
	case r.union:
		return TransformUnion
	case r.joined:
		return TransformJoined
	case r.filtered:
		return TransformFiltered
	case r.calc:
		return TransformCalculated
	default:
		return TransformDirect
	}
}

// confidence computes the edge's score: the type's base, reduced when the
// source was resolved ambiguously or either endpoint's table is unverified.
func confidence(t TransformationType, r sourceRef, target Column) int {
	var score int
	switch t {
	case TransformDirect:
		score = confDirect
	case TransformAggregated:
		score = confAggregated
	case TransformJoined:
		score = confJoined
	case TransformUnion:
		score = confUnion
	case TransformFiltered:
		score = confFiltered
	default:
		score = confCalculated
	}

	if r.ambiguous {
		score -= penaltyAmbiguous
	}
	if !r.col.Verified || !target.Verified {
		score -= penaltyUnverified
	}
	if score < confFloor {
		score = confFloor
	}
	return score
}
