package lineage

import "github.com/leapstack-labs/leaplineage/pkg/catalog"

// assemble turns raw triples into the final deduplicated edge list. Multiple
// appearances of the same (source, target) pair collapse into one edge
// keeping the highest-confidence classification; first-seen order is
// preserved so output is deterministic.
func assemble(triples []triple, tables []catalog.TableIdentity) ([]Edge, []catalog.TableIdentity) {
	type edgeKey struct {
		srcTable, srcCol string
		dstTable, dstCol string
	}

	index := make(map[edgeKey]int)
	var edges []Edge

	for _, t := range triples {
		ttype := classify(t.source)
		conf := confidence(ttype, t.source, t.target)

		edge := Edge{
			Source:     t.source.col,
			Target:     t.target,
			Type:       ttype,
			Expression: t.exprText,
			Confidence: conf,
		}

		key := edgeKey{
			srcTable: edge.Source.Table, srcCol: edge.Source.Column,
			dstTable: edge.Target.Table, dstCol: edge.Target.Column,
		}

		if at, seen := index[key]; seen {
			if conf > edges[at].Confidence {
				edges[at] = edge
			}
			continue
		}
		index[key] = len(edges)
		edges = append(edges, edge)
	}

	return edges, tables
}
