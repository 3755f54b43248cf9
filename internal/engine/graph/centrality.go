package graph

const (
	DampingFactor        = 0.85
	CentralityIterations = 10
	initialCentrality    = 1.0
)

// CalculateCentrality assigns every node a damped score propagated from its
// dependents:
//
//	c(n) = (1 - d) + d * Σ c(dep) / outDegree(dep)   over dep in Dependents(n)
//
// Updates are Jacobi style: each iteration reads only the previous one. The
// iteration count is fixed; there is no convergence check.
func CalculateCentrality(g *DependencyGraph) {
	if g == nil || len(g.order) == 0 {
		return
	}

	scores := make(map[string]float64, len(g.order))
	for _, p := range g.order {
		scores[p] = initialCentrality
	}

	for i := 0; i < CentralityIterations; i++ {
		next := make(map[string]float64, len(g.order))
		for _, p := range g.order {
			score := 1 - DampingFactor
			for _, dependent := range g.nodes[p].Dependents {
				outLinks := len(g.nodes[dependent].Dependencies)
				if outLinks > 0 {
					score += DampingFactor * (scores[dependent] / float64(outLinks))
				}
			}
			next[p] = score
		}
		scores = next
	}

	for _, p := range g.order {
		g.nodes[p].Centrality = scores[p]
	}
}
