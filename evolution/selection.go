package evolution

import (
	"math/rand"
	"sort"
)

// clampCount bounds a requested count to [1, available], treating any
// non-positive request as 1.
func clampCount(requested, available int) int {
	if requested > available {
		requested = available
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}

// byFitnessDescending returns a fresh slice of individuals sorted from
// highest to lowest fitness.
func byFitnessDescending(individuals []*Individual) []*Individual {
	sorted := make([]*Individual, len(individuals))
	copy(sorted, individuals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Fitness > sorted[j].Fitness
	})
	return sorted
}

// TournamentSelection samples k individuals uniformly and returns the
// fittest of the sample; k is clamped to the population size.
func TournamentSelection(pop *Population, k int, rng *rand.Rand) *Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	k = clampCount(k, len(pop.Individuals))

	sampleIdx := rng.Perm(len(pop.Individuals))[:k]
	winner := pop.Individuals[sampleIdx[0]]
	for _, idx := range sampleIdx[1:] {
		if candidate := pop.Individuals[idx]; candidate.Fitness > winner.Fitness {
			winner = candidate
		}
	}
	return winner
}

// SelectElite returns the n fittest individuals in descending fitness order.
func SelectElite(pop *Population, n int) []*Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	n = clampCount(n, len(pop.Individuals))
	return byFitnessDescending(pop.Individuals)[:n]
}

// SelectEliteByRate returns the top elitismRate fraction of the
// population (at least one individual), fittest first.
func SelectEliteByRate(pop *Population, elitismRate float64) []*Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	n := int(float64(len(pop.Individuals)) * elitismRate)
	if n < 1 {
		n = 1
	}
	return SelectElite(pop, n)
}

// RouletteWheelSelection picks an individual with probability proportional
// to fitness; falls back to a uniform pick when every fitness is <= 0.
func RouletteWheelSelection(pop *Population, rng *rand.Rand) *Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}

	var totalFitness float64
	for _, ind := range pop.Individuals {
		if ind.Fitness > 0 {
			totalFitness += ind.Fitness
		}
	}
	if totalFitness <= 0 {
		return pop.Individuals[rng.Intn(len(pop.Individuals))]
	}

	target := rng.Float64() * totalFitness
	var cumulative float64
	for _, ind := range pop.Individuals {
		if ind.Fitness <= 0 {
			continue
		}
		cumulative += ind.Fitness
		if cumulative >= target {
			return ind
		}
	}
	return pop.Individuals[len(pop.Individuals)-1]
}

// RankSelection picks an individual with probability proportional to its
// fitness rank rather than raw fitness, softening selection pressure
// relative to RouletteWheelSelection.
func RankSelection(pop *Population, rng *rand.Rand) *Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	n := len(pop.Individuals)

	worstFirst := make([]*Individual, n)
	copy(worstFirst, pop.Individuals)
	sort.Slice(worstFirst, func(i, j int) bool {
		return worstFirst[i].Fitness < worstFirst[j].Fitness
	})

	totalRank := float64(n*(n+1)) / 2
	target := rng.Float64() * totalRank
	var cumulative float64
	for rank, ind := range worstFirst {
		cumulative += float64(rank + 1)
		if cumulative >= target {
			return ind
		}
	}
	return worstFirst[n-1]
}

// TruncationSelection returns the top truncationRate fraction of the
// population, fittest first.
func TruncationSelection(pop *Population, truncationRate float64) []*Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	n := int(float64(len(pop.Individuals)) * truncationRate)
	if n < 1 {
		n = 1
	}
	return SelectElite(pop, n)
}

// SelectDiverse greedily builds an n-individual subset: starts from the
// fittest individual, then repeatedly adds whichever remaining candidate
// has the largest minimum genome distance to the set already chosen
// (farthest-point selection).
func SelectDiverse(pop *Population, n int) []*Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	if n >= len(pop.Individuals) {
		return pop.Individuals
	}
	if n < 1 {
		return nil
	}

	pool := byFitnessDescending(pop.Individuals)
	chosen := []*Individual{pool[0]}
	pool = pool[1:]

	for len(chosen) < n && len(pool) > 0 {
		farthestIdx, farthestDist := 0, -1.0
		for i, candidate := range pool {
			nearest := 1.0
			for _, c := range chosen {
				if dist := GenomeDistance(candidate.Genome, c.Genome); dist < nearest {
					nearest = dist
				}
			}
			if nearest > farthestDist {
				farthestDist = nearest
				farthestIdx = i
			}
		}
		chosen = append(chosen, pool[farthestIdx])
		pool = append(pool[:farthestIdx], pool[farthestIdx+1:]...)
	}

	return chosen
}
