package evolution

import (
	"math"
	"math/rand"

	"github.com/cardgenome/evolve/evolution/fitness"
	"github.com/cardgenome/evolve/genome"
)

// DiversityThreshold is the population-diversity floor below which the
// engine declares a diversity crisis and switches to aggressive mutation.
const DiversityThreshold = 0.1

// diversitySampleLimit is the population size above which diversity is
// estimated from a random sample of pairs rather than every pair.
const diversitySampleLimit = 50

// diversitySamplePairs is how many random pairs are sampled once the
// population exceeds diversitySampleLimit.
const diversitySamplePairs = 100

// Individual pairs one genome with its evaluated fitness.
type Individual struct {
	Genome         *genome.GameGenome
	Fitness        float64
	Evaluated      bool
	FitnessMetrics *fitness.FitnessMetrics
}

// Clone deep-copies an individual, including its genome and any recorded
// fitness metrics.
func (ind *Individual) Clone() *Individual {
	clone := &Individual{
		Genome:    ind.Genome.Clone(),
		Fitness:   ind.Fitness,
		Evaluated: ind.Evaluated,
	}
	if ind.FitnessMetrics != nil {
		metrics := *ind.FitnessMetrics
		clone.FitnessMetrics = &metrics
	}
	return clone
}

// Population is the evolving set of individuals for one generation.
type Population struct {
	Individuals []*Individual
	Generation  int
}

// NewPopulation wraps a slice of individuals as generation zero.
func NewPopulation(individuals []*Individual) *Population {
	return &Population{Individuals: individuals}
}

// Size reports the population count.
func (p *Population) Size() int {
	return len(p.Individuals)
}

// GetBestIndividual returns the highest-fitness individual.
func (p *Population) GetBestIndividual() *Individual {
	if len(p.Individuals) == 0 {
		return nil
	}
	best := p.Individuals[0]
	for _, ind := range p.Individuals[1:] {
		if ind.Fitness > best.Fitness {
			best = ind
		}
	}
	return best
}

// GetAverageFitness averages fitness across evaluated individuals only;
// unevaluated individuals (fresh offspring) don't drag the mean down.
func (p *Population) GetAverageFitness() float64 {
	var sum float64
	var count int
	for _, ind := range p.Individuals {
		if ind.Evaluated {
			sum += ind.Fitness
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}

// ComputeDiversity estimates mean pairwise genome distance across the
// population: every pair for small populations, a random sample of pairs
// above diversitySampleLimit to keep the cost bounded.
func (p *Population) ComputeDiversity() float64 {
	if len(p.Individuals) < 2 {
		return 0.0
	}
	if len(p.Individuals) <= diversitySampleLimit {
		return p.exhaustivePairwiseDiversity()
	}
	return p.sampledPairwiseDiversity()
}

func (p *Population) exhaustivePairwiseDiversity() float64 {
	var total float64
	var pairs int
	for i := 0; i < len(p.Individuals); i++ {
		for j := i + 1; j < len(p.Individuals); j++ {
			total += GenomeDistance(p.Individuals[i].Genome, p.Individuals[j].Genome)
			pairs++
		}
	}
	if pairs == 0 {
		return 0.0
	}
	return total / float64(pairs)
}

func (p *Population) sampledPairwiseDiversity() float64 {
	n := len(p.Individuals)
	var total float64
	for k := 0; k < diversitySamplePairs; k++ {
		i, j := rand.Intn(n), rand.Intn(n)
		if i == j {
			j = (i + 1) % n
		}
		total += GenomeDistance(p.Individuals[i].Genome, p.Individuals[j].Genome)
	}
	return total / float64(diversitySamplePairs)
}

// CheckDiversityCrisis reports whether diversity has collapsed below
// DiversityThreshold.
func (p *Population) CheckDiversityCrisis() bool {
	return p.ComputeDiversity() < DiversityThreshold
}

// GetUnevaluated returns individuals whose fitness hasn't been computed
// yet this generation.
func (p *Population) GetUnevaluated() []*Individual {
	var pending []*Individual
	for _, ind := range p.Individuals {
		if !ind.Evaluated {
			pending = append(pending, ind)
		}
	}
	return pending
}

// SortByFitness returns a fresh slice ordered highest fitness first.
// Insertion sort is used deliberately: across generations most
// individuals carry over from the prior sort, so the data is nearly
// sorted already and insertion sort approaches linear time.
func (p *Population) SortByFitness() []*Individual {
	sorted := make([]*Individual, len(p.Individuals))
	copy(sorted, p.Individuals)

	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].Fitness < sorted[j].Fitness; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return sorted
}

// featureDistance bounds |a-b|/scale to [0,1], the common shape of every
// GenomeDistance component.
func featureDistance(a, b, scale float64) float64 {
	return math.Min(1.0, math.Abs(a-b)/scale)
}

// GenomeDistance scores structural dissimilarity between two genomes on
// [0,1] (0 = identical) by averaging eleven equally weighted components:
// normalized differences in phase count, effect count, win-condition
// count, max_turns, cards_per_player and player count; Jaccard distance
// over phase types and over win-condition types; and mismatch flags for
// trick-based play, trump and bluffing mechanics.
func GenomeDistance(g1, g2 *genome.GameGenome) float64 {
	components := []float64{
		featureDistance(float64(len(g1.TurnStructure.Phases)), float64(len(g2.TurnStructure.Phases)), 5.0),
		featureDistance(float64(len(g1.Effects)), float64(len(g2.Effects)), 3.0),
		featureDistance(float64(len(g1.WinConditions)), float64(len(g2.WinConditions)), 2.0),
		featureDistance(float64(g1.TurnStructure.MaxTurns), float64(g2.TurnStructure.MaxTurns), 1000.0),
		featureDistance(float64(g1.Setup.CardsPerPlayer), float64(g2.Setup.CardsPerPlayer), 26.0),
		featureDistance(float64(g1.EffectivePlayerCount()), float64(g2.EffectivePlayerCount()), 4.0),
		jaccardDistance(phaseTypeSet(g1), phaseTypeSet(g2)),
		jaccardDistance(winTypeSet(g1), winTypeSet(g2)),
		flagDistance(g1.TurnStructure.IsTrickBased, g2.TurnStructure.IsTrickBased),
		flagDistance(hasTrump(g1), hasTrump(g2)),
		flagDistance(hasBluffing(g1), hasBluffing(g2)),
	}

	var total float64
	for _, c := range components {
		total += c
	}
	return total / float64(len(components))
}

// phaseTypeSet collects the distinct phase-type tags of a genome.
func phaseTypeSet(g *genome.GameGenome) map[uint8]bool {
	set := make(map[uint8]bool)
	for _, p := range g.TurnStructure.Phases {
		set[p.PhaseType()] = true
	}
	return set
}

// winTypeSet collects the distinct win-condition types of a genome.
func winTypeSet(g *genome.GameGenome) map[uint8]bool {
	set := make(map[uint8]bool)
	for _, wc := range g.WinConditions {
		set[uint8(wc.Type)] = true
	}
	return set
}

// jaccardDistance is 1 - |intersection|/|union| over two tag sets.
func jaccardDistance(a, b map[uint8]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}
	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return 1.0 - float64(intersection)/float64(union)
}

func flagDistance(a, b bool) float64 {
	if a == b {
		return 0.0
	}
	return 1.0
}

// hasTrump reports whether any trick phase or the setup names a trump suit.
func hasTrump(g *genome.GameGenome) bool {
	if g.Setup.TrumpSuit != 0 && g.Setup.TrumpSuit <= 4 {
		return true
	}
	for _, p := range g.TurnStructure.Phases {
		if tp, ok := p.(*genome.TrickPhase); ok && tp.TrumpSuit != 255 {
			return true
		}
	}
	return false
}

// hasBluffing reports whether the genome has claim or betting mechanics.
func hasBluffing(g *genome.GameGenome) bool {
	for _, p := range g.TurnStructure.Phases {
		switch p.(type) {
		case *genome.ClaimPhase, *genome.BettingPhase:
			return true
		}
	}
	return false
}
