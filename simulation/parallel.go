package simulation

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/cardgenome/evolve/engine"
)

// maxPoolWorkers caps worker fan-out so spawn overhead stays bounded on
// large machines.
const maxPoolWorkers = 64

// poolSize resolves a worker-count request against the machine, defaulting
// to one worker per core.
func poolSize(requested int) int {
	n := requested
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > maxPoolWorkers {
		n = maxPoolWorkers
	}
	return n
}

// runPoolBatch fans numGames seeded games out over a worker pool and
// aggregates the results. Per-game seeds derive deterministically from the
// base seed, so scheduling order never changes the aggregate.
func runPoolBatch(numGames, numWorkers int, seed uint64, playOne func(gameSeed uint64) GameResult) AggregatedStats {
	numWorkers = poolSize(numWorkers)
	runtime.GOMAXPROCS(numWorkers)

	jobs := make(chan uint64, numGames)
	results := make(chan GameResult, numGames)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for gameSeed := range jobs {
				results <- playOne(gameSeed)
			}
		}()
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	for i := 0; i < numGames; i++ {
		jobs <- rng.Uint64()
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	allResults := make([]GameResult, 0, numGames)
	for result := range results {
		allResults = append(allResults, result)
	}
	return aggregateResults(allResults)
}

// RunBatchParallelN executes batch simulations using a specified number of workers.
// Use this when running under Python multiprocessing to avoid thread over-subscription.
func RunBatchParallelN(genome *engine.Genome, numGames int, aiType AIPlayerType, mctsIterations int, seed uint64, numWorkers int) AggregatedStats {
	return runPoolBatch(numGames, numWorkers, seed, func(gameSeed uint64) GameResult {
		return RunSingleGame(genome, aiType, mctsIterations, gameSeed)
	})
}

// RunBatchParallel executes batch simulations using one worker per core.
func RunBatchParallel(genome *engine.Genome, numGames int, aiType AIPlayerType, mctsIterations int, seed uint64) AggregatedStats {
	return RunBatchParallelN(genome, numGames, aiType, mctsIterations, seed, 0)
}

// RunBatchAsymmetricParallelN executes asymmetric batch simulations with specified workers.
// Use this when running under Python multiprocessing to avoid thread over-subscription.
func RunBatchAsymmetricParallelN(genome *engine.Genome, numGames int, p0AIType AIPlayerType, p1AIType AIPlayerType, mctsIterations int, seed uint64, numWorkers int) AggregatedStats {
	return runPoolBatch(numGames, numWorkers, seed, func(gameSeed uint64) GameResult {
		return RunSingleGameAsymmetric(genome, p0AIType, p1AIType, mctsIterations, gameSeed)
	})
}

// RunBatchAsymmetricParallel executes asymmetric batch simulations using a
// full worker pool. Used for MCTS skill evaluation where different AI types
// play against each other.
func RunBatchAsymmetricParallel(genome *engine.Genome, numGames int, p0AIType AIPlayerType, p1AIType AIPlayerType, mctsIterations int, seed uint64) AggregatedStats {
	return RunBatchAsymmetricParallelN(genome, numGames, p0AIType, p1AIType, mctsIterations, seed, 0)
}
