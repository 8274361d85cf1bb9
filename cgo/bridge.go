package main

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"
import (
	"unsafe"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/cardgenome/evolve/bindings/cardsim"
	"github.com/cardgenome/evolve/engine"
	"github.com/cardgenome/evolve/simulation"
)

// AggStats holds aggregated simulation results
type AggStats struct {
	TotalGames    uint32
	Player0Wins   uint32
	Player1Wins   uint32
	Draws         uint32
	AvgTurns      float32
	MedianTurns   uint32
	AvgDurationNs uint64
	Errors        uint32

	// Phase 1 instrumentation: aggregated across all games
	TotalDecisions    uint64
	TotalValidMoves   uint64
	ForcedDecisions   uint64
	TotalInteractions uint64
	TotalActions      uint64
}

// errorStats marks an entire request as failed (unparseable bytecode).
func errorStats(numGames uint32) *AggStats {
	return &AggStats{
		TotalGames: numGames,
		Errors:     numGames,
	}
}

// requestAITypes resolves the request's AI configuration. A zero override
// means "use the shared type"; otherwise the override is the AI type + 1.
func requestAITypes(req *cardsim.SimulationRequest) (p0, p1 simulation.AIPlayerType) {
	shared := simulation.AIPlayerType(req.AiPlayerType())
	p0, p1 = shared, shared
	if o := req.Player0AiType(); o > 0 {
		p0 = simulation.AIPlayerType(o - 1)
	}
	if o := req.Player1AiType(); o > 0 {
		p1 = simulation.AIPlayerType(o - 1)
	}
	return p0, p1
}

// simulateOne runs a single request's batch and flattens the aggregate into
// the wire shape.
func simulateOne(req *cardsim.SimulationRequest) *AggStats {
	genome, err := engine.ParseGenome(req.GenomeBytecodeBytes())
	if err != nil {
		return errorStats(req.NumGames())
	}

	p0AI, p1AI := requestAITypes(req)
	numGames := int(req.NumGames())
	mctsIter := int(req.MctsIterations())
	seed := req.RandomSeed()

	var simStats simulation.AggregatedStats
	if p0AI == p1AI {
		simStats = simulation.RunBatch(genome, numGames, p0AI, mctsIter, seed)
	} else {
		simStats = simulation.RunBatchAsymmetric(genome, numGames, p0AI, p1AI, mctsIter, seed)
	}

	return &AggStats{
		TotalGames:        simStats.TotalGames,
		Player0Wins:       simStats.Player0Wins(),
		Player1Wins:       simStats.Player1Wins(),
		Draws:             simStats.Draws,
		AvgTurns:          simStats.AvgTurns,
		MedianTurns:       simStats.MedianTurns,
		AvgDurationNs:     simStats.AvgDurationNs,
		Errors:            simStats.Errors,
		TotalDecisions:    simStats.TotalDecisions,
		TotalValidMoves:   simStats.TotalValidMoves,
		ForcedDecisions:   simStats.ForcedDecisions,
		TotalInteractions: simStats.TotalInteractions,
		TotalActions:      simStats.TotalActions,
	}
}

//export SimulateBatch
func SimulateBatch(requestPtr unsafe.Pointer, requestLen C.int, responseLen *C.int) unsafe.Pointer {
	requestBytes := C.GoBytes(requestPtr, requestLen)
	batchRequest := cardsim.GetRootAsBatchRequest(requestBytes, 0)

	builder := flatbuffers.NewBuilder(1024)

	requestCount := batchRequest.RequestsLength()
	resultOffsets := make([]flatbuffers.UOffsetT, requestCount)

	for i := 0; i < requestCount; i++ {
		req := new(cardsim.SimulationRequest)
		if !batchRequest.Requests(req, i) {
			continue
		}
		resultOffsets[i] = serializeStats(builder, simulateOne(req))
	}

	cardsim.BatchResponseStartResultsVector(builder, requestCount)
	for i := requestCount - 1; i >= 0; i-- {
		builder.PrependUOffsetT(resultOffsets[i])
	}
	resultsVec := builder.EndVector(requestCount)

	cardsim.BatchResponseStart(builder)
	cardsim.BatchResponseAddBatchId(builder, batchRequest.BatchId())
	cardsim.BatchResponseAddResults(builder, resultsVec)
	response := cardsim.BatchResponseEnd(builder)
	builder.Finish(response)

	return copyToC(builder.FinishedBytes(), responseLen)
}

// copyToC moves a finished response into C-owned memory (caller frees via
// FreeResponse).
func copyToC(responseBytes []byte, responseLen *C.int) unsafe.Pointer {
	*responseLen = C.int(len(responseBytes))
	if len(responseBytes) == 0 {
		return nil
	}

	cBytes := C.malloc(C.size_t(len(responseBytes)))
	if cBytes == nil {
		*responseLen = 0
		return nil
	}
	C.memcpy(cBytes, unsafe.Pointer(&responseBytes[0]), C.size_t(len(responseBytes)))
	return cBytes
}

//export FreeResponse
func FreeResponse(ptr unsafe.Pointer) {
	C.free(ptr)
}

func serializeStats(builder *flatbuffers.Builder, stats *AggStats) flatbuffers.UOffsetT {
	cardsim.AggregatedStatsStart(builder)
	cardsim.AggregatedStatsAddTotalGames(builder, stats.TotalGames)
	cardsim.AggregatedStatsAddPlayer0Wins(builder, stats.Player0Wins)
	cardsim.AggregatedStatsAddPlayer1Wins(builder, stats.Player1Wins)
	cardsim.AggregatedStatsAddDraws(builder, stats.Draws)
	cardsim.AggregatedStatsAddAvgTurns(builder, stats.AvgTurns)
	cardsim.AggregatedStatsAddMedianTurns(builder, stats.MedianTurns)
	cardsim.AggregatedStatsAddAvgDurationNs(builder, stats.AvgDurationNs)
	cardsim.AggregatedStatsAddErrors(builder, stats.Errors)
	// Phase 1 instrumentation fields
	cardsim.AggregatedStatsAddTotalDecisions(builder, stats.TotalDecisions)
	cardsim.AggregatedStatsAddTotalValidMoves(builder, stats.TotalValidMoves)
	cardsim.AggregatedStatsAddForcedDecisions(builder, stats.ForcedDecisions)
	cardsim.AggregatedStatsAddTotalInteractions(builder, stats.TotalInteractions)
	cardsim.AggregatedStatsAddTotalActions(builder, stats.TotalActions)
	return cardsim.AggregatedStatsEnd(builder)
}

func main() {} // Required for CGo
