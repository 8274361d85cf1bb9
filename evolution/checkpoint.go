package evolution

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cardgenome/evolve/evolution/fitness"
	"github.com/cardgenome/evolve/genome"
)

// CheckpointVersion is the current checkpoint file format version.
const CheckpointVersion = "1.0"

// CheckpointData is the full serializable state of a run: configuration,
// current population, the best individual seen so far, and per-generation
// stats history.
type CheckpointData struct {
	Config       *EvolutionConfig  `json:"config"`
	Generation   int               `json:"generation"`
	Population   []IndividualData  `json:"population"`
	BestEver     *IndividualData   `json:"best_ever,omitempty"`
	StatsHistory []GenerationStats `json:"stats_history"`
	Timestamp    time.Time         `json:"timestamp"`
	RNGSeed      int64             `json:"rng_seed"`
	Version      string            `json:"version"`
}

// IndividualData is the JSON-serializable projection of an Individual.
type IndividualData struct {
	Genome         *genome.GameGenome      `json:"genome"`
	Fitness        float64                 `json:"fitness"`
	Evaluated      bool                    `json:"evaluated"`
	FitnessMetrics *fitness.FitnessMetrics `json:"fitness_metrics,omitempty"`
}

// toIndividualData projects a live Individual into its wire form.
func toIndividualData(ind *Individual) IndividualData {
	return IndividualData{
		Genome:         ind.Genome,
		Fitness:        ind.Fitness,
		Evaluated:      ind.Evaluated,
		FitnessMetrics: ind.FitnessMetrics,
	}
}

// fromIndividualData reconstructs a live Individual from its wire form.
func fromIndividualData(data IndividualData) *Individual {
	return &Individual{
		Genome:         data.Genome,
		Fitness:        data.Fitness,
		Evaluated:      data.Evaluated,
		FitnessMetrics: data.FitnessMetrics,
	}
}

// SaveCheckpoint writes the engine's full state to path as JSON,
// atomically (write to a temp file, then rename).
func (e *EvolutionEngine) SaveCheckpoint(path string) error {
	if e.Population == nil {
		return fmt.Errorf("no population to save")
	}

	popData := make([]IndividualData, len(e.Population.Individuals))
	for i, ind := range e.Population.Individuals {
		popData[i] = toIndividualData(ind)
	}

	var bestData *IndividualData
	if e.BestEver != nil {
		d := toIndividualData(e.BestEver)
		bestData = &d
	}

	checkpoint := CheckpointData{
		Config:       e.Config,
		Generation:   e.Population.Generation,
		Population:   popData,
		BestEver:     bestData,
		StatsHistory: e.StatsHistory,
		Timestamp:    time.Now(),
		RNGSeed:      e.Config.RandomSeed,
		Version:      CheckpointVersion,
	}

	return writeJSONAtomic(path, checkpoint)
}

// writeJSONAtomic marshals v as indented JSON and writes it to path via a
// temp-file-then-rename so a crash mid-write never leaves a truncated
// checkpoint behind.
func writeJSONAtomic(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads and parses a checkpoint file written by
// SaveCheckpoint.
func LoadCheckpoint(path string) (*CheckpointData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	var checkpoint CheckpointData
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	return &checkpoint, nil
}

// restoreConfigFields copies the EvolutionConfig fields a restore
// overwrites; restoring is deliberately partial; fields outside this list
// (e.g. worker count, random seed, skill-evaluation settings) stay as the live engine configured
// them rather than reverting to whatever the checkpoint captured.
func restoreConfigFields(dst *EvolutionConfig, src *EvolutionConfig) {
	dst.PopulationSize = src.PopulationSize
	dst.MaxGenerations = src.MaxGenerations
	dst.ElitismRate = src.ElitismRate
	dst.CrossoverRate = src.CrossoverRate
	dst.TournamentSize = src.TournamentSize
	dst.PlateauThreshold = src.PlateauThreshold
	dst.ImprovementThreshold = src.ImprovementThreshold
	dst.DiversityThreshold = src.DiversityThreshold
	dst.FitnessStyle = src.FitnessStyle
	dst.GamesPerEval = src.GamesPerEval
	dst.UseMCTS = src.UseMCTS
}

// RestoreFromCheckpoint repopulates e from a previously loaded checkpoint.
func (e *EvolutionEngine) RestoreFromCheckpoint(checkpoint *CheckpointData) error {
	if checkpoint == nil {
		return fmt.Errorf("nil checkpoint")
	}

	if checkpoint.Config != nil {
		restoreConfigFields(e.Config, checkpoint.Config)
	}

	individuals := make([]*Individual, len(checkpoint.Population))
	for i, data := range checkpoint.Population {
		individuals[i] = fromIndividualData(data)
	}
	e.Population = NewPopulation(individuals)
	e.Population.Generation = checkpoint.Generation

	if checkpoint.BestEver != nil {
		e.BestEver = fromIndividualData(*checkpoint.BestEver)
	}
	e.StatsHistory = checkpoint.StatsHistory

	return nil
}

// ResumeFromCheckpoint builds a fresh EvolutionEngine and restores it from
// a checkpoint file in one step.
func ResumeFromCheckpoint(path string) (*EvolutionEngine, error) {
	checkpoint, err := LoadCheckpoint(path)
	if err != nil {
		return nil, err
	}

	eng := NewEvolutionEngine(checkpoint.Config)
	if err := eng.RestoreFromCheckpoint(checkpoint); err != nil {
		eng.Close()
		return nil, err
	}
	return eng, nil
}

// AutoCheckpointer saves the engine's state at a fixed generation
// interval, skipping generation 0.
type AutoCheckpointer struct {
	Engine    *EvolutionEngine
	Path      string
	Interval  int
	LastSaved int
}

// NewAutoCheckpointer creates an AutoCheckpointer that has not yet saved.
func NewAutoCheckpointer(engine *EvolutionEngine, path string, interval int) *AutoCheckpointer {
	return &AutoCheckpointer{
		Engine:    engine,
		Path:      path,
		Interval:  interval,
		LastSaved: -1,
	}
}

// ShouldSave reports whether generation lands on a save boundary that
// hasn't been saved yet.
func (ac *AutoCheckpointer) ShouldSave(generation int) bool {
	if ac.Interval <= 0 || generation == 0 {
		return false
	}
	return generation > ac.LastSaved && generation%ac.Interval == 0
}

// Save writes a checkpoint if generation is due for one.
func (ac *AutoCheckpointer) Save(generation int) error {
	if !ac.ShouldSave(generation) {
		return nil
	}
	if err := ac.Engine.SaveCheckpoint(ac.Path); err != nil {
		return err
	}
	ac.LastSaved = generation
	return nil
}

// SaveFinal writes a checkpoint unconditionally, for use at run end.
func (ac *AutoCheckpointer) SaveFinal() error {
	return ac.Engine.SaveCheckpoint(ac.Path)
}
