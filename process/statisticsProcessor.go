package process

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alitto/pond/v2"
)

// ErrUnknownStatistic signals a statistic name that is not in the list of statistics
var ErrUnknownStatistic = errors.New("unknown statistic")

// ErrNilResultWriter signals that a nil result writer has been provided
var ErrNilResultWriter = errors.New("nil result writer")

// ErrNilBlocksRunner signals that a nil blocks runner has been provided
var ErrNilBlocksRunner = errors.New("nil blocks runner")

// ErrDuplicatedStatistic signals two statistics with the same name
var ErrDuplicatedStatistic = errors.New("duplicated statistic")

// Statistic is a named computation. CreateProcessor is called once per run so every run starts
// from an empty state
type Statistic struct {
	Name            string
	CreateProcessor func() (BlockProcessor, error)
}

// ResultWriter persists the result of a statistic under its name
type ResultWriter interface {
	Exists(name string) bool
	Write(name string, value interface{}) error
}

// BlocksRunner feeds all the blocks to a block processor
type BlocksRunner interface {
	Run(name string, processor BlockProcessor) (interface{}, error)
}

type statisticsProcessor struct {
	blocksRunner BlocksRunner
	resultWriter ResultWriter
	statistics   map[string]*Statistic
	order        []string
	workers      int
}

// NewStatisticsProcessor creates the processor that computes and stores the statistics, running
// at most workers of them at the same time
func NewStatisticsProcessor(
	blocksRunner BlocksRunner,
	resultWriter ResultWriter,
	statistics []*Statistic,
	workers int,
) (*statisticsProcessor, error) {
	if blocksRunner == nil {
		return nil, ErrNilBlocksRunner
	}
	if resultWriter == nil {
		return nil, ErrNilResultWriter
	}
	if workers < 1 {
		workers = 1
	}

	sp := &statisticsProcessor{
		blocksRunner: blocksRunner,
		resultWriter: resultWriter,
		statistics:   make(map[string]*Statistic, len(statistics)),
		order:        make([]string, 0, len(statistics)),
		workers:      workers,
	}
	for _, stat := range statistics {
		_, exists := sp.statistics[stat.Name]
		if exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatedStatistic, stat.Name)
		}

		sp.statistics[stat.Name] = stat
		sp.order = append(sp.order, stat.Name)
	}

	return sp, nil
}

// StatisticNames returns the names of all the statistics, in the order they are computed
func (sp *statisticsProcessor) StatisticNames() []string {
	names := make([]string, len(sp.order))
	copy(names, sp.order)

	return names
}

// ProcessStatistics computes the named statistics, or all of them when names is empty. A failed
// statistic does not stop the others; the returned error lists every failure
func (sp *statisticsProcessor) ProcessStatistics(names []string) error {
	selected, err := sp.selectStatistics(names)
	if err != nil {
		return err
	}

	pool := pond.NewPool(sp.workers)
	defer pool.StopAndWait()

	errs := make([]error, len(selected))
	group := pool.NewGroup()
	for idx, stat := range selected {
		idx, stat := idx, stat
		group.Submit(func() {
			errs[idx] = sp.processStatistic(stat)
		})
	}
	errWait := group.Wait()

	failed := make([]error, 0)
	for _, errStat := range errs {
		if errStat != nil {
			failed = append(failed, errStat)
		}
	}
	if errWait != nil {
		failed = append(failed, errWait)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d statistics failed: %w", len(failed), len(selected), errors.Join(failed...))
	}

	return nil
}

func (sp *statisticsProcessor) selectStatistics(names []string) ([]*Statistic, error) {
	if len(names) == 0 {
		names = sp.order
	}

	selected := make([]*Statistic, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		stat, ok := sp.statistics[name]
		if !ok {
			known := sp.StatisticNames()
			sort.Strings(known)
			return nil, fmt.Errorf("%w: %s, known statistics: %v", ErrUnknownStatistic, name, known)
		}
		if _, ok = seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		selected = append(selected, stat)
	}

	return selected, nil
}

func (sp *statisticsProcessor) processStatistic(stat *Statistic) error {
	if sp.resultWriter.Exists(stat.Name) {
		log.Info("already computed", "statistic", stat.Name)
		return nil
	}

	log.Info("computing", "statistic", stat.Name)
	start := time.Now()

	processor, err := stat.CreateProcessor()
	if err != nil {
		log.Error("cannot create processor", "statistic", stat.Name, "error", err.Error())
		return fmt.Errorf("%s: %w", stat.Name, err)
	}

	result, err := sp.blocksRunner.Run(stat.Name, processor)
	if err != nil {
		log.Error("failed", "statistic", stat.Name, "error", err.Error())
		return err
	}

	err = sp.resultWriter.Write(stat.Name, result)
	if err != nil {
		log.Error("cannot write result", "statistic", stat.Name, "error", err.Error())
		return fmt.Errorf("%s: %w", stat.Name, err)
	}

	log.Info("finished", "statistic", stat.Name, "duration", time.Since(start))

	return nil
}
