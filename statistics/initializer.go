package statistics

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/ledgerstats/statistics-go/blocks"
	"github.com/ledgerstats/statistics-go/config"
	"github.com/ledgerstats/statistics-go/elasticClient"
	"github.com/ledgerstats/statistics-go/process"
	"github.com/ledgerstats/statistics-go/rates"
	"github.com/ledgerstats/statistics-go/writer"
)

const (
	blocksSourceFile    = "file"
	blocksSourceElastic = "elastic"
)

// CreateStatsHandler wires the block source, the exchange rates and the result writer described by cfg
func CreateStatsHandler(cfg *config.Config) (StatsHandler, error) {
	blockSource, err := createBlockSource(cfg.Blocks)
	if err != nil {
		return nil, err
	}

	ratesTable, err := rates.ReadRatesTable(cfg.Rates.FilePath)
	if err != nil {
		return nil, err
	}

	resultWriter, err := writer.NewJSONWriter(cfg.Output.Folder)
	if err != nil {
		return nil, err
	}

	driver, err := process.NewBlocksDriver(blockSource, cfg.GeneralConfig.ProgressEvery)
	if err != nil {
		return nil, err
	}

	return process.NewStatisticsProcessor(
		driver,
		resultWriter,
		CreateStatisticsList(ratesTable),
		cfg.GeneralConfig.Workers,
	)
}

func createBlockSource(cfg config.BlocksConfig) (process.BlockSource, error) {
	switch cfg.Type {
	case blocksSourceFile:
		return blocks.NewFileBlocks(cfg.FilePath)
	case blocksSourceElastic:
		elasticCfg := elasticsearch.Config{
			Addresses: []string{cfg.ElasticDatabaseAddress},
			Username:  cfg.Username,
			Password:  cfg.Password,
		}
		esClient, err := elasticClient.NewElasticClient(elasticCfg, cfg.ScrollSize)
		if err != nil {
			return nil, err
		}

		return blocks.NewElasticBlocks(esClient, cfg.Index)
	default:
		return nil, fmt.Errorf("unknown blocks source type %q, expected %s or %s", cfg.Type, blocksSourceFile, blocksSourceElastic)
	}
}
