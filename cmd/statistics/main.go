package main

import (
	"os"
	"strings"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/ElrondNetwork/elrond-go/core"
	"github.com/ledgerstats/statistics-go/config"
	"github.com/ledgerstats/statistics-go/statistics"
	"github.com/urfave/cli"
)

var log = logger.GetOrCreate("main")

var (
	// configurationFile defines a flag for the path to the main toml configuration file
	configurationFile = cli.StringFlag{
		Name:   "config",
		Usage:  "The main configuration file to load",
		Value:  "./config/config.toml",
		EnvVar: "STATS_CONFIG",
	}
	// blocksFile overrides the path of the blocks file from the configuration
	blocksFile = cli.StringFlag{
		Name:   "blocks-file",
		Usage:  "The JSON lines file with the ledger blocks, overrides the configured one",
		EnvVar: "STATS_BLOCKS_FILE",
	}
	outputFolder = cli.StringFlag{
		Name:   "output-folder",
		Usage:  "The folder where the statistics are written, overrides the configured one",
		EnvVar: "STATS_OUTPUT_FOLDER",
	}
	generateStatsOptions = cli.StringFlag{
		Name:  "stats",
		Usage: "Comma separated names of the statistics to generate. All of them when empty",
		Value: "",
	}
	logLevel = cli.StringFlag{
		Name:  "log-level",
		Usage: "The logger level(s), e.g. *:INFO or *:INFO,process:DEBUG",
		Value: "*:INFO",
	}
)

func main() {
	app := cli.NewApp()

	app.Name = "Ledger Statistics GO"
	app.Version = "v1.0.0"
	app.Usage = "Computes statistics over the blocks of a public ledger"
	app.Flags = []cli.Flag{
		configurationFile,
		blocksFile,
		outputFolder,
		generateStatsOptions,
		logLevel,
	}

	app.Action = startStatistics

	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func startStatistics(ctx *cli.Context) error {
	err := logger.SetLogLevel(ctx.GlobalString(logLevel.Name))
	if err != nil {
		return err
	}

	generalConfig, err := loadMainConfig(ctx.GlobalString(configurationFile.Name))
	if err != nil {
		return err
	}
	if path := ctx.GlobalString(blocksFile.Name); path != "" {
		generalConfig.Blocks.FilePath = path
	}
	if folder := ctx.GlobalString(outputFolder.Name); folder != "" {
		generalConfig.Output.Folder = folder
	}

	statsHandler, err := statistics.CreateStatsHandler(generalConfig)
	if err != nil {
		return err
	}

	return statsHandler.ProcessStatistics(parseStatsNames(ctx.GlobalString(generateStatsOptions.Name)))
}

func parseStatsNames(option string) []string {
	names := make([]string, 0)
	for _, name := range strings.Split(option, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

func loadMainConfig(filepath string) (*config.Config, error) {
	cfg := &config.Config{}
	err := core.LoadTomlFile(cfg, filepath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
