package config

// Config will hold the whole config file's data
type Config struct {
	GeneralConfig GeneralConfig
	Blocks        BlocksConfig
	Rates         RatesConfig
	Output        OutputConfig
}

// GeneralConfig will hold the general settings of the statistics run
type GeneralConfig struct {
	Workers       int
	ProgressEvery uint64
}

// BlocksConfig will hold the settings of the block source
type BlocksConfig struct {
	Type                   string
	FilePath               string
	ElasticDatabaseAddress string
	Username               string
	Password               string
	Index                  string
	ScrollSize             int
}

// RatesConfig will hold the settings of the exchange rates table
type RatesConfig struct {
	FilePath string
}

// OutputConfig will hold the settings of the result writer
type OutputConfig struct {
	Folder string
}
