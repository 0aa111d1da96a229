package statistics

import (
	"github.com/ledgerstats/statistics-go/process"
)

const (
	secondsInADay  = 24 * 3600
	secondsInAWeek = 7 * secondsInADay

	minersWindowSize = 1000
	minersStride     = 1000
	valueBinWidth    = 0.001
)

// Names of the statistics, also the names of their result files
const (
	UniqueMinersOverTime                = "number_unique_miners_over_time"
	TransactionSizeDistribution         = "transaction_size_distribution"
	TransactionSizeDistributionUSD      = "transaction_size_distribution_usd"
	TransactionVolumeTimeSeries         = "transaction_volume_time_series"
	LargeTransactionCountTimeSeries1M   = "large_transaction_count_time_series_1000000"
	LargeTransactionCountTimeSeries100K = "large_transaction_count_time_series_100000"
	LargeTransactionWalletTimeSeries1M  = "large_transaction_wallet_time_series_1000000"
	ActiveWalletsTimeSeries             = "active_wallets_time_series"
)

// CreateStatisticsList returns the fixed list of statistics, in the order they are computed
func CreateStatisticsList(rates process.RatesHandler) []*process.Statistic {
	return []*process.Statistic{
		{
			Name: UniqueMinersOverTime,
			CreateProcessor: func() (process.BlockProcessor, error) {
				return process.NewMinersProcessor(minersWindowSize, minersStride)
			},
		},
		{
			Name: TransactionSizeDistribution,
			CreateProcessor: func() (process.BlockProcessor, error) {
				return process.NewHistogramProcessor(valueBinWidth)
			},
		},
		{
			Name: TransactionSizeDistributionUSD,
			CreateProcessor: func() (process.BlockProcessor, error) {
				return process.NewConvertedHistogramProcessor(rates, valueBinWidth)
			},
		},
		{
			Name: TransactionVolumeTimeSeries,
			CreateProcessor: func() (process.BlockProcessor, error) {
				return process.NewVolumeProcessor(secondsInADay)
			},
		},
		{
			Name: LargeTransactionCountTimeSeries1M,
			CreateProcessor: func() (process.BlockProcessor, error) {
				return process.NewLargeTransactionsProcessor(rates, 1000000, secondsInADay)
			},
		},
		{
			Name: LargeTransactionCountTimeSeries100K,
			CreateProcessor: func() (process.BlockProcessor, error) {
				return process.NewLargeTransactionsProcessor(rates, 100000, secondsInADay)
			},
		},
		{
			Name: LargeTransactionWalletTimeSeries1M,
			CreateProcessor: func() (process.BlockProcessor, error) {
				return process.NewWalletsProcessor(rates, 1000000, secondsInAWeek)
			},
		},
		{
			Name: ActiveWalletsTimeSeries,
			CreateProcessor: func() (process.BlockProcessor, error) {
				return process.NewActiveWalletsProcessor(secondsInADay)
			},
		},
	}
}
