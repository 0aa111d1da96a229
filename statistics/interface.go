package statistics

// StatsHandler computes the statistics and stores their results
type StatsHandler interface {
	ProcessStatistics(names []string) error
	StatisticNames() []string
}
