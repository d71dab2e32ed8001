package ports

type AwardMetrics interface {
	RecordAward(source string)
	RecordConflict()
	RecordFailure()
}
