package ports

type InteractionMetrics interface {
	RecordAccepted(action string)
	RecordRejected(action, reason string)
	RecordFailure(action string)
}
