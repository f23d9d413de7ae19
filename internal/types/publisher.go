package types

// PublishDestination determines where to publish request events
type PublishDestination string

const (
	PublishToKafka  PublishDestination = "kafka"
	PublishToMemory PublishDestination = "memory"
	PublishToNoop   PublishDestination = "noop"
)
