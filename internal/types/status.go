package types

// Status is a type for the lifecycle status of a configured resource (e.g. agent)
// Archived resources are kept in config for reference but excluded from routing
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
