package dto

// AgentCounts summarizes the registry by health status
type AgentCounts struct {
	Total     int `json:"total" example:"4"`
	Healthy   int `json:"healthy" example:"3"`
	Unhealthy int `json:"unhealthy" example:"1"`
	Unknown   int `json:"unknown" example:"0"`
}

// HealthResponse is the gateway health summary served on /health
type HealthResponse struct {
	Status  string      `json:"status" example:"OK"`
	Service string      `json:"service" example:"agentgate"`
	Version string      `json:"version" example:"1.0.0"`
	Agents  AgentCounts `json:"agents"`
}
