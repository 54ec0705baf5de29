package backend

import "time"

// ConfigResponse is the deployment configuration exposed by the upstream API.
type ConfigResponse struct {
	Version         int               `json:"version"`
	Environment     string            `json:"environment"`
	Features        map[string]bool   `json:"features"`
	Settings        map[string]string `json:"settings"`
	RefreshInterval int               `json:"refreshInterval"`
}

type StatusResponse struct {
	Healthy   bool           `json:"healthy"`
	Uptime    int64          `json:"uptime"`
	Checks    []ServiceCheck `json:"checks"`
	CheckedAt time.Time      `json:"checkedAt"`
}

type ServiceCheck struct {
	Service string `json:"service"`
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
	Latency int64  `json:"latencyMs"`
}

// GraphResponse describes the service dependency graph.
type GraphResponse struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type LogResponse struct {
	Entries []LogEntry `json:"entries"`
	// cursor for the next page; empty when the backend has no more
	NextCursor string `json:"nextCursor,omitempty"`
}

type LogEntry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Service string    `json:"service"`
	Message string    `json:"message"`
}
