package metrics

// Prometheus namespace/subsystem layout for the dashboard server.
const (
	namespaceData    = "data"
	namespaceRestAPI = "rest_api"
)

const (
	subsystemSnapshot = "snapshot"
	subsystemRefresh  = "refresh"
	subsystemHTTP     = "http"
)
