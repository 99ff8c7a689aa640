package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/compilerbench/perfsite/engine/site/rest/middleware"
	"github.com/compilerbench/perfsite/module"
)

// Route binds one endpoint to its handler. An empty method matches every
// method.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// NewRouter assembles the API route table with logging and metrics
// middleware. Unknown paths 404; known paths with the wrong method 405.
func NewRouter(api *APIHandler, logger zerolog.Logger, restCollector module.RestMetrics) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.MetricsMiddleware(restCollector))
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	for _, route := range apiRoutes(api) {
		r := router.Path(route.Pattern).Name(route.Name)
		if route.Method != "" {
			r = r.Methods(route.Method)
		}
		r.Handler(route.Handler)
	}
	return router
}

func apiRoutes(api *APIHandler) []Route {
	return []Route{
		{
			Name:    "Info",
			Method:  http.MethodGet,
			Pattern: "/info",
			Handler: api.Info,
		},
		{
			Name:    "Dashboard",
			Method:  http.MethodGet,
			Pattern: "/dashboard",
			Handler: api.Dashboard,
		},
		{
			Name:    "Data",
			Method:  http.MethodPost,
			Pattern: "/data",
			Handler: api.Data,
		},
		{
			Name:    "Graph",
			Method:  http.MethodPost,
			Pattern: "/graph",
			Handler: api.Graph,
		},
		{
			Name:    "Days",
			Method:  http.MethodPost,
			Pattern: "/get",
			Handler: api.Days,
		},
		{
			Name:    "NLLDashboard",
			Method:  http.MethodPost,
			Pattern: "/nll_dashboard",
			Handler: api.NLLDashboard,
		},
		{
			Name:    "PRCommit",
			Method:  http.MethodGet,
			Pattern: "/pr_commit",
			Handler: api.PRCommit,
		},
		{
			Name:    "DateCommit",
			Method:  http.MethodGet,
			Pattern: "/date_commit",
			Handler: api.DateCommit,
		},
		{
			Name:    "OnPush",
			Pattern: "/onpush",
			Handler: api.OnPush,
		},
	}
}
