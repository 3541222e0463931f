package routes

import (
	"net/http"

	_ "github.com/oggyb/buka-sms/internal/docs" // swagger docs
	"github.com/oggyb/buka-sms/internal/response"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerHandler "github.com/swaggo/http-swagger"
)

type AppDeps struct {
	Home HomeHandler
	SMS  SMSHandler
}

type HomeHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type SMSHandler interface {
	Send(w http.ResponseWriter, r *http.Request)
}

func Register(mux *http.ServeMux, d AppDeps) {
	mux.HandleFunc("GET /{$}", d.Home.Index)
	mux.HandleFunc("GET /health", d.Home.Health)

	mux.HandleFunc("POST /sms", d.SMS.Send)

	// Metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	//Swagger
	mux.HandleFunc("GET /swagger/", swaggerHandler.WrapHandler)

	// Fallback handler for undefined routes (404)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusNotFound, response.ReasonNotFound, "route not found")
	}))
}
