package handler

import (
	"net/http"
	"sync"

	"guesthouse/config"
	"guesthouse/di"
	"guesthouse/shared/logger"
)

var (
	server *di.Server
	once   sync.Once
)

// Handler serves the booking API from a serverless function. The snapshot refresher is not
// started here, so bookings are loaded on first use and re-fetched by every write.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)
		logger.SetLogLevel(cfg)

		server = di.InitializeServer()
	})

	server.HTTP.ServeHTTP(w, r)
}
