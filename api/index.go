package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"lumina-store/config"
	"lumina-store/libs"
	"lumina-store/models"
	"lumina-store/routes"

	"github.com/gin-gonic/gin"
)

var (
	app     *routes.App
	initErr error
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		// Serverless instances only have a writable stdout.
		log := libs.InitLogger("lumina-store", "", cfg.LogLevel)

		app, initErr = routes.NewApp(context.Background(), cfg, log)
		if initErr != nil {
			log.Error("failed to start application", "error", initErr)
		}
	})
}

// Handler is the serverless entry point; every invocation shares one App.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Message: "Service unavailable",
			Error:   initErr.Error(),
		})
		return
	}
	app.Router.ServeHTTP(w, r)
}
