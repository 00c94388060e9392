package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"tasknest/tasks-service/handlers"
	"tasknest/tasks-service/logging"
	"tasknest/tasks-service/middleware"
	"tasknest/tasks-service/services"
	"tasknest/tasks-service/storage"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Tasks Service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded, relying on process environment: %v", err)
	}

	dataFile := os.Getenv("TASKS_FILE")
	if dataFile == "" {
		dataFile = "tasks.json"
	}
	store := storage.NewTaskStore(dataFile)
	logging.Logger.Infof("Event ID: STORE_READY, Description: Using task store file: %s", dataFile)

	notifier := services.NewNotifier(os.Getenv("NOTIFICATIONS_SERVICE_URL"))
	taskService := services.NewTaskService(store, notifier)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := mux.NewRouter()
	handlers.RegisterTaskRoutes(r, taskHandler)

	var handler http.Handler = r
	if os.Getenv("JWT_SECRET") != "" {
		handler = middleware.JWTAuthMiddleware(handler)
		logging.Logger.Info("Event ID: AUTH_ENABLED, Description: JWT authentication middleware enabled")
	}
	handler = enableCORS(handler)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, handler); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
