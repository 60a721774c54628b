package main

import (
	"os"

	"github.com/yigit/unischedule/internal/pkg/logger"
	"github.com/yigit/unischedule/internal/server"
)

// @title UniSchedule API
// @version 1.0
// @description Scheduling API for faculties, courses, room bookings, sessions, timetables and enrollments.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name jwt
// @description JWT set by /users/login. An "Authorization: Bearer" header is accepted too.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Details are logged inside the setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
