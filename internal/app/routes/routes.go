package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/unischedule/internal/app/controllers"
	"github.com/yigit/unischedule/internal/middleware"
	"github.com/yigit/unischedule/internal/pkg/websocket"
)

// Handlers groups the controllers mounted by SetupRouter.
type Handlers struct {
	Auth       *controllers.AuthController
	Faculty    *controllers.FacultyController
	Course     *controllers.CourseController
	Booking    *controllers.BookingController
	Session    *controllers.SessionController
	Timetable  *controllers.TimetableController
	Enrollment *controllers.EnrollmentController
	Events     *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h *Handlers, authMiddleware *middleware.AuthMiddleware) {
	// --- Operational routes ---
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is ready")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", h.Events.HandleConnection)

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Users ---
	users := api.Group("/users")
	{
		users.POST("/register", h.Auth.Register)
		users.POST("/login", h.Auth.Login)
		users.POST("/logout", h.Auth.Logout)
	}

	// Everything below requires a valid token
	protected := api.Group("")
	protected.Use(authMiddleware.Protect())

	protected.GET("/users/profile", h.Auth.GetProfile)
	protected.PUT("/users/:id/role", authMiddleware.Admin(), h.Auth.UpdateRole)

	// --- Faculties ---
	faculties := protected.Group("/faculties")
	{
		faculties.GET("", h.Faculty.GetAllFaculties)
		faculties.GET("/:id", h.Faculty.GetFacultyByID)
		faculties.POST("", authMiddleware.Admin(), h.Faculty.CreateFaculty)
		faculties.PUT("/:id", authMiddleware.Admin(), h.Faculty.UpdateFaculty)
		faculties.DELETE("/:id", authMiddleware.Admin(), h.Faculty.DeleteFaculty)
	}

	// --- Courses, course sessions and enrollments ---
	courses := protected.Group("/courses")
	{
		courses.GET("", h.Course.GetAllCourses)
		courses.GET("/:id", h.Course.GetCourseByID)
		courses.POST("", authMiddleware.Admin(), h.Course.CreateCourse)
		courses.PUT("/:id", authMiddleware.Admin(), h.Course.UpdateCourse)
		courses.DELETE("/:id", authMiddleware.Admin(), h.Course.DeleteCourse)

		courses.POST("/:id/enroll", h.Enrollment.Enroll)
		courses.GET("/:id/sessions", h.Enrollment.GetCourseSessions)
		courses.POST("/:id/sessions", authMiddleware.AdminOrFaculty(), h.Session.AttachToCourse)

		staff := courses.Group("/:id/enrollments", authMiddleware.AdminOrFaculty())
		{
			staff.GET("", h.Enrollment.GetCourseEnrollments)
			staff.PUT("/:enrollmentId", h.Enrollment.UpdateEnrollment)
			staff.DELETE("/:enrollmentId", h.Enrollment.DeleteEnrollment)
		}
	}

	// --- Timetables ---
	timetables := protected.Group("/timetables")
	{
		timetables.GET("", h.Timetable.GetAllTimetables)
		timetables.GET("/my-timetables", h.Timetable.GetMyTimetables)
		timetables.GET("/:id", h.Timetable.GetTimetableByID)
		timetables.GET("/:id/export", h.Timetable.ExportTimetable)
		timetables.POST("", authMiddleware.AdminOrFaculty(), h.Timetable.CreateTimetable)
		timetables.POST("/:id/sessions", authMiddleware.AdminOrFaculty(), h.Session.AttachToTimetable)
		timetables.PUT("/:id", authMiddleware.AdminOrFaculty(), h.Timetable.UpdateTimetable)
		timetables.DELETE("/:id", authMiddleware.AdminOrFaculty(), h.Timetable.DeleteTimetable)
	}

	// --- Bookings ---
	bookings := protected.Group("/bookings")
	{
		bookings.GET("", h.Booking.GetAllBookings)
		bookings.GET("/:id", h.Booking.GetBookingByID)
		bookings.POST("", authMiddleware.AdminOrFaculty(), h.Booking.CreateBooking)
		bookings.PUT("/:id", authMiddleware.AdminOrFaculty(), h.Booking.UpdateBooking)
		bookings.DELETE("/:id", authMiddleware.AdminOrFaculty(), h.Booking.DeleteBooking)
	}

	// --- Sessions ---
	sessions := protected.Group("/sessions")
	{
		sessions.GET("", h.Session.GetAllSessions)
		sessions.GET("/:id", h.Session.GetSessionByID)
		// Legacy attach-to-course route; :id is the course.
		sessions.POST("/:id", authMiddleware.AdminOrFaculty(), h.Session.AttachToCourse)
		sessions.PUT("/:id", authMiddleware.AdminOrFaculty(), h.Session.UpdateSession)
		sessions.DELETE("/:id", authMiddleware.AdminOrFaculty(), h.Session.DeleteSession)
	}
}
