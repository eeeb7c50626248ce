package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	docs "github.com/edura-learn/edura_api/docs"
	"github.com/edura-learn/edura_api/services/handlers"
	"github.com/edura-learn/edura_api/shared"
)

type HttpService struct {
	context.DefaultService

	authMiddleware *AuthMiddleware
	monitoringSvc  *MonitoringService

	authHandler       *handlers.AuthHandler
	contentHandler    *handlers.ContentHandler
	enrollmentHandler *handlers.EnrollmentHandler
	progressHandler   *handlers.ProgressHandler
	noteHandler       *handlers.NoteHandler

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	svc.authMiddleware = ctx.Service(AUTH_MIDDLEWARE_SVC).(*AuthMiddleware)
	svc.monitoringSvc = ctx.Service(MONITORING_SVC).(*MonitoringService)

	svc.authHandler = handlers.NewAuthHandler(ctx.Service(AUTH_SVC).(*AuthService))
	svc.contentHandler = handlers.NewContentHandler(ctx.Service(CONTENT_SVC).(*ContentService))
	svc.enrollmentHandler = handlers.NewEnrollmentHandler(ctx.Service(ENROLLMENT_SVC).(*EnrollmentService))
	svc.progressHandler = handlers.NewProgressHandler(ctx.Service(PROGRESS_SVC).(*ProgressService))
	svc.noteHandler = handlers.NewNoteHandler(ctx.Service(NOTE_SVC).(*NoteService))

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	docs.SwaggerInfo.BasePath = ""

	svc.app = fiber.New(fiber.Config{
		AppName:      "edura_api",
		ErrorHandler: svc.handleError,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	svc.app.Use(MonitoringMiddleware(svc.monitoringSvc))

	svc.app.Get("/ping", svc.ping)
	svc.app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	svc.registerRoutes()

	log.WithField("port", svc.port).Info("HTTP server listening")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) registerRoutes() {
	v1 := svc.app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	// Brute force protection on the credential endpoints
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	})

	auth := v1.Group("/auth")
	auth.Post("/register", authLimiter, svc.authHandler.Register)
	auth.Post("/login", authLimiter, svc.authHandler.Login)

	requireAuth := svc.authMiddleware.RequiredAuth()
	requireAdmin := svc.authMiddleware.RequireRole(shared.RoleAdmin)

	profile := v1.Group("/profile", requireAuth)
	profile.Get("/", svc.authHandler.GetProfile)
	profile.Put("/", svc.authHandler.UpdateProfile)
	profile.Put("/password", svc.authHandler.ChangePassword)

	v1.Get("/users", requireAuth, requireAdmin, svc.authHandler.ListStudents)

	courses := v1.Group("/courses")
	courses.Get("/", svc.contentHandler.ListCourses)
	// Registered before /:courseId so "created" is not taken as an ID
	courses.Get("/created", requireAuth, svc.contentHandler.GetCreatedCourses)
	courses.Get("/:courseId", svc.contentHandler.GetCourse)
	courses.Post("/", requireAuth, requireAdmin, svc.contentHandler.CreateCourse)
	courses.Put("/:courseId", requireAuth, requireAdmin, svc.contentHandler.UpdateCourse)
	courses.Delete("/:courseId", requireAuth, requireAdmin, svc.contentHandler.DeleteCourse)
	courses.Get("/:courseId/lessons", requireAuth, svc.contentHandler.GetCourseLessons)
	courses.Post("/:courseId/lessons", requireAuth, requireAdmin, svc.contentHandler.CreateLesson)
	courses.Get("/:courseId/quests", requireAuth, svc.contentHandler.GetCourseQuests)
	courses.Get("/:courseId/enrollments", requireAuth, svc.enrollmentHandler.GetCourseEnrollments)

	lessons := v1.Group("/lessons", requireAuth)
	lessons.Get("/:lessonId", svc.contentHandler.GetLesson)
	lessons.Put("/:lessonId", requireAdmin, svc.contentHandler.UpdateLesson)
	lessons.Delete("/:lessonId", requireAdmin, svc.contentHandler.DeleteLesson)
	lessons.Post("/:lessonId/complete", svc.progressHandler.CompleteLesson)
	lessons.Get("/:lessonId/quests", svc.contentHandler.GetLessonQuests)
	lessons.Post("/:lessonId/quests", requireAdmin, svc.contentHandler.CreateQuest)

	quests := v1.Group("/quests", requireAuth)
	quests.Get("/:questId", svc.contentHandler.GetQuest)
	quests.Delete("/:questId", requireAdmin, svc.contentHandler.DeleteQuest)
	quests.Post("/:questId/complete", svc.progressHandler.CompleteQuest)
	quests.Post("/:questId/submit", svc.progressHandler.SubmitQuestAnswers)
	quests.Get("/:questId/questions", svc.contentHandler.GetQuestQuestions)
	quests.Get("/:questId/questions/answers", requireAdmin, svc.contentHandler.GetQuestQuestionsWithAnswers)
	quests.Post("/:questId/questions", requireAdmin, svc.contentHandler.CreateQuestion)

	v1.Delete("/questions/:questionId", requireAuth, requireAdmin, svc.contentHandler.DeleteQuestion)

	enrollments := v1.Group("/enrollments", requireAuth)
	enrollments.Post("/", svc.enrollmentHandler.Enroll)
	enrollments.Get("/", svc.enrollmentHandler.GetUserEnrollments)
	enrollments.Get("/:courseId", svc.enrollmentHandler.GetEnrollment)

	progress := v1.Group("/progress", requireAuth)
	progress.Get("/stats", svc.enrollmentHandler.GetProgressStats)
	progress.Get("/courses/:courseId", svc.enrollmentHandler.GetCompletedContent)

	notes := v1.Group("/notes", requireAuth)
	notes.Post("/", svc.noteHandler.UploadNote)
	notes.Get("/", svc.noteHandler.ListNotes)
	notes.Get("/:noteId/download", svc.noteHandler.DownloadNote)
	notes.Post("/:noteId/vote", svc.noteHandler.VoteNote)
	notes.Delete("/:noteId", svc.noteHandler.DeleteNote)
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}
