package services

import (
	goContext "context"
	"fmt"
	"time"

	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/model"
	"github.com/edura-learn/edura_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

// EnrollmentService manages course membership and the aggregate progress
// views built on top of it.
type EnrollmentService struct {
	context.DefaultService

	sql   *PostgresService
	cache *RedisService
}

const ENROLLMENT_SVC = "enrollment_svc"

const statsCacheTTL = 5 * time.Minute

func (svc EnrollmentService) Id() string {
	return ENROLLMENT_SVC
}

func (svc *EnrollmentService) Configure(ctx *context.Context) error {
	svc.sql = ctx.Service(POSTGRES_SVC).(*PostgresService)
	svc.cache = ctx.Service(REDIS_SVC).(*RedisService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *EnrollmentService) Start() error {
	return nil
}

// WithDeps wires dependencies directly, bypassing the service container.
// Used by tests.
func (svc *EnrollmentService) WithDeps(sql *PostgresService, cache *RedisService) *EnrollmentService {
	svc.sql = sql
	svc.cache = cache
	return svc
}

// Enroll creates the user's enrollment in a course. At most one enrollment
// per (user, course) pair; re-enrolling is a conflict, not a reset.
func (svc *EnrollmentService) Enroll(userID, courseID string) (*dto.EnrollmentResponse, error) {
	course, err := svc.sql.GetCourse(courseID)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Course not found")
		}
		return nil, err
	}

	if _, err := svc.sql.GetEnrollment(userID, courseID); err == nil {
		return nil, shared.NewConflictError(nil, "Already enrolled in this course")
	} else if appErr, ok := shared.GetAppError(err); !ok || appErr.StatusCode != 404 {
		return nil, err
	}

	enrollment, err := svc.sql.CreateEnrollment(&model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":   userID,
		"course_id": courseID,
	}).Info("User enrolled")

	resp := toEnrollmentResponse(enrollment, course.Title)
	return &resp, nil
}

func (svc *EnrollmentService) GetUserEnrollments(userID string) (*dto.EnrollmentListResponse, error) {
	enrollments, err := svc.sql.GetUserEnrollments(userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		title := ""
		if course, err := svc.sql.GetCourse(enrollment.CourseID); err == nil {
			title = course.Title
		}
		out = append(out, toEnrollmentResponse(&enrollment, title))
	}

	return &dto.EnrollmentListResponse{Enrollments: out, Total: len(out)}, nil
}

func (svc *EnrollmentService) GetEnrollment(userID, courseID string) (*dto.EnrollmentResponse, error) {
	enrollment, err := svc.sql.GetEnrollment(userID, courseID)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Enrollment not found")
		}
		return nil, err
	}

	title := ""
	if course, err := svc.sql.GetCourse(courseID); err == nil {
		title = course.Title
	}

	resp := toEnrollmentResponse(enrollment, title)
	return &resp, nil
}

// GetCourseEnrollments lists everyone enrolled in a course. Restricted to
// the course creator and admins.
func (svc *EnrollmentService) GetCourseEnrollments(requesterID, role, courseID string) (*dto.EnrollmentListResponse, error) {
	course, err := svc.sql.GetCourse(courseID)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Course not found")
		}
		return nil, err
	}

	if course.CreatorID != requesterID && role != shared.RoleAdmin {
		return nil, shared.NewForbiddenError(nil, "Not allowed to view enrollments for this course")
	}

	enrollments, err := svc.sql.GetCourseEnrollments(courseID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		out = append(out, toEnrollmentResponse(&enrollments[i], course.Title))
	}

	return &dto.EnrollmentListResponse{Enrollments: out, Total: len(out)}, nil
}

// GetUserProgressStats aggregates the user's learning activity. The result
// is cached; completion writes invalidate it.
func (svc *EnrollmentService) GetUserProgressStats(userID string) (*dto.UserProgressStatsResponse, error) {
	cacheKey := fmt.Sprintf("progress:%s:stats", userID)

	if svc.cache != nil {
		var cached dto.UserProgressStatsResponse
		if hit, err := svc.cache.GetJSON(goContext.Background(), cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	user, err := svc.sql.GetUser(userID)
	if err != nil {
		return nil, err
	}

	enrollments, err := svc.sql.GetUserEnrollments(userID)
	if err != nil {
		return nil, err
	}

	completedLessons, err := svc.sql.CountUserCompletedLessons(userID)
	if err != nil {
		return nil, err
	}
	completedQuests, err := svc.sql.CountUserCompletedQuests(userID)
	if err != nil {
		return nil, err
	}

	completedCourses := 0
	progressSum := 0.0
	for _, enrollment := range enrollments {
		if enrollment.IsCompleted {
			completedCourses++
		}
		progressSum += enrollment.ProgressPercentage
	}

	averageProgress := 0.0
	if len(enrollments) > 0 {
		averageProgress = progressSum / float64(len(enrollments))
	}

	stats := &dto.UserProgressStatsResponse{
		TotalEnrollments: len(enrollments),
		CompletedCourses: completedCourses,
		CompletedLessons: int(completedLessons),
		CompletedQuests:  int(completedQuests),
		TotalExp:         user.Exp,
		TotalCoins:       user.Coins,
		Rank:             user.Rank,
		AverageProgress:  averageProgress,
	}

	if svc.cache != nil {
		if err := svc.cache.SetJSON(goContext.Background(), cacheKey, stats, statsCacheTTL); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to cache progress stats")
		}
	}

	return stats, nil
}

// GetCompletedContent lists the lesson and quest IDs the user has finished
// in a course. Drives client-side checkmarks.
func (svc *EnrollmentService) GetCompletedContent(userID, courseID string) ([]string, []string, error) {
	if _, err := svc.sql.GetEnrollment(userID, courseID); err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, nil, shared.NewForbiddenError(nil, "Not enrolled in this course")
		}
		return nil, nil, err
	}

	lessonIDs, err := svc.sql.GetCompletedLessonIDs(userID, courseID)
	if err != nil {
		return nil, nil, err
	}
	questIDs, err := svc.sql.GetCompletedQuestIDs(userID, courseID)
	if err != nil {
		return nil, nil, err
	}

	return lessonIDs, questIDs, nil
}

func toEnrollmentResponse(enrollment *model.Enrollment, courseTitle string) dto.EnrollmentResponse {
	return dto.EnrollmentResponse{
		ID:                 enrollment.ID,
		UserID:             enrollment.UserID,
		CourseID:           enrollment.CourseID,
		CourseTitle:        courseTitle,
		EnrollmentDate:     enrollment.EnrollmentDate,
		LastAccessedDate:   enrollment.LastAccessedDate,
		ProgressPercentage: enrollment.ProgressPercentage,
		IsCompleted:        enrollment.IsCompleted,
		CompletionDate:     enrollment.CompletionDate,
	}
}
