package services

import (
	"net/http"
	"testing"

	"github.com/edura-learn/edura_api/shared"
)

func TestEnroll(t *testing.T) {
	sql := newTestDB(t)
	svc := (&EnrollmentService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)

	resp, err := svc.Enroll(user.ID, course.ID)
	if err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if resp.CourseID != course.ID || resp.UserID != user.ID {
		t.Errorf("unexpected enrollment identity: %+v", resp)
	}
	if resp.ProgressPercentage != 0 {
		t.Errorf("fresh enrollment must start at 0 progress, got %v", resp.ProgressPercentage)
	}
	if resp.IsCompleted {
		t.Error("fresh enrollment must not be completed")
	}
	if resp.CourseTitle != course.Title {
		t.Errorf("expected course title %q, got %q", course.Title, resp.CourseTitle)
	}
}

func TestEnrollTwice(t *testing.T) {
	sql := newTestDB(t)
	svc := (&EnrollmentService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)

	if _, err := svc.Enroll(user.ID, course.ID); err != nil {
		t.Fatalf("first enrollment failed: %v", err)
	}

	_, err := svc.Enroll(user.ID, course.ID)
	assertStatusCode(t, err, http.StatusConflict)
}

func TestEnrollMissingCourse(t *testing.T) {
	sql := newTestDB(t)
	svc := (&EnrollmentService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")

	_, err := svc.Enroll(user.ID, "missing-course")
	assertStatusCode(t, err, http.StatusNotFound)
}

func TestGetUserProgressStats(t *testing.T) {
	sql := newTestDB(t)
	enrollmentSvc := (&EnrollmentService{}).WithDeps(sql, nil)
	progressSvc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	l1 := createTestLesson(t, sql, course.ID, 1, 50, 10)
	createTestLesson(t, sql, course.ID, 2, 75, 15)
	quest := createTestQuest(t, sql, l1.ID, course.ID, 40)
	enrollTestUser(t, sql, user.ID, course.ID)

	if _, err := progressSvc.CompleteLesson(user.ID, l1.ID); err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}
	if _, err := progressSvc.CompleteQuest(user.ID, quest.ID, 60); err != nil {
		t.Fatalf("CompleteQuest failed: %v", err)
	}

	stats, err := enrollmentSvc.GetUserProgressStats(user.ID)
	if err != nil {
		t.Fatalf("GetUserProgressStats failed: %v", err)
	}

	if stats.TotalEnrollments != 1 {
		t.Errorf("expected 1 enrollment, got %d", stats.TotalEnrollments)
	}
	if stats.CompletedCourses != 0 {
		t.Errorf("expected 0 completed courses, got %d", stats.CompletedCourses)
	}
	if stats.CompletedLessons != 1 {
		t.Errorf("expected 1 completed lesson, got %d", stats.CompletedLessons)
	}
	if stats.CompletedQuests != 1 {
		t.Errorf("expected 1 completed quest, got %d", stats.CompletedQuests)
	}
	if stats.TotalExp != 90 {
		t.Errorf("expected 90 exp (50 lesson + 40 quest), got %d", stats.TotalExp)
	}
	if stats.TotalCoins != 10 {
		t.Errorf("expected 10 coins, got %d", stats.TotalCoins)
	}
	if stats.AverageProgress != 50 {
		t.Errorf("expected average progress 50, got %v", stats.AverageProgress)
	}
}

func TestGetCompletedContent(t *testing.T) {
	sql := newTestDB(t)
	enrollmentSvc := (&EnrollmentService{}).WithDeps(sql, nil)
	progressSvc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	l1 := createTestLesson(t, sql, course.ID, 1, 50, 10)
	createTestLesson(t, sql, course.ID, 2, 75, 15)
	quest := createTestQuest(t, sql, l1.ID, course.ID, 40)
	enrollTestUser(t, sql, user.ID, course.ID)

	if _, err := progressSvc.CompleteLesson(user.ID, l1.ID); err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}
	if _, err := progressSvc.CompleteQuest(user.ID, quest.ID, 0); err != nil {
		t.Fatalf("CompleteQuest failed: %v", err)
	}

	lessonIDs, questIDs, err := enrollmentSvc.GetCompletedContent(user.ID, course.ID)
	if err != nil {
		t.Fatalf("GetCompletedContent failed: %v", err)
	}

	if len(lessonIDs) != 1 || lessonIDs[0] != l1.ID {
		t.Errorf("expected completed lesson [%s], got %v", l1.ID, lessonIDs)
	}
	if len(questIDs) != 1 || questIDs[0] != quest.ID {
		t.Errorf("expected completed quest [%s], got %v", quest.ID, questIDs)
	}
}

func TestGetCompletedContentRequiresEnrollment(t *testing.T) {
	sql := newTestDB(t)
	svc := (&EnrollmentService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)

	_, _, err := svc.GetCompletedContent(user.ID, course.ID)
	assertStatusCode(t, err, http.StatusForbidden)
}

func TestGetCourseEnrollments(t *testing.T) {
	sql := newTestDB(t)
	svc := (&EnrollmentService{}).WithDeps(sql, nil)

	creator := createTestUser(t, sql, "creator")
	course := createTestCourse(t, sql, creator.ID)

	s1 := createTestUser(t, sql, "student1")
	s2 := createTestUser(t, sql, "student2")
	enrollTestUser(t, sql, s1.ID, course.ID)
	enrollTestUser(t, sql, s2.ID, course.ID)

	list, err := svc.GetCourseEnrollments(creator.ID, shared.RoleStudent, course.ID)
	if err != nil {
		t.Fatalf("GetCourseEnrollments failed: %v", err)
	}
	if list.Total != 2 {
		t.Fatalf("expected 2 enrollments, got %d", list.Total)
	}

	// Admins see any course's roster
	if _, err := svc.GetCourseEnrollments(s1.ID, shared.RoleAdmin, course.ID); err != nil {
		t.Errorf("admin must see enrollments: %v", err)
	}

	// Everyone else is refused
	_, err = svc.GetCourseEnrollments(s1.ID, shared.RoleStudent, course.ID)
	assertStatusCode(t, err, http.StatusForbidden)

	_, err = svc.GetCourseEnrollments(creator.ID, shared.RoleStudent, "missing-course")
	assertStatusCode(t, err, http.StatusNotFound)
}
