package services

import (
	"net/http"
	"testing"

	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/model"
)

func TestCompleteLesson(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	l1 := createTestLesson(t, sql, course.ID, 1, 50, 10)
	l2 := createTestLesson(t, sql, course.ID, 2, 75, 15)
	createTestLesson(t, sql, course.ID, 3, 100, 20)
	enrollTestUser(t, sql, user.ID, course.ID)

	resp, err := svc.CompleteLesson(user.ID, l1.ID)
	if err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}
	if resp.ExpGained != 50 || resp.CoinsGained != 10 {
		t.Errorf("expected rewards 50/10, got %d/%d", resp.ExpGained, resp.CoinsGained)
	}
	if resp.CourseProgress != 33.33 {
		t.Errorf("expected progress 33.33, got %v", resp.CourseProgress)
	}
	if resp.CourseCompleted {
		t.Error("course should not be completed after one of three lessons")
	}

	updated, err := sql.GetUser(user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if updated.Exp != 50 || updated.Coins != 10 {
		t.Errorf("expected user totals 50/10, got %d/%d", updated.Exp, updated.Coins)
	}

	resp2, err := svc.CompleteLesson(user.ID, l2.ID)
	if err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}
	if resp2.CourseProgress != 66.67 {
		t.Errorf("expected progress 66.67, got %v", resp2.CourseProgress)
	}
	if resp2.CourseProgress <= resp.CourseProgress {
		t.Error("progress must be monotonic across completions")
	}
}

func TestCompleteLessonNotFound(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")

	_, err := svc.CompleteLesson(user.ID, "missing-lesson")
	assertStatusCode(t, err, http.StatusNotFound)
}

func TestCompleteLessonNotEnrolled(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	lesson := createTestLesson(t, sql, course.ID, 1, 50, 10)

	_, err := svc.CompleteLesson(user.ID, lesson.ID)
	assertStatusCode(t, err, http.StatusForbidden)

	// The failed attempt must not leave a completion fact or rewards behind
	u, _ := sql.GetUser(user.ID)
	if u.Exp != 0 || u.Coins != 0 {
		t.Errorf("rejected completion credited rewards: %d/%d", u.Exp, u.Coins)
	}
}

func TestCompleteLessonTwice(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	lesson := createTestLesson(t, sql, course.ID, 1, 50, 10)
	enrollTestUser(t, sql, user.ID, course.ID)

	if _, err := svc.CompleteLesson(user.ID, lesson.ID); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}

	_, err := svc.CompleteLesson(user.ID, lesson.ID)
	assertStatusCode(t, err, http.StatusBadRequest)

	u, _ := sql.GetUser(user.ID)
	if u.Exp != 50 {
		t.Errorf("repeat completion must not double credit, exp = %d", u.Exp)
	}
}

func TestCompleteLessonFinishesCourse(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	l1 := createTestLesson(t, sql, course.ID, 1, 50, 10)
	l2 := createTestLesson(t, sql, course.ID, 2, 75, 15)
	enrollTestUser(t, sql, user.ID, course.ID)

	// Completion order does not matter, only the facts do
	if _, err := svc.CompleteLesson(user.ID, l2.ID); err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}
	resp, err := svc.CompleteLesson(user.ID, l1.ID)
	if err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}

	if resp.CourseProgress != 100 {
		t.Errorf("expected progress 100, got %v", resp.CourseProgress)
	}
	if !resp.CourseCompleted {
		t.Error("completing the last lesson must flip the course to completed")
	}

	enrollment, err := sql.GetEnrollment(user.ID, course.ID)
	if err != nil {
		t.Fatalf("GetEnrollment failed: %v", err)
	}
	if !enrollment.IsCompleted {
		t.Error("enrollment not marked completed")
	}
	if enrollment.CompletionDate == nil {
		t.Error("completion date not set")
	}
}

func TestCompleteQuestDoesNotMoveProgress(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	lesson := createTestLesson(t, sql, course.ID, 1, 50, 10)
	quest := createTestQuest(t, sql, lesson.ID, course.ID, 40)
	enrollTestUser(t, sql, user.ID, course.ID)

	resp, err := svc.CompleteQuest(user.ID, quest.ID, 120)
	if err != nil {
		t.Fatalf("CompleteQuest failed: %v", err)
	}
	if resp.ExpGained != 40 {
		t.Errorf("expected 40 exp, got %d", resp.ExpGained)
	}
	if resp.CourseProgress != 0 {
		t.Errorf("no lessons done, expected reported progress 0, got %v", resp.CourseProgress)
	}

	u, _ := sql.GetUser(user.ID)
	if u.Exp != 40 {
		t.Errorf("expected user exp 40, got %d", u.Exp)
	}
	if u.Coins != 0 {
		t.Errorf("quests must not grant coins, got %d", u.Coins)
	}

	enrollment, _ := sql.GetEnrollment(user.ID, course.ID)
	if enrollment.ProgressPercentage != 0 {
		t.Errorf("quest completion moved progress to %v", enrollment.ProgressPercentage)
	}
	if enrollment.IsCompleted {
		t.Error("quest completion must never complete the course")
	}
}

func TestCompleteQuestReportsCourseProgress(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	l1 := createTestLesson(t, sql, course.ID, 1, 50, 10)
	createTestLesson(t, sql, course.ID, 2, 75, 15)
	quest := createTestQuest(t, sql, l1.ID, course.ID, 30)
	enrollTestUser(t, sql, user.ID, course.ID)

	if _, err := svc.CompleteLesson(user.ID, l1.ID); err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}

	resp, err := svc.CompleteQuest(user.ID, quest.ID, 90)
	if err != nil {
		t.Fatalf("CompleteQuest failed: %v", err)
	}

	// The payload reports the lesson-derived progress without moving it
	if resp.CourseProgress != 50 {
		t.Errorf("expected reported progress 50, got %v", resp.CourseProgress)
	}

	enrollment, _ := sql.GetEnrollment(user.ID, course.ID)
	if enrollment.ProgressPercentage != 50 {
		t.Errorf("stored progress must stay lesson-derived, got %v", enrollment.ProgressPercentage)
	}
	if enrollment.IsCompleted {
		t.Error("quest completion must never complete the course")
	}
}

func TestCompleteQuestGuards(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	lesson := createTestLesson(t, sql, course.ID, 1, 50, 10)
	quest := createTestQuest(t, sql, lesson.ID, course.ID, 40)

	_, err := svc.CompleteQuest(user.ID, "missing-quest", 0)
	assertStatusCode(t, err, http.StatusNotFound)

	_, err = svc.CompleteQuest(user.ID, quest.ID, 0)
	assertStatusCode(t, err, http.StatusForbidden)

	enrollTestUser(t, sql, user.ID, course.ID)
	if _, err := svc.CompleteQuest(user.ID, quest.ID, 0); err != nil {
		t.Fatalf("CompleteQuest failed: %v", err)
	}
	_, err = svc.CompleteQuest(user.ID, quest.ID, 0)
	assertStatusCode(t, err, http.StatusBadRequest)
}

func TestSubmitQuestAnswersPass(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	lesson := createTestLesson(t, sql, course.ID, 1, 50, 10)
	quest := createTestQuest(t, sql, lesson.ID, course.ID, 40)
	enrollTestUser(t, sql, user.ID, course.ID)

	questions := []*model.QuestQuestion{
		createTestQuestion(t, sql, quest.ID, 1),
		createTestQuestion(t, sql, quest.ID, 2),
		createTestQuestion(t, sql, quest.ID, 3),
		createTestQuestion(t, sql, quest.ID, 4),
		createTestQuestion(t, sql, quest.ID, 1),
	}

	// Miss the last question only: 4/5 = 80%
	answers := answersFor(questions, func(i int, q *model.QuestQuestion) int {
		if i == len(questions)-1 {
			return q.CorrectOption%4 + 1
		}
		return q.CorrectOption
	})

	resp, err := svc.SubmitQuestAnswers(user.ID, quest.ID, dto.SubmitQuestRequest{
		Answers:          answers,
		TimeTakenSeconds: 300,
	})
	if err != nil {
		t.Fatalf("SubmitQuestAnswers failed: %v", err)
	}

	if resp.CorrectAnswers != 4 || resp.TotalQuestions != 5 {
		t.Errorf("expected 4 of 5 correct, got %d/%d", resp.CorrectAnswers, resp.TotalQuestions)
	}
	if resp.Percentage != 80 {
		t.Errorf("expected 80%%, got %v", resp.Percentage)
	}
	if !resp.Passed {
		t.Error("80% must pass the 70% threshold")
	}
	if resp.ExpGained != 40 {
		t.Errorf("passing submission should credit quest exp, got %d", resp.ExpGained)
	}
	if len(resp.Results) != 5 {
		t.Errorf("expected 5 per-question results, got %d", len(resp.Results))
	}

	u, _ := sql.GetUser(user.ID)
	if u.Exp != 40 {
		t.Errorf("expected user exp 40, got %d", u.Exp)
	}
}

func TestSubmitQuestAnswersFail(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	lesson := createTestLesson(t, sql, course.ID, 1, 50, 10)
	quest := createTestQuest(t, sql, lesson.ID, course.ID, 40)
	enrollTestUser(t, sql, user.ID, course.ID)

	questions := []*model.QuestQuestion{
		createTestQuestion(t, sql, quest.ID, 1),
		createTestQuestion(t, sql, quest.ID, 2),
		createTestQuestion(t, sql, quest.ID, 3),
	}

	// 1/3 correct = 33.33%
	answers := answersFor(questions, func(i int, q *model.QuestQuestion) int {
		if i == 0 {
			return q.CorrectOption
		}
		return q.CorrectOption%4 + 1
	})

	resp, err := svc.SubmitQuestAnswers(user.ID, quest.ID, dto.SubmitQuestRequest{Answers: answers})
	if err != nil {
		t.Fatalf("SubmitQuestAnswers failed: %v", err)
	}

	if resp.Passed {
		t.Error("a 33.33 percent score must not pass")
	}
	if resp.ExpGained != 0 {
		t.Errorf("failing submission must not credit exp, got %d", resp.ExpGained)
	}

	done, _ := sql.HasCompletedQuestTx(sql.Db(), user.ID, quest.ID)
	if done {
		t.Error("failing submission recorded a completion")
	}
}

func TestSubmitQuestAnswersUnknownQuestionsIgnored(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	lesson := createTestLesson(t, sql, course.ID, 1, 50, 10)
	quest := createTestQuest(t, sql, lesson.ID, course.ID, 40)
	enrollTestUser(t, sql, user.ID, course.ID)

	q1 := createTestQuestion(t, sql, quest.ID, 2)
	createTestQuestion(t, sql, quest.ID, 3)

	resp, err := svc.SubmitQuestAnswers(user.ID, quest.ID, dto.SubmitQuestRequest{
		Answers: []dto.QuestAnswer{
			{QuestionID: q1.ID, SelectedOption: 2},
			{QuestionID: "not-a-question", SelectedOption: 1},
		},
	})
	if err != nil {
		t.Fatalf("SubmitQuestAnswers failed: %v", err)
	}

	// Unknown IDs are dropped from both the results and the total
	if resp.CorrectAnswers != 1 || resp.TotalQuestions != 1 {
		t.Errorf("expected 1 of 1 correct, got %d/%d", resp.CorrectAnswers, resp.TotalQuestions)
	}
	if len(resp.Results) != 1 {
		t.Errorf("unknown question must not appear in results, got %d entries", len(resp.Results))
	}
	if resp.Percentage != 100 {
		t.Errorf("expected 100%%, got %v", resp.Percentage)
	}
	if !resp.Passed {
		t.Error("a perfect score over the recognized answers must pass")
	}
	if resp.ExpGained != 40 {
		t.Errorf("passing submission should credit quest exp, got %d", resp.ExpGained)
	}
}

func TestSubmitQuestAnswersNoRecognizedAnswers(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	lesson := createTestLesson(t, sql, course.ID, 1, 50, 10)
	quest := createTestQuest(t, sql, lesson.ID, course.ID, 40)
	enrollTestUser(t, sql, user.ID, course.ID)

	// The quest has no questions, so nothing can be recognized
	resp, err := svc.SubmitQuestAnswers(user.ID, quest.ID, dto.SubmitQuestRequest{
		Answers: []dto.QuestAnswer{{QuestionID: "x", SelectedOption: 1}},
	})
	if err != nil {
		t.Fatalf("SubmitQuestAnswers failed: %v", err)
	}

	if resp.TotalQuestions != 0 || resp.Percentage != 0 {
		t.Errorf("expected an empty grade, got %d questions at %v%%", resp.TotalQuestions, resp.Percentage)
	}
	if resp.Passed {
		t.Error("an empty grade must not pass")
	}
	done, _ := sql.HasCompletedQuestTx(sql.Db(), user.ID, quest.ID)
	if done {
		t.Error("empty grade recorded a completion")
	}
}

func TestSubmitQuestAnswersPassWithoutEnrollment(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	creator := createTestUser(t, sql, "creator")
	course := createTestCourse(t, sql, creator.ID)
	lesson := createTestLesson(t, sql, course.ID, 1, 50, 10)
	quest := createTestQuest(t, sql, lesson.ID, course.ID, 40)

	q := createTestQuestion(t, sql, quest.ID, 1)

	resp, err := svc.SubmitQuestAnswers(user.ID, quest.ID, dto.SubmitQuestRequest{
		Answers: []dto.QuestAnswer{{QuestionID: q.ID, SelectedOption: 1}},
	})
	if err != nil {
		t.Fatalf("SubmitQuestAnswers failed: %v", err)
	}

	// The grade stands but no completion or reward lands
	if !resp.Passed {
		t.Error("perfect score must pass")
	}
	if resp.ExpGained != 0 {
		t.Errorf("unenrolled pass must not credit exp, got %d", resp.ExpGained)
	}
	done, _ := sql.HasCompletedQuestTx(sql.Db(), user.ID, quest.ID)
	if done {
		t.Error("unenrolled pass recorded a completion")
	}
}

func TestSubmitQuestAnswersResubmitNoDoubleCredit(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	lesson := createTestLesson(t, sql, course.ID, 1, 50, 10)
	quest := createTestQuest(t, sql, lesson.ID, course.ID, 40)
	enrollTestUser(t, sql, user.ID, course.ID)

	q := createTestQuestion(t, sql, quest.ID, 3)
	req := dto.SubmitQuestRequest{
		Answers: []dto.QuestAnswer{{QuestionID: q.ID, SelectedOption: 3}},
	}

	first, err := svc.SubmitQuestAnswers(user.ID, quest.ID, req)
	if err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if first.ExpGained != 40 {
		t.Fatalf("first pass should credit 40 exp, got %d", first.ExpGained)
	}

	second, err := svc.SubmitQuestAnswers(user.ID, quest.ID, req)
	if err != nil {
		t.Fatalf("second submission failed: %v", err)
	}
	if !second.Passed {
		t.Error("resubmission must still be graded")
	}
	if second.ExpGained != 0 {
		t.Errorf("resubmission must not credit exp again, got %d", second.ExpGained)
	}

	u, _ := sql.GetUser(user.ID)
	if u.Exp != 40 {
		t.Errorf("expected total exp 40, got %d", u.Exp)
	}
}

func TestRecountProgressZeroLessons(t *testing.T) {
	sql := newTestDB(t)
	svc := (&ProgressService{}).WithDeps(sql, nil)

	user := createTestUser(t, sql, "learner")
	course := createTestCourse(t, sql, user.ID)
	enrollTestUser(t, sql, user.ID, course.ID)

	progress, completedAll, err := svc.recountProgress(sql.Db(), user.ID, course.ID)
	if err != nil {
		t.Fatalf("recountProgress failed: %v", err)
	}
	if progress != 0 {
		t.Errorf("course with no lessons must report 0, got %v", progress)
	}
	if completedAll {
		t.Error("course with no lessons must never be auto-completed")
	}
}
