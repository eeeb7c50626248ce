package services

import (
	goContext "context"
	"fmt"
	"math"
	"time"

	"github.com/edura-learn/edura_api/dto"
	"github.com/edura-learn/edura_api/model"
	"github.com/edura-learn/edura_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProgressService owns every write to the completion facts and the
// enrollment progress fields. Each public operation runs as a single
// transaction so rewards, facts and the recomputed percentage commit or
// roll back together.
type ProgressService struct {
	context.DefaultService

	sql        *PostgresService
	cache      *RedisService
	monitoring *MonitoringService
}

const PROGRESS_SVC = "progress_svc"

// QuestPassThreshold is the minimum grading percentage that marks a quiz
// submission as passed.
const QuestPassThreshold = 70.0

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *context.Context) error {
	svc.sql = ctx.Service(POSTGRES_SVC).(*PostgresService)
	svc.cache = ctx.Service(REDIS_SVC).(*RedisService)
	svc.monitoring = ctx.Service(MONITORING_SVC).(*MonitoringService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	return nil
}

// WithDeps wires dependencies directly, bypassing the service container.
// Used by tests.
func (svc *ProgressService) WithDeps(sql *PostgresService, cache *RedisService) *ProgressService {
	svc.sql = sql
	svc.cache = cache
	return svc
}

// CompleteLesson records a lesson completion for the user and settles all
// its consequences in one transaction: the completion fact, the exp/coins
// credit, and the enrollment's recomputed progress. Completing the last
// remaining lesson flips the enrollment to completed.
func (svc *ProgressService) CompleteLesson(userID, lessonID string) (*dto.CompleteLessonResponse, error) {
	var resp dto.CompleteLessonResponse

	err := svc.sql.Db().Transaction(func(tx *gorm.DB) error {
		var lesson model.Lesson
		if err := tx.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return shared.NewNotFoundError(err, "Lesson not found")
			}
			return svc.sql.HandleError(err)
		}

		enrollment, err := svc.sql.GetEnrollmentTx(tx, userID, lesson.CourseID)
		if err != nil {
			if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
				return shared.NewForbiddenError(nil, "Not enrolled in this course")
			}
			return err
		}

		done, err := svc.sql.HasCompletedLessonTx(tx, userID, lessonID)
		if err != nil {
			return err
		}
		if done {
			return shared.NewBadRequestError(nil, "Lesson already completed")
		}

		if err := svc.sql.CreateCompletedLessonTx(tx, &model.CompletedLesson{
			UserID:   userID,
			LessonID: lessonID,
		}); err != nil {
			return err
		}

		if err := svc.sql.AddUserRewardsTx(tx, userID, lesson.ExpReward, lesson.CoinsReward); err != nil {
			return err
		}

		progress, completedAll, err := svc.recountProgress(tx, userID, lesson.CourseID)
		if err != nil {
			return err
		}

		now := time.Now()
		enrollment.ProgressPercentage = progress
		enrollment.LastAccessedDate = now
		if completedAll && !enrollment.IsCompleted {
			enrollment.IsCompleted = true
			enrollment.CompletionDate = &now
			resp.CourseCompleted = true
		}

		if err := svc.sql.UpdateEnrollmentTx(tx, enrollment); err != nil {
			return err
		}

		resp.LessonID = lessonID
		resp.ExpGained = lesson.ExpReward
		resp.CoinsGained = lesson.CoinsReward
		resp.CourseProgress = progress
		return nil
	})
	if err != nil {
		return nil, err
	}

	svc.invalidateStats(userID)
	if svc.monitoring != nil {
		svc.monitoring.RecordLessonCompleted()
		svc.monitoring.RecordRewards(resp.ExpGained, resp.CoinsGained)
		if resp.CourseCompleted {
			svc.monitoring.RecordCourseCompleted()
		}
	}

	log.WithFields(log.Fields{
		"user_id":   userID,
		"lesson_id": lessonID,
		"progress":  resp.CourseProgress,
	}).Info("Lesson completed")

	return &resp, nil
}

// CompleteQuest records a quest completion and credits its exp. The
// response reports the lesson-derived course progress, but quests touch
// last_accessed_date only: they never move progress_percentage and never
// flip the enrollment to completed.
func (svc *ProgressService) CompleteQuest(userID, questID string, timeTakenSeconds int) (*dto.CompleteQuestResponse, error) {
	var resp dto.CompleteQuestResponse

	err := svc.sql.Db().Transaction(func(tx *gorm.DB) error {
		var quest model.Quest
		if err := tx.Where("id = ?", questID).First(&quest).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return shared.NewNotFoundError(err, "Quest not found")
			}
			return svc.sql.HandleError(err)
		}

		enrollment, err := svc.sql.GetEnrollmentTx(tx, userID, quest.CourseID)
		if err != nil {
			if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
				return shared.NewForbiddenError(nil, "Not enrolled in this course")
			}
			return err
		}

		done, err := svc.sql.HasCompletedQuestTx(tx, userID, questID)
		if err != nil {
			return err
		}
		if done {
			return shared.NewBadRequestError(nil, "Quest already completed")
		}

		if err := svc.sql.CreateCompletedQuestTx(tx, &model.CompletedQuest{
			UserID:           userID,
			QuestID:          questID,
			TimeTakenSeconds: timeTakenSeconds,
		}); err != nil {
			return err
		}

		if err := svc.sql.AddUserRewardsTx(tx, userID, quest.ExpReward, 0); err != nil {
			return err
		}

		progress, _, err := svc.recountProgress(tx, userID, quest.CourseID)
		if err != nil {
			return err
		}

		enrollment.LastAccessedDate = time.Now()
		if err := svc.sql.UpdateEnrollmentTx(tx, enrollment); err != nil {
			return err
		}

		resp.QuestID = questID
		resp.ExpGained = quest.ExpReward
		resp.CourseProgress = progress
		return nil
	})
	if err != nil {
		return nil, err
	}

	svc.invalidateStats(userID)
	if svc.monitoring != nil {
		svc.monitoring.RecordQuestCompleted()
		svc.monitoring.RecordRewards(resp.ExpGained, 0)
	}

	return &resp, nil
}

// SubmitQuestAnswers grades a quiz submission against the quest's question
// bank. Answers naming unknown question IDs are dropped from both the
// results and the total; the grade is computed over the recognized answers
// only, and a submission with none grades 0. A passing submission (>= 70%)
// also records the quest completion and credits its exp, unless the user
// is not enrolled or has already completed the quest, in which case the
// grade stands but no state changes.
func (svc *ProgressService) SubmitQuestAnswers(userID, questID string, req dto.SubmitQuestRequest) (*dto.SubmitQuestResponse, error) {
	quest, err := svc.sql.GetQuest(questID)
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
			return nil, shared.NewNotFoundError(appErr.Err, "Quest not found")
		}
		return nil, err
	}

	questions, err := svc.sql.GetQuestionsByQuest(questID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.QuestQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	correctCount := 0
	results := make([]dto.QuestionResult, 0, len(req.Answers))
	for _, answer := range req.Answers {
		question, known := byID[answer.QuestionID]
		if !known {
			continue
		}

		correct := answer.SelectedOption == question.CorrectOption
		if correct {
			correctCount++
		}
		results = append(results, dto.QuestionResult{
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
			CorrectOption:  question.CorrectOption,
			Correct:        correct,
		})
	}

	percentage := 0.0
	if len(results) > 0 {
		percentage = math.Round(float64(correctCount)/float64(len(results))*10000) / 100
	}
	passed := percentage >= QuestPassThreshold

	resp := &dto.SubmitQuestResponse{
		QuestID:        questID,
		CorrectAnswers: correctCount,
		TotalQuestions: len(results),
		Percentage:     percentage,
		Passed:         passed,
		Results:        results,
	}

	if passed {
		expGained, err := svc.recordPassedQuest(userID, quest, req.TimeTakenSeconds)
		if err != nil {
			return nil, err
		}
		resp.ExpGained = expGained
	}

	if svc.monitoring != nil {
		svc.monitoring.RecordQuizSubmission(passed)
	}

	return resp, nil
}

// recordPassedQuest applies the completion side effect of a passing
// submission. Not being enrolled or having completed the quest before is
// not an error here, the submission already succeeded.
func (svc *ProgressService) recordPassedQuest(userID string, quest *model.Quest, timeTakenSeconds int) (int, error) {
	expGained := 0

	err := svc.sql.Db().Transaction(func(tx *gorm.DB) error {
		enrollment, err := svc.sql.GetEnrollmentTx(tx, userID, quest.CourseID)
		if err != nil {
			if appErr, ok := shared.GetAppError(err); ok && appErr.StatusCode == 404 {
				return nil
			}
			return err
		}

		done, err := svc.sql.HasCompletedQuestTx(tx, userID, quest.ID)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if err := svc.sql.CreateCompletedQuestTx(tx, &model.CompletedQuest{
			UserID:           userID,
			QuestID:          quest.ID,
			TimeTakenSeconds: timeTakenSeconds,
		}); err != nil {
			return err
		}

		if err := svc.sql.AddUserRewardsTx(tx, userID, quest.ExpReward, 0); err != nil {
			return err
		}

		enrollment.LastAccessedDate = time.Now()
		if err := svc.sql.UpdateEnrollmentTx(tx, enrollment); err != nil {
			return err
		}

		expGained = quest.ExpReward
		return nil
	})
	if err != nil {
		return 0, err
	}

	if expGained > 0 {
		svc.invalidateStats(userID)
		if svc.monitoring != nil {
			svc.monitoring.RecordQuestCompleted()
			svc.monitoring.RecordRewards(expGained, 0)
		}
	}

	return expGained, nil
}

// recountProgress derives the enrollment percentage from the completion
// facts. A course with no lessons reports 0 and is never auto-completed.
func (svc *ProgressService) recountProgress(tx *gorm.DB, userID, courseID string) (float64, bool, error) {
	total, err := svc.sql.CountLessonsTx(tx, courseID)
	if err != nil {
		return 0, false, err
	}
	if total == 0 {
		return 0, false, nil
	}

	completed, err := svc.sql.CountCompletedLessonsTx(tx, userID, courseID)
	if err != nil {
		return 0, false, err
	}

	progress := math.Round(float64(completed)/float64(total)*10000) / 100
	return progress, completed == total, nil
}

func (svc *ProgressService) invalidateStats(userID string) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.DeleteByPattern(goContext.Background(), fmt.Sprintf("progress:%s:*", userID)); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate progress cache")
	}
}
