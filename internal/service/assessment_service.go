package service

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/repository"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/scoring"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/util"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/pkg/logger"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/pkg/monitoring"
)

const (
	// MinimumAnswers is how many non-empty answers a submission needs out of
	// the 18 issued questions.
	MinimumAnswers = 15
	// MaxQuestionScore caps each per-question score; 18 questions make a 180
	// point maximum.
	MaxQuestionScore = 10
)

// Caller is the verified identity a controller hands to the lifecycle
// operations. The service trusts it; token verification happened in the
// middleware.
type Caller struct {
	ID   string
	Role model.UserRole
}

func (c Caller) isAdmin() bool {
	return c.Role == model.Admin
}

// AssessmentService drives the pending -> submitted -> completed lifecycle.
// It is the only writer of assessment records; every transition is validated
// before any field changes, so a failed call never leaves a record partially
// updated.
type AssessmentService struct {
	Repo     *repository.AssessmentRepository
	UserRepo *repository.UserRepository
}

func NewAssessmentService(repo *repository.AssessmentRepository, userRepo *repository.UserRepository) *AssessmentService {
	return &AssessmentService{Repo: repo, UserRepo: userRepo}
}

// Create issues a pending assessment for an engineer. Admin only.
func (s *AssessmentService) Create(caller Caller, engineerID string, topic model.Topic) (*model.Assessment, error) {
	if !caller.isAdmin() {
		return nil, util.ErrPermissionDenied
	}

	engineer, err := s.UserRepo.FindByID(engineerID)
	if err != nil {
		return nil, err
	}
	if engineer.IsAdmin() {
		return nil, util.ErrUserNotFound
	}

	a, err := s.Repo.Create(engineerID, topic)
	if err != nil {
		return nil, err
	}

	monitoring.AssessmentsCreated.WithLabelValues(string(topic)).Inc()
	logger.Log.Info("assessment created",
		zap.String("id", a.ID),
		zap.String("engineer", engineerID),
		zap.String("topic", string(topic)))
	return a, nil
}

// Submit stores the answers and auto-scores them in one atomic transition.
// Only the owning engineer may submit, only from pending, and only with at
// least MinimumAnswers non-empty answers. Indices outside the question range
// are dropped; answers are stored trimmed.
func (s *AssessmentService) Submit(caller Caller, id string, answers map[int]string) (*model.Assessment, error) {
	var submitted *model.Assessment
	err := s.Repo.Transition(id, func(a *model.Assessment) error {
		if a.EngineerID != caller.ID {
			return util.ErrPermissionDenied
		}
		if a.Status != model.StatusPending {
			return util.ErrInvalidState
		}

		cleaned := make(map[int]string, len(answers))
		for i, text := range answers {
			if i < 0 || i >= len(a.Questions) {
				continue
			}
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			cleaned[i] = text
		}
		if len(cleaned) < MinimumAnswers {
			return util.ErrInsufficientAnswers
		}

		autoScores := make(map[int]model.AutoScore, len(cleaned))
		for i, text := range cleaned {
			res := scoring.Evaluate(a.Questions[i], text, a.Topic)
			autoScores[i] = model.AutoScore{Score: res.Score, Rationale: res.Rationale}
		}

		now := time.Now()
		a.Answers = cleaned
		a.AutoScores = autoScores
		a.SubmittedAt = &now
		a.Status = model.StatusSubmitted
		submitted = a.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.AssessmentsSubmitted.WithLabelValues(string(submitted.Topic)).Inc()
	logger.Log.Info("assessment submitted",
		zap.String("id", id),
		zap.Int("answers", len(submitted.Answers)))
	return submitted, nil
}

// Grade confirms the final per-question scores and completes the record.
// Admin only, from submitted only. Every question index gets a final score:
// values clamp to [0,MaxQuestionScore], indices the admin left out grade as
// zero, indices beyond the question count are ignored.
func (s *AssessmentService) Grade(caller Caller, id string, scores map[int]int) (*model.Assessment, error) {
	if !caller.isAdmin() {
		return nil, util.ErrPermissionDenied
	}

	var graded *model.Assessment
	err := s.Repo.Transition(id, func(a *model.Assessment) error {
		if a.Status != model.StatusSubmitted {
			return util.ErrInvalidState
		}

		final := make(map[int]int, len(a.Questions))
		total := 0
		for i := range a.Questions {
			v := scores[i]
			if v < 0 {
				v = 0
			}
			if v > MaxQuestionScore {
				v = MaxQuestionScore
			}
			final[i] = v
			total += v
		}

		now := time.Now()
		a.FinalScores = final
		a.TotalScore = total
		a.GradedAt = &now
		a.GradedBy = caller.ID
		a.Status = model.StatusCompleted
		graded = a.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.AssessmentsGraded.WithLabelValues(string(graded.Topic)).Inc()
	logger.Log.Info("assessment graded",
		zap.String("id", id),
		zap.String("grader", caller.ID),
		zap.Int("total", graded.TotalScore))
	return graded, nil
}

// Get returns one assessment. Engineers can only read their own records;
// admins read anything.
func (s *AssessmentService) Get(caller Caller, id string) (*model.Assessment, error) {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !caller.isAdmin() && a.EngineerID != caller.ID {
		return nil, util.ErrPermissionDenied
	}
	return a, nil
}

// List applies the filter, additionally forced to the caller's own records
// for non-admins.
func (s *AssessmentService) List(caller Caller, filter repository.ListFilter) []model.Assessment {
	if !caller.isAdmin() {
		filter.EngineerID = caller.ID
	}
	return s.Repo.List(filter)
}
