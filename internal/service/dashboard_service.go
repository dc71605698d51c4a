package service

import (
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/bank"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/repository"
)

type DashboardService struct {
	UserRepo       *repository.UserRepository
	AssessmentRepo *repository.AssessmentRepository
}

func NewDashboardService(userRepo *repository.UserRepository, assessmentRepo *repository.AssessmentRepository) *DashboardService {
	return &DashboardService{UserRepo: userRepo, AssessmentRepo: assessmentRepo}
}

// AdminStats backs the admin dashboard stat cards.
type AdminStats struct {
	Engineers      int `json:"engineers"`
	TotalTests     int `json:"totalTests"`
	InProgress     int `json:"inProgress"`
	PendingReview  int `json:"pendingReview"`
	Completed      int `json:"completed"`
	TotalQuestions int `json:"totalQuestions"`
}

func (s *DashboardService) AdminStats() AdminStats {
	counts := s.AssessmentRepo.CountByStatus()
	engineers := s.UserRepo.ListEngineers()

	return AdminStats{
		Engineers:      len(engineers),
		TotalTests:     counts[model.StatusPending] + counts[model.StatusSubmitted] + counts[model.StatusCompleted],
		InProgress:     counts[model.StatusPending],
		PendingReview:  counts[model.StatusSubmitted],
		Completed:      counts[model.StatusCompleted],
		TotalQuestions: bank.QuestionsPerTopic * len(bank.Topics()),
	}
}

// EngineerStats backs the engineer dashboard: own assessment counts plus the
// experience figure shown on the profile card.
type EngineerStats struct {
	TotalTests int `json:"totalTests"`
	Pending    int `json:"pending"`
	Submitted  int `json:"submitted"`
	Completed  int `json:"completed"`
	Experience int `json:"experience"`
}

func (s *DashboardService) EngineerStats(engineerID string) (EngineerStats, error) {
	user, err := s.UserRepo.FindByID(engineerID)
	if err != nil {
		return EngineerStats{}, err
	}

	stats := EngineerStats{Experience: user.Experience}
	for _, a := range s.AssessmentRepo.ListByEngineer(engineerID) {
		stats.TotalTests++
		switch a.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusSubmitted:
			stats.Submitted++
		case model.StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}
