package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/bank"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/util"
)

// DueWindow is how long an engineer has to submit. Advisory only; nothing
// expires a pending assessment.
const DueWindow = 72 * time.Hour

// AssessmentRepository owns every assessment record for the lifetime of the
// process. All access goes through the lock: writers mutate in place, readers
// get deep copies and never observe a record mid-transition. The id counter
// and the insert share one critical section, so concurrent creates cannot
// collide.
type AssessmentRepository struct {
	mu          sync.RWMutex
	assessments map[string]*model.Assessment
	counter     uint64
}

func NewAssessmentRepository() *AssessmentRepository {
	return &AssessmentRepository{assessments: make(map[string]*model.Assessment)}
}

// Create issues a new pending assessment for engineerID on topic. The
// question list is snapshotted by value from the bank.
func (r *AssessmentRepository) Create(engineerID string, topic model.Topic) (*model.Assessment, error) {
	questions, err := bank.QuestionsFor(topic)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.counter++
	a := &model.Assessment{
		ID:         fmt.Sprintf("PD_%s_%s_%d", topic, engineerID, r.counter),
		EngineerID: engineerID,
		Topic:      topic,
		Questions:  questions,
		Status:     model.StatusPending,
		CreatedAt:  now,
		DueAt:      now.Add(DueWindow),
	}
	r.assessments[a.ID] = a
	return a.Clone(), nil
}

func (r *AssessmentRepository) FindByID(id string) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assessments[id]
	if !ok {
		return nil, util.ErrAssessmentNotFound
	}
	return a.Clone(), nil
}

// Transition runs fn on the live record under the write lock. An error from
// fn aborts the transition; the caller is expected to mutate the record only
// after all validation passed, so a failed call leaves the record untouched.
func (r *AssessmentRepository) Transition(id string, fn func(*model.Assessment) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assessments[id]
	if !ok {
		return util.ErrAssessmentNotFound
	}
	return fn(a)
}

// ListFilter narrows List output. Zero values match everything.
type ListFilter struct {
	EngineerID string
	Status     model.AssessmentStatus
}

// List returns deep copies of matching records, newest first.
func (r *AssessmentRepository) List(filter ListFilter) []model.Assessment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Assessment, 0, len(r.assessments))
	for _, a := range r.assessments {
		if filter.EngineerID != "" && a.EngineerID != filter.EngineerID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, *a.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *AssessmentRepository) ListByEngineer(engineerID string) []model.Assessment {
	return r.List(ListFilter{EngineerID: engineerID})
}

func (r *AssessmentRepository) ListByStatus(status model.AssessmentStatus) []model.Assessment {
	return r.List(ListFilter{Status: status})
}

// CountByStatus feeds the dashboard stat cards.
func (r *AssessmentRepository) CountByStatus() map[model.AssessmentStatus]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[model.AssessmentStatus]int, 3)
	for _, a := range r.assessments {
		counts[a.Status]++
	}
	return counts
}
