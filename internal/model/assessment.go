package model

import (
	"time"
)

// Topic selects a fixed question set. The enum is closed; anything else is
// rejected at assessment creation.
type Topic string

const (
	TopicSTA     Topic = "sta"
	TopicCTS     Topic = "cts"
	TopicSignoff Topic = "signoff"
)

type AssessmentStatus string

const (
	// StatusPending: questions issued, waiting for the engineer's answers.
	StatusPending AssessmentStatus = "pending"
	// StatusSubmitted: answers stored and auto-scored, waiting for admin review.
	StatusSubmitted AssessmentStatus = "submitted"
	// StatusCompleted: final scores confirmed. Terminal, record is immutable.
	StatusCompleted AssessmentStatus = "completed"
)

// AutoScore is the heuristic provisional score for one answer.
type AutoScore struct {
	Score     int    `json:"score"`
	Rationale string `json:"rationale"`
}

// Assessment is one engineer's instance of the fixed 18-question quiz for a
// topic. Questions are a snapshot taken at creation; later bank edits never
// change an issued assessment. Answer, auto-score and final-score maps are
// keyed by question index.
// swagger:model Assessment
type Assessment struct {
	ID          string            `json:"id"`
	EngineerID  string            `json:"engineerId"`
	Topic       Topic             `json:"topic"`
	Questions   []string          `json:"questions"`
	Answers     map[int]string    `json:"answers"`
	AutoScores  map[int]AutoScore `json:"autoScores"`
	FinalScores map[int]int       `json:"finalScores"`
	Status      AssessmentStatus  `json:"status"`
	TotalScore  int               `json:"totalScore"` // valid only when completed
	CreatedAt   time.Time         `json:"createdAt"`
	DueAt       time.Time         `json:"dueAt"`
	SubmittedAt *time.Time        `json:"submittedAt,omitempty"`
	GradedAt    *time.Time        `json:"gradedAt,omitempty"`
	GradedBy    string            `json:"gradedBy,omitempty"`
}

// Clone returns a deep copy so readers never share maps or slices with the
// record held inside the store.
func (a *Assessment) Clone() *Assessment {
	cp := *a
	cp.Questions = append([]string(nil), a.Questions...)
	if a.Answers != nil {
		cp.Answers = make(map[int]string, len(a.Answers))
		for k, v := range a.Answers {
			cp.Answers[k] = v
		}
	}
	if a.AutoScores != nil {
		cp.AutoScores = make(map[int]AutoScore, len(a.AutoScores))
		for k, v := range a.AutoScores {
			cp.AutoScores[k] = v
		}
	}
	if a.FinalScores != nil {
		cp.FinalScores = make(map[int]int, len(a.FinalScores))
		for k, v := range a.FinalScores {
			cp.FinalScores[k] = v
		}
	}
	if a.SubmittedAt != nil {
		t := *a.SubmittedAt
		cp.SubmittedAt = &t
	}
	if a.GradedAt != nil {
		t := *a.GradedAt
		cp.GradedAt = &t
	}
	return &cp
}
