package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/bank"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/util"
)

func TestCreateIssuesPendingAssessment(t *testing.T) {
	repo := NewAssessmentRepository()
	before := time.Now()
	a, err := repo.Create("eng001", model.TopicSTA)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if a.ID != "PD_sta_eng001_1" {
		t.Errorf("ID = %q", a.ID)
	}
	if a.Status != model.StatusPending {
		t.Errorf("Status = %q, want pending", a.Status)
	}
	if len(a.Questions) != bank.QuestionsPerTopic {
		t.Errorf("len(Questions) = %d, want %d", len(a.Questions), bank.QuestionsPerTopic)
	}
	if got := a.DueAt.Sub(a.CreatedAt); got != DueWindow {
		t.Errorf("due window = %v, want %v", got, DueWindow)
	}
	if a.CreatedAt.Before(before) {
		t.Error("CreatedAt predates the call")
	}
}

func TestCreateUnknownTopic(t *testing.T) {
	repo := NewAssessmentRepository()
	if _, err := repo.Create("eng001", model.Topic("dft")); !errors.Is(err, util.ErrUnknownTopic) {
		t.Fatalf("err = %v, want ErrUnknownTopic", err)
	}
}

func TestCreateCounterIsSharedAcrossTopics(t *testing.T) {
	repo := NewAssessmentRepository()
	repo.Create("eng001", model.TopicSTA)
	a, _ := repo.Create("eng002", model.TopicCTS)
	if a.ID != "PD_cts_eng002_2" {
		t.Errorf("ID = %q, want PD_cts_eng002_2", a.ID)
	}
}

func TestCreateConcurrentIDsUnique(t *testing.T) {
	repo := NewAssessmentRepository()
	const workers = 50

	ids := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			a, err := repo.Create(fmt.Sprintf("eng%03d", n), model.TopicSTA)
			if err != nil {
				t.Error(err)
				return
			}
			ids <- a.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if len(seen) != workers {
		t.Fatalf("got %d ids, want %d", len(seen), workers)
	}
}

func TestFindByIDReturnsCopy(t *testing.T) {
	repo := NewAssessmentRepository()
	created, _ := repo.Create("eng001", model.TopicSTA)

	got, err := repo.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	got.Questions[0] = "mutated"
	got.Status = model.StatusCompleted

	again, _ := repo.FindByID(created.ID)
	if again.Questions[0] == "mutated" || again.Status != model.StatusPending {
		t.Fatal("caller mutation reached the stored record")
	}
}

func TestFindByIDMissing(t *testing.T) {
	repo := NewAssessmentRepository()
	if _, err := repo.FindByID("PD_sta_eng001_99"); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("err = %v, want ErrAssessmentNotFound", err)
	}
}

func TestTransitionAppliesMutation(t *testing.T) {
	repo := NewAssessmentRepository()
	created, _ := repo.Create("eng001", model.TopicSTA)

	err := repo.Transition(created.ID, func(a *model.Assessment) error {
		a.Status = model.StatusSubmitted
		return nil
	})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}

	got, _ := repo.FindByID(created.ID)
	if got.Status != model.StatusSubmitted {
		t.Errorf("Status = %q, want submitted", got.Status)
	}
}

func TestTransitionErrorLeavesRecordUntouched(t *testing.T) {
	repo := NewAssessmentRepository()
	created, _ := repo.Create("eng001", model.TopicSTA)

	wantErr := errors.New("validation failed")
	err := repo.Transition(created.ID, func(a *model.Assessment) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v", err)
	}

	got, _ := repo.FindByID(created.ID)
	if got.Status != model.StatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
}

func TestTransitionMissing(t *testing.T) {
	repo := NewAssessmentRepository()
	err := repo.Transition("nope", func(a *model.Assessment) error { return nil })
	if !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("err = %v, want ErrAssessmentNotFound", err)
	}
}

func TestListFilters(t *testing.T) {
	repo := NewAssessmentRepository()
	repo.Create("eng001", model.TopicSTA)
	repo.Create("eng001", model.TopicCTS)
	created, _ := repo.Create("eng002", model.TopicSTA)
	repo.Transition(created.ID, func(a *model.Assessment) error {
		a.Status = model.StatusSubmitted
		return nil
	})

	if got := len(repo.List(ListFilter{})); got != 3 {
		t.Errorf("unfiltered = %d, want 3", got)
	}
	if got := len(repo.ListByEngineer("eng001")); got != 2 {
		t.Errorf("eng001 = %d, want 2", got)
	}
	if got := len(repo.ListByStatus(model.StatusSubmitted)); got != 1 {
		t.Errorf("submitted = %d, want 1", got)
	}
	if got := len(repo.List(ListFilter{EngineerID: "eng002", Status: model.StatusPending})); got != 0 {
		t.Errorf("combined = %d, want 0", got)
	}

	counts := repo.CountByStatus()
	if counts[model.StatusPending] != 2 || counts[model.StatusSubmitted] != 1 {
		t.Errorf("CountByStatus = %v", counts)
	}
}

func TestListTieBreakIsStable(t *testing.T) {
	repo := NewAssessmentRepository()
	for i := 0; i < 5; i++ {
		repo.Create("eng001", model.TopicSTA)
	}
	first := repo.List(ListFilter{})
	second := repo.List(ListFilter{})
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("order differs at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}
