package repository

import (
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/util"
)

func seededUserRepo(t *testing.T) *UserRepository {
	t.Helper()
	repo := NewUserRepository()
	if err := repo.Seed("admin-secret", "eng-secret"); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return repo
}

func TestSeedRoster(t *testing.T) {
	repo := seededUserRepo(t)

	admin, err := repo.FindByID("admin")
	if err != nil {
		t.Fatalf("admin missing: %v", err)
	}
	if !admin.IsAdmin() || admin.Experience != 5 {
		t.Errorf("admin = %+v", admin)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin-secret")); err != nil {
		t.Error("admin password hash does not match seed password")
	}

	engineers := repo.ListEngineers()
	if len(engineers) != 18 {
		t.Fatalf("len(engineers) = %d, want 18", len(engineers))
	}
	for i, u := range engineers {
		wantID := fmt.Sprintf("eng%03d", i+1)
		if u.ID != wantID {
			t.Errorf("engineer %d id = %s, want %s", i, u.ID, wantID)
		}
		if u.Role != model.Engineer {
			t.Errorf("%s role = %s", u.ID, u.Role)
		}
		wantExp := 3 + (i+1)%4
		if u.Experience != wantExp {
			t.Errorf("%s experience = %d, want %d", u.ID, u.Experience, wantExp)
		}
		if u.DisplayName == "" {
			t.Errorf("%s has no display name", u.ID)
		}
	}
}

func TestFindByUsername(t *testing.T) {
	repo := seededUserRepo(t)
	u, err := repo.FindByUsername("eng007")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if u.ID != "eng007" {
		t.Errorf("ID = %s", u.ID)
	}
	if _, err := repo.FindByUsername("ghost"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestActivityTimestamps(t *testing.T) {
	repo := seededUserRepo(t)
	if err := repo.UpdateLastLogin("eng001"); err != nil {
		t.Fatalf("UpdateLastLogin: %v", err)
	}
	if err := repo.UpdateLastSeen("eng001"); err != nil {
		t.Fatalf("UpdateLastSeen: %v", err)
	}
	u, _ := repo.FindByID("eng001")
	if u.LastLogin.IsZero() || u.LastSeen.IsZero() {
		t.Error("timestamps not recorded")
	}
	if err := repo.UpdateLastSeen("ghost"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestFindByIDReturnsUserCopy(t *testing.T) {
	repo := seededUserRepo(t)
	u, _ := repo.FindByID("eng001")
	u.DisplayName = "mutated"
	again, _ := repo.FindByID("eng001")
	if again.DisplayName == "mutated" {
		t.Fatal("caller mutation reached the stored account")
	}
}
