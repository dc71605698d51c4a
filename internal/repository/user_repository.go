package repository

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/util"
)

// UserRepository is the in-memory account directory. Accounts are seeded once
// at process start and are immutable afterwards apart from the activity
// timestamps.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*model.User)}
}

var engineerNames = []string{
	"Kranthi", "Neela", "Bhanu", "Lokeshwari", "Nagesh", "VJ",
	"Pravalika", "Daniel", "Karthik", "Hema", "Naveen", "Srinivas",
	"Meera", "Suraj", "Akhil", "Vikas", "Sahith", "Sravan",
}

// Seed creates the admin account and the 18 engineer accounts. Engineer ids
// run eng001..eng018; experience is 3 + (n mod 4) years.
func (r *UserRepository) Seed(adminPassword, engineerPassword string) error {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	engHash, err := bcrypt.GenerateFromPassword([]byte(engineerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users["admin"] = &model.User{
		ID:          "admin",
		Username:    "admin",
		DisplayName: "Administrator",
		Password:    string(adminHash),
		Role:        model.Admin,
		Experience:  5,
	}

	for i, name := range engineerNames {
		id := fmt.Sprintf("eng%03d", i+1)
		n, _ := strconv.Atoi(id[len(id)-2:])
		r.users[id] = &model.User{
			ID:          id,
			Username:    id,
			DisplayName: name,
			Password:    string(engHash),
			Role:        model.Engineer,
			Experience:  3 + n%4,
		}
	}
	return nil
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, util.ErrUserNotFound
}

// ListEngineers returns every non-admin account, sorted by id for stable
// roster rendering.
func (r *UserRepository) ListEngineers() []model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if u.Role != model.Admin {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *UserRepository) UpdateLastLogin(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return util.ErrUserNotFound
	}
	u.LastLogin = time.Now()
	return nil
}

func (r *UserRepository) UpdateLastSeen(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return util.ErrUserNotFound
	}
	u.LastSeen = time.Now()
	return nil
}
