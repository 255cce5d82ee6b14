package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"brain_arcade/internal/common"
	"brain_arcade/internal/domain/model"
)

// memUserRepo enforces username uniqueness atomically under its lock, the
// way the database unique constraint does.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by username
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return fmt.Errorf("username taken: %w", common.ErrDuplicateUser)
	}
	u := *user
	r.users[user.Username] = &u
	return nil
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

type memQuizRepo struct {
	mu      sync.Mutex
	results []model.QuizResult
}

func (r *memQuizRepo) Create(ctx context.Context, result *model.QuizResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, *result)
	return nil
}

func (r *memQuizRepo) FindRecentByUser(ctx context.Context, userID string, limit int, topicSlug string) ([]model.QuizResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.QuizResult{}
	for _, res := range r.results {
		if res.UserID != userID {
			continue
		}
		if topicSlug != "" && res.TopicSlug != topicSlug {
			continue
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memQuizRepo) FindAllByUser(ctx context.Context, userID string) ([]model.QuizResult, error) {
	return r.FindRecentByUser(ctx, userID, len(r.results)+1, "")
}

type memPictureRepo struct {
	mu      sync.Mutex
	results []model.PictureResult
}

func (r *memPictureRepo) Create(ctx context.Context, result *model.PictureResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, *result)
	return nil
}

func (r *memPictureRepo) FindRecentByUser(ctx context.Context, userID string, limit int) ([]model.PictureResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.PictureResult{}
	for _, res := range r.results {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPictureRepo) FindAllByUser(ctx context.Context, userID string) ([]model.PictureResult, error) {
	return r.FindRecentByUser(ctx, userID, len(r.results)+1)
}
