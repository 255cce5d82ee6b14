package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"brain_arcade/internal/api"
	"brain_arcade/internal/app/service"
	"brain_arcade/internal/common"
	"brain_arcade/internal/common/security"
	"brain_arcade/internal/domain/model"
	"brain_arcade/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	users map[string]*model.User
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, exists := r.users[user.Username]; exists {
		return fmt.Errorf("username taken: %w", common.ErrDuplicateUser)
	}
	u := *user
	r.users[user.Username] = &u
	return nil
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if u, ok := r.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

type memQuizRepo struct {
	results []model.QuizResult
}

func (r *memQuizRepo) Create(ctx context.Context, result *model.QuizResult) error {
	r.results = append(r.results, *result)
	return nil
}

func (r *memQuizRepo) FindRecentByUser(ctx context.Context, userID string, limit int, topicSlug string) ([]model.QuizResult, error) {
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
	results []model.PictureResult
}

func (r *memPictureRepo) Create(ctx context.Context, result *model.PictureResult) error {
	r.results = append(r.results, *result)
	return nil
}

func (r *memPictureRepo) FindRecentByUser(ctx context.Context, userID string, limit int) ([]model.PictureResult, error) {
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

// failingQuizRepo simulates a storage outage.
type failingQuizRepo struct{}

func (r *failingQuizRepo) Create(ctx context.Context, result *model.QuizResult) error {
	return fmt.Errorf("pgQuizRepository.Create: ERROR: relation \"quiz_results\" does not exist (SQLSTATE 42P01)")
}

func (r *failingQuizRepo) FindRecentByUser(ctx context.Context, userID string, limit int, topicSlug string) ([]model.QuizResult, error) {
	return nil, fmt.Errorf("pgQuizRepository.FindRecentByUser: connection refused")
}

func (r *failingQuizRepo) FindAllByUser(ctx context.Context, userID string) ([]model.QuizResult, error) {
	return nil, fmt.Errorf("pgQuizRepository.FindAllByUser: connection refused")
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:            []byte("test-secret"),
		JWTExp:            time.Hour,
		StatsCacheTTL:     time.Minute,
		CORSAllowedOrigin: "http://localhost:8081",
	}
	security.InitJWT()

	userRepo := &memUserRepo{users: map[string]*model.User{}}
	quizRepo := &memQuizRepo{}
	pictureRepo := &memPictureRepo{}

	authService := service.NewAuthService(userRepo)
	statsService := service.NewStatsService(quizRepo, pictureRepo)
	quizService := service.NewQuizService(quizRepo, statsService)
	pictureService := service.NewPictureService(pictureRepo, statsService)

	return api.NewRouter(authService, quizService, pictureService, statsService)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func signupAndSignin(t *testing.T, router http.Handler, username string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username, "password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": username, "password": "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRouter_SignupDuplicate(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice", "password": "pw123456",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice", "password": "different",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_SigninInvalidCredentials(t *testing.T) {
	router := newTestRouter(t)
	signupAndSignin(t, router, "bob")

	recWrongPw := doJSON(t, router, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "bob", "password": "wrong",
	})
	recNoUser := doJSON(t, router, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "ghost", "password": "wrong",
	})

	assert.Equal(t, http.StatusBadRequest, recWrongPw.Code)
	assert.Equal(t, http.StatusBadRequest, recNoUser.Code)
	// Indistinguishable responses for the two failure modes.
	assert.Equal(t, recWrongPw.Body.String(), recNoUser.Body.String())
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/quiz/history", "/api/quiz/stats",
		"/api/picture/history", "/api/picture/stats",
		"/api/user/profile", "/api/user/overall-stats",
	} {
		rec := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/quiz/save", "", map[string]interface{}{"score": 1})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_QuizFlow(t *testing.T) {
	router := newTestRouter(t)
	token := signupAndSignin(t, router, "carol")

	scores := []int{10, 20, 30}
	difficulties := []string{"easy", "easy", "hard"}
	for i := range scores {
		rec := doJSON(t, router, http.MethodPost, "/api/quiz/save", token, map[string]interface{}{
			"score":          scores[i],
			"totalQuestions": 10,
			"difficulty":     difficulties[i],
			"answers":        []map[string]interface{}{},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, router, http.MethodGet, "/api/quiz/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Data []model.QuizResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history.Data, 3)

	rec = doJSON(t, router, http.MethodGet, "/api/quiz/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Data model.QuizStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Data.TotalGames)
	assert.Equal(t, 60, stats.Data.TotalScore)
	assert.Equal(t, 20.00, stats.Data.AverageScore)
	assert.Equal(t, 30, stats.Data.BestScore)
	assert.Equal(t, model.DifficultyBreakdown{Easy: 2, Medium: 0, Hard: 1}, stats.Data.ByDifficulty)
}

func TestRouter_QuizSave_InvalidDifficulty(t *testing.T) {
	router := newTestRouter(t)
	token := signupAndSignin(t, router, "dora")

	rec := doJSON(t, router, http.MethodPost, "/api/quiz/save", token, map[string]interface{}{
		"score": 5, "totalQuestions": 10, "difficulty": "impossible",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_PictureFlowAndOverallStats(t *testing.T) {
	router := newTestRouter(t)
	token := signupAndSignin(t, router, "erin")

	rec := doJSON(t, router, http.MethodPost, "/api/picture/save", token, map[string]interface{}{
		"score": 50,
		"level": 4,
		"imagesIdentified": []map[string]interface{}{
			{"imageId": "i1", "imageName": "Fox", "category": "animals", "isCorrect": true, "timeSpent": 3.2},
			{"imageId": "i2", "imageName": "Oak", "category": "plants", "isCorrect": false, "timeSpent": 5.0},
		},
		"totalTime": 42.5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/quiz/save", token, map[string]interface{}{
		"score": 8, "totalQuestions": 10, "difficulty": "medium",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/picture/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pictureStats struct {
		Data model.PictureStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pictureStats))
	assert.Equal(t, 1, pictureStats.Data.TotalGames)
	assert.Equal(t, 4, pictureStats.Data.HighestLevel)
	assert.Equal(t, 2, pictureStats.Data.TotalImagesIdentified)

	rec = doJSON(t, router, http.MethodGet, "/api/user/overall-stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var overall struct {
		Data model.OverallStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overall))
	assert.Equal(t, 1, overall.Data.Quiz.TotalGames)
	assert.Equal(t, 1, overall.Data.Picture.TotalGames)
	assert.Equal(t, 2, overall.Data.TotalGamesPlayed)
}

func TestRouter_StorageErrorIsOpaque(t *testing.T) {
	config.AppConfig = &config.Config{
		JWTKey:            []byte("test-secret"),
		JWTExp:            time.Hour,
		StatsCacheTTL:     time.Minute,
		CORSAllowedOrigin: "http://localhost:8081",
	}
	security.InitJWT()

	userRepo := &memUserRepo{users: map[string]*model.User{}}
	quizRepo := &failingQuizRepo{}
	pictureRepo := &memPictureRepo{}

	authService := service.NewAuthService(userRepo)
	statsService := service.NewStatsService(quizRepo, pictureRepo)
	quizService := service.NewQuizService(quizRepo, statsService)
	pictureService := service.NewPictureService(pictureRepo, statsService)
	router := api.NewRouter(authService, quizService, pictureService, statsService)

	token := signupAndSignin(t, router, "harry")

	rec := doJSON(t, router, http.MethodPost, "/api/quiz/save", token, map[string]interface{}{
		"score": 5, "totalQuestions": 10, "difficulty": "easy",
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// The caller only ever sees a fixed body; SQL detail stays in the logs.
	assert.JSONEq(t, `{"error":"server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "SQLSTATE")
	assert.NotContains(t, rec.Body.String(), "quiz_results")

	for _, path := range []string{"/api/quiz/history", "/api/quiz/stats"} {
		rec := doJSON(t, router, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.JSONEq(t, `{"error":"server error"}`, rec.Body.String(), path)
	}
}

func TestRouter_HistoryIsolation(t *testing.T) {
	router := newTestRouter(t)
	tokenA := signupAndSignin(t, router, "user-a")
	tokenB := signupAndSignin(t, router, "user-b")

	rec := doJSON(t, router, http.MethodPost, "/api/quiz/save", tokenA, map[string]interface{}{
		"score": 9, "totalQuestions": 10, "difficulty": "easy",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/quiz/history", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Data []model.QuizResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Empty(t, history.Data)
}

func TestRouter_Profile(t *testing.T) {
	router := newTestRouter(t)
	token := signupAndSignin(t, router, "frank")

	rec := doJSON(t, router, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		Data model.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "frank", profile.Data.Username)
	assert.NotContains(t, rec.Body.String(), "hashed_password")
}

func TestRouter_IsAuth(t *testing.T) {
	router := newTestRouter(t)
	token := signupAndSignin(t, router, "grace")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/is-auth", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var withToken struct {
		Success bool        `json:"success"`
		User    *model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &withToken))
	assert.True(t, withToken.Success)
	require.NotNil(t, withToken.User)
	assert.Equal(t, "grace", withToken.User.Username)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/is-auth", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var withoutToken struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &withoutToken))
	assert.False(t, withoutToken.Success)

	rec = doJSON(t, router, http.MethodPost, "/api/auth/is-auth", token+"tampered", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var badToken struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &badToken))
	assert.False(t, badToken.Success)
}

func TestRouter_Logout(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}
