package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/legion/internal/auth"
	"github.com/baharkarakas/legion/internal/config"
	"github.com/baharkarakas/legion/internal/repository/filestore"
	"github.com/baharkarakas/legion/internal/seed"
	"github.com/baharkarakas/legion/internal/services"
)

const (
	seededWorkoutID = "4a3d9aaa-608c-49a7-a004-66305ad4ab50"
	seededMemberID  = "11817fb1-03a1-4b4a-8d27-854ac893cf41"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type testServer struct {
	t *testing.T
	h http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	store, err := filestore.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	hasher := auth.Hasher{Cost: bcrypt.MinCost}
	snap, err := seed.Bundled()
	require.NoError(t, err)
	_, err = seed.Run(ctx, store, hasher, snap, nil)
	require.NoError(t, err)

	tm := auth.NewTokenManager("access", "refresh", "legion", time.Minute, time.Hour)
	users := services.NewUserService(store, hasher, nil)
	h := NewRouter(RouterDeps{
		Cfg:      config.Config{RateRPS: 0},
		Tokens:   tm,
		Members:  services.NewMemberService(store, hasher, nil),
		Workouts: services.NewWorkoutService(store, nil),
		Records:  services.NewRecordService(store, nil),
		Users:    users,
		Auth:     services.NewAuthService(users, tm),
	})
	return &testServer{t: t, h: h}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.h.ServeHTTP(rr, req)

	var env envelope
	if rr.Code != http.StatusNoContent && rr.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	}
	return rr.Code, env
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": "password"})
	require.Equal(s.t, http.StatusOK, code)
	var sess struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &sess))
	require.NotEmpty(s.t, sess.Token)
	return sess.Token
}

func errorOf(t *testing.T, env envelope) string {
	t.Helper()
	require.Equal(t, "FAILED", env.Status)
	var d struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &d))
	return d.Error
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	require.Equal(t, "OK", env.Status)
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type workoutJSON struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Mode      string   `json:"mode"`
	Equipment []string `json:"equipment"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/api/v1/healthz", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, map[string]any{"service": "legion", "healthy": true}, decode[map[string]any](t, env))
}

func TestWorkoutListing(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/workouts?mode=amrap", "", nil)
	require.Equal(t, http.StatusOK, code)
	ws := decode[[]workoutJSON](t, env)
	require.NotEmpty(t, ws)
	for _, w := range ws {
		require.Contains(t, w.Mode, "AMRAP")
	}

	code, env = s.do(http.MethodGet, "/api/v1/workouts?equipment=barbell,rope", "", nil)
	require.Equal(t, http.StatusOK, code)
	ws = decode[[]workoutJSON](t, env)
	require.Len(t, ws, 2)

	code, env = s.do(http.MethodGet, "/api/v1/workouts?length=2&page=2&sort=createdAt", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.LessOrEqual(t, len(decode[[]workoutJSON](t, env)), 2)

	code, env = s.do(http.MethodGet, "/api/v1/workouts?sort=invalidField", "", nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Sort parameter 'invalidField' is not supported", errorOf(t, env))

	code, env = s.do(http.MethodGet, "/api/v1/workouts?page=", "", nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Query parameter 'page' must be a positive integer", errorOf(t, env))

	code, env = s.do(http.MethodGet, "/api/v1/workouts/missing-id", "", nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Can't find workout with the id 'missing-id'", errorOf(t, env))

	code, env = s.do(http.MethodGet, "/api/v1/workouts/missing-id/records", "", nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Can't find records for workout with the id 'missing-id'", errorOf(t, env))

	code, env = s.do(http.MethodGet, "/api/v1/workouts/"+seededWorkoutID+"/records", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, decode[[]map[string]any](t, env))
}

func TestRandomWorkout(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/workouts/random?mode=AMRAP&equipment=barbell", "", nil)
	require.Equal(t, http.StatusOK, code)
	w := decode[workoutJSON](t, env)
	require.NotEmpty(t, w.ID)
	require.Contains(t, w.Mode, "AMRAP")

	code, env = s.do(http.MethodGet, "/api/v1/workouts/random?mode=tabata", "", nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Can't find a workout matching the given filters", errorOf(t, env))
}

func TestWorkoutWritesNeedStaff(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{
		"name":        "Coach Created WOD",
		"mode":        "AMRAP 10",
		"equipment":   []string{"barbell"},
		"exercises":   []string{"10 cleans", "10 push presses"},
		"trainerTips": []string{"Keep transitions fast"},
	}

	code, env := s.do(http.MethodPost, "/api/v1/workouts", "", body)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "FAILED", env.Status)

	code, env = s.do(http.MethodPost, "/api/v1/workouts", s.login("athlete@example.com"), body)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "You do not have permission to perform this action", errorOf(t, env))

	coach := s.login("coach@example.com")
	code, env = s.do(http.MethodPost, "/api/v1/workouts", coach, body)
	require.Equal(t, http.StatusCreated, code)
	w := decode[workoutJSON](t, env)
	require.Equal(t, "Coach Created WOD", w.Name)
	require.Equal(t, w.CreatedAt, w.UpdatedAt)

	code, env = s.do(http.MethodPost, "/api/v1/workouts", coach, body)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Workout with the name 'Coach Created WOD' already exists", errorOf(t, env))

	code, env = s.do(http.MethodPost, "/api/v1/workouts", coach, map[string]any{"name": "x"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t,
		"One of the following keys is missing or is empty in request body: 'name', 'mode', 'equipment', 'exercises', 'trainerTips'",
		errorOf(t, env))

	code, env = s.do(http.MethodPatch, "/api/v1/workouts/"+w.ID, coach, map[string]any{})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Request body can not be empty", errorOf(t, env))

	code, env = s.do(http.MethodPatch, "/api/v1/workouts/"+w.ID, coach, map[string]any{"mode": "AMRAP 12", "createdAt": "1/1/2000"})
	require.Equal(t, http.StatusOK, code)
	updated := decode[workoutJSON](t, env)
	require.Equal(t, "AMRAP 12", updated.Mode)
	require.Equal(t, w.CreatedAt, updated.CreatedAt)

	code, _ = s.do(http.MethodDelete, "/api/v1/workouts/"+w.ID, coach, nil)
	require.Equal(t, http.StatusNoContent, code)
	code, _ = s.do(http.MethodGet, "/api/v1/workouts/"+w.ID, "", nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestMemberLifecycle(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/members?gender=female", "", nil)
	require.Equal(t, http.StatusOK, code)
	for _, m := range decode[[]map[string]any](t, env) {
		require.Equal(t, "female", m["gender"])
		require.NotContains(t, m, "password")
	}

	code, env = s.do(http.MethodPost, "/api/v1/members", "", map[string]any{
		"name": "Jason Clone", "gender": "male", "dateOfBirth": "01/01/1990", "email": "JASON@mail.com",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, errorOf(t, env), "already exists")

	code, env = s.do(http.MethodPost, "/api/v1/members", "", map[string]any{"name": "No Email"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t,
		"One of the following keys is missing or is empty in request body: 'name', 'gender', 'dateOfBirth', 'email'",
		errorOf(t, env))

	code, env = s.do(http.MethodPost, "/api/v1/members", "", map[string]any{
		"name": "Alex", "gender": "male", "dateOfBirth": "05/05/1995", "email": "alex@mail.com", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, code)
	m := decode[map[string]any](t, env)
	id := m["id"].(string)

	code, env = s.do(http.MethodPatch, "/api/v1/members/"+id, "", map[string]any{"name": "Alex Updated"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Alex Updated", decode[map[string]any](t, env)["name"])

	code, env = s.do(http.MethodGet, "/api/v1/members/nope", "", nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Can't find member with the id 'nope'", errorOf(t, env))
}

func TestMemberDeleteCascadesRecords(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/records?memberId="+seededMemberID, "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, decode[[]map[string]any](t, env))

	code, _ = s.do(http.MethodDelete, "/api/v1/members/"+seededMemberID, "", nil)
	require.Equal(t, http.StatusNoContent, code)

	code, _ = s.do(http.MethodGet, "/api/v1/members/"+seededMemberID, "", nil)
	require.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodGet, "/api/v1/records?memberId="+seededMemberID, "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, decode[[]map[string]any](t, env))
}

func TestRecordLifecycle(t *testing.T) {
	s := newTestServer(t)
	coach := s.login("coach@example.com")

	code, env := s.do(http.MethodPost, "/api/v1/records", coach, map[string]any{
		"workout": seededWorkoutID, "memberId": seededMemberID, "record": "170 reps",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, errorOf(t, env), "already has a record")

	code, env = s.do(http.MethodPost, "/api/v1/records", coach, map[string]any{
		"workout": seededWorkoutID, "memberId": "6a89217b-7c28-4219-bd7f-af119c314159", "record": "150 reps",
		"member": "/somewhere/else",
	})
	require.Equal(t, http.StatusCreated, code)
	rec := decode[map[string]any](t, env)
	require.Equal(t, "/members/6a89217b-7c28-4219-bd7f-af119c314159", rec["member"])
	id := rec["id"].(string)

	code, env = s.do(http.MethodPatch, "/api/v1/records/"+id, coach, map[string]any{"record": "155 reps"})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "155 reps", decode[map[string]any](t, env)["record"])

	code, _ = s.do(http.MethodDelete, "/api/v1/records/"+id, coach, nil)
	require.Equal(t, http.StatusNoContent, code)
	code, env = s.do(http.MethodGet, "/api/v1/records/"+id, "", nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "FAILED", env.Status)
}

func TestAuthAndUsers(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "new.athlete@example.com", "password": "password", "role": "athlete", "name": "New Athlete", "organizationId": "org-1",
	})
	require.Equal(t, http.StatusCreated, code)
	sess := decode[struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}](t, env)
	require.Equal(t, "new.athlete@example.com", sess.User.Email)
	require.NotEmpty(t, sess.Token)

	code, env = s.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": sess.RefreshToken})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "OK", env.Status)

	code, env = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "coach@example.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Invalid email or password", errorOf(t, env))

	code, _ = s.do(http.MethodGet, "/api/v1/users", s.login("coach@example.com"), nil)
	require.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodGet, "/api/v1/users", s.login("admin@example.com"), nil)
	require.Equal(t, http.StatusOK, code)
	users := decode[[]map[string]any](t, env)
	require.Len(t, users, 4)
	for _, u := range users {
		require.NotContains(t, u, "password")
	}
}
