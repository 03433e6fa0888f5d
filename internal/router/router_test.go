package router

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipehub/internal/auth"
	"recipehub/internal/db/dbtest"
	"recipehub/internal/fanout"
	"recipehub/internal/handler"
	"recipehub/internal/idalloc"
	"recipehub/internal/media"
	"recipehub/internal/realtime"
	"recipehub/internal/repository"
	"recipehub/internal/service"
)

type api struct {
	t    *testing.T
	e    *echo.Echo
	jwt  *auth.JWTService
	repo repository.Store
}

func newAPI(t *testing.T) *api {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewStore(dbtest.New(t))
	ids := idalloc.New(1, 9999, 1000)
	engine := fanout.NewEngine(logger)
	hub := realtime.NewHub(logger)
	jwtService := auth.NewJWTService("test-secret")

	authService := service.NewAuthService(store.Users(), ids, jwtService, auth.NewTokenStore(nil))
	userService := service.NewUserService(store.Users(), nil)
	recipeService := service.NewRecipeService(store, ids, engine, hub)
	socialService := service.NewSocialService(store, engine, hub)
	savedService := service.NewSavedService(store)
	mealPlanService := service.NewMealPlanService(store.MealPlans(), store.Users())
	notificationService := service.NewNotificationService(store.Notifications(), store.Users())

	backend, err := media.NewDiskBackend(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)
	mediaStore := media.NewStore(backend, media.NewFileSequencer(filepath.Join(t.TempDir(), "file_counter.txt")),
		service.NewMediaRecorder(userService, recipeService), logger)

	e := echo.New()
	Register(e, logger, jwtService, Handlers{
		Auth:         handler.NewAuthHandler(authService, userService),
		User:         handler.NewUserHandler(authService, userService, recipeService, socialService, savedService, mealPlanService, notificationService),
		Recipe:       handler.NewRecipeHandler(recipeService),
		Social:       handler.NewSocialHandler(socialService, savedService),
		MealPlan:     handler.NewMealPlanHandler(mealPlanService),
		Notification: handler.NewNotificationHandler(notificationService),
		Media:        handler.NewMediaHandler(mediaStore),
		WS:           handler.NewWSHandler(hub),
	})
	return &api{t: t, e: e, jwt: jwtService, repo: store}
}

func (a *api) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *api) createUser(username, password string) int {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/users", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[handler.CreateUserResponse](a.t, rec).ID
}

func TestHealthz(t *testing.T) {
	rec := newAPI(t).do(http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCreateUser(t *testing.T) {
	a := newAPI(t)
	a.createUser("alice", "pass1")

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"duplicate username", `{"username":"alice","password":"x"}`, http.StatusBadRequest, "CONFLICT"},
		{"missing password", `{"username":"bob"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"empty username", `{"username":"","password":"x"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed body", `{"username":`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(http.MethodPost, "/api/users", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decode[map[string]string](t, rec)["code"])
		})
	}
}

func TestLoginStatuses(t *testing.T) {
	a := newAPI(t)
	id := a.createUser("alice", "pass1")

	rec := a.do(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"pass1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handler.AuthResponse](t, rec)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, id, resp.User.ID)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"nope"}`).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/auth/login", `{"username":"alice"}`).Code)

	me := a.do(http.MethodGet, "/api/me", "", echo.HeaderAuthorization, "Bearer "+resp.AccessToken)
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())
	assert.Contains(t, me.Body.String(), `"username":"alice"`)
	assert.NotContains(t, me.Body.String(), "password")

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/me", "", echo.HeaderAuthorization, "Bearer junk").Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/me", "", echo.HeaderAuthorization, "Bearer "+resp.RefreshToken).Code)
}

func TestRecipeFlow(t *testing.T) {
	a := newAPI(t)
	aliceID := a.createUser("alice", "pass1")
	bobID := a.createUser("bob", "pass2")

	rec := a.do(http.MethodPost, "/api/follows", `{"follower_username":"bob","followed_username":"alice"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPost, "/api/follows", `{"follower_username":"bob","followed_username":"ghost"}`).Code)

	rec = a.do(http.MethodPost, "/api/recipes", `{"username":"alice","title":"Soup","ingredients":"water","steps":"boil"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	recipeID := decode[map[string]interface{}](t, rec)["id"].(float64)
	path := "/api/recipes/" + strconv.Itoa(int(recipeID))

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPost, "/api/recipes", `{"username":"ghost","title":"t","ingredients":"i","steps":"s"}`).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/recipes", `{"username":"alice","title":"t"}`).Code)

	rec = a.do(http.MethodGet, "/api/users/"+strconv.Itoa(bobID)+"/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	notes := decode[[]map[string]interface{}](t, rec)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0]["message"], "Soup")
	assert.EqualValues(t, aliceID, notes[0]["origin_user_id"])

	rec = a.do(http.MethodPost, "/api/saved-recipes", `{"username":"bob","recipe_id":`+strconv.Itoa(int(recipeID))+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPut, path, `{"title":"Tomato Soup","ingredients":"tomato","steps":"simmer"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPut, "/api/recipes/99999", `{"title":"a","ingredients":"b","steps":"c"}`).Code)

	rec = a.do(http.MethodGet, "/api/users/"+strconv.Itoa(bobID)+"/notifications", "")
	assert.Len(t, decode[[]map[string]interface{}](t, rec), 2)

	rec = a.do(http.MethodPost, "/api/recipes/search", `{"search":"Tomato"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{int(recipeID)}, decode[handler.IDsResponse](t, rec).IDs)

	rec = a.do(http.MethodDelete, path, `{"username":"bob"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, path, "").Code, "non-owner delete is a no-op")

	assert.Equal(t, http.StatusOK, a.do(http.MethodDelete, path, `{"username":"alice"}`).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodDelete, path, `{"username":"alice"}`).Code)
}

func TestSearchUsers(t *testing.T) {
	a := newAPI(t)
	a.createUser("user1", "x")
	a.createUser("user2", "x")
	adminID := a.createUser("admin", "x")

	rec := a.do(http.MethodPost, "/api/users/search", `{"search":"user"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[handler.IDsResponse](t, rec).IDs, 2)

	rec = a.do(http.MethodPost, "/api/users/search", `{"search":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{adminID}, decode[handler.IDsResponse](t, rec).IDs)
}

func TestFollowAndNotificationEndpoints(t *testing.T) {
	a := newAPI(t)
	aliceID := a.createUser("alice", "x")
	a.createUser("bob", "x")
	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/follows", `{"follower_username":"bob","followed_username":"alice"}`).Code)

	rec := a.do(http.MethodPost, "/api/follows/check", `{"follower_username":"bob","followed_username":"alice"}`)
	assert.True(t, decode[handler.FollowStatusResponse](t, rec).Following)

	rec = a.do(http.MethodGet, "/api/users/"+strconv.Itoa(aliceID)+"/followers/count", "")
	assert.EqualValues(t, 1, decode[handler.CountResponse](t, rec).Count)

	rec = a.do(http.MethodGet, "/api/users/"+strconv.Itoa(aliceID)+"/notifications", "")
	notes := decode[[]map[string]interface{}](t, rec)
	require.Len(t, notes, 1)
	noteID := strconv.Itoa(int(notes[0]["id"].(float64)))

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/notifications/"+noteID, "").Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/notifications/"+noteID+"/read", "").Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/notifications/"+noteID, "").Code)

	assert.Equal(t, http.StatusOK, a.do(http.MethodDelete, "/api/follows", `{"follower_username":"bob","followed_username":"alice"}`).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/users/424242/followers", "").Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/users/abc", "").Code)
}

func TestMealPlanEndpoints(t *testing.T) {
	a := newAPI(t)
	aliceID := a.createUser("alice", "x")
	rec := a.do(http.MethodPost, "/api/recipes", `{"username":"alice","title":"Soup","ingredients":"i","steps":"s"}`)
	recipeID := strconv.Itoa(int(decode[map[string]interface{}](t, rec)["id"].(float64)))
	user := strconv.Itoa(aliceID)

	rec = a.do(http.MethodPost, "/api/meal-plan", `{"user_id":`+user+`,"recipe_id":`+recipeID+`,"meal_type":"lunch","day_of_week":"Monday"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/meal-plan", `{"user_id":`+user+`,"recipe_id":`+recipeID+`,"meal_type":"feast","day_of_week":"monday"}`).Code)

	rec = a.do(http.MethodGet, "/api/users/"+user+"/meal-plan", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]interface{}](t, rec), 1)

	body := `{"user_id":` + user + `,"recipe_id":` + recipeID + `,"day_of_week":"monday"}`
	assert.Equal(t, http.StatusOK, a.do(http.MethodDelete, "/api/meal-plan", body).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodDelete, "/api/meal-plan", body).Code)
}

func TestMediaEndpoints(t *testing.T) {
	a := newAPI(t)
	a.createUser("alice", "x")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	image := base64.StdEncoding.EncodeToString(png)

	rec := a.do(http.MethodPost, "/api/media/upload", `{"op":"profile","username":"alice","image":"`+image+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	stored := decode[handler.UploadResponse](t, rec).Path
	assert.Equal(t, "images/i_0.png", stored)

	rec = a.do(http.MethodGet, "/api/media?path="+stored, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, png, rec.Body.Bytes())
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/media/upload", `{"op":"recipe","image":"`+image+`"}`).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/media/upload", `{"op":"profile","username":"alice","image":"!!!"}`).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPost, "/api/media/upload", `{"op":"banner","username":"ghost","image":"`+image+`"}`).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/media?path=images/i_99.png", "").Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/media?path=../secret", "").Code)
}

func TestDeleteUserCascades(t *testing.T) {
	a := newAPI(t)
	aliceID := a.createUser("alice", "pw")
	a.createUser("bob", "pw")
	a.do(http.MethodPost, "/api/recipes", `{"username":"alice","title":"Soup","ingredients":"i","steps":"s"}`)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodDelete, "/api/users", `{"username":"alice","password":"bad"}`).Code)
	require.Equal(t, http.StatusOK, a.do(http.MethodDelete, "/api/users", `{"username":"alice","password":"pw"}`).Code)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/users/"+strconv.Itoa(aliceID), "").Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/users/"+strconv.Itoa(aliceID)+"/recipes", "").Code)
}
