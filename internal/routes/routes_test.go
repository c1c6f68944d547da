package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/zhotheone/nailapp/internal/audit"
	"github.com/zhotheone/nailapp/internal/cache"
	"github.com/zhotheone/nailapp/internal/config"
	"github.com/zhotheone/nailapp/internal/db/dbtest"
	"github.com/zhotheone/nailapp/internal/infra/repository"
	"github.com/zhotheone/nailapp/internal/models"
	"github.com/zhotheone/nailapp/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	validators.Register()
}

// ======================================================
// FIXTURES
// ======================================================

type fakeReminders struct {
	mu        sync.Mutex
	scheduled []uint
	cancelled []uint
}

func (f *fakeReminders) Schedule(ap models.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, ap.ID)
}

func (f *fakeReminders) Cancel(id uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
}

// syncAudit writes events inline so tests can read them back immediately.
type syncAudit struct{ logger *audit.Logger }

func (s syncAudit) Dispatch(ev audit.Event) {
	_ = s.logger.Log(context.Background(), ev)
}

type app struct {
	t         *testing.T
	db        *gorm.DB
	router    *gin.Engine
	reminders *fakeReminders
	cookie    *http.Cookie
}

func newApp(t *testing.T) *app {
	t.Helper()

	db := dbtest.New(t)
	reminders := &fakeReminders{}

	cfg := &config.Config{
		Env:               "test",
		SessionSecret:     "test-secret",
		SessionCookieName: "savika.sid",
		SessionTTL:        24 * time.Hour,
		SessionTouchAfter: time.Hour,
		CacheTTL:          time.Minute,
		LoginRateLimit:    3,
		LoginRateWindow:   time.Minute,
		CORSOrigins:       []string{"https://salon.example"},
	}

	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(cfg.TrustedProxies))
	RegisterRoutes(r, Deps{
		DB:        db,
		Config:    cfg,
		Location:  time.UTC,
		Cache:     cache.NewMemory(),
		Audit:     syncAudit{logger: audit.New(db)},
		Reminders: reminders,
	})

	return &app{t: t, db: db, router: r, reminders: reminders}
}

func (a *app) addUser(username, password, role string) {
	a.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(a.t, err)
	u := &models.User{Username: username, PasswordHash: string(hash), Role: role, Active: true}
	require.NoError(a.t, repository.NewUserGormRepository(a.db).Create(context.Background(), u))
}

func (a *app) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	return a.doWith(method, path, body, nil)
}

func (a *app) doWith(method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *app) signIn(username, password string) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/login", gin.H{"username": username, "password": password})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == "savika.sid" {
			a.cookie = c
		}
	}
	require.NotNil(a.t, a.cookie)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[map[string]any](t, rec)["code"].(string)
}

// seed creates one client and one procedure and returns their ids.
func (a *app) seed() (clientID, procedureID float64) {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/clients", gin.H{
		"name": "Anna", "surName": "Koval", "phoneNum": "+380501112233", "trustRating": 4,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	clientID = decode[map[string]any](a.t, rec)["id"].(float64)

	rec = a.do(http.MethodPost, "/api/procedures", gin.H{
		"name": "Gel manicure", "price": 600, "timeToComplete": 90,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	procedureID = decode[map[string]any](a.t, rec)["id"].(float64)
	return clientID, procedureID
}

const slot = "2026-03-09T09:00:00Z"

// ======================================================
// OPS / AUTH
// ======================================================

func TestHealth(t *testing.T) {
	a := newApp(t)
	rec := a.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIRequiresSession(t *testing.T) {
	a := newApp(t)

	rec := a.do(http.MethodGet, "/api/clients", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodGet, "/api/auth/check", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, decode[map[string]any](t, rec)["authenticated"])
}

func TestLoginSetsSessionCookie(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)

	rec := a.do(http.MethodPost, "/api/auth/login", gin.H{"username": "savika", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, rec))

	a.signIn("savika", "pw")

	rec = a.do(http.MethodGet, "/api/auth/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode[map[string]any](t, rec)["authenticated"])

	rec = a.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)["user"].(map[string]any)
	assert.Equal(t, "savika", me["username"])

	rec = a.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/api/clients", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)

	for i := 0; i < 3; i++ {
		rec := a.do(http.MethodPost, "/api/auth/login", gin.H{"username": "savika", "password": "bad"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := a.do(http.MethodPost, "/api/auth/login", gin.H{"username": "savika", "password": "pw"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestLoginLimitIgnoresForwardedFor(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		h := http.Header{}
		h.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rec := a.doWith(http.MethodPost, "/api/auth/login", gin.H{"username": "savika", "password": "bad"}, h)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{
		http.StatusUnauthorized, http.StatusUnauthorized, http.StatusUnauthorized,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, codes)
}

func TestLogoutIsAudited(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)
	a.signIn("savika", "pw")

	rec := a.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []models.AuditLog
	require.NoError(t, a.db.Where("action = ?", "logout").Find(&rows).Error)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].UserID)
	assert.Equal(t, "user", rows[0].Entity)
}

func TestCORSOnlyForConfiguredOrigins(t *testing.T) {
	a := newApp(t)

	h := http.Header{}
	h.Set("Origin", "https://evil.example")
	rec := a.doWith(http.MethodGet, "/health", nil, h)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	h.Set("Origin", "https://salon.example")
	rec = a.doWith(http.MethodGet, "/health", nil, h)
	assert.Equal(t, "https://salon.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

// ======================================================
// APPOINTMENTS
// ======================================================

func TestAppointmentLifecycle(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)
	a.signIn("savika", "pw")
	clientID, procedureID := a.seed()

	rec := a.do(http.MethodPost, "/api/appointments", gin.H{
		"clientId": clientID, "procedureId": procedureID, "time": slot,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[map[string]any](t, rec)
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, float64(600), created["price"])
	client := created["clientId"].(map[string]any)
	assert.Equal(t, "Anna", client["name"])
	id := created["id"].(float64)

	// same minute, still active
	rec = a.do(http.MethodPost, "/api/appointments", gin.H{
		"clientId": clientID, "procedureId": procedureID, "time": slot,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "slot_taken", errorCode(t, rec))

	path := "/api/appointments/" + jsonNumber(id)

	rec = a.do(http.MethodPatch, path, gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "confirmed", decode[map[string]any](t, rec)["status"])
	assert.Contains(t, a.reminders.scheduled, uint(id))

	rec = a.do(http.MethodPatch, path, gin.H{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_status", errorCode(t, rec))

	rec = a.do(http.MethodPut, path, gin.H{"finalPrice": 550, "notes": "french"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[map[string]any](t, rec)
	assert.Equal(t, float64(550), updated["finalPrice"])
	assert.Equal(t, "french", updated["notes"])

	rec = a.do(http.MethodGet, "/api/appointments?date=2026-03-09", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = a.do(http.MethodGet, "/api/appointments?status=cancelled", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())

	rec = a.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, a.reminders.cancelled, uint(id))

	rec = a.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "appointment_not_found", errorCode(t, rec))
}

func TestAppointmentBadInput(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)
	a.signIn("savika", "pw")
	_, procedureID := a.seed()

	rec := a.do(http.MethodGet, "/api/appointments/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_id", errorCode(t, rec))

	rec = a.do(http.MethodPost, "/api/appointments", gin.H{"procedureId": procedureID, "time": slot})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_clientId", errorCode(t, rec))

	rec = a.do(http.MethodPost, "/api/appointments", gin.H{
		"clientId": 999, "procedureId": procedureID, "time": slot,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "client_not_found", errorCode(t, rec))
}

func TestFreeAvailabilityHidesBookedSlots(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)
	a.signIn("savika", "pw")
	clientID, procedureID := a.seed()

	rec := a.do(http.MethodPost, "/api/schedules", gin.H{
		"dayOfWeek": 1,
		"timeTable": map[string]string{"1": "09:00", "2": "11:00"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/appointments", gin.H{
		"clientId": clientID, "procedureId": procedureID, "time": slot, "status": "confirmed",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, "/api/availability?date=2026-03-09&free=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var day struct {
		Working bool `json:"working"`
		Slots   []struct {
			Time string `json:"time"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &day))
	assert.True(t, day.Working)
	require.Len(t, day.Slots, 1)
	assert.Equal(t, "11:00", day.Slots[0].Time)
}

// ======================================================
// CLIENTS / PROCEDURES
// ======================================================

func TestClientSearch(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)
	a.signIn("savika", "pw")
	a.seed()

	rec := a.do(http.MethodPost, "/api/clients", gin.H{
		"name": "Olena", "surName": "Bondar", "phoneNum": "+380671234567",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, "/api/clients?search=KOV", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[[]map[string]any](t, rec)
	require.Len(t, found, 1)
	assert.Equal(t, "Anna", found[0]["name"])

	rec = a.do(http.MethodGet, "/api/clients", nil)
	all := decode[[]map[string]any](t, rec)
	require.Len(t, all, 2)
	assert.Equal(t, "Bondar", all[0]["surName"])

	rec = a.do(http.MethodGet, "/api/clients?minRating=4", nil)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = a.do(http.MethodPost, "/api/clients", gin.H{"name": "X", "surName": "Y", "phoneNum": "call me"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_phoneNum", errorCode(t, rec))
}

func TestDeletingClientCascadesToAppointments(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)
	a.signIn("savika", "pw")
	clientID, procedureID := a.seed()

	rec := a.do(http.MethodPost, "/api/appointments", gin.H{
		"clientId": clientID, "procedureId": procedureID, "time": slot,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	apID := decode[map[string]any](t, rec)["id"].(float64)

	rec = a.do(http.MethodDelete, "/api/clients/"+jsonNumber(clientID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, rec)["appointmentsDeleted"])
	assert.Contains(t, a.reminders.cancelled, uint(apID))

	rec = a.do(http.MethodGet, "/api/appointments/"+jsonNumber(apID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(http.MethodGet, "/api/clients/"+jsonNumber(clientID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "client_not_found", errorCode(t, rec))
}

func TestDeletedProcedureLeavesBareID(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)
	a.signIn("savika", "pw")
	clientID, procedureID := a.seed()

	rec := a.do(http.MethodPost, "/api/appointments", gin.H{
		"clientId": clientID, "procedureId": procedureID, "time": slot,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	apID := decode[map[string]any](t, rec)["id"].(float64)

	rec = a.do(http.MethodDelete, "/api/procedures/"+jsonNumber(procedureID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/api/appointments/"+jsonNumber(apID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, procedureID, decode[map[string]any](t, rec)["procedureId"])
}

// ======================================================
// REPORTS / AUDIT
// ======================================================

func TestStatsReflectWrites(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)
	a.signIn("savika", "pw")

	rec := a.do(http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode[map[string]any](t, rec)["totalClients"])

	a.seed()

	// the write above must have dropped the cached summary
	rec = a.do(http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, rec)["totalClients"])
}

func TestAuditLogsAreAdminOnly(t *testing.T) {
	a := newApp(t)
	a.addUser("savika", "pw", models.RoleAdmin)
	a.addUser("master", "pw", models.RoleUser)

	a.signIn("master", "pw")
	rec := a.do(http.MethodGet, "/api/audit-logs", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	a.signIn("savika", "pw")
	a.seed()

	rec = a.do(http.MethodGet, "/api/audit-logs?entity=client&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[struct {
		Page  int              `json:"page"`
		Limit int              `json:"limit"`
		Total int64            `json:"total"`
		Data  []map[string]any `json:"data"`
	}](t, rec)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "client_created", page.Data[0]["action"])
	assert.NotNil(t, page.Data[0]["userId"])
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
