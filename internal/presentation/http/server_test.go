package http

import (
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	clubdata "smoweb/app/internal/data/club"
	cmsdata "smoweb/app/internal/data/cms"
	"smoweb/app/internal/data/database"
	directorydata "smoweb/app/internal/data/directory"
	"smoweb/app/internal/data/migrations"
	"smoweb/app/internal/domain/club"
	"smoweb/app/internal/domain/cms"
	"smoweb/app/internal/domain/directory"
	"smoweb/app/internal/domain/publishing"
)

func TestNewsLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	categoryID := env.category(t)

	rec := env.do(t, "POST", "/api/news", map[string]any{
		"title":      "Welcome Week",
		"content":    "Schedule inside",
		"categoryId": categoryID,
		"status":     "PUBLISHED",
		"tags":       []string{"freshers"},
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Success bool     `json:"success"`
		Data    cms.News `json:"data"`
	}
	decode(t, rec, &created)
	if !created.Success || !strings.HasPrefix(created.Data.Slug, "welcome-week-") {
		t.Fatalf("unexpected create response %+v", created)
	}
	if created.Data.PublishedAt == nil {
		t.Fatalf("expected published news to carry a publication stamp")
	}

	for i := 0; i < 2; i++ {
		rec = env.do(t, "GET", "/api/news?slug="+created.Data.Slug, nil)
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	var detail struct {
		Data cms.News `json:"data"`
	}
	decode(t, rec, &detail)
	if detail.Data.ViewCount != 2 {
		t.Fatalf("expected two recorded views, got %d", detail.Data.ViewCount)
	}

	rec = env.do(t, "GET", "/api/news", nil)
	var list struct {
		Data  []cms.News `json:"data"`
		Total int        `json:"total"`
	}
	decode(t, rec, &list)
	if list.Total != 1 || len(list.Data) != 1 || list.Data[0].ViewCount != 2 {
		t.Fatalf("unexpected list response %+v", list)
	}

	rec = env.do(t, "PUT", "/api/news?id="+created.Data.ID, map[string]any{"priority": "urgent", "id": created.Data.ID})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &detail)
	if detail.Data.Priority != cms.PriorityUrgent || detail.Data.Title != "Welcome Week" {
		t.Fatalf("expected partial update, got %+v", detail.Data)
	}

	rec = env.do(t, "DELETE", "/api/news?id="+created.Data.ID, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200 on delete, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "GET", "/api/news?id="+created.Data.ID, nil)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestListDefaultsToPublishedAndAcceptsAll(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	for _, body := range []map[string]any{
		{"title": "Draft page", "content": "x", "type": "NEWS"},
		{"title": "Live page", "content": "y", "type": "NEWS", "status": "PUBLISHED"},
	} {
		if rec := env.do(t, "POST", "/api/content", body); rec.Code != stdhttp.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	var list struct {
		Total int `json:"total"`
	}
	decode(t, env.do(t, "GET", "/api/content", nil), &list)
	if list.Total != 1 {
		t.Fatalf("expected only published content by default, got %d", list.Total)
	}

	decode(t, env.do(t, "GET", "/api/content?status=ALL", nil), &list)
	if list.Total != 2 {
		t.Fatalf("expected every item with status=ALL, got %d", list.Total)
	}

	if rec := env.do(t, "GET", "/api/content?status=hidden", nil); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown status, got %d", rec.Code)
	}
}

func TestContentDuplicateSlugReturnsConflict(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	body := map[string]any{"title": "About us", "content": "club", "type": "ANNOUNCEMENT"}

	if rec := env.do(t, "POST", "/api/content", body); rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := env.do(t, "POST", "/api/content", body)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestValidationErrorsReturnFieldDetails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/news", map[string]any{"title": "No body"})
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var problem struct {
		Status int `json:"status"`
		Errors []struct {
			Location string `json:"location"`
			Message  string `json:"message"`
		} `json:"errors"`
	}
	decode(t, rec, &problem)

	locations := map[string]bool{}
	for _, detail := range problem.Errors {
		locations[detail.Location] = true
	}
	if problem.Status != stdhttp.StatusBadRequest || !locations["content"] || !locations["categoryId"] {
		t.Fatalf("expected content and categoryId details, got %+v", problem)
	}

	if rec := env.do(t, "DELETE", "/api/news", nil); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 when id is missing, got %d", rec.Code)
	}
}

func TestFormSubmissionRules(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/forms", map[string]any{
		"title":  "Volunteer signup",
		"type":   "REGISTRATION",
		"status": "ACTIVE",
		"fields": []map[string]any{{"name": "studentId"}},
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Data cms.Form `json:"data"`
	}
	decode(t, rec, &created)
	if created.Data.Status != publishing.StatusPublished {
		t.Fatalf("expected ACTIVE to map to PUBLISHED, got %s", created.Data.Status)
	}

	rec = env.do(t, "POST", "/api/forms/submissions?formId="+created.Data.ID, map[string]any{"data": map[string]any{"studentId": "6501"}})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201 for submission, got %d: %s", rec.Code, rec.Body.String())
	}

	if rec := env.do(t, "POST", "/api/forms/submissions?formId=missing", map[string]any{"data": map[string]any{"a": 1}}); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("expected 404 for unknown form, got %d", rec.Code)
	}

	if rec := env.do(t, "PUT", "/api/forms?id="+created.Data.ID, map[string]any{"status": "CLOSED"}); rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200 closing the form, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := env.do(t, "POST", "/api/forms/submissions?formId="+created.Data.ID, map[string]any{"data": map[string]any{"a": 1}}); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 for a closed form, got %d", rec.Code)
	}

	var detail struct {
		Data cms.Form `json:"data"`
	}
	decode(t, env.do(t, "GET", "/api/forms?id="+created.Data.ID, nil), &detail)
	if detail.Data.SubmissionCount != 1 || len(detail.Data.Submissions) != 1 {
		t.Fatalf("expected one submission on the detail view, got %+v", detail.Data)
	}
}

func TestDirectoryRoutes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, "POST", "/api/categories", map[string]any{"name": "Sports Club"})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := env.do(t, "POST", "/api/categories", map[string]any{"name": "Sports Club"}); rec.Code != stdhttp.StatusConflict {
		t.Fatalf("expected 409 for duplicate category, got %d", rec.Code)
	}

	rec = env.do(t, "POST", "/api/contacts", map[string]any{
		"name": "Nok", "email": "nok@example.com", "subject": "Hello", "message": "Hi there",
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var contact struct {
		Data directory.Contact `json:"data"`
	}
	decode(t, rec, &contact)

	rec = env.do(t, "PUT", "/api/contacts?id="+contact.Data.ID, map[string]any{"status": "RESOLVED"})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var contacts struct {
		Total int `json:"total"`
	}
	decode(t, env.do(t, "GET", "/api/contacts?status=RESOLVED", nil), &contacts)
	if contacts.Total != 1 {
		t.Fatalf("expected one resolved contact, got %d", contacts.Total)
	}

	if _, err := env.users.Create(context.Background(), directory.UserInput{
		Email: "admin@example.com", Username: "admin", Password: "supersecret", Role: "ADMIN",
	}); err != nil {
		t.Fatalf("creating user: %v", err)
	}
	rec = env.do(t, "GET", "/api/users", nil)
	if rec.Code != stdhttp.StatusOK || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("expected users without password hashes, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStorageFailureReturns500(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.server.news = &failingNewsService{err: eris.New("disk on fire")}

	rec := env.do(t, "GET", "/api/news", nil)
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "disk on fire") {
		t.Fatalf("internal error details must not leak: %s", rec.Body.String())
	}
}

func TestRateLimiterMiddlewareCapsRequests(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	opts := env.options
	opts.RateLimiter = RateLimiterSettings{RequestsPerSecond: 3, Burst: 3, ClientTTL: time.Minute}
	srv, err := NewServer(opts)
	if err != nil {
		t.Fatalf("NewServer returned error: %v", err)
	}
	t.Cleanup(srv.Close)
	env.server = srv

	current := time.Unix(0, 0)
	env.server.rateLimiter.now = func() time.Time {
		return current
	}

	for i := 0; i < 3; i++ {
		rec := env.do(t, "GET", "/api/categories", nil)
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("expected request %d to be allowed, got status %d", i+1, rec.Code)
		}
	}

	limited := env.do(t, "GET", "/api/categories", nil)
	if limited.Code != stdhttp.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", stdhttp.StatusTooManyRequests, limited.Code)
	}
	if header := limited.Header().Get("Retry-After"); header != "1" {
		t.Fatalf("expected Retry-After header to be 1, got %q", header)
	}
	if !strings.Contains(limited.Body.String(), "Please wait a moment") {
		t.Fatalf("expected rate limit message in body, got %q", limited.Body.String())
	}

	current = current.Add(time.Second)

	if rec := env.do(t, "GET", "/api/categories", nil); rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected status %d after refill, got %d", stdhttp.StatusOK, rec.Code)
	}
}

func TestHealthMetricsAndRequestID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, "GET", "/healthz", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	rec = httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "trace-123" {
		t.Fatalf("expected incoming request id to be echoed, got %q", got)
	}

	rec = env.do(t, "GET", "/metrics", nil)
	if rec.Code != stdhttp.StatusOK || !strings.Contains(rec.Body.String(), "smoweb_http_requests_total") {
		t.Fatalf("expected prometheus metrics, got %d", rec.Code)
	}

	if rec := env.do(t, "GET", "/openapi.json", nil); rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected OpenAPI document, got %d", rec.Code)
	}
}

func TestNewServerValidatesOptions(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(Options{}); err == nil {
		t.Fatalf("expected error when services are missing")
	}

	env := newTestEnv(t)
	opts := env.options
	opts.RateLimiter.Burst = 0
	if _, err := NewServer(opts); err == nil {
		t.Fatalf("expected error for zero burst")
	}
}

// helper utilities

type testEnv struct {
	server  *Server
	options Options
	db      *gorm.DB
	users   directory.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	logger := silentLogger()

	db, err := database.Open(database.Options{Path: filepath.Join(t.TempDir(), "http.db")})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	if err := migrations.Migrate(ctx, db, logger); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	newsRepo, err := cmsdata.NewNewsRepository(db, logger)
	mustNot(t, err)
	contentRepo, err := cmsdata.NewContentRepository(db, logger)
	mustNot(t, err)
	galleryRepo, err := cmsdata.NewGalleryRepository(db, logger)
	mustNot(t, err)
	formRepo, err := cmsdata.NewFormRepository(db, logger)
	mustNot(t, err)
	categoryRepo, err := directorydata.NewCategoryRepository(db, logger)
	mustNot(t, err)
	contactRepo, err := directorydata.NewContactRepository(db, logger)
	mustNot(t, err)
	userRepo, err := directorydata.NewUserRepository(db, logger)
	mustNot(t, err)

	serviceOpts := cms.Options{Logger: logger}
	news, err := cms.NewNewsService(newsRepo, userRepo, serviceOpts)
	mustNot(t, err)
	content, err := cms.NewContentService(contentRepo, serviceOpts)
	mustNot(t, err)
	gallery, err := cms.NewGalleryService(galleryRepo, serviceOpts)
	mustNot(t, err)
	forms, err := cms.NewFormService(formRepo, serviceOpts)
	mustNot(t, err)
	categories, err := directory.NewCategoryService(categoryRepo, logger, nil)
	mustNot(t, err)
	contacts, err := directory.NewContactService(contactRepo, logger, nil)
	mustNot(t, err)
	users, err := directory.NewUserService(userRepo, bcrypt.MinCost, logger, nil)
	mustNot(t, err)

	projectRepo, err := clubdata.NewProjectRepository(db, logger)
	mustNot(t, err)
	activityRepo, err := clubdata.NewActivityRepository(db, logger)
	mustNot(t, err)
	documentRepo, err := clubdata.NewDocumentRepository(db, logger)
	mustNot(t, err)
	campaignRepo, err := clubdata.NewCampaignRepository(db, logger)
	mustNot(t, err)
	memberRepo, err := clubdata.NewMemberRepository(db, logger)
	mustNot(t, err)
	staffRepo, err := clubdata.NewStaffRepository(db, logger)
	mustNot(t, err)
	positionRepo, err := clubdata.NewPositionRepository(db, logger)
	mustNot(t, err)

	projects, err := club.NewProjectService(projectRepo, userRepo, logger, nil)
	mustNot(t, err)
	activities, err := club.NewActivityService(activityRepo, projectRepo, userRepo, logger, nil)
	mustNot(t, err)
	documents, err := club.NewDocumentService(documentRepo, logger, nil)
	mustNot(t, err)
	donations, err := club.NewCampaignService(campaignRepo, logger, nil)
	mustNot(t, err)
	members, err := club.NewMemberService(memberRepo, logger, nil)
	mustNot(t, err)
	staff, err := club.NewStaffService(staffRepo, logger, nil)
	mustNot(t, err)
	positions, err := club.NewPositionService(positionRepo, logger, nil)
	mustNot(t, err)

	opts := Options{
		News:       news,
		Content:    content,
		Gallery:    gallery,
		Forms:      forms,
		Categories: categories,
		Contacts:   contacts,
		Users:      users,
		Activities: activities,
		Projects:   projects,
		Documents:  documents,
		Donations:  donations,
		Members:    members,
		Staff:      staff,
		Positions:  positions,
		DB:         db,
		Logger:     logger,
		RateLimiter: RateLimiterSettings{
			RequestsPerSecond: 1000,
			Burst:             1000,
			ClientTTL:         time.Minute,
		},
	}

	srv, err := NewServer(opts)
	if err != nil {
		t.Fatalf("NewServer returned error: %v", err)
	}
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, options: opts, db: db, users: users}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		reader = strings.NewReader(string(payload))
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) category(t *testing.T) string {
	t.Helper()

	category, err := e.server.categories.Create(context.Background(), directory.CategoryInput{Name: "General"})
	if err != nil {
		t.Fatalf("creating category: %v", err)
	}
	return category.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func mustNot(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type failingNewsService struct {
	err error
}

func (s *failingNewsService) Create(context.Context, cms.NewsInput) (*cms.News, error) {
	return nil, s.err
}

func (s *failingNewsService) Get(context.Context, publishing.Lookup) (*cms.News, error) {
	return nil, s.err
}

func (s *failingNewsService) List(context.Context, cms.ListQuery) ([]cms.News, error) {
	return nil, s.err
}

func (s *failingNewsService) Update(context.Context, string, cms.NewsPatch) (*cms.News, error) {
	return nil, s.err
}

func (s *failingNewsService) Delete(context.Context, string) error {
	return s.err
}
