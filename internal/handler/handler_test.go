package handler_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/chat"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/handler"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/model"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/router"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/service"
	"github.com/Santhosh-G-S/Safe-Pass-Webapplication-Project/internal/session"
)

// fakeSessionStore is an in-memory session.Store.
type fakeSessionStore struct {
	counter  int
	sessions map[string]*session.Session
	flashes  map[string][]session.Flash
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: map[string]*session.Session{},
		flashes:  map[string][]session.Flash{},
	}
}

func (f *fakeSessionStore) NewToken() string {
	f.counter++
	return fmt.Sprintf("token-%d", f.counter)
}

func (f *fakeSessionStore) Create(_ context.Context, token string, userID uint, email string) error {
	f.sessions[token] = &session.Session{UserID: userID, Email: email}
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, token string) (*session.Session, error) {
	return f.sessions[token], nil
}

func (f *fakeSessionStore) Destroy(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionStore) AddFlash(_ context.Context, token string, flash session.Flash) error {
	f.flashes[token] = append(f.flashes[token], flash)
	return nil
}

func (f *fakeSessionStore) PopFlashes(_ context.Context, token string) ([]session.Flash, error) {
	flashes := f.flashes[token]
	delete(f.flashes, token)
	return flashes, nil
}

func (f *fakeSessionStore) hasFlash(level, substr string) bool {
	for _, flashes := range f.flashes {
		for _, fl := range flashes {
			if fl.Level == level && strings.Contains(fl.Message, substr) {
				return true
			}
		}
	}
	return false
}

func (f *fakeSessionStore) sessionForUser(userID uint) *session.Session {
	for _, s := range f.sessions {
		if s.UserID == userID {
			return s
		}
	}
	return nil
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) LoginWithIDToken(ctx context.Context, idToken string) (*model.User, string, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Submit(ctx context.Context, userID uint, input service.ReportInput) (*model.Report, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) ListAll(ctx context.Context) ([]model.ReportView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportView), args.Error(1)
}

func (m *MockReportService) ListMine(ctx context.Context, userID uint) ([]model.ReportView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportView), args.Error(1)
}

// MockChatClient is a mock implementation of chat.Client.
type MockChatClient struct {
	mock.Mock
}

var _ chat.Client = (*MockChatClient)(nil)

func (m *MockChatClient) Ask(ctx context.Context, userPrompt string) (string, error) {
	args := m.Called(ctx, userPrompt)
	return args.String(0), args.Error(1)
}

// stubRenderer records the template name and payload instead of executing
// real HTML.
type stubRenderer struct {
	lastName string
	lastData map[string]interface{}
}

func (r *stubRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.lastName = name
	if m, ok := data.(map[string]interface{}); ok {
		r.lastData = m
	}
	_, err := io.WriteString(w, "rendered:"+name)
	return err
}

// testApp wires the full router over fakes and mocks.
type testApp struct {
	e        *echo.Echo
	sessions *fakeSessionStore
	auth     *MockAuthService
	reports  *MockReportService
	chat     *MockChatClient
	renderer *stubRenderer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	app := &testApp{
		e:        echo.New(),
		sessions: newFakeSessionStore(),
		auth:     new(MockAuthService),
		reports:  new(MockReportService),
		chat:     new(MockChatClient),
		renderer: &stubRenderer{},
	}
	app.e.Renderer = app.renderer
	router.Register(
		app.e,
		app.sessions,
		handler.NewAuthHandler(app.auth, app.sessions, time.Hour),
		handler.NewReportHandler(app.reports, app.sessions, "maps-key"),
		handler.NewChatHandler(app.chat, app.sessions),
	)
	return app
}

// loginAs seeds an authenticated session and returns its cookie token.
func (app *testApp) loginAs(userID uint, email string) string {
	token := app.sessions.NewToken()
	app.sessions.sessions[token] = &session.Session{UserID: userID, Email: email}
	return token
}

func (app *testApp) request(method, target, token string, contentType string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: handler.SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)
	return rec
}

func formBody(values map[string]string) string {
	form := url.Values{}
	for k, v := range values {
		form.Set(k, v)
	}
	return form.Encode()
}
