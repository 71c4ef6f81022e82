package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace/handlers"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router     *gin.Engine
	users      *fakeUsers
	browser    *fakeBrowser
	listings   *fakeListings
	onboarding *fakeOnboarding
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ts := &testServer{
		users:      &fakeUsers{},
		browser:    &fakeBrowser{},
		listings:   &fakeListings{},
		onboarding: &fakeOnboarding{},
	}
	hb := &handlers.HandlerBundle{
		Authenticator: ts.users,
		Auth:          handlers.NewAuthHandler(ts.users),
		Catalog:       handlers.NewCatalogHandler(ts.browser, fakeMenu{}, fakeTaxonomy{}, ts.listings),
		Onboarding:    handlers.NewOnboardingHandler(ts.onboarding),
		Professional:  handlers.NewProfessionalHandler(fakeProfessional{}, ts.listings),
		Admin:         handlers.NewAdminHandler(fakeAdmin{}),
	}
	ts.router = gin.New()
	RegisterRoutes(ts.router, hb, zap.NewNop())
	return ts
}

func (ts *testServer) do(method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) json(method, path, token, body string) *httptest.ResponseRecorder {
	return ts.do(method, path, token, strings.NewReader(body), "application/json")
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestHealthReportsUnavailableBeforeFirstCheck(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBrowsePathSegmentsWinOverQuery(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/services/home-garden/plumbing?q=leak++repair&category=other&sort=price_asc", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "home-garden", ts.browser.last.Sector)
	assert.Equal(t, "plumbing", ts.browser.last.Category)
	assert.Equal(t, "leak repair", ts.browser.last.Query)

	w = ts.do(http.MethodGet, "/api/services?sector=business", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "business", ts.browser.last.Sector)
	assert.Empty(t, ts.browser.last.Category)
}

func TestBrowseRejectsMalformedFilters(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/services?minPrice=cheap&sort=random", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	fields := map[string]bool{}
	for _, f := range resp.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["minPrice"])
	assert.True(t, fields["sort"])
}

func TestBrowseUnknownSectorIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/api/services/nowhere", "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaxonomyEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/taxonomy/categories/c1/subcategories", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"sc1"`)

	w = ts.do(http.MethodGet, "/api/taxonomy/categories/c1/subcategories?parent=sc1", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"sc2"`)

	w = ts.do(http.MethodGet, "/api/taxonomy/categories/c1/subcategories?parent=ghost", "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodGet, "/api/navigation", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"home-garden"`)
}

func TestGetListing(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/listings/l1", "", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/api/listings/l2", "", nil, "").Code)
}

func TestAuthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	w := ts.json(http.MethodPost, "/api/auth/register", "", `{"name":"A","email":"a@example.com","password":"Secret#123"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = ts.json(http.MethodPost, "/api/auth/register", "", `{"name":"A","email":"taken@example.com","password":"Secret#123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = ts.json(http.MethodPost, "/api/auth/register", "", `{"name":"A"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.json(http.MethodPost, "/api/auth/login", "", `{"email":"a@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.json(http.MethodPost, "/api/auth/password/check", "", `{"password":"short"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var report struct {
		Valid bool `json:"valid"`
		Rules []struct {
			Rule string `json:"rule"`
			Met  bool   `json:"met"`
		} `json:"rules"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.False(t, report.Valid)
	assert.Len(t, report.Rules, 5)

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodPost, "/api/auth/logout", "", nil, "").Code)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/auth/logout", "client-token", nil, "").Code)
	assert.Equal(t, []string{"client-1"}, ts.users.loggedOut)
}

func TestProfessionalRoutesRequireRole(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/professional/profile", "", nil, "").Code)
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, "/api/professional/profile", "client-token", nil, "").Code)

	w := ts.do(http.MethodGet, "/api/professional/profile", "pro-token", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"pro-1"`)
}

func TestListMineRejectsBadPaging(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/professional/listings?page=0", "pro-token", nil, "").Code)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/professional/listings?page=2", "pro-token", nil, "").Code)
}

func TestListingMediaRoutes(t *testing.T) {
	ts := newTestServer(t)

	body, ct := multipartBody(t, nil, "photo.jpg", []byte("jpeg-bytes"))
	w := ts.do(http.MethodPost, "/api/professional/listings/l1/media", "pro-token", body, ct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "photo.jpg", ts.listings.fileName)
	assert.Equal(t, []byte("jpeg-bytes"), ts.listings.uploaded)

	body, ct = multipartBody(t, nil, "", nil)
	w = ts.do(http.MethodPost, "/api/professional/listings/l1/media", "pro-token", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodDelete, "/api/professional/listings/l1/media/listings/pro-1/m1", "pro-token", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "listings/pro-1/m1", ts.listings.removed)
}

func TestOnboardingRoutes(t *testing.T) {
	ts := newTestServer(t)

	w := ts.json(http.MethodPost, "/api/onboarding", "", `{"name":"Jane","email":"jane@example.com","password":"Secret#123"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"sessionId":"sess-1"`)

	w = ts.json(http.MethodPut, "/api/onboarding/sess-1/profile", "", `{"displayName":"Jane"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"displayName":"Jane"}`, string(ts.onboarding.payload))

	w = ts.json(http.MethodPut, "/api/onboarding/sess-1/services", "", `{"selections":[]}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decodeError(t, w).Details, `requires step "profile"`)
}

func TestAdminRoutes(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusForbidden, ts.json(http.MethodPost, "/api/admin/documents/d1/reject", "pro-token", `{"reason":"x"}`).Code)

	w := ts.json(http.MethodPost, "/api/admin/documents/d1/reject", "admin-token", `{"reason":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "reason", decodeError(t, w).Fields[0].Field)

	w = ts.json(http.MethodPost, "/api/admin/documents/d1/reject", "admin-token", `{"reason":"blurry scan"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reviewerId":"admin-1"`)

	w = ts.do(http.MethodGet, "/api/admin/documents/d1/file", "admin-token", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/pdf"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "passport.pdf")
	assert.Equal(t, pdfBytes, w.Body.Bytes())
}
