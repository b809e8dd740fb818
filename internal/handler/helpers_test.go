package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/msomdec/flexbase/internal/handler"
	"github.com/msomdec/flexbase/internal/repository/sqlite"
	"github.com/msomdec/flexbase/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestServices(t *testing.T) handler.Services {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	limiter := service.NewTokenBucket(100, 100)
	t.Cleanup(limiter.Stop)

	media := service.NewMediaService(db.FileStore())
	social := service.NewSocialService(db.Users(), db.Follows())
	collections := service.NewCollectionService(db.Collections(), media)
	posts := service.NewPostService(db.Posts(), media)

	return handler.Services{
		Auth:        service.NewAuthService(db.Users(), testJWTSecret, 4, service.DefaultTokenTTL),
		Social:      social,
		Profiles:    service.NewProfileService(db.Users(), social, posts, collections, media),
		Collections: collections,
		Posts:       posts,
		Media:       media,
		AuthLimiter: limiter,
	}
}

func newTestServer(t *testing.T, svc handler.Services) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, svc)
	srv := httptest.NewServer(handler.Wrap(mux))
	t.Cleanup(srv.Close)
	return srv
}

// newClient returns a client with its own cookie jar that does not follow redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// signUp registers username through the form and leaves the session in client's jar.
func signUp(t *testing.T, client *http.Client, srv *httptest.Server, username string) {
	t.Helper()
	resp, err := client.PostForm(srv.URL+"/register", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("POST /register: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("register %s: expected 303, got %d", username, resp.StatusCode)
	}
	if sessionCookie(t, client, srv) == "" {
		t.Fatalf("register %s: no session cookie", username)
	}
}

func sessionCookie(t *testing.T, client *http.Client, srv *httptest.Server) string {
	t.Helper()
	u, _ := url.Parse(srv.URL)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == handler.CookieName {
			return c.Value
		}
	}
	return ""
}

// postJSON posts body as JSON and decodes the JSON answer.
func postJSON(t *testing.T, client *http.Client, target string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	resp, err := client.Post(target, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	return resp.StatusCode, decodeBody(t, resp)
}

func getJSON(t *testing.T, client *http.Client, target string) (int, map[string]any) {
	t.Helper()
	resp, err := client.Get(target)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	return resp.StatusCode, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	out := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
	}
	return out
}

type formFile struct {
	field, name string
	data        []byte
}

// postMultipart posts fields and files and decodes the JSON answer.
func postMultipart(t *testing.T, client *http.Client, target string, fields url.Values, files []formFile) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range fields {
		for _, v := range vs {
			if err := mw.WriteField(k, v); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	for _, f := range files {
		w, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		w.Write(f.data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	resp, err := client.Post(target, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	return resp.StatusCode, decodeBody(t, resp)
}
