package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmoreno/invitado/internal/auth"
	"github.com/dmoreno/invitado/internal/preview"
	"github.com/dmoreno/invitado/internal/remote"
	"github.com/dmoreno/invitado/internal/rsvp"
	"github.com/dmoreno/invitado/internal/storage/sqlite"
	"github.com/dmoreno/invitado/internal/store"
)

const testPassword = "correct horse battery"

type testEnv struct {
	router *gin.Engine
	store  *store.Store
	remote *remote.Memory
	jwt    *auth.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cache, err := sqlite.New(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })

	rc := remote.NewMemory()
	st := store.New("boda-2026", cache, rc)
	t.Cleanup(st.Flush)

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	jwtManager := auth.NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

	_, router := New(Options{
		Store:         st,
		RSVP:          rsvp.New(st),
		Bus:           preview.NewBus(),
		JWT:           jwtManager,
		Authenticator: auth.NewPasswordAuthenticator(hash),
		BaseURL:       "https://boda.example/",
		CORSOrigins:   []string{"*"},
	})

	return &testEnv{router: router, store: st, remote: rc, jwt: jwtManager}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/login", "", map[string]string{"password": testPassword})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token
}

func TestHealthAndMetrics(t *testing.T) {
	e := newTestEnv(t)

	if w := e.do(t, http.MethodGet, "/healthz", "", nil); w.Code != http.StatusOK {
		t.Errorf("healthz status = %d", w.Code)
	}
	if w := e.do(t, http.MethodGet, "/metrics", "", nil); w.Code != http.StatusOK {
		t.Errorf("metrics status = %d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)

	t.Run("wrong password rejected", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/login", "", map[string]string{"password": "nope"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("correct password returns a valid token", func(t *testing.T) {
		token := e.login(t)
		claims, err := e.jwt.Validate(token)
		if err != nil {
			t.Fatalf("issued token does not validate: %v", err)
		}
		if claims.EventID != "boda-2026" {
			t.Errorf("token scoped to %q, want boda-2026", claims.EventID)
		}
	})
}

func TestConfigEndpoints(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	t.Run("patch requires auth", func(t *testing.T) {
		w := e.do(t, http.MethodPatch, "/api/config", "", store.Patch{"ui": map[string]any{}})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("patch merges and returns new state", func(t *testing.T) {
		patch := store.Patch{"wedding": map[string]any{"names": "Ana & Luis"}}
		w := e.do(t, http.MethodPatch, "/api/config", token, patch)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body)
		}
		if got := e.store.GetState().Wedding.Names; got != "Ana & Luis" {
			t.Errorf("store names = %q after patch", got)
		}
	})

	t.Run("get config is public and reflects the patch", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/config", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var doc struct {
			Wedding struct {
				Names string `json:"names"`
			} `json:"wedding"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
			t.Fatalf("decode config response: %v", err)
		}
		if doc.Wedding.Names != "Ana & Luis" {
			t.Errorf("config names = %q, want the patched value", doc.Wedding.Names)
		}
	})
}

func TestInvitationPage(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	patch := store.Patch{"wedding": map[string]any{
		"names":   "Ana & Luis",
		"date":    "2026-03-13T19:30:00",
		"message": "Acompáñanos a celebrar",
	}}
	if w := e.do(t, http.MethodPatch, "/api/config", token, patch); w.Code != http.StatusOK {
		t.Fatalf("seed patch failed: %d", w.Code)
	}

	w := e.do(t, http.MethodGet, "/?n=Familia+P%C3%A9rez&u=AB12&ca=2&cc=1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Ana &amp; Luis", "Familia Pérez", "VIERNES | 13 MARZO | 2026"} {
		if !strings.Contains(body, want) {
			t.Errorf("page is missing %q", want)
		}
	}
}

func TestRSVPEndpointClampsToInvitation(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	w := e.do(t, http.MethodPost, "/api/guests", token, map[string]any{
		"guest": "Familia Pérez", "adults": 2, "kids": 1,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create guest: %d: %s", w.Code, w.Body)
	}
	var created struct {
		ID   string `json:"id"`
		Link string `json:"link"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if !strings.Contains(created.Link, "u="+created.ID) {
		t.Errorf("link %q does not carry the guest id", created.Link)
	}

	w = e.do(t, http.MethodPost, "/api/rsvp?u="+created.ID+"&ca=2&cc=1", "", map[string]any{
		"id": created.ID, "attending": true, "adults": 9, "kids": 9,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("rsvp status = %d: %s", w.Code, w.Body)
	}
	var res struct {
		Adults int `json:"adults"`
		Kids   int `json:"kids"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode rsvp response: %v", err)
	}
	if res.Adults != 2 || res.Kids != 1 {
		t.Errorf("recorded %d/%d, want clamped 2/1", res.Adults, res.Kids)
	}
}

func TestGuestAdminEndpoints(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	t.Run("list requires auth", func(t *testing.T) {
		if w := e.do(t, http.MethodGet, "/api/guests", "", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	w := e.do(t, http.MethodPost, "/api/guests", token, map[string]any{"guest": "Rosa Méndez"})
	if w.Code != http.StatusOK {
		t.Fatalf("create: %d", w.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	t.Run("list returns guests and stats", func(t *testing.T) {
		w := e.do(t, http.MethodGet, "/api/guests", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body)
		}
		if !strings.Contains(w.Body.String(), "Rosa Méndez") {
			t.Error("created guest missing from listing")
		}
		if !strings.Contains(w.Body.String(), "stats") {
			t.Error("listing has no stats block")
		}
	})

	t.Run("toggle deactivates", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/guests/"+created.ID+"/toggle", token,
			map[string]any{"active": false})
		if w.Code != http.StatusOK {
			t.Fatalf("toggle status = %d: %s", w.Code, w.Body)
		}
	})

	t.Run("delete removes", func(t *testing.T) {
		w := e.do(t, http.MethodDelete, "/api/guests/"+created.ID, token, nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("delete status = %d", w.Code)
		}
		w = e.do(t, http.MethodGet, "/api/guests", token, nil)
		if strings.Contains(w.Body.String(), created.ID) {
			t.Error("deleted guest still listed")
		}
	})
}

func TestImportEndpoint(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	csv := "Invitado,Adultos\nAna,2\n,3\nBeto,1\n"
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "guests.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte(csv))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/guests/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", w.Code, w.Body)
	}
	var report struct {
		Imported int `json:"Imported"`
		Skipped  int `json:"Skipped"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Imported != 2 || report.Skipped != 1 {
		t.Errorf("report = %+v, want 2 imported, 1 skipped", report)
	}
}

func TestPreviewRSVPEndpoint(t *testing.T) {
	e := newTestEnv(t)

	if w := e.do(t, http.MethodPost, "/api/preview/rsvp", "", map[string]string{"state": "maybe"}); w.Code != http.StatusBadRequest {
		t.Errorf("invalid state accepted: %d", w.Code)
	}
	if w := e.do(t, http.MethodPost, "/api/preview/rsvp", "", map[string]string{"state": "yes"}); w.Code != http.StatusOK {
		t.Errorf("valid state rejected: %d", w.Code)
	}
}

func TestConcurrentGuestListing(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	for i := 0; i < 15; i++ {
		w := e.do(t, http.MethodPost, "/api/guests", token,
			map[string]any{"guest": fmt.Sprintf("Invitado %02d", i)})
		if w.Code != http.StatusOK {
			t.Fatalf("create guest %d: %d", i, w.Code)
		}
	}

	// Each request gets its own view; overlapping listings must not trample
	// one another's state.
	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = e.do(t, http.MethodGet, "/api/guests", token, nil).Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusOK {
			t.Errorf("concurrent listing %d: status = %d", i, code)
		}
	}
}
