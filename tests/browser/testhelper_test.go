package browser_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	web "siuportal/internal/adapters/http"
	"siuportal/internal/adapters/backend"
	"siuportal/internal/adapters/http/middleware"
	"siuportal/internal/adapters/http/perf"
	"siuportal/internal/adapters/storage"
	"siuportal/internal/adapters/storage/sessionstore"
	"siuportal/internal/application/orchestrators"
	"siuportal/internal/domain/club"
	"siuportal/internal/domain/registration"
	"siuportal/internal/domain/session"
)

// campusAPI is a stateful stand-in for the campus UKM backend. Browser
// tests drive the portal end to end against it.
type campusAPI struct {
	mu        sync.Mutex
	accounts  map[string]campusAccount // keyed by email
	tokens    map[string]campusAccount // keyed by issued token
	clubs     []club.Club
	regs      []registration.Registration
	nextToken int
	nextReg   int
}

type campusAccount struct {
	Profile  session.Profile
	Password string
}

func newCampusAPI() *campusAPI {
	api := &campusAPI{
		accounts: make(map[string]campusAccount),
		tokens:   make(map[string]campusAccount),
		nextReg:  100,
	}
	api.addAccount(session.Profile{ID: 1, Name: "Pak Budi", Email: "admin@kampus.ac.id", Role: "admin"}, "AdminPass123!")
	api.addAccount(session.Profile{
		ID: 2, Name: "Sari Wulandari", StudentID: "2101234", Faculty: "Teknik",
		Email: "sari@kampus.ac.id", Role: "user",
	}, "SariPass123!")
	api.clubs = []club.Club{
		{
			ID: 1, Name: "UKM Robotika", Description: "Riset dan lomba robotika kampus",
			Activities: []club.Activity{
				{ID: 10, Name: "Workshop PCB", Description: "Belajar desain PCB dari nol"},
			},
		},
		{ID: 2, Name: "UKM Paduan Suara", Description: "Latihan rutin setiap pekan"},
	}
	return api
}

func (a *campusAPI) addAccount(p session.Profile, password string) {
	a.accounts[p.Email] = campusAccount{Profile: p, Password: password}
}

func (a *campusAPI) authed(r *http.Request) (campusAccount, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	acct, ok := a.tokens[token]
	return acct, ok
}

func (a *campusAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		acct, ok := a.accounts[body.Email]
		if !ok || acct.Password != body.Password {
			http.Error(w, `{"message":"email atau password salah"}`, http.StatusUnauthorized)
			return
		}
		a.nextToken++
		token := fmt.Sprintf("tok-%d", a.nextToken)
		a.tokens[token] = acct
		json.NewEncoder(w).Encode(backend.LoginResult{Token: token, User: acct.Profile})
	})

	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()
		var in backend.AccountInput
		json.NewDecoder(r.Body).Decode(&in)
		if _, exists := a.accounts[in.Email]; exists {
			http.Error(w, `{"message":"email sudah terpakai"}`, http.StatusConflict)
			return
		}
		a.addAccount(session.Profile{
			ID: len(a.accounts) + 1, Name: in.Name, StudentID: in.StudentID,
			Faculty: in.Faculty, Email: in.Email, Role: "user",
		}, in.Password)
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("GET /ukm", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()
		json.NewEncoder(w).Encode(a.clubs)
	})

	mux.HandleFunc("GET /ukm/{id}", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		for _, c := range a.clubs {
			if c.ID == id {
				json.NewEncoder(w).Encode(c)
				return
			}
		}
		http.Error(w, `{"message":"ukm tidak ditemukan"}`, http.StatusNotFound)
	})

	mux.HandleFunc("GET /pendaftar/user/{uid}", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()
		if _, ok := a.authed(r); !ok {
			http.Error(w, `{"message":"token tidak valid"}`, http.StatusUnauthorized)
			return
		}
		uid, _ := strconv.Atoi(r.PathValue("uid"))
		mine := []registration.Registration{}
		for _, reg := range a.regs {
			if reg.UserID == uid {
				mine = append(mine, reg)
			}
		}
		json.NewEncoder(w).Encode(mine)
	})

	mux.HandleFunc("GET /pendaftar", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()
		json.NewEncoder(w).Encode(a.regs)
	})

	mux.HandleFunc("POST /pendaftar", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()
		acct, ok := a.authed(r)
		if !ok {
			http.Error(w, `{"message":"token tidak valid"}`, http.StatusUnauthorized)
			return
		}
		var in backend.SubmitInput
		json.NewDecoder(r.Body).Decode(&in)
		a.nextReg++
		created := registration.Registration{
			ID: a.nextReg, UserID: acct.Profile.ID, ClubID: in.ClubID,
			ActivityID: in.ActivityID, Kind: in.Kind,
			Status: registration.StatusPending, CreatedAt: time.Now().UTC(),
			UserName: acct.Profile.Name, UserEmail: acct.Profile.Email,
			StudentID: acct.Profile.StudentID, Faculty: acct.Profile.Faculty,
		}
		for _, c := range a.clubs {
			if c.ID == in.ClubID {
				created.ClubName = c.Name
			}
		}
		a.regs = append(a.regs, created)
		json.NewEncoder(w).Encode(created)
	})

	mux.HandleFunc("PATCH /pendaftar/{id}", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()
		id, _ := strconv.Atoi(r.PathValue("id"))
		var body struct {
			Status string `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		for i := range a.regs {
			if a.regs[i].ID == id {
				a.regs[i].Status = body.Status
				w.WriteHeader(http.StatusOK)
				return
			}
		}
		http.Error(w, `{"message":"pendaftar tidak ditemukan"}`, http.StatusNotFound)
	})

	return mux
}

// testApp holds the running portal, the fake campus API, and the
// Playwright handles.
type testApp struct {
	BaseURL string
	API     *campusAPI
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp wires a portal against a fake campus API with a temp
// SQLite session store and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	api := newCampusAPI()
	apiSrv := httptest.NewServer(api.handler())
	t.Cleanup(apiSrv.Close)

	tmpDir := t.TempDir()
	dsn := filepath.Join(tmpDir, "test.db") + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}

	collector := perf.NewCollector(perf.DefaultRingSize)

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	mux := web.NewMux("static", &web.Deps{
		Backend:    backend.New(apiSrv.URL, 5*time.Second),
		Sessions:   sessionstore.NewSQLiteStore(storage.NewTimedDB(db, collector)),
		Confirms:   orchestrators.NewConfirmationStore(5 * time.Minute),
		SessionTTL: 24 * time.Hour,
	}, collector)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		API:     api,
		Server:  srv,
		PW:      pw,
		Browser: browser,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login fills the login form and waits for the post-login redirect.
func (a *testApp) login(t *testing.T, page playwright.Page, email, password, landing string) {
	t.Helper()
	_, err := page.Goto(a.BaseURL + "/login")
	if err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=Email]").Fill(email); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill(password); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+landing, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to %s: %v", landing, err)
	}
}

func (a *testApp) loginMember(t *testing.T, page playwright.Page) {
	a.login(t, page, "sari@kampus.ac.id", "SariPass123!", "/profile")
}

func (a *testApp) loginAdmin(t *testing.T, page playwright.Page) {
	a.login(t, page, "admin@kampus.ac.id", "AdminPass123!", "/admin/pendaftar")
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
