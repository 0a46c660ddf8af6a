package web

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/collabhub/admin-console/audit"
	"github.com/collabhub/admin-console/backend"
	"github.com/collabhub/admin-console/listing"
	qt "github.com/frankban/quicktest"
)

const (
	testToken    = "tok-1"
	testPassword = "secret"
)

const creatorsJSON = `{"data": [
	{"_id": "c1", "fullName": "Alice", "email": "alice@example.com", "isAccountVerified": false,
	 "requestToDeleteAccount": true,
	 "profile": {"_id": "p1", "fullName": "Alice", "socialVideos": [
		{"_id": "v1", "title": "Launch reel", "videoLink": "https://instagram.com/p/abc", "isPublic": "pending"}]}},
	{"_id": "c2", "fullName": "Bob", "email": "bob@example.com", "isAccountVerified": true}
], "otherInfo": {"page": 1, "totalPages": 1, "totalCount": 2, "cities": ["Lagos"]}}`

const brandsJSON = `{"data": [
	{"_id": "b1", "fullName": "Carol", "companyName": "Acme", "companyEmail": "acme@example.com"}
]}`

const collabsJSON = `{"data": [
	{"_id": "col1", "campaignId": {"_id": "cmp1", "campaignName": "Summer"}, "status": "Active",
	 "paymentStatus": "Pending", "amount": 50, "createdAt": "2024-03-01T10:00:00Z"}
]}`

// fakeBackend serves the platform backend endpoints used by the console.
type fakeBackend struct {
	mu       sync.Mutex
	calls    []string
	failures map[string]int
}

func (fb *fakeBackend) fail(path string, status int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failures[path] = status
}

func (fb *fakeBackend) called(call string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, c := range fb.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (fb *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/api")
	fb.mu.Lock()
	fb.calls = append(fb.calls, r.Method+" "+path)
	status := fb.failures[path]
	fb.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"message": "backend says %d"}`, status)
		return
	}
	switch path {
	case backend.LoginEndpoint:
		if !strings.Contains(readBody(r), `"password":"`+testPassword+`"`) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Invalid credentials"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "access_token_admin", Value: testToken, Path: "/"})
		_, _ = w.Write([]byte(`{"message": "ok", "data": {"_id": "a1", "fullName": "Jane Admin", "companyEmail": "jane@example.com"}}`))
		return
	case backend.RegisterEndpoint:
		_, _ = w.Write([]byte(`{"message": "created"}`))
		return
	}
	if c, err := r.Cookie("access_token_admin"); err != nil || c.Value != testToken {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "not signed in"}`))
		return
	}
	switch path {
	case backend.CreatorsEndpoint:
		_, _ = w.Write([]byte(creatorsJSON))
	case backend.BrandsEndpoint:
		_, _ = w.Write([]byte(brandsJSON))
	case backend.CollaborationsEndpoint:
		_, _ = w.Write([]byte(collabsJSON))
	case backend.LogoutEndpoint:
		http.SetCookie(w, &http.Cookie{Name: "access_token_admin", Value: "", Path: "/", MaxAge: -1})
		_, _ = w.Write([]byte(`{"message": "bye"}`))
	default:
		_, _ = w.Write([]byte(`{"message": "done"}`))
	}
}

func readBody(r *http.Request) string {
	b, _ := io.ReadAll(r.Body)
	return string(b)
}

type console struct {
	c        *qt.C
	url      string
	client   *http.Client
	backend  *fakeBackend
	registry *listing.Registry
	audit    *audit.Recorder

	formToken string
}

func newConsole(c *qt.C) *console {
	fb := &fakeBackend{failures: map[string]int{}}
	bsrv := httptest.NewServer(fb)
	c.Cleanup(bsrv.Close)

	registry := listing.NewRegistry(nil)
	recorder := &audit.Recorder{}
	s, err := New(&Config{
		Backend:    backend.New(bsrv.URL+"/v1/api", backend.WithUnauthorizedHook(UnauthorizedHook)),
		Registry:   registry,
		Audit:      recorder,
		CSRFSecret: "test secret",
	})
	c.Assert(err, qt.IsNil)
	srv := httptest.NewServer(s.Router())
	c.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	c.Assert(err, qt.IsNil)
	return &console{
		c:        c,
		url:      srv.URL,
		client:   &http.Client{Jar: jar},
		backend:  fb,
		registry: registry,
		audit:    recorder,
	}
}

var csrfFieldRegex = regexp.MustCompile(`name="gorilla.csrf.Token" value="([^"]+)"`)

// get fetches path following redirects and returns the final response
// and its body.
func (cs *console) get(path string) (*http.Response, string) {
	resp, err := cs.client.Get(cs.url + path)
	cs.c.Assert(err, qt.IsNil)
	return resp, cs.read(resp)
}

// read consumes the body of resp and keeps the form token of the page.
func (cs *console) read(resp *http.Response) string {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	cs.c.Assert(err, qt.IsNil)
	if m := csrfFieldRegex.FindStringSubmatch(string(body)); len(m) == 2 {
		cs.formToken = m[1]
	}
	return string(body)
}

// post submits a form with the token of the last page seen. Without one
// the login page is loaded first.
func (cs *console) post(path string, values url.Values) (*http.Response, string) {
	if cs.formToken == "" {
		cs.get("/login")
	}
	cs.c.Assert(cs.formToken, qt.Not(qt.Equals), "")
	if values == nil {
		values = url.Values{}
	}
	values.Set("gorilla.csrf.Token", cs.formToken)
	resp, err := cs.client.PostForm(cs.url+path, values)
	cs.c.Assert(err, qt.IsNil)
	return resp, cs.read(resp)
}

func (cs *console) login() string {
	resp, body := cs.post("/login", url.Values{"email": {"jane@example.com"}, "password": {testPassword}})
	cs.c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	cs.c.Assert(resp.Request.URL.Path, qt.Equals, "/dashboard")
	return body
}

func (cs *console) sessionCookie() string {
	u, _ := url.Parse(cs.url)
	for _, ck := range cs.client.Jar.Cookies(u) {
		if ck.Name == "access_token_admin" {
			return ck.Value
		}
	}
	return ""
}

func TestPing(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)
	resp, body := cs.get("/ping")
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(body, qt.Equals, ".")
}

func TestLogin(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)

	resp, body := cs.post("/login", url.Values{"email": {"jane@example.com"}, "password": {"wrong"}})
	c.Assert(resp.StatusCode, qt.Equals, http.StatusUnauthorized)
	c.Assert(body, qt.Contains, "Invalid credentials")
	c.Assert(cs.sessionCookie(), qt.Equals, "")

	resp, body = cs.post("/login", url.Values{"email": {"not an email"}, "password": {testPassword}})
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
	c.Assert(body, qt.Contains, "Invalid email format")

	body = cs.login()
	c.Assert(cs.sessionCookie(), qt.Equals, testToken)
	c.Assert(body, qt.Contains, "Jane Admin")
	c.Assert(body, qt.Contains, "Login successful!")
	c.Assert(body, qt.Contains, "Creators List")
	c.Assert(body, qt.Contains, "Alice")
	c.Assert(body, qt.Contains, "Lagos")
	c.Assert(cs.registry.Len(), qt.Equals, 1)

	// signed in admins are kept away from the auth pages
	resp, _ = cs.get("/login")
	c.Assert(resp.Request.URL.Path, qt.Equals, "/dashboard")
}

func TestGuard(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)

	resp, body := cs.get("/dashboard?tab=brands")
	c.Assert(resp.Request.URL.Path, qt.Equals, "/login")
	c.Assert(body, qt.Contains, "Admin Login")
	c.Assert(cs.backend.called("GET "+backend.BrandsEndpoint), qt.Equals, 0)

	resp, _ = cs.get("/")
	c.Assert(resp.Request.URL.Path, qt.Equals, "/")
}

func TestSignup(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)

	resp, body := cs.post("/signup", url.Values{"fullName": {"Jane"}, "email": {"nope"}, "password": {"pw"}})
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
	c.Assert(body, qt.Contains, "Invalid email format")
	c.Assert(cs.backend.called("POST "+backend.RegisterEndpoint), qt.Equals, 0)

	resp, body = cs.post("/signup", url.Values{"fullName": {"Jane"}, "email": {"jane@example.com"}, "password": {"pw"}})
	c.Assert(resp.Request.URL.Path, qt.Equals, "/login")
	c.Assert(body, qt.Contains, "Registration successful!")
	c.Assert(cs.backend.called("POST "+backend.RegisterEndpoint), qt.Equals, 1)

	// the register page is an alias of the signup page
	_, body = cs.get("/register")
	c.Assert(body, qt.Contains, "Create an Account")
}

func TestTabsAndFilters(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)
	cs.login()

	_, body := cs.get("/dashboard?tab=brands&companyName=Acme")
	c.Assert(body, qt.Contains, "Brands List")
	c.Assert(body, qt.Contains, "acme@example.com")
	c.Assert(body, qt.Contains, `value="Acme"`)

	_, body = cs.get("/dashboard?tab=collaborations")
	c.Assert(body, qt.Contains, "Collaborations List")
	c.Assert(body, qt.Contains, "Payment Status")
	c.Assert(body, qt.Contains, "Mark Done")

	resp, _ := cs.get("/dashboard?tab=unknown")
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
}

func TestDeleteAccountAsksConfirmation(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)
	cs.login()
	deleteCall := "DELETE " + fmt.Sprintf(backend.DeleteAccountEndpoint, "c1", "creator")

	resp, body := cs.post("/dashboard/accounts/creator/c1/delete", nil)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Assert(body, qt.Contains, listing.DeletePrompt)
	c.Assert(cs.backend.called(deleteCall), qt.Equals, 0)

	resp, body = cs.post("/dashboard/accounts/creator/c1/delete", url.Values{"confirm": {"yes"}})
	c.Assert(resp.Request.URL.Path, qt.Equals, "/dashboard")
	c.Assert(body, qt.Contains, "Account deleted successfully.")
	c.Assert(cs.backend.called(deleteCall), qt.Equals, 1)
	c.Assert(cs.audit.Events(), qt.HasLen, 1)
	c.Assert(cs.audit.Events()[0].Action, qt.Equals, audit.ActionDeleteAccount)

	// bob never asked to be deleted
	resp, _ = cs.post("/dashboard/accounts/creator/c2/delete", url.Values{"confirm": {"yes"}})
	c.Assert(resp.StatusCode, qt.Equals, http.StatusConflict)

	resp, _ = cs.post("/dashboard/accounts/admin/c2/delete", nil)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
}

func TestMarkPaymentDone(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)
	cs.login()
	cs.get("/dashboard?tab=collaborations")
	paymentCall := "PUT " + fmt.Sprintf(backend.PaymentDoneEndpoint, "col1")

	_, body := cs.post("/dashboard/collaborations/col1/payment", url.Values{"amount": {"50"}})
	c.Assert(body, qt.Contains, "mark the payment of $50 as done?")
	c.Assert(cs.backend.called(paymentCall), qt.Equals, 0)

	before := cs.backend.called("GET " + backend.CollaborationsEndpoint)
	_, body = cs.post("/dashboard/collaborations/col1/payment", url.Values{"amount": {"50"}, "confirm": {"yes"}})
	c.Assert(body, qt.Contains, "Payment marked as done.")
	c.Assert(cs.backend.called(paymentCall), qt.Equals, 1)
	// one refetch after the mutation and one for the dashboard page
	c.Assert(cs.backend.called("GET "+backend.CollaborationsEndpoint), qt.Equals, before+2)

	resp, _ := cs.post("/dashboard/collaborations/missing/payment", url.Values{"confirm": {"yes"}})
	c.Assert(resp.StatusCode, qt.Equals, http.StatusNotFound)
}

func TestVideoModeration(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)
	cs.login()

	resp, body := cs.get("/dashboard/creators/c1/videos")
	c.Assert(resp.Request.URL.Path, qt.Equals, "/dashboard")
	c.Assert(body, qt.Contains, "Creator Videos")
	c.Assert(body, qt.Contains, "https://www.instagram.com/reel/abc")
	c.Assert(body, qt.Contains, "Approve")

	_, body = cs.post("/dashboard/creators/c1/videos/v1/status", url.Values{"status": {"approved"}})
	c.Assert(body, qt.Contains, "Video approved successfully.")
	c.Assert(cs.backend.called("PUT "+fmt.Sprintf(backend.VideoStatusEndpoint, "p1")), qt.Equals, 1)

	resp, _ = cs.post("/dashboard/creators/c1/videos/v1/status", url.Values{"status": {"pending"}})
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)

	resp, _ = cs.get("/dashboard/creators/c2/profile")
	c.Assert(resp.StatusCode, qt.Equals, http.StatusNotFound)
	resp, _ = cs.get("/dashboard/creators/c1/campaign")
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
}

func TestVerifyAccounts(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)
	cs.login()

	_, body := cs.post("/dashboard/creators/c1/verify", nil)
	c.Assert(body, qt.Contains, "Creator account verified successfully.")
	c.Assert(cs.backend.called("PUT "+fmt.Sprintf(backend.VerifyCreatorEndpoint, "c1")), qt.Equals, 1)

	cs.get("/dashboard?tab=brands")
	_, body = cs.post("/dashboard/brands/verify", url.Values{"email": {"acme@example.com"}})
	c.Assert(body, qt.Contains, "Verification email sent to acme@example.com.")
	c.Assert(cs.backend.called("GET "+fmt.Sprintf(backend.VerifyBrandEndpoint, "acme@example.com")), qt.Equals, 1)

	resp, _ := cs.post("/dashboard/brands/verify", url.Values{"email": {"bad"}})
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
}

func TestForbiddenListingSignsOut(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)
	cs.login()
	cs.backend.fail(backend.BrandsEndpoint, http.StatusForbidden)

	resp, body := cs.get("/dashboard?tab=brands")
	c.Assert(resp.Request.URL.Path, qt.Equals, "/login")
	c.Assert(body, qt.Not(qt.Contains), "backend says 403")
	c.Assert(cs.backend.called("POST "+backend.LogoutEndpoint), qt.Equals, 1)
	c.Assert(cs.sessionCookie(), qt.Equals, "")
	c.Assert(cs.registry.Len(), qt.Equals, 0)
}

func TestUnauthorizedMutationSignsOut(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)
	cs.login()
	cs.backend.fail(fmt.Sprintf(backend.VerifyCreatorEndpoint, "c1"), http.StatusUnauthorized)

	resp, body := cs.post("/dashboard/creators/c1/verify", nil)
	c.Assert(resp.Request.URL.Path, qt.Equals, "/login")
	c.Assert(body, qt.Not(qt.Contains), "backend says 401")
	c.Assert(cs.sessionCookie(), qt.Equals, "")
}

func TestMutationFailureAlert(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)
	cs.login()
	cs.backend.fail(fmt.Sprintf(backend.VerifyCreatorEndpoint, "c1"), http.StatusBadRequest)

	resp, body := cs.post("/dashboard/creators/c1/verify", nil)
	c.Assert(resp.Request.URL.Path, qt.Equals, "/dashboard")
	c.Assert(body, qt.Contains, "backend says 400")
}

func TestLogout(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)
	cs.login()

	resp, body := cs.post("/logout", nil)
	c.Assert(resp.Request.URL.Path, qt.Equals, "/login")
	c.Assert(body, qt.Contains, "Admin Login")
	c.Assert(cs.backend.called("POST "+backend.LogoutEndpoint), qt.Equals, 1)
	c.Assert(cs.sessionCookie(), qt.Equals, "")
	c.Assert(cs.registry.Len(), qt.Equals, 0)
}

func TestFormsRequireToken(t *testing.T) {
	c := qt.New(t)
	cs := newConsole(c)
	cs.get("/login")
	resp, err := cs.client.PostForm(cs.url+"/login", url.Values{"email": {"jane@example.com"}, "password": {testPassword}})
	c.Assert(err, qt.IsNil)
	resp.Body.Close()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusForbidden)
}
