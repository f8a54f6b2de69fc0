package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-web/internal/constants"
	"github.com/yukikurage/todo-web/internal/router"
	"github.com/yukikurage/todo-web/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// testApp is the full router over an in-memory database, served on a local
// listener so cookies and redirects behave like in a browser.
type testApp struct {
	t      *testing.T
	db     *gorm.DB
	server *httptest.Server
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)

	// the store defaults to Secure cookies, which a jar drops over plain http
	store := cookie.NewStore([]byte("test-session-secret"))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600, HttpOnly: true})

	r, err := router.Setup(router.Deps{
		DB:           db,
		Logger:       zerolog.Nop(),
		SessionStore: store,
		HashCost:     bcrypt.MinCost,
	})
	require.NoError(t, err)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return &testApp{t: t, db: db, server: server}
}

// browser is one client with its own cookie jar. It does not follow
// redirects so tests can assert on them.
type browser struct {
	app    *testApp
	jar    http.CookieJar
	client *http.Client
}

func (a *testApp) browser() *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(a.t, err)
	return &browser{
		app: a,
		jar: jar,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// response is a fully read HTTP response.
type response struct {
	Code     int
	Header   http.Header
	Body     string
	Location string
}

func (b *browser) do(req *http.Request) response {
	b.app.t.Helper()
	res, err := b.client.Do(req)
	require.NoError(b.app.t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(b.app.t, err)

	return response{
		Code:     res.StatusCode,
		Header:   res.Header,
		Body:     string(body),
		Location: res.Header.Get("Location"),
	}
}

func (b *browser) get(path string) response {
	b.app.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.app.server.URL+path, nil)
	require.NoError(b.app.t, err)
	req.Header.Set("Accept", "text/html")
	return b.do(req)
}

func (b *browser) getJSON(path string, out interface{}) response {
	b.app.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.app.server.URL+path, nil)
	require.NoError(b.app.t, err)
	req.Header.Set("Accept", "application/json")
	res := b.do(req)
	if out != nil && res.Code == http.StatusOK {
		require.NoError(b.app.t, json.Unmarshal([]byte(res.Body), out))
	}
	return res
}

func (b *browser) post(path string, form url.Values) response {
	b.app.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.app.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(b.app.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	return b.do(req)
}

// login creates the user and signs this browser in.
func (b *browser) login(username string) uint64 {
	b.app.t.Helper()
	user := testutil.CreateUser(b.app.t, b.app.db, username, "password")

	res := b.post("/login", url.Values{"username": {username}, "password": {"password"}})
	require.Equal(b.app.t, http.StatusFound, res.Code)
	require.Equal(b.app.t, "/tasks", res.Location)
	require.True(b.app.t, b.hasSession(), "session cookie was not kept")
	return user.ID
}

// hasSession reports whether the jar holds the session cookie for the server.
func (b *browser) hasSession() bool {
	u, err := url.Parse(b.app.server.URL)
	require.NoError(b.app.t, err)
	for _, c := range b.jar.Cookies(u) {
		if c.Name == constants.SessionCookieName {
			return true
		}
	}
	return false
}

func taskForm(title, dueDate string) url.Values {
	return url.Values{
		"title":    {title},
		"dueDate":  {dueDate},
		"status":   {"IN_PROGRESS"},
		"priority": {"HIGH"},
		"category": {"WORK"},
	}
}
