package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/listings", nil)
	return c, w
}

func TestNoticePopOnce(t *testing.T) {
	store := NewStore("test-secret", false)
	c, _ := newTestContext(t)

	store.Add(c, NoticeSuccess, "Successfully made a new listing!")
	store.Add(c, NoticeError, "Something else")

	notices := store.Pop(c)
	if len(notices[NoticeSuccess]) != 1 || notices[NoticeSuccess][0] != "Successfully made a new listing!" {
		t.Errorf("success notices = %v", notices[NoticeSuccess])
	}
	if len(notices[NoticeError]) != 1 {
		t.Errorf("error notices = %v", notices[NoticeError])
	}

	if again := store.Pop(c); again != nil {
		t.Errorf("second Pop = %v, want nil", again)
	}
}

func TestNoticesAccumulate(t *testing.T) {
	store := NewStore("test-secret", false)
	c, _ := newTestContext(t)

	store.Add(c, NoticeSuccess, "first")
	store.Add(c, NoticeSuccess, "second")

	notices := store.Pop(c)
	if len(notices[NoticeSuccess]) != 2 {
		t.Fatalf("success notices = %v, want both", notices[NoticeSuccess])
	}
}

func TestPopEmptyIsNil(t *testing.T) {
	store := NewStore("test-secret", false)
	c, _ := newTestContext(t)

	if notices := store.Pop(c); notices != nil {
		t.Errorf("Pop = %v, want nil", notices)
	}
}

func TestNoticeSurvivesRedirect(t *testing.T) {
	store := NewStore("test-secret", false)

	// First request flashes a notice, as a redirecting handler would.
	c1, w1 := newTestContext(t)
	store.Add(c1, NoticeSuccess, "Welcome back!")

	// The follow-up request carries the session cookie.
	c2, _ := newTestContext(t)
	for _, cookie := range w1.Result().Cookies() {
		c2.Request.AddCookie(cookie)
	}

	notices := store.Pop(c2)
	if len(notices[NoticeSuccess]) != 1 || notices[NoticeSuccess][0] != "Welcome back!" {
		t.Errorf("notices after redirect = %v", notices)
	}
}

func TestRedirectURLPopOnce(t *testing.T) {
	store := NewStore("test-secret", false)
	c, _ := newTestContext(t)

	store.SaveRedirectURL(c, "/listings/new")

	if got := store.PeekRedirectURL(c); got != "/listings/new" {
		t.Errorf("Peek = %q", got)
	}
	// Peek does not clear.
	if got := store.PopRedirectURL(c); got != "/listings/new" {
		t.Errorf("Pop = %q", got)
	}
	if got := store.PopRedirectURL(c); got != "" {
		t.Errorf("second Pop = %q, want empty", got)
	}
}
