package vote

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/khatira-board-backend/internal/identity"
	"github.com/SlpAus/khatira-board-backend/internal/phase"
	"github.com/SlpAus/khatira-board-backend/internal/testutil"
)

func TestSubmitVoteHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, id := setupVoteDB(t, phase.Voting)
	h := NewHandler(NewService(db), identity.Cookies{})

	r := gin.New()
	r.POST("/api/vote", identity.LoadVoterMiddleware(), h.SubmitVote)

	vote := func(body interface{}, voter string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/api/vote", body, nil)
		if voter != "" {
			testutil.WithCookie(req, identity.CookieName, voter)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first vote sets identity cookie", func(t *testing.T) {
		w := vote(map[string]interface{}{"khatira_id": id, "vote_type": "up"}, "")
		testutil.AssertStatus(t, w, http.StatusOK)

		cookie := testutil.FindCookie(w, identity.CookieName)
		if cookie == nil || cookie.Value == "" {
			t.Fatal("expected user_id cookie")
		}
		if cookie.MaxAge != identity.CookieMaxAge {
			t.Errorf("expected 30 day cookie, got max age %d", cookie.MaxAge)
		}

		// 用下发的cookie再投一次是重复投票
		w = vote(map[string]interface{}{"khatira_id": id, "vote_type": "down"}, cookie.Value)
		testutil.AssertStatus(t, w, http.StatusForbidden)
		var resp map[string]string
		testutil.AssertJSON(t, w, &resp)
		if resp["error"] != "You have already voted on this khatira" {
			t.Errorf("unexpected error: %q", resp["error"])
		}
	})

	t.Run("existing cookie is refreshed", func(t *testing.T) {
		w := vote(map[string]interface{}{"khatira_id": id, "vote_type": "down"}, "browser-7")
		testutil.AssertStatus(t, w, http.StatusOK)
		if c := testutil.FindCookie(w, identity.CookieName); c == nil || c.Value != "browser-7" {
			t.Errorf("expected cookie refreshed with the same identity, got %+v", c)
		}
	})

	t.Run("invalid vote type", func(t *testing.T) {
		w := vote(map[string]interface{}{"khatira_id": id, "vote_type": "meh"}, "v9")
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown entry", func(t *testing.T) {
		w := vote(map[string]interface{}{"khatira_id": id + 50, "vote_type": "up"}, "v9")
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("wrong phase", func(t *testing.T) {
		if err := phase.Set(db, phase.Reveal); err != nil {
			t.Fatal(err)
		}
		w := vote(map[string]interface{}{"khatira_id": id, "vote_type": "up"}, "v10")
		testutil.AssertStatus(t, w, http.StatusForbidden)
		var resp map[string]string
		testutil.AssertJSON(t, w, &resp)
		if resp["error"] != "Voting not allowed in current phase" {
			t.Errorf("unexpected error: %q", resp["error"])
		}
	})
}

func TestSubmitVoteHandler_MalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	bodies := map[string]interface{}{
		"string id":     map[string]interface{}{"khatira_id": "abc", "vote_type": "up"},
		"negative id":   map[string]interface{}{"khatira_id": -1, "vote_type": "up"},
		"numeric type":  map[string]interface{}{"khatira_id": 1, "vote_type": 7},
		"not an object": "up",
	}

	cases := []struct {
		phase phase.Phase
		want  int
	}{
		{phase.Collection, http.StatusForbidden},
		{phase.Reveal, http.StatusForbidden},
		{phase.Voting, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("phase %d", tc.phase), func(t *testing.T) {
			db, id := setupVoteDB(t, tc.phase)
			h := NewHandler(NewService(db), identity.Cookies{})
			r := gin.New()
			r.POST("/api/vote", identity.LoadVoterMiddleware(), h.SubmitVote)

			for name, body := range bodies {
				req := testutil.MakeRequest("POST", "/api/vote", body, nil)
				testutil.WithCookie(req, identity.CookieName, "v1")
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				if w.Code != tc.want {
					t.Errorf("%s: expected status %d, got %d: %s", name, tc.want, w.Code, w.Body.String())
				}
				if tc.want == http.StatusForbidden {
					var resp map[string]string
					testutil.AssertJSON(t, w, &resp)
					if resp["error"] != "Voting not allowed in current phase" {
						t.Errorf("%s: unexpected error: %q", name, resp["error"])
					}
				}
			}

			if up, down := counters(t, db, id); up != 0 || down != 0 {
				t.Errorf("counters changed to %d/%d", up, down)
			}
		})
	}
}
