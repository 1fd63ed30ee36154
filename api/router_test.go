package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/khatira-board-backend/internal/admin"
	"github.com/SlpAus/khatira-board-backend/internal/board"
	"github.com/SlpAus/khatira-board-backend/internal/identity"
	"github.com/SlpAus/khatira-board-backend/internal/khatira"
	"github.com/SlpAus/khatira-board-backend/internal/phase"
	"github.com/SlpAus/khatira-board-backend/internal/platform/config"
	"github.com/SlpAus/khatira-board-backend/internal/platform/health"
	"github.com/SlpAus/khatira-board-backend/internal/platform/startup"
	"github.com/SlpAus/khatira-board-backend/internal/testutil"
	"github.com/SlpAus/khatira-board-backend/internal/vote"
	"github.com/SlpAus/khatira-board-backend/pkg/token"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	if err := startup.InitializeApplication(db); err != nil {
		t.Fatal(err)
	}

	issuer, err := token.NewIssuer("router-test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	cookies := identity.Cookies{}
	phases := phase.NewController(db)
	revocations := admin.NewRevocationStore(nil)

	r := gin.New()
	SetupRoutes(r, Handlers{
		Khatira: khatira.NewHandler(khatira.NewService(db)),
		Vote:    vote.NewHandler(vote.NewService(db), cookies),
		Board:   board.NewHandler(board.NewProjector(db), phases),
		Admin: admin.NewHandler(
			admin.NewAuthenticator(config.AdminConfig{Password: "valar morghulis"}),
			issuer, revocations, admin.NewService(db), phases, false,
		),
		Health:      health.NewChecker(db, nil),
		Cookies:     cookies,
		Issuer:      issuer,
		Revocations: revocations,
	})
	return r
}

type client struct {
	t       *testing.T
	r       *gin.Engine
	voter   string
	adminTK string
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	headers := map[string]string{}
	if c.adminTK != "" {
		headers["Authorization"] = "Bearer " + c.adminTK
	}
	req := testutil.MakeRequest(method, path, body, headers)
	if c.voter != "" {
		testutil.WithCookie(req, identity.CookieName, c.voter)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	if cookie := testutil.FindCookie(w, identity.CookieName); cookie != nil {
		c.voter = cookie.Value
	}
	return w
}

type listResponse struct {
	Khawatir []map[string]json.RawMessage `json:"khawatir"`
	Phase    int                         `json:"phase"`
}

func TestBoardLifecycle(t *testing.T) {
	r := setupRouter(t)
	voter := &client{t: t, r: r}
	adm := &client{t: t, r: r}

	// 未登录不能访问管理接口
	testutil.AssertStatus(t, adm.do("POST", "/api/admin/phase", map[string]int{"phase": 2}), http.StatusUnauthorized)

	w := adm.do("POST", "/api/admin/login", map[string]string{"password": "valar morghulis"})
	testutil.AssertStatus(t, w, http.StatusOK)
	var loginResp map[string]string
	testutil.AssertJSON(t, w, &loginResp)
	adm.adminTK = loginResp["token"]

	// 阶段1: 投稿，读取为空
	w = voter.do("POST", "/api/submit", map[string]string{"name": "Alice", "content": "I worry about X"})
	testutil.AssertStatus(t, w, http.StatusCreated)
	var submitResp struct {
		ID uint `json:"id"`
	}
	testutil.AssertJSON(t, w, &submitResp)
	testutil.AssertStatus(t, voter.do("POST", "/api/submit", map[string]string{"name": "Bob", "content": "Y"}), http.StatusCreated)

	var list listResponse
	testutil.AssertJSON(t, voter.do("GET", "/api/khawatir", nil), &list)
	if list.Phase != 1 || len(list.Khawatir) != 0 {
		t.Fatalf("expected empty phase 1 list, got %+v", list)
	}
	if voter.voter == "" {
		t.Fatal("expected the read to hand out a voter cookie")
	}
	testutil.AssertStatus(t, voter.do("POST", "/api/vote", map[string]interface{}{"khatira_id": submitResp.ID, "vote_type": "up"}), http.StatusForbidden)

	// 阶段2: 匿名投票
	testutil.AssertStatus(t, adm.do("POST", "/api/admin/phase", map[string]int{"phase": 2}), http.StatusOK)
	testutil.AssertStatus(t, voter.do("POST", "/api/vote", map[string]interface{}{"khatira_id": submitResp.ID, "vote_type": "up"}), http.StatusOK)
	testutil.AssertStatus(t, voter.do("POST", "/api/vote", map[string]interface{}{"khatira_id": submitResp.ID, "vote_type": "up"}), http.StatusForbidden)

	list = listResponse{}
	testutil.AssertJSON(t, voter.do("GET", "/api/khawatir", nil), &list)
	if len(list.Khawatir) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list.Khawatir))
	}
	for _, e := range list.Khawatir {
		if _, ok := e["author"]; ok {
			t.Errorf("author leaked in voting phase: %v", e)
		}
	}
	if string(list.Khawatir[0]["user_vote"]) != `"up"` || string(list.Khawatir[1]["user_vote"]) != "null" {
		t.Errorf("unexpected user votes: %s / %s", list.Khawatir[0]["user_vote"], list.Khawatir[1]["user_vote"])
	}

	// 阶段3: 揭晓
	testutil.AssertStatus(t, adm.do("POST", "/api/admin/phase", map[string]int{"phase": 3}), http.StatusOK)
	list = listResponse{}
	testutil.AssertJSON(t, voter.do("GET", "/api/khawatir", nil), &list)
	if string(list.Khawatir[0]["author"]) != `"Alice"` || string(list.Khawatir[0]["upvotes"]) != "1" {
		t.Errorf("expected Alice ranked first with one upvote, got %v", list.Khawatir[0])
	}

	var phaseResp map[string]int
	testutil.AssertJSON(t, adm.do("GET", "/api/admin/phase", nil), &phaseResp)
	if phaseResp["current_phase"] != 3 {
		t.Errorf("expected current_phase 3, got %v", phaseResp)
	}

	// 管理员删除与清空
	path := "/api/admin/khawatir/" + strconv.FormatUint(uint64(submitResp.ID), 10)
	testutil.AssertStatus(t, adm.do("DELETE", path, nil), http.StatusOK)
	testutil.AssertStatus(t, adm.do("DELETE", path, nil), http.StatusNotFound)

	var adminList listResponse
	testutil.AssertJSON(t, adm.do("GET", "/api/admin/khawatir", nil), &adminList)
	if len(adminList.Khawatir) != 1 || string(adminList.Khawatir[0]["author"]) != `"Bob"` {
		t.Errorf("unexpected admin list after delete: %v", adminList.Khawatir)
	}

	testutil.AssertStatus(t, adm.do("DELETE", "/api/admin/khawatir/clear-all", nil), http.StatusOK)
	adminList = listResponse{}
	testutil.AssertJSON(t, adm.do("GET", "/api/admin/khawatir", nil), &adminList)
	if len(adminList.Khawatir) != 0 {
		t.Errorf("expected empty admin list after clear-all, got %d", len(adminList.Khawatir))
	}
	testutil.AssertJSON(t, adm.do("GET", "/api/admin/phase", nil), &phaseResp)
	if phaseResp["current_phase"] != 3 {
		t.Errorf("clear-all changed the phase: %v", phaseResp)
	}

	// 注销后令牌失效
	testutil.AssertStatus(t, adm.do("POST", "/api/admin/logout", nil), http.StatusOK)
	testutil.AssertStatus(t, adm.do("GET", "/api/admin/phase", nil), http.StatusUnauthorized)
}

func TestHealthRoute(t *testing.T) {
	r := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, testutil.MakeRequest("GET", "/api/health", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}
