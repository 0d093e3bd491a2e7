package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"facturo/internal/models/request_models"
	resp "facturo/internal/models/response_models"
	"facturo/internal/services"
	"facturo/pkg/i18n"
	"facturo/pkg/middleware"
	"facturo/pkg/utils"
	"facturo/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.Setup(); err != nil {
		panic(err)
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Key     string          `json:"key"`
	Data    json.RawMessage `json:"data"`
}

// newEngine mounts routes under /:locale with a fixed caller in place of the
// JWT middleware.
func newEngine(scope utils.Scope, mount func(g *gin.RouterGroup)) *gin.Engine {
	r := gin.New()
	g := r.Group("/:locale", middleware.Locale(language.French), func(c *gin.Context) {
		c.Set(middleware.CtxAccountID, scope.AccountID)
		c.Set(middleware.CtxIsAdmin, scope.Admin)
		c.Next()
	})
	mount(g)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

// ---------- stubs ----------

type stubClients struct {
	services.ClientServiceInterface
	gotScope  utils.Scope
	gotParams utils.ListParams
}

func (s *stubClients) Get(_ context.Context, scope utils.Scope, id uint) (*resp.ClientResponse, error) {
	s.gotScope = scope
	if id != 1 {
		return nil, utils.ErrNotFound
	}
	return &resp.ClientResponse{ID: 1, AccountID: scope.AccountID, FirstName: "Jean"}, nil
}

func (s *stubClients) List(_ context.Context, scope utils.Scope, params utils.ListParams) (*utils.Page[resp.ClientResponse], error) {
	s.gotScope, s.gotParams = scope, params
	page := utils.NewPage([]resp.ClientResponse{{ID: 1}}, params, 1)
	return &page, nil
}

func (s *stubClients) Create(_ context.Context, scope utils.Scope, r request_models.ClientRequest) (*resp.ClientResponse, error) {
	return &resp.ClientResponse{ID: 9, AccountID: scope.AccountID, FirstName: r.FirstName, LastName: r.LastName}, nil
}

func (s *stubClients) Delete(context.Context, utils.Scope, uint) error {
	return fmt.Errorf("delete client: %w", utils.ErrDatabaseError)
}

type stubAuth struct {
	services.AuthServiceInterface
	forgotFor string
}

func (s *stubAuth) Login(context.Context, request_models.LoginRequest) (*resp.AuthResponse, error) {
	return nil, utils.ErrInvalidCredentials
}

func (s *stubAuth) ForgotPassword(_ context.Context, email string) error {
	s.forgotFor = email
	return nil
}

func (s *stubAuth) VerifyResetToken(_ context.Context, token string) error {
	if token != "good" {
		return utils.ErrInvalidResetToken
	}
	return nil
}

func (s *stubAuth) EmailExists(_ context.Context, email string) (bool, error) {
	return email == "ada@example.com", nil
}

type stubQuotes struct {
	services.QuoteServiceInterface
}

func (s *stubQuotes) ConvertToInvoice(_ context.Context, _ utils.Scope, id uint) (*resp.InvoiceResponse, error) {
	if id == 2 {
		return nil, utils.NewValidationError("status", i18n.KeyQuoteNotAccepted)
	}
	qid := id
	return &resp.InvoiceResponse{ID: 30, QuoteID: &qid, Status: "draft"}, nil
}

type stubInvoices struct {
	services.InvoiceServiceInterface
	gotParams utils.ListParams
}

func (s *stubInvoices) List(_ context.Context, _ utils.Scope, params utils.ListParams) (*utils.Page[resp.InvoiceResponse], error) {
	s.gotParams = params
	page := utils.NewPage[resp.InvoiceResponse](nil, params, 0)
	return &page, nil
}

type stubDashboard struct {
	gotAccount uint
	gotYear    int
}

func (s *stubDashboard) BuildDashboard(_ context.Context, accountID uint, year int) (*resp.DashboardReport, error) {
	s.gotAccount, s.gotYear = accountID, year
	return &resp.DashboardReport{Year: year, KPIs: resp.KPIBlock{NetRevenue: decimal.NewFromInt(10)}}, nil
}

// ---------- tests ----------

func TestClientController(t *testing.T) {
	svc := &stubClients{}
	ctl := NewClientController(svc)
	r := newEngine(utils.Scope{AccountID: 4}, func(g *gin.RouterGroup) {
		g.GET("/clients", ctl.List)
		g.GET("/clients/:id", ctl.Get)
		g.POST("/clients", ctl.Create)
		g.DELETE("/clients/:id", ctl.Delete)
	})

	t.Run("get", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/en/clients/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, i18n.KeyFetched, env.Key)
		assert.Equal(t, uint(4), svc.gotScope.AccountID)
	})

	t.Run("not found is localized", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/fr/clients/2", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, i18n.KeyNotFound, env.Key)
		assert.Equal(t, i18n.T(language.French, i18n.KeyNotFound), env.Message)
	})

	t.Run("bad id", func(t *testing.T) {
		w, _ := do(t, r, http.MethodGet, "/en/clients/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list params", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/en/clients?q=dup&page=2&page_size=5&sort=last_name&order=desc", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "dup", svc.gotParams.Filters["q"])
		assert.Equal(t, 2, svc.gotParams.Page)
		assert.Equal(t, 5, svc.gotParams.PageSize)
		assert.True(t, svc.gotParams.Desc)

		var page utils.Page[resp.ClientResponse]
		require.NoError(t, json.Unmarshal(env.Data, &page))
		assert.EqualValues(t, 1, page.Total)
	})

	t.Run("page size out of range", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/en/clients?page_size=500", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, i18n.KeyInvalidPageSize, env.Key)
	})

	t.Run("create validation", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/en/clients", `{"first_name":"Jean","email":"nope"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var fields map[string][]string
		require.NoError(t, json.Unmarshal(env.Data, &fields))
		assert.Contains(t, fields, "last_name")
		assert.Contains(t, fields, "email")
	})

	t.Run("malformed body", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/en/clients", `{"first_name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, i18n.KeyBadRequest, env.Key)
	})

	t.Run("create", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/en/clients", `{"first_name":"Jean","last_name":"Dupont"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		var out resp.ClientResponse
		require.NoError(t, json.Unmarshal(env.Data, &out))
		assert.Equal(t, uint(4), out.AccountID)
	})

	t.Run("database error is hidden", func(t *testing.T) {
		w, env := do(t, r, http.MethodDelete, "/en/clients/1", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, i18n.KeyInternal, env.Key)
		assert.NotContains(t, env.Message, "delete client")
	})
}

func TestAuthController(t *testing.T) {
	svc := &stubAuth{}
	ctl := NewAuthController(svc)
	r := newEngine(utils.Scope{}, func(g *gin.RouterGroup) {
		g.POST("/auth/login", ctl.Login)
		g.POST("/auth/forgot-password", ctl.ForgotPassword)
		g.POST("/auth/verify-reset-token", ctl.VerifyResetToken)
		g.GET("/auth/check-email", ctl.CheckEmail)
	})

	w, env := do(t, r, http.MethodPost, "/en/auth/login", `{"email":"ada@example.com","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, i18n.KeyInvalidCredentials, env.Key)

	w, env = do(t, r, http.MethodPost, "/en/auth/forgot-password", `{"email":"ghost@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, i18n.KeyResetLinkSent, env.Key)
	assert.Equal(t, "ghost@example.com", svc.forgotFor)

	w, env = do(t, r, http.MethodPost, "/en/auth/verify-reset-token", `{"token":"stale"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, i18n.KeyResetTokenInvalid, env.Key)

	w, env = do(t, r, http.MethodPost, "/en/auth/verify-reset-token", `{"token":"good"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":true}`, string(env.Data))

	w, env = do(t, r, http.MethodGet, "/en/auth/check-email?email=ada@example.com", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exists":true}`, string(env.Data))

	w, _ = do(t, r, http.MethodGet, "/en/auth/check-email", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestQuoteConvert(t *testing.T) {
	ctl := NewQuoteController(&stubQuotes{})
	r := newEngine(utils.Scope{AccountID: 1}, func(g *gin.RouterGroup) {
		g.POST("/quotes/:id/invoice", ctl.ConvertToInvoice)
	})

	w, env := do(t, r, http.MethodPost, "/en/quotes/5/invoice", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, i18n.KeyQuoteConverted, env.Key)

	w, env = do(t, r, http.MethodPost, "/en/quotes/2/invoice", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var fields map[string][]string
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.Equal(t, []string{i18n.T(language.English, i18n.KeyQuoteNotAccepted)}, fields["status"])
}

func TestInvoiceListFilters(t *testing.T) {
	svc := &stubInvoices{}
	ctl := NewInvoiceController(svc)
	r := newEngine(utils.Scope{AccountID: 1}, func(g *gin.RouterGroup) {
		g.GET("/invoices", ctl.List)
	})

	w, env := do(t, r, http.MethodGet, "/fr/invoices?overdue=true&status=sent&project_id=3&unknown=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"overdue": "true", "status": "sent", "project_id": "3"}, svc.gotParams.Filters)
	assert.Equal(t, utils.DefaultPageSize, svc.gotParams.PageSize)
	assert.JSONEq(t, `{"items":[],"page":1,"page_size":20,"total":0,"total_pages":0}`, string(env.Data))
}

func TestInvoiceListRejectsNonNumericProject(t *testing.T) {
	svc := &stubInvoices{}
	ctl := NewInvoiceController(svc)
	r := newEngine(utils.Scope{AccountID: 1}, func(g *gin.RouterGroup) {
		g.GET("/invoices", ctl.List)
	})

	w, env := do(t, r, http.MethodGet, "/en/invoices?project_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, i18n.KeyBadRequest, env.Key)
	assert.Zero(t, svc.gotParams.Page, "service must not be reached")
}

func TestDashboardYear(t *testing.T) {
	svc := &stubDashboard{}
	ctl := NewDashboardController(svc)
	r := newEngine(utils.Scope{AccountID: 8}, func(g *gin.RouterGroup) {
		g.GET("/dashboard", ctl.GetDashboard)
	})

	w, _ := do(t, r, http.MethodGet, "/en/dashboard?year=2023", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(8), svc.gotAccount)
	assert.Equal(t, 2023, svc.gotYear)

	w, _ = do(t, r, http.MethodGet, "/en/dashboard", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, svc.gotYear)

	w, _ = do(t, r, http.MethodGet, "/en/dashboard?year=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
