// Package backendtest provides an in-process stand-in for the hosted
// backend: account and session endpoints plus document-collection
// queries against in-memory storage. It exists so the remote client
// can be exercised end-to-end without network access, and doubles as a
// local development backend.
package backendtest

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

type account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
}

// Server implements the backend wire contract. Safe for concurrent
// use; all state is held in memory and discarded with the server.
type Server struct {
	projectID string
	secret    []byte

	// TokenTTL controls the lifetime of issued session tokens. Tests
	// set a negative value to mint already-expired tokens.
	TokenTTL time.Duration

	echo *echo.Echo

	mu          sync.Mutex
	accounts    map[string]*account // keyed by email
	sessions    map[string]string   // session id -> user id
	collections map[string][]map[string]any
}

// New builds a Server that accepts requests carrying the given project
// id and rejects all others.
func New(projectID string) *Server {
	s := &Server{
		projectID:   projectID,
		secret:      []byte(uuid.NewString()),
		TokenTTL:    defaultTokenTTL,
		accounts:    make(map[string]*account),
		sessions:    make(map[string]string),
		collections: make(map[string][]map[string]any),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(s.requireProject)

	e.POST("/v1/account", s.createAccount)
	e.POST("/v1/account/sessions/email", s.createSession)
	e.GET("/v1/account", s.currentAccount, s.requireSession)
	e.DELETE("/v1/account/sessions/current", s.deleteSession, s.requireSession)

	docs := e.Group("/v1/databases/:db/collections/:col/documents", s.requireSession)
	docs.GET("", s.listDocuments)
	docs.POST("", s.createDocument)
	docs.PATCH("/:id", s.patchDocument)

	s.echo = e
	return s
}

// ServeHTTP makes Server usable directly with httptest.NewServer.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Seed inserts documents into a collection, bypassing the API. Each
// document without an "id" gets one assigned.
func (s *Server) Seed(collection string, docs ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		if _, ok := doc["id"]; !ok {
			doc["id"] = uuid.NewString()
		}
		s.collections[collection] = append(s.collections[collection], doc)
	}
}

// ── middleware ────────────────────────────────────────────────────────

func (s *Server) requireProject(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("X-Project-Id") != s.projectID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "unknown project"})
		}
		return next(c)
	}
}

func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
		}

		claims := jwt.MapClaims{}
		tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !tkn.Valid {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}

		sid, _ := claims["sid"].(string)
		s.mu.Lock()
		userID, ok := s.sessions[sid]
		s.mu.Unlock()
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session revoked"})
		}

		c.Set("sessionID", sid)
		c.Set("userID", userID)
		return next(c)
	}
}

// ── account handlers ──────────────────────────────────────────────────

type createAccountRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) createAccount(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hashing failed"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "account already exists"})
	}
	id := req.UserID
	if id == "" {
		id = uuid.NewString()
	}
	s.accounts[req.Email] = &account{ID: id, Name: req.Name, Email: req.Email, PasswordHash: hash}

	return c.JSON(http.StatusCreated, echo.Map{"id": id, "name": req.Name, "email": req.Email})
}

func (s *Server) createSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.Email]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	sid := uuid.NewString()
	expires := time.Now().Add(s.TokenTTL)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":    sid,
		"userId": acct.ID,
		"exp":    expires.Unix(),
	}).SignedString(s.secret)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token signing failed"})
	}

	s.mu.Lock()
	s.sessions[sid] = acct.ID
	s.mu.Unlock()

	return c.JSON(http.StatusCreated, echo.Map{
		"token":   token,
		"userId":  acct.ID,
		"expires": expires.UTC().Format(time.RFC3339),
	})
}

func (s *Server) currentAccount(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.accounts {
		if acct.ID == userID {
			return c.JSON(http.StatusOK, echo.Map{"id": acct.ID, "name": acct.Name, "email": acct.Email})
		}
	}
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account not found"})
}

func (s *Server) deleteSession(c echo.Context) error {
	sid, _ := c.Get("sessionID").(string)
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

// ── document handlers ─────────────────────────────────────────────────

func (s *Server) listDocuments(c echo.Context) error {
	col := c.Param("col")
	exprs := c.QueryParams()["query"]

	filters, orderField, limit, err := parseQueries(exprs)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	s.mu.Lock()
	docs := append([]map[string]any{}, s.collections[col]...)
	s.mu.Unlock()

	matches := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		ok := true
		for field, want := range filters {
			if fmt.Sprint(doc[field]) != want {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, doc)
		}
	}

	if orderField != "" {
		sort.SliceStable(matches, func(i, j int) bool {
			return fmt.Sprint(matches[i][orderField]) < fmt.Sprint(matches[j][orderField])
		})
	}

	total := len(matches)
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "documents": matches})
}

func (s *Server) createDocument(c echo.Context) error {
	col := c.Param("col")
	doc := map[string]any{}
	if err := c.Bind(&doc); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	if id, _ := doc["id"].(string); id == "" {
		doc["id"] = uuid.NewString()
	}

	s.mu.Lock()
	s.collections[col] = append(s.collections[col], doc)
	s.mu.Unlock()

	return c.JSON(http.StatusCreated, doc)
}

func (s *Server) patchDocument(c echo.Context) error {
	col := c.Param("col")
	id := c.Param("id")
	patch := map[string]any{}
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.collections[col] {
		if doc["id"] == id {
			for k, v := range patch {
				doc[k] = v
			}
			return c.JSON(http.StatusOK, doc)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
}

// parseQueries decodes the repeated query expressions of the list
// endpoint: equal("field","value"), orderAsc("field"), limit(n).
func parseQueries(exprs []string) (filters map[string]string, orderField string, limit int, err error) {
	filters = make(map[string]string)
	for _, expr := range exprs {
		name, rest, found := strings.Cut(expr, "(")
		if !found || !strings.HasSuffix(rest, ")") {
			return nil, "", 0, fmt.Errorf("malformed query expression %q", expr)
		}
		args := strings.TrimSuffix(rest, ")")

		switch name {
		case "equal":
			field, value, ok := splitQuotedPair(args)
			if !ok {
				return nil, "", 0, fmt.Errorf("malformed equal expression %q", expr)
			}
			filters[field] = value
		case "orderAsc":
			field, uerr := strconv.Unquote(args)
			if uerr != nil {
				return nil, "", 0, fmt.Errorf("malformed orderAsc expression %q", expr)
			}
			orderField = field
		case "limit":
			n, aerr := strconv.Atoi(args)
			if aerr != nil || n < 0 {
				return nil, "", 0, fmt.Errorf("malformed limit expression %q", expr)
			}
			limit = n
		default:
			return nil, "", 0, fmt.Errorf("unsupported query expression %q", name)
		}
	}
	return filters, orderField, limit, nil
}

// splitQuotedPair parses `"field","value"` where both parts are
// Go-quoted strings.
func splitQuotedPair(args string) (field, value string, ok bool) {
	left, right, found := strings.Cut(args, `","`)
	if !found {
		return "", "", false
	}
	field, err1 := strconv.Unquote(left + `"`)
	value, err2 := strconv.Unquote(`"` + right)
	if err1 != nil || err2 != nil {
		return "", "", false
	}
	return field, value, true
}
