package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type server struct {
	db       *sql.DB
	cart     *CartStore
	mailer   Mailer
	events   *eventPublisher
	search   *meiliClient
	siteURL  string
	cloudURL string
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"ok": false, "error": msg})
}

// sessionID reads the cart session cookie, minting one when absent.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie("session_id"); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(cartTTL.Seconds()),
	})
	return id
}

// RegisterRoutes mounts all REST endpoints.
func (s *server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/search/products", s.handleAutocomplete)
	mux.HandleFunc("GET /api/products", s.handleListProducts)
	mux.HandleFunc("GET /api/products/{slug}", s.handleGetProduct)
	mux.HandleFunc("GET /api/featured", s.handleFeatured)
	mux.HandleFunc("POST /api/cart", s.handleAddToCart)
	mux.HandleFunc("GET /api/cart", s.handleGetCart)
	mux.HandleFunc("POST /api/checkout", s.handleCheckout)
	mux.HandleFunc("POST /api/newsletter/subscribe", s.handleSubscribe)
	mux.HandleFunc("GET /api/newsletter/unsubscribe", s.handleUnsubscribe)
	mux.HandleFunc("POST /api/newsletter/send", s.handleNewsletterSend)
	mux.HandleFunc("POST /api/contact", s.handleContact)
	mux.HandleFunc("PATCH /api/account/profile", s.handleProfileUpdate)
	mux.HandleFunc("PATCH /api/account/password", s.handlePasswordChange)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", 50)
	if limit > 1000 {
		limit = 1000
	}
	offset := queryInt(r, "offset", 0)

	res, err := s.search.search(q, limit, offset)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	products := make([]SearchProduct, 0, len(res.Hits))
	for _, h := range res.Hits {
		products = append(products, normalizeHit(h))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products":           products,
		"total":              res.TotalHits,
		"offset":             offset,
		"limit":              limit,
		"processing_time_ms": res.ProcessingTimeMs,
	})
}

func (s *server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", 8)

	res, err := s.search.search(q, limit, 0)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	// A superseded keystroke cancels its request; stop before encoding a
	// response nobody reads.
	if r.Context().Err() != nil {
		return
	}

	items := make([]SearchProduct, 0, len(res.Hits))
	for _, h := range res.Hits {
		items = append(items, normalizeHit(h))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

const listPageSize = 24

func (s *server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not connected")
		return
	}
	qp := r.URL.Query()
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}

	products, err := ListProducts(r.Context(), s.db, ProductListOptions{
		Query: qp.Get("q"),
		Sort:  qp.Get("sort"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	club := qp.Get("club")
	include := splitKeywords(qp.Get("include"))
	exclude := splitKeywords(qp.Get("exclude"))

	filtered := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		label := clubEngine.Resolve(p.Team, p.Name)
		if club != "" && !strings.EqualFold(label, club) {
			continue
		}
		if !matchesKeywords(p.Name, include, exclude) {
			continue
		}
		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		filtered = append(filtered, map[string]interface{}{
			"id":          p.ID,
			"slug":        p.Slug,
			"name":        p.Name,
			"club":        label,
			"image":       image,
			"price_cents": p.BasePriceCents,
		})
	}

	total := len(filtered)
	start := (page - 1) * listPageSize
	if start > total {
		start = total
	}
	end := start + listPageSize
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products": filtered[start:end],
		"total":    total,
		"page":     page,
		"pages":    (total + listPageSize - 1) / listPageSize,
	})
}

// matchesKeywords applies the category predicates: every include keyword
// must appear in the name, no exclude keyword may.
func matchesKeywords(name string, include, exclude []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range include {
		if !strings.Contains(lower, kw) {
			return false
		}
	}
	for _, kw := range exclude {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(s), ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not connected")
		return
	}
	p, err := GetProductBySlug(r.Context(), s.db, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not connected")
		return
	}
	groups, err := s.GetFeaturedClubs(r.Context(), queryInt(r, "limit", 6))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

// cartRequest is the add-to-cart wire payload. Option values arrive as a
// string, a list of strings, or null.
type cartRequest struct {
	ProductID       string                 `json:"productId"`
	Qty             int                    `json:"qty"`
	SizeCategory    string                 `json:"sizeCategory"`
	Options         map[string]interface{} `json:"options"`
	Personalization *Personalization       `json:"personalization"`
}

func (req *cartRequest) selection() Selection {
	sel := make(Selection, len(req.Options))
	for key, raw := range req.Options {
		switch v := raw.(type) {
		case string:
			if v != "" {
				sel[key] = Single(v)
			}
		case []interface{}:
			codes := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					codes = append(codes, s)
				}
			}
			if len(codes) > 0 {
				sel[key] = Multi(codes...)
			}
		}
	}
	return sel
}

func (s *server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not connected")
		return
	}
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	p, err := GetProductByID(r.Context(), s.db, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	category := SizeAdult
	if strings.EqualFold(req.SizeCategory, string(SizeKids)) {
		category = SizeKids
	}

	line, err := BuildCartLine(p, category, req.selection(), req.Qty, req.Personalization)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.cart.AddLine(r.Context(), sessionID(w, r), *line); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "line": line})
}

func (s *server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	lines, err := s.cart.Lines(r.Context(), sessionID(w, r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total := 0
	for _, l := range lines {
		total += l.LineTotalCents
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"lines": lines, "total_cents": total})
}

func (s *server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not connected")
		return
	}
	sid := sessionID(w, r)
	lines, err := s.cart.Lines(r.Context(), sid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(lines) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "cart is empty")
		return
	}

	order := Order{
		ID:        uuid.NewString(),
		Status:    "placed",
		CreatedAt: time.Now(),
	}
	for _, l := range lines {
		opts := make([]string, 0, len(l.Options))
		for k, v := range l.Options {
			opts = append(opts, k+"="+v)
		}
		order.Items = append(order.Items, OrderItem{
			ProductID:       l.ProductID,
			Name:            l.Name,
			UnitPriceCents:  l.UnitPriceCents,
			Qty:             l.Qty,
			Options:         strings.Join(opts, ";"),
			Personalization: l.Personalization,
		})
		order.TotalCents += l.LineTotalCents
	}

	if err := InsertOrder(r.Context(), s.db, order); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.cart.Clear(r.Context(), sid); err != nil {
		log.Printf("clear cart %s: %v", sid, err)
	}
	s.events.OrderPlaced(r.Context(), order)

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "order_id": order.ID, "total_cents": order.TotalCents})
}

func (s *server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not connected")
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if _, err := InsertSubscriber(r.Context(), s.db, req.Email); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (s *server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not connected")
		return
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing token")
		return
	}
	if err := UnsubscribeByToken(r.Context(), s.db, token); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (s *server) handleNewsletterSend(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not connected")
		return
	}
	var in NewsletterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	result, err := SendNewsletter(r.Context(), s.db, s.mailer, s.siteURL, in)
	if err != nil {
		if errors.Is(err, errMailerNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "email and message are required")
		return
	}
	if s.mailer == nil {
		writeError(w, http.StatusServiceUnavailable, "mail provider not configured")
		return
	}

	res := s.mailer.Send(r.Context(), MailMessage{
		To:      getEnv("CONTACT_EMAIL", "shop@kitzone.example"),
		Subject: "Contact form: " + req.Name,
		Text:    "From: " + req.Name + " <" + req.Email + ">\n\n" + req.Message,
		HTML:    "",
	})
	if res.Err != "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": false, "error": res.Err})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// accountID stands in for the session-derived account until the auth
// provider is wired in front of this API.
func accountID(r *http.Request) string {
	return r.Header.Get("X-Account-ID")
}

func (s *server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not connected")
		return
	}
	id := accountID(r)
	if id == "" {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	var req struct {
		Name  *string `json:"name"`
		Image *string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	cs := AccountChangeSet{Name: req.Name, ImageURL: req.Image}
	if err := UpdateAccountProfile(r.Context(), s.db, id, cs); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

const minPasswordLen = 8

func (s *server) handlePasswordChange(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "database not connected")
		return
	}
	id := accountID(r)
	if id == "" {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.NewPassword) < minPasswordLen {
		writeError(w, http.StatusUnprocessableEntity, "new password must be at least 8 characters")
		return
	}

	account, err := GetAccount(r.Context(), s.db, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)) != nil {
		writeError(w, http.StatusUnprocessableEntity, "current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := UpdateAccountPassword(r.Context(), s.db, id, string(hash)); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.cloudURL == "" {
		writeError(w, http.StatusServiceUnavailable, "uploads not configured")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	cld, err := cloudinary.NewFromURL(s.cloudURL)
	if err != nil {
		log.Println("cloudinary init:", err)
		writeError(w, http.StatusInternalServerError, "upload service error")
		return
	}
	uploadResult, err := cld.Upload.Upload(r.Context(), file, uploader.UploadParams{})
	if err != nil {
		log.Println("upload error:", err)
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"url": uploadResult.SecureURL})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
