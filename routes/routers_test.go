package routes

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pousada/config"
	"pousada/dto"
	"pousada/response"
	"pousada/services"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), config.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cache := services.NewMemoryCache()
	auth, err := services.NewAuthService(services.AuthServiceOptions{Secret: "test-secret", Cache: cache})
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	counter := services.NewInventoryCounter(nil)
	machine := services.NewStatusMachine(counter)
	payments := services.NewPaymentService(services.PaymentServiceOptions{DB: db, Machine: machine, Cache: cache})

	router := gin.New()
	SetupRoutes(router, Dependencies{
		Auth:               auth,
		Establishments:     services.NewEstablishmentService(services.EstablishmentServiceOptions{DB: db, Cache: cache}),
		AccommodationTypes: services.NewAccommodationTypeService(db),
		Accommodations: services.NewAccommodationService(services.AccommodationServiceOptions{
			DB:      db,
			Counter: counter,
			Machine: machine,
			Cache:   cache,
		}),
		Availability:      services.NewAvailabilityService(db),
		Clients:           services.NewClientService(db),
		Addons:            services.NewAddonService(db),
		Reservations:      services.NewReservationService(services.ReservationServiceOptions{DB: db, Machine: machine, Cache: cache}),
		ReservationAddons: services.NewReservationAddonService(services.ReservationAddonServiceOptions{DB: db, Cache: cache}),
		Payments:          payments,
		Receipts:          services.NewReceiptService(payments, nil, nil),
		Dashboard:         services.NewDashboardService(services.DashboardServiceOptions{DB: db, Cache: cache}),
	})
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginInput{Email: email, Password: "password"})
	if w.Code != http.StatusOK {
		s.t.Fatalf("login %s: %d %s", email, w.Code, w.Body)
	}
	var out dto.LoginResponse
	decode(s.t, w, &out)
	return out.Token
}

// create posts body and returns the id of the created resource
func (s *testServer) create(path, token string, body interface{}) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, path, token, body)
	if w.Code != http.StatusCreated {
		s.t.Fatalf("POST %s: %d %s", path, w.Code, w.Body)
	}
	var out struct {
		ID uint `json:"id"`
	}
	decode(s.t, w, &out)
	return out.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %s: %v", w.Body, err)
	}
}

func TestAuthGuards(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(http.MethodGet, "/api/v1/establishments", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: %d, want 401", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/establishments", "bogus", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: %d, want 401", w.Code)
	}
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginInput{Email: "admin@example.com", Password: "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password: %d, want 401", w.Code)
	}
	if w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "x"}); w.Code != http.StatusBadRequest {
		t.Errorf("invalid body: %d, want 400", w.Code)
	}

	user := s.login("user@example.com")
	if w := s.do(http.MethodGet, "/api/v1/establishments", user, nil); w.Code != http.StatusOK {
		t.Errorf("user list: %d, want 200", w.Code)
	}
	if w := s.do(http.MethodPost, "/api/v1/establishments", user, map[string]string{"name": "x"}); w.Code != http.StatusForbidden {
		t.Errorf("user create: %d, want 403", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/clients", user, nil); w.Code != http.StatusForbidden {
		t.Errorf("user clients: %d, want 403", w.Code)
	}

	w = s.do(http.MethodGet, "/api/v1/auth/verify", user, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("verify: %d", w.Code)
	}
	if w := s.do(http.MethodDelete, "/api/v1/auth/logout", user, nil); w.Code != http.StatusOK {
		t.Fatalf("logout: %d %s", w.Code, w.Body)
	}
	if w := s.do(http.MethodGet, "/api/v1/auth/verify", user, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("verify after logout: %d, want 401", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
}

func TestReservationFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin@example.com")

	estID := s.create("/api/v1/establishments", admin, map[string]string{
		"name": "Pousada Mar Azul", "address": "Rua das Flores 10", "city": "Paraty", "state": "RJ",
	})
	typeID := s.create("/api/v1/accommodation-types", admin, map[string]string{"name": "Suite"})
	roomID := s.create("/api/v1/accommodations", admin, map[string]interface{}{
		"name": "Quarto 101", "roomNumber": "101", "capacity": 2, "basePrice": 200,
		"establishmentId": estID, "accommodationTypeId": typeID,
	})
	clientID := s.create("/api/v1/clients", admin, map[string]string{"name": "Maria Souza"})

	booking := map[string]interface{}{
		"clientId": clientID, "accommodationId": roomID, "establishmentId": estID,
		"checkIn": "2026-03-10", "checkOut": "2026-03-13",
	}
	w := s.do(http.MethodPost, "/api/v1/reservations", admin, booking)
	if w.Code != http.StatusCreated {
		t.Fatalf("create reservation: %d %s", w.Code, w.Body)
	}
	var created dto.ReservationResponse
	decode(t, w, &created)
	if created.Nights != 3 || created.TotalValue.String() != "600" || created.Balance.String() != "600" {
		t.Errorf("reservation = %+v", created)
	}

	booking["checkIn"], booking["checkOut"] = "2026-03-13", "2026-03-15"
	w = s.do(http.MethodPost, "/api/v1/reservations", admin, booking)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("overlap: %d %s, want 400", w.Code, w.Body)
	}
	var body response.ErrorBody
	decode(t, w, &body)
	if body.Error != "room not available for selected dates" {
		t.Errorf("error = %q", body.Error)
	}

	booking["checkIn"] = "13/03/2026"
	if w := s.do(http.MethodPost, "/api/v1/reservations", admin, booking); w.Code != http.StatusBadRequest {
		t.Errorf("bad date: %d, want 400", w.Code)
	}

	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/accommodations/%d/availability?checkIn=2026-03-12&checkOut=2026-03-14", roomID), admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("availability: %d %s", w.Code, w.Body)
	}
	var avail dto.AvailabilityResponse
	decode(t, w, &avail)
	if avail.Available {
		t.Error("room reported available during a stay")
	}

	if w := s.do(http.MethodGet, "/api/v1/reservations/history", admin, nil); w.Code != http.StatusOK {
		t.Errorf("history: %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/reservations/abc", admin, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: %d, want 400", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/reservations/999", admin, nil); w.Code != http.StatusNotFound {
		t.Errorf("missing: %d, want 404", w.Code)
	}

	w = s.do(http.MethodGet, "/api/v1/reservations?search=maria", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var list dto.ListResponse[dto.ReservationResponse]
	decode(t, w, &list)
	if list.Total != 1 || list.Data[0].ID != created.ID {
		t.Errorf("list = %+v", list)
	}

	if w := s.do(http.MethodDelete, fmt.Sprintf("/api/v1/establishments/%d", estID), admin, nil); w.Code != http.StatusBadRequest {
		t.Errorf("delete establishment in use: %d, want 400", w.Code)
	}
	if w := s.do(http.MethodDelete, fmt.Sprintf("/api/v1/reservations/%d", created.ID), admin, nil); w.Code != http.StatusOK {
		t.Errorf("delete reservation: %d %s", w.Code, w.Body)
	}
}
