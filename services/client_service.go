package services

import (
	"context"
	"strings"
	"time"

	apperrors "pousada/errors"
	"pousada/models"
	"pousada/validator"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	recentReservationsLimit = 5
	defaultSuggestionLimit  = 5
)

type ClientPatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Document    *string
	IDCard      *string
	BirthDate   *time.Time
	Nationality *string
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	Notes       *string
}

type ClientWithStats struct {
	models.Client
	TotalReservations int64 `json:"totalReservations"`
}

type ClientDetail struct {
	models.Client
	TotalReservations  int64                `json:"totalReservations"`
	LastCheckOut       *time.Time           `json:"lastCheckOut"`
	RecentReservations []models.Reservation `json:"recentReservations"`
}

type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

func (s *ClientService) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	normalizeClient(c)
	if err := validator.ValidateClient(c); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkDocument(tx, c.Document, 0); err != nil {
			return err
		}
		c.ID = 0
		return tx.Omit(clause.Associations).Create(c).Error
	})
	if err != nil {
		return nil, storeError(err, "a client with this document already exists")
	}
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, id uint, patch ClientPatch) (*models.Client, error) {
	var c models.Client
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockByID(tx, &c, id, "client not found"); err != nil {
			return err
		}
		applyString(&c.Name, patch.Name)
		applyString(&c.Email, patch.Email)
		applyString(&c.Phone, patch.Phone)
		applyString(&c.IDCard, patch.IDCard)
		applyString(&c.Nationality, patch.Nationality)
		applyString(&c.Address, patch.Address)
		applyString(&c.City, patch.City)
		applyString(&c.State, patch.State)
		applyString(&c.ZipCode, patch.ZipCode)
		applyString(&c.Notes, patch.Notes)
		if patch.Document != nil {
			doc := *patch.Document
			c.Document = &doc
		}
		if patch.BirthDate != nil {
			c.BirthDate = patch.BirthDate
		}
		normalizeClient(&c)
		if err := validator.ValidateClient(&c); err != nil {
			return err
		}
		if err := s.checkDocument(tx, c.Document, id); err != nil {
			return err
		}
		return tx.Model(&models.Client{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":        c.Name,
			"email":       c.Email,
			"phone":       c.Phone,
			"document":    c.Document,
			"id_card":     c.IDCard,
			"birth_date":  c.BirthDate,
			"nationality": c.Nationality,
			"address":     c.Address,
			"city":        c.City,
			"state":       c.State,
			"zip_code":    c.ZipCode,
			"notes":       c.Notes,
		}).Error
	})
	if err != nil {
		return nil, storeError(err, "a client with this document already exists")
	}
	return &c, nil
}

// Delete refuses while reservations reference the client
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Client
		if err := lockByID(tx, &c, id, "client not found"); err != nil {
			return err
		}
		booked, err := exists(tx, &models.Reservation{}, "client_id = ?", id)
		if err != nil {
			return err
		}
		if booked {
			return apperrors.Conflict("client has reservations and cannot be deleted")
		}
		return tx.Delete(&models.Client{}, id).Error
	})
	return storeError(err, "failed to delete client")
}

// Get returns the client with its booking history summary
func (s *ClientService) Get(ctx context.Context, id uint) (*ClientDetail, error) {
	db := s.db.WithContext(ctx)
	var c models.Client
	if err := findByID(db, &c, id, "client not found"); err != nil {
		return nil, err
	}
	detail := &ClientDetail{Client: c}
	if err := db.Model(&models.Reservation{}).Where("client_id = ?", id).Count(&detail.TotalReservations).Error; err != nil {
		return nil, storeError(err, "failed to count reservations")
	}
	err := db.Where("client_id = ?", id).
		Preload("Accommodation").
		Preload("Establishment").
		Order("check_in DESC").
		Limit(recentReservationsLimit).
		Find(&detail.RecentReservations).Error
	if err != nil {
		return nil, storeError(err, "failed to load reservations")
	}
	for _, r := range detail.RecentReservations {
		if detail.LastCheckOut == nil || r.CheckOut.After(*detail.LastCheckOut) {
			out := r.CheckOut
			detail.LastCheckOut = &out
		}
	}
	return detail, nil
}

// List matches search against name, email, phone and document, ignoring
// accents and formatting
func (s *ClientService) List(ctx context.Context, search string) ([]ClientWithStats, error) {
	db := s.db.WithContext(ctx)
	var clients []models.Client
	if err := db.Order("name").Find(&clients).Error; err != nil {
		return nil, storeError(err, "failed to list clients")
	}
	if term := normalizeInput(search); term != "" {
		digits := validator.DigitsOnly(term)
		filtered := clients[:0]
		for _, c := range clients {
			if matchesClient(c, term, digits) {
				filtered = append(filtered, c)
			}
		}
		clients = filtered
	}

	counts, err := s.reservationCounts(db)
	if err != nil {
		return nil, err
	}
	out := make([]ClientWithStats, len(clients))
	for i, c := range clients {
		out[i] = ClientWithStats{Client: c, TotalReservations: counts[c.ID]}
	}
	return out, nil
}

// Suggest returns the clients whose names are closest to q
func (s *ClientService) Suggest(ctx context.Context, q string, limit int) ([]models.ClientSummary, error) {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	var clients []models.Client
	if err := s.db.WithContext(ctx).Select("id", "name", "email", "phone").Order("name").Find(&clients).Error; err != nil {
		return nil, storeError(err, "failed to load clients")
	}
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name
	}
	idx := rankSuggestions(q, names, limit)
	out := make([]models.ClientSummary, 0, len(idx))
	for _, i := range idx {
		c := clients[i]
		out = append(out, models.ClientSummary{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone})
	}
	return out, nil
}

func (s *ClientService) reservationCounts(db *gorm.DB) (map[uint]int64, error) {
	var rows []struct {
		ClientID uint
		Total    int64
	}
	err := db.Model(&models.Reservation{}).
		Select("client_id, COUNT(*) AS total").
		Group("client_id").
		Scan(&rows).Error
	if err != nil {
		return nil, storeError(err, "failed to count reservations")
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.ClientID] = r.Total
	}
	return counts, nil
}

func (s *ClientService) checkDocument(tx *gorm.DB, document *string, selfID uint) error {
	if document == nil {
		return nil
	}
	taken, err := exists(tx, &models.Client{}, "document = ? AND id <> ?", *document, selfID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.Conflict("a client with this document already exists")
	}
	return nil
}

func matchesClient(c models.Client, term, digits string) bool {
	if strings.Contains(normalizeInput(c.Name), term) || strings.Contains(strings.ToLower(c.Email), term) {
		return true
	}
	if digits == "" {
		return false
	}
	if strings.Contains(validator.DigitsOnly(c.Phone), digits) {
		return true
	}
	return c.Document != nil && strings.Contains(*c.Document, digits)
}

// normalizeClient trims fields and stores the document as bare digits,
// with an empty document kept as NULL so the unique index ignores it
func normalizeClient(c *models.Client) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	if c.Document != nil {
		doc := validator.DigitsOnly(*c.Document)
		if doc == "" {
			c.Document = nil
		} else {
			c.Document = &doc
		}
	}
}
