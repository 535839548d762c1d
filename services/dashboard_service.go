package services

import (
	"context"
	"time"

	"pousada/constants"
	"pousada/models"
	"pousada/services/logger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dashboardCacheTTL = time.Minute

type EstablishmentOccupancy struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Color          string  `json:"color"`
	TotalRooms     int     `json:"totalRooms"`
	AvailableRooms int     `json:"availableRooms"`
	OccupancyRate  float64 `json:"occupancyRate"`
}

type DashboardSummary struct {
	Establishments       []EstablishmentOccupancy `json:"establishments"`
	ReservationsByStatus map[string]int64         `json:"reservationsByStatus"`
	CheckInsToday        int64                    `json:"checkInsToday"`
	CheckOutsToday       int64                    `json:"checkOutsToday"`
	Revenue              decimal.Decimal          `json:"revenue"`
	Outstanding          decimal.Decimal          `json:"outstanding"`
	GeneratedAt          time.Time                `json:"generatedAt"`
}

type DashboardService struct {
	db     *gorm.DB
	logger logger.Logger
	cache  Cache
	now    func() time.Time
}

type DashboardServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Cache  Cache
}

func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	return &DashboardService{db: opts.DB, logger: opts.Logger, cache: opts.Cache, now: time.Now}
}

// Summary aggregates occupancy, today's movements and money received
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var cached DashboardSummary
	if hit, err := s.cache.Get(ctx, CacheKeyDashboardSummary, &cached); err != nil {
		s.logger.Warn("dashboard cache read failed: %v", err)
	} else if hit {
		return &cached, nil
	}

	db := s.db.WithContext(ctx)
	summary := &DashboardSummary{
		ReservationsByStatus: map[string]int64{},
		GeneratedAt:          s.now().UTC(),
	}

	var establishments []models.Establishment
	if err := db.Order("name").Find(&establishments).Error; err != nil {
		return nil, storeError(err, "failed to load establishments")
	}
	for _, e := range establishments {
		occ := EstablishmentOccupancy{
			ID:             e.ID,
			Name:           e.Name,
			Color:          e.Color,
			TotalRooms:     e.TotalRooms,
			AvailableRooms: e.AvailableRooms,
		}
		if e.TotalRooms > 0 {
			occ.OccupancyRate = float64(e.TotalRooms-e.AvailableRooms) / float64(e.TotalRooms)
		}
		summary.Establishments = append(summary.Establishments, occ)
	}

	var byStatus []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&models.Reservation{}).Select("status, COUNT(*) AS total").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, storeError(err, "failed to count reservations")
	}
	for _, row := range byStatus {
		summary.ReservationsByStatus[row.Status] = row.Total
	}

	today := startOfDay(s.now())
	tomorrow := today.AddDate(0, 0, 1)
	if err := db.Model(&models.Reservation{}).
		Where("check_in >= ? AND check_in < ? AND status IN ?", today, tomorrow, constants.ActiveReservationStatuses).
		Count(&summary.CheckInsToday).Error; err != nil {
		return nil, storeError(err, "failed to count check-ins")
	}
	if err := db.Model(&models.Reservation{}).
		Where("check_out >= ? AND check_out < ? AND status IN ?", today, tomorrow, holdingStatuses()).
		Count(&summary.CheckOutsToday).Error; err != nil {
		return nil, storeError(err, "failed to count check-outs")
	}

	if err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", constants.PaymentStatusConfirmed).
		Row().Scan(&summary.Revenue); err != nil {
		return nil, storeError(err, "failed to sum payments")
	}
	var totals struct {
		Total decimal.Decimal
		Paid  decimal.Decimal
	}
	if err := db.Model(&models.Reservation{}).
		Select("COALESCE(SUM(total_value), 0) AS total, COALESCE(SUM(paid_value), 0) AS paid").
		Where("status IN ?", holdingStatuses()).
		Scan(&totals).Error; err != nil {
		return nil, storeError(err, "failed to sum reservations")
	}
	summary.Outstanding = totals.Total.Sub(totals.Paid)
	if summary.Outstanding.IsNegative() {
		summary.Outstanding = decimal.Zero
	}

	if err := s.cache.Set(ctx, CacheKeyDashboardSummary, summary, dashboardCacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed: %v", err)
	}
	return summary, nil
}
