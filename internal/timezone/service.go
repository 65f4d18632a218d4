package timezone

import (
	"log/slog"
)

// Repository defines the read access over the time zone reference data.
type Repository interface {
	GetAllActive() ([]*TimeZone, error)
	GetByID(id int) (*TimeZone, error)
	GetByZoneID(zoneID string) (*TimeZone, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListActive returns the zones available for selection, in display order.
func (s *Service) ListActive() ([]*TimeZone, error) {
	zones, err := s.repo.GetAllActive()
	if err != nil {
		s.logger.Error("failed to list time zones", "error", err)
		return nil, err
	}
	return zones, nil
}

func (s *Service) Get(id int) (*TimeZone, error) {
	return s.repo.GetByID(id)
}

// GetByZoneID looks a zone up by its IANA identifier, e.g. "Asia/Kolkata".
func (s *Service) GetByZoneID(zoneID string) (*TimeZone, error) {
	return s.repo.GetByZoneID(zoneID)
}
