package querying

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mediation-stats-api/infrastructure/repository"
	"github.com/vfg2006/mediation-stats-api/internal/domain"
	"github.com/vfg2006/mediation-stats-api/internal/metrics"
	"github.com/vfg2006/mediation-stats-api/pkg/utils"
)

const DefaultMaxRangeDays = 366

type Querier interface {
	Query(ctx context.Context, userID string, filters domain.StatsFilters) (*domain.StatsResult, error)
}

type Service struct {
	partitionRepo repository.PartitionRepository
	maxRangeDays  int
}

func NewService(partitionRepo repository.PartitionRepository, maxRangeDays int) *Service {
	if maxRangeDays <= 0 {
		maxRangeDays = DefaultMaxRangeDays
	}

	return &Service{
		partitionRepo: partitionRepo,
		maxRangeDays:  maxRangeDays,
	}
}

func (s *Service) Query(ctx context.Context, userID string, filters domain.StatsFilters) (*domain.StatsResult, error) {
	start := time.Now()
	defer func() {
		metrics.QueryDuration.Observe(time.Since(start).Seconds())
	}()

	if userID == "" {
		return nil, ErrMissingUserID
	}

	if filters.StartDate == nil || filters.EndDate == nil {
		return nil, fmt.Errorf("%w: startDate e endDate são obrigatórios", ErrInvalidArgument)
	}

	if count := utils.DayCount(*filters.StartDate, *filters.EndDate); count > s.maxRangeDays {
		return nil, fmt.Errorf("%w: intervalo de %d dias excede o máximo de %d", ErrInvalidArgument, count, s.maxRangeDays)
	}

	days := utils.DaysBetween(*filters.StartDate, *filters.EndDate)

	result := &domain.StatsResult{
		ChartData: make([]domain.ChartPoint, 0),
		TableRows: make([]*domain.MetricRow, 0),
	}
	revenueByDate := make(map[string]float64)

	for _, day := range days {
		partition, err := s.partitionRepo.GetDay(ctx, userID, day)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar estatísticas do dia %s: %w", day, err)
		}

		if partition == nil {
			continue
		}

		for _, row := range partition.Rows {
			if !matchRow(row, filters) {
				continue
			}

			result.Stats.Revenue += row.Revenue
			result.Stats.Impressions += row.Impressions
			result.Stats.Clicks += row.Clicks
			result.Stats.Completions += row.Completions

			revenueByDate[row.Date] += row.Revenue
			result.TableRows = append(result.TableRows, row)
		}
	}

	result.Stats.ECPM = domain.CalculateECPM(result.Stats.Revenue, result.Stats.Impressions)

	for date, revenue := range revenueByDate {
		result.ChartData = append(result.ChartData, domain.ChartPoint{Date: date, Value: revenue})
	}

	sort.Slice(result.ChartData, func(i, j int) bool {
		return result.ChartData[i].Date < result.ChartData[j].Date
	})

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"days":    len(days),
		"rows":    len(result.TableRows),
	}).Debug("Consulta de estatísticas executada")

	return result, nil
}
