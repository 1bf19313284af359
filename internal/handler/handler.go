package handler

import (
	"attendance-engine/internal/config"
	"attendance-engine/internal/models"
	"attendance-engine/internal/repository"
	"attendance-engine/internal/service"

	"github.com/sirupsen/logrus"
)

// Handler связывает сервисы движка для внешнего слоя (CLI/экспорт)
type Handler struct {
	punches   *service.PunchService
	schedules *service.ScheduleService
	daily     *service.DailyService
	summary   *service.SummaryService
	repo      repository.ScheduleRepository
	opts      config.Options
	logger    *logrus.Logger
}

func NewHandler(
	punches *service.PunchService,
	schedules *service.ScheduleService,
	daily *service.DailyService,
	summary *service.SummaryService,
	repo repository.ScheduleRepository,
	opts config.Options,
) *Handler {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Handler{
		punches:   punches,
		schedules: schedules,
		daily:     daily,
		summary:   summary,
		repo:      repo,
		opts:      opts,
		logger:    logger,
	}
}

// StoredMaxEmployeeID возвращает наибольший ID в сохранённой таблице графика
func (h *Handler) StoredMaxEmployeeID() int {
	id, err := h.repo.MaxEmployeeID()
	if err != nil {
		h.logger.WithError(err).Error("Failed to read max employee id")
		return 0
	}
	return int(id)
}

// DailyTotals суммирует показатели набора дневных строк
func (h *Handler) DailyTotals(rows []models.DailyRecord) models.DailyTotals {
	return h.daily.Totals(rows)
}
