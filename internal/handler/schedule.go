package handler

import (
	"attendance-engine/internal/models"
)

// ExportSchedule возвращает таблицу графика для ID в [1, maxID]
func (h *Handler) ExportSchedule(maxID int) []models.ScheduleExportRow {
	return h.schedules.ExportRows(maxID)
}

// ImportSchedule применяет строки импорта графика и возвращает число
// обновлённых сотрудников
func (h *Handler) ImportSchedule(rows []models.ScheduleImportRow, maxID int) (int, error) {
	updated, err := h.schedules.ImportBulk(rows, maxID)
	if err != nil {
		h.logger.WithError(err).Error("Schedule import failed")
		return updated, err
	}
	return updated, nil
}
