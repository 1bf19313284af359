package repository

import (
	"errors"

	"attendance-engine/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Save(record *models.ScheduleRecord) error
	GetByEmployeeID(employeeID uint) (*models.ScheduleRecord, error)
	GetAll() ([]*models.ScheduleRecord, error)
	Exists(employeeID uint) (bool, error)
	MaxEmployeeID() (uint, error)
}

type GormScheduleRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormScheduleRepository(db *gorm.DB) (*GormScheduleRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// Автомиграция
	if err := db.AutoMigrate(&models.ScheduleRecord{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate schedule_records table")
		return nil, err
	}

	logger.Info("Schedule repository initialized")

	return &GormScheduleRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Save создаёт или перезаписывает запись графика
func (r *GormScheduleRepository) Save(record *models.ScheduleRecord) error {
	if !record.IsValid() {
		r.logger.WithField("employee_id", record.EmployeeID).Warn("Invalid schedule record data")
		return errors.New("некорректные данные графика")
	}

	result := r.db.Save(record)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to save schedule record")
		return result.Error
	}

	r.logger.WithField("employee_id", record.EmployeeID).Debug("Schedule record saved")
	return nil
}

func (r *GormScheduleRepository) GetByEmployeeID(employeeID uint) (*models.ScheduleRecord, error) {
	var record models.ScheduleRecord
	result := r.db.First(&record, employeeID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("employee_id", employeeID).Debug("Schedule record not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get schedule record by employee ID")
		return nil, result.Error
	}

	return &record, nil
}

func (r *GormScheduleRepository) GetAll() ([]*models.ScheduleRecord, error) {
	var records []*models.ScheduleRecord
	result := r.db.Order("employee_id ASC").Find(&records)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get all schedule records")
		return nil, result.Error
	}

	r.logger.WithField("count", len(records)).Debug("Retrieved all schedule records")
	return records, nil
}

func (r *GormScheduleRepository) Exists(employeeID uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.ScheduleRecord{}).
		Where("employee_id = ?", employeeID).
		Count(&count)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to check schedule record existence")
		return false, result.Error
	}

	return count > 0, nil
}

func (r *GormScheduleRepository) MaxEmployeeID() (uint, error) {
	var maxID *uint
	result := r.db.Model(&models.ScheduleRecord{}).
		Select("MAX(employee_id)").
		Scan(&maxID)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get max employee ID")
		return 0, result.Error
	}

	if maxID == nil {
		return 0, nil
	}
	return *maxID, nil
}
