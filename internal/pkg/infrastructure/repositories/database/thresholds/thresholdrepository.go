package thresholds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/iot-climate-control/internal/pkg/infrastructure/repositories/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Threshold is the persisted, sentinel encoded, threshold of a warehouse.
type Threshold struct {
	WarehouseID string `gorm:"primaryKey"`
	UpdatedAt   time.Time

	TempLo  float64
	TempHi  float64
	HumLo   float64
	HumHi   float64
	GasHi   float64
	LightLo float64
	LightHi float64
}

//go:generate moq -rm -out thresholdrepository_mock.go . ThresholdRepository

type ThresholdRepository interface {
	Get(ctx context.Context, warehouseID string) (Threshold, error)
	Save(ctx context.Context, t Threshold) error
}

var ErrThresholdNotFound = fmt.Errorf("threshold not found")

type thresholdRepository struct {
	db *gorm.DB
}

func NewThresholdRepository(connect database.ConnectorFunc) (ThresholdRepository, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(&Threshold{})
	if err != nil {
		return nil, err
	}

	return &thresholdRepository{
		db: impl,
	}, nil
}

func (r *thresholdRepository) Get(ctx context.Context, warehouseID string) (Threshold, error) {
	t := Threshold{}

	err := r.db.WithContext(ctx).Where(&Threshold{WarehouseID: warehouseID}).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Threshold{}, ErrThresholdNotFound
		}
		return Threshold{}, err
	}

	return t, nil
}

// Save replaces any stored threshold for the warehouse.
func (r *thresholdRepository) Save(ctx context.Context, t Threshold) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "warehouse_id"}},
		UpdateAll: true,
	}).Create(&t).Error
}
