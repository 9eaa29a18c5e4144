package devices

import (
	"context"
	"errors"
	"fmt"

	. "github.com/diwise/iot-climate-control/internal/pkg/infrastructure/repositories/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate moq -rm -out devicerepository_mock.go . DeviceRepository

type DeviceRepository interface {
	GetDeviceByMAC(ctx context.Context, mac string) (Device, error)
	GetSubDeviceByCode(ctx context.Context, code string) (SubDevice, Device, error)
	GetDevicesInWarehouse(ctx context.Context, warehouseID string) ([]Device, error)
	UpdateSubDeviceStatus(ctx context.Context, code string, status int, value *float64) error

	Save(ctx context.Context, device *Device) error
	Delete(ctx context.Context, mac string) error
}

var ErrDeviceNotFound = fmt.Errorf("device not found")
var ErrSubDeviceNotFound = fmt.Errorf("sub device not found")

type deviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(connect ConnectorFunc) (DeviceRepository, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(&Device{}, &SubDevice{})
	if err != nil {
		return nil, err
	}

	return &deviceRepository{
		db: impl,
	}, nil
}

func (d *deviceRepository) GetDeviceByMAC(ctx context.Context, mac string) (Device, error) {
	device := Device{}

	result := d.db.WithContext(ctx).Preload("SubDevices").Where(&Device{MAC: mac}).First(&device)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Device{}, ErrDeviceNotFound
		}
		return Device{}, result.Error
	}

	return device, nil
}

func (d *deviceRepository) GetSubDeviceByCode(ctx context.Context, code string) (SubDevice, Device, error) {
	sub := SubDevice{}

	result := d.db.WithContext(ctx).Where(&SubDevice{Code: code}).First(&sub)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return SubDevice{}, Device{}, ErrSubDeviceNotFound
		}
		return SubDevice{}, Device{}, result.Error
	}

	device := Device{}

	result = d.db.WithContext(ctx).First(&device, sub.DeviceID)
	if result.Error != nil {
		return SubDevice{}, Device{}, fmt.Errorf("sub device %s has no owner: %w", code, result.Error)
	}

	return sub, device, nil
}

func (d *deviceRepository) GetDevicesInWarehouse(ctx context.Context, warehouseID string) ([]Device, error) {
	devices := []Device{}

	result := d.db.WithContext(ctx).
		Preload("SubDevices", func(db *gorm.DB) *gorm.DB { return db.Order("sub_devices.code") }).
		Where(&Device{WarehouseID: warehouseID}).
		Order("mac").
		Find(&devices)

	return devices, result.Error
}

func (d *deviceRepository) UpdateSubDeviceStatus(ctx context.Context, code string, status int, value *float64) error {
	fields := map[string]any{"status": status}
	if value != nil {
		fields["value"] = *value
	}

	result := d.db.WithContext(ctx).Model(&SubDevice{}).Where("code = ?", code).Updates(fields)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSubDeviceNotFound
	}

	return nil
}

// Save inserts the device, or updates it and its sub devices if the mac is already known.
func (d *deviceRepository) Save(ctx context.Context, device *Device) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing := Device{}
		result := tx.Where(&Device{MAC: device.MAC}).Limit(1).Find(&existing)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected > 0 {
			device.ID = existing.ID
		}

		err := tx.Omit("SubDevices").Save(device).Error
		if err != nil {
			return err
		}

		for i := range device.SubDevices {
			device.SubDevices[i].DeviceID = device.ID
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "code"}},
				DoUpdates: clause.AssignmentColumns([]string{"device_id", "actuator_type", "state", "min", "max", "updated_at"}),
			}).Create(&device.SubDevices[i]).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (d *deviceRepository) Delete(ctx context.Context, mac string) error {
	result := d.db.WithContext(ctx).Where("mac = ?", mac).Delete(&Device{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}
