package thresholds

import (
	"github.com/diwise/iot-climate-control/internal/pkg/infrastructure/repositories/database/thresholds"
	"github.com/diwise/iot-climate-control/pkg/types"
)

func toWire(t thresholds.Threshold) types.Threshold {
	return types.Threshold{
		TempLo:  t.TempLo,
		TempHi:  t.TempHi,
		HumLo:   t.HumLo,
		HumHi:   t.HumHi,
		GasHi:   t.GasHi,
		LightLo: t.LightLo,
		LightHi: t.LightHi,
	}
}

func fromWire(warehouseID string, w types.Threshold) thresholds.Threshold {
	return thresholds.Threshold{
		WarehouseID: warehouseID,
		TempLo:      w.TempLo,
		TempHi:      w.TempHi,
		HumLo:       w.HumLo,
		HumHi:       w.HumHi,
		GasHi:       w.GasHi,
		LightLo:     w.LightLo,
		LightHi:     w.LightHi,
	}
}
