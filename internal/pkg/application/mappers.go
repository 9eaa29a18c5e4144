package application

import (
	"github.com/diwise/iot-climate-control/internal/pkg/application/dispatcher"
	"github.com/diwise/iot-climate-control/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
)

func MapAck(ack types.CommandAck) dispatcher.Ack {
	return dispatcher.Ack{
		ID:     ack.ID,
		Target: ack.Target,
		On:     ack.On == 1,
		Value:  ack.Value,
	}
}

// MapOutcome returns the domain event that announces an outcome on the message bus.
func MapOutcome(o dispatcher.Outcome) messaging.TopicMessage {
	switch o.Status {
	case dispatcher.Acknowledged:
		return &types.CommandAcknowledged{CommandID: o.CommandID, SubDeviceID: o.SubDeviceID, WarehouseID: o.WarehouseID, Source: string(o.Source), Timestamp: o.Timestamp}
	case dispatcher.Expired:
		return &types.CommandExpired{CommandID: o.CommandID, SubDeviceID: o.SubDeviceID, WarehouseID: o.WarehouseID, Source: string(o.Source), Timestamp: o.Timestamp}
	case dispatcher.Superseded:
		return &types.CommandSuperseded{CommandID: o.CommandID, SubDeviceID: o.SubDeviceID, WarehouseID: o.WarehouseID, Source: string(o.Source), Timestamp: o.Timestamp}
	default:
		return &types.CommandCancelled{CommandID: o.CommandID, SubDeviceID: o.SubDeviceID, WarehouseID: o.WarehouseID, Source: string(o.Source), Timestamp: o.Timestamp}
	}
}
