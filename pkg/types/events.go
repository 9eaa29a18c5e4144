package types

import (
	"time"
)

type CommandAcknowledged struct {
	CommandID   string    `json:"commandId"`
	SubDeviceID string    `json:"subDeviceId"`
	WarehouseID string    `json:"warehouseId"`
	Source      string    `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
}

func (c *CommandAcknowledged) ContentType() string {
	return "application/json"
}
func (c *CommandAcknowledged) TopicName() string {
	return "command.acknowledged"
}

type CommandExpired struct {
	CommandID   string    `json:"commandId"`
	SubDeviceID string    `json:"subDeviceId"`
	WarehouseID string    `json:"warehouseId"`
	Source      string    `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
}

func (c *CommandExpired) ContentType() string {
	return "application/json"
}
func (c *CommandExpired) TopicName() string {
	return "command.expired"
}

type CommandSuperseded struct {
	CommandID   string    `json:"commandId"`
	SubDeviceID string    `json:"subDeviceId"`
	WarehouseID string    `json:"warehouseId"`
	Source      string    `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
}

func (c *CommandSuperseded) ContentType() string {
	return "application/json"
}
func (c *CommandSuperseded) TopicName() string {
	return "command.superseded"
}

type AlertRaised struct {
	WarehouseID string    `json:"warehouseId"`
	Alert       Alert     `json:"alert"`
	Timestamp   time.Time `json:"timestamp"`
}

func (a *AlertRaised) ContentType() string {
	return "application/json"
}
func (a *AlertRaised) TopicName() string {
	return "alert.raised"
}

type CommandCancelled struct {
	CommandID   string    `json:"commandId"`
	SubDeviceID string    `json:"subDeviceId"`
	WarehouseID string    `json:"warehouseId"`
	Source      string    `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
}

func (c *CommandCancelled) ContentType() string {
	return "application/json"
}
func (c *CommandCancelled) TopicName() string {
	return "command.cancelled"
}
