package devices

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	. "github.com/diwise/iot-climate-control/internal/pkg/infrastructure/repositories/database"
	"github.com/matryer/is"
)

func TestSeedAndGetDevice(t *testing.T) {
	is, ctx, r := testSetupDeviceRepository(t)

	err := Seed(ctx, r, bytes.NewBufferString(seedCSV))
	is.NoErr(err)

	gw, err := r.GetDeviceByMAC(ctx, "aa:00:00:00:00:01")
	is.NoErr(err)
	is.Equal(gw.Type, TypeGateway)
	is.Equal(gw.WarehouseID, "12")

	node, err := r.GetDeviceByMAC(ctx, "aa:00:00:00:00:02")
	is.NoErr(err)
	is.Equal(*node.ParentMAC, "aa:00:00:00:00:01")
	is.Equal(len(node.SubDevices), 3)
}

func TestGetSubDeviceByCode(t *testing.T) {
	is, ctx, r := testSetupDeviceRepository(t)
	is.NoErr(Seed(ctx, r, bytes.NewBufferString(seedCSV)))

	sub, owner, err := r.GetSubDeviceByCode(ctx, "ac-1")
	is.NoErr(err)
	is.Equal(sub.ActuatorType, 3)
	is.Equal(*sub.Min, 16.0)
	is.Equal(*sub.Max, 30.0)
	is.Equal(owner.MAC, "aa:00:00:00:00:02")

	_, _, err = r.GetSubDeviceByCode(ctx, "nope")
	is.True(errors.Is(err, ErrSubDeviceNotFound))
}

func TestGetDevicesInWarehouse(t *testing.T) {
	is, ctx, r := testSetupDeviceRepository(t)
	is.NoErr(Seed(ctx, r, bytes.NewBufferString(seedCSV)))

	inWarehouse, err := r.GetDevicesInWarehouse(ctx, "12")
	is.NoErr(err)
	is.Equal(len(inWarehouse), 3)

	other, err := r.GetDevicesInWarehouse(ctx, "13")
	is.NoErr(err)
	is.Equal(len(other), 1)
	is.Equal(other[0].SubDevices[0].State, StateMaintenance)
}

func TestUpdateSubDeviceStatus(t *testing.T) {
	is, ctx, r := testSetupDeviceRepository(t)
	is.NoErr(Seed(ctx, r, bytes.NewBufferString(seedCSV)))

	v := 22.0
	is.NoErr(r.UpdateSubDeviceStatus(ctx, "ac-1", StatusOn, &v))

	sub, _, err := r.GetSubDeviceByCode(ctx, "ac-1")
	is.NoErr(err)
	is.Equal(sub.Status, StatusOn)
	is.Equal(*sub.Value, 22.0)

	err = r.UpdateSubDeviceStatus(ctx, "nope", StatusOn, nil)
	is.True(errors.Is(err, ErrSubDeviceNotFound))
}

func TestThatDeleteCascadesToSubDevices(t *testing.T) {
	is, ctx, r := testSetupDeviceRepository(t)
	is.NoErr(Seed(ctx, r, bytes.NewBufferString(seedCSV)))

	is.NoErr(r.Delete(ctx, "aa:00:00:00:00:02"))

	_, _, err := r.GetSubDeviceByCode(ctx, "ac-1")
	is.True(errors.Is(err, ErrSubDeviceNotFound))

	err = r.Delete(ctx, "aa:00:00:00:00:02")
	is.True(errors.Is(err, ErrDeviceNotFound))
}

func TestThatSeedingTwiceUpdatesExistingDevices(t *testing.T) {
	is, ctx, r := testSetupDeviceRepository(t)
	is.NoErr(Seed(ctx, r, bytes.NewBufferString(seedCSV)))
	is.NoErr(Seed(ctx, r, bytes.NewBufferString(seedCSV)))

	inWarehouse, err := r.GetDevicesInWarehouse(ctx, "12")
	is.NoErr(err)
	is.Equal(len(inWarehouse), 3)
}

func TestThatSeedFailsOnBadInput(t *testing.T) {
	is := is.New(t)

	for _, input := range []string{csvWithDuplicateMAC, csvWithBadType, csvWithBadActuator, csvWithSubDevicesOnGateway, csvWithBadCoordinate} {
		_, err := parseRows(readRows(is, input))
		is.True(err != nil) // expected parse failure
	}
}

func readRows(is *is.I, input string) [][]string {
	r := csv.NewReader(strings.NewReader(input))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	is.NoErr(err)

	return rows
}

func testSetupDeviceRepository(t *testing.T) (*is.I, context.Context, DeviceRepository) {
	is := is.New(t)
	ctx := context.Background()

	r, err := NewDeviceRepository(NewSQLiteConnector(ctx))
	is.NoErr(err)

	return is, ctx, r
}

const seedCSV string = `mac;type;state;parent;warehouse;x;y;subDevices
aa:00:00:00:00:01;gateway;active;;12;0;0;
aa:00:00:00:00:02;controller-node;active;aa:00:00:00:00:01;12;4.5;2;ac-1:3:16:30,heat-1:4,fan-1:1
aa:00:00:00:00:03;env-sensor;active;aa:00:00:00:00:01;12;;;
bb:00:00:00:00:02;controller-node;active;;13;;;light-9:2:::maintenance`

const csvWithDuplicateMAC string = `mac;type;state;parent;warehouse;x;y;subDevices
aa:00:00:00:00:01;gateway;active;;12;;;
aa:00:00:00:00:01;gateway;active;;12;;;`

const csvWithBadType string = `mac;type;state;parent;warehouse;x;y;subDevices
aa:00:00:00:00:01;toaster;active;;12;;;`

const csvWithBadActuator string = `mac;type;state;parent;warehouse;x;y;subDevices
aa:00:00:00:00:02;controller-node;active;;12;;;x-1:9`

const csvWithSubDevicesOnGateway string = `mac;type;state;parent;warehouse;x;y;subDevices
aa:00:00:00:00:01;gateway;active;;12;;;ac-1:3`

const csvWithBadCoordinate string = `mac;type;state;parent;warehouse;x;y;subDevices
aa:00:00:00:00:01;gateway;active;;12;gurka;0;`
