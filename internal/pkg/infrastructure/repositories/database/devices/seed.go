package devices

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

var allowedTypes = []string{TypeGateway, TypeEnvSensor, TypeRFIDReader, TypeControllerNode}
var allowedStates = []string{StateActive, StateInactive, StateMaintenance, StateUnauthorized}

// Seed reads known devices from a semicolon separated file and saves them. The expected columns are
//
//	mac;type;state;parent;warehouse;x;y;subDevices
//
// where subDevices is a comma separated list of code:actuator[:min:max[:state]].
func Seed(ctx context.Context, repo DeviceRepository, reader io.Reader) error {
	log := logging.GetFromContext(ctx)

	r := csv.NewReader(reader)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read csv data from file: %w", err)
	}

	devices, err := parseRows(rows)
	if err != nil {
		return err
	}

	for i := range devices {
		err = repo.Save(ctx, &devices[i])
		if err != nil {
			return fmt.Errorf("failed to save device %s: %w", devices[i].MAC, err)
		}
	}

	log.Info().Msgf("loaded %d devices from seed file", len(devices))

	return nil
}

func parseRows(rows [][]string) ([]Device, error) {
	contains := func(set []string, s string) bool {
		for _, v := range set {
			if v == s {
				return true
			}
		}
		return false
	}

	optionalFloat := func(s string) (*float64, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return &f, nil
	}

	seenMACs := map[string]int{}
	seenCodes := map[string]int{}
	devices := []Device{}

	for idx, row := range rows {
		if idx == 0 {
			// Skip the CSV header
			continue
		}

		line := idx + 1

		if len(row) < 5 {
			return nil, fmt.Errorf("too few columns on line %d in devices file", line)
		}

		for len(row) < 8 {
			row = append(row, "")
		}

		mac := strings.ToLower(strings.TrimSpace(row[0]))
		if mac == "" {
			return nil, fmt.Errorf("missing mac on line %d in devices file", line)
		}
		if prev, ok := seenMACs[mac]; ok {
			return nil, fmt.Errorf("duplicate mac %s found on line %d in devices file (first seen on line %d)", mac, line, prev)
		}
		seenMACs[mac] = line

		deviceType := strings.TrimSpace(row[1])
		if !contains(allowedTypes, deviceType) {
			return nil, fmt.Errorf("bad type specified for device %s on line %d (\"%s\" not in %v)", mac, line, deviceType, allowedTypes)
		}

		state := strings.TrimSpace(row[2])
		if state == "" {
			state = StateActive
		}
		if !contains(allowedStates, state) {
			return nil, fmt.Errorf("bad state specified for device %s on line %d (\"%s\" not in %v)", mac, line, state, allowedStates)
		}

		d := Device{
			MAC:         mac,
			Type:        deviceType,
			State:       state,
			WarehouseID: strings.TrimSpace(row[4]),
		}

		if parent := strings.ToLower(strings.TrimSpace(row[3])); parent != "" {
			d.ParentMAC = &parent
		}

		x, err := optionalFloat(row[5])
		if err != nil {
			return nil, fmt.Errorf("failed to parse x for device %s: %w", mac, err)
		}
		y, err := optionalFloat(row[6])
		if err != nil {
			return nil, fmt.Errorf("failed to parse y for device %s: %w", mac, err)
		}
		d.X, d.Y = x, y

		subs := strings.TrimSpace(row[7])
		if subs != "" {
			if !d.OwnsSubDevices() {
				return nil, fmt.Errorf("device %s of type %s on line %d cannot own sub devices", mac, deviceType, line)
			}

			for _, entry := range strings.Split(subs, ",") {
				sub, err := parseSubDevice(entry)
				if err != nil {
					return nil, fmt.Errorf("bad sub device on line %d: %w", line, err)
				}
				if prev, ok := seenCodes[sub.Code]; ok {
					return nil, fmt.Errorf("duplicate sub device %s found on line %d (first seen on line %d)", sub.Code, line, prev)
				}
				seenCodes[sub.Code] = line
				d.SubDevices = append(d.SubDevices, sub)
			}
		}

		devices = append(devices, d)
	}

	return devices, nil
}

func parseSubDevice(entry string) (SubDevice, error) {
	parts := strings.Split(strings.TrimSpace(entry), ":")
	if len(parts) < 2 || parts[0] == "" {
		return SubDevice{}, fmt.Errorf("expected code:actuator, got %q", entry)
	}

	actuator, err := strconv.Atoi(parts[1])
	if err != nil || actuator < 1 || actuator > 6 {
		return SubDevice{}, fmt.Errorf("actuator type of %s must be 1-6", parts[0])
	}

	sub := SubDevice{
		Code:         parts[0],
		ActuatorType: actuator,
		Status:       StatusOff,
		State:        StateActive,
	}

	if len(parts) >= 4 && parts[2] != "" && parts[3] != "" {
		lo, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return SubDevice{}, fmt.Errorf("bad min for %s: %w", sub.Code, err)
		}
		hi, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return SubDevice{}, fmt.Errorf("bad max for %s: %w", sub.Code, err)
		}
		if lo > hi {
			return SubDevice{}, fmt.Errorf("min above max for %s", sub.Code)
		}
		sub.Min, sub.Max = &lo, &hi
	}

	if len(parts) >= 5 && parts[4] != "" {
		switch parts[4] {
		case StateActive, StateInactive, StateMaintenance:
			sub.State = parts[4]
		default:
			return SubDevice{}, fmt.Errorf("bad state %q for %s", parts[4], sub.Code)
		}
	}

	return sub, nil
}
