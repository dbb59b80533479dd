package gauge

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownModel = errors.New("gauge: unknown controller model")
	ErrUnknownUnit  = errors.New("gauge: unknown pressure unit")
)

// Model selects the controller variant, which fixes the channel count.
type Model int

const (
	TPG361 Model = iota
	TPG362
	TPG366
)

func (m Model) Channels() int {
	switch m {
	case TPG362:
		return 2
	case TPG366:
		return 6
	default:
		return 1
	}
}

func (m Model) String() string {
	switch m {
	case TPG361:
		return "TPG361"
	case TPG362:
		return "TPG362"
	case TPG366:
		return "TPG366"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

func ParseModel(name string) (Model, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TPG361":
		return TPG361, nil
	case "TPG362":
		return TPG362, nil
	case "TPG366":
		return TPG366, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
}

// MeasurementStatus is field 0 of a pressure response.
type MeasurementStatus int

const (
	StatusOK MeasurementStatus = iota
	StatusUnderrange
	StatusOverrange
	StatusSensorError
	StatusSensorOff
	StatusNoSensor
	StatusIdentError
)

var statusDescriptions = map[MeasurementStatus]string{
	StatusOK:          "measurement data okay",
	StatusUnderrange:  "underrange",
	StatusOverrange:   "overrange",
	StatusSensorError: "sensor error",
	StatusSensorOff:   "sensor off",
	StatusNoSensor:    "no sensor",
	StatusIdentError:  "identification error",
}

func (s MeasurementStatus) String() string {
	if desc, ok := statusDescriptions[s]; ok {
		return desc
	}
	return fmt.Sprintf("unknown status %d", int(s))
}

// Unit is the controller's configured pressure unit (UNI).
type Unit int

const (
	UnitMbar Unit = iota
	UnitTorr
	UnitPa
	UnitMicron
	UnitHPa
	UnitVolt
)

var unitNames = map[Unit]string{
	UnitMbar:   "mbar",
	UnitTorr:   "Torr",
	UnitPa:     "Pa",
	UnitMicron: "Micron",
	UnitHPa:    "hPa",
	UnitVolt:   "Volt",
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("unknown unit %d", int(u))
}

func ParseUnit(name string) (Unit, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for unit, unitName := range unitNames {
		if strings.ToLower(unitName) == want {
			return unit, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

// GaugeID is a gauge type identifier as reported by TID.
type GaugeID string

var gaugeDescriptions = map[GaugeID]string{
	"TPR/PCR":  "Pirani gauge or Pirani capacitive gauge",
	"TPR":      "Pirani gauge or Pirani capacitive gauge",
	"IKR":      "cold cathode gauge 10E-9 or 10E-11",
	"IKR9":     "cold cathode gauge 10E-9",
	"IKR11":    "cold cathode gauge 10E-11",
	"PKR":      "full range CC gauge",
	"PBR":      "full range BA gauge",
	"IMR":      "Pirani / high pressure gauge",
	"CMR":      "linear gauge",
	"CMR/APR":  "linear gauge",
	"noSEn":    "no sensor",
	"noSENSOR": "no sensor",
	"noid":     "no identifier",
}

// Description maps a reported identifier to its gauge family, falling
// back to the raw identifier for types the table does not know.
func (id GaugeID) Description() string {
	if desc, ok := gaugeDescriptions[id]; ok {
		return desc
	}
	return string(id)
}
