package gauge

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/beamctl/tpgctl/internal/observability"
	"github.com/beamctl/tpgctl/internal/protocol"
)

var (
	ErrBadChannel    = errors.New("gauge: channel out of range")
	ErrShortResponse = errors.New("gauge: truncated response")
	ErrBadField      = errors.New("gauge: malformed field")
)

// Reading is one channel's pressure measurement. Status other than
// StatusOK flags the reading invalid; Pressure is then -1.
type Reading struct {
	Channel  int
	Status   MeasurementStatus
	Pressure float64
	Valid    bool
	At       time.Time
}

// Identification is the controller's AYT self-description.
type Identification struct {
	Model           string
	ModelNumber     string
	SerialNumber    string
	FirmwareVersion string
	HardwareVersion string
}

// EthernetParams is the controller's ETH interface configuration.
type EthernetParams struct {
	DHCP    bool
	Address string
	Netmask string
	Gateway string
}

// Controller exposes the documented mnemonic operations of one TPG36x.
// Every operation is a plain caller of Client.Send; field meaning is
// interpreted here, never in the protocol layer.
type Controller struct {
	client *Client
	model  Model
	log    zerolog.Logger
}

func NewController(client *Client, model Model, log zerolog.Logger) *Controller {
	return &Controller{client: client, model: model, log: log}
}

func (c *Controller) Model() Model { return c.model }

// send builds and sends one command, enforcing a minimum field count on
// the response.
func (c *Controller) send(minFields int, mnemonic string, args ...string) (protocol.Response, error) {
	cmd, err := protocol.NewCommand(mnemonic, args...)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Send(cmd)
	if err != nil {
		return nil, err
	}
	if len(resp) < minFields {
		return nil, fmt.Errorf("%w: %s returned %d fields, want %d", ErrShortResponse, mnemonic, len(resp), minFields)
	}
	return resp, nil
}

// ReadPressure queries PR{channel}. A non-zero measurement status does
// not fail the call: the reading comes back flagged invalid with
// pressure -1 and the caller decides what to do with it.
func (c *Controller) ReadPressure(channel int) (Reading, error) {
	if channel < 1 || channel > c.model.Channels() {
		return Reading{}, fmt.Errorf("%w: %d (model %s has %d)", ErrBadChannel, channel, c.model, c.model.Channels())
	}
	c.log.Debug().Int("channel", channel).Msg("read pressure")

	resp, err := c.send(2, fmt.Sprintf("PR%d", channel))
	if err != nil {
		return Reading{}, err
	}
	status, err := strconv.Atoi(resp[0])
	if err != nil {
		return Reading{}, fmt.Errorf("%w: status %q: %v", ErrBadField, resp[0], err)
	}

	reading := Reading{
		Channel: channel,
		Status:  MeasurementStatus(status),
		At:      time.Now(),
	}
	if reading.Status == StatusOK {
		pressure, err := strconv.ParseFloat(resp[1], 64)
		if err != nil {
			return Reading{}, fmt.Errorf("%w: pressure %q: %v", ErrBadField, resp[1], err)
		}
		reading.Pressure = pressure
		reading.Valid = true
		observability.RecordPressure(channel, pressure)
	} else {
		reading.Pressure = -1.0
		observability.RecordInvalidReading(channel, reading.Status.String())
	}
	return reading, nil
}

// Identify queries AYT for model and version information.
func (c *Controller) Identify() (Identification, error) {
	c.log.Debug().Msg("send AYT request")
	resp, err := c.send(5, "AYT")
	if err != nil {
		return Identification{}, err
	}
	return Identification{
		Model:           resp[0],
		ModelNumber:     resp[1],
		SerialNumber:    resp[2],
		FirmwareVersion: resp[3],
		HardwareVersion: resp[4],
	}, nil
}

// GaugeTypes queries TID. The slice index corresponds to the channel
// number, starting at channel 1.
func (c *Controller) GaugeTypes() ([]GaugeID, error) {
	c.log.Debug().Msg("get types of connected gauges")
	resp, err := c.send(1, "TID")
	if err != nil {
		return nil, err
	}
	ids := make([]GaugeID, len(resp))
	for i, field := range resp {
		ids[i] = GaugeID(field)
	}
	return ids, nil
}

// EthernetParameters queries ETH.
func (c *Controller) EthernetParameters() (EthernetParams, error) {
	c.log.Debug().Msg("read ethernet interface configuration")
	resp, err := c.send(4, "ETH")
	if err != nil {
		return EthernetParams{}, err
	}
	return EthernetParams{
		DHCP:    resp[0] != "0",
		Address: resp[1],
		Netmask: resp[2],
		Gateway: resp[3],
	}, nil
}

// OperatingHours queries RHR for the controller's total runtime.
func (c *Controller) OperatingHours() (int, error) {
	c.log.Debug().Msg("read operating hours")
	resp, err := c.send(1, "RHR")
	if err != nil {
		return 0, err
	}
	hours, err := strconv.Atoi(resp[0])
	if err != nil {
		return 0, fmt.Errorf("%w: hours %q: %v", ErrBadField, resp[0], err)
	}
	return hours, nil
}

// FirmwareVersion queries PNR.
func (c *Controller) FirmwareVersion() (string, error) {
	c.log.Debug().Msg("read firmware version")
	resp, err := c.send(1, "PNR")
	if err != nil {
		return "", err
	}
	return resp[0], nil
}

// HardwareVersion queries HDW.
func (c *Controller) HardwareVersion() (string, error) {
	c.log.Debug().Msg("read hardware version")
	resp, err := c.send(1, "HDW")
	if err != nil {
		return "", err
	}
	return resp[0], nil
}

// MACAddress queries MAC.
func (c *Controller) MACAddress() (string, error) {
	c.log.Debug().Msg("read hardware MAC address")
	resp, err := c.send(1, "MAC")
	if err != nil {
		return "", err
	}
	return resp[0], nil
}

// InnerTemperature queries TMP for the temperature inside the unit,
// in degrees Celsius.
func (c *Controller) InnerTemperature() (float64, error) {
	c.log.Debug().Msg("read inner temperature")
	resp, err := c.send(1, "TMP")
	if err != nil {
		return 0, err
	}
	temp, err := strconv.ParseFloat(resp[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: temperature %q: %v", ErrBadField, resp[0], err)
	}
	return temp, nil
}

// PressureUnit queries UNI for the configured display unit.
func (c *Controller) PressureUnit() (Unit, error) {
	c.log.Debug().Msg("read pressure unit")
	resp, err := c.send(1, "UNI")
	if err != nil {
		return 0, err
	}
	code, err := strconv.Atoi(resp[0])
	if err != nil {
		return 0, fmt.Errorf("%w: unit %q: %v", ErrBadField, resp[0], err)
	}
	unit := Unit(code)
	if _, ok := unitNames[unit]; !ok {
		return 0, fmt.Errorf("%w: code %d", ErrUnknownUnit, code)
	}
	return unit, nil
}

// SetPressureUnit changes the display unit. Unknown units are rejected
// locally before any wire traffic.
func (c *Controller) SetPressureUnit(unit Unit) error {
	if _, ok := unitNames[unit]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownUnit, int(unit))
	}
	c.log.Debug().Stringer("unit", unit).Msg("set pressure unit")
	_, err := c.send(0, "UNI", strconv.Itoa(int(unit)))
	return err
}
