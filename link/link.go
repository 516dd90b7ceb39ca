// Package link implements the Bluetooth LE connection to the paired phone.
package link

import (
	"errors"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/ardnew/healthmetrics/model"
)

const DefaultName = "Health Metrics"

var (
	ErrEnable    = errors.New("failed to enable Bluetooth adapter")
	ErrService   = errors.New("failed to register battery service")
	ErrAdvertise = errors.New("failed to start advertising")
)

// Config defines how the watch presents itself to centrals.
type Config struct {
	Name string // advertised local name
}

// Link wraps the Bluetooth adapter operating as a peripheral.
//
// The connection state is published to the model Store, and the battery level
// is exposed through the standard Battery Service.
type Link struct {
	adapter *bluetooth.Adapter
	store   *model.Store
	config  Config
	adv     *bluetooth.Advertisement
	level   bluetooth.Characteristic
	percent uint8
}

// New returns a new Link using the given adapter, publishing its connection
// state to store.
func New(adapter *bluetooth.Adapter, store *model.Store, config Config) *Link {
	if config.Name == "" {
		config.Name = DefaultName
	}
	return &Link{adapter: adapter, store: store, config: config}
}

// Start enables the adapter, registers the battery service and begins
// advertising.
func (l *Link) Start() error {

	// the radio may need time to come up after reset
	if !waitWithTimeout(func() bool { return nil == l.adapter.Enable() }) {
		return ErrEnable
	}

	l.adapter.SetConnectHandler(l.connected)

	err := l.adapter.AddService(&bluetooth.Service{
		UUID: bluetooth.ServiceUUIDBattery,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &l.level,
				UUID:   bluetooth.CharacteristicUUIDBatteryLevel,
				Value:  []byte{l.percent},
				Flags: bluetooth.CharacteristicReadPermission |
					bluetooth.CharacteristicNotifyPermission,
			},
		},
	})
	if nil != err {
		return ErrService
	}

	l.adv = l.adapter.DefaultAdvertisement()
	err = l.adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    l.config.Name,
		ServiceUUIDs: []bluetooth.UUID{bluetooth.ServiceUUIDBattery},
	})
	if nil != err {
		return ErrAdvertise
	}
	if err := l.adv.Start(); nil != err {
		return ErrAdvertise
	}

	return nil
}

// SetBattery publishes the battery charge percentage to connected centrals.
// Unchanged values are not rewritten.
func (l *Link) SetBattery(percent uint8) error {
	if percent == l.percent {
		return nil
	}
	l.percent = percent
	if nil == l.adv {
		return nil // initial value is set when the service is registered
	}
	_, err := l.level.Write([]byte{percent})
	return err
}

// connected is called by the Bluetooth stack when a central connects or
// disconnects.
func (l *Link) connected(_ bluetooth.Device, connected bool) {
	l.store.Set(func(m *model.Model) {
		m.Connected = connected
	})
	if !connected && nil != l.adv {
		// advertising stops on connect, resume it so the phone can reconnect
		if err := l.adv.Start(); nil != err {
			println("error: " + err.Error())
		}
	}
}

func waitWithTimeout(ready func() bool) (ok bool) {
	const (
		maxAttempts = 5
		baseTimeout = 125 * time.Millisecond
	)
	timeout := baseTimeout
	for attempt := 0; !ok && attempt < maxAttempts; attempt++ {
		if ok = ready(); !ok {
			time.Sleep(timeout)
			timeout <<= 1
		}
	}
	return
}
