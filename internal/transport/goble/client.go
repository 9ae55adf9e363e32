// Package goble adapts a live go-ble connection to the attribute model:
// it dials a peer, discovers its attribute table, mirrors it as discovered
// services, and serves characteristic reads over the connection.
package goble

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-ble/ble"
	"github.com/sirupsen/logrus"
	"github.com/srg/gattkit/internal/bledb"
	"github.com/srg/gattkit/internal/gatt"
)

// DefaultConnectTimeout bounds the dial plus discovery phase.
const DefaultConnectTimeout = 30 * time.Second

// ConnectOptions tunes connection establishment.
type ConnectOptions struct {
	ConnectTimeout time.Duration
}

// Client is a live peer connection exposing the discovered attribute table.
// It implements gatt.RemoteTable and gatt.CharacteristicReader: remote
// accessors bound through it read across the connection.
type Client struct {
	logger *logrus.Logger

	mu        sync.RWMutex
	client    ble.Client
	connected bool
	services  map[string]*gatt.Service
	order     []string
	// live go-ble characteristics keyed by "serviceUUID/charUUID"
	handles map[string]*ble.Characteristic
}

// NewClient creates a disconnected client.
func NewClient(logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		logger:   logger,
		services: make(map[string]*gatt.Service),
		handles:  make(map[string]*ble.Characteristic),
	}
}

// Connect dials the peer and discovers its full attribute table.
func (c *Client) Connect(ctx context.Context, address string, opts *ConnectOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(address) == "" {
		c.logger.Error("Connection attempt with empty address")
		return fmt.Errorf("device address is empty")
	}
	if c.connected {
		c.logger.WithField("address", address).Warn("Connection attempt while already connected")
		return ErrAlreadyConnected
	}

	timeout := DefaultConnectTimeout
	if opts != nil && opts.ConnectTimeout > 0 {
		timeout = opts.ConnectTimeout
	}

	c.logger.WithFields(logrus.Fields{
		"address": address,
		"timeout": timeout,
	}).Info("Connecting to BLE device...")

	dev, err := DeviceFactory()
	if err != nil {
		c.logger.WithField("error", err).Error("Failed to create BLE device")
		return fmt.Errorf("failed to create BLE device: %w", err)
	}
	ble.SetDefaultDevice(dev)

	connCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c.logger.WithField("address", address).Debug("Dialing BLE device...")
	client, err := ble.Dial(connCtx, ble.NewAddr(address))
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"address": address,
			"error":   err,
		}).Error("Failed to dial BLE device")
		return fmt.Errorf("failed to connect to device with address %q: %w", address, NormalizeError(err))
	}

	c.logger.WithField("address", address).Debug("Discovering services and characteristics...")
	profile, err := client.DiscoverProfile(true)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"address": address,
			"error":   err,
		}).Error("Failed to discover profile")
		if cancelErr := client.CancelConnection(); cancelErr != nil {
			c.logger.WithField("cancel_error", cancelErr).Warn("Failed to cancel connection during profile discovery failure")
		}
		return fmt.Errorf("failed to discover profile: %w", NormalizeError(err))
	}

	c.populate(profile)

	c.client = client
	c.connected = true

	c.logger.WithFields(logrus.Fields{
		"address":         address,
		"services":        len(c.services),
		"characteristics": len(c.handles),
	}).Info("BLE device connected successfully")
	return nil
}

// populate mirrors the discovered profile into the attribute model.
// Caller holds c.mu.
func (c *Client) populate(profile *ble.Profile) {
	for _, bleSvc := range profile.Services {
		svcUUID := bledb.NormalizeUUID(bleSvc.UUID.String())
		c.logger.WithField("service_uuid", svcUUID).Debug("Found service UUID")

		svc, ok := c.services[svcUUID]
		if !ok {
			svc = gatt.NewDiscoveredService(svcUUID, gatt.PrimaryService,
				gatt.Handle(bleSvc.Handle), gatt.Handle(bleSvc.EndHandle))
			c.services[svcUUID] = svc
			c.order = append(c.order, svcUUID)
		}

		for _, bleChar := range bleSvc.Characteristics {
			charUUID := bledb.NormalizeUUID(bleChar.UUID.String())
			c.logger.WithFields(logrus.Fields{
				"service_uuid": svcUUID,
				"char_uuid":    charUUID,
			}).Debug("Found characteristic UUID")

			key := svcUUID + "/" + charUUID
			if _, seen := c.handles[key]; seen {
				// Reconnecting: refresh the live handle, keep the model.
				c.handles[key] = bleChar
				continue
			}

			cccd := gatt.InvalidHandle
			if bleChar.CCCD != nil {
				cccd = gatt.Handle(bleChar.CCCD.Handle)
			}
			_, err := svc.AddDiscoveredCharacteristic(charUUID,
				propertiesFromBLE(bleChar.Property),
				gatt.Handle(bleChar.Handle), gatt.Handle(bleChar.ValueHandle), cccd)
			if err != nil {
				c.logger.WithFields(logrus.Fields{
					"service_uuid": svcUUID,
					"char_uuid":    charUUID,
					"error":        err,
				}).Warn("Skipping duplicate discovered characteristic")
				continue
			}
			c.handles[key] = bleChar
		}
	}
}

// propertiesFromBLE converts go-ble property bit flags to the model form.
func propertiesFromBLE(p ble.Property) gatt.Properties {
	return gatt.Properties{
		Broadcast: p&ble.CharBroadcast != 0,
		Read:      p&ble.CharRead != 0,
		Write:     p&ble.CharWrite != 0 || p&ble.CharWriteNR != 0,
		Notify:    p&ble.CharNotify != 0,
		Indicate:  p&ble.CharIndicate != 0,
		Security:  gatt.SecurityOpen,
	}
}

// FindService looks a discovered service up by identity.
func (c *Client) FindService(uuid string) (*gatt.Service, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	svc, ok := c.services[bledb.NormalizeUUID(uuid)]
	return svc, ok
}

// Services returns the discovered services in discovery order.
func (c *Client) Services() []*gatt.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*gatt.Service, 0, len(c.order))
	for _, uuid := range c.order {
		result = append(result, c.services[uuid])
	}
	return result
}

// ReadCharacteristic reads the characteristic's value across the connection.
func (c *Client) ReadCharacteristic(char *gatt.Characteristic) ([]byte, error) {
	c.mu.RLock()
	client := c.client
	connected := c.connected
	bleChar := c.lookupLive(char)
	c.mu.RUnlock()

	if !connected || client == nil {
		return nil, ErrNotConnected
	}
	if bleChar == nil {
		return nil, &gatt.NotFoundError{
			Resource: "characteristic",
			UUIDs:    []string{char.Service().UUID(), char.UUID()},
		}
	}

	data, err := client.ReadCharacteristic(bleChar)
	if err != nil {
		return nil, fmt.Errorf("failed to read characteristic %s: %w", char.UUID(), NormalizeError(err))
	}
	return data, nil
}

// Subscribe enables notifications (or indications) for the characteristic and
// feeds incoming values into the model, fanning them out to its subscribers.
func (c *Client) Subscribe(char *gatt.Characteristic, indicate bool) error {
	c.mu.RLock()
	client := c.client
	connected := c.connected
	bleChar := c.lookupLive(char)
	c.mu.RUnlock()

	if !connected || client == nil {
		return ErrNotConnected
	}
	if bleChar == nil {
		return &gatt.NotFoundError{
			Resource: "characteristic",
			UUIDs:    []string{char.Service().UUID(), char.UUID()},
		}
	}

	props := char.Properties()
	if !props.Notify && !props.Indicate {
		return fmt.Errorf("characteristic %s: %w", char.UUID(), gatt.ErrNotSupported)
	}

	err := client.Subscribe(bleChar, indicate, func(data []byte) {
		char.SetValue(data)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", char.UUID(), NormalizeError(err))
	}

	c.logger.WithFields(logrus.Fields{
		"service_uuid": char.Service().UUID(),
		"char_uuid":    char.UUID(),
		"indicate":     indicate,
	}).Info("Subscribed to characteristic notifications")
	return nil
}

// Unsubscribe disables notifications and indications for the characteristic.
// Fails only when both modes fail.
func (c *Client) Unsubscribe(char *gatt.Characteristic) error {
	c.mu.RLock()
	client := c.client
	bleChar := c.lookupLive(char)
	c.mu.RUnlock()

	if client == nil || bleChar == nil {
		return nil
	}

	err1 := NormalizeError(client.Unsubscribe(bleChar, false))
	err2 := NormalizeError(client.Unsubscribe(bleChar, true))
	if err1 != nil && err2 != nil {
		c.logger.WithFields(logrus.Fields{
			"char_uuid":   char.UUID(),
			"notifyErr":   err1,
			"indicateErr": err2,
		}).Error("Failed to unsubscribe from characteristic notifications")
		return fmt.Errorf("%s: notify=%v, indicate=%v", char.UUID(), err1, err2)
	}
	return nil
}

// lookupLive resolves the live go-ble handle for a model characteristic.
// Caller holds c.mu.
func (c *Client) lookupLive(char *gatt.Characteristic) *ble.Characteristic {
	if char == nil || char.Service() == nil {
		return nil
	}
	return c.handles[char.Service().UUID()+"/"+char.UUID()]
}

// IsConnected reports whether the client holds a live connection.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected && c.client != nil
}

// Disconnect tears the connection down. The discovered table stays available
// for offline inspection; reads start failing with ErrNotConnected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	client := c.client
	wasConnected := c.connected
	c.client = nil
	c.connected = false
	c.mu.Unlock()

	if !wasConnected || client == nil {
		c.logger.Debug("Disconnect called but already disconnected")
		return nil
	}

	err := client.CancelConnection()
	if err != nil {
		c.logger.WithField("error", err).Warn("BLE device disconnected with errors")
		return NormalizeError(err)
	}
	c.logger.Info("BLE device disconnected successfully")
	return nil
}
