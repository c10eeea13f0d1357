package hap_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hap-protocol/hap-go/pkg/accessory"
	"github.com/hap-protocol/hap-go/pkg/characteristics"
	"github.com/hap-protocol/hap-go/pkg/inspect"
	"github.com/hap-protocol/hap-go/pkg/interaction"
	"github.com/hap-protocol/hap-go/pkg/log"
	"github.com/hap-protocol/hap-go/pkg/model"
	"github.com/hap-protocol/hap-go/pkg/wire"
)

// fanDriver is an in-memory fan.
type fanDriver struct {
	mu      sync.Mutex
	active  characteristics.ActiveState
	target  characteristics.TargetFanState
	speed   float64
	changed model.ChangeFunc[float64]
}

func (d *fanDriver) accessory() *accessory.Fan {
	return &accessory.Fan{
		Active: model.Binding[characteristics.ActiveState]{
			Get: model.SyncGetter(func() (characteristics.ActiveState, error) {
				d.mu.Lock()
				defer d.mu.Unlock()
				return d.active, nil
			}),
			Set: model.SyncSetter(func(v characteristics.ActiveState) error {
				d.mu.Lock()
				defer d.mu.Unlock()
				d.active = v
				return nil
			}),
		},
		CurrentFanState: model.ReadBinding[characteristics.CurrentFanState]{
			Get: model.SyncGetter(func() (characteristics.CurrentFanState, error) {
				return 0, errors.New("motor controller offline")
			}),
		},
		TargetFanState: model.Binding[characteristics.TargetFanState]{
			Get: model.SyncGetter(func() (characteristics.TargetFanState, error) {
				d.mu.Lock()
				defer d.mu.Unlock()
				return d.target, nil
			}),
			Set: model.SyncSetter(func(v characteristics.TargetFanState) error {
				d.mu.Lock()
				defer d.mu.Unlock()
				d.target = v
				return nil
			}),
		},
		RotationSpeed: model.Binding[float64]{
			Get: model.SyncGetter(func() (float64, error) {
				d.mu.Lock()
				defer d.mu.Unlock()
				return d.speed, nil
			}),
			Set: model.SyncSetter(func(v float64) error {
				d.mu.Lock()
				defer d.mu.Unlock()
				d.speed = v
				return nil
			}),
			Subscribe: func(fn model.ChangeFunc[float64]) {
				d.mu.Lock()
				defer d.mu.Unlock()
				d.changed = fn
			},
			Unsubscribe: func() {
				d.mu.Lock()
				defer d.mu.Unlock()
				d.changed = nil
			},
		},
	}
}

// turn simulates someone turning the speed knob on the device.
func (d *fanDriver) turn(speed float64) {
	d.mu.Lock()
	d.speed = speed
	fn := d.changed
	d.mu.Unlock()
	if fn != nil {
		fn(speed)
	}
}

type harness struct {
	driver *fanDriver
	server *interaction.Server
	client *interaction.Client
	events *log.FileLogger
	path   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fan.hlog")
	events, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("Failed to open event log: %v", err)
	}
	t.Cleanup(func() { _ = events.Close() })

	driver := &fanDriver{active: characteristics.ActiveStateActive, speed: 40}
	services, err := accessory.Services(driver.accessory(), model.WithEventLogger(events))
	if err != nil {
		t.Fatalf("Failed to build services: %v", err)
	}

	server, err := interaction.NewServer(services, interaction.WithTimeouts(time.Second, time.Second))
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	client := interaction.Connect(server)
	t.Cleanup(func() { _ = client.Close() })

	return &harness{driver: driver, server: server, client: client, events: events, path: path}
}

// closeLog closes the event log and returns its events.
func (h *harness) closeLog(t *testing.T) []log.Event {
	t.Helper()
	if err := h.events.Close(); err != nil {
		t.Fatalf("Failed to close event log: %v", err)
	}

	r, err := log.NewReader(h.path)
	if err != nil {
		t.Fatalf("Failed to open event log: %v", err)
	}
	defer r.Close()

	var events []log.Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("Failed to read event: %v", err)
		}
		events = append(events, e)
	}
}

// TestE2E_ReadWrite reads and writes fan characteristics through the
// interaction client and checks the captured events.
func TestE2E_ReadWrite(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h := newHarness(t)
	fan := inspect.ServiceName("B7")
	if fan != "Fan" {
		t.Fatalf("Expected catalog name Fan, got %q", fan)
	}

	v, err := h.client.Read(ctx, "B7", "29")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if v != 40.0 {
		t.Errorf("Expected speed 40, got %v (%T)", v, v)
	}

	// Enum states travel as their codes.
	v, err = h.client.Read(ctx, "B7", "B0")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if v != uint64(1) {
		t.Errorf("Expected active code 1, got %v (%T)", v, v)
	}

	if err := h.client.Write(ctx, "B7", "29", 75.0); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := h.client.Write(ctx, "B7", "BF", 1); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	h.driver.mu.Lock()
	speed, target := h.driver.speed, h.driver.target
	h.driver.mu.Unlock()
	if speed != 75 || target != characteristics.TargetFanStateAuto {
		t.Errorf("Driver state = speed %v target %v, want 75 AUTO", speed, target)
	}

	// Out of range writes never reach the driver.
	err = h.client.Write(ctx, "B7", "29", 150.0)
	var statusErr *interaction.StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != wire.StatusInvalidValue {
		t.Fatalf("Expected invalid value status, got %v", err)
	}

	// Driver failures surface as communication failures.
	_, err = h.client.Read(ctx, "B7", "AF")
	if !errors.As(err, &statusErr) || statusErr.Status != wire.StatusCommunicationFailure {
		t.Fatalf("Expected communication failure status, got %v", err)
	}
	if !strings.Contains(err.Error(), "motor controller offline") {
		t.Errorf("Expected driver error text, got %v", err)
	}

	events := h.closeLog(t)
	var reads, writes, failed int
	for _, e := range events {
		switch e.Operation {
		case log.OperationRead:
			reads++
		case log.OperationWrite:
			writes++
		}
		if e.Failed() {
			failed++
		}
	}
	if reads != 3 || writes != 3 || failed != 2 {
		t.Errorf("Captured %d reads, %d writes, %d failures; want 3, 3, 2", reads, writes, failed)
	}
}

// TestE2E_SubscribeNotify subscribes through the client and drives a
// change from the device side.
func TestE2E_SubscribeNotify(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h := newHarness(t)

	notified := make(chan *wire.Notification, 4)
	h.client.SetNotificationHandler(func(n *wire.Notification) {
		notified <- n
	})

	if err := h.client.Subscribe(ctx, "B7", "29"); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if _, ok := h.server.GetSubscription("B7", "29"); !ok {
		t.Fatal("Expected server-side subscription")
	}

	// Characteristics without a subscribe binding refuse.
	err := h.client.Subscribe(ctx, "B7", "B0")
	var statusErr *interaction.StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != wire.StatusNotificationNotSupported {
		t.Fatalf("Expected notification not supported, got %v", err)
	}

	h.driver.turn(60)

	select {
	case n := <-notified:
		if n.Service != "B7" || n.Characteristic != "29" || n.Value != 60.0 {
			t.Errorf("Unexpected notification %+v", n)
		}
	case <-ctx.Done():
		t.Fatal("Timed out waiting for notification")
	}

	if err := h.client.Unsubscribe(ctx, "B7", "29"); err != nil {
		t.Fatalf("Unsubscribe failed: %v", err)
	}
	h.driver.mu.Lock()
	attached := h.driver.changed != nil
	h.driver.mu.Unlock()
	if attached {
		t.Error("Expected driver change function to be detached")
	}

	h.driver.turn(80)
	select {
	case n := <-notified:
		t.Errorf("Unexpected notification after unsubscribe: %+v", n)
	case <-time.After(50 * time.Millisecond):
	}

	var ops []log.Operation
	for _, e := range h.closeLog(t) {
		if e.Characteristic == "Rotation Speed" {
			ops = append(ops, e.Operation)
		}
	}
	want := []log.Operation{log.OperationSubscribe, log.OperationNotify, log.OperationUnsubscribe}
	if len(ops) != len(want) {
		t.Fatalf("Rotation Speed events = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("Event %d = %s, want %s", i, ops[i], want[i])
		}
	}
}

// TestE2E_RemoteInspect discovers the accessory through the client and
// renders it.
func TestE2E_RemoteInspect(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h := newHarness(t)
	remote := inspect.NewRemoteInspector("Bedroom Fan", h.client)

	tree, err := remote.Inspect(ctx)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if len(tree.Services) != 1 || len(tree.Services[0].Characteristics) != 4 {
		t.Fatalf("Unexpected tree shape: %+v", tree)
	}

	out := inspect.NewFormatter().FormatTree(tree)
	for _, want := range []string{
		"Accessory: Bedroom Fan",
		"Active = ACTIVE (1)",
		"Rotation Speed = 40%",
		"Current Fan State = <error:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}

	path, err := inspect.ParsePath("Fan/Rotation Speed")
	if err != nil {
		t.Fatalf("ParsePath failed: %v", err)
	}
	if err := remote.Write(ctx, path, 55.0); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	v, err := remote.Read(ctx, path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if v != 55.0 {
		t.Errorf("Expected 55, got %v", v)
	}
}
