package interactive

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hap-protocol/hap-go/cmd/hap-sim/sim"
	"github.com/hap-protocol/hap-go/pkg/accessory"
	"github.com/hap-protocol/hap-go/pkg/characteristics"
	"github.com/hap-protocol/hap-go/pkg/interaction"
	"github.com/hap-protocol/hap-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for notifications written from other
// goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// take returns the output so far and clears it.
func (b *syncBuffer) take() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.buf.String()
	b.buf.Reset()
	return s
}

type fixture struct {
	shell   *Shell
	out     *syncBuffer
	devices Devices
	server  *interaction.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	devices := Devices{
		Fan:        sim.NewFan(false, 50, false),
		CO2:        sim.NewCO2Sensor(600, 1000),
		AirQuality: sim.NewAirQualitySensor(characteristics.AirQualityGood),
	}

	var services []*model.Service
	for _, a := range []accessory.Accessory{
		devices.Fan.Accessory(), devices.CO2.Accessory(), devices.AirQuality.Accessory(),
	} {
		svcs, err := accessory.Services(a)
		require.NoError(t, err)
		services = append(services, svcs...)
	}

	server, err := interaction.NewServer(services, interaction.WithTimeouts(200*time.Millisecond, 200*time.Millisecond))
	require.NoError(t, err)
	client := interaction.Connect(server)
	client.SetTimeout(time.Second)
	t.Cleanup(func() { _ = client.Close() })

	simulator := sim.NewSimulator(devices.Fan, devices.CO2, devices.AirQuality, nil)
	t.Cleanup(func() { simulator.Stop() })

	out := &syncBuffer{}
	shell := NewShell("Living Room", server, client, devices, simulator, time.Hour, out)
	return &fixture{shell: shell, out: out, devices: devices, server: server}
}

func (f *fixture) run(t *testing.T, line string) string {
	t.Helper()
	assert.True(t, f.shell.Execute(context.Background(), line))
	return f.out.take()
}

func TestShellInspect(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "inspect")
	assert.Contains(t, out, "Accessory: Living Room")
	assert.Contains(t, out, "Fan\n")
	assert.Contains(t, out, "  Rotation Speed = 50% (float 0..100 step 1, RWN)")
	assert.Contains(t, out, "  Carbon Dioxide Level = 600 ppm")
	assert.Contains(t, out, "  Air Quality = GOOD (2)")

	out = f.run(t, "inspect Fan")
	assert.Contains(t, out, "Fan\n")
	assert.Contains(t, out, "  Active = INACTIVE (0)")
	assert.NotContains(t, out, "Carbon Dioxide")

	out = f.run(t, "i Fan/RotationSpeed")
	assert.Equal(t, "Rotation Speed = 50% (float 0..100 step 1, RWN)\n", out)

	out = f.run(t, "inspect Fan/CarbonDioxideLevel")
	assert.Contains(t, out, "Error:")

	out = f.run(t, "inspect Nope")
	assert.Contains(t, out, "Invalid path:")
}

func TestShellDiscover(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "discover")
	assert.Contains(t, out, "Accessory: Living Room")
	assert.Contains(t, out, "Carbon Dioxide Sensor")
	assert.Contains(t, out, "  Current Fan State = INACTIVE (0)")
	assert.Contains(t, out, "  Carbon Dioxide Level = 600 ppm")
}

func TestShellReadWrite(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "Fan/RotationSpeed = 50%\n", f.run(t, "read Fan/RotationSpeed"))
	assert.Equal(t, "Fan/Active = INACTIVE (0)\n", f.run(t, "r B7/B0"))

	assert.Equal(t, "Wrote Fan/Active = ACTIVE (1)\n", f.run(t, "write Fan/Active active"))
	assert.Equal(t, characteristics.ActiveStateActive, f.devices.Fan.Active.Value())
	assert.Equal(t, characteristics.CurrentFanStateBlowingAir, f.devices.Fan.Current.Value())

	assert.Equal(t, "Wrote Fan/RotationSpeed = 75%\n", f.run(t, "w Fan/RotationSpeed 75"))
	assert.Equal(t, 75.0, f.devices.Fan.Speed.Value())
	assert.Equal(t, "Fan/RotationSpeed = 75%\n", f.run(t, "read Fan/RotationSpeed"))
}

func TestShellWriteErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		line string
		want string
	}{
		{"missing value", "write Fan/Active", "Usage: write <path> <value>"},
		{"partial path", "write Fan 1", "does not name a characteristic"},
		{"bad input", "write Fan/RotationSpeed fast", "Error:"},
		{"out of range", "write Fan/RotationSpeed 150", "Error:"},
		{"unknown state", "write Fan/TargetFanState turbo", "Error:"},
		{"read only", "write CarbonDioxideSensor/CarbonDioxideLevel 5", "Error:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, f.run(t, tt.line), tt.want)
		})
	}
	assert.Equal(t, 50.0, f.devices.Fan.Speed.Value())
	assert.Equal(t, characteristics.TargetFanStateManual, f.devices.Fan.Target.Value())
}

func TestShellReadFailure(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "CO2 level reads now fail: bus fault\n", f.run(t, "fail bus fault"))
	out := f.run(t, "read CarbonDioxideSensor/CarbonDioxideLevel")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "bus fault")

	assert.Equal(t, "CO2 level reads restored\n", f.run(t, "fail clear"))
	assert.Equal(t, "CarbonDioxideSensor/CarbonDioxideLevel = 600 ppm\n",
		f.run(t, "read CarbonDioxideSensor/CarbonDioxideLevel"))
}

func TestShellSubscriptions(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "No active subscriptions\n", f.run(t, "subs"))

	assert.Equal(t, "Subscribed to CarbonDioxideSensor/CarbonDioxideLevel\n",
		f.run(t, "sub CarbonDioxideSensor/CarbonDioxideLevel"))
	assert.Equal(t, 1, f.server.SubscriptionCount())

	// Notifications may arrive before or after the command output.
	assert.True(t, f.shell.Execute(context.Background(), "co2 1200"))
	assert.Eventually(t, func() bool {
		return strings.Contains(f.out.String(),
			"[NOTIFY] CarbonDioxideSensor/CarbonDioxideLevel = 1200 ppm\n")
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, f.out.take(), "CO2 level set to 1200 ppm (CO2_LEVELS_ABNORMAL)\n")

	assert.Eventually(t, func() bool {
		sub, ok := f.server.GetSubscription("97", "93")
		return ok && sub.Count() == 1
	}, time.Second, 5*time.Millisecond)
	out := f.run(t, "subs")
	assert.Contains(t, out, "Active subscriptions (1):")
	assert.Contains(t, out, "CarbonDioxideSensor/CarbonDioxideLevel")
	assert.Contains(t, out, "1 notification(s)")

	assert.Equal(t, "Unsubscribed from CarbonDioxideSensor/CarbonDioxideLevel\n",
		f.run(t, "unsub CarbonDioxideSensor/CarbonDioxideLevel"))
	assert.Equal(t, "No active subscriptions\n", f.run(t, "subs"))
}

func TestShellSubscribeErrors(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "Usage: sub <path>\n", f.run(t, "sub"))
	assert.Equal(t, "Usage: unsub <path>\n", f.run(t, "unsub"))
	assert.Contains(t, f.run(t, "sub Fan"), "does not name a characteristic")
	assert.Equal(t, 0, f.server.SubscriptionCount())
}

func TestShellEnumNotification(t *testing.T) {
	f := newFixture(t)

	f.run(t, "sub Fan/CurrentFanState")
	assert.True(t, f.shell.Execute(context.Background(), "write Fan/Active 1"))

	assert.Eventually(t, func() bool {
		return strings.Contains(f.out.String(), "[NOTIFY] Fan/CurrentFanState = BLOWING_AIR (1)\n")
	}, time.Second, 5*time.Millisecond)
}

func TestShellDeviceCommands(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "CO2 level: 600 ppm\n", f.run(t, "co2"))
	assert.Equal(t, "Invalid level: -5\n", f.run(t, "co2 -5"))
	assert.Equal(t, "Invalid level: lots\n", f.run(t, "co2 lots"))

	assert.Equal(t, "Air quality: GOOD\n", f.run(t, "quality"))
	assert.Equal(t, "Air quality set to POOR\n", f.run(t, "quality poor"))
	assert.Equal(t, characteristics.AirQualityPoor, f.devices.AirQuality.Quality.Value())
	assert.Equal(t, "Unknown air quality: smoggy\n", f.run(t, "quality smoggy"))

	assert.Equal(t, "Usage: latency <ms>\n", f.run(t, "latency"))
	assert.Equal(t, "Invalid latency: x\n", f.run(t, "latency x"))
	assert.Equal(t, "Fan latency set to 20ms\n", f.run(t, "latency 20"))
	assert.Equal(t, "Fan/RotationSpeed = 50%\n", f.run(t, "read Fan/RotationSpeed"))
}

func TestShellSimulation(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "status")
	assert.Contains(t, out, "Device Status:")
	assert.Contains(t, out, "Fan:         INACTIVE, INACTIVE, target MANUAL, speed 50%")
	assert.Contains(t, out, "CO2:         600 ppm, CO2_LEVELS_NORMAL (threshold 1000)")
	assert.Contains(t, out, "Simulation:  stopped")

	out = f.run(t, "step")
	assert.Contains(t, out, "CO2:         650 ppm")
	assert.Contains(t, out, "Air quality: GOOD")

	assert.Equal(t, "Simulation started (every 1h0m0s)\n", f.run(t, "start"))
	assert.Equal(t, "Simulation already running\n", f.run(t, "start"))
	assert.Contains(t, f.run(t, "status"), "Simulation:  running")
	assert.Equal(t, "Simulation stopped\n", f.run(t, "stop"))
	assert.Equal(t, "Simulation not running\n", f.run(t, "stop"))
}

func TestShellGeneral(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "", f.run(t, "   "))
	assert.Contains(t, f.run(t, "help"), "Accessory Simulator Commands:")
	assert.Equal(t, "Unknown command: dance (type 'help' for commands)\n", f.run(t, "dance"))
	assert.Equal(t, "Usage: read <path>\n", f.run(t, "read"))
	assert.Contains(t, f.run(t, "read /Fan"), "Invalid path:")

	assert.False(t, f.shell.Execute(context.Background(), "quit"))
	assert.Equal(t, "Exiting...\n", f.out.take())
}
