// Package interactive provides the interactive command-line interface
// for the accessory simulator.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/hap-protocol/hap-go/cmd/hap-sim/sim"
	"github.com/hap-protocol/hap-go/pkg/characteristics"
	"github.com/hap-protocol/hap-go/pkg/inspect"
	"github.com/hap-protocol/hap-go/pkg/interaction"
	"github.com/hap-protocol/hap-go/pkg/wire"
)

// Devices groups the simulated devices behind the accessory.
type Devices struct {
	Fan        *sim.Fan
	CO2        *sim.CO2Sensor
	AirQuality *sim.AirQualitySensor
}

// Shell handles interactive mode for hap-sim. Local commands go straight to
// the services; remote commands go through the interaction client.
type Shell struct {
	server    *interaction.Server
	client    *interaction.Client
	local     *inspect.Inspector
	remote    *inspect.RemoteInspector
	formatter *inspect.Formatter
	devices   Devices
	simulator *sim.Simulator
	interval  time.Duration

	outMu sync.Mutex
	out   io.Writer
}

// NewShell creates a shell over a server and a client connected to it.
// Output goes to out until Run attaches a terminal.
func NewShell(name string, server *interaction.Server, client *interaction.Client,
	devices Devices, simulator *sim.Simulator, interval time.Duration, out io.Writer) *Shell {
	s := &Shell{
		server:    server,
		client:    client,
		local:     inspect.NewInspector(name, server.Services()),
		remote:    inspect.NewRemoteInspector(name, client),
		formatter: inspect.NewFormatter(),
		devices:   devices,
		simulator: simulator,
		interval:  interval,
		out:       out,
	}
	client.SetNotificationHandler(s.handleNotification)
	return s
}

func (s *Shell) printf(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) print(text string) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprint(s.out, text)
}

func (s *Shell) setOutput(w io.Writer) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	s.out = w
}

// handleNotification prints notifications from subscribed characteristics.
func (s *Shell) handleNotification(n *wire.Notification) {
	path := &inspect.Path{Service: n.Service, Characteristic: n.Characteristic}
	info, _ := s.local.Info(path)
	s.printf("[NOTIFY] %s = %s\n", path.DisplayString(), s.formatter.FormatState(info, n.Value))
}

// Run starts the interactive command loop on the terminal.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "hap> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s.setOutput(rl.Stdout())

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			s.print("Exiting...\n")
			cancel()
			return nil
		}

		if !s.Execute(ctx, line) {
			cancel()
			return nil
		}
	}
}

// Execute runs one command line. It returns false when the shell should
// exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "inspect", "i":
		s.cmdInspect(ctx, args)

	case "discover", "d":
		s.cmdDiscover(ctx)

	case "read", "r":
		s.cmdRead(ctx, args)

	case "write", "w":
		s.cmdWrite(ctx, args)

	case "sub", "subscribe":
		s.cmdSubscribe(ctx, args, true)

	case "unsub", "unsubscribe":
		s.cmdSubscribe(ctx, args, false)

	case "subs":
		s.cmdSubscriptions()

	case "co2":
		s.cmdCO2(args)

	case "quality":
		s.cmdQuality(args)

	case "latency":
		s.cmdLatency(args)

	case "fail":
		s.cmdFail(args)

	case "start", "sim-start":
		s.cmdStart()

	case "stop", "sim-stop":
		s.cmdStop()

	case "step":
		s.simulator.Step()
		s.cmdStatus()

	case "status":
		s.cmdStatus()

	case "quit", "exit", "q":
		s.print("Exiting...\n")
		return false

	default:
		s.printf("Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	s.print(`
Accessory Simulator Commands:
  Inspection:
    inspect [path]     - Inspect local services (or a single service)
    discover           - Discover and read services through the client
    read <path>        - Read a characteristic through the client
    write <path> <val> - Write a characteristic through the client

  Notifications:
    sub <path>         - Subscribe to a characteristic
    unsub <path>       - Cancel a subscription
    subs               - List active subscriptions

  Simulation:
    co2 <ppm>          - Set the carbon dioxide level
    quality <state>    - Set the air quality (e.g. GOOD, POOR)
    latency <ms>       - Delay fan reads and writes
    fail <msg>|clear   - Make carbon dioxide level reads fail
    start              - Start simulation
    stop               - Stop simulation
    step               - Advance the simulation by one step
    status             - Show device status

  General:
    help               - Show this help
    quit               - Exit simulator

  Path Format:
    service/characteristic - e.g., Fan/RotationSpeed
    Can use names or short types: B7/29 or "Rotation Speed"
`)
}

func (s *Shell) parsePath(args []string, usage string) (*inspect.Path, bool) {
	if len(args) == 0 {
		s.printf("Usage: %s\n", usage)
		return nil, false
	}
	path, err := inspect.ParsePath(args[0])
	if err != nil {
		s.printf("Invalid path: %v\n", err)
		return nil, false
	}
	if path.IsPartial {
		s.printf("Error: %s does not name a characteristic\n", path.DisplayString())
		return nil, false
	}
	return path, true
}

// cmdInspect handles the inspect command.
func (s *Shell) cmdInspect(ctx context.Context, args []string) {
	if len(args) == 0 {
		s.print(s.formatter.FormatTree(s.local.Inspect(ctx)))
		return
	}

	path, err := inspect.ParsePath(args[0])
	if err != nil {
		s.printf("Invalid path: %v\n", err)
		return
	}

	if path.IsPartial {
		node, err := s.local.InspectService(ctx, path)
		if err != nil {
			s.printf("Error: %v\n", err)
			return
		}
		s.print(s.formatter.FormatService(node, 0))
		return
	}

	c, err := s.local.Lookup(path)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	node := inspect.CharacteristicNode{Info: c.Info(), Read: c.Access().CanRead()}
	if node.Read {
		node.Value, node.Err = c.ReadValue(ctx)
	}
	s.printf("%s\n", s.formatter.FormatCharacteristic(&node))
}

func (s *Shell) cmdDiscover(ctx context.Context) {
	tree, err := s.remote.Inspect(ctx)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	s.print(s.formatter.FormatTree(tree))
}

func (s *Shell) cmdRead(ctx context.Context, args []string) {
	path, ok := s.parsePath(args, "read <path>")
	if !ok {
		return
	}

	value, err := s.remote.Read(ctx, path)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	info, _ := s.local.Info(path)
	s.printf("%s = %s\n", path.DisplayString(), s.formatter.FormatState(info, value))
}

func (s *Shell) cmdWrite(ctx context.Context, args []string) {
	if len(args) < 2 {
		s.print("Usage: write <path> <value>\n")
		return
	}
	path, ok := s.parsePath(args, "write <path> <value>")
	if !ok {
		return
	}

	info, err := s.local.Info(path)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	value, err := inspect.ParseValue(info, strings.Join(args[1:], " "))
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	if err := s.remote.Write(ctx, path, value); err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	s.printf("Wrote %s = %s\n", path.DisplayString(), s.formatter.FormatState(info, value))
}

func (s *Shell) cmdSubscribe(ctx context.Context, args []string, subscribe bool) {
	usage := "unsub <path>"
	if subscribe {
		usage = "sub <path>"
	}
	path, ok := s.parsePath(args, usage)
	if !ok {
		return
	}

	if subscribe {
		if err := s.client.Subscribe(ctx, path.Service, path.Characteristic); err != nil {
			s.printf("Error: %v\n", err)
			return
		}
		s.printf("Subscribed to %s\n", path.DisplayString())
		return
	}

	if err := s.client.Unsubscribe(ctx, path.Service, path.Characteristic); err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	s.printf("Unsubscribed from %s\n", path.DisplayString())
}

func (s *Shell) cmdSubscriptions() {
	subs := s.server.Subscriptions()
	if len(subs) == 0 {
		s.print("No active subscriptions\n")
		return
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, "Active subscriptions (%d):\n", len(subs))
	for _, sub := range subs {
		path := &inspect.Path{Service: sub.Service, Characteristic: sub.Characteristic}
		fmt.Fprintf(s.out, "  %-36s %d notification(s)\n", path.DisplayString(), sub.Count())
	}
}

func (s *Shell) cmdCO2(args []string) {
	if len(args) == 0 {
		s.printf("CO2 level: %s ppm\n", formatFloat(s.devices.CO2.Level.Value()))
		return
	}
	level, err := strconv.ParseFloat(args[0], 64)
	if err != nil || level < 0 {
		s.printf("Invalid level: %s\n", args[0])
		return
	}
	s.devices.CO2.Measure(level)
	s.printf("CO2 level set to %s ppm (%s)\n", formatFloat(level), s.devices.CO2.Detected.Value())
}

func (s *Shell) cmdQuality(args []string) {
	if len(args) == 0 {
		s.printf("Air quality: %s\n", s.devices.AirQuality.Quality.Value())
		return
	}
	for _, q := range []characteristics.AirQualityState{
		characteristics.AirQualityUnknown, characteristics.AirQualityExcellent,
		characteristics.AirQualityGood, characteristics.AirQualityFair,
		characteristics.AirQualityInferior, characteristics.AirQualityPoor,
	} {
		if strings.EqualFold(q.String(), args[0]) {
			s.devices.AirQuality.Measure(q)
			s.printf("Air quality set to %s\n", q)
			return
		}
	}
	s.printf("Unknown air quality: %s\n", args[0])
}

func (s *Shell) cmdLatency(args []string) {
	if len(args) == 0 {
		s.print("Usage: latency <ms>\n")
		return
	}
	ms, err := strconv.Atoi(args[0])
	if err != nil || ms < 0 {
		s.printf("Invalid latency: %s\n", args[0])
		return
	}
	d := time.Duration(ms) * time.Millisecond
	fan := s.devices.Fan
	fan.Active.SetLatency(d)
	fan.Current.SetLatency(d)
	fan.Target.SetLatency(d)
	fan.Speed.SetLatency(d)
	s.printf("Fan latency set to %s\n", d)
}

func (s *Shell) cmdFail(args []string) {
	if len(args) == 0 {
		s.print("Usage: fail <message>|clear\n")
		return
	}
	if strings.EqualFold(args[0], "clear") {
		s.devices.CO2.Level.SetFailure(nil)
		s.print("CO2 level reads restored\n")
		return
	}
	msg := strings.Join(args, " ")
	s.devices.CO2.Level.SetFailure(errors.New(msg))
	s.printf("CO2 level reads now fail: %s\n", msg)
}

func (s *Shell) cmdStart() {
	if !s.simulator.Start(s.interval) {
		s.print("Simulation already running\n")
		return
	}
	s.printf("Simulation started (every %s)\n", s.interval)
}

func (s *Shell) cmdStop() {
	if !s.simulator.Stop() {
		s.print("Simulation not running\n")
		return
	}
	s.print("Simulation stopped\n")
}

func (s *Shell) cmdStatus() {
	fan := s.devices.Fan
	co2 := s.devices.CO2

	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintln(s.out, "Device Status:")
	fmt.Fprintf(s.out, "  Fan:         %s, %s, target %s, speed %s%%\n",
		fan.Active.Value(), fan.Current.Value(), fan.Target.Value(), formatFloat(fan.Speed.Value()))
	fmt.Fprintf(s.out, "  CO2:         %s ppm, %s (threshold %s)\n",
		formatFloat(co2.Level.Value()), co2.Detected.Value(), formatFloat(co2.Threshold))
	fmt.Fprintf(s.out, "  Air quality: %s\n", s.devices.AirQuality.Quality.Value())
	fmt.Fprintf(s.out, "  Simulation:  %s\n", runState(s.simulator.Running()))
	fmt.Fprintf(s.out, "  Subscribers: %d\n", s.server.SubscriptionCount())
}

func runState(running bool) string {
	if running {
		return "running"
	}
	return "stopped"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
