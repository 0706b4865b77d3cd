package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/andydunstall/ringcast/pkg/gossip"
	"github.com/andydunstall/ringcast/pkg/log"
)

type AdminConfig struct {
	// BindAddr is the address to bind to listen for admin requests. If
	// empty the admin server is disabled.
	BindAddr string `json:"bind_addr" yaml:"bind_addr"`

	// AdvertiseAddr is the address to advertise for the status API. If empty
	// it is derived from BindAddr.
	AdvertiseAddr string `json:"advertise_addr" yaml:"advertise_addr"`
}

func (c *AdminConfig) Validate() error {
	if c.BindAddr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.BindAddr); err != nil {
		return fmt.Errorf("invalid bind addr: %w", err)
	}
	if c.AdvertiseAddr != "" {
		if _, _, err := net.SplitHostPort(c.AdvertiseAddr); err != nil {
			return fmt.Errorf("invalid advertise addr: %w", err)
		}
	}
	return nil
}

func (c *AdminConfig) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(
		&c.BindAddr,
		"admin.bind-addr",
		c.BindAddr,
		`
The host/port to listen for admin requests.

The admin server exposes Prometheus metrics at '/metrics' and the results of
each simulation at '/status/simulation/runs'.

When set, the process keeps serving the admin API after the simulation
completes until it receives a SIGINT or SIGTERM. If empty, the admin server
is disabled and the process exits once the simulation completes.`,
	)

	fs.StringVar(
		&c.AdvertiseAddr,
		"admin.advertise-addr",
		c.AdvertiseAddr,
		`
Admin address to advertise, which is logged on startup as the URL to pass to
'ringcast status --server.url'.

By default, if the bind address includes an IP to bind to that will be used.
If the bind address does not include an IP (such as ':8001') the hosts
private IP will be used.`,
	)
}

type Config struct {
	// Strategy is the gossip strategy run by every device.
	Strategy string `json:"strategy" yaml:"strategy"`

	// Devices is the number of devices in the ring.
	Devices int `json:"devices" yaml:"devices"`

	// MaxRounds is the maximum number of rounds before the simulation is
	// considered stalled. Zero means no limit, in which case the simulation
	// only fails if no messages are pending.
	MaxRounds uint64 `json:"max_rounds" yaml:"max_rounds"`

	// Timeout is the maximum duration of the simulation. Zero means no
	// limit.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Trace records every message sent in the simulation result.
	Trace bool `json:"trace" yaml:"trace"`

	Admin AdminConfig `json:"admin" yaml:"admin"`

	Log log.Config `json:"log" yaml:"log"`
}

func Default() *Config {
	return &Config{
		Strategy: string(gossip.StrategyOneWay),
		Devices:  10,
		Timeout:  time.Minute,
		Log: log.Config{
			Level: "info",
		},
	}
}

func (c *Config) Validate() error {
	if c.Strategy == "" {
		return fmt.Errorf("missing strategy")
	}
	if _, err := gossip.ParseStrategy(c.Strategy); err != nil {
		return err
	}

	if c.Devices <= 0 {
		return fmt.Errorf("%w: %d", gossip.ErrInvalidDevices, c.Devices)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}

	if err := c.Admin.Validate(); err != nil {
		return fmt.Errorf("admin: %w", err)
	}

	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	var strategies []string
	for _, strategy := range gossip.Strategies() {
		strategies = append(strategies, "'"+string(strategy)+"'")
	}

	fs.StringVar(
		&c.Strategy,
		"strategy",
		c.Strategy,
		`
The gossip strategy run by every device. Either `+strings.Join(strategies, " or ")+`.

With 'one-way', each device only gossips to its successor in the ring. With
'two-way', secrets travel from device 0 to the last device and are reflected
back.`,
	)

	fs.IntVar(
		&c.Devices,
		"devices",
		c.Devices,
		`
The number of devices in the ring.`,
	)

	fs.Uint64Var(
		&c.MaxRounds,
		"max-rounds",
		c.MaxRounds,
		`
The maximum number of rounds before the simulation is considered stalled.

Both strategies need 2(devices-1) rounds to converge, so a limit lower than
that always fails. Defaults to 0, which disables the limit.`,
	)

	fs.DurationVar(
		&c.Timeout,
		"timeout",
		c.Timeout,
		`
The maximum duration of the simulation.

Set to 0 to disable the timeout.`,
	)

	fs.BoolVar(
		&c.Trace,
		"trace",
		c.Trace,
		`
Whether to record every message sent in the simulation result.`,
	)

	c.Admin.RegisterFlags(fs)
	c.Log.RegisterFlags(fs)
}
