package status

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	yaml "github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/andydunstall/ringcast/status/client"
	"github.com/andydunstall/ringcast/status/config"
)

func newRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "inspect simulation results",
		Long: `Inspect simulation results.

Queries the simulator for the results of the most recent simulations.

Examples:
  ringcast status runs
`,
	}

	var conf config.Config
	conf.RegisterFlags(cmd.Flags())

	cmd.Run = func(_ *cobra.Command, _ []string) {
		if err := conf.Validate(); err != nil {
			fmt.Printf("invalid config: %s\n", err.Error())
			os.Exit(1)
		}

		showRuns(&conf)
	}

	return cmd
}

type runSummary struct {
	ID       string `json:"id"`
	Strategy string `json:"strategy"`
	Devices  int    `json:"devices"`
	Complete bool   `json:"complete"`
	Rounds   uint64 `json:"rounds"`
	Sent     uint64 `json:"sent"`
}

type runsOutput struct {
	Runs []runSummary `json:"runs"`
}

func showRuns(conf *config.Config) {
	// The URL has already been validated in conf.
	url, _ := url.Parse(conf.Server.URL)
	client := client.NewClient(url)
	defer client.Close()

	results, err := client.Runs()
	if err != nil {
		fmt.Printf("failed to get runs: %s\n", err.Error())
		os.Exit(1)
	}

	output := runsOutput{
		Runs: []runSummary{},
	}
	for _, result := range results {
		output.Runs = append(output.Runs, runSummary{
			ID:       result.ID,
			Strategy: result.Strategy,
			Devices:  len(result.Devices),
			Complete: result.Complete(),
			Rounds:   result.Stats.Rounds,
			Sent:     result.Stats.Sent,
		})
	}
	b, _ := yaml.Marshal(output)
	fmt.Println(string(b))
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Args:  cobra.ExactArgs(1),
		Short: "inspect a simulation result",
		Long: `Inspect a simulation result.

Queries the simulator for the result of the simulation with the given run ID,
including the secrets known by each device.

Examples:
  ringcast status run bbc69214-6f5e-4d8a-8c6b-3f4e1f1f2a9b
`,
	}

	var conf config.Config
	conf.RegisterFlags(cmd.Flags())

	cmd.Run = func(_ *cobra.Command, args []string) {
		if err := conf.Validate(); err != nil {
			fmt.Printf("invalid config: %s\n", err.Error())
			os.Exit(1)
		}

		showRun(args[0], &conf)
	}

	return cmd
}

func showRun(id string, conf *config.Config) {
	// The URL has already been validated in conf.
	url, _ := url.Parse(conf.Server.URL)
	client := client.NewClient(url)
	defer client.Close()

	result, err := client.Run(id)
	if err != nil {
		fmt.Printf("failed to get run: %s: %s\n", id, err.Error())
		os.Exit(1)
	}

	b, _ := yaml.Marshal(result)
	fmt.Println(string(b))
}

func newDeviceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Args:  cobra.ExactArgs(2),
		Short: "inspect a device in a simulation",
		Long: `Inspect a device in a simulation.

Queries the simulator for the secrets known by the given device once the
simulation completed.

Examples:
  ringcast status device bbc69214-6f5e-4d8a-8c6b-3f4e1f1f2a9b 3
`,
	}

	var conf config.Config
	conf.RegisterFlags(cmd.Flags())

	cmd.Run = func(_ *cobra.Command, args []string) {
		if err := conf.Validate(); err != nil {
			fmt.Printf("invalid config: %s\n", err.Error())
			os.Exit(1)
		}

		device, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("invalid device: %s\n", args[1])
			os.Exit(1)
		}

		showDevice(args[0], device, &conf)
	}

	return cmd
}

func showDevice(id string, device int, conf *config.Config) {
	// The URL has already been validated in conf.
	url, _ := url.Parse(conf.Server.URL)
	client := client.NewClient(url)
	defer client.Close()

	result, err := client.Device(id, device)
	if err != nil {
		fmt.Printf("failed to get device: %s: %d: %s\n", id, device, err.Error())
		os.Exit(1)
	}

	b, _ := yaml.Marshal(result)
	fmt.Println(string(b))
}
