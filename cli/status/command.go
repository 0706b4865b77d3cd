package status

import "github.com/spf13/cobra"

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "inspect simulation results",
		Long: `Inspect simulation results.

When running 'ringcast simulate' with '--admin.bind-addr', the simulator
exposes a status API to inspect the results of each simulation, this can be
used to answer questions such as:
* Did every device learn every secret?
* How many rounds and messages did the simulation need?
* Which secrets did a particular device learn?

Examples:
  # Inspect all stored simulation results.
  ringcast status runs

  # Inspect simulation 'bbc69214-...'.
  ringcast status run bbc69214-...

  # Inspect device 3 in simulation 'bbc69214-...'.
  ringcast status device bbc69214-... 3

  # Inspect the results of a simulator on 10.26.104.56:8001.
  ringcast status runs --server.url http://10.26.104.56:8001
`,
	}

	cmd.AddCommand(newRunsCommand())
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newDeviceCommand())

	return cmd
}
