package cli

import (
	"github.com/spf13/cobra"

	"github.com/andydunstall/ringcast/cli/simulate"
	"github.com/andydunstall/ringcast/cli/status"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ringcast [command] (flags)",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Long: `Ringcast simulates gossip protocols that spread secrets around a ring of
devices.

Each device starts knowing a single secret and gossips with its neighbours in
the ring until every device knows every secret. Devices exchange messages via
a round-synchronous medium, where a message sent in one round is delivered in
a later round and each device receives at most one message per round.

Run a simulation of 5 devices using the one-way strategy with:

  $ ringcast simulate --strategy one-way --devices 5

Or run the two-way strategy, where secrets travel to the last device and are
reflected back:

  $ ringcast simulate --strategy two-way --devices 5

When running a simulation with '--admin.bind-addr', you can inspect the
results using:

  $ ringcast status runs
`,
	}

	cmd.AddCommand(simulate.NewCommand())
	cmd.AddCommand(status.NewCommand())

	return cmd
}

func init() {
	cobra.EnableCommandSorting = false
}
