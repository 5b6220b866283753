package commands

import (
	"github.com/spf13/cobra"

	"github.com/hardev/prismops/cmd/prismops/handlers"
)

// Deploy returns the command for deploying an AHV virtual machine.
//
// The command lists available disk images and subnets, resolves one of each
// (interactively, or by name via --image-name and --subnet), and submits a
// VM creation request built from the deploy profile.
//
// Nothing is created unless --do-it is given; --dry-run prints the creation
// payload instead of sending it.
func Deploy() *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy an AHV VM from listed inventory",
		Long: `Deploy a virtual machine on AHV through Prism Central.

The command fetches the image and subnet inventory, lets you pick one of
each, shows a deployment summary, and creates the VM. On success a JSON
deployment record is written next to the working directory.

Connection settings are read from a key=value file (default: files/vars.txt)
with the keys baseUrl, username and password.

Examples:
  # Interactive selection, preview only
  prismops deploy --dry-run

  # Non-interactive, actually create the VM
  prismops deploy --image-name win2022-base --subnet prod-vlan120 --do-it

  # Custom hardware profile
  prismops deploy --profile big-vm.yaml --do-it`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "files/vars.txt", "Path to the key=value connection settings file")
	cmd.Flags().StringVar(&opts.ProfilePath, "profile", "", "Path to a deploy profile YAML (default: built-in Windows profile)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "VM name (default: Windows-VM-<timestamp>)")
	cmd.Flags().StringVar(&opts.ImageName, "image-name", "", "Select the disk image by name instead of prompting")
	cmd.Flags().StringVar(&opts.SubnetName, "subnet", "", "Select the subnet by name instead of prompting")
	cmd.Flags().BoolVar(&opts.DoIt, "do-it", false, "Confirm that the VM should really be created")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Build and print the creation payload without sending it")
	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "Skip the interactive confirmation prompt")

	return cmd
}
