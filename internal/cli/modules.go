package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/captain/pkg/convert"
)

var (
	styleModuleName  = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Width(22)
	styleModuleTopic = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// modulesCommand creates the command listing the built-in converter modules.
func (c *CLI) modulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the built-in converter modules",
		Long: `List the built-in converter modules with the commands they answer to.

Reference a module by name under the modules key in config.yaml to include
it in a run; dots in configured names are treated as underscores.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, m := range convert.Builtins() {
				info := m.Info()
				topics := styleModuleTopic.Render("(" + strings.Join(info.Topics, ", ") + ")")
				fmt.Fprintln(out, styleModuleName.Render(info.Name)+" "+info.Description+" "+topics)
			}
			return nil
		},
	}
}
