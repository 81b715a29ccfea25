package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Testeur1337/myPomodoro/internal/service"
)

var treeArchived bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show goals, projects and topics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			nodes, err := a.svc.Tree(cmd.Context(), treeArchived)
			if err != nil {
				return err
			}
			fmt.Println(renderTree(nodes))
			return nil
		})
	},
}

func init() {
	treeCmd.Flags().BoolVarP(&treeArchived, "all", "a", false, "Include archived items")
}

func renderTree(nodes []service.GoalNode) string {
	if len(nodes) == 0 {
		return mutedStyle.Render("No goals yet. Run 'pomodoro repair' to create the Unassigned defaults.")
	}
	archived := func(b bool) string {
		if b {
			return " " + mutedStyle.Render("(archived)")
		}
		return ""
	}
	var b strings.Builder
	for i, g := range nodes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s%s %s\n", headerStyle.Render(g.Goal.Name), archived(g.Goal.Archived), mutedStyle.Render(g.Goal.ID))
		for _, p := range g.Projects {
			fmt.Fprintf(&b, "  %s %s%s %s\n", colorDot(p.Project.Color), p.Project.Name, archived(p.Project.Archived), mutedStyle.Render(p.Project.ID))
			for _, t := range p.Topics {
				fmt.Fprintf(&b, "    %s %s%s %s\n", colorDot(t.Color), t.Name, archived(t.Archived), mutedStyle.Render(t.ID))
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
