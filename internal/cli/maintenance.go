package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Testeur1337/myPomodoro/internal/backup"
	"github.com/Testeur1337/myPomodoro/internal/hierarchy"
	"github.com/Testeur1337/myPomodoro/internal/scheduler"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair the goal, project and topic hierarchy",
	Long: `Ensure the Unassigned placeholders exist and re-home anything whose parent
is missing. Running it again on repaired data changes nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			rep, err := a.svc.Repair(cmd.Context())
			if err != nil {
				return err
			}
			printReport(rep)
			return nil
		})
	},
}

var exportEncrypt bool

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all data to a JSON file",
	Long: `Write every goal, project, topic, session and planner entry to a file.

Examples:
  pomodoro export backup.json
  pomodoro export backup.json --encrypt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pass := ""
		if exportEncrypt {
			p, err := newPassphrase()
			if err != nil {
				return err
			}
			pass = p
		}
		return withApp(func(a *app) error {
			ds, err := a.svc.Export(cmd.Context())
			if err != nil {
				return err
			}
			if err := backup.WriteFile(args[0], ds, pass); err != nil {
				return err
			}
			fmt.Printf("%s Exported to %s\n", successStyle.Render("✓"), args[0])
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with an exported file",
	Long: `Validate an export, repair its hierarchy and make it the current data.
Encrypted exports prompt for their passphrase.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}
		var pass backup.PassphraseFunc
		if backup.Encrypted(raw) {
			fmt.Println(mutedStyle.Render(args[0] + " is encrypted."))
			pass = func() (string, error) { return readPassphrase("Passphrase: ") }
		}
		ds, err := backup.Decode(bytes.NewReader(raw), pass)
		if err != nil {
			return err
		}
		return withApp(func(a *app) error {
			rep, err := a.svc.Import(cmd.Context(), ds)
			if err != nil {
				return err
			}
			fmt.Printf("%s Imported %s\n", successStyle.Render("✓"), args[0])
			printReport(rep)
			return nil
		})
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a snapshot to the backup directory now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			path, err := scheduler.NewJobs(a.svc, a.db, maintenanceOf(cfg)).Backup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s Backup written to %s\n", successStyle.Render("✓"), path)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().BoolVarP(&exportEncrypt, "encrypt", "e", false, "Encrypt the export with a passphrase")
}

func printReport(rep hierarchy.Report) {
	if !rep.Changed() {
		fmt.Println(mutedStyle.Render("Hierarchy is consistent, nothing to repair."))
		return
	}
	line := func(label string, ids []string) {
		if len(ids) > 0 {
			fmt.Printf("  %-10s %s\n", label, strings.Join(ids, ", "))
		}
	}
	count := func(label string, n int) {
		if n > 0 {
			fmt.Printf("  %-10s %d\n", label, n)
		}
	}
	fmt.Println(headerStyle.Render("Hierarchy repaired"))
	line("created", rep.Created)
	line("adopted", rep.Adopted)
	line("restored", rep.Restored)
	count("projects", rep.ReboundProjects)
	count("topics", rep.ReboundTopics)
	count("sessions", rep.ReboundSessions+rep.RewrittenSessions)
}
