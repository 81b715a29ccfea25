package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Testeur1337/myPomodoro/internal/model"
	"github.com/Testeur1337/myPomodoro/internal/service"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Record and list sessions",
}

var sessionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a session that just ended",
	Long: `Record a focus or break session ending now.

Examples:
  pomodoro session add --topic <topic-id> --minutes 25
  pomodoro session add --type break --minutes 5
  pomodoro session add --topic <topic-id> --minutes 50 --rating 4 --note "deep work"`,
	Args: cobra.NoArgs,
	RunE: runSessionAdd,
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sessions of a day",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSessionList,
}

var (
	sessionType    string
	sessionTopic   string
	sessionMinutes int
	sessionNote    string
	sessionRating  int
)

func init() {
	sessionAddCmd.Flags().StringVarP(&sessionType, "type", "t", string(model.SessionFocus), "Session type (focus, break)")
	sessionAddCmd.Flags().StringVar(&sessionTopic, "topic", "", "Topic id (required for focus sessions)")
	sessionAddCmd.Flags().IntVarP(&sessionMinutes, "minutes", "m", 25, "Length in minutes")
	sessionAddCmd.Flags().StringVarP(&sessionNote, "note", "n", "", "Free-form note")
	sessionAddCmd.Flags().IntVarP(&sessionRating, "rating", "r", 0, "Rating from 1 to 5")

	sessionCmd.AddCommand(sessionAddCmd)
	sessionCmd.AddCommand(sessionListCmd)
}

func runSessionAdd(cmd *cobra.Command, args []string) error {
	if sessionMinutes <= 0 {
		return errors.New("--minutes must be positive")
	}
	end := time.Now()
	in := service.SessionInput{
		Type:      model.SessionType(sessionType),
		Note:      sessionNote,
		StartTime: end.Add(-time.Duration(sessionMinutes) * time.Minute),
		EndTime:   end,
	}
	if sessionTopic != "" {
		in.TopicID = model.Ptr(sessionTopic)
	}
	if cmd.Flags().Changed("rating") {
		in.Rating = model.Ptr(sessionRating)
	}
	return withApp(func(a *app) error {
		s, err := a.svc.CreateSession(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Printf("%s Recorded %s session of %d min", successStyle.Render("✓"), s.Type, sessionMinutes)
		if s.TopicName != nil {
			fmt.Printf(" on %q", *s.TopicName)
		}
		fmt.Println()
		return nil
	})
}

func runSessionList(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		date := a.svc.Today()
		if len(args) == 1 {
			d, err := model.ParseDate(args[0])
			if err != nil {
				return err
			}
			date = d
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		from := time.Date(date.Time().Year(), date.Time().Month(), date.Time().Day(), 0, 0, 0, 0, loc)
		sessions, err := a.svc.ListSessions(cmd.Context(), service.SessionFilter{From: from, To: from.AddDate(0, 0, 1)})
		if err != nil {
			return err
		}
		fmt.Println(headerStyle.Render("Sessions " + date.String()))
		if len(sessions) == 0 {
			fmt.Println(mutedStyle.Render("No sessions."))
			return nil
		}
		total := 0
		for _, s := range sessions {
			fmt.Println(renderSession(s, loc))
			if s.Type == model.SessionFocus {
				total += s.DurationSeconds
			}
		}
		fmt.Println(mutedStyle.Render(fmt.Sprintf("Focus total: %d min", total/60)))
		return nil
	})
}

func renderSession(s model.Session, loc *time.Location) string {
	label := string(s.Type)
	if s.TopicName != nil {
		label = *s.TopicName
	}
	line := fmt.Sprintf("%s  %3d min  %s", s.StartTime.In(loc).Format("15:04"), s.DurationSeconds/60, label)
	if s.Rating != nil {
		line += fmt.Sprintf("  %d/5", *s.Rating)
	}
	if s.Note != "" {
		line += "  " + mutedStyle.Render(s.Note)
	}
	return line
}
