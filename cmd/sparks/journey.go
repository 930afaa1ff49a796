package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sparks/internal/bootstrap"
	journeydto "sparks/internal/modules/journey/dto"
)

func newMoodCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mood <mood>",
		Short: "Record the current mood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				standing, err := app.JourneyCLI.UpdateMood(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mood: %s\n", standing.CurrentMood)
				return nil
			})
		},
	}
}

func newQuestsCmd(flags *rootFlags) *cobra.Command {
	quests := &cobra.Command{Use: "quests", Short: "Browse and complete quests"}

	var questType, difficulty string
	var completedOnly, pendingOnly bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List personalized quests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := requireSession(ctx, app); err != nil {
					return err
				}
				items, err := app.JourneyCLI.ListQuests(ctx, questType, difficulty, completedOnly, pendingOnly)
				if err != nil {
					return err
				}
				printQuests(cmd, items)
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&questType, "type", "all", "self-reflection|mindfulness|creativity|social|adventure|wellness|all")
	listCmd.Flags().StringVar(&difficulty, "difficulty", "all", "easy|medium|hard|all")
	listCmd.Flags().BoolVar(&completedOnly, "completed", false, "only completed quests")
	listCmd.Flags().BoolVar(&pendingOnly, "pending", false, "only pending quests")

	completeCmd := &cobra.Command{
		Use:   "complete <quest-id>",
		Short: "Mark a quest completed and collect its points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JourneyCLI.CompleteQuest(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed %q +%d points=%d level=%d\n",
					out.Quest.Title, out.Quest.Points, out.Standing.SparkPoints, out.Standing.Level)
				return nil
			})
		},
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "List every quest the backend offers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.JourneyCLI.Catalog(ctx)
				if err != nil {
					return err
				}
				printQuests(cmd, items)
				return nil
			})
		},
	}

	quests.AddCommand(listCmd, completeCmd, catalogCmd)
	return quests
}

func printQuests(cmd *cobra.Command, items []journeydto.QuestOutput) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no quests")
		return
	}
	for _, q := range items {
		mark := " "
		if q.Completed {
			mark = "x"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\t%s\t%s\t%dpts\t%s\n", mark, q.ID, q.Type, q.Difficulty, q.Points, q.Title)
	}
}

func newReflectionsCmd(flags *rootFlags) *cobra.Command {
	reflections := &cobra.Command{Use: "reflections", Short: "Journal reflections on completed quests"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List reflections, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				items := app.JourneyCLI.ListReflections(ctx)
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no reflections")
					return nil
				}
				for _, r := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t+%d\t%s\n",
						r.ID, r.CreatedAt.Local().Format("2006-01-02"), r.Mood, r.Points, r.QuestTitle)
				}
				return nil
			})
		},
	}

	var input journeydto.AddReflectionInput
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Reflect on a completed quest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JourneyCLI.AddReflection(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reflection %s +%d points=%d level=%d\n",
					out.Reflection.ID, out.Reflection.Points, out.Standing.SparkPoints, out.Standing.Level)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&input.QuestID, "quest", "", "completed quest id")
	addCmd.Flags().StringVar(&input.Text, "text", "", "reflection text")
	addCmd.Flags().StringVar(&input.Mood, "mood", "", "mood after the quest")
	addCmd.Flags().StringVar(&input.PhotoURI, "photo", "", "photo URL (see `sparks upload`)")
	addCmd.Flags().StringVar(&input.AudioURI, "audio", "", "audio URL")
	_ = addCmd.MarkFlagRequired("quest")
	_ = addCmd.MarkFlagRequired("text")
	_ = addCmd.MarkFlagRequired("mood")

	deleteCmd := &cobra.Command{
		Use:   "delete <reflection-id>",
		Short: "Delete a reflection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.JourneyCLI.DeleteReflection(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write reflections as markdown notes into the journal directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JourneyCLI.ExportJournal(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes index=%s\n", len(out.Paths), out.IndexPath)
				return nil
			})
		},
	}

	reflections.AddCommand(listCmd, addCmd, deleteCmd, exportCmd)
	return reflections
}

func newRewardsCmd(flags *rootFlags) *cobra.Command {
	rewards := &cobra.Command{Use: "rewards", Short: "Spend spark points"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List rewards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				items := app.JourneyCLI.ListRewards(ctx)
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no rewards")
					return nil
				}
				for _, r := range items {
					state := "locked"
					switch {
					case r.Redeemed:
						state = "redeemed"
					case r.Unlocked:
						state = "available"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%dpts\t%s\t%s\n", r.ID, r.Type, r.Cost, state, r.Title)
				}
				return nil
			})
		},
	}

	redeemCmd := &cobra.Command{
		Use:   "redeem <reward-id>",
		Short: "Redeem a reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.JourneyCLI.CheckRedeem(ctx, args[0]); err != nil {
					return err
				}
				out, err := app.JourneyCLI.RedeemReward(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "redeemed %q points=%d\n", out.Reward.Title, out.Standing.SparkPoints)
				return nil
			})
		},
	}

	rewards.AddCommand(listCmd, redeemCmd)
	return rewards
}

func newPointsCmd(flags *rootFlags) *cobra.Command {
	points := &cobra.Command{Use: "points", Short: "Spark point standing"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show points, level progress and weekly goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				o, err := app.JourneyCLI.Overview(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "points: %d\nlevel: %d (%d/%d, %.0f%%)\n",
					o.Standing.SparkPoints, o.Progress.Level, o.Progress.Current, o.Progress.Needed, o.Progress.Percent)
				_, _ = fmt.Fprintf(out, "week: %d/%d quests\nquests completed: %d\nreflections: %d\navg points: %d\n",
					o.CompletedThisWeek, o.WeeklyGoal, o.CompletedQuestCount, o.ReflectionCount, o.AvgPointsPerQuest)
				if o.NextQuest != nil {
					_, _ = fmt.Fprintf(out, "next quest: %s (%s)\n", o.NextQuest.Title, o.NextQuest.ID)
				}
				return nil
			})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <delta>",
		Short: "Adjust spark points locally (negative to deduct)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid delta %q", args[0])
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				standing, err := app.JourneyCLI.AddSparkPoints(ctx, delta)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "points=%d level=%d\n", standing.SparkPoints, standing.Level)
				return nil
			})
		},
	}

	points.AddCommand(showCmd, addCmd)
	return points
}

func newAnalyticsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Print the backend's analytics summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				summary, err := app.JourneyCLI.Analytics(ctx)
				if err != nil {
					return err
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				defer func() { _ = enc.Close() }()
				return enc.Encode(summary)
			})
		},
	}
}

func newUploadCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a photo or audio clip and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				url, err := app.JourneyCLI.UploadMedia(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), url)
				return nil
			})
		},
	}
}
