package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sparks/internal/bootstrap"
	accountdto "sparks/internal/modules/account/dto"
)

const passwordEnv = "SPARKS_PASSWORD"

// readPassword takes the flag, then SPARKS_PASSWORD, then one line of stdin.
func readPassword(flagValue string, in io.Reader) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(passwordEnv); env != "" {
		return env, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printProfile(w io.Writer, p *accountdto.ProfileOutput) {
	if p == nil {
		_, _ = fmt.Fprintln(w, "not signed in")
		return
	}
	_, _ = fmt.Fprintf(w, "id: %s\nname: %s\nemail: %s\nage: %d\npersonality: %s\nmood: %s\n",
		p.ID, p.Name, p.Email, p.Age, p.PersonalityType, p.CurrentMood)
	_, _ = fmt.Fprintf(w, "points: %d\nlevel: %d\ncompleted: %d\nstreak: %d\n",
		p.SparkPoints, p.Level, p.CompletedQuests, p.Streak)
	if len(p.EmotionalNeeds) > 0 {
		_, _ = fmt.Fprintf(w, "needs: %s\n", strings.Join(p.EmotionalNeeds, ", "))
	}
	if len(p.Interests) > 0 {
		_, _ = fmt.Fprintf(w, "interests: %s\n", strings.Join(p.Interests, ", "))
	}
	if len(p.Goals) > 0 {
		_, _ = fmt.Fprintf(w, "goals: %s\n", strings.Join(p.Goals, ", "))
	}
}

func newLoginCmd(flags *rootFlags) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(password, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				session, err := app.AccountCLI.Login(ctx, args[0], pw)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%d points, level %d)\n",
					session.Profile.Name, session.Profile.SparkPoints, session.Profile.Level)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (else $"+passwordEnv+" or stdin)")
	return cmd
}

func newRegisterCmd(flags *rootFlags) *cobra.Command {
	var input accountdto.RegisterInput
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account with onboarding answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(input.Password, cmd.InOrStdin())
			if err != nil {
				return err
			}
			input.Email = args[0]
			input.Password = pw
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				session, err := app.AccountCLI.Register(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "welcome, %s\n", session.Profile.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input.Name, "name", "", "display name")
	cmd.Flags().StringVar(&input.Password, "password", "", "password (else $"+passwordEnv+" or stdin)")
	cmd.Flags().IntVar(&input.Age, "age", 0, "age")
	cmd.Flags().StringVar(&input.PersonalityType, "personality", "", "creative-explorer|mindful-seeker|social-connector|adventure-spirit|gentle-nurturer")
	cmd.Flags().StringSliceVar(&input.EmotionalNeeds, "needs", nil, "emotional needs")
	cmd.Flags().StringSliceVar(&input.Interests, "interests", nil, "interests")
	cmd.Flags().StringSliceVar(&input.Goals, "goals", nil, "goals")
	cmd.Flags().StringVar(&input.CurrentMood, "mood", "", "current mood")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLogoutCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.AccountCLI.Logout(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			})
		},
	}
}

func newWhoamiCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				session := app.AccountCLI.Current(ctx)
				if session.Profile == nil {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", session.Profile.Name, session.Profile.Email)
				return nil
			})
		},
	}
}

func newProfileCmd(flags *rootFlags) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Inspect and edit the profile"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the cached profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				printProfile(cmd.OutOrStdout(), app.AccountCLI.Current(ctx).Profile)
				return nil
			})
		},
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Reload the profile from the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.AccountCLI.RefreshProfile(ctx)
				if err != nil {
					return err
				}
				printProfile(cmd.OutOrStdout(), &p)
				return nil
			})
		},
	}

	var name, personality string
	var age int
	var needs, interests, goals []string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields on the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input accountdto.UpdateProfileInput
			f := cmd.Flags()
			if f.Changed("name") {
				input.Name = &name
			}
			if f.Changed("age") {
				input.Age = &age
			}
			if f.Changed("personality") {
				input.PersonalityType = &personality
			}
			if f.Changed("needs") {
				input.EmotionalNeeds = needs
			}
			if f.Changed("interests") {
				input.Interests = interests
			}
			if f.Changed("goals") {
				input.Goals = goals
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.AccountCLI.UpdateProfile(ctx, input)
				if err != nil {
					return err
				}
				printProfile(cmd.OutOrStdout(), &p)
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&name, "name", "", "display name")
	setCmd.Flags().IntVar(&age, "age", 0, "age")
	setCmd.Flags().StringVar(&personality, "personality", "", "creative-explorer|mindful-seeker|social-connector|adventure-spirit|gentle-nurturer")
	setCmd.Flags().StringSliceVar(&needs, "needs", nil, "emotional needs")
	setCmd.Flags().StringSliceVar(&interests, "interests", nil, "interests")
	setCmd.Flags().StringSliceVar(&goals, "goals", nil, "goals")

	profile.AddCommand(showCmd, refreshCmd, setCmd)
	return profile
}
