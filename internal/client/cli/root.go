package cli

import (
	"context"
	"io"
	"strings"

	"github.com/dmitrijs2005/phishshield/internal/buildinfo"
	"github.com/dmitrijs2005/phishshield/internal/client/config"
	"github.com/dmitrijs2005/phishshield/internal/client/models"
	"github.com/spf13/cobra"
)

// Streams are the process's standard streams.
type Streams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// newRootCommand builds the phishshield command tree. Every command loads
// configuration from the persistent flags, opens the app and restores the
// stored session before it runs. Without a subcommand the shell starts.
// The returned func yields the app once it has been opened.
func newRootCommand(s Streams) (*cobra.Command, appFn) {
	var app *App

	root := &cobra.Command{
		Use:           "phishshield",
		Short:         "PhishShield phishing-awareness client",
		Long:          "PhishShield keeps you signed in across runs, shows your protection dashboard, quizzes you on phishing and answers questions about staying safe online.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if app, err = NewApp(ctx, cfg, s.In, s.Out, s.ErrOut); err != nil {
				return err
			}
			app.Restore(ctx)
			cmd.SetContext(app.Context(ctx))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Shell(cmd.Context())
			return nil
		},
	}
	root.SetIn(s.In)
	root.SetOut(s.Out)
	root.SetErr(s.ErrOut)
	config.RegisterFlags(root.PersistentFlags())

	current := func() *App { return app }
	root.AddCommand(
		newLoginCommand(current),
		newSignupCommand(current),
		newLogoutCommand(current),
		newWhoAmICommand(current),
		newProfileCommand(current),
		newAvatarCommand(current),
		newDashboardCommand(current),
		newQuizCommand(current),
		newChatCommand(current),
		newShellCommand(current),
		newVersionCommand(s.Out),
	)
	return root, current
}

type appFn func() *App

func newLoginCommand(app appFn) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Login(cmd.Context(), email)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")
	return cmd
}

func newSignupCommand(app appFn) *cobra.Command {
	var form SignupForm
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Signup(cmd.Context(), form)
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "full name")
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "email")
	cmd.Flags().StringVar(&form.PhoneNumber, "phone", "", "phone number")
	return cmd
}

func newLogoutCommand(app appFn) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return app().ForgetAll(cmd.Context())
			}
			return app().Logout(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also remove all local data, mock accounts included")
	return cmd
}

func newWhoAmICommand(app appFn) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().WhoAmI(cmd.Context())
		},
	}
}

func newProfileCommand(app appFn) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}

	var name, email, phone, avatarURL string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; without flags every field is prompted for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.UserPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = models.Ptr(name)
			}
			if flags.Changed("email") {
				patch.Email = models.Ptr(email)
			}
			if flags.Changed("phone") {
				patch.PhoneNumber = models.Ptr(phone)
			}
			if flags.Changed("avatar-url") {
				patch.Avatar = models.Ptr(avatarURL)
			}
			return app().UpdateProfile(cmd.Context(), patch)
		},
	}
	update.Flags().StringVar(&name, "name", "", "new name")
	update.Flags().StringVar(&email, "email", "", "new email")
	update.Flags().StringVar(&phone, "phone", "", "new phone number")
	update.Flags().StringVar(&avatarURL, "avatar-url", "", "new avatar URL")

	profile.AddCommand(update)
	return profile
}

func newAvatarCommand(app appFn) *cobra.Command {
	return &cobra.Command{
		Use:   "avatar [image]",
		Short: "Upload a profile picture",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Avatar(cmd.Context(), argOr(args, 0, ""))
		},
	}
}

func newDashboardCommand(app appFn) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your protection summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Dashboard(cmd.Context())
		},
	}
}

func newQuizCommand(app appFn) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take a phishing-awareness quiz",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Quiz(cmd.Context(), count)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of questions")
	return cmd
}

func newChatCommand(app appFn) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message...]",
		Short: "Ask the PhishShield assistant; without a message starts a conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().Chat(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newShellCommand(app appFn) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app().Shell(cmd.Context())
			return nil
		},
	}
}

func newVersionCommand(w io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// no config or session needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(w)
		},
	}
}

// Execute runs the command tree with ctx and closes the app afterwards.
func Execute(ctx context.Context, s Streams, args []string) error {
	root, app := newRootCommand(s)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if a := app(); a != nil {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
