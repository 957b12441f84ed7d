package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/pkg/client"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				password = os.Getenv("VH_PASSWORD")
			}
			if password == "" {
				fmt.Print("Password: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return fmt.Errorf("error reading password: %w", err)
				}
				password = strings.TrimSpace(line)
			}

			state, err := app.auth.Login(app.ctx, email, password)
			if err != nil {
				return err
			}
			app.state = state
			app.logger.Info("logged in", zap.String("user_id", state.User.ID))

			fmt.Printf("Logged in as %s (%s), role %s\n", state.User.Name, state.User.Email, state.User.Role)
			return nil
		},
	}
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password (env VH_PASSWORD, prompted if empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := app.auth.Logout()
			if err != nil {
				return err
			}
			app.state = state
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireLogin(); err != nil {
				return err
			}
			state, err := app.auth.Refresh(app.ctx, app.state)
			if err != nil {
				return err
			}
			app.state = state

			u := state.User
			fmt.Printf("%s <%s>\n", u.Name, u.Email)
			fmt.Printf("  id:     %s\n", u.ID)
			fmt.Printf("  role:   %s\n", u.Role)
			fmt.Printf("  events: %d completed, %.1f hours\n", u.EventsCompleted, u.HoursContributed)
			if !state.ExpiresAt.IsZero() {
				fmt.Printf("  session expires %s\n", state.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse and register for events",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List approved events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.EventFilter{}
			filter.Category, _ = cmd.Flags().GetString("category")
			filter.Status, _ = cmd.Flags().GetString("status")
			filter.Search, _ = cmd.Flags().GetString("search")
			filter.Page, _ = cmd.Flags().GetInt("page")
			filter.Limit, _ = cmd.Flags().GetInt("limit")

			store := client.NewEventStore(app.auth.Client(app.state))
			state, err := store.Load(app.ctx, client.EventState{}, filter)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tTITLE\tSPOTS")
			for _, e := range state.Events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\n",
					e.ID, e.Date.Format("2006-01-02"), e.Category, e.Title, e.RegisteredCount, e.Capacity)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			p := state.Pagination
			fmt.Printf("\nPage %d of %d (%d events)\n", p.Page, p.Pages, p.Total)
			return nil
		},
	}
	list.Flags().String("category", "", "Education, Health, Environment, Social or Relief")
	list.Flags().String("status", "", "Event status")
	list.Flags().String("search", "", "Match title or description")
	list.Flags().Int("page", 1, "Page number")
	list.Flags().Int("limit", 10, "Page size")

	show := &cobra.Command{
		Use:   "show <event_id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := client.NewEventStore(app.auth.Client(app.state))
			state, err := store.Select(app.ctx, client.EventState{}, args[0])
			if err != nil {
				return err
			}
			printEvent(state.Selected)
			return nil
		},
	}

	register := &cobra.Command{
		Use:   "register <event_id>",
		Short: "Register for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireLogin()
			if err != nil {
				return err
			}
			store := client.NewEventStore(api)
			state, registration, err := store.Register(app.ctx, client.EventState{}, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Registered (%s), registration %s\n", registration.Status, registration.ID)
			if state.Selected != nil {
				fmt.Printf("%s now has %d/%d volunteers\n",
					state.Selected.Title, state.Selected.RegisteredCount, state.Selected.Capacity)
			}
			return nil
		},
	}

	approve := &cobra.Command{
		Use:   "approve <event_id>",
		Short: "Approve, reject or cancel an event (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireLogin()
			if err != nil {
				return err
			}
			status, _ := cmd.Flags().GetString("status")
			state, err := client.NewEventStore(api).Approve(app.ctx, client.EventState{}, args[0], status)
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", state.Selected.Title, state.Selected.Status)
			return nil
		},
	}
	approve.Flags().String("status", "approved", "approved, rejected or cancelled")

	cmd.AddCommand(list, show, register, approve)
	return cmd
}

func printEvent(e *domain.EventResponse) {
	fmt.Printf("%s\n%s\n\n", e.Title, strings.Repeat("=", len(e.Title)))
	fmt.Printf("When:     %s %s-%s\n", e.Date.Format("Mon 2006-01-02"), e.StartTime, e.EndTime)
	fmt.Printf("Where:    %s\n", e.Location)
	fmt.Printf("Category: %s\n", e.Category)
	fmt.Printf("Status:   %s\n", e.Status)
	fmt.Printf("Spots:    %d/%d\n", e.RegisteredCount, e.Capacity)
	if e.CreatedBy != nil {
		fmt.Printf("Host:     %s\n", e.CreatedBy.Name)
	}
	if len(e.Skills) > 0 {
		fmt.Printf("Skills:   %s\n", strings.Join(e.Skills, ", "))
	}
	fmt.Printf("\n%s\n", e.Description)
}

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Read notifications",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireLogin()
			if err != nil {
				return err
			}
			unread, _ := cmd.Flags().GetBool("unread")
			page, _ := cmd.Flags().GetInt("page")

			store := client.NewNotificationStore(api)
			state, err := store.Load(app.ctx, app.notifications, unread, domain.PageQuery{Page: page})
			if err != nil {
				return err
			}
			app.notifications = state
			printNotifications(state)
			return nil
		},
	}
	list.Flags().Bool("unread", false, "Only unread notifications")
	list.Flags().Int("page", 1, "Page number")

	read := &cobra.Command{
		Use:   "read <notification_id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireLogin()
			if err != nil {
				return err
			}
			state, err := client.NewNotificationStore(api).MarkRead(app.ctx, app.notifications, args[0])
			if err != nil {
				return err
			}
			app.notifications = state
			fmt.Printf("Marked as read. %d unread left\n", state.UnreadCount)
			return nil
		},
	}

	readAll := &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireLogin()
			if err != nil {
				return err
			}
			state, modified, err := client.NewNotificationStore(api).MarkAllRead(app.ctx, app.notifications)
			if err != nil {
				return err
			}
			app.notifications = state
			fmt.Printf("Marked %d notifications as read\n", modified)
			return nil
		},
	}

	cmd.AddCommand(list, read, readAll)
	return cmd
}

func printNotifications(state client.NotificationState) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tWHEN\tTYPE\tTITLE")
	for _, n := range state.Notifications {
		marker := "*"
		if n.IsRead {
			marker = " "
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			marker, n.ID, n.CreatedAt.Local().Format("01-02 15:04"), n.Type, n.Title)
	}
	_ = w.Flush()
	fmt.Printf("\n%d unread\n", state.UnreadCount)
}

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Dashboard aggregates",
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show the statistics for your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireLogin()
			if err != nil {
				return err
			}
			res, err := api.DashboardStats(app.ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Dashboard (%s)\n\n", res.Role)
			switch {
			case res.Admin != nil:
				s := res.Admin
				fmt.Printf("Users:          %d\n", s.TotalUsers)
				fmt.Printf("Events:         %d (%d approved, %d pending)\n", s.TotalEvents, s.ApprovedEvents, s.PendingEvents)
				fmt.Printf("Registrations:  %d\n", s.TotalRegistrations)
				for role, count := range s.UsersByRole {
					fmt.Printf("  %-10s %d\n", role, count)
				}
			case res.Manager != nil:
				s := res.Manager
				fmt.Printf("My events:      %d (%d approved, %d pending)\n", s.MyEvents, s.ApprovedEvents, s.PendingEvents)
				fmt.Printf("Registrations:  %d\n", s.TotalRegistrations)
				fmt.Printf("Posts:          %d\n", s.TotalPosts)
			case res.Volunteer != nil:
				s := res.Volunteer
				fmt.Printf("Registered:     %d\n", s.RegisteredEvents)
				fmt.Printf("Completed:      %d\n", s.CompletedEvents)
				fmt.Printf("Upcoming:       %d\n", s.UpcomingEvents)
				fmt.Printf("Hours:          %.1f\n", s.HoursContributed)
			}
			return nil
		},
	}

	cmd.AddCommand(stats)
	return cmd
}

func managerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manager",
		Short: "Apply for the manager role or decide applications",
	}

	apply := &cobra.Command{
		Use:   "apply",
		Short: "Apply to become an event manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireLogin(); err != nil {
				return err
			}
			reason, _ := cmd.Flags().GetString("reason")
			state, err := app.auth.ApplyForManager(app.ctx, app.state, reason)
			if err != nil {
				return err
			}
			app.state = state
			fmt.Println("Application submitted. An admin will review it")
			return nil
		},
	}
	apply.Flags().String("reason", "", "Why you want to organize events")

	list := &cobra.Command{
		Use:   "list",
		Short: "List pending applications (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireLogin()
			if err != nil {
				return err
			}
			page, _ := cmd.Flags().GetInt("page")
			state, err := client.NewManagerStore(api).Load(app.ctx, client.ManagerState{}, domain.PageQuery{Page: page})
			if err != nil {
				return err
			}
			printApplications(state)
			return nil
		},
	}
	list.Flags().Int("page", 1, "Page number")

	decide := func(use, short string, approve bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <user_id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				api, err := requireLogin()
				if err != nil {
					return err
				}
				store := client.NewManagerStore(api)
				action := store.Reject
				if approve {
					action = store.Approve
				}
				state, err := action(app.ctx, client.ManagerState{}, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Done. %d applications pending\n", state.Pagination.Total)
				return nil
			},
		}
	}

	setRole := &cobra.Command{
		Use:   "set-role <user_id> <role>",
		Short: "Change a user's role (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireLogin()
			if err != nil {
				return err
			}
			role, ok := domain.ParseRole(args[1])
			if !ok {
				return domain.ErrInvalidRole
			}
			user, err := api.UpdateUserRole(app.ctx, args[0], role)
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", user.Name, user.Role)
			return nil
		},
	}

	cmd.AddCommand(apply, list, decide("approve", "Grant the manager role (admin)", true),
		decide("reject", "Reject an application (admin)", false), setRole)
	return cmd
}

func printApplications(state client.ManagerState) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tAPPLIED")
	for _, u := range state.Applications {
		applied := ""
		if u.RoleRequestedAt != nil {
			applied = u.RoleRequestedAt.Local().Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, applied)
	}
	_ = w.Flush()
	fmt.Printf("\n%d pending\n", state.Pagination.Total)
}
