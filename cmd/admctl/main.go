// admctl is a small operator console over the platform API: login, user
// and site listings, verification review queues, and shift submissions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/common-nighthawk/go-figure"
	"github.com/openpilgrim/go-admin-client/admin"
	"github.com/openpilgrim/go-admin-client/api"
	"github.com/openpilgrim/go-admin-client/auth"
	"github.com/openpilgrim/go-admin-client/credentials"
	"github.com/openpilgrim/go-admin-client/manager"
	"github.com/openpilgrim/go-admin-client/users"
	"github.com/rs/zerolog"
)

const usage = `usage: admctl [flags] <command> [args]

commands:
  login <email> <password>   authenticate and store the session
  logout                     invalidate and clear the session
  whoami                     show the cached user record
  users                      list user accounts (admin)
  sites                      list sites (admin)
  verifications              list verification requests (admin)
  mysite                     show the manager's site
  shifts                     list shift submissions (manager)

flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "admctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("admctl", flag.ExitOnError)
	configPath := flags.String("config", defaultConfigPath(), "path to admctl.toml")
	debug := flags.Bool("debug", false, "log request lifecycle to stderr")
	page := flags.Int("page", 1, "page number for listings")
	limit := flags.Int("limit", 20, "page size for listings")
	status := flags.String("status", "", "status filter for listings")
	search := flags.String("search", "", "search filter for listings")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return fmt.Errorf("missing command")
	}

	cfg, err := loadServiceConfig(*configPath)
	if err != nil {
		return err
	}

	logger := zerolog.Nop()
	if *debug {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	store, err := credentials.NewFileStore(cfg.CredentialsFile)
	if err != nil {
		return err
	}

	client, err := api.New(cfg.BaseURL, store,
		api.WithTimeout(cfg.timeout()),
		api.WithLogger(logger),
		api.WithSessionInvalidated(func() {
			fmt.Fprintln(os.Stderr, "admctl: session expired, please login again")
		}),
	)
	if err != nil {
		return err
	}

	ctx := context.Background()
	command := flags.Arg(0)

	switch command {
	case "login":
		if flags.NArg() < 3 {
			return fmt.Errorf("usage: admctl login <email> <password>")
		}
		return cmdLogin(ctx, client, store, flags.Arg(1), flags.Arg(2))
	case "logout":
		return cmdLogout(ctx, client, store)
	case "whoami":
		return cmdWhoami(client, store)
	case "users":
		return cmdUsers(ctx, client, *page, *limit, *status, *search)
	case "sites":
		return cmdSites(ctx, client, *page, *limit, *search)
	case "verifications":
		return cmdVerifications(ctx, client, *page, *limit, *status)
	case "mysite":
		return cmdMySite(ctx, client)
	case "shifts":
		return cmdShifts(ctx, client, *page, *limit, *status)
	default:
		flags.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "admctl.toml"
	}
	return home + "/.pilgrim/admctl.toml"
}

func cmdLogin(ctx context.Context, client *api.Client, store credentials.Store, email, password string) error {
	figure.NewFigure("admctl", "cybermedium", true).Print()
	fmt.Println()

	svc, err := auth.NewService(client, store)
	if err != nil {
		return err
	}
	user, err := svc.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if user != nil {
		fmt.Printf("logged in as %s (%s)\n", user.FullName, user.Role)
	} else {
		fmt.Println("logged in")
	}
	return nil
}

func cmdLogout(ctx context.Context, client *api.Client, store credentials.Store) error {
	svc, err := auth.NewService(client, store)
	if err != nil {
		return err
	}
	if err := svc.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func cmdWhoami(client *api.Client, store credentials.Store) error {
	svc, err := auth.NewService(client, store)
	if err != nil {
		return err
	}
	user, err := svc.CachedUser()
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s status=%s\n", user.FullName, user.Email, user.Role, user.Status)
	return nil
}

func cmdUsers(ctx context.Context, client *api.Client, page, limit int, status, search string) error {
	svc, err := admin.NewService(client)
	if err != nil {
		return err
	}
	list, err := svc.Users(ctx, admin.UserListParams{
		Page:   page,
		Limit:  limit,
		Status: users.StatusType(status),
		Search: search,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tSTATUS")
	for _, u := range list.Users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.FullName, u.Role, u.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPage(list.Pagination)
	return nil
}

func cmdSites(ctx context.Context, client *api.Client, page, limit int, search string) error {
	svc, err := admin.NewService(client)
	if err != nil {
		return err
	}
	list, err := svc.Sites(ctx, admin.SiteListParams{Page: page, Limit: limit, Search: search})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tNAME\tPROVINCE\tREGION\tACTIVE")
	for _, s := range list.Sites {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n", s.ID, s.Code, s.Name, s.Province, s.Region, s.IsActive)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPage(list.Pagination)
	return nil
}

func cmdVerifications(ctx context.Context, client *api.Client, page, limit int, status string) error {
	svc, err := admin.NewService(client)
	if err != nil {
		return err
	}
	list, err := svc.VerificationRequests(ctx, admin.VerificationListParams{
		Page:   page,
		Limit:  limit,
		Status: admin.VerificationStatus(status),
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSER\tSITE\tSTATUS\tCREATED")
	for _, r := range list.Requests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.User.Email, r.SiteName, r.Status, r.CreatedAt.Format("2006-01-02"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPage(list.Pagination)
	return nil
}

func cmdMySite(ctx context.Context, client *api.Client) error {
	svc, err := manager.NewService(client)
	if err != nil {
		return err
	}
	site, err := svc.MySite(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n%s, %s\nregion=%s type=%s active=%t\n",
		site.Name, site.Code, site.Address, site.Province, site.Region, site.Type, site.IsActive)
	return nil
}

func cmdShifts(ctx context.Context, client *api.Client, page, limit int, status string) error {
	svc, err := manager.NewService(client)
	if err != nil {
		return err
	}
	list, err := svc.ShiftSubmissions(ctx, manager.ShiftListParams{
		Page:   page,
		Limit:  limit,
		Status: manager.ShiftStatus(status),
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGUIDE\tDATE\tTIME\tSTATUS")
	for _, sub := range list.Submissions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s-%s\t%s\n", sub.ID, sub.Guide.FullName, sub.Date, sub.StartTime, sub.EndTime, sub.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printPage(list.Pagination)
	return nil
}

func printPage(p api.Pagination) {
	fmt.Printf("page %d/%d (%d total)\n", p.Page, p.TotalPages, p.Total)
}
