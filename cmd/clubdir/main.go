// Command clubdir is the reference consumer of the club directory
// core: it wires configuration, the remote client, and the session
// service, and exposes the screens' data paths as subcommands.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Bash0121/FHU-social-club/internal/core/domain"
	"github.com/Bash0121/FHU-social-club/internal/core/ports"
	"github.com/Bash0121/FHU-social-club/internal/core/service"
	"github.com/Bash0121/FHU-social-club/internal/infrastructure/config"
	"github.com/Bash0121/FHU-social-club/internal/infrastructure/remote"
	"github.com/Bash0121/FHU-social-club/pkg/logger"
)

const usage = `usage: clubdir <command> [flags]

commands:
  register   create an account with a linked member profile
  login      verify credentials and show the signed-in user
  directory  list club members, filtered by -q and scoped to your club
  events     list upcoming events in date order
  profile    show your own member profile
  logout     end the current session
`

func main() {
	_ = godotenv.Load()

	log := logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Pretty: true})

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("startup configuration is incomplete")
	}

	client := remote.NewClient(remote.Config{
		Endpoint:          cfg.Endpoint,
		ProjectID:         cfg.ProjectID,
		Platform:          cfg.Platform,
		DatabaseID:        cfg.DatabaseID,
		MembersCollection: cfg.MembersCollection,
		EventsCollection:  cfg.EventsCollection,
		Timeout:           cfg.HTTPTimeout,
	}, log)
	sessions := service.NewSessionService(client, log)
	sessions.Init(ctx)

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout, client, sessions, log); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func run(ctx context.Context, command string, args []string, out io.Writer, client *remote.Client, sessions *service.SessionService, log zerolog.Logger) error {
	switch command {
	case "register":
		return runRegister(ctx, args, out, sessions)
	case "login":
		return runLogin(ctx, args, out, sessions)
	case "directory":
		return runDirectory(ctx, args, out, client, sessions)
	case "events":
		return runEvents(ctx, args, out, client, sessions, log)
	case "profile":
		return runProfile(ctx, args, out, sessions)
	case "logout":
		return runLogout(ctx, args, out, sessions, log)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func credentialFlags(fs *flag.FlagSet) (email, password *string) {
	email = fs.String("email", "", "account email")
	password = fs.String("password", "", "account password")
	return email, password
}

func runRegister(ctx context.Context, args []string, out io.Writer, sessions *service.SessionService) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email, password := credentialFlags(fs)
	name := fs.String("name", "", "display name")
	club := fs.String("club", "", "club tag")
	phone := fs.String("phone", "", "phone number")
	_ = fs.Parse(args)

	err := sessions.Register(ctx, ports.RegisterInput{
		Email:       *email,
		Password:    *password,
		DisplayName: *name,
		Club:        *club,
		PhoneNumber: *phone,
	})
	snap := sessions.Snapshot()
	if snap.User != nil {
		fmt.Fprintf(out, "registered %s (%s)\n", snap.User.Name, snap.User.Email)
		if snap.Member == nil {
			fmt.Fprintln(out, "member profile is missing; run profile to repair it")
		}
	}
	return err
}

func runLogin(ctx context.Context, args []string, out io.Writer, sessions *service.SessionService) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email, password := credentialFlags(fs)
	_ = fs.Parse(args)

	if err := sessions.Login(ctx, *email, *password); err != nil {
		return err
	}
	snap := sessions.Snapshot()
	fmt.Fprintf(out, "signed in as %s (%s)\n", snap.User.Name, snap.User.Email)
	return nil
}

func runDirectory(ctx context.Context, args []string, out io.Writer, client *remote.Client, sessions *service.SessionService) error {
	fs := flag.NewFlagSet("directory", flag.ExitOnError)
	email, password := credentialFlags(fs)
	query := fs.String("q", "", "name search text")
	club := fs.String("club", "", "club scope override (defaults to your club)")
	show := fs.String("show", "", "member id to open in the detail view")
	_ = fs.Parse(args)

	if err := sessions.Login(ctx, *email, *password); err != nil {
		return err
	}

	members, err := fetchRecords(ctx, client.Members)
	if err != nil {
		return err
	}

	if *show != "" {
		return showMember(out, members, *show)
	}

	scope := *club
	if scope == "" {
		if snap := sessions.Snapshot(); snap.Member != nil {
			scope = snap.Member.Club
		}
	}

	for _, m := range service.FilterMembers(members, *query, scope) {
		line := fmt.Sprintf("%s %s", m.FirstName, m.LastName)
		if m.OfficerTitle != "" {
			line += " - " + m.OfficerTitle
		}
		if addr, ok := m.ContactEmail(); ok {
			line += "  <" + addr + ">"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// showMember is the detail-overlay path: focus the id, re-validate it
// against the freshly loaded record set, and render only while the
// overlay stayed open.
func showMember(out io.Writer, members []domain.Member, id string) error {
	var sel service.Selection
	sel.Select(id)
	sel.Sync(func(id string) bool {
		_, ok := service.FindMember(members, id)
		return ok
	})

	current, visible := sel.Current()
	if !visible {
		fmt.Fprintln(out, "that member is no longer in the directory")
		return nil
	}

	m, _ := service.FindMember(members, current)
	fmt.Fprintf(out, "%s %s\n", m.FirstName, m.LastName)
	if m.Classification != "" {
		fmt.Fprintln(out, "classification:", m.Classification)
	}
	if m.OfficerTitle != "" {
		fmt.Fprintln(out, "officer:", m.OfficerTitle)
	}
	if addr, ok := m.ContactEmail(); ok {
		fmt.Fprintln(out, "email:", addr)
	}
	if num, ok := m.ContactPhone(); ok {
		fmt.Fprintln(out, "phone:", num)
	}
	return nil
}

func runEvents(ctx context.Context, args []string, out io.Writer, client *remote.Client, sessions *service.SessionService, log zerolog.Logger) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	email, password := credentialFlags(fs)
	show := fs.String("show", "", "event id to open in the detail view")
	_ = fs.Parse(args)

	if err := sessions.Login(ctx, *email, *password); err != nil {
		return err
	}

	events, err := fetchRecords(ctx, client.Events)
	if err != nil {
		// Degrade to an empty listing at the edge; the core kept the
		// failure distinguishable from "no events".
		log.Error().Err(err).Msg("event fetch failed")
		return nil
	}

	if *show != "" {
		return showEvent(out, events, *show)
	}

	for _, e := range events {
		fmt.Fprintf(out, "%s  %s @ %s\n", e.EventDate, e.EventName, e.Location)
	}
	return nil
}

func showEvent(out io.Writer, events []domain.EventRecord, id string) error {
	var sel service.Selection
	sel.Select(id)
	sel.Sync(func(id string) bool {
		_, ok := service.FindEvent(events, id)
		return ok
	})

	current, visible := sel.Current()
	if !visible {
		fmt.Fprintln(out, "that event is no longer listed")
		return nil
	}

	e, _ := service.FindEvent(events, current)
	fmt.Fprintf(out, "%s  %s\n", e.EventDate, e.EventName)
	if e.Location != "" {
		fmt.Fprintln(out, "location:", e.Location)
	}
	if e.Description != "" {
		fmt.Fprintln(out, e.Description)
	}
	return nil
}

func runProfile(ctx context.Context, args []string, out io.Writer, sessions *service.SessionService) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	email, password := credentialFlags(fs)
	club := fs.String("club", "", "club tag used when repairing a missing profile")
	phone := fs.String("phone", "", "phone number used when repairing a missing profile")
	_ = fs.Parse(args)

	if err := sessions.Login(ctx, *email, *password); err != nil {
		return err
	}

	member, err := sessions.EnsureMember(ctx, ports.ProfileInput{Club: *club, PhoneNumber: *phone})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s (%s)\n", member.FirstName, member.LastName, member.Club)
	if addr, ok := member.ContactEmail(); ok {
		fmt.Fprintln(out, "email:", addr)
	}
	if num, ok := member.ContactPhone(); ok {
		fmt.Fprintln(out, "phone:", num)
	}
	return nil
}

func runLogout(ctx context.Context, args []string, out io.Writer, sessions *service.SessionService, log zerolog.Logger) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	email, password := credentialFlags(fs)
	_ = fs.Parse(args)

	// Logout must always leave the local session cleared, so a failed
	// login only costs the remote session delete, never the command.
	if err := sessions.Login(ctx, *email, *password); err != nil {
		log.Warn().Err(err).Msg("login failed; clearing local session anyway")
	}
	sessions.Logout(ctx)

	if sessions.Snapshot().Status == domain.StatusUnauthenticated {
		fmt.Fprintln(out, "signed out")
	}
	return nil
}

// fetchRecords loads a record set through the cancellable fetch path
// shared with screen consumers, waiting synchronously for delivery.
func fetchRecords[T any](ctx context.Context, load func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	service.Fetch(ctx, load, func(v T, err error) {
		done <- result{value: v, err: err}
	})

	res := <-done
	return res.value, res.err
}
