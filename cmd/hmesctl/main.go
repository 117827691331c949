// Package main provides hmesctl, a command line client for the HMES
// administrative console. It exists to exercise the client library end to
// end; all behavior lives in pkg/.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hldiojin/hmes-dashboard-sub001/pkg/api"
	"github.com/hldiojin/hmes-dashboard-sub001/pkg/console"
	"github.com/hldiojin/hmes-dashboard-sub001/pkg/resource"
	"github.com/hldiojin/hmes-dashboard-sub001/pkg/session"
)

const usage = `Usage: hmesctl [flags] <command> [args]

Commands:
  login <email> <password>   Authenticate and persist the session
  logout                     Clear the session (best-effort remote notify)
  whoami                     Show the cached profile, no network call
  ping                       Check service reachability
  list <resource>            List users|products|categories|devices
  delete <resource> <id>     Delete a record by id

Flags:
`

type cliOptions struct {
	configPath string
	baseURL    string
	verbose    bool

	pageIndex int
	pageSize  int
	keyword   string
	status    string
	role      string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (cliOptions, []string) {
	opts := cliOptions{}
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.baseURL, "base-url", os.Getenv("HMES_BASE_URL"), "Console API base URL")
	flag.BoolVar(&opts.verbose, "v", false, "Enable debug logging")
	flag.IntVar(&opts.pageIndex, "page", 1, "Page index for list (1-based)")
	flag.IntVar(&opts.pageSize, "size", 10, "Page size for list")
	flag.StringVar(&opts.keyword, "keyword", "", "Keyword filter for list")
	flag.StringVar(&opts.status, "status", "", "Status filter for list")
	flag.StringVar(&opts.role, "role", "", "Role filter for list")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	return opts, flag.Args()
}

func newClient(opts cliOptions) (*console.Console, error) {
	logger := newLogger(opts.verbose)

	if opts.configPath != "" {
		cfg, err := console.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		if opts.baseURL != "" {
			cfg.BaseURL = opts.baseURL
		}
		return console.NewFromConfig(cfg, console.WithLogger(logger))
	}

	if opts.baseURL == "" {
		return nil, errors.New("either -config or -base-url (or HMES_BASE_URL) is required")
	}

	cfg := &console.Config{BaseURL: opts.baseURL}
	return console.NewFromConfig(cfg, console.WithLogger(logger))
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run() error {
	// A local .env is optional; missing files are fine.
	_ = godotenv.Load()

	opts, args := parseFlags()
	if len(args) == 0 {
		flag.Usage()
		return errors.New("a command is required")
	}

	client, err := newClient(opts)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch args[0] {
	case "login":
		return runLogin(ctx, client, args[1:])
	case "logout":
		return client.Auth().Logout(ctx)
	case "whoami":
		return runWhoami(client)
	case "ping":
		return client.Ping(ctx)
	case "list":
		return runList(ctx, client, opts, args[1:])
	case "delete":
		return runDelete(ctx, client, args[1:])
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runLogin(ctx context.Context, client *console.Console, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}

	user, err := client.Auth().Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
	if exp, ok := session.TokenExpiry(client.Session().Current().Token); ok {
		fmt.Printf("Session expires %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

func runWhoami(client *console.Console) error {
	user := client.Auth().CurrentUser()
	if user == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s status=%s\n", user.Name, user.Email, user.Role, user.Status)
	return nil
}

func listQuery(opts cliOptions) resource.Query {
	return resource.Query{
		PageIndex: opts.pageIndex,
		PageSize:  opts.pageSize,
		Keyword:   opts.keyword,
		Status:    opts.status,
		Role:      opts.role,
	}
}

func runList(ctx context.Context, client *console.Console, opts cliOptions, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: list <users|products|categories|devices>")
	}

	q := listQuery(opts)
	switch strings.ToLower(args[0]) {
	case "users":
		page, err := client.Users().List(ctx, q)
		if err != nil {
			return err
		}
		for _, u := range page.Data {
			fmt.Printf("%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Role, u.Status)
		}
		printFooter(page.CurrentPage, page.TotalPages, page.TotalItems)
	case "products":
		page, err := client.Products().List(ctx, q)
		if err != nil {
			return err
		}
		for _, p := range page.Data {
			fmt.Printf("%s\t%s\t%.2f\t%s\n", p.ID, p.Name, p.Price, p.Status)
		}
		printFooter(page.CurrentPage, page.TotalPages, page.TotalItems)
	case "categories":
		page, err := client.Categories().List(ctx, q)
		if err != nil {
			return err
		}
		for _, c := range page.Data {
			fmt.Printf("%s\t%s\t%s\n", c.ID, c.Name, c.Status)
		}
		printFooter(page.CurrentPage, page.TotalPages, page.TotalItems)
	case "devices":
		page, err := client.Devices().List(ctx, q)
		if err != nil {
			return err
		}
		for _, d := range page.Data {
			fmt.Printf("%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Serial, d.Status)
		}
		printFooter(page.CurrentPage, page.TotalPages, page.TotalItems)
	default:
		return fmt.Errorf("unknown resource %q", args[0])
	}
	return nil
}

func printFooter(current, total, items int) {
	fmt.Printf("page %d/%d, %d items\n", current, total, items)
}

func runDelete(ctx context.Context, client *console.Console, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: delete <resource> <id>")
	}

	var err error
	switch strings.ToLower(args[0]) {
	case "users":
		err = client.Users().Delete(ctx, args[1])
	case "products":
		err = client.Products().Delete(ctx, args[1])
	case "categories":
		err = client.Categories().Delete(ctx, args[1])
	case "devices":
		err = client.Devices().Delete(ctx, args[1])
	default:
		return fmt.Errorf("unknown resource %q", args[0])
	}

	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("%s %s does not exist", args[0], args[1])
	}
	return err
}
