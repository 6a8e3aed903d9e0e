// yenctl is a command line client for the YEN API.
//
//	yenctl login --email amaka@example.com --password ...   prints a token
//	YEN_TOKEN=... yenctl ideas
//	YEN_TOKEN=... yenctl fund <idea-id> 250
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"yen-network/pkg/client"
)

type command struct {
	name    string
	args    string
	summary string
	run     func(ctx context.Context, c *client.Client, out io.Writer, args []string) error
}

var commands = []command{
	{"login", "--email E --password P", "authenticate and print a token", runLogin},
	{"me", "", "show the current user and capabilities", runMe},
	{"ideas", "[--user ID]", "list ideas", runIdeas},
	{"pitch", "--title T --description D --category C --goal N", "submit an idea", runPitch},
	{"like", "<idea-id>", "toggle a like", runLike},
	{"fund", "<idea-id> <amount>", "add funding to an idea", runFund},
	{"mentors", "", "list mentors", runMentors},
	{"investors", "", "list investors", runInvestors},
	{"connections", "[user-id]", "list connections (default: yours)", runConnections},
	{"connect", "<user-id> --type T [--message M]", "send a connection request", runConnect},
	{"accept", "<connection-id>", "accept a connection request", runAccept},
	{"reject", "<connection-id>", "reject a connection request", runReject},
	{"notifications", "", "list your notifications", runNotifications},
	{"stats", "", "show platform stats (admin)", runStats},
	{"report", "--out FILE", "download the funding report PDF (admin)", runReport},
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var apiURL, token string
	global := pflag.NewFlagSet("yenctl", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.StringVar(&apiURL, "api", client.BaseURLFromEnv(), "API base URL including /api")
	global.StringVar(&token, "token", os.Getenv("YEN_TOKEN"), "bearer token (default $YEN_TOKEN)")
	global.Usage = func() { printUsage(out, global) }
	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(out, global)
		return nil
	}
	cmd, ok := lookup(rest[0])
	if !ok {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	c, err := client.New(client.Config{BaseURL: apiURL})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if token != "" && cmd.name != "login" {
		c.Session().Restore(token)
		if err := c.Refresh(ctx); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
	}
	return cmd.run(ctx, c, out, rest[1:])
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

func printUsage(out io.Writer, global *pflag.FlagSet) {
	fmt.Fprintln(out, "Usage: yenctl [--api URL] [--token TOKEN] <command> [args]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-14s %-48s %s\n", cmd.name, cmd.args, cmd.summary)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Global flags:")
	fmt.Fprint(out, global.FlagUsages())
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func requireArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: yenctl %s", usage)
	}
	return nil
}

func runLogin(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	var email, password string
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	fs.StringVar(&email, "email", "", "account email")
	fs.StringVar(&password, "password", os.Getenv("YEN_PASSWORD"), "account password (default $YEN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	user, err := c.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Logged in as %s (%s)\n", user.Name, user.Role)
	fmt.Fprintln(out, c.Session().Token())
	return nil
}

func runMe(_ context.Context, c *client.Client, out io.Writer, _ []string) error {
	user := c.Session().User()
	if user == nil {
		return client.ErrNotLoggedIn
	}
	return printJSON(out, user)
}

func runIdeas(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	var userID string
	fs := pflag.NewFlagSet("ideas", pflag.ContinueOnError)
	fs.StringVar(&userID, "user", "", "only ideas owned by this user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var ideas []client.Idea
	var err error
	if userID != "" {
		ideas, err = c.IdeasByUser(ctx, userID)
	} else {
		ideas, err = c.Ideas(ctx)
	}
	if err != nil {
		return err
	}
	for _, idea := range ideas {
		fmt.Fprintf(out, "%s  %-40s %-12s %10.2f / %-10.2f likes=%d  by %s\n",
			idea.ID, idea.Title, idea.Category, idea.CurrentFunding, idea.FundingGoal, idea.Likes, idea.UserName)
	}
	return nil
}

func runPitch(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	var req client.CreateIdeaRequest
	fs := pflag.NewFlagSet("pitch", pflag.ContinueOnError)
	fs.StringVar(&req.Title, "title", "", "idea title")
	fs.StringVar(&req.Description, "description", "", "idea description")
	fs.StringVar(&req.Category, "category", "", "idea category")
	fs.Float64Var(&req.FundingGoal, "goal", 0, "funding goal")
	if err := fs.Parse(args); err != nil {
		return err
	}
	idea, err := c.CreateIdea(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(out, idea)
}

func runLike(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	if err := requireArgs(args, 1, "like <idea-id>"); err != nil {
		return err
	}
	res, err := c.LikeIdea(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "liked=%t likes=%d\n", res.Liked, res.Likes)
	return nil
}

func runFund(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	if err := requireArgs(args, 2, "fund <idea-id> <amount>"); err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("amount must be a number: %w", err)
	}
	res, err := c.FundIdea(ctx, args[0], amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %.2f / %.2f\n", res.Message, res.CurrentFunding, res.FundingGoal)
	return nil
}

func runMentors(ctx context.Context, c *client.Client, out io.Writer, _ []string) error {
	users, err := c.Mentors(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, users)
}

func runInvestors(ctx context.Context, c *client.Client, out io.Writer, _ []string) error {
	users, err := c.Investors(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, users)
}

func runConnections(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	userID := ""
	if len(args) > 0 {
		userID = args[0]
	} else if u := c.Session().User(); u != nil {
		userID = u.ID
	}
	if userID == "" {
		return client.ErrNotLoggedIn
	}
	conns, err := c.Connections(ctx, userID)
	if err != nil {
		return err
	}
	for _, conn := range conns {
		fmt.Fprintf(out, "%s  %s -> %s  %-12s %s\n", conn.ID, conn.FromUserName, conn.ToUserName, conn.Type, conn.Status)
	}
	return nil
}

func runConnect(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	var req client.ConnectionRequest
	fs := pflag.NewFlagSet("connect", pflag.ContinueOnError)
	fs.StringVar(&req.Type, "type", "", "mentor, investor or partner")
	fs.StringVar(&req.Message, "message", "", "optional note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireArgs(fs.Args(), 1, "connect <user-id> --type T"); err != nil {
		return err
	}
	req.ToUserID = fs.Arg(0)
	id, err := c.RequestConnection(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Connection request sent: %s\n", id)
	return nil
}

func runAccept(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	if err := requireArgs(args, 1, "accept <connection-id>"); err != nil {
		return err
	}
	status, err := c.AcceptConnection(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, status)
	return nil
}

func runReject(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	if err := requireArgs(args, 1, "reject <connection-id>"); err != nil {
		return err
	}
	status, err := c.RejectConnection(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, status)
	return nil
}

func runNotifications(ctx context.Context, c *client.Client, out io.Writer, _ []string) error {
	items, err := c.Notifications(ctx)
	if err != nil {
		return err
	}
	for _, n := range items {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %s  %-20s %s\n", mark, n.CreatedAt.Format(time.RFC3339), n.Kind, n.Body)
	}
	return nil
}

func runStats(ctx context.Context, c *client.Client, out io.Writer, _ []string) error {
	if !c.Session().Can("admin:view") {
		return errors.New("admin access required")
	}
	stats, err := c.AdminStats(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, stats)
}

func runReport(ctx context.Context, c *client.Client, out io.Writer, args []string) error {
	var path string
	fs := pflag.NewFlagSet("report", pflag.ContinueOnError)
	fs.StringVarP(&path, "out", "o", "funding-report.pdf", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pdf, err := c.FundingReport(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s (%d bytes)\n", path, len(pdf))
	return nil
}
