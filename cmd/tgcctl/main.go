package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/matheus3301/tgclone/internal/prefs"
	"github.com/matheus3301/tgclone/internal/session"
	"github.com/matheus3301/tgclone/internal/signup"
	"github.com/matheus3301/tgclone/internal/store"
	"github.com/matheus3301/tgclone/internal/tui/client"
)

func main() {
	sessionFlag := flag.String("session", "", "session name (overrides config default)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	limitFlag := flag.Int("limit", 0, "maximum search results (0 = daemon default)")
	flag.Parse()

	sessionName := session.Resolve(*sessionFlag)
	if err := session.ValidateName(sessionName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch args[0] {
	case "search":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: tgcctl search <query>")
			os.Exit(1)
		}
		c := dial(sessionName)
		defer func() { _ = c.Close() }()
		c.SetLimit(*limitFlag)
		cmdSearch(ctx, c, args[1], *jsonFlag)
	case "register":
		if len(args) < 4 {
			fmt.Fprintln(os.Stderr, "usage: tgcctl register <username> <phone> <password>")
			os.Exit(1)
		}
		c := dial(sessionName)
		defer func() { _ = c.Close() }()
		cmdRegister(ctx, c, signup.Form{
			Username:        args[1],
			Phone:           args[2],
			Password:        args[3],
			ConfirmPassword: args[3],
		}, *jsonFlag)
	case "theme":
		ps, closeDB := openPrefs(sessionName)
		defer closeDB()
		cmdTheme(ps, args[1:], *jsonFlag)
	case "lang":
		ps, closeDB := openPrefs(sessionName)
		defer closeDB()
		cmdLang(ps, args[1:], *jsonFlag)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: tgcctl [--session <name>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  search <query>                        Search the directory")
	fmt.Fprintln(os.Stderr, "  register <username> <phone> <pass>    Create an account")
	fmt.Fprintln(os.Stderr, "  theme [get|set <name>|cycle]          Show or change the theme")
	fmt.Fprintln(os.Stderr, "  lang [get|set <code>]                 Show or change the language")
}

func dial(sessionName string) *client.Client {
	c, err := client.New(session.SocketPath(sessionName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot connect to daemon for session %q: %v\n", sessionName, err)
		os.Exit(1)
	}
	return c
}

func openPrefs(sessionName string) (*prefs.Store, func()) {
	db, _, err := store.OpenMigrated(session.PrefsDBPath(sessionName), store.PrefsSchema)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: open preferences: %v\n", err)
		os.Exit(1)
	}
	return prefs.Open(db, nil, nil), func() { _ = db.Close() }
}

func cmdSearch(ctx context.Context, c *client.Client, query string, jsonOut bool) {
	results, err := c.Search(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if jsonOut {
		outputJSON(results)
		return
	}
	for _, r := range results {
		presence := r.LastSeen
		if r.IsOnline {
			presence = "online"
		}
		fmt.Printf("%-24s %-30s %-10s %s\n", r.ID, r.Name, r.Status, presence)
	}
}

func cmdRegister(ctx context.Context, c *client.Client, form signup.Form, jsonOut bool) {
	if errs := signup.Validate(form); errs.HasErrors() {
		for field, rule := range errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, rule.Message())
		}
		os.Exit(1)
	}
	reg, err := c.Register(ctx, form)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if jsonOut {
		outputJSON(reg)
		return
	}
	fmt.Printf("Registered %s (%s)\n", reg.Username, reg.UserID)
}

func cmdTheme(ps *prefs.Store, args []string, jsonOut bool) {
	sub := "get"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "get":
	case "set":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: tgcctl theme set <light|dark|black>")
			os.Exit(1)
		}
		t, err := prefs.ParseTheme(args[1])
		if err == nil {
			err = ps.SetTheme(t)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "cycle":
		ps.CycleTheme()
	default:
		fmt.Fprintf(os.Stderr, "unknown theme subcommand: %s\n", sub)
		os.Exit(1)
	}
	checkSaved(ps)
	if jsonOut {
		outputJSON(map[string]string{"theme": string(ps.Theme())})
		return
	}
	fmt.Printf("Theme: %s\n", ps.Theme())
}

func cmdLang(ps *prefs.Store, args []string, jsonOut bool) {
	sub := "get"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "get":
	case "set":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: tgcctl lang set <code>")
			os.Exit(1)
		}
		l, err := prefs.ParseLanguage(args[1])
		if err == nil {
			err = ps.SetLanguage(l)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown lang subcommand: %s\n", sub)
		os.Exit(1)
	}
	checkSaved(ps)
	if jsonOut {
		outputJSON(map[string]string{"language": string(ps.Language())})
		return
	}
	fmt.Printf("Language: %s\n", ps.Language())
}

// checkSaved fails when the store fell back to memory: values shown may be
// defaults and changes would not outlive this process.
func checkSaved(ps *prefs.Store) {
	if ps.Degraded() {
		fmt.Fprintln(os.Stderr, "error: preferences database unavailable")
		os.Exit(1)
	}
}

func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "json encode error: %v\n", err)
	}
}
