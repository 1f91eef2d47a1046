package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rbac-dashboard/internal/client"
	"github.com/spec-kit/rbac-dashboard/internal/config"
	"github.com/spec-kit/rbac-dashboard/internal/guard"
	"github.com/spec-kit/rbac-dashboard/internal/observability"
)

func main() {
	var (
		apiURL    = flag.String("api", envOr("DASHBOARD_API_URL", "http://localhost:3001"), "API base URL")
		tokenFile = flag.String("token-file", defaultTokenFile(), "where the session token is kept")
		email     = flag.String("email", "", "log in with this email before navigating")
		password  = flag.String("password", "", "password for -email")
		logout    = flag.Bool("logout", false, "drop the stored session and exit")
		view      = flag.String("view", guard.DashboardPath, "client path to open")
		logLevel  = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	logger, err := observability.NewLogger(config.LoggerConfig{Level: *logLevel})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session := client.NewSessionManager(client.NewAPIClient(*apiURL, nil), client.NewFileTokenStore(*tokenFile), logger)

	if *logout {
		if err := session.Logout(); err != nil {
			logger.Fatal("logout failed", zap.Error(err))
		}
		fmt.Println("logged out")
		return
	}

	if *email != "" {
		if _, err := session.Login(ctx, *email, *password); err != nil {
			fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
			os.Exit(1)
		}
	} else if _, err := session.Restore(ctx); err != nil {
		logger.Warn("could not restore session", zap.Error(err))
	}

	state := session.State()
	if state.User != nil {
		fmt.Printf("signed in as %s <%s> (%s)\n", state.User.Name, state.User.Email, state.User.Role)
	}

	if err := open(ctx, session, *view); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// open follows redirects until a terminal decision and prints the view.
func open(ctx context.Context, session *client.SessionManager, path string) error {
	for hops := 0; hops < 4; hops++ {
		decision, view := guard.Navigate(path, session.State())
		switch decision.Outcome {
		case guard.Redirect, guard.RedirectLogin, guard.RedirectUnauthorized:
			fmt.Printf("%s -> %s (%s)\n", path, decision.Location, decision.Outcome)
			if decision.Outcome != guard.Redirect {
				return nil
			}
			path = decision.Location
		case guard.Render:
			fmt.Printf("%s: %s\n", path, view.Name)
			return printData(ctx, session, view)
		case guard.Loading:
			fmt.Printf("%s: loading\n", path)
			return nil
		default:
			return fmt.Errorf("%s: page not found", path)
		}
	}
	return fmt.Errorf("%s: too many redirects", path)
}

func printData(ctx context.Context, session *client.SessionManager, view guard.View) error {
	data, err := session.Fetch(ctx, view)
	if err != nil {
		return fmt.Errorf("load %s: %w", view.DataPath, err)
	}
	if len(data) == 0 {
		return nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return err
	}
	fmt.Println(pretty.String())
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "rbac-dashboard", "session.json")
}
