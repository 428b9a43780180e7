package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"timeclass-backend/internal/approval"
	"timeclass-backend/internal/client"
	"timeclass-backend/internal/model"

	"go.uber.org/zap"
)

func main() {
	apiURL := flag.String("api", "http://localhost:3000", "REST API base URL")
	wsURL := flag.String("ws", "ws://localhost:3000/ws/claims", "claim channel URL")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	claimFor := flag.Uint("claim", 0, "work-hour id whose claim thread to tail")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("email and password are required")
	}

	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zl.Sync()

	ctx := context.Background()
	api := client.NewAPI(*apiURL)

	user, err := api.Login(ctx, *email, *password)
	if err != nil {
		zl.Fatal("login failed", zap.Error(err))
	}
	if user.TeacherID == nil {
		zl.Fatal("this account is not linked to a teacher")
	}
	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)

	setting, err := api.Settings(ctx)
	if err != nil {
		zl.Fatal("failed to load settings", zap.Error(err))
	}

	store := client.NewStore()
	workflow := client.NewWorkflow(api, store)
	if err := workflow.Refresh(ctx, *user.TeacherID); err != nil {
		zl.Fatal("failed to load work-hours", zap.Error(err))
	}

	pending := store.Pending()
	fmt.Printf("%d record(s) pending approval\n", len(pending))

	// Single countdown against the nearest deadline across all
	// pending records
	if target, ok := approval.Nearest(pending, setting.AutoApproveAmount, setting.AutoApproveUnit); ok {
		countdown := client.NewCountdown(printTick)
		countdown.Start(target)
		defer countdown.Stop()
	}

	if *claimFor != 0 {
		if err := tailClaim(ctx, api, *wsURL, user, *claimFor, zl); err != nil {
			zl.Fatal("claim thread failed", zap.Error(err))
		}
		return
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

func printTick(t client.Tick) {
	if t.Phase == client.PhaseExpired {
		fmt.Println("\rAuto-approval in progress...")
		return
	}
	fmt.Printf("\rAuto-approval in %s [%s]   ", formatRemaining(t.Remaining), t.Severity)
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm %02ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02dh %02dm %02ds", hours, minutes, seconds)
}

// tailClaim opens the claim thread of a work-hour record, prints the
// history plus live comments, and sends stdin lines as new comments.
func tailClaim(ctx context.Context, api *client.API, wsURL string, user *model.User, workHourID uint, zl *zap.Logger) error {
	channel := client.NewChannelClient(wsURL, api.Token(), zl.Named("channel"))
	if err := channel.Connect(ctx); err != nil {
		return err
	}
	defer channel.Close()

	view := client.NewClaimView(api, channel, client.Author{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	}, zl.Named("view"))

	view.OnAppend(func(cm model.Comment) {
		fmt.Printf("\n[%s] %s: %s\n> ", cm.CreatedAt.Format("15:04"), cm.AuthorName, cm.Content)
	})

	if err := view.Open(ctx, workHourID); err != nil {
		return err
	}
	defer view.Close()

	claim := view.Claim()
	fmt.Printf("Claim #%d: %s\n", claim.ID, claim.Title)
	for _, cm := range view.Comments() {
		fmt.Printf("[%s] %s: %s\n", cm.CreatedAt.Format("15:04"), cm.AuthorName, cm.Content)
	}

	fmt.Print("> ")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		if line == "/quit" {
			break
		}
		if err := view.Send(ctx, line); err != nil {
			fmt.Printf("send failed: %v\n", err)
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}
