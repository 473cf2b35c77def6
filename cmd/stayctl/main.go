// Command stayctl is a small operator CLI over the platform client:
// list resources, check booking counts, watch the notification hub.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/staykit/staykit-go/internal/config"
	"github.com/staykit/staykit-go/internal/domain"
	"github.com/staykit/staykit-go/internal/notify"
	"github.com/staykit/staykit-go/internal/rest"
	"github.com/staykit/staykit-go/internal/service/booking"
	"github.com/staykit/staykit-go/internal/service/lodging"
	"github.com/staykit/staykit-go/internal/service/voucher"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	opts := []rest.Option{rest.WithStaticToken(cfg.API.Token)}
	if timeout := cfg.APITimeout(); timeout > 0 {
		opts = append(opts, rest.WithHTTPClient(&http.Client{Timeout: timeout}))
	}
	provider := rest.NewProvider(cfg.API.BaseURL, opts...)

	ctx := context.Background()

	switch cmd := flag.Arg(0); cmd {
	case "lodgings":
		runLodgings(ctx, provider)
	case "bookings":
		runBookings(ctx, provider)
	case "vouchers":
		runVouchers(ctx, provider)
	case "notifications":
		runNotifications(ctx, provider)
	case "watch":
		runWatch(cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: stayctl [-config path] <command>

commands:
  lodgings        list all lodgings
  bookings        show booking count
  vouchers        list all vouchers
  notifications   show unread notification counts
  watch           stream push notifications from the hub`)
}

// printJSON renders any value as indented JSON on stdout.
func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal("encode output: ", err)
	}
	fmt.Println(string(out))
}

func runLodgings(ctx context.Context, p *rest.Provider) {
	res := lodging.NewService(p).List(ctx)
	if err := res.Err(); err != nil {
		log.Fatal("list lodgings: ", err)
	}
	printJSON(res.Data)
}

func runBookings(ctx context.Context, p *rest.Provider) {
	res := booking.NewService(p).Count(ctx, domain.BookingQuery{})
	if err := res.Err(); err != nil {
		log.Fatal("count bookings: ", err)
	}
	fmt.Printf("bookings: %d\n", res.Data)
}

func runVouchers(ctx context.Context, p *rest.Provider) {
	res := voucher.NewService(p).List(ctx)
	if err := res.Err(); err != nil {
		log.Fatal("list vouchers: ", err)
	}
	printJSON(res.Data)
}

func runNotifications(ctx context.Context, p *rest.Provider) {
	state, err := notify.FetchCounts(ctx, p)
	if err != nil {
		log.Fatal("fetch notification counts: ", err)
	}
	printJSON(state)
	fmt.Printf("total: %d\n", state.Total())
}

// runWatch connects to the notification hub and prints incoming push
// notifications until interrupted, maintaining a live counter state.
func runWatch(cfg *config.Config) {
	if cfg.Hub.URL == "" {
		log.Fatal("hub.url is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state := notify.State{}
	listener := notify.NewListener(cfg.Hub.URL, func(n domain.Notification) {
		state = notify.Reduce(state, notify.Event{
			Kind:           notify.EventReceived,
			Category:       n.Category,
			NotificationID: n.ID,
		})
		fmt.Printf("[%s] %s: %s (unread total %d)\n",
			time.Now().Format(time.TimeOnly), n.Category, n.Title, state.Total())
	}, notify.WithListenerToken(func() string { return cfg.API.Token }))

	if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("hub listener: ", err)
	}
}
