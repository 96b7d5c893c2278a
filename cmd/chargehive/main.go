package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chargehive/chargehive-client/internal/api"
	"github.com/chargehive/chargehive-client/internal/app"
	"github.com/chargehive/chargehive-client/internal/config"
	"github.com/chargehive/chargehive-client/internal/logger"
	"github.com/chargehive/chargehive-client/internal/models"
	"github.com/chargehive/chargehive-client/internal/store"
)

const usage = `chargehive - book parking and EV charging, pay with tokens

Usage:
  chargehive <command> [flags]

Commands:
  login      Log in with email and password
  register   Create an account
  logout     Log out and clear stored credentials
  profile    Show the current user
  services   List nearby parking and charging services
  book       Reserve a service for a time window
  pay        Book and pay with FLOW tokens
  history    Show past and upcoming sessions
  wallet     Show wallet address and balances
  transactions  Show recent wallet transfers
  send       Send tokens to another address
  receive    Show the address to receive tokens at
`

type cli struct {
	ctx    context.Context
	logger *zap.Logger
	app    *app.App
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	c := &cli{ctx: context.Background()}
	if err := c.run(os.Args[1], os.Args[2:]); err != nil {
		// Backend failures carry the backend's own message; everything
		// else is shown as-is.
		msg := err.Error()
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			msg = api.UserMessage(err)
		}
		fmt.Fprintln(os.Stderr, "Error:", msg)
		os.Exit(1)
	}
}

func (c *cli) run(command string, args []string) error {
	if err := c.initialize(); err != nil {
		return err
	}
	defer func() {
		if err := c.app.Close(); err != nil {
			c.logger.Warn("failed to close state store", zap.Error(err))
		}
		_ = c.logger.Sync()
	}()

	switch command {
	case "login":
		return c.login(args)
	case "register":
		return c.register(args)
	case "logout":
		c.app.Logout()
		fmt.Println("Logged out.")
		return nil
	case "profile":
		return c.profile()
	case "services":
		return c.services()
	case "book":
		return c.book(args)
	case "pay":
		return c.book(append(args, "-method=token"))
	case "history":
		return c.history()
	case "wallet":
		return c.wallet()
	case "transactions":
		return c.transactions()
	case "send":
		return c.send(args)
	case "receive":
		return c.receive()
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (c *cli) initialize() error {
	cfg, err := config.LoadWithFile(".env")
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return err
	}
	c.logger = log

	prefs, err := config.LoadPreferences(app.PreferencesPath(cfg))
	if err != nil {
		return err
	}

	st, err := store.NewSQLiteStore(filepath.Join(cfg.StatePath, "state.db"))
	if err != nil {
		return err
	}

	c.app, err = app.New(cfg, prefs, log, st, nil)
	return err
}

func (c *cli) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("email and password are required")
	}

	user, err := c.app.Login(c.ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func (c *cli) register(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	phone := fs.String("phone", "", "phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("email and password are required")
	}

	user, err := c.app.Register(c.ctx, api.RegisterRequest{
		Email:    *email,
		Password: *password,
		Name:     *name,
		Phone:    *phone,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s. Your wallet address is %s\n", user.Name, user.WalletAddress)
	return nil
}

func (c *cli) profile() error {
	user, err := c.app.Profile(c.ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Name:    %s\nEmail:   %s\nPhone:   %s\nWallet:  %s\n",
		user.Name, user.Email, user.Phone, user.WalletAddress)
	return nil
}

func (c *cli) services() error {
	services, notice := c.app.Services(c.ctx)
	if notice != "" {
		fmt.Println(notice)
		fmt.Println()
	}

	lat, lng := c.app.MapCenter(c.ctx)
	fmt.Printf("Services near %.4f, %.4f:\n\n", lat, lng)
	for _, svc := range services {
		marker := " "
		if !svc.Bookable() {
			marker = "x"
		}
		fmt.Printf("[%s] %-10s %-24s $%s/hr  (%s)\n",
			marker, svc.Type.Label(), svc.Address, svc.HourlyRate.StringFixed(2), svc.ID)
	}
	return nil
}

func (c *cli) book(args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	serviceID := fs.String("service", "", "service id to book")
	fromStr := fs.String("from", "", "start time (RFC 3339)")
	toStr := fs.String("to", "", "end time (RFC 3339)")
	method := fs.String("method", "", "payment method: card or token (default from preferences)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *serviceID == "" {
		return errors.New("-service is required")
	}

	from, err := time.Parse(time.RFC3339, *fromStr)
	if err != nil {
		return fmt.Errorf("invalid -from time: %w", err)
	}
	to, err := time.Parse(time.RFC3339, *toStr)
	if err != nil {
		return fmt.Errorf("invalid -to time: %w", err)
	}

	services, _ := c.app.Services(c.ctx)
	svc := findService(services, *serviceID)
	if svc == nil {
		return fmt.Errorf("no service with id %q", *serviceID)
	}

	quote := c.app.Quote(svc, from, to)
	fmt.Printf("%s at %s, %s: $%s\n", svc.Type.Label(), svc.Address, quote.DurationLabel(), quote.AmountDisplay())

	if *method == "" {
		*method = c.app.PaymentMethod()
	}
	if *method == "token" {
		return c.payWithTokens(svc, from, to)
	}

	session, err := c.app.Book(c.ctx, svc, from, to)
	if err != nil {
		return err
	}
	fmt.Printf("Booked. Session %s, total $%s\n", session.ID, session.TotalAmount.StringFixed(2))
	return nil
}

// payWithTokens reserves the session first and only then runs the
// payment flow against it.
func (c *cli) payWithTokens(svc *models.Service, from, to time.Time) error {
	session, flow, err := c.app.BookWithTokens(c.ctx, svc, from, to)
	if session != nil {
		fmt.Printf("Booked. Session %s\n", session.ID)
	}
	if err != nil {
		return err
	}

	q := flow.Quote()
	fmt.Printf("Quote: $%s = %s FLOW at $%s/FLOW (locked for %d minutes)\n",
		q.AmountUSD.StringFixed(2), q.TokenAmount.String(), q.TokenPriceUSD.String(),
		int(models.QuoteLockWindow.Minutes()))
	if balance, known := flow.Balance(); known {
		fmt.Printf("Wallet balance: %s FLOW\n", balance.String())
	}

	if err := flow.Confirm(); err != nil {
		return err
	}

	receipt, err := flow.Execute(c.ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Payment complete. Transaction %s\n", receipt.TransactionHash)
	return nil
}

func (c *cli) history() error {
	entries, err := c.app.History(c.ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No sessions yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%-9s %s  %s - %s  $%s\n",
			e.Status,
			e.Session.Service.Address,
			e.Session.From.Local().Format("Jan 2 15:04"),
			e.Session.To.Local().Format("15:04"),
			e.Session.TotalAmount.StringFixed(2))
	}
	return nil
}

func (c *cli) wallet() error {
	details, err := c.app.WalletDetails(c.ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Address: %s\nBalance: %s FLOW\n", details.Address, details.Balance.String())

	if cht, err := c.app.TokenBalance(c.ctx); err == nil {
		fmt.Printf("         %s %s\n", cht.Balance.String(), cht.Token)
	}

	activity, err := c.app.WalletActivity(c.ctx)
	if err != nil {
		return err
	}
	if len(activity) == 0 {
		return nil
	}
	fmt.Println("\nRecent activity:")
	for _, a := range activity {
		fmt.Printf("  %-30s $%s (%s FLOW)  %s\n",
			a.Description, a.AmountUSD.StringFixed(2), a.TokenAmount.String(), a.Status)
	}
	return nil
}

func (c *cli) transactions() error {
	txs, err := c.app.WalletTransactions(c.ctx)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Println("No transactions yet.")
		return nil
	}

	for _, tx := range txs {
		fmt.Printf("%-8s %12s FLOW  %s -> %s  %s\n",
			tx.Type, tx.Amount.String(), tx.FromAddress, tx.ToAddress,
			tx.CreatedAt.Local().Format("Jan 2 15:04"))
	}
	return nil
}

func (c *cli) send(args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	to := fs.String("to", "", "recipient wallet address")
	amountStr := fs.String("amount", "", "token amount to send")
	if err := fs.Parse(args); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(*amountStr)
	if err != nil {
		return fmt.Errorf("invalid -amount: %w", err)
	}

	receipt, err := c.app.SendTokens(c.ctx, *to, amount)
	if err != nil {
		return err
	}
	fmt.Printf("Sent %s FLOW to %s. Transaction %s\n",
		receipt.Amount.String(), receipt.ToAddress, receipt.TransactionHash)
	return nil
}

func (c *cli) receive() error {
	info, err := c.app.ReceiveInfo(c.ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Receive tokens at: %s\n", info.Address)
	if info.Network != "" {
		fmt.Printf("Network: %s\n", info.Network)
	}
	return nil
}

func findService(services []models.Service, id string) *models.Service {
	for i := range services {
		if services[i].ID == id {
			return &services[i]
		}
	}
	return nil
}
