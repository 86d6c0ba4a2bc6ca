package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/storefront/internal/adapter/storefront"
	"github.com/polkiloo/storefront/internal/checkout"
	"github.com/polkiloo/storefront/internal/logger"
	"github.com/polkiloo/storefront/internal/pkg/qr"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

type options struct {
	APIURL      string
	Name        string
	Email       string
	Password    string
	UserID      int64
	ProductID   int64
	ProductName string
	Price       int64
	Quantity    int64
	QROut       string
	Wait        bool
	Pay         bool
	Poll        time.Duration
	Attempts    int
	LogLevel    string
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&opts.APIURL, "api", "http://localhost:3000", "Storefront service root URL")
	fs.StringVar(&opts.Name, "name", "", "Register a new user with this name before checkout")
	fs.StringVar(&opts.Email, "email", "", "User email")
	fs.StringVar(&opts.Password, "password", "", "User password")
	fs.Int64Var(&opts.UserID, "user", 0, "Order owner id, defaults to the signed in user")
	fs.Int64Var(&opts.ProductID, "product", 0, "Product id")
	fs.StringVar(&opts.ProductName, "product-name", "", "Product name")
	fs.Int64Var(&opts.Price, "price", 0, "Unit price in minor units")
	fs.Int64Var(&opts.Quantity, "qty", 1, "Quantity")
	fs.StringVar(&opts.QROut, "qr-out", "", "File for the payment QR PNG, defaults to order-<id>.png")
	fs.BoolVar(&opts.Wait, "wait", false, "Wait until the order is paid")
	fs.BoolVar(&opts.Pay, "pay", false, "Call the payment callback as a scanner would")
	fs.DurationVar(&opts.Poll, "poll", 2*time.Second, "Payment poll interval")
	fs.IntVar(&opts.Attempts, "attempts", 30, "Payment poll attempts, 0 waits until interrupted")
	fs.StringVar(&opts.LogLevel, "log-level", "warn", "Log level")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.ProductID <= 0 {
		return options{}, errors.New("product must be positive")
	}
	opts.ProductName = productName(opts)
	if opts.Name != "" && (opts.Email == "" || opts.Password == "") {
		return options{}, errors.New("registration needs email and password")
	}
	if opts.Email == "" && opts.UserID <= 0 {
		return options{}, errors.New("either email or user is required")
	}
	return opts, nil
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	log := logger.NewWithLevel(stderr, opts.LogLevel)

	client, err := storefront.NewHTTPClient(opts.APIURL, log)
	if err != nil {
		return err
	}

	switch {
	case opts.Name != "":
		reg, err := client.Register(ctx, dto.RegisterRequest{Name: opts.Name, Email: opts.Email, Password: opts.Password})
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}
		fmt.Fprintf(stdout, "registered user %d\n", reg.User.ID)
	case opts.Email != "":
		if _, err := client.Login(ctx, opts.Email, opts.Password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	home, err := checkout.NewHomeScreen([]checkout.Product{{ID: opts.ProductID, Name: productName(opts), Price: opts.Price}})
	if err != nil {
		return err
	}
	flow := checkout.NewFlow(client, log)

	screen := checkout.Reduce(home, checkout.OpenProduct{ProductID: opts.ProductID})
	detail, ok := screen.(checkout.ProductDetailScreen)
	if !ok {
		return screenError(screen)
	}

	screen = flow.Checkout(ctx, detail, opts.UserID, []checkout.CartItem{{Product: detail.Product, Quantity: opts.Quantity}})
	payment, ok := screen.(checkout.PaymentScreen)
	if !ok {
		return screenError(screen)
	}
	fmt.Fprintf(stdout, "order %d total %d\n", payment.OrderID, payment.Total)

	path := opts.QROut
	if path == "" {
		path = fmt.Sprintf("order-%d.png", payment.OrderID)
	}
	png, err := qr.PNG(payment.QRPayload)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("write qr: %w", err)
	}
	fmt.Fprintf(stdout, "qr written to %s\n", path)

	if opts.Pay {
		resp, err := client.MarkPaid(ctx, payment.OrderID)
		if err != nil {
			return fmt.Errorf("pay: %w", err)
		}
		fmt.Fprintln(stdout, resp.Message)
	}

	if !opts.Wait {
		return nil
	}

	watcher := checkout.NewPaymentWatcher(client, opts.Poll, opts.Attempts, log)
	screen = flow.AwaitPayment(ctx, payment, watcher)
	if paid, ok := screen.(checkout.PaymentScreen); !ok || !paid.Paid {
		return screenError(screen)
	}
	fmt.Fprintf(stdout, "order %d paid\n", payment.OrderID)
	return nil
}

func productName(opts options) string {
	if strings.TrimSpace(opts.ProductName) != "" {
		return opts.ProductName
	}
	return "product " + strconv.FormatInt(opts.ProductID, 10)
}

func screenError(s checkout.Screen) error {
	if e, ok := s.(checkout.ErrorScreen); ok {
		return errors.New(e.Message)
	}
	return fmt.Errorf("unexpected screen %T", s)
}
