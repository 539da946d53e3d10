// Command paymentctl manages payment details through the payment details API.
//
//	paymentctl list
//	paymentctl add --owner "A" --number 4111111111111111 --expiry 12/29 --cvv 123
//	paymentctl edit 3 --owner "B"
//	paymentctl delete 3
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alovak/payment-details/internal/gateway"
	"github.com/alovak/payment-details/internal/logger"
	"github.com/alovak/payment-details/viewmodel"
	_ "github.com/joho/godotenv/autoload"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// formFlags maps command line flags to form fields.
var formFlags = []struct {
	flag, field, usage string
}{
	{"owner", "cardOwnerName", "card owner name"},
	{"number", "cardNumber", "card number"},
	{"expiry", "expirationDate", "expiration date, MM/YY"},
	{"cvv", "securityCode", "security code"},
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("paymentctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.String("api-url", "https://localhost:7091", "payment details API base URL")
	fs.Duration("timeout", 10*time.Second, "HTTP request timeout")
	fs.Bool("insecure-skip-verify", false, "accept self-signed TLS certificates")
	fs.String("log-level", "warn", "log level: debug, info, warn, error")
	for _, f := range formFlags {
		fs.String(f.flag, "", f.usage)
	}
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: paymentctl [flags] list | add | edit <id> | delete <id>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	v := viper.New()
	v.SetEnvPrefix("PAYMENTCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(fs); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	v.AutomaticEnv()

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	log := logger.New(stderr, v.GetString("log-level"), false)
	apiURL := v.GetString("api-url")
	client := gateway.New(apiURL, gateway.Options{
		Timeout:            v.GetDuration("timeout"),
		InsecureSkipVerify: v.GetBool("insecure-skip-verify"),
	})
	ctrl := viewmodel.New(client, apiURL, log)
	ctx := context.Background()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "list":
		ctrl.Refresh(ctx)

	case "add":
		for _, f := range formFlags {
			if err := ctrl.SetField(f.field, v.GetString(f.flag)); err != nil {
				fmt.Fprintln(stderr, err)
				return 2
			}
		}
		if err := ctrl.Submit(ctx); err != nil {
			fmt.Fprintf(stderr, "add: %v\n", err)
			return 2
		}

	case "edit":
		id, err := parseID(rest)
		if err != nil {
			fmt.Fprintf(stderr, "edit: %v\n", err)
			return 2
		}
		ctrl.Refresh(ctx)
		if ctrl.Err() != "" {
			break
		}
		detail, ok := ctrl.Find(id)
		if !ok {
			fmt.Fprintf(stderr, "edit: no payment detail with id %d\n", id)
			return 1
		}
		ctrl.BeginEdit(detail)
		for _, f := range formFlags {
			if !fs.Changed(f.flag) {
				continue
			}
			if err := ctrl.SetField(f.field, v.GetString(f.flag)); err != nil {
				fmt.Fprintln(stderr, err)
				return 2
			}
		}
		if err := ctrl.Submit(ctx); err != nil {
			fmt.Fprintf(stderr, "edit: %v\n", err)
			return 2
		}

	case "delete":
		id, err := parseID(rest)
		if err != nil {
			fmt.Fprintf(stderr, "delete: %v\n", err)
			return 2
		}
		ctrl.Remove(ctx, id)

	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}

	view := ctrl.View()
	if err := render(stdout, view); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if view.Error != "" {
		return 1
	}
	return 0
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one id argument")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
