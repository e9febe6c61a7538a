package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"hotel_portal/internal/domain"
)

var resourceNames = []string{"properties", "restaurants", "events", "hero-slides", "offers", "guests"}

func run(ctx context.Context, base string, args []string, stdin io.Reader, stdout io.Writer) error {
	root := newRootCmd(base, stdin, stdout)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(base string, stdin io.Reader, stdout io.Writer) *cobra.Command {
	c := &cli{in: bufio.NewReader(stdin), out: stdout}
	var (
		apiURL  string
		timeout time.Duration
	)
	root := &cobra.Command{
		Use:           "hotelctl",
		Short:         "Terminal admin for the hotel portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.connect(apiURL, timeout)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New("missing command")
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stdout)
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&apiURL, "api", base, "admin API base URL")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")

	root.AddCommand(
		listCmd(c),
		toggleCmd(c, domain.FlagActive),
		toggleCmd(c, domain.FlagFeatured),
		deleteCmd(c),
		createOfferCmd(c),
		createEventCmd(c),
		reservationCmd(c),
		paymentCmd(c),
		heroCmd(c),
		&cobra.Command{
			Use:   "dashboard",
			Short: "Show today's figures",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.dashboard(cmd.Context())
			},
		},
	)
	return root
}

func listCmd(c *cli) *cobra.Command {
	var search, active, featured string
	var limit, offset int
	cmd := &cobra.Command{
		Use:       "list <resource>",
		Short:     "List one page of a resource",
		Args:      cobra.ExactArgs(1),
		ValidArgs: resourceNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, err := resourceArg(args)
			if err != nil {
				return err
			}
			q := url.Values{}
			for k, v := range map[string]string{"q": search, "active": active, "featured": featured} {
				if v != "" {
					q.Set(k, v)
				}
			}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))
			return c.list(cmd.Context(), resource, q)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&search, "search", "q", "", "search text")
	f.StringVar(&active, "active", "", "true or false")
	f.StringVar(&featured, "featured", "", "true or false")
	f.IntVar(&limit, "limit", 50, "rows per page")
	f.IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}

func toggleCmd(c *cli, which domain.Flag) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("toggle-%s <resource> <id>", which),
		Short: fmt.Sprintf("Flip the %s flag of one row", which),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, id, err := resourceAndID(args)
			if err != nil {
				return err
			}
			return c.toggle(cmd.Context(), which, resource, id)
		},
	}
}

func deleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete one row after confirmation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, id, err := resourceAndID(args)
			if err != nil {
				return err
			}
			c.delete(cmd.Context(), resource, id, yes)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func createOfferCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-offer",
		Short: "Create a special offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.createOffer(cmd.Context(), cmd.Flags())
		},
	}
	f := cmd.Flags()
	f.String("title", "", "offer title")
	f.String("slug", "", "URL slug (defaults to the title)")
	f.String("type", "", "ROOM_PACKAGE, DINING, SPA, EARLY_BIRD, LAST_MINUTE, SEASONAL or OTHER")
	f.String("original", "", "original price")
	f.String("price", "", "offer price")
	f.String("from", "", "valid from (YYYY-MM-DD)")
	f.String("to", "", "valid to (YYYY-MM-DD)")
	f.String("promo", "", "promo code")
	f.String("property", "", "property id")
	f.String("active", "true", "publish right away")
	f.String("featured", "false", "feature on the home page")
	return cmd
}

func createEventCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-event",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.createEvent(cmd.Context(), cmd.Flags())
		},
	}
	f := cmd.Flags()
	f.String("title", "", "event title")
	f.String("slug", "", "URL slug (defaults to the title)")
	f.String("start", "", "start date (YYYY-MM-DD)")
	f.String("end", "", "end date (YYYY-MM-DD)")
	f.String("venue", "", "venue")
	f.String("category", "", "category")
	f.String("price", "", "ticket price, empty for free")
	f.String("capacity", "", "capacity")
	f.String("status", "", "DRAFT or PUBLISHED")
	f.String("property", "", "property id")
	return cmd
}

// actionGroup builds "<group> <action> <id>" commands. An unknown action
// reaches the group itself and is refused there.
func actionGroup(name, short string, actions []string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <action> <id>",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%s: expected one of %v", name, actions)
			}
			return fmt.Errorf("%s: unknown action %q", name, args[0])
		},
	}
}

func reservationCmd(c *cli) *cobra.Command {
	actions := []string{"confirm", "cancel", "check-in", "check-out", "no-show"}
	group := actionGroup("reservation", "Move a reservation through its stay", actions)
	for _, action := range actions {
		var reason string
		sub := &cobra.Command{
			Use:   action + " <id>",
			Short: action + " a reservation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := idArg(args, 0)
				if err != nil {
					return err
				}
				var body any
				if action == "cancel" {
					body = map[string]string{"reason": reason}
				}
				c.itemAction(cmd.Context(), "reservations", id, action, "Failed to update reservation", body)
				return nil
			},
		}
		if action == "cancel" {
			sub.Flags().StringVar(&reason, "reason", "", "cancellation reason")
		}
		group.AddCommand(sub)
	}
	return group
}

func paymentCmd(c *cli) *cobra.Command {
	actions := []string{"mark-paid", "fail", "refund"}
	group := actionGroup("payment", "Settle, fail or refund a payment", actions)
	for _, action := range actions {
		var amount, reason string
		sub := &cobra.Command{
			Use:   action + " <id>",
			Short: action + " a payment",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := idArg(args, 0)
				if err != nil {
					return err
				}
				var body any
				if action == "refund" {
					b := map[string]any{"reason": reason}
					if amount != "" {
						n, err := strconv.ParseFloat(amount, 64)
						if err != nil {
							return errors.New("amount must be a number")
						}
						b["amount"] = n
					}
					body = b
				}
				c.itemAction(cmd.Context(), "payments", id, action, "Failed to update payment", body)
				return nil
			},
		}
		if action == "refund" {
			sub.Flags().StringVar(&amount, "amount", "", "amount to refund, everything when empty")
			sub.Flags().StringVar(&reason, "reason", "", "refund reason")
		}
		group.AddCommand(sub)
	}
	return group
}

func heroCmd(c *cli) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "hero",
		Short: "Rotate through the active hero slides until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.hero(cmd.Context(), interval)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "time per slide")
	return cmd
}
