package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"canteen/internal/entities"
	"canteen/internal/service/order_sync"
	"canteen/pkg/logger"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

func newSignupCommand(t *tracker) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a student account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := t.gateway.Signup(cmd.Context(), name, email, password)
			if err != nil {
				return t.fail("signup failed", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	for _, f := range []string{"name", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newOrderCommand(t *tracker) *cobra.Command {
	var (
		email string
		items []string
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place an order from -item name=price[xqty] flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := parseItems(items)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			user, err := t.gateway.Login(ctx, email)
			if err != nil {
				return t.fail("login failed", err)
			}

			session := order_sync.NewSession(*user)
			for _, it := range catalog {
				for range it.quantity {
					session.Cart.Add(it.item)
				}
			}

			placed, err := order_sync.Checkout(ctx, session, t.gateway)
			if err != nil {
				return t.fail("checkout failed", err)
			}

			t.log.Debug("order placed",
				logger.NewField("order_id", placed.ID),
				logger.NewField("items", len(placed.Items)),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Order %s placed, total %s\n", placed.ID, placed.TotalAmount.StringFixed(2))
			printOrders(out, []order_sync.TrackedOrder{{
				Order:   *placed,
				Display: order_sync.ToDisplayStatus(placed.Status),
			}})
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address of the account")
	cmd.Flags().StringArrayVarP(&items, "item", "i", nil, "cart line as name=price[xqty], repeatable")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func newWatchCommand(t *tracker) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow order statuses until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			user, err := t.gateway.Login(ctx, email)
			if err != nil {
				return t.fail("login failed", err)
			}

			out := cmd.OutOrStdout()
			poller := order_sync.New(t.log, t.gateway, clockwork.NewRealClock(),
				order_sync.WithInterval(t.cfg.SyncInterval),
				order_sync.WithOnUpdate(func(s order_sync.Snapshot) {
					fmt.Fprintf(out, "\n%s, %d orders (as of %s)\n",
						user.Name, len(s.Orders), s.FetchedAt.Format("15:04:05"))
					printOrders(out, s.Orders)
				}),
			)

			if err := poller.Start(ctx, order_sync.NewSession(*user)); err != nil {
				return t.fail("start order sync", err)
			}
			defer poller.Stop()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address of the account")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func printOrders(out io.Writer, orders []order_sync.TrackedOrder) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ORDER\tSTATUS\tITEMS\tTOTAL\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			o.ID, o.Display, itemCount(o.Items), o.TotalAmount.StringFixed(2), o.CreatedAt.Local().Format("02 Jan 15:04"))
	}
}

func itemCount(items []entities.LineItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
