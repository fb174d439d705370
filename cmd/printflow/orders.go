package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yukikurage/printflow/internal/app"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/services"
	"github.com/yukikurage/printflow/internal/workorder"
)

func (c *cli) boardCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show orders grouped by stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				columns, err := a.Orders.Board(ctx, query)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if c.jsonOutput() {
					return printJSON(out, columns)
				}

				tw := newTable(out)
				tw.AppendHeader(table.Row{"Stage", "No.", "Title", "Client", "Priority", "Deadline"})
				for _, col := range columns {
					for _, o := range col.Orders {
						tw.AppendRow(table.Row{col.Label, workorder.Number(o.OrderNumber), o.Title, o.ClientName, o.Priority.Label(), o.Deadline})
					}
					tw.AppendSeparator()
				}
				tw.SetCaption("storage: %s", a.Mode())
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by title, client or number")
	return cmd
}

func (c *cli) ordersCmd() *cobra.Command {
	orders := &cobra.Command{Use: "orders", Short: "Manage orders"}
	orders.AddCommand(c.ordersListCmd())
	orders.AddCommand(c.ordersAddCmd())
	orders.AddCommand(c.ordersMoveCmd())
	orders.AddCommand(c.ordersRemoveCmd())
	return orders
}

func (c *cli) ordersListCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				orders, err := a.Orders.List(ctx, query)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if c.jsonOutput() {
					return printJSON(out, orders)
				}

				tw := newTable(out)
				tw.AppendHeader(table.Row{"No.", "Title", "Client", "Stage", "Priority", "Deadline"})
				for _, o := range orders {
					tw.AppendRow(table.Row{workorder.Number(o.OrderNumber), o.Title, o.ClientName, o.Status.Label(), o.Priority.Label(), o.Deadline})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by title, client or number")
	return cmd
}

func (c *cli) ordersAddCmd() *cobra.Command {
	var input services.CreateOrderInput
	var status, priority string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Status = models.OrderStatus(strings.ToUpper(status))
			input.Priority = models.Priority(strings.ToUpper(priority))
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				order, err := a.Orders.Create(ctx, input)
				if err != nil {
					return err
				}
				if c.jsonOutput() {
					return printJSON(cmd.OutOrStdout(), order)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created order %s\n", workorder.Number(order.OrderNumber))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input.Title, "title", "", "order title")
	cmd.Flags().StringVar(&input.ClientName, "client", "", "client name")
	cmd.Flags().StringVar(&input.Description, "description", "", "brief for the designer")
	cmd.Flags().StringVar(&status, "status", string(models.OrderStatusNew), "workflow stage")
	cmd.Flags().StringVar(&priority, "priority", string(models.PriorityMedium), "priority")
	cmd.Flags().StringVar(&input.Deadline, "deadline", "", "due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&input.PaperWeight, "paper-weight", "", "paper weight")
	cmd.Flags().StringVar(&input.PaperType, "paper-type", "", "paper type")
	cmd.Flags().StringVar(&input.Format, "format", "", "print format")
	cmd.Flags().StringVar(&input.ColorMode, "color-mode", "", "color mode, e.g. 4+0")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

func (c *cli) ordersMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <number> <stage>",
		Short: "Move an order to another stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseOrderNumber(args[0])
			if err != nil {
				return err
			}
			status := models.OrderStatus(strings.ToUpper(args[1]))
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				order, err := a.Orders.GetByNumber(ctx, number)
				if err != nil {
					return err
				}
				order, err = a.Orders.Move(ctx, order.ID, status)
				if err != nil {
					return err
				}
				if c.jsonOutput() {
					return printJSON(cmd.OutOrStdout(), order)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "order %s moved to %s\n", workorder.Number(order.OrderNumber), order.Status.Label())
				return nil
			})
		},
	}
}

func (c *cli) ordersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <number>",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseOrderNumber(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				order, err := a.Orders.GetByNumber(ctx, number)
				if err != nil {
					return err
				}
				if err := a.Orders.DeleteOrder(ctx, order.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted order %s\n", workorder.Number(number))
				return nil
			})
		},
	}
}

func (c *cli) workOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "work-order <number>",
		Short: "Print the work sheet for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseOrderNumber(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				order, err := a.Orders.GetByNumber(ctx, number)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), workorder.Render(order, time.Now()))
				return nil
			})
		},
	}
}

func (c *cli) deadlinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deadlines",
		Short: "List unfinished orders due within two days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				orders, err := a.Orders.List(ctx, "")
				if err != nil {
					return err
				}
				urgent := services.UrgentOrders(orders, time.Now())
				out := cmd.OutOrStdout()
				if c.jsonOutput() {
					if urgent == nil {
						urgent = []models.Order{}
					}
					return printJSON(out, urgent)
				}
				if len(urgent) == 0 {
					fmt.Fprintln(out, "no orders due within the next 48 hours")
					return nil
				}

				tw := newTable(out)
				tw.AppendHeader(table.Row{"No.", "Title", "Client", "Stage", "Deadline"})
				for _, o := range urgent {
					tw.AppendRow(table.Row{workorder.Number(o.OrderNumber), o.Title, o.ClientName, o.Status.Label(), o.Deadline})
				}
				tw.Render()
				return nil
			})
		},
	}
}
