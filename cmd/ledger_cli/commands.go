package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/adapters/amqp"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	"github.com/SscSPs/farm_ledger_app/internal/core/ledger"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/SscSPs/farm_ledger_app/internal/platform/config"
	"github.com/SscSPs/farm_ledger_app/internal/platform/migrations"
	"github.com/SscSPs/farm_ledger_app/internal/utils"
	"github.com/google/subcommands"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string             { return "migrate" }
func (*migrateCmd) Synopsis() string         { return "apply pending database migrations" }
func (*migrateCmd) Usage() string            { return "migrate\n" }
func (*migrateCmd) SetFlags(_ *flag.FlagSet) {}

func (*migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := migrations.Up(cfg.DatabaseURL, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type balancesCmd struct {
	owner string
	from  string
	to    string
	all   bool
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "print wallet balances, now or over a date range" }
func (*balancesCmd) Usage() string {
	return `balances -owner <userID> [-from YYYY-MM-DD] [-to YYYY-MM-DD] [-all]

  Without a range, prints the current balance of every active wallet (every
  wallet with -all). With -from or -to, prints opening, inflow, outflow and
  closing per wallet.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Owner (editor) user ID.")
	f.StringVar(&c.from, "from", "", "First day of the range.")
	f.StringVar(&c.to, "to", "", "Last day of the range.")
	f.BoolVar(&c.all, "all", false, "Include inactive wallets.")
}

func (c *balancesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx, c.owner)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	defer w.Flush()

	if c.from == "" && c.to == "" {
		rows, err := e.services.Reporting.Balances(ctx, e.session, c.all)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(w, "Ví\tSố dư\t")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t\n", r.Name, utils.FormatVND(r.Balance))
		}
		fmt.Fprintf(w, "Tổng\t%s\t\n", utils.FormatVND(ledger.TotalBalance(rows)))
		return subcommands.ExitSuccess
	}

	rows, err := e.services.Reporting.RangeBalances(ctx, e.session, c.from, c.to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(w, "Ví\tĐầu kỳ\tThu vào\tChi ra\tCuối kỳ\t")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", r.Name,
			utils.FormatVND(r.Opening), utils.FormatVND(r.Inflow), utils.FormatVND(r.Outflow), utils.FormatVND(r.Closing))
	}
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	owner string
	from  string
	to    string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print income, expense, profit and the category breakdown" }
func (*summaryCmd) Usage() string {
	return "summary -owner <userID> [-from YYYY-MM-DD] [-to YYYY-MM-DD]\n"
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Owner (editor) user ID.")
	f.StringVar(&c.from, "from", "", "First day of the range.")
	f.StringVar(&c.to, "to", "", "Last day of the range.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx, c.owner)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.close()

	s, err := e.services.Reporting.Summary(ctx, e.session, c.from, c.to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintf(w, "Thu\t%s\n", utils.FormatVND(s.Income))
	fmt.Fprintf(w, "Chi\t%s\n", utils.FormatVND(s.Expense))
	fmt.Fprintf(w, "Lãi\t%s\n", utils.FormatVND(s.Profit))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Danh mục\tLoại\tTổng tiền\tSố giao dịch")
	for _, row := range s.Breakdown {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", row.CategoryName, row.Flow, utils.FormatVND(row.Total), row.Count)
	}
	return subcommands.ExitSuccess
}

type auditCmd struct {
	owner  string
	limit  int
	entity string
}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "print the newest audit entries" }
func (*auditCmd) Usage() string {
	return "audit -owner <userID> [-limit N] [-entity TRANSACTION]\n"
}

func (c *auditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Owner (editor) user ID.")
	f.IntVar(&c.limit, "limit", 20, "Number of entries.")
	f.StringVar(&c.entity, "entity", "", "Only entries about this entity kind.")
}

func (c *auditCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx, c.owner)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.close()

	logs, _, err := e.services.Audit.ListAuditLogs(ctx, e.session, dto.ListAuditLogsParams{
		Entity: domain.AuditEntity(c.entity),
		Limit:  c.limit,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	for _, l := range logs {
		printAuditLog(w, l)
	}
	return subcommands.ExitSuccess
}

type auditTailCmd struct{}

func (*auditTailCmd) Name() string     { return "audit-tail" }
func (*auditTailCmd) Synopsis() string { return "print audit events as they are published" }
func (*auditTailCmd) Usage() string {
	return `audit-tail

  Consumes the audit queue configured by AMQP_URL, AMQP_EXCHANGE and
  AMQP_QUEUE until interrupted. Consumed events are acknowledged.
`
}
func (*auditTailCmd) SetFlags(_ *flag.FlagSet) {}

func (*auditTailCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if cfg.AMQPURL == "" {
		fmt.Fprintln(os.Stderr, "AMQP_URL is not set")
		return subcommands.ExitUsageError
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer client.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	err = client.ConsumeAuditLogs(ctx, func(l domain.AuditLog) error {
		printAuditLog(w, l)
		return w.Flush()
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printAuditLog(w *tabwriter.Writer, l domain.AuditLog) {
	entityID := "-"
	if l.EntityID != nil {
		entityID = *l.EntityID
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		l.CreatedAt.In(time.Local).Format("2006-01-02 15:04:05"), l.OwnerID, l.Actor, l.Action, l.Entity, entityID)
}
