// Command evaluate checks a single loan contract against the market reference
// rate of its category and prints the report.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"golang.org/x/text/language"

	"rate_audit/internal/application"
	"rate_audit/internal/config"
	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/service/evaluation"
	"rate_audit/internal/domain/value"
	"rate_audit/pkg/contextx"
	"rate_audit/pkg/logx"
	"rate_audit/pkg/money"
)

func main() {
	categoryFlag := cli.StringFlag{Name: "category", Usage: "loan category (personal, vehicle, consignado, ...)", Required: true}
	principalFlag := cli.Float64Flag{Name: "principal", Usage: "amount borrowed", Required: true}
	installmentFlag := cli.Float64Flag{Name: "installment", Usage: "fixed installment amount", Required: true}
	countFlag := cli.IntFlag{Name: "count", Usage: fmt.Sprintf("total number of installments (1..%d)", entity.MaxInstallmentCount), Required: true}
	paidFlag := cli.IntFlag{Name: "paid", Usage: "installments already paid"}
	localeFlag := cli.StringFlag{Name: "locale", Value: "pt-BR", Usage: "report language"}

	app := cli.App{
		Name:  "evaluate",
		Usage: "compare a loan's implied rate with the Central Bank reference rate",
		Flags: []cli.Flag{
			categoryFlag,
			principalFlag,
			installmentFlag,
			countFlag,
			paidFlag,
			localeFlag,
		},
		Action: func(cctx *cli.Context) error {
			query, err := newQuery(
				cctx.String(categoryFlag.Name),
				cctx.Float64(principalFlag.Name),
				cctx.Float64(installmentFlag.Name),
				cctx.Int(countFlag.Name),
				cctx.Int(paidFlag.Name),
			)
			if err != nil {
				return cli.NewExitError(err.Error(), 1)
			}

			return run(query, money.ParseLocale(cctx.String(localeFlag.Name)))
		},
	}
	app.RunAndExitOnError()
}

// newQuery checks the flags before any network call is made.
func newQuery(category string, principal, installment float64, count, paid int) (entity.LoanQuery, error) {
	parsed, err := value.ParseCategory(category)
	if err != nil {
		return entity.LoanQuery{}, fmt.Errorf("value.ParseCategory: %w", err)
	}

	query := entity.LoanQuery{
		Category:          parsed,
		Principal:         principal,
		InstallmentAmount: installment,
		InstallmentCount:  count,
		InstallmentsPaid:  paid,
	}

	if err := query.Validate(); err != nil {
		return entity.LoanQuery{}, fmt.Errorf("query.Validate: %w", err)
	}

	return query, nil
}

func run(query entity.LoanQuery, tag language.Tag) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("config.Load: %v", err), 1)
	}

	log := logx.New(os.Stderr, slog.LevelWarn, false)
	ctx = contextx.WithLogger(ctx, log)

	provider, err := application.NewRateProvider(cfg)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("application.NewRateProvider: %v", err), 1)
	}

	if err := evaluate(ctx, evaluation.NewService(provider), query, tag, os.Stdout); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	return nil
}

type evaluator interface {
	EvaluateQuery(context.Context, entity.LoanQuery) (entity.EvaluationResult, entity.ReferenceRate, error)
}

func evaluate(ctx context.Context, svc evaluator, query entity.LoanQuery, tag language.Tag, w io.Writer) error {
	result, _, err := svc.EvaluateQuery(ctx, query)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	printReport(w, tag, evaluation.NewReport(tag, query, result), result.RateConverged)

	return nil
}

type labels struct {
	reference, implied, verdict, original, fair, remaining, savings, estimate string
}

func reportLabels(tag language.Tag) labels {
	if money.IsPortuguese(tag) {
		return labels{
			reference: "Taxa de referência (a.m.)",
			implied:   "Taxa do contrato (a.m.)",
			verdict:   "Resultado",
			original:  "Parcela atual",
			fair:      "Parcela justa",
			remaining: "Parcelas restantes",
			savings:   "Economia projetada",
			estimate:  "A taxa do contrato é uma estimativa: o cálculo não convergiu.",
		}
	}

	return labels{
		reference: "Reference rate (monthly)",
		implied:   "Contract rate (monthly)",
		verdict:   "Verdict",
		original:  "Current installment",
		fair:      "Fair installment",
		remaining: "Remaining installments",
		savings:   "Projected savings",
		estimate:  "The contract rate is an estimate: the solver did not converge.",
	}
}

func printReport(w io.Writer, tag language.Tag, report evaluation.Report, converged bool) {
	l := reportLabels(tag)

	fmt.Fprintf(w, "%s: %s\n", l.reference, report.ReferenceRate)
	fmt.Fprintf(w, "%s: %s\n", l.implied, report.ImpliedRate)
	fmt.Fprintf(w, "%s: %s\n", l.verdict, report.Verdict)
	fmt.Fprintf(w, "%s: %s\n", l.original, report.OriginalInstallment)
	fmt.Fprintf(w, "%s: %s\n", l.fair, report.FairInstallment)
	fmt.Fprintf(w, "%s: %s\n", l.remaining, report.RemainingInstallments)
	fmt.Fprintf(w, "%s: %s\n", l.savings, report.ProjectedSavings)

	if !converged {
		fmt.Fprintln(w, l.estimate)
	}
}
