package commands

import (
	"github.com/spf13/cobra"

	"presupuesto/internal/analytics"
)

type windowFlags struct {
	start, end string
}

func (w *windowFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&w.start, "start", "", "first day, YYYY-MM-DD (default: first of this month)")
	cmd.Flags().StringVar(&w.end, "end", "", "last day, YYYY-MM-DD (default: today)")
}

func (a *app) newDashboardCommand() *cobra.Command {
	var w windowFlags
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Income, expense and balance summary for a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *analytics.Engine) error {
				summary, err := e.Dashboard(cmd.Context(), a.userID, w.start, w.end)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), summary)
			})
		},
	}
	w.register(cmd)
	return cmd
}

func (a *app) newChartsCommand() *cobra.Command {
	var (
		w       windowFlags
		groupBy string
	)
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Time series and category distribution for a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *analytics.Engine) error {
				charts, err := e.Charts(cmd.Context(), a.userID, w.start, w.end, groupBy)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), charts)
			})
		},
	}
	w.register(cmd)
	cmd.Flags().StringVar(&groupBy, "group-by", string(analytics.Day), "bucket size: day, week or month")
	return cmd
}

func (a *app) newTrendsCommand() *cobra.Command {
	var periods string
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Monthly spending trends and anomalies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *analytics.Engine) error {
				report, err := e.Trends(cmd.Context(), a.userID, analytics.ParsePeriods(periods))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	cmd.Flags().StringVar(&periods, "periods", "", "months to analyze, 1-12 (default 6)")
	return cmd
}

func (a *app) newPredictionsCommand() *cobra.Command {
	var monthsAhead string
	cmd := &cobra.Command{
		Use:   "predictions",
		Short: "Forecast income and expenses for the coming months",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *analytics.Engine) error {
				forecast, err := e.Predictions(cmd.Context(), a.userID, analytics.ParseMonthsAhead(monthsAhead))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), forecast)
			})
		},
	}
	cmd.Flags().StringVar(&monthsAhead, "months-ahead", "", "months to forecast, 1-6 (default 3)")
	return cmd
}

func (a *app) newCompareCommand() *cobra.Command {
	var in analytics.ComparisonInput
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two windows side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEngine(cmd.Context(), func(e *analytics.Engine) error {
				report, err := e.Compare(cmd.Context(), a.userID, in)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	cmd.Flags().StringVar(&in.Period1Start, "period1-start", "", "first window start, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Period1End, "period1-end", "", "first window end, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Period2Start, "period2-start", "", "second window start, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Period2End, "period2-end", "", "second window end, YYYY-MM-DD")
	return cmd
}
