package analytics

import "presupuesto/internal/core"

type (
	DashboardSummary struct {
		Period        Window          `json:"period"`
		Income        IncomeSummary   `json:"income"`
		Expenses      ExpenseSummary  `json:"expenses"`
		Balance       core.Money      `json:"balance"`
		TopCategories []CategoryTotal `json:"top_categories"`
	}

	IncomeSummary struct {
		Total          core.Money `json:"total"`
		Count          int        `json:"count"`
		Average        core.Money `json:"average"`
		RecurringTotal core.Money `json:"recurring_total"`
		RecurringCount int        `json:"recurring_count"`
	}

	ExpenseSummary struct {
		Total  core.Money      `json:"total"`
		ByType []TypeBreakdown `json:"by_type"`
	}

	TypeBreakdown struct {
		Type    core.ExpenseType `json:"type"`
		Count   int              `json:"count"`
		Total   core.Money       `json:"total"`
		Average core.Money       `json:"average"`
	}

	CategoryTotal struct {
		ID           int64      `json:"id"`
		Name         string     `json:"name"`
		Color        string     `json:"color"`
		Icon         string     `json:"icon"`
		ExpenseCount int        `json:"expense_count"`
		TotalAmount  core.Money `json:"total_amount"`
	}
)

type (
	ChartData struct {
		Period       Window       `json:"period"`
		TimeSeries   TimeSeries   `json:"time_series"`
		Distribution Distribution `json:"distribution"`
		GroupBy      Granularity  `json:"group_by"`
	}

	TimeSeries struct {
		Expenses []ExpensePoint `json:"expenses"`
		Income   []IncomePoint  `json:"income"`
	}

	ExpensePoint struct {
		Period string           `json:"period"`
		Type   core.ExpenseType `json:"type"`
		Total  core.Money       `json:"total"`
	}

	IncomePoint struct {
		Period string     `json:"period"`
		Total  core.Money `json:"total"`
	}

	Distribution struct {
		ByCategory []CategoryShare `json:"by_category"`
	}

	CategoryShare struct {
		ID    int64      `json:"id"`
		Name  string     `json:"name"`
		Color string     `json:"color"`
		Type  string     `json:"type"`
		Total core.Money `json:"total"`
		Count int        `json:"count"`
	}
)

type (
	TrendReport struct {
		MonthlyTrends   []MonthlyTrend `json:"monthly_trends"`
		Averages        []TypeAverages `json:"averages"`
		Anomalies       []Anomaly      `json:"anomalies"`
		PeriodsAnalyzed int            `json:"periods_analyzed"`
	}

	MonthlyTrend struct {
		Month   string           `json:"month"`
		Type    core.ExpenseType `json:"type"`
		Total   core.Money       `json:"total"`
		Count   int              `json:"count"`
		Average core.Money       `json:"average"`
	}

	TypeAverages struct {
		Type            core.ExpenseType `json:"type"`
		AvgMonthlyTotal core.Money       `json:"avg_monthly_total"`
		MaxMonthlyTotal core.Money       `json:"max_monthly_total"`
		MinMonthlyTotal core.Money       `json:"min_monthly_total"`
	}

	Anomaly struct {
		ID           int64            `json:"id"`
		Type         core.ExpenseType `json:"type"`
		Amount       core.Money       `json:"amount"`
		Description  string           `json:"description"`
		Date         core.Date        `json:"date"`
		CategoryName string           `json:"category_name,omitempty"`
		TypeAverage  core.Money       `json:"type_average"`
	}
)

type (
	Forecast struct {
		Historical    HistoricalBasis   `json:"historical"`
		Predictions   []MonthPrediction `json:"predictions"`
		BasedOnMonths int               `json:"based_on_months"`
		Confidence    string            `json:"confidence"`
	}

	HistoricalBasis struct {
		MonthlyExpenses        []TypeMonthlyAverage `json:"monthly_expenses"`
		RecurringMonthlyIncome core.Money           `json:"recurring_monthly_income"`
	}

	TypeMonthlyAverage struct {
		Type           core.ExpenseType `json:"type"`
		AvgMonthly     core.Money       `json:"avg_monthly"`
		MonthsWithData int              `json:"months_with_data"`
	}

	MonthPrediction struct {
		Month             string                          `json:"month"`
		PredictedIncome   core.Money                      `json:"predicted_income"`
		PredictedExpenses map[core.ExpenseType]core.Money `json:"predicted_expenses"`
		PredictedBalance  core.Money                      `json:"predicted_balance"`
	}
)

type (
	ComparisonInput struct {
		Period1Start string
		Period1End   string
		Period2Start string
		Period2End   string
	}

	ComparisonReport struct {
		Period1    PeriodMetrics `json:"period1"`
		Period2    PeriodMetrics `json:"period2"`
		Comparison Comparison    `json:"comparison"`
	}

	PeriodMetrics struct {
		Period   Window         `json:"period"`
		Income   CountedTotal   `json:"income"`
		Expenses PeriodExpenses `json:"expenses"`
		Balance  core.Money     `json:"balance"`
	}

	CountedTotal struct {
		Total core.Money `json:"total"`
		Count int        `json:"count"`
	}

	PeriodExpenses struct {
		Total  core.Money  `json:"total"`
		ByType []TypeTotal `json:"by_type"`
	}

	TypeTotal struct {
		Type  core.ExpenseType `json:"type"`
		Total core.Money       `json:"total"`
		Count int              `json:"count"`
	}

	Comparison struct {
		Income   Change     `json:"income"`
		Expenses Change     `json:"expenses"`
		Balance  Difference `json:"balance"`
	}

	Change struct {
		Difference       core.Money `json:"difference"`
		PercentageChange float64    `json:"percentage_change"`
	}

	Difference struct {
		Difference core.Money `json:"difference"`
	}
)

type (
	ExportData struct {
		Period   Window           `json:"period"`
		Type     ExportType       `json:"type"`
		Expenses []ExportExpense  `json:"expenses"`
		Income   []core.Income    `json:"income"`
		Summary  DashboardSummary `json:"summary"`
	}

	ExportExpense struct {
		core.Expense
		CategoryName  string `json:"category_name,omitempty"`
		CategoryColor string `json:"category_color,omitempty"`
	}
)
