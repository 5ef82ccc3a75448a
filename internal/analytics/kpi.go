package analytics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// Nomes das métricas publicadas nos KpiSets
const (
	KpiTotalRevenue         = "totalRevenue"
	KpiTotalSales           = "totalSales"
	KpiTotalOrders          = "totalOrders"
	KpiAverageOrderValue    = "averageOrderValue"
	KpiUnitsSold            = "unitsSold"
	KpiTotalProducts        = "totalProducts"
	KpiTotalCategories      = "totalCategories"
	KpiTotalUsers           = "totalUsers"
	KpiLowStockCount        = "lowStockCount"
	KpiLowStockProducts     = "lowStockProducts"
	KpiTopProduct           = "topProduct"
	KpiTopProducts          = "topProducts"
	KpiTopSeller            = "topSeller"
	KpiTopSellers           = "topSellers"
	KpiCategoryDistribution = "categoryDistribution"
	KpiRevenueTrend         = "revenueTrend"
	KpiSalesTrend           = "salesTrend"
	KpiStabilityScore       = "stabilityScore"
	KpiStabilityBand        = "stabilityBand"
	KpiBestDay              = "bestDay"
	KpiWorstDay             = "worstDay"
	KpiWeekRevenue          = "weekRevenue"
	KpiSellerPosition       = "sellerPosition"
	KpiSellerCount          = "sellerCount"
	KpiLeaderboard          = "leaderboard"
	KpiMonthOverMonth       = "monthOverMonth"
	KpiMeanDailyRevenue     = "meanDailyRevenue"
	KpiStdDevDailyRevenue   = "stdDevDailyRevenue"
	KpiForecast             = "forecast"
	KpiRevenueDistribution  = "revenueDistribution"
	KpiProductMatrix        = "productMatrix"
	KpiSalesByWeekday       = "salesByWeekday"
	KpiSalesByHour          = "salesByHour"
	KpiSalesByMonth         = "salesByMonth"
	KpiRevenueGrowth        = "revenueGrowth"
	KpiGrossMarginPercent   = "grossMarginPercent"
	KpiGrossProfit          = "grossProfit"
	KpiOperatingCosts       = "operatingCosts"
	KpiNetProfit            = "netProfit"
	KpiNetMarginPercent     = "netMarginPercent"
	KpiRevenuePerProduct    = "revenuePerProduct"
	KpiRevenuePerCategory   = "revenuePerCategory"
	KpiCategoryPerformance  = "categoryPerformance"
)

// Computation reúne as saídas já calculadas do pipeline que o compositor projeta por visão
type Computation struct {
	Now        time.Time
	AllSales   []DatedSale
	Sales      []DatedSale
	Lines      []AttributedLine
	Products   []domain.Product
	Categories []domain.Category
	Users      []domain.Seller
	Series     []domain.DailyRevenuePoint
	// Stats é nil quando a série do período está vazia
	Stats *domain.SeriesStats
}

// CategoryPerformance é o desempenho de uma categoria na visão de investidor
type CategoryPerformance struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity decimal.Decimal `json:"quantity"`
	Profit   decimal.Decimal `json:"profit"`
}

// Compose monta o KpiSet da visão pedida. Cada perfil recebe apenas as suas métricas.
func Compose(view domain.View, in Computation, opts Options) (domain.KpiSet, error) {
	topN := view.TopN
	if topN == 0 {
		topN = opts.TopN
	}
	if topN < 0 {
		return nil, domain.ErrNegativeTopN
	}

	switch view.Role {
	case domain.RoleOperator:
		return composeOperator(in, topN, opts)
	case domain.RoleSeller:
		if view.SellerUsername == "" {
			return nil, domain.ErrMissingSeller
		}
		return composeSeller(in, view.SellerUsername, topN, opts)
	case domain.RoleAnalyst:
		return composeAnalyst(in, topN, opts)
	case domain.RoleInvestor:
		return composeInvestor(in, opts)
	}

	return nil, domain.ErrUnknownRole
}

func composeOperator(in Computation, topN int, opts Options) (domain.KpiSet, error) {
	revenue, count := totals(in.Sales)
	clock := FixedClock(in.Now)

	topProducts, err := TopNLabeled(Aggregate(in.Lines, productKey, AttributedLine.Quantity), topN, ProductLabeler(in.Lines))
	if err != nil {
		return nil, err
	}

	topSellers, err := TopNLabeled(Aggregate(in.Sales, sellerKey, SaleCount), topN, SellerLabeler(in.Users))
	if err != nil {
		return nil, err
	}

	revenueTrend, err := Compare(in.AllSales, domain.WindowMonth, clock, opts.FirstDayOfWeek)
	if err != nil {
		return nil, err
	}

	salesTrend, err := CompareBy(in.AllSales, domain.WindowMonth, clock, opts.FirstDayOfWeek, SaleCount)
	if err != nil {
		return nil, err
	}

	lowStock := LowStockProducts(in.Products, opts.LowStockThreshold)

	kpis := domain.KpiSet{
		KpiTotalRevenue:         revenue,
		KpiTotalSales:           count,
		KpiAverageOrderValue:    averageOrderValue(revenue, count),
		KpiTotalProducts:        len(in.Products),
		KpiTotalCategories:      len(in.Categories),
		KpiTotalUsers:           len(in.Users),
		KpiLowStockCount:        len(lowStock),
		KpiLowStockProducts:     lowStock,
		KpiTopProduct:           first(topProducts),
		KpiTopProducts:          topProducts,
		KpiTopSeller:            first(topSellers),
		KpiTopSellers:           topSellers,
		KpiCategoryDistribution: Rank(Aggregate(in.Lines, categoryKey, AttributedLine.Revenue), nil),
		KpiRevenueTrend:         revenueTrend,
		KpiSalesTrend:           salesTrend,
	}
	addStability(kpis, in.Stats, opts)

	if in.Stats != nil {
		kpis[KpiBestDay] = in.Stats.BestPoint
		kpis[KpiWorstDay] = in.Stats.WorstPoint
	}

	return kpis, nil
}

func composeSeller(in Computation, username string, topN int, opts Options) (domain.KpiSet, error) {
	clock := FixedClock(in.Now)
	own := salesOf(in.Sales, username)
	revenue, count := totals(own)

	ownLines := make([]AttributedLine, 0)
	units := decimal.Zero
	for _, line := range in.Lines {
		if line.SellerUsername == username {
			ownLines = append(ownLines, line)
			units = units.Add(line.Quantity())
		}
	}

	topProducts, err := TopNLabeled(Aggregate(ownLines, productKey, AttributedLine.Revenue), topN, ProductLabeler(ownLines))
	if err != nil {
		return nil, err
	}

	weekRevenue, err := Compare(salesOf(in.AllSales, username), domain.WindowWeek, clock, opts.FirstDayOfWeek)
	if err != nil {
		return nil, err
	}

	monthSales, err := FilterDated(in.AllSales, domain.PeriodSpec{Kind: domain.PeriodMonth}, clock)
	if err != nil {
		return nil, err
	}
	standings := Rank(SellerRevenue(monthSales, in.Users), SellerLabeler(in.Users))

	leaderboard := standings
	if topN < len(leaderboard) {
		leaderboard = leaderboard[:topN]
	}

	return domain.KpiSet{
		KpiTotalSales:        count,
		KpiTotalRevenue:      revenue,
		KpiAverageOrderValue: averageOrderValue(revenue, count),
		KpiUnitsSold:         units,
		KpiWeekRevenue:       weekRevenue,
		KpiTopProducts:       topProducts,
		KpiSellerPosition:    PositionOf(standings, username),
		KpiSellerCount:       len(standings),
		KpiLeaderboard:       leaderboard,
	}, nil
}

func composeAnalyst(in Computation, topN int, opts Options) (domain.KpiSet, error) {
	revenue, count := totals(in.Sales)

	topProducts, err := TopNLabeled(Aggregate(in.Lines, productKey, AttributedLine.Revenue), topN, ProductLabeler(in.Lines))
	if err != nil {
		return nil, err
	}

	monthOverMonth, err := Compare(in.AllSales, domain.WindowMonth, FixedClock(in.Now), opts.FirstDayOfWeek)
	if err != nil {
		return nil, err
	}

	kpis := domain.KpiSet{
		KpiTotalRevenue:         revenue,
		KpiTotalOrders:          count,
		KpiAverageOrderValue:    averageOrderValue(revenue, count),
		KpiMonthOverMonth:       monthOverMonth,
		KpiCategoryDistribution: Rank(Aggregate(in.Lines, categoryKey, AttributedLine.Revenue), nil),
		KpiTopProducts:          topProducts,
		KpiForecast:             Forecast(in.Series, opts.ForecastDays),
		KpiProductMatrix:        BuildProductMatrix(in.Lines),
		KpiSalesByWeekday:       BucketByWeekday(in.Sales),
		KpiSalesByHour:          BucketByHour(in.Sales),
		KpiSalesByMonth:         BucketByMonth(in.Sales),
	}
	addStability(kpis, in.Stats, opts)

	if in.Stats != nil {
		kpis[KpiMeanDailyRevenue] = utils.RoundWithTwoDecimalPlace(in.Stats.Mean)
		kpis[KpiStdDevDailyRevenue] = utils.RoundWithTwoDecimalPlace(in.Stats.StdDev)

		distribution, err := Describe(Revenues(in.Series))
		if err != nil {
			return nil, err
		}
		kpis[KpiRevenueDistribution] = distribution
	}

	return kpis, nil
}

func composeInvestor(in Computation, opts Options) (domain.KpiSet, error) {
	revenue, count := totals(in.Sales)

	growth, err := Compare(in.AllSales, domain.WindowMonth, FixedClock(in.Now), opts.FirstDayOfWeek)
	if err != nil {
		return nil, err
	}

	margin := decimal.NewFromFloat(opts.GrossMarginPercent).Div(hundred)
	costRate := decimal.NewFromFloat(opts.OperatingCostPercent).Div(hundred)

	grossProfit := revenue.Mul(margin)
	operatingCosts := revenue.Mul(costRate)
	netProfit := grossProfit.Sub(operatingCosts)

	netMargin := 0.0
	if revenue.IsPositive() {
		netMargin = utils.RoundWithTwoDecimalPlace(netProfit.Div(revenue).Mul(hundred).InexactFloat64())
	}

	categoryRevenue := Aggregate(in.Lines, categoryKey, AttributedLine.Revenue)
	categoryQuantity := Aggregate(in.Lines, categoryKey, AttributedLine.Quantity)
	performance := make([]CategoryPerformance, 0, categoryRevenue.Len())
	for _, entry := range Rank(categoryRevenue, nil) {
		quantity, _ := categoryQuantity.Get(entry.Key)
		performance = append(performance, CategoryPerformance{
			Category: entry.Label,
			Revenue:  entry.Value,
			Quantity: quantity,
			Profit:   entry.Value.Mul(margin).Round(2),
		})
	}

	kpis := domain.KpiSet{
		KpiTotalRevenue:        revenue,
		KpiTotalOrders:         count,
		KpiAverageOrderValue:   averageOrderValue(revenue, count),
		KpiRevenueGrowth:       growth,
		KpiGrossMarginPercent:  opts.GrossMarginPercent,
		KpiGrossProfit:         grossProfit.Round(2),
		KpiOperatingCosts:      operatingCosts.Round(2),
		KpiNetProfit:           netProfit.Round(2),
		KpiNetMarginPercent:    netMargin,
		KpiRevenuePerProduct:   perUnit(revenue, len(in.Products)),
		KpiRevenuePerCategory:  perUnit(revenue, len(in.Categories)),
		KpiCategoryPerformance: performance,
	}

	score := 0.0
	if in.Stats != nil {
		score = in.Stats.StabilityScore
	}
	kpis[KpiStabilityScore] = utils.RoundWithTwoDecimalPlace(score)

	return kpis, nil
}

// addStability publica o score e, quando há série, a faixa de estabilidade
func addStability(kpis domain.KpiSet, stats *domain.SeriesStats, opts Options) {
	if stats == nil {
		kpis[KpiStabilityScore] = 0.0
		return
	}
	kpis[KpiStabilityScore] = utils.RoundWithTwoDecimalPlace(stats.StabilityScore)
	kpis[KpiStabilityBand] = ClassifyStability(stats.StabilityScore, opts.Stability)
}

func totals(sales []DatedSale) (decimal.Decimal, int) {
	revenue := decimal.Zero
	for _, sale := range sales {
		revenue = revenue.Add(sale.TotalAmount)
	}
	return revenue, len(sales)
}

func averageOrderValue(revenue decimal.Decimal, count int) decimal.Decimal {
	return perUnit(revenue, count)
}

func perUnit(value decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return value.Div(decimal.NewFromInt(int64(count))).Round(2)
}

func salesOf(sales []DatedSale, username string) []DatedSale {
	own := make([]DatedSale, 0)
	for _, sale := range sales {
		if sale.SellerUsername == username {
			own = append(own, sale)
		}
	}
	return own
}

func first(entries []domain.RankingEntry) *domain.RankingEntry {
	if len(entries) == 0 {
		return nil
	}
	entry := entries[0]
	return &entry
}

func sellerKey(sale DatedSale) string {
	return sale.SellerUsername
}

func categoryKey(line AttributedLine) string {
	return line.CategoryName
}
