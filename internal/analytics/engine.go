package analytics

import (
	"strings"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Dimension identifica o agrupamento de um ranking avulso
type Dimension string

const (
	DimensionProducts   Dimension = "products"   // quantidade vendida por produto
	DimensionSellers    Dimension = "sellers"    // número de vendas por vendedor
	DimensionCategories Dimension = "categories" // receita por categoria
)

// ParseDimension normaliza o nome da dimensão e informa se ela é conhecida
func ParseDimension(value string) (Dimension, bool) {
	switch dimension := Dimension(strings.ToLower(strings.TrimSpace(value))); dimension {
	case DimensionProducts, DimensionSellers, DimensionCategories:
		return dimension, true
	default:
		return "", false
	}
}

// Dashboard é o resultado completo de uma visão
type Dashboard struct {
	View        domain.View                `json:"view"`
	GeneratedAt time.Time                  `json:"generatedAt"`
	Kpis        domain.KpiSet              `json:"kpis"`
	Series      []domain.DailyRevenuePoint `json:"series"`
	Quality     QualitySummary             `json:"quality"`
	Issues      []domain.DataQualityError  `json:"-"`
}

// SeriesReport é a série diária com as estatísticas, quando houver pontos
type SeriesReport struct {
	Series []domain.DailyRevenuePoint `json:"series"`
	Stats  *domain.SeriesStats        `json:"stats,omitempty"`
	Band   StabilityBand              `json:"stabilityBand,omitempty"`
}

// Engine executa o pipeline completo sobre um snapshot já carregado.
// Não guarda estado entre chamadas.
type Engine struct {
	opts Options
	now  Clock
}

func NewEngine(opts Options, now Clock) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{opts: opts, now: now}
}

// Options retorna as opções em uso
func (e *Engine) Options() Options {
	return e.opts
}

func (e *Engine) clock() Clock {
	loc := e.opts.location()
	current := e.now().In(loc)
	return FixedClock(current)
}

// Prepare executa filtro de período, atribuição, série diária e estatísticas
func (e *Engine) Prepare(snapshot domain.Snapshot, period domain.PeriodSpec) (Computation, QualityReport, error) {
	loc := e.opts.location()
	clock := e.clock()

	parsed, err := FilterByPeriod(snapshot.Sales, domain.PeriodSpec{Kind: domain.PeriodAll}, clock, loc)
	if err != nil {
		return Computation{}, QualityReport{}, err
	}
	quality := parsed.Quality

	allSales := parsed.Sales
	if e.opts.ExcludeCancelled {
		allSales = WithoutCancelled(allSales)
	}

	sales, err := FilterDated(allSales, period, clock)
	if err != nil {
		return Computation{}, QualityReport{}, err
	}

	catalog := NewCatalog(snapshot.Products, snapshot.Categories)
	lines, lineQuality := catalog.ResolveLines(sales)
	quality.Merge(lineQuality)

	series, err := BuildSeries(DailyRevenue(sales, loc), e.opts.MovingAverageWindow)
	if err != nil {
		return Computation{}, QualityReport{}, err
	}

	computation := Computation{
		Now:        clock(),
		AllSales:   allSales,
		Sales:      sales,
		Lines:      lines,
		Products:   snapshot.Products,
		Categories: snapshot.Categories,
		Users:      snapshot.Users,
		Series:     series,
	}

	if len(series) > 0 {
		stats, err := ComputeStats(series)
		if err != nil {
			return Computation{}, QualityReport{}, err
		}
		computation.Stats = &stats
	}

	return computation, quality, nil
}

// Run monta o dashboard da visão pedida
func (e *Engine) Run(snapshot domain.Snapshot, view domain.View) (*Dashboard, error) {
	computation, quality, err := e.Prepare(snapshot, view.Period)
	if err != nil {
		return nil, err
	}

	kpis, err := Compose(view, computation, e.opts)
	if err != nil {
		return nil, err
	}

	series := computation.Series
	if view.Role == domain.RoleSeller {
		series, err = BuildSeries(DailyRevenue(salesOf(computation.Sales, view.SellerUsername), e.opts.location()), e.opts.MovingAverageWindow)
		if err != nil {
			return nil, err
		}
	}

	return &Dashboard{
		View:        view,
		GeneratedAt: computation.Now,
		Kpis:        kpis,
		Series:      series,
		Quality:     quality.Summary(),
		Issues:      quality.Issues,
	}, nil
}

// Series retorna a série diária do período com as estatísticas
func (e *Engine) Series(snapshot domain.Snapshot, period domain.PeriodSpec) (SeriesReport, QualityReport, error) {
	computation, quality, err := e.Prepare(snapshot, period)
	if err != nil {
		return SeriesReport{}, QualityReport{}, err
	}

	report := SeriesReport{Series: computation.Series, Stats: computation.Stats}
	if computation.Stats != nil {
		report.Band = ClassifyStability(computation.Stats.StabilityScore, e.opts.Stability)
	}

	return report, quality, nil
}

// Ranking retorna o top-N de uma dimensão no período
func (e *Engine) Ranking(snapshot domain.Snapshot, period domain.PeriodSpec, dimension Dimension, n int) ([]domain.RankingEntry, QualityReport, error) {
	computation, quality, err := e.Prepare(snapshot, period)
	if err != nil {
		return nil, QualityReport{}, err
	}

	var entries []domain.RankingEntry
	switch dimension {
	case DimensionProducts:
		entries, err = TopNLabeled(Aggregate(computation.Lines, productKey, AttributedLine.Quantity), n, ProductLabeler(computation.Lines))
	case DimensionSellers:
		entries, err = TopNLabeled(Aggregate(computation.Sales, sellerKey, SaleCount), n, SellerLabeler(computation.Users))
	case DimensionCategories:
		entries, err = TopN(Aggregate(computation.Lines, categoryKey, AttributedLine.Revenue), n)
	default:
		err = domain.ErrUnknownDimension
	}
	if err != nil {
		return nil, QualityReport{}, err
	}

	return entries, quality, nil
}

// Comparison compara o período atual com o anterior usando receita ou número de vendas
func (e *Engine) Comparison(snapshot domain.Snapshot, kind domain.WindowKind, countSales bool) (domain.ComparisonResult, QualityReport, error) {
	computation, quality, err := e.Prepare(snapshot, domain.PeriodSpec{Kind: domain.PeriodAll})
	if err != nil {
		return domain.ComparisonResult{}, QualityReport{}, err
	}

	valueFn := SaleRevenue
	if countSales {
		valueFn = SaleCount
	}

	result, err := CompareBy(computation.AllSales, kind, FixedClock(computation.Now), e.opts.FirstDayOfWeek, valueFn)
	if err != nil {
		return domain.ComparisonResult{}, QualityReport{}, err
	}

	return result, quality, nil
}
