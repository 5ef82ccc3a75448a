package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesapi"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// paramError carrega o código de validação que deve ser devolvido ao cliente
type paramError struct {
	code    string
	message string
}

func (e *paramError) Error() string {
	return e.message
}

func invalidParam(message string) error {
	return &paramError{code: apiErrors.ErrInvalidFormat, message: message}
}

func missingParam(message string) error {
	return &paramError{code: apiErrors.ErrMissingRequiredData, message: message}
}

// parsePeriod lê period, start e end da query. As datas de CUSTOM são inclusivas e lidas em loc.
func parsePeriod(r *http.Request, loc *time.Location) (domain.PeriodSpec, error) {
	query := r.URL.Query()

	kind, ok := domain.ParsePeriodKind(query.Get("period"))
	if !ok {
		return domain.PeriodSpec{}, invalidParam("Período inválido. Valores aceitos: ALL, WEEK, MONTH, YEAR, CUSTOM")
	}

	spec := domain.PeriodSpec{Kind: kind}
	if kind != domain.PeriodCustom {
		return spec, nil
	}

	startStr, endStr := query.Get("start"), query.Get("end")
	if startStr == "" || endStr == "" {
		return domain.PeriodSpec{}, missingParam("Período CUSTOM exige start e end no formato yyyy-mm-dd")
	}

	start, err := utils.ParseDate(startStr, loc)
	if err != nil {
		return domain.PeriodSpec{}, invalidParam("Data inicial inválida. Use o formato yyyy-mm-dd")
	}

	end, err := utils.ParseDate(endStr, loc)
	if err != nil {
		return domain.PeriodSpec{}, invalidParam("Data final inválida. Use o formato yyyy-mm-dd")
	}

	spec.Start = start
	spec.End = utils.EndOfDay(end)
	return spec, nil
}

// parseOptionalInt lê um inteiro da query, usando fallback quando ausente
func parseOptionalInt(r *http.Request, name string, fallback int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, invalidParam("Parâmetro " + name + " deve ser um número inteiro")
	}
	return parsed, nil
}

// withForwardedToken repassa o Authorization do cliente para o backend de vendas
func withForwardedToken(r *http.Request) *http.Request {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return r
	}
	return r.WithContext(salesapi.WithToken(r.Context(), auth))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeError responde erros de parâmetro com o código próprio e os demais via mapeamento do domínio
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var pErr *paramError
	if errors.As(err, &pErr) {
		apiErrors.WriteError(w, pErr.code, pErr.message, nil)
		return
	}

	apiErr := apiErrors.FromError(err)
	logger := log.ForContext(r.Context()).WithError(err)
	if apiErrors.StatusFor(apiErr.Code) >= http.StatusInternalServerError {
		logger.Error("Erro ao processar requisição")
	} else {
		logger.Warn("Requisição rejeitada")
	}

	apiErrors.WriteDomainError(w, err)
}
