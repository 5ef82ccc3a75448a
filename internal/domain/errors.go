package domain

import (
	"errors"
	"fmt"
)

// IssueKind identifica o tipo de problema de qualidade encontrado em um registro
type IssueKind string

const (
	IssueUnparsableDate    IssueKind = "UNPARSABLE_DATE"
	IssueNegativeAmount    IssueKind = "NEGATIVE_AMOUNT"
	IssueNegativeQuantity  IssueKind = "NEGATIVE_QUANTITY"
	IssueZeroQuantity      IssueKind = "ZERO_QUANTITY"
	IssueNegativePrice     IssueKind = "NEGATIVE_PRICE"
	IssueLineTotalMismatch IssueKind = "LINE_TOTAL_MISMATCH"
	IssueDanglingProduct   IssueKind = "DANGLING_PRODUCT"
	IssueDanglingCategory  IssueKind = "DANGLING_CATEGORY"
)

// DataQualityError descreve um registro ignorado ou reatribuído durante o cálculo.
// Nunca interrompe o cálculo, apenas é contabilizado.
type DataQualityError struct {
	Kind     IssueKind `json:"kind"`
	RecordID string    `json:"recordId"`
	Detail   string    `json:"detail,omitempty"`
}

func (e DataQualityError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("qualidade de dados: %s (registro %s)", e.Kind, e.RecordID)
	}
	return fmt.Sprintf("qualidade de dados: %s (registro %s): %s", e.Kind, e.RecordID, e.Detail)
}

// PreconditionError indica uma chamada inválida. Falha apenas a chamada atual.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Is permite comparar com os erros sentinela pelo par Op/Reason
func (e *PreconditionError) Is(target error) bool {
	var other *PreconditionError
	if !errors.As(target, &other) {
		return false
	}
	return e.Op == other.Op && e.Reason == other.Reason
}

var (
	ErrEmptySeries       = &PreconditionError{Op: "estatisticas", Reason: "série vazia"}
	ErrNegativeTopN      = &PreconditionError{Op: "ranking", Reason: "top-N negativo"}
	ErrInvalidWindow     = &PreconditionError{Op: "serie", Reason: "janela de média móvel deve ser maior que zero"}
	ErrInvalidPeriod     = &PreconditionError{Op: "periodo", Reason: "período inválido"}
	ErrInvalidWindowKind = &PreconditionError{Op: "comparacao", Reason: "janela de comparação inválida"}
	ErrUnknownRole       = &PreconditionError{Op: "kpi", Reason: "perfil desconhecido"}
	ErrMissingSeller     = &PreconditionError{Op: "kpi", Reason: "visão SELLER exige o vendedor"}
	ErrUnknownDimension  = &PreconditionError{Op: "ranking", Reason: "dimensão de ranking desconhecida"}
)

// IsPrecondition informa se err é um PreconditionError
func IsPrecondition(err error) bool {
	var target *PreconditionError
	return errors.As(err, &target)
}

// UpstreamFetchError indica que uma das coleções não pôde ser carregada da origem
type UpstreamFetchError struct {
	Collection string
	Err        error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("erro ao carregar %s da origem: %v", e.Collection, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}
