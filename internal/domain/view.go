package domain

import (
	"strings"
	"time"
)

type PeriodKind string

const (
	PeriodAll    PeriodKind = "ALL"
	PeriodWeek   PeriodKind = "WEEK"
	PeriodMonth  PeriodKind = "MONTH"
	PeriodYear   PeriodKind = "YEAR"
	PeriodCustom PeriodKind = "CUSTOM"
)

// PeriodSpec define a janela usada pelo filtro de período.
// Start e End só são usados em PeriodCustom e são inclusivos.
type PeriodSpec struct {
	Kind  PeriodKind `json:"kind"`
	Start time.Time  `json:"start,omitempty"`
	End   time.Time  `json:"end,omitempty"`
}

// ParsePeriodKind converte o texto recebido (case insensitive). Vazio equivale a ALL.
func ParsePeriodKind(value string) (PeriodKind, bool) {
	switch kind := PeriodKind(strings.ToUpper(strings.TrimSpace(value))); kind {
	case "":
		return PeriodAll, true
	case PeriodAll, PeriodWeek, PeriodMonth, PeriodYear, PeriodCustom:
		return kind, true
	default:
		return "", false
	}
}

type WindowKind string

const (
	WindowWeek  WindowKind = "WEEK"
	WindowMonth WindowKind = "MONTH"
)

// ParseWindowKind converte o texto recebido. Vazio equivale a MONTH.
func ParseWindowKind(value string) (WindowKind, bool) {
	switch kind := WindowKind(strings.ToUpper(strings.TrimSpace(value))); kind {
	case "":
		return WindowMonth, true
	case WindowWeek, WindowMonth:
		return kind, true
	default:
		return "", false
	}
}

// Role é a visão de dashboard solicitada
type Role string

const (
	RoleOperator Role = "OPERATOR"
	RoleSeller   Role = "SELLER"
	RoleAnalyst  Role = "ANALYST"
	RoleInvestor Role = "INVESTOR"
)

// ParseRole converte o texto recebido (case insensitive)
func ParseRole(value string) (Role, bool) {
	switch role := Role(strings.ToUpper(strings.TrimSpace(value))); role {
	case RoleOperator, RoleSeller, RoleAnalyst, RoleInvestor:
		return role, true
	default:
		return "", false
	}
}

// View descreve o dashboard que deve ser montado
type View struct {
	Role   Role       `json:"role"`
	Period PeriodSpec `json:"period"`
	// SellerUsername é obrigatório na visão SELLER
	SellerUsername string `json:"sellerUsername,omitempty"`
	TopN           int    `json:"topN"`
}
