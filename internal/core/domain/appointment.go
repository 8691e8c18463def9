package domain

import (
	"fmt"
	"strings"

	"github.com/devtec-sai/queue-coordinator/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusWaiting   AppointmentStatus = "AGUARDANDO"
	AppointmentStatusInService AppointmentStatus = "EM_ATENDIMENTO"
	AppointmentStatusCompleted AppointmentStatus = "CONCLUIDO"
	AppointmentStatusCancelled AppointmentStatus = "CANCELADO"
)

type ServiceType string

const (
	ServiceTypeDocumentIssuance  ServiceType = "EMISSAO_DOCUMENTOS"
	ServiceTypeSocialBenefit     ServiceType = "BENEFICIO_PREVIDENCIARIO"
	ServiceTypeFinancialAdvisory ServiceType = "CONSULTORIA_FINANCEIRA"
	ServiceTypeTechSupport       ServiceType = "SUPORTE_TECNICO"
	ServiceTypeOther             ServiceType = "OUTROS"
)

type PriorityClass string

const (
	PriorityClassNormal       PriorityClass = "NORMAL"
	PriorityClassElderly      PriorityClass = "IDOSO"
	PriorityClassPreferential PriorityClass = "PREFERENCIAL"
	PriorityClassDisability   PriorityClass = "PCD"
)

// Appointment is a single visitor's service request as held by the registry.
// The ID is assigned by the registry, never by this client.
type Appointment struct {
	ID               string              `json:"id"`
	RequesterName    string              `json:"nomeSolicitante"`
	NationalID       string              `json:"cpf"`
	SecondaryID      string              `json:"rg,omitempty"`
	ServiceType      ServiceType         `json:"tipoServico"`
	PriorityClass    PriorityClass       `json:"prioridade"`
	ScheduledArrival json_types.DateTime `json:"dataHoraChegada"`
	Status           AppointmentStatus   `json:"status"`
}

// AppointmentDraft is the create payload; the registry assigns ID and the
// initial AGUARDANDO status.
type AppointmentDraft struct {
	RequesterName    string              `json:"nomeSolicitante"`
	NationalID       string              `json:"cpf"`
	SecondaryID      string              `json:"rg,omitempty"`
	ServiceType      ServiceType         `json:"tipoServico"`
	PriorityClass    PriorityClass       `json:"prioridade"`
	ScheduledArrival json_types.DateTime `json:"dataHoraChegada"`
}

// NormalizeNationalID strips everything but digits, so a formatted CPF like
// "123.456.789-00" enters the model as "12345678900".
func NormalizeNationalID(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceTypeDocumentIssuance, ServiceTypeSocialBenefit,
		ServiceTypeFinancialAdvisory, ServiceTypeTechSupport, ServiceTypeOther:
		return true
	}
	return false
}

func (p PriorityClass) Valid() bool {
	switch p {
	case PriorityClassNormal, PriorityClassElderly,
		PriorityClassPreferential, PriorityClassDisability:
		return true
	}
	return false
}

// Validate is the local pre-flight check; the registry remains the final
// authority and validates again on its side.
func (d AppointmentDraft) Validate() error {
	if strings.TrimSpace(d.RequesterName) == "" {
		return fmt.Errorf("%w: requester name is required", ErrValidation)
	}
	if len(d.NationalID) != 11 || NormalizeNationalID(d.NationalID) != d.NationalID {
		return fmt.Errorf("%w: national id must be 11 digits", ErrValidation)
	}
	if !d.ServiceType.Valid() {
		return fmt.Errorf("%w: unknown service type %q", ErrValidation, d.ServiceType)
	}
	if !d.PriorityClass.Valid() {
		return fmt.Errorf("%w: unknown priority class %q", ErrValidation, d.PriorityClass)
	}
	if d.ScheduledArrival.Date.IsZero() {
		return fmt.Errorf("%w: scheduled arrival is required", ErrValidation)
	}
	return nil
}
