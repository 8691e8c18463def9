package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/devtec-sai/queue-coordinator/internal/config"
	"github.com/devtec-sai/queue-coordinator/internal/core/domain"
	"github.com/devtec-sai/queue-coordinator/internal/core/ports/out"
)

// RegistryAdapter is the HTTP client for the authoritative agendamentos
// store. Every call attaches the session credential when one is available
// and classifies failures into the domain error kinds. No retries here.
type RegistryAdapter struct {
	client      *http.Client
	baseURL     string
	credentials out.CredentialPort
	logger      out.LoggerPort
}

func NewRegistryAdapter(cfg *config.Config, credentials out.CredentialPort, logger out.LoggerPort) *RegistryAdapter {
	return &RegistryAdapter{
		client:      &http.Client{Timeout: time.Duration(cfg.Registry.TimeoutSeconds) * time.Second},
		baseURL:     cfg.Registry.URL,
		credentials: credentials,
		logger:      logger,
	}
}

// errorEnvelope is the registry's error body shape.
type errorEnvelope struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type updateStatusRequest struct {
	Status domain.AppointmentStatus `json:"status"`
}

func (a *RegistryAdapter) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	a.logger.Debug("registry.appointments.fetch", out.LogFields{})

	url := fmt.Sprintf("%s/agendamentos/consultar_agendamentos", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	a.attachCredential(ctx, req)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("registry.appointments.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := a.classifyStatus(resp)
		a.logger.Error("registry.appointments.fetch_failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return nil, err
	}

	var appointments []domain.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&appointments); err != nil {
		a.logger.Error("registry.appointments.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	a.logger.Debug("registry.appointments.fetch_success", out.LogFields{
		"count": len(appointments),
	})

	return appointments, nil
}

func (a *RegistryAdapter) CreateAppointment(ctx context.Context, draft domain.AppointmentDraft) (*domain.Appointment, error) {
	a.logger.Info("registry.appointment.create", out.LogFields{
		"serviceType": draft.ServiceType,
	})

	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	url := fmt.Sprintf("%s/agendamentos/agendar", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	a.attachCredential(ctx, req)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("registry.appointment.create_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		err := a.classifyStatus(resp)
		a.logger.Error("registry.appointment.create_failed", out.LogFields{
			"status": resp.StatusCode,
		})
		return nil, err
	}

	var appointment domain.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&appointment); err != nil {
		a.logger.Error("registry.appointment.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}

	a.logger.Info("registry.appointment.create_success", out.LogFields{
		"appointmentId": appointment.ID,
	})

	return &appointment, nil
}

func (a *RegistryAdapter) UpdateAppointmentStatus(ctx context.Context, id string, target domain.AppointmentStatus) error {
	a.logger.Info("registry.appointment.update_status", out.LogFields{
		"appointmentId": id,
		"status":        target,
	})

	body, err := json.Marshal(updateStatusRequest{Status: target})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	url := fmt.Sprintf("%s/agendamentos/%s/status", a.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	a.attachCredential(ctx, req)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("registry.appointment.update_status_failed", out.LogFields{
			"appointmentId": id,
			"error":         err.Error(),
		})
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		err := a.classifyStatus(resp)
		a.logger.Error("registry.appointment.update_status_failed", out.LogFields{
			"appointmentId": id,
			"status":        resp.StatusCode,
		})
		return err
	}

	a.logger.Info("registry.appointment.update_status_success", out.LogFields{
		"appointmentId": id,
	})

	return nil
}

// attachCredential forwards the session's bearer token opaquely. A missing
// token is not an error; the registry raises 401 if it required one.
func (a *RegistryAdapter) attachCredential(ctx context.Context, req *http.Request) {
	if a.credentials == nil {
		return
	}
	if token, ok := a.credentials.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// classifyStatus translates a non-success registry response into a domain
// error kind, carrying the registry's own message when it sent one.
func (a *RegistryAdapter) classifyStatus(resp *http.Response) error {
	var envelope errorEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	message := envelope.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrUnauthenticated, message)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, message)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrSchedulingConflict, message)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: %s", domain.ErrValidation, message)
	default:
		return fmt.Errorf("%w: status %d: %s", domain.ErrServiceUnavailable, resp.StatusCode, message)
	}
}
