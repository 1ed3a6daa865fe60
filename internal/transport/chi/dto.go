package chi

import (
	"github.com/kailas-cloud/lookup/internal/domain"
	"github.com/kailas-cloud/lookup/internal/domain/record"
	healthuc "github.com/kailas-cloud/lookup/internal/usecase/health"
)

// searchRequest is the POST /search body.
type searchRequest struct {
	Email  string `json:"email"`
	Number string `json:"number,omitempty"`
}

type recordResponse struct {
	Email  string `json:"email"`
	Number string `json:"number"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Errors []fieldErrorResponse `json:"errors"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Records int               `json:"records"`
}

func recordsToResponse(recs []record.Record) []recordResponse {
	out := make([]recordResponse, len(recs))
	for i := range recs {
		out[i] = recordResponse{Email: recs[i].Email(), Number: recs[i].Number()}
	}
	return out
}

func fieldErrorsToResponse(fields []domain.FieldError) validationErrorResponse {
	out := make([]fieldErrorResponse, len(fields))
	for i, f := range fields {
		out[i] = fieldErrorResponse{Field: f.Field, Message: f.Message}
	}
	return validationErrorResponse{Errors: out}
}

func healthToResponse(r healthuc.Report) healthResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return healthResponse{Status: string(r.Status), Checks: checks, Records: r.Records}
}
