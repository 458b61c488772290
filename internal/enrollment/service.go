package enrollment

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
)

// Submitter issues the add-doctor write.
type Submitter interface {
	AddDoctor(ctx context.Context, sub directory.Submission) (json.RawMessage, error)
}

// Service validates and submits new doctor records.
type Service struct {
	submitter Submitter
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewService constructs a Service.
func NewService(submitter Submitter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		submitter: submitter,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Validate checks the form without submitting it. Missing required values
// take precedence over format problems.
func (s *Service) Validate(form Form) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	first := fieldErrs[0]
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return &ValidationError{Field: fe.Field(), Message: MsgRequired}
		}
	}
	switch first.Field() {
	case "Experience":
		return &ValidationError{Field: first.Field(), Message: MsgExperienceNumber}
	case "Rating":
		return &ValidationError{Field: first.Field(), Message: MsgRatingNumber}
	default:
		return &ValidationError{Field: first.Field(), Message: MsgRequired}
	}
}

// Submit validates form and sends it upstream. Upstream failures are
// returned as *directory.SubmitError unchanged.
func (s *Service) Submit(ctx context.Context, form Form) (json.RawMessage, error) {
	if err := s.Validate(form); err != nil {
		return nil, err
	}
	sub, err := form.Submission()
	if err != nil {
		return nil, err
	}
	body, err := s.submitter.AddDoctor(ctx, sub)
	if err != nil {
		s.logger.Warn("add doctor failed", slog.String("specialty", sub.Specialty), slog.Any("error", err))
		return nil, err
	}
	s.logger.Info("doctor added", slog.String("specialty", sub.Specialty))
	return body, nil
}
