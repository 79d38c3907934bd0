package console

import (
	"context"
	"scanconsole/pkg/backend"
	"scanconsole/pkg/domain"
	"scanconsole/pkg/logger"
	"scanconsole/pkg/metrics"
	"scanconsole/pkg/serrors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Validation messages shown when a submission is missing its input.
const (
	MsgSelectFile = "Please select a file first."
	MsgEnterURL   = "Please enter a URL."
)

// Submitter sends one scan target to the backend and classifies the response.
type Submitter struct {
	client backend.Client
}

// NewSubmitter constructs a Submitter using client.
func NewSubmitter(client backend.Client) *Submitter {
	return &Submitter{client: client}
}

// Submit validates target, sends it and returns the outcome. Invalid targets
// are rejected without a network call. Submit never returns a nil outcome.
func (s *Submitter) Submit(ctx context.Context, target domain.ScanTarget) domain.SubmissionOutcome {
	ctx = logger.WithFields(ctx,
		zap.String("submissionID", uuid.NewString()),
		zap.String("targetType", string(targetType(target))))

	target, err := validate(target)
	if err != nil {
		return s.reject(ctx, err)
	}

	logger.Debug(ctx, "submitting scan target")
	res, err := s.client.Scan(ctx, target)
	if err != nil {
		return s.reject(ctx, err)
	}

	if res.LocalOnly() {
		if res.LocalAnalysis == nil {
			return s.reject(ctx, serrors.With(serrors.ErrRejected, "backend returned no local analysis"))
		}
		metrics.Submissions.WithLabelValues("local_only").Inc()
		logger.Info(ctx, "local analysis only", zap.Stringer("risk", res.LocalAnalysis.Risk))

		return domain.LocalOnly{Verdict: *res.LocalAnalysis}
	}

	if res.JobID == "" {
		return s.reject(ctx, serrors.With(serrors.ErrRejected, "backend returned no job id"))
	}

	metrics.Submissions.WithLabelValues("tracked").Inc()
	logger.Info(ctx, "scan accepted", zap.String("jobID", res.JobID), zap.Bool("cached", res.Cached))

	return domain.Tracked{
		JobID:       res.JobID,
		Cached:      res.Cached,
		Type:        target.TargetType(),
		DisplayName: displayName(target, res),
	}
}

func (s *Submitter) reject(ctx context.Context, err error) domain.Rejected {
	metrics.Submissions.WithLabelValues("rejected").Inc()

	fields := []zap.Field{zap.Error(err)}
	kind := serrors.KindOf(err)
	if kind != nil {
		fields = append(fields, zap.String("kind", kind.Error()))
	}
	if kind == serrors.ErrValidation {
		logger.Debug(ctx, "scan target rejected", fields...)
	} else {
		logger.Warn(ctx, "scan submission failed", fields...)
	}

	return domain.Rejected{Reason: serrors.UserMessage(err), Err: err}
}

// validate checks that target carries its input and normalizes it.
func validate(target domain.ScanTarget) (domain.ScanTarget, error) {
	switch t := target.(type) {
	case domain.FileTarget:
		if !t.Selected() {
			return nil, serrors.With(serrors.ErrValidation, MsgSelectFile)
		}

		return t, nil
	case domain.URLTarget:
		u := strings.TrimSpace(t.URL)
		if u == "" {
			return nil, serrors.With(serrors.ErrValidation, MsgEnterURL)
		}

		return domain.URLTarget{URL: u}, nil
	case nil:
		return nil, serrors.With(serrors.ErrValidation, MsgSelectFile)
	default:
		return nil, serrors.With(serrors.ErrValidation, "unsupported scan target %T", target)
	}
}

func displayName(target domain.ScanTarget, res backend.ScanResponse) string {
	switch t := target.(type) {
	case domain.FileTarget:
		return t.Name
	case domain.URLTarget:
		if res.URL != "" {
			return res.URL
		}

		return t.URL
	default:
		return ""
	}
}

func targetType(target domain.ScanTarget) domain.TargetType {
	if target == nil {
		return ""
	}

	return target.TargetType()
}
