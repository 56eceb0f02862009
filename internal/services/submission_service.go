package services

import (
	"context"

	"admindash/internal/domain"
	"admindash/internal/domain/models"
)

var SubmissionListOptions = domain.ListOptions{
	DefaultLimit: 20,
	MaxLimit:     50,
	SortFields:   []string{"created_at", "email", "status"},
}

type SubmissionService struct {
	Submissions SubmissionStore
}

func (s SubmissionService) List(ctx context.Context, req domain.PageRequest) (ListResult[models.FreeAnalysisSubmission], error) {
	items, total, err := s.Submissions.List(ctx, req)
	if err != nil {
		return ListResult[models.FreeAnalysisSubmission]{}, storeErr("submission store", err)
	}
	return newListResult(items, req, total), nil
}
