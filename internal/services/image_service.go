package services

import (
	"context"
	"strings"

	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/enrich"
)

var ImageListOptions = domain.ListOptions{
	DefaultLimit: 24,
	MaxLimit:     50,
	SortFields:   []string{"created_at", "alt_text"},
}

type EnrichedImage struct {
	models.ProjectImage
	ProjectDetails *enrich.ProjectDetails `json:"project_details"`
	UserDetails    *enrich.UserDetails    `json:"user_details"`
	BlogDetails    *enrich.BlogDetails    `json:"blog_details"`
}

type ImageService struct {
	Images   ImageStore
	Resolver enrich.Resolver
}

// List pages images. With a search term every matching row is read, joined, filtered on
// the joined fields and sliced in memory, so total reflects the filtered set.
// TODO: move the joined-field search into the store (search index or view) once
// project_images outgrows a full scan.
func (s ImageService) List(ctx context.Context, req domain.PageRequest, projectID string) (ListResult[EnrichedImage], error) {
	if req.Search == "" {
		images, total, err := s.Images.List(ctx, req, projectID)
		if err != nil {
			return ListResult[EnrichedImage]{}, storeErr("image store", err)
		}
		return newListResult(s.join(ctx, images), req, total), nil
	}

	all, err := s.Images.ScanAll(ctx, req, projectID)
	if err != nil {
		return ListResult[EnrichedImage]{}, storeErr("image store", err)
	}
	joined := s.join(ctx, all)

	matched := make([]EnrichedImage, 0, len(joined))
	for _, im := range joined {
		if imageMatches(im, req.Search) {
			matched = append(matched, im)
		}
	}
	return newListResult(domain.Paginate(matched, req.Page, req.Limit), req, len(matched)), nil
}

func (s ImageService) join(ctx context.Context, images []models.ProjectImage) []EnrichedImage {
	lk := s.Resolver.Resolve(ctx, enrich.Refs{
		UserIDs:       enrich.CollectIDs(images, func(im models.ProjectImage) string { return im.UserID }),
		ProjectIDs:    enrich.CollectIDs(images, func(im models.ProjectImage) string { return im.ProjectID }),
		BlogIDs:       enrich.CollectIDs(images, func(im models.ProjectImage) string { return im.BlogID }),
		ProjectOwners: true,
	})

	out := make([]EnrichedImage, 0, len(images))
	for _, im := range images {
		out = append(out, EnrichedImage{
			ProjectImage:   im,
			ProjectDetails: lk.Project(im.ProjectID),
			UserDetails:    lk.UserFor(im.UserID, im.ProjectID),
			BlogDetails:    lk.Blog(im.BlogID),
		})
	}
	return out
}

// imageMatches applies the lower-cased search term to the row and its joined entities.
func imageMatches(im EnrichedImage, search string) bool {
	fields := []string{im.AltText, im.ImageURL}
	if im.ProjectDetails != nil {
		fields = append(fields, im.ProjectDetails.Name, im.ProjectDetails.URL)
	}
	if im.UserDetails != nil {
		fields = append(fields, im.UserDetails.Name, im.UserDetails.Email)
	}
	if im.BlogDetails != nil {
		fields = append(fields, im.BlogDetails.Title)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}
