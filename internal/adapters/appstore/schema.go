package appstore

import (
	"fmt"

	"appstore_reviews/internal/domain"
)

// Catalog wire types. Required fields are pointers so a missing key is
// distinguishable from a zero value and can fail the page.

type appInfoResponse struct {
	Data []struct {
		Attributes *struct {
			UserRating *struct {
				RatingCount *int `json:"ratingCount"`
			} `json:"userRating"`
		} `json:"attributes"`
	} `json:"data"`
}

type reviewsResponse struct {
	Next *string `json:"next"`
	Data []struct {
		Attributes *reviewAttrs `json:"attributes"`
	} `json:"data"`
}

type reviewAttrs struct {
	UserName          *string       `json:"userName"`
	Title             *string       `json:"title"`
	Review            *string       `json:"review"`
	IsEdited          *bool         `json:"isEdited"`
	Date              *string       `json:"date"`
	Rating            *int          `json:"rating"`
	DeveloperResponse *devRespAttrs `json:"developerResponse"`
}

type devRespAttrs struct {
	ID       *int64  `json:"id"`
	Body     *string `json:"body"`
	Modified *string `json:"modified"`
}

func (a *reviewAttrs) toDomain() (domain.Review, error) {
	if a == nil {
		return domain.Review{}, fmt.Errorf("%w: record has no attributes", domain.ErrSchema)
	}
	switch {
	case a.UserName == nil:
		return domain.Review{}, missing("userName")
	case a.Title == nil:
		return domain.Review{}, missing("title")
	case a.Review == nil:
		return domain.Review{}, missing("review")
	case a.IsEdited == nil:
		return domain.Review{}, missing("isEdited")
	case a.Date == nil:
		return domain.Review{}, missing("date")
	case a.Rating == nil:
		return domain.Review{}, missing("rating")
	}

	r := domain.Review{
		UserName:   *a.UserName,
		Title:      *a.Title,
		Review:     *a.Review,
		IsEdited:   *a.IsEdited,
		LastUpdate: *a.Date,
		Rating:     *a.Rating,
	}
	if dr := a.DeveloperResponse; dr != nil {
		if dr.ID == nil || dr.Body == nil || dr.Modified == nil {
			return domain.Review{}, missing("developerResponse fields")
		}
		r.DeveloperResponse = &domain.DeveloperResponse{
			DeveloperID: *dr.ID,
			Body:        *dr.Body,
			Modified:    *dr.Modified,
		}
	}
	return r, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", domain.ErrSchema, field)
}
