package types

import "fmt"

// ReviewRequest is the payload for rating an artisan after a closed
// order. The reviewer username is taken from the auth token.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1"`
}

func (r ReviewRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if r.Comment == "" {
		return fmt.Errorf("comment is required")
	}
	return nil
}
