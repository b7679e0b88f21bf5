package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"appstore_reviews/internal/domain"
)

// header order is the output contract; keep it stable so repeated runs over
// the same reviews produce byte-identical files.
var header = []string{"user_name", "title", "review", "is_edited", "last_update", "rating"}

// Sink writes a review sequence to a CSV file, one row per review.
// Developer responses are deliberately not part of this format. The
// destination is truncated on every write.
type Sink struct {
	path string
}

func New(path string) *Sink { return &Sink{path: path} }

func (s *Sink) Write(_ context.Context, reviews []domain.Review) error {
	log.Info().Str("path", s.path).Msg("writing reviews")

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", domain.ErrIO, s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("%w: write header: %v", domain.ErrIO, err)
	}
	for _, r := range reviews {
		row := []string{
			r.UserName,
			r.Title,
			r.Review,
			strconv.FormatBool(r.IsEdited),
			r.LastUpdate,
			strconv.Itoa(r.Rating),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("%w: write row: %v", domain.ErrIO, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flush: %v", domain.ErrIO, err)
	}

	log.Info().Int("reviews", len(reviews)).Str("path", s.path).Msg("reviews written")
	return nil
}
