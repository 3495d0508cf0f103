package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

var ratingNamespace = uuid.MustParse("0b8e7d52-5f4a-4f0e-8f57-2c6a4e3d9b12")

// Rating is immutable once written.
type Rating struct {
	ID          string    `json:"id" firestore:"id"`
	RatedUserID string    `json:"rated_user_id" firestore:"ratedUserId"`
	RaterID     string    `json:"rater_id" firestore:"raterId"`
	CollabID    string    `json:"collab_id" firestore:"collabId"`
	RatingValue int       `json:"rating_value" firestore:"ratingValue"`
	Comment     string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	Timestamp   time.Time `json:"timestamp" firestore:"timestamp"`
}

// RatingID is stable per (rater, collaboration).
func RatingID(raterID, collabID string) string {
	return uuid.NewSHA1(ratingNamespace, []byte(raterID+"\x00"+collabID)).String()
}

// NextAverage folds one more value into a running average. A NaN previous
// average counts as zero.
func NextAverage(oldRating float64, oldCount, value int) (float64, int) {
	if math.IsNaN(oldRating) || math.IsInf(oldRating, 0) {
		oldRating = 0
	}
	if oldCount < 0 {
		oldCount = 0
	}
	newCount := oldCount + 1
	return (oldRating*float64(oldCount) + float64(value)) / float64(newCount), newCount
}
