package entity

import (
	"time"
)

// DefaultPortfolioImageURL is used for portfolio entries when the partner has no photo.
const DefaultPortfolioImageURL = "https://images.creatorconnect.app/placeholders/collab.png"

const RoleAdmin = "admin"

// User is the profile document in the external identity store. This service only
// patches Rating, RatingCount, Collabs, PastCollaborations and Schedule.
type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	PhotoURL    string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Niche       string `json:"niche,omitempty" firestore:"niche,omitempty"`
	Role        string `json:"role,omitempty" firestore:"role,omitempty"`

	Rating      float64 `json:"rating" firestore:"rating"`
	RatingCount int     `json:"rating_count" firestore:"ratingCount"`
	Collabs     int     `json:"collabs" firestore:"collabs"`

	// PastCollaborations is ordered newest first.
	PastCollaborations []PastCollaboration `json:"past_collaborations" firestore:"pastCollaborations"`
	Schedule           []CalendarEvent     `json:"schedule" firestore:"schedule"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PastCollaboration is a portfolio entry generated when a collaboration completes.
type PastCollaboration struct {
	ID          string `json:"id" firestore:"id"`
	Title       string `json:"title" firestore:"title"`
	PartnerName string `json:"partner_name" firestore:"partnerName"`
	Description string `json:"description" firestore:"description"`
	ImageURL    string `json:"image_url" firestore:"imageUrl"`
	Date        string `json:"date" firestore:"date"`
	Link        string `json:"link" firestore:"link"`
}

const CalendarEventCollab = "collab"

type CalendarEvent struct {
	ID    string    `json:"id" firestore:"id"`
	Title string    `json:"title" firestore:"title"`
	Date  time.Time `json:"date" firestore:"date"`
	Type  string    `json:"type" firestore:"type"`
}

// Principal is the authenticated caller as reported by the auth provider.
type Principal struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Role        string `json:"role,omitempty"`
}
