package models

// Review score bounds enforced by the backend and mirrored client-side.
const (
	ScoreMin = 0
	ScoreMax = 100
)

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileRequest carries profile fields for creation and for partial
// updates; empty fields are omitted so a save only touches what the
// user filled in.
type ProfileRequest struct {
	Bio                string `json:"bio,omitempty"`
	Nickname           string `json:"nickname,omitempty"`
	ProfilePicturePath string `json:"profilePictureRelativePath,omitempty"`
}

type ReviewRequest struct {
	GameID  int64  `json:"gameId"`
	Content string `json:"content"`
	Score   int    `json:"score"`
}

// Response types

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AdminStatusResponse struct {
	IsAdmin bool `json:"is_admin"`
}

// ErrorResponse is the backend's error body shape.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Domain types
// Field names follow the backend's camelCase wire format.

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type Game struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ReleaseYear   int        `json:"releaseYear"`
	Description   string     `json:"description"`
	Publisher     string     `json:"publisher"`
	Genres        []Genre    `json:"genres"`
	Platforms     []Platform `json:"platforms"`
	CoverArtPath  string     `json:"coverArtRelativePath"`
	AverageRating float64    `json:"averageRating"`
	ReviewCount   int        `json:"reviewCount"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Platform struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Review struct {
	ReviewID int64  `json:"reviewId"`
	GameID   int64  `json:"gameId"`
	UserID   int64  `json:"userId"`
	Nickname string `json:"nickname"`
	Content  string `json:"content"`
	Score    int    `json:"score"`
}

type Profile struct {
	Bio                string `json:"bio"`
	Nickname           string `json:"nickname"`
	ProfilePicturePath string `json:"profilePictureRelativePath"`
}
