package handler

import (
	"time"

	"github.com/msomdec/flexbase/internal/domain"
)

// UserDTO is the JSON representation of the signed-in user.
type UserDTO struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Bio            string `json:"bio"`
	ProfileImage   string `json:"profileImage"`
	FollowersCount int    `json:"followersCount"`
	FollowingCount int    `json:"followingCount"`
	CreatedAt      string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Bio:            u.Bio,
		ProfileImage:   u.Avatar(),
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}

// SearchUserDTO is one typeahead hit.
type SearchUserDTO struct {
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

func toSearchUserDTOs(users []domain.UserSummary) []SearchUserDTO {
	dtos := make([]SearchUserDTO, len(users))
	for i, u := range users {
		img := u.ProfileImage
		if img == "" {
			img = domain.DefaultProfileImage
		}
		dtos[i] = SearchUserDTO{Username: u.Username, ProfileImage: img}
	}
	return dtos
}

// PreviousOwnerDTO is one provenance interval.
type PreviousOwnerDTO struct {
	User string `json:"user"`
	From string `json:"from"`
	To   string `json:"to"`
}

// CollectionItemDTO is the JSON representation of a collection item.
type CollectionItemDTO struct {
	ID             int64              `json:"id"`
	UserID         int64              `json:"userId"`
	Images         []string           `json:"images"`
	Brand          string             `json:"brand"`
	BoughtOn       string             `json:"boughtOn"`
	BoughtAtPrice  float64            `json:"boughtAtPrice"`
	MarketPrice    float64            `json:"marketPrice"`
	PreviousOwners []PreviousOwnerDTO `json:"previousOwners"`
	CreatedAt      string             `json:"createdAt"`
}

func toCollectionItemDTO(c domain.CollectionItem) CollectionItemDTO {
	owners := make([]PreviousOwnerDTO, len(c.PreviousOwners))
	for i, o := range c.PreviousOwners {
		owners[i] = PreviousOwnerDTO{
			User: o.User,
			From: o.From.Format(domain.DateLayout),
			To:   o.To.Format(domain.DateLayout),
		}
	}
	return CollectionItemDTO{
		ID:             c.ID,
		UserID:         c.UserID,
		Images:         c.Images,
		Brand:          c.Brand,
		BoughtOn:       c.BoughtOn.Format(domain.DateLayout),
		BoughtAtPrice:  c.BoughtAtPrice,
		MarketPrice:    c.MarketPrice,
		PreviousOwners: owners,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}

func toCollectionItemDTOs(items []domain.CollectionItem) []CollectionItemDTO {
	dtos := make([]CollectionItemDTO, len(items))
	for i, c := range items {
		dtos[i] = toCollectionItemDTO(c)
	}
	return dtos
}

// PostDTO is the JSON representation of a post.
type PostDTO struct {
	ID        int64    `json:"id"`
	UserID    int64    `json:"userId"`
	Images    []string `json:"images"`
	Caption   string   `json:"caption"`
	Hashtags  []string `json:"hashtags"`
	CreatedAt string   `json:"createdAt"`
}

func toPostDTOs(posts []domain.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i, p := range posts {
		dtos[i] = PostDTO{
			ID:        p.ID,
			UserID:    p.UserID,
			Images:    p.Images,
			Caption:   p.Caption,
			Hashtags:  p.Hashtags,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		}
	}
	return dtos
}
