package model

import "time"

type Code string

type URL string

func (u URL) String() string {
	return string(u)
}

// ShortLink представляет одну запись сокращённого URL
type ShortLink struct {
	Code      Code       `json:"shortCode"`
	TargetURL URL        `json:"originalUrl"`
	Clicks    int64      `json:"clicks"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	OwnerID   string     `json:"-"`
}

// Expired сообщает, истекла ли запись на момент now
func (l ShortLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

// ListFilter задаёт параметры выборки для List
type ListFilter struct {
	OwnerID   string
	Page      int
	PageSize  int
	SortField string
	SortOrder string
}

// Offset возвращает смещение для постраничной выборки
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
