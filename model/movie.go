package model

type Movie struct {
	MovieId      int          `json:"movieId"`
	Title        string       `json:"title"`
	Year         int          `json:"year"`
	Duration     int          `json:"duration"`
	Rating       float64      `json:"rating"`
	Overview     string       `json:"overview"`
	DirectorName string       `json:"directorName"`
	IsFavorite   bool         `json:"isFavorite"`
	Poster       string       `json:"poster"`
	Thriller     string       `json:"thriller,omitempty"`
	Category     Category     `json:"category"`
	CastMembers  []CastMember `json:"castMembers"`
}

type Category struct {
	CategoryId int    `json:"categoryId"`
	Name       string `json:"name"`
}

type CastMember struct {
	CastId int    `json:"castId"`
	Name   string `json:"name"`
}
