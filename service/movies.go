package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"movie-booking-cli/model"
)

// ListMovies fetches one page of the movie catalog.
func (c *Client) ListMovies(ctx context.Context, page int, size int) (model.Envelope[[]model.Movie], error) {
	var out model.Envelope[[]model.Movie]
	path := fmt.Sprintf("/movies?page=%d&size=%d", page, size)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return model.Envelope[[]model.Movie]{}, err
	}
	return out, nil
}

// MoviesByCategory fetches one page of movies for a category name. The
// backend keys the query parameter by the category name itself.
func (c *Client) MoviesByCategory(ctx context.Context, name string, page int, size int) (model.Envelope[[]model.Movie], error) {
	if strings.TrimSpace(name) == "" {
		return model.Envelope[[]model.Movie]{}, errors.New("category name is required")
	}
	var out model.Envelope[[]model.Movie]
	path := fmt.Sprintf("/movies/categories?%s=Action&page=%d&size=%d", url.QueryEscape(name), page, size)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return model.Envelope[[]model.Movie]{}, err
	}
	return out, nil
}

func (c *Client) GetMovie(ctx context.Context, id int) (model.Envelope[model.Movie], error) {
	var out model.Envelope[model.Movie]
	path := fmt.Sprintf("/movies/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return model.Envelope[model.Movie]{}, err
	}
	return out, nil
}

func (c *Client) ListCategories(ctx context.Context, page int, size int) (model.Envelope[[]model.Category], error) {
	var out model.Envelope[[]model.Category]
	path := fmt.Sprintf("/categories?page=%d&size=%d", page, size)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return model.Envelope[[]model.Category]{}, err
	}
	return out, nil
}

func (c *Client) ListCast(ctx context.Context, page int, size int) (model.Envelope[[]model.CastMember], error) {
	var out model.Envelope[[]model.CastMember]
	path := fmt.Sprintf("/cast-members?page=%d&size=%d", page, size)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return model.Envelope[[]model.CastMember]{}, err
	}
	return out, nil
}

// ToggleFavorite flips the favorite flag on a movie.
func (c *Client) ToggleFavorite(ctx context.Context, id int, status bool) (model.Envelope[[]model.Movie], error) {
	var out model.Envelope[[]model.Movie]
	path := fmt.Sprintf("/movies/%d/favorite?status=%t", id, status)
	if err := c.do(ctx, http.MethodPatch, path, nil, &out); err != nil {
		return model.Envelope[[]model.Movie]{}, err
	}
	return out, nil
}
