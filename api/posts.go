package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Post is a published blog entry. Field names follow the server's
// Portuguese schema.
type Post struct {
	ID          int64  `json:"id"`
	Titulo      string `json:"titulo"`
	Conteudo    string `json:"conteudo"`
	Resumo      string `json:"resumo,omitempty"`
	ProfessorID int64  `json:"professor_id"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// CreatePostRequest is the payload for publishing a new post.
type CreatePostRequest struct {
	Titulo      string `json:"titulo"`
	Conteudo    string `json:"conteudo"`
	Resumo      string `json:"resumo,omitempty"`
	ProfessorID int64  `json:"professor_id"`
}

// UpdatePostRequest is the partial-update payload. Zero fields are omitted
// and left unchanged on the server.
type UpdatePostRequest struct {
	Titulo   string `json:"titulo,omitempty"`
	Conteudo string `json:"conteudo,omitempty"`
	Resumo   string `json:"resumo,omitempty"`
}

// Posts describes the posts operation and its observable behavior.
func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, endpointPosts, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodePostList(raw)
}

// Post describes the post operation and its observable behavior.
func (c *Client) Post(ctx context.Context, id string) (*Post, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, endpointPosts+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodePost(raw)
}

// SearchPosts describes the searchposts operation and its observable behavior.
func (c *Client) SearchPosts(ctx context.Context, query string) ([]Post, error) {
	params := url.Values{"query": {query}}
	raw, err := c.doRaw(ctx, http.MethodGet, endpointPosts+"/search", params, nil)
	if err != nil {
		return nil, err
	}
	return decodePostList(raw)
}

// CreatePost describes the createpost operation and its observable behavior.
//
// Publishing requires a professor session; the server rejects student
// tokens.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	raw, err := c.doRaw(ctx, http.MethodPost, endpointPosts, nil, req)
	if err != nil {
		return nil, err
	}
	return decodePost(raw)
}

// UpdatePost describes the updatepost operation and its observable behavior.
func (c *Client) UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (*Post, error) {
	raw, err := c.doRaw(ctx, http.MethodPut, endpointPosts+"/"+url.PathEscape(id), nil, req)
	if err != nil {
		return nil, err
	}
	return decodePost(raw)
}

// DeletePost describes the deletepost operation and its observable behavior.
//
// The returned string is the server's confirmation message.
func (c *Client) DeletePost(ctx context.Context, id string) (string, error) {
	raw, err := c.doRaw(ctx, http.MethodDelete, endpointPosts+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return "", err
	}

	var envelope struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &envelope)
	return envelope.Message, nil
}

func decodePostList(raw []byte) ([]Post, error) {
	var envelope struct {
		Posts []Post `json:"posts"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Posts != nil {
		return envelope.Posts, nil
	}

	var posts []Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("api: decode post list: %w", err)
	}
	return posts, nil
}

func decodePost(raw []byte) (*Post, error) {
	var envelope struct {
		Post *Post `json:"post"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Post != nil {
		return envelope.Post, nil
	}

	var post Post
	if err := json.Unmarshal(raw, &post); err != nil {
		return nil, fmt.Errorf("api: decode post: %w", err)
	}
	return &post, nil
}
