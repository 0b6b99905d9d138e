package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Teacher is a professor record. UserID links back to the account that owns
// the professor profile.
type Teacher struct {
	ID      int64  `json:"id"`
	Nome    string `json:"nome"`
	Materia string `json:"materia,omitempty"`
	UserID  int64  `json:"user_id,omitempty"`
}

// Teachers describes the teachers operation and its observable behavior.
func (c *Client) Teachers(ctx context.Context) ([]Teacher, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, endpointTeacher, nil, nil)
	if err != nil {
		return nil, err
	}

	// Deployments answer under different plural keys.
	var envelope struct {
		Professors []Teacher `json:"professors"`
		Teachers   []Teacher `json:"teachers"`
		Data       []Teacher `json:"data"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		switch {
		case envelope.Professors != nil:
			return envelope.Professors, nil
		case envelope.Teachers != nil:
			return envelope.Teachers, nil
		case envelope.Data != nil:
			return envelope.Data, nil
		}
	}

	var teachers []Teacher
	if err := json.Unmarshal(raw, &teachers); err != nil {
		return nil, fmt.Errorf("api: decode teacher list: %w", err)
	}
	return teachers, nil
}

// Teacher describes the teacher operation and its observable behavior.
func (c *Client) Teacher(ctx context.Context, id string) (*Teacher, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, endpointTeacher+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Professor *Teacher `json:"professor"`
		Data      *Teacher `json:"data"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Professor != nil {
			return envelope.Professor, nil
		}
		if envelope.Data != nil {
			return envelope.Data, nil
		}
	}

	var teacher Teacher
	if err := json.Unmarshal(raw, &teacher); err != nil {
		return nil, fmt.Errorf("api: decode teacher: %w", err)
	}
	return &teacher, nil
}
