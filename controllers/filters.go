package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/kitchenlog/models"
	"github.com/yeremiapane/kitchenlog/pipeline"
)

// localMinuteLayout is what a datetime-local form input submits.
const localMinuteLayout = "2006-01-02T15:04"

// criteriaFromQuery builds a filter from the request's own query string. The
// list views and the export endpoints each call it, so no filter state is
// shared between them.
func criteriaFromQuery(c *gin.Context, categoryParam, areaParam string) (pipeline.Criteria, error) {
	criteria := pipeline.Criteria{
		Category: c.Query(categoryParam),
		Area:     c.Query(areaParam),
	}

	var err error
	if criteria.Start, err = dayParam(c, "start"); err != nil {
		return criteria, err
	}
	if criteria.End, err = dayParam(c, "end"); err != nil {
		return criteria, err
	}
	if !criteria.Start.IsZero() && !criteria.End.IsZero() && criteria.End.Before(criteria.Start) {
		return criteria, errors.New("end date is before start date")
	}
	return criteria, nil
}

func dayParam(c *gin.Context, name string) (time.Time, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return time.Time{}, nil
	}
	d, err := pipeline.ParseDay(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q, expected YYYY-MM-DD", name, v)
	}
	return d, nil
}

// parseInstant accepts RFC3339 or a zone-less wall clock time, which is read in
// the display zone. An empty value yields the zero time.
func parseInstant(field, v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	for _, layout := range []string{localMinuteLayout, "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &models.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a valid date and time", v)}
}

// decodeBatch reads either a single JSON object or an array of them.
func decodeBatch[T any](c *gin.Context) ([]T, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, errors.New("request body is empty")
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("invalid request body: %w", err)
		}
		return items, nil
	}
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	return []T{item}, nil
}
