package models

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxTitleLength bounds the title in both validation profiles that check it.
const MaxTitleLength = 255

// TaskPayload is the HTTP-facing request body. A nil field means the
// client omitted it or sent an explicit null; either way the field is
// skipped on partial update.
type TaskPayload struct {
	Title       *string
	Description *string
	Priority    *int
	DueDate     *string
	Tag         *string
	Status      *string
}

// DecodeTaskPayload reads a JSON object field by field so the first
// unrecognized key is reported by name. The status field is only known to
// the update operation; create assigns it server-side.
func DecodeTaskPayload(r io.Reader, allowStatus bool) (*TaskPayload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid request payload: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("request body must be a JSON object")
	}

	p := &TaskPayload{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid request payload: %w", err)
		}
		key := keyTok.(string)

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid request payload: %w", err)
		}

		switch key {
		case "title":
			if p.Title, err = stringField(key, value); err != nil {
				return nil, err
			}
		case "description":
			if p.Description, err = stringField(key, value); err != nil {
				return nil, err
			}
		case "due_date":
			if p.DueDate, err = stringField(key, value); err != nil {
				return nil, err
			}
		case "tag":
			if p.Tag, err = stringField(key, value); err != nil {
				return nil, err
			}
		case "status":
			if !allowStatus {
				return nil, &ValidationError{Kind: KindUnexpectedField, Field: key}
			}
			if p.Status, err = stringField(key, value); err != nil {
				return nil, err
			}
		case "priority":
			switch v := value.(type) {
			case nil:
			case json.Number:
				n, err := v.Int64()
				if err != nil {
					return nil, &ValidationError{Kind: KindType, Field: key}
				}
				num := int(n)
				p.Priority = &num
			default:
				return nil, &ValidationError{Kind: KindType, Field: key}
			}
		default:
			return nil, &ValidationError{Kind: KindUnexpectedField, Field: key}
		}
	}

	return p, nil
}

func stringField(key string, value interface{}) (*string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	default:
		return nil, fmt.Errorf("field '%s' must be a string", key)
	}
}

// ValidateCreatePayload applies the strict profile's creation rules:
// required non-empty bounded title, integer priority in [1,5], parseable
// due date that is not in the past.
func ValidateCreatePayload(p *TaskPayload, today Date) error {
	if p.Title == nil {
		return &ValidationError{Kind: KindRequired, Field: "title"}
	}
	if *p.Title == "" {
		return &ValidationError{Kind: KindEmpty, Field: "title"}
	}
	if utf8.RuneCountInString(*p.Title) > MaxTitleLength {
		return &ValidationError{Kind: KindLength, Field: "title"}
	}
	if p.Priority != nil && (*p.Priority < 1 || *p.Priority > 5) {
		return &ValidationError{Kind: KindRange, Field: "priority"}
	}
	if p.DueDate != nil {
		due, err := ParseDate(*p.DueDate)
		if err != nil {
			return &ValidationError{Kind: KindFormat, Field: "due_date"}
		}
		if due.Before(today) {
			return &ValidationError{Kind: KindPastDate, Field: "due_date"}
		}
	}
	return nil
}

// ValidateUpdatePayload checks only the fields the client provided. The
// past-due-date rule is a creation-time rule and is deliberately absent.
func ValidateUpdatePayload(p *TaskPayload) error {
	if p.Title != nil {
		if *p.Title == "" {
			return &ValidationError{Kind: KindEmpty, Field: "title"}
		}
		if utf8.RuneCountInString(*p.Title) > MaxTitleLength {
			return &ValidationError{Kind: KindLength, Field: "title"}
		}
	}
	if p.Priority != nil && (*p.Priority < 1 || *p.Priority > 5) {
		return &ValidationError{Kind: KindRange, Field: "priority"}
	}
	if p.DueDate != nil {
		if _, err := ParseDate(*p.DueDate); err != nil {
			return &ValidationError{Kind: KindFormat, Field: "due_date"}
		}
	}
	if p.Status != nil {
		switch TaskStatus(*p.Status) {
		case StatusPending, StatusCompleted:
		default:
			return &ValidationError{Kind: KindEnum, Field: "status"}
		}
	}
	return nil
}

// Validate applies the lenient profile: enum membership only. Titles are
// unconstrained and past due dates are allowed here.
func (tc TaskCreate) Validate() error {
	switch tc.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return &ValidationError{Kind: KindEnum, Field: "priority"}
	}
	if tc.Category != nil {
		switch *tc.Category {
		case CategoryWork, CategoryPersonal, CategoryStudy:
		default:
			return &ValidationError{Kind: KindEnum, Field: "category"}
		}
	}
	return nil
}
