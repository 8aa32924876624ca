package apps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultCategory is assigned to records that arrive without categories.
const DefaultCategory = "other"

type App struct {
	ID          AppID      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image,omitempty"`
	UpdateDate  string     `json:"updatedate"`
	Categories  Categories `json:"categories"`
}

// wireApp mirrors App with every text field decoded leniently. Sheet
// cells keep whatever type the spreadsheet inferred, so a date column
// can arrive as epoch milliseconds and a name as a number.
type wireApp struct {
	ID          AppID      `json:"id"`
	Name        scalar     `json:"name"`
	Description scalar     `json:"description"`
	Image       scalar     `json:"image"`
	UpdateDate  scalar     `json:"updatedate"`
	Categories  Categories `json:"categories"`
}

func (a *App) UnmarshalJSON(data []byte) error {
	var w wireApp
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*a = App{
		ID:          w.ID,
		Name:        string(w.Name),
		Description: string(w.Description),
		Image:       string(w.Image),
		UpdateDate:  string(w.UpdateDate),
		Categories:  w.Categories,
	}
	return nil
}

// scalar is a JSON value read as text. Strings are unquoted, null is
// empty and anything else keeps its literal encoding.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = scalar(str)
	default:
		*s = scalar(data)
	}
	return nil
}

// Response is the envelope returned by the apps endpoint.
type Response struct {
	Success bool   `json:"success"`
	Data    []App  `json:"data"`
	Error   string `json:"error,omitempty"`
}

// AppID is the record identifier. The sheet backend emits it either as a
// JSON number or as a string, so both are accepted and kept verbatim.
type AppID string

func (id *AppID) UnmarshalJSON(data []byte) error {
	var v scalar
	if err := v.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("decoding id: %w", err)
	}
	*id = AppID(strings.TrimSpace(string(v)))
	return nil
}

func (id AppID) String() string { return string(id) }

// Int returns the numeric value of the id using parseInt rules: optional
// sign followed by leading decimal digits. Anything else yields 0.
func (id AppID) Int() int64 {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return 0
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	var n int64
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int64(r-'0')
		digits++
		if digits > 18 {
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

// Categories is the category token list of a record. On the wire it is
// absent, a single comma-delimited string, or an array of strings.
type Categories []string

func (c *Categories) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding categories: %w", err)
		}
		*c = splitCategories(s)
	case '[':
		var raw []scalar
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decoding categories: %w", err)
		}
		out := make(Categories, 0, len(raw))
		for _, r := range raw {
			if tok := strings.TrimSpace(string(r)); tok != "" {
				out = append(out, tok)
			}
		}
		*c = out
	default:
		// Numbers and booleans show up when a sheet cell is mistyped.
		*c = splitCategories(string(data))
	}
	return nil
}

// Primary returns the first category token, or DefaultCategory.
func (c Categories) Primary() string {
	if len(c) == 0 {
		return DefaultCategory
	}
	return c[0]
}

func splitCategories(s string) Categories {
	var out Categories
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Normalize fills in missing categories. It mutates and returns apps.
func Normalize(apps []App) []App {
	for i := range apps {
		if len(apps[i].Categories) == 0 {
			apps[i].Categories = Categories{DefaultCategory}
		}
	}
	return apps
}

// FirstLine returns the first line of the description, trimmed.
func (a App) FirstLine() string {
	line, _, _ := strings.Cut(a.Description, "\n")
	return strings.TrimSpace(strings.TrimSuffix(line, "\r"))
}
