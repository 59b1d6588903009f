package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SourceType discriminates where a recipe came from.
type SourceType string

const (
	SourceTypeBook SourceType = "book"
	SourceTypeURL  SourceType = "url"
)

// Source records the origin of a recipe, either a cookbook reference
// or a web address.
type Source struct {
	Type      SourceType
	BookTitle string
	BookPage  string
	URL       string
}

// Validate checks the source against its variant.
func (s Source) Validate() error {
	switch s.Type {
	case SourceTypeBook:
		title := strings.TrimSpace(s.BookTitle)
		if title == "" {
			return ErrSourceBookTitleEmpty
		}
		if len([]rune(title)) > maxSourceTitleLength {
			return ErrSourceBookTitleTooLong
		}
		if len([]rune(s.BookPage)) > maxSourcePageLength {
			return ErrSourceBookPageTooLong
		}
	case SourceTypeURL:
		if strings.TrimSpace(s.URL) == "" {
			return ErrSourceURLEmpty
		}
		if len(s.URL) > maxSourceURLLength {
			return ErrSourceURLTooLong
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSourceType, s.Type)
	}
	return nil
}

type sourceJSON struct {
	Type      SourceType `json:"type"`
	BookTitle string     `json:"bookTitle,omitempty"`
	BookPage  string     `json:"bookPage,omitempty"`
	URL       string     `json:"url,omitempty"`
}

// MarshalJSON encodes only the fields of the active variant.
func (s Source) MarshalJSON() ([]byte, error) {
	out := sourceJSON{Type: s.Type}
	switch s.Type {
	case SourceTypeBook:
		out.BookTitle = s.BookTitle
		out.BookPage = s.BookPage
	case SourceTypeURL:
		out.URL = s.URL
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the discriminated form.
func (s *Source) UnmarshalJSON(data []byte) error {
	var in sourceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Type != SourceTypeBook && in.Type != SourceTypeURL {
		return fmt.Errorf("%w: %q", ErrUnknownSourceType, in.Type)
	}
	*s = Source{
		Type:      in.Type,
		BookTitle: in.BookTitle,
		BookPage:  in.BookPage,
		URL:       in.URL,
	}
	return nil
}

// ImageSource names how a recipe image was obtained.
type ImageSource string

const (
	ImageSourceUnsplash    ImageSource = "unsplash"
	ImageSourcePlaceholder ImageSource = "placeholder"
	ImageSourceCustom      ImageSource = "custom"
)
