package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DocumentStatus is the lifecycle state of a work product.
type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "draft"
	StatusInReview DocumentStatus = "in-review"
	StatusApproved DocumentStatus = "approved"
)

// DocumentSection is a generated, populated instance of a SectionDescriptor.
// Content may embed residual unresolved placeholders if binding failed.
type DocumentSection struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Order        int                `json:"order"`
	Content      string             `json:"content"`
	ContentType  ContentType        `json:"content_type"`
	Required     bool               `json:"required"`
	DescriptorID string             `json:"descriptor_id"`
	Metadata     map[string]any     `json:"metadata,omitempty"`
	Strategy     GenerationStrategy `json:"strategy"`
	Bindings     []DataBinding      `json:"bindings,omitempty"`
	Rules        []ValidationRule   `json:"rules,omitempty"`
	Prompt       string             `json:"prompt,omitempty"`
	Quality      float64            `json:"quality"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

// WordCount returns the whitespace-delimited token count of the section.
func (s DocumentSection) WordCount() int {
	return len(strings.Fields(s.Content))
}

// WorkProduct is the assembled document: all generated sections plus
// metadata. The sections list is append-during-generation only; edits
// after generation belong to the document editing surface, not here.
type WorkProduct struct {
	ID             string            `json:"id"`
	WorkspaceID    string            `json:"workspace_id"`
	Title          string            `json:"title"`
	DocumentType   DocumentType      `json:"document_type"`
	Status         DocumentStatus    `json:"status"`
	TemplateID     string            `json:"template_id"`
	Sections       []DocumentSection `json:"sections"`
	Metadata       map[string]any    `json:"metadata,omitempty"`
	Author         string            `json:"author"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Version        string            `json:"version"`
	VersionHistory []string          `json:"version_history,omitempty"`
	Collaborators  int               `json:"collaborators"`
	Comments       int               `json:"comments"`
}

// WordCount recomputes the total word count from current sections.
// Never cached: callers always see the live value.
func (w *WorkProduct) WordCount() int {
	total := 0
	for _, s := range w.Sections {
		total += s.WordCount()
	}
	return total
}

// ReadingTime returns the estimated reading time in minutes at 200 wpm,
// rounded up.
func (w *WorkProduct) ReadingTime() int {
	return int(math.Ceil(float64(w.WordCount()) / 200.0))
}

// SortSections orders sections by their Order field. The sort is stable so
// descriptors sharing an order value keep their original relative position.
func (w *WorkProduct) SortSections() {
	sort.SliceStable(w.Sections, func(i, j int) bool {
		return w.Sections[i].Order < w.Sections[j].Order
	})
}

// Stringify renders an arbitrary bound value for substitution into content.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// FormatMillions renders a monetary amount as a $M figure, e.g. "$50M".
func FormatMillions(v float64) string {
	return "$" + strconv.FormatFloat(v/1_000_000, 'f', -1, 64) + "M"
}
