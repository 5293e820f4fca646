package models

import "time"

// Media is a Strapi upload reference.
type Media struct {
	URL             string `json:"url"`
	AlternativeText string `json:"alternativeText,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
}

type Author struct {
	Name   string `json:"name"`
	Avatar *Media `json:"avatar,omitempty"`
}

type BlogPost struct {
	ID          int        `json:"id"`
	DocumentID  string     `json:"documentId,omitempty"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content,omitempty"`
	Cover       *Media     `json:"cover,omitempty"`
	Author      *Author    `json:"author,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// PageSection is one dynamic-zone block of a landing page. Fields beyond the
// component name are kept raw for the storefront renderer.
type PageSection map[string]any

type LandingPage struct {
	ID              int           `json:"id"`
	DocumentID      string        `json:"documentId,omitempty"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	MetaTitle       string        `json:"metaTitle,omitempty"`
	MetaDescription string        `json:"metaDescription,omitempty"`
	Sections        []PageSection `json:"sections,omitempty"`
}

type FAQ struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
	Order    int    `json:"order,omitempty"`
}

// EditorialContent is the long-form copy Strapi holds for a brand or product,
// keyed by the commerce handle.
type EditorialContent struct {
	ID          int    `json:"id"`
	Handle      string `json:"handle"`
	Headline    string `json:"headline,omitempty"`
	Description string `json:"description"`
	Banner      *Media `json:"banner,omitempty"`
}
