package domain

import "strings"

const (
	anonymousName = "Anonymous"
	noState       = "—"
)

// Comment is a user remark attached optionally to a state.
type Comment struct {
	Name    string   `json:"name"`
	Comment string   `json:"comment"`
	State   *string  `json:"state"`
	Tags    []string `json:"tags"`
}

// NewComment builds a submission from raw form values: the name falls back
// to "Anonymous", a blank state becomes null and tags are split on commas.
func NewComment(name, text, state, tags string) Comment {
	c := Comment{
		Name:    strings.TrimSpace(name),
		Comment: strings.TrimSpace(text),
		Tags:    ParseTags(tags),
	}
	if c.Name == "" {
		c.Name = anonymousName
	}
	if s := strings.TrimSpace(state); s != "" {
		c.State = &s
	}
	return c
}

// DisplayName returns the author or "Anonymous".
func (c Comment) DisplayName() string {
	if strings.TrimSpace(c.Name) == "" {
		return anonymousName
	}
	return c.Name
}

// DisplayState returns the state or a dash placeholder.
func (c Comment) DisplayState() string {
	if c.State == nil || *c.State == "" {
		return noState
	}
	return *c.State
}

// DisplayTags joins tags for list rendering; empty when there are none.
func (c Comment) DisplayTags() string {
	return strings.Join(c.Tags, ", ")
}

// ParseTags splits free text on commas, trims each part and drops empties.
// It never returns nil so the wire form is always a JSON array.
func ParseTags(text string) []string {
	tags := []string{}
	for _, part := range strings.Split(text, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
