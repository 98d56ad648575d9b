package core

import "strings"

// Filter returns the messages matching query by case-insensitive substring
// over text, sender name, media title, and link URLs. A blank query returns
// msgs unchanged.
func Filter(msgs []Message, query string) []Message {
	query = strings.TrimSpace(query)
	if query == "" {
		return msgs
	}
	q := strings.ToLower(query)

	var out []Message
	for _, m := range msgs {
		if matches(m, q) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m Message, q string) bool {
	if strings.Contains(strings.ToLower(m.Text), q) {
		return true
	}
	if strings.Contains(strings.ToLower(m.FromName), q) {
		return true
	}
	if m.MediaTitle != "" && strings.Contains(strings.ToLower(m.MediaTitle), q) {
		return true
	}
	for _, l := range m.Links {
		if strings.Contains(strings.ToLower(l), q) {
			return true
		}
	}
	return false
}
