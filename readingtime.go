package main

import (
	"fmt"
	"strings"
)

const wordsPerMinute = 200

// ReadingTime is the estimate shown next to a post ("2 min read").
type ReadingTime struct {
	Text    string
	Minutes int
	Words   int
}

// estimateReadingTime estimates from plain text at 200 words per minute,
// rounding the minute count up. The excerpt, not the body, is the input
// throughout the site.
func estimateReadingTime(text string) ReadingTime {
	words := len(strings.Fields(text))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return ReadingTime{
		Text:    fmt.Sprintf("%d min read", minutes),
		Minutes: minutes,
		Words:   words,
	}
}

// excerptReadingTime is the display form used on posts: an empty excerpt
// yields an empty string, not a "0 min read".
func excerptReadingTime(excerpt string) string {
	if excerpt == "" {
		return ""
	}
	return estimateReadingTime(excerpt).Text
}
