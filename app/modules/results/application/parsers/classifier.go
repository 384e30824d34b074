package parsers

import (
	"fmt"
	"regexp"
	"strings"

	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
)

// DefaultKeywordSuffix is the game-name suffix that marks a result line.
const DefaultKeywordSuffix = "ordle"

const (
	dateSeparator   = ", "
	timeSeparator   = " - "
	authorSeparator = ": "
)

// Template holds the values substituted for segments a line does not carry.
// The default reads as "date, time - name: wordle".
type Template struct {
	Date    string
	Time    string
	Author  string
	Content string
}

// DefaultTemplate is the substitution used when a separator is missing.
var DefaultTemplate = Template{
	Date:    "date",
	Time:    "time",
	Author:  "name",
	Content: "wordle",
}

// String renders the template in chat-export form.
func (t Template) String() string {
	return t.Date + dateSeparator + t.Time + timeSeparator + t.Author + authorSeparator + t.Content
}

// Classifier detects game-result lines and splits them into segments.
type Classifier struct {
	keyword  *regexp.Regexp
	template Template
}

// NewClassifier builds a Classifier matching any word that ends in suffix.
// An empty suffix selects DefaultKeywordSuffix.
func NewClassifier(suffix string, template Template) (*Classifier, error) {
	if suffix == "" {
		suffix = DefaultKeywordSuffix
	}
	re, err := regexp.Compile(`\b\w+` + regexp.QuoteMeta(suffix) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("invalid keyword suffix %q: %w", suffix, err)
	}
	return &Classifier{keyword: re, template: template}, nil
}

// Classify reports whether line carries a game result and, if so, returns its
// segments. A missing separator replaces that segment and every later one with
// the template value, and marks each substitution in Fallbacks.
func (c *Classifier) Classify(lineNumber int, line string) (resultstypes.ClassifiedLine, bool) {
	line = strings.TrimRight(line, "\r\n")

	keyword := c.keyword.FindString(line)
	if keyword == "" {
		return resultstypes.ClassifiedLine{}, false
	}

	out := resultstypes.ClassifiedLine{
		LineNumber: lineNumber,
		IsResult:   true,
		Keyword:    keyword,
	}

	date, rest, ok := strings.Cut(line, dateSeparator)
	if !ok {
		c.fillFrom(&out, resultstypes.FallbackDate)
		return out, true
	}
	out.DateSegment = date

	timeOfDay, rest, ok := strings.Cut(rest, timeSeparator)
	if !ok {
		c.fillFrom(&out, resultstypes.FallbackTime)
		return out, true
	}
	out.TimeSegment = timeOfDay

	author, content, ok := strings.Cut(rest, authorSeparator)
	if !ok {
		c.fillFrom(&out, resultstypes.FallbackAuthor)
		return out, true
	}
	out.AuthorSegment = author
	out.ContentSegment = content

	return out, true
}

// fillFrom applies the template to the segment named by from and every segment
// after it.
func (c *Classifier) fillFrom(out *resultstypes.ClassifiedLine, from resultstypes.Fallback) {
	switch from {
	case resultstypes.FallbackDate:
		out.DateSegment = c.template.Date
		out.Fallbacks |= resultstypes.FallbackDate
		fallthrough
	case resultstypes.FallbackTime:
		out.TimeSegment = c.template.Time
		out.Fallbacks |= resultstypes.FallbackTime
		fallthrough
	case resultstypes.FallbackAuthor:
		out.AuthorSegment = c.template.Author
		out.Fallbacks |= resultstypes.FallbackAuthor
		out.ContentSegment = c.template.Content
		out.Fallbacks |= resultstypes.FallbackContent
	}
}
