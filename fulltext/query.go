package fulltext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

type queryKind int

const (
	kindWords queryKind = iota
	kindPhrase
	kindRegexp
)

type parsedQuery struct {
	kind queryKind
	text string
}

func parseQuery(raw string) parsedQuery {
	raw = strings.TrimSpace(raw)
	if len(raw) > 2 {
		switch {
		case strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/"):
			return parsedQuery{kind: kindRegexp, text: raw[1 : len(raw)-1]}
		case strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`):
			return parsedQuery{kind: kindPhrase, text: raw[1 : len(raw)-1]}
		}
	}
	return parsedQuery{kind: kindWords, text: raw}
}

func (q parsedQuery) bleveQuery() query.Query {
	switch q.kind {
	case kindRegexp:
		return bleve.NewRegexpQuery(q.text)
	case kindPhrase:
		return bleve.NewMatchPhraseQuery(q.text)
	}
	return bleve.NewMatchQuery(q.text)
}

// lineMatcher returns the case-insensitive predicate used to pick lines out
// of a hit document.
func (q parsedQuery) lineMatcher() (func(string) bool, error) {
	switch q.kind {
	case kindRegexp:
		re, err := regexp.Compile("(?i)" + q.text)
		if err != nil {
			return nil, fmt.Errorf("invalid regular expression %q: %w", q.text, err)
		}
		return re.MatchString, nil
	case kindPhrase:
		phrase := strings.ToLower(q.text)
		return func(line string) bool {
			return strings.Contains(strings.ToLower(line), phrase)
		}, nil
	}

	words := strings.Fields(strings.ToLower(q.text))
	return func(line string) bool {
		lower := strings.ToLower(line)
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}, nil
}
