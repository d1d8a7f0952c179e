package service

import (
	"context"
	"sort"
	"strings"
)

// KeywordSource is the raw-column fetch the aggregation runs over;
// satisfied by repository.PostRepository.
type KeywordSource interface {
	KeywordValues(ctx context.Context) ([]*string, error)
}

// KeywordService derives the distinct tag set across all posts for the
// tag-cloud UI. Recomputed on every call; the source set is small enough
// that caching would buy nothing.
type KeywordService struct {
	posts KeywordSource
}

func NewKeywordService(posts KeywordSource) *KeywordService {
	return &KeywordService{posts: posts}
}

// All returns the distinct, lower-cased, whitespace-trimmed tokens of
// every post's comma-separated keywords field, sorted for a stable
// response body.
func (s *KeywordService) All(ctx context.Context) ([]string, error) {
	values, err := s.posts.KeywordValues(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, value := range values {
		if value == nil {
			continue
		}
		for _, token := range strings.Split(*value, ",") {
			token = strings.ToLower(strings.TrimSpace(token))
			if token == "" {
				continue
			}
			seen[token] = struct{}{}
		}
	}

	keywords := make([]string, 0, len(seen))
	for token := range seen {
		keywords = append(keywords, token)
	}
	sort.Strings(keywords)
	return keywords, nil
}
