package royale

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidTagChars lists characters allowed in tags.
const ValidTagChars = "0289CGJLPQRUVY"

// ValidateTag normalizes player or clan tag.
//
// Leading and trailing "#" are removed, tag is upper cased and letter "O" is replaced with zero.
func ValidateTag(tag string) (string, error) {
	t := strings.ReplaceAll(strings.ToUpper(strings.Trim(tag, "#")), "O", "0")

	if len(t) < 3 {
		return "", fmt.Errorf("%w: %q is too short", ErrInvalidTag, tag)
	}

	for _, r := range t {
		if !strings.ContainsRune(ValidTagChars, r) {
			return "", fmt.Errorf("%w: %q has unexpected character %q", ErrInvalidTag, tag, r)
		}
	}

	return t, nil
}

func validateTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: at least one tag expected", ErrInvalidArgument)
	}

	res := make([]string, 0, len(tags))

	for _, tag := range tags {
		t, err := ValidateTag(tag)
		if err != nil {
			return nil, err
		}

		res = append(res, t)
	}

	return res, nil
}

func validateToken(token string) error {
	if token == "" || strings.IndexFunc(token, unicode.IsSpace) >= 0 {
		return ErrInvalidToken
	}

	return nil
}
