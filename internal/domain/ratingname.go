package domain

import "strings"

// RatingArchiveSeparator is the reserved token between the tree path and the
// rating name of a rating archive entry. It may not appear in either part.
const RatingArchiveSeparator = "::"

// EncodeRatingArchive builds the name of a rating archive entry
func EncodeRatingArchive(fullTreePath, ratingFullName string) (string, error) {
	if strings.Contains(fullTreePath, RatingArchiveSeparator) {
		return "", &FormatError{Input: fullTreePath, Reason: "tree path contains reserved token " + RatingArchiveSeparator}
	}
	if strings.Contains(ratingFullName, RatingArchiveSeparator) {
		return "", &FormatError{Input: ratingFullName, Reason: "rating name contains reserved token " + RatingArchiveSeparator}
	}
	if strings.TrimSpace(ratingFullName) == "" {
		return "", &FormatError{Input: ratingFullName, Reason: "rating name is empty"}
	}
	return fullTreePath + RatingArchiveSeparator + ratingFullName, nil
}

// DecodeRatingArchive splits a rating archive name at the first separator.
// Dots and other characters in either part are left alone.
func DecodeRatingArchive(encoded string) (fullTreePath, ratingFullName string, err error) {
	idx := strings.Index(encoded, RatingArchiveSeparator)
	if idx < 0 {
		return "", "", &FormatError{Input: encoded, Reason: "missing " + RatingArchiveSeparator + " separator"}
	}
	return encoded[:idx], encoded[idx+len(RatingArchiveSeparator):], nil
}

// IsRatingArchiveName reports whether name looks like a rating archive entry
func IsRatingArchiveName(name string) bool {
	return strings.Contains(name, RatingArchiveSeparator)
}
