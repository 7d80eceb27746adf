// Package extract recovers a best-guess identity from raw multi-pass OCR
// text. Input blocks are heavily duplicated and garbled; the extractor
// arbitrates between redundant pattern hits rather than trusting any single
// pass.
//
// The two fields use deliberately different policies. Registration numbers
// stop at the first hit across block order and pattern priority, because the
// patterns are ordered most-specific-first and a later, looser hit is more
// likely to be noise. Names are gathered exhaustively from every block and
// the longest validated candidate wins, because OCR tends to truncate names
// and a longer capture is a more complete one.
package extract

import (
	"regexp"
	"strings"
)

// Identity is the extracted (name, registration number) pair. Empty fields
// mean no acceptable candidate was found; the extractor never guesses.
type Identity struct {
	Name               string
	RegistrationNumber string
}

// Registration number patterns in priority order: explicit REG NO label,
// strict C/S format, any leading letter, then an O/0-tolerant variant for
// common OCR confusion.
var regPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)REG\.?\s*NO\.?\s*:?\s*([CS]\d{3,4}[-\s]?\d{2}[-\s]?\d{3,4}/\d{4})`),
	regexp.MustCompile(`\b([CS]\d{3,4}[-\s]?\d{2}[-\s]?\d{3,4}/\d{4})\b`),
	regexp.MustCompile(`([A-Z]\d{3,4}[-\s]?\d{2}[-\s]?\d{3,4}/\d{4})`),
	regexp.MustCompile(`(?i)([CS][O0]\d{2,3}[-\s]?[O0]\d[-\s]?[O0]\d{3,4}/\d{4})`),
}

// Name pattern families. Families 3 and 4 work line-by-line and are handled
// in code; these are the regex-anchored ones.
var (
	nameLabelPattern  = regexp.MustCompile(`(?i)NAME\s*:?\s*([A-Z][A-Z\s]{5,}?)(?:\n|REG|COURSE|DEPT|$)`)
	chipLinePattern   = regexp.MustCompile(`(?i)(\d{4}[\s\-.]*\d{4}[\s\-.]*\d{4}[\s\-.]*\d{4})\s*[\r\n]+\s*([A-Z][A-Z\s]{5,50}?)[\r\n]`)
	chipToRegPattern  = regexp.MustCompile(`(?i)\d{4}\s+\d{4}\s+\d{4}\s+\d{4}\s*[\r\n]+([\s\S]*?)REG`)
	aggressivePattern = regexp.MustCompile(`\b([A-Z]{3,}\s+[A-Z]{3,}(?:\s+[A-Z]{3,})?(?:\s+[A-Z]{3,})?)\b`)

	capsWord        = regexp.MustCompile(`^[A-Z]{3,}$`)
	capsWordAnyCase = regexp.MustCompile(`(?i)^[A-Z]{3,}$`)
	lineSplit       = regexp.MustCompile(`[\r\n]+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	nonLetterRun    = regexp.MustCompile(`[^A-Za-z\s]+`)
)

// excludeWords is institutional and document boilerplate that disqualifies a
// name candidate when present as a substring.
var excludeWords = []string{
	"DEDAN", "KIMATHI", "UNIVERSITY", "TECHNOLOGY", "STUDENT",
	"IDENTITY", "CARD", "FACULTY", "COURSE", "DEPARTMENT", "DEPT",
	"VALIDITY", "VALID", "THRU", "BACHELOR", "SCIENCE", "ACTUARIAL",
	"STATISTICS", "INFORMATION", "TECH", "BETTER", "LIFE", "THROUGH",
	"MONTHLY", "YEAR", "REGISTRATION", "NUMBER", "PHOTO", "NAME",
}

// Extract processes raw OCR text blocks and commits to a single best guess
// per field. Malformed input degrades to unset fields, never an error.
func Extract(rawTexts []string) Identity {
	return Identity{
		RegistrationNumber: extractRegistration(rawTexts),
		Name:               extractName(rawTexts),
	}
}

// extractRegistration scans blocks in input order, trying patterns in
// priority order within each block. The first match anywhere wins.
func extractRegistration(rawTexts []string) string {
	for _, text := range rawTexts {
		for _, pattern := range regPatterns {
			m := pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			return cleanRegistration(m[1])
		}
	}
	return ""
}

// cleanRegistration repairs common OCR damage: whitespace runs become the
// hyphen the card format uses, letter O becomes digit 0, and the whole
// string is uppercased.
func cleanRegistration(raw string) string {
	s := whitespaceRun.ReplaceAllString(raw, "-")
	s = strings.ToUpper(s)
	return strings.ReplaceAll(s, "O", "0")
}

// extractName applies all five pattern families to every block, collects the
// validated candidates into a dedup set, and picks the longest. Equal-length
// duplicates keep the first one gathered.
func extractName(rawTexts []string) string {
	seen := make(map[string]struct{})
	var candidates []string
	add := func(raw string) {
		name := cleanCandidate(raw)
		if !isValidName(name) {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		candidates = append(candidates, name)
	}

	for _, text := range rawTexts {
		// Family 1: explicit NAME label.
		for _, m := range nameLabelPattern.FindAllStringSubmatch(text, -1) {
			add(m[1])
		}

		// Family 2: all-caps line immediately after a chip card number.
		for _, m := range chipLinePattern.FindAllStringSubmatch(text, -1) {
			add(m[2])
		}

		// Family 3: standalone all-caps lines of 2-4 short tokens.
		for _, line := range lineSplit.Split(text, -1) {
			if ok, words := capsLine(line, capsWord); ok {
				add(strings.Join(words, " "))
			}
		}

		// Family 4: lines between the chip number and the REG marker.
		for _, m := range chipToRegPattern.FindAllStringSubmatch(text, -1) {
			for _, line := range lineSplit.Split(m[1], -1) {
				if ok, words := capsLine(line, capsWordAnyCase); ok {
					add(strings.Join(words, " "))
				}
			}
		}

		// Family 5: unanchored runs of 2-4 all-caps tokens anywhere.
		for _, m := range aggressivePattern.FindAllStringSubmatch(text, -1) {
			add(m[1])
		}
	}

	best := ""
	for _, name := range candidates {
		if len(name) > len(best) {
			best = name
		}
	}
	return best
}

// capsLine reports whether a line is 2-4 whitespace-separated tokens each
// matching the word pattern, returning the tokens.
func capsLine(line string, word *regexp.Regexp) (bool, []string) {
	words := strings.Fields(strings.TrimSpace(line))
	if len(words) < 2 || len(words) > 4 {
		return false, nil
	}
	for _, w := range words {
		if !word.MatchString(w) {
			return false, nil
		}
	}
	return true, words
}

// cleanCandidate reduces a raw capture to uppercase letters and single
// spaces.
func cleanCandidate(raw string) string {
	s := nonLetterRun.ReplaceAllString(raw, "")
	s = strings.ToUpper(s)
	return strings.Join(strings.Fields(s), " ")
}

// isValidName applies the acceptance rules to a cleaned candidate.
func isValidName(name string) bool {
	if len(name) < 6 {
		return false
	}
	for _, word := range excludeWords {
		if strings.Contains(name, word) {
			return false
		}
	}
	words := strings.Fields(name)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if len(w) < 3 || len(w) > 15 {
			return false
		}
	}
	return true
}
