package extraction

import (
	"regexp"
	"strings"
)

// extraContextLimit caps how much raw resume text is carried along as
// additional interviewer context.
const extraContextLimit = 4000

// Suggestions holds the profile fields the extractor managed to guess.
// Nil fields mean nothing usable was found; callers decide what to do
// with partial results.
type Suggestions struct {
	FullName     *string
	Headline     *string
	CurrentRole  *string
	Company      *string
	Summary      *string
	ExtraContext *string
}

var (
	contactLine   = regexp.MustCompile(`(?i)@|https?://`)
	roleAtCompany = regexp.MustCompile(`(?i)^(.*?)(?: at | @ )(.*)$`)
	experienceHdr = regexp.MustCompile(`(?i)experience|work history|employment history`)
	summaryHdr    = regexp.MustCompile(`(?i)summary|profile`)
)

// ExtractProfile scans resume text and guesses profile fields. False
// positives and negatives are expected; the result is presented to the
// user as editable suggestions, never stored directly.
func ExtractProfile(text string) *Suggestions {
	lines := nonEmptyLines(text)

	if len(lines) == 0 {
		return &Suggestions{ExtraContext: ptr(truncate(text, extraContextLimit))}
	}

	// First line that looks like a name: 2-5 words, no email or URL.
	fullName := lines[0]
	nameIndex := 0
	for i, line := range lines {
		if contactLine.MatchString(line) {
			continue
		}
		words := len(strings.Fields(line))
		if words >= 2 && words <= 5 {
			fullName = line
			nameIndex = i
			break
		}
	}

	var headline, currentRole, company *string

	// Headline or top-of-resume current role: scan a few lines after the
	// name, skipping contact lines and long paragraphs. "Role at Company"
	// wins over a generic headline.
	for i := nameIndex + 1; i < len(lines) && i < nameIndex+6; i++ {
		line := lines[i]
		if contactLine.MatchString(line) {
			continue
		}
		if len(line) > 160 {
			continue
		}

		if m := roleAtCompany.FindStringSubmatch(line); m != nil {
			roleCandidate := strings.TrimSpace(m[1])
			companyCandidate := strings.TrimSpace(m[2])
			if roleCandidate != "" && companyCandidate != "" {
				currentRole = ptr(roleCandidate)
				company = ptr(companyCandidate)
				break
			}
		}
		headline = ptr(line)
		break
	}

	// If the top of the resume did not yield a role, look near the
	// experience section for a "Role at Company" pattern.
	experienceIdx := indexMatching(lines, experienceHdr)
	if currentRole == nil || company == nil {
		searchStart := nameIndex
		if experienceIdx > -1 {
			searchStart = experienceIdx
		}
		for _, line := range window(lines, searchStart, 20) {
			if m := roleAtCompany.FindStringSubmatch(line); m != nil {
				roleCandidate := strings.TrimSpace(m[1])
				companyCandidate := strings.TrimSpace(m[2])
				if roleCandidate != "" && companyCandidate != "" {
					if currentRole == nil {
						currentRole = ptr(roleCandidate)
					}
					if company == nil {
						company = ptr(companyCandidate)
					}
					break
				}
			}
		}
	}

	// Summary: text between a Summary/Profile heading and the experience
	// section, otherwise the first few non-contact lines after the name.
	var summary *string
	summaryIdx := indexMatching(lines, summaryHdr)
	switch {
	case summaryIdx > -1 && experienceIdx > summaryIdx:
		summary = ptr(strings.Join(lines[summaryIdx+1:experienceIdx], " "))
	case experienceIdx > nameIndex+1:
		summary = ptr(strings.Join(lines[nameIndex+1:experienceIdx], " "))
	default:
		end := nameIndex + 6
		if end > len(lines) {
			end = len(lines)
		}
		summary = ptr(strings.Join(lines[nameIndex+1:end], " "))
	}
	if summary != nil && strings.TrimSpace(*summary) == "" {
		summary = nil
	}

	return &Suggestions{
		FullName:     ptr(fullName),
		Headline:     headline,
		CurrentRole:  currentRole,
		Company:      company,
		Summary:      summary,
		ExtraContext: ptr(truncate(text, extraContextLimit)),
	}
}

// indexMatching returns the index of the first line matching re, or -1.
func indexMatching(lines []string, re *regexp.Regexp) int {
	for i, line := range lines {
		if re.MatchString(line) {
			return i
		}
	}
	return -1
}

// window returns up to n lines starting at from.
func window(lines []string, from, n int) []string {
	if from < 0 {
		from = 0
	}
	if from >= len(lines) {
		return nil
	}
	end := from + n
	if end > len(lines) {
		end = len(lines)
	}
	return lines[from:end]
}

func ptr(s string) *string {
	return &s
}
