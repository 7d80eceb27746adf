package matching

import "strings"

// Evidence rule weights. Rules within the same field group are mutually
// exclusive (exact beats containment beats similarity); the registration
// segment rules stack with everything else.
const (
	weightRegExact      = 80
	weightRegContains   = 50
	weightNameExact     = 70
	weightNameContains  = 40
	weightNameSimilar   = 30
	weightRegFirstPart  = 20
	weightRegThirdPart  = 15
	maxScore            = 100
	nameSimilarityFloor = 0.7
)

// Score computes the additive evidence score in [0,100] between a claimed
// lost identity and one found item's extracted identity. Pure function of
// its inputs.
func Score(claimed ClaimedIdentity, found ExtractedIdentity) int {
	score := 0
	score += scoreRegistration(claimed.RegistrationNumber, found.RegistrationNumber)
	score += scoreName(claimed.FullName, found.Name)
	score += scoreRegistrationSegments(claimed.RegistrationNumber, found.RegistrationNumber)

	if score > maxScore {
		score = maxScore
	}
	return score
}

func scoreRegistration(claimed, found string) int {
	if claimed == "" || found == "" {
		return 0
	}
	c, f := strings.ToLower(claimed), strings.ToLower(found)
	switch {
	case c == f:
		return weightRegExact
	case strings.Contains(f, c) || strings.Contains(c, f):
		return weightRegContains
	}
	return 0
}

func scoreName(claimed, found string) int {
	if claimed == "" || found == "" {
		return 0
	}
	c, f := NormalizeName(claimed), NormalizeName(found)
	switch {
	case c == f:
		return weightNameExact
	case strings.Contains(f, c) || strings.Contains(c, f):
		return weightNameContains
	case Similarity(f, c) > nameSimilarityFloor:
		return weightNameSimilar
	}
	return 0
}

// scoreRegistrationSegments rewards partial agreement on the slash-separated
// registration segments (cohort prefix and serial). These fire independently
// of the whole-string registration rules.
func scoreRegistrationSegments(claimed, found string) int {
	if claimed == "" || found == "" {
		return 0
	}
	cParts := strings.Split(claimed, "/")
	fParts := strings.Split(found, "/")

	score := 0
	if cParts[0] != "" && fParts[0] != "" && cParts[0] == fParts[0] {
		score += weightRegFirstPart
	}
	if len(cParts) > 2 && len(fParts) > 2 && cParts[2] != "" && cParts[2] == fParts[2] {
		score += weightRegThirdPart
	}
	return score
}
