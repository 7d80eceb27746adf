// Package lostfound owns the persistent records of the reunite workflow:
// student profiles, reported lost IDs, and uploaded found IDs. Records live
// in the document storage collaborator; this package maps them to and from
// typed models.
package lostfound

import "time"

// Document field names for the foundItems collection.
const (
	FieldExtractedName      = "extractedName"
	FieldExtractedAdmission = "extractedAdmission"
	FieldMatched            = "matched"
	FieldMatchedWith        = "matchedWith"
	FieldMatchedAt          = "matchedAt"
	FieldMatchedBy          = "matchedBy"
)

// Document field names for the lostItems collection.
const (
	FieldRegistrationNumber = "registrationNumber"
	FieldStudentID          = "studentId"
	FieldFound              = "found"
	FieldFoundAt            = "foundAt"
)

// Document field names for the students collection.
const (
	FieldRegNumber = "regNumber"
	FieldFullName  = "fullName"
	FieldHasLostID = "hasLostID"
	FieldIDFound   = "idFound"
	FieldIDFoundAt = "idFoundAt"
)

// TimeFormat is how timestamps are serialized into documents.
const TimeFormat = time.RFC3339

// FoundItem is an uploaded found ID card. Created with Matched=false;
// transitions to Matched=true exactly once, atomically with the paired
// LostItem and Student updates. Invariant: Matched implies MatchedWith and
// MatchedAt are set.
type FoundItem struct {
	ID                 string
	ExtractedName      string
	ExtractedAdmission string
	Matched            bool
	MatchedWith        string
	MatchedAt          time.Time
	MatchedBy          string

	FinderName      string
	FinderPhone     string
	LocationFound   string
	AdditionalNotes string
	UploadDate      time.Time
}

// LostItem is a student's report of a lost ID. Invariant: Found implies
// MatchedWith is set.
type LostItem struct {
	ID                 string
	RegistrationNumber string
	StudentID          string
	Found              bool
	FoundAt            time.Time
	MatchedWith        string
}

// Student is a registered student profile.
type Student struct {
	ID        string
	RegNumber string
	FullName  string
	HasLostID bool
	IDFound   bool
	IDFoundAt time.Time
}

// Document mapping. Timestamps serialize as RFC3339 strings and absent
// fields as empty strings, mirroring how the records are merge-updated.

func (f FoundItem) ToDocument() map[string]any {
	return map[string]any{
		FieldExtractedName:      f.ExtractedName,
		FieldExtractedAdmission: f.ExtractedAdmission,
		FieldMatched:            f.Matched,
		FieldMatchedWith:        f.MatchedWith,
		FieldMatchedAt:          formatTime(f.MatchedAt),
		FieldMatchedBy:          f.MatchedBy,
		"finderName":            f.FinderName,
		"finderPhone":           f.FinderPhone,
		"locationFound":         f.LocationFound,
		"additionalNotes":       f.AdditionalNotes,
		"uploadDate":            formatTime(f.UploadDate),
	}
}

func FoundItemFromDocument(doc map[string]any) FoundItem {
	return FoundItem{
		ID:                 docString(doc, "id"),
		ExtractedName:      docString(doc, FieldExtractedName),
		ExtractedAdmission: docString(doc, FieldExtractedAdmission),
		Matched:            docBool(doc, FieldMatched),
		MatchedWith:        docString(doc, FieldMatchedWith),
		MatchedAt:          docTime(doc, FieldMatchedAt),
		MatchedBy:          docString(doc, FieldMatchedBy),
		FinderName:         docString(doc, "finderName"),
		FinderPhone:        docString(doc, "finderPhone"),
		LocationFound:      docString(doc, "locationFound"),
		AdditionalNotes:    docString(doc, "additionalNotes"),
		UploadDate:         docTime(doc, "uploadDate"),
	}
}

func (l LostItem) ToDocument() map[string]any {
	return map[string]any{
		FieldRegistrationNumber: l.RegistrationNumber,
		FieldStudentID:          l.StudentID,
		FieldFound:              l.Found,
		FieldFoundAt:            formatTime(l.FoundAt),
		FieldMatchedWith:        l.MatchedWith,
	}
}

func LostItemFromDocument(doc map[string]any) LostItem {
	return LostItem{
		ID:                 docString(doc, "id"),
		RegistrationNumber: docString(doc, FieldRegistrationNumber),
		StudentID:          docString(doc, FieldStudentID),
		Found:              docBool(doc, FieldFound),
		FoundAt:            docTime(doc, FieldFoundAt),
		MatchedWith:        docString(doc, FieldMatchedWith),
	}
}

func (s Student) ToDocument() map[string]any {
	return map[string]any{
		FieldRegNumber: s.RegNumber,
		FieldFullName:  s.FullName,
		FieldHasLostID: s.HasLostID,
		FieldIDFound:   s.IDFound,
		FieldIDFoundAt: formatTime(s.IDFoundAt),
	}
}

func StudentFromDocument(doc map[string]any) Student {
	return Student{
		ID:        docString(doc, "id"),
		RegNumber: docString(doc, FieldRegNumber),
		FullName:  docString(doc, FieldFullName),
		HasLostID: docBool(doc, FieldHasLostID),
		IDFound:   docBool(doc, FieldIDFound),
		IDFoundAt: docTime(doc, FieldIDFoundAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeFormat)
}

func docString(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docBool(doc map[string]any, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

func docTime(doc map[string]any, key string) time.Time {
	s, _ := doc[key].(string)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
