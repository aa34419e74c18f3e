package content

import "strings"

// Enumerations are closed sets of authored string values. Any value the
// store returns that is not in the set maps to the Unknown variant of its
// type; the raw string is kept on the owning view model where display needs it.

type EventCategory string

const (
	EventCategorySummit      EventCategory = "summit"
	EventCategoryHackathon   EventCategory = "hackathon"
	EventCategoryWorkshop    EventCategory = "workshop"
	EventCategoryCompetition EventCategory = "competition"
	EventCategorySeminar     EventCategory = "seminar"
	EventCategoryNetworking  EventCategory = "networking"
	EventCategoryUnknown     EventCategory = "unknown"
)

var eventCategories = []EventCategory{
	EventCategorySummit, EventCategoryHackathon, EventCategoryWorkshop,
	EventCategoryCompetition, EventCategorySeminar, EventCategoryNetworking,
}

// ParseEventCategory maps s to a known event category or EventCategoryUnknown.
func ParseEventCategory(s string) EventCategory {
	return parseEnum(s, eventCategories, EventCategoryUnknown)
}

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusUnknown   EventStatus = "unknown"
)

var eventStatuses = []EventStatus{EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted}

// ParseEventStatus maps s to a known event status or EventStatusUnknown.
func ParseEventStatus(s string) EventStatus {
	return parseEnum(s, eventStatuses, EventStatusUnknown)
}

// SponsorCategory is a sponsorship tier.
type SponsorCategory string

const (
	SponsorCategoryTitle     SponsorCategory = "title"
	SponsorCategoryPlatinum  SponsorCategory = "platinum"
	SponsorCategoryGold      SponsorCategory = "gold"
	SponsorCategorySilver    SponsorCategory = "silver"
	SponsorCategoryBronze    SponsorCategory = "bronze"
	SponsorCategoryKnowledge SponsorCategory = "knowledge"
	SponsorCategoryMedia     SponsorCategory = "media"
	SponsorCategoryCommunity SponsorCategory = "community"
	SponsorCategoryUnknown   SponsorCategory = "unknown"
)

// SponsorCategoryPriority is the display order of sponsor tiers.
var SponsorCategoryPriority = []SponsorCategory{
	SponsorCategoryTitle, SponsorCategoryPlatinum, SponsorCategoryGold,
	SponsorCategorySilver, SponsorCategoryBronze, SponsorCategoryKnowledge,
	SponsorCategoryMedia, SponsorCategoryCommunity,
}

// ParseSponsorCategory maps s to a known sponsor tier or SponsorCategoryUnknown.
func ParseSponsorCategory(s string) SponsorCategory {
	return parseEnum(s, SponsorCategoryPriority, SponsorCategoryUnknown)
}

type MemberType string

const (
	MemberTypeCurrent MemberType = "current"
	MemberTypePast    MemberType = "past"
	MemberTypeAdvisor MemberType = "advisor"
	MemberTypeUnknown MemberType = "unknown"
)

// MemberTypes lists the roster partitions in display order.
var MemberTypes = []MemberType{MemberTypeCurrent, MemberTypePast, MemberTypeAdvisor}

// ParseMemberType maps s to a known member type or MemberTypeUnknown.
func ParseMemberType(s string) MemberType {
	return parseEnum(s, MemberTypes, MemberTypeUnknown)
}

type Department string

const (
	DepartmentComputer    Department = "Computer Engineering"
	DepartmentIT          Department = "Information Technology"
	DepartmentEXTC        Department = "Electronics & Telecommunication"
	DepartmentElectronics Department = "Electronics Engineering"
	DepartmentMechanical  Department = "Mechanical Engineering"
	DepartmentCivil       Department = "Civil Engineering"
	DepartmentUnknown     Department = "unknown"
)

var departments = []Department{
	DepartmentComputer, DepartmentIT, DepartmentEXTC,
	DepartmentElectronics, DepartmentMechanical, DepartmentCivil,
}

// ParseDepartment maps s to a known department or DepartmentUnknown.
func ParseDepartment(s string) Department {
	return parseEnum(s, departments, DepartmentUnknown)
}

type AcademicYear string

const (
	YearFirst   AcademicYear = "First Year"
	YearSecond  AcademicYear = "Second Year"
	YearThird   AcademicYear = "Third Year"
	YearFinal   AcademicYear = "Final Year"
	YearFaculty AcademicYear = "Faculty"
	YearAlumni  AcademicYear = "Alumni"
	YearUnknown AcademicYear = "unknown"
)

var academicYears = []AcademicYear{YearFirst, YearSecond, YearThird, YearFinal, YearFaculty, YearAlumni}

// ParseAcademicYear maps s to a known academic year, YearUnknown, or "" when unset.
func ParseAcademicYear(s string) AcademicYear {
	if s == "" {
		return ""
	}
	return parseEnum(s, academicYears, YearUnknown)
}

type TestimonialCategory string

const (
	TestimonialCategorySpeaker TestimonialCategory = "speaker"
	TestimonialCategoryAlumni  TestimonialCategory = "alumni"
	TestimonialCategoryStudent TestimonialCategory = "student"
	TestimonialCategoryExpert  TestimonialCategory = "expert"
	TestimonialCategoryMentor  TestimonialCategory = "mentor"
	TestimonialCategoryUnknown TestimonialCategory = "unknown"
)

var testimonialCategories = []TestimonialCategory{
	TestimonialCategorySpeaker, TestimonialCategoryAlumni, TestimonialCategoryStudent,
	TestimonialCategoryExpert, TestimonialCategoryMentor,
}

// ParseTestimonialCategory maps s to a known category, the Unknown variant, or "" when unset.
func ParseTestimonialCategory(s string) TestimonialCategory {
	if s == "" {
		return ""
	}
	return parseEnum(s, testimonialCategories, TestimonialCategoryUnknown)
}

type PostCategory string

const (
	PostCategoryEvent       PostCategory = "event"
	PostCategoryAchievement PostCategory = "achievement"
	PostCategoryWorkshop    PostCategory = "workshop"
	PostCategoryAlumni      PostCategory = "alumni"
	PostCategoryGeneral     PostCategory = "general"
	PostCategoryCompetition PostCategory = "competition"
	PostCategoryUnknown     PostCategory = "unknown"
)

// PostCategories lists the known post categories.
var PostCategories = []PostCategory{
	PostCategoryEvent, PostCategoryAchievement, PostCategoryWorkshop,
	PostCategoryAlumni, PostCategoryGeneral, PostCategoryCompetition,
}

// ParsePostCategory maps s to a known post category or PostCategoryUnknown.
func ParsePostCategory(s string) PostCategory {
	return parseEnum(s, PostCategories, PostCategoryUnknown)
}

type SubmissionType string

const (
	SubmissionGeneral     SubmissionType = "general"
	SubmissionEvent       SubmissionType = "event"
	SubmissionPartnership SubmissionType = "partnership"
	SubmissionMedia       SubmissionType = "media"
	SubmissionAlumni      SubmissionType = "alumni"
	SubmissionStudent     SubmissionType = "student"
	SubmissionUnknown     SubmissionType = "unknown"
)

// SubmissionTypes lists the contact form inquiry types.
var SubmissionTypes = []SubmissionType{
	SubmissionGeneral, SubmissionEvent, SubmissionPartnership,
	SubmissionMedia, SubmissionAlumni, SubmissionStudent,
}

// ParseSubmissionType maps s to a known inquiry type or SubmissionUnknown.
func ParseSubmissionType(s string) SubmissionType {
	return parseEnum(s, SubmissionTypes, SubmissionUnknown)
}

type SubmissionStatus string

const (
	SubmissionStatusNew        SubmissionStatus = "new"
	SubmissionStatusInProgress SubmissionStatus = "in_progress"
	SubmissionStatusResponded  SubmissionStatus = "responded"
	SubmissionStatusResolved   SubmissionStatus = "resolved"
	SubmissionStatusArchived   SubmissionStatus = "archived"
	SubmissionStatusUnknown    SubmissionStatus = "unknown"
)

var submissionStatuses = []SubmissionStatus{
	SubmissionStatusNew, SubmissionStatusInProgress, SubmissionStatusResponded,
	SubmissionStatusResolved, SubmissionStatusArchived,
}

// ParseSubmissionStatus maps s to a known status or SubmissionStatusUnknown.
func ParseSubmissionStatus(s string) SubmissionStatus {
	return parseEnum(s, submissionStatuses, SubmissionStatusUnknown)
}

func parseEnum[T ~string](s string, known []T, unknown T) T {
	v := T(strings.TrimSpace(s))
	for _, k := range known {
		if k == v {
			return k
		}
	}
	return unknown
}
