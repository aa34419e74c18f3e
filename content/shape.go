package content

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCase = cases.Title(language.English)

// CategoryLabel returns the display label of a raw category value.
func CategoryLabel(raw string) string {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "_", " "))
	if raw == "" {
		return "Other"
	}
	return titleCase.String(raw)
}

// compareDisplayOrder orders by display order ascending with missing orders
// last, then by name.
func compareDisplayOrder(ao, bo *int, an, bn string) int {
	switch {
	case ao != nil && bo == nil:
		return -1
	case ao == nil && bo != nil:
		return 1
	case ao != nil && bo != nil && *ao != *bo:
		return cmp.Compare(*ao, *bo)
	}
	return cmp.Compare(an, bn)
}

// GroupSponsors partitions sponsors into tiers. Known tiers come first in
// SponsorCategoryPriority order; unrecognised categories follow in the order
// they are first seen. Within a tier sponsors are sorted by display order,
// name and ID, so the result does not depend on input order among known tiers.
func GroupSponsors(sponsors []Sponsor) []SponsorGroup {
	byKey := make(map[string][]Sponsor)
	var unknown []string
	for _, s := range sponsors {
		key := string(s.Category)
		if s.Category == SponsorCategoryUnknown {
			key = "?" + strings.TrimSpace(s.CategoryRaw)
			if _, seen := byKey[key]; !seen {
				unknown = append(unknown, key)
			}
		}
		byKey[key] = append(byKey[key], s)
	}

	groups := []SponsorGroup{}
	add := func(key string, cat SponsorCategory, label string) {
		members := byKey[key]
		if len(members) == 0 {
			return
		}
		members = slices.Clone(members)
		slices.SortStableFunc(members, func(a, b Sponsor) int {
			if c := compareDisplayOrder(a.Order, b.Order, a.Name, b.Name); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		groups = append(groups, SponsorGroup{Category: cat, Label: label, Sponsors: members})
	}
	for _, cat := range SponsorCategoryPriority {
		add(string(cat), cat, CategoryLabel(string(cat))+" Partners")
	}
	for _, key := range unknown {
		add(key, SponsorCategoryUnknown, CategoryLabel(strings.TrimPrefix(key, "?")))
	}
	return groups
}

// FlattenSponsorGroups returns the sponsors of groups in group order.
func FlattenSponsorGroups(groups []SponsorGroup) []Sponsor {
	out := []Sponsor{}
	for _, g := range groups {
		out = append(out, g.Sponsors...)
	}
	return out
}

// SortPostsByPublished sorts posts most recent first, in place.
func SortPostsByPublished(posts []Post) {
	slices.SortStableFunc(posts, func(a, b Post) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
}

// SortByDisplayOrder sorts members by display order then name, in place.
func SortByDisplayOrder(members []TeamMember) {
	slices.SortStableFunc(members, func(a, b TeamMember) int {
		return compareDisplayOrder(a.Order, b.Order, a.Name, b.Name)
	})
}

// PartitionByMemberType splits members into the roster partitions. Members
// with an unrecognised type are left out of every partition.
func PartitionByMemberType(members []TeamMember) Roster {
	r := Roster{Current: []TeamMember{}, Past: []TeamMember{}, Advisors: []TeamMember{}}
	for _, m := range members {
		switch m.MemberType {
		case MemberTypeCurrent:
			r.Current = append(r.Current, m)
		case MemberTypePast:
			r.Past = append(r.Past, m)
		case MemberTypeAdvisor:
			r.Advisors = append(r.Advisors, m)
		}
	}
	return r
}
