package domain

import "slices"

var HouseholdTypes = []string{"single", "couple", "family_with_children", "single_parent", "senior", "other"}

var IncomeBrackets = []string{"under_15k", "15k_30k", "30k_50k", "50k_75k", "over_75k"}

// NeedCategories doubles as the program category vocabulary.
var NeedCategories = []string{
	"food", "healthcare", "housing", "utilities", "childcare", "education",
	"employment", "cash_assistance", "disability", "veterans", "tax_credits", "transportation",
}

var Languages = []string{"en", "es", "zh", "vi", "ko", "tl", "ar", "ru", "fr", "ht"}

var AudienceTiers = []string{"general", "veteran", "senior", "student", "disability", "family"}

var TodoCategories = []string{TodoUrgent, TodoImportant, TodoRoutine}

var ApplicationStatuses = []string{StatusStarted, StatusSubmitted, StatusApproved, StatusDenied}

func IsValidStatus(s string) bool { return slices.Contains(ApplicationStatuses, s) }

func IsValidTodoCategory(c string) bool { return slices.Contains(TodoCategories, c) }

func IsValidNeed(n string) bool { return slices.Contains(NeedCategories, n) }

func IsValidLanguage(l string) bool { return slices.Contains(Languages, l) }

func IsValidHouseholdType(h string) bool { return slices.Contains(HouseholdTypes, h) }

func IsValidIncomeBracket(b string) bool { return slices.Contains(IncomeBrackets, b) }

// CanTransition reports whether an application may move from one status to another.
// Approval and denial are final.
func CanTransition(from, to string) bool {
	switch from {
	case StatusStarted:
		return to == StatusSubmitted
	case StatusSubmitted:
		return to == StatusApproved || to == StatusDenied
	}
	return false
}
