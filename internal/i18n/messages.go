// Package i18n localizes the user-facing error strings of the roster API.
// Keys are DomainError codes; unknown codes fall back to the error's own
// message so the catalog never has to be exhaustive.
package i18n

import "golang.org/x/text/language"

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.French,
}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[string]string{
	language.English: {
		"INVALID_ADMIN_PASSWORD": "The admin password is incorrect.",
		"STORAGE_FAILURE":        "The change could not be saved. Please try again.",
		"NOT_FOUND":              "The requested record was not found.",
		"CONFLICT":               "The staff code is already in use.",
		"VALIDATION_FAILED":      "The submitted values are invalid.",
		"UNAUTHORIZED":           "Authentication required.",
		"FORBIDDEN":              "You are not allowed to perform this action.",
		"INTERNAL_ERROR":         "Something went wrong. Please try again later.",
	},
	language.French: {
		"INVALID_ADMIN_PASSWORD": "Le mot de passe administrateur est incorrect.",
		"STORAGE_FAILURE":        "La modification n'a pas pu être enregistrée. Veuillez réessayer.",
		"NOT_FOUND":              "L'enregistrement demandé est introuvable.",
		"CONFLICT":               "Le code employé est déjà utilisé.",
		"VALIDATION_FAILED":      "Les valeurs soumises sont invalides.",
		"UNAUTHORIZED":           "Authentification requise.",
		"FORBIDDEN":              "Vous n'êtes pas autorisé à effectuer cette action.",
		"INTERNAL_ERROR":         "Une erreur est survenue. Veuillez réessayer plus tard.",
	},
}

// Match resolves an Accept-Language header to a supported language.
func Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return supported[0]
	}
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	// MatchStrings may return a regional variant; collapse to the base
	// we actually keep catalog entries for.
	base, _ := tag.Base()
	for _, s := range supported {
		if sb, _ := s.Base(); sb == base {
			return s
		}
	}
	return supported[0]
}

// Message returns the localized text for an error code, or fallback when
// the code has no catalog entry.
func Message(tag language.Tag, code, fallback string) string {
	if msgs, ok := catalog[tag]; ok {
		if msg, ok := msgs[code]; ok {
			return msg
		}
	}
	if msgs, ok := catalog[supported[0]]; ok {
		if msg, ok := msgs[code]; ok {
			return msg
		}
	}
	return fallback
}
