package connector

import (
	"fmt"
	"strings"

	"github.com/crm/backend/internal/domain/connector"
)

// Normalize maps provider-specific raw records into the common result
// shape. It is a pure function: no I/O, no side effects, and identical
// input always yields identical output. Nil or empty input yields an
// empty slice.
func Normalize(provider connector.Provider, raw []connector.RawRecord) []connector.NormalizedResult {
	results := make([]connector.NormalizedResult, 0, len(raw))
	for _, record := range raw {
		if record == nil {
			continue
		}
		var result connector.NormalizedResult
		switch provider {
		case connector.ProviderApollo:
			result = normalizeApollo(record)
		case connector.ProviderGooglePlaces:
			result = normalizeGooglePlaces(record)
		case connector.ProviderYelp:
			result = normalizeYelp(record)
		case connector.ProviderHubSpot:
			result = normalizeHubSpot(record)
		case connector.ProviderSalesforce:
			result = normalizeSalesforce(record)
		default:
			// Unknown providers pass through with only the source tag
			result = normalizePassthrough(record)
		}
		result.Source = provider
		result.RawData = record
		results = append(results, result)
	}
	return results
}

func normalizeApollo(r connector.RawRecord) connector.NormalizedResult {
	name := str(r, "name")
	if name == "" {
		name = joinNonEmpty(" ", str(r, "first_name"), str(r, "last_name"))
	}
	company := str(r, "organization_name")
	if company == "" {
		if org, ok := r["organization"].(map[string]any); ok {
			company = strOf(org["name"])
		}
	}
	return connector.NormalizedResult{
		ID:      str(r, "id"),
		Name:    name,
		Email:   str(r, "email"),
		Company: company,
		Phone:   str(r, "phone_number"),
		Website: str(r, "linkedin_url"),
	}
}

func normalizeGooglePlaces(r connector.RawRecord) connector.NormalizedResult {
	location := ""
	if geo, ok := r["geometry"].(map[string]any); ok {
		if loc, ok := geo["location"].(map[string]any); ok {
			location = fmt.Sprintf("%v,%v", loc["lat"], loc["lng"])
		}
	}
	category := ""
	if types, ok := r["types"].([]any); ok && len(types) > 0 {
		category = strOf(types[0])
	}
	return connector.NormalizedResult{
		ID:       str(r, "place_id"),
		Name:     str(r, "name"),
		Address:  str(r, "formatted_address"),
		Location: location,
		Phone:    str(r, "formatted_phone_number"),
		Website:  str(r, "website"),
		Category: category,
	}
}

func normalizeYelp(r connector.RawRecord) connector.NormalizedResult {
	address := ""
	location := ""
	if loc, ok := r["location"].(map[string]any); ok {
		address = strOf(loc["address1"])
		location = joinNonEmpty(", ", strOf(loc["city"]), strOf(loc["state"]))
	}
	if location == "" {
		if coords, ok := r["coordinates"].(map[string]any); ok {
			location = fmt.Sprintf("%v,%v", coords["latitude"], coords["longitude"])
		}
	}
	category := ""
	if cats, ok := r["categories"].([]any); ok && len(cats) > 0 {
		if cat, ok := cats[0].(map[string]any); ok {
			category = strOf(cat["title"])
		}
	}
	return connector.NormalizedResult{
		ID:       str(r, "id"),
		Name:     str(r, "name"),
		Address:  address,
		Location: location,
		Phone:    str(r, "display_phone"),
		Website:  str(r, "url"),
		Category: category,
	}
}

func normalizeHubSpot(r connector.RawRecord) connector.NormalizedResult {
	props := r
	if p, ok := r["properties"].(map[string]any); ok {
		props = p
	}
	name := joinNonEmpty(" ", strOf(props["firstname"]), strOf(props["lastname"]))
	if name == "" {
		name = strOf(props["company"])
	}
	return connector.NormalizedResult{
		ID:      str(r, "id"),
		Name:    name,
		Email:   strOf(props["email"]),
		Company: strOf(props["company"]),
		Phone:   strOf(props["phone"]),
		Website: strOf(props["website"]),
		Location: joinNonEmpty(", ",
			strOf(props["city"]), strOf(props["state"])),
	}
}

func normalizeSalesforce(r connector.RawRecord) connector.NormalizedResult {
	name := str(r, "Name")
	if name == "" {
		name = joinNonEmpty(" ", str(r, "FirstName"), str(r, "LastName"))
	}
	return connector.NormalizedResult{
		ID:      str(r, "Id"),
		Name:    name,
		Email:   str(r, "Email"),
		Company: str(r, "Company"),
		Phone:   str(r, "Phone"),
		Website: str(r, "Website"),
		Location: joinNonEmpty(", ",
			str(r, "MailingCity"), str(r, "MailingState")),
	}
}

func normalizePassthrough(r connector.RawRecord) connector.NormalizedResult {
	return connector.NormalizedResult{
		ID:       str(r, "id"),
		Name:     str(r, "name"),
		Email:    str(r, "email"),
		Company:  str(r, "company"),
		Location: str(r, "location"),
		Address:  str(r, "address"),
		Phone:    str(r, "phone"),
		Website:  str(r, "website"),
		Category: str(r, "category"),
	}
}

func str(r connector.RawRecord, key string) string {
	return strOf(r[key])
}

func strOf(v any) string {
	s, _ := v.(string)
	return s
}

func joinNonEmpty(sep string, parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}
