package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// Sort and partition tokens understood by the backend.
const (
	BudgetHighest = "highest"
	BudgetLowest  = "lowest"

	CreatedLatest = "latest"
	CreatedOldest = "oldest"

	ProfileFilterProfiled    = "profiled"
	ProfileFilterNonProfiled = "non_profiled"
)

// CreatorFilters are the filters of the creators listing. Empty fields are
// not sent to the backend.
type CreatorFilters struct {
	Name          string
	Email         string
	Budget        string
	City          string
	CreatedAt     string
	ProfileFilter string
	Page          int
}

// DefaultCreatorFilters returns the filters of a fresh creators listing.
func DefaultCreatorFilters() CreatorFilters {
	return CreatorFilters{ProfileFilter: ProfileFilterProfiled, Page: 1}
}

// Normalize trims the text fields, drops unknown sort tokens and fixes the
// page to at least 1.
func (f CreatorFilters) Normalize() CreatorFilters {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.City = strings.TrimSpace(f.City)
	if f.Budget != BudgetHighest && f.Budget != BudgetLowest {
		f.Budget = ""
	}
	if f.CreatedAt != CreatedLatest && f.CreatedAt != CreatedOldest {
		f.CreatedAt = ""
	}
	if f.ProfileFilter != ProfileFilterProfiled && f.ProfileFilter != ProfileFilterNonProfiled {
		f.ProfileFilter = ProfileFilterProfiled
	}
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}

// Query returns exactly the non-empty filter fields as query parameters.
func (f CreatorFilters) Query() url.Values {
	q := url.Values{}
	setIf(q, "name", f.Name)
	setIf(q, "email", f.Email)
	setIf(q, "budget", f.Budget)
	setIf(q, "city", f.City)
	setIf(q, "createdAt", f.CreatedAt)
	setIf(q, "profileFilter", f.ProfileFilter)
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

// CreatorFiltersFromQuery reads creator filters from a dashboard URL query.
func CreatorFiltersFromQuery(q url.Values) CreatorFilters {
	f := CreatorFilters{
		Name:          q.Get("name"),
		Email:         q.Get("email"),
		Budget:        q.Get("budget"),
		City:          q.Get("city"),
		CreatedAt:     q.Get("createdAt"),
		ProfileFilter: q.Get("profileFilter"),
		Page:          atoiOr(q.Get("page"), 1),
	}
	return f.Normalize()
}

// BrandFilters are the filters of the brands listing.
type BrandFilters struct {
	CompanyName  string
	CompanyEmail string
	Page         int
}

// DefaultBrandFilters returns the filters of a fresh brands listing.
func DefaultBrandFilters() BrandFilters {
	return BrandFilters{Page: 1}
}

func (f BrandFilters) Normalize() BrandFilters {
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.CompanyEmail = strings.TrimSpace(f.CompanyEmail)
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}

// Query returns exactly the non-empty filter fields as query parameters.
func (f BrandFilters) Query() url.Values {
	q := url.Values{}
	setIf(q, "companyName", f.CompanyName)
	setIf(q, "companyEmail", f.CompanyEmail)
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

// BrandFiltersFromQuery reads brand filters from a dashboard URL query.
func BrandFiltersFromQuery(q url.Values) BrandFilters {
	f := BrandFilters{
		CompanyName:  q.Get("companyName"),
		CompanyEmail: q.Get("companyEmail"),
		Page:         atoiOr(q.Get("page"), 1),
	}
	return f.Normalize()
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
