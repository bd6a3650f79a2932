package services

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/customer-directory-api/internal/models"
)

// fallbackSectionTitle collects customers whose name is empty and therefore
// has no first letter to group under. It sorts ahead of the letter groups.
const fallbackSectionTitle = "#"

// DeriveSections turns the full customer set into the grouped view model the
// list screen renders. Pure function: no I/O, input slice is not modified.
//
// Customers are kept when the tab is All or their normalized role equals the
// tab, and when the query is blank or matches the name or normalized role
// case-insensitively. Survivors are grouped by the uppercased first character
// of their name, groups ordered by title, and names within a group ordered
// with an English collator (so "alice" sorts before "Bob").
func DeriveSections(customers []models.Customer, tab models.Tab, query string) []models.Section {
	needle := strings.ToLower(strings.TrimSpace(query))

	groups := make(map[string][]models.Customer)
	for _, customer := range customers {
		if !matchesTab(customer, tab) {
			continue
		}
		if !matchesQuery(customer, needle) {
			continue
		}
		title := sectionTitle(customer.Name)
		groups[title] = append(groups[title], customer)
	}

	titles := make([]string, 0, len(groups))
	for title := range groups {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	collator := collate.New(language.English)
	sections := make([]models.Section, 0, len(titles))
	for _, title := range titles {
		items := groups[title]
		sort.SliceStable(items, func(i, j int) bool {
			return collator.CompareString(items[i].Name, items[j].Name) < 0
		})
		sections = append(sections, models.Section{Title: title, Items: items})
	}
	return sections
}

func matchesTab(customer models.Customer, tab models.Tab) bool {
	if tab == models.TabAll || tab == "" {
		return true
	}
	return models.NormalizeRole(customer.Role) == string(tab)
}

func matchesQuery(customer models.Customer, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(customer.Name), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(models.NormalizeRole(customer.Role)), needle)
}

func sectionTitle(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return fallbackSectionTitle
	}
	return strings.ToUpper(string(runes[0]))
}
