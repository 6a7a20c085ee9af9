package medalcount

import "sort"

// Country is one row of the medal table. Records are immutable once fetched
// and replaced wholesale on every refresh.
type Country struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	GoldMedals   int    `json:"gold_medals"`
	SilverMedals int    `json:"silver_medals"`
	BronzeMedals int    `json:"bronze_medals"`
	TotalMedals  int    `json:"total_medals"`
	FlagURL      string `json:"flag_url"`
}

// sortCountries orders by gold desc, then total desc. The sort is stable so
// ties below that keep the upstream order.
func sortCountries(list []Country) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].GoldMedals != list[j].GoldMedals {
			return list[i].GoldMedals > list[j].GoldMedals
		}
		return list[i].TotalMedals > list[j].TotalMedals
	})
}

// findCountry returns the record with the given 3-letter code, or false.
func findCountry(list []Country, code string) (Country, bool) {
	for _, c := range list {
		if c.ID == code {
			return c, true
		}
	}
	return Country{}, false
}

// topN clips the list without copying past the cut.
func topN(list []Country, n int) []Country {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}

// placeholderCountries is the builtin Milano Cortina 2026 dataset used until
// live winter data exists. Counts are zero on purpose.
// TODO: replace with an ESPN winter-2026 scraper once medals are awarded.
func placeholderCountries() []Country {
	return []Country{
		{ID: "NOR", Name: "Norway", FlagURL: "https://flagcdn.com/w80/no.png"},
		{ID: "GER", Name: "Germany", FlagURL: "https://flagcdn.com/w80/de.png"},
		{ID: "USA", Name: "United States", FlagURL: "https://flagcdn.com/w80/us.png"},
		{ID: "CAN", Name: "Canada", FlagURL: "https://flagcdn.com/w80/ca.png"},
		{ID: "SWE", Name: "Sweden", FlagURL: "https://flagcdn.com/w80/se.png"},
		{ID: "SUI", Name: "Switzerland", FlagURL: "https://flagcdn.com/w80/ch.png"},
		{ID: "AUT", Name: "Austria", FlagURL: "https://flagcdn.com/w80/at.png"},
		{ID: "ITA", Name: "Italy", FlagURL: "https://flagcdn.com/w80/it.png"},
		{ID: "FRA", Name: "France", FlagURL: "https://flagcdn.com/w80/fr.png"},
		{ID: "NED", Name: "Netherlands", FlagURL: "https://flagcdn.com/w80/nl.png"},
	}
}
