package models

// Team holds display names and logo asset for one NBA franchise
type Team struct {
	Abbrev string
	Name   string
	Short  string
	Logo   string
}

// TeamTable is an immutable lookup of NBA teams keyed by standard
// abbreviation. Built once at startup and injected where needed.
type TeamTable map[string]Team

// NBATeams returns the full 30-team table
func NBATeams() TeamTable {
	return TeamTable{
		"ATL": {Abbrev: "ATL", Name: "Atlanta Hawks", Short: "Hawks", Logo: "hawks.png"},
		"BOS": {Abbrev: "BOS", Name: "Boston Celtics", Short: "Celtics", Logo: "celtics.png"},
		"BKN": {Abbrev: "BKN", Name: "Brooklyn Nets", Short: "Nets", Logo: "nets.png"},
		"CHA": {Abbrev: "CHA", Name: "Charlotte Hornets", Short: "Hornets", Logo: "hornets.png"},
		"CHI": {Abbrev: "CHI", Name: "Chicago Bulls", Short: "Bulls", Logo: "bulls.png"},
		"CLE": {Abbrev: "CLE", Name: "Cleveland Cavaliers", Short: "Cavaliers", Logo: "cavaliers.png"},
		"DAL": {Abbrev: "DAL", Name: "Dallas Mavericks", Short: "Mavericks", Logo: "mavericks.png"},
		"DEN": {Abbrev: "DEN", Name: "Denver Nuggets", Short: "Nuggets", Logo: "nuggets.png"},
		"DET": {Abbrev: "DET", Name: "Detroit Pistons", Short: "Pistons", Logo: "pistons.png"},
		"GSW": {Abbrev: "GSW", Name: "Golden State Warriors", Short: "Warriors", Logo: "warriors.png"},
		"HOU": {Abbrev: "HOU", Name: "Houston Rockets", Short: "Rockets", Logo: "rockets.png"},
		"IND": {Abbrev: "IND", Name: "Indiana Pacers", Short: "Pacers", Logo: "pacers.png"},
		"LAC": {Abbrev: "LAC", Name: "Los Angeles Clippers", Short: "Clippers", Logo: "clippers.png"},
		"LAL": {Abbrev: "LAL", Name: "Los Angeles Lakers", Short: "Lakers", Logo: "lakers.png"},
		"MEM": {Abbrev: "MEM", Name: "Memphis Grizzlies", Short: "Grizzlies", Logo: "grizzlies.png"},
		"MIA": {Abbrev: "MIA", Name: "Miami Heat", Short: "Heat", Logo: "heat.png"},
		"MIL": {Abbrev: "MIL", Name: "Milwaukee Bucks", Short: "Bucks", Logo: "bucks.png"},
		"MIN": {Abbrev: "MIN", Name: "Minnesota Timberwolves", Short: "Timberwolves", Logo: "timberwolves.png"},
		"NOP": {Abbrev: "NOP", Name: "New Orleans Pelicans", Short: "Pelicans", Logo: "pelicans.png"},
		"NYK": {Abbrev: "NYK", Name: "New York Knicks", Short: "Knicks", Logo: "knicks.png"},
		"OKC": {Abbrev: "OKC", Name: "Oklahoma City Thunder", Short: "Thunder", Logo: "thunder.png"},
		"ORL": {Abbrev: "ORL", Name: "Orlando Magic", Short: "Magic", Logo: "magic.png"},
		"PHI": {Abbrev: "PHI", Name: "Philadelphia 76ers", Short: "76ers", Logo: "76ers.png"},
		"PHX": {Abbrev: "PHX", Name: "Phoenix Suns", Short: "Suns", Logo: "suns.png"},
		"POR": {Abbrev: "POR", Name: "Portland Trail Blazers", Short: "Trail Blazers", Logo: "trailblazers.png"},
		"SAC": {Abbrev: "SAC", Name: "Sacramento Kings", Short: "Kings", Logo: "kings.png"},
		"SAS": {Abbrev: "SAS", Name: "San Antonio Spurs", Short: "Spurs", Logo: "spurs.png"},
		"TOR": {Abbrev: "TOR", Name: "Toronto Raptors", Short: "Raptors", Logo: "raptors.png"},
		"UTA": {Abbrev: "UTA", Name: "Utah Jazz", Short: "Jazz", Logo: "jazz.png"},
		"WAS": {Abbrev: "WAS", Name: "Washington Wizards", Short: "Wizards", Logo: "wizards.png"},
	}
}

// espn abbreviations that differ from the standard set
var espnAbbrevs = map[string]string{
	"GS":   "GSW",
	"NY":   "NYK",
	"NO":   "NOP",
	"SA":   "SAS",
	"UTAH": "UTA",
	"WSH":  "WAS",
	"PHO":  "PHX",
	"PHOE": "PHX",
}

// NormalizeAbbrev converts an ESPN team abbreviation to the standard one
func NormalizeAbbrev(abbrev string) string {
	if std, ok := espnAbbrevs[abbrev]; ok {
		return std
	}
	return abbrev
}
