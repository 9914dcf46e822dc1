// Package market holds the static market definitions: output language,
// search region code, and the curated trusted-retailer site sets per market.
package market

import "strings"

// languages maps a market code to the language product data is localized to.
var languages = map[string]string{
	"DE": "German",
	"AT": "German",
	"CH": "German",
	"UK": "English",
	"GB": "English",
	"FR": "French",
	"BE": "French",
	"IT": "Italian",
	"ES": "Spanish",
	"NL": "Dutch",
	"DK": "Danish",
	"SE": "Swedish",
	"NO": "Norwegian",
	"PL": "Polish",
	"PT": "Portuguese",
}

// retailerSites are per-market search restrictions to trusted grocery
// retailers, the highest-quality sources for ingredient and nutrition data.
var retailerSites = map[string]string{
	"FR": "site:carrefour.fr OR site:auchan.fr OR site:coursesu.com OR site:intermarche.com OR site:monoprix.fr OR site:franprix.fr",
	"UK": "site:tesco.com OR site:sainsburys.co.uk OR site:asda.com OR site:morrisons.com OR site:iceland.co.uk OR site:waitrose.com",
	"NL": "site:ah.nl OR site:jumbo.com OR site:plus.nl OR site:dirk.nl OR site:vomar.nl",
	"BE": "site:delhaize.be OR site:colruyt.be OR site:carrefour.be OR site:ah.be",
	"DE": "site:rewe.de OR site:edeka.de OR site:kaufland.de OR site:dm.de OR site:rossmann.de",
	"DK": "site:nemlig.com OR site:bilkatogo.dk OR site:rema1000.dk OR site:netto.dk",
	"IT": "site:carrefour.it OR site:conad.it OR site:esselunga.it OR site:coop.it",
	"ES": "site:carrefour.es OR site:mercadona.es OR site:dia.es OR site:alcampo.es",
	"SE": "site:ica.se OR site:coop.se OR site:willys.se OR site:hemkop.se",
	"NO": "site:oda.com OR site:meny.no OR site:spar.no",
	"PL": "site:carrefour.pl OR site:auchan.pl OR site:biedronka.pl",
	"PT": "site:continente.pt OR site:auchan.pt OR site:pingo-doce.pt",
}

// Language returns the target output language for a market, defaulting to
// English for unknown markets.
func Language(market string) string {
	if lang, ok := languages[market]; ok {
		return lang
	}
	return "English"
}

// RegionCode translates a market code into the search backend's region code.
// The backend expects "gb", not "uk".
func RegionCode(market string) string {
	if market == "UK" {
		return "gb"
	}
	return strings.ToLower(market)
}

// RetailerSites returns the curated retailer site-set query fragment for a
// market, if one exists.
func RetailerSites(market string) (string, bool) {
	sites, ok := retailerSites[market]
	return sites, ok
}
