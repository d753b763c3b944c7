package tools

// AllTools contains all tool specifications for the World Bank MCP server.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	{
		Name:     "get_country_info",
		Method:   "GetCountryInfo",
		Title:    "Get Country Info",
		Category: "country",
		Source:   "restcountries",
		Description: `Get general facts about a country: capital, region, languages, currencies, population, flag.

USE WHEN: User asks "tell me about Norway", "what's the capital of Brazil", "what languages are spoken in Switzerland".

NOT FOR: Economic or statistical indicators like GDP or population over time (use get_live_indicator instead).

PARAMETERS:
- country_code: ISO alpha-3 country code, e.g. "USA", "BRA" (required)

RETURNS: Country name, capital, region, subregion, languages, currency codes, population, and flag emoji. Returns {"error": ...} when the country is unknown.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "get_live_indicator",
		Method:   "GetLiveIndicator",
		Title:    "Get Live Indicator",
		Category: "indicator",
		Source:   "worldbank",
		Description: `Fetch a current World Bank indicator value for one country and year.

USE WHEN: User asks "what is the GDP of the USA", "population of Brazil in 2020", "CO2 emissions for Germany".

NOT FOR: Comparing several countries at once (use compare_countries instead). Not for general country facts like capital or languages (use get_country_info instead).

PARAMETERS:
- country_code: ISO alpha-3 country code, e.g. "USA" (required)
- indicator: World Bank indicator code, e.g. "NY.GDP.MKTP.CD" for GDP, "SP.POP.TOTL" for population (required)
- year: Year to query (default 2022)

RETURNS: Country and indicator names plus the value for the requested year. Value is null with {"error": "No data available"} when the series has no data point.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "compare_countries",
		Method:   "CompareCountries",
		Title:    "Compare Countries",
		Category: "indicator",
		Source:   "worldbank",
		Description: `Compare one World Bank indicator across multiple countries for the same year.

USE WHEN: User asks "compare GDP of USA and China", "which Nordic country has the largest population", "rank these countries by CO2 emissions".

NOT FOR: A single country lookup (use get_live_indicator instead).

PARAMETERS:
- country_codes: List of ISO alpha-3 country codes, e.g. ["USA", "CHN"] (required)
- indicator: World Bank indicator code (required)
- year: Year to query (default 2022)

RETURNS: One entry per requested country, in the order given. Countries that fail to resolve get their own {"error": ...} entry without affecting the others.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}

// ToolsByCategory returns the tools in the given category.
func ToolsByCategory(category string) []ToolSpec {
	var specs []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			specs = append(specs, spec)
		}
	}
	return specs
}

// ToolsBySource returns the tools backed by the given upstream API.
func ToolsBySource(source string) []ToolSpec {
	var specs []ToolSpec
	for _, spec := range AllTools {
		if spec.Source == source {
			specs = append(specs, spec)
		}
	}
	return specs
}
