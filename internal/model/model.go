package model

import "time"

type MetricID string

const (
	MetricPopulation    MetricID = "population"
	MetricPopulationPct MetricID = "population_pct"

	MetricCovidCases          MetricID = "covid_cases"
	MetricCovidDeaths         MetricID = "covid_deaths"
	MetricCovidHosp           MetricID = "covid_hosp"
	MetricCovidCasesPctOfGeo  MetricID = "covid_cases_pct_of_geo"
	MetricCovidDeathsPctOfGeo MetricID = "covid_deaths_pct_of_geo"
	MetricCovidHospPctOfGeo   MetricID = "covid_hosp_pct_of_geo"
	MetricCovidCasesPer100k   MetricID = "covid_cases_per_100k"
	MetricCovidDeathsPer100k  MetricID = "covid_deaths_per_100k"
	MetricCovidHospPer100k    MetricID = "covid_hosp_per_100k"

	MetricDiabetesCount   MetricID = "diabetes_count"
	MetricDiabetesPer100k MetricID = "diabetes_per_100k"
	MetricCopdCount       MetricID = "copd_count"
	MetricCopdPer100k     MetricID = "copd_per_100k"
)

type ProviderID string

const (
	ProviderAcsPopulation ProviderID = "acs_pop_provider"
	ProviderCovid         ProviderID = "covid_provider"
	ProviderBrfss         ProviderID = "brfss_provider"
)

type Outcome string

const (
	OutcomeResolved        Outcome = "resolved"
	OutcomeNoProvider      Outcome = "no_provider"
	OutcomeUnsupportedJoin Outcome = "unsupported_join"
	OutcomeFailed          Outcome = "failed"
)

// Resolution is one audited provider lookup.
type Resolution struct {
	ID         string
	Metrics    []MetricID
	Candidates []ProviderID
	Providers  []ProviderID
	Outcome    Outcome
	Error      string
	ResolvedAt time.Time
}

func ParseMetricIDs(values []string) []MetricID {
	ids := make([]MetricID, 0, len(values))
	for _, value := range values {
		ids = append(ids, MetricID(value))
	}
	return ids
}
