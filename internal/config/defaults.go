// This file holds the built-in jobs matching the survey and transaction
// datasets the tools were written for. Each binary starts from its default
// and lets a -config file or flags override it, so the tools run out of the
// box against the project data layout.
package config

// DefaultChunkSize bounds rows per block when streaming large CSVs.
const DefaultChunkSize = 50000

// DefaultDropCols returns the job that strips recoded (suffix "R") columns
// from the raw survey extract.
func DefaultDropCols() Job {
	return Job{
		Kind:   "dropcols",
		Source: FileSpec{Path: "data/Q1_Q260_filtered_30%row_and_column.csv"},
		Output: FileSpec{Path: "data/Q1_Q260_filtered_30%row_and_column_no_R.csv"},
		Drop:   &DropSpec{Suffix: "R"},
		CSV:    Options{"chunk_size": DefaultChunkSize},
	}
}

// DefaultSubset returns the job that builds the life-satisfaction feature set
// from the survey extract, preferring the stripped file and falling back to
// the raw one.
//
// The groups follow the construct tagging of the analysis: competence,
// autonomy, relatedness. Order is load-bearing; it fixes the output columns.
func DefaultSubset() Job {
	return Job{
		Kind:     "subset",
		Source:   FileSpec{Path: "data/Q1_Q260_filtered_30%row_and_column_no_R.csv"},
		Fallback: &FileSpec{Path: "data/Q1_Q260_filtered_30%row_and_column.csv"},
		Output:   FileSpec{Path: "data/lifesat_sdt_subset.csv"},
		CSV:      Options{"chunk_size": DefaultChunkSize},
		Features: &FeatureSpec{
			Target: Pair{Source: "Q49", Rename: "LifeSat"},
			Groups: []Group{
				{
					Label: "com",
					Columns: []Pair{
						{Source: "Q47", Rename: "SHealth"},
						{Source: "Q50", Rename: "FinSat"},
						{Source: "Q56", Rename: "FinSat_ComParent"},
						{Source: "Q142", Rename: "RiskUnemployed"},
						{Source: "Q143", Rename: "EducationNextGen"},
					},
				},
				{
					Label: "aut",
					Columns: []Pair{
						{Source: "Q48", Rename: "FreeChoice"},
						{Source: "Q131", Rename: "Security"},
						{Source: "Q146", Rename: "PublicSecurity_War"},
						{Source: "Q147", Rename: "PublicSecurity_Terrorism"},
						{Source: "Q148", Rename: "PublicSecurity_CivilWar"},
						{Source: "Q251", Rename: "Democracy"},
						{Source: "Q253", Rename: "HumanRights"},
					},
				},
				{
					Label: "rel",
					Columns: []Pair{
						{Source: "Q57", Rename: "Trust"},
						{Source: "Q58", Rename: "Trust_Family"},
						{Source: "Q59", Rename: "Trust_Neighbors"},
						{Source: "Q60", Rename: "Trust_Acquaintances"},
						{Source: "Q61", Rename: "Trust_Strangers"},
						{Source: "Q62", Rename: "Trust_OtherReligion"},
						{Source: "Q63", Rename: "Trust_OtherNationality"},
						{Source: "Q94", Rename: "Membership_Religious"},
						{Source: "Q95", Rename: "Membership_Sport"},
						{Source: "Q96", Rename: "Membership_Art"},
						{Source: "Q97", Rename: "Membership_LaborUnion"},
						{Source: "Q98", Rename: "Membership_Political"},
						{Source: "Q99", Rename: "Membership_Environmental"},
						{Source: "Q100", Rename: "Membership_Professional"},
						{Source: "Q101", Rename: "Membership_Charity"},
						{Source: "Q102", Rename: "Membership_Consumer"},
						{Source: "Q103", Rename: "Membership_SelfHelp"},
						{Source: "Q104", Rename: "Membership_Women"},
						{Source: "Q105", Rename: "Membership_Other"},
						{Source: "Q164", Rename: "GodImportance"},
						{Source: "Q171", Rename: "ReligiousAttendance"},
						{Source: "Q172", Rename: "Pray"},
						{Source: "Q254", Rename: "NationalPride"},
						{Source: "Q255", Rename: "CloseToTown"},
						{Source: "Q256", Rename: "CloseToRegion"},
						{Source: "Q257", Rename: "CloseToCountry"},
						{Source: "Q258", Rename: "CloseToContinent"},
						{Source: "Q259", Rename: "CloseToWorld"},
					},
				},
			},
		},
	}
}

// DefaultFlatten returns the job that flattens the property transaction
// export into CSV and XLSX with unit-split numeric columns.
func DefaultFlatten() Job {
	return Job{
		Kind:        "flatten",
		Source:      FileSpec{Path: "data/tps_sale_transactions_en.json"},
		Output:      FileSpec{Path: "data/tps_sale_transactions_en.csv"},
		Spreadsheet: &FileSpec{Path: "data/tps_sale_transactions_en.xlsx"},
		Flatten: &FlattenSpec{
			RecordsField: "records",
			FloatFields: []string{
				"estate_map_latitude",
				"estate_map_longitude",
				"transaction_price",
				"discount_rate",
			},
			Splits: []Split{
				{
					Source: "saleable_floor_area",
					Left:   "saleable_floor_area_per_sq_m",
					Right:  "saleable_floor_area_per_sq_ft",
				},
				{
					Source: "transaction_price_per_sq",
					Left:   "transaction_price_per_sq_m",
					Right:  "transaction_price_per_sq_ft",
				},
			},
			Separator: "/",
			Sheet:     "Sheet1",
		},
	}
}

// Default returns the built-in job for kind, or false when kind is unknown.
func Default(kind string) (Job, bool) {
	switch kind {
	case "dropcols":
		return DefaultDropCols(), true
	case "subset":
		return DefaultSubset(), true
	case "flatten":
		return DefaultFlatten(), true
	}
	return Job{}, false
}
