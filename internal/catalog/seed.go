// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package catalog

// SeedMovies returns the canonical demo catalog. The memory store loads
// it at startup; the seed command inserts it into postgres.
func SeedMovies() []Movie {
	return []Movie{
		{
			Title:  "Gone with the Wind",
			Year:   1939,
			Rating: "NA",
			Actors: []Person{
				{Name: "Vivien Leigh", Country: "US", BirthdayTimestamp: -1772150400},
				{Name: "Clark Gable", Country: "US", BirthdayTimestamp: -2174774400},
			},
			Directors: []Person{
				{Name: "Victor Fleming", Country: "US", BirthdayTimestamp: -2551478400},
			},
		},
		{
			Title:  "Apocalypse Now",
			Year:   1979,
			Rating: "NA",
			Actors: []Person{
				{Name: "Martin Sheen", Country: "US", BirthdayTimestamp: -928195200},
				{Name: "Marlon Brando", Country: "US", BirthdayTimestamp: -1443657600},
				{Name: "Robert Duvall", Country: "US", BirthdayTimestamp: -1230422400},
				{Name: "Laurence Fishburne", Country: "US", BirthdayTimestamp: -265852800},
			},
			Directors: []Person{
				{Name: "Francis Ford Coppola", Country: "US", BirthdayTimestamp: -970012800},
			},
		},
		{
			Title:  "The Room",
			Year:   2003,
			Rating: "R",
			Actors: []Person{
				{Name: "Tommy Wiseau", Country: "PL", BirthdayTimestamp: 18144000},
				{Name: "Juliette Danielle", Country: "US", BirthdayTimestamp: 345081600},
			},
			Directors: []Person{
				{Name: "Tommy Wiseau", Country: "PL", BirthdayTimestamp: 18144000},
			},
		},
		{
			Title:  "The Prestige",
			Year:   2006,
			Rating: "PG-13",
			Actors: []Person{
				{Name: "Christian Bale", Country: "UK", BirthdayTimestamp: 128736000},
				{Name: "Hugh Jackman", Country: "AU", BirthdayTimestamp: -38534400},
			},
			Directors: []Person{
				{Name: "Christopher Nolan", Country: "UK", BirthdayTimestamp: 18144000},
			},
		},
	}
}
